package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
)

// synthesizeSpecialMembers fills in id's Struct.Destructor when at least
// one member needs one. This grammar exposes no explicit
// constructor/destructor syntax, so every struct's default, copy, and
// move construction is the trivial memberwise one the evaluator
// performs directly (a flat copy); only destruction ever needs a
// synthesized Function, and only when a member is itself non-trivial.
func (a *Analyzer) synthesizeSpecialMembers(id complete.TypeId, d *ast.StructDecl) {
	s := a.program.StructFor(id)

	needsDestructor := false
	for _, m := range s.Members {
		if !a.program.IsTriviallyDestructible(m.Type) {
			needsDestructor = true
			break
		}
	}
	if !needsDestructor {
		return
	}

	selfType := id.WithReference(true, true)
	scope := complete.NewScope()
	scope.IsFunctionBoundary = true
	self := scope.AddVariable("self", selfType, a.program.TypeSize(selfType), a.program.TypeAlignment(selfType))

	var statements []complete.Statement
	for i := len(s.Members) - 1; i >= 0; i-- {
		m := s.Members[i]
		dtor, ok := a.program.DestructorFor(m.Type)
		if !ok {
			continue
		}
		selfLoad := complete.NewVariableLoad(selfType, self.Offset, false)
		member := complete.NewMemberAccess(m.Type.WithReference(true, true), selfLoad, m.Offset)
		call := complete.NewCall(complete.VoidTypeId, dtor, []complete.Expression{member})
		statements = append(statements, complete.NewExpressionStatement(call))
	}

	fn := complete.Function{
		Scope:                 *scope,
		ParameterCount:        1,
		ParameterSize:         scope.FrameSize,
		ReturnType:            complete.VoidTypeId,
		Statements:            statements,
		ABIName:               d.Name + ".~destroy",
		CallableAtCompileTime: true,
		CallableAtRuntime:     true,
	}
	s.Destructor = a.program.AddFunction(fn)
}
