package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/errors"
	"github.com/cwbudde/afil/internal/lexer"
)

// analyzeExpression analyses one ast.Expression node into a
// complete.Expression. expected is advisory only: no node kind reads
// it, and analyzeExpression never silently converts to it; callers
// insert conversions explicitly.
func (a *Analyzer) analyzeExpression(e ast.Expression, expected complete.TypeId) complete.Expression {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return complete.NewIntLiteral(n.Value)
	case *ast.FloatLiteral:
		return complete.NewFloatLiteral(n.Value)
	case *ast.BoolLiteral:
		return complete.NewBoolLiteral(n.Value)
	case *ast.CharLiteral:
		return complete.NewCharLiteral(n.Value)
	case *ast.StringLiteral:
		a.errorf(n.Position, errors.KindInvalid, "string literals are not part of this language's core")
		return complete.NewIntLiteral(0)
	case *ast.TypeLiteral:
		return complete.NewTypeValue(a.resolveType(n.Type))
	case *ast.Identifier:
		return a.analyzeIdentifier(n)
	case *ast.BinaryExpr:
		return a.analyzeBinary(n)
	case *ast.UnaryExpr:
		return a.analyzeUnary(n)
	case *ast.CallExpr:
		return a.analyzeCall(n)
	case *ast.MemberExpr:
		return a.analyzeMember(n)
	case *ast.IndexExpr:
		return a.analyzeIndex(n)
	case *ast.AddressOfExpr:
		operand := a.analyzeExpression(n.Operand, complete.NoneTypeId)
		return complete.NewAddressOf(a.program.AddPointerType(operand.ResultType().Value()), operand)
	case *ast.DerefExpr:
		operand := a.analyzeExpression(n.Operand, complete.NoneTypeId)
		pointee := a.program.TypeWithId(operand.ResultType()).Pointee
		return complete.NewDereference(pointee.WithReference(true, true), operand)
	case *ast.CastExpr:
		return a.analyzeCast(n)
	case *ast.DesignatedInitExpr:
		return a.analyzeDesignatedInit(n)
	case *ast.CompilesExpr:
		return complete.NewBoolLiteral(a.evaluateCompiles(n))
	case *ast.TypeOfExpr:
		operand := a.analyzeExpression(n.Operand, complete.NoneTypeId)
		return complete.NewTypeValue(operand.ResultType())
	case *ast.IfExpr:
		return a.analyzeIfExpr(n)
	case *ast.BlockExpr:
		return a.analyzeBlockExpr(n)
	default:
		a.errorf(e.Pos(), errors.KindInvalid, "unsupported expression")
		return complete.NewIntLiteral(0)
	}
}

func (a *Analyzer) analyzeIdentifier(n *ast.Identifier) complete.Expression {
	if len(n.TemplateArgs) > 0 {
		return a.analyzeExplicitTemplateCallTarget(n)
	}
	res := lookupQualifiedName(a.scopes, n.Namespace, n.Name)
	switch res.kind {
	case lookupVariable:
		return complete.NewVariableLoad(res.variable.Type, res.variable.Offset, false)
	case lookupGlobalVariable:
		return complete.NewVariableLoad(res.variable.Type, res.variable.Offset, true)
	case lookupConstant:
		return constantExpression(res.constant)
	case lookupType:
		return complete.NewTypeValue(res.typ)
	case lookupOverloadSet:
		a.program.OverloadSetTypes = append(a.program.OverloadSetTypes, *res.overload.OverloadSets[n.Name])
		return complete.NewOverloadSetValue(complete.NoneTypeId, len(a.program.OverloadSetTypes)-1)
	default:
		a.errorf(n.Position, errors.KindUnknownIdentifier, "unknown identifier %q", n.Name)
		return complete.NewIntLiteral(0)
	}
}

func constantExpression(c complete.Constant) complete.Expression {
	switch c.Type {
	case complete.IntTypeId:
		return complete.NewIntLiteral(complete.ReadInt(c.Value))
	case complete.FloatTypeId:
		return complete.NewFloatLiteral(complete.ReadFloat(c.Value))
	case complete.BoolTypeId:
		return complete.NewBoolLiteral(complete.ReadBool(c.Value))
	default:
		return complete.NewIntLiteral(0)
	}
}

// analyzeExplicitTemplateCallTarget handles `name<Args>` used directly
// (not immediately called): it's only meaningful as the callee of a
// CallExpr, where analyzeCall special-cases it; reached standalone only
// when used incorrectly.
func (a *Analyzer) analyzeExplicitTemplateCallTarget(n *ast.Identifier) complete.Expression {
	a.errorf(n.Position, errors.KindInvalid, "a template name must be called")
	return complete.NewIntLiteral(0)
}

// knownOperatorSpellings are the binary/unary operator tokens the parser
// accepts; each is lowered to a call against the overload set of the
// same name (see resolveOperatorCall), exactly the path analyzeCall
// takes for an ordinary named call, so a struct can declare its own
// `operator ==` etc. alongside the built-ins registered by
// registerIntrinsicOperators.
var knownOperatorSpellings = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true, "<=>": true,
	"&&": true, "||": true, "!": true,
}

func (a *Analyzer) analyzeBinary(n *ast.BinaryExpr) complete.Expression {
	if n.Operator == "=" {
		return a.analyzeAssign(n)
	}
	if !knownOperatorSpellings[n.Operator] {
		a.errorf(n.Position, errors.KindInvalid, "unknown operator %q", n.Operator)
		return complete.NewIntLiteral(0)
	}

	left := a.analyzeExpression(n.Left, complete.NoneTypeId)
	right := a.analyzeExpression(n.Right, complete.NoneTypeId)

	if call, ok := a.resolveOperatorCall(n.Position, n.Operator, []complete.Expression{left, right}); ok {
		return call
	}
	if call, ok := a.synthesizeRelationalOperator(n.Position, n.Operator, left, right); ok {
		return call
	}
	a.errorf(n.Position, errors.KindNoViableOverload, "no operator %q for this type", n.Operator)
	return complete.NewIntLiteral(0)
}

// synthesizeRelationalOperator implements !=, <, <=, >, >= in terms of a
// type's == or <=> overload when no overload for the spelling itself is
// declared: `a != b` lowers to `!(a == b)`, and each ordering comparison
// lowers to a comparison of `a <=> b` against zero. This way a type only
// has to supply == and/or <=> to get the full relational family, instead
// of every spelling needing its own registered overload.
func (a *Analyzer) synthesizeRelationalOperator(pos lexer.Position, op string, left, right complete.Expression) (complete.Expression, bool) {
	switch op {
	case "!=":
		eq, ok := a.resolveOperatorCall(pos, "==", []complete.Expression{left, right})
		if !ok {
			return nil, false
		}
		return a.resolveOperatorCall(pos, "!", []complete.Expression{eq})
	case "<", "<=", ">", ">=":
		cmp, ok := a.resolveOperatorCall(pos, "<=>", []complete.Expression{left, right})
		if !ok {
			return nil, false
		}
		return a.resolveOperatorCall(pos, op, []complete.Expression{cmp, complete.NewIntLiteral(0)})
	default:
		return nil, false
	}
}

// resolveOperatorCall looks up the overload set named spelling (shared
// by the built-in per-type intrinsics and any user-declared `operator`
// function of that name) and resolves it against args exactly as
// analyzeCall resolves a named function call.
func (a *Analyzer) resolveOperatorCall(pos lexer.Position, spelling string, args []complete.Expression) (complete.Expression, bool) {
	res := lookupQualifiedName(a.scopes, nil, spelling)
	if res.kind != lookupOverloadSet {
		return nil, false
	}
	set := res.overload.OverloadSets[spelling]
	fn, ok := a.resolveOverload(set, args)
	if !ok {
		return nil, false
	}
	return complete.NewCall(a.program.ReturnTypeOf(fn), fn, a.convertArguments(fn, args)), true
}

func (a *Analyzer) analyzeAssign(n *ast.BinaryExpr) complete.Expression {
	target := a.analyzeExpression(n.Left, complete.NoneTypeId)
	value := a.analyzeExpression(n.Right, target.ResultType())
	if value.ResultType().Value() != target.ResultType().Value() {
		value = complete.NewMutabilityConversion(target.ResultType(), value)
	}
	return complete.NewAssign(target, value)
}

func (a *Analyzer) analyzeUnary(n *ast.UnaryExpr) complete.Expression {
	if n.Operator != "-" && n.Operator != "!" {
		a.errorf(n.Position, errors.KindInvalid, "unknown unary operator %q", n.Operator)
		return complete.NewIntLiteral(0)
	}
	operand := a.analyzeExpression(n.Operand, complete.NoneTypeId)
	call, ok := a.resolveOperatorCall(n.Position, n.Operator, []complete.Expression{operand})
	if !ok {
		a.errorf(n.Position, errors.KindNoViableOverload, "no unary operator %q for this type", n.Operator)
		return complete.NewIntLiteral(0)
	}
	return call
}

func (a *Analyzer) analyzeCall(n *ast.CallExpr) complete.Expression {
	ident, isIdent := n.Callee.(*ast.Identifier)
	if !isIdent {
		a.errorf(n.Position, errors.KindInvalid, "only a named function can be called")
		return complete.NewIntLiteral(0)
	}

	args := make([]complete.Expression, 0, len(n.Args))
	for _, argExpr := range n.Args {
		args = append(args, a.analyzeExpression(argExpr, complete.NoneTypeId))
	}

	if len(ident.TemplateArgs) > 0 {
		return a.analyzeExplicitTemplateCall(ident, args)
	}

	res := lookupQualifiedName(a.scopes, ident.Namespace, ident.Name)
	if res.kind != lookupOverloadSet {
		a.errorf(n.Position, errors.KindUnknownIdentifier, "unknown function %q", ident.Name)
		return complete.NewIntLiteral(0)
	}
	set := res.overload.OverloadSets[ident.Name]
	fn, ok := a.resolveOverload(set, args)
	if !ok {
		a.errorf(n.Position, errors.KindNoViableOverload, "no matching overload of %q", ident.Name)
		return complete.NewIntLiteral(0)
	}
	return complete.NewCall(a.program.ReturnTypeOf(fn), fn, a.convertArguments(fn, args))
}

func (a *Analyzer) analyzeExplicitTemplateCall(ident *ast.Identifier, args []complete.Expression) complete.Expression {
	res := lookupQualifiedName(a.scopes, ident.Namespace, ident.Name)
	if res.kind != lookupOverloadSet || len(res.overload.OverloadSets[ident.Name].Templates) == 0 {
		a.errorf(ident.Position, errors.KindUnknownIdentifier, "unknown function template %q", ident.Name)
		return complete.NewIntLiteral(0)
	}
	tmplId := res.overload.OverloadSets[ident.Name].Templates[0]
	explicitArgs := make([]complete.TypeId, len(ident.TemplateArgs))
	for i, te := range ident.TemplateArgs {
		explicitArgs[i] = a.resolveType(te)
	}
	fn, ok := a.instantiateFunctionTemplate(tmplId, explicitArgs)
	if !ok {
		a.errorf(ident.Position, errors.KindConceptNotSatisfied, "type arguments do not satisfy a required concept for %q", ident.Name)
		return complete.NewIntLiteral(0)
	}
	return complete.NewCall(a.program.ReturnTypeOf(fn), fn, a.convertArguments(fn, args))
}

func (a *Analyzer) analyzeMember(n *ast.MemberExpr) complete.Expression {
	receiver := a.analyzeExpression(n.Receiver, complete.NoneTypeId)
	if !a.program.IsStruct(receiver.ResultType()) {
		a.errorf(n.Position, errors.KindTypeMismatch, "member access on a non-struct type")
		return complete.NewIntLiteral(0)
	}
	m, ok := a.program.StructFor(receiver.ResultType()).FindMember(n.Member)
	if !ok {
		a.errorf(n.Position, errors.KindUnknownIdentifier, "no member %q", n.Member)
		return complete.NewIntLiteral(0)
	}
	resultType := m.Type.WithReference(receiver.ResultType().IsMutable, true)
	return complete.NewMemberAccess(resultType, receiver, m.Offset)
}

func (a *Analyzer) analyzeIndex(n *ast.IndexExpr) complete.Expression {
	receiver := a.analyzeExpression(n.Receiver, complete.NoneTypeId)
	index := a.analyzeExpression(n.Index, complete.IntTypeId)
	t := a.program.TypeWithId(receiver.ResultType())
	var elem complete.TypeId
	switch t.Kind {
	case complete.KindArray:
		elem = t.ElementType
	case complete.KindArrayPointer, complete.KindPointer:
		elem = t.Pointee
	default:
		a.errorf(n.Position, errors.KindTypeMismatch, "subscript of a non-indexable type")
		return complete.NewIntLiteral(0)
	}
	return complete.NewSubscript(elem.WithReference(receiver.ResultType().IsMutable, true), receiver, index)
}

func (a *Analyzer) analyzeCast(n *ast.CastExpr) complete.Expression {
	operand := a.analyzeExpression(n.Operand, complete.NoneTypeId)
	target := a.resolveType(n.Type)
	if operand.ResultType().Value() == target.Value() {
		return operand
	}
	// int <-> float casts call the conversion intrinsics ("int.as_float",
	// "float.as_int"), which convert the value rather than its bytes.
	conversion := a.program.ABIName(operand.ResultType()) + ".as_" + a.program.ABIName(target)
	if call, ok := a.resolveOperatorCall(n.Position, conversion, []complete.Expression{operand}); ok {
		return call
	}
	return complete.NewReinterpret(target, operand)
}

func (a *Analyzer) analyzeDesignatedInit(n *ast.DesignatedInitExpr) complete.Expression {
	target := a.resolveType(n.Type)
	if !a.program.IsStruct(target) {
		a.errorf(n.Position, errors.KindTypeMismatch, "designated initializer on a non-struct type")
		return complete.NewIntLiteral(0)
	}
	s := a.program.StructFor(target)
	args := make([]complete.Expression, len(s.Members))
	for _, f := range n.Fields {
		m, ok := s.FindMember(f.Name)
		if !ok {
			a.errorf(n.Position, errors.KindUnknownIdentifier, "no member %q", f.Name)
			continue
		}
		memberIdx := memberIndex(s, f.Name)
		val := a.analyzeExpression(f.Value, m.Type)
		if val.ResultType().Value() != m.Type.Value() {
			val = complete.NewMutabilityConversion(m.Type, val)
		}
		args[memberIdx] = val
	}
	return complete.NewConstruct(target, args)
}

func memberIndex(s *complete.Struct, name string) int {
	for i, m := range s.Members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func (a *Analyzer) analyzeIfExpr(n *ast.IfExpr) complete.Expression {
	cond := a.analyzeExpression(n.Condition, complete.BoolTypeId)
	then := a.analyzeBlockAsExpr(n.Then.(*ast.BlockStmt))
	var els complete.Expression
	resultType := complete.VoidTypeId
	if n.Else != nil {
		switch e := n.Else.(type) {
		case *ast.BlockStmt:
			els = a.analyzeBlockAsExpr(e)
		case *ast.IfStmt:
			els = a.analyzeIfExpr(&ast.IfExpr{Position: e.Position, Condition: e.Condition, Then: e.Then, Else: e.Else})
		}
		resultType = then.ResultType()
	}
	return complete.NewIfExpr(resultType, cond, then, els)
}

// analyzeBlockAsExpr analyses a brace-delimited block so its value is
// the trailing expression statement's value, when there is one.
func (a *Analyzer) analyzeBlockAsExpr(n *ast.BlockStmt) complete.Expression {
	scope := a.pushChildScope()
	start := scope.FrameSize
	stmts := a.analyzeStatements(n.Statements)
	a.scopes.pop()

	resultType := complete.VoidTypeId
	hasResult := false
	if len(stmts) > 0 {
		if last, ok := stmts[len(stmts)-1].(*complete.ExpressionStatement); ok {
			resultType = last.Expr.ResultType()
			hasResult = true
		}
	}
	return complete.NewBlockExpr(resultType, stmts, hasResult, scope.FrameSize-start)
}

func (a *Analyzer) analyzeBlockExpr(n *ast.BlockExpr) complete.Expression {
	return a.analyzeBlockAsExpr(&ast.BlockStmt{Position: n.Position, Statements: n.Statements})
}
