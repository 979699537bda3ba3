package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/errors"
)

func (a *Analyzer) analyzeStatements(stmts []ast.Statement) []complete.Statement {
	out := make([]complete.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, a.analyzeStatement(s))
	}
	return out
}

func (a *Analyzer) analyzeStatement(s ast.Statement) complete.Statement {
	switch n := s.(type) {
	case *ast.VariableDecl:
		return a.analyzeLocalVariableDecl(n)
	case *ast.ExpressionStmt:
		return complete.NewExpressionStatement(a.analyzeExpression(n.Expr, complete.NoneTypeId))
	case *ast.ReturnStmt:
		if n.Value == nil {
			return complete.NewReturnStatement(nil)
		}
		value := a.analyzeExpression(n.Value, a.fn.returnType)
		if value.ResultType() != a.fn.returnType && value.ResultType().Value() == a.fn.returnType.Value() {
			value = complete.NewMutabilityConversion(a.fn.returnType, value)
		}
		return complete.NewReturnStatement(value)
	case *ast.IfStmt:
		cond := a.analyzeExpression(n.Condition, complete.BoolTypeId)
		then := a.analyzeBlockAsStatement(n.Then)
		var els complete.Statement
		if n.Else != nil {
			els = a.analyzeStatement(n.Else)
		}
		return complete.NewIfStatement(cond, then, els)
	case *ast.WhileStmt:
		cond := a.analyzeExpression(n.Condition, complete.BoolTypeId)
		a.fn.loopDepth++
		body := a.analyzeBlockAsStatement(n.Body)
		a.fn.loopDepth--
		return complete.NewWhileStatement(cond, body)
	case *ast.ForStmt:
		return a.analyzeForStmt(n)
	case *ast.BlockStmt:
		return a.analyzeBlockAsStatement(n)
	case *ast.BreakStmt:
		if a.fn.loopDepth == 0 {
			a.errorf(n.Position, errors.KindInvalid, "break outside of a loop")
		}
		return &complete.BreakStatement{}
	case *ast.ContinueStmt:
		if a.fn.loopDepth == 0 {
			a.errorf(n.Position, errors.KindInvalid, "continue outside of a loop")
		}
		return &complete.ContinueStatement{}
	case *ast.PreconditionStmt:
		// Top-level preconditions are extracted by the parser; a nested
		// one (inside an if/while body) is analysed as a bool-typed
		// expression statement: it is evaluated and its value discarded,
		// so a false result does not stop execution.
		cond := a.analyzeExpression(n.Cond, complete.BoolTypeId)
		return complete.NewExpressionStatement(cond)
	default:
		a.errorf(s.Pos(), errors.KindInvalid, "unsupported statement")
		return complete.NewExpressionStatement(complete.NewIntLiteral(0))
	}
}

func (a *Analyzer) analyzeLocalVariableDecl(n *ast.VariableDecl) complete.Statement {
	declaredType := complete.NoneTypeId
	if n.Type != nil {
		declaredType = a.resolveType(n.Type)
	}
	init := a.analyzeExpression(n.Init, declaredType)
	t := init.ResultType()
	if !declaredType.IsNone() {
		t = declaredType
	}
	t = t.WithReference(n.Mutable, n.Mutable || t.IsReference)
	v := a.scopes.top().AddVariable(n.Name, t, a.program.TypeSize(t), a.program.TypeAlignment(t))
	return complete.NewVariableDeclaration(v.Offset, t, init)
}

func (a *Analyzer) analyzeForStmt(n *ast.ForStmt) complete.Statement {
	scope := a.pushChildScope()
	start := scope.FrameSize
	defer a.scopes.pop()

	var init complete.Statement
	if n.Init != nil {
		init = a.analyzeStatement(n.Init)
	}
	cond := a.analyzeExpression(n.Condition, complete.BoolTypeId)
	var step complete.Expression
	if n.Step != nil {
		step = a.analyzeExpression(n.Step, complete.NoneTypeId)
	}
	a.fn.loopDepth++
	body := a.analyzeBlockAsStatement(n.Body)
	a.fn.loopDepth--
	return complete.NewForStatement(init, cond, step, body, scope.FrameSize-start)
}

// analyzeBlockAsStatement analyses a brace-delimited block as a
// statement (rather than as a value-producing BlockExpr). The child
// scope is seeded from the enclosing scope's current frame size so
// every Variable.Offset inside stays function-relative; only the
// growth is recorded on the node, so the evaluator knows how much to
// reserve on entry and free on exit.
func (a *Analyzer) analyzeBlockAsStatement(n *ast.BlockStmt) complete.Statement {
	scope := a.pushChildScope()
	start := scope.FrameSize
	stmts := a.analyzeStatements(n.Statements)
	a.scopes.pop()
	return complete.NewBlockStatement(stmts, scope.FrameSize-start)
}

// pushChildScope opens a nested lexical scope whose frame offsets
// continue from the enclosing scope's current frame size, and pushes
// it onto the scope stack.
func (a *Analyzer) pushChildScope() *complete.Scope {
	scope := complete.NewScope()
	scope.FrameSize = a.scopes.top().FrameSize
	a.scopes.push(scope)
	return scope
}
