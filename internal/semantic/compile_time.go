package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/evaluator"
)

// evaluateCompiles implements `compiles { ... }`: the
// fake variables are declared in a throwaway scope and the body
// expressions are analysed against it; the result is whether that
// analysis produced zero diagnostics. Errors raised while probing are
// swallowed, never surfaced to the caller's own diagnostics.
func (a *Analyzer) evaluateCompiles(n *ast.CompilesExpr) bool {
	savedErrs := a.errs
	a.errs = nil

	scope := complete.NewScope()
	a.scopes.push(scope)
	for _, v := range n.Variables {
		t := a.resolveType(v.Type)
		scope.AddVariable(v.Name, t, a.program.TypeSize(t), a.program.TypeAlignment(t))
	}
	for _, bodyExpr := range n.Body {
		a.analyzeExpression(bodyExpr, complete.NoneTypeId)
	}
	a.scopes.pop()

	ok := len(a.errs) == 0
	a.errs = savedErrs
	return ok
}

// evaluateConstantInt folds a fully-analysed int-typed Expression to its
// value at analysis time, when possible. This delegates to the same
// evaluator.EvaluateConstantExpression used at runtime for compile-time
// folding, rather than hand-rolling a second, narrower folder: a call to
// any compile-time-callable program function is foldable here exactly
// as it is anywhere else compile-time evaluation happens, not just
// literal ints and intrinsic arithmetic. An extern call, or any other
// fault the evaluator reports, simply makes the expression non-constant.
func (a *Analyzer) evaluateConstantInt(e complete.Expression) (int, bool) {
	out := make([]byte, a.program.TypeSize(complete.IntTypeId))
	up, err := evaluator.EvaluateConstantExpression(a.program, e, out)
	if up != nil || err != nil {
		return 0, false
	}
	return int(complete.ReadInt(out)), true
}
