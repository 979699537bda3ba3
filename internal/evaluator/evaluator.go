package evaluator

import (
	"fmt"

	"github.com/cwbudde/afil/internal/complete"
)

// defaultCompileTimeStackSize is the default budget for compile-time
// constant folding — far smaller than a runtime stack since it only
// ever evaluates one expression's worth of call depth.
const defaultCompileTimeStackSize = 256

// Run initialises every global variable in declaration order, then
// calls main and returns its result. A nil *UnmetPrecondition
// and nil error together mean main returned normally.
func Run(program *complete.Program, stackSize int) (int32, *UnmetPrecondition, error) {
	if !program.MainFunction.IsValid() {
		return 0, nil, fmt.Errorf("evaluator: program has no main function")
	}

	it := &interpreter{program: program, stack: newStack(stackSize), mode: modeRuntime}
	// Reserve the whole global segment up front so a function call made
	// from one global initializer can never allocate over a global
	// declared later but not yet run.
	it.stack.topPointer = program.GlobalScope.FrameSize

	for _, stmt := range program.GlobalInitStatements {
		if _, up, err := it.runStatement(stmt); up != nil || err != nil {
			return 0, up, err
		}
	}

	retType := program.ReturnTypeOf(program.MainFunction)
	ret := make([]byte, it.size(retType))
	up, err := it.callFunction(program.MainFunction, nil, ret)
	if up != nil || err != nil {
		return 0, up, err
	}
	return int32(complete.ReadInt(ret)), nil, nil
}

// EvaluateConstantExpression evaluates expr — already resolved by
// semantic analysis, in a context where it is a constant expression —
// writing its value into out. It runs against a fresh, small,
// global-free stack: this is only ever used for expressions that can't
// reference a running program's state (array-size folding, concept
// checks), so no global initialisation happens here.
func EvaluateConstantExpression(program *complete.Program, expr complete.Expression, out []byte) (*UnmetPrecondition, error) {
	it := &interpreter{program: program, stack: newStack(defaultCompileTimeStackSize), mode: modeCompileTime}
	return it.eval(expr, out)
}
