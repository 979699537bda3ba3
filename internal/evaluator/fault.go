package evaluator

import (
	"fmt"

	"github.com/cwbudde/afil/internal/complete"
)

// UnmetPrecondition is the one program-level fault the evaluator can
// report: a call's i-th precondition evaluated false. It
// is never wrapped in a Go error; every call path that can fail this
// way returns it as a distinct second value so the two fault axes
// (syntax errors at analysis time, UnmetPrecondition at run time) stay
// separated at the type level.
type UnmetPrecondition struct {
	Function           complete.FunctionId
	PreconditionIndex int
}

func (u *UnmetPrecondition) Error() string {
	return fmt.Sprintf("precondition %d of function %v not met", u.PreconditionIndex, u.Function)
}

// controlFlowKind is the outcome of running one statement: whether
// execution falls through, or a return/break/continue is propagating
// outward.
type controlFlowKind int

const (
	flowNothing controlFlowKind = iota
	flowReturn
	flowBreak
	flowContinue
)

// controlFlow is returned by every statement execution. destroyedFrameSize
// is unused while every struct in this implementation stays trivial (see
// DESIGN.md); it is kept because a future non-trivial destructor would
// need it to unwind the right number of locals on a break/continue/return
// that crosses block scopes.
type controlFlow struct {
	kind              controlFlowKind
	destroyedFrameSize int
}

var flowFallthrough = controlFlow{kind: flowNothing}
