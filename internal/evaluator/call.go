package evaluator

import (
	"fmt"
	"unsafe"

	"github.com/cwbudde/afil/internal/complete"
)

// callFunction invokes fn with already-analysed, already-converted
// argument expressions, writing its result into dest (zero-length for
// a void return). This dispatches on FunctionId.Kind exactly like
// Program.ParameterTypesOf/ReturnTypeOf do, so program functions,
// externs, and intrinsics/intrinsic-template instantiations are all
// reached through the same call path a Call expression takes.
func (it *interpreter) callFunction(fn complete.FunctionId, args []complete.Expression, dest []byte) (*UnmetPrecondition, error) {
	switch fn.Kind {
	case complete.FunctionKindProgram:
		return it.callProgramFunction(fn, args, dest)
	case complete.FunctionKindExtern:
		return it.callExternFunction(fn, args, dest)
	default:
		return it.callIntrinsic(fn, args, dest)
	}
}

func (it *interpreter) evalCall(n *complete.Call, dest []byte) (*UnmetPrecondition, error) {
	return it.callFunction(n.Function, n.Arguments, dest)
}

func (it *interpreter) callIntrinsic(fn complete.FunctionId, args []complete.Expression, dest []byte) (*UnmetPrecondition, error) {
	f := it.program.Intrinsics[fn.Index]
	argBytes := make([][]byte, len(args))
	for i, a := range args {
		buf := make([]byte, it.size(a.ResultType()))
		if up, err := it.eval(a, buf); up != nil || err != nil {
			return up, err
		}
		argBytes[i] = buf
	}
	f.Eval(argBytes, dest)
	return nil, nil
}

func (it *interpreter) callExternFunction(fn complete.FunctionId, args []complete.Expression, dest []byte) (*UnmetPrecondition, error) {
	if it.mode == modeCompileTime {
		return nil, fmt.Errorf("evaluator: extern function calls are not permitted at compile time")
	}
	f := it.program.ExternFunctions[fn.Index]

	argsBuf := make([]byte, f.ParameterSize)
	offset := 0
	for i, a := range args {
		sz := it.size(f.ParameterTypes[i])
		align := it.align(f.ParameterTypes[i])
		offset = alignUp(offset, align)
		if up, err := it.eval(a, argsBuf[offset:offset+sz]); up != nil || err != nil {
			return up, err
		}
		offset += sz
	}

	var argsPtr, retPtr unsafe.Pointer
	if len(argsBuf) > 0 {
		argsPtr = unsafe.Pointer(&argsBuf[0])
	}
	if len(dest) > 0 {
		retPtr = unsafe.Pointer(&dest[0])
	}
	f.Caller(f.FunctionPointer, argsPtr, retPtr)
	return nil, nil
}

// callProgramFunction runs the four-step call protocol: reserve the
// callee's frame, evaluate arguments into its parameters, run its
// preconditions, run its body, then restore the caller's frame.
func (it *interpreter) callProgramFunction(fnId complete.FunctionId, args []complete.Expression, dest []byte) (*UnmetPrecondition, error) {
	f := &it.program.Functions[fnId.Index]

	callerBase := it.stack.basePointer
	callerReturn := it.returnAddress
	entry := it.stack.topPointer

	frameAddr := it.stack.alloc(f.StackFrameSize(), f.Scope.FrameAlignment)
	for i, arg := range args {
		param := f.Scope.Variables[i]
		slot := frameAddr + param.Offset
		sz := it.size(param.Type)
		if up, err := it.eval(arg, it.stack.memory[slot:slot+sz]); up != nil || err != nil {
			it.stack.basePointer = callerBase
			it.returnAddress = callerReturn
			it.stack.freeUpTo(entry)
			return up, err
		}
	}

	it.stack.basePointer = frameAddr
	it.returnAddress = dest

	for i, precond := range f.Preconditions {
		cond := make([]byte, 1)
		if up, err := it.eval(precond, cond); up != nil || err != nil {
			it.stack.basePointer = callerBase
			it.returnAddress = callerReturn
			it.stack.freeUpTo(entry)
			return up, err
		}
		if !complete.ReadBool(cond) {
			it.stack.basePointer = callerBase
			it.returnAddress = callerReturn
			it.stack.freeUpTo(entry)
			return &UnmetPrecondition{Function: fnId, PreconditionIndex: i}, nil
		}
	}

	for _, stmt := range f.Statements {
		flow, up, err := it.runStatement(stmt)
		if up != nil || err != nil {
			it.stack.basePointer = callerBase
			it.returnAddress = callerReturn
			it.stack.freeUpTo(entry)
			return up, err
		}
		if flow.kind == flowReturn {
			break
		}
	}

	it.stack.basePointer = callerBase
	it.returnAddress = callerReturn
	it.stack.freeUpTo(entry)
	return nil, nil
}
