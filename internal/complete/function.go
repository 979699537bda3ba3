package complete

import "unsafe"

// Function is a program-defined, fully-analysed function body: the
// compiled form of an ast.FunctionDecl (or of one instantiation of an
// ast.FunctionDecl carrying template parameters).
type Function struct {
	Scope           Scope
	ParameterCount  int
	ParameterSize   int
	ReturnType      TypeId
	Preconditions   []Expression
	Statements      []Statement
	ABIName         string
	CallableAtCompileTime bool
	CallableAtRuntime     bool
}

// StackFrameSize is the total bytes the evaluator must reserve for one
// activation of this function: parameters plus every local declared
// directly or in a nested block, already laid out by the analyser.
func (f *Function) StackFrameSize() int { return f.Scope.FrameSize }

// ExternCaller is the C-ABI thunk shape every imported extern function
// must provide: read arguments packed contiguously at args, call the
// underlying native function (reached via fn, typically a C function
// pointer captured by the closure), and write the result to ret.
// This is the FFI boundary every imported extern function crosses.
type ExternCaller func(fn unsafe.Pointer, args unsafe.Pointer, ret unsafe.Pointer)

// ExternFunction is an imported function whose body lives outside the
// afil program — reached only through its ExternCaller thunk, never
// through an afil call stack frame.
type ExternFunction struct {
	ParameterTypes     []TypeId
	ParameterSize      int
	ParameterAlignment int
	ReturnType         TypeId
	ABIName            string
	Caller             ExternCaller
	FunctionPointer    unsafe.Pointer
}

// IntrinsicEval implements a built-in operator or function directly on
// argument/result byte representations, without an afil call frame.
// args[i] is exactly sizeof(ParameterTypes[i]) bytes; out is exactly
// sizeof(ReturnType) bytes (zero-length when ReturnType is void).
type IntrinsicEval func(args [][]byte, out []byte)

// IntrinsicFunction is a compiler built-in: the arithmetic/comparison/
// logical operators over the built-in types, plus a small number of
// named built-ins (e.g. `destroy`). Always callable at both compile
// time and runtime.
type IntrinsicFunction struct {
	Name           string
	ParameterTypes []TypeId
	ReturnType     TypeId
	Eval           IntrinsicEval
}

// IntrinsicFunctionTemplateGenerator builds the concrete IntrinsicFunction
// for one instantiation of an intrinsic function template, given the
// bound type argument.
type IntrinsicFunctionTemplateGenerator func(prog *Program, arg TypeId) IntrinsicFunction

// IntrinsicFunctionTemplate is a built-in function template; `destroy<T>`
// is the only one registered. Unlike a user FunctionTemplate
// it has no ast body; Generator produces the instantiated
// IntrinsicFunction directly.
type IntrinsicFunctionTemplate struct {
	Name      string
	Generator IntrinsicFunctionTemplateGenerator
}
