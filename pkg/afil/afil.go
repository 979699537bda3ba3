// Package afil is the stable public API over internal/*: parse source
// text into modules, analyse modules into a complete.Program, and run
// or constant-fold that program, so embedders never need to import
// internal/ast, internal/parser, internal/semantic, or internal/complete
// directly.
package afil

import (
	"unsafe"

	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/errors"
	"github.com/cwbudde/afil/internal/evaluator"
	"github.com/cwbudde/afil/internal/parser"
	"github.com/cwbudde/afil/internal/semantic"
)

// DefaultStackSize is the activation-stack size Run reserves when the
// caller has no particular budget in mind.
const DefaultStackSize = 2048

// Parse tokenises and parses one named source string into an incomplete
// module. Name resolution and type checking happen later, in Analyse.
func Parse(moduleName, source string) (*ast.Module, []*errors.SyntaxError) {
	return parser.ParseModule(moduleName, source)
}

// ParseModules parses a set of named sources together, returning them
// alongside a topological module order (see DESIGN.md for why source
// order is sufficient here).
func ParseModules(moduleNames []string, sources map[string]string) ([]*ast.Module, []int, []*errors.SyntaxError) {
	return parser.ParseModules(moduleNames, sources)
}

// Analyse turns parsed modules into one complete.Program. order is the
// module processing order ParseModules returned; sources, parallel to
// modules, feeds source-context error rendering.
func Analyse(modules []*ast.Module, order []int, sources []string) (*complete.Program, []*errors.SyntaxError) {
	ordered := make([]*ast.Module, len(order))
	orderedSources := make([]string, len(order))
	for i, idx := range order {
		ordered[i] = modules[idx]
		if idx < len(sources) {
			orderedSources[i] = sources[idx]
		}
	}
	return semantic.Analyse(ordered, orderedSources)
}

// NewHostProgram returns a Program ready to receive extern-function
// registrations (via RegisterExternFunction) before any source is
// analysed against it.
func NewHostProgram() *complete.Program {
	return complete.NewProgram()
}

// AnalyseWithProgram is Analyse against a caller-supplied Program (see
// NewHostProgram), so host-registered extern functions are visible by
// name to the modules being analysed.
func AnalyseWithProgram(prog *complete.Program, modules []*ast.Module, order []int, sources []string) (*complete.Program, []*errors.SyntaxError) {
	ordered := make([]*ast.Module, len(order))
	orderedSources := make([]string, len(order))
	for i, idx := range order {
		ordered[i] = modules[idx]
		if idx < len(sources) {
			orderedSources[i] = sources[idx]
		}
	}
	return semantic.AnalyseWithProgram(prog, ordered, orderedSources)
}

// RegisterExternFunction binds a C-ABI function into prog's global scope
// under name, computing its parameter layout from paramTypes the same
// way a program function's parameter scope is laid out.
// Call this before Parse/Analyse so the name resolves in source.
func RegisterExternFunction(prog *complete.Program, name string, paramTypes []complete.TypeId, returnType complete.TypeId, caller complete.ExternCaller, fnPtr unsafe.Pointer) complete.FunctionId {
	size, align := 0, 1
	for _, t := range paramTypes {
		a := prog.TypeAlignment(t)
		if a > align {
			align = a
		}
		size = alignUp(size, a) + prog.TypeSize(t)
	}
	id := prog.AddExternFunction(complete.ExternFunction{
		ParameterTypes:     paramTypes,
		ParameterSize:      size,
		ParameterAlignment: align,
		ReturnType:         returnType,
		ABIName:            name,
		Caller:             caller,
		FunctionPointer:    fnPtr,
	})
	prog.GlobalScope.AddOverload(name).Functions = append(prog.GlobalScope.AddOverload(name).Functions, id)
	return id
}

func alignUp(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	if rem := offset % alignment; rem != 0 {
		return offset + (alignment - rem)
	}
	return offset
}

// Run executes program's main, returning its exit code. An unmet
// precondition is reported through the ordinary error return —
// *evaluator.UnmetPrecondition implements error — since this facade, unlike
// internal/evaluator itself, has no reason to force callers to handle
// the two fault axes separately.
func Run(program *complete.Program, stackSize int) (int32, error) {
	code, up, err := evaluator.Run(program, stackSize)
	if err != nil {
		return 0, err
	}
	if up != nil {
		return 0, up
	}
	return code, nil
}

// EvaluateConstantExpression evaluates expr — already analysed in a
// constant-expression context — into out.
func EvaluateConstantExpression(program *complete.Program, expr complete.Expression, out []byte) error {
	if up, err := evaluator.EvaluateConstantExpression(program, expr, out); err != nil {
		return err
	} else if up != nil {
		return up
	}
	return nil
}
