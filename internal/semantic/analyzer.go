package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/errors"
	"github.com/cwbudde/afil/internal/lexer"
)

// functionContext tracks the function currently being analysed, so
// return-statement and loop-statement analysis knows what to check
// against.
type functionContext struct {
	returnType complete.TypeId
	loopDepth  int
}

// Analyzer drives semantic analysis of one or more ast.Module values
// into a single complete.Program. One Analyzer is
// used for a whole program: global declarations from every module share
// the same global scope and Program.
type Analyzer struct {
	program *complete.Program
	scopes  *scopeStack

	moduleName string
	source     string

	errs []*errors.SyntaxError

	fn *functionContext

	// pendingFunctions holds ast function declarations registered by name
	// in pass 1 (so forward references resolve) but not yet
	// body-analysed; pass 2 walks these. Struct declarations need no such
	// list: their member types are resolved directly in pass 1, since
	// this grammar never lets a struct's member type forward-reference a
	// struct declared later in the same module.
	pendingFunctions []pendingFunction
}

type pendingFunction struct {
	decl       *ast.FunctionDecl
	id         complete.FunctionId
	moduleName string
	source     string
}

// New returns an Analyzer building onto a fresh complete.Program.
func New() *Analyzer {
	return NewWithProgram(complete.NewProgram())
}

// NewWithProgram returns an Analyzer building onto prog instead of a
// fresh one — for embedders that register extern functions (and their
// global-scope bindings) before source is analysed against them.
func NewWithProgram(prog *complete.Program) *Analyzer {
	return &Analyzer{program: prog, scopes: newScopeStack(&prog.GlobalScope.Scope)}
}

func (a *Analyzer) errorf(pos lexer.Position, kind errors.Kind, format string, args ...any) {
	a.errs = append(a.errs, errors.NewSyntaxError(pos, a.moduleName, a.source, kind, format, args...))
}

// Analyse runs full semantic analysis over modules (already parsed, in
// the order given) and returns the resulting Program. A non-nil error
// slice means the Program is incomplete and must not be evaluated.
func Analyse(modules []*ast.Module, sources []string) (*complete.Program, []*errors.SyntaxError) {
	return AnalyseWithProgram(complete.NewProgram(), modules, sources)
}

// AnalyseWithProgram is Analyse against a caller-supplied Program, so
// extern functions registered into it beforehand (and bound into its
// GlobalScope's overload sets) are visible to the modules being
// analysed.
func AnalyseWithProgram(prog *complete.Program, modules []*ast.Module, sources []string) (*complete.Program, []*errors.SyntaxError) {
	a := NewWithProgram(prog)
	for i, mod := range modules {
		a.moduleName = mod.Name
		if i < len(sources) {
			a.source = sources[i]
		}
		a.registerModuleSignatures(mod)
	}
	for i, mod := range modules {
		a.moduleName = mod.Name
		if i < len(sources) {
			a.source = sources[i]
		}
		a.analyseGlobalVariables(mod)
	}
	a.analysePendingFunctions()
	a.resolveMain()
	return a.program, a.errs
}

func (a *Analyzer) resolveMain() {
	res := lookupName(a.scopes, "main")
	if res.kind != lookupOverloadSet {
		return
	}
	set := res.overload.OverloadSets["main"]
	if len(set.Functions) > 0 {
		a.program.MainFunction = set.Functions[0]
	}
}
