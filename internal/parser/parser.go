package parser

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/errors"
	"github.com/cwbudde/afil/internal/lexer"
)

// ParseModule parses a single named source string into an incomplete
// ast.Module. It never resolves names or types.
func ParseModule(moduleName, source string) (*ast.Module, []*errors.SyntaxError) {
	l := lexer.New(source)
	c := newCursor(l, moduleName, source)

	mod := &ast.Module{Name: moduleName}
	for !c.curIs(lexer.EOF) {
		c.parseTopLevel(mod)
	}

	return mod, c.errs
}

// ParseModules parses a set of named sources and returns them together
// with a topological order. This grammar has no cross-module `use`
// graph (see DESIGN.md: globalised ids over a caller-supplied order), so
// the order returned is simply the order the names appear in moduleNames.
func ParseModules(moduleNames []string, sources map[string]string) ([]*ast.Module, []int, []*errors.SyntaxError) {
	modules := make([]*ast.Module, 0, len(moduleNames))
	var allErrs []*errors.SyntaxError

	for _, name := range moduleNames {
		mod, errs := ParseModule(name, sources[name])
		modules = append(modules, mod)
		allErrs = append(allErrs, errs...)
	}

	order := make([]int, len(modules))
	for i := range order {
		order[i] = i
	}

	return modules, order, allErrs
}
