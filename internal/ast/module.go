package ast

// Module is one parsed, unresolved source file: a flat list of top-level
// declarations plus global variable declarations, in source order. The
// analyser receives a slice of Modules together with a topological
// processing order and assigns globalised ids as it walks them.
type Module struct {
	Name              string
	Declarations      []Declaration
	GlobalVariables   []*VariableDecl
}
