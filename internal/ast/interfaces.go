// Package ast defines the incomplete (pre-analysis) syntax tree: the
// parser's output and the semantic analyser's input. Names, types and
// overloads are not yet resolved; every cross-reference is still a bare
// identifier or a dependent type expression.
package ast

import "github.com/cwbudde/afil/internal/lexer"

// Node is the base interface implemented by every incomplete AST node.
type Node interface {
	Pos() lexer.Position
	String() string
}

// Expression is any node that produces a value once analysed.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action once analysed.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a module-level construct: a function or a struct.
type Declaration interface {
	Node
	declarationNode()
	DeclName() string
}
