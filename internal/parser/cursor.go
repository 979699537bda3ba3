// Package parser is a recursive-descent, precedence-climbing parser that
// turns a lexer.Lexer's token stream into the incomplete AST (internal/ast).
// It performs no name or type resolution; that is the semantic analyser's job.
package parser

import (
	"github.com/cwbudde/afil/internal/errors"
	"github.com/cwbudde/afil/internal/lexer"
)

// cursor wraps a lexer with one token of lookahead, the shape every
// grammar-area file in this package is written against.
type cursor struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	moduleName string
	source     string
	errs       []*errors.SyntaxError
}

func newCursor(l *lexer.Lexer, moduleName, source string) *cursor {
	c := &cursor{l: l, moduleName: moduleName, source: source}
	c.advance()
	c.advance()
	return c
}

func (c *cursor) advance() {
	c.curToken = c.peekToken
	c.peekToken = c.l.NextToken()
}

func (c *cursor) curIs(t lexer.TokenType) bool  { return c.curToken.Type == t }
func (c *cursor) peekIs(t lexer.TokenType) bool { return c.peekToken.Type == t }

// expect advances past the current token if it has type t, otherwise
// records a structured error and leaves the cursor in place so the caller
// can attempt to recover.
func (c *cursor) expect(t lexer.TokenType) bool {
	if c.curIs(t) {
		c.advance()
		return true
	}
	c.errorf("expected %s, got %s (%q)", t, c.curToken.Type, c.curToken.Literal)
	return false
}

func (c *cursor) errorf(format string, args ...any) {
	c.errs = append(c.errs, errors.NewSyntaxError(c.curToken.Pos, c.moduleName, c.source, errors.KindUnexpected, format, args...))
}
