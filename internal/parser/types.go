package parser

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/lexer"
)

// parseTypeExpression parses the template-parameter-aware type grammar:
// optional `mut`/`&` qualifiers, then one of a named type, `*T`, `[n]T`,
// `[]T` (array pointer), or `Name<Args>` (template instantiation).
func (c *cursor) parseTypeExpression() *ast.TypeExpression {
	pos := c.curToken.Pos
	te := &ast.TypeExpression{Position: pos}

	if c.curIs(lexer.MUT) {
		te.IsMutable = true
		te.IsReference = true
		c.advance()
	}
	if c.curIs(lexer.AMP) {
		te.IsReference = true
		c.advance()
	}

	switch {
	case c.curIs(lexer.STAR):
		c.advance()
		te.Pointer = c.parseTypeExpression()
	case c.curIs(lexer.LBRACKET):
		c.advance()
		if c.curIs(lexer.RBRACKET) {
			c.advance()
			te.ArrayPointer = c.parseTypeExpression()
		} else {
			sizeExpr := c.parseExpression(LOWEST)
			te.ArraySize = sizeExpr
			c.expect(lexer.RBRACKET)
			te.Array = c.parseTypeExpression()
		}
	case c.curIs(lexer.IDENT):
		namespace, name := c.parseQualifiedName()
		if c.curIs(lexer.LT) {
			c.advance()
			var args []*ast.TypeExpression
			for !c.curIs(lexer.GT) {
				args = append(args, c.parseTypeExpression())
				if c.curIs(lexer.COMMA) {
					c.advance()
				}
			}
			c.expect(lexer.GT)
			te.TemplateInstantiate = &ast.TemplateInstantiationType{Namespace: namespace, Name: name, Arguments: args}
		} else {
			te.Named = &ast.NamedType{Namespace: namespace, Name: name}
		}
	default:
		c.errorf("expected a type, got %s", c.curToken.Type)
	}

	return te
}

// parseQualifiedName consumes `a::b::c` returning (["a","b"], "c").
func (c *cursor) parseQualifiedName() ([]string, string) {
	var parts []string
	for {
		name := c.curToken.Literal
		c.expect(lexer.IDENT)
		if c.curIs(lexer.COLON) && c.peekIs(lexer.COLON) {
			parts = append(parts, name)
			c.advance()
			c.advance()
			continue
		}
		return parts, name
	}
}
