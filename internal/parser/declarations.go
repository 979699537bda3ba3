package parser

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/lexer"
)

// parseTopLevel parses one `let name = fn...;` or `struct Name { ... }`
// declaration, or a bare `let name = expr;` global variable.
func (c *cursor) parseTopLevel(mod *ast.Module) {
	switch c.curToken.Type {
	case lexer.STRUCT:
		mod.Declarations = append(mod.Declarations, c.parseStructDecl())
	case lexer.LET:
		c.parseTopLevelLet(mod)
	default:
		c.errorf("expected a top-level declaration, got %s", c.curToken.Type)
		c.advance()
	}
}

// operatorTokens are the tokens `let operator <tok> = fn ...;` accepts
// as an operator's spelling. Unary and binary forms of the same
// spelling (e.g. unary and binary "-") share one declaration name; the
// analyser tells them apart by the declared parameter count.
var operatorTokens = map[lexer.TokenType]bool{
	lexer.PLUS: true, lexer.MINUS: true, lexer.STAR: true, lexer.SLASH: true, lexer.PERCENT: true,
	lexer.EQ: true, lexer.NOT_EQ: true, lexer.LT: true, lexer.LT_EQ: true, lexer.GT: true, lexer.GT_EQ: true,
	lexer.SPACESHIP: true, lexer.AND: true, lexer.OR: true, lexer.NOT: true,
}

func (c *cursor) parseTopLevelLet(mod *ast.Module) {
	pos := c.curToken.Pos
	c.advance() // 'let'

	var name string
	if c.curIs(lexer.OPERATOR) {
		c.advance()
		if !operatorTokens[c.curToken.Type] {
			c.errorf("expected an operator after 'operator', got %s", c.curToken.Type)
		}
		name = c.curToken.Literal
		c.advance()
	} else {
		name = c.curToken.Literal
		c.expect(lexer.IDENT)
	}
	c.expect(lexer.ASSIGN)

	if c.curIs(lexer.FN) {
		mod.Declarations = append(mod.Declarations, c.parseFunctionDecl(pos, name))
		return
	}

	init := c.parseExpression(LOWEST)
	c.expect(lexer.SEMICOLON)
	mod.GlobalVariables = append(mod.GlobalVariables, &ast.VariableDecl{Position: pos, Name: name, Init: init})
}

func (c *cursor) parseFunctionDecl(pos lexer.Position, name string) *ast.FunctionDecl {
	c.advance() // 'fn'

	templateParams, templateConcepts := c.parseTemplateParamList()

	c.expect(lexer.LPAREN)
	var params []ast.Parameter
	for !c.curIs(lexer.RPAREN) && !c.curIs(lexer.EOF) {
		paramType := c.parseTypeExpression()
		paramName := c.curToken.Literal
		c.expect(lexer.IDENT)
		params = append(params, ast.Parameter{Name: paramName, Type: paramType})
		if c.curIs(lexer.COMMA) {
			c.advance()
		}
	}
	c.expect(lexer.RPAREN)

	var returnType *ast.TypeExpression
	if c.curIs(lexer.ARROW) {
		c.advance()
		returnType = c.parseTypeExpression()
	}

	body := c.parseBlockStmt()
	c.expect(lexer.SEMICOLON)

	var preconditions []ast.Expression
	var filtered []ast.Statement
	for _, s := range body.Statements {
		if p, ok := s.(*ast.PreconditionStmt); ok {
			preconditions = append(preconditions, p.Cond)
		} else {
			filtered = append(filtered, s)
		}
	}
	body.Statements = filtered

	return &ast.FunctionDecl{
		Position:         pos,
		Name:             name,
		TemplateParams:   templateParams,
		TemplateConcepts: templateConcepts,
		Parameters:       params,
		ReturnType:       returnType,
		Preconditions:    preconditions,
		Body:             body,
	}
}

func (c *cursor) parseStructDecl() *ast.StructDecl {
	pos := c.curToken.Pos
	c.advance() // 'struct'
	name := c.curToken.Literal
	c.expect(lexer.IDENT)

	templateParams, templateConcepts := c.parseTemplateParamList()

	c.expect(lexer.LBRACE)
	var members []ast.MemberDecl
	for !c.curIs(lexer.RBRACE) && !c.curIs(lexer.EOF) {
		memberType := c.parseTypeExpression()
		memberName := c.curToken.Literal
		c.expect(lexer.IDENT)
		c.expect(lexer.SEMICOLON)
		members = append(members, ast.MemberDecl{Name: memberName, Type: memberType})
	}
	c.expect(lexer.RBRACE)
	if c.curIs(lexer.SEMICOLON) {
		c.advance()
	}

	return &ast.StructDecl{
		Position:         pos,
		Name:             name,
		TemplateParams:   templateParams,
		TemplateConcepts: templateConcepts,
		Members:          members,
	}
}

// parseTemplateParamList parses an optional `<T, U: Concept, ...>`
// template-parameter list shared by function and struct declarations.
// A parameter optionally names a concept constraint after a colon
// (`T: Addable`); TemplateConcepts holds "" at the parameters left
// unconstrained, parallel to the returned names.
func (c *cursor) parseTemplateParamList() ([]string, []string) {
	if !c.curIs(lexer.LT) {
		return nil, nil
	}
	c.advance()
	var names, concepts []string
	for !c.curIs(lexer.GT) {
		names = append(names, c.curToken.Literal)
		c.expect(lexer.IDENT)
		concept := ""
		if c.curIs(lexer.COLON) {
			c.advance()
			concept = c.curToken.Literal
			c.expect(lexer.IDENT)
		}
		concepts = append(concepts, concept)
		if c.curIs(lexer.COMMA) {
			c.advance()
		}
	}
	c.expect(lexer.GT)
	return names, concepts
}
