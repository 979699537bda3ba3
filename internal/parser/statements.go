package parser

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/lexer"
)

func (c *cursor) parseStatement() ast.Statement {
	switch c.curToken.Type {
	case lexer.LET:
		return c.parseVariableDecl()
	case lexer.RETURN:
		return c.parseReturnStmt()
	case lexer.IF:
		return c.parseIfStmt()
	case lexer.WHILE:
		return c.parseWhileStmt()
	case lexer.FOR:
		return c.parseForStmt()
	case lexer.BREAK:
		pos := c.curToken.Pos
		c.advance()
		c.expect(lexer.SEMICOLON)
		return &ast.BreakStmt{Position: pos}
	case lexer.CONTINUE:
		pos := c.curToken.Pos
		c.advance()
		c.expect(lexer.SEMICOLON)
		return &ast.ContinueStmt{Position: pos}
	case lexer.PRECONDITION:
		return c.parsePreconditionStmt()
	case lexer.LBRACE:
		return c.parseBlockStmt()
	default:
		pos := c.curToken.Pos
		expr := c.parseExpression(LOWEST)
		c.expect(lexer.SEMICOLON)
		return &ast.ExpressionStmt{Position: pos, Expr: expr}
	}
}

func (c *cursor) parseVariableDecl() *ast.VariableDecl {
	pos := c.curToken.Pos
	c.advance() // 'let'
	mutable := false
	if c.curIs(lexer.MUT) {
		mutable = true
		c.advance()
	}
	name := c.curToken.Literal
	c.expect(lexer.IDENT)

	var typeExpr *ast.TypeExpression
	if c.curIs(lexer.COLON) {
		c.advance()
		typeExpr = c.parseTypeExpression()
	}

	c.expect(lexer.ASSIGN)
	init := c.parseExpression(LOWEST)
	c.expect(lexer.SEMICOLON)

	return &ast.VariableDecl{Position: pos, Name: name, Mutable: mutable, Type: typeExpr, Init: init}
}

func (c *cursor) parseReturnStmt() *ast.ReturnStmt {
	pos := c.curToken.Pos
	c.advance() // 'return'
	if c.curIs(lexer.SEMICOLON) {
		c.advance()
		return &ast.ReturnStmt{Position: pos}
	}
	value := c.parseExpression(LOWEST)
	c.expect(lexer.SEMICOLON)
	return &ast.ReturnStmt{Position: pos, Value: value}
}

func (c *cursor) parseIfStmt() *ast.IfStmt {
	pos := c.curToken.Pos
	c.advance() // 'if'
	c.expect(lexer.LPAREN)
	cond := c.parseExpression(LOWEST)
	c.expect(lexer.RPAREN)
	// A branch is either a braced block or a single statement, which is
	// wrapped in a block of its own.
	branch := func() *ast.BlockStmt {
		if c.curIs(lexer.LBRACE) {
			return c.parseBlockStmt()
		}
		s := c.parseStatement()
		return &ast.BlockStmt{Position: s.Pos(), Statements: []ast.Statement{s}}
	}
	then := branch()

	var elseStmt ast.Statement
	if c.curIs(lexer.ELSE) {
		c.advance()
		if c.curIs(lexer.IF) {
			elseStmt = c.parseIfStmt()
		} else {
			elseStmt = branch()
		}
	}

	return &ast.IfStmt{Position: pos, Condition: cond, Then: then, Else: elseStmt}
}

func (c *cursor) parseWhileStmt() *ast.WhileStmt {
	pos := c.curToken.Pos
	c.advance() // 'while'
	c.expect(lexer.LPAREN)
	cond := c.parseExpression(LOWEST)
	c.expect(lexer.RPAREN)
	body := c.parseBlockStmt()
	return &ast.WhileStmt{Position: pos, Condition: cond, Body: body}
}

func (c *cursor) parseForStmt() *ast.ForStmt {
	pos := c.curToken.Pos
	c.advance() // 'for'
	c.expect(lexer.LPAREN)

	var init ast.Statement
	if c.curIs(lexer.LET) {
		init = c.parseVariableDecl()
	} else if !c.curIs(lexer.SEMICOLON) {
		exprPos := c.curToken.Pos
		expr := c.parseExpression(LOWEST)
		c.expect(lexer.SEMICOLON)
		init = &ast.ExpressionStmt{Position: exprPos, Expr: expr}
	} else {
		c.advance()
	}

	cond := c.parseExpression(LOWEST)
	c.expect(lexer.SEMICOLON)

	var step ast.Expression
	if !c.curIs(lexer.RPAREN) {
		step = c.parseExpression(LOWEST)
	}
	c.expect(lexer.RPAREN)

	body := c.parseBlockStmt()
	return &ast.ForStmt{Position: pos, Init: init, Condition: cond, Step: step, Body: body}
}

func (c *cursor) parsePreconditionStmt() *ast.PreconditionStmt {
	pos := c.curToken.Pos
	c.advance() // 'precondition'
	c.expect(lexer.LPAREN)
	cond := c.parseExpression(LOWEST)
	c.expect(lexer.RPAREN)
	c.expect(lexer.SEMICOLON)
	return &ast.PreconditionStmt{Position: pos, Cond: cond}
}

func (c *cursor) parseBlockStmt() *ast.BlockStmt {
	pos := c.curToken.Pos
	c.expect(lexer.LBRACE)
	var stmts []ast.Statement
	for !c.curIs(lexer.RBRACE) && !c.curIs(lexer.EOF) {
		stmts = append(stmts, c.parseStatement())
	}
	c.expect(lexer.RBRACE)
	return &ast.BlockStmt{Position: pos, Statements: stmts}
}
