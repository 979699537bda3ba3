package parser

import (
	"strconv"

	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/lexer"
)

// Precedence levels, lowest to highest binding.
const (
	LOWEST = iota
	ASSIGNMENT
	LOGIC_OR
	LOGIC_AND
	EQUALITY
	RELATIONAL
	SUM
	PRODUCT
	CAST
	PREFIX
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:    ASSIGNMENT,
	lexer.OR:        LOGIC_OR,
	lexer.AND:       LOGIC_AND,
	lexer.EQ:        EQUALITY,
	lexer.NOT_EQ:    EQUALITY,
	lexer.SPACESHIP: EQUALITY,
	lexer.LT:        RELATIONAL,
	lexer.LT_EQ:     RELATIONAL,
	lexer.GT:        RELATIONAL,
	lexer.GT_EQ:     RELATIONAL,
	lexer.PLUS:      SUM,
	lexer.MINUS:     SUM,
	lexer.STAR:      PRODUCT,
	lexer.SLASH:     PRODUCT,
	lexer.PERCENT:   PRODUCT,
	lexer.AS:        CAST,
	lexer.LPAREN:    CALL,
	lexer.DOT:       CALL,
	lexer.LBRACKET:  CALL,
}

func (c *cursor) peekPrecedence() int {
	if p, ok := precedences[c.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (c *cursor) curPrecedence() int {
	if p, ok := precedences[c.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

// parseExpression is the precedence-climbing entry point.
func (c *cursor) parseExpression(precedence int) ast.Expression {
	left := c.parsePrefix()
	if left == nil {
		return nil
	}

	for !c.curIs(lexer.SEMICOLON) && precedence < c.curPrecedence() {
		switch c.curToken.Type {
		case lexer.LPAREN:
			left = c.parseCall(left)
		case lexer.DOT:
			left = c.parseMember(left)
		case lexer.LBRACKET:
			left = c.parseIndex(left)
		case lexer.AS:
			left = c.parseCast(left)
		default:
			left = c.parseBinary(left)
		}
	}
	return left
}

func (c *cursor) parsePrefix() ast.Expression {
	pos := c.curToken.Pos
	switch c.curToken.Type {
	case lexer.INT:
		v, _ := strconv.ParseInt(c.curToken.Literal, 10, 64)
		c.advance()
		return &ast.IntLiteral{Position: pos, Value: v}
	case lexer.FLOAT:
		v, _ := strconv.ParseFloat(c.curToken.Literal, 64)
		c.advance()
		return &ast.FloatLiteral{Position: pos, Value: v}
	case lexer.TRUE:
		c.advance()
		return &ast.BoolLiteral{Position: pos, Value: true}
	case lexer.FALSE:
		c.advance()
		return &ast.BoolLiteral{Position: pos, Value: false}
	case lexer.CHAR:
		v := c.curToken.Literal[0]
		c.advance()
		return &ast.CharLiteral{Position: pos, Value: v}
	case lexer.STRING:
		v := c.curToken.Literal
		c.advance()
		return &ast.StringLiteral{Position: pos, Value: v}
	case lexer.MINUS, lexer.NOT:
		op := c.curToken.Literal
		c.advance()
		operand := c.parseExpression(PREFIX)
		return &ast.UnaryExpr{Position: pos, Operator: op, Operand: operand}
	case lexer.AMP:
		c.advance()
		operand := c.parseExpression(PREFIX)
		return &ast.AddressOfExpr{Position: pos, Operand: operand}
	case lexer.STAR:
		c.advance()
		operand := c.parseExpression(PREFIX)
		return &ast.DerefExpr{Position: pos, Operand: operand}
	case lexer.LPAREN:
		c.advance()
		expr := c.parseExpression(LOWEST)
		c.expect(lexer.RPAREN)
		return expr
	case lexer.TYPEOF:
		c.advance()
		c.expect(lexer.LPAREN)
		operand := c.parseExpression(LOWEST)
		c.expect(lexer.RPAREN)
		return &ast.TypeOfExpr{Position: pos, Operand: operand}
	case lexer.COMPILES:
		return c.parseCompiles()
	case lexer.IF:
		return c.parseIfExpr()
	case lexer.LBRACE:
		return c.parseBlockExpr()
	case lexer.IDENT:
		return c.parseIdentOrDesignatedInit()
	default:
		c.errorf("unexpected token %s in expression", c.curToken.Type)
		c.advance()
		return nil
	}
}

func (c *cursor) parseIdentOrDesignatedInit() ast.Expression {
	pos := c.curToken.Pos
	namespace, name := c.parseQualifiedName()

	var templateArgs []*ast.TypeExpression
	if c.curIs(lexer.LT) && looksLikeTemplateArgList(c) {
		c.advance()
		for !c.curIs(lexer.GT) {
			templateArgs = append(templateArgs, c.parseTypeExpression())
			if c.curIs(lexer.COMMA) {
				c.advance()
			}
		}
		c.expect(lexer.GT)
	}

	if c.curIs(lexer.LBRACE) {
		return c.parseDesignatedInit(pos, namespace, name, templateArgs)
	}

	return &ast.Identifier{Position: pos, Namespace: namespace, Name: name, TemplateArgs: templateArgs}
}

// looksLikeTemplateArgList performs a cheap lookahead: `Name<` is a
// template argument list only when followed eventually by `>(` or `>{`;
// otherwise `<` is the less-than operator. A syntax this small does not
// need a full speculative parse to disambiguate.
func looksLikeTemplateArgList(c *cursor) bool {
	if !c.peekIs(lexer.IDENT) && !c.peekIs(lexer.INT) {
		return false
	}
	probe := *c.l // scans on from the token after peekToken
	depth := 1
	for {
		switch probe.NextToken().Type {
		case lexer.LT:
			depth++
		case lexer.GT:
			if depth--; depth == 0 {
				next := probe.NextToken().Type
				return next == lexer.LPAREN || next == lexer.LBRACE
			}
		case lexer.EOF, lexer.SEMICOLON, lexer.LBRACE, lexer.RBRACE, lexer.RPAREN:
			return false
		}
	}
}

func (c *cursor) parseDesignatedInit(pos lexer.Position, namespace []string, name string, templateArgs []*ast.TypeExpression) ast.Expression {
	typeExpr := &ast.TypeExpression{Position: pos}
	if len(templateArgs) > 0 {
		typeExpr.TemplateInstantiate = &ast.TemplateInstantiationType{Namespace: namespace, Name: name, Arguments: templateArgs}
	} else {
		typeExpr.Named = &ast.NamedType{Namespace: namespace, Name: name}
	}

	c.expect(lexer.LBRACE)
	var fields []ast.DesignatedInitField
	for !c.curIs(lexer.RBRACE) && !c.curIs(lexer.EOF) {
		c.expect(lexer.DOT)
		fieldName := c.curToken.Literal
		c.expect(lexer.IDENT)
		c.expect(lexer.ASSIGN)
		value := c.parseExpression(LOWEST)
		fields = append(fields, ast.DesignatedInitField{Name: fieldName, Value: value})
		if c.curIs(lexer.COMMA) {
			c.advance()
		}
	}
	c.expect(lexer.RBRACE)

	return &ast.DesignatedInitExpr{Position: pos, Type: typeExpr, Fields: fields}
}

func (c *cursor) parseBinary(left ast.Expression) ast.Expression {
	pos := c.curToken.Pos
	op := c.curToken.Literal
	precedence := c.curPrecedence()
	c.advance()
	right := c.parseExpression(precedence)
	return &ast.BinaryExpr{Position: pos, Operator: op, Left: left, Right: right}
}

func (c *cursor) parseCast(operand ast.Expression) ast.Expression {
	pos := c.curToken.Pos
	c.advance() // 'as'
	ty := c.parseTypeExpression()
	return &ast.CastExpr{Position: pos, Operand: operand, Type: ty}
}

func (c *cursor) parseCall(callee ast.Expression) ast.Expression {
	pos := c.curToken.Pos
	c.expect(lexer.LPAREN)
	var args []ast.Expression
	for !c.curIs(lexer.RPAREN) && !c.curIs(lexer.EOF) {
		args = append(args, c.parseExpression(LOWEST))
		if c.curIs(lexer.COMMA) {
			c.advance()
		}
	}
	c.expect(lexer.RPAREN)
	return &ast.CallExpr{Position: pos, Callee: callee, Args: args}
}

func (c *cursor) parseMember(receiver ast.Expression) ast.Expression {
	pos := c.curToken.Pos
	c.expect(lexer.DOT)
	name := c.curToken.Literal
	c.expect(lexer.IDENT)
	return &ast.MemberExpr{Position: pos, Receiver: receiver, Member: name}
}

func (c *cursor) parseIndex(receiver ast.Expression) ast.Expression {
	pos := c.curToken.Pos
	c.expect(lexer.LBRACKET)
	index := c.parseExpression(LOWEST)
	c.expect(lexer.RBRACKET)
	return &ast.IndexExpr{Position: pos, Receiver: receiver, Index: index}
}

func (c *cursor) parseCompiles() ast.Expression {
	pos := c.curToken.Pos
	c.advance() // 'compiles'
	c.expect(lexer.LBRACE)

	var vars []ast.CompilesFakeVariable
	for c.curIs(lexer.LET) {
		c.advance()
		name := c.curToken.Literal
		c.expect(lexer.IDENT)
		c.expect(lexer.COLON)
		ty := c.parseTypeExpression()
		c.expect(lexer.SEMICOLON)
		vars = append(vars, ast.CompilesFakeVariable{Name: name, Type: ty})
	}

	var body []ast.Expression
	for !c.curIs(lexer.RBRACE) && !c.curIs(lexer.EOF) {
		body = append(body, c.parseExpression(LOWEST))
		if c.curIs(lexer.SEMICOLON) {
			c.advance()
		}
	}
	c.expect(lexer.RBRACE)

	return &ast.CompilesExpr{Position: pos, Variables: vars, Body: body}
}

func (c *cursor) parseIfExpr() ast.Expression {
	stmt := c.parseIfStmt()
	return &ast.IfExpr{Position: stmt.Position, Condition: stmt.Condition, Then: stmt.Then, Else: stmt.Else}
}

func (c *cursor) parseBlockExpr() ast.Expression {
	block := c.parseBlockStmt()
	return &ast.BlockExpr{Position: block.Position, Statements: block.Statements}
}
