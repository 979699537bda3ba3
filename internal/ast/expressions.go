package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/afil/internal/lexer"
)

func (*IntLiteral) expressionNode()         {}
func (*FloatLiteral) expressionNode()       {}
func (*BoolLiteral) expressionNode()        {}
func (*CharLiteral) expressionNode()        {}
func (*StringLiteral) expressionNode()      {}
func (*TypeLiteral) expressionNode()        {}
func (*Identifier) expressionNode()         {}
func (*BinaryExpr) expressionNode()         {}
func (*UnaryExpr) expressionNode()          {}
func (*CallExpr) expressionNode()           {}
func (*MemberExpr) expressionNode()         {}
func (*IndexExpr) expressionNode()          {}
func (*AddressOfExpr) expressionNode()      {}
func (*DerefExpr) expressionNode()          {}
func (*CastExpr) expressionNode()           {}
func (*DesignatedInitExpr) expressionNode() {}
func (*CompilesExpr) expressionNode()       {}
func (*TypeOfExpr) expressionNode()         {}
func (*IfExpr) expressionNode()             {}
func (*BlockExpr) expressionNode()          {}

// IntLiteral is an integer literal, e.g. `42`.
type IntLiteral struct {
	Position lexer.Position
	Value    int64
}

func (n *IntLiteral) Pos() lexer.Position { return n.Position }
func (n *IntLiteral) String() string      { return fmt.Sprintf("%d", n.Value) }

// FloatLiteral is a floating point literal, e.g. `3.0`.
type FloatLiteral struct {
	Position lexer.Position
	Value    float64
}

func (n *FloatLiteral) Pos() lexer.Position { return n.Position }
func (n *FloatLiteral) String() string      { return fmt.Sprintf("%g", n.Value) }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Position lexer.Position
	Value    bool
}

func (n *BoolLiteral) Pos() lexer.Position { return n.Position }
func (n *BoolLiteral) String() string      { return fmt.Sprintf("%t", n.Value) }

// CharLiteral is a single-byte character literal, e.g. `'a'`.
type CharLiteral struct {
	Position lexer.Position
	Value    byte
}

func (n *CharLiteral) Pos() lexer.Position { return n.Position }
func (n *CharLiteral) String() string      { return fmt.Sprintf("'%c'", n.Value) }

// StringLiteral is a string literal. It is parsed, but the analyser
// rejects it with a diagnostic; no analysed form of a string exists.
type StringLiteral struct {
	Position lexer.Position
	Value    string
}

func (n *StringLiteral) Pos() lexer.Position { return n.Position }
func (n *StringLiteral) String() string      { return fmt.Sprintf("%q", n.Value) }

// TypeLiteral is a type name used directly as a value, e.g. `int` in `typeof(x) == int`.
type TypeLiteral struct {
	Position lexer.Position
	Type     *TypeExpression
}

func (n *TypeLiteral) Pos() lexer.Position { return n.Position }
func (n *TypeLiteral) String() string      { return n.Type.String() }

// Identifier is a bare name reference, possibly namespace-qualified,
// possibly followed by an explicit template argument list
// (`name<Args>`, used to name a function/struct template instantiation).
type Identifier struct {
	Position  lexer.Position
	Namespace []string
	Name      string
	TemplateArgs []*TypeExpression // non-nil only for explicit `name<Args>` forms
}

func (n *Identifier) Pos() lexer.Position { return n.Position }
func (n *Identifier) String() string      { return qualifiedName(n.Namespace, n.Name) }

// BinaryExpr is `lhs op rhs`, lowered at analysis time to a call on the
// operator's overload set (spelling such as "+", "==", "<=>").
type BinaryExpr struct {
	Position lexer.Position
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryExpr) Pos() lexer.Position { return n.Position }
func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Operator, n.Right.String())
}

// UnaryExpr is `op operand`, e.g. `-x`, `!b`.
type UnaryExpr struct {
	Position lexer.Position
	Operator string
	Operand  Expression
}

func (n *UnaryExpr) Pos() lexer.Position { return n.Position }
func (n *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", n.Operator, n.Operand.String())
}

// CallExpr is `callee(args...)`. Callee is parsed as any expression; the
// analyser accepts only an identifier (possibly namespace-qualified or
// carrying template arguments) and rejects every other callee.
type CallExpr struct {
	Position lexer.Position
	Callee   Expression
	Args     []Expression
}

func (n *CallExpr) Pos() lexer.Position { return n.Position }
func (n *CallExpr) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee.String(), strings.Join(args, ", "))
}

// MemberExpr is `receiver.member`.
type MemberExpr struct {
	Position lexer.Position
	Receiver Expression
	Member   string
}

func (n *MemberExpr) Pos() lexer.Position { return n.Position }
func (n *MemberExpr) String() string      { return fmt.Sprintf("%s.%s", n.Receiver.String(), n.Member) }

// IndexExpr is `receiver[index]`.
type IndexExpr struct {
	Position lexer.Position
	Receiver Expression
	Index    Expression
}

func (n *IndexExpr) Pos() lexer.Position { return n.Position }
func (n *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", n.Receiver.String(), n.Index.String())
}

// AddressOfExpr is `&operand`; operand must be an lvalue.
type AddressOfExpr struct {
	Position lexer.Position
	Operand  Expression
}

func (n *AddressOfExpr) Pos() lexer.Position { return n.Position }
func (n *AddressOfExpr) String() string      { return "&" + n.Operand.String() }

// DerefExpr is `*operand`; operand must have pointer type.
type DerefExpr struct {
	Position lexer.Position
	Operand  Expression
}

func (n *DerefExpr) Pos() lexer.Position { return n.Position }
func (n *DerefExpr) String() string      { return "*" + n.Operand.String() }

// CastExpr is `expr as Type`.
type CastExpr struct {
	Position lexer.Position
	Operand  Expression
	Type     *TypeExpression
}

func (n *CastExpr) Pos() lexer.Position { return n.Position }
func (n *CastExpr) String() string {
	return fmt.Sprintf("(%s as %s)", n.Operand.String(), n.Type.String())
}

// DesignatedInitField is one `member = expr` pair in a designated initialiser.
type DesignatedInitField struct {
	Name  string
	Value Expression
}

// DesignatedInitExpr is `Type{ .a = x, .b = y }`.
type DesignatedInitExpr struct {
	Position lexer.Position
	Type     *TypeExpression
	Fields   []DesignatedInitField
}

func (n *DesignatedInitExpr) Pos() lexer.Position { return n.Position }
func (n *DesignatedInitExpr) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = fmt.Sprintf(".%s = %s", f.Name, f.Value.String())
	}
	return fmt.Sprintf("%s{%s}", n.Type.String(), strings.Join(parts, ", "))
}

// CompilesFakeVariable is one `name: Type` pair declared inside a `compiles{}` probe.
type CompilesFakeVariable struct {
	Name string
	Type *TypeExpression
}

// CompilesExpr is `compiles { let a: T; let b: U; body-expr; ... }`: the
// SFINAE-style concept-checking mechanism (§4.5 "compiles").
type CompilesExpr struct {
	Position  lexer.Position
	Variables []CompilesFakeVariable
	Body      []Expression
}

func (n *CompilesExpr) Pos() lexer.Position { return n.Position }
func (n *CompilesExpr) String() string      { return "compiles{...}" }

// TypeOfExpr is `typeof(expr)`: a type-literal of expr's analysed type.
type TypeOfExpr struct {
	Position lexer.Position
	Operand  Expression
}

func (n *TypeOfExpr) Pos() lexer.Position { return n.Position }
func (n *TypeOfExpr) String() string      { return fmt.Sprintf("typeof(%s)", n.Operand.String()) }

// IfExpr is `if (cond) then_expr else else_expr` in expression position.
// The else arm is optional; with one, the expression's type is the then
// arm's type (the else arm's type is not checked against it), and
// without one it is void.
type IfExpr struct {
	Position  lexer.Position
	Condition Expression
	Then      Statement
	Else      Statement // nil if no else-branch
}

func (n *IfExpr) Pos() lexer.Position { return n.Position }
func (n *IfExpr) String() string {
	if n.Else != nil {
		return fmt.Sprintf("if (%s) %s else %s", n.Condition.String(), n.Then.String(), n.Else.String())
	}
	return fmt.Sprintf("if (%s) %s", n.Condition.String(), n.Then.String())
}

// BlockExpr is a brace-delimited statement sequence used in expression
// position; its value is the trailing expression statement if every path
// reaches one, otherwise it has type void (§4.5 "Statement block as expression").
type BlockExpr struct {
	Position   lexer.Position
	Statements []Statement
}

func (n *BlockExpr) Pos() lexer.Position { return n.Position }
func (n *BlockExpr) String() string      { return "{...}" }
