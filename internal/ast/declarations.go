package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/afil/internal/lexer"
)

func (*FunctionDecl) declarationNode() {}
func (*StructDecl) declarationNode()   {}

// Parameter is one `Type name` in a function's parameter list.
type Parameter struct {
	Name string
	Type *TypeExpression
}

// FunctionDecl is `let name = fn[<Params>](params) -> ReturnType { body };`.
// A non-empty TemplateParams marks it a function template (§3 "Template");
// the analyser captures the enclosing scope stack at the point of
// definition separately, at the point the template is registered.
type FunctionDecl struct {
	Position       lexer.Position
	Name           string
	TemplateParams []string // template parameter names, in declaration order; empty for a non-template function
	// TemplateConcepts holds, for each entry of TemplateParams at the
	// same index, the name of the concept function that parameter is
	// constrained by (`<T: Addable>`), or "" when unconstrained.
	TemplateConcepts []string
	Parameters       []Parameter
	ReturnType       *TypeExpression // nil to infer from the body's return statements
	Preconditions    []Expression
	Body             *BlockStmt
}

func (n *FunctionDecl) Pos() lexer.Position { return n.Position }
func (n *FunctionDecl) DeclName() string    { return n.Name }
func (n *FunctionDecl) IsTemplate() bool    { return len(n.TemplateParams) > 0 }
func (n *FunctionDecl) String() string {
	params := make([]string, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = fmt.Sprintf("%s %s", p.Type.String(), p.Name)
	}
	templ := ""
	if n.IsTemplate() {
		names := make([]string, len(n.TemplateParams))
		for i, name := range n.TemplateParams {
			names[i] = name
			if i < len(n.TemplateConcepts) && n.TemplateConcepts[i] != "" {
				names[i] += ": " + n.TemplateConcepts[i]
			}
		}
		templ = "<" + strings.Join(names, ", ") + ">"
	}
	ret := ""
	if n.ReturnType != nil {
		ret = " -> " + n.ReturnType.String()
	}
	return fmt.Sprintf("let %s = fn%s(%s)%s %s;", n.Name, templ, strings.Join(params, ", "), ret, n.Body.String())
}

// MemberDecl is one `Type name;` member inside a struct body.
type MemberDecl struct {
	Name string
	Type *TypeExpression
}

// StructDecl is `struct Name[<Params>] { members... };`.
type StructDecl struct {
	Position         lexer.Position
	Name             string
	TemplateParams   []string
	TemplateConcepts []string // parallel to TemplateParams; see FunctionDecl.TemplateConcepts
	Members          []MemberDecl
}

func (n *StructDecl) Pos() lexer.Position { return n.Position }
func (n *StructDecl) DeclName() string    { return n.Name }
func (n *StructDecl) IsTemplate() bool    { return len(n.TemplateParams) > 0 }
func (n *StructDecl) String() string {
	templ := ""
	if n.IsTemplate() {
		names := make([]string, len(n.TemplateParams))
		for i, name := range n.TemplateParams {
			names[i] = name
			if i < len(n.TemplateConcepts) && n.TemplateConcepts[i] != "" {
				names[i] += ": " + n.TemplateConcepts[i]
			}
		}
		templ = "<" + strings.Join(names, ", ") + ">"
	}
	members := make([]string, len(n.Members))
	for i, m := range n.Members {
		members[i] = fmt.Sprintf("%s %s;", m.Type.String(), m.Name)
	}
	return fmt.Sprintf("struct %s%s { %s }", n.Name, templ, strings.Join(members, " "))
}
