package ast

import (
	"strings"

	"github.com/cwbudde/afil/internal/lexer"
)

// TypeExpression is the template-parameter-aware type grammar used
// anywhere a type appears in source: variable declarations, function
// signatures, struct members, template parameter lists. It is resolved
// into a complete.TypeId by the dependent-type resolver (§4.2 of the
// spec); until then a TemplateParameter reference cannot be looked up,
// only substituted positionally.
type TypeExpression struct {
	Position lexer.Position

	// Exactly one of the following is set.
	Named               *NamedType
	TemplateParamIndex  int // valid when IsTemplateParam
	IsTemplateParam     bool
	Pointer             *TypeExpression
	Array               *TypeExpression
	ArraySize           Expression // nil when ArraySizeDeduced
	ArraySizeDeduced    bool
	ArrayPointer        *TypeExpression
	TemplateInstantiate *TemplateInstantiationType

	IsMutable   bool
	IsReference bool
}

// NamedType is a plain identifier reference, possibly namespace-qualified.
type NamedType struct {
	Namespace []string
	Name      string
}

// TemplateInstantiationType is `Name<Arg, Arg, ...>` appearing in type
// position, e.g. `Pair<int, float>`.
type TemplateInstantiationType struct {
	Namespace []string
	Name      string
	Arguments []*TypeExpression
}

func (t *TypeExpression) Pos() lexer.Position { return t.Position }

func (t *TypeExpression) String() string {
	var sb strings.Builder
	if t.IsMutable {
		sb.WriteString("mut ")
	}
	if t.IsReference {
		sb.WriteString("&")
	}
	switch {
	case t.IsTemplateParam:
		sb.WriteString("$T")
	case t.Named != nil:
		sb.WriteString(qualifiedName(t.Named.Namespace, t.Named.Name))
	case t.Pointer != nil:
		sb.WriteString("*")
		sb.WriteString(t.Pointer.String())
	case t.Array != nil:
		sb.WriteString("[")
		if t.ArraySizeDeduced {
			sb.WriteString("_")
		} else if t.ArraySize != nil {
			sb.WriteString(t.ArraySize.String())
		}
		sb.WriteString("]")
		sb.WriteString(t.Array.String())
	case t.ArrayPointer != nil:
		sb.WriteString("[]")
		sb.WriteString(t.ArrayPointer.String())
	case t.TemplateInstantiate != nil:
		sb.WriteString(qualifiedName(t.TemplateInstantiate.Namespace, t.TemplateInstantiate.Name))
		sb.WriteString("<")
		for i, arg := range t.TemplateInstantiate.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString(">")
	}
	return sb.String()
}

func qualifiedName(namespace []string, name string) string {
	if len(namespace) == 0 {
		return name
	}
	return strings.Join(namespace, "::") + "::" + name
}
