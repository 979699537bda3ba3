package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
)

func indexOf(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// resolveTemplateParamType mirrors resolveType but for a template's own
// declaration, where a type expression may mention one of the
// template's own parameters instead of naming a concrete type.
func (a *Analyzer) resolveTemplateParamType(te *ast.TypeExpression, templateParams []string) complete.TemplateParamType {
	if te == nil {
		return complete.TemplateParamType{BaseCase: complete.VoidTypeId}
	}
	switch {
	case te.IsTemplateParam:
		return complete.TemplateParamType{IsTemplateParameter: true, TemplateParameterIndex: te.TemplateParamIndex, IsMutable: te.IsMutable, IsReference: te.IsReference}
	case te.Named != nil:
		if idx, ok := indexOf(templateParams, te.Named.Name); ok {
			return complete.TemplateParamType{IsTemplateParameter: true, TemplateParameterIndex: idx, IsMutable: te.IsMutable, IsReference: te.IsReference}
		}
		return complete.TemplateParamType{BaseCase: a.resolveType(te)}
	case te.Pointer != nil:
		inner := a.resolveTemplateParamType(te.Pointer, templateParams)
		return complete.TemplateParamType{Pointee: &inner}
	case te.ArrayPointer != nil:
		inner := a.resolveTemplateParamType(te.ArrayPointer, templateParams)
		return complete.TemplateParamType{Pointee: &inner, IsArrayPointer: true}
	case te.Array != nil:
		inner := a.resolveTemplateParamType(te.Array, templateParams)
		size := a.constantArraySize(te.ArraySize)
		return complete.TemplateParamType{ElementType: &inner, Length: size}
	default:
		return complete.TemplateParamType{BaseCase: a.resolveType(te)}
	}
}

// bindTemplateParamType substitutes concrete type arguments into a
// TemplateParamType, producing a final complete.TypeId. Used once a
// template's type arguments (explicit or deduced) are known.
func (a *Analyzer) bindTemplateParamType(t complete.TemplateParamType, args []complete.TypeId) complete.TypeId {
	switch {
	case t.IsTemplateParameter:
		return args[t.TemplateParameterIndex].WithReference(t.IsMutable, t.IsReference)
	case t.Pointee != nil:
		pointee := a.bindTemplateParamType(*t.Pointee, args)
		if t.IsArrayPointer {
			return a.program.AddArrayPointerType(pointee)
		}
		return a.program.AddPointerType(pointee)
	case t.ElementType != nil:
		elem := a.bindTemplateParamType(*t.ElementType, args)
		return a.program.AddArrayType(elem, t.Length)
	default:
		return t.BaseCase.WithReference(t.IsMutable, t.IsReference)
	}
}
