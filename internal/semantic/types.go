package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/errors"
	"github.com/cwbudde/afil/internal/lexer"
)

// resolveType turns a parsed ast.TypeExpression into a complete.TypeId,
// registering any structural type (pointer/array/array-pointer) it
// needs along the way. Instantiated template bodies use it too, with the
// template parameters bound as Types in a scope pushed for the
// instantiation; template signatures, whose type expressions may still
// mention unbound template parameters, use resolveTemplateParamType.
func (a *Analyzer) resolveType(te *ast.TypeExpression) complete.TypeId {
	if te == nil {
		return complete.VoidTypeId
	}
	switch {
	case te.Pointer != nil:
		return a.program.AddPointerType(a.resolveType(te.Pointer))
	case te.Array != nil:
		size := a.constantArraySize(te.ArraySize)
		elem := a.resolveType(te.Array)
		return a.program.AddArrayType(elem, size)
	case te.ArrayPointer != nil:
		elem := a.resolveType(te.ArrayPointer)
		return a.program.AddArrayPointerType(elem)
	case te.TemplateInstantiate != nil:
		return a.instantiateStructTemplateByName(te)
	case te.Named != nil:
		id := a.resolveNamedType(te.Named, te.Position)
		return id.WithReference(te.IsMutable, te.IsReference)
	case te.IsTemplateParam:
		a.errorf(te.Position, errors.KindInvalid, "template parameter type used outside a template")
		return complete.NoneTypeId
	default:
		a.errorf(te.Position, errors.KindInvalid, "malformed type expression")
		return complete.NoneTypeId
	}
}

func (a *Analyzer) resolveNamedType(named *ast.NamedType, pos lexer.Position) complete.TypeId {
	switch named.Name {
	case "int":
		return complete.IntTypeId
	case "float":
		return complete.FloatTypeId
	case "bool":
		return complete.BoolTypeId
	case "char":
		return complete.CharTypeId
	case "byte":
		return complete.ByteTypeId
	case "void":
		return complete.VoidTypeId
	case "type":
		return complete.TypeTypeId
	}
	res := lookupQualifiedName(a.scopes, named.Namespace, named.Name)
	if res.kind != lookupType {
		a.errorf(pos, errors.KindUnknownIdentifier, "unknown type %q", named.Name)
		return complete.NoneTypeId
	}
	return res.typ
}

// constantArraySize analyses an array-size expression at compile time
// and returns its int value, or 0 (with an error recorded) if it is not
// a constant int expression.
func (a *Analyzer) constantArraySize(sizeExpr ast.Expression) int {
	if sizeExpr == nil {
		return 0
	}
	expr := a.analyzeExpression(sizeExpr, complete.IntTypeId)
	v, ok := a.evaluateConstantInt(expr)
	if !ok {
		a.errorf(sizeExpr.Pos(), errors.KindNotConstantSize, "array size must be a compile-time constant int")
		return 0
	}
	return v
}
