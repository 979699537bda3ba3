package complete

import (
	"strings"

	"github.com/cwbudde/afil/internal/ast"
)

// TemplateParamType is the template-parameter-aware type grammar used to
// describe a template's declared parameter/return types before any type
// arguments are bound: either a
// concrete BaseCase type, a reference to the Index'th template
// parameter, or one of Pointer/Array/ArrayPointer/TemplateInstantiation
// built recursively over an inner TemplateParamType.
type TemplateParamType struct {
	BaseCase              TypeId
	IsTemplateParameter   bool
	TemplateParameterIndex int

	Pointee      *TemplateParamType // Pointer, ArrayPointer
	IsArrayPointer bool

	ElementType *TemplateParamType // Array
	Length       int

	Instantiation *TemplateInstantiationType

	IsMutable   bool
	IsReference bool
}

// TemplateInstantiationType names a struct template and the
// (possibly still template-parameter-dependent) arguments to bind it
// with.
type TemplateInstantiationType struct {
	Template  StructTemplateId
	Arguments []TemplateParamType
}

// ResolvedTemplateParameter binds one template parameter name to a
// concrete type for one instantiation; the scope captured at the
// template's definition site is extended with one of these per
// parameter before the body is analysed.
type ResolvedTemplateParameter struct {
	Name string
	Type TypeId
}

// ScopeStackSnapshot is a captured, immutable copy of the enclosing
// scope stack at a template's definition site — templates instantiate
// against where they were *written*, not where they are *used*.
type ScopeStackSnapshot []*Scope

// ConceptConstraint binds one of a template's own type parameters (by
// index into its TemplateParams) to a concept: the name of a
// zero-parameter, single-type-argument boolean function template that
// must evaluate to true, at compile time, once instantiated with the
// candidate type bound to that parameter. Resolved lazily against
// whatever scope is active when the constrained template is
// instantiated, not captured eagerly, so a concept may be declared
// after the template it constrains.
type ConceptConstraint struct {
	ParamIndex int
	Name       string
}

// FunctionTemplate is an uninstantiated generic function: its ast body
// plus everything needed to bind type arguments and analyse the body
// as if it were an ordinary function in its captured definition scope.
type FunctionTemplate struct {
	Declaration     *ast.FunctionDecl
	ParameterTypes  []TemplateParamType
	ReturnType      TemplateParamType
	DefinitionScope ScopeStackSnapshot
	Concepts        []ConceptConstraint
	ABIName         string
}

// StructTemplate is an uninstantiated generic struct.
type StructTemplate struct {
	Declaration     *ast.StructDecl
	DefinitionScope ScopeStackSnapshot
	Concepts        []ConceptConstraint
	ABIName         string
}

// TemplateCache memoizes (template, type arguments) -> already
// instantiated id, so that repeated uses of e.g. `Pair<int>` across a
// program analyse the body exactly once.
type TemplateCache struct {
	functions map[string]FunctionId
	structs   map[string]TypeId
}

// NewTemplateCache returns an empty TemplateCache.
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{functions: make(map[string]FunctionId), structs: make(map[string]TypeId)}
}

func instantiationKey(id uint32, args []TypeId) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('t')
		writeUint(&b, uint64(a.Index))
		if a.IsMutable {
			b.WriteByte('m')
		}
		if a.IsReference {
			b.WriteByte('r')
		}
	}
	return keyPrefix(id) + b.String()
}

func keyPrefix(id uint32) string {
	var b strings.Builder
	writeUint(&b, uint64(id))
	b.WriteByte('|')
	return b.String()
}

func writeUint(b *strings.Builder, v uint64) {
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	b.Write(digits[i:])
}

// LookupFunction returns a previously-cached instantiation of template
// with the given bound type arguments.
func (c *TemplateCache) LookupFunction(template FunctionTemplateId, args []TypeId) (FunctionId, bool) {
	id, ok := c.functions[instantiationKey(template.Index, args)]
	return id, ok
}

// StoreFunction records the instantiation of template with args as fn,
// so future lookups return it without re-analysing the body.
func (c *TemplateCache) StoreFunction(template FunctionTemplateId, args []TypeId, fn FunctionId) {
	c.functions[instantiationKey(template.Index, args)] = fn
}

// LookupStruct returns a previously-cached instantiation of template
// with the given bound type arguments.
func (c *TemplateCache) LookupStruct(template StructTemplateId, args []TypeId) (TypeId, bool) {
	id, ok := c.structs[instantiationKey(template.Index, args)]
	return id, ok
}

// ReserveStruct installs a placeholder type id for (template, args)
// before the struct body is analysed, so a member referring back to the
// struct's own type (e.g. a self-referential destructor) resolves
// instead of recursing forever — two-phase instantiation.
func (c *TemplateCache) ReserveStruct(template StructTemplateId, args []TypeId, placeholder TypeId) {
	c.structs[instantiationKey(template.Index, args)] = placeholder
}
