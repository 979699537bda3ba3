package complete

import "fmt"

// Program is the complete, analysed afil program: every type, struct,
// function (program/extern/intrinsic), and template the analyser has
// produced, plus the global scope and the entry point. It is the single
// value handed from the semantic package to the evaluator package.
type Program struct {
	Types              []Type
	Structs            []Struct
	StructTemplates    []StructTemplate
	FunctionTemplates  []FunctionTemplate
	OverloadSetTypes   []OverloadSet
	Functions          []Function
	ExternFunctions    []ExternFunction
	Intrinsics         []IntrinsicFunction
	IntrinsicTemplates []IntrinsicFunctionTemplate

	GlobalScope          *Namespace
	GlobalInitStatements []Statement
	MainFunction         FunctionId

	Cache *TemplateCache

	pointerTypes      map[TypeId]uint32
	arrayPointerTypes map[TypeId]uint32
	arrayTypes        map[arrayKey]uint32
}

type arrayKey struct {
	element TypeId
	length  int
}

// NewProgram returns a Program pre-populated with the ten built-in types
// and the intrinsic operators over them.
func NewProgram() *Program {
	p := &Program{
		GlobalScope:       NewNamespace(""),
		Cache:             NewTemplateCache(),
		pointerTypes:      make(map[TypeId]uint32),
		arrayPointerTypes: make(map[TypeId]uint32),
		arrayTypes:        make(map[arrayKey]uint32),
	}
	p.Types = builtinTypes()
	registerIntrinsicOperators(p)
	return p
}

// TypeWithId returns the Type backing id, ignoring its mutable/reference
// bits.
func (p *Program) TypeWithId(id TypeId) *Type { return &p.Types[id.Index] }

// PointerWidth is the size and alignment in bytes of every reference and
// pointer value the evaluator lays out on its stack.
const PointerWidth = 8

// TypeSize returns the size in bytes of id's value representation
// (references are always pointer-sized regardless of the pointee's
// size).
func (p *Program) TypeSize(id TypeId) int {
	if id.IsReference {
		return PointerWidth
	}
	return p.TypeWithId(id).Size
}

// TypeAlignment returns the alignment in bytes of id's value
// representation.
func (p *Program) TypeAlignment(id TypeId) int {
	if id.IsReference {
		return PointerWidth
	}
	return p.TypeWithId(id).Alignment
}

// ABIName returns the external, mangled name of id, used by extern
// function lookup and diagnostics.
func (p *Program) ABIName(id TypeId) string { return p.TypeWithId(id).ABIName }

// AddPointerType returns the (deduplicated) pointer-to-pointee type,
// registering a new Type entry the first time pointee is seen.
func (p *Program) AddPointerType(pointee TypeId) TypeId {
	key := pointee
	if idx, ok := p.pointerTypes[key]; ok {
		return TypeId{Index: idx}
	}
	idx := uint32(len(p.Types))
	p.Types = append(p.Types, Type{
		Kind:      KindPointer,
		Size:      8,
		Alignment: 8,
		ABIName:   fmt.Sprintf("*%s", p.ABIName(pointee)),
		Pointee:   pointee,
	})
	p.pointerTypes[key] = idx
	return TypeId{Index: idx}
}

// AddArrayPointerType returns the (deduplicated) array-pointer-to-
// pointee type: a pointer paired with a runtime length, as produced by
// decaying a fixed-size array.
func (p *Program) AddArrayPointerType(pointee TypeId) TypeId {
	key := pointee
	if idx, ok := p.arrayPointerTypes[key]; ok {
		return TypeId{Index: idx}
	}
	idx := uint32(len(p.Types))
	p.Types = append(p.Types, Type{
		Kind:      KindArrayPointer,
		Size:      16, // pointer + length
		Alignment: 8,
		ABIName:   fmt.Sprintf("[]%s", p.ABIName(pointee)),
		Pointee:   pointee,
	})
	p.arrayPointerTypes[key] = idx
	return TypeId{Index: idx}
}

// AddArrayType returns the (deduplicated) fixed-length array-of-element
// type.
func (p *Program) AddArrayType(element TypeId, length int) TypeId {
	key := arrayKey{element, length}
	if idx, ok := p.arrayTypes[key]; ok {
		return TypeId{Index: idx}
	}
	elemSize := p.TypeSize(element)
	elemAlign := p.TypeAlignment(element)
	idx := uint32(len(p.Types))
	p.Types = append(p.Types, Type{
		Kind:        KindArray,
		Size:        elemSize * length,
		Alignment:   elemAlign,
		ABIName:     fmt.Sprintf("[%d]%s", length, p.ABIName(element)),
		ElementType: element,
		Length:      length,
	})
	p.arrayTypes[key] = idx
	return TypeId{Index: idx}
}

// AddStructType registers a brand-new struct type and its Struct entry,
// returning the new TypeId. Struct types are never deduplicated by
// shape — two structs with identical members are still distinct types —
// so this always appends.
func (p *Program) AddStructType(name string, members []MemberVariable) (TypeId, *Struct) {
	size, align := 0, 1
	for i := range members {
		a := p.TypeAlignment(members[i].Type)
		if a > align {
			align = a
		}
		offset := alignUp(size, a)
		members[i].Offset = offset
		size = offset + p.TypeSize(members[i].Type)
	}
	size = alignUp(size, align)

	structIdx := len(p.Structs)
	p.Structs = append(p.Structs, Struct{
		Members:            members,
		Destructor:         InvalidFunctionId,
		DefaultConstructor: InvalidFunctionId,
		CopyConstructor:    InvalidFunctionId,
		MoveConstructor:    InvalidFunctionId,
	})

	typeIdx := uint32(len(p.Types))
	p.Types = append(p.Types, Type{
		Kind:        KindStruct,
		Size:        size,
		Alignment:   align,
		ABIName:     name,
		StructIndex: structIdx,
	})
	return TypeId{Index: typeIdx}, &p.Structs[structIdx]
}

// IsStruct reports whether id names a struct type.
func (p *Program) IsStruct(id TypeId) bool { return p.TypeWithId(id).Kind == KindStruct }

// StructFor returns the Struct backing a struct-typed id.
func (p *Program) StructFor(id TypeId) *Struct {
	return &p.Structs[p.TypeWithId(id).StructIndex]
}

// IsPointer reports whether id names a pointer type.
func (p *Program) IsPointer(id TypeId) bool { return p.TypeWithId(id).Kind == KindPointer }

// IsArray reports whether id names a fixed-length array type.
func (p *Program) IsArray(id TypeId) bool { return p.TypeWithId(id).Kind == KindArray }

// IsArrayPointer reports whether id names an array-pointer type.
func (p *Program) IsArrayPointer(id TypeId) bool {
	return p.TypeWithId(id).Kind == KindArrayPointer
}

// AddFunction appends a fully-analysed function and returns its id.
func (p *Program) AddFunction(fn Function) FunctionId {
	idx := uint32(len(p.Functions))
	p.Functions = append(p.Functions, fn)
	return FunctionId{Kind: FunctionKindProgram, Index: idx}
}

// AddExternFunction appends an imported extern function and returns its id.
func (p *Program) AddExternFunction(fn ExternFunction) FunctionId {
	idx := uint32(len(p.ExternFunctions))
	p.ExternFunctions = append(p.ExternFunctions, fn)
	return FunctionId{Kind: FunctionKindExtern, Index: idx}
}

// AddIntrinsic appends a built-in function and returns its id.
func (p *Program) AddIntrinsic(fn IntrinsicFunction) FunctionId {
	idx := uint32(len(p.Intrinsics))
	p.Intrinsics = append(p.Intrinsics, fn)
	return FunctionId{Kind: FunctionKindIntrinsic, Index: idx}
}

// ReturnTypeOf returns the declared return type of any callable,
// regardless of kind.
func (p *Program) ReturnTypeOf(fn FunctionId) TypeId {
	switch fn.Kind {
	case FunctionKindProgram:
		return p.Functions[fn.Index].ReturnType
	case FunctionKindExtern:
		return p.ExternFunctions[fn.Index].ReturnType
	default:
		return p.Intrinsics[fn.Index].ReturnType
	}
}

// ParameterTypesOf returns the declared parameter types of any
// callable, regardless of kind.
func (p *Program) ParameterTypesOf(fn FunctionId) []TypeId {
	switch fn.Kind {
	case FunctionKindProgram:
		f := &p.Functions[fn.Index]
		types := make([]TypeId, 0, f.ParameterCount)
		for i := 0; i < f.ParameterCount; i++ {
			types = append(types, f.Scope.Variables[i].Type)
		}
		return types
	case FunctionKindExtern:
		return p.ExternFunctions[fn.Index].ParameterTypes
	default:
		return p.Intrinsics[fn.Index].ParameterTypes
	}
}

// IsCallableAtCompileTime reports whether fn may be invoked by the
// compile-time evaluator: every program function is
// compile-time callable unless it calls something that isn't; extern
// functions never are; intrinsics always are.
func (p *Program) IsCallableAtCompileTime(fn FunctionId) bool {
	switch fn.Kind {
	case FunctionKindProgram:
		return p.Functions[fn.Index].CallableAtCompileTime
	case FunctionKindExtern:
		return false
	default:
		return true
	}
}

// IsCallableAtRuntime reports whether fn may be invoked by the runtime
// evaluator.
func (p *Program) IsCallableAtRuntime(fn FunctionId) bool {
	switch fn.Kind {
	case FunctionKindProgram:
		return p.Functions[fn.Index].CallableAtRuntime
	case FunctionKindExtern:
		return true
	default:
		return true
	}
}

// DestructorFor returns the destructor of a struct-typed id and whether
// one applies (trivial structs have none to call).
func (p *Program) DestructorFor(id TypeId) (FunctionId, bool) {
	if !p.IsStruct(id) {
		return InvalidFunctionId, false
	}
	d := p.StructFor(id).Destructor
	return d, d.IsValid()
}

// IsTriviallyDestructible reports whether id needs no destructor call at
// all — every built-in type, pointer, and array/struct composed
// entirely of such.
func (p *Program) IsTriviallyDestructible(id TypeId) bool {
	t := p.TypeWithId(id)
	switch t.Kind {
	case KindStruct:
		return p.StructFor(id).IsTrivial()
	case KindArray:
		return p.IsTriviallyDestructible(t.ElementType)
	default:
		return true
	}
}
