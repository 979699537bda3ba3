// Package complete is the typed, fully-resolved program representation —
// the analyser's output and the evaluator's input. Every
// cross-reference between entities (a struct's destructor, a function's
// return type, a template's cached instantiation) is a small stable id
// into one of Program's vectors, never an interior pointer: this removes
// the cyclic ownership a struct/its-destructor/its-own-type would
// otherwise require, and lets the analyser grow Program monotonically
// while other code holds ids into it.
package complete

// TypeId is a tagged id of a registered Type plus the two bits every
// binding in the language carries: is_mutable and is_reference. The
// invariant is_mutable ⇒ is_reference always holds; it is checked by
// MakeTypeId and never bypassed by field assignment elsewhere in this
// package.
type TypeId struct {
	Index       uint32
	IsMutable   bool
	IsReference bool
}

// MakeTypeId builds a TypeId, forcing the invariant is_mutable ⇒ is_reference.
func MakeTypeId(index uint32, mutable, reference bool) TypeId {
	return TypeId{Index: index, IsMutable: mutable, IsReference: reference || mutable}
}

// WithReference returns a copy of t with the reference/mutable bits replaced.
func (t TypeId) WithReference(mutable, reference bool) TypeId {
	return MakeTypeId(t.Index, mutable, reference)
}

// Value strips the reference/mutable bits, the type one gets by reading through a reference.
func (t TypeId) Value() TypeId { return TypeId{Index: t.Index} }

// Distinguished built-in type indices. Slots 0..9 of Program.Types are
// always these, in this order, so TypeId literals referring to them are
// valid before any user code has been analysed.
const (
	indexNone uint32 = iota
	indexDeduce
	indexVoid
	indexInt
	indexFloat
	indexBool
	indexChar
	indexByte
	indexType
	indexNull
	firstUserTypeIndex
)

var (
	NoneTypeId   = TypeId{Index: indexNone}
	DeduceTypeId = TypeId{Index: indexDeduce}
	VoidTypeId   = TypeId{Index: indexVoid}
	IntTypeId    = TypeId{Index: indexInt}
	FloatTypeId  = TypeId{Index: indexFloat}
	BoolTypeId   = TypeId{Index: indexBool}
	CharTypeId   = TypeId{Index: indexChar}
	ByteTypeId   = TypeId{Index: indexByte}
	TypeTypeId   = TypeId{Index: indexType}
	NullTypeId   = TypeId{Index: indexNull}
)

// IsNone reports whether t is the distinguished "no type" placeholder.
func (t TypeId) IsNone() bool { return t.Index == indexNone }

// IsDeduce reports whether t is the "deduce this" placeholder used in
// declarations with no explicit type (`let x = ...;`).
func (t TypeId) IsDeduce() bool { return t.Index == indexDeduce }

// FunctionKind discriminates the three places a callable function can
// live: a program-defined Function, an imported ExternFunction, or a
// built-in IntrinsicFunction.
type FunctionKind uint8

const (
	FunctionKindProgram FunctionKind = iota
	FunctionKindExtern
	FunctionKindIntrinsic
)

// FunctionId addresses any callable: 2 bits of kind, an index into the
// matching Program vector.
type FunctionId struct {
	Kind  FunctionKind
	Index uint32
}

// InvalidFunctionId is the distinguished "no function" value.
var InvalidFunctionId = FunctionId{Kind: FunctionKindIntrinsic, Index: ^uint32(0)}

func (f FunctionId) IsValid() bool { return f != InvalidFunctionId }

// FunctionTemplateId addresses an entry in Program.FunctionTemplates.
type FunctionTemplateId struct{ Index uint32 }

// StructTemplateId addresses an entry in Program.StructTemplates.
type StructTemplateId struct{ Index uint32 }

// InvalidStructTemplateId is the distinguished "no struct template" value.
var InvalidStructTemplateId = StructTemplateId{Index: ^uint32(0)}

func (s StructTemplateId) IsValid() bool { return s != InvalidStructTemplateId }
