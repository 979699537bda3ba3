package complete

// Variable is a named, typed stack slot: a parameter or a local. Offset
// is relative to the enclosing function's base pointer; the evaluator
// never sees a Variable directly, only the VariableLoad expression built
// from it during analysis.
type Variable struct {
	Name   string
	Type   TypeId
	Offset int
}

// Constant is a named, typed compile-time value, stored inline as its
// byte representation.
type Constant struct {
	Name  string
	Type  TypeId
	Value []byte
}

// OverloadSet is the target of an overload-set-typed value: the set of
// ordinary functions and function templates sharing one name in one
// scope. Overload sets are first-class values in afil (`OverloadSetType`),
// so this struct also doubles as the payload of Program.OverloadSetTypes.
type OverloadSet struct {
	Name      string
	Functions []FunctionId
	Templates []FunctionTemplateId
}

// Scope is one layer of lexical name resolution: a function body, a
// block, or the global namespace. ScopeStack (in the semantic package)
// threads a stack of *Scope from innermost to outermost; lookups walk
// outward and stop at the first hit, with overload sets alone
// accumulating across every enclosing scope.
type Scope struct {
	Variables        []Variable
	Constants        []Constant
	OverloadSets     map[string]*OverloadSet
	Types            map[string]TypeId
	StructTemplates  map[string]StructTemplateId
	Namespaces       map[string]*Namespace
	FrameSize        int
	FrameAlignment   int
	// IsFunctionBoundary marks a scope that stops non-global variable
	// capture: crossing it during lookup, only globals/constants/types/
	// overload-sets remain visible.
	IsFunctionBoundary bool
}

// NewScope returns an empty, ready-to-use Scope.
func NewScope() *Scope {
	return &Scope{
		OverloadSets:    make(map[string]*OverloadSet),
		Types:           make(map[string]TypeId),
		StructTemplates: make(map[string]StructTemplateId),
		Namespaces:      make(map[string]*Namespace),
	}
}

// AddVariable reserves frame space for a new variable, aligning it
// within the scope's frame, and returns the Variable recording its
// offset.
func (s *Scope) AddVariable(name string, t TypeId, size, alignment int) Variable {
	offset := alignUp(s.FrameSize, alignment)
	s.FrameSize = offset + size
	if alignment > s.FrameAlignment {
		s.FrameAlignment = alignment
	}
	v := Variable{Name: name, Type: t, Offset: offset}
	s.Variables = append(s.Variables, v)
	return v
}

// AddConstant registers a compile-time constant in this scope.
func (s *Scope) AddConstant(name string, t TypeId, value []byte) {
	s.Constants = append(s.Constants, Constant{Name: name, Type: t, Value: value})
}

// AddOverload adds a function (or function template) to the named
// overload set in this scope, creating the set if this is its first
// member.
func (s *Scope) AddOverload(name string) *OverloadSet {
	set, ok := s.OverloadSets[name]
	if !ok {
		set = &OverloadSet{Name: name}
		s.OverloadSets[name] = set
	}
	return set
}

// Namespace is a named scope that nests other namespaces; the global
// scope is the unnamed root Namespace of the whole program.
type Namespace struct {
	Scope
	Name string
}

// NewNamespace returns an empty named Namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{Scope: *NewScope(), Name: name}
}

func alignUp(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}
