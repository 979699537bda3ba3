package complete

// MemberVariable is one field of a struct type: its name, type, and
// byte offset within the struct (already aligned by the analyser).
type MemberVariable struct {
	Name   string
	Type   TypeId
	Offset int
}

// Struct is the member layout and special-member functions of one
// KindStruct Type — the special-member synthesis target.
// Exactly one of the constructor slots is "the" default constructor,
// but additional user-declared constructors may also exist as ordinary
// overloads in Destructor's enclosing scope's overload set — Struct
// only records the ones the synthesizer (and the evaluator, when a
// struct goes out of scope or is copied) needs to find quickly.
type Struct struct {
	Members []MemberVariable

	Destructor FunctionId

	DefaultConstructor FunctionId
	CopyConstructor    FunctionId
	MoveConstructor    FunctionId

	// HasUserDeclaredConstructor records whether any constructor other
	// than copy/move was written explicitly, which suppresses synthesis
	// of the default constructor.
	HasUserDeclaredConstructor bool
}

// IsTrivial reports whether this struct can be copied/moved/destroyed
// with a flat memcpy — true when every member is itself trivial and no
// special member was user-declared.
func (s *Struct) IsTrivial() bool {
	return !s.HasUserDeclaredConstructor && !s.Destructor.IsValid() &&
		!s.CopyConstructor.IsValid() && !s.MoveConstructor.IsValid()
}

// FindMember returns the member with the given name and whether it was
// found.
func (s *Struct) FindMember(name string) (MemberVariable, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return MemberVariable{}, false
}
