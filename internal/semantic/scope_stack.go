// Package semantic turns parsed ast.Module values into a complete.Program:
// name lookup, overload resolution, template instantiation, expression
// and statement analysis, and special-member synthesis.
package semantic

import "github.com/cwbudde/afil/internal/complete"

// scopeStack is a stack of *complete.Scope, innermost last. Lookup walks
// from the end backwards; AddVariable/AddConstant/AddOverload always
// target the innermost scope. This is the live, mutable analysis-time
// counterpart of complete.ScopeStackSnapshot, which is just a frozen
// copy of one.
type scopeStack struct {
	scopes []*complete.Scope
}

func newScopeStack(global *complete.Scope) *scopeStack {
	return &scopeStack{scopes: []*complete.Scope{global}}
}

func (s *scopeStack) push(scope *complete.Scope) { s.scopes = append(s.scopes, scope) }

// pop removes the innermost scope. A popped block scope's frame size is
// carried into its enclosing scope, so the enclosing function's frame
// covers the locals of every nested block; a function scope's is not.
func (s *scopeStack) pop() {
	child := s.top()
	s.scopes = s.scopes[:len(s.scopes)-1]
	if !child.IsFunctionBoundary && len(s.scopes) > 0 && child.FrameSize > s.top().FrameSize {
		s.top().FrameSize = child.FrameSize
	}
}

func (s *scopeStack) top() *complete.Scope { return s.scopes[len(s.scopes)-1] }

// snapshot freezes the current stack for later use by a template.
func (s *scopeStack) snapshot() complete.ScopeStackSnapshot {
	cp := make(complete.ScopeStackSnapshot, len(s.scopes))
	copy(cp, s.scopes)
	return cp
}

// fromSnapshot rebuilds a scopeStack from a frozen snapshot, used when
// instantiating a template against its captured definition-site scope
// rather than the scope of the call site.
func fromSnapshot(snap complete.ScopeStackSnapshot) *scopeStack {
	cp := make([]*complete.Scope, len(snap))
	copy(cp, snap)
	return &scopeStack{scopes: cp}
}
