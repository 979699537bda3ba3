package semantic

import "github.com/cwbudde/afil/internal/complete"

// lookupKind tags which alternative of a lookupResult is populated.
type lookupKind int

const (
	lookupNothing lookupKind = iota
	lookupNamespaceNotFound
	lookupVariable
	lookupGlobalVariable
	lookupConstant
	lookupOverloadSet
	lookupType
	lookupStructTemplate
)

type lookupResult struct {
	kind lookupKind

	variable complete.Variable
	constant complete.Constant
	overload *complete.Scope // scope owning the OverloadSets map entry
	typ      complete.TypeId
	template complete.StructTemplateId
}

// lookupName resolves name starting at the innermost scope and walking
// outward. Variables and constants shadow innermost-wins and stop the
// walk; overload sets never stop it — every enclosing scope's overload
// set for `name` is merged into one result, since afil allows the same
// name to be overloaded across nested scopes.
//
// Crossing a function boundary (complete.Scope.IsFunctionBoundary)
// disables further *local* variable/constant visibility: only globals,
// types, and overload sets remain reachable beyond it, which is how
// afil functions are forbidden from implicitly capturing outer locals.
func lookupName(stack *scopeStack, name string) lookupResult {
	merged := complete.OverloadSet{Name: name}
	haveOverload := false
	crossedFunctionBoundary := false

	for i := len(stack.scopes) - 1; i >= 0; i-- {
		scope := stack.scopes[i]
		isGlobal := i == 0

		if !crossedFunctionBoundary || isGlobal {
			for _, v := range scope.Variables {
				if v.Name == name {
					if isGlobal {
						return lookupResult{kind: lookupGlobalVariable, variable: v}
					}
					return lookupResult{kind: lookupVariable, variable: v}
				}
			}
			for _, c := range scope.Constants {
				if c.Name == name {
					return lookupResult{kind: lookupConstant, constant: c}
				}
			}
		}

		if set, ok := scope.OverloadSets[name]; ok {
			merged.Functions = append(merged.Functions, set.Functions...)
			merged.Templates = append(merged.Templates, set.Templates...)
			haveOverload = true
		}
		if t, ok := scope.Types[name]; ok {
			return lookupResult{kind: lookupType, typ: t}
		}
		if st, ok := scope.StructTemplates[name]; ok {
			return lookupResult{kind: lookupStructTemplate, template: st}
		}

		if scope.IsFunctionBoundary {
			crossedFunctionBoundary = true
		}
	}

	if haveOverload {
		return lookupResult{kind: lookupOverloadSet, overload: &complete.Scope{
			OverloadSets: map[string]*complete.OverloadSet{name: &merged},
		}}
	}
	return lookupResult{kind: lookupNothing}
}

// lookupQualifiedName resolves a namespace-qualified name (`a::b::c`).
// The path is walked through the global scope's Namespaces map. No
// declaration form adds an entry to that map, so a non-empty namespace
// path is reported as not found unless an embedder populated it.
func lookupQualifiedName(stack *scopeStack, namespace []string, name string) lookupResult {
	if len(namespace) == 0 {
		return lookupName(stack, name)
	}
	ns := stack.scopes[0]
	for _, part := range namespace {
		next, ok := ns.Namespaces[part]
		if !ok {
			return lookupResult{kind: lookupNamespaceNotFound}
		}
		ns = &next.Scope
	}
	tmp := newScopeStack(ns)
	return lookupName(tmp, name)
}
