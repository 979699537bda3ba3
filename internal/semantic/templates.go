package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/errors"
	"github.com/cwbudde/afil/internal/evaluator"
)

// deduceTemplateArgs infers concrete type arguments for tmpl's template
// parameters from the actual argument types at a call site: the simplest
// form of deduction, where a bare `T x` parameter deduces T directly
// from the argument's value type. Parameters whose
// declared type doesn't mention a template parameter are ignored for
// deduction purposes; mismatched repeated deductions of the same
// parameter fail the match.
func deduceTemplateArgs(tmpl *complete.FunctionTemplate, argTypes []complete.TypeId) ([]complete.TypeId, bool) {
	if len(tmpl.ParameterTypes) != len(argTypes) {
		return nil, false
	}
	deduced := make([]complete.TypeId, templateParamCount(tmpl.ParameterTypes, tmpl.ReturnType))
	bound := make([]bool, len(deduced))

	bind := func(idx int, t complete.TypeId) bool {
		v := t.Value()
		if bound[idx] {
			return deduced[idx] == v
		}
		deduced[idx], bound[idx] = v, true
		return true
	}

	for i, p := range tmpl.ParameterTypes {
		if p.IsTemplateParameter {
			if !bind(p.TemplateParameterIndex, argTypes[i]) {
				return nil, false
			}
		}
		// Parameters built from Pointee/ElementType nesting around a
		// template parameter (e.g. `*T`) are not deduced here; such a
		// call requires explicit template arguments.
	}
	for _, b := range bound {
		if !b {
			return nil, false
		}
	}
	return deduced, true
}

func templateParamCount(params []complete.TemplateParamType, ret complete.TemplateParamType) int {
	max := -1
	visit := func(t complete.TemplateParamType) {
		if t.IsTemplateParameter && t.TemplateParameterIndex > max {
			max = t.TemplateParameterIndex
		}
	}
	for _, p := range params {
		visit(p)
	}
	visit(ret)
	return max + 1
}

// checkConcepts verifies every concept constraint attached to a
// template against its candidate type arguments: for each constraint,
// the named concept (itself a zero-parameter function template over one
// type argument, returning bool) is instantiated with the one type
// argument it constrains and the resulting call is evaluated through
// the same compile-time evaluator evaluateConstantInt delegates to.
// Returns false the moment any constraint isn't satisfied — by an
// unresolvable concept name, a failed concept instantiation, or the
// concept itself evaluating to false.
func (a *Analyzer) checkConcepts(constraints []complete.ConceptConstraint, args []complete.TypeId) bool {
	for _, c := range constraints {
		if c.ParamIndex >= len(args) {
			continue
		}
		res := lookupName(a.scopes, c.Name)
		if res.kind != lookupOverloadSet {
			return false
		}
		set := res.overload.OverloadSets[c.Name]
		if len(set.Templates) == 0 {
			return false
		}
		conceptFn, ok := a.instantiateFunctionTemplate(set.Templates[0], []complete.TypeId{args[c.ParamIndex]})
		if !ok {
			return false
		}
		call := complete.NewCall(complete.BoolTypeId, conceptFn, nil)
		out := make([]byte, a.program.TypeSize(complete.BoolTypeId))
		up, err := evaluator.EvaluateConstantExpression(a.program, call, out)
		if up != nil || err != nil || !complete.ReadBool(out) {
			return false
		}
	}
	return true
}

// deduceAndInstantiateFunctionTemplate deduces type arguments from
// argTypes and returns the (possibly cached) concrete instantiation.
// Deduction success alone isn't enough: an instantiation that violates
// one of the template's concept constraints fails exactly like a
// deduction mismatch, silently removing the candidate rather than
// raising a diagnostic — overload resolution tries the next candidate.
func (a *Analyzer) deduceAndInstantiateFunctionTemplate(id complete.FunctionTemplateId, argTypes []complete.TypeId) (complete.FunctionId, bool) {
	tmpl := &a.program.FunctionTemplates[id.Index]
	args, ok := deduceTemplateArgs(tmpl, argTypes)
	if !ok {
		return complete.InvalidFunctionId, false
	}
	return a.instantiateFunctionTemplate(id, args)
}

// instantiateFunctionTemplate returns the Function instantiating id with
// the given explicit/deduced type arguments, analysing its body exactly
// once per distinct argument list. The second return is false when a
// concept attached to the template rejects one of args; callers that
// requested this instantiation explicitly (rather than as one of many
// overload candidates) turn that into a KindConceptNotSatisfied
// diagnostic themselves.
func (a *Analyzer) instantiateFunctionTemplate(id complete.FunctionTemplateId, args []complete.TypeId) (complete.FunctionId, bool) {
	if cached, ok := a.program.Cache.LookupFunction(id, args); ok {
		return cached, true
	}
	tmpl := &a.program.FunctionTemplates[id.Index]
	if !a.checkConcepts(tmpl.Concepts, args) {
		return complete.InvalidFunctionId, false
	}

	paramScope := complete.NewScope()
	for i, name := range tmpl.Declaration.TemplateParams {
		if i < len(args) {
			paramScope.Types[name] = args[i]
		}
	}

	defScope := fromSnapshot(tmpl.DefinitionScope)
	defScope.push(paramScope)

	fnScope := complete.NewScope()
	fnScope.IsFunctionBoundary = true
	for i, p := range tmpl.Declaration.Parameters {
		_ = p
		pt := a.bindTemplateParamType(tmpl.ParameterTypes[i], args)
		fnScope.AddVariable(tmpl.Declaration.Parameters[i].Name, pt, a.program.TypeSize(pt), a.program.TypeAlignment(pt))
	}
	returnType := a.bindTemplateParamType(tmpl.ReturnType, args)

	fn := complete.Function{
		Scope:                 *fnScope,
		ParameterCount:        len(tmpl.Declaration.Parameters),
		ParameterSize:         fnScope.FrameSize,
		ReturnType:            returnType,
		ABIName:               tmpl.ABIName,
		CallableAtCompileTime: true,
		CallableAtRuntime:     true,
	}
	fnId := a.program.AddFunction(fn)
	a.program.Cache.StoreFunction(id, args, fnId)

	savedScopes, savedFn := a.scopes, a.fn
	a.scopes = defScope
	a.scopes.push(&a.program.Functions[fnId.Index].Scope)
	a.fn = &functionContext{returnType: returnType}

	for _, precond := range tmpl.Declaration.Preconditions {
		a.program.Functions[fnId.Index].Preconditions = append(
			a.program.Functions[fnId.Index].Preconditions,
			a.analyzeExpression(precond, complete.BoolTypeId))
	}
	a.program.Functions[fnId.Index].Statements = a.analyzeStatements(tmpl.Declaration.Body.Statements)

	a.scopes, a.fn = savedScopes, savedFn
	return fnId, true
}

// instantiateStructTemplateByName resolves a `Name<Args>` type
// expression against a registered struct template.
func (a *Analyzer) instantiateStructTemplateByName(te *ast.TypeExpression) complete.TypeId {
	inst := te.TemplateInstantiate
	res := lookupQualifiedName(a.scopes, inst.Namespace, inst.Name)
	if res.kind != lookupStructTemplate {
		return complete.NoneTypeId
	}
	args := make([]complete.TypeId, len(inst.Arguments))
	for i, argTe := range inst.Arguments {
		args[i] = a.resolveType(argTe)
	}
	t, ok := a.instantiateStructTemplate(res.template, args)
	if !ok {
		a.errorf(te.Position, errors.KindConceptNotSatisfied, "type arguments do not satisfy a required concept for %q", inst.Name)
		return complete.NoneTypeId
	}
	return t
}

// instantiateStructTemplate returns the (possibly cached) struct type
// instantiating id with args, using a reserved placeholder type slot
// while the member list is analysed so a self-referential member (this
// struct's own destructor mentioning its own type) resolves instead of
// recursing forever — two-phase instantiation. The second return is
// false when a concept attached to the template rejects one of args.
func (a *Analyzer) instantiateStructTemplate(id complete.StructTemplateId, args []complete.TypeId) (complete.TypeId, bool) {
	if cached, ok := a.program.Cache.LookupStruct(id, args); ok {
		return cached, true
	}
	tmpl := &a.program.StructTemplates[id.Index]
	if !a.checkConcepts(tmpl.Concepts, args) {
		return complete.NoneTypeId, false
	}

	placeholderIdx := uint32(len(a.program.Types))
	a.program.Types = append(a.program.Types, complete.Type{Kind: complete.KindStruct})
	placeholder := complete.TypeId{Index: placeholderIdx}
	a.program.Cache.ReserveStruct(id, args, placeholder)

	paramScope := complete.NewScope()
	for i, name := range tmpl.Declaration.TemplateParams {
		if i < len(args) {
			paramScope.Types[name] = args[i]
		}
	}
	defScope := fromSnapshot(tmpl.DefinitionScope)
	defScope.push(paramScope)

	savedScopes := a.scopes
	a.scopes = defScope

	members := make([]complete.MemberVariable, 0, len(tmpl.Declaration.Members))
	for _, m := range tmpl.Declaration.Members {
		members = append(members, complete.MemberVariable{Name: m.Name, Type: a.resolveType(m.Type)})
	}
	a.scopes = savedScopes

	size, align := 0, 1
	for i := range members {
		al := a.program.TypeAlignment(members[i].Type)
		if al > align {
			align = al
		}
		offset := alignUpLocal(size, al)
		members[i].Offset = offset
		size = offset + a.program.TypeSize(members[i].Type)
	}
	size = alignUpLocal(size, align)

	structIdx := len(a.program.Structs)
	a.program.Structs = append(a.program.Structs, complete.Struct{
		Members:            members,
		Destructor:         complete.InvalidFunctionId,
		DefaultConstructor: complete.InvalidFunctionId,
		CopyConstructor:    complete.InvalidFunctionId,
		MoveConstructor:    complete.InvalidFunctionId,
	})
	a.program.Types[placeholderIdx] = complete.Type{
		Kind:        complete.KindStruct,
		Size:        size,
		Alignment:   align,
		ABIName:     tmpl.ABIName,
		StructIndex: structIdx,
	}

	a.synthesizeSpecialMembers(placeholder, tmpl.Declaration)
	return placeholder, true
}

func alignUpLocal(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	if rem := offset % alignment; rem != 0 {
		return offset + (alignment - rem)
	}
	return offset
}
