package semantic

import (
	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
)

// registerModuleSignatures is analysis pass 1: every top-level struct
// and function declaration gets a name and a signature (so later
// declarations, and bodies analysed in pass 2, can refer to them
// regardless of source order), but no function body is analysed yet.
func (a *Analyzer) registerModuleSignatures(mod *ast.Module) {
	for _, decl := range mod.Declarations {
		switch d := decl.(type) {
		case *ast.StructDecl:
			a.registerStructSignature(d)
		case *ast.FunctionDecl:
			a.registerFunctionSignature(d)
		}
	}
}

func (a *Analyzer) registerStructSignature(d *ast.StructDecl) {
	if d.IsTemplate() {
		tmplId := complete.StructTemplateId{Index: uint32(len(a.program.StructTemplates))}
		a.program.StructTemplates = append(a.program.StructTemplates, complete.StructTemplate{
			Declaration:     d,
			DefinitionScope: a.scopes.snapshot(),
			Concepts:        conceptConstraints(d.TemplateConcepts),
			ABIName:         d.Name,
		})
		a.scopes.top().StructTemplates[d.Name] = tmplId
		return
	}

	members := make([]complete.MemberVariable, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, complete.MemberVariable{Name: m.Name, Type: a.resolveType(m.Type)})
	}
	id, _ := a.program.AddStructType(d.Name, members)
	a.scopes.top().Types[d.Name] = id
	a.synthesizeSpecialMembers(id, d)
}

func (a *Analyzer) registerFunctionSignature(d *ast.FunctionDecl) {
	if d.IsTemplate() {
		paramTypes := make([]complete.TemplateParamType, 0, len(d.Parameters))
		for _, p := range d.Parameters {
			paramTypes = append(paramTypes, a.resolveTemplateParamType(p.Type, d.TemplateParams))
		}
		returnType := a.resolveTemplateParamType(d.ReturnType, d.TemplateParams)

		tmplId := complete.FunctionTemplateId{Index: uint32(len(a.program.FunctionTemplates))}
		a.program.FunctionTemplates = append(a.program.FunctionTemplates, complete.FunctionTemplate{
			Declaration:     d,
			ParameterTypes:  paramTypes,
			ReturnType:      returnType,
			DefinitionScope: a.scopes.snapshot(),
			Concepts:        conceptConstraints(d.TemplateConcepts),
			ABIName:         d.Name,
		})
		set := a.scopes.top().AddOverload(d.Name)
		set.Templates = append(set.Templates, tmplId)
		return
	}

	fnScope := complete.NewScope()
	fnScope.IsFunctionBoundary = true
	for _, p := range d.Parameters {
		pt := a.resolveType(p.Type)
		fnScope.AddVariable(p.Name, pt, a.program.TypeSize(pt), a.program.TypeAlignment(pt))
	}
	returnType := a.resolveType(d.ReturnType)

	fn := complete.Function{
		Scope:                 *fnScope,
		ParameterCount:        len(d.Parameters),
		ParameterSize:         fnScope.FrameSize,
		ReturnType:            returnType,
		ABIName:               d.Name,
		CallableAtCompileTime: true,
		CallableAtRuntime:     true,
	}
	id := a.program.AddFunction(fn)
	a.scopes.top().AddOverload(d.Name).Functions = append(a.scopes.top().AddOverload(d.Name).Functions, id)
	a.pendingFunctions = append(a.pendingFunctions, pendingFunction{decl: d, id: id, moduleName: a.moduleName, source: a.source})
}

// conceptConstraints turns a template's parallel TemplateConcepts name
// list ("" at unconstrained positions) into the sparse constraint list
// a FunctionTemplate/StructTemplate actually stores.
func conceptConstraints(names []string) []complete.ConceptConstraint {
	var out []complete.ConceptConstraint
	for i, name := range names {
		if name != "" {
			out = append(out, complete.ConceptConstraint{ParamIndex: i, Name: name})
		}
	}
	return out
}

// analysePendingFunctions is analysis pass 2's function half: fill in
// every pending function body, now that every top-level name in every
// module is visible, each restoring the module context it was declared
// in for diagnostics.
func (a *Analyzer) analysePendingFunctions() {
	pending := a.pendingFunctions
	a.pendingFunctions = nil
	for _, pf := range pending {
		a.moduleName, a.source = pf.moduleName, pf.source
		a.analyseFunctionBody(pf)
	}
}

// analyseGlobalVariables is analysis pass 2's global-variable half, run
// per module so each variable's initializer is diagnosed against its
// own module's source.
func (a *Analyzer) analyseGlobalVariables(mod *ast.Module) {
	for _, gv := range mod.GlobalVariables {
		a.analyseGlobalVariable(gv)
	}
}

func (a *Analyzer) analyseFunctionBody(pf pendingFunction) {
	fn := &a.program.Functions[pf.id.Index]
	a.scopes.push(&fn.Scope)
	prevFn := a.fn
	a.fn = &functionContext{returnType: fn.ReturnType}

	for _, precond := range pf.decl.Preconditions {
		fn.Preconditions = append(fn.Preconditions, a.analyzeExpression(precond, complete.BoolTypeId))
	}
	fn.Statements = a.analyzeStatements(pf.decl.Body.Statements)

	a.fn = prevFn
	a.scopes.pop()
}

func (a *Analyzer) analyseGlobalVariable(gv *ast.VariableDecl) {
	declaredType := complete.NoneTypeId
	if gv.Type != nil {
		declaredType = a.resolveType(gv.Type)
	}
	init := a.analyzeExpression(gv.Init, declaredType)
	t := init.ResultType()
	if !declaredType.IsNone() && !declaredType.IsDeduce() {
		t = declaredType
	}
	v := a.scopes.top().AddVariable(gv.Name, t, a.program.TypeSize(t), a.program.TypeAlignment(t))
	a.program.GlobalInitStatements = append(a.program.GlobalInitStatements, complete.NewVariableDeclaration(v.Offset, t, init))
}
