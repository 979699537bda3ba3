package semantic

import "github.com/cwbudde/afil/internal/complete"

type candidate struct {
	fn    complete.FunctionId
	costs []complete.ConversionRank // per-argument conversion cost, param order
}

// resolveOverload picks the best candidate function (ordinary or
// instantiated-from-template) for a call with argument expressions
// args, per the conversion lattice in complete/conversion.go. Candidates
// are compared by their per-argument cost vectors, not a reduced scalar:
// candidate A beats candidate B only when A is no worse than B on every
// argument and strictly cheaper on at least one (Pareto dominance). It
// returns complete.InvalidFunctionId and ok=false, without recording a
// diagnostic (callers report the failure), when no candidate applies or
// none dominates every other candidate.
func (a *Analyzer) resolveOverload(set *complete.OverloadSet, args []complete.Expression) (complete.FunctionId, bool) {
	argTypes := make([]complete.TypeId, len(args))
	for i, e := range args {
		argTypes[i] = e.ResultType()
	}

	var candidates []candidate
	for _, fn := range set.Functions {
		if c, ok := a.rankCandidate(fn, argTypes); ok {
			candidates = append(candidates, c)
		}
	}
	for _, tmpl := range set.Templates {
		if fn, ok := a.deduceAndInstantiateFunctionTemplate(tmpl, argTypes); ok {
			if c, ok := a.rankCandidate(fn, argTypes); ok {
				candidates = append(candidates, c)
			}
		}
	}

	if len(candidates) == 0 {
		return complete.InvalidFunctionId, false
	}

	// Dominance is asymmetric, so at most one candidate can dominate every
	// other candidate; when none does, the set is Pareto-incomparable and
	// the call is ambiguous.
	best := -1
	for i, c := range candidates {
		dominatesAll := true
		for j, other := range candidates {
			if i != j && !dominates(c.costs, other.costs) {
				dominatesAll = false
				break
			}
		}
		if dominatesAll {
			best = i
			break
		}
	}
	if best == -1 {
		return complete.InvalidFunctionId, false
	}
	return candidates[best].fn, true
}

// dominates reports whether cost vector a is no worse than b on every
// argument and strictly cheaper on at least one.
func dominates(a, b []complete.ConversionRank) bool {
	strictlyBetter := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

func (a *Analyzer) rankCandidate(fn complete.FunctionId, argTypes []complete.TypeId) (candidate, bool) {
	params := a.program.ParameterTypesOf(fn)
	if len(params) != len(argTypes) {
		return candidate{}, false
	}
	costs := make([]complete.ConversionRank, len(params))
	for i, p := range params {
		r := complete.ClassifyConversion(argTypes[i], p)
		if r == complete.RankIllegal {
			return candidate{}, false
		}
		costs[i] = r
	}
	return candidate{fn: fn, costs: costs}, true
}

// convertArguments converts args to their resolved parameter types once
// a candidate is chosen, inserting mutability-conversion wrapper nodes
// wherever the argument's own type differs from the parameter's.
func (a *Analyzer) convertArguments(fn complete.FunctionId, args []complete.Expression) []complete.Expression {
	params := a.program.ParameterTypesOf(fn)
	out := make([]complete.Expression, len(args))
	for i, arg := range args {
		if i >= len(params) || arg.ResultType() == params[i] {
			out[i] = arg
			continue
		}
		out[i] = complete.NewMutabilityConversion(params[i], arg)
	}
	return out
}
