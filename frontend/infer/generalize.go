package infer

import (
	"slices"

	"github.com/cottand/ileinfer/frontend/types"
	hset "github.com/hashicorp/go-set/v3"
	"github.com/xtgo/set"
)

// typeVars implements sort.Interface for use with github.com/xtgo/set
type typeVars []types.TypeVar

func (vs typeVars) Len() int           { return len(vs) }
func (vs typeVars) Less(i, j int) bool { return vs[i] < vs[j] }
func (vs typeVars) Swap(i, j int)      { vs[i], vs[j] = vs[j], vs[i] }

func sortedVars(s *hset.Set[types.TypeVar]) typeVars {
	vars := typeVars(s.Slice())
	slices.Sort(vars)
	return vars
}

// Generalize quantifies every variable free in t but not free in ctx
// or any of its parents.
//
// Variables are quantified in increasing order.
func Generalize(ctx *Context, t types.Type) types.Scheme {
	return quantify(t, ctx.FreeTypeVars())
}

// quantify generalizes t over all its variables except those in keep
func quantify(t types.Type, keep *hset.Set[types.TypeVar]) types.Scheme {
	candidates := sortedVars(types.FreeTypeVars(t))
	if len(candidates) == 0 {
		return types.Mono(t)
	}
	pivot := len(candidates)
	data := append(candidates, sortedVars(keep)...)
	size := set.Diff(data, pivot)
	if size == 0 {
		return types.Mono(t)
	}
	return types.Scheme{
		Vars: slices.Clone(data[:size]),
		Body: t,
	}
}
