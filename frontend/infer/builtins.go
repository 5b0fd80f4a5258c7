package infer

import (
	"github.com/cottand/ileinfer/frontend/types"
)

// DefaultBuiltins are the functions every program can refer to without declaring them
func DefaultBuiltins(supply *types.Supply) map[string]types.Scheme {
	forall := func(body func(a types.TypeVar) types.Type) types.Scheme {
		a := supply.Fresh()
		return types.Forall([]types.TypeVar{a}, body(a))
	}
	return map[string]types.Scheme{
		"print": forall(func(a types.TypeVar) types.Type {
			return types.NewFunc([]types.Type{a}, types.Unit)
		}),
		"toString": forall(func(a types.TypeVar) types.Type {
			return types.NewFunc([]types.Type{a}, types.String)
		}),
		"toDouble": types.Mono(types.NewFunc([]types.Type{types.Int}, types.Double)),
		"length": forall(func(a types.TypeVar) types.Type {
			return types.NewFunc([]types.Type{types.ListOf(a)}, types.Int)
		}),
		"head": forall(func(a types.TypeVar) types.Type {
			return types.NewFunc([]types.Type{types.ListOf(a)}, types.NullableOf(a))
		}),
		"orElse": forall(func(a types.TypeVar) types.Type {
			return types.NewFunc([]types.Type{types.NullableOf(a), a}, a)
		}),
	}
}
