package infer

import (
	"testing"

	"github.com/cottand/ileinfer/frontend/types"
	"github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
)

func TestGeneralize(t *testing.T) {
	supply := types.NewSupply()
	a, b, c := supply.Fresh(), supply.Fresh(), supply.Fresh()
	root := NewRootContext(nil)

	t.Run("closed types stay monomorphic", func(t *testing.T) {
		scheme := Generalize(root, types.NewFunc([]types.Type{types.Int}, types.Bool))
		assert.True(t, scheme.IsMono())
	})

	t.Run("every variable is quantified in an empty context", func(t *testing.T) {
		scheme := Generalize(root, types.NewFunc([]types.Type{c, a}, b))
		assert.Equal(t, []types.TypeVar{a, b, c}, scheme.Vars, "quantified in increasing order")
		assert.Equal(t, "∀a b c. (c, a) -> b", scheme.String())
	})

	t.Run("variables free in the context are not quantified", func(t *testing.T) {
		ctx := root.Declare("x", types.Mono(a), false).PushScope().PushScope()
		scheme := Generalize(ctx, types.NewFunc([]types.Type{a}, b))
		assert.Equal(t, []types.TypeVar{b}, scheme.Vars)
		assert.True(t, scheme.FreeTypeVars().Contains(a))
	})

	t.Run("variables quantified in the context are quantified", func(t *testing.T) {
		ctx := root.Declare("id", types.Forall([]types.TypeVar{a}, types.NewFunc([]types.Type{a}, a)), false)
		scheme := Generalize(ctx, types.ListOf(a))
		assert.Equal(t, []types.TypeVar{a}, scheme.Vars)
	})
}

func TestQuantifyKeeps(t *testing.T) {
	supply := types.NewSupply()
	vars := []types.TypeVar{supply.Fresh(), supply.Fresh(), supply.Fresh(), supply.Fresh()}
	tuple := types.NewTuple(vars[3], vars[0], vars[2], vars[1])

	scheme := quantify(tuple, set.From([]types.TypeVar{vars[1], vars[3]}))
	assert.Equal(t, []types.TypeVar{vars[0], vars[2]}, scheme.Vars)

	scheme = quantify(tuple, set.From(vars))
	assert.True(t, scheme.IsMono())

	scheme = quantify(types.Int, set.New[types.TypeVar](0))
	assert.True(t, scheme.IsMono())
}
