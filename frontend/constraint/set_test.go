package constraint

import (
	"testing"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetKeepsOrderAndDuplicates(t *testing.T) {
	supply := types.NewSupply()
	a := supply.Fresh()
	at := ast.Range{PosStart: 1, PosEnd: 2}

	eq := NewEquality(a, types.Int, at)
	s := Of(eq, eq, NewSubtype(types.Bool, a, at))

	require.Equal(t, 3, s.Len())
	assert.Same(t, eq, s.At(0))
	assert.Same(t, eq, s.At(1))
	assert.IsType(t, &Subtype{}, s.At(2))
	assert.Equal(t, at, ast.RangeOf(s.At(2)))
}

func TestSetIsImmutable(t *testing.T) {
	supply := types.NewSupply()
	a, b := supply.Fresh(), supply.Fresh()

	base := Of(NewEquality(a, types.Int, ast.Range{}))
	appended := base.Append(NewEquality(b, types.Bool, ast.Range{}))
	union := base.Union(appended)

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, appended.Len())
	assert.Equal(t, 3, union.Len())
	assert.Equal(t, 0, Empty().Len())
	assert.Equal(t, 2, Empty().Union(appended).Len())
}

func TestSetSubAndFilter(t *testing.T) {
	supply := types.NewSupply()
	a := supply.Fresh()

	s := Of(
		NewEquality(a, types.Int, ast.Range{}),
		NewInstance(types.Mono(types.Int), a, ast.Range{}),
		NewEquality(a, types.Bool, ast.Range{}),
	)

	assert.Equal(t, 2, s.From(1).Len())
	assert.IsType(t, &Instance{}, s.From(1).At(0))
	assert.Equal(t, 0, s.Sub(2, 2).Len())

	equalities := s.Filter(func(c Constraint) bool {
		_, ok := c.(*Equality)
		return ok
	})
	assert.Equal(t, 2, equalities.Len())
	assert.Len(t, equalities.Slice(), 2)
}

func TestConstraintApplyAndString(t *testing.T) {
	supply := types.NewSupply()
	a, b := supply.Fresh(), supply.Fresh()
	sub := types.Singleton(a, types.Int)

	eq := NewEquality(a, types.ListOf(b), ast.Range{}).Apply(sub)
	assert.Equal(t, "Int ≡ List<"+b.String()+">", eq.String())

	inst := NewInstance(types.Forall([]types.TypeVar{a}, types.NewFunc([]types.Type{a}, a)), b, ast.Range{}).Apply(sub)
	assert.Equal(t, b.String()+" ≼ ∀a. (a) -> a", inst.String())

	assert.Equal(t, "Int <: "+b.String(), NewSubtype(a, b, ast.Range{}).Apply(sub).String())
}
