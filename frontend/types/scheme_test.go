package types

import (
	"sync"
	"testing"

	"github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeFreeTypeVars(t *testing.T) {
	supply := NewSupply()
	a, b, c := supply.Fresh(), supply.Fresh(), supply.Fresh()

	cases := map[string]struct {
		scheme   Scheme
		expected []TypeVar
	}{
		"mono": {
			scheme:   Mono(NewFunc([]Type{a}, b)),
			expected: []TypeVar{a, b},
		},
		"quantified are bound": {
			scheme:   Forall([]TypeVar{a}, NewFunc([]Type{a}, b)),
			expected: []TypeVar{b},
		},
		"inside unions": {
			scheme: Forall([]TypeVar{a}, NewUnion(
				Variant{Tag: "Left", Fields: []Type{a}},
				Variant{Tag: "Right", Fields: []Type{c}},
			)),
			expected: []TypeVar{c},
		},
		"inside nullable and tuples": {
			scheme:   Mono(NullableOf(NewTuple(a, ListOf(c)))),
			expected: []TypeVar{a, c},
		},
		"ground": {
			scheme:   Mono(NewFunc([]Type{Int}, String)),
			expected: []TypeVar{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, set.From(tc.expected).Equal(tc.scheme.FreeTypeVars()), tc.scheme.FreeTypeVars().String())
		})
	}
}

func TestForallDropsAbsentVars(t *testing.T) {
	supply := NewSupply()
	a, b := supply.Fresh(), supply.Fresh()

	scheme := Forall([]TypeVar{a, b, a}, ListOf(a))
	assert.Equal(t, []TypeVar{a}, scheme.Vars)
	assert.True(t, Forall([]TypeVar{b}, Int).IsMono())
}

func TestInstantiate(t *testing.T) {
	supply := NewSupply()
	a, b, free := supply.Fresh(), supply.Fresh(), supply.Fresh()
	scheme := Forall([]TypeVar{a, b}, NewFunc([]Type{a, free}, ListOf(b)))

	first := scheme.Instantiate(supply)
	second := scheme.Instantiate(supply)

	require.IsType(t, &Func{}, first)
	fn := first.(*Func)
	assert.NotEqual(t, a, fn.Params[0])
	assert.Equal(t, free, fn.Params[1])
	assert.False(t, Equal(first, second))
	renamed := Forall([]TypeVar{fn.Params[0].(TypeVar), fn.Return.(*Generic).Args[0].(TypeVar)}, first)
	assert.True(t, renamed.Equivalent(scheme))
	assert.True(t, Equal(Mono(Int).Instantiate(supply), Int))
}

func TestSchemeString(t *testing.T) {
	supply := NewSupply()
	a, b := supply.Fresh(), supply.Fresh()

	cases := []struct {
		expected string
		scheme   Scheme
	}{
		{"∀a. (a) -> a", Forall([]TypeVar{a}, NewFunc([]Type{a}, a))},
		{"∀a b. ((a) -> b, List<a>) -> List<b>", Forall([]TypeVar{a, b}, NewFunc([]Type{NewFunc([]Type{a}, b), ListOf(a)}, ListOf(b)))},
		{"Int?", Mono(NullableOf(Int))},
		{"((Int) -> Int)?", Mono(NullableOf(NewFunc([]Type{Int}, Int)))},
		{"(Int, Bool)", Mono(NewTuple(Int, Bool))},
		{"None | Some(Int)", Mono(NewUnion(Variant{Tag: "Some", Fields: []Type{Int}}, Variant{Tag: "None"}))},
	}
	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.scheme.String())
		})
	}
}

func TestEqualIsStructural(t *testing.T) {
	supply := NewSupply()
	a := supply.Fresh()

	assert.True(t, Equal(&Named{Name: "Int"}, Int))
	assert.True(t, Equal(NewFunc([]Type{a}, ListOf(Int)), NewFunc([]Type{a}, ListOf(Int))))
	assert.False(t, Equal(NewFunc([]Type{a}, Int), NewFunc([]Type{a, a}, Int)))
	assert.False(t, Equal(NewTuple(Int), ListOf(Int)))
	assert.False(t, Equal(a, supply.Fresh()))
}

func TestOccurs(t *testing.T) {
	supply := NewSupply()
	a, b := supply.Fresh(), supply.Fresh()

	assert.True(t, Occurs(a, ListOf(NewTuple(Int, a))))
	assert.False(t, Occurs(a, NewFunc([]Type{b}, Int)))
	assert.True(t, IsGround(NewFunc([]Type{Int}, Bool)))
	assert.False(t, IsGround(NullableOf(b)))
}

func TestSupplyIsUniqueAcrossGoroutines(t *testing.T) {
	supply := NewSupply()
	const workers, perWorker = 8, 500

	results := make([][]TypeVar, workers)
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results[w] = append(results[w], supply.Fresh())
			}
		}()
	}
	wg.Wait()

	seen := set.New[TypeVar](workers * perWorker)
	for _, vars := range results {
		seen.InsertSlice(vars)
	}
	assert.Equal(t, workers*perWorker, seen.Size())
}
