package types

import (
	"math/rand"
	"testing"

	"github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// genType builds a random type of at most depth levels out of vars
func genType(r *rand.Rand, vars []TypeVar, depth int) Type {
	if depth == 0 {
		if r.Intn(2) == 0 {
			return vars[r.Intn(len(vars))]
		}
		return []Type{Int, Bool, String}[r.Intn(3)]
	}
	switch r.Intn(6) {
	case 0:
		return vars[r.Intn(len(vars))]
	case 1:
		return ListOf(genType(r, vars, depth-1))
	case 2:
		return NewFunc([]Type{genType(r, vars, depth-1), genType(r, vars, depth-1)}, genType(r, vars, depth-1))
	case 3:
		return NewTuple(genType(r, vars, depth-1), genType(r, vars, depth-1))
	case 4:
		return NullableOf(genType(r, vars, depth-1))
	default:
		return NewUnion(
			Variant{Tag: "Some", Fields: []Type{genType(r, vars, depth-1)}},
			Variant{Tag: "None"},
		)
	}
}

// genSubstitution maps a random subset of domain to types made of rangeVars
func genSubstitution(r *rand.Rand, domain, rangeVars []TypeVar) Substitution {
	m := make(map[TypeVar]Type)
	for _, v := range domain {
		if r.Intn(3) != 0 {
			m[v] = genType(r, rangeVars, 2)
		}
	}
	return SubstitutionOf(m)
}

func newVars(supply *Supply, n int) []TypeVar {
	vars := make([]TypeVar, n)
	for i := range vars {
		vars[i] = supply.Fresh()
	}
	return vars
}

func TestSubstitutionIdentity(t *testing.T) {
	supply := NewSupply()
	vars := newVars(supply, 4)
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		ty := genType(r, vars, 3)
		assert.True(t, Equal(ty, EmptySubstitution().Apply(ty)), ty.String())

		s := genSubstitution(r, vars, vars)
		assert.True(t, Compose(EmptySubstitution(), s).Equal(s), s.String())
		assert.True(t, Compose(s, EmptySubstitution()).Equal(s), s.String())
	}
}

func TestComposeAppliesInnerFirst(t *testing.T) {
	supply := NewSupply()
	vars := newVars(supply, 5)
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 100; i++ {
		s1 := genSubstitution(r, vars, vars)
		s2 := genSubstitution(r, vars, vars)
		ty := genType(r, vars, 3)

		sequential := s2.Apply(s1.Apply(ty))
		composed := Compose(s2, s1).Apply(ty)
		assert.True(t, Equal(sequential, composed), "%v vs %v", sequential, composed)
	}
}

func TestComposeIsAssociative(t *testing.T) {
	supply := NewSupply()
	vars := newVars(supply, 5)
	r := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		s1 := genSubstitution(r, vars, vars)
		s2 := genSubstitution(r, vars, vars)
		s3 := genSubstitution(r, vars, vars)

		left := Compose(s3, Compose(s2, s1))
		right := Compose(Compose(s3, s2), s1)
		assert.True(t, left.Equal(right), "%v vs %v", left, right)
	}
}

func TestApplyIsIdempotentForResolvedSubstitutions(t *testing.T) {
	supply := NewSupply()
	domain := newVars(supply, 4)
	rangeVars := newVars(supply, 3)
	all := append(append([]TypeVar{}, domain...), rangeVars...)
	r := rand.New(rand.NewSource(4))

	for i := 0; i < 100; i++ {
		s := genSubstitution(r, domain, rangeVars)
		ty := genType(r, all, 3)

		once := s.Apply(ty)
		assert.True(t, Equal(once, s.Apply(once)), "%v applied to %v", s, ty)
	}
}

func TestSubstitutionOperations(t *testing.T) {
	supply := NewSupply()
	a, b, c := supply.Fresh(), supply.Fresh(), supply.Fresh()

	t.Run("extend resolves existing mappings", func(t *testing.T) {
		s := Singleton(a, ListOf(b)).Extend(b, Int)

		got, ok := s.Lookup(a)
		require.True(t, ok)
		assert.Equal(t, "List<Int>", got.String())
		assert.Equal(t, []TypeVar{a, b}, s.Domain())
	})

	t.Run("extend does not modify the receiver", func(t *testing.T) {
		s := Singleton(a, Int)
		_ = s.Extend(b, Bool)

		assert.Equal(t, 1, s.Len())
	})

	t.Run("restrict", func(t *testing.T) {
		s := SubstitutionOf(map[TypeVar]Type{a: Int, b: Bool, c: String})
		restricted := s.RestrictTo(set.From([]TypeVar{a, c}))

		assert.Equal(t, []TypeVar{a, c}, restricted.Domain())
	})

	t.Run("scheme application skips quantified variables", func(t *testing.T) {
		scheme := Forall([]TypeVar{a}, NewFunc([]Type{a}, b))
		s := SubstitutionOf(map[TypeVar]Type{a: Int, b: Bool})

		applied := s.ApplyScheme(scheme)
		assert.Equal(t, []TypeVar{a}, applied.Vars)
		assert.True(t, Equal(NewFunc([]Type{a}, Bool), applied.Body))
	})

	t.Run("string", func(t *testing.T) {
		s := SubstitutionOf(map[TypeVar]Type{b: Bool, a: Int})
		assert.Equal(t, "{"+a.String()+" ↦ Int, "+b.String()+" ↦ Bool}", s.String())
	})
}
