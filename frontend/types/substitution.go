package types

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-set/v3"
)

// Substitution is a finite, immutable mapping from TypeVar to Type.
//
// Variables outside its domain are mapped to themselves.
// The zero value is the identity substitution.
type Substitution struct {
	m *immutable.Map[TypeVar, Type]
}

func EmptySubstitution() Substitution {
	return Substitution{}
}

func Singleton(v TypeVar, t Type) Substitution {
	return Substitution{}.set(v, t)
}

// SubstitutionOf builds a substitution from m
func SubstitutionOf(m map[TypeVar]Type) Substitution {
	builder := immutable.NewMapBuilder[TypeVar, Type](typeVarHasher{})
	for v, t := range m {
		builder.Set(v, t)
	}
	return Substitution{m: builder.Map()}
}

func (s Substitution) set(v TypeVar, t Type) Substitution {
	m := s.m
	if m == nil {
		m = immutable.NewMap[TypeVar, Type](typeVarHasher{})
	}
	return Substitution{m: m.Set(v, t)}
}

func (s Substitution) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

func (s Substitution) IsEmpty() bool {
	return s.Len() == 0
}

func (s Substitution) Lookup(v TypeVar) (Type, bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(v)
}

// Domain returns the mapped variables, sorted
func (s Substitution) Domain() []TypeVar {
	domain := make([]TypeVar, 0, s.Len())
	if s.m == nil {
		return domain
	}
	itr := s.m.Iterator()
	for !itr.Done() {
		v, _, _ := itr.Next()
		domain = append(domain, v)
	}
	slices.Sort(domain)
	return domain
}

// All iterates over the mappings of s in Domain order
func (s Substitution) All() iter.Seq2[TypeVar, Type] {
	return func(yield func(TypeVar, Type) bool) {
		for _, v := range s.Domain() {
			t, _ := s.m.Get(v)
			if !yield(v, t) {
				return
			}
		}
	}
}

// Apply replaces every variable of t in the domain of s with its mapping
func (s Substitution) Apply(t Type) Type {
	if s.IsEmpty() {
		return t
	}
	return Rewrite(t, s.Lookup)
}

// ApplyScheme applies s to the free variables of scheme,
// quantified variables are left untouched
func (s Scheme) ApplyScheme(sub Substitution) Scheme {
	return sub.ApplyScheme(s)
}

func (s Substitution) ApplyScheme(scheme Scheme) Scheme {
	if s.IsEmpty() {
		return scheme
	}
	return Scheme{
		Vars: scheme.Vars,
		Body: s.Without(scheme.Vars...).Apply(scheme.Body),
	}
}

// Compose returns the substitution that applies inner first and then outer,
// so that outer.Apply(inner.Apply(t)) == Compose(outer, inner).Apply(t) for any t
func Compose(outer, inner Substitution) Substitution {
	if inner.IsEmpty() {
		return outer
	}
	if outer.IsEmpty() {
		return inner
	}
	composed := inner.m
	itr := inner.m.Iterator()
	for !itr.Done() {
		v, t, _ := itr.Next()
		composed = composed.Set(v, outer.Apply(t))
	}
	itr = outer.m.Iterator()
	for !itr.Done() {
		v, t, _ := itr.Next()
		if _, inInner := inner.m.Get(v); !inInner {
			composed = composed.Set(v, t)
		}
	}
	return Substitution{m: composed}
}

// Extend returns s followed by the binding v ↦ t,
// equivalent to Compose(Singleton(v, t), s)
func (s Substitution) Extend(v TypeVar, t Type) Substitution {
	return Compose(Singleton(v, t), s)
}

// Without removes vars from the domain of s
func (s Substitution) Without(vars ...TypeVar) Substitution {
	if s.IsEmpty() || len(vars) == 0 {
		return s
	}
	m := s.m
	for _, v := range vars {
		m = m.Delete(v)
	}
	return Substitution{m: m}
}

// RestrictTo keeps only the mappings of vars
func (s Substitution) RestrictTo(vars *set.Set[TypeVar]) Substitution {
	restricted := Substitution{}
	for v, t := range s.All() {
		if vars.Contains(v) {
			restricted = restricted.set(v, t)
		}
	}
	return restricted
}

// Equal reports whether s and other have the same domain and
// structurally equal mappings
func (s Substitution) Equal(other Substitution) bool {
	if s.Len() != other.Len() {
		return false
	}
	for v, t := range s.All() {
		otherT, ok := other.Lookup(v)
		if !ok || !Equal(t, otherT) {
			return false
		}
	}
	return true
}

func (s Substitution) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	i := 0
	for v, t := range s.All() {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
		sb.WriteString(" ↦ ")
		sb.WriteString(t.String())
		i++
	}
	sb.WriteString("}")
	return sb.String()
}

func (s Substitution) LogValue() slog.Value {
	return slog.StringValue(s.String())
}
