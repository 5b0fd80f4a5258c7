package types

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Scheme is a polymorphic type, ∀ Vars. Body.
//
// A Scheme with no Vars is monomorphic and stands for Body alone.
type Scheme struct {
	Vars []TypeVar
	Body Type
}

// Mono wraps t in a Scheme with nothing quantified
func Mono(t Type) Scheme {
	return Scheme{Body: t}
}

// Forall quantifies vars over body. Variables not present in body are dropped.
func Forall(vars []TypeVar, body Type) Scheme {
	present := FreeTypeVars(body)
	kept := make([]TypeVar, 0, len(vars))
	for _, v := range vars {
		if present.Contains(v) && !slices.Contains(kept, v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	return Scheme{Vars: kept, Body: body}
}

func (s Scheme) IsMono() bool {
	return len(s.Vars) == 0
}

// IsQuantified reports whether v is bound by this scheme
func (s Scheme) IsQuantified(v TypeVar) bool {
	return slices.Contains(s.Vars, v)
}

// FreeTypeVars are the variables of Body that are not quantified
func (s Scheme) FreeTypeVars() *set.Set[TypeVar] {
	free := FreeTypeVars(s.Body)
	for _, v := range s.Vars {
		free.Remove(v)
	}
	return free
}

// Instantiate replaces every quantified variable with a new one from supply
func (s Scheme) Instantiate(supply *Supply) Type {
	if s.IsMono() {
		return s.Body
	}
	fresh := make(map[TypeVar]Type, len(s.Vars))
	for _, v := range s.Vars {
		fresh[v] = supply.Fresh()
	}
	return Rewrite(s.Body, func(v TypeVar) (Type, bool) {
		t, ok := fresh[v]
		return t, ok
	})
}

// Equivalent reports whether s and other are the same scheme
// up to renaming of quantified variables
func (s Scheme) Equivalent(other Scheme) bool {
	if len(s.Vars) != len(other.Vars) {
		return false
	}
	renaming := make(map[TypeVar]Type, len(s.Vars))
	for i, v := range other.Vars {
		renaming[v] = s.Vars[i]
	}
	renamed := Rewrite(other.Body, func(v TypeVar) (Type, bool) {
		t, ok := renaming[v]
		return t, ok
	})
	return Equal(s.Body, renamed)
}

// String prints quantified variables as a, b, c... in the order they are quantified
func (s Scheme) String() string {
	if s.IsMono() {
		return TypeString(s.Body, nil)
	}
	names := make(map[TypeVar]string, len(s.Vars))
	sb := &strings.Builder{}
	sb.WriteString("∀")
	for i, v := range s.Vars {
		names[v] = varName(i)
		if i != 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(names[v])
	}
	sb.WriteString(". ")
	sb.WriteString(TypeString(s.Body, names))
	return sb.String()
}

func varName(i int) string {
	name := string(rune('a' + i%26))
	if i >= 26 {
		name += strings.Repeat("'", i/26)
	}
	return name
}
