package constraint

import (
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
)

// Set is an immutable, ordered collection of constraints.
//
// Order is the order constraints were added in, which is the order they are
// solved in. Duplicates are kept.
// The zero value is the empty Set.
type Set struct {
	l *immutable.List[Constraint]
}

func Empty() Set {
	return Set{}
}

func Of(cs ...Constraint) Set {
	return Set{}.Append(cs...)
}

func (s Set) list() *immutable.List[Constraint] {
	if s.l == nil {
		return immutable.NewList[Constraint]()
	}
	return s.l
}

func (s Set) Len() int {
	if s.l == nil {
		return 0
	}
	return s.l.Len()
}

// Append returns a Set with cs after the constraints of s.
// s itself is not modified.
func (s Set) Append(cs ...Constraint) Set {
	if len(cs) == 0 {
		return s
	}
	l := s.list()
	for _, c := range cs {
		l = l.Append(c)
	}
	return Set{l: l}
}

// Union returns the constraints of s followed by those of other
func (s Set) Union(other Set) Set {
	if s.Len() == 0 {
		return other
	}
	l := s.l
	for _, c := range other.All() {
		l = l.Append(c)
	}
	return Set{l: l}
}

// At returns the i-th constraint, panicking when out of range
func (s Set) At(i int) Constraint {
	return s.list().Get(i)
}

// Sub returns the constraints from index start (inclusive) to end (exclusive)
func (s Set) Sub(start, end int) Set {
	if start == 0 && end == s.Len() {
		return s
	}
	if start == end {
		return Set{}
	}
	return Set{l: s.list().Slice(start, end)}
}

// From returns the constraints added after the first start ones
func (s Set) From(start int) Set {
	return s.Sub(start, s.Len())
}

func (s Set) Filter(keep func(Constraint) bool) Set {
	builder := immutable.NewListBuilder[Constraint]()
	for _, c := range s.All() {
		if keep(c) {
			builder.Append(c)
		}
	}
	return Set{l: builder.List()}
}

// All iterates over the constraints of s in order
func (s Set) All() iter.Seq2[int, Constraint] {
	return func(yield func(int, Constraint) bool) {
		if s.l == nil {
			return
		}
		itr := s.l.Iterator()
		for !itr.Done() {
			i, c := itr.Next()
			if !yield(i, c) {
				return
			}
		}
	}
}

func (s Set) Slice() []Constraint {
	slice := make([]Constraint, 0, s.Len())
	for _, c := range s.All() {
		slice = append(slice, c)
	}
	return slice
}

// String prints one constraint per line
func (s Set) String() string {
	sb := &strings.Builder{}
	for i, c := range s.All() {
		if i != 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
