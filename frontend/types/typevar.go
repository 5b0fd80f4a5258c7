package types

import (
	"strconv"
	"sync/atomic"
)

// TypeVar is a placeholder for a type that is not yet known.
//
// Two TypeVar are the same variable iff their identifiers are equal.
// New variables are only ever obtained from a Supply.
type TypeVar uint64

func (v TypeVar) String() string {
	return "t" + strconv.FormatUint(uint64(v), 10)
}

func (TypeVar) typeNode() {}

// Supply hands out TypeVar that are unique for the lifetime of the Supply.
// It is safe for concurrent use.
type Supply struct {
	last atomic.Uint64
}

func NewSupply() *Supply {
	return &Supply{}
}

// Fresh returns a TypeVar that has never been returned by s before
func (s *Supply) Fresh() TypeVar {
	return TypeVar(s.last.Add(1))
}

// Reset makes s start counting from scratch.
// Variables handed out before calling Reset must not be mixed with those handed out after.
func (s *Supply) Reset() {
	s.last.Store(0)
}

// DefaultSupply is the process-wide Supply used when no other is provided
var DefaultSupply = NewSupply()

// Fresh returns a new TypeVar from DefaultSupply
func Fresh() TypeVar {
	return DefaultSupply.Fresh()
}

type typeVarHasher struct{}

func (typeVarHasher) Hash(v TypeVar) uint32 {
	return uint32(v) ^ uint32(v>>32)
}

func (typeVarHasher) Equal(a, b TypeVar) bool {
	return a == b
}
