// Package constraint holds the obligations on types gathered while traversing
// an expression tree, before they are solved
package constraint

import (
	"fmt"
	"log/slog"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/types"
)

var (
	_ Constraint = (*Equality)(nil)
	_ Constraint = (*Subtype)(nil)
	_ Constraint = (*Instance)(nil)
)

// Constraint is an obligation on types that must hold for the program to be well-typed.
//
// The set of constraints is closed:
//
//	Equality:  Left and Right must be the same type
//	Subtype:   Sub must be usable where Super is expected
//	Instance:  Type must be an instance of Scheme
//
// Every Constraint is positioned at the expression that gave rise to it
type Constraint interface {
	ast.Positioner
	fmt.Stringer
	// Apply returns this constraint with sub applied to every type in it
	Apply(sub types.Substitution) Constraint
	constraintNode()
}

type Equality struct {
	ast.Range
	Left, Right types.Type
}

// Subtype is currently solved as an Equality between Super (expected) and Sub (actual)
type Subtype struct {
	ast.Range
	Sub, Super types.Type
}

type Instance struct {
	ast.Range
	Scheme types.Scheme
	Type   types.Type
}

func NewEquality(left, right types.Type, at ast.Positioner) *Equality {
	return &Equality{Range: ast.RangeOf(at), Left: left, Right: right}
}

func NewSubtype(sub, super types.Type, at ast.Positioner) *Subtype {
	return &Subtype{Range: ast.RangeOf(at), Sub: sub, Super: super}
}

func NewInstance(scheme types.Scheme, t types.Type, at ast.Positioner) *Instance {
	return &Instance{Range: ast.RangeOf(at), Scheme: scheme, Type: t}
}

func (*Equality) constraintNode() {}
func (*Subtype) constraintNode()  {}
func (*Instance) constraintNode() {}

func (c *Equality) String() string {
	return fmt.Sprintf("%v ≡ %v", c.Left, c.Right)
}

func (c *Subtype) String() string {
	return fmt.Sprintf("%v <: %v", c.Sub, c.Super)
}

func (c *Instance) String() string {
	return fmt.Sprintf("%v ≼ %v", c.Type, c.Scheme)
}

func (c *Equality) Apply(sub types.Substitution) Constraint {
	return &Equality{Range: c.Range, Left: sub.Apply(c.Left), Right: sub.Apply(c.Right)}
}

func (c *Subtype) Apply(sub types.Substitution) Constraint {
	return &Subtype{Range: c.Range, Sub: sub.Apply(c.Sub), Super: sub.Apply(c.Super)}
}

func (c *Instance) Apply(sub types.Substitution) Constraint {
	return &Instance{Range: c.Range, Scheme: sub.ApplyScheme(c.Scheme), Type: sub.Apply(c.Type)}
}

// Slog wraps a Constraint as a slog.LogValuer so it is only printed when logged
func Slog(c Constraint) slog.LogValuer {
	return constraintLogValuer{c}
}

type constraintLogValuer struct{ c Constraint }

func (l constraintLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("c", l.c.String()),
		slog.String("pos", ast.RangeOf(l.c).String()),
	)
}
