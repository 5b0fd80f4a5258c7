package unify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cottand/ileinfer/frontend/constraint"
	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/cottand/ileinfer/internal/log"
)

var logger = log.DefaultLogger.With("section", "infer/solve")

// Solve solves every constraint of set in order, returning the
// composition of the substitutions found.
//
// Solving stops at the first constraint that cannot be solved, which is returned
// as an ilerr.NewConstraintSolvingFailure. Instance constraints draw the
// variables they instantiate schemes with from supply.
func Solve(set constraint.Set, supply *types.Supply) (types.Substitution, error) {
	solver := NewIncremental(supply)
	for _, c := range set.All() {
		if err := solver.Add(c); err != nil {
			return types.Substitution{}, err
		}
	}
	return solver.Substitution(), nil
}

// Incremental solves constraints one at a time, as they are added,
// keeping the substitution found so far.
//
// Once a constraint fails, every further Add returns that same failure.
type Incremental struct {
	supply *types.Supply
	sub    types.Substitution
	count  int
	failed error
}

func NewIncremental(supply *types.Supply) *Incremental {
	return &Incremental{supply: supply}
}

// Substitution is the composition of the solutions of every
// constraint added so far
func (s *Incremental) Substitution() types.Substitution {
	return s.sub
}

// Count is how many constraints were added
func (s *Incremental) Count() int {
	return s.count
}

// Err is the failure that stopped solving, if any
func (s *Incremental) Err() error {
	return s.failed
}

func (s *Incremental) Add(c constraint.Constraint) error {
	index := s.count
	s.count++
	if s.failed != nil {
		return s.failed
	}
	sub, err := s.solveOne(c)
	if err != nil {
		cause, ok := err.(ilerr.IleError)
		if !ok {
			cause = ilerr.New(ilerr.Unclassified{From: err, Positioner: c})
		}
		s.failed = ilerr.New(ilerr.NewConstraintSolvingFailure{
			Positioner: c,
			Constraint: c.Apply(s.sub),
			Index:      index,
			Reason:     cause,
		})
		logger.Debug("constraint failed", "index", index, "constraint", constraint.Slog(c), "error", err)
		return s.failed
	}
	s.sub = types.Compose(sub, s.sub)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("solved constraint", "index", index, "constraint", constraint.Slog(c), "sub", sub)
	}
	return nil
}

func (s *Incremental) solveOne(c constraint.Constraint) (types.Substitution, error) {
	switch c := c.(type) {
	case *constraint.Equality:
		return Types(s.sub.Apply(c.Left), s.sub.Apply(c.Right), c)
	case *constraint.Subtype:
		return Types(s.sub.Apply(c.Super), s.sub.Apply(c.Sub), c)
	case *constraint.Instance:
		instance := s.sub.ApplyScheme(c.Scheme).Instantiate(s.supply)
		return Types(instance, s.sub.Apply(c.Type), c)
	default:
		panic(fmt.Sprintf("unexpected constraint %T", c))
	}
}
