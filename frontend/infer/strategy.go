package infer

import (
	"fmt"

	"github.com/cottand/ileinfer/frontend/constraint"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/cottand/ileinfer/frontend/unify"
)

// Strategy decides when the constraints gathered by a Collector get solved.
//
// There are exactly two: ConstraintStrategy and AlgorithmicStrategy.
// Both solve constraints in the order they were collected, so they
// agree on every program.
type Strategy interface {
	Name() string
	newSolver(supply *types.Supply) prefixSolver
}

var (
	// ConstraintStrategy collects constraints and only solves them when
	// a solution is needed: at let-generalization and once collection is done
	ConstraintStrategy Strategy = constraintStrategy{}
	// AlgorithmicStrategy solves each constraint as soon as it is collected,
	// like Algorithm W
	AlgorithmicStrategy Strategy = algorithmicStrategy{}
)

// StrategyByName returns the Strategy called name
func StrategyByName(name string) (Strategy, error) {
	for _, s := range []Strategy{ConstraintStrategy, AlgorithmicStrategy} {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown strategy '%s', expected '%s' or '%s'", name, ConstraintStrategy.Name(), AlgorithmicStrategy.Name())
}

// prefixSolver is told about every constraint as it is collected, and can
// solve all of those collected so far at any point
type prefixSolver interface {
	emitted(c constraint.Constraint)
	// solution returns the substitution that solves every constraint
	// emitted so far, or the first failure
	solution() (types.Substitution, error)
}

type constraintStrategy struct{}

func (constraintStrategy) Name() string { return "constraints" }

func (constraintStrategy) newSolver(supply *types.Supply) prefixSolver {
	return &lazySolver{solver: unify.NewIncremental(supply)}
}

type lazySolver struct {
	solver  *unify.Incremental
	pending []constraint.Constraint
}

func (s *lazySolver) emitted(c constraint.Constraint) {
	s.pending = append(s.pending, c)
}

func (s *lazySolver) solution() (types.Substitution, error) {
	for _, c := range s.pending {
		// failures are sticky and returned by Err
		_ = s.solver.Add(c)
	}
	s.pending = nil
	return s.solver.Substitution(), s.solver.Err()
}

type algorithmicStrategy struct{}

func (algorithmicStrategy) Name() string { return "algorithmic" }

func (algorithmicStrategy) newSolver(supply *types.Supply) prefixSolver {
	return &eagerSolver{solver: unify.NewIncremental(supply)}
}

type eagerSolver struct {
	solver *unify.Incremental
}

func (s *eagerSolver) emitted(c constraint.Constraint) {
	_ = s.solver.Add(c)
}

func (s *eagerSolver) solution() (types.Substitution, error) {
	return s.solver.Substitution(), s.solver.Err()
}
