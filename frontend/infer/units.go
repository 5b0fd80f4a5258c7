package infer

import (
	"context"
	"slices"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Unit is an independent program whose types can be inferred
// in parallel with other units
type Unit struct {
	ID   uuid.UUID
	Name string
	Root ast.Expr
}

func NewUnit(name string, root ast.Expr) Unit {
	return Unit{ID: uuid.New(), Name: name, Root: root}
}

type UnitResult struct {
	Unit Unit
	*Result
}

// CheckUnits runs Check on every unit, at most jobs at a time,
// returning results in the same order as units.
// A jobs value below 1 means no limit.
//
// Units share nothing but the variable supply, so diagnostics in one
// unit never affect another. The only error returned is ctx's.
func CheckUnits(ctx context.Context, units []Unit, jobs int, opts ...Option) ([]UnitResult, error) {
	config := newConfig(opts...)
	results := make([]UnitResult, len(units))

	group, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		group.SetLimit(jobs)
	}
	for i, unit := range units {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger := config.Logger.With("unit", unit.Name, "unitID", unit.ID.String())
			logger.Debug("checking unit")
			result := Check(unit.Root, append(slices.Clip(opts), WithLogger(logger))...)
			results[i] = UnitResult{Unit: unit, Result: result}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
