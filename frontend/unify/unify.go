// Package unify solves equations between types by finding the most general
// substitution that makes both sides equal
package unify

import (
	"fmt"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/types"
)

// Types finds the most general substitution s such that
// s.Apply(expected) and s.Apply(actual) are structurally equal.
//
// Compound types are unified component by component, left to right, each
// component seeing the substitution found for the previous ones.
// Errors are ilerr.IleError positioned at at, and describe the innermost
// pair of types that could not be unified.
func Types(expected, actual types.Type, at ast.Positioner) (types.Substitution, error) {
	u := unifier{at: ast.RangeOf(at)}
	return u.unify(expected, actual)
}

type unifier struct {
	at ast.Range
}

func (u unifier) mismatch(expected, actual types.Type) error {
	return ilerr.New(ilerr.NewTypeMismatch{
		Positioner: u.at,
		Expected:   expected,
		Actual:     actual,
	})
}

func (u unifier) arity(what string, expected, actual int) error {
	return ilerr.New(ilerr.NewArityMismatch{
		Positioner: u.at,
		What:       what,
		Expected:   expected,
		Actual:     actual,
	})
}

func (u unifier) bind(v types.TypeVar, t types.Type) (types.Substitution, error) {
	if other, ok := t.(types.TypeVar); ok && other == v {
		return types.EmptySubstitution(), nil
	}
	if types.Occurs(v, t) {
		return types.Substitution{}, ilerr.New(ilerr.NewInfiniteType{
			Positioner: u.at,
			Var:        v,
			Type:       t,
		})
	}
	return types.Singleton(v, t), nil
}

func (u unifier) unify(expected, actual types.Type) (types.Substitution, error) {
	if v, ok := expected.(types.TypeVar); ok {
		return u.bind(v, actual)
	}
	if v, ok := actual.(types.TypeVar); ok {
		return u.bind(v, expected)
	}

	switch expected := expected.(type) {
	case *types.Named:
		if actual, ok := actual.(*types.Named); ok && actual.Name == expected.Name {
			return types.EmptySubstitution(), nil
		}
	case *types.Generic:
		actual, ok := actual.(*types.Generic)
		if !ok || actual.Name != expected.Name {
			break
		}
		if len(expected.Args) != len(actual.Args) {
			return types.Substitution{}, u.arity("type arguments for "+expected.Name, len(expected.Args), len(actual.Args))
		}
		return u.unifyAll(expected.Args, actual.Args, types.EmptySubstitution())
	case *types.Func:
		actual, ok := actual.(*types.Func)
		if !ok {
			break
		}
		if len(expected.Params) != len(actual.Params) {
			return types.Substitution{}, u.arity("function parameters", len(expected.Params), len(actual.Params))
		}
		sub, err := u.unifyAll(expected.Params, actual.Params, types.EmptySubstitution())
		if err != nil {
			return sub, err
		}
		return u.unifyAll([]types.Type{expected.Return}, []types.Type{actual.Return}, sub)
	case *types.Tuple:
		actual, ok := actual.(*types.Tuple)
		if !ok {
			break
		}
		if len(expected.Elems) != len(actual.Elems) {
			return types.Substitution{}, u.arity("tuple elements", len(expected.Elems), len(actual.Elems))
		}
		return u.unifyAll(expected.Elems, actual.Elems, types.EmptySubstitution())
	case *types.Union:
		actual, ok := actual.(*types.Union)
		if !ok {
			break
		}
		return u.unifyUnions(expected, actual)
	case *types.Nullable:
		actual, ok := actual.(*types.Nullable)
		if !ok {
			break
		}
		return u.unify(expected.Inner, actual.Inner)
	default:
		panic(fmt.Sprintf("unexpected type %T", expected))
	}
	return types.Substitution{}, u.mismatch(expected, actual)
}

func (u unifier) unifyUnions(expected, actual *types.Union) (types.Substitution, error) {
	if len(expected.Variants) != len(actual.Variants) {
		return types.Substitution{}, u.arity("union variants", len(expected.Variants), len(actual.Variants))
	}
	sub := types.EmptySubstitution()
	for i, expectedVariant := range expected.Variants {
		actualVariant := actual.Variants[i]
		if expectedVariant.Tag != actualVariant.Tag {
			return types.Substitution{}, u.mismatch(expected, actual)
		}
		if len(expectedVariant.Fields) != len(actualVariant.Fields) {
			return types.Substitution{}, u.arity("fields for "+expectedVariant.Tag, len(expectedVariant.Fields), len(actualVariant.Fields))
		}
		var err error
		sub, err = u.unifyAll(expectedVariant.Fields, actualVariant.Fields, sub)
		if err != nil {
			return sub, err
		}
	}
	return sub, nil
}

// unifyAll unifies expected[i] with actual[i] in order, threading acc through
func (u unifier) unifyAll(expected, actual []types.Type, acc types.Substitution) (types.Substitution, error) {
	for i := range expected {
		sub, err := u.unify(acc.Apply(expected[i]), acc.Apply(actual[i]))
		if err != nil {
			return types.Substitution{}, err
		}
		acc = types.Compose(sub, acc)
	}
	return acc, nil
}
