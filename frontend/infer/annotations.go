package infer

import (
	"fmt"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/types"
)

// annotationVars maps the names of type variables written in annotations,
// like 'a, to the TypeVar they stand for.
// Names are shared within a single declaration.
//
// The parameters of a type declaration are also kept here, both with and without
// the leading quote
type annotationVars map[string]types.TypeVar

func (vars annotationVars) key(name string) string {
	return "'" + name
}

var builtinTypes = map[string]types.Type{
	types.IntName:    types.Int,
	types.DoubleName: types.Double,
	types.StringName: types.String,
	types.BoolName:   types.Bool,
	types.UnitName:   types.Unit,
}

// builtinGenerics are the generic types available without declaration, and their arity
var builtinGenerics = map[string]int{
	types.ListName: 1,
	types.MapName:  2,
}

// resolveAnnotation turns an annotation into the type it denotes.
// Unknown names are reported and replaced by a placeholder variable
func (c *Collector) resolveAnnotation(ctx *Context, annotation ast.TypeExpr, vars annotationVars) types.Type {
	switch annotation := annotation.(type) {
	case *ast.TypeName:
		return c.resolveTypeName(ctx, annotation, vars)
	case *ast.TypeVarName:
		if v, ok := vars[vars.key(annotation.Name)]; ok {
			return v
		}
		v := c.supply.Fresh()
		vars[vars.key(annotation.Name)] = v
		return v
	case *ast.FuncTypeExpr:
		params := make([]types.Type, len(annotation.Params))
		for i, param := range annotation.Params {
			params[i] = c.resolveAnnotation(ctx, param, vars)
		}
		return types.NewFunc(params, c.resolveAnnotation(ctx, annotation.Return, vars))
	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(annotation.Elems))
		for i, elem := range annotation.Elems {
			elems[i] = c.resolveAnnotation(ctx, elem, vars)
		}
		return types.NewTuple(elems...)
	case *ast.NullableTypeExpr:
		return types.NullableOf(c.resolveAnnotation(ctx, annotation.Inner, vars))
	default:
		panic(fmt.Sprintf("unexpected type annotation %T", annotation))
	}
}

func (c *Collector) resolveTypeName(ctx *Context, annotation *ast.TypeName, vars annotationVars) types.Type {
	args := make([]types.Type, len(annotation.Args))
	for i, arg := range annotation.Args {
		args[i] = c.resolveAnnotation(ctx, arg, vars)
	}
	arityMismatch := func(expected int) {
		c.report(ilerr.New(ilerr.NewArityMismatch{
			Positioner: annotation.Range,
			What:       "type arguments for " + annotation.Name,
			Expected:   expected,
			Actual:     len(args),
		}))
	}
	// missing arguments become placeholders, extra ones are dropped
	fitArgs := func(expected int) []types.Type {
		if len(args) == expected {
			return args
		}
		arityMismatch(expected)
		fitted := make([]types.Type, expected)
		for i := range fitted {
			if i < len(args) {
				fitted[i] = args[i]
			} else {
				fitted[i] = c.placeholder()
			}
		}
		return fitted
	}

	if param, ok := vars[annotation.Name]; ok {
		if len(args) != 0 {
			arityMismatch(0)
		}
		return param
	}
	if builtin, ok := builtinTypes[annotation.Name]; ok {
		if len(args) != 0 {
			arityMismatch(0)
		}
		return builtin
	}
	if arity, ok := builtinGenerics[annotation.Name]; ok {
		return types.NewGeneric(annotation.Name, fitArgs(arity)...)
	}
	if def, ok := ctx.LookupType(annotation.Name); ok {
		instance, _ := def.Instantiate(fitArgs(len(def.Params)))
		return instance
	}
	c.report(ilerr.New(ilerr.NewUnknownType{
		Positioner: annotation.Range,
		Name:       annotation.Name,
	}))
	return c.placeholder()
}
