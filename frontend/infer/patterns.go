package infer

import (
	"fmt"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/constraint"
	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/types"
)

// match collects each arm in its own scope, where the variables of its
// pattern are bound. Every arm body shares the same result type
func (c *Collector) match(ctx *Context, e *ast.Match, expected types.Type) *TypedExpr {
	scrutinee := c.synth(ctx, e.Scrutinee)
	typed := &TypedExpr{Expr: e, Children: []*TypedExpr{scrutinee}}

	result := expected
	for _, arm := range e.Arms {
		pattern, armCtx := c.pattern(ctx.PushScope(), arm.Pattern)
		c.emit(constraint.NewEquality(scrutinee.Type, pattern.Type, ast.RangeOf(arm.Pattern)))
		typed.Patterns = append(typed.Patterns, pattern)

		if arm.Guard != nil {
			typed.Children = append(typed.Children, c.check(armCtx, arm.Guard, types.Bool))
		}
		var body *TypedExpr
		if result == nil {
			body = c.synth(armCtx, arm.Body)
			result = body.Type
		} else {
			body = c.check(armCtx, arm.Body, result)
		}
		typed.Children = append(typed.Children, body)
	}
	if result == nil {
		result = c.fresh()
	}
	typed.Type = result
	return typed
}

// pattern returns the type of the values p matches, and ctx with
// the variables p binds
func (c *Collector) pattern(ctx *Context, p ast.Pattern) (*TypedPattern, *Context) {
	switch p := p.(type) {
	case *ast.WildcardPat:
		return &TypedPattern{Pattern: p, Type: c.fresh()}, ctx
	case *ast.VarPat:
		v := c.fresh()
		return &TypedPattern{Pattern: p, Type: v}, ctx.Declare(p.Name, types.Mono(v), false)
	case *ast.LitPat:
		return &TypedPattern{Pattern: p, Type: literalType(p.Lit, c.supply)}, ctx
	case *ast.TuplePat:
		typed := &TypedPattern{Pattern: p}
		elems := make([]types.Type, len(p.Elems))
		for i, elem := range p.Elems {
			var child *TypedPattern
			child, ctx = c.pattern(ctx, elem)
			elems[i] = child.Type
			typed.Children = append(typed.Children, child)
		}
		typed.Type = types.NewTuple(elems...)
		return typed, ctx
	case *ast.CtorPat:
		return c.ctorPattern(ctx, p)
	default:
		panic(fmt.Sprintf("unexpected pattern %T", p))
	}
}

func (c *Collector) ctorPattern(ctx *Context, p *ast.CtorPat) (*TypedPattern, *Context) {
	typed := &TypedPattern{Pattern: p}
	ctor, ok := ctx.LookupConstructor(p.Name)
	if !ok {
		c.report(ilerr.New(ilerr.NewUnboundIdentifier{
			Positioner: p.Range,
			Name:       p.Name,
		}))
		typed.Type = c.placeholder()
		for _, arg := range p.Args {
			var child *TypedPattern
			child, ctx = c.pattern(ctx, arg)
			typed.Children = append(typed.Children, child)
		}
		return typed, ctx
	}

	args := make([]types.Type, len(ctor.Def.Params))
	for i := range args {
		args[i] = c.fresh()
	}
	union, sub := ctor.Def.Instantiate(args)
	typed.Type = union

	if len(p.Args) != len(ctor.Fields) {
		c.report(ilerr.New(ilerr.NewArityMismatch{
			Positioner: p.Range,
			What:       "fields for " + p.Name,
			Expected:   len(ctor.Fields),
			Actual:     len(p.Args),
		}))
	}
	for i, arg := range p.Args {
		var child *TypedPattern
		child, ctx = c.pattern(ctx, arg)
		if i < len(ctor.Fields) {
			c.emit(constraint.NewEquality(sub.Apply(ctor.Fields[i]), child.Type, ast.RangeOf(arg)))
		}
		typed.Children = append(typed.Children, child)
	}
	return typed, ctx
}
