package infer

import (
	"fmt"
	"go/token"
	"log/slog"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/constraint"
	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/cottand/ileinfer/internal/log"
	"github.com/hashicorp/go-set/v3"
)

var (
	numericTypes = []types.Type{types.Int, types.Double}
	addableTypes = []types.Type{types.Int, types.Double, types.String}
	orderedTypes = []types.Type{types.Int, types.Double, types.String}
)

// obligation is a requirement on the type of an operand that can only be
// checked once types are known, like the operands of + being numbers or strings
type obligation struct {
	at      ast.Range
	op      token.Token
	t       types.Type
	allowed []types.Type
}

// Collector traverses expressions gathering the constraints their types
// must satisfy.
//
// Collection never stops at the first problem: unknown names and the like
// are recorded in Errors and replaced by placeholder variables, so that
// independent problems are all reported in one pass.
// A Collector is not safe for concurrent use.
type Collector struct {
	supply *types.Supply
	solver prefixSolver
	out    constraint.Set
	errs   *ilerr.Errors

	// quantified are the variables bound by the schemes of let and fn declarations
	quantified *set.Set[types.TypeVar]
	// placeholders stand for expressions that already have a diagnostic
	placeholders *set.Set[types.TypeVar]
	obligations  []obligation

	logger *slog.Logger
}

func NewCollector(supply *types.Supply, strategy Strategy) *Collector {
	return &Collector{
		supply:       supply,
		solver:       strategy.newSolver(supply),
		errs:         &ilerr.Errors{},
		quantified:   set.New[types.TypeVar](0),
		placeholders: set.New[types.TypeVar](0),
		logger:       log.DefaultLogger.With("section", "infer/collect"),
	}
}

// Synthesize infers the type of e, returning it together
// with the constraints collected while doing so
func (c *Collector) Synthesize(ctx *Context, e ast.Expr) (types.Type, constraint.Set) {
	start := c.out.Len()
	typed := c.synth(ctx, e)
	return typed.Type, c.out.From(start)
}

// Check returns the constraints under which e has type expected
func (c *Collector) Check(ctx *Context, e ast.Expr, expected types.Type) constraint.Set {
	start := c.out.Len()
	c.check(ctx, e, expected)
	return c.out.From(start)
}

// SynthesizeTyped is like Synthesize but returns the typed tree of e.
// Its types are only meaningful once the substitution solving
// Constraints is applied to it
func (c *Collector) SynthesizeTyped(ctx *Context, e ast.Expr) *TypedExpr {
	return c.synth(ctx, e)
}

// Constraints returns everything collected so far, in order
func (c *Collector) Constraints() constraint.Set {
	return c.out
}

// Errors returns the diagnostics found while collecting
func (c *Collector) Errors() *ilerr.Errors {
	return c.errs
}

// Solution solves every constraint collected so far
func (c *Collector) Solution() (types.Substitution, error) {
	return c.solver.solution()
}

func (c *Collector) emit(cs constraint.Constraint) {
	c.out = c.out.Append(cs)
	c.solver.emitted(cs)
	c.logger.Debug("emitted constraint", "constraint", constraint.Slog(cs))
}

func (c *Collector) report(err ilerr.IleError) {
	c.logger.Debug("collection diagnostic", "error", err.Error())
	c.errs = c.errs.With(err)
}

func (c *Collector) fresh() types.TypeVar {
	return c.supply.Fresh()
}

func (c *Collector) placeholder() types.TypeVar {
	v := c.supply.Fresh()
	c.placeholders.Insert(v)
	return v
}

func (c *Collector) oblige(at ast.Range, op token.Token, t types.Type, allowed []types.Type) {
	c.obligations = append(c.obligations, obligation{at: at, op: op, t: t, allowed: allowed})
}

// generalizeAt generalizes t against ctx once every constraint collected so far
// is solved. Variables still subject to an operator obligation stay monomorphic.
//
// If those constraints have no solution, t is not generalized: the
// failure will be reported when solving everything.
func (c *Collector) generalizeAt(ctx *Context, t types.Type) types.Scheme {
	sub, err := c.solver.solution()
	if err != nil {
		c.logger.Debug("not generalizing, previous constraints have no solution", "type", types.Slog(t))
		return types.Mono(t)
	}
	keep := ctx.Apply(sub).FreeTypeVars()
	for _, ob := range c.obligations {
		keep.InsertSet(types.FreeTypeVars(sub.Apply(ob.t)))
	}
	scheme := quantify(sub.Apply(t), keep)
	c.quantified.InsertSlice(scheme.Vars)
	c.logger.Debug("generalized", "scheme", scheme.String())
	return scheme
}

func literalType(lit *ast.Literal, supply *types.Supply) types.Type {
	switch lit.Kind {
	case ast.IntLit:
		return types.Int
	case ast.DoubleLit:
		return types.Double
	case ast.StringLit:
		return types.String
	case ast.BoolLit:
		return types.Bool
	case ast.UnitLit:
		return types.Unit
	case ast.NullLit:
		return types.NullableOf(supply.Fresh())
	default:
		panic(fmt.Sprintf("unexpected literal kind %v", lit.Kind))
	}
}

func (c *Collector) synth(ctx *Context, e ast.Expr) *TypedExpr {
	c.logger.Debug("synthesizing", "expr", ast.Slog(e))
	switch e := e.(type) {
	case *ast.Literal:
		return &TypedExpr{Expr: e, Type: literalType(e, c.supply)}
	case *ast.Ident:
		return c.ident(ctx, e)
	case *ast.Binary:
		return c.binary(ctx, e)
	case *ast.Unary:
		return c.unary(ctx, e)
	case *ast.Call:
		return c.call(ctx, e)
	case *ast.Lambda:
		return c.lambda(ctx, e, nil)
	case *ast.Let:
		return c.let(ctx, e, nil)
	case *ast.If:
		return c.ifExpr(ctx, e, nil)
	case *ast.Match:
		return c.match(ctx, e, nil)
	case *ast.Tuple:
		return c.tuple(ctx, e, nil)
	case *ast.List:
		return c.list(ctx, e, nil)
	case *ast.Ascribe:
		return c.ascribe(ctx, e)
	case *ast.Block:
		return c.block(ctx, e, nil)
	default:
		panic(fmt.Sprintf("unexpected expression %T", e))
	}
}

// check infers the type of e knowing it should be expected.
// Expressions that cannot make use of expected are synthesized,
// and their type required to be a subtype of expected
func (c *Collector) check(ctx *Context, e ast.Expr, expected types.Type) *TypedExpr {
	c.logger.Debug("checking", "expr", ast.Slog(e), "expected", types.Slog(expected))
	switch e := e.(type) {
	case *ast.Literal:
		typed := c.synth(ctx, e)
		c.emit(constraint.NewEquality(expected, typed.Type, e.Range))
		return typed
	case *ast.Lambda:
		if fn, ok := expected.(*types.Func); ok && len(fn.Params) == len(e.Params) {
			return c.lambda(ctx, e, fn)
		}
	case *ast.Let:
		return c.let(ctx, e, expected)
	case *ast.If:
		return c.ifExpr(ctx, e, expected)
	case *ast.Match:
		return c.match(ctx, e, expected)
	case *ast.Block:
		return c.block(ctx, e, expected)
	case *ast.Tuple:
		if tuple, ok := expected.(*types.Tuple); ok && len(tuple.Elems) == len(e.Elems) {
			return c.tuple(ctx, e, tuple)
		}
	case *ast.List:
		if list, ok := expected.(*types.Generic); ok && list.Name == types.ListName && len(list.Args) == 1 {
			return c.list(ctx, e, list.Args[0])
		}
	}
	typed := c.synth(ctx, e)
	c.emit(constraint.NewSubtype(typed.Type, expected, ast.RangeOf(e)))
	return typed
}

func (c *Collector) ident(ctx *Context, e *ast.Ident) *TypedExpr {
	binding, ok := ctx.Lookup(e.Name)
	if !ok {
		c.report(ilerr.New(ilerr.NewUnboundIdentifier{
			Positioner: e.Range,
			Name:       e.Name,
		}))
		return &TypedExpr{Expr: e, Type: c.placeholder()}
	}
	if binding.Scheme.IsMono() {
		return &TypedExpr{Expr: e, Type: binding.Scheme.Body}
	}
	v := c.fresh()
	c.emit(constraint.NewInstance(binding.Scheme, v, e.Range))
	return &TypedExpr{Expr: e, Type: v}
}

func (c *Collector) binary(ctx *Context, e *ast.Binary) *TypedExpr {
	if e.Op == token.LAND || e.Op == token.LOR {
		left := c.check(ctx, e.Left, types.Bool)
		right := c.check(ctx, e.Right, types.Bool)
		return &TypedExpr{Expr: e, Type: types.Bool, Children: []*TypedExpr{left, right}}
	}

	left := c.synth(ctx, e.Left)
	right := c.synth(ctx, e.Right)
	c.emit(constraint.NewEquality(left.Type, right.Type, e.Range))
	typed := &TypedExpr{Expr: e, Children: []*TypedExpr{left, right}}

	switch e.Op {
	case token.ADD:
		c.oblige(e.Range, e.Op, left.Type, addableTypes)
		typed.Type = left.Type
	case token.SUB, token.MUL, token.QUO, token.REM:
		c.oblige(e.Range, e.Op, left.Type, numericTypes)
		typed.Type = left.Type
	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		c.oblige(e.Range, e.Op, left.Type, orderedTypes)
		typed.Type = types.Bool
	case token.EQL, token.NEQ:
		typed.Type = types.Bool
	default:
		panic(fmt.Sprintf("unexpected binary operator %v", e.Op))
	}
	return typed
}

func (c *Collector) unary(ctx *Context, e *ast.Unary) *TypedExpr {
	switch e.Op {
	case token.NOT:
		operand := c.check(ctx, e.Operand, types.Bool)
		return &TypedExpr{Expr: e, Type: types.Bool, Children: []*TypedExpr{operand}}
	case token.SUB:
		operand := c.synth(ctx, e.Operand)
		c.oblige(e.Range, e.Op, operand.Type, numericTypes)
		return &TypedExpr{Expr: e, Type: operand.Type, Children: []*TypedExpr{operand}}
	default:
		panic(fmt.Sprintf("unexpected unary operator %v", e.Op))
	}
}

// call requires the callee to be a function of as many parameters as
// there are arguments. Constraints are positioned at the call itself
func (c *Collector) call(ctx *Context, e *ast.Call) *TypedExpr {
	if typed, ok := c.callWithWrongArity(ctx, e); ok {
		return typed
	}
	callee := c.synth(ctx, e.Callee)
	params := make([]types.Type, len(e.Args))
	for i := range params {
		params[i] = c.fresh()
	}
	ret := c.fresh()
	c.emit(constraint.NewEquality(callee.Type, types.NewFunc(params, ret), e.Range))

	children := []*TypedExpr{callee}
	for i, arg := range e.Args {
		typedArg := c.synth(ctx, arg)
		c.emit(constraint.NewEquality(params[i], typedArg.Type, e.Range))
		children = append(children, typedArg)
	}
	return &TypedExpr{Expr: e, Type: ret, Children: children}
}

// callWithWrongArity reports a call to a declared function with the wrong
// number of arguments, without emitting constraints that could only fail
func (c *Collector) callWithWrongArity(ctx *Context, e *ast.Call) (*TypedExpr, bool) {
	ident, ok := e.Callee.(*ast.Ident)
	if !ok {
		return nil, false
	}
	signature, ok := ctx.LookupFunc(ident.Name)
	if !ok {
		return nil, false
	}
	// a later binding may shadow the function
	binding, _ := ctx.Lookup(ident.Name)
	fn, ok := signature.Body.(*types.Func)
	if !ok || !binding.Scheme.Equivalent(signature) || len(fn.Params) == len(e.Args) {
		return nil, false
	}

	c.report(ilerr.New(ilerr.NewArityMismatch{
		Positioner: e.Range,
		What:       "arguments for " + ident.Name,
		Expected:   len(fn.Params),
		Actual:     len(e.Args),
	}))
	children := []*TypedExpr{{Expr: e.Callee, Type: fn}}
	for _, arg := range e.Args {
		children = append(children, c.synth(ctx, arg))
	}
	return &TypedExpr{Expr: e, Type: c.placeholder(), Children: children}, true
}

// lambda infers the type of e. When expected is not nil, it has
// as many parameters as e and e is checked against it
func (c *Collector) lambda(ctx *Context, e *ast.Lambda, expected *types.Func) *TypedExpr {
	vars := annotationVars{}
	scope := ctx.PushScope()
	typed := &TypedExpr{Expr: e}

	params := make([]types.Type, len(e.Params))
	for i, param := range e.Params {
		switch {
		case param.Type != nil:
			params[i] = c.resolveAnnotation(ctx, param.Type, vars)
			if expected != nil {
				c.emit(constraint.NewEquality(expected.Params[i], params[i], param.Range))
			}
		case expected != nil:
			params[i] = expected.Params[i]
		default:
			params[i] = c.fresh()
		}
		scope = scope.Declare(param.Name, types.Mono(params[i]), false)
		typed.Decls = append(typed.Decls, &TypedDecl{
			Name:   param.Name,
			Decl:   param.Range,
			Scheme: types.Mono(params[i]),
		})
	}

	var ret types.Type
	var body *TypedExpr
	switch {
	case e.Returns != nil:
		ret = c.resolveAnnotation(ctx, e.Returns, vars)
		if expected != nil {
			c.emit(constraint.NewEquality(expected.Return, ret, e.Returns))
		}
		body = c.check(scope, e.Body, ret)
	case expected != nil:
		ret = expected.Return
		body = c.check(scope, e.Body, ret)
	default:
		body = c.synth(scope, e.Body)
		ret = body.Type
	}

	typed.Type = types.NewFunc(params, ret)
	typed.Children = []*TypedExpr{body}
	return typed
}

// bindValue infers the type of the value bound to name and generalizes it against ctx.
//
// The value is collected in a child scope of ctx, where name refers to
// the value itself (monomorphically) when the value is a function.
func (c *Collector) bindValue(ctx *Context, name string, annotation ast.TypeExpr, value ast.Expr) (*TypedExpr, types.Scheme) {
	scope := ctx.PushScope()
	_, recursive := value.(*ast.Lambda)
	var self types.TypeVar
	if recursive {
		self = c.fresh()
		scope = scope.Declare(name, types.Mono(self), false)
	}

	var typed *TypedExpr
	var valueType types.Type
	if annotation != nil {
		valueType = c.resolveAnnotation(ctx, annotation, annotationVars{})
		typed = c.check(scope, value, valueType)
	} else {
		typed = c.synth(scope, value)
		valueType = typed.Type
	}
	if recursive {
		c.emit(constraint.NewEquality(self, valueType, ast.RangeOf(value)))
	}
	return typed, c.generalizeAt(ctx, valueType)
}

func (c *Collector) let(ctx *Context, e *ast.Let, expected types.Type) *TypedExpr {
	value, scheme := c.bindValue(ctx, e.Name, e.Type, e.Value)
	bodyCtx := ctx.Declare(e.Name, scheme, false)

	var body *TypedExpr
	if expected != nil {
		body = c.check(bodyCtx, e.Body, expected)
	} else {
		body = c.synth(bodyCtx, e.Body)
	}
	return &TypedExpr{
		Expr:     e,
		Type:     body.Type,
		Children: []*TypedExpr{value, body},
		Decls: []*TypedDecl{{
			Name:   e.Name,
			Decl:   e.Range,
			Scheme: scheme,
			Value:  value,
		}},
	}
}

func (c *Collector) ifExpr(ctx *Context, e *ast.If, expected types.Type) *TypedExpr {
	cond := c.check(ctx, e.Cond, types.Bool)
	var then *TypedExpr
	if expected == nil {
		then = c.synth(ctx, e.Then)
		expected = then.Type
	} else {
		then = c.check(ctx, e.Then, expected)
	}
	els := c.check(ctx, e.Else, expected)
	return &TypedExpr{Expr: e, Type: expected, Children: []*TypedExpr{cond, then, els}}
}

func (c *Collector) tuple(ctx *Context, e *ast.Tuple, expected *types.Tuple) *TypedExpr {
	typed := &TypedExpr{Expr: e}
	elems := make([]types.Type, len(e.Elems))
	for i, elem := range e.Elems {
		var typedElem *TypedExpr
		if expected != nil {
			typedElem = c.check(ctx, elem, expected.Elems[i])
		} else {
			typedElem = c.synth(ctx, elem)
		}
		elems[i] = typedElem.Type
		typed.Children = append(typed.Children, typedElem)
	}
	typed.Type = types.NewTuple(elems...)
	return typed
}

// list requires every element to have the type elem. When elem is
// nil, it is the type of the first element
func (c *Collector) list(ctx *Context, e *ast.List, elem types.Type) *TypedExpr {
	typed := &TypedExpr{Expr: e}
	for _, item := range e.Elems {
		var typedItem *TypedExpr
		if elem == nil {
			typedItem = c.synth(ctx, item)
			elem = typedItem.Type
		} else {
			typedItem = c.check(ctx, item, elem)
		}
		typed.Children = append(typed.Children, typedItem)
	}
	if elem == nil {
		elem = c.fresh()
	}
	typed.Type = types.ListOf(elem)
	return typed
}

func (c *Collector) ascribe(ctx *Context, e *ast.Ascribe) *TypedExpr {
	expected := c.resolveAnnotation(ctx, e.Type, annotationVars{})
	inner := c.check(ctx, e.Expr, expected)
	return &TypedExpr{Expr: e, Type: expected, Children: []*TypedExpr{inner}}
}
