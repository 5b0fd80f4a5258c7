package infer

import (
	"fmt"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/constraint"
	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/types"
)

// block collects statements in order in a child scope of ctx, so that
// each statement sees what the previous ones declared as well as
// everything visible outside the block
func (c *Collector) block(ctx *Context, e *ast.Block, expected types.Type) *TypedExpr {
	scope := ctx.PushScope()
	typed := &TypedExpr{Expr: e}
	for _, stmt := range e.Stmts {
		scope = c.stmt(scope, stmt, typed)
	}

	switch {
	case e.Result == nil:
		typed.Type = types.Unit
		if expected != nil {
			c.emit(constraint.NewEquality(expected, types.Unit, e.Range))
		}
	case expected != nil:
		result := c.check(scope, e.Result, expected)
		typed.Children = append(typed.Children, result)
		typed.Type = result.Type
	default:
		result := c.synth(scope, e.Result)
		typed.Children = append(typed.Children, result)
		typed.Type = result.Type
	}
	return typed
}

// stmt collects s, adding what it declares to block, and returns
// the scope the statements following s see
func (c *Collector) stmt(scope *Context, s ast.Stmt, block *TypedExpr) *Context {
	switch s := s.(type) {
	case *ast.LetStmt:
		var value *TypedExpr
		var scheme types.Scheme
		if s.Mutable {
			value, scheme = c.bindMutable(scope, s)
		} else {
			value, scheme = c.bindValue(scope, s.Name, s.Type, s.Value)
		}
		block.Children = append(block.Children, value)
		block.Decls = append(block.Decls, &TypedDecl{Name: s.Name, Decl: s, Scheme: scheme, Value: value})
		return scope.Declare(s.Name, scheme, s.Mutable)

	case *ast.AssignStmt:
		binding, ok := scope.Lookup(s.Name)
		var value *TypedExpr
		switch {
		case !ok:
			c.report(ilerr.New(ilerr.NewUnboundIdentifier{Positioner: s.Range, Name: s.Name}))
			value = c.synth(scope, s.Value)
		case !binding.Mutable:
			c.report(ilerr.New(ilerr.NewImmutableAssignment{Positioner: s.Range, Name: s.Name}))
			value = c.synth(scope, s.Value)
		default:
			value = c.check(scope, s.Value, binding.Scheme.Body)
		}
		block.Children = append(block.Children, value)
		return scope

	case *ast.FuncDecl:
		return c.funcDecl(scope, s, block)

	case *ast.TypeDecl:
		return c.typeDecl(scope, s)

	case *ast.ExprStmt:
		block.Children = append(block.Children, c.synth(scope, s.X))
		return scope

	default:
		panic(fmt.Sprintf("unexpected statement %T", s))
	}
}

// bindMutable infers the type of a var declaration, which is never generalized
func (c *Collector) bindMutable(scope *Context, s *ast.LetStmt) (*TypedExpr, types.Scheme) {
	if s.Type != nil {
		annotated := c.resolveAnnotation(scope, s.Type, annotationVars{})
		return c.check(scope.PushScope(), s.Value, annotated), types.Mono(annotated)
	}
	value := c.synth(scope.PushScope(), s.Value)
	return value, types.Mono(value.Type)
}

// funcDecl binds a named function. Within its own body, a fully annotated
// function has its declared (possibly polymorphic) type, while any other
// function is monomorphic until generalized after its body
func (c *Collector) funcDecl(scope *Context, d *ast.FuncDecl, block *TypedExpr) *Context {
	vars := annotationVars{}
	params := make([]types.Type, len(d.Params))
	for i, param := range d.Params {
		if param.Type != nil {
			params[i] = c.resolveAnnotation(scope, param.Type, vars)
		} else {
			params[i] = c.fresh()
		}
	}
	var ret types.Type
	if d.Returns != nil {
		ret = c.resolveAnnotation(scope, d.Returns, vars)
	} else {
		ret = c.fresh()
	}
	signature := types.NewFunc(params, ret)

	self := types.Mono(signature)
	if d.IsFullyAnnotated() {
		self = Generalize(scope, signature)
	}
	bodyScope := scope.PushScope().
		Declare(d.Name, self, false).
		DeclareFunc(d.Name, self)
	for i, param := range d.Params {
		bodyScope = bodyScope.Declare(param.Name, types.Mono(params[i]), false)
	}

	body := c.check(bodyScope, d.Body, ret)
	scheme := c.generalizeAt(scope, signature)
	if d.IsFullyAnnotated() {
		c.checkRigid(scope, d, self)
	}

	block.Children = append(block.Children, body)
	block.Decls = append(block.Decls, &TypedDecl{Name: d.Name, Decl: d, Scheme: scheme, Value: body})
	return scope.Declare(d.Name, scheme, false).DeclareFunc(d.Name, scheme)
}

// checkRigid reports a fully annotated function whose body narrowed one of
// its type variables, or made two of them equal. Calls in the body were
// checked against the declared scheme, so such a body is not allowed
func (c *Collector) checkRigid(scope *Context, d *ast.FuncDecl, declared types.Scheme) {
	sub, err := c.solver.solution()
	if err != nil || declared.IsMono() {
		return
	}
	ambient := scope.Apply(sub).FreeTypeVars()
	seen := make(map[types.TypeVar]bool, len(declared.Vars))
	for _, v := range declared.Vars {
		solved, isVar := sub.Apply(v).(types.TypeVar)
		if !isVar || seen[solved] || ambient.Contains(solved) {
			c.report(ilerr.New(ilerr.NewTypeMismatch{
				Positioner: d.Range,
				Expected:   declared.Body,
				Actual:     sub.Apply(declared.Body),
			}))
			return
		}
		seen[solved] = true
	}
}

// typeDecl declares a union type together with a constructor for each of its variants.
// Variants may not refer to the type being declared
func (c *Collector) typeDecl(scope *Context, d *ast.TypeDecl) *Context {
	vars := annotationVars{}
	params := make([]types.TypeVar, len(d.Params))
	for i, name := range d.Params {
		params[i] = c.fresh()
		vars[name] = params[i]
		vars[vars.key(name)] = params[i]
	}

	seen := make(map[string]bool, len(d.Variants))
	variants := make([]types.Variant, 0, len(d.Variants))
	for _, variant := range d.Variants {
		if seen[variant.Tag] {
			c.report(ilerr.New(ilerr.Unclassified{
				Positioner: variant.Range,
				From:       fmt.Errorf("variant '%s' of type '%s' is declared more than once", variant.Tag, d.Name),
			}))
			continue
		}
		seen[variant.Tag] = true
		fields := make([]types.Type, len(variant.Fields))
		for i, field := range variant.Fields {
			fields[i] = c.resolveAnnotation(scope, field, vars)
		}
		variants = append(variants, types.Variant{Tag: variant.Tag, Fields: fields})
	}

	union := types.NewUnion(variants...)
	def := &TypeDef{Name: d.Name, Params: params, Type: union, Decl: d}
	ctors := make([]*Constructor, 0, len(union.Variants))
	for _, variant := range union.Variants {
		var body types.Type = union
		if len(variant.Fields) > 0 {
			body = types.NewFunc(variant.Fields, union)
		}
		ctors = append(ctors, &Constructor{
			Tag:    variant.Tag,
			Def:    def,
			Fields: variant.Fields,
			Scheme: types.Forall(params, body),
		})
	}

	next := scope.DeclareType(def, ctors...)
	for _, ctor := range ctors {
		next = next.Declare(ctor.Tag, ctor.Scheme, false)
	}
	return next
}
