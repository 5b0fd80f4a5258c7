package infer

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/hashicorp/go-set/v3"
)

// Binding is what a variable name refers to in a Context
type Binding struct {
	Scheme types.Scheme
	// Mutable bindings were declared with var and may be reassigned
	Mutable bool
}

// TypeDef is a user-declared union type.
// Params are the variables its variants are written in terms of
type TypeDef struct {
	Name   string
	Params []types.TypeVar
	// Type is a *types.Union
	Type types.Type
	Decl *ast.TypeDecl
}

// Instantiate returns the union of d with every parameter replaced by args,
// together with the substitution used to do so
func (d *TypeDef) Instantiate(args []types.Type) (types.Type, types.Substitution) {
	mapping := make(map[types.TypeVar]types.Type, len(d.Params))
	for i, param := range d.Params {
		mapping[param] = args[i]
	}
	sub := types.SubstitutionOf(mapping)
	return sub.Apply(d.Type), sub
}

// Constructor builds one variant of a TypeDef
type Constructor struct {
	Tag    string
	Def    *TypeDef
	Fields []types.Type
	// Scheme is ∀ Def.Params. (Fields) -> Def.Type, or ∀ Def.Params. Def.Type
	// when there are no fields
	Scheme types.Scheme
}

// Context is an immutable, lexically scoped environment.
//
// Declaring something returns a new Context, the receiver is not modified.
// Lookups search the Context first and then its parents.
type Context struct {
	parent   *Context
	vars     *immutable.Map[string, Binding]
	typeDefs *immutable.Map[string, *TypeDef]
	ctors    *immutable.Map[string, *Constructor]
	funcs    *immutable.Map[string, types.Scheme]
}

func newContext(parent *Context) *Context {
	return &Context{
		parent:   parent,
		vars:     immutable.NewMap[string, Binding](immutable.NewHasher("")),
		typeDefs: immutable.NewMap[string, *TypeDef](immutable.NewHasher("")),
		ctors:    immutable.NewMap[string, *Constructor](immutable.NewHasher("")),
		funcs:    immutable.NewMap[string, types.Scheme](immutable.NewHasher("")),
	}
}

// NewRootContext returns a Context with the boolean literals and builtins declared
func NewRootContext(builtins map[string]types.Scheme) *Context {
	ctx := newContext(nil).
		Declare("true", types.Mono(types.Bool), false).
		Declare("false", types.Mono(types.Bool), false)
	for name, scheme := range builtins {
		ctx = ctx.Declare(name, scheme, false)
	}
	return ctx
}

func (c *Context) with() *Context {
	copied := *c
	return &copied
}

// PushScope returns a new, empty child of c
func (c *Context) PushScope() *Context {
	return newContext(c)
}

func (c *Context) Parent() *Context {
	return c.parent
}

func (c *Context) Declare(name string, scheme types.Scheme, mutable bool) *Context {
	next := c.with()
	next.vars = c.vars.Set(name, Binding{Scheme: scheme, Mutable: mutable})
	return next
}

func (c *Context) Lookup(name string) (Binding, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if binding, ok := ctx.vars.Get(name); ok {
			return binding, true
		}
	}
	return Binding{}, false
}

// DeclareType adds def and a constructor for each of its variants
func (c *Context) DeclareType(def *TypeDef, ctors ...*Constructor) *Context {
	next := c.with()
	next.typeDefs = c.typeDefs.Set(def.Name, def)
	for _, ctor := range ctors {
		next.ctors = next.ctors.Set(ctor.Tag, ctor)
	}
	return next
}

func (c *Context) LookupType(name string) (*TypeDef, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if def, ok := ctx.typeDefs.Get(name); ok {
			return def, true
		}
	}
	return nil, false
}

func (c *Context) LookupConstructor(tag string) (*Constructor, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctor, ok := ctx.ctors.Get(tag); ok {
			return ctor, true
		}
	}
	return nil, false
}

// DeclareFunc records the signature of a named function declaration
func (c *Context) DeclareFunc(name string, signature types.Scheme) *Context {
	next := c.with()
	next.funcs = c.funcs.Set(name, signature)
	return next
}

// LookupFunc returns the signature of the innermost fn declaration called name,
// even when a later binding shadows it. Calls use it to check argument counts
func (c *Context) LookupFunc(name string) (types.Scheme, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if sig, ok := ctx.funcs.Get(name); ok {
			return sig, true
		}
	}
	return types.Scheme{}, false
}

// FreeTypeVars returns the variables free in any binding of c or its parents
func (c *Context) FreeTypeVars() *set.Set[types.TypeVar] {
	free := set.New[types.TypeVar](0)
	for ctx := c; ctx != nil; ctx = ctx.parent {
		itr := ctx.vars.Iterator()
		for !itr.Done() {
			_, binding, _ := itr.Next()
			free.InsertSet(binding.Scheme.FreeTypeVars())
		}
		funcs := ctx.funcs.Iterator()
		for !funcs.Done() {
			_, sig, _ := funcs.Next()
			free.InsertSet(sig.FreeTypeVars())
		}
	}
	return free
}

// Apply returns c with sub applied to every binding of c and its parents
func (c *Context) Apply(sub types.Substitution) *Context {
	if c == nil {
		return nil
	}
	if sub.IsEmpty() {
		return c
	}
	next := c.with()
	next.parent = c.parent.Apply(sub)

	vars := c.vars
	itr := c.vars.Iterator()
	for !itr.Done() {
		name, binding, _ := itr.Next()
		binding.Scheme = sub.ApplyScheme(binding.Scheme)
		vars = vars.Set(name, binding)
	}
	next.vars = vars

	funcs := c.funcs
	funcsItr := c.funcs.Iterator()
	for !funcsItr.Done() {
		name, sig, _ := funcsItr.Next()
		funcs = funcs.Set(name, sub.ApplyScheme(sig))
	}
	next.funcs = funcs
	return next
}
