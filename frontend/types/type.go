package types

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

var (
	_ Type = TypeVar(0)
	_ Type = (*Named)(nil)
	_ Type = (*Generic)(nil)
	_ Type = (*Func)(nil)
	_ Type = (*Tuple)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*Nullable)(nil)
)

// Type is the result of inference.
//
// Types are immutable and compared structurally with Equal, they carry no
// information about where in the source they come from.
// The set of types is closed:
//
//	TypeVar:   not-yet-known type
//	Named:     primitive or named type, like Int
//	Generic:   application of a generic type, like List<Int>
//	Func:      function type
//	Tuple:     tuple type
//	Union:     tagged alternatives
//	Nullable:  Inner?
type Type interface {
	fmt.Stringer
	typeNode()
}

type Named struct {
	Name string
}

type Generic struct {
	Name string
	Args []Type
}

type Func struct {
	Params []Type
	Return Type
}

type Tuple struct {
	Elems []Type
}

// Variant is a single alternative of a Union
type Variant struct {
	Tag    string
	Fields []Type
}

// Union variants are sorted by Tag, use NewUnion to build one
type Union struct {
	Variants []Variant
}

type Nullable struct {
	Inner Type
}

func (*Named) typeNode()    {}
func (*Generic) typeNode()  {}
func (*Func) typeNode()     {}
func (*Tuple) typeNode()    {}
func (*Union) typeNode()    {}
func (*Nullable) typeNode() {}

const (
	IntName    = "Int"
	DoubleName = "Double"
	StringName = "String"
	BoolName   = "Bool"
	UnitName   = "Unit"
	ListName   = "List"
	MapName    = "Map"
)

var (
	Int    Type = &Named{Name: IntName}
	Double Type = &Named{Name: DoubleName}
	String Type = &Named{Name: StringName}
	Bool   Type = &Named{Name: BoolName}
	Unit   Type = &Named{Name: UnitName}
)

func NewFunc(params []Type, ret Type) *Func {
	return &Func{Params: params, Return: ret}
}

func NewTuple(elems ...Type) *Tuple {
	return &Tuple{Elems: elems}
}

func NewGeneric(name string, args ...Type) *Generic {
	return &Generic{Name: name, Args: args}
}

func ListOf(elem Type) *Generic {
	return NewGeneric(ListName, elem)
}

func NullableOf(inner Type) *Nullable {
	return &Nullable{Inner: inner}
}

// NewUnion sorts variants by tag. It panics if two variants share a tag.
func NewUnion(variants ...Variant) *Union {
	sorted := slices.Clone(variants)
	slices.SortFunc(sorted, func(a, b Variant) int {
		return cmp.Compare(a.Tag, b.Tag)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Tag == sorted[i].Tag {
			panic(fmt.Sprintf("duplicate union variant %s", sorted[i].Tag))
		}
	}
	return &Union{Variants: sorted}
}

// Equal compares two types structurally
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TypeVar:
		b, ok := b.(TypeVar)
		return ok && a == b
	case *Named:
		b, ok := b.(*Named)
		return ok && a.Name == b.Name
	case *Generic:
		b, ok := b.(*Generic)
		return ok && a.Name == b.Name && slices.EqualFunc(a.Args, b.Args, Equal)
	case *Func:
		b, ok := b.(*Func)
		return ok && slices.EqualFunc(a.Params, b.Params, Equal) && Equal(a.Return, b.Return)
	case *Tuple:
		b, ok := b.(*Tuple)
		return ok && slices.EqualFunc(a.Elems, b.Elems, Equal)
	case *Union:
		b, ok := b.(*Union)
		return ok && slices.EqualFunc(a.Variants, b.Variants, func(va, vb Variant) bool {
			return va.Tag == vb.Tag && slices.EqualFunc(va.Fields, vb.Fields, Equal)
		})
	case *Nullable:
		b, ok := b.(*Nullable)
		return ok && Equal(a.Inner, b.Inner)
	case nil:
		return b == nil
	default:
		panic(fmt.Sprintf("unexpected type %T", a))
	}
}

// Children returns the types t is directly made of, in order
func Children(t Type) []Type {
	switch t := t.(type) {
	case TypeVar, *Named:
		return nil
	case *Generic:
		return t.Args
	case *Func:
		return append(slices.Clip(t.Params), t.Return)
	case *Tuple:
		return t.Elems
	case *Union:
		var children []Type
		for _, v := range t.Variants {
			children = append(children, v.Fields...)
		}
		return children
	case *Nullable:
		return []Type{t.Inner}
	default:
		panic(fmt.Sprintf("unexpected type %T", t))
	}
}

// FreeTypeVars of a type are all the TypeVar that appear in it
func FreeTypeVars(t Type) *set.Set[TypeVar] {
	acc := set.New[TypeVar](0)
	collectVars(t, acc)
	return acc
}

func collectVars(t Type, acc *set.Set[TypeVar]) {
	if v, ok := t.(TypeVar); ok {
		acc.Insert(v)
		return
	}
	for _, child := range Children(t) {
		collectVars(child, acc)
	}
}

// Occurs reports whether v appears anywhere in t
func Occurs(v TypeVar, t Type) bool {
	if tv, ok := t.(TypeVar); ok {
		return tv == v
	}
	return slices.ContainsFunc(Children(t), func(child Type) bool {
		return Occurs(v, child)
	})
}

// IsGround reports whether t contains no TypeVar at all
func IsGround(t Type) bool {
	if _, ok := t.(TypeVar); ok {
		return false
	}
	for _, child := range Children(t) {
		if !IsGround(child) {
			return false
		}
	}
	return true
}

// Rewrite replaces every TypeVar v in t for which replace returns true.
// Parts of t that do not change are shared with the result.
func Rewrite(t Type, replace func(TypeVar) (Type, bool)) Type {
	switch t := t.(type) {
	case TypeVar:
		if replacement, ok := replace(t); ok {
			return replacement
		}
		return t
	case *Named:
		return t
	case *Generic:
		if args, changed := rewriteAll(t.Args, replace); changed {
			return &Generic{Name: t.Name, Args: args}
		}
		return t
	case *Func:
		params, paramsChanged := rewriteAll(t.Params, replace)
		ret := Rewrite(t.Return, replace)
		if paramsChanged || ret != t.Return {
			return &Func{Params: params, Return: ret}
		}
		return t
	case *Tuple:
		if elems, changed := rewriteAll(t.Elems, replace); changed {
			return &Tuple{Elems: elems}
		}
		return t
	case *Union:
		var variants []Variant
		for i, v := range t.Variants {
			fields, changed := rewriteAll(v.Fields, replace)
			if changed && variants == nil {
				variants = slices.Clone(t.Variants)
			}
			if changed {
				variants[i] = Variant{Tag: v.Tag, Fields: fields}
			}
		}
		if variants != nil {
			return &Union{Variants: variants}
		}
		return t
	case *Nullable:
		if inner := Rewrite(t.Inner, replace); inner != t.Inner {
			return &Nullable{Inner: inner}
		}
		return t
	default:
		panic(fmt.Sprintf("unexpected type %T", t))
	}
}

func rewriteAll(ts []Type, replace func(TypeVar) (Type, bool)) ([]Type, bool) {
	var rewritten []Type
	for i, t := range ts {
		newT := Rewrite(t, replace)
		if newT != t && rewritten == nil {
			rewritten = slices.Clone(ts)
		}
		if rewritten != nil {
			rewritten[i] = newT
		}
	}
	if rewritten == nil {
		return ts, false
	}
	return rewritten, true
}
