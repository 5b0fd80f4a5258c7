package infer

import (
	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/types"
)

// TypedExpr is an ast.Expr paired with its inferred Type.
//
// Children are the typed sub-expressions of Expr, in source order.
type TypedExpr struct {
	Type     types.Type
	Expr     ast.Expr
	Children []*TypedExpr
	// Decls are the names introduced by Expr: the binding of a Let,
	// the parameters of a Lambda, or the let and fn statements of a Block
	Decls []*TypedDecl
	// Patterns are the arms of a Match, in order
	Patterns []*TypedPattern
}

// TypedDecl is a name bound to a Scheme.
// Value is nil for lambda parameters.
type TypedDecl struct {
	Name   string
	Decl   ast.Positioner
	Scheme types.Scheme
	Value  *TypedExpr
}

type TypedPattern struct {
	Type     types.Type
	Pattern  ast.Pattern
	Children []*TypedPattern
}

// Apply returns a copy of the tree with sub applied to every type in it
func (e *TypedExpr) Apply(sub types.Substitution) *TypedExpr {
	if e == nil {
		return nil
	}
	applied := &TypedExpr{
		Type: sub.Apply(e.Type),
		Expr: e.Expr,
	}
	// decls point to children, keep the sharing
	copies := make(map[*TypedExpr]*TypedExpr, len(e.Children))
	for _, child := range e.Children {
		appliedChild := child.Apply(sub)
		copies[child] = appliedChild
		applied.Children = append(applied.Children, appliedChild)
	}
	for _, decl := range e.Decls {
		value, ok := copies[decl.Value]
		if !ok {
			value = decl.Value.Apply(sub)
		}
		applied.Decls = append(applied.Decls, &TypedDecl{
			Name:   decl.Name,
			Decl:   decl.Decl,
			Scheme: sub.ApplyScheme(decl.Scheme),
			Value:  value,
		})
	}
	for _, pattern := range e.Patterns {
		applied.Patterns = append(applied.Patterns, pattern.Apply(sub))
	}
	return applied
}

func (p *TypedPattern) Apply(sub types.Substitution) *TypedPattern {
	applied := &TypedPattern{
		Type:    sub.Apply(p.Type),
		Pattern: p.Pattern,
	}
	for _, child := range p.Children {
		applied.Children = append(applied.Children, child.Apply(sub))
	}
	return applied
}

// Walk visits e and then its children depth-first,
// skipping the children of nodes for which visit returns false
func (e *TypedExpr) Walk(visit func(*TypedExpr) bool) {
	if e == nil || !visit(e) {
		return
	}
	for _, child := range e.Children {
		child.Walk(visit)
	}
}

// Find returns the node for expr, or nil if expr is not part of the tree
func (e *TypedExpr) Find(expr ast.Expr) *TypedExpr {
	var found *TypedExpr
	e.Walk(func(node *TypedExpr) bool {
		if found != nil {
			return false
		}
		if node.Expr == expr {
			found = node
			return false
		}
		return true
	})
	return found
}

func (e *TypedExpr) TypeOf(expr ast.Expr) (types.Type, bool) {
	node := e.Find(expr)
	if node == nil {
		return nil, false
	}
	return node.Type, true
}

// Decl returns the first declaration of name made by e or its children
func (e *TypedExpr) Decl(name string) *TypedDecl {
	var found *TypedDecl
	e.Walk(func(node *TypedExpr) bool {
		if found != nil {
			return false
		}
		for _, decl := range node.Decls {
			if decl.Name == name {
				found = decl
				return false
			}
		}
		return true
	})
	return found
}
