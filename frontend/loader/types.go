package loader

import (
	"strings"

	"github.com/cottand/ileinfer/frontend/ast"
	"gopkg.in/yaml.v3"
)

func (l *loader) optionalType(f fields, key string) (ast.TypeExpr, error) {
	if !f.has(key) {
		return nil, nil
	}
	return l.typeExpr(f.get(key))
}

func (l *loader) typeExprs(n *yaml.Node) ([]ast.TypeExpr, error) {
	items, err := l.sequence(n)
	if err != nil {
		return nil, err
	}
	ts := make([]ast.TypeExpr, 0, len(items))
	for _, item := range items {
		t, err := l.typeExpr(item)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func (l *loader) typeExpr(n *yaml.Node) (ast.TypeExpr, error) {
	at := l.rangeOf(n)
	if n.Kind == yaml.ScalarNode {
		return l.typeName(n, n.Value, at)
	}
	if n.Kind != yaml.MappingNode {
		return nil, l.errorf(n, "expected a type")
	}
	f, err := l.fieldsOf(n)
	if err != nil {
		return nil, err
	}
	switch {
	case f.has("fn"):
		if err := l.allow(f, "fn", "returns"); err != nil {
			return nil, err
		}
		params, err := l.typeExprs(f.get("fn"))
		if err != nil {
			return nil, err
		}
		returnNode, err := l.require(f, "returns")
		if err != nil {
			return nil, err
		}
		ret, err := l.typeExpr(returnNode)
		if err != nil {
			return nil, err
		}
		return &ast.FuncTypeExpr{Range: at, Params: params, Return: ret}, nil
	case f.has("tuple"):
		if err := l.allow(f, "tuple"); err != nil {
			return nil, err
		}
		elems, err := l.typeExprs(f.get("tuple"))
		if err != nil {
			return nil, err
		}
		return &ast.TupleTypeExpr{Range: at, Elems: elems}, nil
	case f.has("nullable"):
		if err := l.allow(f, "nullable"); err != nil {
			return nil, err
		}
		inner, err := l.typeExpr(f.get("nullable"))
		if err != nil {
			return nil, err
		}
		return &ast.NullableTypeExpr{Range: at, Inner: inner}, nil
	}

	name, argsNode, err := l.tagged(n)
	if err != nil {
		return nil, err
	}
	args, err := l.typeExprs(argsNode)
	if err != nil {
		return nil, err
	}
	return &ast.TypeName{Range: at, Name: name, Args: args}, nil
}

// typeName reads Name, 'var, or either of them followed by ?
func (l *loader) typeName(n *yaml.Node, name string, at ast.Range) (ast.TypeExpr, error) {
	if inner, ok := strings.CutSuffix(name, "?"); ok {
		t, err := l.typeName(n, inner, at)
		if err != nil {
			return nil, err
		}
		return &ast.NullableTypeExpr{Range: at, Inner: t}, nil
	}
	if v, ok := strings.CutPrefix(name, "'"); ok {
		if v == "" {
			return nil, l.errorf(n, "expected a type variable name after '")
		}
		return &ast.TypeVarName{Range: at, Name: v}, nil
	}
	if name == "" {
		return nil, l.errorf(n, "expected a type")
	}
	return &ast.TypeName{Range: at, Name: name}, nil
}
