package loader

import (
	"github.com/cottand/ileinfer/frontend/ast"
	"gopkg.in/yaml.v3"
)

func (l *loader) pattern(n *yaml.Node) (ast.Pattern, error) {
	at := l.rangeOf(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if lit := l.literal(n); lit != nil {
			return &ast.LitPat{Range: at, Lit: lit}, nil
		}
		switch {
		case n.Value == "_":
			return &ast.WildcardPat{Range: at}, nil
		case isCapitalised(n.Value):
			return &ast.CtorPat{Range: at, Name: n.Value}, nil
		default:
			return &ast.VarPat{Range: at, Name: n.Value}, nil
		}

	case yaml.MappingNode:
		f, err := l.fieldsOf(n)
		if err != nil {
			return nil, err
		}
		if f.has("tuple") {
			if err := l.allow(f, "tuple"); err != nil {
				return nil, err
			}
			elems, err := l.patterns(f.get("tuple"))
			if err != nil {
				return nil, err
			}
			return &ast.TuplePat{Range: at, Elems: elems}, nil
		}
		name, argsNode, err := l.tagged(n)
		if err != nil {
			return nil, err
		}
		args, err := l.patterns(argsNode)
		if err != nil {
			return nil, err
		}
		return &ast.CtorPat{Range: at, Name: name, Args: args}, nil

	default:
		return nil, l.errorf(n, "expected a pattern")
	}
}

func (l *loader) patterns(n *yaml.Node) ([]ast.Pattern, error) {
	items, err := l.sequence(n)
	if err != nil {
		return nil, err
	}
	patterns := make([]ast.Pattern, 0, len(items))
	for _, item := range items {
		p, err := l.pattern(item)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
