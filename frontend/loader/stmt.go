package loader

import (
	"github.com/cottand/ileinfer/frontend/ast"
	"gopkg.in/yaml.v3"
)

func (l *loader) block(f fields) (ast.Expr, error) {
	if err := l.allow(f, "block", "result"); err != nil {
		return nil, err
	}
	items, err := l.sequence(f.get("block"))
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Range: l.rangeOf(f.node)}
	for _, item := range items {
		stmt, err := l.stmt(item)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if block.Result, err = l.optionalExpr(f, "result"); err != nil {
		return nil, err
	}
	return block, nil
}

func (l *loader) stmt(n *yaml.Node) (ast.Stmt, error) {
	if n.Kind != yaml.MappingNode {
		return nil, l.errorf(n, "expected a statement")
	}
	f, err := l.fieldsOf(n)
	if err != nil {
		return nil, err
	}
	at := l.rangeOf(n)
	switch {
	case f.has("let"), f.has("var"):
		if f.has("let") && f.has("var") {
			return nil, l.errorf(n, "a binding is either let or var")
		}
		mutable := f.has("var")
		key := "let"
		if mutable {
			key = "var"
		}
		if err := l.allow(f, key, "type", "value"); err != nil {
			return nil, err
		}
		name, err := l.name(f.get(key))
		if err != nil {
			return nil, err
		}
		annotation, err := l.optionalType(f, "type")
		if err != nil {
			return nil, err
		}
		value, err := l.requiredExpr(f, "value")
		if err != nil {
			return nil, err
		}
		return &ast.LetStmt{Range: at, Name: name, Mutable: mutable, Type: annotation, Value: value}, nil

	case f.has("assign"):
		if err := l.allow(f, "assign", "value"); err != nil {
			return nil, err
		}
		name, err := l.name(f.get("assign"))
		if err != nil {
			return nil, err
		}
		value, err := l.requiredExpr(f, "value")
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Range: at, Name: name, Value: value}, nil

	case f.has("fn"):
		if err := l.allow(f, "fn", "params", "returns", "body"); err != nil {
			return nil, err
		}
		name, err := l.name(f.get("fn"))
		if err != nil {
			return nil, err
		}
		var params []ast.Param
		if f.has("params") {
			if params, err = l.params(f.get("params")); err != nil {
				return nil, err
			}
		}
		returns, err := l.optionalType(f, "returns")
		if err != nil {
			return nil, err
		}
		body, err := l.requiredExpr(f, "body")
		if err != nil {
			return nil, err
		}
		return &ast.FuncDecl{Range: at, Name: name, Params: params, Returns: returns, Body: body}, nil

	case f.has("type"):
		return l.typeDecl(f)

	case f.has("expr"):
		if err := l.allow(f, "expr"); err != nil {
			return nil, err
		}
		x, err := l.requiredExpr(f, "expr")
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Range: at, X: x}, nil

	default:
		return nil, l.errorf(n, "unknown statement with keys %v", f.keys)
	}
}

// typeDecl reads {type: Name, params: [a], variants: [Tag, {Tag: [fields...]}]}
func (l *loader) typeDecl(f fields) (ast.Stmt, error) {
	if err := l.allow(f, "type", "params", "variants"); err != nil {
		return nil, err
	}
	name, err := l.name(f.get("type"))
	if err != nil {
		return nil, err
	}
	decl := &ast.TypeDecl{Range: l.rangeOf(f.node), Name: name}
	if f.has("params") {
		params, err := l.sequence(f.get("params"))
		if err != nil {
			return nil, err
		}
		for _, param := range params {
			paramName, err := l.name(param)
			if err != nil {
				return nil, err
			}
			decl.Params = append(decl.Params, paramName)
		}
	}

	variantsNode, err := l.require(f, "variants")
	if err != nil {
		return nil, err
	}
	variants, err := l.sequence(variantsNode)
	if err != nil {
		return nil, err
	}
	for _, v := range variants {
		tag, fieldsNode, err := l.tagged(v)
		if err != nil {
			return nil, err
		}
		variant := ast.VariantDecl{Range: l.rangeOf(v), Tag: tag}
		if fieldsNode != nil {
			fieldNodes, err := l.sequence(fieldsNode)
			if err != nil {
				return nil, err
			}
			for _, field := range fieldNodes {
				t, err := l.typeExpr(field)
				if err != nil {
					return nil, err
				}
				variant.Fields = append(variant.Fields, t)
			}
		}
		decl.Variants = append(decl.Variants, variant)
	}
	return decl, nil
}

// tagged reads either a scalar Tag, or a {Tag: [...]} mapping with a single key,
// in which case the sequence node is returned too
func (l *loader) tagged(n *yaml.Node) (string, *yaml.Node, error) {
	if n.Kind == yaml.ScalarNode {
		tag, err := l.name(n)
		return tag, nil, err
	}
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, l.errorf(n, "expected a tag or a mapping with a single tag")
	}
	tag, err := l.name(n.Content[0])
	return tag, n.Content[1], err
}
