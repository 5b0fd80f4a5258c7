package loader

import (
	"go/token"

	"github.com/cottand/ileinfer/frontend/ast"
	"gopkg.in/yaml.v3"
)

func (l *loader) expr(n *yaml.Node) (ast.Expr, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if lit := l.literal(n); lit != nil {
			return lit, nil
		}
		return &ast.Ident{Range: l.rangeOf(n), Name: n.Value}, nil
	case yaml.MappingNode:
		return l.compound(n)
	case yaml.SequenceNode:
		elems, err := l.exprs(n)
		if err != nil {
			return nil, err
		}
		return &ast.List{Range: l.rangeOf(n), Elems: elems}, nil
	default:
		return nil, l.errorf(n, "expected an expression")
	}
}

func (l *loader) exprs(n *yaml.Node) ([]ast.Expr, error) {
	items, err := l.sequence(n)
	if err != nil {
		return nil, err
	}
	exprs := make([]ast.Expr, 0, len(items))
	for _, item := range items {
		e, err := l.expr(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// optionalExpr is nil when key is absent
func (l *loader) optionalExpr(f fields, key string) (ast.Expr, error) {
	if !f.has(key) {
		return nil, nil
	}
	return l.expr(f.get(key))
}

func (l *loader) requiredExpr(f fields, key string) (ast.Expr, error) {
	n, err := l.require(f, key)
	if err != nil {
		return nil, err
	}
	return l.expr(n)
}

func (l *loader) compound(n *yaml.Node) (ast.Expr, error) {
	f, err := l.fieldsOf(n)
	if err != nil {
		return nil, err
	}
	if len(f.keys) == 1 {
		if op := ast.OperatorFromString(f.keys[0]); op != token.ILLEGAL {
			return l.operator(f, op)
		}
	}
	at := l.rangeOf(n)
	switch {
	case f.has("call"):
		if err := l.allow(f, "call", "args"); err != nil {
			return nil, err
		}
		callee, err := l.requiredExpr(f, "call")
		if err != nil {
			return nil, err
		}
		var args []ast.Expr
		if f.has("args") {
			if args, err = l.exprs(f.get("args")); err != nil {
				return nil, err
			}
		}
		return &ast.Call{Range: at, Callee: callee, Args: args}, nil

	case f.has("lambda"):
		if err := l.allow(f, "lambda", "returns", "body"); err != nil {
			return nil, err
		}
		params, err := l.params(f.get("lambda"))
		if err != nil {
			return nil, err
		}
		returns, err := l.optionalType(f, "returns")
		if err != nil {
			return nil, err
		}
		body, err := l.requiredExpr(f, "body")
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Range: at, Params: params, Returns: returns, Body: body}, nil

	case f.has("let"):
		if err := l.allow(f, "let", "type", "value", "in"); err != nil {
			return nil, err
		}
		name, err := l.name(f.get("let"))
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
		body, err := l.requiredExpr(f, "in")
		if err != nil {
			return nil, err
		}
		return &ast.Let{Range: at, Name: name, Type: annotation, Value: value, Body: body}, nil

	case f.has("if"):
		if err := l.allow(f, "if", "then", "else"); err != nil {
			return nil, err
		}
		cond, err := l.requiredExpr(f, "if")
		if err != nil {
			return nil, err
		}
		then, err := l.requiredExpr(f, "then")
		if err != nil {
			return nil, err
		}
		els, err := l.requiredExpr(f, "else")
		if err != nil {
			return nil, err
		}
		return &ast.If{Range: at, Cond: cond, Then: then, Else: els}, nil

	case f.has("match"):
		return l.match(f)

	case f.has("tuple"):
		if err := l.allow(f, "tuple"); err != nil {
			return nil, err
		}
		elems, err := l.exprs(f.get("tuple"))
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Range: at, Elems: elems}, nil

	case f.has("list"):
		if err := l.allow(f, "list"); err != nil {
			return nil, err
		}
		elems, err := l.exprs(f.get("list"))
		if err != nil {
			return nil, err
		}
		return &ast.List{Range: at, Elems: elems}, nil

	case f.has("ascribe"):
		if err := l.allow(f, "ascribe", "type"); err != nil {
			return nil, err
		}
		inner, err := l.requiredExpr(f, "ascribe")
		if err != nil {
			return nil, err
		}
		typeNode, err := l.require(f, "type")
		if err != nil {
			return nil, err
		}
		annotation, err := l.typeExpr(typeNode)
		if err != nil {
			return nil, err
		}
		return &ast.Ascribe{Range: at, Expr: inner, Type: annotation}, nil

	case f.has("block"):
		return l.block(f)

	default:
		return nil, l.errorf(n, "unknown expression with keys %v", f.keys)
	}
}

func (l *loader) operator(f fields, op token.Token) (ast.Expr, error) {
	operands, err := l.exprs(f.get(f.keys[0]))
	if err != nil {
		return nil, err
	}
	at := l.rangeOf(f.node)
	switch {
	case len(operands) == 1 && (op == token.SUB || op == token.NOT):
		return &ast.Unary{Range: at, Op: op, Operand: operands[0]}, nil
	case len(operands) == 2 && op != token.NOT:
		return &ast.Binary{Range: at, Op: op, Left: operands[0], Right: operands[1]}, nil
	default:
		return nil, l.errorf(f.node, "operator '%v' cannot take %d operands", op, len(operands))
	}
}

// params reads a sequence of parameters, each either a name
// or a {name: x, type: T} mapping
func (l *loader) params(n *yaml.Node) ([]ast.Param, error) {
	items, err := l.sequence(n)
	if err != nil {
		return nil, err
	}
	params := make([]ast.Param, 0, len(items))
	for _, item := range items {
		if item.Kind == yaml.ScalarNode {
			params = append(params, ast.Param{Range: l.rangeOf(item), Name: item.Value})
			continue
		}
		f, err := l.fieldsOf(item)
		if err != nil {
			return nil, err
		}
		if err := l.allow(f, "name", "type"); err != nil {
			return nil, err
		}
		nameNode, err := l.require(f, "name")
		if err != nil {
			return nil, err
		}
		name, err := l.name(nameNode)
		if err != nil {
			return nil, err
		}
		annotation, err := l.optionalType(f, "type")
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Range: l.rangeOf(item), Name: name, Type: annotation})
	}
	return params, nil
}

func (l *loader) match(f fields) (ast.Expr, error) {
	if err := l.allow(f, "match", "cases"); err != nil {
		return nil, err
	}
	scrutinee, err := l.requiredExpr(f, "match")
	if err != nil {
		return nil, err
	}
	casesNode, err := l.require(f, "cases")
	if err != nil {
		return nil, err
	}
	cases, err := l.sequence(casesNode)
	if err != nil {
		return nil, err
	}
	match := &ast.Match{Range: l.rangeOf(f.node), Scrutinee: scrutinee}
	for _, c := range cases {
		cf, err := l.fieldsOf(c)
		if err != nil {
			return nil, err
		}
		if err := l.allow(cf, "pattern", "guard", "body"); err != nil {
			return nil, err
		}
		patternNode, err := l.require(cf, "pattern")
		if err != nil {
			return nil, err
		}
		pattern, err := l.pattern(patternNode)
		if err != nil {
			return nil, err
		}
		guard, err := l.optionalExpr(cf, "guard")
		if err != nil {
			return nil, err
		}
		body, err := l.requiredExpr(cf, "body")
		if err != nil {
			return nil, err
		}
		match.Arms = append(match.Arms, ast.MatchArm{
			Range:   l.rangeOf(c),
			Pattern: pattern,
			Guard:   guard,
			Body:    body,
		})
	}
	return match, nil
}
