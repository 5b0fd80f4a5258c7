package infer

import (
	"testing"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	ok := check(t, `{call: print, args: [1]}`)
	assert.True(t, ok.OK())
	assert.Equal(t, "Unit", ok.Type.String())
	assert.Equal(t, 2, ok.Constraints.Len())
	assert.False(t, ok.Substitution.IsEmpty())

	failed := check(t, `{"+": [1, "a"]}`)
	assert.False(t, failed.OK())
	assert.Nil(t, failed.Typed)
	assert.True(t, failed.Substitution.IsEmpty(), "no substitution when solving fails")
}

func TestTypedTree(t *testing.T) {
	expr := parse(t, `
let: pair
value: {lambda: [a], body: {tuple: [a, a]}}
in: {call: pair, args: ["x"]}
`)
	result := Check(expr, WithSupply(types.NewSupply()))
	require.True(t, result.OK())

	let := expr.(*ast.Let)
	call := let.Body.(*ast.Call)

	typ, ok := result.Typed.TypeOf(call)
	require.True(t, ok)
	assert.Equal(t, "(String, String)", typ.String())

	typ, ok = result.Typed.TypeOf(call.Args[0])
	require.True(t, ok)
	assert.Equal(t, types.String, typ)

	_, ok = result.Typed.TypeOf(&ast.Ident{Name: "elsewhere"})
	assert.False(t, ok)

	var count int
	result.Typed.Walk(func(node *TypedExpr) bool {
		count++
		assert.NotNil(t, node.Type)
		return true
	})
	assert.Equal(t, 8, count)

	var visited int
	result.Typed.Walk(func(node *TypedExpr) bool {
		visited++
		return node.Expr == expr
	})
	assert.Equal(t, 3, visited, "children of skipped nodes are not visited")
}

func TestTypedTreeApplyKeepsSharing(t *testing.T) {
	supply := types.NewSupply()
	v := supply.Fresh()
	value := &TypedExpr{Type: v}
	tree := &TypedExpr{
		Type:     types.ListOf(v),
		Children: []*TypedExpr{value},
		Decls:    []*TypedDecl{{Name: "x", Scheme: types.Mono(v), Value: value}},
		Patterns: []*TypedPattern{{Type: v, Children: []*TypedPattern{{Type: types.NullableOf(v)}}}},
	}

	applied := tree.Apply(types.Singleton(v, types.Int))
	assert.Equal(t, "List<Int>", applied.Type.String())
	assert.Same(t, applied.Children[0], applied.Decls[0].Value)
	assert.Equal(t, "Int", applied.Decls[0].Scheme.String())
	assert.Equal(t, types.Int, applied.Patterns[0].Type)
	assert.Equal(t, "Int?", applied.Patterns[0].Children[0].Type.String())

	assert.Equal(t, v, tree.Children[0].Type, "the original is left untouched")
}
