package loader

import (
	"go/token"
	"path/filepath"
	"testing"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := LoadString(token.NewFileSet(), "test.yaml", src)
	require.NoError(t, err)
	return expr
}

func TestLoadExpressions(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{`5`, `5`},
		{`2.5`, `2.5`},
		{`"hi"`, `"hi"`},
		{`true`, `true`},
		{`null`, `null`},
		{`()`, `()`},
		{`x`, `x`},
		{`{"+": [1, x]}`, `(1 + x)`},
		{`{"-": [x]}`, `-x`},
		{`{"!": [ok]}`, `!ok`},
		{`{call: f, args: [1, 2]}`, `f(1, 2)`},
		{`{call: f}`, `f()`},
		{`{lambda: [x, {name: y, type: Int}], body: x}`, `(x, y: Int) => x`},
		{`{let: id, value: {lambda: [x], body: x}, in: {call: id, args: [5]}}`, `let id = (x) => x in id(5)`},
		{`{if: c, then: 1, else: 2}`, `if c then 1 else 2`},
		{`{tuple: [1, "a"]}`, `(1, "a")`},
		{`{list: [1, 2]}`, `[1, 2]`},
		{`[1, [2]]`, `[1, [2]]`},
		{`{ascribe: x, type: {List: [Int]}}`, `(x: List<Int>)`},
		{`{ascribe: x, type: Int?}`, `(x: Int?)`},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			expr := load(t, test.src)
			assert.Equal(t, test.expected, ast.ExprString(expr))
		})
	}
}

func TestLoadLiteralKinds(t *testing.T) {
	tests := map[string]ast.LitKind{
		`5`:       ast.IntLit,
		`-3`:      ast.IntLit,
		`1.5`:     ast.DoubleLit,
		`"5"`:     ast.StringLit,
		`'x'`:     ast.StringLit,
		`false`:   ast.BoolLit,
		`()`:      ast.UnitLit,
		`null`:    ast.NullLit,
		`~`:       ast.NullLit,
		`"hello"`: ast.StringLit,
	}
	for src, kind := range tests {
		t.Run(src, func(t *testing.T) {
			lit, ok := load(t, src).(*ast.Literal)
			require.True(t, ok)
			assert.Equal(t, kind, lit.Kind)
		})
	}
}

func TestLoadTypes(t *testing.T) {
	expr := load(t, `
lambda:
  - {name: a, type: Int?}
  - {name: b, type: "'t"}
  - {name: c, type: {List: ["'t"]}}
  - {name: d, type: {fn: [Int, String], returns: Bool}}
  - {name: e, type: {tuple: [Int, {nullable: Double}]}}
body: a
`)
	lambda, ok := expr.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lambda.Params, 5)

	assert.IsType(t, &ast.NullableTypeExpr{}, lambda.Params[0].Type)
	assert.Equal(t, &ast.TypeVarName{Range: ast.RangeOf(lambda.Params[1].Type), Name: "t"}, lambda.Params[1].Type)

	generic, ok := lambda.Params[2].Type.(*ast.TypeName)
	require.True(t, ok)
	assert.Equal(t, "List", generic.Name)
	require.Len(t, generic.Args, 1)
	assert.IsType(t, &ast.TypeVarName{}, generic.Args[0])

	fn, ok := lambda.Params[3].Type.(*ast.FuncTypeExpr)
	require.True(t, ok)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "Bool", ast.TypeExprString(fn.Return))

	tuple, ok := lambda.Params[4].Type.(*ast.TupleTypeExpr)
	require.True(t, ok)
	assert.IsType(t, &ast.NullableTypeExpr{}, tuple.Elems[1])
}

func TestLoadBlock(t *testing.T) {
	expr := load(t, `
block:
  - let: a
    value: 1
  - var: b
    type: Int
    value: a
  - assign: b
    value: 2
  - fn: add
    params: [x, {name: y, type: Int}]
    returns: Int
    body: {"+": [x, y]}
  - type: Pair
    params: [l, r]
    variants:
      - Pair: [l, r]
      - Empty
  - expr: {call: print, args: [b]}
result: b
`)
	block, ok := expr.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Stmts, 6)

	let := block.Stmts[0].(*ast.LetStmt)
	assert.Equal(t, "a", let.Name)
	assert.False(t, let.Mutable)

	mutable := block.Stmts[1].(*ast.LetStmt)
	assert.True(t, mutable.Mutable)
	assert.NotNil(t, mutable.Type)

	assign := block.Stmts[2].(*ast.AssignStmt)
	assert.Equal(t, "b", assign.Name)

	fn := block.Stmts[3].(*ast.FuncDecl)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	assert.Nil(t, fn.Params[0].Type)
	assert.False(t, fn.IsFullyAnnotated())

	decl := block.Stmts[4].(*ast.TypeDecl)
	assert.Equal(t, []string{"l", "r"}, decl.Params)
	require.Len(t, decl.Variants, 2)
	assert.Equal(t, "Pair", decl.Variants[0].Tag)
	assert.Len(t, decl.Variants[0].Fields, 2)
	assert.Equal(t, "Empty", decl.Variants[1].Tag)
	assert.Empty(t, decl.Variants[1].Fields)

	assert.IsType(t, &ast.ExprStmt{}, block.Stmts[5])
	assert.Equal(t, "b", ast.ExprString(block.Result))
}

func TestLoadPatterns(t *testing.T) {
	expr := load(t, `
match: x
cases:
  - pattern: _
    body: 0
  - pattern: y
    guard: {">": [y, 1]}
    body: y
  - pattern: 3
    body: 3
  - pattern: {tuple: [a, _]}
    body: a
  - pattern: {Some: [z]}
    body: z
  - pattern: None
    body: 0
`)
	match, ok := expr.(*ast.Match)
	require.True(t, ok)
	require.Len(t, match.Arms, 6)

	assert.IsType(t, &ast.WildcardPat{}, match.Arms[0].Pattern)
	assert.IsType(t, &ast.VarPat{}, match.Arms[1].Pattern)
	assert.NotNil(t, match.Arms[1].Guard)
	assert.IsType(t, &ast.LitPat{}, match.Arms[2].Pattern)
	assert.IsType(t, &ast.TuplePat{}, match.Arms[3].Pattern)

	some := match.Arms[4].Pattern.(*ast.CtorPat)
	assert.Equal(t, "Some", some.Name)
	assert.Len(t, some.Args, 1)

	none := match.Arms[5].Pattern.(*ast.CtorPat)
	assert.Equal(t, "None", none.Name)
	assert.Empty(t, none.Args)
}

func TestLoadPositions(t *testing.T) {
	fset := token.NewFileSet()
	expr, err := LoadString(fset, "pos.yaml", `call: f
args:
  - 1
  - "two"
`)
	require.NoError(t, err)
	call := expr.(*ast.Call)

	assert.Equal(t, "pos.yaml:1:7", fset.Position(call.Callee.Pos()).String())
	assert.Equal(t, "pos.yaml:3:5", fset.Position(call.Args[0].Pos()).String())
	assert.Equal(t, "pos.yaml:4:5", fset.Position(call.Args[1].Pos()).String())
	assert.Equal(t, call.Args[1].Pos()+5, call.Args[1].End())
	assert.True(t, ast.RangeOf(call).Contains(call.Args[1]))
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    `{frobnicate: 1}`,
		"missing key":    `{if: c, then: 1}`,
		"unexpected key": `{if: c, then: 1, else: 2, also: 3}`,
		"not a sequence": `{call: f, args: 1}`,
		"operand count":  `{"!": [a, b]}`,
		"bad statement":  `{block: [1]}`,
		"bad type":       `{ascribe: x, type: [Int]}`,
		"let and var":    `{block: [{let: a, var: a, value: 1}]}`,
		"empty type var": `{ascribe: x, type: "'"}`,
		"malformed yaml": `{call: [`,
		"empty document": "",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadString(token.NewFileSet(), "bad.yaml", src)
			assert.Error(t, err)
		})
	}
}

func TestLoadFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			fset := token.NewFileSet()
			expr, err := LoadFile(fset, path)
			require.NoError(t, err)
			assert.True(t, expr.Pos().IsValid())
			assert.Equal(t, path, fset.Position(expr.Pos()).Filename)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(token.NewFileSet(), filepath.Join("testdata", "does-not-exist.yaml"))
	assert.ErrorContains(t, err, "failed to read")
}
