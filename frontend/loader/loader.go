// Package loader reads programs written as YAML documents into an ast.Expr.
//
// Every expression is a YAML node:
//
//	5, 2.5, true, null     Int, Double, Bool and null literals
//	"text" or 'text'        String literal (quoted scalars only)
//	()                      Unit literal
//	x                       variable (any other plain scalar)
//	{"+": [a, b]}           binary operator, {"-": [a]} and {"!": [a]} are unary
//	{call: f, args: [...]}
//	{lambda: [x, {name: y, type: Int}], returns: Int, body: e}
//	{let: x, type: Int, value: e, in: body}
//	{if: c, then: a, else: b}
//	{match: e, cases: [{pattern: p, guard: g, body: e}]}
//	{tuple: [...]}
//	[a, b] or {list: [a, b]}   list literal
//	{ascribe: e, type: T}
//	{block: [statements...], result: e}
//
// Statements of a block are {let: x, value: e}, {var: x, value: e}, {assign: x, value: e},
// {fn: f, params: [...], returns: T, body: e}, {type: Option, params: [a], variants: [None, {Some: [a]}]}
// and {expr: e}.
//
// Patterns are _, variables, literals, {tuple: [...]} and constructors, either
// a capitalised scalar like None or {Some: [x]}.
//
// Types are names like Int, variables like "'a" (quoted, as YAML reserves a leading '),
// Int? for nullable types, {List: [Int]} for generics, {tuple: [...]}
// and {fn: [Int], returns: Bool}.
package loader

import (
	"go/token"
	"os"
	"strings"
	"unicode"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/internal/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "loader")

// LoadFile reads the program at path, registering it in fset
func LoadFile(fset *token.FileSet, path string) (ast.Expr, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Load(fset, path, data)
}

// Load parses src as a program called filename. Positions of the
// resulting expressions are relative to fset
func Load(fset *token.FileSet, filename string, src []byte) (ast.Expr, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", filename)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errors.Errorf("%s: expected a single expression", filename)
	}
	file := fset.AddFile(filename, -1, len(src))
	file.SetLinesForContent(src)

	l := &loader{fset: fset, file: file}
	expr, err := l.expr(doc.Content[0])
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded program", "file", filename, "expr", ast.Slog(expr))
	return expr, nil
}

// LoadString is Load for programs that are not read from a file
func LoadString(fset *token.FileSet, name string, src string) (ast.Expr, error) {
	return Load(fset, name, []byte(src))
}

type loader struct {
	fset *token.FileSet
	file *token.File
}

func (l *loader) pos(n *yaml.Node) token.Pos {
	if n.Line < 1 || n.Line > l.file.LineCount() {
		return token.NoPos
	}
	return l.file.LineStart(n.Line) + token.Pos(n.Column-1)
}

// end is the position right after the last scalar of n
func (l *loader) end(n *yaml.Node) token.Pos {
	for len(n.Content) > 0 {
		n = n.Content[len(n.Content)-1]
	}
	start := l.pos(n)
	if !start.IsValid() {
		return start
	}
	width := len(n.Value)
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		width += 2
	}
	end := int(start) + width
	if max := l.file.Base() + l.file.Size(); end > max {
		end = max
	}
	return token.Pos(end)
}

func (l *loader) rangeOf(n *yaml.Node) ast.Range {
	return ast.Range{PosStart: l.pos(n), PosEnd: l.end(n)}
}

func (l *loader) errorf(n *yaml.Node, format string, args ...any) error {
	return errors.Errorf("%s: "+format, append([]any{l.fset.Position(l.pos(n))}, args...)...)
}

// fields are the entries of a mapping node
type fields struct {
	node  *yaml.Node
	keys  []string
	byKey map[string]*yaml.Node
}

func (l *loader) fieldsOf(n *yaml.Node) (fields, error) {
	f := fields{node: n, byKey: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return f, l.errorf(key, "expected a scalar key")
		}
		if _, ok := f.byKey[key.Value]; ok {
			return f, l.errorf(key, "duplicate key '%s'", key.Value)
		}
		f.keys = append(f.keys, key.Value)
		f.byKey[key.Value] = n.Content[i+1]
	}
	return f, nil
}

func (f fields) has(key string) bool {
	_, ok := f.byKey[key]
	return ok
}

func (f fields) get(key string) *yaml.Node {
	return f.byKey[key]
}

func (l *loader) require(f fields, key string) (*yaml.Node, error) {
	n, ok := f.byKey[key]
	if !ok {
		return nil, l.errorf(f.node, "missing key '%s'", key)
	}
	return n, nil
}

// allow fails when f has any key other than allowed
func (l *loader) allow(f fields, allowed ...string) error {
	for _, key := range f.keys {
		ok := false
		for _, a := range allowed {
			ok = ok || a == key
		}
		if !ok {
			return l.errorf(f.node, "unexpected key '%s', expected one of %s", key, strings.Join(allowed, ", "))
		}
	}
	return nil
}

func (l *loader) sequence(n *yaml.Node) ([]*yaml.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, l.errorf(n, "expected a sequence")
	}
	return n.Content, nil
}

func (l *loader) name(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return "", l.errorf(n, "expected a name")
	}
	return n.Value, nil
}

func isQuoted(n *yaml.Node) bool {
	return n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0
}

func isCapitalised(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// literal returns the literal n stands for, or nil when n is not a literal
func (l *loader) literal(n *yaml.Node) *ast.Literal {
	lit := &ast.Literal{Range: l.rangeOf(n), Syntax: n.Value}
	switch {
	case isQuoted(n):
		lit.Kind = ast.StringLit
	case n.Value == "()":
		lit.Kind = ast.UnitLit
	case n.ShortTag() == "!!int":
		lit.Kind = ast.IntLit
	case n.ShortTag() == "!!float":
		lit.Kind = ast.DoubleLit
	case n.ShortTag() == "!!bool":
		lit.Kind = ast.BoolLit
	case n.ShortTag() == "!!null":
		lit.Kind = ast.NullLit
	default:
		return nil
	}
	return lit
}
