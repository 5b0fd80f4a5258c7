package ast

import (
	"go/token"
)

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*List)(nil)
	_ Expr = (*Ascribe)(nil)
	_ Expr = (*Block)(nil)
)

// Expr is the base for all expressions.
//
// The set of expressions is closed, the following are supported:
//
//	Literal:  Int, Double, String, Bool, Unit or null literal
//	Ident:    variable
//	Binary:   binary operator application
//	Unary:    unary operator application
//	Call:     function call
//	Lambda:   function abstraction
//	Let:      let-binding scoped over a body
//	If:       conditional
//	Match:    pattern matching over a scrutinee
//	Tuple:    tuple construction
//	List:     list literal
//	Ascribe:  expression with a type annotation
//	Block:    statements followed by a result expression
type Expr interface {
	Positioner
	// Describe is what to call this expression in error messages
	Describe() string
	exprNode()
}

type LitKind uint8

const (
	_ LitKind = iota
	IntLit
	DoubleLit
	StringLit
	BoolLit
	UnitLit
	NullLit
)

func (k LitKind) String() string {
	switch k {
	case IntLit:
		return "int"
	case DoubleLit:
		return "double"
	case StringLit:
		return "string"
	case BoolLit:
		return "bool"
	case UnitLit:
		return "unit"
	case NullLit:
		return "null"
	default:
		return "invalid"
	}
}

type Literal struct {
	Range
	Kind LitKind
	// Syntax is a string representation of the literal value, as written in the source.
	Syntax string
}

type Ident struct {
	Range
	Name string
}

// Binary is a binary operator application. Op is one of the arithmetic
// (token.ADD, token.SUB, token.MUL, token.QUO, token.REM), comparison
// (token.LSS, token.LEQ, token.GTR, token.GEQ, token.EQL, token.NEQ)
// or logical (token.LAND, token.LOR) tokens
type Binary struct {
	Range
	Op          token.Token
	Left, Right Expr
}

// Unary is token.SUB (negation) or token.NOT applied to Operand
type Unary struct {
	Range
	Op      token.Token
	Operand Expr
}

type Call struct {
	Range
	Callee Expr
	Args   []Expr
}

// Param is a function parameter, Type may be nil
type Param struct {
	Range
	Name string
	Type TypeExpr
}

type Lambda struct {
	Range
	Params []Param
	// Returns is the optional return type annotation
	Returns TypeExpr
	Body    Expr
}

// Let binds Name to Value in Body. Type is the optional annotation of Value.
//
// When Value is a Lambda, Name is also in scope within Value.
type Let struct {
	Range
	Name  string
	Type  TypeExpr
	Value Expr
	Body  Expr
}

type If struct {
	Range
	Cond, Then, Else Expr
}

type MatchArm struct {
	Range
	Pattern Pattern
	// Guard may be nil
	Guard Expr
	Body  Expr
}

type Match struct {
	Range
	Scrutinee Expr
	Arms      []MatchArm
}

type Tuple struct {
	Range
	Elems []Expr
}

type List struct {
	Range
	Elems []Expr
}

// Ascribe is an expression with a type annotation written by the programmer
type Ascribe struct {
	Range
	Expr Expr
	Type TypeExpr
}

// Block introduces a new scope. Result may be nil, in which case the block is Unit
type Block struct {
	Range
	Stmts  []Stmt
	Result Expr
}

func (*Literal) exprNode() {}
func (*Ident) exprNode()   {}
func (*Binary) exprNode()  {}
func (*Unary) exprNode()   {}
func (*Call) exprNode()    {}
func (*Lambda) exprNode()  {}
func (*Let) exprNode()     {}
func (*If) exprNode()      {}
func (*Match) exprNode()   {}
func (*Tuple) exprNode()   {}
func (*List) exprNode()    {}
func (*Ascribe) exprNode() {}
func (*Block) exprNode()   {}

func (e *Literal) Describe() string { return e.Kind.String() + " literal" }
func (e *Ident) Describe() string   { return "variable" }
func (e *Binary) Describe() string  { return "binary operation" }
func (e *Unary) Describe() string   { return "unary operation" }
func (e *Call) Describe() string    { return "function call" }
func (e *Lambda) Describe() string  { return "function" }
func (e *Let) Describe() string     { return "let binding" }
func (e *If) Describe() string      { return "if expression" }
func (e *Match) Describe() string   { return "match expression" }
func (e *Tuple) Describe() string   { return "tuple" }
func (e *List) Describe() string    { return "list literal" }
func (e *Ascribe) Describe() string { return "type annotation" }
func (e *Block) Describe() string   { return "block" }
