package ast

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// ExprString renders e in the concrete syntax of the language
func ExprString(e Expr) string {
	sb := &strings.Builder{}
	writeExpr(sb, e)
	return sb.String()
}

func PatternString(p Pattern) string {
	sb := &strings.Builder{}
	writePattern(sb, p)
	return sb.String()
}

func TypeExprString(t TypeExpr) string {
	sb := &strings.Builder{}
	writeTypeExpr(sb, t)
	return sb.String()
}

func writeExprs(sb *strings.Builder, es []Expr) {
	for i, e := range es {
		if i != 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, e)
	}
}

func writeParams(sb *strings.Builder, params []Param) {
	sb.WriteString("(")
	for i, p := range params {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if p.Type != nil {
			sb.WriteString(": ")
			writeTypeExpr(sb, p.Type)
		}
	}
	sb.WriteString(")")
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Literal:
		switch e.Kind {
		case StringLit:
			sb.WriteString(strconv.Quote(e.Syntax))
		case UnitLit:
			sb.WriteString("()")
		case NullLit:
			sb.WriteString("null")
		default:
			sb.WriteString(e.Syntax)
		}
	case *Ident:
		sb.WriteString(e.Name)
	case *Binary:
		sb.WriteString("(")
		writeExpr(sb, e.Left)
		sb.WriteString(" " + e.Op.String() + " ")
		writeExpr(sb, e.Right)
		sb.WriteString(")")
	case *Unary:
		sb.WriteString(e.Op.String())
		writeExpr(sb, e.Operand)
	case *Call:
		writeExpr(sb, e.Callee)
		sb.WriteString("(")
		writeExprs(sb, e.Args)
		sb.WriteString(")")
	case *Lambda:
		writeParams(sb, e.Params)
		if e.Returns != nil {
			sb.WriteString(": ")
			writeTypeExpr(sb, e.Returns)
		}
		sb.WriteString(" => ")
		writeExpr(sb, e.Body)
	case *Let:
		sb.WriteString("let " + e.Name)
		if e.Type != nil {
			sb.WriteString(": ")
			writeTypeExpr(sb, e.Type)
		}
		sb.WriteString(" = ")
		writeExpr(sb, e.Value)
		sb.WriteString(" in ")
		writeExpr(sb, e.Body)
	case *If:
		sb.WriteString("if ")
		writeExpr(sb, e.Cond)
		sb.WriteString(" then ")
		writeExpr(sb, e.Then)
		sb.WriteString(" else ")
		writeExpr(sb, e.Else)
	case *Match:
		sb.WriteString("match ")
		writeExpr(sb, e.Scrutinee)
		sb.WriteString(" {")
		for _, arm := range e.Arms {
			sb.WriteString(" ")
			writePattern(sb, arm.Pattern)
			if arm.Guard != nil {
				sb.WriteString(" if ")
				writeExpr(sb, arm.Guard)
			}
			sb.WriteString(" -> ")
			writeExpr(sb, arm.Body)
			sb.WriteString(";")
		}
		sb.WriteString(" }")
	case *Tuple:
		sb.WriteString("(")
		writeExprs(sb, e.Elems)
		if len(e.Elems) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	case *List:
		sb.WriteString("[")
		writeExprs(sb, e.Elems)
		sb.WriteString("]")
	case *Ascribe:
		sb.WriteString("(")
		writeExpr(sb, e.Expr)
		sb.WriteString(": ")
		writeTypeExpr(sb, e.Type)
		sb.WriteString(")")
	case *Block:
		sb.WriteString("{ ")
		for _, stmt := range e.Stmts {
			writeStmt(sb, stmt)
			sb.WriteString("; ")
		}
		if e.Result != nil {
			writeExpr(sb, e.Result)
			sb.WriteString(" ")
		}
		sb.WriteString("}")
	default:
		panic(fmt.Sprintf("unhandled expression %T", e))
	}
}

func writeStmt(sb *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *LetStmt:
		if s.Mutable {
			sb.WriteString("var ")
		} else {
			sb.WriteString("let ")
		}
		sb.WriteString(s.Name)
		if s.Type != nil {
			sb.WriteString(": ")
			writeTypeExpr(sb, s.Type)
		}
		sb.WriteString(" = ")
		writeExpr(sb, s.Value)
	case *AssignStmt:
		sb.WriteString(s.Name + " = ")
		writeExpr(sb, s.Value)
	case *FuncDecl:
		sb.WriteString("fn " + s.Name)
		writeParams(sb, s.Params)
		if s.Returns != nil {
			sb.WriteString(": ")
			writeTypeExpr(sb, s.Returns)
		}
		sb.WriteString(" => ")
		writeExpr(sb, s.Body)
	case *TypeDecl:
		sb.WriteString("type " + s.Name)
		if len(s.Params) > 0 {
			sb.WriteString("<" + strings.Join(s.Params, ", ") + ">")
		}
		sb.WriteString(" =")
		for i, v := range s.Variants {
			if i != 0 {
				sb.WriteString(" |")
			}
			sb.WriteString(" " + v.Tag)
			if len(v.Fields) > 0 {
				sb.WriteString("(")
				for j, f := range v.Fields {
					if j != 0 {
						sb.WriteString(", ")
					}
					writeTypeExpr(sb, f)
				}
				sb.WriteString(")")
			}
		}
	case *ExprStmt:
		writeExpr(sb, s.X)
	default:
		panic(fmt.Sprintf("unhandled statement %T", s))
	}
}

func writePattern(sb *strings.Builder, p Pattern) {
	switch p := p.(type) {
	case *WildcardPat:
		sb.WriteString("_")
	case *VarPat:
		sb.WriteString(p.Name)
	case *LitPat:
		writeExpr(sb, p.Lit)
	case *TuplePat:
		sb.WriteString("(")
		for i, elem := range p.Elems {
			if i != 0 {
				sb.WriteString(", ")
			}
			writePattern(sb, elem)
		}
		sb.WriteString(")")
	case *CtorPat:
		sb.WriteString(p.Name)
		if len(p.Args) > 0 {
			sb.WriteString("(")
			for i, arg := range p.Args {
				if i != 0 {
					sb.WriteString(", ")
				}
				writePattern(sb, arg)
			}
			sb.WriteString(")")
		}
	default:
		panic(fmt.Sprintf("unhandled pattern %T", p))
	}
}

func writeTypeExpr(sb *strings.Builder, t TypeExpr) {
	switch t := t.(type) {
	case *TypeName:
		sb.WriteString(t.Name)
		if len(t.Args) > 0 {
			sb.WriteString("<")
			for i, arg := range t.Args {
				if i != 0 {
					sb.WriteString(", ")
				}
				writeTypeExpr(sb, arg)
			}
			sb.WriteString(">")
		}
	case *TypeVarName:
		sb.WriteString("'" + t.Name)
	case *FuncTypeExpr:
		sb.WriteString("(")
		for i, param := range t.Params {
			if i != 0 {
				sb.WriteString(", ")
			}
			writeTypeExpr(sb, param)
		}
		sb.WriteString(") -> ")
		writeTypeExpr(sb, t.Return)
	case *TupleTypeExpr:
		sb.WriteString("(")
		for i, elem := range t.Elems {
			if i != 0 {
				sb.WriteString(", ")
			}
			writeTypeExpr(sb, elem)
		}
		sb.WriteString(")")
	case *NullableTypeExpr:
		writeTypeExpr(sb, t.Inner)
		sb.WriteString("?")
	default:
		panic(fmt.Sprintf("unhandled type annotation %T", t))
	}
}

// OperatorFromString maps the concrete syntax of an operator to its token,
// returning token.ILLEGAL for unknown operators
func OperatorFromString(op string) token.Token {
	switch op {
	case "+":
		return token.ADD
	case "-":
		return token.SUB
	case "*":
		return token.MUL
	case "/":
		return token.QUO
	case "%":
		return token.REM
	case "<":
		return token.LSS
	case "<=":
		return token.LEQ
	case ">":
		return token.GTR
	case ">=":
		return token.GEQ
	case "==":
		return token.EQL
	case "!=":
		return token.NEQ
	case "&&":
		return token.LAND
	case "||":
		return token.LOR
	case "!":
		return token.NOT
	default:
		return token.ILLEGAL
	}
}
