package ast

var (
	_ TypeExpr = (*TypeName)(nil)
	_ TypeExpr = (*TypeVarName)(nil)
	_ TypeExpr = (*FuncTypeExpr)(nil)
	_ TypeExpr = (*TupleTypeExpr)(nil)
	_ TypeExpr = (*NullableTypeExpr)(nil)
)

// TypeExpr specifies a type as written by the programmer in the source.
//
// It is not to be confused with a types.Type (produced via inference),
// TypeExpr gets resolved into a types.Type before being used as an expected type
type TypeExpr interface {
	Positioner
	typeExprNode()
}

// TypeName is a named type with optional type arguments, like Int or List<String>
type TypeName struct {
	Range
	Name string
	Args []TypeExpr
}

// TypeVarName is a type variable in an annotation, like 'a
type TypeVarName struct {
	Range
	Name string
}

type FuncTypeExpr struct {
	Range
	Params []TypeExpr
	Return TypeExpr
}

type TupleTypeExpr struct {
	Range
	Elems []TypeExpr
}

// NullableTypeExpr is Inner?
type NullableTypeExpr struct {
	Range
	Inner TypeExpr
}

func (*TypeName) typeExprNode()         {}
func (*TypeVarName) typeExprNode()      {}
func (*FuncTypeExpr) typeExprNode()     {}
func (*TupleTypeExpr) typeExprNode()    {}
func (*NullableTypeExpr) typeExprNode() {}
