package ast

var (
	_ Stmt = (*LetStmt)(nil)
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*FuncDecl)(nil)
	_ Stmt = (*TypeDecl)(nil)
	_ Stmt = (*ExprStmt)(nil)
)

// Stmt is a statement inside a Block
type Stmt interface {
	Positioner
	stmtNode()
}

// LetStmt declares Name for the rest of the enclosing Block.
// Mutable bindings ('var') may be reassigned with an AssignStmt.
type LetStmt struct {
	Range
	Name    string
	Mutable bool
	Type    TypeExpr
	Value   Expr
}

// AssignStmt reassigns a mutable binding
type AssignStmt struct {
	Range
	Name  string
	Value Expr
}

// FuncDecl is a named function declaration, fn Name(Params): Returns => Body
type FuncDecl struct {
	Range
	Name    string
	Params  []Param
	Returns TypeExpr
	Body    Expr
}

// IsFullyAnnotated is true when every parameter and the return type are annotated
func (d *FuncDecl) IsFullyAnnotated() bool {
	if d.Returns == nil {
		return false
	}
	for _, p := range d.Params {
		if p.Type == nil {
			return false
		}
	}
	return true
}

// VariantDecl is a single alternative of a TypeDecl, Tag(Fields...)
type VariantDecl struct {
	Range
	Tag    string
	Fields []TypeExpr
}

// TypeDecl declares a union type, type Name<Params> = Variants[0] | Variants[1] | ...
type TypeDecl struct {
	Range
	Name     string
	Params   []string
	Variants []VariantDecl
}

type ExprStmt struct {
	Range
	X Expr
}

func (*LetStmt) stmtNode()    {}
func (*AssignStmt) stmtNode() {}
func (*FuncDecl) stmtNode()   {}
func (*TypeDecl) stmtNode()   {}
func (*ExprStmt) stmtNode()   {}
