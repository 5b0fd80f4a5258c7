package ast

var (
	_ Pattern = (*WildcardPat)(nil)
	_ Pattern = (*VarPat)(nil)
	_ Pattern = (*LitPat)(nil)
	_ Pattern = (*TuplePat)(nil)
	_ Pattern = (*CtorPat)(nil)
)

// Pattern is the left-hand side of a MatchArm
type Pattern interface {
	Positioner
	patternNode()
}

// WildcardPat matches anything and binds nothing, _
type WildcardPat struct {
	Range
}

// VarPat matches anything and binds it to Name
type VarPat struct {
	Range
	Name string
}

// LitPat matches a single literal value
type LitPat struct {
	Range
	Lit *Literal
}

type TuplePat struct {
	Range
	Elems []Pattern
}

// CtorPat matches the variant Name of a union type, destructuring its fields
type CtorPat struct {
	Range
	Name string
	Args []Pattern
}

func (*WildcardPat) patternNode() {}
func (*VarPat) patternNode()      {}
func (*LitPat) patternNode()      {}
func (*TuplePat) patternNode()    {}
func (*CtorPat) patternNode()     {}
