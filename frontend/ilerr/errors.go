package ilerr

import (
	"fmt"
	"go/token"
	"runtime/debug"
	"strings"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/constraint"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/cottand/ileinfer/util"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
var enableDebugErrorPrinting = false

const enableDebugFullStacktrace bool = false

// SetDebugPrinting makes FormatWithCode include where the error was created
func SetDebugPrinting(enabled bool) {
	enableDebugErrorPrinting = enabled
}

type ErrCode int

const (
	None ErrCode = iota
	TypeMismatch
	InfiniteType
	ArityMismatch
	UnboundIdentifier
	ConstraintSolvingFailure
	UnresolvedType
	UnknownType
	NotNumeric
	ImmutableAssignment
)

type IleError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			if lines := strings.Split(stack, "\n"); len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithPosition prefixes FormatWithCode with the file:line:col of e,
// as known by fset
func FormatWithPosition(e IleError, fset *token.FileSet) string {
	return ast.RangeOf(e).Format(fset) + ": " + FormatWithCode(e)
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewTypeMismatch struct {
	ast.Positioner
	Expected types.Type
	Actual   types.Type
	stack    []byte
}

func (e NewTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected type '%v', but found a different type '%v'", e.Expected, e.Actual)
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewInfiniteType struct {
	ast.Positioner
	Var   types.TypeVar
	Type  types.Type
	stack []byte
}

func (e NewInfiniteType) Error() string {
	return fmt.Sprintf("infinite type: '%v' occurs in '%v'", e.Var, e.Type)
}
func (e NewInfiniteType) Code() ErrCode    { return InfiniteType }
func (e NewInfiniteType) getStack() []byte { return e.stack }
func (e NewInfiniteType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewArityMismatch struct {
	ast.Positioner
	// What is being counted, like "function parameters"
	What     string
	Expected int
	Actual   int
	stack    []byte
}

func (e NewArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch: expected %d %s, but found %d", e.Expected, e.What, e.Actual)
}
func (e NewArityMismatch) Code() ErrCode    { return ArityMismatch }
func (e NewArityMismatch) getStack() []byte { return e.stack }
func (e NewArityMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnboundIdentifier struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUnboundIdentifier) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUnboundIdentifier) Code() ErrCode    { return UnboundIdentifier }
func (e NewUnboundIdentifier) getStack() []byte { return e.stack }
func (e NewUnboundIdentifier) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewConstraintSolvingFailure is the first constraint that could not be solved.
// Reason is the unification error behind it
type NewConstraintSolvingFailure struct {
	ast.Positioner
	Constraint constraint.Constraint
	// Index is the position of Constraint in the solved constraint.Set
	Index  int
	Reason IleError
	stack  []byte
}

func (e NewConstraintSolvingFailure) Error() string {
	return fmt.Sprintf("could not solve constraint %v: %v", e.Constraint, e.Reason.Error())
}
func (e NewConstraintSolvingFailure) Code() ErrCode    { return ConstraintSolvingFailure }
func (e NewConstraintSolvingFailure) Unwrap() error    { return e.Reason }
func (e NewConstraintSolvingFailure) getStack() []byte { return e.stack }
func (e NewConstraintSolvingFailure) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// Cause allows github.com/pkg/errors.Cause to find the unification error
func (e NewConstraintSolvingFailure) Cause() error {
	return e.Reason
}

type NewUnresolvedType struct {
	ast.Positioner
	// Description is what the expression is called, see ast.Expr.Describe
	Description string
	Type        types.Type
	stack       []byte
}

func (e NewUnresolvedType) Error() string {
	return fmt.Sprintf("could not infer the type of %s, it remains '%v'", e.Description, e.Type)
}
func (e NewUnresolvedType) Code() ErrCode    { return UnresolvedType }
func (e NewUnresolvedType) getStack() []byte { return e.stack }
func (e NewUnresolvedType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnknownType struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUnknownType) Error() string {
	return fmt.Sprintf("type '%s' is not defined", e.Name)
}
func (e NewUnknownType) Code() ErrCode    { return UnknownType }
func (e NewUnknownType) getStack() []byte { return e.stack }
func (e NewUnknownType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewNotNumeric struct {
	ast.Positioner
	Operator token.Token
	Type     types.Type
	Allowed  []types.Type
	stack    []byte
}

func (e NewNotNumeric) Error() string {
	return fmt.Sprintf("operator '%v' cannot be applied to '%v', expected one of %s", e.Operator, e.Type, util.JoinString(e.Allowed, ", "))
}
func (e NewNotNumeric) Code() ErrCode    { return NotNumeric }
func (e NewNotNumeric) getStack() []byte { return e.stack }
func (e NewNotNumeric) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewImmutableAssignment struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewImmutableAssignment) Error() string {
	return fmt.Sprintf("cannot assign to '%s', it was not declared with var", e.Name)
}
func (e NewImmutableAssignment) Code() ErrCode    { return ImmutableAssignment }
func (e NewImmutableAssignment) getStack() []byte { return e.stack }
func (e NewImmutableAssignment) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
