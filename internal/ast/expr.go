package ast

import "github.com/kolkov/ubasic/internal/token"

// Ident represents a variable reference.
// Name is stored case-folded to lower case.
type Ident struct {
	BaseExpr
	Name string
}

// IntLit represents an integer literal, optionally negative.
// Examples: 42, -1
type IntLit struct {
	BaseExpr
	Value int64
}

// StrLit represents a quoted string literal.
// Examples: "hello", 'world'
type StrLit struct {
	BaseExpr
	Value string // Content between the quotes
}

// BinaryExpr represents the single arithmetic operation an expression
// may contain. Operands are always *Ident or *IntLit.
type BinaryExpr struct {
	BaseExpr
	Left  Expr
	Op    token.Token // ADD, SUB, MUL or DIV
	Right Expr
}

var (
	_ Expr = (*Ident)(nil)
	_ Expr = (*IntLit)(nil)
	_ Expr = (*StrLit)(nil)
	_ Expr = (*BinaryExpr)(nil)
)
