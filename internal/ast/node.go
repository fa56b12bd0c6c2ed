// Package ast defines the syntax tree of compiled BASIC lines.
//
// Both trees are closed sums: every concrete type is listed here and the
// marker methods are unexported, so a type switch over Expr or Instr can
// be checked for completeness.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - values
//	│   ├── Ident, IntLit, StrLit - operands
//	│   └── BinaryExpr - one arithmetic operator
//	└── Instr (interface) - one program line
//	    ├── LetInstr, PrintInstr, InputInstr - data
//	    ├── GotoInstr, IfInstr, GosubInstr - jumps
//	    └── ReturnInstr, EndInstr - control
package ast

import "github.com/kolkov/ubasic/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Instr is the interface for all instruction nodes.
type Instr interface {
	Node
	instrNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
type BaseExpr struct {
	StartPos token.Position // Position of first token
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) exprNode()           {}

// BaseInstr provides common fields for all instruction nodes.
type BaseInstr struct {
	StartPos token.Position // Position of the keyword
}

func (b *BaseInstr) Pos() token.Position { return b.StartPos }
func (b *BaseInstr) instrNode()          {}

// MakeBaseExpr creates a BaseExpr with the given position.
func MakeBaseExpr(start token.Position) BaseExpr {
	return BaseExpr{StartPos: start}
}

// MakeBaseInstr creates a BaseInstr with the given position.
func MakeBaseInstr(start token.Position) BaseInstr {
	return BaseInstr{StartPos: start}
}
