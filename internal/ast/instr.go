package ast

import "github.com/kolkov/ubasic/internal/token"

// Target is a resolved jump destination.
type Target struct {
	Line  int // Declared line number as written
	Index int // Dense execution index
}

// LetInstr assigns the integer value of an expression.
// Example: LET count = count + 1
type LetInstr struct {
	BaseInstr
	Name  string // Case-folded variable name
	Value Expr
}

// PrintInstr emits one output line.
// Example: PRINT "Hello"
type PrintInstr struct {
	BaseInstr
	Value Expr
}

// GotoInstr jumps unconditionally.
// Example: GOTO 20
type GotoInstr struct {
	BaseInstr
	Target Target
}

// IfInstr jumps when the comparison holds.
// Example: IF count < 10 GOTO 20
type IfInstr struct {
	BaseInstr
	Left   Expr
	Op     token.Token // ASSIGN (equality), LESS or GREATER
	Right  Expr
	Target Target
}

// InputInstr reads one integer input line into a variable.
// Example: INPUT a
type InputInstr struct {
	BaseInstr
	Name string // Case-folded variable name
}

// GosubInstr calls a subroutine.
// Example: GOSUB 300
type GosubInstr struct {
	BaseInstr
	Target Target
}

// ReturnInstr returns from the innermost GOSUB.
type ReturnInstr struct {
	BaseInstr
}

// EndInstr stops the run.
type EndInstr struct {
	BaseInstr
}

var (
	_ Instr = (*LetInstr)(nil)
	_ Instr = (*PrintInstr)(nil)
	_ Instr = (*GotoInstr)(nil)
	_ Instr = (*IfInstr)(nil)
	_ Instr = (*InputInstr)(nil)
	_ Instr = (*GosubInstr)(nil)
	_ Instr = (*ReturnInstr)(nil)
	_ Instr = (*EndInstr)(nil)
)

// Jump returns the jump target of in, if it has one.
func Jump(in Instr) (Target, bool) {
	switch n := in.(type) {
	case *GotoInstr:
		return n.Target, true
	case *IfInstr:
		return n.Target, true
	case *GosubInstr:
		return n.Target, true
	default:
		return Target{}, false
	}
}
