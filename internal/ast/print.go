package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer renders nodes back to normalized BASIC source:
// upper-case keywords, single spaces, lower-case variable names.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the source form of node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) printNode(node Node) {
	switch n := node.(type) {
	case nil:
		p.printf("<nil>")
	case Expr:
		p.printExpr(n)
	case Instr:
		p.printInstr(n)
	default:
		p.printf("<unknown %T>", node)
	}
}

func (p *Printer) printExpr(e Expr) {
	switch n := e.(type) {
	case *Ident:
		p.printf("%s", n.Name)
	case *IntLit:
		p.printf("%s", strconv.FormatInt(n.Value, 10))
	case *StrLit:
		// Literals have no escapes. A value holding both quote kinds can
		// only come from a trailing literal, which ends at its last quote.
		if strings.ContainsRune(n.Value, '"') && !strings.ContainsRune(n.Value, '\'') {
			p.printf("'%s'", n.Value)
		} else {
			p.printf("\"%s\"", n.Value)
		}
	case *BinaryExpr:
		p.printExpr(n.Left)
		p.printf(" %s ", n.Op)
		p.printExpr(n.Right)
	default:
		p.printf("<unknown %T>", e)
	}
}

func (p *Printer) printInstr(in Instr) {
	switch n := in.(type) {
	case *LetInstr:
		p.printf("LET %s = ", n.Name)
		p.printExpr(n.Value)
	case *PrintInstr:
		p.printf("PRINT ")
		p.printExpr(n.Value)
	case *GotoInstr:
		p.printf("GOTO %d", n.Target.Line)
	case *IfInstr:
		p.printf("IF ")
		p.printExpr(n.Left)
		p.printf(" %s ", n.Op)
		p.printExpr(n.Right)
		p.printf(" GOTO %d", n.Target.Line)
	case *InputInstr:
		p.printf("INPUT %s", n.Name)
	case *GosubInstr:
		p.printf("GOSUB %d", n.Target.Line)
	case *ReturnInstr:
		p.printf("RETURN")
	case *EndInstr:
		p.printf("END")
	default:
		p.printf("<unknown %T>", in)
	}
}

// String returns the source form of node.
func String(node Node) string {
	var sb strings.Builder
	NewPrinter(&sb).Print(node)
	return sb.String()
}
