package ast_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/token"
)

func ident(name string) *ast.Ident      { return &ast.Ident{Name: name} }
func intLit(v int64) *ast.IntLit        { return &ast.IntLit{Value: v} }
func strLit(s string) *ast.StrLit       { return &ast.StrLit{Value: s} }
func target(line, index int) ast.Target { return ast.Target{Line: line, Index: index} }

// TestNodePositions verifies that positions survive embedding.
func TestNodePositions(t *testing.T) {
	pos := token.Position{Line: 10, Column: 5, Offset: 4}

	nodes := []ast.Node{
		&ast.Ident{BaseExpr: ast.MakeBaseExpr(pos), Name: "x"},
		&ast.IntLit{BaseExpr: ast.MakeBaseExpr(pos)},
		&ast.StrLit{BaseExpr: ast.MakeBaseExpr(pos)},
		&ast.BinaryExpr{BaseExpr: ast.MakeBaseExpr(pos)},
		&ast.LetInstr{BaseInstr: ast.MakeBaseInstr(pos)},
		&ast.PrintInstr{BaseInstr: ast.MakeBaseInstr(pos)},
		&ast.GotoInstr{BaseInstr: ast.MakeBaseInstr(pos)},
		&ast.IfInstr{BaseInstr: ast.MakeBaseInstr(pos)},
		&ast.InputInstr{BaseInstr: ast.MakeBaseInstr(pos)},
		&ast.GosubInstr{BaseInstr: ast.MakeBaseInstr(pos)},
		&ast.ReturnInstr{BaseInstr: ast.MakeBaseInstr(pos)},
		&ast.EndInstr{BaseInstr: ast.MakeBaseInstr(pos)},
	}
	for _, n := range nodes {
		if n.Pos() != pos {
			t.Errorf("%T.Pos() = %v, want %v", n, n.Pos(), pos)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		node ast.Node
		want string
	}{
		{ident("count"), "count"},
		{intLit(-1), "-1"},
		{strLit("Hello, World!"), `"Hello, World!"`},
		{strLit(`say "hi"`), `'say "hi"'`},
		{strLit(`it's "odd"`), `"it's "odd""`},
		{strLit("C:\\dir\ttab"), "\"C:\\dir\ttab\""},
		{&ast.BinaryExpr{Left: ident("count"), Op: token.SUB, Right: intLit(-1)}, "count - -1"},
		{&ast.LetInstr{Name: "a", Value: intLit(1)}, "LET a = 1"},
		{&ast.PrintInstr{Value: strLit("x")}, `PRINT "x"`},
		{&ast.GotoInstr{Target: target(20, 1)}, "GOTO 20"},
		{&ast.IfInstr{Left: ident("count"), Op: token.LESS, Right: intLit(10), Target: target(20, 1)}, "IF count < 10 GOTO 20"},
		{&ast.IfInstr{Left: ident("a"), Op: token.ASSIGN, Right: ident("b"), Target: target(5, 0)}, "IF a = b GOTO 5"},
		{&ast.InputInstr{Name: "a"}, "INPUT a"},
		{&ast.GosubInstr{Target: target(300, 12)}, "GOSUB 300"},
		{&ast.ReturnInstr{}, "RETURN"},
		{&ast.EndInstr{}, "END"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ast.String(tt.node); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinterNil(t *testing.T) {
	var sb strings.Builder
	if err := ast.NewPrinter(&sb).Print(nil); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "<nil>" {
		t.Errorf("got %q", sb.String())
	}
}

func TestReadsWrites(t *testing.T) {
	let := &ast.LetInstr{
		Name:  "a",
		Value: &ast.BinaryExpr{Left: ident("b"), Op: token.ADD, Right: ident("c")},
	}
	if got := ast.Reads(let); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Reads(let) = %v", got)
	}
	if name, ok := ast.Writes(let); !ok || name != "a" {
		t.Errorf("Writes(let) = %q, %v", name, ok)
	}

	cond := &ast.IfInstr{Left: ident("x"), Op: token.GREATER, Right: strLit("5")}
	if got := ast.Reads(cond); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Reads(if) = %v", got)
	}
	if _, ok := ast.Writes(cond); ok {
		t.Error("IF must not write")
	}

	if got := ast.Reads(&ast.GotoInstr{}); got != nil {
		t.Errorf("Reads(goto) = %v, want nil", got)
	}
}

func TestJump(t *testing.T) {
	tests := []struct {
		in   ast.Instr
		want ast.Target
		ok   bool
	}{
		{&ast.GotoInstr{Target: target(10, 0)}, target(10, 0), true},
		{&ast.IfInstr{Target: target(20, 1)}, target(20, 1), true},
		{&ast.GosubInstr{Target: target(30, 2)}, target(30, 2), true},
		{&ast.ReturnInstr{}, ast.Target{}, false},
		{&ast.PrintInstr{}, ast.Target{}, false},
	}
	for _, tt := range tests {
		got, ok := ast.Jump(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Jump(%T) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
