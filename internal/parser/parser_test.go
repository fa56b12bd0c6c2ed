package parser_test

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/parser"
	"github.com/kolkov/ubasic/internal/token"
)

// lines is a resolver over a fixed set of declared lines.
func lines(numbers ...int) parser.Resolver {
	idx := make(map[int]int, len(numbers))
	for i, n := range numbers {
		idx[n] = i
	}
	return parser.ResolverFunc(func(line int) (int, bool) {
		i, ok := idx[line]
		return i, ok
	})
}

// TestParseInstrRoundTrip parses instructions and prints them back.
func TestParseInstrRoundTrip(t *testing.T) {
	res := lines(10, 20, 30, 300)

	tests := []struct {
		src  string
		want string
	}{
		{"LET count = 0", "LET count = 0"},
		{"lEt A = a + 1", "LET a = a + 1"},
		{"LET count = count - -1", "LET count = count - -1"},
		{"LET x = -5", "LET x = -5"},
		{"LET x=y*2", "LET x = y * 2"},
		{"LET q = a / b", "LET q = a / b"},
		{`LET n = "42"`, `LET n = "42"`},
		{`PRINT "Hello, World!"`, `PRINT "Hello, World!"`},
		{`print 'single'`, `PRINT "single"`},
		{`PRINT "say "hi""`, `PRINT 'say "hi"'`},
		{`PRINT "it's "odd""  `, `PRINT "it's "odd""`},
		{"PRINT \"C:\\dir\ttab\"", "PRINT \"C:\\dir\ttab\""},
		{`IF "1" = '2' GOTO 10`, `IF "1" = "2" GOTO 10`},
		{"PRINT 1 + 2", "PRINT 1 + 2"},
		{"PRINT Count", "PRINT count"},
		{"GOTO 20", "GOTO 20"},
		{"IF count < 10 GOTO 20", "IF count < 10 GOTO 20"},
		{"if a = b goto 30", "IF a = b GOTO 30"},
		{"IF a + 1 > b GOTO 10", "IF a + 1 > b GOTO 10"},
		{"IF count < -5 GOTO 10", "IF count < -5 GOTO 10"},
		{"INPUT a", "INPUT a"},
		{"GOSUB 300", "GOSUB 300"},
		{"RETURN", "RETURN"},
		{"end", "END"},
		{"  PRINT   x  ", "PRINT x"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			in, err := parser.ParseInstr(tt.src, 10, res)
			if err != nil {
				t.Fatalf("ParseInstr() error = %v", err)
			}
			if got := ast.String(in); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInstrTargets(t *testing.T) {
	res := lines(10, 20, 30, 300)

	in, err := parser.ParseInstr("IF count < 10 GOTO 300", 30, res)
	if err != nil {
		t.Fatal(err)
	}
	cond, ok := in.(*ast.IfInstr)
	if !ok {
		t.Fatalf("got %T, want *ast.IfInstr", in)
	}
	if cond.Target != (ast.Target{Line: 300, Index: 3}) {
		t.Errorf("Target = %+v", cond.Target)
	}
	if cond.Op != token.LESS {
		t.Errorf("Op = %v, want <", cond.Op)
	}

	in, err = parser.ParseInstr("GOSUB 20", 10, res)
	if err != nil {
		t.Fatal(err)
	}
	if call := in.(*ast.GosubInstr); call.Target.Index != 1 {
		t.Errorf("GOSUB index = %d, want 1", call.Target.Index)
	}
}

func TestParseInstrSyntaxErrors(t *testing.T) {
	res := lines(10, 20)

	tests := []string{
		"",
		"FOO x",
		"LET",
		"LET x",
		"LET x 1",
		"LET 1 = 2",
		"LET x = ",
		"LET x = 1 + ",
		"LET x = 1 + 2 + 3",
		`LET x = "a" + 1`,
		`LET x = 1 + "a"`,
		"LET x = - 1",
		"LET x = --1",
		"LET x = 99999999999999999999",
		"PRINT",
		`PRINT "unterminated`,
		"PRINT a b",
		"GOTO",
		"GOTO x",
		"GOTO 10 20",
		"IF a GOTO 10",
		"IF a < b 10",
		"IF a < b THEN 10",
		"IF a <> b GOTO 10",
		"INPUT",
		"INPUT 5",
		"INPUT a b",
		"RETURN 10",
		"END now",
		"PRINT x?",
		"PRINT 1\x00garbage",
		"PRINT \u00e9t\u00e9",
		"PRINT \"a\" \"b",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := parser.ParseInstr(src, 20, res)
			var se *parser.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("ParseInstr(%q) error = %v, want *SyntaxError", src, err)
			}
			if se.Text != src {
				t.Errorf("Text = %q, want %q", se.Text, src)
			}
			if se.Line != 20 {
				t.Errorf("Line = %d, want 20", se.Line)
			}
			var pe *parser.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("cause %v is not a *ParseError", se.Cause)
			}
		})
	}
}

func TestParseInstrJumpErrors(t *testing.T) {
	res := lines(10, 20)

	tests := []struct {
		src       string
		wantGosub bool
		dest      int
	}{
		{"GOTO 15", false, 15},
		{"IF a < b GOTO 99", false, 99},
		{"GOSUB 40", true, 40},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parser.ParseInstr(tt.src, 20, res)
			if tt.wantGosub {
				var ge *parser.GosubError
				if !errors.As(err, &ge) {
					t.Fatalf("error = %v, want *GosubError", err)
				}
				if ge.Line != 20 || ge.Destination != tt.dest {
					t.Errorf("got %+v", ge)
				}
				return
			}
			var ge *parser.GotoError
			if !errors.As(err, &ge) {
				t.Fatalf("error = %v, want *GotoError", err)
			}
			if ge.Line != 20 || ge.Destination != tt.dest {
				t.Errorf("got %+v", ge)
			}
		})
	}
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src     string
		check   func(ast.Expr) bool
		wantErr bool
	}{
		{src: "abc", check: func(e ast.Expr) bool {
			id, ok := e.(*ast.Ident)
			return ok && id.Name == "abc"
		}},
		{src: "ABC", check: func(e ast.Expr) bool {
			id, ok := e.(*ast.Ident)
			return ok && id.Name == "abc"
		}},
		{src: "-42", check: func(e ast.Expr) bool {
			lit, ok := e.(*ast.IntLit)
			return ok && lit.Value == -42
		}},
		{src: `"-42"`, check: func(e ast.Expr) bool {
			lit, ok := e.(*ast.StrLit)
			return ok && lit.Value == "-42"
		}},
		{src: "a - -1", check: func(e ast.Expr) bool {
			b, ok := e.(*ast.BinaryExpr)
			if !ok || b.Op != token.SUB {
				return false
			}
			lit, ok := b.Right.(*ast.IntLit)
			return ok && lit.Value == -1
		}},
		{src: "a -1", check: func(e ast.Expr) bool {
			b, ok := e.(*ast.BinaryExpr)
			if !ok || b.Op != token.SUB {
				return false
			}
			lit, ok := b.Right.(*ast.IntLit)
			return ok && lit.Value == 1
		}},
		{src: "9223372036854775807", check: func(e ast.Expr) bool {
			lit, ok := e.(*ast.IntLit)
			return ok && lit.Value == 9223372036854775807
		}},
		{src: "-9223372036854775808", check: func(e ast.Expr) bool {
			lit, ok := e.(*ast.IntLit)
			return ok && lit.Value == -9223372036854775808
		}},
		{src: "9223372036854775808", wantErr: true},
		{src: "a1", wantErr: true},
		{src: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := parser.ParseExpr(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExpr() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !tt.check(e) {
				t.Errorf("ParseExpr(%q) = %s (%T)", tt.src, ast.String(e), e)
			}
		})
	}
}

// TestParseInstrPure checks that parsing the same line twice gives
// equal trees and never mutates the resolver.
func TestParseInstrPure(t *testing.T) {
	calls := 0
	res := parser.ResolverFunc(func(line int) (int, bool) {
		calls++
		return 7, line == 100
	})

	a, errA := parser.ParseInstr("IF x > 1 GOTO 100", 5, res)
	b, errB := parser.ParseInstr("IF x > 1 GOTO 100", 5, res)
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v, %v", errA, errB)
	}
	if ast.String(a) != ast.String(b) {
		t.Errorf("%q != %q", ast.String(a), ast.String(b))
	}
	if a == b {
		t.Error("expected distinct trees")
	}
	if calls != 2 {
		t.Errorf("resolver called %d times, want 2", calls)
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := parser.ParseInstr("LET x", 10, lines(10))
	want := `syntax error in line 10 "LET x": column 6: expected =, got end of line`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}

func TestIllegalCharacterMessage(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"PRINT 1\x00garbage", `syntax error in line 10 "PRINT 1\x00garbage": column 8: expected end of line, got '\x00'`},
		{"PRINT \u00e9", `syntax error in line 10 "PRINT é": column 7: expected variable or integer, got 'é'`},
		{"PRINT x?", `syntax error in line 10 "PRINT x?": column 8: expected end of line, got '?'`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parser.ParseInstr(tt.src, 10, lines(10))
			if err == nil {
				t.Fatal("expected error")
			}
			if !utf8.ValidString(err.Error()) {
				t.Errorf("message is not valid UTF-8: %q", err.Error())
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}
