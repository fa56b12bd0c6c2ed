package vm

import (
	"strconv"
	"strings"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/token"
)

// IntValue evaluates e as an integer.
//
// Variables must be bound, string literals must hold a decimal integer.
// Arithmetic wraps on overflow and division truncates toward zero.
func (c *Context) IntValue(e ast.Expr) (int64, error) {
	switch e := e.(type) {
	case *ast.Ident:
		v, ok := c.vars[e.Name]
		if !ok {
			return 0, &UndefinedVariableError{Name: e.Name}
		}
		return v, nil

	case *ast.IntLit:
		return e.Value, nil

	case *ast.StrLit:
		v, err := strconv.ParseInt(e.Value, 10, 64)
		if err != nil {
			return 0, &ExpressionValueError{Value: e.Value}
		}
		return v, nil

	case *ast.BinaryExpr:
		l, err := c.IntValue(e.Left)
		if err != nil {
			return 0, err
		}
		r, err := c.IntValue(e.Right)
		if err != nil {
			return 0, err
		}
		return arith(e.Op, l, r)
	}
	panic("vm: unexpected expression type")
}

// StringValue evaluates e as text. String literals are returned verbatim,
// everything else is rendered as a decimal integer.
func (c *Context) StringValue(e ast.Expr) (string, error) {
	if s, ok := e.(*ast.StrLit); ok {
		return s.Value, nil
	}
	v, err := c.IntValue(e)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

func arith(op token.Token, l, r int64) (int64, error) {
	switch op {
	case token.ADD:
		return l + r, nil
	case token.SUB:
		return l - r, nil
	case token.MUL:
		return l * r, nil
	case token.DIV:
		if r == 0 {
			return 0, &ArithmeticError{}
		}
		return l / r, nil
	}
	panic("vm: unexpected operator " + op.String())
}

// compare evaluates a comparison between two integers.
func compare(op token.Token, l, r int64) bool {
	switch op {
	case token.ASSIGN:
		return l == r
	case token.LESS:
		return l < r
	case token.GREATER:
		return l > r
	}
	panic("vm: unexpected comparison " + op.String())
}

// parseInput parses one INPUT line. Surrounding blanks are ignored.
func parseInput(text string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}
