package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/lexer"
	"github.com/kolkov/ubasic/internal/token"
)

// Resolver translates declared line numbers into dense execution indices.
type Resolver interface {
	Lookup(line int) (int, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(line int) (int, bool)

// Lookup calls f(line).
func (f ResolverFunc) Lookup(line int) (int, bool) {
	return f(line)
}

// Parser is a recursive descent parser for one instruction.
type Parser struct {
	lexer *lexer.Lexer // Lexer instance
	tok   lexer.Token  // Current token
	line  int          // Declared line number
	res   Resolver     // Jump target resolution
}

// bailout carries the first error out of the recursive descent.
type bailout struct {
	err error
}

// ParseInstr parses the instruction text of declared line number line.
// Jump targets are resolved through res. ParseInstr is pure: it only
// reads src and res, so concurrent calls for the same line agree.
func ParseInstr(src string, line int, res Resolver) (in ast.Instr, err error) {
	p := newParser(src, line, res)
	defer p.catch(src, &err)

	in = p.parseInstr()
	return in, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (e ast.Expr, err error) {
	p := newParser(src, 0, nil)
	defer p.catch(src, &err)

	e = p.parseExpr()
	p.expectEOF()
	return e, nil
}

func newParser(src string, line int, res Resolver) *Parser {
	p := &Parser{
		lexer: lexer.NewFromString(src, line),
		line:  line,
		res:   res,
	}
	p.next() // Initialize first token
	return p
}

// catch converts a bailout into the returned error. Parse errors are
// wrapped in a SyntaxError; jump errors are returned as they are.
func (p *Parser) catch(src string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	b, ok := r.(bailout)
	if !ok {
		panic(r) // Re-panic for non-parse errors
	}
	if pe, ok := b.err.(*ParseError); ok {
		*errp = &SyntaxError{Line: p.line, Text: src, Cause: pe}
		return
	}
	*errp = b.err
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
}

func (p *Parser) fail(err error) {
	panic(bailout{err: err})
}

// expect checks that the current token is tok and advances.
func (p *Parser) expect(tok token.Token) lexer.Token {
	cur := p.tok
	if cur.Type != tok {
		p.fail(expectedError(cur.Pos, tok.String(), p.tokenDesc()))
	}
	p.next()
	return cur
}

// expectEOF checks that nothing follows the instruction.
func (p *Parser) expectEOF() {
	p.expect(token.EOF)
}

// expectKeyword expects a NAME spelling the keyword kw in any case.
func (p *Parser) expectKeyword(kw token.Token) {
	if p.tok.Type != token.NAME || token.LookupKeyword(p.tok.Value) != kw {
		p.fail(expectedError(p.tok.Pos, kw.String(), p.tokenDesc()))
	}
	p.next()
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.NUMBER:
		return p.tok.Value
	case token.STRING:
		return strconv.Quote(p.tok.Value)
	case token.ILLEGAL:
		// Value holds either the offending character or a message
		if r, size := utf8.DecodeRuneInString(p.tok.Value); size == len(p.tok.Value) {
			return strconv.QuoteRune(r)
		}
		return p.tok.Value
	default:
		return p.tok.Type.String()
	}
}

// -----------------------------------------------------------------------------
// Instructions
// -----------------------------------------------------------------------------

func (p *Parser) parseInstr() ast.Instr {
	start := p.tok.Pos
	if p.tok.Type != token.NAME {
		p.fail(expectedError(start, "instruction", p.tokenDesc()))
	}
	kw := token.LookupKeyword(p.tok.Value)
	if kw == token.ILLEGAL {
		p.fail(errorf(start, "unknown instruction %q", p.tok.Value))
	}
	p.next()

	base := ast.MakeBaseInstr(start)
	var in ast.Instr

	switch kw {
	case token.LET:
		name := p.parseName()
		p.expect(token.ASSIGN)
		in = &ast.LetInstr{BaseInstr: base, Name: name, Value: p.parseExpr()}

	case token.PRINT:
		in = &ast.PrintInstr{BaseInstr: base, Value: p.parseExpr()}

	case token.GOTO:
		in = &ast.GotoInstr{BaseInstr: base, Target: p.parseTarget(token.GOTO)}

	case token.IF:
		cond := &ast.IfInstr{BaseInstr: base}
		cond.Left = p.parseExpr()
		if !p.tok.Type.IsComparison() {
			p.fail(expectedError(p.tok.Pos, "comparison (=, <, >)", p.tokenDesc()))
		}
		cond.Op = p.tok.Type
		p.next()
		cond.Right = p.parseExpr()
		p.expectKeyword(token.GOTO)
		cond.Target = p.parseTarget(token.GOTO)
		in = cond

	case token.INPUT:
		in = &ast.InputInstr{BaseInstr: base, Name: p.parseName()}

	case token.GOSUB:
		in = &ast.GosubInstr{BaseInstr: base, Target: p.parseTarget(token.GOSUB)}

	case token.RETURN:
		in = &ast.ReturnInstr{BaseInstr: base}

	case token.END:
		in = &ast.EndInstr{BaseInstr: base}
	}

	p.expectEOF()
	return in
}

// parseName parses a variable name and folds its case.
func (p *Parser) parseName() string {
	return strings.ToLower(p.expect(token.NAME).Value)
}

// parseTarget parses a destination line number and resolves it.
func (p *Parser) parseTarget(kind token.Token) ast.Target {
	tok := p.expect(token.NUMBER)
	dest, err := strconv.Atoi(tok.Value)
	if err != nil {
		p.fail(errorf(tok.Pos, "line number %s out of range", tok.Value))
	}

	var idx int
	var ok bool
	if p.res != nil {
		idx, ok = p.res.Lookup(dest)
	}
	if !ok {
		if kind == token.GOSUB {
			p.fail(&GosubError{Line: p.line, Destination: dest})
		}
		p.fail(&GotoError{Line: p.line, Destination: dest})
	}
	return ast.Target{Line: dest, Index: idx}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseExpr parses
//
//	Expression ::= Variable | StringLiteral | IntLiteral | Operand BinaryOp Operand
func (p *Parser) parseExpr() ast.Expr {
	if p.tok.Type == token.STRING {
		lit := &ast.StrLit{BaseExpr: ast.MakeBaseExpr(p.tok.Pos), Value: p.tok.Value}
		p.next()
		return lit
	}

	left := p.parseOperand()
	if !p.tok.Type.IsArith() {
		return left
	}
	op := p.tok.Type
	p.next()
	right := p.parseOperand()

	return &ast.BinaryExpr{
		BaseExpr: ast.MakeBaseExpr(left.Pos()),
		Left:     left,
		Op:       op,
		Right:    right,
	}
}

// parseOperand parses
//
//	Operand ::= Variable | IntLiteral
//
// A minus sign directly followed by digits is part of the literal.
func (p *Parser) parseOperand() ast.Expr {
	start := p.tok.Pos
	switch p.tok.Type {
	case token.NAME:
		id := &ast.Ident{BaseExpr: ast.MakeBaseExpr(start), Name: strings.ToLower(p.tok.Value)}
		p.next()
		return id

	case token.NUMBER:
		return p.parseInt(start, "")

	case token.SUB:
		p.next()
		if p.tok.Type != token.NUMBER || p.tok.Pos.Offset != start.Offset+1 {
			p.fail(expectedError(p.tok.Pos, "digits after '-'", p.tokenDesc()))
		}
		return p.parseInt(start, "-")
	}

	p.fail(expectedError(start, "variable or integer", p.tokenDesc()))
	return nil
}

func (p *Parser) parseInt(start token.Position, sign string) *ast.IntLit {
	text := sign + p.tok.Value
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.fail(errorf(start, "integer %s out of range", text))
	}
	p.next()
	return &ast.IntLit{BaseExpr: ast.MakeBaseExpr(start), Value: v}
}
