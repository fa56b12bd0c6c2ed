// Package lexer provides tokenization of single BASIC instructions.
package lexer

import (
	"bytes"
	"unicode/utf8"

	"github.com/kolkov/ubasic/internal/token"
)

// eof marks the end of input in Lexer.ch. A NUL byte in the source is an
// ordinary (illegal) character.
const eof = -1

// Lexer tokenizes the text of one instruction (without its line number).
type Lexer struct {
	src     []byte         // Instruction text
	ch      rune           // Current character (eof at end of input)
	offset  int            // Offset of the next character
	pos     token.Position // Position of current character
	nextPos token.Position // Position of next character
}

// New creates a new Lexer for the given instruction text.
// line is the declared line number used in token positions.
func New(src []byte, line int) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   line,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string, line int) *Lexer {
	return New([]byte(src), line)
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	pos := l.pos

	if l.ch == eof {
		return Token{Type: token.EOF, Pos: l.nextPos}
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Type: token.ADD, Pos: pos, Value: "+"}
	case '-':
		l.next()
		return Token{Type: token.SUB, Pos: pos, Value: "-"}
	case '*':
		l.next()
		return Token{Type: token.MUL, Pos: pos, Value: "*"}
	case '/':
		l.next()
		return Token{Type: token.DIV, Pos: pos, Value: "/"}
	case '=':
		l.next()
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}
	case '<':
		l.next()
		return Token{Type: token.LESS, Pos: pos, Value: "<"}
	case '>':
		l.next()
		return Token{Type: token.GREATER, Pos: pos, Value: ">"}

	case '"', '\'':
		return l.scanString(pos)

	default:
		if isDigit(l.ch) {
			return l.scanNumber(pos)
		}
		if isLetter(l.ch) {
			return l.scanName(pos)
		}
		ch := l.ch
		l.next()
		return Token{Type: token.ILLEGAL, Pos: pos, Value: string(ch)}
	}
}

// scanString scans a quoted literal. The closing quote must match the
// opening one; there are no escape sequences. When only blanks follow the
// last matching quote, the literal runs to that quote, so a literal ending
// an instruction may itself contain its quote character.
func (l *Lexer) scanString(pos token.Position) Token {
	quote := byte(l.ch)
	start := pos.Offset + 1
	rest := l.src[start:]

	end := bytes.IndexByte(rest, quote)
	if end < 0 {
		for l.ch != eof {
			l.next()
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
	}
	if last := bytes.LastIndexByte(rest, quote); last > end && isBlank(rest[last+1:]) {
		end = last
	}
	end += start

	for l.ch != eof && l.pos.Offset < end {
		l.next()
	}
	l.next() // consume closing quote

	return Token{Type: token.STRING, Pos: pos, Value: string(l.src[start:end])}
}

func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset
	for isDigit(l.ch) {
		l.next()
	}
	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

func (l *Lexer) scanName(pos token.Position) Token {
	start := pos.Offset
	for isLetter(l.ch) {
		l.next()
	}
	return Token{Type: token.NAME, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

// endOffset returns the correct end offset for slicing l.src.
// At EOF, l.pos is not updated, so we use len(l.src); otherwise l.pos.Offset.
func (l *Lexer) endOffset() int {
	if l.ch == eof {
		return len(l.src)
	}
	return l.pos.Offset
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.next()
	}
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = eof
		return
	}

	l.pos = l.nextPos

	// Handle UTF-8; invalid bytes decode to utf8.RuneError one at a time
	if l.src[l.offset] >= utf8.RuneSelf {
		r, size := utf8.DecodeRune(l.src[l.offset:])
		l.ch = r
		l.offset += size
		l.nextPos.Column += size
		l.nextPos.Offset = l.offset
		return
	}

	l.ch = rune(l.src[l.offset])
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset
}

// isBlank reports whether b holds only characters skipped between tokens.
func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
