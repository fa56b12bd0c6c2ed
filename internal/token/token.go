// Package token defines lexical tokens for BASIC instructions.
package token

import "strings"

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Operators
	operatorStart
	ADD     // +
	SUB     // -
	MUL     // *
	DIV     // /
	ASSIGN  // =
	LESS    // <
	GREATER // >
	operatorEnd

	// Keywords. The lexer never emits these; the parser classifies
	// NAME tokens with LookupKeyword where a keyword is expected.
	keywordStart
	LET    // LET
	PRINT  // PRINT
	GOTO   // GOTO
	END    // END
	IF     // IF
	INPUT  // INPUT
	GOSUB  // GOSUB
	RETURN // RETURN
	keywordEnd

	// Literals
	NAME   // name
	NUMBER // number
	STRING // string
)

// IsOperator returns true if the token is an operator.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal (name, number, string).
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER || t == STRING
}

// IsArith returns true for the four binary arithmetic operators.
func (t Token) IsArith() bool {
	return t == ADD || t == SUB || t == MUL || t == DIV
}

// IsComparison returns true for the IF comparison operators.
func (t Token) IsComparison() bool {
	return t == ASSIGN || t == LESS || t == GREATER
}

// keywords maps upper-case keyword spellings to their token types.
var keywords = map[string]Token{
	"LET":    LET,
	"PRINT":  PRINT,
	"GOTO":   GOTO,
	"END":    END,
	"IF":     IF,
	"INPUT":  INPUT,
	"GOSUB":  GOSUB,
	"RETURN": RETURN,
}

// LookupKeyword returns the keyword token for name, ignoring case,
// or ILLEGAL if name is not a keyword.
func LookupKeyword(name string) Token {
	if tok, ok := keywords[strings.ToUpper(name)]; ok {
		return tok
	}
	return ILLEGAL
}

// String returns the source spelling of operators and keywords.
func (t Token) String() string {
	switch t {
	case ILLEGAL:
		return "illegal"
	case EOF:
		return "end of line"
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case ASSIGN:
		return "="
	case LESS:
		return "<"
	case GREATER:
		return ">"
	case NAME:
		return "name"
	case NUMBER:
		return "number"
	case STRING:
		return "string"
	}
	for name, tok := range keywords {
		if tok == t {
			return name
		}
	}
	return "token(?)"
}
