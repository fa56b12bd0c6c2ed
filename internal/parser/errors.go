// Package parser compiles the text of one BASIC line into an instruction.
package parser

import (
	"fmt"

	"github.com/kolkov/ubasic/internal/token"
)

// ParseError describes what the parser expected at a position.
// It is the Cause of a SyntaxError.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
	Got     string         // Token/value that was found (optional)
	Want    string         // Token/value that was expected (optional)
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("column %d: %s", e.Pos.Column, e.Message)
	}
	return e.Message
}

// SyntaxError reports a line that is not a valid instruction or not a
// valid program line at all. Cause, if set, holds the detailed reason.
type SyntaxError struct {
	Line  int    // Declared line number (0 if the line has none)
	Text  string // Offending raw text
	Cause error  // Nested cause (optional)
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error in %q", e.Text)
	if e.Line > 0 {
		msg = fmt.Sprintf("syntax error in line %d %q", e.Line, e.Text)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the nested cause.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// GotoError reports a GOTO or IF destination that is not a declared line.
type GotoError struct {
	Line        int // Line holding the jump
	Destination int // Undeclared destination
}

func (e *GotoError) Error() string {
	return fmt.Sprintf("GOTO error in line %d: no such destination %d", e.Line, e.Destination)
}

// GosubError reports a GOSUB destination that is not a declared line.
type GosubError struct {
	Line        int // Line holding the call
	Destination int // Undeclared destination
}

func (e *GosubError) Error() string {
	return fmt.Sprintf("GOSUB error in line %d: no such destination %d", e.Line, e.Destination)
}

// errorf creates a ParseError at the given position with formatted message.
func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// expectedError creates a ParseError for unexpected token.
func expectedError(pos token.Position, want string, got string) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
		Want:    want,
		Got:     got,
	}
}
