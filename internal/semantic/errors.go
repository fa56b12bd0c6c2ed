// Package semantic provides static analysis for compiled programs.
//
// The analyzer walks the control-flow graph from a start line and reports:
//   - Lines that no path from the start line can reach
//   - Variables that are read but never assigned by LET or INPUT
//   - RETURN instructions reachable without an enclosing GOSUB
//
// Findings are warnings; they never stop a program from running. Lines
// that fail to compile are reported as errors.
package semantic

import (
	"fmt"
	"strings"

	"github.com/kolkov/ubasic/internal/token"
)

// Error represents a line that failed to compile, or a bad start line.
type Error struct {
	Pos     token.Position
	Message string
	Err     error // underlying compile error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Pos.Line, e.Message)
}

// Unwrap returns the underlying compile error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Warning represents a semantic warning (non-fatal issue).
type Warning struct {
	Pos     token.Position
	Message string
}

// String returns the warning as a formatted string.
func (w *Warning) String() string {
	return fmt.Sprintf("line %d: warning: %s", w.Pos.Line, w.Message)
}

// ErrorList is a collection of semantic errors.
type ErrorList []*Error

// Add appends an error to the list.
func (el *ErrorList) Add(pos token.Position, format string, args ...any) {
	*el = append(*el, errorf(pos, format, args...))
}

// Err returns an error if the list is non-empty, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Error implements the error interface for ErrorList.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		var sb strings.Builder
		sb.WriteString(el[0].Error())
		for _, e := range el[1:] {
			sb.WriteByte('\n')
			sb.WriteString(e.Error())
		}
		return sb.String()
	}
}

// Unwrap exposes every contained error to errors.Is and errors.As.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// WarningList is a collection of semantic warnings.
type WarningList []*Warning

// Add appends a warning to the list.
func (wl *WarningList) Add(pos token.Position, format string, args ...any) {
	*wl = append(*wl, warnf(pos, format, args...))
}

// Strings returns every warning formatted with String.
func (wl WarningList) Strings() []string {
	out := make([]string, len(wl))
	for i, w := range wl {
		out[i] = w.String()
	}
	return out
}

// errorf creates a new semantic error.
func errorf(pos token.Position, format string, args ...any) *Error {
	return &Error{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// warnf creates a new semantic warning.
func warnf(pos token.Position, format string, args ...any) *Warning {
	return &Warning{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common error messages.
const (
	errNoStartLine = "no such start line %d"
)

// Common warning messages.
const (
	warnUnreachable     = "line is unreachable from line %d"
	warnNeverAssigned   = "variable %q is never assigned"
	warnReturnOutsideGo = "RETURN is reachable outside a subroutine"
)
