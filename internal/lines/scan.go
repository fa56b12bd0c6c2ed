// Package lines turns program text into a table of numbered lines.
//
// Ingestion happens in two steps. Scan frames the text into (number, text)
// pairs; a Builder collects pairs, possibly from several goroutines, and
// Build assigns dense execution indices in ascending line-number order.
package lines

import (
	"strconv"
	"strings"

	"github.com/coregx/coregex"

	"github.com/kolkov/ubasic/internal/parser"
)

var (
	// separator matches a run of line breaks, so blank lines vanish in
	// the split. Whitespace-only lines still produce pieces Scan skips.
	separator = mustCompile(`(\r?\n)+`)

	// shape matches a program line: digits, one space, instruction text.
	shape = mustCompile(`^[0-9]+ .+$`)
)

// Line is one declared program line.
type Line struct {
	Number int    // Declared line number
	Text   string // Instruction text without the number
}

// Scan splits program text into lines. Line breaks are "\n" or "\r\n";
// blank lines are skipped. Any other line must look like
// "<digits> <instruction>" or Scan fails with a *parser.SyntaxError.
func Scan(text string) ([]Line, error) {
	var out []Line
	for _, raw := range separator.Split(text, -1) {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ln, err := ScanLine(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ln)
	}
	return out, nil
}

// ScanLine parses a single "<digits> <instruction>" line.
func ScanLine(raw string) (Line, error) {
	if !shape.MatchString(raw) {
		return Line{}, &parser.SyntaxError{Text: raw}
	}
	num, text, _ := strings.Cut(raw, " ")
	n, err := strconv.Atoi(num)
	if err != nil {
		return Line{}, &parser.SyntaxError{Text: raw, Cause: err}
	}
	return Line{Number: n, Text: text}, nil
}

// mustCompile compiles a fixed pattern, panicking on error.
func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}
