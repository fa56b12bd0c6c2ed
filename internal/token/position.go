package token

import "fmt"

// Position represents a position inside one program line.
type Position struct {
	// Line is the declared BASIC line number (0 when unknown).
	Line int
	// Column is the byte offset inside the instruction text (1-indexed).
	Column int
	// Offset is the byte offset inside the instruction text (0-indexed).
	Offset int
}

// String returns a string representation of the position.
// Format: "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid (column > 0).
func (p Position) IsValid() bool {
	return p.Column > 0
}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}
