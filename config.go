package ubasic

import (
	"io"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/kolkov/ubasic/internal/compiler"
)

// Mode selects when program lines are compiled.
type Mode = compiler.Mode

const (
	// Eager compiles and validates every line in Compile (default).
	Eager = compiler.Eager
	// Lazy compiles each line the first time it executes.
	Lazy = compiler.Lazy
	// Speculative compiles in the background while the program runs.
	// Errors on lines that never execute are ignored.
	Speculative = compiler.Speculative
)

// Config holds configuration options for program compilation and execution.
type Config struct {
	// Mode selects eager, lazy or speculative compilation (default: Eager).
	Mode Mode

	// Workers is the number of goroutines used to ingest program text and
	// for speculative compilation (default: runtime.NumCPU()).
	Workers int

	// MaxCallDepth limits GOSUB nesting. Zero means unlimited.
	MaxCallDepth int

	// LenientInput allows a run to finish with unread input lines.
	// By default leftover input is reported as an InputError.
	LenientInput bool

	// Variables contains pre-defined variables.
	// They are bound before the first run and again after Reset.
	// Example: map[string]int64{"limit": 10}
	Variables map[string]int64

	// Output is the writer for PRINT.
	// If nil, output is captured and returned from Run.
	Output io.Writer

	// Logger receives debug and trace output. Nil disables logging.
	Logger *zerolog.Logger
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
