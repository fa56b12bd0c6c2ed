package ubasic

import (
	"io"

	"github.com/kolkov/ubasic/internal/runtime"
)

type (
	// LineReader is a source of INPUT lines. ReadLine returns io.EOF
	// when no lines are left.
	LineReader = runtime.LineReader
	// LineWriter is a sink for PRINT lines.
	LineWriter = runtime.LineWriter
	// SliceWriter collects PRINT lines in memory.
	SliceWriter = runtime.SliceWriter
)

// NewScanReader returns a LineReader over r. Both "\n" and "\r\n" end a line.
func NewScanReader(r io.Reader) LineReader {
	return runtime.NewScanReader(r)
}

// NewSliceReader returns a LineReader serving lines in order.
func NewSliceReader(lines []string) LineReader {
	return runtime.NewSliceReader(lines)
}

// NewLineWriter returns a buffered LineWriter over w. A run flushes it
// when it ends.
func NewLineWriter(w io.Writer) LineWriter {
	return runtime.NewLineWriter(w)
}
