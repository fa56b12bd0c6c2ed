// Package runtime provides the line-oriented input and output channels
// used by INPUT and PRINT.
package runtime

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// LineReader is an input-line source. ReadLine returns io.EOF once the
// source is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// LineWriter is an output-line sink. Each call emits exactly one line.
type LineWriter interface {
	WriteLine(line string) error
}

// Pender is implemented by sources that can report unread lines.
type Pender interface {
	Pending() int
}

// Flusher is implemented by sinks that buffer output.
type Flusher interface {
	Flush() error
}

// ScanReader reads lines from an io.Reader. A trailing "\r" is stripped so
// CRLF input behaves like LF input.
type ScanReader struct {
	scanner *bufio.Scanner
	peeked  *string
	err     error
}

// NewScanReader creates a LineReader over r.
func NewScanReader(r io.Reader) *ScanReader {
	return &ScanReader{scanner: bufio.NewScanner(r)}
}

// ReadLine returns the next line.
func (r *ScanReader) ReadLine() (string, error) {
	if r.peeked != nil {
		line := *r.peeked
		r.peeked = nil
		return line, nil
	}
	return r.scan()
}

func (r *ScanReader) scan() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if !r.scanner.Scan() {
		r.err = r.scanner.Err()
		if r.err == nil {
			r.err = io.EOF
		}
		return "", r.err
	}
	return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
}

// Pending reports whether unread input remains. It reads ahead at most
// one line, so the result is 0 or 1.
func (r *ScanReader) Pending() int {
	if r.peeked != nil {
		return 1
	}
	line, err := r.scan()
	if err != nil {
		return 0
	}
	r.peeked = &line
	return 1
}

// SliceReader serves lines from a slice.
type SliceReader struct {
	lines []string
	next  int
}

// NewSliceReader creates a LineReader over lines.
func NewSliceReader(lines []string) *SliceReader {
	return &SliceReader{lines: lines}
}

// ReadLine returns the next line.
func (r *SliceReader) ReadLine() (string, error) {
	if r.next >= len(r.lines) {
		return "", io.EOF
	}
	line := r.lines[r.next]
	r.next++
	return line, nil
}

// Pending returns the number of unread lines.
func (r *SliceReader) Pending() int {
	return len(r.lines) - r.next
}

// Writer emits lines to an io.Writer through a buffer.
// Call Flush when done.
type Writer struct {
	w *bufio.Writer
}

// NewLineWriter creates a LineWriter over w.
func NewLineWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteLine writes line followed by "\n".
func (w *Writer) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// SliceWriter collects lines in memory. It is safe for concurrent use.
type SliceWriter struct {
	mu    sync.Mutex
	lines []string
}

// WriteLine appends line.
func (w *SliceWriter) WriteLine(line string) error {
	w.mu.Lock()
	w.lines = append(w.lines, line)
	w.mu.Unlock()
	return nil
}

// Lines returns a copy of the collected lines.
func (w *SliceWriter) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}

// Reset discards the collected lines.
func (w *SliceWriter) Reset() {
	w.mu.Lock()
	w.lines = nil
	w.mu.Unlock()
}

// Discard is a LineWriter that drops every line.
var Discard LineWriter = discard{}

type discard struct{}

func (discard) WriteLine(string) error { return nil }

// Empty returns a LineReader with no lines.
func Empty() LineReader {
	return NewSliceReader(nil)
}
