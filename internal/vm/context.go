package vm

import (
	"maps"
	"strings"

	"github.com/kolkov/ubasic/internal/runtime"
)

// Context is the state a program executes against: variable bindings,
// the input-line source and the output-line sink. Bindings outlive a
// single run.
type Context struct {
	vars map[string]int64
	in   runtime.LineReader
	out  runtime.LineWriter
}

// NewContext creates a context with no bindings. Nil channels are
// replaced by an empty source and a discarding sink.
func NewContext(in runtime.LineReader, out runtime.LineWriter) *Context {
	c := &Context{vars: make(map[string]int64)}
	c.SetInput(in)
	c.SetOutput(out)
	return c
}

// SetInput replaces the input-line source.
func (c *Context) SetInput(in runtime.LineReader) {
	if in == nil {
		in = runtime.Empty()
	}
	c.in = in
}

// SetOutput replaces the output-line sink.
func (c *Context) SetOutput(out runtime.LineWriter) {
	if out == nil {
		out = runtime.Discard
	}
	c.out = out
}

// Input returns the input-line source.
func (c *Context) Input() runtime.LineReader { return c.in }

// Output returns the output-line sink.
func (c *Context) Output() runtime.LineWriter { return c.out }

// Get returns the value bound to name.
func (c *Context) Get(name string) (int64, bool) {
	v, ok := c.vars[strings.ToLower(name)]
	return v, ok
}

// Set binds name to v.
func (c *Context) Set(name string, v int64) {
	c.vars[strings.ToLower(name)] = v
}

// Vars returns a copy of all bindings.
func (c *Context) Vars() map[string]int64 {
	return maps.Clone(c.vars)
}

// Reset removes all bindings.
func (c *Context) Reset() {
	clear(c.vars)
}
