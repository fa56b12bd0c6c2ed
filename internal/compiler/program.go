// Package compiler turns a line table into executable instructions.
//
// Each line is compiled at most once into a memo cell. Depending on the
// Mode, lines are compiled up front, on first fetch, or speculatively by
// background workers while the program already runs.
package compiler

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/lines"
	"github.com/kolkov/ubasic/internal/parser"
)

// Mode selects when lines are compiled.
type Mode int

const (
	// Eager compiles every line in Compile and fails on the first bad one.
	Eager Mode = iota
	// Lazy compiles a line the first time it is fetched.
	Lazy
	// Speculative is Lazy plus background workers compiling every line.
	// Failures found by the workers are dropped; a failing line reports
	// its error only when it is fetched.
	Speculative
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	case Speculative:
		return "speculative"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Options configures Compile.
type Options struct {
	Mode Mode

	// Workers is the number of speculative compile goroutines.
	// Default: runtime.NumCPU()
	Workers int

	// Logger receives debug output. Nil means no logging.
	Logger *zerolog.Logger
}

// result is the settled outcome of compiling one line.
type result struct {
	instr ast.Instr
	err   error
}

// Program is a line table plus one memo cell per line.
// Instr is safe for concurrent use.
type Program struct {
	table *lines.Table
	cells []atomic.Pointer[result]
	mode  Mode
	log   zerolog.Logger

	// Speculative compilation state
	cancel context.CancelFunc
	group  *errgroup.Group
	fed    chan struct{}
	once   sync.Once
}

// Compile prepares table for execution according to opts.
// In Eager mode it returns the first error in line order.
func Compile(table *lines.Table, opts Options) (*Program, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	p := &Program{
		table: table,
		cells: make([]atomic.Pointer[result], table.Len()),
		mode:  opts.Mode,
		log:   log,
	}

	switch opts.Mode {
	case Eager:
		for i := range p.cells {
			if _, err := p.Instr(i); err != nil {
				return nil, err
			}
		}
	case Speculative:
		workers := opts.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		p.speculate(workers)
	}
	return p, nil
}

// Len returns the number of lines.
func (p *Program) Len() int {
	return p.table.Len()
}

// Table returns the line table.
func (p *Program) Table() *lines.Table {
	return p.table
}

// Mode returns the compilation mode.
func (p *Program) Mode() Mode {
	return p.mode
}

// Instr returns the instruction at dense index i, compiling it on first
// access. Concurrent first accesses may both parse the line; the first
// result stored wins and every caller sees it.
func (p *Program) Instr(i int) (ast.Instr, error) {
	cell := &p.cells[i]
	if r := cell.Load(); r != nil {
		return r.instr, r.err
	}
	r := p.compileLine(i)
	if !cell.CompareAndSwap(nil, r) {
		r = cell.Load()
	}
	return r.instr, r.err
}

// compileLine parses one line. It has no side effects.
func (p *Program) compileLine(i int) *result {
	in, err := parser.ParseInstr(p.table.Text(i), p.table.Number(i), p.table)
	return &result{instr: in, err: err}
}

// Compiled returns the number of lines whose cell is settled.
func (p *Program) Compiled() int {
	n := 0
	for i := range p.cells {
		if p.cells[i].Load() != nil {
			n++
		}
	}
	return n
}

// speculate starts workers that compile every line in the background.
func (p *Program) speculate(workers int) {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	p.group = g
	p.fed = make(chan struct{})

	go func() {
		defer close(p.fed)
		for i := range p.cells {
			if ctx.Err() != nil {
				return
			}
			g.Go(func() error {
				if ctx.Err() != nil || p.cells[i].Load() != nil {
					return nil
				}
				if _, err := p.Instr(i); err != nil {
					p.log.Debug().
						Int("line", p.table.Number(i)).
						Err(err).
						Msg("speculative compile failed")
				}
				return nil
			})
		}
	}()
}

// Wait blocks until speculative compilation has finished or was stopped.
// It returns immediately for other modes.
func (p *Program) Wait() {
	if p.group == nil {
		return
	}
	<-p.fed
	_ = p.group.Wait()
}

// Close stops speculative compilation. Cells already settled stay valid.
func (p *Program) Close() {
	p.once.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
}

// Disassemble returns a human-readable listing of the compiled program:
// dense index, declared line, normalized instruction and resolved jumps.
// Lines that fail to compile are shown with their error.
func (p *Program) Disassemble() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Program (%d lines, %s) ===\n", p.Len(), p.mode)
	for i := 0; i < p.Len(); i++ {
		fmt.Fprintf(&sb, "%04d  %6d  ", i, p.table.Number(i))
		in, err := p.Instr(i)
		if err != nil {
			fmt.Fprintf(&sb, "!! %v\n", err)
			continue
		}
		sb.WriteString(ast.String(in))
		if t, ok := ast.Jump(in); ok {
			fmt.Fprintf(&sb, "  ; -> %04d", t.Index)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
