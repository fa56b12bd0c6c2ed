// Package vm executes compiled programs.
//
// The engine is a fetch-execute loop over dense instruction indices. Each
// instruction yields an outcome (fall through, jump, call, return or stop)
// that drives the program counter and the call stack.
package vm

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/compiler"
	"github.com/kolkov/ubasic/internal/runtime"
)

// DefaultStackSize is the initial call stack capacity.
const DefaultStackSize = 16

// Config holds VM configuration options.
type Config struct {
	// MaxCallDepth limits GOSUB nesting. Zero means unlimited.
	MaxCallDepth int

	// LenientInput disables the unread-input check at the end of a run.
	LenientInput bool

	// Logger receives run and step traces. Nil means no logging.
	Logger *zerolog.Logger
}

// outcomeKind says how control leaves an instruction.
type outcomeKind uint8

const (
	fallthroughOutcome outcomeKind = iota
	jumpOutcome
	callOutcome
	returnOutcome
	stopOutcome
)

func (k outcomeKind) String() string {
	switch k {
	case fallthroughOutcome:
		return "fallthrough"
	case jumpOutcome:
		return "jump"
	case callOutcome:
		return "call"
	case returnOutcome:
		return "return"
	default:
		return "stop"
	}
}

// outcome is the result of executing one instruction.
type outcome struct {
	kind   outcomeKind
	target int // dense index for jump and call
}

// VM runs a compiled program against an execution context.
// A VM must not run concurrently with itself.
type VM struct {
	program *compiler.Program
	ctx     *Context
	config  Config
	log     zerolog.Logger

	// Per-run state
	pc    int
	stack []int
}

// New creates a VM with a fresh context.
func New(prog *compiler.Program) *VM {
	return NewWithConfig(prog, NewContext(nil, nil), Config{})
}

// NewWithConfig creates a VM running against ctx.
func NewWithConfig(prog *compiler.Program, ctx *Context, config Config) *VM {
	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}
	return &VM{
		program: prog,
		ctx:     ctx,
		config:  config,
		log:     log,
		stack:   make([]int, 0, DefaultStackSize),
	}
}

// Context returns the execution context.
func (vm *VM) Context() *Context {
	return vm.ctx
}

// SetInput replaces the input-line source.
func (vm *VM) SetInput(in runtime.LineReader) {
	vm.ctx.SetInput(in)
}

// SetOutput replaces the output-line sink.
func (vm *VM) SetOutput(out runtime.LineWriter) {
	vm.ctx.SetOutput(out)
}

// Run executes the program from the declared line start until it halts.
func (vm *VM) Run(start int) error {
	return vm.RunContext(context.Background(), start)
}

// RunContext is like Run but stops with ctx.Err() once ctx is done.
// The context is checked between instructions.
func (vm *VM) RunContext(ctx context.Context, start int) (err error) {
	pc, ok := vm.program.Table().Lookup(start)
	if !ok {
		return &StartLineError{Line: start}
	}

	vm.pc = pc
	vm.stack = vm.stack[:0]
	vm.log.Debug().Int("start", start).Str("mode", vm.program.Mode().String()).Msg("run")

	defer func() {
		if f, ok := vm.ctx.out.(runtime.Flusher); ok {
			if ferr := f.Flush(); err == nil {
				err = ferr
			}
		}
		if err != nil {
			vm.log.Debug().Err(err).Msg("run failed")
		} else {
			vm.log.Debug().Msg("run finished")
		}
	}()

	if err := vm.execute(ctx); err != nil {
		return err
	}
	return vm.checkInput()
}

// execute is the fetch-execute loop.
func (vm *VM) execute(ctx context.Context) error {
	n := vm.program.Len()
	done := ctx.Done()

	for vm.pc < n {
		if done != nil {
			select {
			case <-done:
				return ctx.Err()
			default:
			}
		}

		in, err := vm.program.Instr(vm.pc)
		if err != nil {
			return err
		}
		line := vm.program.Table().Number(vm.pc)

		out, err := vm.step(in, line)
		if err != nil {
			return err
		}

		if e := vm.log.Trace(); e.Enabled() {
			e.Int("line", line).Int("pc", vm.pc).Str("op", out.kind.String()).Int("depth", len(vm.stack)).Msg("step")
		}

		switch out.kind {
		case fallthroughOutcome:
			vm.pc++
		case jumpOutcome:
			vm.pc = out.target
		case callOutcome:
			if limit := vm.config.MaxCallDepth; limit > 0 && len(vm.stack) >= limit {
				return &StackOverflowError{Line: line, Depth: limit}
			}
			vm.stack = append(vm.stack, vm.pc+1)
			vm.pc = out.target
		case returnOutcome:
			if len(vm.stack) == 0 {
				return &ReturnError{Line: line}
			}
			top := len(vm.stack) - 1
			vm.pc = vm.stack[top]
			vm.stack = vm.stack[:top]
		case stopOutcome:
			return nil
		}
	}
	return nil
}

// step executes one instruction against the context.
func (vm *VM) step(in ast.Instr, line int) (outcome, error) {
	c := vm.ctx
	switch in := in.(type) {
	case *ast.LetInstr:
		v, err := c.IntValue(in.Value)
		if err != nil {
			return outcome{}, atLine(err, line)
		}
		c.vars[in.Name] = v

	case *ast.PrintInstr:
		s, err := c.StringValue(in.Value)
		if err != nil {
			return outcome{}, atLine(err, line)
		}
		if err := c.out.WriteLine(s); err != nil {
			return outcome{}, err
		}

	case *ast.GotoInstr:
		return outcome{kind: jumpOutcome, target: in.Target.Index}, nil

	case *ast.IfInstr:
		l, err := c.IntValue(in.Left)
		if err != nil {
			return outcome{}, atLine(err, line)
		}
		r, err := c.IntValue(in.Right)
		if err != nil {
			return outcome{}, atLine(err, line)
		}
		if compare(in.Op, l, r) {
			return outcome{kind: jumpOutcome, target: in.Target.Index}, nil
		}

	case *ast.InputInstr:
		v, err := vm.readInt(line)
		if err != nil {
			return outcome{}, err
		}
		c.vars[in.Name] = v

	case *ast.GosubInstr:
		return outcome{kind: callOutcome, target: in.Target.Index}, nil

	case *ast.ReturnInstr:
		return outcome{kind: returnOutcome}, nil

	case *ast.EndInstr:
		return outcome{kind: stopOutcome}, nil

	default:
		panic("vm: unexpected instruction type")
	}
	return outcome{kind: fallthroughOutcome}, nil
}

// readInt consumes one input line and parses it as an integer.
func (vm *VM) readInt(line int) (int64, error) {
	text, err := vm.ctx.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return 0, &InputError{Line: line}
	}
	if err != nil {
		return 0, &InputError{Line: line, Err: err}
	}
	v, err := parseInput(text)
	if err != nil {
		return 0, &InputError{Line: line, Value: text, Err: err}
	}
	return v, nil
}

// checkInput fails if the input source reports unread lines.
func (vm *VM) checkInput() error {
	if vm.config.LenientInput {
		return nil
	}
	p, ok := vm.ctx.in.(runtime.Pender)
	if !ok {
		return nil
	}
	if n := p.Pending(); n > 0 {
		return &InputError{Pending: n}
	}
	return nil
}

// Depth returns the current call stack depth.
func (vm *VM) Depth() int {
	return len(vm.stack)
}
