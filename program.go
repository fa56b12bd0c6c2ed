package ubasic

import (
	"context"
	"fmt"
	"strings"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/compiler"
	"github.com/kolkov/ubasic/internal/semantic"
	"github.com/kolkov/ubasic/internal/vm"
)

// Program represents a compiled program ready for execution.
//
// Variable bindings persist across runs; call Reset to clear them.
// A Program must not run concurrently with itself.
type Program struct {
	compiled *compiler.Program
	vm       *vm.VM
	source   string // Original source for debugging
	config   Config
}

// SetInput sets the source of INPUT lines.
func (p *Program) SetInput(in LineReader) {
	p.vm.SetInput(in)
}

// SetOutput sets the sink for PRINT lines.
func (p *Program) SetOutput(out LineWriter) {
	p.vm.SetOutput(out)
}

// Run executes the program from the declared line start until END, the
// end of the program, or an error.
func (p *Program) Run(start int) error {
	return p.vm.Run(start)
}

// RunContext is like Run but stops when ctx is done.
func (p *Program) RunContext(ctx context.Context, start int) error {
	return p.vm.RunContext(ctx, start)
}

// Reset clears all variable bindings and rebinds Config.Variables.
func (p *Program) Reset() {
	p.vm.Context().Reset()
	p.bindVariables()
}

func (p *Program) bindVariables() {
	ctx := p.vm.Context()
	for name, v := range p.config.Variables {
		ctx.Set(name, v)
	}
}

// Var returns the value bound to name. Names are case-insensitive.
func (p *Program) Var(name string) (int64, bool) {
	return p.vm.Context().Get(name)
}

// Vars returns a copy of all bindings, keyed by lower-case name.
func (p *Program) Vars() map[string]int64 {
	return p.vm.Context().Vars()
}

// Disassemble returns a human-readable listing of the compiled lines
// with resolved jump targets.
func (p *Program) Disassemble() string {
	return p.compiled.Disassemble()
}

// Listing returns the program in ascending line order with each
// instruction normalized. Lines that do not compile are listed verbatim.
func (p *Program) Listing() string {
	var sb strings.Builder
	table := p.compiled.Table()
	for i := 0; i < table.Len(); i++ {
		text := table.Text(i)
		if in, err := p.compiled.Instr(i); err == nil {
			text = ast.String(in)
		}
		fmt.Fprintf(&sb, "%d %s\n", table.Number(i), text)
	}
	return sb.String()
}

// Warnings analyzes the program as run from start and returns any
// warnings, one formatted line each. Lines that fail to compile are
// returned as an error.
func (p *Program) Warnings(start int) ([]string, error) {
	defined := make([]string, 0, len(p.config.Variables))
	for name := range p.config.Variables {
		defined = append(defined, name)
	}
	wl, err := semantic.Analyze(p.compiled, start, defined...)
	if err != nil {
		return nil, err
	}
	return wl.Strings(), nil
}

// Mode returns the compilation mode.
func (p *Program) Mode() Mode {
	return p.compiled.Mode()
}

// Source returns the original program text.
func (p *Program) Source() string {
	return p.source
}

// Close stops background compilation. The program stays usable.
func (p *Program) Close() {
	p.compiled.Close()
}

// Lines returns the declared line numbers in ascending order.
func (p *Program) Lines() []int {
	table := p.compiled.Table()
	out := make([]int, table.Len())
	for i := range out {
		out[i] = table.Number(i)
	}
	return out
}
