package ubasic

import (
	"bytes"
	"context"
	"io"

	"github.com/kolkov/ubasic/internal/compiler"
	"github.com/kolkov/ubasic/internal/lines"
	"github.com/kolkov/ubasic/internal/runtime"
	"github.com/kolkov/ubasic/internal/vm"
)

// Version is the ubasic version string.
const Version = "0.1.0"

// Run compiles a program and runs it from the declared line start.
// This is a convenience function for one-off execution.
// For repeated execution of the same program, use Compile followed by Program.Run.
//
// Parameters:
//   - program: program text, one numbered line per line
//   - start: declared line number to start at
//   - input: input lines for INPUT (can be nil for programs without input)
//   - config: execution configuration (can be nil for defaults)
//
// Returns the printed lines joined with "\n". Output printed before a
// runtime error is returned together with the error.
//
// Example:
//
//	output, err := ubasic.Run("10 PRINT 1 + 2", 10, nil, nil)
//	// output: "3\n"
func Run(program string, start int, input io.Reader, config *Config) (string, error) {
	prog, err := Compile(program, config)
	if err != nil {
		return "", err
	}
	defer prog.Close()

	if input != nil {
		prog.SetInput(runtime.NewScanReader(input))
	}

	var buf bytes.Buffer
	if prog.config.Output == nil {
		prog.SetOutput(runtime.NewLineWriter(&buf))
	}
	err = prog.Run(start)
	return buf.String(), err
}

// Compile splits program into numbered lines, builds the line table and
// compiles it according to config.Mode. With the default Eager mode every
// syntax and jump-target error is reported here.
//
// Example:
//
//	prog, err := ubasic.Compile(source, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	prog.SetOutput(ubasic.NewLineWriter(os.Stdout))
//	err = prog.Run(10)
func Compile(program string, config *Config) (*Program, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	table, err := lines.Ingest(context.Background(), program, cfg.Workers)
	if err != nil {
		return nil, err
	}

	compiled, err := compiler.Compile(table, compiler.Options{
		Mode:    cfg.Mode,
		Workers: cfg.Workers,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	var out runtime.LineWriter
	if cfg.Output != nil {
		out = runtime.NewLineWriter(cfg.Output)
	}

	p := &Program{
		compiled: compiled,
		source:   program,
		config:   cfg,
	}
	p.vm = vm.NewWithConfig(compiled, vm.NewContext(nil, out), vm.Config{
		MaxCallDepth: cfg.MaxCallDepth,
		LenientInput: cfg.LenientInput,
		Logger:       cfg.Logger,
	})
	p.bindVariables()
	return p, nil
}

// Exec compiles a program and runs it from start, reading INPUT lines
// from input and writing PRINT lines to output.
//
// Example:
//
//	err := ubasic.Exec(source, 10, os.Stdin, os.Stdout, nil)
func Exec(program string, start int, input io.Reader, output io.Writer, config *Config) error {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.Output = output

	prog, err := Compile(program, &cfg)
	if err != nil {
		return err
	}
	defer prog.Close()

	if input != nil {
		prog.SetInput(runtime.NewScanReader(input))
	}
	return prog.Run(start)
}

// MustCompile is like Compile but panics if the program cannot be compiled.
// It simplifies initialization of global program variables.
//
// Example:
//
//	var countdown = ubasic.MustCompile("10 PRINT n\n20 LET n = n - 1\n30 IF n > 0 GOTO 10", nil)
func MustCompile(program string, config *Config) *Program {
	prog, err := Compile(program, config)
	if err != nil {
		panic(err)
	}
	return prog
}
