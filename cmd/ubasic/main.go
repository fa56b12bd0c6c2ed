// ubasic - tiny BASIC interpreter
//
// Runs a line-numbered program file, or starts an interactive session.
// Uses manual argument parsing like the other tools in this family
// (supports -s10 style flags).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/kolkov/ubasic"
)

// version is set at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: ubasic [-s line] [-i inputfile] [-v var=value] [progfile | -]"
	longUsage  = `Program arguments:
  -s line           start at declared line (default: lowest line)
  -i inputfile      read INPUT lines from inputfile (default: stdin)
  -v var=value      integer variable assignment (multiple allowed)
  --lenient         allow unread input lines when the program ends
  --max-depth N     fail when GOSUB nesting exceeds N (default: unlimited)

Compilation:
  --lazy            compile each line when it first executes
  --speculative     compile in the background while running
  -j N              use N workers for ingestion and speculative compilation

Debugging arguments:
  -d                print the compiled program and exit
  -l                print the normalized listing and exit
  -W                print static warnings to stderr before running
  --debug           log run events to stderr
  --trace           log every executed line to stderr

Other:
  -r, --repl        start an interactive session
  -h, --help        show this help message
  -version          show ubasic version and exit
`
)

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func main() {
	var vars []string
	var inputFile string
	start := -1
	mode := ubasic.Eager
	workers := 0
	maxDepth := 0
	lenient := false
	disasm := false
	listing := false
	warnings := false
	repl := false
	logLevel := zerolog.Disabled

	var i int
	for i = 1; i < len(os.Args); i++ {
		// Stop on explicit end of args or first arg not prefixed with "-"
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-s":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -s")
			}
			i++
			start = parseLine(os.Args[i])
		case "-i":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -i")
			}
			i++
			inputFile = os.Args[i]
		case "-v":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -v")
			}
			i++
			vars = append(vars, os.Args[i])
		case "-j":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -j")
			}
			i++
			workers = parseWorkers(os.Args[i])
		case "--max-depth":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: --max-depth")
			}
			i++
			n, err := strconv.Atoi(os.Args[i])
			if err != nil || n < 0 {
				errorExitf("invalid call depth: %s", os.Args[i])
			}
			maxDepth = n
		case "--lenient":
			lenient = true
		case "--lazy":
			mode = ubasic.Lazy
		case "--speculative":
			mode = ubasic.Speculative
		case "-d":
			disasm = true
		case "-l":
			listing = true
		case "-W":
			warnings = true
		case "--debug":
			logLevel = zerolog.DebugLevel
		case "--trace":
			logLevel = zerolog.TraceLevel
		case "-r", "--repl":
			repl = true
		case "-h", "--help":
			fmt.Printf("ubasic %s - tiny BASIC interpreter\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("ubasic version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			// Handle flags with no space: -s10, -iinput.txt, -vn=3, -j4
			switch {
			case strings.HasPrefix(arg, "-s"):
				start = parseLine(arg[2:])
			case strings.HasPrefix(arg, "-i"):
				inputFile = arg[2:]
			case strings.HasPrefix(arg, "-v"):
				vars = append(vars, arg[2:])
			case strings.HasPrefix(arg, "-j"):
				workers = parseWorkers(arg[2:])
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	args := os.Args[i:]

	config := &ubasic.Config{
		Mode:         mode,
		Workers:      workers,
		MaxCallDepth: maxDepth,
		LenientInput: lenient,
		Variables:    parseVars(vars),
		Logger:       newLogger(logLevel),
	}

	if repl || (len(args) == 0 && isatty.IsTerminal(os.Stdin.Fd())) {
		if err := runREPL(config); err != nil {
			errorExit(err)
		}
		return
	}
	if len(args) != 1 {
		errorExitf(shortUsage)
	}

	source, err := readProgram(args[0])
	if err != nil {
		errorExitf("cannot read program file %s: %v", args[0], err)
	}

	input, closeInput := openInput(inputFile, args[0] == "-")
	defer closeInput()
	if input == os.Stdin && isatty.IsTerminal(os.Stdin.Fd()) {
		// Checking for leftover terminal input would block until EOF.
		config.LenientInput = true
	}

	prog, err := ubasic.Compile(source, config)
	if err != nil {
		errorExit(err)
	}
	defer prog.Close()

	if disasm {
		fmt.Print(prog.Disassemble())
		os.Exit(0)
	}
	if listing {
		fmt.Print(prog.Listing())
		os.Exit(0)
	}

	if start < 0 {
		numbers := prog.Lines()
		if len(numbers) == 0 {
			return // Empty program
		}
		start = numbers[0]
	}

	if warnings {
		ws, err := prog.Warnings(start)
		if err != nil {
			errorExit(err)
		}
		for _, w := range ws {
			fmt.Fprintf(os.Stderr, "ubasic: %s\n", w)
		}
	}

	prog.SetInput(ubasic.NewScanReader(input))
	prog.SetOutput(ubasic.NewLineWriter(os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := prog.RunContext(ctx, start); err != nil {
		errorExit(err)
	}
}

// readProgram reads the program text from name, or from stdin for "-".
func readProgram(name string) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	return string(data), err
}

// openInput returns the INPUT source. When the program itself came from
// stdin and no input file is given, the program gets no input.
func openInput(name string, programOnStdin bool) (io.Reader, func()) {
	switch {
	case name == "" && programOnStdin:
		return strings.NewReader(""), func() {}
	case name == "" || name == "-":
		return os.Stdin, func() {}
	}
	f, err := os.Open(name)
	if err != nil {
		errorExitf("cannot open input file %s: %v", name, err)
	}
	return f, func() { f.Close() }
}

// parseVars parses var=value assignments.
func parseVars(vars []string) map[string]int64 {
	if len(vars) == 0 {
		return nil
	}
	out := make(map[string]int64, len(vars))
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		if !ok {
			errorExitf("invalid variable assignment: %s (expected var=value)", v)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			errorExitf("invalid variable value: %s (expected an integer)", v)
		}
		out[strings.ToLower(name)] = n
	}
	return out
}

func parseLine(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		errorExitf("invalid start line: %s", s)
	}
	return n
}

func parseWorkers(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		errorExitf("invalid number of workers: %s", s)
	}
	return n
}

// newLogger returns a console logger on stderr, or nil when disabled.
func newLogger(level zerolog.Level) *zerolog.Logger {
	if level == zerolog.Disabled {
		return nil
	}
	if level < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
	}
	out := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}
	log := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &log
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ubasic: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "ubasic: %v\n", err)
	os.Exit(1)
}
