package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/kolkov/ubasic"
	"github.com/kolkov/ubasic/internal/lines"
)

const replHelp = `Type numbered lines to edit the program; a bare number deletes a line.
Commands:
  RUN [line]   run from line (default: lowest line)
  LIST         show the program
  NEW          erase the program and variables
  CLEAR        erase variables
  HELP         show this help
  QUIT         leave
`

// session is an interactive editing session. Variables survive between
// runs until CLEAR or NEW.
type session struct {
	line    *liner.State
	config  ubasic.Config
	program map[int]string
	vars    map[string]int64
}

// runREPL reads commands until QUIT or end of input.
func runREPL(config *ubasic.Config) error {
	s := &session{
		line:    liner.NewLiner(),
		config:  *config,
		program: make(map[int]string),
		vars:    maps.Clone(config.Variables),
	}
	defer s.line.Close()
	s.line.SetCtrlCAborts(true)

	history := historyPath()
	if f, err := os.Open(history); err == nil {
		s.line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			s.line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("ubasic %s. Type HELP for help.\n", version)
	for {
		text, err := s.line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		s.line.AppendHistory(text)
		if quit := s.handle(text); quit {
			return nil
		}
	}
}

// handle executes one entered line and reports whether to quit.
func (s *session) handle(text string) bool {
	if text[0] >= '0' && text[0] <= '9' {
		s.edit(text)
		return false
	}

	cmd, arg, _ := strings.Cut(text, " ")
	switch strings.ToUpper(cmd) {
	case "RUN":
		s.run(strings.TrimSpace(arg))
	case "LIST":
		s.list()
	case "NEW":
		clear(s.program)
		s.vars = maps.Clone(s.config.Variables)
	case "CLEAR":
		s.vars = maps.Clone(s.config.Variables)
	case "HELP":
		fmt.Print(replHelp)
	case "QUIT", "EXIT", "BYE":
		return true
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (type HELP)\n", cmd)
	}
	return false
}

// edit stores, replaces or deletes a numbered line.
func (s *session) edit(text string) {
	if n, err := strconv.Atoi(text); err == nil {
		delete(s.program, n)
		return
	}
	ln, err := lines.ScanLine(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	s.program[ln.Number] = ln.Text
}

// source renders the program in ascending line order.
func (s *session) source() string {
	var sb strings.Builder
	for _, n := range slices.Sorted(maps.Keys(s.program)) {
		fmt.Fprintf(&sb, "%d %s\n", n, s.program[n])
	}
	return sb.String()
}

func (s *session) list() {
	cfg := s.config
	cfg.Mode = ubasic.Lazy
	prog, err := ubasic.Compile(s.source(), &cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Print(prog.Listing())
}

func (s *session) run(arg string) {
	if len(s.program) == 0 {
		return
	}

	cfg := s.config
	cfg.Variables = s.vars
	cfg.LenientInput = true
	prog, err := ubasic.Compile(s.source(), &cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer prog.Close()

	start := prog.Lines()[0]
	if arg != "" {
		if start, err = strconv.Atoi(arg); err != nil {
			fmt.Fprintf(os.Stderr, "invalid line number %q\n", arg)
			return
		}
	}

	prog.SetInput(promptReader{s.line})
	prog.SetOutput(ubasic.NewLineWriter(os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := prog.RunContext(ctx, start); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	s.vars = prog.Vars()
}

// promptReader serves INPUT lines by prompting the user.
type promptReader struct {
	line *liner.State
}

func (r promptReader) ReadLine() (string, error) {
	text, err := r.line.Prompt("? ")
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return text, err
}

func historyPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, ".ubasic_history")
}
