package semantic

import (
	"slices"
	"strings"

	"github.com/kolkov/ubasic/internal/ast"
	"github.com/kolkov/ubasic/internal/compiler"
	"github.com/kolkov/ubasic/internal/token"
)

// Analyzer holds the state of one analysis pass.
type Analyzer struct {
	prog   *compiler.Program
	instrs []ast.Instr // nil for lines that failed to compile

	errors   ErrorList
	warnings WarningList
}

// Analyze checks prog as run from the declared line start. Names in
// defined count as assigned before the run. Every line is compiled;
// compile failures are returned as an ErrorList.
func Analyze(prog *compiler.Program, start int, defined ...string) (WarningList, error) {
	a := &Analyzer{
		prog:   prog,
		instrs: make([]ast.Instr, prog.Len()),
	}

	for i := range a.instrs {
		in, err := prog.Instr(i)
		if err != nil {
			a.errors = append(a.errors, &Error{
				Pos:     a.pos(i),
				Message: err.Error(),
				Err:     err,
			})
			continue
		}
		a.instrs[i] = in
	}

	pc, ok := prog.Table().Lookup(start)
	if !ok {
		a.errors.Add(token.Position{Line: start}, errNoStartLine, start)
	}
	if err := a.errors.Err(); err != nil {
		return nil, err
	}

	a.checkReachable(pc, start)
	a.checkAssigned(defined)
	a.checkReturns(pc)

	slices.SortStableFunc(a.warnings, func(x, y *Warning) int {
		return x.Pos.Line - y.Pos.Line
	})
	return a.warnings, nil
}

func (a *Analyzer) pos(i int) token.Position {
	return token.Position{Line: a.prog.Table().Number(i)}
}

// successors returns the dense indices control may reach after pc.
// When intoCalls is false a GOSUB is treated as returning to pc+1
// without entering the subroutine.
func (a *Analyzer) successors(pc int, intoCalls bool) []int {
	next := pc + 1
	var out []int
	switch in := a.instrs[pc].(type) {
	case *ast.GotoInstr:
		out = append(out, in.Target.Index)
	case *ast.IfInstr:
		out = append(out, in.Target.Index, next)
	case *ast.GosubInstr:
		if intoCalls {
			out = append(out, in.Target.Index)
		}
		out = append(out, next)
	case *ast.ReturnInstr, *ast.EndInstr:
		// Return targets depend on the call stack; GOSUB already adds pc+1.
	default:
		out = append(out, next)
	}
	return slices.DeleteFunc(out, func(i int) bool { return i >= len(a.instrs) })
}

// reach marks every index reachable from pc.
func (a *Analyzer) reach(pc int, intoCalls bool) []bool {
	seen := make([]bool, len(a.instrs))
	work := []int{pc}
	seen[pc] = true
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		for _, s := range a.successors(cur, intoCalls) {
			if !seen[s] {
				seen[s] = true
				work = append(work, s)
			}
		}
	}
	return seen
}

func (a *Analyzer) checkReachable(pc, start int) {
	seen := a.reach(pc, true)
	for i, ok := range seen {
		if !ok {
			a.warnings.Add(a.pos(i), warnUnreachable, start)
		}
	}
}

// checkAssigned reports each variable read somewhere but written nowhere,
// once, at its first read.
func (a *Analyzer) checkAssigned(defined []string) {
	assigned := make(map[string]bool)
	for _, name := range defined {
		assigned[strings.ToLower(name)] = true
	}
	for _, in := range a.instrs {
		if name, ok := ast.Writes(in); ok {
			assigned[name] = true
		}
	}

	reported := make(map[string]bool)
	for i, in := range a.instrs {
		for _, name := range ast.Reads(in) {
			if assigned[name] || reported[name] {
				continue
			}
			reported[name] = true
			a.warnings.Add(a.pos(i), warnNeverAssigned, name)
		}
	}
}

// checkReturns reports RETURNs reachable from the start line without
// passing through a GOSUB.
func (a *Analyzer) checkReturns(pc int) {
	seen := a.reach(pc, false)
	for i, ok := range seen {
		if _, isReturn := a.instrs[i].(*ast.ReturnInstr); ok && isReturn {
			a.warnings.Add(a.pos(i), warnReturnOutsideGo)
		}
	}
}
