package vm

import "fmt"

// ReturnError is raised by RETURN on an empty call stack.
type ReturnError struct {
	Line int
}

func (e *ReturnError) Error() string {
	return fmt.Sprintf("RETURN error in line %d: call stack is empty", e.Line)
}

// UndefinedVariableError is raised when a variable is read before any
// assignment.
type UndefinedVariableError struct {
	Line int
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("error in line %d: no variable %q defined", e.Line, e.Name)
}

// ExpressionValueError is raised when a string literal is used as an
// integer and does not hold one.
type ExpressionValueError struct {
	Line  int
	Value string
}

func (e *ExpressionValueError) Error() string {
	return fmt.Sprintf("error in line %d: string %q can not be converted to an integer", e.Line, e.Value)
}

// ArithmeticError is raised on division by zero.
type ArithmeticError struct {
	Line int
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error in line %d: division by zero", e.Line)
}

// StartLineError is raised when a run starts at an undeclared line.
type StartLineError struct {
	Line int
}

func (e *StartLineError) Error() string {
	return fmt.Sprintf("no such start line %d", e.Line)
}

// InputError reports a broken input contract: INPUT with no input left,
// input that is not an integer, or input left unread when the run ends.
type InputError struct {
	Line    int    // line of the INPUT, 0 for leftovers
	Value   string // offending input text
	Pending int    // unread lines at the end of the run
	Err     error  // underlying cause
}

func (e *InputError) Error() string {
	switch {
	case e.Pending > 0:
		return fmt.Sprintf("input error: %d unread input line(s) left", e.Pending)
	case e.Err != nil && e.Value != "":
		return fmt.Sprintf("INPUT error in line %d: %q is not an integer", e.Line, e.Value)
	case e.Err != nil:
		return fmt.Sprintf("INPUT error in line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("INPUT error in line %d: no input left", e.Line)
	}
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// StackOverflowError is raised when GOSUB nesting exceeds the configured
// maximum depth.
type StackOverflowError struct {
	Line  int
	Depth int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("GOSUB error in line %d: call depth exceeds %d", e.Line, e.Depth)
}

// atLine records the declared line on evaluation errors raised below the
// engine, which does not know line numbers.
func atLine(err error, line int) error {
	switch e := err.(type) {
	case *UndefinedVariableError:
		e.Line = line
	case *ExpressionValueError:
		e.Line = line
	case *ArithmeticError:
		e.Line = line
	}
	return err
}
