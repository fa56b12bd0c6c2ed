package ubasic

import (
	"github.com/kolkov/ubasic/internal/lines"
	"github.com/kolkov/ubasic/internal/parser"
	"github.com/kolkov/ubasic/internal/vm"
)

// Compile-time errors.
type (
	// DuplicateLineError reports a line number declared more than once.
	DuplicateLineError = lines.DuplicateLineError
	// SyntaxError reports a malformed line. Unwrap yields the cause.
	SyntaxError = parser.SyntaxError
	// GotoError reports a GOTO or IF target that is not a declared line.
	GotoError = parser.GotoError
	// GosubError reports a GOSUB target that is not a declared line.
	GosubError = parser.GosubError
)

// Runtime errors. Each carries the declared line where it occurred.
type (
	ReturnError            = vm.ReturnError
	UndefinedVariableError = vm.UndefinedVariableError
	ExpressionValueError   = vm.ExpressionValueError
	ArithmeticError        = vm.ArithmeticError
	StartLineError         = vm.StartLineError
	InputError             = vm.InputError
	StackOverflowError     = vm.StackOverflowError
)
