// Package ubasic provides an interpreter for a tiny line-numbered BASIC.
//
// Programs are plain text, one numbered instruction per line, in any order:
//
//	10 LET count = 0
//	20 PRINT "Hello, World!"
//	30 IF count < 10 GOTO 20
//	25 LET count = count + 1
//
// Lines run in ascending number order. The instruction set is LET, PRINT,
// GOTO, IF ... GOTO, INPUT, GOSUB, RETURN and END. Keywords are matched in
// any case and variable names are case-insensitive. Values are 64-bit
// integers; string literals can only be printed or converted to integers.
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := ubasic.Run(source, 10, strings.NewReader("1\n2\n"), nil)
//
// # Compiled Programs
//
// For repeated execution of the same program:
//
//	prog, err := ubasic.Compile(source, &ubasic.Config{Mode: ubasic.Lazy})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	prog.SetOutput(ubasic.NewLineWriter(os.Stdout))
//	err = prog.Run(10)
//
// Variable bindings survive between runs of the same [Program]; use
// [Program.Reset] to clear them.
//
// # Compilation Modes
//
// [Eager] validates every line up front. [Lazy] compiles a line the first
// time it executes, so a broken line that never runs is never reported.
// [Speculative] behaves like Lazy while background workers compile the
// rest of the program.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling with
// errors.As: [SyntaxError], [DuplicateLineError], [GotoError] and
// [GosubError] at compile time; [ReturnError], [UndefinedVariableError],
// [ExpressionValueError], [ArithmeticError], [StartLineError],
// [InputError] and [StackOverflowError] at run time.
package ubasic
