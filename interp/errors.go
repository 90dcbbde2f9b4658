/*
File    : lox/interp/errors.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package interp

import (
	"fmt"

	"github.com/akashmaji946/lox/value"
)

// runtimeError carries the offending token's line and a stable message,
// per spec §4.7/§7. It is a true error and is never confused with
// returnUnwind below.
type runtimeError struct {
	Line    int
	Message string
}

func (e *runtimeError) Error() string { return e.Message }

func newRuntimeError(line int, format string, a ...interface{}) *runtimeError {
	return &runtimeError{Line: line, Message: fmt.Sprintf(format, a...)}
}

// returnUnwind is the dedicated non-error control-flow signal used to
// unwind a function body to its call site (spec §4.5/§4.7/§9). It
// implements error only so it can travel through the same Go `error`
// return channel as ast visitor methods use, but callers MUST type-assert
// for *returnUnwind before treating a non-nil error as a runtime failure —
// grounded on original_source/interpreter/src/interpreter.rs's
// `Err(Error::Return{value})` pattern (return-via-Err-variant, not a
// distinguished success path).
type returnUnwind struct {
	Value value.Value
}

func (*returnUnwind) Error() string { return "return" }

// IsRuntimeError reports whether err is a runtime failure (spec §4.7,
// exit code 70 at the CLI layer) as opposed to a parse/resolve diagnostic.
func IsRuntimeError(err error) bool {
	_, ok := err.(*runtimeError)
	return ok
}

// Report formats a diagnostic in the exact format confirmed by
// original_source/src/error.rs: "[line N] Error<context>: <message>".
// It returns the line and writes nothing itself.
func Report(line int, where, message string) string {
	return fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
}
