/*
File    : lox/interp/run.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package interp

import (
	"strings"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
)

// sourceError joins one or more already-formatted diagnostic lines into
// a single error, so a whole phase's worth of parse or resolve errors
// can be reported through the single-error Backend interface the REPL
// and CLI both use.
type sourceError struct {
	lines []string
}

func (e *sourceError) Error() string { return strings.Join(e.lines, "\n") }

// IsCompileError reports whether err came from the lex/parse/resolve
// phases (spec §6, exit code 65), as opposed to a runtime failure.
func IsCompileError(err error) bool {
	_, ok := err.(*sourceError)
	return ok
}

// Run lexes, parses, resolves, and interprets one chunk of source
// against this Interpreter's persistent global environment — the shape
// the REPL needs to keep variables and functions alive across lines,
// and that single-file execution uses once per whole program.
func (it *Interpreter) Run(source string) error {
	lex := lexer.NewLexer(source)
	p := parser.NewParser(lex.ScanTokens())
	statements := p.Parse()
	if p.HasErrors() {
		return collectParseErrors(p.Errors)
	}

	r := it.Resolve(statements)
	if r.HasErrors() {
		return collectParseErrors(r.Errors)
	}

	return it.Interpret(statements)
}

func collectParseErrors(errs []parser.ParseError) error {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return &sourceError{lines: lines}
}
