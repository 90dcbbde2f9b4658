/*
File    : lox/vm/run.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package vm

import (
	"strings"

	"github.com/akashmaji946/lox/compiler"
	"github.com/akashmaji946/lox/lexer"
)

// Run compiles one chunk of source and executes it against this VM's
// persistent globals table, giving the REPL and the CLI's bytecode mode
// a single-error entry point matching the tree-walking backend's Run.
func (vm *VM) Run(source string) error {
	lex := lexer.NewLexer(source)
	c := compiler.New(lex.ScanTokens())
	ch := c.Compile()
	if c.HasErrors() {
		return &compileErrors{lines: c.Errors}
	}

	_, err := vm.Interpret(ch)
	return err
}

type compileErrors struct {
	lines []string
}

func (e *compileErrors) Error() string { return strings.Join(e.lines, "\n") }

// IsCompileError reports whether err came from the compile phase (spec
// §6, exit code 65), as opposed to a VM runtime failure.
func IsCompileError(err error) bool {
	_, ok := err.(*compileErrors)
	return ok
}
