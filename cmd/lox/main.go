/*
File    : lox/cmd/lox/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Command lox is the CLI entry point (spec §6): with no arguments it
// starts the interactive REPL, with one argument it runs that file as a
// whole program, and -bytecode switches both modes from the
// tree-walking interpreter to the bytecode VM. Exit codes follow spec
// §6/§4.7: 0 success, 64 usage, 65 parse/resolve error, 70 runtime
// error — grounded on original_source/src/lox.rs's run_file/run_prompt
// split and its ExitCode mapping.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akashmaji946/lox/interp"
	"github.com/akashmaji946/lox/repl"
	"github.com/akashmaji946/lox/vm"
)

const (
	exitUsage   = 64
	exitCompile = 65
	exitRuntime = 70
)

func main() {
	bytecode := flag.Bool("bytecode", false, "run with the bytecode compiler and VM instead of the tree-walking interpreter")
	flag.Parse()

	args := flag.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "usage: lox [-bytecode] [script]")
		os.Exit(exitUsage)
	}

	backend, isCompileErr, isRuntimeErr := newBackend(*bytecode)

	if len(args) == 1 {
		os.Exit(runFile(args[0], backend, isCompileErr, isRuntimeErr))
	}

	runPrompt(backend)
}

// newBackend returns the selected repl.Backend plus the two error
// classifiers needed to map its errors to exit codes, since the two
// backends report compile/runtime errors as different concrete types.
func newBackend(bytecode bool) (backend repl.Backend, isCompileErr, isRuntimeErr func(error) bool) {
	if bytecode {
		machine := vm.New()
		return machine, vm.IsCompileError, func(err error) bool {
			_, ok := err.(*vm.RuntimeErr)
			return ok
		}
	}
	it := interp.New()
	return it, interp.IsCompileError, interp.IsRuntimeError
}

func runFile(path string, backend repl.Backend, isCompileErr, isRuntimeErr func(error) bool) int {
	source, err := interp.ReadSourceFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: %s\n", err)
		return exitUsage
	}

	if err := backend.Run(source); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		switch {
		case isCompileErr(err):
			return exitCompile
		case isRuntimeErr(err):
			return exitRuntime
		default:
			return exitRuntime
		}
	}
	return 0
}

func runPrompt(backend repl.Backend) {
	session := repl.NewRepl(
		"lox - a tree-walking and bytecode Lox interpreter",
		"0.1.0",
		"akashmaji946",
		"--------------------------------------------------",
		"MIT",
		"lox >>> ",
		backend,
	)
	session.Start(os.Stdin, os.Stdout)
}
