/*
File    : lox/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the Read-Eval-Print Loop for the lox interpreter.
Adapted from the teacher's repl/repl.go: same Repl{Banner,Version,Author,
Line,License,Prompt} shape, the same colored banner/result/error output
via fatih/color, the same readline-backed history via chzyer/readline,
the same '.exit'/EOF handling and panic-recovery wrapper around each
evaluated line. Generalized here to drive either of the two backends
(tree-walking interpreter or bytecode VM) through a shared Backend
interface, since spec §2 treats them as independent, swappable engines.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Backend runs one line or file of source against whatever state it
// keeps (a resolver+interpreter pair, or a chunk+VM pair) and reports
// any diagnostic as an error. Both backends write their own `print`
// output directly to the writer they were configured with.
type Backend interface {
	Run(source string) error
}

// Repl holds the REPL's cosmetic configuration plus the Backend it
// drives. One Repl runs exactly one Backend for its whole session,
// matching the teacher's one-evaluator-per-session lifetime.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	Backend Backend
}

func NewRepl(banner, version, author, line, license, prompt string, backend Backend) *Repl {
	return &Repl{
		Banner:  banner,
		Version: version,
		Author:  author,
		Line:    line,
		License: license,
		Prompt:  prompt,
		Backend: backend,
	}
}

func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to lox!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop: prints the banner, opens a readline
// session, then reads/evaluates/prints one line at a time until '.exit',
// EOF, or a readline error.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line)
	}
}

// executeWithRecovery runs one line through Backend, converting any
// panic into a printed runtime error rather than crashing the session —
// the REPL keeps running after both panics and ordinary errors, unlike
// single-file execution which exits with a mapped status code.
func (r *Repl) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	if err := r.Backend.Run(line); err != nil {
		redColor.Fprintf(writer, "%s\n", err.Error())
	}
}
