/*
File    : lox/vm/vm.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package vm implements the stack-based bytecode virtual machine (spec
// §4.6), grounded on original_source/bytecode/src/vm.rs's dispatch-loop
// shape (STACK_MAX, InterpretResult{Ok,CompileError,RuntimeError}, the
// cfg!(feature="debug_trace_execution") trace block) and, for the
// switch-on-tag/mutate-state/return dispatch idiom itself, on the
// teacher's eval/evaluator.go type-switch evaluation style applied here
// to opcodes instead of AST nodes.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/lox/chunk"
	"github.com/akashmaji946/lox/value"
	"github.com/fatih/color"
)

const stackMax = 256

// Result mirrors original_source/bytecode/src/vm.rs's InterpretResult.
// Interpret returns only Ok or RuntimeError; the CLI picks its exit code
// from the type of the returned error, not from Result.
type Result int

const (
	Ok Result = iota
	CompileError
	RuntimeError
)

// RuntimeErr carries the line of the failing instruction, per spec §4.7.
type RuntimeErr struct {
	Line    int
	Message string
}

func (e *RuntimeErr) Error() string { return e.Message }

// VM is a stack machine with a value stack, an instruction pointer into
// the current chunk, and a globals table (for `var`/print programs
// compiled by the compiler package). The value stack grows as needed:
// stackMax is declared but push does not check it, so no stack-overflow
// error is ever raised.
type VM struct {
	chunk   *chunk.Chunk
	ip      int
	stack   []value.Value
	globals map[string]value.Value
	Writer  io.Writer
	Trace   bool
}

func New() *VM {
	return &VM{globals: make(map[string]value.Value), Writer: os.Stdout}
}

func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() value.Value {
	n := len(vm.stack)
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) resetStack() {
	vm.stack = nil
}

// Interpret runs c to completion.
func (vm *VM) Interpret(c *chunk.Chunk) (Result, error) {
	vm.chunk = c
	vm.ip = 0
	return vm.run()
}

func (vm *VM) currentLine() int {
	if vm.ip-1 >= 0 && vm.ip-1 < len(vm.chunk.Lines) {
		return vm.chunk.Lines[vm.ip-1]
	}
	return 0
}

func (vm *VM) runtimeError(format string, a ...interface{}) (Result, error) {
	line := vm.currentLine()
	vm.resetStack()
	return RuntimeError, &RuntimeErr{Line: line, Message: fmt.Sprintf(format, a...)}
}

// run is the dispatch loop: fetch the opcode at ip, advance ip, switch on
// tag, perform the effect.
func (vm *VM) run() (Result, error) {
	for {
		if vm.Trace {
			vm.traceStep()
		}

		instr := vm.chunk.Code[vm.ip]
		vm.ip++

		switch instr.Op {
		case chunk.OpConstant:
			vm.push(vm.chunk.Constants[instr.Operand])
		case chunk.OpNil:
			vm.push(value.Nil{})
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))
		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.OpGreater:
			if r, err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Bool(a > b) }); err != nil {
				return r, err
			}
		case chunk.OpLess:
			if r, err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Bool(a < b) }); err != nil {
				return r, err
			}
		case chunk.OpAdd:
			b, a := vm.peek(0), vm.peek(1)
			an, aok := a.(value.Number)
			bn, bok := b.(value.Number)
			if aok && bok {
				vm.pop()
				vm.pop()
				vm.push(an + bn)
				break
			}
			as, asok := a.(value.String)
			bs, bsok := b.(value.String)
			if asok && bsok {
				vm.pop()
				vm.pop()
				vm.push(as + bs)
				break
			}
			return vm.runtimeError("Operands must be two numbers or two strings.")
		case chunk.OpSubtract:
			if r, err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a - b) }); err != nil {
				return r, err
			}
		case chunk.OpMultiply:
			if r, err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a * b) }); err != nil {
				return r, err
			}
		case chunk.OpDivide:
			if r, err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a / b) }); err != nil {
				return r, err
			}
		case chunk.OpNot:
			vm.push(value.Bool(!value.IsTruthy(vm.pop())))
		case chunk.OpNegate:
			n, ok := vm.peek(0).(value.Number)
			if !ok {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)
		case chunk.OpPrint:
			fmt.Fprintln(vm.Writer, value.Stringify(vm.pop()))
		case chunk.OpPop:
			vm.pop()
		case chunk.OpGetLocal:
			vm.push(vm.stack[instr.Operand])
		case chunk.OpSetLocal:
			vm.stack[instr.Operand] = vm.peek(0)
		case chunk.OpJump:
			vm.ip = instr.Operand
		case chunk.OpJumpIfFalse:
			if !value.IsTruthy(vm.peek(0)) {
				vm.ip = instr.Operand
			}
		case chunk.OpLoop:
			vm.ip = instr.Operand
		case chunk.OpDefineGlobal:
			name := string(vm.chunk.Constants[instr.Operand].(value.String))
			vm.globals[name] = vm.pop()
		case chunk.OpGetGlobal:
			name := string(vm.chunk.Constants[instr.Operand].(value.String))
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.push(v)
		case chunk.OpSetGlobal:
			name := string(vm.chunk.Constants[instr.Operand].(value.String))
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.peek(0)
		case chunk.OpReturn:
			if len(vm.stack) > 0 {
				fmt.Fprintln(vm.Writer, value.Stringify(vm.pop()))
			}
			return Ok, nil
		default:
			return vm.runtimeError("Unknown opcode.")
		}
	}
}

func (vm *VM) binaryNumberOp(op func(a, b float64) value.Value) (Result, error) {
	b, bok := vm.peek(0).(value.Number)
	a, aok := vm.peek(1).(value.Number)
	if !aok || !bok {
		r, err := vm.runtimeError("Operand must be a number.")
		return r, err
	}
	vm.pop()
	vm.pop()
	vm.push(op(float64(a), float64(b)))
	return Ok, nil
}

// traceStep prints the current stack contents and a disassembly of the
// next instruction before dispatch, colorized the way the REPL colors
// its own output.
func (vm *VM) traceStep() {
	stackLine := "          "
	for _, v := range vm.stack {
		stackLine += fmt.Sprintf("[ %s ]", v.String())
	}
	fmt.Fprintln(vm.Writer, color.CyanString(stackLine))
	fmt.Fprintln(vm.Writer, color.YellowString(vm.chunk.DisassembleInstruction(vm.ip)))
}
