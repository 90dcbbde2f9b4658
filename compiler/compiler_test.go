/*
File    : lox/compiler/compiler_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package compiler

import (
	"testing"

	"github.com/akashmaji946/lox/chunk"
	"github.com/akashmaji946/lox/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *chunk.Chunk {
	t.Helper()
	lex := lexer.NewLexer(src)
	c := New(lex.ScanTokens())
	ch := c.Compile()
	require.False(t, c.HasErrors(), "%v", c.Errors)
	return ch
}

func TestCompileArithmeticPrecedence(t *testing.T) {
	ch := compile(t, "print 1 + 2 * 3;")
	var ops []chunk.OpCode
	for _, instr := range ch.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, chunk.OpAdd)
	assert.Contains(t, ops, chunk.OpMultiply)
	assert.Contains(t, ops, chunk.OpPrint)
}

func TestCompileGlobalVarDefineAndGet(t *testing.T) {
	ch := compile(t, "var a = 1; print a;")
	var ops []chunk.OpCode
	for _, instr := range ch.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, chunk.OpDefineGlobal)
	assert.Contains(t, ops, chunk.OpGetGlobal)
}

func TestCompileBlockLocalUsesLocalSlots(t *testing.T) {
	ch := compile(t, "{ var a = 1; print a; }")
	var ops []chunk.OpCode
	for _, instr := range ch.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, chunk.OpGetLocal)
	assert.NotContains(t, ops, chunk.OpDefineGlobal)
}

func TestCompileIfElseEmitsJumps(t *testing.T) {
	ch := compile(t, `if (true) { print 1; } else { print 2; }`)
	var ops []chunk.OpCode
	for _, instr := range ch.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, chunk.OpJumpIfFalse)
	assert.Contains(t, ops, chunk.OpJump)
}

func TestCompileWhileEmitsLoop(t *testing.T) {
	ch := compile(t, `var i = 0; while (i < 3) { i = i + 1; }`)
	var ops []chunk.OpCode
	for _, instr := range ch.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, chunk.OpLoop)
	assert.Contains(t, ops, chunk.OpJumpIfFalse)
}

func TestCompileAndEmitsJumpIfFalse(t *testing.T) {
	ch := compile(t, `print true and false;`)
	var ops []chunk.OpCode
	for _, instr := range ch.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, chunk.OpJumpIfFalse)
	assert.NotContains(t, ops, chunk.OpJump)
}

func TestCompileOrEmitsJumpIfFalseAndJump(t *testing.T) {
	ch := compile(t, `print true or false;`)
	var ops []chunk.OpCode
	for _, instr := range ch.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, chunk.OpJumpIfFalse)
	assert.Contains(t, ops, chunk.OpJump)
}

func TestCompileUnknownExpressionIsError(t *testing.T) {
	lex := lexer.NewLexer("print ;")
	c := New(lex.ScanTokens())
	c.Compile()
	require.True(t, c.HasErrors())
	assert.Contains(t, c.Errors[0], "Expect expression.")
}
