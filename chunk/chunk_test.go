/*
File    : lox/chunk/chunk_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package chunk

import (
	"testing"

	"github.com/akashmaji946/lox/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteKeepsCodeAndLinesAligned(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.Number(1.2))
	c.Write(OpConstant, idx, 1)
	c.Write(OpReturn, 0, 1)
	require.Len(t, c.Code, len(c.Lines))
	assert.Equal(t, OpConstant, c.Code[0].Op)
	assert.Equal(t, idx, c.Code[0].Operand)
}

func TestDisassembleInstructionShowsConstant(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.Number(42))
	c.Write(OpConstant, idx, 3)
	out := c.DisassembleInstruction(0)
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "42")
}

func TestDisassembleRepeatsLineAsBar(t *testing.T) {
	c := New()
	c.Write(OpNil, 0, 5)
	c.Write(OpReturn, 0, 5)
	out := c.DisassembleInstruction(1)
	assert.Contains(t, out, "|")
}
