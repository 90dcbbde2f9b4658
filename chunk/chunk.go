/*
File    : lox/chunk/chunk.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package chunk implements the bytecode backend's instruction container
// (spec §4.6). The authoritative opcode roster comes from spec §4.6's own
// table — original_source/bytecode/src/chunk.rs is an early draft with
// only OpConstant/OpReturn and is not used as a literal source here, only
// for the tagged-variant-vs-packed-bytestream design tradeoff (spec §9),
// resolved in favor of a slice of tagged Go structs.
package chunk

import "github.com/akashmaji946/lox/value"

type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpPop
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpGetLocal
	OpSetLocal
	OpJump
	OpJumpIfFalse
	OpLoop
	OpCall
	OpReturn
)

var opNames = map[OpCode]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpPop:          "OP_POP",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return "OP_UNKNOWN"
}

// Instruction is one tagged bytecode record: an opcode plus an optional
// operand (a constant-table index, a local slot, or the absolute index
// of a jump's target instruction, depending on Op). Operand width is an implementation choice (spec
// §4.6); int is large enough to address well beyond 2^16 constants.
type Instruction struct {
	Op      OpCode
	Operand int
}

// Chunk is an ordered opcode sequence, a parallel line-number sequence,
// and a constants table. Invariant: len(Code) == len(Lines), enforced by
// Write appending to both atomically.
type Chunk struct {
	Code      []Instruction
	Lines     []int
	Constants []value.Value
}

func New() *Chunk {
	return &Chunk{}
}

// Write appends one instruction and its source line atomically.
func (c *Chunk) Write(op OpCode, operand int, line int) int {
	c.Code = append(c.Code, Instruction{Op: op, Operand: operand})
	c.Lines = append(c.Lines, line)
	return len(c.Code) - 1
}

// AddConstant appends v to the constants table and returns its index.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}
