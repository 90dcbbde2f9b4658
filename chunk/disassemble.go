/*
File    : lox/chunk/disassemble.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package chunk

import "fmt"

// Disassemble renders every instruction in the chunk, grounded on
// original_source/bytecode/src/vm.rs's trace block shape (print stack,
// then disassemble_instruction before each dispatch).
func (c *Chunk) Disassemble(name string) string {
	out := fmt.Sprintf("== %s ==\n", name)
	for offset := 0; offset < len(c.Code); offset++ {
		out += c.DisassembleInstruction(offset) + "\n"
	}
	return out
}

// DisassembleInstruction renders one instruction: offset, source line (or
// "|" if same as the previous instruction's line), opcode name, and any
// constant operand's value.
func (c *Chunk) DisassembleInstruction(offset int) string {
	instr := c.Code[offset]
	lineField := fmt.Sprintf("%4d", c.Lines[offset])
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		lineField = "   |"
	}

	switch instr.Op {
	case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal:
		constant := c.Constants[instr.Operand]
		return fmt.Sprintf("%04d %s %-16s %4d '%s'", offset, lineField, instr.Op, instr.Operand, constant.String())
	case OpGetLocal, OpSetLocal, OpCall:
		return fmt.Sprintf("%04d %s %-16s %4d", offset, lineField, instr.Op, instr.Operand)
	case OpJump, OpJumpIfFalse, OpLoop:
		return fmt.Sprintf("%04d %s %-16s -> %d", offset, lineField, instr.Op, instr.Operand)
	default:
		return fmt.Sprintf("%04d %s %s", offset, lineField, instr.Op)
	}
}
