/*
File    : lox/compiler/compiler.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package compiler implements the single-pass Pratt-table-driven
// bytecode front-end (spec §4.3), operating directly on lexer.Tokens —
// independent of the ast/parser packages used by the tree-walking
// backend. The prefix/infix/precedence table is grounded on the
// teacher's parser/parser_precedence.go getPrecedence/registerUnaryFuncs/
// registerBinaryFuncs idiom, restructured here from "register into a
// func map, build an AST node" to "look up one rule map keyed by
// TokenType, emit bytecode directly".
//
// Scope: spec §4.6's opcode table only covers expression evaluation
// (CONST/NIL/TRUE/FALSE/EQUAL/GREATER/LESS/ADD/SUBTRACT/MULTIPLY/DIVIDE/
// NOT/NEGATE/RETURN, where RETURN "pops and prints"); this compiler
// additionally supports `print`, global and block-local `var`, `if`/
// `else`, and `while` as the literal enrichment spec §4.6 itself names
// (GET_LOCAL/SET_LOCAL/JUMP/JUMP_IF_FALSE/LOOP), without introducing
// bytecode-level closures, classes, or functions — those remain the
// tree-walking backend's job per spec §2's "two backends are
// independent" note.
package compiler

import (
	"fmt"

	"github.com/akashmaji946/lox/chunk"
	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/value"
)

type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[lexer.TokenType]rule

func init() {
	rules = map[lexer.TokenType]rule{
		lexer.LEFT_PAREN:    {prefix: (*Compiler).grouping},
		lexer.MINUS:         {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		lexer.PLUS:          {infix: (*Compiler).binary, precedence: precTerm},
		lexer.SLASH:         {infix: (*Compiler).binary, precedence: precFactor},
		lexer.STAR:          {infix: (*Compiler).binary, precedence: precFactor},
		lexer.BANG:          {prefix: (*Compiler).unary},
		lexer.BANG_EQUAL:    {infix: (*Compiler).binary, precedence: precEquality},
		lexer.EQUAL_EQUAL:   {infix: (*Compiler).binary, precedence: precEquality},
		lexer.GREATER:       {infix: (*Compiler).binary, precedence: precComparison},
		lexer.GREATER_EQUAL: {infix: (*Compiler).binary, precedence: precComparison},
		lexer.LESS:          {infix: (*Compiler).binary, precedence: precComparison},
		lexer.LESS_EQUAL:    {infix: (*Compiler).binary, precedence: precComparison},
		lexer.AND:           {infix: (*Compiler).and_, precedence: precAnd},
		lexer.OR:            {infix: (*Compiler).or_, precedence: precOr},
		lexer.IDENTIFIER:    {prefix: (*Compiler).variable},
		lexer.STRING:        {prefix: (*Compiler).stringLiteral},
		lexer.NUMBER:        {prefix: (*Compiler).number},
		lexer.FALSE:         {prefix: (*Compiler).literal},
		lexer.TRUE:          {prefix: (*Compiler).literal},
		lexer.NIL:           {prefix: (*Compiler).literal},
	}
}

func getRule(t lexer.TokenType) rule { return rules[t] }

// localVar is one compile-time-tracked block-local binding: its source
// name and the scope depth it was declared at. Its position in
// Compiler.locals is also its runtime stack slot, since every local push
// and pop is balanced one-for-one with scope entry/exit (see
// beginScope/endScope).
type localVar struct {
	name  string
	depth int
}

// Compiler holds the token cursor, the chunk being assembled, and the
// block-scope tracking needed to resolve local variables to stack slots
// instead of the globals table.
type Compiler struct {
	tokens     []lexer.Token
	current    int
	chunk      *chunk.Chunk
	locals     []localVar
	scopeDepth int
	Errors     []string
}

func New(tokens []lexer.Token) *Compiler {
	return &Compiler{tokens: tokens, chunk: chunk.New()}
}

func (c *Compiler) HasErrors() bool { return len(c.Errors) > 0 }

// Compile compiles program := declaration* EOF into a Chunk, appending a
// final OpReturn (spec §4.6's literal RETURN semantics: pop and print the
// top of the stack if there is one). Every expression statement pops its
// own value and every block pops its locals, so a compiled program
// reaches that OpReturn with an empty stack and it prints nothing.
func (c *Compiler) Compile() *chunk.Chunk {
	for !c.check(lexer.EOF) {
		c.declaration()
	}
	c.emit(chunk.OpReturn, 0, c.previousLine())
	return c.chunk
}

func (c *Compiler) previousLine() int {
	if c.current == 0 {
		return 1
	}
	return c.tokens[c.current-1].Line
}

func (c *Compiler) peek() lexer.Token   { return c.tokens[c.current] }
func (c *Compiler) previous() lexer.Token { return c.tokens[c.current-1] }
func (c *Compiler) check(t lexer.TokenType) bool { return c.peek().Type == t }

func (c *Compiler) advance() lexer.Token {
	if !c.check(lexer.EOF) {
		c.current++
	}
	return c.previous()
}

func (c *Compiler) match(t lexer.TokenType) bool {
	if c.check(t) {
		c.advance()
		return true
	}
	return false
}

func (c *Compiler) consume(t lexer.TokenType, message string) {
	if c.check(t) {
		c.advance()
		return
	}
	c.errorAt(c.peek(), message)
}

func (c *Compiler) errorAt(tok lexer.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == lexer.EOF {
		where = " at end"
	}
	c.Errors = append(c.Errors, fmt.Sprintf("[line %d] Error%s: %s", tok.Line, where, message))
}

func (c *Compiler) emit(op chunk.OpCode, operand int, line int) int {
	return c.chunk.Write(op, operand, line)
}

func (c *Compiler) emitConstant(v value.Value, line int) {
	idx := c.chunk.AddConstant(v)
	c.emit(chunk.OpConstant, idx, line)
}

// --- statements ---

func (c *Compiler) declaration() {
	switch {
	case c.match(lexer.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
}

// varDeclaration compiles the initializer with the new name not yet in
// scope (so it cannot refer to itself), then either pushes a local slot
// (inside a block) or emits OpDefineGlobal (at the top level).
func (c *Compiler) varDeclaration() {
	c.consume(lexer.IDENTIFIER, "Expect variable name.")
	name := c.previous()
	line := name.Line
	if c.match(lexer.EQUAL) {
		c.expression()
	} else {
		c.emit(chunk.OpNil, 0, line)
	}
	c.consume(lexer.SEMICOLON, "Expect ';' after variable declaration.")

	if c.scopeDepth > 0 {
		c.locals = append(c.locals, localVar{name: name.Lexeme, depth: c.scopeDepth})
		return
	}
	idx := c.chunk.AddConstant(value.String(name.Lexeme))
	c.emit(chunk.OpDefineGlobal, idx, line)
}

func (c *Compiler) statement() {
	switch {
	case c.match(lexer.PRINT):
		c.printStatement()
	case c.match(lexer.IF):
		c.ifStatement()
	case c.match(lexer.WHILE):
		c.whileStatement()
	case c.match(lexer.LEFT_BRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(lexer.RIGHT_BRACE) && !c.check(lexer.EOF) {
		c.declaration()
	}
	c.consume(lexer.RIGHT_BRACE, "Expect '}' after block.")
}

func (c *Compiler) beginScope() { c.scopeDepth++ }

// endScope pops every local declared at the scope being left, emitting
// one OpPop per slot so the runtime stack shrinks back in step with the
// compile-time locals list.
func (c *Compiler) endScope() {
	c.scopeDepth--
	line := c.previousLine()
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emit(chunk.OpPop, 0, line)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// ifStatement emits: condition, JUMP_IF_FALSE past the then-branch (with
// a POP of the condition on each side of the branch), an unconditional
// JUMP past the else-branch, then the else-branch if present.
func (c *Compiler) ifStatement() {
	line := c.previous().Line
	c.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse, line)
	c.emit(chunk.OpPop, 0, line)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump, line)
	c.patchJump(thenJump)
	c.emit(chunk.OpPop, 0, line)

	if c.match(lexer.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

// whileStatement emits: loopStart marker, condition, JUMP_IF_FALSE past
// the body, body, LOOP back to loopStart, POP of the (now false)
// condition after the exit jump lands.
func (c *Compiler) whileStatement() {
	line := c.previous().Line
	loopStart := len(c.chunk.Code)
	c.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse, line)
	c.emit(chunk.OpPop, 0, line)
	c.statement()
	c.emit(chunk.OpLoop, loopStart, line)

	c.patchJump(exitJump)
	c.emit(chunk.OpPop, 0, line)
}

// emitJump emits a jump opcode with a placeholder operand, to be fixed
// up once the jump target is known.
func (c *Compiler) emitJump(op chunk.OpCode, line int) int {
	return c.emit(op, 0, line)
}

// patchJump sets a previously emitted jump's operand to the instruction
// index immediately following the current end of the chunk.
func (c *Compiler) patchJump(offset int) {
	c.chunk.Code[offset].Operand = len(c.chunk.Code)
}

func (c *Compiler) printStatement() {
	line := c.previous().Line
	c.expression()
	c.consume(lexer.SEMICOLON, "Expect ';' after value.")
	c.emit(chunk.OpPrint, 0, line)
}

func (c *Compiler) expressionStatement() {
	line := c.peek().Line
	c.expression()
	c.consume(lexer.SEMICOLON, "Expect ';' after expression.")
	c.emit(chunk.OpPop, 0, line)
}

// --- expressions ---

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence: advance; invoke previous token's prefix emitter; while
// the current token's infix precedence >= level, advance and invoke its
// infix emitter. Absent prefix emitter -> "Expect expression." error —
// the exact algorithm spec §4.3 specifies.
func (c *Compiler) parsePrecedence(level precedence) {
	tok := c.advance()
	prefixRule := getRule(tok.Type).prefix
	if prefixRule == nil {
		c.errorAt(tok, "Expect expression.")
		return
	}
	canAssign := level <= precAssignment
	prefixRule(c, canAssign)

	for level <= getRule(c.peek().Type).precedence {
		c.advance()
		infixRule := getRule(c.previous().Type).infix
		infixRule(c, canAssign)
	}
}

func (c *Compiler) number(canAssign bool) {
	tok := c.previous()
	c.emitConstant(value.Number(tok.Literal.(float64)), tok.Line)
}

func (c *Compiler) stringLiteral(canAssign bool) {
	tok := c.previous()
	c.emitConstant(value.String(tok.Literal.(string)), tok.Line)
}

func (c *Compiler) literal(canAssign bool) {
	tok := c.previous()
	switch tok.Type {
	case lexer.FALSE:
		c.emit(chunk.OpFalse, 0, tok.Line)
	case lexer.TRUE:
		c.emit(chunk.OpTrue, 0, tok.Line)
	case lexer.NIL:
		c.emit(chunk.OpNil, 0, tok.Line)
	}
}

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	opTok := c.previous()
	c.parsePrecedence(precUnary)
	switch opTok.Type {
	case lexer.MINUS:
		c.emit(chunk.OpNegate, 0, opTok.Line)
	case lexer.BANG:
		c.emit(chunk.OpNot, 0, opTok.Line)
	}
}

func (c *Compiler) binary(canAssign bool) {
	opTok := c.previous()
	r := getRule(opTok.Type)
	c.parsePrecedence(r.precedence + 1)

	switch opTok.Type {
	case lexer.PLUS:
		c.emit(chunk.OpAdd, 0, opTok.Line)
	case lexer.MINUS:
		c.emit(chunk.OpSubtract, 0, opTok.Line)
	case lexer.STAR:
		c.emit(chunk.OpMultiply, 0, opTok.Line)
	case lexer.SLASH:
		c.emit(chunk.OpDivide, 0, opTok.Line)
	case lexer.EQUAL_EQUAL:
		c.emit(chunk.OpEqual, 0, opTok.Line)
	case lexer.BANG_EQUAL:
		c.emit(chunk.OpEqual, 0, opTok.Line)
		c.emit(chunk.OpNot, 0, opTok.Line)
	case lexer.GREATER:
		c.emit(chunk.OpGreater, 0, opTok.Line)
	case lexer.GREATER_EQUAL:
		c.emit(chunk.OpLess, 0, opTok.Line)
		c.emit(chunk.OpNot, 0, opTok.Line)
	case lexer.LESS:
		c.emit(chunk.OpLess, 0, opTok.Line)
	case lexer.LESS_EQUAL:
		c.emit(chunk.OpGreater, 0, opTok.Line)
		c.emit(chunk.OpNot, 0, opTok.Line)
	}
}

// and_ compiles the right operand only if the left is truthy: if left is
// false, JUMP_IF_FALSE leaves it on the stack as the short-circuited
// result and skips straight past the right operand.
func (c *Compiler) and_(canAssign bool) {
	opTok := c.previous()
	endJump := c.emitJump(chunk.OpJumpIfFalse, opTok.Line)
	c.emit(chunk.OpPop, 0, opTok.Line)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// or_ compiles the right operand only if the left is falsey: if left is
// true, it jumps straight past the right operand, leaving the truthy
// left value as the short-circuited result.
func (c *Compiler) or_(canAssign bool) {
	opTok := c.previous()
	elseJump := c.emitJump(chunk.OpJumpIfFalse, opTok.Line)
	endJump := c.emitJump(chunk.OpJump, opTok.Line)
	c.patchJump(elseJump)
	c.emit(chunk.OpPop, 0, opTok.Line)
	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

// resolveLocal searches the locals list innermost-first, mirroring the
// resolver's own innermost-to-outermost scope scan.
func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return i
		}
	}
	return -1
}

func (c *Compiler) variable(canAssign bool) {
	name := c.previous()

	if slot := c.resolveLocal(name.Lexeme); slot != -1 {
		if canAssign && c.match(lexer.EQUAL) {
			c.expression()
			c.emit(chunk.OpSetLocal, slot, name.Line)
			return
		}
		c.emit(chunk.OpGetLocal, slot, name.Line)
		return
	}

	idx := c.chunk.AddConstant(value.String(name.Lexeme))
	if canAssign && c.match(lexer.EQUAL) {
		c.expression()
		c.emit(chunk.OpSetGlobal, idx, name.Line)
		return
	}
	c.emit(chunk.OpGetGlobal, idx, name.Line)
}
