/*
File    : lox/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/akashmaji946/lox/ast"
	"github.com/akashmaji946/lox/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	lex := lexer.NewLexer(src)
	p := NewParser(lex.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors)
	return stmts
}

func TestParsePrintArithmetic(t *testing.T) {
	stmts := parse(t, "print 1 + 2 * 3;")
	require.Len(t, stmts, 1)
	printStmt, ok := stmts[0].(*ast.Print)
	require.True(t, ok)
	bin, ok := printStmt.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, lexer.PLUS, bin.Operator.Type)
	right, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, lexer.STAR, right.Operator.Type)
}

func TestParseVarAndAssign(t *testing.T) {
	stmts := parse(t, "var a = 1; a = 2;")
	require.Len(t, stmts, 2)
	_, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	exprStmt, ok := stmts[1].(*ast.Expression)
	require.True(t, ok)
	_, ok = exprStmt.Expr.(*ast.Assign)
	require.True(t, ok)
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts := parse(t, `class A { greet() { print "A"; } }
class B < A { greet() { super.greet(); print "B"; } }`)
	require.Len(t, stmts, 2)
	b, ok := stmts[1].(*ast.Class)
	require.True(t, ok)
	require.NotNil(t, b.Superclass)
	assert.Equal(t, "A", b.Superclass.Name.Lexeme)
	require.Len(t, b.Methods, 1)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Len(t, stmts, 1)
	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
	_, ok = block.Statements[0].(*ast.Var)
	require.True(t, ok)
	whileStmt, ok := block.Statements[1].(*ast.While)
	require.True(t, ok)
	body, ok := whileStmt.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, body.Statements, 2)
}

func TestParseErrorReportsExpectExpression(t *testing.T) {
	lex := lexer.NewLexer("var a = ;")
	p := NewParser(lex.ScanTokens())
	p.Parse()
	require.True(t, p.HasErrors())
	assert.Equal(t, "Expect expression.", p.Errors[0].Message)
}

func TestParseMissingBraceReportsError(t *testing.T) {
	lex := lexer.NewLexer("{ print 1;")
	p := NewParser(lex.ScanTokens())
	p.Parse()
	require.True(t, p.HasErrors())
}
