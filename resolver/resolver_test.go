/*
File    : lox/resolver/resolver_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package resolver

import (
	"testing"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSrc(t *testing.T, src string) *Resolver {
	t.Helper()
	lex := lexer.NewLexer(src)
	p := parser.NewParser(lex.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	r := NewResolver()
	r.Resolve(stmts)
	return r
}

func TestResolveReadInOwnInitializerIsError(t *testing.T) {
	r := resolveSrc(t, "var a = 1; { var a = a; }")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.Errors[0].Message, "own initializer")
}

func TestResolveReturnAtTopLevelIsError(t *testing.T) {
	r := resolveSrc(t, "return 1;")
	require.True(t, r.HasErrors())
	assert.Equal(t, "Cannot return from top-level code.", r.Errors[0].Message)
}

func TestResolveReturnValueInInitializerIsError(t *testing.T) {
	r := resolveSrc(t, `class A { init() { return 1; } }`)
	require.True(t, r.HasErrors())
	assert.Equal(t, "Cannot return value from initializer.", r.Errors[0].Message)
}

func TestResolveBareReturnInInitializerIsOK(t *testing.T) {
	r := resolveSrc(t, `class A { init() { return; } }`)
	assert.False(t, r.HasErrors())
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	r := resolveSrc(t, "print this;")
	require.True(t, r.HasErrors())
	assert.Equal(t, "Cannot use 'this' outside of a class.", r.Errors[0].Message)
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	r := resolveSrc(t, `class A { m() { super.m(); } }`)
	require.True(t, r.HasErrors())
	assert.Equal(t, "Cannot use 'super' in a class with no superclass.", r.Errors[0].Message)
}

func TestResolveSelfInheritanceIsError(t *testing.T) {
	r := resolveSrc(t, "class A < A {}")
	require.True(t, r.HasErrors())
	assert.Equal(t, "A class cannot inherit from itself.", r.Errors[0].Message)
}

func TestResolveLocalVariableDistance(t *testing.T) {
	lex := lexer.NewLexer(`{
  var a = 1;
  {
    print a;
  }
}`)
	p := parser.NewParser(lex.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	r := NewResolver()
	r.Resolve(stmts)
	assert.False(t, r.HasErrors())
	assert.NotEmpty(t, r.Locals)
}
