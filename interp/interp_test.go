/*
File    : lox/interp/interp_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	lex := lexer.NewLexer(src)
	p := parser.NewParser(lex.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "%v", p.Errors)

	it := New()
	r := it.Resolve(stmts)
	require.False(t, r.HasErrors(), "%v", r.Errors)

	var buf bytes.Buffer
	it.SetWriter(&buf)
	err := it.Interpret(stmts)
	return buf.String(), err
}

func TestInterpretArithmeticPrint(t *testing.T) {
	out, err := run(t, "print 1 + 2;")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, err := run(t, `var a = "hi"; var b = " there"; print a + b;`)
	require.NoError(t, err)
	assert.Equal(t, "hi there\n", out)
}

func TestInterpretClosureCapturesSharedState(t *testing.T) {
	out, err := run(t, `
fun make(n) { fun add(x) { return x + n; } return add; }
var a = make(3); print a(4); print a(10);
`)
	require.NoError(t, err)
	assert.Equal(t, "7\n13\n", out)
}

func TestInterpretInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class A { greet() { print "A"; } }
class B < A { greet() { super.greet(); print "B"; } }
B().greet();
`)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", out)
}

func TestInterpretInitializerFixedPoint(t *testing.T) {
	out, err := run(t, `
class P { init(x) { this.x = x; } }
var p = P(42); print p.x;
`)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestInterpretStringPlusNumberIsRuntimeError(t *testing.T) {
	_, err := run(t, `print "a" + 1;`)
	require.Error(t, err)
	rt, ok := err.(*runtimeError)
	require.True(t, ok)
	assert.Equal(t, "Operands must be two numbers or two strings.", rt.Message)
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print undefined_var;`)
	require.Error(t, err)
	_, ok := err.(*runtimeError)
	require.True(t, ok)
}

func TestInterpretShortCircuitOr(t *testing.T) {
	out, err := run(t, `
fun sideEffect() { print "called"; return true; }
print true or sideEffect();
`)
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "called"))
}

func TestInterpretMethodResolutionAcrossThreeLevels(t *testing.T) {
	out, err := run(t, `
class A { m() { print "A.m"; } }
class B < A {}
class C < B {}
C().m();
`)
	require.NoError(t, err)
	assert.Equal(t, "A.m\n", out)
}

func TestEnvironmentRestoredAfterRuntimeErrorInBlock(t *testing.T) {
	it := New()
	lex := lexer.NewLexer(`var a = 1; { var a = 2; print undefined_var; }`)
	p := parser.NewParser(lex.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	r := it.Resolve(stmts)
	require.False(t, r.HasErrors())

	var buf bytes.Buffer
	it.SetWriter(&buf)
	err := it.Interpret(stmts)
	require.Error(t, err)
	// outer environment must be restored: "a" is still the outer binding
	v, getErr := it.environment.Get("a")
	require.NoError(t, getErr)
	assert.Equal(t, "1", v.String())
}
