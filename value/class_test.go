/*
File    : lox/value/class_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package value

import (
	"testing"

	"github.com/akashmaji946/lox/ast"
	"github.com/akashmaji946/lox/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func methodNamed(name string) *Function {
	decl := &ast.Function{Name: lexer.NewToken(lexer.IDENTIFIER, name, nil, 1)}
	return &Function{Decl: decl}
}

func TestClassFindMethodSearchesSuperclassChain(t *testing.T) {
	grandparent := &Class{Name: "A", Methods: map[string]*Function{"greet": methodNamed("greet")}}
	parent := &Class{Name: "B", Superclass: grandparent, Methods: map[string]*Function{}}
	child := &Class{Name: "C", Superclass: parent, Methods: map[string]*Function{}}

	fn, ok := child.FindMethod("greet")
	require.True(t, ok)
	assert.Equal(t, "greet", fn.Decl.Name.Lexeme)
}

func TestClassFindMethodMissingReturnsFalse(t *testing.T) {
	c := &Class{Name: "A", Methods: map[string]*Function{}}
	_, ok := c.FindMethod("nope")
	assert.False(t, ok)
}

func TestInstanceGetPrefersFieldOverMethod(t *testing.T) {
	class := &Class{Name: "A", Methods: map[string]*Function{"x": methodNamed("x")}}
	instance := NewInstance(class)
	instance.Set("x", Number(42))

	v, err := instance.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Number(42), v)
}

func TestInstanceGetBindsMethodToInstance(t *testing.T) {
	class := &Class{Name: "A", Methods: map[string]*Function{"greet": methodNamed("greet")}}
	instance := NewInstance(class)

	v, err := instance.Get("greet")
	require.NoError(t, err)
	bound, ok := v.(*Function)
	require.True(t, ok)
	this, err := bound.Closure.Get("this")
	require.NoError(t, err)
	assert.Same(t, instance, this)
}

func TestInstanceGetUndefinedPropertyIsError(t *testing.T) {
	class := &Class{Name: "A", Methods: map[string]*Function{}}
	instance := NewInstance(class)
	_, err := instance.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined property 'missing'.")
}
