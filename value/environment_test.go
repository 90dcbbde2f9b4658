/*
File    : lox/value/environment_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentGetWalksEnclosingChain(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", Number(1))
	inner := NewEnvironment(outer)

	v, err := inner.Get("a")
	require.NoError(t, err)
	assert.Equal(t, Number(1), v)
}

func TestEnvironmentGetUndefinedIsError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'.")
}

func TestEnvironmentAssignUpdatesDefiningFrame(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", Number(1))
	inner := NewEnvironment(outer)

	require.NoError(t, inner.Assign("a", Number(2)))

	v, err := outer.Get("a")
	require.NoError(t, err)
	assert.Equal(t, Number(2), v)
}

func TestEnvironmentAssignUndefinedIsError(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign("missing", Number(1))
	require.Error(t, err)
}

func TestEnvironmentGetAtAndAssignAtUseExactDistance(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Number(1))
	middle := NewEnvironment(global)
	middle.Define("x", Number(2))
	inner := NewEnvironment(middle)

	v, err := inner.GetAt(1, "x")
	require.NoError(t, err)
	assert.Equal(t, Number(2), v)

	inner.AssignAt(1, "x", Number(3))
	v, err = middle.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Number(3), v)

	v, err = global.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Number(1), v, "assigning at distance 1 must not touch the global frame")
}
