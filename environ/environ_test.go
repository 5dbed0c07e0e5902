package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvResolveFallsThroughToParent(t *testing.T) {
	parent := Enclosed[int](nil)
	parent.Define("a", 1)
	child := Enclosed[int](parent)
	child.Define("b", 2)

	v, err := child.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = child.Resolve("b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestEnvResolveUndefinedIsError(t *testing.T) {
	e := Empty[int]()
	_, err := e.Resolve("missing")
	assert.Error(t, err)
}

func TestEnvLocalDoesNotFallThrough(t *testing.T) {
	parent := Enclosed[int](nil)
	parent.Define("a", 1)
	child := Enclosed[int](parent).(*Env[int])

	_, ok := child.Local("a")
	assert.False(t, ok)

	child.Define("a", 2)
	v, ok := child.Local("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestEnvDefineShadowsParent(t *testing.T) {
	parent := Enclosed[int](nil)
	parent.Define("a", 1)
	child := Enclosed[int](parent)
	child.Define("a", 99)

	v, err := child.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 99, v)

	v, err = parent.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
