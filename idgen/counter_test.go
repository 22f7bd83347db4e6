package idgen_test

import (
	"testing"

	"github.com/bloodmagesoftware/venture-csg/idgen"
	"github.com/stretchr/testify/require"
)

func TestCounterMonotonic(t *testing.T) {
	c := idgen.New()
	a := c.Next()
	b := c.Next()
	require.NotEqual(t, a, b)
	require.Greater(t, b, a)
	require.NotZero(t, a)
}

func TestCounterIndependentInstances(t *testing.T) {
	a := idgen.New()
	b := idgen.New()
	require.Equal(t, a.Next(), b.Next())
}
