package pagecache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRequiresCurrentVersion(t *testing.T) {
	c := New()

	_, ok := c.Get(1, 1)
	require.False(t, ok)

	c.Put(1, 3, "<h1>Início</h1>")

	html, ok := c.Get(1, 3)
	require.True(t, ok)
	require.EqualValues(t, "<h1>Início</h1>", html)

	// A bumped version makes the entry a miss until re-rendered.
	_, ok = c.Get(1, 4)
	require.False(t, ok)
}

func TestPutKeepsNewerEntry(t *testing.T) {
	c := New()
	c.Put(1, 5, "novo")
	c.Put(1, 4, "velho")

	html, ok := c.Get(1, 5)
	require.True(t, ok)
	require.EqualValues(t, "novo", html)
}

func TestInvalidate(t *testing.T) {
	c := New()
	c.Put(1, 2, "<p>x</p>")
	c.Invalidate(1)

	_, ok := c.Get(1, 2)
	require.False(t, ok)
}
