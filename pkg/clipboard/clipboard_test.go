package clipboard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternal(t *testing.T) {
	c, err := New(Internal)
	require.NoError(t, err)
	require.Equal(t, Internal, c.Method())

	s, err := c.Read()
	require.NoError(t, err)
	require.Empty(t, s)

	require.NoError(t, c.Write("hello"))
	require.NoError(t, c.Append(" world"))
	require.NoError(t, c.Append("\n"))
	s, err = c.Read()
	require.NoError(t, err)
	require.Equal(t, "hello world\n", s)

	require.NoError(t, c.Write("x"))
	s, _ = c.Read()
	require.Equal(t, "x", s)
}

func TestUnknownMethod(t *testing.T) {
	_, err := New(Method(7))
	require.ErrorIs(t, err, ErrUnknownMethod)

	_, err = ParseMethod("primary")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{External, Internal} {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	got, err := ParseMethod("")
	require.NoError(t, err)
	require.Equal(t, External, got)
	require.Equal(t, "Method(1)", Method(1).String())
}

func TestConcurrentAppend(t *testing.T) {
	c, _ := New(Internal)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Append("a")
		}()
	}
	wg.Wait()
	s, _ := c.Read()
	require.Len(t, s, 50)
}
