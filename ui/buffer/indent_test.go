package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextIndent(t *testing.T) {
	b := NewFromLines([]string{"    foo", "bar"}, WithIndentPolicy(TextIndent))
	require.Equal(t, 0, TextIndent.IndentDelta(b, 0))
	require.Equal(t, 0, TextIndent.IndentDelta(b, 3))
	require.Equal(t, 4, TextIndent.IndentDelta(b, 1))

	b.SetCursor(Point{1, 1})
	b.Indent()
	require.Equal(t, "    bar", b.LineString(1))
	require.Equal(t, Point{5, 1}, b.Cursor())
	require.True(t, b.IsModified())

	b.Indent() // Already aligned
	require.Equal(t, "    bar", b.LineString(1))

	require.True(t, b.Undo())
	require.Equal(t, "bar", b.LineString(1))
	require.Equal(t, Point{1, 1}, b.Cursor())

	require.True(t, b.Redo())
	require.Equal(t, "    bar", b.LineString(1))
	require.Equal(t, Point{5, 1}, b.Cursor())
}

func TestIndentUndoMidLine(t *testing.T) {
	b := NewFromLines([]string{"    foo", "bar"}, WithIndentPolicy(TextIndent))
	b.SetCursor(Point{2, 1})
	b.Indent()
	require.Equal(t, Point{6, 1}, b.Cursor())

	require.True(t, b.Undo())
	require.Equal(t, "bar", b.LineString(1))
	require.Equal(t, Point{2, 1}, b.Cursor())
}

func TestTextDedent(t *testing.T) {
	b := NewFromLines([]string{"foo", "   bar"}, WithIndentPolicy(TextIndent))
	b.SetCursor(Point{2, 1})
	b.Indent()
	require.Equal(t, "bar", b.LineString(1))
	require.Equal(t, Point{0, 1}, b.Cursor())

	require.True(t, b.Undo())
	require.Equal(t, "   bar", b.LineString(1))
	require.Equal(t, Point{2, 1}, b.Cursor())
	require.True(t, b.Redo())
	require.Equal(t, "bar", b.LineString(1))
	require.Equal(t, Point{0, 1}, b.Cursor())
}

func TestCppIndent(t *testing.T) {
	tests := []struct {
		prev, curr string
		want       int
	}{
		{"namespace demo {", "    int a;", -4},
		{"#include <x>", "  y", -2},
		{"  foo", "#define X", 0},
		{"  foo", "   #define X", -1},
		{"    int a;", "b", 4},
		{"  x", "  y", 0},
	}
	for _, tt := range tests {
		b := NewFromLines([]string{tt.prev, tt.curr})
		require.Equal(t, tt.want, CppIndent.IndentDelta(b, 1), "%q after %q", tt.curr, tt.prev)
	}
	require.Equal(t, 0, CppIndent.IndentDelta(NewFromLines([]string{"  a"}), 0))
}

func TestIndentPolicies(t *testing.T) {
	b := NewFromLines([]string{"    a", "b"})
	b.SetCursor(Point{0, 1})
	b.Indent() // No policy
	require.Equal(t, "b", b.LineString(1))

	b.SetIndentPolicy(NoIndent)
	b.Indent()
	require.Equal(t, "b", b.LineString(1))

	b.SetIndentPolicy(IndentFunc(func(*Buffer, int) int { return 2 }))
	b.Indent()
	require.Equal(t, "  b", b.LineString(1))
	require.Equal(t, Point{2, 1}, b.Cursor())

	b.SetIndentPolicy(IndentFunc(func(*Buffer, int) int { return -10 }))
	b.Indent() // Removes no more than the line holds
	require.Equal(t, "", b.LineString(1))
	require.Equal(t, Point{0, 1}, b.Cursor())
}
