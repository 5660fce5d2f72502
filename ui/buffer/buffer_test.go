package buffer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// loadFile returns a Buffer loaded from testdata/name.
func loadFile(t *testing.T, name string, opts ...Option) *Buffer {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	b := New(append([]Option{WithName(name)}, opts...)...)
	require.NoError(t, b.LoadFrom(f, 0))
	return b
}

func TestNewBuffer(t *testing.T) {
	b := New()
	require.Equal(t, 1, b.Length())
	require.Equal(t, "", b.LineString(0))
	require.Equal(t, Point{}, b.Cursor())
	require.False(t, b.RegionActive())
	require.False(t, b.IsModified())
	require.Equal(t, DefaultViewport, b.Viewport())
	require.Equal(t, DefaultWordChars, b.WordChars())
}

func TestLoadMultiline(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	require.Equal(t, []string{"* Hello", "Testing123", "for multi-line buffer!", ""}, b.Strings())
	require.Equal(t, []string{"* Hello", "Testing123", "for multi-line buffer!"}, b.Lines())
	require.Equal(t, 4, b.Length())
	require.False(t, b.IsModified())
	require.Equal(t, "multiline.txt", b.Name())
}

func TestLoadRow(t *testing.T) {
	b := New()
	b.Load([]string{"a", "b", "c"}, 2)
	require.Equal(t, Point{0, 2}, b.Cursor())
	require.Equal(t, 2, b.StartLine())

	b.Load([]string{"a"}, 40)
	require.Equal(t, Point{0, 1}, b.Cursor())
}

func TestLoadFromCRLF(t *testing.T) {
	b := New()
	require.NoError(t, b.LoadFrom(strings.NewReader("one\r\ntwo\r\nthree"), 0))
	require.Equal(t, []string{"one", "two", "three", ""}, b.Strings())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLoadFromError(t *testing.T) {
	b := New(WithName("x"))
	err := b.LoadFrom(failingReader{}, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk on fire")
	require.Contains(t, err.Error(), `"x"`)
}

func TestSaveRoundTrip(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "multiline.txt"))
	require.NoError(t, err)

	b := loadFile(t, "multiline.txt")
	b.InsertRune('x')
	require.True(t, b.IsModified())
	b.Remove()

	var out bytes.Buffer
	require.NoError(t, b.SaveTo(&out))
	require.Equal(t, string(data), out.String())
	require.False(t, b.IsModified())
}

func TestSaveKeepsNonEmptyLastLine(t *testing.T) {
	b := NewFromLines([]string{"a"})
	b.End()
	b.InsertRune('z') // Last line is now "z"
	var out bytes.Buffer
	require.NoError(t, b.SaveTo(&out))
	require.Equal(t, "a\nz\n", out.String())
}

func TestClear(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{3, 1})
	b.StartRegion()
	b.InsertRune('q')
	b.Clear()
	require.Equal(t, 1, b.Length())
	require.Equal(t, Point{}, b.Cursor())
	require.False(t, b.RegionActive())
	require.False(t, b.History().CanUndo())
	require.Zero(t, b.StartLine())
}

func TestCharAt(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	require.Equal(t, '*', b.CharAt(Point{0, 0}))
	require.Equal(t, 'T', b.CharAt(Point{0, 1}))
	require.Equal(t, ' ', b.CharAt(Point{7, 0}))
	require.Equal(t, ' ', b.CharAt(Point{0, 10}))
	require.Equal(t, ' ', b.CharAt(Point{-1, 0}))
}

func TestSetCursorClamps(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{100, 1})
	require.Equal(t, Point{10, 1}, b.Cursor())
	b.SetCursor(Point{-3, -3})
	require.Equal(t, Point{0, 0}, b.Cursor())
	b.SetCursor(Point{2, 99})
	require.Equal(t, Point{0, 3}, b.Cursor())
}

func TestLineAccessors(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	require.Equal(t, 10, b.LengthOf(1))
	require.Zero(t, b.LengthOf(-1))
	require.Zero(t, b.LengthOf(4))
	require.Equal(t, "", b.LineString(9))
	require.Equal(t, "Testing123", b.At(1).String())
	require.Panics(t, func() { b.At(4) })
}

func TestRegion(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	_, active := b.Region()
	require.False(t, active)

	b.SetCursor(Point{2, 0})
	b.StartRegion()
	p, active := b.Region()
	require.True(t, active)
	require.Equal(t, Point{2, 0}, p)

	b.SetRegion(Point{50, 1})
	p, _ = b.Region()
	require.Equal(t, Point{10, 1}, p)

	b.StopRegion()
	require.False(t, b.RegionActive())
}

func TestInsertRune(t *testing.T) {
	b := NewFromLines([]string{"ac"})
	b.SetCursor(Point{1, 0})
	b.InsertRune('b')
	require.Equal(t, "abc", b.LineString(0))
	require.Equal(t, Point{2, 0}, b.Cursor())
	require.True(t, b.IsModified())
	require.Equal(t, 1, b.History().UndoLen())
}

func TestInsertNewline(t *testing.T) {
	b := NewFromLines([]string{"Hello World!"})
	b.SetCursor(Point{6, 0})
	b.InsertRune('\n')
	require.Equal(t, []string{"Hello ", "World!", ""}, b.Strings())
	require.Equal(t, Point{0, 1}, b.Cursor())

	require.True(t, b.Undo())
	require.Equal(t, []string{"Hello World!", ""}, b.Strings())
	require.Equal(t, Point{6, 0}, b.Cursor())
}

func TestInsertText(t *testing.T) {
	b := NewFromLines([]string{"ad"})
	b.SetCursor(Point{1, 0})
	b.Insert("b\r\nc")
	require.Equal(t, []string{"ab", "cd", ""}, b.Strings())
	require.Equal(t, Point{1, 1}, b.Cursor())
	require.Equal(t, 1, b.History().UndoLen())

	require.True(t, b.Undo())
	require.Equal(t, []string{"ad", ""}, b.Strings())
	require.Equal(t, Point{1, 0}, b.Cursor())

	require.True(t, b.Redo())
	require.Equal(t, []string{"ab", "cd", ""}, b.Strings())
	require.Equal(t, Point{1, 1}, b.Cursor())

	b.Insert("")
	require.Equal(t, 1, b.History().UndoLen())
}

func TestRemove(t *testing.T) {
	b := loadFile(t, "multiline.txt")

	// Start of buffer: nothing happens
	require.Equal(t, "", b.Remove())
	require.False(t, b.IsModified())

	b.SetCursor(Point{3, 1})
	require.Equal(t, "s", b.Remove())
	require.Equal(t, "Teting123", b.LineString(1))
	require.Equal(t, Point{2, 1}, b.Cursor())

	b.SetCursor(Point{0, 1})
	require.Equal(t, "\n", b.Remove())
	require.Equal(t, "* HelloTeting123", b.LineString(0))
	require.Equal(t, Point{7, 0}, b.Cursor())
	require.Equal(t, 3, b.Length())

	require.True(t, b.Undo())
	require.Equal(t, "* Hello", b.LineString(0))
	require.Equal(t, "Teting123", b.LineString(1))
	require.Equal(t, Point{0, 1}, b.Cursor())

	require.True(t, b.Undo())
	require.Equal(t, "Testing123", b.LineString(1))
	require.Equal(t, Point{3, 1}, b.Cursor())
	require.False(t, b.Undo())
}

func TestRemoveCurrent(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	require.Equal(t, "*", b.RemoveCurrent())
	require.Equal(t, " Hello", b.LineString(0))
	require.Equal(t, Point{0, 0}, b.Cursor())

	b.EndOfLine()
	require.Equal(t, "\n", b.RemoveCurrent())
	require.Equal(t, " HelloTesting123", b.LineString(0))
	require.Equal(t, Point{6, 0}, b.Cursor())

	// End of the last line
	b.End()
	require.Equal(t, "", b.RemoveCurrent())

	b.SetCursor(Point{6, 0})
	for b.Undo() {
	}
	require.Equal(t, []string{"* Hello", "Testing123", "for multi-line buffer!", ""}, b.Strings())
	require.Equal(t, Point{0, 0}, b.Cursor())
}

func TestRemoveWithRegion(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{2, 1})
	b.StartRegion()
	b.SetCursor(Point{7, 1})
	require.Equal(t, "sting", b.Remove())
	require.Equal(t, "Te123", b.LineString(1))
	require.False(t, b.RegionActive())
	require.Equal(t, Point{2, 1}, b.Cursor())

	b.StartRegion()
	b.SetCursor(Point{0, 1})
	require.Equal(t, "Te", b.RemoveCurrent())
	require.Equal(t, "123", b.LineString(1))
}

func TestRegionAsString(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	require.Equal(t, "", b.RegionAsString())

	b.StartRegion()
	b.SetCursor(Point{4, 1})
	require.Equal(t, "* Hello\nTest", b.RegionAsString())

	// Anchor after the cursor gives the same text
	b.SetRegion(Point{4, 1})
	b.SetCursor(Point{0, 0})
	require.Equal(t, "* Hello\nTest", b.RegionAsString())

	b.SetRegion(Point{3, 2})
	b.SetCursor(Point{0, 2})
	require.Equal(t, "for", b.RegionAsString())

	b.SetRegion(Point{2, 0})
	b.SetCursor(Point{3, 2})
	require.Equal(t, "Hello\nTesting123\nfor", b.RegionAsString())
}

func TestRemoveRegionCrossRow(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{3, 2})
	del := b.RemoveRegion(Point{3, 2}, Point{2, 0})
	require.Equal(t, "Hello\nTesting123\nfor", del)
	require.Equal(t, []string{"*  multi-line buffer!", ""}, b.Strings())
	require.Equal(t, Point{2, 0}, b.Cursor())

	require.True(t, b.Undo())
	require.Equal(t, []string{"* Hello", "Testing123", "for multi-line buffer!", ""}, b.Strings())
	require.Equal(t, Point{3, 2}, b.Cursor())

	require.True(t, b.Redo())
	require.Equal(t, []string{"*  multi-line buffer!", ""}, b.Strings())
	require.Equal(t, Point{2, 0}, b.Cursor())
}

func TestRemoveRegionEmpty(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{1, 1})
	require.Equal(t, "", b.RemoveRegion(Point{4, 2}, Point{4, 2}))
	require.Equal(t, Point{1, 1}, b.Cursor())
	require.False(t, b.IsModified())
}

func TestRemoveAndCopy(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	require.Equal(t, "", b.RemoveAndCopy())

	b.StartRegion()
	b.SetCursor(Point{4, 1})
	require.Equal(t, "* Hello\nTest", b.RemoveAndCopy())
	require.False(t, b.RegionActive())
	require.Equal(t, []string{"ing123", "for multi-line buffer!", ""}, b.Strings())
	require.Equal(t, Point{0, 0}, b.Cursor())
}

func TestRemoveAndCopyUndoRestoresCursor(t *testing.T) {
	b := NewFromLines([]string{"hello world"})
	b.SetRegion(Point{8, 0})
	b.SetCursor(Point{2, 0})
	require.Equal(t, "llo wo", b.RemoveAndCopy())
	require.Equal(t, "herld", b.LineString(0))
	require.Equal(t, Point{2, 0}, b.Cursor())

	require.True(t, b.Undo())
	require.Equal(t, "hello world", b.LineString(0))
	require.Equal(t, Point{2, 0}, b.Cursor())

	require.True(t, b.Redo())
	require.Equal(t, "herld", b.LineString(0))
	require.Equal(t, Point{2, 0}, b.Cursor())

	// Anchor before the cursor: undo puts the cursor back at the far end
	b = NewFromLines([]string{"hello world"})
	b.SetRegion(Point{2, 0})
	b.SetCursor(Point{8, 0})
	require.Equal(t, "llo wo", b.RemoveAndCopy())
	require.True(t, b.Undo())
	require.Equal(t, Point{8, 0}, b.Cursor())
}

func TestKillLineTwice(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{0, 2})

	require.Equal(t, "for multi-line buffer!", b.KillLine())
	require.Equal(t, 4, b.Length())
	require.Equal(t, "", b.LineString(2))

	require.Equal(t, "\n", b.KillLine())
	require.Equal(t, 3, b.Length())
	require.Equal(t, []string{"* Hello", "Testing123", ""}, b.Strings())

	require.True(t, b.Undo())
	require.Equal(t, 4, b.Length())
	require.True(t, b.Undo())
	require.Equal(t, "for multi-line buffer!", b.LineString(2))
	require.Equal(t, Point{0, 2}, b.Cursor())

	require.True(t, b.Redo())
	require.Equal(t, "", b.LineString(2))
	require.True(t, b.Redo())
	require.Equal(t, 3, b.Length())
}

func TestKillLineAtEnd(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.End()
	require.Equal(t, "", b.KillLine())
	require.False(t, b.IsModified())
	require.False(t, b.History().CanUndo())
}

func TestKillLineMidLine(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{4, 1})
	require.Equal(t, "ing123", b.KillLine())
	require.Equal(t, "Test", b.LineString(1))
	require.Equal(t, Point{4, 1}, b.Cursor())
}

func TestUndoRedoEmpty(t *testing.T) {
	b := New()
	require.False(t, b.Undo())
	require.False(t, b.Redo())
}

func TestUndoRedoSequence(t *testing.T) {
	b := New()
	for _, r := range "hi\nyo" {
		b.InsertRune(r)
	}
	require.Equal(t, []string{"hi", "yo"}, b.Strings())
	require.Equal(t, 5, b.History().UndoLen())

	for range 5 {
		require.True(t, b.Undo())
	}
	require.Equal(t, []string{""}, b.Strings())
	require.Equal(t, Point{}, b.Cursor())
	require.False(t, b.Undo())

	for range 5 {
		require.True(t, b.Redo())
	}
	require.Equal(t, []string{"hi", "yo"}, b.Strings())
	require.Equal(t, Point{2, 1}, b.Cursor())
}

func TestReadOnly(t *testing.T) {
	b := loadFile(t, "multiline.txt")
	b.SetCursor(Point{2, 0})
	b.InsertRune('x')
	b.SetReadOnly(true)
	require.True(t, b.IsReadOnly())

	before := b.Strings()
	b.InsertRune('y')
	b.Insert("zz")
	require.Equal(t, "", b.Remove())
	require.Equal(t, "", b.RemoveCurrent())
	require.Equal(t, "", b.KillLine())
	require.Equal(t, "", b.RemoveRegion(Point{0, 0}, Point{0, 2}))
	require.False(t, b.Undo())
	b.StartRegion()
	b.SetCursor(Point{0, 2})
	b.SortRegion()
	require.Nil(t, b.KeepRemoveLines(MatchFunc(func(string) bool { return true }), false))
	b.Indent()
	require.Equal(t, before, b.Strings())

	b.SetReadOnly(false)
	require.True(t, b.Undo())
	require.Equal(t, "* Hello", b.LineString(0))
}

func TestOptions(t *testing.T) {
	vp := Viewport{Origin: Point{1, 2}, Width: 0, Height: -3}
	b := New(WithName("n"), WithViewport(vp), WithWordChars("ab"), WithIndentPolicy(NoIndent))
	require.Equal(t, "n", b.Name())
	require.Equal(t, Viewport{Origin: Point{1, 2}, Width: 1, Height: 1}, b.Viewport())
	require.Equal(t, "ab", b.WordChars())

	b = New(WithWordChars(""))
	require.Equal(t, DefaultWordChars, b.WordChars())
}
