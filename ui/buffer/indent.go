package buffer

import (
	"strings"

	"github.com/fivemoreminix/tedit/pkg/pattern"
)

// An IndentPolicy decides how far a line should move. IndentDelta returns the
// number of columns line should gain (positive) or lose (negative).
type IndentPolicy interface {
	IndentDelta(b *Buffer, line int) int
}

// IndentFunc adapts an ordinary function to an IndentPolicy.
type IndentFunc func(b *Buffer, line int) int

func (f IndentFunc) IndentDelta(b *Buffer, line int) int { return f(b, line) }

// NoIndent never moves a line.
var NoIndent IndentPolicy = IndentFunc(func(*Buffer, int) int { return 0 })

// TextIndent aligns a line with the indentation of the line above it.
var TextIndent IndentPolicy = IndentFunc(textIndent)

// CppIndent aligns like TextIndent, except that preprocessor lines sit at
// column 0 and the body of a namespace is not indented.
var CppIndent IndentPolicy = IndentFunc(cppIndent)

var namespaceOpen = pattern.MustCompile(`namespace .*?{`, false)

func indentable(b *Buffer, line int) bool {
	return 0 < line && line < b.Length()
}

func textIndent(b *Buffer, line int) int {
	if !indentable(b, line) {
		return 0
	}
	return b.At(line-1).IndentSize() - b.At(line).IndentSize()
}

func cppIndent(b *Buffer, line int) int {
	if !indentable(b, line) {
		return 0
	}
	prev, curr := b.At(line-1).String(), b.At(line).String()
	prevInd := b.At(line - 1).IndentSize()
	if namespaceOpen.IsMatch(prev) || strings.HasPrefix(prev, "#") {
		prevInd = 0
	}
	currInd := b.At(line).IndentSize()
	if strings.HasPrefix(curr, "#") {
		return -currInd
	}
	return prevInd - currInd
}

// Indent moves the cursor's line by the amount the indent policy asks for.
// Spaces are added at, or leading characters removed from, the start of the
// line, and the cursor column moves with the text. The change is undoable.
func (b *Buffer) Indent() {
	if !b.editable() || b.indent == nil {
		return
	}
	cu := b.cursor
	y := cu.Y
	count := b.indent.IndentDelta(b, y)
	line := b.lines[y]
	switch {
	case count > 0:
		pad := strings.Repeat(" ", count)
		line.Prepend(' ', count)
		b.cursor.X = min(b.cursor.X+count, line.Len())
		b.record(OpData{Before: Point{0, y}, After: Point{count, y}, Text: pad, Kind: OpInsert, Cursor: cu})
	case count < 0:
		del := line.Erase(0, min(-count, line.Len()))
		if del == "" {
			return
		}
		b.cursor.X = max(b.cursor.X+count, 0)
		b.record(OpData{Before: Point{0, y}, After: Point{len([]rune(del)), y}, Text: del, Kind: OpDelete, Cursor: cu})
	}
}
