package buffer

import (
	"strings"

	"github.com/fivemoreminix/tedit/pkg/log"
)

// InsertRune types r at the cursor. A newline splits the line at the cursor
// and moves to the start of the new line. One history entry is recorded.
func (b *Buffer) InsertRune(r rune) {
	if !b.editable() {
		return
	}
	before := b.cursor
	b.insertRune(r)
	b.record(OpData{Before: before, After: b.cursor, Text: string(r), Kind: OpInsert, Cursor: before})
	b.LineUp()
}

// Insert types text at the cursor, as one undoable edit. Windows line endings
// are treated as plain newlines.
func (b *Buffer) Insert(text string) {
	if !b.editable() {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return
	}
	before := b.cursor
	b.insertText(text)
	b.record(OpData{Before: before, After: b.cursor, Text: text, Kind: OpInsert, Cursor: before})
	b.LineUp()
}

// Remove deletes backwards from the cursor, like backspace, and returns what
// was deleted. At the start of a line the line is joined onto the previous
// one. With an active region the region is deleted instead.
func (b *Buffer) Remove() string {
	if !b.editable() {
		return ""
	}
	if b.RegionActive() {
		return b.RemoveAndCopy()
	}
	after := b.cursor
	del := b.removePrevChar()
	if del == "" {
		return ""
	}
	b.record(OpData{Before: b.cursor, After: after, Text: del, Kind: OpDelete, Cursor: after})
	b.LineDown()
	return del
}

// RemoveCurrent deletes the rune under the cursor, like the delete key, and
// returns it. At the end of a line the next line is joined onto it. With an
// active region the region is deleted instead.
func (b *Buffer) RemoveCurrent() string {
	if !b.editable() {
		return ""
	}
	if b.RegionActive() {
		return b.RemoveAndCopy()
	}
	del := b.removeCurrentChar()
	if del == "" {
		return ""
	}
	b.record(OpData{Before: b.cursor, After: b.cursor, Text: del, Kind: OpDelete, Cursor: b.cursor})
	return del
}

// RemoveRegion deletes the text between start and end, in either order, and
// returns it. Rows are joined with "\n" in the result. The cursor is left
// where the deleted text began.
func (b *Buffer) RemoveRegion(start, end Point) string {
	if !b.editable() {
		return ""
	}
	cu := b.cursor
	small, big, _ := Find(b.clampPoint(start), b.clampPoint(end))
	del := b.removeRange(small, big)
	if del == "" {
		return ""
	}
	b.cursor = small
	b.record(OpData{Before: small, After: big, Text: del, Kind: OpDelete, Cursor: cu})
	b.LineDown()
	return del
}

// RemoveAndCopy deletes the active region, drops it, and returns the deleted
// text. Without an active region it does nothing.
func (b *Buffer) RemoveAndCopy() string {
	if !b.editable() || !b.RegionActive() {
		return ""
	}
	del := b.RemoveRegion(b.region, b.cursor)
	b.StopRegion()
	return del
}

// KillLine deletes from the cursor to the end of its line and returns the
// deleted text. At the end of a line the next line is joined instead and
// "\n" is returned. At the end of the last line nothing happens.
func (b *Buffer) KillLine() string {
	if !b.editable() {
		return ""
	}
	cu := b.cursor
	del := b.killLine()
	if del == "" {
		return ""
	}
	b.record(OpData{Before: cu, After: cu, Text: del, Kind: OpKillLine, Cursor: cu})
	return del
}

// RegionAsString returns the text of the active region, in the same layout
// RemoveRegion would return it. Without an active region it returns "".
func (b *Buffer) RegionAsString() string {
	if !b.RegionActive() {
		return ""
	}
	small, big, _ := Find(b.clampPoint(b.region), b.cursor)
	return b.textRange(small, big)
}

// Undo reverts the most recent edit. It returns false if there was nothing
// to undo.
func (b *Buffer) Undo() bool {
	if !b.editable() {
		return false
	}
	op, ok := b.history.undo.Pop()
	if !ok {
		return false
	}
	switch op.Kind {
	case OpInsert:
		b.removeRange(op.Before, op.Before.Advance(op.Text))
	default:
		b.cursor = op.Before
		b.insertText(op.Text)
	}
	b.cursor = b.clampPoint(op.Cursor)
	b.history.redo.Push(op)
	b.modified = true
	b.StopRegion()
	b.keepCursorVisible()
	log.Debug(log.CatHistory, "undo", "kind", op.Kind, "before", op.Before, "after", op.After)
	return true
}

// Redo applies the most recently undone edit again. It returns false if there
// was nothing to redo.
func (b *Buffer) Redo() bool {
	if !b.editable() {
		return false
	}
	op, ok := b.history.redo.Pop()
	if !ok {
		return false
	}
	switch op.Kind {
	case OpInsert:
		b.cursor = op.Before
		b.insertText(op.Text)
	default:
		b.removeRange(op.Before, op.Before.Advance(op.Text))
	}
	b.cursor = b.clampPoint(op.CursorAfter)
	b.history.undo.Push(op)
	b.modified = true
	b.StopRegion()
	b.keepCursorVisible()
	log.Debug(log.CatHistory, "redo", "kind", op.Kind, "before", op.Before, "after", op.After)
	return true
}

// record marks the buffer modified and pushes a fresh edit, which drops the
// redo stack. It is called once the edit is made, so the cursor is where the
// edit left it.
func (b *Buffer) record(op OpData) {
	op.CursorAfter = b.cursor
	b.modified = true
	b.history.Push(op)
}

func (b *Buffer) insertRune(r rune) {
	if r == '\n' {
		next := b.lines[b.cursor.Y].Split(b.cursor.X)
		b.insertLine(b.cursor.Y+1, next)
		b.cursor.Y++
		b.cursor.X = 0
		return
	}
	b.lines[b.cursor.Y].Insert(b.cursor.X, r)
	b.cursor.X++
}

func (b *Buffer) insertText(text string) {
	for _, r := range text {
		b.insertRune(r)
	}
}

func (b *Buffer) removePrevChar() string {
	cu := &b.cursor
	switch {
	case cu.X > 0:
		cu.X--
		return b.lines[cu.Y].Erase(cu.X, 1)
	case cu.Y > 0:
		prev := b.lines[cu.Y-1]
		cu.X = prev.Len()
		prev.Join(b.lines[cu.Y])
		b.deleteLines(cu.Y, 1)
		cu.Y--
		return "\n"
	}
	return ""
}

func (b *Buffer) removeCurrentChar() string {
	cu := b.cursor
	line := b.lines[cu.Y]
	if cu.X < line.Len() {
		return line.Erase(cu.X, 1)
	}
	if cu.Y >= len(b.lines)-1 {
		return ""
	}
	line.Join(b.lines[cu.Y+1])
	b.deleteLines(cu.Y+1, 1)
	return "\n"
}

func (b *Buffer) killLine() string {
	cu := b.cursor
	line := b.lines[cu.Y]
	if cu.X < line.Len() {
		return line.Erase(cu.X, line.Len()-cu.X)
	}
	return b.removeCurrentChar()
}

// textRange returns the text from small up to big. small must not come after
// big and both must be inside the text.
func (b *Buffer) textRange(small, big Point) string {
	first := b.lines[small.Y].String()
	if small.Y == big.Y {
		return string([]rune(first)[small.X:big.X])
	}
	var sb strings.Builder
	sb.WriteString(string([]rune(first)[small.X:]))
	sb.WriteByte('\n')
	for y := small.Y + 1; y < big.Y; y++ {
		sb.WriteString(b.lines[y].String())
		sb.WriteByte('\n')
	}
	sb.WriteString(string([]rune(b.lines[big.Y].String())[:big.X]))
	return sb.String()
}

// removeRange deletes the text from small up to big and returns it, in the
// layout of textRange. The cursor is not touched and nothing is recorded.
func (b *Buffer) removeRange(small, big Point) string {
	if !small.Less(big) {
		return ""
	}
	del := b.textRange(small, big)
	first := b.lines[small.Y]
	if small.Y == big.Y {
		first.Erase(small.X, big.X-small.X)
		return del
	}
	first.Erase(small.X, first.Len()-small.X)
	last := b.lines[big.Y]
	last.Erase(0, big.X)
	first.Join(last)
	b.deleteLines(small.Y+1, big.Y-small.Y)
	return del
}
