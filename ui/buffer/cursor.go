package buffer

// Cursor movement lives on the Buffer because the cursor needs the lines to
// know where it can go. Every move keeps the cursor inside the text and then
// scrolls so it stays visible: moves towards the end of the buffer use
// LineUp, moves towards the start use LineDown.

// Left moves one rune left, wrapping to the end of the previous line.
func (b *Buffer) Left() {
	cu := &b.cursor
	if cu.X > 0 {
		cu.X--
	} else if cu.Y > 0 { // At the beginning of a line that is not the first...
		// Go to the end of the line above
		cu.Y--
		cu.X = b.lines[cu.Y].Len()
	}
	b.LineDown()
}

// Right moves one rune right, wrapping to the start of the next line.
func (b *Buffer) Right() {
	cu := &b.cursor
	if cu.X < b.lines[cu.Y].Len() {
		cu.X++
	} else if cu.Y < len(b.lines)-1 { // At the end of a line that is not the last...
		cu.Y++
		cu.X = 0
	}
	b.LineUp()
}

// Up moves to the previous line, keeping the column where the line is long
// enough.
func (b *Buffer) Up() {
	cu := &b.cursor
	if cu.Y > 0 {
		cu.Y--
		cu.X = min(cu.X, b.lines[cu.Y].Len())
	}
	b.LineDown()
}

// Down moves to the next line, keeping the column where the line is long
// enough.
func (b *Buffer) Down() {
	cu := &b.cursor
	if cu.Y < len(b.lines)-1 {
		cu.Y++
		cu.X = min(cu.X, b.lines[cu.Y].Len())
	}
	b.LineUp()
}

// StartOfLine moves to column 0.
func (b *Buffer) StartOfLine() {
	b.cursor.X = 0
}

// EndOfLine moves past the last rune of the line.
func (b *Buffer) EndOfLine() {
	b.cursor.X = b.lines[b.cursor.Y].Len()
}

// Begin moves to the start of the buffer and scrolls to the top.
func (b *Buffer) Begin() {
	b.cursor = Point{}
	b.LineReset()
}

// End moves to the end of the last line.
func (b *Buffer) End() {
	b.cursor.Y = len(b.lines) - 1
	b.cursor.X = b.lines[b.cursor.Y].Len()
	b.LineEnd()
}

// verticalJump converts a fraction of the viewport height into rows.
func (b *Buffer) verticalJump(jump float64) int {
	return int(jump * float64(b.viewport.Height))
}

// PageDown moves down by jump viewports (1 is a full page) to column 0.
func (b *Buffer) PageDown(jump float64) {
	b.cursor.X = 0
	b.cursor.Y = min(len(b.lines)-1, b.cursor.Y+b.verticalJump(jump))
	b.LineUp()
}

// PageUp moves up by jump viewports to column 0.
func (b *Buffer) PageUp(jump float64) {
	b.cursor.X = 0
	b.cursor.Y = max(0, b.cursor.Y-b.verticalJump(jump))
	b.LineDown()
}

// NextPara moves to the next empty line that follows a non-empty one, or the
// last line if there is none.
func (b *Buffer) NextPara() {
	cu := &b.cursor
	prevLen := b.lines[cu.Y].Len()
	for cu.Y++; cu.Y < len(b.lines); cu.Y++ {
		if b.lines[cu.Y].Empty() && prevLen != 0 {
			break
		}
		prevLen = b.lines[cu.Y].Len()
	}
	cu.Y = min(cu.Y, len(b.lines)-1)
	cu.X = 0
	b.LineUp()
}

// PreviousPara moves to the previous empty line that precedes a non-empty
// one, or the first line if there is none.
func (b *Buffer) PreviousPara() {
	cu := &b.cursor
	prevLen := b.lines[cu.Y].Len()
	for cu.Y--; cu.Y >= 0; cu.Y-- {
		if b.lines[cu.Y].Empty() && prevLen != 0 {
			break
		}
		prevLen = b.lines[cu.Y].Len()
	}
	cu.Y = max(cu.Y, 0)
	cu.X = 0
	b.LineDown()
}

// NextWord moves to the first rune after the current word, or to the start
// of the next line when already at the end of one.
func (b *Buffer) NextWord() {
	cu := &b.cursor
	line := b.lines[cu.Y]
	if cu.X >= line.Len() {
		if cu.Y >= len(b.lines)-1 { // Nowhere to go
			return
		}
		cu.Y++
		cu.X = 0
	} else {
		cu.X = line.FindFirstNotOf(b.wordChars, cu.X+1)
	}
	b.LineUp()
}

// PreviousWord moves to the last rune before the current word, or to the end
// of the previous line when already at the start of one.
func (b *Buffer) PreviousWord() {
	cu := &b.cursor
	if cu.X <= 0 {
		if cu.Y <= 0 {
			return
		}
		cu.Y--
		cu.X = b.lines[cu.Y].Len()
	} else {
		cu.X = b.lines[cu.Y].FindLastNotOf(b.wordChars, cu.X-1)
	}
	b.LineDown()
}

// MoveTo moves the cursor to p, clamped into the text, and scrolls as little
// as needed to keep it in the viewport.
func (b *Buffer) MoveTo(p Point) {
	b.SetCursor(p)
	b.keepCursorVisible()
}

// GotoLine moves to the start of line n, clamped to the buffer, and scrolls so
// that it is about half way down the viewport.
func (b *Buffer) GotoLine(n int) {
	b.cursor.Y = clamp(n, 0, len(b.lines)-1)
	b.cursor.X = 0
	b.startLine = clamp(n-b.viewport.Height/2, 0, b.cursor.Y)
}
