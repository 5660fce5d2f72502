package buffer

// A Viewport is the screen area a Buffer is shown in. Origin is the screen
// cell of its top-left corner.
type Viewport struct {
	Origin        Point
	Width, Height int
}

func (v Viewport) normalized() Viewport {
	v.Width = max(v.Width, 1)
	v.Height = max(v.Height, 1)
	return v
}

// Viewport returns the current viewport.
func (b *Buffer) Viewport() Viewport { return b.viewport }

// Resize changes the viewport and scrolls so the cursor stays visible.
// Widths and heights below one are treated as one.
func (b *Buffer) Resize(vp Viewport) {
	b.viewport = vp.normalized()
	b.LineUp()
}

// StartLine returns the topmost visible line.
func (b *Buffer) StartLine() int { return b.startLine }

// SetStartLine scrolls so that line n is the topmost visible line.
func (b *Buffer) SetStartLine(n int) {
	b.startLine = clamp(n, 0, len(b.lines)-1)
}

func (b *Buffer) rowsOf(y int) int {
	return b.lines[y].NumLinesNeeded(b.viewport.Width)
}

// Buffer2Screen maps a buffer location to the screen cell it is drawn at,
// given the viewport and the current scroll position. Lines longer than the
// viewport wrap onto as many rows as they need. Locations above the topmost
// visible line map to rows above the viewport.
//
// A cursor at the end of a line that exactly fills its last row is drawn just
// past that row's last column, not at the start of a new row.
func (b *Buffer) Buffer2Screen(p Point) Point {
	w := b.viewport.Width
	row := 0
	if p.Y >= b.startLine {
		for y := b.startLine; y < p.Y && y < len(b.lines); y++ {
			row += b.rowsOf(y)
		}
	} else {
		for y := max(p.Y, 0); y < b.startLine; y++ {
			row -= b.rowsOf(y)
		}
	}
	row += p.X / w
	col := p.X % w
	if col == 0 && p.X > 0 && p.Y >= 0 && p.Y < len(b.lines) && p.X == b.lines[p.Y].Len() {
		row--
		col = w
	}
	return Point{b.viewport.Origin.X + col, b.viewport.Origin.Y + row}
}

// Screen2Buffer is the inverse of Buffer2Screen: it maps a screen cell back
// to the buffer location drawn there. The result is not clamped; cells right
// of a line's text map to columns past its end.
func (b *Buffer) Screen2Buffer(s Point) Point {
	w := b.viewport.Width
	relX := s.X - b.viewport.Origin.X
	relY := s.Y - b.viewport.Origin.Y

	y, acc := b.startLine, 0 // acc is the screen row line y starts on
	if relY >= 0 {
		for y < len(b.lines)-1 && acc+b.rowsOf(y) <= relY {
			acc += b.rowsOf(y)
			y++
		}
	} else {
		for y > 0 && acc > relY {
			y--
			acc -= b.rowsOf(y)
		}
	}
	return Point{(relY-acc)*w + relX, y}
}

// TotalLinesNeeded returns how many screen rows the lines from the topmost
// visible one down to the cursor's line take.
func (b *Buffer) TotalLinesNeeded() int {
	var n int
	for y := b.startLine; y <= b.cursor.Y; y++ {
		n += b.rowsOf(y)
	}
	return n
}

// LineUp scrolls down for as long as the cursor would be below the viewport.
// It never scrolls past the cursor's own line.
func (b *Buffer) LineUp() {
	for b.startLine < b.cursor.Y && b.TotalLinesNeeded() > b.viewport.Height {
		b.startLine++
	}
}

// LineDown scrolls up so the cursor's line is not above the viewport.
func (b *Buffer) LineDown() {
	b.startLine = min(b.startLine, b.cursor.Y)
}

// LineEnd scrolls down just far enough that the cursor's screen row is inside
// the viewport.
func (b *Buffer) LineEnd() {
	for b.startLine < b.cursor.Y {
		rel := b.Buffer2Screen(b.cursor).Y - b.viewport.Origin.Y
		if rel < b.viewport.Height {
			return
		}
		b.startLine++
	}
}

// LineReset scrolls back to the first line.
func (b *Buffer) LineReset() {
	b.startLine = 0
}

// keepCursorVisible applies both scroll corrections, for edits that may move
// the cursor either way.
func (b *Buffer) keepCursorVisible() {
	b.LineDown()
	b.LineUp()
}
