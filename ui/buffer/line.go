package buffer

import (
	"strings"
)

// A Line holds the text of one line of a Buffer, without its delimiter. All
// indexes are rune indexes. Out of range indexes never panic: inserts past the
// end append, and erases or splits past the end do nothing.
type Line struct {
	text []rune
}

// NewLine returns a Line holding a copy of s.
func NewLine(s string) *Line {
	return &Line{text: []rune(s)}
}

// Len returns the number of runes in the line.
func (l *Line) Len() int {
	return len(l.text)
}

// Empty reports whether the line has no runes.
func (l *Line) Empty() bool {
	return len(l.text) == 0
}

func (l *Line) String() string {
	return string(l.text)
}

// At returns the rune at idx. It panics if idx is out of range, like indexing
// a slice would; use Buffer.CharAt when unsure.
func (l *Line) At(idx int) rune {
	return l.text[idx]
}

// Clear empties the line.
func (l *Line) Clear() {
	l.text = l.text[:0]
}

// Append adds s to the end of the line.
func (l *Line) Append(s string) {
	l.text = append(l.text, []rune(s)...)
}

// Insert places r before the rune at idx. If idx is at or past the end, r is
// appended instead.
func (l *Line) Insert(idx int, r rune) {
	l.insertRunes(idx, []rune{r})
}

// InsertString places s before the rune at idx, appending when idx is at or
// past the end.
func (l *Line) InsertString(idx int, s string) {
	l.insertRunes(idx, []rune(s))
}

// Prepend adds count copies of r at the start of the line.
func (l *Line) Prepend(r rune, count int) {
	if count <= 0 {
		return
	}
	l.insertRunes(0, []rune(strings.Repeat(string(r), count)))
}

func (l *Line) insertRunes(idx int, rs []rune) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(l.text) {
		l.text = append(l.text, rs...)
		return
	}
	l.text = append(l.text[:idx], append(rs, l.text[idx:]...)...)
}

// Erase removes count runes starting at idx and returns them. Nothing is
// removed, and an empty string is returned, when the range does not fit inside
// the line.
func (l *Line) Erase(idx, count int) string {
	if idx < 0 || count <= 0 || idx >= len(l.text) || idx+count > len(l.text) {
		return ""
	}
	removed := string(l.text[idx : idx+count])
	l.text = append(l.text[:idx], l.text[idx+count:]...)
	return removed
}

// Split moves everything from idx to the end into a new Line, truncating l.
// When idx is out of range l is untouched and the new Line is empty.
func (l *Line) Split(idx int) *Line {
	other := &Line{}
	if idx < 0 || idx >= len(l.text) {
		return other
	}
	other.Append(l.Erase(idx, len(l.text)-idx))
	return other
}

// Join appends the text of other to l. Joining an empty line leaves l as is.
func (l *Line) Join(other *Line) {
	if other == nil || other.Empty() {
		return
	}
	l.text = append(l.text, other.text...)
}

// NumLinesNeeded returns how many screen rows the line takes when wrapped at
// width columns. An empty line still takes one row.
func (l *Line) NumLinesNeeded(width int) int {
	if width < 1 {
		width = 1
	}
	n := len(l.text)
	if n == 0 {
		return 1
	}
	return (n + width - 1) / width
}

// IndentSize returns the number of leading spaces.
func (l *Line) IndentSize() int {
	var n int
	for n < len(l.text) && l.text[n] == ' ' {
		n++
	}
	return n
}

// FindFirstNotOf returns the index of the first rune at or after pos that is
// not in chars. If there is none the line length is returned, so the result
// is always a valid cursor column.
func (l *Line) FindFirstNotOf(chars string, pos int) int {
	if pos < 0 {
		pos = 0
	}
	for i := pos; i < len(l.text); i++ {
		if !strings.ContainsRune(chars, l.text[i]) {
			return i
		}
	}
	return len(l.text)
}

// FindLastNotOf returns the index of the last rune at or before pos that is
// not in chars, or 0 if there is none.
func (l *Line) FindLastNotOf(chars string, pos int) int {
	if pos >= len(l.text) {
		pos = len(l.text) - 1
	}
	for i := pos; i >= 0; i-- {
		if !strings.ContainsRune(chars, l.text[i]) {
			return i
		}
	}
	return 0
}

// lineLess orders lines for sorting. Empty lines come first, everything else
// compares by code point.
func lineLess(a, b *Line) bool {
	if a.Empty() {
		return !b.Empty()
	}
	if b.Empty() {
		return false
	}
	return a.String() < b.String()
}
