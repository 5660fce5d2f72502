package buffer

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

// A Document is a flat, read-only snapshot of a Buffer's text as it would be
// saved: every line followed by '\n'. It answers byte offset questions that
// the line list cannot, such as where a location falls in the saved file.
type Document struct {
	node *rope.Node
}

// NewDocument returns a Document holding a copy of text.
func NewDocument(text []byte) *Document {
	return &Document{node: rope.New(append([]byte(nil), text...))}
}

// Document snapshots the saved form of the buffer. Later edits to the Buffer
// do not affect it.
func (b *Buffer) Document() *Document {
	var buf bytes.Buffer
	for _, s := range b.Lines() {
		buf.WriteString(s)
		buf.WriteByte('\n')
	}
	return &Document{node: rope.New(buf.Bytes())}
}

// Len returns the number of bytes in the document.
func (d *Document) Len() int {
	return d.node.Len()
}

// Bytes returns all of the document. This copies the data. Use sparingly.
func (d *Document) Bytes() []byte {
	return d.node.Value()
}

func (d *Document) String() string {
	return string(d.node.Value())
}

// LineCount returns the number of lines: one per '\n', plus one for text
// after the last '\n'. An empty document has no lines.
func (d *Document) LineCount() int {
	n := d.node.Len()
	count := d.node.Count(0, n, []byte{'\n'})
	if n > 0 && d.slice(n-1, n)[0] != '\n' {
		count++
	}
	return count
}

func (d *Document) slice(start, end int) []byte {
	if start >= end {
		return nil
	}
	return d.node.Slice(start, end)
}

// lineStart returns the byte offset of the first byte of line. Lines past the
// end start at Len().
func (d *Document) lineStart(line int) int {
	if line <= 0 {
		return 0
	}
	pos := d.node.Len()
	d.node.IndexAllFunc(0, d.node.Len(), []byte{'\n'}, func(idx int) bool {
		line--
		if line == 0 { // idx is the delimiter ending the line above
			pos = idx + 1
			return true // Stop indexing
		}
		return false
	})
	return pos
}

// lineEnd returns the offset of the '\n' ending the line that starts at start,
// or Len() if it is not terminated.
func (d *Document) lineEnd(start int) int {
	end := d.node.Len()
	d.node.IndexAllFunc(start, d.node.Len(), []byte{'\n'}, func(idx int) bool {
		end = idx
		return true
	})
	return end
}

// Line returns the bytes of line, without the delimiter, or nil past the end.
func (d *Document) Line(line int) []byte {
	start := d.lineStart(line)
	if start >= d.node.Len() {
		return nil
	}
	return d.slice(start, d.lineEnd(start))
}

// LineColToPos returns the byte offset of the rune at line, col. col counts
// runes. Columns past the end of the line give the offset of its delimiter and
// lines past the end give Len().
func (d *Document) LineColToPos(line, col int) int {
	pos := d.lineStart(line)
	if col <= 0 || pos >= d.node.Len() {
		return pos
	}
	data := d.slice(pos, d.lineEnd(pos))
	for i := 0; i < len(data) && col > 0; col-- {
		// Respect Utf-8 codepoint boundaries
		_, size := utf8.DecodeRune(data[i:])
		i += size
		pos += size
	}
	return pos
}

// PosToLineCol converts a byte offset into a line and a rune column. The
// offset is clamped to the document. An offset pointing at a '\n' belongs to
// the line that delimiter ends.
func (d *Document) PosToLineCol(pos int) (line, col int) {
	pos = clamp(pos, 0, d.node.Len())
	line = d.node.Count(0, pos, []byte{'\n'})
	col = utf8.RuneCount(d.slice(d.lineStart(line), pos))
	return line, col
}

// Offset returns the byte offset of a buffer location in the saved text.
func (d *Document) Offset(p Point) int {
	return d.LineColToPos(p.Y, p.X)
}

// Count returns the number of non-overlapping occurrences of sequence in
// the whole document.
func (d *Document) Count(sequence []byte) int {
	return d.node.Count(0, d.node.Len(), sequence)
}

// WriteTo writes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.node.WriteTo(w)
}
