package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fivemoreminix/tedit/pkg/log"
)

// DefaultWordChars are the runes that make up a word for NextWord and
// PreviousWord unless WithWordChars says otherwise.
const DefaultWordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

// DefaultViewport is used until the Buffer is resized.
var DefaultViewport = Viewport{Width: 80, Height: 24}

// A Buffer is an editable document: an ordered list of Lines, one cursor, an
// optional region anchor, and the undo/redo history of every edit.
//
// A Buffer always has at least one line, and its cursor always points inside
// the text (the column may equal the line length). Editing operations never
// fail; positions out of range are clamped. A Buffer is not safe for
// concurrent use.
type Buffer struct {
	name      string
	lines     []*Line
	cursor    Point
	region    Point // NoRegion when no selection is active
	history   History
	modified  bool
	readOnly  bool
	startLine int // Topmost visible line
	viewport  Viewport
	indent    IndentPolicy
	wordChars string
}

// An Option configures a Buffer at construction.
type Option func(*Buffer)

// WithName sets the name shown in the status text.
func WithName(name string) Option {
	return func(b *Buffer) { b.name = name }
}

// WithViewport sets the initial viewport.
func WithViewport(vp Viewport) Option {
	return func(b *Buffer) { b.viewport = vp.normalized() }
}

// WithIndentPolicy sets the policy used by Indent.
func WithIndentPolicy(p IndentPolicy) Option {
	return func(b *Buffer) { b.indent = p }
}

// WithWordChars sets the runes considered part of a word.
func WithWordChars(chars string) Option {
	return func(b *Buffer) {
		if chars != "" {
			b.wordChars = chars
		}
	}
}

// New returns an empty Buffer holding a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines:     []*Line{{}},
		region:    NoRegion,
		viewport:  DefaultViewport,
		wordChars: DefaultWordChars,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromLines returns a Buffer loaded with lines, the way Load does.
func NewFromLines(lines []string, opts ...Option) *Buffer {
	b := New(opts...)
	b.Load(lines, 0)
	return b
}

// Name returns the buffer name.
func (b *Buffer) Name() string { return b.name }

// SetName renames the buffer.
func (b *Buffer) SetName(name string) { b.name = name }

// Length returns the number of lines. It is never less than one.
func (b *Buffer) Length() int { return len(b.lines) }

// At returns the line at idx. The Line is owned by the Buffer: changing it
// directly bypasses the history. It panics if idx is out of range.
func (b *Buffer) At(idx int) *Line { return b.lines[idx] }

// LineString returns the text of line idx, or "" if idx is out of range.
func (b *Buffer) LineString(idx int) string {
	if idx < 0 || idx >= len(b.lines) {
		return ""
	}
	return b.lines[idx].String()
}

// LengthOf returns the number of runes on line idx, or 0 if idx is out of
// range.
func (b *Buffer) LengthOf(idx int) int {
	if idx < 0 || idx >= len(b.lines) {
		return 0
	}
	return b.lines[idx].Len()
}

// Strings returns the text of every line, including a trailing empty one.
func (b *Buffer) Strings() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.String()
	}
	return out
}

// CharAt returns the rune at p, or a space when p is past the end of its line
// or outside the buffer.
func (b *Buffer) CharAt(p Point) rune {
	if p.Y < 0 || p.Y >= len(b.lines) {
		return ' '
	}
	line := b.lines[p.Y]
	if p.X < 0 || p.X >= line.Len() {
		return ' '
	}
	return line.At(p.X)
}

// Cursor returns the cursor location.
func (b *Buffer) Cursor() Point { return b.cursor }

// SetCursor moves the cursor to p, clamped into the text. The viewport does
// not scroll; use MoveTo for that.
func (b *Buffer) SetCursor(p Point) {
	b.cursor = b.clampPoint(p)
}

// IsModified reports whether the buffer was edited since it was loaded or
// saved.
func (b *Buffer) IsModified() bool { return b.modified }

// SetModified overrides the modified flag, e.g. after the caller saved.
func (b *Buffer) SetModified(v bool) { b.modified = v }

// IsReadOnly reports whether edits are refused.
func (b *Buffer) IsReadOnly() bool { return b.readOnly }

// SetReadOnly makes every editing operation a no-op while v is true.
func (b *Buffer) SetReadOnly(v bool) { b.readOnly = v }

// History returns the undo/redo history, for inspection.
func (b *Buffer) History() *History { return &b.history }

// SetIndentPolicy replaces the policy used by Indent.
func (b *Buffer) SetIndentPolicy(p IndentPolicy) { b.indent = p }

// WordChars returns the runes that make up a word.
func (b *Buffer) WordChars() string { return b.wordChars }

// RegionActive reports whether a selection is active.
func (b *Buffer) RegionActive() bool { return b.region != NoRegion }

// Region returns the region anchor and whether a selection is active.
func (b *Buffer) Region() (Point, bool) {
	return b.region, b.RegionActive()
}

// StartRegion anchors a selection at the cursor.
func (b *Buffer) StartRegion() {
	b.region = b.cursor
}

// SetRegion anchors a selection at p, clamped into the text.
func (b *Buffer) SetRegion(p Point) {
	b.region = b.clampPoint(p)
}

// StopRegion drops the active selection, if any.
func (b *Buffer) StopRegion() {
	b.region = NoRegion
}

// Clear empties the buffer: one empty line, cursor at the beginning, no
// region and no history.
func (b *Buffer) Clear() {
	b.lines = []*Line{{}}
	b.cursor = Point{}
	b.startLine = 0
	b.region = NoRegion
	b.history.Reset()
}

// Load replaces the contents with lines, followed by one empty line, and puts
// the cursor at the start of row (clamped). The buffer is left unmodified with
// no history.
func (b *Buffer) Load(lines []string, row int) {
	b.Clear()
	b.lines = make([]*Line, 0, len(lines)+1)
	for _, s := range lines {
		b.lines = append(b.lines, NewLine(s))
	}
	b.lines = append(b.lines, &Line{})
	row = clamp(row, 0, len(b.lines)-1)
	b.cursor = Point{0, row}
	b.startLine = row
	b.modified = false
	log.Debug(log.CatBuffer, "loaded", "name", b.name, "lines", len(b.lines), "row", row)
}

// Lines returns the text of every line the way it should be saved: a final
// empty line is left out, so that a file ending in a newline comes back the
// same.
func (b *Buffer) Lines() []string {
	out := b.Strings()
	if n := len(out); n > 0 && out[n-1] == "" {
		out = out[:n-1]
	}
	return out
}

// LoadFrom reads newline separated lines from r and loads them. A "\r" before
// each "\n" is dropped.
func (b *Buffer) LoadFrom(r io.Reader, row int) error {
	br := bufio.NewReader(r)
	var lines []string
	for {
		s, err := br.ReadString('\n')
		if len(s) > 0 {
			s = strings.TrimSuffix(s, "\n")
			s = strings.TrimSuffix(s, "\r")
			lines = append(lines, s)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading buffer %q: %w", b.name, err)
		}
	}
	b.Load(lines, row)
	return nil
}

// SaveTo writes the saved form of the buffer to w, each line followed by a
// newline, and clears the modified flag.
func (b *Buffer) SaveTo(w io.Writer) error {
	if _, err := b.Document().WriteTo(w); err != nil {
		return fmt.Errorf("writing buffer %q: %w", b.name, err)
	}
	b.modified = false
	return nil
}

func (b *Buffer) editable() bool {
	return !b.readOnly
}

// clampPoint keeps p inside the text: the row within the lines, then the
// column within that row.
func (b *Buffer) clampPoint(p Point) Point {
	p.Y = clamp(p.Y, 0, len(b.lines)-1)
	p.X = clamp(p.X, 0, b.lines[p.Y].Len())
	return p
}

func (b *Buffer) insertLine(idx int, l *Line) {
	idx = clamp(idx, 0, len(b.lines))
	b.lines = append(b.lines, nil)
	copy(b.lines[idx+1:], b.lines[idx:])
	b.lines[idx] = l
}

// deleteLines removes count lines starting at idx. It may leave the buffer
// without lines; callers restore the invariant with ensureLine.
func (b *Buffer) deleteLines(idx, count int) {
	if count <= 0 || idx < 0 || idx >= len(b.lines) {
		return
	}
	end := min(idx+count, len(b.lines))
	b.lines = append(b.lines[:idx], b.lines[end:]...)
}

func (b *Buffer) ensureLine() {
	if len(b.lines) == 0 {
		b.lines = append(b.lines, &Line{})
	}
}

// Clamp keeps v within lo and hi. lo must not be greater than hi.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
