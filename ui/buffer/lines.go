package buffer

import (
	"sort"

	"github.com/fivemoreminix/tedit/pkg/log"
)

// A Matcher decides whether a line matches a pattern. See the pattern package
// for a regular expression implementation.
type Matcher interface {
	IsMatch(line string) bool
}

// MatchFunc adapts an ordinary function to a Matcher.
type MatchFunc func(line string) bool

func (f MatchFunc) IsMatch(line string) bool { return f(line) }

// A RemovedLine is one entry of the journal returned by KeepRemoveLines. Pos
// is where the line was when it was removed, counting the removals made before
// it in the same call.
type RemovedLine struct {
	Text string
	Pos  Point
}

// RemovedLines is the journal of a KeepRemoveLines call, in removal order.
type RemovedLines []RemovedLine

// SortRegion sorts the lines from the region anchor's row to the cursor's row,
// inclusive. Empty lines sort first; others by code point. The cursor stays on
// its row and moves to the end of the line now there. The history is reset.
func (b *Buffer) SortRegion() {
	if !b.editable() || !b.RegionActive() {
		return
	}
	lo, hi := b.regionRows()
	seg := b.lines[lo : hi+1]
	sort.SliceStable(seg, func(i, j int) bool { return lineLess(seg[i], seg[j]) })
	b.cursor.X = b.lines[b.cursor.Y].Len()
	b.modified = true
	b.history.Reset()
	log.Debug(log.CatBuffer, "sorted region", "from", lo, "to", hi)
}

// SortLines sorts the lines from row lo to row hi inclusive, clamped to the
// buffer, as SortRegion does.
func (b *Buffer) SortLines(lo, hi int) {
	if !b.editable() {
		return
	}
	lo = clamp(lo, 0, len(b.lines)-1)
	hi = clamp(hi, 0, len(b.lines)-1)
	if lo > hi {
		lo, hi = hi, lo
	}
	region, cursor := b.region, b.cursor
	b.region = Point{0, lo}
	b.cursor.Y = hi
	b.SortRegion()
	b.region = region
	b.cursor = b.clampPoint(cursor)
}

// KeepRemoveLines filters lines through m. With keep set, lines that do not
// match are removed; without it, lines that match are removed. When a region
// is active only the rows it spans are filtered.
//
// The removed lines are returned as a journal that AddLines can replay. If
// anything was removed the cursor goes back to the beginning, the region is
// dropped and the history is reset. A buffer left with no lines gets one
// empty line.
func (b *Buffer) KeepRemoveLines(m Matcher, keep bool) RemovedLines {
	if !b.editable() || m == nil {
		return nil
	}
	lo, hi := 0, len(b.lines)-1
	if b.RegionActive() {
		lo, hi = b.regionRows()
	}

	var res RemovedLines
	i := lo
	for n := hi - lo + 1; n > 0; n-- {
		s := b.lines[i].String()
		if m.IsMatch(s) == keep {
			i++
			continue
		}
		b.deleteLines(i, 1)
		res = append(res, RemovedLine{Text: s, Pos: Point{0, i}})
	}

	if len(res) > 0 {
		b.ensureLine()
		b.Begin()
		b.StopRegion()
		b.modified = true
		b.history.Reset()
	}
	log.Debug(log.CatBuffer, "keep/remove lines", "keep", keep, "removed", len(res), "left", len(b.lines))
	return res
}

// AddLines puts back lines removed by KeepRemoveLines. The journal is
// replayed from its last entry to its first, so every position means what it
// meant when it was recorded.
func (b *Buffer) AddLines(journal RemovedLines) {
	if !b.editable() || len(journal) == 0 {
		return
	}
	for i := len(journal) - 1; i >= 0; i-- {
		rl := journal[i]
		b.insertLine(rl.Pos.Y, NewLine(rl.Text))
	}
	b.Begin()
	b.StopRegion()
	b.modified = true
	b.history.Reset()
	log.Debug(log.CatBuffer, "added lines", "count", len(journal), "lines", len(b.lines))
}

// regionRows returns the first and last row spanned by the region and the
// cursor.
func (b *Buffer) regionRows() (lo, hi int) {
	anchor := b.clampPoint(b.region)
	return min(anchor.Y, b.cursor.Y), max(anchor.Y, b.cursor.Y)
}
