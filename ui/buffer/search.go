package buffer

import (
	"slices"
	"sort"
)

// A Match is one occurrence of a search query on a line. Col is the rune
// column it starts at and EndCol the column just past it.
type Match struct {
	Col    int
	EndCol int
}

// ByCol implements sort.Interface for []Match based on the Col field.
type ByCol []Match

func (c ByCol) Len() int           { return len(c) }
func (c ByCol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c ByCol) Less(i, j int) bool { return c[i].Col < c[j].Col }

// A Search is an incremental search over a Buffer: the query grows or shrinks
// one rune at a time and the matches on every line are kept up to date.
// Growing the query only rescans lines that matched before. Edits to the
// Buffer are not tracked; call Reset or Update after editing.
type Search struct {
	buf         *Buffer
	query       []rune
	lineMatches map[int][]Match
}

// NewSearch returns an empty Search over b.
func NewSearch(b *Buffer) *Search {
	return &Search{buf: b, lineMatches: make(map[int][]Match)}
}

// Query returns the current query.
func (s *Search) Query() string { return string(s.query) }

// Reset clears the query and every match.
func (s *Search) Reset() {
	s.query = s.query[:0]
	clear(s.lineMatches)
}

// Update replaces the query and reports whether it changed. A query that
// extends the previous one narrows the existing matches.
func (s *Search) Update(query string) bool {
	q := []rune(query)
	if slices.Equal(q, s.query) {
		return false
	}
	narrowing := len(s.query) > 0 && len(q) > len(s.query) && slices.Equal(q[:len(s.query)], s.query)
	if !narrowing {
		clear(s.lineMatches)
	}
	s.query = q
	if len(q) == 0 {
		return true
	}
	if narrowing {
		for y := range s.lineMatches {
			s.searchLine(y)
		}
	} else {
		for y := range s.buf.lines {
			s.searchLine(y)
		}
	}
	return true
}

// AddRune extends the query by r.
func (s *Search) AddRune(r rune) {
	s.Update(string(s.query) + string(r))
}

// RemoveLast drops the last rune of the query and searches afresh.
func (s *Search) RemoveLast() {
	if len(s.query) == 0 {
		return
	}
	s.Update(string(s.query[:len(s.query)-1]))
}

func (s *Search) searchLine(y int) {
	if y >= len(s.buf.lines) {
		delete(s.lineMatches, y)
		return
	}
	text := s.buf.lines[y].text
	n := len(s.query)
	var res []Match
	for x := 0; x+n <= len(text); {
		if slices.Equal(text[x:x+n], s.query) {
			res = append(res, Match{Col: x, EndCol: x + n})
			x += n
			continue
		}
		x++
	}
	if len(res) == 0 {
		delete(s.lineMatches, y)
		return
	}
	s.lineMatches[y] = res
}

// Empty reports whether line has no matches.
func (s *Search) Empty(line int) bool {
	_, ok := s.lineMatches[line]
	return !ok
}

// LineMatches returns the matches on line, ordered by column. The slice is
// owned by the Search.
func (s *Search) LineMatches(line int) []Match {
	data := s.lineMatches[line]
	sort.Sort(ByCol(data))
	return data
}

// Lines returns the rows that have at least one match, in order.
func (s *Search) Lines() []int {
	rows := make([]int, 0, len(s.lineMatches))
	for y := range s.lineMatches {
		rows = append(rows, y)
	}
	slices.Sort(rows)
	return rows
}

// Count returns the total number of matches.
func (s *Search) Count() int {
	var n int
	for _, m := range s.lineMatches {
		n += len(m)
	}
	return n
}

// Next returns the start of the first match after from, wrapping around to
// the top of the buffer. The boolean is false when there are no matches.
func (s *Search) Next(from Point) (Point, bool) {
	rows := s.Lines()
	if len(rows) == 0 {
		return from, false
	}
	for _, y := range rows {
		if y < from.Y {
			continue
		}
		for _, m := range s.LineMatches(y) {
			if y > from.Y || m.Col > from.X {
				return Point{m.Col, y}, true
			}
		}
	}
	first := s.LineMatches(rows[0])[0]
	return Point{first.Col, rows[0]}, true
}

// Prev returns the start of the last match before from, wrapping around to
// the bottom of the buffer.
func (s *Search) Prev(from Point) (Point, bool) {
	rows := s.Lines()
	if len(rows) == 0 {
		return from, false
	}
	for i := len(rows) - 1; i >= 0; i-- {
		y := rows[i]
		if y > from.Y {
			continue
		}
		ms := s.LineMatches(y)
		for j := len(ms) - 1; j >= 0; j-- {
			if y < from.Y || ms[j].Col < from.X {
				return Point{ms[j].Col, y}, true
			}
		}
	}
	ms := s.LineMatches(rows[len(rows)-1])
	return Point{ms[len(ms)-1].Col, rows[len(rows)-1]}, true
}

// Jump moves the buffer cursor to the next match after it and reports whether
// there was one.
func (s *Search) Jump() bool {
	return s.moveTo(s.Next(s.buf.cursor))
}

// Seek moves the buffer cursor to the first match at or after from, wrapping
// around, and reports whether there was one.
func (s *Search) Seek(from Point) bool {
	return s.moveTo(s.Next(Point{from.X - 1, from.Y}))
}

func (s *Search) moveTo(p Point, ok bool) bool {
	if ok {
		s.buf.MoveTo(p)
	}
	return ok
}
