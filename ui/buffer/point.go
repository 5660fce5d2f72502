package buffer

import "fmt"

// A Point is a location in a Buffer: X is the column (in runes) and Y is the
// line, both starting from zero. Points are ordered row-major.
type Point struct {
	X, Y int
}

// NoRegion is the anchor of a Buffer without an active selection. It is never
// a valid location.
var NoRegion = Point{-1, -1}

// RowOrder tells how the rows of two points relate, as returned by Find.
type RowOrder int

const (
	RowBefore RowOrder = iota - 1 // The first point is on an earlier row
	SameRow
	RowAfter // The first point is on a later row
)

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Less reports whether p comes before o.
func (p Point) Less(o Point) bool {
	return p.Y < o.Y || (p.Y == o.Y && p.X < o.X)
}

// LessEq reports whether p comes before o or is equal to it.
func (p Point) LessEq(o Point) bool {
	return p.Y < o.Y || (p.Y == o.Y && p.X <= o.X)
}

// Compare returns -1, 0 or +1 as p is before, equal to, or after o.
func (p Point) Compare(o Point) int {
	switch {
	case p.Less(o):
		return -1
	case p == o:
		return 0
	default:
		return 1
	}
}

// Find orders a and b into the range (small, big) and reports whether a was
// on an earlier row, the same row, or a later row than b. Points on the same
// row are ordered by column.
func Find(a, b Point) (small, big Point, order RowOrder) {
	switch {
	case a.Y < b.Y:
		return a, b, RowBefore
	case a.Y > b.Y:
		return b, a, RowAfter
	default:
		return Point{min(a.X, b.X), a.Y}, Point{max(a.X, b.X), a.Y}, SameRow
	}
}

// Advance returns p moved past text as if text had been typed at p: every
// newline moves to the start of the next row, every other rune moves one
// column right.
func (p Point) Advance(text string) Point {
	for _, r := range text {
		if r == '\n' {
			p.Y++
			p.X = 0
		} else {
			p.X++
		}
	}
	return p
}
