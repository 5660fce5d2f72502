package buffer

var parenPairs = map[rune]rune{
	'(': ')', ')': '(',
	'{': '}', '}': '{',
	'[': ']', ']': '[',
	'<': '>', '>': '<',
}

func isOpenParen(r rune) bool {
	return r == '(' || r == '{' || r == '[' || r == '<'
}

// MatchCurrentParen moves the cursor from the bracket under it to the bracket
// that balances it, scanning forward from an opening bracket and backward from
// a closing one. Brackets of other kinds are ignored. It reports whether the
// scan went forward. The cursor stays put when it is not on a bracket or the
// bracket is unbalanced.
func (b *Buffer) MatchCurrentParen() (forward bool) {
	p, forward := b.matchParen(b.cursor)
	b.cursor = p
	if forward {
		b.LineUp()
	} else {
		b.LineDown()
	}
	return forward
}

func (b *Buffer) matchParen(cu Point) (Point, bool) {
	c := b.CharAt(cu)
	mc, ok := parenPairs[c]
	if !ok {
		return cu, false
	}
	depth := 0
	if isOpenParen(c) {
		for y := cu.Y; y < len(b.lines); y++ {
			line := b.lines[y]
			x := 0
			if y == cu.Y {
				x = cu.X
			}
			for ; x < line.Len(); x++ {
				switch line.At(x) {
				case c:
					depth++
				case mc:
					depth--
					if depth == 0 {
						return Point{x, y}, true
					}
				}
			}
		}
		return cu, true
	}
	for y := cu.Y; y >= 0; y-- {
		line := b.lines[y]
		x := line.Len() - 1
		if y == cu.Y {
			x = cu.X
		}
		for ; x >= 0; x-- {
			switch line.At(x) {
			case c:
				depth++
			case mc:
				depth--
				if depth == 0 {
					return Point{x, y}, false
				}
			}
		}
	}
	return cu, false
}
