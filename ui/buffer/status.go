package buffer

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Status returns the one line summary shown under a buffer: a "**" marker
// when modified, the cursor row and column, the line count, the name, and
// whether the buffer can be written. The text is cut to fit width terminal
// cells, ending in an ellipsis when cut. A width below one means no limit.
func (b *Buffer) Status(width int) string {
	mod := "  "
	if b.modified {
		mod = "**"
	}
	perm := "rw"
	if b.readOnly {
		perm = "r-"
	}
	s := fmt.Sprintf(" %s [%d:%d]/%d %s [%s]", mod, b.cursor.Y, b.cursor.X, len(b.lines), b.name, perm)
	if width < 1 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
