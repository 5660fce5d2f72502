package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/fivemoreminix/tedit/pkg/clipboard"
	"github.com/fivemoreminix/tedit/pkg/log"
	"github.com/fivemoreminix/tedit/ui/buffer"
)

// TextEdit is a field for line-based editing. It binds key events to the
// operations of its Buffer and keeps the terminal cursor on the buffer cursor.
// Drawing the text is left to the caller.
type TextEdit struct {
	Buffer      *buffer.Buffer
	Clipboard   *clipboard.Clipboard // May be nil: kills and cuts then only delete
	UseHardTabs bool                 // When true, tabs are '\t'
	TabSize     int                  // How many spaces to indent by
	FilePath    string               // Will be empty if the file has not been saved yet

	screen   tcell.Screen // We keep our own reference to the screen for cursor purposes.
	lastKill bool         // The previous event killed text, so the next kill appends
	search   *buffer.Search
	origin   buffer.Point // Where the cursor was when the search started

	baseComponent
}

var _ Component = (*TextEdit)(nil)

// NewTextEdit returns a TextEdit over buf. A nil buf gets an empty Buffer.
func NewTextEdit(screen tcell.Screen, filePath string, buf *buffer.Buffer, clip *clipboard.Clipboard) *TextEdit {
	if buf == nil {
		buf = buffer.New(buffer.WithName(filePath))
	}
	t := &TextEdit{
		Buffer:    buf,
		Clipboard: clip,
		TabSize:   4,
		FilePath:  filePath,
		screen:    screen,
	}
	vp := buf.Viewport()
	t.x, t.y = vp.Origin.X, vp.Origin.Y
	t.width, t.height = vp.Width, vp.Height
	return t
}

// SetPos moves the TextEdit and the buffer viewport.
func (t *TextEdit) SetPos(x, y int) {
	t.baseComponent.SetPos(x, y)
	t.resize()
}

// SetSize resizes the TextEdit and the buffer viewport.
func (t *TextEdit) SetSize(width, height int) {
	t.baseComponent.SetSize(width, height)
	t.resize()
}

func (t *TextEdit) resize() {
	t.Buffer.Resize(buffer.Viewport{
		Origin: buffer.Point{X: t.x, Y: t.y},
		Width:  t.width,
		Height: t.height,
	})
	t.updateCursorVisibility()
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		t.screen.HideCursor()
	}
}

// Searching reports whether an incremental search is in progress.
func (t *TextEdit) Searching() bool { return t.search != nil }

// SearchQuery returns the query of the search in progress, or "".
func (t *TextEdit) SearchQuery() string {
	if t.search == nil {
		return ""
	}
	return t.search.Query()
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit, if the TextEdit is focused.
func (t *TextEdit) updateCursorVisibility() {
	if !t.focused || t.screen == nil {
		return
	}
	p := t.Buffer.Buffer2Screen(t.Buffer.Cursor())
	t.screen.ShowCursor(p.X, p.Y)
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false
	}

	var handled bool
	if t.search != nil {
		handled = t.handleSearchKey(ev)
	}
	if !handled {
		kill := t.lastKill
		t.lastKill = false
		handled = t.handleKey(ev, kill)
	}
	if handled {
		t.updateCursorVisibility()
	}
	return handled
}

// handleSearchKey handles ev while searching. Keys that do not belong to the
// search end it and are then handled as usual.
func (t *TextEdit) handleSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			break
		}
		t.search.AddRune(ev.Rune())
		t.search.Seek(t.origin)
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.search.RemoveLast()
		if !t.search.Seek(t.origin) {
			t.Buffer.MoveTo(t.origin)
		}
		return true
	case tcell.KeyCtrlF, tcell.KeyEnter:
		t.search.Jump()
		return true
	case tcell.KeyEsc, tcell.KeyCtrlG:
		t.endSearch()
		return true
	}
	t.endSearch()
	return false
}

func (t *TextEdit) endSearch() {
	log.Debug(log.CatUI, "search ended", "query", t.search.Query(), "matches", t.search.Count())
	t.search = nil
}

func (t *TextEdit) handleKey(ev *tcell.EventKey, afterKill bool) bool {
	b := t.Buffer
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	// Cursor movement
	case tcell.KeyUp:
		b.Up()
	case tcell.KeyDown:
		b.Down()
	case tcell.KeyLeft:
		b.Left()
	case tcell.KeyRight:
		b.Right()
	case tcell.KeyHome:
		if ctrl {
			b.Begin()
		} else {
			b.StartOfLine()
		}
	case tcell.KeyEnd:
		if ctrl {
			b.End()
		} else {
			b.EndOfLine()
		}
	case tcell.KeyPgUp:
		b.PageUp(1)
	case tcell.KeyPgDn:
		b.PageDown(1)

	// Deleting
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		b.Remove()
	case tcell.KeyDelete:
		b.RemoveCurrent()
	case tcell.KeyCtrlK:
		killed := b.KillLine()
		t.kill(killed, afterKill)
		t.lastKill = afterKill || killed != "" // A kill of nothing does not start a run
	case tcell.KeyCtrlW:
		t.copy(b.RemoveAndCopy())

	// Region and clipboard
	case tcell.KeyCtrlSpace:
		b.StartRegion()
	case tcell.KeyCtrlG:
		b.StopRegion()
	case tcell.KeyCtrlY:
		t.yank()

	// Other control
	case tcell.KeyTab:
		t.tab()
	case tcell.KeyEnter:
		b.InsertRune('\n')
	case tcell.KeyCtrlZ:
		b.Undo()
	case tcell.KeyCtrlR:
		b.Redo()
	case tcell.KeyCtrlRightSq:
		b.MatchCurrentParen()
	case tcell.KeyCtrlS:
		b.SortRegion()
	case tcell.KeyCtrlF:
		t.search = buffer.NewSearch(b)
		t.origin = b.Cursor()

	// Inserting
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return t.handleAlt(ev.Rune())
		}
		b.InsertRune(ev.Rune())
	default:
		return false
	}
	return true
}

func (t *TextEdit) handleAlt(r rune) bool {
	b := t.Buffer
	switch r {
	case 'f':
		b.NextWord()
	case 'b':
		b.PreviousWord()
	case 'w':
		t.copy(b.RegionAsString())
		b.StopRegion()
	default:
		return false
	}
	return true
}

// tab indents the line by the buffer's policy when the cursor is within the
// leading whitespace. Anywhere else, or when the line is already aligned, a
// tab is typed.
func (t *TextEdit) tab() {
	b := t.Buffer
	cu := b.Cursor()
	line := b.At(cu.Y)
	if cu.X <= line.IndentSize() {
		before := line.String()
		b.Indent()
		if b.LineString(cu.Y) != before {
			return
		}
	}
	if t.UseHardTabs {
		b.InsertRune('\t')
		return
	}
	b.Insert(strings.Repeat(" ", t.TabSize))
}

// kill stores killed text on the clipboard. Consecutive kills build up one
// clipboard entry.
func (t *TextEdit) kill(text string, appendKill bool) {
	if text == "" || t.Clipboard == nil {
		return
	}
	var err error
	if appendKill {
		err = t.Clipboard.Append(text)
	} else {
		err = t.Clipboard.Write(text)
	}
	if err != nil {
		log.ErrorErr(log.CatClipboard, "Failed to store killed text", err)
	}
}

func (t *TextEdit) copy(text string) {
	if text == "" || t.Clipboard == nil {
		return
	}
	if err := t.Clipboard.Write(text); err != nil {
		log.ErrorErr(log.CatClipboard, "Failed to copy region", err)
	}
}

func (t *TextEdit) yank() {
	if t.Clipboard == nil {
		return
	}
	text, err := t.Clipboard.Read()
	if err != nil {
		log.ErrorErr(log.CatClipboard, "Failed to read clipboard", err)
		return
	}
	t.Buffer.Insert(text)
}
