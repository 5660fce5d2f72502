package buffer

// OpKind is the kind of a recorded edit.
type OpKind uint8

const (
	OpInsert   OpKind = iota // Text was inserted from Before to After
	OpDelete                 // Text between Before and After was deleted
	OpKillLine               // Text was killed at Before (Before == After)
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpKillLine:
		return "kill-line"
	}
	return "unknown"
}

// OpData is one reversible edit. Text is owned by the OpData; it is never a
// view into the buffer's lines.
//
// For OpInsert, Before is where typing started and After where the cursor
// ended up. For OpDelete, Before is the start of the removed range and After
// its end; a forward delete has Before == After.
//
// Cursor and CursorAfter are where the cursor was before and after the edit.
// Undo returns the cursor to Cursor and redo to CursorAfter.
type OpData struct {
	Before      Point
	After       Point
	Text        string
	Kind        OpKind
	Cursor      Point
	CursorAfter Point
}

// An OpStack is a last-in first-out stack of operations.
type OpStack []OpData

// Push adds op on top of the stack.
func (s *OpStack) Push(op OpData) {
	*s = append(*s, op)
}

// Pop removes and returns the top of the stack. The boolean is false if the
// stack was empty.
func (s *OpStack) Pop() (OpData, bool) {
	if len(*s) == 0 {
		return OpData{}, false
	}
	op := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return op, true
}

// Peek returns the top of the stack without removing it.
func (s OpStack) Peek() (OpData, bool) {
	if len(s) == 0 {
		return OpData{}, false
	}
	return s[len(s)-1], true
}

func (s OpStack) Len() int {
	return len(s)
}

// Clear empties the stack.
func (s *OpStack) Clear() {
	*s = nil
}

// History is the undo and redo stacks of a Buffer.
type History struct {
	undo OpStack
	redo OpStack
}

// Push records a fresh edit. Anything that could have been redone is dropped:
// an edit made after an undo makes the old redo entries meaningless.
func (h *History) Push(op OpData) {
	h.redo.Clear()
	h.undo.Push(op)
}

// Reset forgets every recorded edit.
func (h *History) Reset() {
	h.undo.Clear()
	h.redo.Clear()
}

// CanUndo reports whether there is anything to undo.
func (h *History) CanUndo() bool { return h.undo.Len() > 0 }

// CanRedo reports whether there is anything to redo.
func (h *History) CanRedo() bool { return h.redo.Len() > 0 }

// UndoLen returns the depth of the undo stack.
func (h *History) UndoLen() int { return h.undo.Len() }

// RedoLen returns the depth of the redo stack.
func (h *History) RedoLen() int { return h.redo.Len() }
