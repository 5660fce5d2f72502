package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component refers generally to the behavior of a UI "component": something
// that occupies a rectangle of the screen, can be focused, and handles events.
// It is expected that after constructing a component, to call the SetPos()
// function, and possibly SetSize() as well.
type Component interface {
	// Components can be focused, which may affect how it handles events. For
	// example, a focused TextEdit shows the terminal cursor.
	SetFocused(bool)

	// Get position of the Component.
	GetPos() (x, y int)
	// Set position of the Component.
	SetPos(x, y int)

	// Get size of the Component.
	GetSize() (w, h int)
	// Set size of the component.
	SetSize(w, h int)

	// HandleEvent tells the Component to handle the provided event. The Component
	// should only handle events if it is focused. An event can optionally be
	// handled. If an event is handled, the function should return true. If the
	// event went unhandled, the function should return false.
	HandleEvent(tcell.Event) bool
}

// baseComponent can be embedded in a Component's struct to hide a few of the
// boilerplate fields and functions. The baseComponent defines defaults for
// ...Pos(), ...Size() and SetFocused() functions that can be overriden.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = width, height
}
