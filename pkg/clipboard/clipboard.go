// Package clipboard holds the text cut, copied and killed out of buffers. It
// uses the system clipboard when one is available and falls back to an
// in-process one otherwise.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fivemoreminix/tedit/pkg/log"
	"github.com/zyedidia/clipboard"
)

// Method selects where clipboard text is kept.
type Method uint8

const (
	External Method = iota // The system clipboard
	_
	Internal // A string in this process
)

// ErrUnknownMethod is returned for a method name or value that is not known.
var ErrUnknownMethod = errors.New("clipboard: unknown method")

// register is the system clipboard register used by the external method.
const register = "clipboard"

func (m Method) String() string {
	switch m {
	case External:
		return "external"
	case Internal:
		return "internal"
	}
	return fmt.Sprintf("Method(%d)", m)
}

// ParseMethod returns the Method named s.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "external", "":
		return External, nil
	case "internal":
		return Internal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// A Clipboard is safe for concurrent use.
type Clipboard struct {
	mu       sync.Mutex
	method   Method
	internal string
}

// New will initialize the clipboard for the given method first, and if that
// fails, the internal method will be chosen instead. The error that caused the
// fallback is returned along with the usable Clipboard; it is not fatal.
func New(m Method) (*Clipboard, error) {
	switch m {
	case Internal:
		return &Clipboard{method: Internal}, nil
	case External:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, m)
	}

	if err := clipboard.Initialize(); err != nil {
		log.Warn(log.CatClipboard, "system clipboard unavailable, using internal", "error", err)
		return &Clipboard{method: Internal}, fmt.Errorf("initializing system clipboard: %w", err)
	}
	return &Clipboard{method: External}, nil
}

// Method returns the method in use.
func (c *Clipboard) Method() Method {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method
}

// Read receives the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// Write sets the clipboard contents.
func (c *Clipboard) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(text)
}

// Append adds text to the end of the clipboard contents, the way consecutive
// kills build up one entry.
func (c *Clipboard) Append(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, err := c.read()
	if err != nil {
		return err
	}
	return c.write(cur + text)
}

func (c *Clipboard) read() (string, error) {
	if c.method == External {
		s, err := clipboard.ReadAll(register)
		if err != nil {
			return "", fmt.Errorf("reading system clipboard: %w", err)
		}
		return s, nil
	}
	return c.internal, nil
}

func (c *Clipboard) write(text string) error {
	if c.method == External {
		if err := clipboard.WriteAll(text, register); err != nil {
			return fmt.Errorf("writing system clipboard: %w", err)
		}
		return nil
	}
	c.internal = text
	log.Debug(log.CatClipboard, "internal write", "bytes", len(text))
	return nil
}
