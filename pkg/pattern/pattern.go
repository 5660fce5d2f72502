// Package pattern provides the line matcher used to keep or remove lines. It
// is built on regexp2, which speaks the Perl style dialect users expect from
// an editor (lazy quantifiers, lookaround, backreferences).
package pattern

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/fivemoreminix/tedit/pkg/log"
)

// DefaultMatchTimeout bounds how long a single line may be matched for.
// Pathological expressions give up and count as no match.
const DefaultMatchTimeout = 2 * time.Second

// ErrEmptyPattern is returned when compiling an empty expression.
var ErrEmptyPattern = errors.New("pattern: empty expression")

// A Pattern is a compiled expression. It is safe for concurrent use.
type Pattern struct {
	expr       string
	ignoreCase bool
	re         *regexp2.Regexp
}

// Compile parses expr. With ignoreCase set, letters match regardless of case.
func Compile(expr string, ignoreCase bool) (*Pattern, error) {
	if expr == "" {
		return nil, ErrEmptyPattern
	}
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	re.MatchTimeout = DefaultMatchTimeout
	log.Debug(log.CatPattern, "compiled", "expr", expr, "ignoreCase", ignoreCase)
	return &Pattern{expr: expr, ignoreCase: ignoreCase, re: re}, nil
}

// MustCompile is like Compile but panics if expr is invalid. It is meant for
// expressions fixed in the source.
func MustCompile(expr string, ignoreCase bool) *Pattern {
	p, err := Compile(expr, ignoreCase)
	if err != nil {
		panic(err)
	}
	return p
}

// IsMatch reports whether line contains a match. A match that times out is
// logged and reported as no match.
func (p *Pattern) IsMatch(line string) bool {
	ok, err := p.re.MatchString(line)
	if err != nil {
		log.Warn(log.CatPattern, "match failed", "expr", p.expr, "error", err)
		return false
	}
	return ok
}

// Find returns the rune index and rune length of the first match in line.
// The boolean is false when there is none.
func (p *Pattern) Find(line string) (idx, length int, ok bool) {
	m, err := p.re.FindStringMatch(line)
	if err != nil {
		log.Warn(log.CatPattern, "find failed", "expr", p.expr, "error", err)
		return 0, 0, false
	}
	if m == nil {
		return 0, 0, false
	}
	return m.Index, m.Length, true
}

// IgnoreCase reports whether the pattern was compiled caseless.
func (p *Pattern) IgnoreCase() bool { return p.ignoreCase }

func (p *Pattern) String() string { return p.expr }
