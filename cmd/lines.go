package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivemoreminix/tedit/pkg/config"
	"github.com/fivemoreminix/tedit/pkg/log"
	"github.com/fivemoreminix/tedit/pkg/pattern"
	"github.com/fivemoreminix/tedit/ui/buffer"
)

// patterns is shared by every command run in this process.
var patterns = pattern.NewCache(pattern.DefaultExpiration, pattern.DefaultCleanupInterval)

var (
	filterIgnoreCase bool
	filterOut        outputFlags
)

var keepLinesCmd = &cobra.Command{
	Use:   "keep-lines PATTERN FILE",
	Short: "Keep only the lines matching a pattern",
	Long: `Keep only the lines of FILE that match the regular expression PATTERN.

Examples:
  tedit keep-lines '^#include' main.cxx
  tedit keep-lines -i 'todo' notes.txt --in-place
  tedit keep-lines 'func ' main.go --diff`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFilter(cmd, args[0], args[1], true)
	},
}

var removeLinesCmd = &cobra.Command{
	Use:   "remove-lines PATTERN FILE",
	Short: "Remove the lines matching a pattern",
	Long: `Remove the lines of FILE that match the regular expression PATTERN.

Examples:
  tedit remove-lines '^\s*$' notes.txt
  tedit remove-lines '^//' main.go -o stripped.go`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFilter(cmd, args[0], args[1], false)
	},
}

func runFilter(cmd *cobra.Command, expr, path string, keep bool) error {
	if err := filterOut.validate(); err != nil {
		return err
	}
	p, err := patterns.Compile(expr, filterIgnoreCase || cfg.IgnoreCase)
	if err != nil {
		return err
	}
	b, err := openBuffer(path)
	if err != nil {
		return err
	}
	before := saveString(b)

	// Filter only the saved lines, not the empty line after the last newline
	if n := len(b.Lines()); n > 0 {
		b.SetRegion(buffer.Point{})
		b.SetCursor(buffer.Point{Y: n - 1})
	}
	journal := b.KeepRemoveLines(p, keep)
	log.Info(log.CatCLI, "filtered", "path", path, "pattern", expr, "keep", keep, "removed", len(journal))
	fmt.Fprintf(cmd.ErrOrStderr(), "%d lines removed\n", len(journal))
	return filterOut.emit(cmd.OutOrStdout(), path, before, b)
}

// lineRange is a 1-based inclusive range of lines. Zero bounds mean the first
// and last line.
type lineRange struct {
	from, to int
}

func (r *lineRange) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&r.from, "from", 0, "first line, counting from 1 (default: first)")
	cmd.Flags().IntVar(&r.to, "to", 0, "last line, inclusive (default: last)")
}

// rows converts r to buffer rows over the saved lines of b. An empty file
// gives hi < lo.
func (r lineRange) rows(b *buffer.Buffer) (lo, hi int, err error) {
	if r.from < 0 || r.to < 0 || (r.to > 0 && r.from > r.to) {
		return 0, 0, fmt.Errorf("invalid line range %d-%d", r.from, r.to)
	}
	n := len(b.Lines())
	lo, hi = 0, n-1
	if r.from > 0 {
		lo = r.from - 1
	}
	if r.to > 0 {
		hi = min(r.to-1, n-1)
	}
	if n > 0 && lo > hi {
		return 0, 0, fmt.Errorf("line %d is past the end of %s (%d lines)", r.from, b.Name(), n)
	}
	return lo, hi, nil
}

var (
	sortRange lineRange
	sortOut   outputFlags
)

var sortLinesCmd = &cobra.Command{
	Use:   "sort-lines FILE",
	Short: "Sort lines",
	Long: `Sort the lines of FILE, or only those from --from to --to. Empty lines sort first;
other lines are compared by code point.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sortOut.validate(); err != nil {
			return err
		}
		b, err := openBuffer(args[0])
		if err != nil {
			return err
		}
		lo, hi, err := sortRange.rows(b)
		if err != nil {
			return err
		}
		before := saveString(b)
		if lo < hi {
			b.SortLines(lo, hi)
		}
		return sortOut.emit(cmd.OutOrStdout(), args[0], before, b)
	},
}

var (
	indentMode  string
	indentRange lineRange
	indentOut   outputFlags
)

var indentCmd = &cobra.Command{
	Use:   "indent FILE",
	Short: "Re-indent lines with an indent policy",
	Long: `Re-indent the lines of FILE, each against the line above it, with the indent
policy from --mode or the config: text aligns every line with the one above,
cpp does the same but keeps preprocessor lines at column 0 and does not indent
namespace bodies.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := indentOut.validate(); err != nil {
			return err
		}
		if indentMode != "" {
			c := cfg
			c.Indent = indentMode
			if err := c.Validate(); err != nil {
				return err
			}
			cfg = c
		}
		b, err := openBuffer(args[0])
		if err != nil {
			return err
		}
		lo, hi, err := indentRange.rows(b)
		if err != nil {
			return err
		}
		before := saveString(b)
		for y := max(lo, 1); y <= hi; y++ {
			b.SetCursor(buffer.Point{X: 0, Y: y})
			b.Indent()
		}
		log.Info(log.CatCLI, "indented", "path", args[0], "mode", cfg.Indent, "edits", b.History().UndoLen())
		return indentOut.emit(cmd.OutOrStdout(), args[0], before, b)
	},
}

func init() {
	for _, c := range []*cobra.Command{keepLinesCmd, removeLinesCmd} {
		c.Flags().BoolVarP(&filterIgnoreCase, "ignore-case", "i", false, "match case-insensitively")
		filterOut.register(c)
		rootCmd.AddCommand(c)
	}

	sortRange.register(sortLinesCmd)
	sortOut.register(sortLinesCmd)
	rootCmd.AddCommand(sortLinesCmd)

	indentCmd.Flags().StringVar(&indentMode, "mode", "",
		fmt.Sprintf("indent policy: %s, %s or %s (default: from config)", config.IndentText, config.IndentCpp, config.IndentNone))
	indentRange.register(indentCmd)
	indentOut.register(indentCmd)
	rootCmd.AddCommand(indentCmd)
}
