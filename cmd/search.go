package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivemoreminix/tedit/ui/buffer"
)

var (
	searchRegexp     bool
	searchIgnoreCase bool
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY FILE",
	Short: "Find text in a file",
	Long: `Print every occurrence of QUERY in FILE as LINE:COLUMN: TEXT, counting both from 1,
then the number of matches. QUERY is plain text unless --regexp is given; a
regular expression reports its first match on each line.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBuffer(args[1])
		if err != nil {
			return err
		}
		if searchRegexp {
			return searchPattern(cmd.OutOrStdout(), b, args[0], searchIgnoreCase || cfg.IgnoreCase)
		}
		return searchText(cmd.OutOrStdout(), b, args[0])
	},
}

func searchText(w io.Writer, b *buffer.Buffer, query string) error {
	s := buffer.NewSearch(b)
	s.Update(query)
	for _, y := range s.Lines() {
		for _, m := range s.LineMatches(y) {
			fmt.Fprintf(w, "%d:%d: %s\n", y+1, m.Col+1, b.LineString(y))
		}
	}
	_, err := fmt.Fprintf(w, "%d matches\n", s.Count())
	return err
}

func searchPattern(w io.Writer, b *buffer.Buffer, expr string, ignoreCase bool) error {
	p, err := patterns.Compile(expr, ignoreCase)
	if err != nil {
		return err
	}
	var n int
	for y := range len(b.Lines()) {
		line := b.LineString(y)
		if idx, _, ok := p.Find(line); ok {
			n++
			fmt.Fprintf(w, "%d:%d: %s\n", y+1, idx+1, line)
		}
	}
	_, err = fmt.Fprintf(w, "%d matches\n", n)
	return err
}

func init() {
	searchCmd.Flags().BoolVarP(&searchRegexp, "regexp", "e", false, "treat QUERY as a regular expression")
	searchCmd.Flags().BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "with --regexp, match case-insensitively")
	rootCmd.AddCommand(searchCmd)
}
