package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fivemoreminix/tedit/ui/buffer"
)

var wrapWidth int

var wrapCmd = &cobra.Command{
	Use:   "wrap FILE",
	Short: "Show how lines wrap on a screen",
	Long: `Print, for every line of FILE, how many screen rows it needs at --width columns
and the screen row it starts on, then the total number of rows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBuffer(args[0])
		if err != nil {
			return err
		}
		if wrapWidth > 0 {
			vp := b.Viewport()
			vp.Width = wrapWidth
			b.Resize(vp)
		}
		return printWrap(cmd.OutOrStdout(), b)
	},
}

func printWrap(w io.Writer, b *buffer.Buffer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tROWS\tSTART")
	width := b.Viewport().Width
	total := 0
	for y := range len(b.Lines()) {
		start := b.Buffer2Screen(buffer.Point{Y: y}).Y - b.Viewport().Origin.Y
		rows := b.At(y).NumLinesNeeded(width)
		total += rows
		fmt.Fprintf(tw, "%d\t%d\t%d\n", y+1, rows, start)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "total %d rows at width %d\n", total, width)
	return err
}

var statWidth int

var statCmd = &cobra.Command{
	Use:   "stat FILE",
	Short: "Print the status line of a file",
	Long: `Print the status line an editor shows for FILE, cut to --width cells, then its
size in lines and bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBuffer(args[0])
		if err != nil {
			return err
		}
		doc := b.Document()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, b.Status(statWidth))
		_, err = fmt.Fprintf(out, "%d lines, %d bytes\n", doc.LineCount(), doc.Len())
		return err
	},
}

func init() {
	wrapCmd.Flags().IntVarP(&wrapWidth, "width", "w", 0, "screen width in columns (default: viewport.width from config)")
	rootCmd.AddCommand(wrapCmd)

	statCmd.Flags().IntVarP(&statWidth, "width", "w", 0, "cut the status line to this many cells (default: no limit)")
	rootCmd.AddCommand(statCmd)
}
