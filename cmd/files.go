package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/fivemoreminix/tedit/pkg/log"
	"github.com/fivemoreminix/tedit/ui/buffer"
)

// outputFlags choose where an edited buffer goes.
type outputFlags struct {
	output  string
	inPlace bool
	diff    bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the result to this file")
	cmd.Flags().BoolVar(&o.inPlace, "in-place", false, "overwrite the input file")
	cmd.Flags().BoolVar(&o.diff, "diff", false, "print a line diff of the change instead of the text")
}

func (o *outputFlags) validate() error {
	if o.inPlace && o.output != "" {
		return fmt.Errorf("--in-place and --output cannot be used together")
	}
	return nil
}

// openBuffer loads path into a buffer configured from cfg.
func openBuffer(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	b := buffer.New(append(cfg.Options(), buffer.WithName(path))...)
	if err := b.LoadFrom(f, 0); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Debug(log.CatCLI, "opened", "path", path, "lines", b.Length())
	return b, nil
}

// saveString returns the text b would be saved as.
func saveString(b *buffer.Buffer) string {
	return b.Document().String()
}

// emit sends the edited buffer where o says. before is the saved text of the
// buffer prior to editing.
func (o *outputFlags) emit(w io.Writer, path, before string, b *buffer.Buffer) error {
	if o.diff {
		if _, err := io.WriteString(w, lineDiff(before, saveString(b))); err != nil {
			return err
		}
	}

	switch {
	case o.inPlace:
		return writeBuffer(path, b)
	case o.output != "":
		return writeBuffer(o.output, b)
	case o.diff:
		return nil
	}
	return b.SaveTo(w)
}

// writeBuffer saves b to path by writing a temp file beside it and renaming
// it into place. An existing file keeps its permissions.
func writeBuffer(path string, b *buffer.Buffer) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	var buf bytes.Buffer
	if err := b.SaveTo(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, ".tedit.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Chmod(mode); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	b.SetModified(false)
	log.Info(log.CatCLI, "wrote", "path", path, "lines", len(b.Lines()))
	return nil
}

// lineDiff returns a line by line diff of two texts: unchanged lines start
// with ' ', removed ones with '-' and added ones with '+'.
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
