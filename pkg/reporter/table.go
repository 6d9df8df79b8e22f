package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as a styled table with one row per bracket.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := opts.styles()

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to scan."))
		}

		return 0, nil
	}

	groups := make([][]pretty.TableRow, 0, len(result.Files))

	var unmatched int

	for i := range result.Files {
		file := &result.Files[i]
		if file.Error != nil || file.Skipped() {
			continue
		}

		brackets := r.opts.visible(file)
		for _, b := range brackets {
			if b.Unmatched {
				unmatched++
			}
		}

		groups = append(groups, pretty.BracketRows(r.opts.displayPath(file.Path), brackets))
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(groups))

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return unmatched, nil
}

// getTerminalWidth returns the terminal width or a default.
func getTerminalWidth(w io.Writer) int {
	type fder interface{ Fd() uintptr }

	if f, ok := w.(fder); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}

	return defaultTermWidth
}
