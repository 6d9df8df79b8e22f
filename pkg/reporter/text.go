package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/runner"
	"github.com/yaklabco/gobrackets/pkg/textbuf"
)

// TextReporter formats results as styled terminal output, one line per
// bracket, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: opts.styles(),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	var unmatched int

	for i := range result.Files {
		unmatched += r.reportFile(&result.Files[i])
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return unmatched, nil
}

func (r *TextReporter) reportFile(file *runner.FileResult) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)

		return 0
	}

	brackets := r.opts.visible(file)
	if file.Skipped() || len(brackets) == 0 {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Language, len(file.Brackets), len(file.Unmatched())))

	var (
		source    *textbuf.Buffer
		unmatched int
	)

	for _, b := range brackets {
		var line string

		if b.Unmatched {
			unmatched++

			if r.opts.ShowContext {
				if source == nil {
					source = textbuf.New(file.Content)
				}

				line = source.Line(b.Start.Lines())
			}
		}

		fmt.Fprint(r.bw, r.styles.FormatBracket(path, b, r.opts.ShowContext, line))
	}

	fmt.Fprintln(r.bw)

	return unmatched
}
