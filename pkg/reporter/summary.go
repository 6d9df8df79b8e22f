package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	nameColWidth      = 30 // Width of the language column.
	fileColWidth      = 60 // Width of the file path column (wider for relative paths).
	numColWidth       = 9  // Width of numeric columns.
	maxFilePathLength = 58 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat(" ", width-len(s)) + s
}

// languageRow aggregates the scanned files of one language.
type languageRow struct {
	language  string
	files     int
	brackets  int
	unmatched int
}

// SummaryReporter formats results as aggregated tables.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: opts.styles(),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || result.Stats.FilesScanned == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files scanned"))
		return 0, nil
	}

	r.renderLanguageTable(languageRows(result))
	r.renderFileTable(result)
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.Unmatched, nil
}

// languageRows groups scanned files by language, busiest first.
func languageRows(result *runner.Result) []languageRow {
	byLang := make(map[string]*languageRow)

	for i := range result.Files {
		file := &result.Files[i]
		if file.Error != nil || file.Skipped() {
			continue
		}

		row, ok := byLang[file.Language]
		if !ok {
			row = &languageRow{language: file.Language}
			byLang[file.Language] = row
		}

		row.files++
		row.brackets += len(file.Brackets)
		row.unmatched += len(file.Unmatched())
	}

	rows := make([]languageRow, 0, len(byLang))
	for _, row := range byLang {
		rows = append(rows, *row)
	}

	slices.SortFunc(rows, func(a, b languageRow) int {
		if c := cmp.Compare(b.brackets, a.brackets); c != 0 {
			return c
		}

		return strings.Compare(a.language, b.language)
	})

	return rows
}

func (r *SummaryReporter) renderLanguageTable(rows []languageRow) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Languages"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Language", nameColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Brackets", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Unmatched", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, row := range rows {
		name := padRight(row.language, nameColWidth)
		unmatched := padLeft(humanize.Comma(int64(row.unmatched)), numColWidth)

		if row.unmatched > 0 {
			name = r.styles.TableUnmatched.Render(name)
			unmatched = r.styles.TableUnmatched.Render(unmatched)
		}

		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			name,
			padLeft(humanize.Comma(int64(row.files)), numColWidth),
			padLeft(humanize.Comma(int64(row.brackets)), numColWidth),
			unmatched,
		)
	}
}

// renderFileTable lists the files with unmatched brackets.
func (r *SummaryReporter) renderFileTable(result *runner.Result) {
	if result.Stats.FilesWithUnmatched == 0 {
		return
	}

	fmt.Fprintln(r.bw)
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files with unmatched brackets"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Brackets", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Unmatched", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for i := range result.Files {
		file := &result.Files[i]

		unmatched := len(file.Unmatched())
		if unmatched == 0 {
			continue
		}

		path := r.opts.displayPath(file.Path)
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.TableUnmatched.Render(padRight(path, fileColWidth)),
			padLeft(humanize.Comma(int64(len(file.Brackets))), numColWidth),
			padLeft(humanize.Comma(int64(unmatched)), numColWidth),
		)
	}
}
