package pretty

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/gobrackets/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "1,204 brackets, 2 unmatched in 1 file (12 files scanned, 3 skipped)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	scanned := fmt.Sprintf("%s scanned", english.Plural(stats.FilesScanned, "file", ""))
	if stats.FilesSkipped > 0 {
		scanned += fmt.Sprintf(", %d skipped", stats.FilesSkipped)
	}

	if stats.FilesErrored > 0 {
		scanned += ", " + s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	brackets := humanize.Comma(int64(stats.Brackets)) + " " + english.PluralWord(stats.Brackets, "bracket", "")

	if stats.Unmatched == 0 {
		return s.Success.Render(brackets+", none unmatched") + s.Dim.Render(" ("+scanned+")") + "\n"
	}

	unmatched := s.Failure.Render(fmt.Sprintf("%s unmatched", humanize.Comma(int64(stats.Unmatched))))

	return fmt.Sprintf("%s, %s in %s %s\n",
		brackets,
		unmatched,
		english.Plural(stats.FilesWithUnmatched, "file", ""),
		s.Dim.Render("("+scanned+")"),
	)
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files scanned", s.SummaryValue.Render(humanize.Comma(int64(stats.FilesScanned))))

	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Dim.Render(humanize.Comma(int64(stats.FilesSkipped))))
	}

	if stats.FilesErrored > 0 {
		row("Files failed", s.Error.Render(humanize.Comma(int64(stats.FilesErrored))))
	}

	row("Lines", s.SummaryValue.Render(humanize.Comma(int64(stats.Lines))))
	row("Size", s.SummaryValue.Render(humanize.IBytes(uint64(max(stats.Bytes, 0)))))

	builder.WriteString("\n")

	row("Brackets", s.SummaryValue.Render(humanize.Comma(int64(stats.Brackets))))

	if stats.Unmatched > 0 {
		row("Unmatched", s.Failure.Render(humanize.Comma(int64(stats.Unmatched))))
		row("Files affected", s.Failure.Render(humanize.Comma(int64(stats.FilesWithUnmatched))))
	}

	if stats.Duration > 0 {
		row("Duration", s.Dim.Render(stats.Duration.Round(time.Millisecond).String()))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Scan finished with errors"))
	case stats.Unmatched > 0:
		builder.WriteString(s.Warning.Render("Unmatched brackets found"))
	default:
		builder.WriteString(s.Success.Render("All brackets matched"))
	}

	builder.WriteString("\n")

	return builder.String()
}
