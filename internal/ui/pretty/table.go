package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gobrackets/pkg/query"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LOC, LEVEL, TOKEN, STATUS
	minFileWidth     = 20
	minLocWidth      = 8
	minLevelWidth    = 5
	minTokenWidth    = 5
	minStatusWidth   = 9
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	statusUnmatched  = "unmatched"
)

// TableRow represents a single row in the bracket table.
type TableRow struct {
	File      string
	Location  string
	Level     int
	Token     string
	Status    string
	Unmatched bool
}

// BracketRows converts the brackets of one file to table rows.
func BracketRows(path string, brackets []query.BracketInfo) []TableRow {
	rows := make([]TableRow, 0, len(brackets))

	for _, b := range brackets {
		status := b.Role.String()
		if b.Unmatched {
			status = statusUnmatched
		}

		rows = append(rows, TableRow{
			File:      path,
			Location:  b.Range().Start.String(),
			Level:     b.Level,
			Token:     b.Text,
			Status:    status,
			Unmatched: b.Unmatched,
		})
	}

	return rows
}

// TableFormatter formats brackets as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}

	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	file   int
	loc    int
	level  int
	token  int
	status int
}

// FormatTable formats row groups, one per file, as a styled table.
func (t *TableFormatter) FormatTable(groups [][]TableRow) string {
	groups = nonEmpty(groups)
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}

		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

func nonEmpty(groups [][]TableRow) [][]TableRow {
	out := groups[:0:0]

	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, g)
		}
	}

	return out
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		loc:    minLocWidth,
		level:  minLevelWidth,
		token:  minTokenWidth,
		status: minStatusWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, uniseg.StringWidth(row.File))
			widths.loc = max(widths.loc, len(row.Location))
			widths.token = max(widths.token, uniseg.StringWidth(row.Token))
		}
	}

	// The file column absorbs any overflow.
	if total := t.totalWidth(widths); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) totalWidth(w columnWidths) int {
	return w.file + w.loc + w.level + w.token + w.status + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	header := " " + strings.Join([]string{
		pad("FILE", w.file),
		pad("LOC", w.loc),
		pad("LEVEL", w.level),
		pad("TOKEN", w.token),
		pad("STATUS", w.status),
	}, "  ")

	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(w columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(w)))
}

// formatRow pads every cell before styling so ANSI sequences do not
// disturb the alignment.
func (t *TableFormatter) formatRow(row TableRow, w columnWidths) string {
	token := t.styles.Bracket(pad(row.Token, w.token), row.Level, row.Unmatched)

	status := pad(row.Status, w.status)
	if row.Unmatched {
		status = t.styles.TableUnmatched.Render(status)
	}

	return " " + strings.Join([]string{
		t.styles.FilePath.Render(pad(truncateFilePath(row.File, w.file), w.file)),
		t.styles.Location.Render(pad(row.Location, w.loc)),
		pad(strconv.Itoa(row.Level), w.level),
		token,
		status,
	}, "  ")
}

// formatLegend formats the legend explaining the table colours.
func (t *TableFormatter) formatLegend() string {
	if !t.styles.ColorEnabled() {
		return t.styles.TableLegend.Render(" Legend: LEVEL is the nesting depth of the pair")
	}

	levels := make([]string, 0, len(t.styles.levels))
	for i := range t.styles.levels {
		levels = append(levels, t.styles.Level(i).Render(strconv.Itoa(i)))
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: levels %s  %s", strings.Join(levels, " "), t.styles.Unmatched.Render(statusUnmatched)),
	)
}

// pad right-pads s to width display columns.
func pad(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}

	return s
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}

	return "..." + path[len(path)-maxLen+3:]
}
