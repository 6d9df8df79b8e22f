package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/query"
)

func bracketAt(line, col int, text string, role ast.Role, level int, unmatched bool) query.BracketInfo {
	start := length.FromLineColumn(line, col)

	return query.BracketInfo{
		Start:     start,
		End:       length.Add(start, length.Of(text)),
		Text:      text,
		Role:      role,
		Level:     level,
		Unmatched: unmatched,
	}
}

func TestFormatBracket(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	matched := styles.FormatBracket("main.go", bracketAt(2, 4, "(", ast.RoleOpening, 1, false), true, "ignored")
	assert.Equal(t, "  main.go:3:5  level 1  (  open\n", matched)

	unmatched := styles.FormatBracket("main.go", bracketAt(0, 6, ")", ast.RoleClosing, 0, true), true, "x := a)")
	lines := strings.Split(unmatched, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `  main.go:1:7  unmatched  )  ")" closes nothing`, lines[0])
	assert.Equal(t, "        x := a)", lines[1])
	assert.Equal(t, strings.Repeat(" ", 14)+"^", lines[2])
}

func TestUnmatchedMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"{" is never closed`, pretty.UnmatchedMessage(bracketAt(0, 0, "{", ast.RoleOpening, 0, true)))
	assert.Equal(t, `"]" closes nothing`, pretty.UnmatchedMessage(bracketAt(0, 0, "]", ast.RoleClosing, 0, true)))
}

func TestFormatSourceContext_Alignment(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		caret  string
	}{
		{name: "ascii", line: "f(x", column: 2, caret: "        " + " " + "^"},
		{name: "wide runes", line: "名前(", column: len("名前") + 1, caret: "        " + "    " + "^"},
		{name: "tab", line: "\t(", column: 2, caret: "        " + "\t" + "^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := styles.FormatSourceContext(tt.line, tt.column)
			lines := strings.Split(out, "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, tt.caret, lines[1])
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.go [go] (12 brackets)", styles.FormatFileHeader("a.go", "go", 12, 0))
	assert.Equal(t, "b.py [python] (3 brackets, 1 unmatched)", styles.FormatFileHeader("b.py", "python", 3, 1))
}

func TestColorize(t *testing.T) {
	t.Parallel()

	text := "f(a[0])\n}\n"
	brackets := []query.BracketInfo{
		bracketAt(0, 1, "(", ast.RoleOpening, 0, false),
		bracketAt(0, 3, "[", ast.RoleOpening, 1, false),
		bracketAt(0, 5, "]", ast.RoleClosing, 1, false),
		bracketAt(0, 6, ")", ast.RoleClosing, 0, false),
		bracketAt(1, 0, "}", ast.RoleClosing, 0, true),
	}

	plain := pretty.NewStyles(false).Colorize(text, brackets)
	assert.Equal(t, text, plain)

	colored := pretty.NewStyles(true).WithPalette([]string{"1", "2"}, "9").Colorize(text, brackets)
	assert.NotEqual(t, text, colored)
	assert.Equal(t, text, stripANSI(colored))
}

func stripANSI(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	diff := "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n"
	assert.Equal(t, diff, pretty.NewStyles(false).FormatDiff(diff))
}

func TestTableFormatter(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	table := pretty.NewTableFormatter(styles, 80)

	rows := pretty.BracketRows("main.go", []query.BracketInfo{
		bracketAt(0, 1, "(", ast.RoleOpening, 0, false),
		bracketAt(0, 2, ")", ast.RoleClosing, 0, false),
		bracketAt(1, 0, "}", ast.RoleClosing, 0, true),
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "2:1", rows[2].Location)
	assert.Equal(t, "unmatched", rows[2].Status)

	out := table.FormatTable([][]pretty.TableRow{rows, nil})
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "unmatched")
	assert.Contains(t, out, "Legend")
	assert.Equal(t, 7, strings.Count(out, "\n"), "header, rule, three rows, rule, legend")

	assert.Empty(t, table.FormatTable(nil))
}
