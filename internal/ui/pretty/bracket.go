package pretty

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/query"
)

// FormatBracket formats one bracket occurrence for terminal output.
// Unmatched brackets get a message and, when showContext is set, the
// source line with a caret under the token.
func (s *Styles) FormatBracket(path string, info query.BracketInfo, showContext bool, sourceLine string) string {
	var builder strings.Builder

	pos := info.Range().Start

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), pos.Line, pos.Column)
	token := s.Bracket(info.Text, info.Level, info.Unmatched)

	if !info.Unmatched {
		builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
			location,
			s.Dim.Render(fmt.Sprintf("level %d", info.Level)),
			token,
			s.Dim.Render(info.Role.String()),
		))

		return builder.String()
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Unmatched.Render("unmatched"),
		token,
		s.Message.Render(UnmatchedMessage(info)),
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, pos.Column))
	}

	return builder.String()
}

// UnmatchedMessage describes why a bracket has no partner.
func UnmatchedMessage(info query.BracketInfo) string {
	if info.Role == ast.RoleClosing {
		return fmt.Sprintf("%q closes nothing", info.Text)
	}

	return fmt.Sprintf("%q is never closed", info.Text)
}

// FormatSourceContext formats the source line with a caret marker under
// the 1-based byte column. Wide characters and tabs before the column keep
// the caret aligned.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with bracket output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(indent + caretPadding(line, column-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// caretPadding returns the whitespace covering the display width of
// line[:offset].
func caretPadding(line string, offset int) string {
	prefix := line[:min(max(offset, 0), len(line))]

	var pad strings.Builder

	state := -1
	for len(prefix) > 0 {
		var (
			cluster string
			width   int
		)

		cluster, prefix, width, state = uniseg.FirstGraphemeClusterInString(prefix, state)
		if cluster == "\t" {
			pad.WriteByte('\t')
			continue
		}

		pad.WriteString(strings.Repeat(" ", width))
	}

	return pad.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, language string, brackets, unmatched int) string {
	header := s.FilePath.Render(path) + " " + s.Language.Render("["+language+"]")

	detail := fmt.Sprintf(" (%d brackets", brackets)
	if unmatched > 0 {
		detail += fmt.Sprintf(", %d unmatched", unmatched)
	}

	return header + s.Dim.Render(detail+")")
}
