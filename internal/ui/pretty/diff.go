package pretty

import "strings"

// FormatDiff colours a unified diff line by line.
func (s *Styles) FormatDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")

	var builder strings.Builder

	for _, line := range lines {
		body, newline := strings.CutSuffix(line, "\n")

		switch {
		case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"):
			body = s.DiffHeader.Render(body)
		case strings.HasPrefix(body, "@@"):
			body = s.DiffHunk.Render(body)
		case strings.HasPrefix(body, "+"):
			body = s.DiffAdd.Render(body)
		case strings.HasPrefix(body, "-"):
			body = s.DiffRemove.Render(body)
		case body != "":
			body = s.DiffContext.Render(body)
		}

		builder.WriteString(body)

		if newline {
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}
