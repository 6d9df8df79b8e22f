// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Bracket report components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Language   lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style
	Unmatched  lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableUnmatched lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	levels   []lipgloss.Style
	renderer *lipgloss.Renderer
	color    bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}

	return newColorStyles()
}

// newColorStyles creates styles with ANSI colors. Color was requested, so a
// renderer that detected no color support is upgraded to true color.
func newColorStyles() *Styles {
	r := lipgloss.NewRenderer(os.Stdout)
	if r.ColorProfile() == termenv.Ascii {
		r.SetColorProfile(termenv.TrueColor)
	}

	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),
		Info:    fg("12").Bold(true),

		FilePath:   r.NewStyle().Bold(true),
		Location:   fg("8"),
		Language:   fg("14"),
		Message:    r.NewStyle(),
		SourceLine: fg("7").TabWidth(lipgloss.NoTabConversion),
		Caret:      fg("9"),
		Unmatched:  fg("9").Bold(true),

		DiffHeader:  r.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		SummaryTitle: r.NewStyle().Bold(true),
		SummaryValue: r.NewStyle(),
		Success:      fg("10").Bold(true),
		Failure:      fg("9").Bold(true),

		TableHeader:    fg("7").Bold(true),
		TableUnmatched: fg("9"),
		TableLegend:    fg("8").Italic(true),
		TableSeparator: fg("8"),

		Dim:  fg("8"),
		Bold: r.NewStyle().Bold(true),

		renderer: r,
		color:    true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	source := plain.TabWidth(lipgloss.NoTabConversion)

	return &Styles{
		Error:          plain,
		Warning:        plain,
		Info:           plain,
		FilePath:       plain,
		Location:       plain,
		Language:       plain,
		Message:        plain,
		SourceLine:     source,
		Caret:          plain,
		Unmatched:      plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableUnmatched: plain,
		TableLegend:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ColorEnabled reports whether the styles emit ANSI sequences.
func (s *Styles) ColorEnabled() bool {
	return s.color
}

// WithPalette returns a copy whose nesting levels cycle through palette and
// whose unmatched brackets use the unmatched colour. Without color the
// copy renders plain text.
func (s *Styles) WithPalette(palette []string, unmatched string) *Styles {
	out := *s
	out.levels = nil

	if !s.color {
		return &out
	}

	for _, c := range palette {
		out.levels = append(out.levels, s.renderer.NewStyle().Foreground(lipgloss.Color(c)))
	}

	if unmatched != "" {
		out.Unmatched = s.renderer.NewStyle().Foreground(lipgloss.Color(unmatched)).Bold(true)
		out.TableUnmatched = s.renderer.NewStyle().Foreground(lipgloss.Color(unmatched))
	}

	return &out
}

// Level returns the style of a nesting level, wrapping around the palette.
func (s *Styles) Level(level int) lipgloss.Style {
	if len(s.levels) == 0 || level < 0 {
		return s.Message
	}

	return s.levels[level%len(s.levels)]
}

// Bracket renders one bracket token by level, or as unmatched.
func (s *Styles) Bracket(text string, level int, unmatched bool) string {
	if unmatched {
		return s.Unmatched.Render(text)
	}

	return s.Level(level).Render(text)
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}

		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}

		return false
	}
}
