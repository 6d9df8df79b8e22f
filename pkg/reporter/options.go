package reporter

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/query"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the source line under unmatched brackets.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// UnmatchedOnly limits output to brackets without a partner.
	UnmatchedOnly bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// Palette and UnmatchedColor colour brackets by nesting level.
	Palette        []string
	UnmatchedColor string

	// Version is the tool version written into JSON and SARIF output.
	Version string

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	cfg := config.NewConfig()

	return Options{
		Writer:         os.Stdout,
		ErrorWriter:    os.Stderr,
		Format:         FormatText,
		Color:          "auto",
		ShowContext:    true,
		ShowSummary:    true,
		Palette:        cfg.Palette,
		UnmatchedColor: cfg.UnmatchedColor,
		Version:        "dev",
	}
}

// styles builds the bracket styles for the writer.
func (o Options) styles() *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(o.Color, o.Writer)).WithPalette(o.Palette, o.UnmatchedColor)
}

// displayPath makes path relative to WorkingDir when possible.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}

	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil {
		return path
	}

	return filepath.ToSlash(rel)
}

// visible returns the brackets of file that the options select.
func (o Options) visible(file *runner.FileResult) []query.BracketInfo {
	if o.UnmatchedOnly {
		return file.Unmatched()
	}

	return file.Brackets
}
