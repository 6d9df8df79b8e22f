package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
)

//nolint:gochecknoglobals // read-only, in help order
var formats = []Format{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary}

// Formats returns every supported format.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat parses a format name, ignoring case. The empty name is text.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}

	if f := Format(name); f.IsValid() {
		return f, nil
	}

	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, formatList())
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}

func formatList() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}

	return strings.Join(names, ", ")
}
