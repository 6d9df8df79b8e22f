// Package config defines the configuration types for gobrackets.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/gobrackets/pkg/catalog"

// Classification controls whether comments and strings are excluded.
type Classification string

const (
	// ClassificationAuto classifies with a lexer when one is known for the
	// language.
	ClassificationAuto Classification = "auto"

	// ClassificationNone treats every bracket as code.
	ClassificationNone Classification = "none"
)

// IsValid returns true if the classification mode is known.
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationAuto, ClassificationNone:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for bracket reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// DefaultMaxFileSize is the largest file scanned by default.
const DefaultMaxFileSize = 8 << 20

// DefaultPalette cycles through three colours by nesting level.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultPalette = []string{"#FFD700", "#DA70D6", "#179FFF"}

// Config is the root configuration structure for gobrackets.
type Config struct {
	// Classification selects comment and string handling ("auto" or "none").
	Classification Classification `mapstructure:"classification" yaml:"classification"`

	// Brackets adds pairs per language id. They take precedence over the
	// built-in catalog for the same opening token.
	Brackets map[string][]catalog.Pair `mapstructure:"brackets" yaml:"brackets,omitempty"`

	// Extensions maps file extensions to language ids, overriding detection.
	Extensions map[string]string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Palette lists colours for nesting levels, wrapping around.
	Palette []string `mapstructure:"palette" yaml:"palette,omitempty"`

	// UnmatchedColor renders unmatched brackets.
	UnmatchedColor string `mapstructure:"unmatched_color" yaml:"unmatched_color,omitempty"`

	// MaxFileSize skips larger files. Zero means no limit.
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Language forces one language id for every file.
	Language string `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// UnmatchedOnly limits reports to unmatched brackets.
	UnmatchedOnly bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Classification: ClassificationAuto,
		Brackets:       make(map[string][]catalog.Pair),
		Palette:        append([]string(nil), DefaultPalette...),
		UnmatchedColor: "#FF4D4F",
		MaxFileSize:    DefaultMaxFileSize,
		Format:         FormatText,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// PairsFor returns the configured override pairs for a language id.
func (c *Config) PairsFor(language string) []catalog.Pair {
	if c == nil {
		return nil
	}

	return c.Brackets[language]
}
