package configloader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/tokenizer"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "brackets.go[0]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the errors as one error, or nil when the configuration is
// valid. Every entry is reachable with errors.As.
func (r *ValidationResult) Err() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		return &r.Errors[0]
	}

	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}

	return errors.Join(errs...)
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatTable:   true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatSummary: true,
}

// colorPattern accepts hex colours and ANSI colour numbers.
//
//nolint:gochecknoglobals // Compiled once.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Validate checks a configuration for errors and warnings. Unknown
// languages in bracket overrides are reported as warnings when cat is
// non-nil.
func Validate(cfg *config.Config, cat *catalog.Catalog) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Classification != "" && !cfg.Classification.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "classification",
			Value:   cfg.Classification,
			Message: fmt.Sprintf("invalid classification %q; must be one of: auto, none", cfg.Classification),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, table, json, sarif, summary", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.MaxFileSize < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_file_size",
			Value:   cfg.MaxFileSize,
			Message: "max_file_size must be >= 0 (0 means no limit)",
		})
	}

	validateColors(cfg, result)
	validateBrackets(cfg, cat, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateColors(cfg *config.Config, result *ValidationResult) {
	check := func(field, value string) {
		if !colorPattern.MatchString(value) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("invalid colour %q; use #rgb, #rrggbb or an ANSI number", value),
			})
		}
	}

	for i, colour := range cfg.Palette {
		check(fmt.Sprintf("palette[%d]", i), colour)
	}

	if cfg.UnmatchedColor != "" {
		check("unmatched_color", cfg.UnmatchedColor)
	}
}

// validateBrackets compiles each language's overrides on their own, which
// must succeed, and then together with the catalog pairs, where skipped
// tokens are only warnings.
func validateBrackets(cfg *config.Config, cat *catalog.Catalog, result *ValidationResult) {
	for _, lang := range sortedKeys(cfg.Brackets) {
		pairs := cfg.Brackets[lang]
		field := "brackets." + lang

		if _, errs := tokenizer.Compile(pairs, densekey.NewProvider()); len(errs) > 0 {
			for _, err := range errs {
				result.Errors = append(result.Errors, ValidationError{Field: field, Value: pairs, Message: err.Error()})
			}

			continue
		}

		if cat == nil {
			continue
		}

		if !cat.Has(lang) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   lang,
				Message: fmt.Sprintf("unknown language %q; only the configured pairs apply", lang),
			})
		}

		_, errs := tokenizer.Compile(cat.Pairs(lang, pairs), densekey.NewProvider())
		for _, err := range errs {
			result.Warnings = append(result.Warnings, ValidationError{Field: field, Value: pairs, Message: err.Error()})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: "invalid glob pattern",
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg, nil)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}

	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
