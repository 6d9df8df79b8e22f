package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: merged per key, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}

	if override == nil {
		return base
	}

	result := *base

	if override.Classification != "" {
		result.Classification = override.Classification
	}

	if override.UnmatchedColor != "" {
		result.UnmatchedColor = override.UnmatchedColor
	}

	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}

	if override.Format != "" {
		result.Format = override.Format
	}

	if override.Language != "" {
		result.Language = override.Language
	}

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so only a set flag overrides.
	if override.UnmatchedOnly {
		result.UnmatchedOnly = true
	}

	result.Brackets = mergeBrackets(base.Brackets, override.Brackets)
	result.Extensions = mergeStrings(base.Extensions, override.Extensions)

	if override.Palette != nil {
		result.Palette = slices.Clone(override.Palette)
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return &result
}

// mergeBrackets merges per language. A language configured in override
// replaces the base pairs for that language.
func mergeBrackets(base, override map[string][]catalog.Pair) map[string][]catalog.Pair {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string][]catalog.Pair, len(base)+len(override))
	for lang, pairs := range base {
		result[lang] = slices.Clone(pairs)
	}

	for lang, pairs := range override {
		result[lang] = slices.Clone(pairs)
	}

	return result
}

func mergeStrings(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := maps.Clone(base)
	if result == nil {
		result = make(map[string]string, len(override))
	}

	maps.Copy(result, override)

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}

	return result
}
