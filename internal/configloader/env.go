package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gobrackets/pkg/config"
)

// envVarPrefix is the prefix for all gobrackets environment variables.
const envVarPrefix = "GOBRACKETS_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CLASSIFICATION": {
		description: "Comment and string handling: auto or none",
		apply: func(cfg *config.Config, v string) error {
			cfg.Classification = config.Classification(v)
			return nil
		},
	},
	"FORMAT": {
		description: "Output format: text, table, json, sarif, or summary",
		apply: func(cfg *config.Config, v string) error {
			cfg.Format = config.OutputFormat(v)
			return nil
		},
	},
	"LANGUAGE": {
		description: "Language id used for every file",
		apply: func(cfg *config.Config, v string) error {
			cfg.Language = v
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}

			cfg.Jobs = n

			return nil
		},
	},
	"MAX_FILE_SIZE": {
		description: "Skip files larger than this many bytes (0 = no limit)",
		apply: func(cfg *config.Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}

			cfg.MaxFileSize = n

			return nil
		},
	},
	"PALETTE": {
		description: "Comma-separated list of nesting level colours",
		apply: func(cfg *config.Config, v string) error {
			cfg.Palette = parseSliceValue(v)
			return nil
		},
	},
	"UNMATCHED_COLOR": {
		description: "Colour for unmatched brackets",
		apply: func(cfg *config.Config, v string) error {
			cfg.UnmatchedColor = v
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, v string) error {
			cfg.Ignore = parseSliceValue(v)
			return nil
		},
	},
	"UNMATCHED_ONLY": {
		description: "Report only unmatched brackets: true or false",
		apply: func(cfg *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
			}

			cfg.UnmatchedOnly = b

			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOBRACKETS_ (e.g., GOBRACKETS_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedKeys(envMappings) {
		envVar := envVarPrefix + suffix

		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := envMappings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
