package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gobrackets/pkg/catalog"
)

const yamlIndent = 2

// ToYAML serializes the file-backed fields of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration below a comment header,
// separated by a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	return []byte(strings.TrimRight(header, "\n") + "\n\n" + string(body)), nil
}

// FromYAML parses a configuration. Unknown keys are ignored.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Brackets == nil {
		cfg.Brackets = make(map[string][]catalog.Pair)
	}

	return cfg, nil
}

// Clone returns a deep copy, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Palette = slices.Clone(c.Palette)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Extensions = maps.Clone(c.Extensions)

	if c.Brackets != nil {
		clone.Brackets = make(map[string][]catalog.Pair, len(c.Brackets))
		for lang, pairs := range c.Brackets {
			clone.Brackets[lang] = slices.Clone(pairs)
		}
	}

	return &clone
}
