package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gobrackets/pkg/catalog"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents the built-in pairs of every catalog language.
	// If false, generates a minimal template.
	Full bool

	// Catalog supplies the languages for a full template. Nil means
	// catalog.Default.
	Catalog *catalog.Catalog

	// Languages restricts a full template to these ids.
	Languages []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	defaults := NewConfig()

	fmt.Fprintf(&buf, `# Comment and string handling: auto or none
classification: %s

# Files larger than this many bytes are skipped (0 = no limit)
max_file_size: %d

# Colours for nesting levels, reused when nesting is deeper
palette:
`, defaults.Classification, defaults.MaxFileSize)

	for _, colour := range defaults.Palette {
		fmt.Fprintf(&buf, "  - %s\n", strconv.Quote(colour))
	}

	fmt.Fprintf(&buf, `
# Colour for brackets without a partner
unmatched_color: %s

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Map extensions to languages
# extensions:
#   .tmpl: html

# Extra bracket pairs per language; they win over built-in pairs
# brackets:
#   go:
#     - open: "<"
#       close: ">"
`, strconv.Quote(defaults.UnmatchedColor))

	if opts.Full {
		writeCatalog(&buf, opts)
	}

	return buf.Bytes()
}

// writeCatalog documents the built-in pairs as comments.
func writeCatalog(buf *bytes.Buffer, opts TemplateOptions) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	languages := opts.Languages
	if len(languages) == 0 {
		languages = cat.Languages()
	}

	buf.WriteString("\n# Built-in pairs\n")

	for _, lang := range languages {
		pairs := cat.Pairs(lang, nil)
		if len(pairs) == 0 {
			continue
		}

		tokens := make([]string, 0, len(pairs))
		for _, p := range pairs {
			tokens = append(tokens, p.Open+" "+p.Close)
		}

		fmt.Fprintf(buf, "#   %s: %s\n", cat.Canonical(lang), strings.Join(tokens, ", "))
	}
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gobrackets configuration
# See: https://github.com/yaklabco/gobrackets`
}
