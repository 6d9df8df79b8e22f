// Package catalog maps language identifiers to their bracket pairs.
package catalog

import (
	"slices"
	"strings"
)

// Pair is one bracket pair, such as "(" and ")".
type Pair struct {
	Open  string `mapstructure:"open"  yaml:"open"  json:"open"`
	Close string `mapstructure:"close" yaml:"close" json:"close"`
}

// String implements fmt.Stringer.
func (p Pair) String() string {
	return p.Open + p.Close
}

// Catalog is a read-only table of bracket pairs per language.
type Catalog struct {
	languages map[string][]Pair
	aliases   map[string]string
}

// New returns a catalog over the given table. Language ids are matched
// case-insensitively.
func New(languages map[string][]Pair) *Catalog {
	c := &Catalog{
		languages: make(map[string][]Pair, len(languages)),
		aliases:   make(map[string]string),
	}

	for lang, pairs := range languages {
		c.languages[strings.ToLower(lang)] = slices.Clone(pairs)
	}

	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := New(defaultPairs)
	for alias, lang := range defaultAliases {
		c.aliases[alias] = lang
	}

	return c
}

// Languages returns the known language ids in sorted order.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.languages))
	for lang := range c.languages {
		out = append(out, lang)
	}

	slices.Sort(out)

	return out
}

// Has reports whether the catalog knows the language.
func (c *Catalog) Has(lang string) bool {
	_, ok := c.languages[c.resolve(lang)]
	return ok
}

// Pairs returns the bracket pairs for a language merged with overrides.
//
// Overrides come first and win over a default pair with the same opening
// token. Duplicate pairs are dropped. An unknown language yields only the
// overrides, which for no overrides means no brackets at all. Pairs with
// an empty token are passed through for the tokenizer to reject.
func (c *Catalog) Pairs(lang string, overrides []Pair) []Pair {
	defaults := c.languages[c.resolve(lang)]

	out := make([]Pair, 0, len(overrides)+len(defaults))
	seen := make(map[string]bool, cap(out))

	add := func(p Pair) {
		if seen[p.Open] {
			return
		}

		seen[p.Open] = true
		out = append(out, p)
	}

	for _, p := range overrides {
		add(p)
	}

	for _, p := range defaults {
		add(p)
	}

	return out
}

func (c *Catalog) resolve(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if target, ok := c.aliases[lang]; ok {
		return target
	}

	return lang
}

// Canonical returns the catalog id for a language name or alias, such as
// "cpp" for "C++". Unknown names are returned lowercased.
func (c *Catalog) Canonical(lang string) string {
	return c.resolve(lang)
}
