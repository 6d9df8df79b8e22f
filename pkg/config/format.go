package config

import "strings"

// LevelColor returns the palette colour for a nesting level, wrapping
// around. An empty palette yields the empty string.
func (c *Config) LevelColor(level int) string {
	if c == nil || len(c.Palette) == 0 || level < 0 {
		return ""
	}

	return c.Palette[level%len(c.Palette)]
}

// LanguageForExtension returns the configured language id for a file
// extension such as ".tmpl". Matching ignores case and the leading dot.
func (c *Config) LanguageForExtension(ext string) (string, bool) {
	if c == nil || ext == "" {
		return "", false
	}

	want := strings.TrimPrefix(strings.ToLower(ext), ".")
	for key, lang := range c.Extensions {
		if strings.TrimPrefix(strings.ToLower(key), ".") == want {
			return lang, true
		}
	}

	return "", false
}
