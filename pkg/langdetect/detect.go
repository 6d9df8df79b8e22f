// Package langdetect picks the bracket catalog language for a file.
//
// Detection prefers the file name and falls back to the content, using
// go-enry for both. Results are catalog ids such as "go", "cpp" or "bash";
// Unknown is returned when nothing matches.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language could be determined.
const Unknown = "text"

// enryNames maps go-enry language names whose lowercase form is not the
// catalog id.
var enryNames = map[string]string{
	"C++":                "cpp",
	"C#":                 "csharp",
	"Shell":              "bash",
	"Bourne Shell":       "bash",
	"Zsh":                "bash",
	"Objective-C":        "c",
	"JSON with Comments": "json",
	"TSX":                "typescript",
	"JSX":                "javascript",
	"Vue":                "html",
	"SCSS":               "css",
	"Less":               "css",
	"PLpgSQL":            "sql",
	"TSQL":               "sql",
	"Delphi":             "pascal",
	"Component Pascal":   "pascal",
}

// candidates restricts the content classifier to languages with a catalog
// entry.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Lua", "Pascal",
}

// FromPath detects the language of a file from its name and content.
// A vendored or generated file is still detected; callers decide whether to
// skip it with IsVendored.
func FromPath(path string, content []byte) string {
	base := filepath.Base(path)

	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByExtension(base); safe {
		return normalize(lang)
	}

	if lang := enry.GetLanguage(base, content); lang != "" && filepath.Ext(base) != "" {
		return normalize(lang)
	}

	return Detect(content)
}

// IsVendored reports whether path looks like third-party or generated code.
func IsVendored(path string) bool {
	return enry.IsVendor(path) || enry.IsDotFile(path)
}

// IsBinary reports whether content looks like a binary file.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// Detect returns the language of a snippet without a file name.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := byPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Unknown
}

// patterns are checked in order; the first match wins.
var patterns = []struct {
	lang  string
	match func(text, trimmed string) bool
}{
	{"go", func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{"python", func(text, _ string) bool {
		return (strings.Contains(text, "def ") && strings.Contains(text, "):")) ||
			strings.Contains(text, "__name__")
	}},
	{"html", func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html")
	}},
	{"json", func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`) && !strings.Contains(trimmed, ";")
	}},
	{"sql", func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}

		return false
	}},
	{"rust", func(text, _ string) bool {
		return strings.Contains(text, "fn main()") || strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{"javascript", func(text, _ string) bool {
		return strings.Contains(text, "=>") || strings.Contains(text, "console.log")
	}},
	{"pascal", func(text, _ string) bool {
		lower := strings.ToLower(text)
		return strings.Contains(lower, "begin") && strings.Contains(lower, "end.")
	}},
}

func byPattern(content []byte) string {
	text := string(content)
	trimmed := strings.TrimSpace(text)

	for _, p := range patterns {
		if p.match(text, trimmed) {
			return p.lang
		}
	}

	return ""
}

func normalize(lang string) string {
	if id, ok := enryNames[lang]; ok {
		return id
	}

	return strings.ToLower(lang)
}
