package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
)

// vscodeLanguageIDs maps VS Code language identifiers that differ from
// catalog ids.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vscodeLanguageIDs = map[string]string{
	"typescriptreact": "typescript",
	"javascriptreact": "javascript",
	"shellscript":     "bash",
	"jsonc":           "json",
	"jsonl":           "json",
	"objective-c":     "c",
	"objective-cpp":   "cpp",
	"cuda-cpp":        "cpp",
	"dockercompose":   "yaml",
	"vue":             "html",
	"scss":            "css",
	"less":            "css",
}

// NormalizeLanguageID maps a VS Code language id onto a catalog name.
// Other names are returned lowercased and trimmed.
func NormalizeLanguageID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if mapped, ok := vscodeLanguageIDs[id]; ok {
		return mapped
	}

	return id
}

// ImportResult contains the result of converting a language configuration.
type ImportResult struct {
	// Config holds the imported pairs under Brackets.
	Config *config.Config

	// Language is the catalog id the pairs were filed under.
	Language string

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original file.
	SourcePath string
}

// languageConfiguration is the subset of a VS Code
// language-configuration.json file that describes brackets.
type languageConfiguration struct {
	Brackets              [][]string `json:"brackets"`
	ColorizedBracketPairs [][]string `json:"colorizedBracketPairs"`
}

// ImportLanguageConfiguration reads a VS Code language-configuration.json
// file and returns its bracket pairs as overrides for language. When the
// file declares colorizedBracketPairs those win over brackets, matching how
// the editor picks pairs to colour.
func ImportLanguageConfiguration(path, language string) (*ImportResult, error) {
	if !IsJSONConfig(path) {
		return nil, fmt.Errorf("%s: expected a .json or .jsonc file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw languageConfiguration
	if err := parseJSONC(content, &raw); err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	if language == "" {
		language = languageFromPath(path)
	}

	id := catalog.Default().Canonical(NormalizeLanguageID(language))
	if id == "" {
		return nil, fmt.Errorf("%s: cannot tell the language; pass it explicitly", path)
	}

	result := &ImportResult{Language: id, SourcePath: path}

	source, field := raw.Brackets, "brackets"
	if raw.ColorizedBracketPairs != nil {
		source, field = raw.ColorizedBracketPairs, "colorizedBracketPairs"
	}

	pairs := make([]catalog.Pair, 0, len(source))

	for i, entry := range source {
		if len(entry) != 2 || entry[0] == "" || entry[1] == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s[%d]: expected [open, close]; skipping", field, i))

			continue
		}

		pairs = append(pairs, catalog.Pair{Open: entry[0], Close: entry[1]})
	}

	if len(pairs) == 0 {
		result.Warnings = append(result.Warnings, "no bracket pairs found")
	}

	cfg := &config.Config{Brackets: map[string][]catalog.Pair{id: pairs}}

	validation := Validate(cfg, nil)
	for _, e := range validation.Errors {
		result.Warnings = append(result.Warnings, e.Error())
	}

	result.Config = cfg

	return result, nil
}

// languageFromPath guesses the language from the directory layout of a
// VS Code extension, such as extensions/go/language-configuration.json.
func languageFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name, ok := strings.CutSuffix(base, "-language-configuration"); ok {
		return name
	}

	if base == "language-configuration" {
		return filepath.Base(filepath.Dir(path))
	}

	return base
}

// parseJSONC parses JSON with comments (JSONC format).
// It strips comments and trailing commas before parsing.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripTrailingCommas(stripJSONComments(content))
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}

	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte

	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		switch {
		case inSingleComment:
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
		case inMultiComment:
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
		case inString:
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
		case char == '"':
			inString = true
			result = append(result, char)
		case char == '/' && idx+1 < len(content) && content[idx+1] == '/':
			inSingleComment = true
			idx++
		case char == '/' && idx+1 < len(content) && content[idx+1] == '*':
			inMultiComment = true
			idx++
		default:
			result = append(result, char)
		}
	}

	return result
}

// stripTrailingCommas drops commas directly before a closing bracket or
// brace, outside strings.
func stripTrailingCommas(content []byte) []byte {
	result := make([]byte, 0, len(content))
	inString := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}

			continue
		}

		if char == '"' {
			inString = true
		}

		if char == ',' {
			next := idx + 1
			for next < len(content) && strings.ContainsRune(" \t\r\n", rune(content[next])) {
				next++
			}

			if next < len(content) && (content[next] == ']' || content[next] == '}') {
				continue
			}
		}

		result = append(result, char)
	}

	return result
}
