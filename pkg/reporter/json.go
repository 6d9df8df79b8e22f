package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gobrackets/pkg/query"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string        `json:"path"`
	Language   string        `json:"language,omitempty"`
	Lexer      string        `json:"lexer,omitempty"`
	Lines      int           `json:"lines"`
	Bytes      int           `json:"bytes"`
	Brackets   []JSONBracket `json:"brackets"`
	Unmatched  int           `json:"unmatched"`
	SkipReason string        `json:"skipped,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// JSONBracket represents one bracket occurrence with 1-based positions.
type JSONBracket struct {
	Text        string `json:"text"`
	Role        string `json:"role"`
	Level       int    `json:"level"`
	Unmatched   bool   `json:"unmatched,omitempty"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered    int            `json:"filesDiscovered"`
	FilesScanned       int            `json:"filesScanned"`
	FilesSkipped       int            `json:"filesSkipped"`
	FilesErrored       int            `json:"filesErrored"`
	FilesWithUnmatched int            `json:"filesWithUnmatched"`
	Brackets           int            `json:"brackets"`
	Unmatched          int            `json:"unmatched"`
	ByLanguage         map[string]int `json:"byLanguage"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Unmatched, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	version := r.opts.Version
	if version == "" {
		version = "dev"
	}

	output := &JSONOutput{
		Version: version,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByLanguage: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered:    stats.FilesDiscovered,
		FilesScanned:       stats.FilesScanned,
		FilesSkipped:       stats.FilesSkipped,
		FilesErrored:       stats.FilesErrored,
		FilesWithUnmatched: stats.FilesWithUnmatched,
		Brackets:           stats.Brackets,
		Unmatched:          stats.Unmatched,
		ByLanguage:         stats.ByLanguage,
	}

	if output.Summary.ByLanguage == nil {
		output.Summary.ByLanguage = make(map[string]int)
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for i := range result.Files {
		file := &result.Files[i]

		fileResult := JSONFileResult{
			Path:       r.opts.displayPath(file.Path),
			Language:   file.Language,
			Lexer:      file.Lexer,
			Lines:      file.Lines,
			Bytes:      file.Bytes,
			Brackets:   make([]JSONBracket, 0),
			Unmatched:  len(file.Unmatched()),
			SkipReason: file.SkipReason,
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		for _, b := range r.opts.visible(file) {
			fileResult.Brackets = append(fileResult.Brackets, jsonBracket(b))
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

func jsonBracket(b query.BracketInfo) JSONBracket {
	rng := b.Range()

	return JSONBracket{
		Text:        b.Text,
		Role:        b.Role.String(),
		Level:       b.Level,
		Unmatched:   b.Unmatched,
		StartLine:   rng.Start.Line,
		StartColumn: rng.Start.Column,
		EndLine:     rng.End.Line,
		EndColumn:   rng.End.Column,
	}
}
