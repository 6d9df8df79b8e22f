package runner

import (
	"time"

	"github.com/yaklabco/gobrackets/pkg/query"
)

// Reasons a discovered file was not scanned.
const (
	SkipTooLarge  = "file exceeds max_file_size"
	SkipBinary    = "binary file"
	SkipNoBracket = "no brackets for language"
)

// FileResult is the outcome of scanning one file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Language is the catalog language id the file was scanned as.
	Language string

	// Lexer names the classifier used, or is empty when every bracket was
	// treated as code.
	Lexer string

	// Content is the scanned text, kept for source context in reports.
	Content string

	// Brackets lists every bracket occurrence in document order.
	Brackets []query.BracketInfo

	// Lines and Bytes describe the file size.
	Lines int
	Bytes int

	// Duration is the time spent parsing and classifying.
	Duration time.Duration

	// SkipReason is set when the file was discovered but not scanned.
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// Skipped reports whether the file was not scanned.
func (f *FileResult) Skipped() bool {
	return f.SkipReason != ""
}

// Unmatched returns the brackets without a partner.
func (f *FileResult) Unmatched() []query.BracketInfo {
	var out []query.BracketInfo

	for _, b := range f.Brackets {
		if b.Unmatched {
			out = append(out, b)
		}
	}

	return out
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesScanned is the number of files parsed successfully.
	FilesScanned int

	// FilesSkipped is the number of files not scanned, see SkipReason.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithUnmatched is the number of files with an unmatched bracket.
	FilesWithUnmatched int

	// Brackets is the total number of bracket occurrences.
	Brackets int

	// Unmatched is the number of brackets without a partner.
	Unmatched int

	// Lines and Bytes total the scanned files.
	Lines int
	Bytes int64

	// ByLanguage counts scanned files per language id.
	ByLanguage map[string]int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by path.
	Files []FileResult

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasUnmatched reports whether any scanned file has an unmatched bracket.
func (r *Result) HasUnmatched() bool {
	if r == nil {
		return false
	}

	return r.Stats.Unmatched > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}

	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{ByLanguage: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(file FileResult) {
	r.Files = append(r.Files, file)

	switch {
	case file.Error != nil:
		r.Stats.FilesErrored++
		return
	case file.Skipped():
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesScanned++
	r.Stats.ByLanguage[file.Language]++
	r.Stats.Lines += file.Lines
	r.Stats.Bytes += int64(file.Bytes)
	r.Stats.Brackets += len(file.Brackets)

	unmatched := len(file.Unmatched())
	r.Stats.Unmatched += unmatched

	if unmatched > 0 {
		r.Stats.FilesWithUnmatched++
	}
}
