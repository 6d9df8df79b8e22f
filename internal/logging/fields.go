// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Document fields.
	FieldLanguage = "language"
	FieldLexer    = "lexer"
	FieldState    = "state"
	FieldVersion  = "version"
	FieldLines    = "lines"
	FieldBytes    = "bytes"
	FieldEdits    = "edits"
	FieldRanges   = "ranges"

	// Classification fields.
	FieldClassification = "classification"

	// Bracket fields.
	FieldAt    = "at"
	FieldToken = "token"

	// Parse statistics fields.
	FieldReusedNodes  = "reused_nodes"
	FieldReusedLength = "reused_length"
	FieldTokens       = "tokens"
	FieldBrackets     = "brackets"
	FieldUnmatched    = "unmatched"

	// Run fields.
	FieldJobs           = "jobs"
	FieldFiles          = "files"
	FieldFilesScanned   = "files_scanned"
	FieldFilesSkipped   = "files_skipped"
	FieldFilesUnmatched = "files_unmatched"
	FieldDuration       = "duration"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
