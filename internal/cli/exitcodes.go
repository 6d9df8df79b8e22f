package cli

import (
	"errors"

	"github.com/yaklabco/gobrackets/internal/configloader"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

// Exit codes for gobrackets.
const (
	// ExitSuccess indicates every bracket found a partner.
	ExitSuccess = 0

	// ExitUnmatched indicates the scan found unmatched brackets.
	ExitUnmatched = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates that files could not be read.
	ExitIOError = 74
)

var (
	// ErrUnmatchedFound is returned when a scan reports unmatched brackets.
	ErrUnmatchedFound = errors.New("unmatched brackets found")

	// ErrFilesFailed is returned when some files could not be scanned.
	ErrFilesFailed = errors.New("some files could not be scanned")

	// ErrTreeMismatch is returned by verify when the incremental tree
	// differs from a scratch parse.
	ErrTreeMismatch = errors.New("incremental tree differs from scratch parse")
)

// UsageError wraps a command-line parsing error.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCodeFromResult determines the exit code of a scan.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitIOError
	case result.HasUnmatched():
		return ExitUnmatched
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var usage *UsageError
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnmatchedFound), errors.Is(err, ErrTreeMismatch):
		return ExitUnmatched
	case errors.Is(err, ErrFilesFailed):
		return ExitIOError
	case errors.As(err, &usage):
		return ExitInvalidUsage
	case errors.As(err, &validation):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an outcome the command has
// already printed, so it need not be logged again.
func IsReported(err error) bool {
	return errors.Is(err, ErrUnmatchedFound) || errors.Is(err, ErrTreeMismatch)
}
