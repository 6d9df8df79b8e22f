// Package reporter renders bracket scan results as text, tables, JSON,
// SARIF, or a summary.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gobrackets/pkg/runner"
)

// Reporter formats and writes scan results.
type Reporter interface {
	// Report writes the result and returns the number of unmatched
	// brackets it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

//nolint:gochecknoglobals // read-only constructor table
var constructors = map[Format]func(Options) Reporter{
	FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	FormatTable:   func(o Options) Reporter { return NewTableReporter(o) },
	FormatJSON:    func(o Options) Reporter { return NewJSONReporter(o) },
	FormatSARIF:   func(o Options) Reporter { return NewSARIFReporter(o) },
	FormatSummary: func(o Options) Reporter { return NewSummaryReporter(o) },
}

// New creates the Reporter for opts.Format. A nil Writer means stdout and
// an empty format means text.
//
//nolint:ireturn // the concrete reporter depends on the format
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	if opts.Format == "" {
		opts.Format = FormatText
	}

	construct, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	return construct(opts), nil
}
