package pretty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesScanned:       10,
		FilesSkipped:       2,
		FilesWithUnmatched: 3,
		Brackets:           12345,
		Unmatched:          4,
		Lines:              2048,
		Bytes:              3 << 20,
		Duration:           1500 * time.Millisecond,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files scanned:     10")
	assert.Contains(t, result, "Files skipped:     2")
	assert.Contains(t, result, "Lines:             2,048")
	assert.Contains(t, result, "Size:              3.0 MiB")
	assert.Contains(t, result, "Brackets:          12,345")
	assert.Contains(t, result, "Unmatched:         4")
	assert.Contains(t, result, "Files affected:    3")
	assert.Contains(t, result, "Duration:          1.5s")
	assert.Contains(t, result, "Unmatched brackets found")
}

func TestFormatSummary_Status(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{name: "clean", stats: runner.Stats{FilesScanned: 5, Brackets: 40}, want: "All brackets matched"},
		{name: "unmatched", stats: runner.Stats{FilesScanned: 1, Unmatched: 1}, want: "Unmatched brackets found"},
		{name: "errors", stats: runner.Stats{FilesErrored: 1, Unmatched: 1}, want: "Scan finished with errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := styles.FormatSummary(tt.stats)
			assert.Contains(t, result, tt.want)
			assert.NotContains(t, result, "Duration")
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "none unmatched",
			stats: runner.Stats{FilesScanned: 3, Brackets: 1204},
			want:  "1,204 brackets, none unmatched (3 files scanned)\n",
		},
		{
			name:  "single bracket",
			stats: runner.Stats{FilesScanned: 1, Brackets: 1},
			want:  "1 bracket, none unmatched (1 file scanned)\n",
		},
		{
			name:  "unmatched with skips",
			stats: runner.Stats{FilesScanned: 12, FilesSkipped: 3, FilesWithUnmatched: 1, Brackets: 90, Unmatched: 2},
			want:  "90 brackets, 2 unmatched in 1 file (12 files scanned, 3 skipped)\n",
		},
		{
			name:  "failures",
			stats: runner.Stats{FilesScanned: 2, FilesErrored: 1, Brackets: 8},
			want:  "8 brackets, none unmatched (2 files scanned, 1 failed)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
