package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/langdetect"
	"github.com/yaklabco/gobrackets/pkg/session"
)

// Run discovers files under opts.Paths and scans them concurrently.
// Every file gets its own session, so workers share no mutable state.
// Files are reported in path order whatever order they finish in.
func Run(ctx context.Context, opts Options) (*Result, error) {
	began := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileResult, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	jobs = min(jobs, len(files))

	logger := loggerOf(ctx, opts)
	logger.Debug("scanning", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	outcomes := make([]FileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			outcomes[i] = ScanFile(groupCtx, path, opts)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	result.Stats.Duration = time.Since(began)

	logger.Debug("scan finished",
		logging.FieldFilesScanned, result.Stats.FilesScanned,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldUnmatched, result.Stats.Unmatched,
		logging.FieldDuration, result.Stats.Duration,
	)

	return result, nil
}

// ScanFile reads and scans one file. Failures are reported in the result,
// never returned.
func ScanFile(ctx context.Context, path string, opts Options) FileResult {
	out := FileResult{Path: path}
	cfg := opts.effectiveConfig()
	ctx = logging.WithFields(logging.WithLogger(ctx, loggerOf(ctx, opts)), logging.FieldPath, path)
	opts.Logger = logging.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		out.Error = err
		return out
	}

	info, err := os.Stat(path)
	if err != nil {
		out.Error = fmt.Errorf("stat: %w", err)
		return out
	}

	if cfg.MaxFileSize > 0 && info.Size() > cfg.MaxFileSize {
		out.SkipReason = SkipTooLarge
		out.Bytes = int(info.Size())

		return out
	}

	content, err := os.ReadFile(path)
	if err != nil {
		out.Error = fmt.Errorf("read: %w", err)
		return out
	}

	out.Bytes = len(content)

	if langdetect.IsBinary(content) {
		out.SkipReason = SkipBinary
		return out
	}

	sess, err := Open(ctx, path, content, opts)
	if err != nil {
		out.Error = err
		return out
	}

	out.Language = sess.Language()

	if sess.Brackets().Len() == 0 {
		out.SkipReason = SkipNoBracket
		return out
	}

	began := time.Now()

	if err = sess.Classify(); err != nil {
		out.Error = err
		return out
	}

	out.Lexer = sess.Lexer()
	out.Content = sess.Text()
	out.Brackets = sess.All()
	out.Lines = sess.Buffer().LineCount()
	out.Duration = time.Since(began)

	opts.Logger.Debug("scanned file",
		logging.FieldLanguage, out.Language,
		logging.FieldBrackets, len(out.Brackets),
		logging.FieldDuration, out.Duration,
	)

	return out
}

// Open starts a session for a file's content with the language, pairs and
// classification chosen from opts.
func Open(ctx context.Context, path string, content []byte, opts Options) (*session.Session, error) {
	cfg := opts.effectiveConfig()
	cat := opts.effectiveCatalog()
	lang := Language(path, content, cfg, cat)

	sess, err := session.Open(string(content), session.Options{
		Language:  lang,
		Filename:  filepath.Base(path),
		Catalog:   cat,
		Overrides: cfg.PairsFor(lang),
		Classify:  cfg.Classification != config.ClassificationNone,
		Logger:    loggerOf(ctx, opts),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return sess, nil
}

// Language picks the catalog language for a file: a forced language
// first, then the configured extension mapping, then detection.
func Language(path string, content []byte, cfg *config.Config, cat *catalog.Catalog) string {
	if cat == nil {
		cat = catalog.Default()
	}

	if cfg != nil && cfg.Language != "" {
		return cat.Canonical(cfg.Language)
	}

	if lang, ok := cfg.LanguageForExtension(filepath.Ext(path)); ok {
		return cat.Canonical(lang)
	}

	return cat.Canonical(langdetect.FromPath(path, content))
}

func loggerOf(ctx context.Context, opts Options) *log.Logger {
	if opts.Logger == nil {
		return logging.FromContext(ctx)
	}

	return opts.Logger
}
