package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/fsutil"
	"github.com/yaklabco/gobrackets/pkg/runner"
	"github.com/yaklabco/gobrackets/pkg/session"
)

type watchFlags struct {
	print bool
}

func newWatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-scan a file incrementally whenever it changes",
		Long: `Watch a file and re-parse it every time it is saved. Each save is diffed
against the previous text and applied as a minimal set of edits, so only the
changed part of the bracket tree is rebuilt. Reuse statistics and unmatched
brackets are logged after every change.

Press Ctrl+C to stop.

Examples:
  gobrackets watch main.go
  gobrackets watch --print main.go     # Also print the colourized file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&cfg.Language, "language", "", "force the language of the file")
	cmd.Flags().BoolVar(&flags.print, "print", false, "print the colourized file after every change")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, cli *config.Config, flags *watchFlags) error {
	level := "info"
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}

	logger := logging.NewInteractive(level)

	cfg, _, err := loadConfig(cmd, cli)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	ctx := cmd.Context()

	content, snap, err := readFile(ctx, abs)
	if err != nil {
		return err
	}

	sess, err := runner.Open(ctx, abs, content, runner.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	if err := sess.Classify(); err != nil {
		return err
	}

	logger.Info("watching",
		logging.FieldPath, path,
		logging.FieldLanguage, sess.Language(),
		logging.FieldLines, sess.Buffer().LineCount(),
	)

	if err := reportSession(cmd, logger, cfg, sess, flags); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by renaming a temporary file, so the directory is
	// watched rather than the file itself.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching", logging.FieldPath, path)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			next, changed, err := reparse(ctx, logger, sess, snap)
			if err != nil {
				logger.Error("reparse failed", logging.FieldPath, path, logging.FieldError, err)
				continue
			}

			if !changed {
				continue
			}

			snap = next

			if err := reportSession(cmd, logger, cfg, sess, flags); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// reparse feeds the current file content to the session as an edit and
// returns the new snapshot. Saves that leave the bytes alone are ignored.
func reparse(ctx context.Context, logger *log.Logger, sess *session.Session, prev *fsutil.Snapshot) (*fsutil.Snapshot, bool, error) {
	content, snap, err := fsutil.Read(ctx, prev.Path)
	if err != nil {
		return prev, false, err
	}

	if !prev.Changed(content) {
		logger.Debug("content unchanged", logging.FieldPath, prev.Path)
		return prev, false, nil
	}

	start := time.Now()

	if err := sess.SetText(string(content)); err != nil {
		return prev, false, err
	}

	stats := sess.Model().LastStats()
	logger.Info("reparsed",
		logging.FieldLines, sess.Buffer().LineCount(),
		logging.FieldReusedNodes, stats.ReusedNodes,
		logging.FieldReusedLength, stats.ReusedLength,
		logging.FieldTokens, stats.Tokens,
		logging.FieldDuration, time.Since(start).Round(time.Microsecond),
	)

	return snap, true, nil
}

func reportSession(cmd *cobra.Command, logger *log.Logger, cfg *config.Config, sess *session.Session, flags *watchFlags) error {
	all := sess.All()

	unmatched := 0
	for _, b := range all {
		if !b.Unmatched {
			continue
		}

		unmatched++
		logger.Warn("unmatched bracket", logging.FieldAt, b.Range().Start, logging.FieldToken, b.Text)
	}

	logger.Info("brackets", logging.FieldBrackets, len(all), logging.FieldUnmatched, unmatched)

	if flags.print {
		return writeColorized(cmd.OutOrStdout(), colorMode(cmd), cfg, sess.Text(), all)
	}

	return nil
}
