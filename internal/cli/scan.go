package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/reporter"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

type scanFlags struct {
	format          string
	classification  string
	ignore          []string
	extensions      []string
	includeVendored bool
	followSymlinks  bool
	noContext       bool
	noSummary       bool
	compact         bool
}

func newScanCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Report bracket pairs and their nesting levels",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, &cfg, flags, info)
		},
	}

	addScanFlags(cmd, &cfg, flags)

	return cmd
}

const scanLongDescription = `Scan files for bracket pairs and report every bracket with its nesting level.

By default, scans every file below the current directory whose language has
bracket pairs. Hidden and vendored files are skipped. Specify paths to scan
specific files or directories.

The exit code is 1 when any bracket is unmatched.

Examples:
  gobrackets scan                        # Scan current directory
  gobrackets scan src/ main.go           # Scan a directory and a file
  gobrackets scan --unmatched-only       # Only report orphaned brackets
  gobrackets scan --format json          # Output as JSON for CI
  gobrackets scan --format sarif         # Output as SARIF for code scanning
  gobrackets scan --language go x.tmpl   # Force the language`

func runScan(cmd *cobra.Command, args []string, cli *config.Config, flags *scanFlags, info BuildInfo) error {
	logger := logging.Default()

	// Only explicitly provided flags override the configuration files.
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return &UsageError{Err: fmt.Errorf("invalid format: %w", err)}
		}

		cli.Format = config.OutputFormat(flags.format)
	}

	if cmd.Flags().Changed("classification") {
		cli.Classification = config.Classification(flags.classification)
	}

	cli.Ignore = flags.ignore

	cfg, workDir, err := loadConfig(cmd, cli)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	logger.Debug("configuration loaded",
		logging.FieldClassification, cfg.Classification,
		logging.FieldLanguage, cfg.Language,
		logging.FieldJobs, cfg.Jobs,
	)

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      flags.extensions,
		ExcludeGlobs:    cfg.Ignore,
		IncludeVendored: flags.includeVendored,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            cfg.Jobs,
		Config:          cfg,
		Logger:          logger,
	}

	result, err := runner.Run(cmd.Context(), runOpts)
	if err != nil {
		return errors.Join(errors.New("scan failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:         cmd.OutOrStdout(),
		ErrorWriter:    cmd.ErrOrStderr(),
		Format:         format,
		Color:          colorMode(cmd),
		ShowContext:    !flags.noContext,
		ShowSummary:    !flags.noSummary,
		UnmatchedOnly:  cfg.UnmatchedOnly,
		Compact:        flags.compact,
		Palette:        cfg.Palette,
		UnmatchedColor: cfg.UnmatchedColor,
		Version:        info.Version,
		WorkingDir:     workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(cmd.Context(), result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Warn("scan failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}

	switch ExitCodeFromResult(result) {
	case ExitIOError:
		return ErrFilesFailed
	case ExitUnmatched:
		return ErrUnmatchedFound
	default:
		return nil
	}
}

func addScanFlags(cmd *cobra.Command, cfg *config.Config, flags *scanFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().StringVar(&cfg.Language, "language", "", "force the language of every file")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.UnmatchedOnly, "unmatched-only", false, "only report unmatched brackets")
	cmd.Flags().StringVar(&flags.classification, "classification", "auto",
		"comment and string handling: auto, none")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "only scan files with these extensions")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "scan vendored and generated directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links while walking")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line (text format)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
