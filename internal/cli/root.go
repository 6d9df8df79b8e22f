// Package cli provides the Cobra command structure for gobrackets.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gobrackets command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gobrackets",
		Short: "Incremental bracket pair analysis for source files",
		Long: `gobrackets finds bracket pairs in source files and reports their nesting
level. Brackets inside comments and strings are ignored, and orphaned
brackets are reported as unmatched.

The same incremental engine behind the scan command also powers watch,
which reuses the unchanged parts of the tree as a file is edited.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}

			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.AddCommand(newScanCommand(info))
	rootCmd.AddCommand(newColorizeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVerifyCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
