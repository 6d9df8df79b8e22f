package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/configloader"
	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/fsutil"
)

// importFlags holds the flags for the import command.
type importFlags struct {
	language string
	output   string
	backup   bool
	undo     bool
}

func newImportCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <language-configuration.json>",
		Short: "Import bracket pairs from a VS Code language configuration",
		Long: `Read the brackets (or colorizedBracketPairs) of a VS Code
language-configuration.json file and store them as bracket overrides in a
gobrackets configuration file.

The language is taken from the extension directory layout when --language
is not given. An existing output file keeps its other settings; its comments
are not preserved. The previous file is saved next to it with a .bak suffix
and can be put back with --undo.

Examples:
  gobrackets import extensions/go/language-configuration.json
  gobrackets import --language vue ./language-configuration.json
  gobrackets import --output ~/.config/gobrackets/config.yaml ./lc.json
  gobrackets import --undo                  Restore the file from its backup`,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.undo {
				return cobra.NoArgs(cmd, args)
			}

			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.undo {
				return runUndoImport(cmd.Context(), flags)
			}

			return runImport(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "language id the pairs belong to")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "configuration file to update")
	cmd.Flags().BoolVar(&flags.backup, "backup", true, "keep a .bak copy of the file being replaced")
	cmd.Flags().BoolVar(&flags.undo, "undo", false, "restore the configuration file from its backup")

	return cmd
}

func runImport(ctx context.Context, input string, flags *importFlags) error {
	logger := logging.Default()

	imported, err := configloader.ImportLanguageConfiguration(input, flags.language)
	if err != nil {
		return err
	}

	for _, warning := range imported.Warnings {
		logger.Warn(warning, logging.FieldPath, input)
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	target := config.NewConfig()

	if content, err := os.ReadFile(absPath); err == nil {
		existing, err := config.FromYAML(content)
		if err != nil {
			return &configloader.ValidationError{FilePath: absPath, Message: err.Error()}
		}

		target = existing
	}

	target.Brackets[imported.Language] = imported.Config.Brackets[imported.Language]

	if flags.backup {
		backup, err := fsutil.Backup(ctx, absPath)
		if err != nil {
			return err
		}

		if backup != "" {
			logger.Debug("saved backup", logging.FieldPath, backup)
		}
	}

	if err := configloader.WriteConfig(target, absPath, "", true); err != nil {
		return err
	}

	logger.Info("imported bracket pairs",
		logging.FieldLanguage, imported.Language,
		"pairs", len(imported.Config.Brackets[imported.Language]),
		logging.FieldPath, flags.output,
	)

	return nil
}

func runUndoImport(ctx context.Context, flags *importFlags) error {
	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	restored, err := fsutil.Restore(ctx, absPath)
	if err != nil {
		return err
	}

	if !restored {
		return &UsageError{Err: fmt.Errorf("no backup of %q to restore", flags.output)}
	}

	logging.Default().Info("restored configuration file", logging.FieldPath, flags.output)

	return nil
}
