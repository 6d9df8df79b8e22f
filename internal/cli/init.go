package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gobrackets/internal/configloader"
	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/config"
)

// defaultConfigFile is the project configuration file written by init.
const defaultConfigFile = ".gobrackets.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force     bool
	full      bool
	output    string
	languages []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gobrackets configuration file",
		Long: `Create a new .gobrackets.yml configuration file in the current directory
with sensible defaults. The file can be customized to add bracket pairs per
language, change the colour palette, and ignore paths.

When the file exists and the terminal is interactive, init asks before
overwriting it.

Examples:
  gobrackets init                       Create minimal .gobrackets.yml
  gobrackets init --full                Document the built-in pairs of every language
  gobrackets init --full --lang go,rust Document only some languages
  gobrackets init --output custom.yml   Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Document the built-in pairs of every language")
	cmd.Flags().StringSliceVar(&flags.languages, "lang", nil, "Languages to document with --full")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	force := flags.force
	if _, err := os.Stat(absPath); err == nil && !force && isInteractive(cmd.InOrStdin()) {
		force, err = confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite?", flags.output))
		if err != nil {
			return err
		}

		if !force {
			logger.Info("left existing file unchanged", logging.FieldPath, flags.output)
			return nil
		}
	}

	opts := config.TemplateOptions{
		Full:      flags.full,
		Languages: flags.languages,
	}

	if err := configloader.WriteTemplate(absPath, opts, force); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return &UsageError{Err: fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)}
		}

		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'gobrackets languages' to see the built-in pairs")

	return nil
}

// isInteractive reports whether the command input is a terminal.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
