package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/query"
	"github.com/yaklabco/gobrackets/pkg/runner"
)

func newColorizeCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "colorize <file>",
		Short: "Print a file with brackets coloured by nesting level",
		Long: `Print a file with every bracket coloured by its nesting level. Colours
come from the configured palette and wrap around when nesting is deeper.
Unmatched brackets use the unmatched colour.

Examples:
  gobrackets colorize main.go
  gobrackets colorize --color always main.go | less -R`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColorize(cmd, args[0], &cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Language, "language", "", "force the language of the file")

	return cmd
}

func runColorize(cmd *cobra.Command, path string, cli *config.Config) error {
	cfg, _, err := loadConfig(cmd, cli)
	if err != nil {
		return err
	}

	content, _, err := readFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	sess, err := runner.Open(cmd.Context(), path, content, runner.Options{Config: cfg})
	if err != nil {
		return err
	}

	if err := sess.Classify(); err != nil {
		return err
	}

	logging.Default().Debug("colorizing",
		logging.FieldPath, path,
		logging.FieldLanguage, sess.Language(),
		logging.FieldLexer, sess.Lexer(),
	)

	return writeColorized(cmd.OutOrStdout(), colorMode(cmd), cfg, sess.Text(), sess.All())
}

func writeColorized(w io.Writer, mode string, cfg *config.Config, text string, brackets []query.BracketInfo) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, w)).WithPalette(cfg.Palette, cfg.UnmatchedColor)

	if _, err := io.WriteString(w, styles.Colorize(text, brackets)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
