package cli

import (
	"bufio"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
)

func newLanguagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages [ids...]",
		Short: "List languages and their bracket pairs",
		Long: `List every language in the bracket catalog with the pairs used for it.
Pairs added or overridden in the configuration are included. Pass language
ids or aliases to limit the list.

Examples:
  gobrackets languages
  gobrackets languages go typescript`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguages(cmd, args)
		},
	}

	return cmd
}

func runLanguages(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	cat := catalog.Default()

	ids := cat.Languages()
	for id := range cfg.Brackets {
		if !cat.Has(id) {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	if len(args) > 0 {
		ids = ids[:0:0]

		for _, arg := range args {
			id := cat.Canonical(arg)
			if !cat.Has(id) && len(cfg.PairsFor(id)) == 0 {
				return &UsageError{Err: fmt.Errorf("unknown language %q", arg)}
			}

			ids = append(ids, id)
		}
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	w := bufio.NewWriter(out)

	width := 0
	for _, id := range ids {
		width = max(width, len(id))
	}

	for _, id := range ids {
		pairs := cat.Pairs(id, cfg.PairsFor(id))

		tokens := make([]string, 0, len(pairs))
		for _, p := range pairs {
			tokens = append(tokens, p.String())
		}

		fmt.Fprintf(w, "%s  %s\n",
			styles.Language.Render(fmt.Sprintf("%-*s", width, id)),
			strings.Join(tokens, " "),
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
