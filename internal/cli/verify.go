package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/internal/ui/pretty"
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/runner"
	"github.com/yaklabco/gobrackets/pkg/session"
	"github.com/yaklabco/gobrackets/pkg/textbuf"
)

// errBadEdit reports a malformed --edit value.
var errBadEdit = errors.New("expected line:col:line:col:text")

type verifyFlags struct {
	edits []string
	batch bool
	dump  bool
}

func newVerifyCommand() *cobra.Command {
	var cfg config.Config
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that incremental edits produce the same tree as a fresh parse",
		Long: `Apply edits to a file incrementally, then parse the edited text from
scratch and compare the two bracket trees. A unified diff of the tree dumps
is printed when they differ. The file on disk is never modified.

Each --edit replaces the text between two 1-based positions. The
replacement may use \n and \t escapes. Edits are applied one after another,
so later positions refer to the already edited text; --batch applies them
together against the original text instead.

Examples:
  gobrackets verify main.go --edit '3:1:3:1:{'
  gobrackets verify main.go --edit '1:5:1:9:x' --edit '2:1:2:1:(\n'
  gobrackets verify main.go --batch --edit '1:1:1:2:' --edit '4:1:4:2:'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.edits, "edit", nil, "edit as line:col:line:col:text (repeatable)")
	cmd.Flags().BoolVar(&flags.batch, "batch", false, "apply all edits as one change against the original text")
	cmd.Flags().BoolVar(&flags.dump, "dump", false, "print the final tree")
	cmd.Flags().StringVar(&cfg.Language, "language", "", "force the language of the file")

	return cmd
}

func runVerify(cmd *cobra.Command, path string, cli *config.Config, flags *verifyFlags) error {
	edits, err := parseEdits(flags.edits)
	if err != nil {
		return &UsageError{Err: err}
	}

	cfg, _, err := loadConfig(cmd, cli)
	if err != nil {
		return err
	}

	content, _, err := readFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	opts := runner.Options{Config: cfg}

	incremental, err := runner.Open(cmd.Context(), path, content, opts)
	if err != nil {
		return err
	}

	if err := incremental.Classify(); err != nil {
		return err
	}

	if err := applyEdits(incremental, edits, flags.batch); err != nil {
		return err
	}

	scratch, err := runner.Open(cmd.Context(), path, []byte(incremental.Text()), opts)
	if err != nil {
		return err
	}

	if err := scratch.Classify(); err != nil {
		return err
	}

	got, want := ast.Dump(incremental.Tree()), ast.Dump(scratch.Tree())

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	if flags.dump {
		if _, err := io.WriteString(out, got); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	logging.Default().Debug("verified",
		logging.FieldPath, path,
		logging.FieldEdits, len(edits),
		logging.FieldState, incremental.State(),
	)

	if got == want {
		stats := incremental.Model().LastStats()
		_, err := fmt.Fprintf(out, "%s %s, %s, %s\n",
			styles.Success.Render("trees match:"),
			english.Plural(len(edits), "edit", ""),
			english.Plural(len(incremental.All()), "bracket", ""),
			english.Plural(stats.ReusedNodes, "reused node", ""),
		)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "scratch",
		ToFile:   "incremental",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diff trees: %w", err)
	}

	if _, err := fmt.Fprintf(out, "%s\n%s", styles.Failure.Render("trees differ:"), styles.FormatDiff(diff)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return ErrTreeMismatch
}

func applyEdits(sess *session.Session, edits []textbuf.TextEdit, batch bool) error {
	if batch {
		if err := sess.Edit(edits...); err != nil {
			return fmt.Errorf("apply edits: %w", err)
		}

		return nil
	}

	for i, edit := range edits {
		if err := sess.Edit(edit); err != nil {
			return fmt.Errorf("apply edit %d: %w", i+1, err)
		}
	}

	return nil
}

// parseEdits parses --edit values of the form line:col:line:col:text.
func parseEdits(values []string) ([]textbuf.TextEdit, error) {
	unescape := strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`)

	edits := make([]textbuf.TextEdit, 0, len(values))

	for _, value := range values {
		fields := strings.SplitN(value, ":", 5)
		if len(fields) != 5 {
			return nil, fmt.Errorf("--edit %q: %w", value, errBadEdit)
		}

		numbers := make([]int, 4)
		for i, f := range fields[:4] {
			n, err := strconv.Atoi(f)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("--edit %q: %w", value, errBadEdit)
			}

			numbers[i] = n
		}

		edits = append(edits, textbuf.Replace(
			length.Position{Line: numbers[0], Column: numbers[1]},
			length.Position{Line: numbers[2], Column: numbers[3]},
			unescape.Replace(fields[4]),
		))
	}

	return edits, nil
}

