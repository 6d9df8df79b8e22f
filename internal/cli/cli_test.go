package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobrackets/internal/cli"
	"github.com/yaklabco/gobrackets/internal/configloader"
	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/reporter"
)

// execute runs the root command inside dir with user configuration
// isolated, returning stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "abc123", Date: "2026-01-01"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})

	assert.Equal(t, "gobrackets", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"scan", "colorize", "watch", "verify", "languages", "init", "import", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, sub.Name())
		}
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestScanCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	scan, _, err := cmd.Find([]string{"scan"})
	require.NoError(t, err)

	for _, name := range []string{
		"format", "language", "jobs", "unmatched-only", "classification",
		"ignore", "ext", "include-vendored", "no-context", "no-summary", "compact",
	} {
		assert.NotNil(t, scan.Flags().Lookup(name), name)
	}

	require.NoError(t, scan.Args(scan, []string{"a.go", "b.py", "src/"}))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n\nfunc main() {}\n")
	writeFile(t, filepath.Join(dir, "broken.py"), "x = [1, 2\nprint(x)\n")

	out, err := execute(t, dir, "scan")
	require.ErrorIs(t, err, cli.ErrUnmatchedFound)
	assert.Equal(t, cli.ExitUnmatched, cli.ExitCode(err))

	assert.Contains(t, out, "broken.py [python] (3 brackets, 1 unmatched)")
	assert.Contains(t, out, "broken.py:1:5  unmatched  [")
	assert.Contains(t, out, "7 brackets, 1 unmatched in 1 file (2 files scanned)")
}

func TestScan_AllMatched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n\nfunc main() { _ = \"(\" }\n")

	out, err := execute(t, dir, "scan", "--no-summary")
	require.NoError(t, err)
	assert.Contains(t, out, "main.go [go] (4 brackets)")
	assert.NotContains(t, out, "unmatched")
}

func TestScan_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "var x = f(\n")

	out, err := execute(t, dir, "scan", "--format", "json", "--unmatched-only")
	require.ErrorIs(t, err, cli.ErrUnmatchedFound)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "test", decoded.Version)
	require.Len(t, decoded.Files, 1)
	require.Len(t, decoded.Files[0].Brackets, 1)
	assert.Equal(t, "(", decoded.Files[0].Brackets[0].Text)
	assert.Equal(t, 1, decoded.Summary.Unmatched)
}

func TestScan_ConfiguredPairs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gobrackets.yml"), "brackets:\n  go:\n    - open: \"<\"\n      close: \">\"\n")
	writeFile(t, filepath.Join(dir, "a.go"), "x := a<b\n")

	out, err := execute(t, dir, "scan", "--unmatched-only")
	require.ErrorIs(t, err, cli.ErrUnmatchedFound)
	assert.Contains(t, out, "a.go:1:7  unmatched  <")
}

func TestScan_InvalidFormat(t *testing.T) {
	_, err := execute(t, t.TempDir(), "scan", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestScan_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gobrackets.yml"), "classification: sometimes\n")

	_, err := execute(t, dir, "scan")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestColorize(t *testing.T) {
	dir := t.TempDir()
	content := "func main() {\n\tf(a[0])\n}\n"
	writeFile(t, filepath.Join(dir, "main.go"), content)

	out, err := execute(t, dir, "colorize", "main.go")
	require.NoError(t, err)
	assert.Equal(t, content, out, "without colour the text is unchanged")
}

func TestColorize_Directory(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "colorize", dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "func f(a) {\n\tg(b)\n}\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "insert", args: []string{"--edit", "2:4:2:4:["}},
		{name: "sequential", args: []string{"--edit", "1:1:1:1:(", "--edit", "1:2:1:2:\\n"}},
		{name: "batch", args: []string{"--batch", "--edit", "1:7:1:8:", "--edit", "3:1:3:2:"}},
		{name: "no edits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, dir, append([]string{"verify", "main.go"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, "trees match:")
		})
	}
}

func TestVerify_Dump(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "f()\n")

	out, err := execute(t, dir, "verify", "main.go", "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "Pair")
	assert.Contains(t, out, `Bracket "("`)
}

func TestVerify_BadEdits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "f()\n")

	for _, edit := range []string{"1:2", "a:1:1:1:x", "0:1:1:1:x"} {
		_, err := execute(t, dir, "verify", "main.go", "--edit", edit)
		require.Error(t, err, edit)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err), edit)
	}

	_, err := execute(t, dir, "verify", "main.go", "--edit", "9:1:9:1:x")
	require.Error(t, err, "edit outside the document")
}

func TestLanguages(t *testing.T) {
	out, err := execute(t, t.TempDir(), "languages", "golang", "python")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "go "), lines[0])
	assert.Contains(t, lines[0], "()")
	assert.True(t, strings.HasPrefix(lines[1], "python "), lines[1])

	_, err = execute(t, t.TempDir(), "languages", "klingon")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestLanguages_IncludesConfiguredPairs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gobrackets.yml"), "brackets:\n  go:\n    - open: \"<\"\n      close: \">\"\n")

	out, err := execute(t, dir, "languages", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "<>")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "init", "--full", "--lang", "go")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, ".gobrackets.yml"))
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.ClassificationAuto, cfg.Classification)

	_, err = execute(t, dir, "init")
	require.Error(t, err, "existing file without --force")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, dir, "init", "--force")
	require.NoError(t, err)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "extensions", "go", "language-configuration.json")
	writeFile(t, source, `{
	// line comment
	"brackets": [["(", ")"], ["<", ">"],],
}`)
	writeFile(t, filepath.Join(dir, ".gobrackets.yml"), "max_file_size: 1234\n")

	_, err := execute(t, dir, "import", source)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, ".gobrackets.yml"))
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.MaxFileSize, "existing settings are kept")
	assert.Equal(t, []catalog.Pair{{Open: "(", Close: ")"}, {Open: "<", Close: ">"}}, cfg.Brackets["go"])
}

func TestImport_Undo(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "language-configuration.json")
	writeFile(t, source, `{"brackets": [["<", ">"]]}`)

	configPath := filepath.Join(dir, ".gobrackets.yml")
	writeFile(t, configPath, "max_file_size: 99\n")

	_, err := execute(t, dir, "import", "--language", "go", source)
	require.NoError(t, err)
	assert.FileExists(t, configPath+".bak")

	_, err = execute(t, dir, "import", "--undo")
	require.NoError(t, err)
	assert.NoFileExists(t, configPath+".bak")

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "max_file_size: 99\n", string(content))

	_, err = execute(t, dir, "import", "--undo")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestWatch_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "f()\n")

	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"watch", "main.go"})

	require.NoError(t, cmd.ExecuteContext(ctx))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version=test")
	assert.Contains(t, out, "commit=abc123")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "unmatched", err: cli.ErrUnmatchedFound, want: cli.ExitUnmatched},
		{name: "mismatch", err: cli.ErrTreeMismatch, want: cli.ExitUnmatched},
		{name: "files failed", err: cli.ErrFilesFailed, want: cli.ExitIOError},
		{name: "usage", err: &cli.UsageError{Err: errors.New("bad flag")}, want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("load: %w", &configloader.ValidationError{Message: "bad"}), want: cli.ExitConfigError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
