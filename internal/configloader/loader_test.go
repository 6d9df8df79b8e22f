package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.Classification != config.ClassificationAuto {
		t.Errorf("expected classification %q, got %q", config.ClassificationAuto, result.Config.Classification)
	}

	if len(result.Config.Palette) != len(config.DefaultPalette) {
		t.Errorf("expected default palette, got %v", result.Config.Palette)
	}

	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gobrackets.yml"), `
classification: none
brackets:
  go:
    - open: "<"
      close: ">"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Classification != config.ClassificationNone {
		t.Errorf("expected classification none, got %q", result.Config.Classification)
	}

	pairs := result.Config.PairsFor("go")
	if len(pairs) != 1 || pairs[0] != (catalog.Pair{Open: "<", Close: ">"}) {
		t.Errorf("unexpected go pairs %v", pairs)
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gobrackets.yaml"), "max_file_size: 100\n")

	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.MaxFileSize != 100 {
		t.Errorf("expected max_file_size 100, got %d", result.Config.MaxFileSize)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gobrackets.yml"), "max_file_size: 100\n")

	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(repo))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.MaxFileSize != config.DefaultMaxFileSize {
		t.Errorf("config above the VCS root should not load, got %d", result.Config.MaxFileSize)
	}
}

func TestLoad_ExplicitConfigWinsOverProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gobrackets.yml"), "classification: none\nmax_file_size: 10\n")

	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "max_file_size: 20\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.MaxFileSize != 20 {
		t.Errorf("expected explicit max_file_size 20, got %d", result.Config.MaxFileSize)
	}

	if result.Config.Classification != config.ClassificationNone {
		t.Errorf("project classification should survive, got %q", result.Config.Classification)
	}

	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_EnvAndCLIOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	env := map[string]string{
		"GOBRACKETS_JOBS":    "3",
		"GOBRACKETS_PALETTE": "#111, #222",
		"GOBRACKETS_FORMAT":  "json",
	}

	if err := loadFromLookup(cfg, func(k string) (string, bool) { v, ok := env[k]; return v, ok }); err != nil {
		t.Fatalf("loadFromLookup() error = %v", err)
	}

	if cfg.Jobs != 3 || cfg.Format != config.FormatJSON {
		t.Errorf("env not applied: jobs=%d format=%q", cfg.Jobs, cfg.Format)
	}

	if strings.Join(cfg.Palette, ",") != "#111,#222" {
		t.Errorf("unexpected palette %v", cfg.Palette)
	}

	merged := merge(cfg, &config.Config{Jobs: 8, UnmatchedOnly: true})
	if merged.Jobs != 8 || !merged.UnmatchedOnly || merged.Format != config.FormatJSON {
		t.Errorf("CLI merge wrong: %+v", merged)
	}
}

func TestLoad_EnvRejectsBadValues(t *testing.T) {
	t.Parallel()

	err := loadFromLookup(config.NewConfig(), func(k string) (string, bool) {
		return "many", k == "GOBRACKETS_JOBS"
	})
	if err == nil || !strings.Contains(err.Error(), "GOBRACKETS_JOBS") {
		t.Errorf("expected error naming the variable, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad classification", "classification: sometimes\n", "classification"},
		{"bad colour", "palette: [\"gold\"]\n", "palette[0]"},
		{"empty close token", "brackets:\n  go:\n    - open: \"<\"\n      close: \"\"\n", "brackets.go"},
		{"negative size", "max_file_size: -1\n", "max_file_size"},
		{"bad glob", "ignore: [\"[\"]\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".gobrackets.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}

			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}

			if verr.FilePath != path {
				t.Errorf("expected file path %q, got %q", path, verr.FilePath)
			}
		})
	}
}

func TestLoad_ReportsEveryError(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gobrackets.yml"), "classification: sometimes\nmax_file_size: -1\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil {
		t.Fatal("expected an error")
	}

	for _, field := range []string{"classification", "max_file_size"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gobrackets.yml"), "palette: [unterminated\n")

	if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestLoader_NormalizesLanguageKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gobrackets.yml"), `
brackets:
  C++:
    - open: "<"
      close: ">"
  typescriptreact:
    - open: "<"
      close: ">"
  cpp:
    - open: "«"
      close: "»"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(result.Config.PairsFor("cpp")); got != 2 {
		t.Errorf("expected combined cpp pairs, got %d", got)
	}

	if got := len(result.Config.PairsFor("typescript")); got != 1 {
		t.Errorf("expected typescript pairs, got %d", got)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "both configure cpp") {
			found = true
		}
	}

	if !found {
		t.Errorf("expected duplicate warning, got %v", result.Warnings)
	}
}

func TestLoader_WarnsUnknownLanguage(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gobrackets.yml"), `
brackets:
  cobol:
    - open: PERFORM
      close: END-PERFORM
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "unknown language") {
		t.Errorf("expected unknown language warning, got %v", result.Warnings)
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gobrackets.yml")
	cfg := &config.Config{Brackets: map[string][]catalog.Pair{"go": {{Open: "<", Close: ">"}}}}

	if err := WriteConfig(cfg, path, "", false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	if err := WriteConfig(cfg, path, "", false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("expected ErrConfigExists, got %v", err)
	}

	if err := WriteConfig(cfg, path, "", true); err != nil {
		t.Errorf("forced write failed: %v", err)
	}

	loaded, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if len(loaded.PairsFor("go")) != 1 {
		t.Errorf("round trip lost pairs: %v", loaded.Brackets)
	}
}

func TestWriteTemplateLoads(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".gobrackets.yml")

	if err := WriteTemplate(path, config.TemplateOptions{Full: true}, false); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}

	if _, err := Load(context.Background(), isolated(tmpDir)); err != nil {
		t.Fatalf("template does not load: %v", err)
	}
}
