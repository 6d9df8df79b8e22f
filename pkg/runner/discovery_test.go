package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/gobrackets/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}

		out = append(out, filepath.ToSlash(rel))
	}

	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"main.go": "package main\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"main.go"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if want := []string{filepath.Join(dir, "main.go")}; !cmp.Equal(files, want) {
		t.Errorf("Discover() mismatch (-got +want):\n%s", cmp.Diff(files, want))
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "everything",
			want: []string{"README.md", "docs/guide.md", "src/lib.py", "src/main.go"},
		},
		{
			name: "extensions",
			opts: runner.Options{Extensions: []string{".go", ".PY"}},
			want: []string{"src/lib.py", "src/main.go"},
		},
		{
			name: "exclude directory",
			opts: runner.Options{ExcludeGlobs: []string{"docs/**"}},
			want: []string{"README.md", "src/lib.py", "src/main.go"},
		},
		{
			name: "exclude base name",
			opts: runner.Options{ExcludeGlobs: []string{"*.md"}},
			want: []string{"src/lib.py", "src/main.go"},
		},
		{
			name: "include vendored",
			opts: runner.Options{IncludeVendored: true, Extensions: []string{".go"}},
			want: []string{"src/main.go", "vendor/dep/dep.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, map[string]string{
				"README.md":         "# Title\n",
				"docs/guide.md":     "(guide)\n",
				"src/main.go":       "package main\n",
				"src/lib.py":        "print([1])\n",
				".hidden/secret.go": "package hidden\n",
				".env":              "KEY=value\n",
				"vendor/dep/dep.go": "package dep\n",
			})

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			if got := relPaths(t, dir, files); !cmp.Equal(got, tt.want) {
				t.Errorf("Discover() mismatch (-got +want):\n%s", cmp.Diff(got, tt.want))
			}
		})
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.go", filepath.Join(dir, "a.go")},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 {
		t.Errorf("expected 1 file, got %v", files)
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.go"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
