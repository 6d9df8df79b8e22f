package configloader

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
)

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		start string
		want  string
	}{
		{
			name:  "in start directory",
			files: map[string]string{".gobrackets.yml": ""},
			start: ".",
			want:  ".gobrackets.yml",
		},
		{
			name:  "preferred name wins",
			files: map[string]string{"gobrackets.yaml": "", ".gobrackets.yaml": ""},
			start: ".",
			want:  ".gobrackets.yaml",
		},
		{
			name:  "found in parent",
			files: map[string]string{".gobrackets.yml": "", "a/b/keep": ""},
			start: "a/b",
			want:  ".gobrackets.yml",
		},
		{
			name:  "git file marks a worktree root",
			files: map[string]string{".gobrackets.yml": "", "wt/.git": "gitdir: ../.git/worktrees/wt\n"},
			start: "wt",
			want:  "",
		},
		{
			name:  "none",
			files: map[string]string{"a/keep": ""},
			start: "a",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			// Keeps the search from leaving the temporary tree.
			writeFile(t, filepath.Join(root, ".hg", "keep"), "")

			for name, content := range tt.files {
				writeFile(t, filepath.Join(root, name), content)
			}

			got, err := FindProjectConfig(context.Background(), filepath.Join(root, tt.start))
			if err != nil {
				t.Fatalf("FindProjectConfig() error = %v", err)
			}

			want := ""
			if tt.want != "" {
				want = filepath.Join(root, tt.want)
			}

			if got != want {
				t.Errorf("FindProjectConfig() = %q, want %q", got, want)
			}
		})
	}
}

func TestConfigPathsLayers(t *testing.T) {
	t.Parallel()

	paths := &ConfigPaths{System: "s", User: "u", Project: "p", Explicit: "e"}

	var names, files []string
	for _, layer := range paths.Layers() {
		names = append(names, layer.Name)
		files = append(files, layer.Path)
	}

	if !slices.Equal(names, []string{"system", "user", "project", "explicit"}) {
		t.Errorf("layer order = %v", names)
	}

	if !slices.Equal(files, []string{"s", "u", "p", "e"}) {
		t.Errorf("layer paths = %v", files)
	}
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	root := filepath.VolumeName(t.TempDir()) + string(filepath.Separator)
	start := filepath.Join(root, "a", "b")

	var got []string
	for dir := range ancestors(start) {
		got = append(got, dir)
	}

	want := []string{start, filepath.Join(root, "a"), root}
	if !slices.Equal(got, want) {
		t.Errorf("ancestors(%q) = %v, want %v", start, got, want)
	}
}
