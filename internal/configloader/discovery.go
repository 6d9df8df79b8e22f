package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the system and user configuration directories.
const appName = "gobrackets"

// ConfigPaths holds the configuration file found for each layer. A layer
// without a file has an empty path.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Layer is one named configuration file.
type Layer struct {
	Name string
	Path string
}

// Layers returns the layers in merge order, lowest precedence first.
func (p *ConfigPaths) Layers() []Layer {
	return []Layer{
		{Name: "system", Path: p.System},
		{Name: "user", Path: p.User},
		{Name: "project", Path: p.Project},
		{Name: "explicit", Path: p.Explicit},
	}
}

// ProjectConfigFiles are the project file names, in order of preference.
//
//nolint:gochecknoglobals // read-only lookup table
var ProjectConfigFiles = []string{
	".gobrackets.yml",
	".gobrackets.yaml",
	"gobrackets.yml",
	"gobrackets.yaml",
}

//nolint:gochecknoglobals // read-only lookup table
var (
	layerConfigFiles = []string{"config.yaml", "config.yml"}
	vcsRootMarkers   = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user and project configuration files
// for workDir. Missing files are not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigFiles),
		User:    firstFile(userConfigDir(), layerConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}

	if programData := os.Getenv("ProgramData"); programData != "" {
		return filepath.Join(programData, appName)
	}

	return filepath.Join(`C:\ProgramData`, appName)
}

// userConfigDir follows XDG on every platform, so macOS users get
// ~/.config rather than ~/Library.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig searches startDir and its parents for a project
// configuration file. The search ends at a VCS root, the home directory or
// the filesystem root, whichever comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}

		startDir = wd
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for dir := range ancestors(absDir) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, ProjectConfigFiles); path != "" {
			return path, nil
		}

		if isVCSRoot(dir) || (home != "" && dir == home) {
			break
		}
	}

	return "", nil
}

// ancestors yields dir followed by each of its parents up to the root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}

			dir = parent
		}
	}
}

// isVCSRoot reports whether dir holds a VCS marker. Git worktrees and
// submodules use a .git file instead of a directory, so any entry counts.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Lstat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}

	return false
}

// firstFile returns the first regular file among names in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	return ""
}

// IsJSONConfig reports whether path names a JSON or JSONC file.
func IsJSONConfig(path string) bool {
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		return true
	default:
		return false
	}
}
