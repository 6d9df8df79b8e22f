package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gobrackets/pkg/langdetect"
)

// Discover finds the files to scan under opts.Paths.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})

	var files []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}

		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// An explicit file is scanned unless it is excluded.
			if !excluded(relativeTo(workDir, absPath), opts.ExcludeGlobs) {
				add(absPath)
			}

			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, opts)
		if err != nil {
			return nil, err
		}

		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}

		return wd, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	return absPath, nil
}

func relativeTo(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}

// walkDirectory recursively walks a directory and returns the files to scan.
func walkDirectory(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}

			return walkErr
		}

		relPath := relativeTo(workDir, path)

		if entry.IsDir() {
			if path == root {
				return nil
			}

			if strings.HasPrefix(entry.Name(), ".") || excluded(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}

			if !opts.IncludeVendored && langdetect.IsVendored(relPath+"/") {
				return filepath.SkipDir
			}

			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}

			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // inaccessible targets are skipped
			}

			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}

				// Walk the target, not the link, so WalkDir's Lstat does not loop.
				subFiles, err := walkDirectory(ctx, realPath, workDir, opts)
				if err != nil {
					return err
				}

				files = append(files, subFiles...)

				return nil
			}
		}

		if matchesFile(relPath, entry.Name(), opts) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesFile checks a walked file against the inclusion criteria.
func matchesFile(relPath, name string, opts Options) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}

	if !hasMatchingExtension(name, opts.Extensions) {
		return false
	}

	if !opts.IncludeVendored && langdetect.IsVendored(relPath) {
		return false
	}

	return !excluded(relPath, opts.ExcludeGlobs)
}

// hasMatchingExtension checks if the file has a matching extension. An
// empty list matches everything.
func hasMatchingExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(name))

	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// excluded reports whether relPath matches a pattern. Patterns without a
// slash also match the base name, so "*.min.js" works at any depth.
func excluded(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}

		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}

		// "dir/**" also covers the directory itself.
		if prefix, found := strings.CutSuffix(pattern, "/**"); found && prefix == relPath {
			return true
		}
	}

	return false
}
