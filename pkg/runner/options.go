// Package runner scans many files for brackets concurrently.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
)

// Options controls a multi-file scan.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions restricts directory walks to these extensions (lowercase,
	// with leading dot). Empty means every file. Explicit file paths are
	// always scanned.
	Extensions []string

	// ExcludeGlobs are doublestar patterns, relative to WorkingDir, used to
	// skip files or directories. They merge ignore rules from config and CLI.
	ExcludeGlobs []string

	// IncludeVendored scans vendored and generated paths that are skipped
	// by default.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run. Nil means
	// config.NewConfig.
	Config *config.Config

	// Catalog supplies the built-in pairs. Nil means catalog.Default.
	Catalog *catalog.Catalog

	// Logger receives per-file debug events. Nil means the logger attached
	// to the context.
	Logger *log.Logger
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}

	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}

	return o.Config
}

func (o Options) effectiveCatalog() *catalog.Catalog {
	if o.Catalog == nil {
		return catalog.Default()
	}

	return o.Catalog
}
