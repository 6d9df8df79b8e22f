// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and import of VS Code
// language configuration files.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned by WriteConfig when the target exists.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Catalog resolves language aliases in bracket overrides. Nil means
	// catalog.Default.
	Catalog *catalog.Catalog

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOBRACKETS_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gobrackets.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gobrackets/config.yaml)
//  6. System config (/etc/gobrackets/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}

	paths.Explicit = opts.ExplicitPath
	result.Paths = paths

	skipped := map[string]bool{
		"system":  opts.IgnoreSystemConfig,
		"user":    opts.IgnoreUserConfig,
		"project": opts.IgnoreProjectConfig,
	}

	for _, layer := range paths.Layers() {
		if skipped[layer.Name] || layer.Path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(layer.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.Name, err)
		}

		normalizeLanguageKeys(fileCfg, cat, layer.Path, result)

		if err := ValidateWithFile(fileCfg, layer.Path).Err(); err != nil {
			return nil, err
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.Path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, cat)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg

	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	return cfg, nil
}

// normalizeLanguageKeys rewrites bracket override keys to catalog ids so
// "c++" and "cpp" both configure the same language. When two keys name the
// same language their pairs are concatenated in key order and a warning is
// recorded.
func normalizeLanguageKeys(cfg *config.Config, cat *catalog.Catalog, path string, result *LoadResult) {
	if len(cfg.Brackets) == 0 {
		return
	}

	keys := sortedKeys(cfg.Brackets)
	normalized := make(map[string][]catalog.Pair, len(keys))
	seen := make(map[string]string, len(keys))

	for _, key := range keys {
		id := cat.Canonical(NormalizeLanguageID(key))

		if original, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: brackets %q and %q both configure %s; pairs are combined", path, original, key, id))
		}

		seen[id] = key
		normalized[id] = append(normalized[id], cfg.Brackets[key]...)
	}

	cfg.Brackets = normalized
}

// WriteConfig writes cfg with a header comment to path. An existing file
// is only replaced when force is set.
func WriteConfig(cfg *config.Config, path, header string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	if header == "" {
		header = config.DefaultTemplateHeader()
	}

	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.WriteAtomic(context.Background(), path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// WriteTemplate writes a starter configuration to path.
func WriteTemplate(path string, opts config.TemplateOptions, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	if err := fsutil.WriteAtomic(context.Background(), path, config.GenerateTemplate(opts), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
