package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobrackets/internal/configloader"
	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/fsutil"
)

// loadConfig merges the configuration layers with the flags in cli and
// returns the result along with the working directory.
func loadConfig(cmd *cobra.Command, cli *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// colorMode returns the value of the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}

	return mode
}

// readFile reads a single input file for the file-oriented commands.
func readFile(ctx context.Context, path string) ([]byte, *fsutil.Snapshot, error) {
	content, snap, err := fsutil.Read(ctx, path)
	if errors.Is(err, fsutil.ErrIsDirectory) {
		return nil, nil, &UsageError{Err: err}
	}

	if err != nil {
		return nil, nil, err
	}

	return content, snap, nil
}
