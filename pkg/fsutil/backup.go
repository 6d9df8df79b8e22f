package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies path to its sidecar backup, replacing an older backup, and
// returns the backup path. A missing file has nothing to back up and
// yields an empty path.
func Backup(ctx context.Context, path string) (string, error) {
	content, snap, err := Read(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	backup := BackupPath(path)
	if err := WriteAtomic(ctx, backup, content, snap.Mode.Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return backup, nil
}

// Restore copies the sidecar backup of path back over it and removes the
// backup. It reports whether a backup existed.
func Restore(ctx context.Context, path string) (bool, error) {
	backup := BackupPath(path)

	content, snap, err := Read(ctx, backup)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("restore: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode.Perm()); err != nil {
		return false, fmt.Errorf("restore: %w", err)
	}

	if err := os.Remove(backup); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}

	return true, nil
}
