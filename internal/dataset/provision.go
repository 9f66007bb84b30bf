package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Provision copies the dataset from src to target unless target already
// exists. The file is written to a temporary name first and renamed into
// place, so a failed download never leaves a partial dataset behind.
// It reports whether a copy was made.
func Provision(ctx context.Context, src SourceDriver, target string) (bool, error) {
	if src == nil {
		return false, nil
	}

	if _, err := os.Stat(target); err == nil {
		slog.Info("dataset already present, skipping provisioning", "path", target)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat dataset: %w", err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create dataset directory: %w", err)
	}

	reader, err := src.Open(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to open dataset source %s: %w", src.Location(), err)
	}
	defer reader.Close()

	tmp, err := os.CreateTemp(dir, ".dataset-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temporary dataset file: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to copy dataset from %s: %w", src.Location(), err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to move dataset into place: %w", err)
	}

	slog.Info("dataset provisioned", "source", src.Location(), "path", target, "bytes", written)
	return true, nil
}
