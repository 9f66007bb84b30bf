package drivers

import (
	"context"
	"fmt"
	"io"
	"os"
)

// LocalFSDriver reads the dataset from a file on local disk, e.g. a
// mounted volume shared between deployments.
type LocalFSDriver struct {
	Path string
}

func NewLocalFSDriver(path string) *LocalFSDriver {
	return &LocalFSDriver{Path: path}
}

func (d *LocalFSDriver) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (d *LocalFSDriver) Location() string {
	return d.Path
}
