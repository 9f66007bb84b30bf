package dataset

import (
	"context"
	"io"
)

// SourceDriver defines where a dataset file can be fetched from
type SourceDriver interface {
	// Open returns a reader over the dataset file content
	Open(ctx context.Context) (io.ReadCloser, error)

	// Location describes the source for logging
	Location() string
}
