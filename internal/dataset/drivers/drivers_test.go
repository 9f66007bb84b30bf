package drivers

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFSDriver_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "統番.db")
	require.NoError(t, os.WriteFile(path, []byte("SQLite format 3"), 0o644))

	driver := NewLocalFSDriver(path)
	assert.Equal(t, path, driver.Location())

	reader, err := driver.Open(context.Background())
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "SQLite format 3", string(content))
}

func TestLocalFSDriver_Missing(t *testing.T) {
	driver := NewLocalFSDriver(filepath.Join(t.TempDir(), "missing.db"))

	_, err := driver.Open(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalFSDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalFSDriver("unused").Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeGetter struct {
	input *s3.GetObjectInput
	body  string
	err   error
}

func (f *fakeGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Driver_Open(t *testing.T) {
	getter := &fakeGetter{body: "SQLite format 3"}
	driver := NewS3Driver(getter, "tariff-data", "datasets/統番.db")

	reader, err := driver.Open(context.Background())
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "SQLite format 3", string(content))
	assert.Equal(t, "tariff-data", aws.ToString(getter.input.Bucket))
	assert.Equal(t, "datasets/統番.db", aws.ToString(getter.input.Key))
	assert.Equal(t, "s3://tariff-data/datasets/統番.db", driver.Location())
}

func TestS3Driver_Error(t *testing.T) {
	driver := NewS3Driver(&fakeGetter{err: errors.New("NoSuchKey")}, "tariff-data", "統番.db")

	_, err := driver.Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchKey")
}
