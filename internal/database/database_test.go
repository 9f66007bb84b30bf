package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/OpenNSW/tonban/internal/config"
)

func sqliteConfig(path string) *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver:                 config.DriverSQLite,
		Path:                   path,
		MaxIdleConns:           1,
		MaxOpenConns:           1,
		MaxConnLifetimeSeconds: 60,
		LogLevel:               "silent",
	}
}

func createDatasetFile(t *testing.T, path string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE 部番 (部番 TEXT PRIMARY KEY, 部タイトル TEXT)").Error)
	require.NoError(t, Close(db))
}

func TestNew_MissingSQLiteFileIsNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "統番.db")

	_, err := New(sqliteConfig(path))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "opening must not create the dataset file")
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)

	_, err = New(nil)
	assert.Error(t, err)
}

func TestDataset_LazyOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "統番.db")
	ds := NewDataset(sqliteConfig(path))
	t.Cleanup(func() { _ = ds.Close() })
	ctx := context.Background()

	assert.False(t, ds.Exists())
	_, err := ds.DB(ctx)
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
	assert.ErrorIs(t, ds.Ping(ctx), ErrDatasetUnavailable)

	createDatasetFile(t, path)

	assert.True(t, ds.Exists())
	db, err := ds.DB(ctx)
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.NoError(t, ds.Ping(ctx))

	var count int64
	require.NoError(t, db.Raw("SELECT count(*) FROM 部番").Scan(&count).Error)
	assert.Zero(t, count)
}

func TestDataset_FromDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	ds := NewDatasetFromDB(db)
	assert.True(t, ds.Exists())
	assert.NoError(t, ds.Ping(context.Background()))
	assert.NoError(t, ds.Close())
	assert.NoError(t, ds.Close())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("INFO"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
