package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/OpenNSW/tonban/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDatasetUnavailable is returned when the dataset file has not been provisioned.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// New creates a new database connection using the provided configuration
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config cannot be nil")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	// Open database connection
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxConnLifetimeSeconds) * time.Second)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		slog.Info("database connection established",
			"driver", cfg.Driver,
			"path", cfg.Path,
		)
	} else {
		slog.Info("database connection established",
			"driver", cfg.Driver,
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.Name,
		)
	}

	return db, nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	slog.Info("database connection closed")
	return nil
}

// HealthCheck performs a health check on the database connection
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Dataset hands out the connection to the read-only tariff dataset.
//
// With the sqlite driver the dataset file may be provisioned after the
// process starts: the connection is opened on first use, and every call
// checks that the file still exists.
type Dataset struct {
	cfg  *config.DatabaseConfig
	open func(*config.DatabaseConfig) (*gorm.DB, error)

	mu sync.Mutex
	db *gorm.DB
}

// NewDataset creates a Dataset for cfg without connecting.
func NewDataset(cfg *config.DatabaseConfig) *Dataset {
	return &Dataset{cfg: cfg, open: New}
}

// NewDatasetFromDB wraps an already opened connection.
func NewDatasetFromDB(db *gorm.DB) *Dataset {
	return &Dataset{db: db}
}

// Exists reports whether the dataset is provisioned.
func (d *Dataset) Exists() bool {
	if d.cfg == nil || d.cfg.Driver != config.DriverSQLite {
		return true
	}
	info, err := os.Stat(d.cfg.Path)
	return err == nil && !info.IsDir()
}

// DB returns the dataset connection, opening it if needed.
// It returns ErrDatasetUnavailable when the sqlite file is missing.
func (d *Dataset) DB(ctx context.Context) (*gorm.DB, error) {
	if !d.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrDatasetUnavailable, d.cfg.Path)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		db, err := d.open(d.cfg)
		if err != nil {
			return nil, err
		}
		d.db = db
	}
	return d.db.WithContext(ctx), nil
}

// Ping verifies the dataset can be reached.
func (d *Dataset) Ping(ctx context.Context) error {
	db, err := d.DB(ctx)
	if err != nil {
		return err
	}
	return HealthCheck(ctx, db)
}

// Close releases the connection if one was opened.
func (d *Dataset) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := Close(d.db)
	d.db = nil
	return err
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
