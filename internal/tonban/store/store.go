package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/OpenNSW/tonban/internal/database"
	"github.com/OpenNSW/tonban/internal/tonban/model"
	"github.com/OpenNSW/tonban/internal/tonban/query"
)

// Querier executes a bound statement against the dataset.
type Querier interface {
	Execute(ctx context.Context, stmt query.Statement) ([]model.Record, error)
}

// ConnProvider hands out the dataset connection for one call.
type ConnProvider interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// Store runs statements through gorm.
type Store struct {
	conn ConnProvider
}

// New creates a Store reading from conn.
func New(conn ConnProvider) *Store {
	return &Store{conn: conn}
}

// Execute runs stmt and decodes every row with the statement's projection.
func (s *Store) Execute(ctx context.Context, stmt query.Statement) ([]model.Record, error) {
	db, err := s.conn.DB(ctx)
	if err != nil {
		if errors.Is(err, database.ErrDatasetUnavailable) {
			return nil, fmt.Errorf("%w: %v", model.ErrDatasetUnavailable, err)
		}
		return nil, fmt.Errorf("failed to get dataset connection: %w", err)
	}

	rows, err := db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s %s query: %w", stmt.Direction, stmt.Filter, err)
	}
	defer rows.Close()

	return decodeRows(rows, stmt.Columns())
}

func decodeRows(rows *sql.Rows, columns []model.Column) ([]model.Record, error) {
	got, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	if len(got) != len(columns) {
		return nil, fmt.Errorf("unexpected column count: got %d, want %d", len(got), len(columns))
	}

	records := []model.Record{}
	for rows.Next() {
		record, err := decodeRow(rows, columns)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return records, nil
}
