package store

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/OpenNSW/tonban/internal/tonban/model"
)

// Index is a lookup index on an entry table.
type Index struct {
	Name   string
	Table  string
	Column string
}

// SQL returns the idempotent CREATE INDEX statement.
func (i Index) SQL() string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", i.Name, i.Table, i.Column)
}

// LookupIndexes covers the exact-code and item-name columns of both entry tables.
func LookupIndexes() []Index {
	var indexes []Index
	for _, dir := range []model.Direction{model.DirectionExport, model.DirectionImport} {
		indexes = append(indexes,
			Index{Name: fmt.Sprintf("idx_%s_code", dir), Table: dir.Table(), Column: model.ColTonban},
			Index{Name: fmt.Sprintf("idx_%s_name", dir), Table: dir.Table(), Column: model.ColItemName},
		)
	}
	return indexes
}

// EnsureIndexes creates any missing lookup index. It must finish before
// the server starts accepting requests.
func EnsureIndexes(ctx context.Context, db *gorm.DB) error {
	for _, idx := range LookupIndexes() {
		if err := db.WithContext(ctx).Exec(idx.SQL()).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.Name, err)
		}
		slog.Debug("lookup index ensured", "index", idx.Name, "table", idx.Table)
	}
	slog.Info("lookup indexes ready", "count", len(LookupIndexes()))
	return nil
}
