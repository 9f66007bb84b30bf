package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/OpenNSW/tonban/internal/tonban/model"
)

// decodeRow scans the current row into a record keyed by the declared
// column names, so the record shape never depends on driver metadata.
func decodeRow(rows *sql.Rows, columns []model.Column) (model.Record, error) {
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	record := make(model.Record, len(columns))
	for i, col := range columns {
		record[col.Name] = normalizeValue(values[i])
	}
	return record, nil
}

// normalizeValue converts driver values into JSON-friendly ones.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}
