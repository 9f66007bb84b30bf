package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/OpenNSW/tonban/internal/logging"
	"github.com/OpenNSW/tonban/internal/tonban/model"
	"github.com/OpenNSW/tonban/internal/tonban/query"
	"github.com/OpenNSW/tonban/internal/tonban/store"
)

// TonbanService validates requests, builds the statement and runs it.
type TonbanService struct {
	querier store.Querier
	// strict reports a missing dataset as an error instead of an empty result.
	strict bool
}

// NewTonbanService creates a TonbanService. With strict set, a missing
// dataset surfaces as model.ErrDatasetUnavailable; otherwise it reads as
// a dataset without matching rows.
func NewTonbanService(querier store.Querier, strict bool) *TonbanService {
	return &TonbanService{querier: querier, strict: strict}
}

// LookupByCode returns the rows whose 統番 equals the trimmed code.
// It returns model.ErrNotFound when there are none.
func (s *TonbanService) LookupByCode(ctx context.Context, dir model.Direction, rawCode string) ([]model.Record, error) {
	code, err := ValidateCode(rawCode)
	if err != nil {
		return nil, err
	}

	stmt, err := query.Lookup(dir, code)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup: %w", err)
	}

	records, err := s.execute(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, model.NewRequestError(model.ErrNotFound, fmt.Sprintf("統番 %s が見つかりません", code))
	}
	return records, nil
}

// Search returns up to limit rows whose item name or any ancestor title
// contains the keyword, ordered by 統番. A nil rawLimit selects the default.
// An empty result is not an error.
func (s *TonbanService) Search(ctx context.Context, dir model.Direction, rawKeyword string, rawLimit *string) ([]model.Record, error) {
	keyword, err := ValidateKeyword(rawKeyword)
	if err != nil {
		return nil, err
	}
	limit, err := ParseLimit(rawLimit)
	if err != nil {
		return nil, err
	}

	stmt, err := query.Search(dir, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build search: %w", err)
	}

	return s.execute(ctx, stmt)
}

func (s *TonbanService) execute(ctx context.Context, stmt query.Statement) ([]model.Record, error) {
	logger := logging.FromContext(ctx)

	records, err := s.querier.Execute(ctx, stmt)
	if err != nil {
		if errors.Is(err, model.ErrDatasetUnavailable) && !s.strict {
			logger.ErrorContext(ctx, "dataset not found, returning empty result",
				"direction", stmt.Direction,
				"filter", stmt.Filter,
				"error", err)
			return []model.Record{}, nil
		}
		return nil, err
	}

	logger.DebugContext(ctx, "query executed",
		"direction", stmt.Direction,
		"filter", stmt.Filter,
		"rows", len(records))
	return records, nil
}
