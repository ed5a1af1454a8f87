package service

import (
	"context"

	"github.com/iliyamo/office-management/internal/model"
)

// Stats is the read-only aggregator behind GET /stats.
type Stats struct {
	store StatsStore
}

// NewStats wires a Stats aggregator over store.
func NewStats(store StatsStore) *Stats {
	return &Stats{store: store}
}

// GetStats returns the four table counts.  Any store failure is internal.
func (s *Stats) GetStats(ctx context.Context) (model.Stats, error) {
	st, err := s.store.Counts(ctx)
	if err != nil {
		return model.Stats{}, NewInternal(err)
	}
	return st, nil
}
