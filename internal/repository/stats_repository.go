package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/office-management/internal/model"
)

// StatsRepo reads the aggregate counters shown on the dashboard.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo returns a new StatsRepo.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Counts returns the four table counts from a single statement so they
// share one snapshot.
func (r *StatsRepo) Counts(ctx context.Context) (model.Stats, error) {
	const q = `SELECT
		(SELECT COUNT(*) FROM employees),
		(SELECT COUNT(*) FROM floors),
		(SELECT COUNT(*) FROM office_rooms),
		(SELECT COUNT(*) FROM seats)`
	var s model.Stats
	err := conn(ctx, r.db).QueryRowContext(ctx, q).Scan(&s.TotalEmployees, &s.TotalFloors, &s.TotalOffices, &s.TotalSeats)
	return s, err
}
