// Package repository contains data access logic separated from HTTP handlers.
// This file defines the floor queries.  Floors are the roots of the office
// hierarchy; floor_number is unique across the table.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to compare sentinel values

	"github.com/iliyamo/office-management/internal/model"
)

const floorColumns = "id, name, floor_number, created_at, updated_at"

// FloorRepo encapsulates all database queries related to floors.  It
// depends on a sql.DB connection which is configured at startup; calls
// made with a transactional context run inside that transaction.
type FloorRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewFloorRepo constructs a FloorRepo with the provided DB handle.
func NewFloorRepo(db *sql.DB) *FloorRepo {
	return &FloorRepo{db: db}
}

func scanFloor(row rowScanner, f *model.Floor) error {
	return row.Scan(&f.ID, &f.Name, &f.FloorNumber, &f.CreatedAt, &f.UpdatedAt)
}

// Create inserts a new floor.  On success the floor's ID and timestamps
// are populated by a follow-up SELECT.
func (r *FloorRepo) Create(ctx context.Context, f *model.Floor) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx, "INSERT INTO floors (floor_number, name) VALUES (?, ?)", f.FloorNumber, f.Name)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return scanFloor(q.QueryRowContext(ctx, "SELECT "+floorColumns+" FROM floors WHERE id = ?", id), f)
}

// GetByID fetches a floor by its ID.  It returns ErrFloorNotFound if no
// row is found.
func (r *FloorRepo) GetByID(ctx context.Context, id uint64) (*model.Floor, error) {
	var f model.Floor
	err := scanFloor(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+floorColumns+" FROM floors WHERE id = ?", id), &f)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns every floor ordered by id (insertion order).
func (r *FloorRepo) List(ctx context.Context) ([]model.Floor, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, "SELECT "+floorColumns+" FROM floors ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Floor{}
	for rows.Next() {
		var f model.Floor
		if err := scanFloor(rows, &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByNumber reports whether a floor other than excludeID already uses
// number.  Pass excludeID 0 on create.
func (r *FloorRepo) ExistsByNumber(ctx context.Context, number int, excludeID uint64) (bool, error) {
	const q = "SELECT EXISTS(SELECT 1 FROM floors WHERE floor_number = ? AND id <> ?)"
	var ok bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, q, number, excludeID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Update replaces name and floor_number of f.ID and reloads f.  It returns
// ErrFloorNotFound when no row matches.
func (r *FloorRepo) Update(ctx context.Context, f *model.Floor) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		"UPDATE floors SET name = ?, floor_number = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		f.Name, f.FloorNumber, f.ID)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFloorNotFound
	}
	return scanFloor(q.QueryRowContext(ctx, "SELECT "+floorColumns+" FROM floors WHERE id = ?", f.ID), f)
}

// Delete removes a floor.  Rooms still pointing at it make the foreign
// key fail with ErrStillReferenced.
func (r *FloorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM floors WHERE id = ?", id)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFloorNotFound
	}
	return nil
}
