package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparison

	"github.com/iliyamo/office-management/internal/model"
)

const roomColumns = "id, room_number, name, floor_id, created_at, updated_at"

// RoomRepo provides methods to create, retrieve and modify rooms.  Rooms
// are stored in office_rooms; (floor_id, room_number) is unique.
type RoomRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func scanRoom(row rowScanner, rm *model.Room) error {
	return row.Scan(&rm.ID, &rm.RoomNumber, &rm.Name, &rm.FloorID, &rm.CreatedAt, &rm.UpdatedAt)
}

// Create inserts a new room.  After insert the row is read back so that
// the ID and timestamps are populated.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		"INSERT INTO office_rooms (floor_id, room_number, name) VALUES (?, ?, ?)",
		rm.FloorID, rm.RoomNumber, rm.Name)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return scanRoom(q.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM office_rooms WHERE id = ?", id), rm)
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when no
// row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	var rm model.Room
	err := scanRoom(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+roomColumns+" FROM office_rooms WHERE id = ?", id), &rm)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByFloor returns all rooms of a floor ordered by id.
func (r *RoomRepo) ListByFloor(ctx context.Context, floorID uint64) ([]model.Room, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT "+roomColumns+" FROM office_rooms WHERE floor_id = ? ORDER BY id", floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		var rm model.Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByNumber reports whether another room on floorID already uses
// roomNumber.  Pass excludeID 0 on create.
func (r *RoomRepo) ExistsByNumber(ctx context.Context, floorID uint64, roomNumber string, excludeID uint64) (bool, error) {
	const q = "SELECT EXISTS(SELECT 1 FROM office_rooms WHERE floor_id = ? AND room_number = ? AND id <> ?)"
	var ok bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, q, floorID, roomNumber, excludeID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Update replaces room_number, name and floor_id of rm.ID and reloads rm.
// Returns ErrRoomNotFound when no row matches.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		`UPDATE office_rooms
		 SET room_number = ?, name = ?, floor_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		rm.RoomNumber, rm.Name, rm.FloorID, rm.ID)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return scanRoom(q.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM office_rooms WHERE id = ?", rm.ID), rm)
}

// Delete removes a room.  Seats still in the room make the foreign key
// fail with ErrStillReferenced.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM office_rooms WHERE id = ?", id)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// CountByFloor returns how many rooms belong to floorID.
func (r *RoomRepo) CountByFloor(ctx context.Context, floorID uint64) (int64, error) {
	var n int64
	err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT COUNT(*) FROM office_rooms WHERE floor_id = ?", floorID).Scan(&n)
	return n, err
}
