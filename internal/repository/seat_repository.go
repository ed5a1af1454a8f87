package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparison
	"strings"      // strings builds IN placeholders

	"github.com/iliyamo/office-management/internal/model"
)

const seatColumns = "s.id, s.seat_number, s.room_id, s.employee_id, s.created_at, s.updated_at"

// seatDetailSelect joins the room (always present) and the occupying
// employee (optional) so one scan fills both references.
const seatDetailSelect = `SELECT ` + seatColumns + `,
	       r.room_number, r.name, r.floor_id,
	       e.full_name, e.occupation
	FROM seats s
	JOIN office_rooms r ON r.id = s.room_id
	LEFT JOIN employees e ON e.id = s.employee_id`

// SeatRepo provides methods to work with seats in the database.  The
// employee_id column is the single source of truth for occupancy.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

func scanSeat(row rowScanner, s *model.Seat) error {
	var emp sql.NullInt64
	if err := row.Scan(&s.ID, &s.SeatNumber, &s.RoomID, &emp, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	setEmployee(s, emp)
	return nil
}

func scanSeatDetail(row rowScanner, d *model.SeatDetail) error {
	var (
		emp                  sql.NullInt64
		fullName, occupation sql.NullString
		room                 model.RoomRef
	)
	err := row.Scan(
		&d.ID, &d.SeatNumber, &d.RoomID, &emp, &d.CreatedAt, &d.UpdatedAt,
		&room.RoomNumber, &room.Name, &room.FloorID,
		&fullName, &occupation,
	)
	if err != nil {
		return err
	}
	setEmployee(&d.Seat, emp)
	room.ID = d.RoomID
	d.Room = &room
	if d.EmployeeID != nil {
		d.Employee = &model.EmployeeRef{
			ID:         *d.EmployeeID,
			FullName:   fullName.String,
			Occupation: occupation.String,
		}
	}
	return nil
}

func setEmployee(s *model.Seat, emp sql.NullInt64) {
	s.EmployeeID = nil
	if emp.Valid {
		id := uint64(emp.Int64)
		s.EmployeeID = &id
	}
	s.Occupied = s.EmployeeID != nil
}

// Create inserts a single vacant seat.  On success the seat's ID and
// timestamps are populated.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx, "INSERT INTO seats (room_id, seat_number) VALUES (?, ?)", s.RoomID, s.SeatNumber)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return scanSeat(q.QueryRowContext(ctx, "SELECT "+seatColumns+" FROM seats s WHERE s.id = ?", id), s)
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	return r.get(ctx, "SELECT "+seatColumns+" FROM seats s WHERE s.id = ?", id)
}

// GetByIDForUpdate retrieves a seat and locks its row until the surrounding
// transaction ends.  Outside a transaction the lock is released at once.
func (r *SeatRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*model.Seat, error) {
	return r.get(ctx, "SELECT "+seatColumns+" FROM seats s WHERE s.id = ? FOR UPDATE", id)
}

func (r *SeatRepo) get(ctx context.Context, query string, id uint64) (*model.Seat, error) {
	var s model.Seat
	if err := scanSeat(conn(ctx, r.db).QueryRowContext(ctx, query, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetDetail retrieves a seat with its room and occupant references.
func (r *SeatRepo) GetDetail(ctx context.Context, id uint64) (*model.SeatDetail, error) {
	var d model.SeatDetail
	if err := scanSeatDetail(conn(ctx, r.db).QueryRowContext(ctx, seatDetailSelect+" WHERE s.id = ?", id), &d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByRoom returns the seats of a room ordered by id.
func (r *SeatRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.SeatDetail, error) {
	return r.list(ctx, seatDetailSelect+" WHERE s.room_id = ? ORDER BY s.id", roomID)
}

// ListByFloor returns the seats of every room on a floor ordered by id.
func (r *SeatRepo) ListByFloor(ctx context.Context, floorID uint64) ([]model.SeatDetail, error) {
	return r.list(ctx, seatDetailSelect+" WHERE r.floor_id = ? ORDER BY s.id", floorID)
}

// ListByEmployees returns the seats held by any of the given employees,
// ordered by id.  An empty id list yields an empty result without a query.
func (r *SeatRepo) ListByEmployees(ctx context.Context, employeeIDs []uint64) ([]model.SeatDetail, error) {
	if len(employeeIDs) == 0 {
		return []model.SeatDetail{}, nil
	}
	args := make([]any, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(employeeIDs)), ",")
	return r.list(ctx, seatDetailSelect+" WHERE s.employee_id IN ("+placeholders+") ORDER BY s.id", args...)
}

func (r *SeatRepo) list(ctx context.Context, query string, args ...any) ([]model.SeatDetail, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SeatDetail{}
	for rows.Next() {
		var d model.SeatDetail
		if err := scanSeatDetail(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByNumber reports whether another seat in roomID already uses
// seatNumber.  Pass excludeID 0 on create.
func (r *SeatRepo) ExistsByNumber(ctx context.Context, roomID uint64, seatNumber string, excludeID uint64) (bool, error) {
	const q = "SELECT EXISTS(SELECT 1 FROM seats WHERE room_id = ? AND seat_number = ? AND id <> ?)"
	var ok bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, q, roomID, seatNumber, excludeID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Update replaces seat_number and room_id of s.ID and reloads s.  The
// employee_id column is left untouched.
func (r *SeatRepo) Update(ctx context.Context, s *model.Seat) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		"UPDATE seats SET seat_number = ?, room_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		s.SeatNumber, s.RoomID, s.ID)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return scanSeat(q.QueryRowContext(ctx, "SELECT "+seatColumns+" FROM seats s WHERE s.id = ?", s.ID), s)
}

// SetEmployee sets or clears (employeeID nil) the occupant of a seat.
func (r *SeatRepo) SetEmployee(ctx context.Context, seatID uint64, employeeID *uint64) error {
	var emp any
	if employeeID != nil {
		emp = *employeeID
	}
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE seats SET employee_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", emp, seatID)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// Delete removes a seat.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM seats WHERE id = ?", id)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// CountByRoom returns how many seats belong to roomID.
func (r *SeatRepo) CountByRoom(ctx context.Context, roomID uint64) (int64, error) {
	var n int64
	err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT COUNT(*) FROM seats WHERE room_id = ?", roomID).Scan(&n)
	return n, err
}
