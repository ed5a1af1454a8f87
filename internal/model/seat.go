package model

import "time"

// Seat describes an assignable seat in a room.  Seats are uniquely
// identified by their room and seat number.  A seat is occupied when
// EmployeeID is set; the employee's seat set is reconstructed from this
// column on read.
//
// Fields:
//
//	ID         – primary key identifier.
//	SeatNumber – label unique within the room, e.g. "1-1".
//	RoomID     – room to which this seat belongs.
//	EmployeeID – occupying employee (nil when vacant).
//	Occupied   – derived from EmployeeID, never stored.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64    `json:"id"`                   // seats.id
	SeatNumber string    `json:"seatNumber"`           // seats.seat_number
	RoomID     uint64    `json:"roomId"`               // seats.room_id
	EmployeeID *uint64   `json:"employeeId,omitempty"` // seats.employee_id (nullable)
	Occupied   bool      `json:"occupied"`             // employee_id IS NOT NULL
	CreatedAt  time.Time `json:"createdAt"`            // seats.created_at
	UpdatedAt  time.Time `json:"updatedAt"`            // seats.updated_at
}

// IsOccupied reports whether an employee currently holds the seat.
func (s Seat) IsOccupied() bool { return s.EmployeeID != nil }

// SeatDetail is a seat with optional references to its occupant and its
// room.  Which references are filled depends on the read path: room
// listings fill Employee, employee listings fill Room.
type SeatDetail struct {
	Seat
	Employee *EmployeeRef `json:"employee,omitempty"`
	Room     *RoomRef     `json:"room,omitempty"`
}
