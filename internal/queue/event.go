// Package queue defines message payloads exchanged over the message broker
// and the RabbitMQ publisher and consumer that move them.
package queue

// Seat event types.  The type doubles as a human readable verb in the
// audit log.
const (
	EventSeatAssigned   = "seat.assigned"
	EventSeatUnassigned = "seat.unassigned"
)

// SeatEvent is published after a seat assignment change has been committed.
// It carries enough context for the audit consumer to write a readable line
// without querying the primary database.
type SeatEvent struct {
	EventID      string `json:"event_id"`
	Type         string `json:"type"`
	SeatID       uint64 `json:"seat_id"`
	SeatNumber   string `json:"seat_number"`
	RoomID       uint64 `json:"room_id"`
	EmployeeID   uint64 `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	OccurredAt   string `json:"occurred_at"` // RFC 3339, UTC
}
