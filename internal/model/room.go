package model

import "time"

// Room is a sub-unit of a floor.  Room numbers are unique within their
// floor but may repeat across floors.  Rooms live in the office_rooms
// table.
//
// Fields:
//
//	ID         – primary key identifier.
//	RoomNumber – label unique within the floor, e.g. "1.01".
//	Name       – display name.
//	FloorID    – owning floor.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Room struct {
	ID         uint64    `json:"id"`         // office_rooms.id
	RoomNumber string    `json:"roomNumber"` // office_rooms.room_number
	Name       string    `json:"name"`       // office_rooms.name
	FloorID    uint64    `json:"floorId"`    // office_rooms.floor_id
	CreatedAt  time.Time `json:"createdAt"`  // office_rooms.created_at
	UpdatedAt  time.Time `json:"updatedAt"`  // office_rooms.updated_at
}

// RoomDetail is a room with its seats loaded.  Each seat carries the
// occupying employee, if any.
type RoomDetail struct {
	Room
	Seats []SeatDetail `json:"seats"`
}

// RoomRef is the short room reference embedded in employee seat listings.
type RoomRef struct {
	ID         uint64 `json:"id"`
	RoomNumber string `json:"roomNumber"`
	Name       string `json:"name"`
	FloorID    uint64 `json:"floorId"`
}
