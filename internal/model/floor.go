package model

import "time"

// Floor is the top-level physical location unit.  Floor numbers are
// unique across the building (floors.floor_number has a unique key).
// A floor owns zero or more rooms.
//
// Fields:
//
//	ID          – primary key identifier.
//	FloorNumber – building level, 0 or greater.
//	Name        – display name.
//	CreatedAt   – timestamp when the floor was created.
//	UpdatedAt   – timestamp of last update.
type Floor struct {
	ID          uint64    `json:"id"`          // floors.id
	Name        string    `json:"name"`        // floors.name
	FloorNumber int       `json:"floorNumber"` // floors.floor_number
	CreatedAt   time.Time `json:"createdAt"`   // floors.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // floors.updated_at
}

// FloorDetail is a floor together with its full room and seat tree.  It is
// returned by GET /floors/:id only; listing floors returns bare Floor values.
type FloorDetail struct {
	Floor
	Rooms []RoomDetail `json:"rooms"`
}
