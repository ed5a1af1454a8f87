package service

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const maxPageSize = 100

// Column widths of the schema.
const (
	maxNameLen   = 255
	maxNumberLen = 64
)

// FloorInput is the writable part of a floor.  FloorNumber is a pointer so
// that a missing value can be told apart from floor zero.
type FloorInput struct {
	Name        string
	FloorNumber *int
}

// RoomInput is the writable part of a room.
type RoomInput struct {
	Name       string
	RoomNumber string
	FloorID    *uint64
}

// SeatInput is the writable part of a seat.  Occupancy is not part of it.
type SeatInput struct {
	SeatNumber string
	RoomID     *uint64
}

// EmployeeInput is the writable part of an employee.
type EmployeeInput struct {
	FullName   string
	Occupation string
}

func (in *FloorInput) trim() { in.Name = strings.TrimSpace(in.Name) }

func (in *RoomInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
}

func (in *SeatInput) trim() { in.SeatNumber = strings.TrimSpace(in.SeatNumber) }

func (in *EmployeeInput) trim() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Occupation = strings.TrimSpace(in.Occupation)
}

func validateFloor(in FloorInput) error {
	switch {
	case in.Name == "":
		return NewValidation("name must not be blank")
	case in.FloorNumber == nil:
		return NewValidation("floorNumber is required")
	case *in.FloorNumber < 0:
		return NewValidation("floorNumber must be zero or greater")
	case *in.FloorNumber > math.MaxInt32:
		return NewValidation(fmt.Sprintf("floorNumber must not exceed %d", math.MaxInt32))
	case tooLong(in.Name, maxNameLen):
		return lengthError("name", maxNameLen)
	}
	return nil
}

func validateRoom(in RoomInput) error {
	switch {
	case in.Name == "":
		return NewValidation("name must not be blank")
	case in.RoomNumber == "":
		return NewValidation("roomNumber must not be blank")
	case in.FloorID == nil:
		return NewValidation("floor id is required")
	case tooLong(in.Name, maxNameLen):
		return lengthError("name", maxNameLen)
	case tooLong(in.RoomNumber, maxNumberLen):
		return lengthError("roomNumber", maxNumberLen)
	}
	return nil
}

func validateSeat(in SeatInput) error {
	switch {
	case in.SeatNumber == "":
		return NewValidation("seatNumber must not be blank")
	case in.RoomID == nil:
		return NewValidation("room id is required")
	case tooLong(in.SeatNumber, maxNumberLen):
		return lengthError("seatNumber", maxNumberLen)
	}
	return nil
}

func validateEmployee(in EmployeeInput) error {
	switch {
	case in.FullName == "":
		return NewValidation("fullName must not be blank")
	case in.Occupation == "":
		return NewValidation("occupation must not be blank")
	case tooLong(in.FullName, maxNameLen):
		return lengthError("fullName", maxNameLen)
	case tooLong(in.Occupation, maxNameLen):
		return lengthError("occupation", maxNameLen)
	}
	return nil
}

func validatePage(page, size int) error {
	if page < 0 {
		return NewValidation("page must be zero or greater")
	}
	if size < 1 || size > maxPageSize {
		return NewValidation("size must be between 1 and 100")
	}
	return nil
}

// tooLong counts characters, matching VARCHAR(n) semantics.
func tooLong(s string, n int) bool { return utf8.RuneCountInString(s) > n }

func lengthError(field string, n int) error {
	return NewValidation(fmt.Sprintf("%s must be at most %d characters", field, n))
}
