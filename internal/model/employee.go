package model

import "time"

// Employee is a person who may hold zero or more seats at the same time.
// Employees are never deleted through the API.
//
// Fields:
//
//	ID         – primary key identifier.
//	FullName   – person's full name.
//	Occupation – job title.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Employee struct {
	ID         uint64    `json:"id"`         // employees.id
	FullName   string    `json:"fullName"`   // employees.full_name
	Occupation string    `json:"occupation"` // employees.occupation
	CreatedAt  time.Time `json:"createdAt"`  // employees.created_at
	UpdatedAt  time.Time `json:"updatedAt"`  // employees.updated_at
}

// EmployeeDetail is an employee with the seats they hold, each seat
// carrying its room reference.
type EmployeeDetail struct {
	Employee
	Seats []SeatDetail `json:"seats"`
}

// EmployeeRef is the short employee reference embedded in room seat listings.
type EmployeeRef struct {
	ID         uint64 `json:"id"`
	FullName   string `json:"fullName"`
	Occupation string `json:"occupation"`
}
