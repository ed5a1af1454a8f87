package model

// Stats holds the dashboard counters.  Rooms are reported as
// "totalOffices" to keep the field name existing clients read.
type Stats struct {
	TotalEmployees int64 `json:"totalEmployees"`
	TotalFloors    int64 `json:"totalFloors"`
	TotalOffices   int64 `json:"totalOffices"`
	TotalSeats     int64 `json:"totalSeats"`
}
