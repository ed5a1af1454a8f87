package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-management/internal/service"
)

// Search defaults used when the query string leaves them out.
const (
	defaultPage = 0
	defaultSize = 10
)

type employeeReq struct {
	FullName   string `json:"fullName"`   // required
	Occupation string `json:"occupation"` // required
}

// CreateEmployee handles POST /employees.
func (h *OfficeHandler) CreateEmployee(c echo.Context) error {
	var body employeeReq
	if err := bindJSON(c, &body); err != nil {
		return h.fail(c, err)
	}
	emp, err := h.Inventory.CreateEmployee(c.Request().Context(),
		service.EmployeeInput{FullName: body.FullName, Occupation: body.Occupation})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, emp)
}

// GetEmployee handles GET /employees/:id; the seats carry their room.
func (h *OfficeHandler) GetEmployee(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	emp, err := h.Inventory.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, emp)
}

// GetEmployeeSeats handles GET /employees/:id/seats.
func (h *OfficeHandler) GetEmployeeSeats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	seats, err := h.Inventory.GetEmployeeSeats(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

// SearchEmployees handles GET /employees/search?search=&page=&size=.
func (h *OfficeHandler) SearchEmployees(c echo.Context) error {
	page, err := queryInt(c, "page", defaultPage)
	if err != nil {
		return h.fail(c, err)
	}
	size, err := queryInt(c, "size", defaultSize)
	if err != nil {
		return h.fail(c, err)
	}
	result, err := h.Inventory.SearchEmployees(c.Request().Context(), c.QueryParam("search"), page, size)
	if err != nil {
		return h.fail(c, err) // 400 when page or size is out of range
	}
	return c.JSON(http.StatusOK, result)
}

// AssignSeat handles PUT /employees/:id/assign-seat/:seatId and returns
// the employee with its seats.
func (h *OfficeHandler) AssignSeat(c echo.Context) error {
	empID, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	seatID, err := pathID(c, "seatId")
	if err != nil {
		return h.fail(c, err)
	}
	emp, err := h.Assignment.AssignSeat(c.Request().Context(), empID, seatID)
	if err != nil {
		return h.fail(c, err) // 409 when the seat is already occupied
	}
	return c.JSON(http.StatusOK, emp)
}

// UnassignSeat handles DELETE /employees/:id/unassign-seat/:seatId.
func (h *OfficeHandler) UnassignSeat(c echo.Context) error {
	empID, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	seatID, err := pathID(c, "seatId")
	if err != nil {
		return h.fail(c, err)
	}
	emp, err := h.Assignment.UnassignSeat(c.Request().Context(), empID, seatID)
	if err != nil {
		return h.fail(c, err) // 400 unless the seat belongs to this employee
	}
	return c.JSON(http.StatusOK, emp)
}
