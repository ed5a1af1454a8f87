package handler

import (
	"net/http" // http defines status code constants

	"github.com/labstack/echo/v4" // echo framework supplies request context

	"github.com/iliyamo/office-management/internal/service"
)

// floorReq is the body of POST /floors and PUT /floors/:id.
type floorReq struct {
	Name        string `json:"name"`        // required floor name
	FloorNumber *int   `json:"floorNumber"` // required, zero or greater
}

func (r floorReq) input() service.FloorInput {
	return service.FloorInput{Name: r.Name, FloorNumber: r.FloorNumber}
}

// ListFloors handles GET /floors and returns floor summaries in id order.
func (h *OfficeHandler) ListFloors(c echo.Context) error {
	floors, err := h.Inventory.ListFloors(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, floors)
}

// GetFloor handles GET /floors/:id and returns the floor with its rooms
// and their seats.
func (h *OfficeHandler) GetFloor(c echo.Context) error {
	id, err := pathID(c, "id") // parse floor id from path
	if err != nil {
		return h.fail(c, err)
	}
	floor, err := h.Inventory.GetFloor(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err) // 404 when the floor is unknown
	}
	return c.JSON(http.StatusOK, floor)
}

// CreateFloor handles POST /floors.
func (h *OfficeHandler) CreateFloor(c echo.Context) error {
	var body floorReq
	if err := bindJSON(c, &body); err != nil { // bind the incoming JSON
		return h.fail(c, err)
	}
	floor, err := h.Inventory.CreateFloor(c.Request().Context(), body.input())
	if err != nil {
		return h.fail(c, err) // 400 on invalid input, 409 on a taken floor number
	}
	return c.JSON(http.StatusCreated, floor)
}

// UpdateFloor handles PUT /floors/:id.  Both fields are replaced.
func (h *OfficeHandler) UpdateFloor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body floorReq
	if err := bindJSON(c, &body); err != nil {
		return h.fail(c, err)
	}
	floor, err := h.Inventory.UpdateFloor(c.Request().Context(), id, body.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, floor)
}

// DeleteFloor handles DELETE /floors/:id.  A floor with rooms is refused.
func (h *OfficeHandler) DeleteFloor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Inventory.DeleteFloor(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
