package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-management/internal/service"
)

// roomReq is the body of POST /rooms and PUT /rooms/:id.  The floor may be
// given as {"floor": {"id": n}} or as "floorId".
type roomReq struct {
	Name       string  `json:"name"`       // required room name
	RoomNumber string  `json:"roomNumber"` // required, unique within the floor
	Floor      *refID  `json:"floor"`      // nested floor reference
	FloorID    *uint64 `json:"floorId"`    // flat alias for floor.id
}

func (r roomReq) input() service.RoomInput {
	return service.RoomInput{Name: r.Name, RoomNumber: r.RoomNumber, FloorID: pick(r.Floor, r.FloorID)}
}

// CreateRoom handles POST /rooms.  An unknown floor is a 400, not a 404.
func (h *OfficeHandler) CreateRoom(c echo.Context) error {
	var body roomReq
	if err := bindJSON(c, &body); err != nil {
		return h.fail(c, err)
	}
	room, err := h.Inventory.CreateRoom(c.Request().Context(), body.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// GetRoom handles GET /rooms/:id and includes the seats with their
// occupants.
func (h *OfficeHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	room, err := h.Inventory.GetRoom(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// GetRoomSeats handles GET /rooms/:id/seats.
func (h *OfficeHandler) GetRoomSeats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	seats, err := h.Inventory.GetRoomSeats(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

// UpdateRoom handles PUT /rooms/:id.
func (h *OfficeHandler) UpdateRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body roomReq
	if err := bindJSON(c, &body); err != nil {
		return h.fail(c, err)
	}
	room, err := h.Inventory.UpdateRoom(c.Request().Context(), id, body.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /rooms/:id.  A room with seats is refused.
func (h *OfficeHandler) DeleteRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Inventory.DeleteRoom(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
