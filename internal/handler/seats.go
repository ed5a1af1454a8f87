package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-management/internal/service"
)

// seatReq is the body of POST /seats and PUT /seats/:id.  Occupancy is not
// writable here; use the employee assign/unassign routes.
type seatReq struct {
	SeatNumber string  `json:"seatNumber"` // required, unique within the room
	Room       *refID  `json:"room"`       // nested room reference
	RoomID     *uint64 `json:"roomId"`     // flat alias for room.id
}

func (r seatReq) input() service.SeatInput {
	return service.SeatInput{SeatNumber: r.SeatNumber, RoomID: pick(r.Room, r.RoomID)}
}

// CreateSeat handles POST /seats.
func (h *OfficeHandler) CreateSeat(c echo.Context) error {
	var body seatReq
	if err := bindJSON(c, &body); err != nil {
		return h.fail(c, err)
	}
	seat, err := h.Inventory.CreateSeat(c.Request().Context(), body.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, seat)
}

// GetSeat handles GET /seats/:id.
func (h *OfficeHandler) GetSeat(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	seat, err := h.Inventory.GetSeat(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, seat)
}

// UpdateSeat handles PUT /seats/:id.
func (h *OfficeHandler) UpdateSeat(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body seatReq
	if err := bindJSON(c, &body); err != nil {
		return h.fail(c, err)
	}
	seat, err := h.Inventory.UpdateSeat(c.Request().Context(), id, body.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, seat)
}

// DeleteSeat handles DELETE /seats/:id.  An occupied seat is refused.
func (h *OfficeHandler) DeleteSeat(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Inventory.DeleteSeat(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
