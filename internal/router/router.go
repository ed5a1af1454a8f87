// Package router registers the HTTP routes of the office inventory API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-management/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the token endpoint.  It is only mounted when
// write protection is enabled.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/auth/token", a.Token)
}

// RegisterOffice registers the floor, room, seat, employee and stats
// resources.  Reads are always public; guard (for example JWTAuth plus
// RequireRole) is applied to every POST, PUT and DELETE route.
func RegisterOffice(e *echo.Echo, h *handler.OfficeHandler, guard ...echo.MiddlewareFunc) {
	// ---- Floors ----
	e.GET("/floors", h.ListFloors)
	e.GET("/floors/:id", h.GetFloor)
	e.POST("/floors", h.CreateFloor, guard...)
	e.PUT("/floors/:id", h.UpdateFloor, guard...)
	e.DELETE("/floors/:id", h.DeleteFloor, guard...)

	// ---- Rooms ----
	e.POST("/rooms", h.CreateRoom, guard...)
	e.GET("/rooms/:id", h.GetRoom)
	e.GET("/rooms/:id/seats", h.GetRoomSeats)
	e.PUT("/rooms/:id", h.UpdateRoom, guard...)
	e.DELETE("/rooms/:id", h.DeleteRoom, guard...)

	// ---- Seats ----
	e.POST("/seats", h.CreateSeat, guard...)
	e.GET("/seats/:id", h.GetSeat)
	e.PUT("/seats/:id", h.UpdateSeat, guard...)
	e.DELETE("/seats/:id", h.DeleteSeat, guard...)

	// ---- Employees ----
	// the static /search segment wins over :id in echo's router
	e.GET("/employees/search", h.SearchEmployees)
	e.POST("/employees", h.CreateEmployee, guard...)
	e.GET("/employees/:id", h.GetEmployee)
	e.GET("/employees/:id/seats", h.GetEmployeeSeats)
	e.PUT("/employees/:id/assign-seat/:seatId", h.AssignSeat, guard...)
	e.DELETE("/employees/:id/unassign-seat/:seatId", h.UnassignSeat, guard...)

	// ---- Stats ----
	e.GET("/stats", h.GetStats)
}
