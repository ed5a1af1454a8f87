package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetStats handles GET /stats.
func (h *OfficeHandler) GetStats(c echo.Context) error {
	stats, err := h.Stats.GetStats(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
