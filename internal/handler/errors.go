package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/office-management/internal/service"
)

// statusOf maps a service error kind onto an HTTP status code.
func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// writeError renders err as {"error": msg}.  Internal failures are logged
// with their cause and answered with a generic message.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	var se *service.Error
	if !errors.As(err, &se) {
		se = service.NewInternal(err)
	}
	status := statusOf(se.Kind)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err))
	}
	return c.JSON(status, echo.Map{"error": se.Message})
}

// HTTPErrorHandler renders errors that escape the handlers (unknown route,
// method not allowed, panics turned into errors by Recover) in the same
// {"error": msg} shape the handlers use.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			} else if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
			if he.Code >= http.StatusInternalServerError {
				logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(he.Code)
				return
			}
			_ = c.JSON(he.Code, echo.Map{"error": msg})
			return
		}
		_ = writeError(c, logger, err)
	}
}
