package middleware

import "github.com/labstack/echo/v4"

// userID returns the subject stored by JWTAuth, or "anon" when the request
// is not authenticated.
func userID(c echo.Context) string {
	if s, ok := c.Get(ctxUserID).(string); ok && s != "" {
		return s
	}
	return "anon"
}
