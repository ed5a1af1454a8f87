package handler // handler defines http handlers

import (
	"mime"    // mime parses the Content-Type header
	"strconv" // strconv converts path and query values to numbers
	"strings" // strings trims query values

	"github.com/labstack/echo/v4" // echo defines request context types
	"go.uber.org/zap"             // zap logs internal failures

	"github.com/iliyamo/office-management/internal/service" // service holds the business rules
)

// OfficeHandler bundles the services behind the floor, room, seat,
// employee and stats endpoints.
type OfficeHandler struct {
	Inventory  *service.Inventory  // Inventory handles floors, rooms, seats and employees
	Assignment *service.Assignment // Assignment binds seats to employees
	Stats      *service.Stats      // Stats reads the dashboard counters
	Logger     *zap.Logger         // Logger records internal failures
}

// NewOfficeHandler constructs a new OfficeHandler and panics if any dependency is nil
func NewOfficeHandler(inv *service.Inventory, asg *service.Assignment, stats *service.Stats, logger *zap.Logger) *OfficeHandler {
	if inv == nil || asg == nil || stats == nil || logger == nil { // check for nil dependencies
		panic("nil dependency passed to NewOfficeHandler")
	}
	return &OfficeHandler{Inventory: inv, Assignment: asg, Stats: stats, Logger: logger}
}

// fail writes err with the status its kind maps to.
func (h *OfficeHandler) fail(c echo.Context, err error) error {
	return writeError(c, h.Logger, err)
}

// ----- request helpers -----

// pathID parses a numeric path parameter; anything else is a 400.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64) // parse id from path
	if err != nil || id == 0 {
		return 0, service.NewValidation("invalid " + name)
	}
	return id, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil // parameter absent; use default
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NewValidation(name + " must be an integer")
	}
	return n, nil
}

// bindJSON decodes a JSON request body into dst.  A non-empty body with
// any other content type is rejected with 415, a malformed one with 400.
// An empty body leaves dst untouched and lets validation report the
// missing fields.
func bindJSON(c echo.Context, dst any) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return nil // nothing to decode
	}
	mt, _, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
	if err != nil || mt != echo.MIMEApplicationJSON {
		return service.NewUnsupportedMediaType("content type must be application/json")
	}
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return service.NewValidation("invalid request body")
	}
	return nil
}

// refID is the nested {"id": n} reference accepted in request bodies.
type refID struct {
	ID *uint64 `json:"id"`
}

// pick returns the nested reference id when given, else the flat alias.
func pick(ref *refID, flat *uint64) *uint64 {
	if ref != nil && ref.ID != nil {
		return ref.ID
	}
	return flat
}
