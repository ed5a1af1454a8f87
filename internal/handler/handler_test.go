package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/office-management/internal/auth"
	"github.com/iliyamo/office-management/internal/handler"
	"github.com/iliyamo/office-management/internal/middleware"
	"github.com/iliyamo/office-management/internal/model"
	"github.com/iliyamo/office-management/internal/router"
	"github.com/iliyamo/office-management/internal/service"
	"github.com/iliyamo/office-management/internal/testutil"
)

type api struct {
	t     *testing.T
	e     *echo.Echo
	token string
}

func newAPI(t *testing.T, guard ...echo.MiddlewareFunc) *api {
	t.Helper()
	m := testutil.NewMemStore()
	log := zap.NewNop()
	h := handler.NewOfficeHandler(
		service.NewInventory(m, m.Floors(), m.Rooms(), m.Seats(), m.Employees(), log),
		service.NewAssignment(m, m.Seats(), m.Employees(), nil, log),
		service.NewStats(m.Stats()),
		log,
	)
	e := echo.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(log)
	e.Use(middleware.CORS([]string{"*"}))
	router.RegisterRoutes(e)
	router.RegisterOffice(e, h, guard...)
	return &api{t: t, e: e}
}

func (a *api) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if a.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// create posts body and decodes the 201 response into out.
func (a *api) create(path, body string, out any) {
	a.t.Helper()
	rec := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

func TestFloorScenario(t *testing.T) {
	a := newAPI(t)

	var ground model.Floor
	a.create("/floors", `{"name":"Ground","floorNumber":0}`, &ground)
	assert.Equal(t, "Ground", ground.Name)
	assert.Equal(t, 0, ground.FloorNumber)
	assert.False(t, ground.CreatedAt.IsZero())

	rec := a.do(http.MethodPost, "/floors", `{"name":"Ground2","floorNumber":0}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "floor number already exists", errorOf(t, rec))

	rec = a.do(http.MethodPost, "/floors", `{"name":"","floorNumber":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(http.MethodPost, "/floors", `{"name":"Basement","floorNumber":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(http.MethodPost, "/floors", `{"name":"Basement"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/floors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	floors := decode[[]map[string]any](t, rec)
	require.Len(t, floors, 1)
	assert.NotContains(t, floors[0], "rooms")

	rec = a.do(http.MethodPut, fmt.Sprintf("/floors/%d", ground.ID), `{"name":"Lobby","floorNumber":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[model.Floor](t, rec).FloorNumber)

	rec = a.do(http.MethodPut, "/floors/999", `{"name":"Lobby","floorNumber":4}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(http.MethodGet, "/floors/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(http.MethodGet, "/floors/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoomOnMissingFloorIsBadRequest(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodPost, "/rooms", `{"name":"Lab","roomNumber":"1","floor":{"id":99999}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "referenced floor does not exist", errorOf(t, rec))
}

func TestOversizedInputIsBadRequest(t *testing.T) {
	a := newAPI(t)
	var fl model.Floor
	a.create("/floors", `{"name":"Ground","floorNumber":0}`, &fl)
	var rm model.Room
	a.create("/rooms", fmt.Sprintf(`{"name":"Lab","roomNumber":"1","floorId":%d}`, fl.ID), &rm)

	long := strings.Repeat("x", 256)
	label := strings.Repeat("9", 65)
	tests := []struct {
		name, method, path, body string
	}{
		{"floor number above int32", http.MethodPost, "/floors", `{"name":"Roof","floorNumber":3000000000}`},
		{"floor number above int64", http.MethodPost, "/floors", `{"name":"Roof","floorNumber":100000000000000000000}`},
		{"floor name", http.MethodPut, fmt.Sprintf("/floors/%d", fl.ID), fmt.Sprintf(`{"name":%q,"floorNumber":0}`, long)},
		{"room name", http.MethodPost, "/rooms", fmt.Sprintf(`{"name":%q,"roomNumber":"2","floorId":%d}`, long, fl.ID)},
		{"room number", http.MethodPost, "/rooms", fmt.Sprintf(`{"name":"Lab","roomNumber":%q,"floorId":%d}`, label, fl.ID)},
		{"seat number", http.MethodPost, "/seats", fmt.Sprintf(`{"seatNumber":%q,"roomId":%d}`, label, rm.ID)},
		{"full name", http.MethodPost, "/employees", fmt.Sprintf(`{"fullName":%q,"occupation":"Dev"}`, long)},
		{"occupation", http.MethodPost, "/employees", fmt.Sprintf(`{"fullName":"Ada","occupation":%q}`, long)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRoomNumbersPerFloor(t *testing.T) {
	a := newAPI(t)
	var f1, f2 model.Floor
	a.create("/floors", `{"name":"One","floorNumber":1}`, &f1)
	a.create("/floors", `{"name":"Two","floorNumber":2}`, &f2)

	var r model.Room
	a.create("/rooms", fmt.Sprintf(`{"name":"Lab","roomNumber":"101","floor":{"id":%d}}`, f1.ID), &r)
	assert.Equal(t, f1.ID, r.FloorID)

	// flat alias and same number on another floor
	var other model.Room
	a.create("/rooms", fmt.Sprintf(`{"name":"Lab","roomNumber":"101","floorId":%d}`, f2.ID), &other)

	rec := a.do(http.MethodPost, "/rooms", fmt.Sprintf(`{"name":"Dup","roomNumber":"101","floorId":%d}`, f1.ID))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSeatAssignmentScenario(t *testing.T) {
	a := newAPI(t)
	var (
		f    model.Floor
		r    model.Room
		s    model.Seat
		x, y model.Employee
	)
	a.create("/floors", `{"name":"Ground","floorNumber":0}`, &f)
	a.create("/rooms", fmt.Sprintf(`{"name":"A","roomNumber":"A","floor":{"id":%d}}`, f.ID), &r)
	a.create("/seats", fmt.Sprintf(`{"seatNumber":"1-1","room":{"id":%d}}`, r.ID), &s)
	a.create("/employees", `{"fullName":"Employee X","occupation":"Engineer"}`, &x)
	a.create("/employees", `{"fullName":"Employee Y","occupation":"Designer"}`, &y)
	assert.False(t, s.Occupied)

	assign := func(e model.Employee) *httptest.ResponseRecorder {
		return a.do(http.MethodPut, fmt.Sprintf("/employees/%d/assign-seat/%d", e.ID, s.ID), "")
	}
	unassign := func(e model.Employee) *httptest.ResponseRecorder {
		return a.do(http.MethodDelete, fmt.Sprintf("/employees/%d/unassign-seat/%d", e.ID, s.ID), "")
	}

	rec := assign(x)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[model.EmployeeDetail](t, rec)
	require.Len(t, detail.Seats, 1)
	assert.Equal(t, "A", detail.Seats[0].Room.RoomNumber)

	rec = assign(y)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "seat is already occupied", errorOf(t, rec))

	rec = unassign(y)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// occupied seats cannot be deleted
	rec = a.do(http.MethodDelete, fmt.Sprintf("/seats/%d", s.ID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, fmt.Sprintf("/rooms/%d", r.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	room := decode[model.RoomDetail](t, rec)
	require.Len(t, room.Seats, 1)
	assert.True(t, room.Seats[0].Occupied)
	require.NotNil(t, room.Seats[0].Employee)
	assert.Equal(t, "Employee X", room.Seats[0].Employee.FullName)

	require.Equal(t, http.StatusOK, unassign(x).Code)
	rec = assign(y)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[model.EmployeeDetail](t, rec).Seats, 1)

	rec = a.do(http.MethodGet, fmt.Sprintf("/employees/%d/seats", x.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = a.do(http.MethodPut, fmt.Sprintf("/employees/999/assign-seat/%d", s.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(http.MethodPut, fmt.Sprintf("/employees/%d/assign-seat/999", x.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteGuards(t *testing.T) {
	a := newAPI(t)
	var (
		f model.Floor
		r model.Room
		s model.Seat
	)
	a.create("/floors", `{"name":"Ground","floorNumber":0}`, &f)
	a.create("/rooms", fmt.Sprintf(`{"name":"A","roomNumber":"A","floorId":%d}`, f.ID), &r)
	a.create("/seats", fmt.Sprintf(`{"seatNumber":"1","roomId":%d}`, r.ID), &s)

	floorURL := fmt.Sprintf("/floors/%d", f.ID)
	roomURL := fmt.Sprintf("/rooms/%d", r.ID)

	rec := a.do(http.MethodGet, floorURL, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decode[model.FloorDetail](t, rec)
	require.Len(t, tree.Rooms, 1)
	require.Len(t, tree.Rooms[0].Seats, 1)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodDelete, floorURL, "").Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodDelete, roomURL, "").Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, fmt.Sprintf("/seats/%d", s.ID), "").Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, roomURL, "").Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, floorURL, "").Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodDelete, floorURL, "").Code)
}

func TestSeatUpdate(t *testing.T) {
	a := newAPI(t)
	var (
		f      model.Floor
		r1, r2 model.Room
		s      model.Seat
	)
	a.create("/floors", `{"name":"Ground","floorNumber":0}`, &f)
	a.create("/rooms", fmt.Sprintf(`{"name":"A","roomNumber":"A","floorId":%d}`, f.ID), &r1)
	a.create("/rooms", fmt.Sprintf(`{"name":"B","roomNumber":"B","floorId":%d}`, f.ID), &r2)
	a.create("/seats", fmt.Sprintf(`{"seatNumber":"1","roomId":%d}`, r1.ID), &s)

	rec := a.do(http.MethodPost, "/seats", fmt.Sprintf(`{"seatNumber":"1","roomId":%d}`, r1.ID))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(http.MethodPut, fmt.Sprintf("/seats/%d", s.ID), fmt.Sprintf(`{"seatNumber":"7","room":{"id":%d}}`, r2.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, r2.ID, decode[model.Seat](t, rec).RoomID)

	rec = a.do(http.MethodGet, fmt.Sprintf("/rooms/%d/seats", r2.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.SeatDetail](t, rec), 1)

	rec = a.do(http.MethodGet, fmt.Sprintf("/seats/%d", s.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", decode[model.SeatDetail](t, rec).SeatNumber)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/seats/999", "").Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/rooms/999/seats", "").Code)
}

func TestSearchEmployees(t *testing.T) {
	a := newAPI(t)
	for _, body := range []string{
		`{"fullName":"Ada Lovelace","occupation":"Engineer"}`,
		`{"fullName":"Grace Hopper","occupation":"Admiral"}`,
		`{"fullName":"Margaret Hamilton","occupation":"Software engineer"}`,
	} {
		var e model.Employee
		a.create("/employees", body, &e)
	}

	rec := a.do(http.MethodGet, "/employees/search?search=ENGINEER&page=0&size=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[model.Page[model.EmployeeDetail]](t, rec)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Size)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Ada Lovelace", page.Content[0].FullName)

	// defaults: page 0, size 10
	rec = a.do(http.MethodGet, "/employees/search", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[model.Page[model.EmployeeDetail]](t, rec)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 1, page.TotalPages)

	for _, q := range []string{"size=0", "size=101", "page=-1", "size=abc"} {
		rec = a.do(http.MethodGet, "/employees/search?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestStats(t *testing.T) {
	a := newAPI(t)
	var (
		f model.Floor
		r model.Room
		s model.Seat
		e model.Employee
	)
	a.create("/employees", `{"fullName":"A","occupation":"x"}`, &e)
	a.create("/employees", `{"fullName":"B","occupation":"y"}`, &e)
	a.create("/floors", `{"name":"Ground","floorNumber":0}`, &f)
	a.create("/rooms", fmt.Sprintf(`{"name":"A","roomNumber":"A","floorId":%d}`, f.ID), &r)
	a.create("/seats", fmt.Sprintf(`{"seatNumber":"1","roomId":%d}`, r.ID), &s)
	a.create("/seats", fmt.Sprintf(`{"seatNumber":"2","roomId":%d}`, r.ID), &s)

	rec := a.do(http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalEmployees":2,"totalFloors":1,"totalOffices":1,"totalSeats":2}`, rec.Body.String())
}

func TestUnsupportedMediaType(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/floors", strings.NewReader("name=Ground"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	// charset parameters are fine
	req = httptest.NewRequest(http.MethodPost, "/floors", strings.NewReader(`{"name":"G","floorNumber":0}`))
	req.Header.Set(echo.HeaderContentType, "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestFrameworkErrorsShareShape(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, errorOf(t, rec))

	rec = a.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/floors", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteProtection(t *testing.T) {
	const secret = "test-secret"
	a := newAPI(t, middleware.JWTAuth(secret), middleware.RequireRole(auth.RoleAdmin))
	hash, err := auth.HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	router.RegisterAuth(a.e, handler.NewAuthHandler(auth.Credentials{User: "admin", PasswordHash: hash}, secret, time.Hour))

	rec := a.do(http.MethodPost, "/floors", `{"name":"Ground","floorNumber":0}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodPost, "/auth/token", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = a.do(http.MethodPost, "/auth/token", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPost, "/auth/token", `{"username":"admin","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	tok := decode[map[string]any](t, rec)
	assert.Equal(t, "Bearer", tok["token_type"])
	assert.Equal(t, auth.RoleAdmin, tok["role"])
	a.token = tok["access_token"].(string)

	var f model.Floor
	a.create("/floors", `{"name":"Ground","floorNumber":0}`, &f)

	// reads stay public
	a.token = ""
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/floors", "").Code)
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
