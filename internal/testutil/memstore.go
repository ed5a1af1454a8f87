// Package testutil provides an in-memory implementation of the repository
// contracts.  It enforces the same unique and foreign keys as the MySQL
// schema and reports violations with the repository sentinels, so service
// and handler tests exercise the real error paths without a database.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/office-management/internal/model"
	"github.com/iliyamo/office-management/internal/repository"
)

type txMarker struct{}

type tables struct {
	floors    map[uint64]model.Floor
	rooms     map[uint64]model.Room
	seats     map[uint64]model.Seat
	employees map[uint64]model.Employee
	seq       uint64
}

func (t tables) clone() tables {
	c := tables{
		floors:    make(map[uint64]model.Floor, len(t.floors)),
		rooms:     make(map[uint64]model.Room, len(t.rooms)),
		seats:     make(map[uint64]model.Seat, len(t.seats)),
		employees: make(map[uint64]model.Employee, len(t.employees)),
		seq:       t.seq,
	}
	for k, v := range t.floors {
		c.floors[k] = v
	}
	for k, v := range t.rooms {
		c.rooms[k] = v
	}
	for k, v := range t.seats {
		if v.EmployeeID != nil {
			id := *v.EmployeeID
			v.EmployeeID = &id
		}
		c.seats[k] = v
	}
	for k, v := range t.employees {
		c.employees[k] = v
	}
	return c
}

// MemStore holds all four tables behind one mutex.  A transaction holds
// the mutex for its whole duration and restores a snapshot on error, which
// makes transactions fully serializable.
type MemStore struct {
	mu sync.Mutex
	t  tables
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{t: tables{}.clone()}
}

// WithTx runs fn atomically.  Nested calls join the outer transaction.
func (m *MemStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) == m {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.t.clone()
	if err := fn(context.WithValue(ctx, txMarker{}, m)); err != nil {
		m.t = snapshot
		return err
	}
	return nil
}

// lock takes the mutex unless ctx already runs inside a transaction of m.
func (m *MemStore) lock(ctx context.Context) func() {
	if ctx.Value(txMarker{}) == m {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *MemStore) nextID() uint64 {
	m.t.seq++
	return m.t.seq
}

// Table accessors; each satisfies the matching service store interface.
func (m *MemStore) Floors() *Floors       { return &Floors{m} }
func (m *MemStore) Rooms() *Rooms         { return &Rooms{m} }
func (m *MemStore) Seats() *Seats         { return &Seats{m} }
func (m *MemStore) Employees() *Employees { return &Employees{m} }
func (m *MemStore) Stats() *Stats         { return &Stats{m} }

func now() time.Time { return time.Now().UTC().Truncate(time.Second) }

func sortedByID[T any](in map[uint64]T, keep func(T) bool) []T {
	ids := make([]uint64, 0, len(in))
	for id, v := range in {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, in[id])
	}
	return out
}

// Floors implements the floor store.
type Floors struct{ m *MemStore }

func (s *Floors) Create(ctx context.Context, f *model.Floor) error {
	defer s.m.lock(ctx)()
	for _, o := range s.m.t.floors {
		if o.FloorNumber == f.FloorNumber {
			return repository.ErrDuplicate
		}
	}
	f.ID = s.m.nextID()
	f.CreatedAt, f.UpdatedAt = now(), now()
	s.m.t.floors[f.ID] = *f
	return nil
}

func (s *Floors) GetByID(ctx context.Context, id uint64) (*model.Floor, error) {
	defer s.m.lock(ctx)()
	f, ok := s.m.t.floors[id]
	if !ok {
		return nil, repository.ErrFloorNotFound
	}
	return &f, nil
}

func (s *Floors) List(ctx context.Context) ([]model.Floor, error) {
	defer s.m.lock(ctx)()
	return sortedByID(s.m.t.floors, func(model.Floor) bool { return true }), nil
}

func (s *Floors) ExistsByNumber(ctx context.Context, number int, excludeID uint64) (bool, error) {
	defer s.m.lock(ctx)()
	for _, o := range s.m.t.floors {
		if o.FloorNumber == number && o.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Floors) Update(ctx context.Context, f *model.Floor) error {
	defer s.m.lock(ctx)()
	cur, ok := s.m.t.floors[f.ID]
	if !ok {
		return repository.ErrFloorNotFound
	}
	for _, o := range s.m.t.floors {
		if o.FloorNumber == f.FloorNumber && o.ID != f.ID {
			return repository.ErrDuplicate
		}
	}
	cur.Name, cur.FloorNumber, cur.UpdatedAt = f.Name, f.FloorNumber, now()
	s.m.t.floors[f.ID] = cur
	*f = cur
	return nil
}

func (s *Floors) Delete(ctx context.Context, id uint64) error {
	defer s.m.lock(ctx)()
	if _, ok := s.m.t.floors[id]; !ok {
		return repository.ErrFloorNotFound
	}
	for _, r := range s.m.t.rooms {
		if r.FloorID == id {
			return repository.ErrStillReferenced
		}
	}
	delete(s.m.t.floors, id)
	return nil
}

// Rooms implements the room store.
type Rooms struct{ m *MemStore }

func (s *Rooms) check(r *model.Room) error {
	if _, ok := s.m.t.floors[r.FloorID]; !ok {
		return repository.ErrReferenceMissing
	}
	for _, o := range s.m.t.rooms {
		if o.FloorID == r.FloorID && o.RoomNumber == r.RoomNumber && o.ID != r.ID {
			return repository.ErrDuplicate
		}
	}
	return nil
}

func (s *Rooms) Create(ctx context.Context, r *model.Room) error {
	defer s.m.lock(ctx)()
	if err := s.check(r); err != nil {
		return err
	}
	r.ID = s.m.nextID()
	r.CreatedAt, r.UpdatedAt = now(), now()
	s.m.t.rooms[r.ID] = *r
	return nil
}

func (s *Rooms) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	defer s.m.lock(ctx)()
	r, ok := s.m.t.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &r, nil
}

func (s *Rooms) ListByFloor(ctx context.Context, floorID uint64) ([]model.Room, error) {
	defer s.m.lock(ctx)()
	return sortedByID(s.m.t.rooms, func(r model.Room) bool { return r.FloorID == floorID }), nil
}

func (s *Rooms) ExistsByNumber(ctx context.Context, floorID uint64, roomNumber string, excludeID uint64) (bool, error) {
	defer s.m.lock(ctx)()
	for _, o := range s.m.t.rooms {
		if o.FloorID == floorID && o.RoomNumber == roomNumber && o.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Rooms) Update(ctx context.Context, r *model.Room) error {
	defer s.m.lock(ctx)()
	cur, ok := s.m.t.rooms[r.ID]
	if !ok {
		return repository.ErrRoomNotFound
	}
	if err := s.check(r); err != nil {
		return err
	}
	cur.Name, cur.RoomNumber, cur.FloorID, cur.UpdatedAt = r.Name, r.RoomNumber, r.FloorID, now()
	s.m.t.rooms[r.ID] = cur
	*r = cur
	return nil
}

func (s *Rooms) Delete(ctx context.Context, id uint64) error {
	defer s.m.lock(ctx)()
	if _, ok := s.m.t.rooms[id]; !ok {
		return repository.ErrRoomNotFound
	}
	for _, st := range s.m.t.seats {
		if st.RoomID == id {
			return repository.ErrStillReferenced
		}
	}
	delete(s.m.t.rooms, id)
	return nil
}

func (s *Rooms) CountByFloor(ctx context.Context, floorID uint64) (int64, error) {
	defer s.m.lock(ctx)()
	var n int64
	for _, r := range s.m.t.rooms {
		if r.FloorID == floorID {
			n++
		}
	}
	return n, nil
}

// Seats implements the seat store.
type Seats struct{ m *MemStore }

func (s *Seats) check(st *model.Seat) error {
	if _, ok := s.m.t.rooms[st.RoomID]; !ok {
		return repository.ErrReferenceMissing
	}
	for _, o := range s.m.t.seats {
		if o.RoomID == st.RoomID && o.SeatNumber == st.SeatNumber && o.ID != st.ID {
			return repository.ErrDuplicate
		}
	}
	return nil
}

func (s *Seats) Create(ctx context.Context, st *model.Seat) error {
	defer s.m.lock(ctx)()
	if err := s.check(st); err != nil {
		return err
	}
	st.ID = s.m.nextID()
	st.EmployeeID, st.Occupied = nil, false
	st.CreatedAt, st.UpdatedAt = now(), now()
	s.m.t.seats[st.ID] = *st
	return nil
}

func (s *Seats) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	defer s.m.lock(ctx)()
	st, ok := s.m.t.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	return &st, nil
}

// GetByIDForUpdate is GetByID; the store mutex already serializes writers.
func (s *Seats) GetByIDForUpdate(ctx context.Context, id uint64) (*model.Seat, error) {
	return s.GetByID(ctx, id)
}

func (s *Seats) detail(st model.Seat) model.SeatDetail {
	d := model.SeatDetail{Seat: st}
	if r, ok := s.m.t.rooms[st.RoomID]; ok {
		d.Room = &model.RoomRef{ID: r.ID, RoomNumber: r.RoomNumber, Name: r.Name, FloorID: r.FloorID}
	}
	if st.EmployeeID != nil {
		if e, ok := s.m.t.employees[*st.EmployeeID]; ok {
			d.Employee = &model.EmployeeRef{ID: e.ID, FullName: e.FullName, Occupation: e.Occupation}
		}
	}
	return d
}

func (s *Seats) GetDetail(ctx context.Context, id uint64) (*model.SeatDetail, error) {
	defer s.m.lock(ctx)()
	st, ok := s.m.t.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	d := s.detail(st)
	return &d, nil
}

func (s *Seats) list(keep func(model.Seat) bool) []model.SeatDetail {
	seats := sortedByID(s.m.t.seats, keep)
	out := make([]model.SeatDetail, 0, len(seats))
	for _, st := range seats {
		out = append(out, s.detail(st))
	}
	return out
}

func (s *Seats) ListByRoom(ctx context.Context, roomID uint64) ([]model.SeatDetail, error) {
	defer s.m.lock(ctx)()
	return s.list(func(st model.Seat) bool { return st.RoomID == roomID }), nil
}

func (s *Seats) ListByFloor(ctx context.Context, floorID uint64) ([]model.SeatDetail, error) {
	defer s.m.lock(ctx)()
	return s.list(func(st model.Seat) bool { return s.m.t.rooms[st.RoomID].FloorID == floorID }), nil
}

func (s *Seats) ListByEmployees(ctx context.Context, employeeIDs []uint64) ([]model.SeatDetail, error) {
	defer s.m.lock(ctx)()
	want := make(map[uint64]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		want[id] = true
	}
	return s.list(func(st model.Seat) bool { return st.EmployeeID != nil && want[*st.EmployeeID] }), nil
}

func (s *Seats) ExistsByNumber(ctx context.Context, roomID uint64, seatNumber string, excludeID uint64) (bool, error) {
	defer s.m.lock(ctx)()
	for _, o := range s.m.t.seats {
		if o.RoomID == roomID && o.SeatNumber == seatNumber && o.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Seats) Update(ctx context.Context, st *model.Seat) error {
	defer s.m.lock(ctx)()
	cur, ok := s.m.t.seats[st.ID]
	if !ok {
		return repository.ErrSeatNotFound
	}
	if err := s.check(st); err != nil {
		return err
	}
	cur.SeatNumber, cur.RoomID, cur.UpdatedAt = st.SeatNumber, st.RoomID, now()
	s.m.t.seats[st.ID] = cur
	*st = cur
	return nil
}

func (s *Seats) SetEmployee(ctx context.Context, seatID uint64, employeeID *uint64) error {
	defer s.m.lock(ctx)()
	cur, ok := s.m.t.seats[seatID]
	if !ok {
		return repository.ErrSeatNotFound
	}
	cur.EmployeeID = nil
	if employeeID != nil {
		if _, ok := s.m.t.employees[*employeeID]; !ok {
			return repository.ErrReferenceMissing
		}
		id := *employeeID
		cur.EmployeeID = &id
	}
	cur.Occupied = cur.EmployeeID != nil
	cur.UpdatedAt = now()
	s.m.t.seats[seatID] = cur
	return nil
}

func (s *Seats) Delete(ctx context.Context, id uint64) error {
	defer s.m.lock(ctx)()
	if _, ok := s.m.t.seats[id]; !ok {
		return repository.ErrSeatNotFound
	}
	delete(s.m.t.seats, id)
	return nil
}

func (s *Seats) CountByRoom(ctx context.Context, roomID uint64) (int64, error) {
	defer s.m.lock(ctx)()
	var n int64
	for _, st := range s.m.t.seats {
		if st.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

// Employees implements the employee store.
type Employees struct{ m *MemStore }

func (s *Employees) Create(ctx context.Context, e *model.Employee) error {
	defer s.m.lock(ctx)()
	e.ID = s.m.nextID()
	e.CreatedAt, e.UpdatedAt = now(), now()
	s.m.t.employees[e.ID] = *e
	return nil
}

func (s *Employees) GetByID(ctx context.Context, id uint64) (*model.Employee, error) {
	defer s.m.lock(ctx)()
	e, ok := s.m.t.employees[id]
	if !ok {
		return nil, repository.ErrEmployeeNotFound
	}
	return &e, nil
}

func (s *Employees) Search(ctx context.Context, term string, offset, limit int) ([]model.Employee, int64, error) {
	defer s.m.lock(ctx)()
	term = strings.ToLower(term)
	all := sortedByID(s.m.t.employees, func(e model.Employee) bool {
		return strings.Contains(strings.ToLower(e.FullName), term) ||
			strings.Contains(strings.ToLower(e.Occupation), term)
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Employee{}, total, nil
	}
	end := len(all)
	if limit < end-offset {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

// Stats implements the stats store.
type Stats struct{ m *MemStore }

func (s *Stats) Counts(ctx context.Context) (model.Stats, error) {
	defer s.m.lock(ctx)()
	return model.Stats{
		TotalEmployees: int64(len(s.m.t.employees)),
		TotalFloors:    int64(len(s.m.t.floors)),
		TotalOffices:   int64(len(s.m.t.rooms)),
		TotalSeats:     int64(len(s.m.t.seats)),
	}, nil
}
