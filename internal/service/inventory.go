package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/office-management/internal/model"
	"github.com/iliyamo/office-management/internal/repository"
)

const (
	msgFloorNumberTaken = "floor number already exists"
	msgRoomNumberTaken  = "room number already exists on this floor"
	msgSeatNumberTaken  = "seat number already exists in this room"
)

// Inventory implements the create/read/update/delete rules of the office
// hierarchy.  Every mutation runs in one transaction; the uniqueness checks
// inside it only produce a friendlier error, the schema's unique keys
// remain authoritative.
type Inventory struct {
	tx        Transactor
	floors    FloorStore
	rooms     RoomStore
	seats     SeatStore
	employees EmployeeStore
	logger    *zap.Logger
}

// NewInventory wires an Inventory service.
func NewInventory(tx Transactor, floors FloorStore, rooms RoomStore, seats SeatStore, employees EmployeeStore, logger *zap.Logger) *Inventory {
	return &Inventory{tx: tx, floors: floors, rooms: rooms, seats: seats, employees: employees, logger: logger}
}

// ---- floors ----

// CreateFloor stores a new floor.  The floor number must be unused.
func (s *Inventory) CreateFloor(ctx context.Context, in FloorInput) (*model.Floor, error) {
	in.trim()
	if err := validateFloor(in); err != nil {
		return nil, err
	}
	f := &model.Floor{Name: in.Name, FloorNumber: *in.FloorNumber}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		taken, err := s.floors.ExistsByNumber(ctx, f.FloorNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			return NewConflict(msgFloorNumberTaken)
		}
		return s.floors.Create(ctx, f)
	})
	if err != nil {
		return nil, translate(err, msgFloorNumberTaken)
	}
	s.logger.Info("floor created", zap.Uint64("floor_id", f.ID), zap.Int("floor_number", f.FloorNumber))
	return f, nil
}

// ListFloors returns the floor summaries in id order; rooms are not loaded.
func (s *Inventory) ListFloors(ctx context.Context) ([]model.Floor, error) {
	floors, err := s.floors.List(ctx)
	if err != nil {
		return nil, NewInternal(err)
	}
	return floors, nil
}

// GetFloor returns the floor with its whole room and seat tree.
func (s *Inventory) GetFloor(ctx context.Context, id uint64) (*model.FloorDetail, error) {
	var out *model.FloorDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		f, err := s.floors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		rooms, err := s.rooms.ListByFloor(ctx, id)
		if err != nil {
			return err
		}
		seats, err := s.seats.ListByFloor(ctx, id)
		if err != nil {
			return err
		}

		byRoom := make(map[uint64][]model.SeatDetail, len(rooms))
		for _, st := range seats {
			st.Room = nil
			byRoom[st.RoomID] = append(byRoom[st.RoomID], st)
		}
		out = &model.FloorDetail{Floor: *f, Rooms: make([]model.RoomDetail, 0, len(rooms))}
		for _, rm := range rooms {
			out.Rooms = append(out.Rooms, model.RoomDetail{Room: rm, Seats: nonNil(byRoom[rm.ID])})
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return out, nil
}

// UpdateFloor replaces the name and number of floor id.
func (s *Inventory) UpdateFloor(ctx context.Context, id uint64, in FloorInput) (*model.Floor, error) {
	in.trim()
	if err := validateFloor(in); err != nil {
		return nil, err
	}
	var f *model.Floor
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if f, err = s.floors.GetByID(ctx, id); err != nil {
			return err
		}
		taken, err := s.floors.ExistsByNumber(ctx, *in.FloorNumber, id)
		if err != nil {
			return err
		}
		if taken {
			return NewConflict(msgFloorNumberTaken)
		}
		f.Name, f.FloorNumber = in.Name, *in.FloorNumber
		return s.floors.Update(ctx, f)
	})
	if err != nil {
		return nil, translate(err, msgFloorNumberTaken)
	}
	s.logger.Info("floor updated", zap.Uint64("floor_id", f.ID))
	return f, nil
}

// DeleteFloor removes a floor that owns no rooms.
func (s *Inventory) DeleteFloor(ctx context.Context, id uint64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.floors.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.rooms.CountByFloor(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return NewValidation("floor still has rooms; delete them first")
		}
		return s.floors.Delete(ctx, id)
	})
	if err != nil {
		return translate(err, "")
	}
	s.logger.Info("floor deleted", zap.Uint64("floor_id", id))
	return nil
}

// ---- rooms ----

// CreateRoom stores a new room on an existing floor.
func (s *Inventory) CreateRoom(ctx context.Context, in RoomInput) (*model.Room, error) {
	in.trim()
	if err := validateRoom(in); err != nil {
		return nil, err
	}
	rm := &model.Room{Name: in.Name, RoomNumber: in.RoomNumber, FloorID: *in.FloorID}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.requireFloor(ctx, rm.FloorID); err != nil {
			return err
		}
		taken, err := s.rooms.ExistsByNumber(ctx, rm.FloorID, rm.RoomNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			return NewConflict(msgRoomNumberTaken)
		}
		return s.rooms.Create(ctx, rm)
	})
	if err != nil {
		return nil, translate(err, msgRoomNumberTaken)
	}
	s.logger.Info("room created", zap.Uint64("room_id", rm.ID), zap.Uint64("floor_id", rm.FloorID))
	return rm, nil
}

// GetRoom returns the room with its seats, each seat carrying its occupant.
func (s *Inventory) GetRoom(ctx context.Context, id uint64) (*model.RoomDetail, error) {
	var out *model.RoomDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		rm, err := s.rooms.GetByID(ctx, id)
		if err != nil {
			return err
		}
		seats, err := s.roomSeats(ctx, id)
		if err != nil {
			return err
		}
		out = &model.RoomDetail{Room: *rm, Seats: seats}
		return nil
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return out, nil
}

// GetRoomSeats returns the seats of room id with their occupants.
func (s *Inventory) GetRoomSeats(ctx context.Context, id uint64) ([]model.SeatDetail, error) {
	var out []model.SeatDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.rooms.GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		out, err = s.roomSeats(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return out, nil
}

func (s *Inventory) roomSeats(ctx context.Context, roomID uint64) ([]model.SeatDetail, error) {
	seats, err := s.seats.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	for i := range seats {
		seats[i].Room = nil
	}
	return nonNil(seats), nil
}

// UpdateRoom replaces a room's fields; the room may move to another floor.
func (s *Inventory) UpdateRoom(ctx context.Context, id uint64, in RoomInput) (*model.Room, error) {
	in.trim()
	if err := validateRoom(in); err != nil {
		return nil, err
	}
	var rm *model.Room
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if rm, err = s.rooms.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.requireFloor(ctx, *in.FloorID); err != nil {
			return err
		}
		taken, err := s.rooms.ExistsByNumber(ctx, *in.FloorID, in.RoomNumber, id)
		if err != nil {
			return err
		}
		if taken {
			return NewConflict(msgRoomNumberTaken)
		}
		rm.Name, rm.RoomNumber, rm.FloorID = in.Name, in.RoomNumber, *in.FloorID
		return s.rooms.Update(ctx, rm)
	})
	if err != nil {
		return nil, translate(err, msgRoomNumberTaken)
	}
	s.logger.Info("room updated", zap.Uint64("room_id", rm.ID), zap.Uint64("floor_id", rm.FloorID))
	return rm, nil
}

// DeleteRoom removes a room that owns no seats.
func (s *Inventory) DeleteRoom(ctx context.Context, id uint64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.rooms.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.seats.CountByRoom(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return NewValidation("room still has seats; delete them first")
		}
		return s.rooms.Delete(ctx, id)
	})
	if err != nil {
		return translate(err, "")
	}
	s.logger.Info("room deleted", zap.Uint64("room_id", id))
	return nil
}

// requireFloor turns a dangling floor reference into a validation error.
func (s *Inventory) requireFloor(ctx context.Context, id uint64) error {
	_, err := s.floors.GetByID(ctx, id)
	if errors.Is(err, repository.ErrFloorNotFound) {
		return NewValidation("referenced floor does not exist")
	}
	return err
}

func (s *Inventory) requireRoom(ctx context.Context, id uint64) error {
	_, err := s.rooms.GetByID(ctx, id)
	if errors.Is(err, repository.ErrRoomNotFound) {
		return NewValidation("referenced room does not exist")
	}
	return err
}

// ---- seats ----

// CreateSeat adds a vacant seat to a room.
func (s *Inventory) CreateSeat(ctx context.Context, in SeatInput) (*model.Seat, error) {
	in.trim()
	if err := validateSeat(in); err != nil {
		return nil, err
	}
	st := &model.Seat{SeatNumber: in.SeatNumber, RoomID: *in.RoomID}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.requireRoom(ctx, st.RoomID); err != nil {
			return err
		}
		taken, err := s.seats.ExistsByNumber(ctx, st.RoomID, st.SeatNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			return NewConflict(msgSeatNumberTaken)
		}
		return s.seats.Create(ctx, st)
	})
	if err != nil {
		return nil, translate(err, msgSeatNumberTaken)
	}
	s.logger.Info("seat created", zap.Uint64("seat_id", st.ID), zap.Uint64("room_id", st.RoomID))
	return st, nil
}

// GetSeat returns the seat with its room and, when occupied, its employee.
func (s *Inventory) GetSeat(ctx context.Context, id uint64) (*model.SeatDetail, error) {
	d, err := s.seats.GetDetail(ctx, id)
	if err != nil {
		return nil, translate(err, "")
	}
	return d, nil
}

// UpdateSeat replaces the seat number and room.  The occupant is kept.
func (s *Inventory) UpdateSeat(ctx context.Context, id uint64, in SeatInput) (*model.Seat, error) {
	in.trim()
	if err := validateSeat(in); err != nil {
		return nil, err
	}
	var st *model.Seat
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if st, err = s.seats.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		if err := s.requireRoom(ctx, *in.RoomID); err != nil {
			return err
		}
		taken, err := s.seats.ExistsByNumber(ctx, *in.RoomID, in.SeatNumber, id)
		if err != nil {
			return err
		}
		if taken {
			return NewConflict(msgSeatNumberTaken)
		}
		st.SeatNumber, st.RoomID = in.SeatNumber, *in.RoomID
		return s.seats.Update(ctx, st)
	})
	if err != nil {
		return nil, translate(err, msgSeatNumberTaken)
	}
	s.logger.Info("seat updated", zap.Uint64("seat_id", st.ID), zap.Uint64("room_id", st.RoomID))
	return st, nil
}

// DeleteSeat removes a vacant seat.
func (s *Inventory) DeleteSeat(ctx context.Context, id uint64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		st, err := s.seats.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if st.IsOccupied() {
			return NewValidation("seat is occupied; unassign it first")
		}
		return s.seats.Delete(ctx, id)
	})
	if err != nil {
		return translate(err, "")
	}
	s.logger.Info("seat deleted", zap.Uint64("seat_id", id))
	return nil
}

// ---- employees ----

// CreateEmployee stores a new employee without seats.
func (s *Inventory) CreateEmployee(ctx context.Context, in EmployeeInput) (*model.Employee, error) {
	in.trim()
	if err := validateEmployee(in); err != nil {
		return nil, err
	}
	e := &model.Employee{FullName: in.FullName, Occupation: in.Occupation}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, translate(err, "")
	}
	s.logger.Info("employee created", zap.Uint64("employee_id", e.ID))
	return e, nil
}

// GetEmployee returns the employee with the seats it holds, each seat
// carrying its room.
func (s *Inventory) GetEmployee(ctx context.Context, id uint64) (*model.EmployeeDetail, error) {
	var out *model.EmployeeDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		e, err := s.employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out, err = employeeDetail(ctx, s.seats, e)
		return err
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return out, nil
}

// GetEmployeeSeats returns the seats held by employee id.
func (s *Inventory) GetEmployeeSeats(ctx context.Context, id uint64) ([]model.SeatDetail, error) {
	d, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.Seats, nil
}

// SearchEmployees pages through employees whose name or occupation contains
// term, case-insensitively, in id order.  page is zero based.
func (s *Inventory) SearchEmployees(ctx context.Context, term string, page, size int) (model.Page[model.EmployeeDetail], error) {
	if err := validatePage(page, size); err != nil {
		return model.Page[model.EmployeeDetail]{}, err
	}
	offset := math.MaxInt
	if page <= math.MaxInt/size {
		offset = page * size
	}

	var out model.Page[model.EmployeeDetail]
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		list, total, err := s.employees.Search(ctx, strings.TrimSpace(term), offset, size)
		if err != nil {
			return err
		}
		ids := make([]uint64, 0, len(list))
		for _, e := range list {
			ids = append(ids, e.ID)
		}
		seats, err := s.seats.ListByEmployees(ctx, ids)
		if err != nil {
			return err
		}
		byEmployee := make(map[uint64][]model.SeatDetail, len(list))
		for _, st := range seats {
			st.Employee = nil
			byEmployee[*st.EmployeeID] = append(byEmployee[*st.EmployeeID], st)
		}
		content := make([]model.EmployeeDetail, 0, len(list))
		for _, e := range list {
			content = append(content, model.EmployeeDetail{Employee: e, Seats: nonNil(byEmployee[e.ID])})
		}
		out = model.NewPage(content, total, page, size)
		return nil
	})
	if err != nil {
		return model.Page[model.EmployeeDetail]{}, translate(err, "")
	}
	return out, nil
}

// employeeDetail loads the seats held by e.  The redundant employee
// reference is dropped from each seat.
func employeeDetail(ctx context.Context, seats SeatStore, e *model.Employee) (*model.EmployeeDetail, error) {
	list, err := seats.ListByEmployees(ctx, []uint64{e.ID})
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Employee = nil
	}
	return &model.EmployeeDetail{Employee: *e, Seats: nonNil(list)}, nil
}

// nonNil keeps empty collections rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
