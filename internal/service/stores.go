package service

import (
	"context"

	"github.com/iliyamo/office-management/internal/model"
	"github.com/iliyamo/office-management/internal/queue"
)

// Transactor runs fn inside one store transaction.  Store calls made with
// the ctx handed to fn join that transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// FloorStore persists floors.  Implemented by repository.FloorRepo.
type FloorStore interface {
	Create(ctx context.Context, f *model.Floor) error
	GetByID(ctx context.Context, id uint64) (*model.Floor, error)
	List(ctx context.Context) ([]model.Floor, error)
	ExistsByNumber(ctx context.Context, number int, excludeID uint64) (bool, error)
	Update(ctx context.Context, f *model.Floor) error
	Delete(ctx context.Context, id uint64) error
}

// RoomStore persists rooms.
type RoomStore interface {
	Create(ctx context.Context, r *model.Room) error
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	ListByFloor(ctx context.Context, floorID uint64) ([]model.Room, error)
	ExistsByNumber(ctx context.Context, floorID uint64, roomNumber string, excludeID uint64) (bool, error)
	Update(ctx context.Context, r *model.Room) error
	Delete(ctx context.Context, id uint64) error
	CountByFloor(ctx context.Context, floorID uint64) (int64, error)
}

// SeatStore persists seats and their occupant.
type SeatStore interface {
	Create(ctx context.Context, s *model.Seat) error
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*model.Seat, error)
	GetDetail(ctx context.Context, id uint64) (*model.SeatDetail, error)
	ListByRoom(ctx context.Context, roomID uint64) ([]model.SeatDetail, error)
	ListByFloor(ctx context.Context, floorID uint64) ([]model.SeatDetail, error)
	ListByEmployees(ctx context.Context, employeeIDs []uint64) ([]model.SeatDetail, error)
	ExistsByNumber(ctx context.Context, roomID uint64, seatNumber string, excludeID uint64) (bool, error)
	Update(ctx context.Context, s *model.Seat) error
	SetEmployee(ctx context.Context, seatID uint64, employeeID *uint64) error
	Delete(ctx context.Context, id uint64) error
	CountByRoom(ctx context.Context, roomID uint64) (int64, error)
}

// EmployeeStore persists employees.
type EmployeeStore interface {
	Create(ctx context.Context, e *model.Employee) error
	GetByID(ctx context.Context, id uint64) (*model.Employee, error)
	Search(ctx context.Context, term string, offset, limit int) ([]model.Employee, int64, error)
}

// StatsStore reads aggregate counts.
type StatsStore interface {
	Counts(ctx context.Context) (model.Stats, error)
}

// EventPublisher delivers seat events once the change is committed.
type EventPublisher interface {
	PublishSeatEvent(ctx context.Context, ev queue.SeatEvent) error
}
