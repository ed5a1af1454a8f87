package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/office-management/internal/model"
	"github.com/iliyamo/office-management/internal/queue"
)

const publishTimeout = 5 * time.Second

// Assignment moves seats between VACANT and OCCUPIED.  Both transitions
// lock the seat row so concurrent requests on the same seat serialize in
// the store.
type Assignment struct {
	tx        Transactor
	seats     SeatStore
	employees EmployeeStore
	publisher EventPublisher // nil disables events
	logger    *zap.Logger
}

// NewAssignment wires an Assignment service.  publisher may be nil.
func NewAssignment(tx Transactor, seats SeatStore, employees EmployeeStore, publisher EventPublisher, logger *zap.Logger) *Assignment {
	return &Assignment{tx: tx, seats: seats, employees: employees, publisher: publisher, logger: logger}
}

// AssignSeat gives a vacant seat to an employee and returns the employee
// with its updated seats.  An occupied seat is a conflict whoever holds it.
func (a *Assignment) AssignSeat(ctx context.Context, employeeID, seatID uint64) (*model.EmployeeDetail, error) {
	var (
		out *model.EmployeeDetail
		ev  queue.SeatEvent
	)
	err := a.tx.WithTx(ctx, func(ctx context.Context) error {
		emp, err := a.employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		seat, err := a.seats.GetByIDForUpdate(ctx, seatID)
		if err != nil {
			return err
		}
		if seat.IsOccupied() {
			return NewConflict("seat is already occupied")
		}
		if err := a.seats.SetEmployee(ctx, seat.ID, &emp.ID); err != nil {
			return err
		}
		if out, err = employeeDetail(ctx, a.seats, emp); err != nil {
			return err
		}
		ev = newSeatEvent(queue.EventSeatAssigned, emp, seat)
		return nil
	})
	if err != nil {
		return nil, translate(err, "")
	}
	a.logger.Info("seat assigned", zap.Uint64("seat_id", seatID), zap.Uint64("employee_id", employeeID))
	a.publish(ctx, ev)
	return out, nil
}

// UnassignSeat frees a seat held by the employee.  A vacant seat and a seat
// held by someone else are rejected alike.
func (a *Assignment) UnassignSeat(ctx context.Context, employeeID, seatID uint64) (*model.EmployeeDetail, error) {
	var (
		out *model.EmployeeDetail
		ev  queue.SeatEvent
	)
	err := a.tx.WithTx(ctx, func(ctx context.Context) error {
		emp, err := a.employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		seat, err := a.seats.GetByIDForUpdate(ctx, seatID)
		if err != nil {
			return err
		}
		if seat.EmployeeID == nil || *seat.EmployeeID != emp.ID {
			return NewValidation("seat is not assigned to this employee")
		}
		if err := a.seats.SetEmployee(ctx, seat.ID, nil); err != nil {
			return err
		}
		if out, err = employeeDetail(ctx, a.seats, emp); err != nil {
			return err
		}
		ev = newSeatEvent(queue.EventSeatUnassigned, emp, seat)
		return nil
	})
	if err != nil {
		return nil, translate(err, "")
	}
	a.logger.Info("seat unassigned", zap.Uint64("seat_id", seatID), zap.Uint64("employee_id", employeeID))
	a.publish(ctx, ev)
	return out, nil
}

// publish runs after commit; a broker failure is logged and swallowed.
func (a *Assignment) publish(ctx context.Context, ev queue.SeatEvent) {
	if a.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := a.publisher.PublishSeatEvent(ctx, ev); err != nil {
		a.logger.Warn("seat event not published", zap.String("event_id", ev.EventID), zap.Error(err))
	}
}

func newSeatEvent(typ string, emp *model.Employee, seat *model.Seat) queue.SeatEvent {
	return queue.SeatEvent{
		EventID:      uuid.NewString(),
		Type:         typ,
		SeatID:       seat.ID,
		SeatNumber:   seat.SeatNumber,
		RoomID:       seat.RoomID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
