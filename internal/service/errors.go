// Package service holds the business rules of the office inventory: the
// floor/room/seat/employee operations, seat assignment and the stats
// aggregator.  Every failure leaves this package as a *Error so the HTTP
// layer can pick a status code without knowing about storage.
package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/office-management/internal/repository"
)

// Kind classifies a service failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnsupportedMediaType
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnsupportedMediaType:
		return "unsupported_media_type"
	}
	return "internal"
}

// Error is the single error type returned by the services.  Message is
// safe to show to API clients; Err (internal failures only) is not.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidation reports malformed or out-of-range input.
func NewValidation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// NewConflict reports a uniqueness or state conflict.
func NewConflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// NewNotFound reports an id that does not resolve.
func NewNotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// NewUnsupportedMediaType reports a request body that is not JSON.
func NewUnsupportedMediaType(msg string) *Error {
	return &Error{Kind: KindUnsupportedMediaType, Message: msg}
}

// NewInternal wraps an unexpected failure.  The cause is kept for logging
// and hidden from clients.
func NewInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf reports the kind of err.  Errors that are not a *Error count as
// internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// translate maps repository sentinels onto the taxonomy.  conflictMsg is
// used when a unique key rejected the write.
func translate(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, repository.ErrFloorNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrSeatNotFound),
		errors.Is(err, repository.ErrEmployeeNotFound):
		return NewNotFound(notFoundMessage(err))
	case errors.Is(err, repository.ErrDuplicate):
		if conflictMsg == "" {
			conflictMsg = "entry already exists"
		}
		return NewConflict(conflictMsg)
	case errors.Is(err, repository.ErrReferenceMissing):
		return NewValidation("referenced entity does not exist")
	case errors.Is(err, repository.ErrStillReferenced):
		return NewValidation("entity is still referenced")
	case errors.Is(err, repository.ErrValueOutOfRange):
		return NewValidation("value does not fit the stored field")
	}
	return NewInternal(err)
}

func notFoundMessage(err error) string {
	for _, s := range []error{
		repository.ErrFloorNotFound,
		repository.ErrRoomNotFound,
		repository.ErrSeatNotFound,
		repository.ErrEmployeeNotFound,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "not found"
}
