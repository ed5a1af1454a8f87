// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow the service layer to
// distinguish between different failure scenarios without knowing about
// MySQL error numbers.  ErrDuplicate signals a unique key violation,
// ErrReferenceMissing a foreign key pointing at a row that does not exist
// and ErrStillReferenced a delete blocked by dependent rows.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDuplicate is returned when an insert or update hits a unique key.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrReferenceMissing is returned when a foreign key target is absent.
	ErrReferenceMissing = errors.New("referenced row does not exist")
	// ErrStillReferenced is returned when a delete is blocked by children.
	ErrStillReferenced = errors.New("row is still referenced")
	// ErrValueOutOfRange is returned when a value does not fit its column.
	ErrValueOutOfRange = errors.New("value out of range")
)

// Not-found sentinels, one per table.
var (
	ErrFloorNotFound    = errors.New("floor not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)

// MySQL server error numbers the repositories translate.
const (
	mysqlDupEntry         = 1062
	mysqlRowIsReferenced  = 1217
	mysqlNoReferencedRow  = 1216
	mysqlRowIsReferenced2 = 1451
	mysqlNoReferencedRow2 = 1452
	mysqlOutOfRange       = 1264
	mysqlDataTooLong      = 1406
)

// translateError maps driver errors onto the package sentinels.  The
// original error text is kept in the wrapped message.  nil stays nil.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDupEntry:
		return fmt.Errorf("%w: %s", ErrDuplicate, me.Message)
	case mysqlNoReferencedRow, mysqlNoReferencedRow2:
		return fmt.Errorf("%w: %s", ErrReferenceMissing, me.Message)
	case mysqlRowIsReferenced, mysqlRowIsReferenced2:
		return fmt.Errorf("%w: %s", ErrStillReferenced, me.Message)
	case mysqlOutOfRange, mysqlDataTooLong:
		return fmt.Errorf("%w: %s", ErrValueOutOfRange, me.Message)
	}
	return err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
