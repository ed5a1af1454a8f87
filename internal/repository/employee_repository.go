package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/office-management/internal/model"
)

const employeeColumns = "id, full_name, occupation, created_at, updated_at"

// employeeSearchWhere matches the term as a case-insensitive substring of
// either text column.  The pattern is escaped by likePattern.
const employeeSearchWhere = ` WHERE LOWER(full_name) LIKE ? ESCAPE '\\' OR LOWER(occupation) LIKE ? ESCAPE '\\'`

// EmployeeRepo handles persistence of employees.
type EmployeeRepo struct {
	db *sql.DB
}

// NewEmployeeRepo returns a new EmployeeRepo.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func scanEmployee(row rowScanner, e *model.Employee) error {
	return row.Scan(&e.ID, &e.FullName, &e.Occupation, &e.CreatedAt, &e.UpdatedAt)
}

// Create inserts a new employee and fills in the generated columns.
func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx, "INSERT INTO employees (full_name, occupation) VALUES (?, ?)", e.FullName, e.Occupation)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return scanEmployee(q.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = ?", id), e)
}

// GetByID fetches an employee by ID or returns ErrEmployeeNotFound.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (*model.Employee, error) {
	var e model.Employee
	err := scanEmployee(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = ?", id), &e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Search returns one window of employees whose name or occupation contains
// term, ordered by id, along with the total number of matches.  An empty
// term matches everyone.
func (r *EmployeeRepo) Search(ctx context.Context, term string, offset, limit int) ([]model.Employee, int64, error) {
	q := conn(ctx, r.db)
	pattern := likePattern(term)

	var total int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees"+employeeSearchWhere, pattern, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	out := []model.Employee{}
	if total == 0 || int64(offset) >= total {
		return out, total, nil
	}

	rows, err := q.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees"+employeeSearchWhere+" ORDER BY id LIMIT ? OFFSET ?",
		pattern, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern lower-cases term and wraps it for a substring LIKE with the
// wildcard characters escaped.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
