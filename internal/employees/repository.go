package employees

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/platform/db"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Repository provides PostgreSQL backed persistence for the directory.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Employee, int, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, emp Employee, portalHash string) (Employee, error)
	Update(ctx context.Context, id int64, emp Employee) error
	Deactivate(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const employeeColumns = `e.id, e.full_name, e.email, e.position, e.department_id, d.name,
	e.location, e.is_active, e.hired_at, e.created_at, e.updated_at`

func employeeWhere(filters ListFilters) (string, []any) {
	clause := ""
	args := []any{}
	n := 0

	if filters.Search != "" {
		n++
		p := "$" + strconv.Itoa(n)
		clause += ` AND (e.full_name ILIKE ` + p + ` OR e.position ILIKE ` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.DepartmentID != nil {
		n++
		clause += ` AND e.department_id = $` + strconv.Itoa(n)
		args = append(args, *filters.DepartmentID)
	}
	if filters.Location != "" {
		n++
		clause += ` AND e.location = $` + strconv.Itoa(n)
		args = append(args, filters.Location)
	}
	if filters.IsActive != nil {
		n++
		clause += ` AND e.is_active = $` + strconv.Itoa(n)
		args = append(args, *filters.IsActive)
	}
	return clause, args
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Employee, int, error) {
	where, args := employeeWhere(filters)

	var total int
	countQuery := `SELECT COUNT(*) FROM employees e WHERE 1=1` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + employeeColumns + `
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE 1=1` + where + `
		ORDER BY e.full_name ASC`

	if filters.PageSize > 0 {
		n := len(args)
		query += ` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
		offset := (filters.Page - 1) * filters.PageSize
		if offset < 0 {
			offset = 0
		}
		args = append(args, filters.PageSize, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.Email, &e.Position, &e.DepartmentID, &e.DepartmentName,
			&e.Location, &e.IsActive, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE e.id = $1`
	var e Employee
	err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.FullName, &e.Email, &e.Position,
		&e.DepartmentID, &e.DepartmentName, &e.Location, &e.IsActive, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, shared.ErrNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, emp Employee, portalHash string) (Employee, error) {
	query := `INSERT INTO employees
		(full_name, email, position, department_id, location, is_active, hired_at, portal_password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $9)
		RETURNING id`
	now := time.Now()
	err := r.pool.QueryRow(ctx, query, emp.FullName, emp.Email, emp.Position, emp.DepartmentID,
		emp.Location, emp.IsActive, emp.HiredAt, portalHash, now).Scan(&emp.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Employee{}, shared.ErrDuplicate
		}
		return Employee{}, err
	}
	emp.CreatedAt = now
	emp.UpdatedAt = now
	return emp, nil
}

func (r *repository) Update(ctx context.Context, id int64, emp Employee) error {
	query := `UPDATE employees SET
		full_name = $1, email = $2, position = $3, department_id = $4,
		location = $5, is_active = $6, updated_at = $7
		WHERE id = $8`
	tag, err := r.pool.Exec(ctx, query, emp.FullName, emp.Email, emp.Position, emp.DepartmentID,
		emp.Location, emp.IsActive, time.Now(), id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET is_active = FALSE, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
