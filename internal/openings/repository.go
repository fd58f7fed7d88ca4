package openings

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Repository provides PostgreSQL backed persistence for openings.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Opening, int, error)
	Get(ctx context.Context, id int64) (Opening, error)
	Create(ctx context.Context, o Opening) (Opening, error)
	Update(ctx context.Context, id int64, o Opening) error
	SetStatus(ctx context.Context, id int64, status string, postedAt *time.Time) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const openingColumns = `o.id, o.title, o.description, o.department_id, d.name,
	o.location, o.employment_type, o.status, o.posted_at, o.created_at, o.updated_at`

func openingWhere(filters ListFilters) (string, []any) {
	clause := ""
	args := []any{}
	n := 0

	if filters.Search != "" {
		n++
		p := "$" + strconv.Itoa(n)
		clause += ` AND (o.title ILIKE ` + p + ` OR o.description ILIKE ` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.DepartmentID != nil {
		n++
		clause += ` AND o.department_id = $` + strconv.Itoa(n)
		args = append(args, *filters.DepartmentID)
	}
	if filters.Location != "" {
		n++
		clause += ` AND o.location = $` + strconv.Itoa(n)
		args = append(args, filters.Location)
	}
	if filters.Status != "" {
		n++
		clause += ` AND o.status = $` + strconv.Itoa(n)
		args = append(args, filters.Status)
	}
	return clause, args
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Opening, int, error) {
	where, args := openingWhere(filters)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM openings o WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + openingColumns + `
		FROM openings o
		JOIN departments d ON d.id = o.department_id
		WHERE 1=1` + where + `
		ORDER BY o.posted_at DESC NULLS LAST, o.id DESC`

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

	var items []Opening
	for rows.Next() {
		var (
			o      Opening
			posted *time.Time
		)
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.DepartmentID, &o.DepartmentName,
			&o.Location, &o.EmploymentType, &o.Status, &posted, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if posted != nil {
			o.PostedAt = *posted
		}
		items = append(items, o)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Opening, error) {
	query := `SELECT ` + openingColumns + `
		FROM openings o
		JOIN departments d ON d.id = o.department_id
		WHERE o.id = $1`
	var (
		o      Opening
		posted *time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&o.ID, &o.Title, &o.Description, &o.DepartmentID,
		&o.DepartmentName, &o.Location, &o.EmploymentType, &o.Status, &posted, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Opening{}, shared.ErrNotFound
	}
	if posted != nil {
		o.PostedAt = *posted
	}
	return o, err
}

func (r *repository) Create(ctx context.Context, o Opening) (Opening, error) {
	query := `INSERT INTO openings
		(title, description, department_id, location, employment_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id`
	now := time.Now()
	if o.Status == "" {
		o.Status = StatusDraft
	}
	err := r.pool.QueryRow(ctx, query, o.Title, o.Description, o.DepartmentID,
		o.Location, o.EmploymentType, o.Status, now).Scan(&o.ID)
	if err != nil {
		return Opening{}, err
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	return o, nil
}

func (r *repository) Update(ctx context.Context, id int64, o Opening) error {
	query := `UPDATE openings SET
		title = $1, description = $2, department_id = $3, location = $4,
		employment_type = $5, updated_at = $6
		WHERE id = $7`
	tag, err := r.pool.Exec(ctx, query, o.Title, o.Description, o.DepartmentID,
		o.Location, o.EmploymentType, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status string, postedAt *time.Time) error {
	query := `UPDATE openings SET status = $1, posted_at = COALESCE($2, posted_at), updated_at = $3 WHERE id = $4`
	tag, err := r.pool.Exec(ctx, query, status, postedAt, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
