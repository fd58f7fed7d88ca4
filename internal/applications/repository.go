package applications

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

// Repository provides PostgreSQL backed persistence for applications.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Application, int, error)
	Get(ctx context.Context, id int64) (Application, error)
	GetByReference(ctx context.Context, reference string) (Application, error)
	Create(ctx context.Context, a Application) (Application, error)
	SetStatus(ctx context.Context, id int64, status string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const applicationColumns = `a.id, a.reference, a.opening_id, o.title, a.candidate_name,
	a.candidate_email, a.resume_url, a.status, a.source, a.applied_at, a.updated_at`

func applicationWhere(filters ListFilters) (string, []any) {
	clause := ""
	args := []any{}
	n := 0

	if filters.Search != "" {
		n++
		p := "$" + strconv.Itoa(n)
		clause += ` AND (a.candidate_name ILIKE ` + p + ` OR a.candidate_email ILIKE ` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.OpeningID != nil {
		n++
		clause += ` AND a.opening_id = $` + strconv.Itoa(n)
		args = append(args, *filters.OpeningID)
	}
	if filters.Status != "" {
		n++
		clause += ` AND a.status = $` + strconv.Itoa(n)
		args = append(args, filters.Status)
	}
	if filters.Source != "" {
		n++
		clause += ` AND a.source = $` + strconv.Itoa(n)
		args = append(args, filters.Source)
	}
	return clause, args
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Application, int, error) {
	where, args := applicationWhere(filters)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications a WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicationColumns + `
		FROM applications a
		JOIN openings o ON o.id = a.opening_id
		WHERE 1=1` + where + `
		ORDER BY a.applied_at DESC, a.id DESC`

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

	var items []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.Reference, &a.OpeningID, &a.OpeningTitle, &a.CandidateName,
			&a.CandidateEmail, &a.ResumeURL, &a.Status, &a.Source, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Application, error) {
	return r.getBy(ctx, "a.id = $1", id)
}

func (r *repository) GetByReference(ctx context.Context, reference string) (Application, error) {
	return r.getBy(ctx, "a.reference = $1", reference)
}

func (r *repository) getBy(ctx context.Context, cond string, arg any) (Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications a
		JOIN openings o ON o.id = a.opening_id
		WHERE ` + cond
	var a Application
	err := r.pool.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Reference, &a.OpeningID, &a.OpeningTitle,
		&a.CandidateName, &a.CandidateEmail, &a.ResumeURL, &a.Status, &a.Source, &a.AppliedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Application{}, shared.ErrNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, a Application) (Application, error) {
	query := `INSERT INTO applications
		(reference, opening_id, candidate_name, candidate_email, resume_url, status, source, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id`
	now := time.Now()
	err := r.pool.QueryRow(ctx, query, a.Reference, a.OpeningID, a.CandidateName, a.CandidateEmail,
		a.ResumeURL, a.Status, a.Source, now).Scan(&a.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Application{}, shared.ErrDuplicate
		}
		return Application{}, err
	}
	a.AppliedAt = now
	a.UpdatedAt = now
	return a, nil
}

// SetStatus moves an application to a new stage and appends the stage
// history row in the same transaction.
func (r *repository) SetStatus(ctx context.Context, id int64, status string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var previous string
		err := tx.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1 FOR UPDATE`, id).Scan(&previous)
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
			status, time.Now(), id); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO application_stage_events (application_id, from_status, to_status)
			VALUES ($1, $2, $3)`,
			id, previous, status)
		return err
	})
}
