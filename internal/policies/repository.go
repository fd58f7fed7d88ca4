package policies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/platform/db"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Repository provides access to policy storage.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Policy, int, error)
	Get(ctx context.Context, id int64) (Policy, error)
	Create(ctx context.Context, p Policy) (Policy, error)
	Update(ctx context.Context, p Policy) (Policy, error)
	Acknowledge(ctx context.Context, policyID, employeeID int64, version int) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Postgres backed policy repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const policyColumns = `p.id, p.title, p.category, p.body, p.version,
	(SELECT COUNT(*) FROM policy_acknowledgements a
		WHERE a.policy_id = p.id AND a.version = p.version) AS ack_count,
	p.created_at, p.updated_at`

func policyWhere(filters ListFilters) (string, []any) {
	var conds []string
	var args []any

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.body ILIKE $%d)", len(args), len(args)))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		conds = append(conds, fmt.Sprintf("p.category = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Policy, int, error) {
	where, args := policyWhere(filters)

	countQuery := `SELECT COUNT(*) FROM policies p` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("policies: count: %w", err)
	}

	query := `SELECT ` + policyColumns + ` FROM policies p` + where + ` ORDER BY p.title ASC`
	if filters.PageSize > 0 {
		offset := shared.NewPagination(filters.Page, filters.PageSize, total).Offset()
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filters.PageSize, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("policies: list: %w", err)
	}
	defer rows.Close()

	var items []Policy
	for rows.Next() {
		var p Policy
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Body, &p.Version, &p.AckCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("policies: scan: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Policy, error) {
	var p Policy
	err := r.pool.QueryRow(ctx,
		`SELECT `+policyColumns+` FROM policies p WHERE p.id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Category, &p.Body, &p.Version, &p.AckCount, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, shared.ErrNotFound
	}
	if err != nil {
		return Policy{}, fmt.Errorf("policies: get: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p Policy) (Policy, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO policies (title, category, body, version)
		VALUES ($1, $2, $3, 1)
		RETURNING id, version, created_at, updated_at`,
		p.Title, p.Category, p.Body,
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Policy{}, shared.ErrDuplicate
		}
		return Policy{}, fmt.Errorf("policies: create: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, p Policy) (Policy, error) {
	err := r.pool.QueryRow(ctx,
		`UPDATE policies
		SET title = $1, category = $2, body = $3,
			version = version + CASE WHEN body IS DISTINCT FROM $3 THEN 1 ELSE 0 END,
			updated_at = NOW()
		WHERE id = $4
		RETURNING version, created_at, updated_at`,
		p.Title, p.Category, p.Body, p.ID,
	).Scan(&p.Version, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, shared.ErrNotFound
	}
	if err != nil {
		return Policy{}, fmt.Errorf("policies: update: %w", err)
	}
	return p, nil
}

func (r *repository) Acknowledge(ctx context.Context, policyID, employeeID int64, version int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO policy_acknowledgements (policy_id, employee_id, version)
		VALUES ($1, $2, $3)`,
		policyID, employeeID, version,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return fmt.Errorf("policies: acknowledge: %w", err)
	}
	return nil
}
