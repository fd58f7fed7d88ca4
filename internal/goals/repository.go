package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Repository provides access to goal storage.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Goal, int, error)
	Get(ctx context.Context, id int64) (Goal, error)
	Create(ctx context.Context, g Goal) (Goal, error)
	SetProgress(ctx context.Context, id int64, progress int, status string, completedAt *time.Time) error
	SetStatus(ctx context.Context, id int64, status string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Postgres backed goal repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const goalColumns = `g.id, g.employee_id, e.full_name, g.title, g.category, g.description,
	g.progress, g.status, g.due_date, g.completed_at, g.created_at, g.updated_at`

func goalWhere(filters ListFilters) (string, []any) {
	var conds []string
	var args []any

	if filters.EmployeeID != nil {
		args = append(args, *filters.EmployeeID)
		conds = append(conds, fmt.Sprintf("g.employee_id = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("g.status = $%d", len(args)))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		conds = append(conds, fmt.Sprintf("g.category = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanGoal(row pgx.Row) (Goal, error) {
	var g Goal
	var description *string
	var due, completed *time.Time
	err := row.Scan(&g.ID, &g.EmployeeID, &g.EmployeeName, &g.Title, &g.Category, &description,
		&g.Progress, &g.Status, &due, &completed, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return Goal{}, err
	}
	if description != nil {
		g.Description = *description
	}
	if due != nil {
		g.DueDate = *due
	}
	if completed != nil {
		g.CompletedAt = *completed
	}
	return g, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Goal, int, error) {
	where, args := goalWhere(filters)

	countQuery := `SELECT COUNT(*) FROM goals g` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("goals: count: %w", err)
	}

	query := `SELECT ` + goalColumns + ` FROM goals g
		JOIN employees e ON e.id = g.employee_id` + where +
		` ORDER BY g.created_at DESC, g.id DESC`
	if filters.PageSize > 0 {
		offset := shared.NewPagination(filters.Page, filters.PageSize, total).Offset()
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filters.PageSize, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("goals: list: %w", err)
	}
	defer rows.Close()

	var items []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("goals: scan: %w", err)
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Goal, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals g
		JOIN employees e ON e.id = g.employee_id
		WHERE g.id = $1`, id)
	g, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, shared.ErrNotFound
	}
	if err != nil {
		return Goal{}, fmt.Errorf("goals: get: %w", err)
	}
	return g, nil
}

func (r *repository) Create(ctx context.Context, g Goal) (Goal, error) {
	var due *time.Time
	if !g.DueDate.IsZero() {
		due = &g.DueDate
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO goals (employee_id, title, category, description, progress, status, due_date)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		g.EmployeeID, g.Title, g.Category, g.Description, g.Progress, g.Status, due,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return Goal{}, fmt.Errorf("goals: create: %w", err)
	}
	return g, nil
}

func (r *repository) SetProgress(ctx context.Context, id int64, progress int, status string, completedAt *time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE goals
		SET progress = $1, status = $2, completed_at = COALESCE($3, completed_at), updated_at = NOW()
		WHERE id = $4`,
		progress, status, completedAt, id)
	if err != nil {
		return fmt.Errorf("goals: set progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE goals SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("goals: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
