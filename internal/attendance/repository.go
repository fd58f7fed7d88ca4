package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/platform/db"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Repository provides access to attendance storage.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Record, int, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Summarize(ctx context.Context, employeeID int64, month string) (MonthlySummary, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Postgres backed attendance repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func attendanceWhere(filters ListFilters) (string, []any) {
	var conds []string
	var args []any

	if filters.EmployeeID != nil {
		args = append(args, *filters.EmployeeID)
		conds = append(conds, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		conds = append(conds, fmt.Sprintf("a.day >= $%d", len(args)))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		conds = append(conds, fmt.Sprintf("a.day <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Record, int, error) {
	where, args := attendanceWhere(filters)

	countQuery := `SELECT COUNT(*) FROM attendance_records a` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("attendance: count: %w", err)
	}

	query := `SELECT a.id, a.employee_id, e.full_name, a.day, a.status, a.note, a.created_at
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id` + where +
		` ORDER BY a.day DESC, a.id DESC`
	if filters.PageSize > 0 {
		offset := shared.NewPagination(filters.Page, filters.PageSize, total).Offset()
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filters.PageSize, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("attendance: list: %w", err)
	}
	defer rows.Close()

	var items []Record
	for rows.Next() {
		var rec Record
		var note *string
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Day, &rec.Status, &note, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("attendance: scan: %w", err)
		}
		if note != nil {
			rec.Note = *note
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) Create(ctx context.Context, rec Record) (Record, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance_records (employee_id, day, status, note)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, created_at`,
		rec.EmployeeID, rec.Day, rec.Status, rec.Note,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Record{}, shared.ErrDuplicate
		}
		return Record{}, fmt.Errorf("attendance: create: %w", err)
	}
	return rec, nil
}

func (r *repository) Summarize(ctx context.Context, employeeID int64, month string) (MonthlySummary, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("%w: month must be YYYY-MM", shared.ErrValidation)
	}
	end := start.AddDate(0, 1, 0)

	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM attendance_records
		WHERE employee_id = $1 AND day >= $2 AND day < $3
		GROUP BY status`,
		employeeID, start, end,
	)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("attendance: summarize: %w", err)
	}
	defer rows.Close()

	summary := MonthlySummary{EmployeeID: employeeID, Month: month}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return MonthlySummary{}, fmt.Errorf("attendance: scan: %w", err)
		}
		switch status {
		case StatusPresent:
			summary.Present = count
		case StatusRemote:
			summary.Remote = count
		case StatusLeave:
			summary.Leave = count
		case StatusAbsent:
			summary.Absent = count
		}
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return MonthlySummary{}, err
	}
	return summary, nil
}
