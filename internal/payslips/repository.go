package payslips

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

// Repository provides PostgreSQL backed persistence for payslips.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Payslip, int, error)
	Get(ctx context.Context, id int64) (Payslip, error)
	Create(ctx context.Context, p Payslip) (Payslip, error)
	SetStatus(ctx context.Context, id int64, status string, issuedAt *time.Time) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const payslipColumns = `p.id, p.employee_id, e.full_name, p.period, p.currency,
	p.gross_cents, p.deduction_cents, p.status, p.issued_at, p.created_at`

func payslipWhere(filters ListFilters) (string, []any) {
	clause := ""
	args := []any{}
	n := 0

	if filters.EmployeeID != nil {
		n++
		clause += ` AND p.employee_id = $` + strconv.Itoa(n)
		args = append(args, *filters.EmployeeID)
	}
	if filters.Period != "" {
		n++
		clause += ` AND p.period = $` + strconv.Itoa(n)
		args = append(args, filters.Period)
	}
	if filters.Status != "" {
		n++
		clause += ` AND p.status = $` + strconv.Itoa(n)
		args = append(args, filters.Status)
	}
	return clause, args
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Payslip, int, error) {
	where, args := payslipWhere(filters)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payslips p WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE 1=1` + where + `
		ORDER BY p.period DESC, p.id DESC`

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

	var items []Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Payslip, error) {
	query := `SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanPayslip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, shared.ErrNotFound
	}
	return p, err
}

func scanPayslip(row pgx.Row) (Payslip, error) {
	var (
		p      Payslip
		issued *time.Time
	)
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Period, &p.Currency,
		&p.GrossCents, &p.DeductionCents, &p.Status, &issued, &p.CreatedAt)
	if err != nil {
		return Payslip{}, err
	}
	if issued != nil {
		p.IssuedAt = *issued
	}
	p.NetCents = p.GrossCents - p.DeductionCents
	return p, nil
}

func (r *repository) Create(ctx context.Context, p Payslip) (Payslip, error) {
	query := `INSERT INTO payslips
		(employee_id, period, currency, gross_cents, deduction_cents, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	now := time.Now()
	err := r.pool.QueryRow(ctx, query, p.EmployeeID, p.Period, p.Currency,
		p.GrossCents, p.DeductionCents, p.Status, now).Scan(&p.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Payslip{}, shared.ErrDuplicate
		}
		return Payslip{}, err
	}
	p.CreatedAt = now
	p.NetCents = p.GrossCents - p.DeductionCents
	return p, nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status string, issuedAt *time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE payslips SET status = $1, issued_at = COALESCE($2, issued_at) WHERE id = $3`, status, issuedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
