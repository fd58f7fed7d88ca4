package payslips

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Issuer enqueues the payslip-issued notification for an employee.
type Issuer interface {
	NotifyIssued(ctx context.Context, payslipID, employeeID int64, period string) error
}

// Service handles payslip business logic.
type Service struct {
	repo   Repository
	issuer Issuer
	logger *slog.Logger
}

// NewService builds a Service instance. issuer may be nil when notifications
// are disabled.
func NewService(repo Repository, issuer Issuer, logger *slog.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, logger: logger}
}

// List returns one page of payslips with formatted net amounts.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Payslip, int, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].NetFormatted = FormatAmount(items[i].NetCents, items[i].Currency)
	}
	return items, total, nil
}

// Get returns a single payslip with its formatted net amount.
func (s *Service) Get(ctx context.Context, id int64) (Payslip, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Payslip{}, err
	}
	p.NetFormatted = FormatAmount(p.NetCents, p.Currency)
	return p, nil
}

// Create stores a new draft payslip.
func (s *Service) Create(ctx context.Context, p Payslip) (Payslip, error) {
	if !periodPattern.MatchString(p.Period) {
		return Payslip{}, fmt.Errorf("%w: period must be YYYY-MM", shared.ErrValidation)
	}
	if p.EmployeeID <= 0 {
		return Payslip{}, fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if p.GrossCents < 0 || p.DeductionCents < 0 || p.DeductionCents > p.GrossCents {
		return Payslip{}, fmt.Errorf("%w: amounts out of range", shared.ErrValidation)
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	p.Status = StatusDraft
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Payslip{}, err
	}
	created.NetFormatted = FormatAmount(created.NetCents, created.Currency)
	return created, nil
}

// Issue publishes a draft payslip to the employee and enqueues the
// notification.
func (s *Service) Issue(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusDraft {
		return fmt.Errorf("%w: %s -> %s", shared.ErrInvalidTransition, current.Status, StatusIssued)
	}
	now := time.Now()
	if err := s.repo.SetStatus(ctx, id, StatusIssued, &now); err != nil {
		return err
	}
	if s.issuer != nil {
		if err := s.issuer.NotifyIssued(ctx, id, current.EmployeeID, current.Period); err != nil {
			// Notification is best-effort; the slip is already issued.
			s.logger.Warn("payslip notification enqueue failed", "payslip_id", id, "error", err)
		}
	}
	return nil
}

// MarkPaid finalizes an issued payslip.
func (s *Service) MarkPaid(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusIssued {
		return fmt.Errorf("%w: %s -> %s", shared.ErrInvalidTransition, current.Status, StatusPaid)
	}
	return s.repo.SetStatus(ctx, id, StatusPaid, nil)
}
