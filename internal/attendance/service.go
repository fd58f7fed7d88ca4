package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

var validStatuses = map[string]bool{
	StatusPresent: true,
	StatusRemote:  true,
	StatusLeave:   true,
	StatusAbsent:  true,
}

// Service implements attendance business logic.
type Service struct {
	repo   Repository
	cache  *SummaryCache
	logger *slog.Logger
}

// NewService constructs an attendance Service. The cache may be nil, in which
// case every summary hits the database.
func NewService(repo Repository, cache *SummaryCache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns attendance records matching filters along with the total count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Record, int, error) {
	return s.repo.List(ctx, filters)
}

// Record stores one attendance entry and drops the affected monthly summary
// from the cache.
func (s *Service) Record(ctx context.Context, rec Record) (Record, error) {
	if rec.EmployeeID <= 0 {
		return Record{}, fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if rec.Day.IsZero() {
		return Record{}, fmt.Errorf("%w: day is required", shared.ErrValidation)
	}
	if !validStatuses[rec.Status] {
		return Record{}, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, rec.Status)
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return Record{}, err
	}

	if s.cache != nil {
		month := created.Day.Format("2006-01")
		if err := s.cache.Invalidate(ctx, created.EmployeeID, month); err != nil {
			s.logger.Warn("attendance summary invalidate failed", "employee_id", created.EmployeeID, "month", month, "error", err)
		}
	}
	return created, nil
}

// MonthlySummary returns the per-status counts for one employee month,
// serving from Redis when a fresh entry exists.
func (s *Service) MonthlySummary(ctx context.Context, employeeID int64, month string) (MonthlySummary, error) {
	if employeeID <= 0 {
		return MonthlySummary{}, fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if !monthPattern.MatchString(month) {
		return MonthlySummary{}, fmt.Errorf("%w: month must be YYYY-MM", shared.ErrValidation)
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, employeeID, month)
		if err != nil {
			s.logger.Warn("attendance summary cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	summary, err := s.repo.Summarize(ctx, employeeID, month)
	if err != nil {
		return MonthlySummary{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.logger.Warn("attendance summary cache write failed", "error", err)
		}
	}
	return summary, nil
}

// WarmSummary recomputes and caches the summary for one employee month. The
// worker calls this ahead of month-end reporting.
func (s *Service) WarmSummary(ctx context.Context, employeeID int64, month string) error {
	summary, err := s.repo.Summarize(ctx, employeeID, month)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, summary)
}

// CurrentMonth formats now as the YYYY-MM period used by summaries.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}
