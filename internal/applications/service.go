package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// OpeningChecker verifies that an opening can accept applications.
type OpeningChecker interface {
	AcceptsApplications(ctx context.Context, openingID int64) (bool, error)
}

// Service handles application pipeline logic.
type Service struct {
	repo     Repository
	openings OpeningChecker
}

// NewService builds a Service instance.
func NewService(repo Repository, openings OpeningChecker) *Service {
	return &Service{repo: repo, openings: openings}
}

// List returns one page of applications plus the total match count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Application, int, error) {
	return s.repo.List(ctx, filters)
}

// Get returns a single application.
func (s *Service) Get(ctx context.Context, id int64) (Application, error) {
	return s.repo.Get(ctx, id)
}

// Track returns the application matching a candidate-facing reference code.
func (s *Service) Track(ctx context.Context, reference string) (Application, error) {
	return s.repo.GetByReference(ctx, strings.TrimSpace(reference))
}

// Submit stores a new application in the received status and assigns its
// tracking reference.
func (s *Service) Submit(ctx context.Context, a Application) (Application, error) {
	if strings.TrimSpace(a.CandidateName) == "" {
		return Application{}, fmt.Errorf("%w: candidate name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(a.CandidateEmail) == "" {
		return Application{}, fmt.Errorf("%w: candidate email is required", shared.ErrValidation)
	}
	if !validSource(a.Source) {
		return Application{}, fmt.Errorf("%w: unknown source %q", shared.ErrValidation, a.Source)
	}

	accepting, err := s.openings.AcceptsApplications(ctx, a.OpeningID)
	if err != nil {
		return Application{}, err
	}
	if !accepting {
		return Application{}, fmt.Errorf("%w: opening is not accepting applications", shared.ErrValidation)
	}

	a.Reference = uuid.NewString()
	a.Status = StatusReceived
	return s.repo.Create(ctx, a)
}

// Advance moves an application through the pipeline. Terminal statuses
// (hired, rejected) accept no further changes.
func (s *Service) Advance(ctx context.Context, id int64, status string) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !transitionAllowed(current.Status, status) {
		return fmt.Errorf("%w: %s -> %s", shared.ErrInvalidTransition, current.Status, status)
	}
	return s.repo.SetStatus(ctx, id, status)
}
