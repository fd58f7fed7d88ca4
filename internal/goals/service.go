package goals

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Service implements goal business logic.
type Service struct {
	repo Repository
}

// NewService constructs a goal Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns goals matching filters along with the total count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Goal, int, error) {
	return s.repo.List(ctx, filters)
}

// Get returns a single goal.
func (s *Service) Get(ctx context.Context, id int64) (Goal, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new goal. Goals start active with zero progress.
func (s *Service) Create(ctx context.Context, g Goal) (Goal, error) {
	if g.EmployeeID <= 0 {
		return Goal{}, fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if g.Title == "" {
		return Goal{}, fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if g.Category == "" {
		return Goal{}, fmt.Errorf("%w: category is required", shared.ErrValidation)
	}
	g.Progress = 0
	g.Status = StatusActive
	return s.repo.Create(ctx, g)
}

// UpdateProgress moves a goal to the given progress value. Reaching 100
// completes the goal and stamps the completion time.
func (s *Service) UpdateProgress(ctx context.Context, id int64, progress int) (Goal, error) {
	if progress < 0 || progress > 100 {
		return Goal{}, fmt.Errorf("%w: progress must be between 0 and 100", shared.ErrValidation)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Goal{}, err
	}
	if current.Status == StatusCancelled {
		return Goal{}, fmt.Errorf("%w: goal is cancelled", shared.ErrInvalidTransition)
	}

	status := StatusActive
	var completedAt *time.Time
	if progress == 100 {
		status = StatusCompleted
		now := time.Now()
		completedAt = &now
	}

	if err := s.repo.SetProgress(ctx, id, progress, status, completedAt); err != nil {
		return Goal{}, err
	}
	return s.repo.Get(ctx, id)
}

// Cancel abandons an active goal.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusActive {
		return fmt.Errorf("%w: %s -> %s", shared.ErrInvalidTransition, current.Status, StatusCancelled)
	}
	return s.repo.SetStatus(ctx, id, StatusCancelled)
}
