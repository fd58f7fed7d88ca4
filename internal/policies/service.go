package policies

import (
	"context"
	"fmt"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Service implements policy business logic.
type Service struct {
	repo Repository
}

// NewService constructs a policy Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns policies matching filters along with the total count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Policy, int, error) {
	return s.repo.List(ctx, filters)
}

// Get returns a single policy.
func (s *Service) Get(ctx context.Context, id int64) (Policy, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new policy at version 1.
func (s *Service) Create(ctx context.Context, p Policy) (Policy, error) {
	if err := validatePolicy(p); err != nil {
		return Policy{}, err
	}
	return s.repo.Create(ctx, p)
}

// Update edits a policy. A changed body bumps the version, which starts a
// fresh acknowledgement round.
func (s *Service) Update(ctx context.Context, p Policy) (Policy, error) {
	if p.ID <= 0 {
		return Policy{}, fmt.Errorf("%w: policy id is required", shared.ErrValidation)
	}
	if err := validatePolicy(p); err != nil {
		return Policy{}, err
	}
	return s.repo.Update(ctx, p)
}

// Acknowledge records that an employee has read the current version of a
// policy. Acknowledging the same version twice is a duplicate.
func (s *Service) Acknowledge(ctx context.Context, policyID, employeeID int64) error {
	if employeeID <= 0 {
		return fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, policyID)
	if err != nil {
		return err
	}
	return s.repo.Acknowledge(ctx, policyID, employeeID, current.Version)
}

func validatePolicy(p Policy) error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if p.Category == "" {
		return fmt.Errorf("%w: category is required", shared.ErrValidation)
	}
	if p.Body == "" {
		return fmt.Errorf("%w: body is required", shared.ErrValidation)
	}
	return nil
}
