package employees

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Service handles directory business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of the directory plus the total match count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Employee, int, error) {
	return s.repo.List(ctx, filters)
}

// Get returns a single employee.
func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new employee. When initialPassword is non-empty a portal
// account is provisioned with its bcrypt hash; login itself is handled by the
// upstream auth collaborator.
func (s *Service) Create(ctx context.Context, emp Employee, initialPassword string) (Employee, error) {
	if err := s.validate(emp); err != nil {
		return Employee{}, err
	}
	var hash string
	if initialPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
		if err != nil {
			return Employee{}, fmt.Errorf("employees: hash portal password: %w", err)
		}
		hash = string(hashed)
	}
	return s.repo.Create(ctx, emp, hash)
}

// Update replaces mutable employee fields.
func (s *Service) Update(ctx context.Context, id int64, emp Employee) error {
	if err := s.validate(emp); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, emp)
}

// Deactivate marks an employee inactive; records are never hard-deleted.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) validate(emp Employee) error {
	if strings.TrimSpace(emp.FullName) == "" {
		return fmt.Errorf("%w: full name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(emp.Email) == "" {
		return fmt.Errorf("%w: email is required", shared.ErrValidation)
	}
	if emp.DepartmentID <= 0 {
		return fmt.Errorf("%w: department is required", shared.ErrValidation)
	}
	return nil
}
