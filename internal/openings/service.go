package openings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Service handles openings business logic. List queries are memoized briefly
// and collapsed with singleflight: the public listing is the hottest read in
// the system and the data changes rarely.
type Service struct {
	repo  Repository
	cache *listCache
	group singleflight.Group
}

// NewService builds a Service instance. cacheTTL bounds how long list
// responses are served from memory; zero or negative selects the default.
func NewService(repo Repository, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = defaultListCacheTTL
	}
	return &Service{
		repo:  repo,
		cache: newListCache(cacheTTL),
	}
}

// List returns one page of openings plus the total match count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Opening, int, error) {
	key := listCacheKey(filters)
	if cached, ok := s.cache.Get(key); ok {
		return cached.items, cached.total, nil
	}

	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		items, total, err := s.repo.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		result := listResult{items: items, total: total}
		s.cache.Set(key, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, 0, res.Err
		}
		result := res.Val.(listResult)
		return result.items, result.total, nil
	}
}

// Get returns a single opening.
func (s *Service) Get(ctx context.Context, id int64) (Opening, error) {
	return s.repo.Get(ctx, id)
}

// AcceptsApplications reports whether an opening is taking applications.
// Only open postings do.
func (s *Service) AcceptsApplications(ctx context.Context, id int64) (bool, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return o.Status == StatusOpen, nil
}

// Create stores a new opening in draft status.
func (s *Service) Create(ctx context.Context, o Opening) (Opening, error) {
	if err := s.validate(o); err != nil {
		return Opening{}, err
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Opening{}, err
	}
	s.cache.Bust()
	return created, nil
}

// Update replaces mutable opening fields.
func (s *Service) Update(ctx context.Context, id int64, o Opening) error {
	if err := s.validate(o); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, o); err != nil {
		return err
	}
	s.cache.Bust()
	return nil
}

// Transition moves an opening through its lifecycle. Publishing stamps
// posted_at on the first transition to open.
func (s *Service) Transition(ctx context.Context, id int64, status string) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !transitionAllowed(current.Status, status) {
		return fmt.Errorf("%w: %s -> %s", shared.ErrInvalidTransition, current.Status, status)
	}
	var postedAt *time.Time
	if status == StatusOpen && current.PostedAt.IsZero() {
		now := time.Now()
		postedAt = &now
	}
	if err := s.repo.SetStatus(ctx, id, status, postedAt); err != nil {
		return err
	}
	s.cache.Bust()
	return nil
}

func (s *Service) validate(o Opening) error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if o.DepartmentID <= 0 {
		return fmt.Errorf("%w: department is required", shared.ErrValidation)
	}
	return nil
}
