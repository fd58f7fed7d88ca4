package goals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

type fakeRepo struct {
	goals  map[int64]Goal
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{goals: map[int64]Goal{}}
}

func (f *fakeRepo) List(_ context.Context, filters ListFilters) ([]Goal, int, error) {
	var out []Goal
	for _, g := range f.goals {
		if filters.EmployeeID != nil && g.EmployeeID != *filters.EmployeeID {
			continue
		}
		if filters.Status != "" && g.Status != filters.Status {
			continue
		}
		if filters.Category != "" && g.Category != filters.Category {
			continue
		}
		out = append(out, g)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Goal, error) {
	g, ok := f.goals[id]
	if !ok {
		return Goal{}, shared.ErrNotFound
	}
	return g, nil
}

func (f *fakeRepo) Create(_ context.Context, g Goal) (Goal, error) {
	f.nextID++
	g.ID = f.nextID
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	f.goals[g.ID] = g
	return g, nil
}

func (f *fakeRepo) SetProgress(_ context.Context, id int64, progress int, status string, completedAt *time.Time) error {
	g, ok := f.goals[id]
	if !ok {
		return shared.ErrNotFound
	}
	g.Progress = progress
	g.Status = status
	if completedAt != nil {
		g.CompletedAt = *completedAt
	}
	g.UpdatedAt = time.Now()
	f.goals[id] = g
	return nil
}

func (f *fakeRepo) SetStatus(_ context.Context, id int64, status string) error {
	g, ok := f.goals[id]
	if !ok {
		return shared.ErrNotFound
	}
	g.Status = status
	g.UpdatedAt = time.Now()
	f.goals[id] = g
	return nil
}

func TestCreateGoal(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), Goal{
		EmployeeID: 7,
		Title:      "Ship the onboarding revamp",
		Category:   "delivery",
		Progress:   55, // ignored, goals start at zero
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, 0, created.Progress)
}

func TestCreateGoalValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Goal{Title: "x", Category: "y"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, Goal{EmployeeID: 7, Category: "y"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, Goal{EmployeeID: 7, Title: "x"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateProgress(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, Goal{EmployeeID: 7, Title: "Learn Rust", Category: "skills"})
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(ctx, created.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)
	assert.Equal(t, StatusActive, updated.Status)
	assert.True(t, updated.CompletedAt.IsZero())
}

func TestUpdateProgressBounds(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, Goal{EmployeeID: 7, Title: "Learn Rust", Category: "skills"})
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, created.ID, -1)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.UpdateProgress(ctx, created.ID, 101)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestProgressHundredCompletesGoal(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, Goal{EmployeeID: 7, Title: "Learn Rust", Category: "skills"})
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(ctx, created.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.False(t, updated.CompletedAt.IsZero())

	// Progress can still move back, which reopens the goal.
	reopened, err := svc.UpdateProgress(ctx, created.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, reopened.Status)
}

func TestCancelGoal(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, Goal{EmployeeID: 7, Title: "Learn Rust", Category: "skills"})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, created.ID))

	_, err = svc.UpdateProgress(ctx, created.ID, 10)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	err = svc.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestCancelMissingGoal(t *testing.T) {
	svc := NewService(newFakeRepo())
	err := svc.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
