package openings

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

type fakeRepo struct {
	openings  map[int64]Opening
	nextID    int64
	listCalls atomic.Int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{openings: make(map[int64]Opening), nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters ListFilters) ([]Opening, int, error) {
	f.listCalls.Add(1)
	var items []Opening
	for _, o := range f.openings {
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		items = append(items, o)
	}
	return items, len(items), nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Opening, error) {
	o, ok := f.openings[id]
	if !ok {
		return Opening{}, shared.ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) Create(ctx context.Context, o Opening) (Opening, error) {
	o.ID = f.nextID
	f.nextID++
	if o.Status == "" {
		o.Status = StatusDraft
	}
	f.openings[o.ID] = o
	return o, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, o Opening) error {
	if _, ok := f.openings[id]; !ok {
		return shared.ErrNotFound
	}
	o.ID = id
	o.Status = f.openings[id].Status
	f.openings[id] = o
	return nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, id int64, status string, postedAt *time.Time) error {
	o, ok := f.openings[id]
	if !ok {
		return shared.ErrNotFound
	}
	o.Status = status
	if postedAt != nil {
		o.PostedAt = *postedAt
	}
	f.openings[id] = o
	return nil
}

func validOpening() Opening {
	return Opening{
		Title:          "Backend Engineer",
		Description:    "Go services",
		DepartmentID:   4,
		Location:       "Remote",
		EmploymentType: "full_time",
	}
}

func TestServiceListCachesResults(t *testing.T) {
	repo := newFakeRepo()
	_, err := repo.Create(context.Background(), validOpening())
	require.NoError(t, err)
	svc := NewService(repo, 0)

	filters := ListFilters{Page: 1, PageSize: 10, Status: StatusDraft}
	_, total, err := svc.List(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, _, err = svc.List(context.Background(), filters)
	require.NoError(t, err)
	assert.EqualValues(t, 1, repo.listCalls.Load(), "second identical query must hit the cache")

	// A different page is a different cache key.
	_, _, err = svc.List(context.Background(), ListFilters{Page: 2, PageSize: 10, Status: StatusDraft})
	require.NoError(t, err)
	assert.EqualValues(t, 2, repo.listCalls.Load())
}

func TestServiceListCacheHonorsConfiguredTTL(t *testing.T) {
	repo := newFakeRepo()
	_, err := repo.Create(context.Background(), validOpening())
	require.NoError(t, err)
	svc := NewService(repo, time.Nanosecond)

	filters := ListFilters{Page: 1, PageSize: 10, Status: StatusDraft}
	_, _, err = svc.List(context.Background(), filters)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, _, err = svc.List(context.Background(), filters)
	require.NoError(t, err)
	assert.EqualValues(t, 2, repo.listCalls.Load(), "expired entry must fall through to the repository")
}

func TestServiceWritesBustTheCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 0)

	filters := ListFilters{Page: 1, PageSize: 10}
	_, total, err := svc.List(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	_, err = svc.Create(context.Background(), validOpening())
	require.NoError(t, err)

	_, total, err = svc.List(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 1, total, "create must invalidate cached listings")
}

func TestServiceTransitionLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 0)

	created, err := svc.Create(context.Background(), validOpening())
	require.NoError(t, err)
	require.Equal(t, StatusDraft, created.Status)

	require.NoError(t, svc.Transition(context.Background(), created.ID, StatusOpen))
	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, got.Status)
	assert.False(t, got.PostedAt.IsZero(), "publishing stamps posted_at")

	require.NoError(t, svc.Transition(context.Background(), created.ID, StatusClosed))

	err = svc.Transition(context.Background(), created.ID, StatusDraft)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestServiceTransitionReopenKeepsPostedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 0)

	created, err := svc.Create(context.Background(), validOpening())
	require.NoError(t, err)

	require.NoError(t, svc.Transition(context.Background(), created.ID, StatusOpen))
	first, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Transition(context.Background(), created.ID, StatusClosed))
	require.NoError(t, svc.Transition(context.Background(), created.ID, StatusOpen))

	reopened, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.PostedAt, reopened.PostedAt)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), 0)

	o := validOpening()
	o.Title = ""
	_, err := svc.Create(context.Background(), o)
	assert.ErrorIs(t, err, shared.ErrValidation)
}
