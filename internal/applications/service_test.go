package applications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

type fakeRepo struct {
	applications map[int64]Application
	nextID       int64
	lastFilter   ListFilters
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{applications: make(map[int64]Application), nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters ListFilters) ([]Application, int, error) {
	f.lastFilter = filters
	var items []Application
	for _, a := range f.applications {
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if filters.Source != "" && a.Source != filters.Source {
			continue
		}
		items = append(items, a)
	}
	return items, len(items), nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return Application{}, shared.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetByReference(ctx context.Context, reference string) (Application, error) {
	for _, a := range f.applications {
		if a.Reference == reference {
			return a, nil
		}
	}
	return Application{}, shared.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, a Application) (Application, error) {
	a.ID = f.nextID
	f.nextID++
	a.AppliedAt = time.Now()
	f.applications[a.ID] = a
	return a, nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, id int64, status string) error {
	a, ok := f.applications[id]
	if !ok {
		return shared.ErrNotFound
	}
	a.Status = status
	f.applications[id] = a
	return nil
}

type fakeOpenings struct {
	accepting map[int64]bool
}

func (f fakeOpenings) AcceptsApplications(ctx context.Context, openingID int64) (bool, error) {
	return f.accepting[openingID], nil
}

func validApplication() Application {
	return Application{
		OpeningID:      7,
		CandidateName:  "Noor Haddad",
		CandidateEmail: "noor@example.test",
		Source:         SourcePortal,
	}
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeOpenings{accepting: map[int64]bool{7: true, 8: false}})
}

func TestServiceSubmitAssignsReference(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Submit(context.Background(), validApplication())
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, created.Status)

	_, err = uuid.Parse(created.Reference)
	assert.NoError(t, err, "reference must be a valid uuid")

	tracked, err := svc.Track(context.Background(), created.Reference)
	require.NoError(t, err)
	assert.Equal(t, created.ID, tracked.ID)
}

func TestServiceSubmitRejectsClosedOpening(t *testing.T) {
	svc := newTestService(newFakeRepo())

	a := validApplication()
	a.OpeningID = 8
	_, err := svc.Submit(context.Background(), a)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestServiceSubmitRejectsUnknownSource(t *testing.T) {
	svc := newTestService(newFakeRepo())

	a := validApplication()
	a.Source = "billboard"
	_, err := svc.Submit(context.Background(), a)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestServiceAdvanceFollowsPipeline(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Submit(context.Background(), validApplication())
	require.NoError(t, err)

	for _, status := range []string{StatusScreening, StatusInterview, StatusOffer, StatusHired} {
		require.NoError(t, svc.Advance(context.Background(), created.ID, status))
	}

	// Hired is terminal.
	err = svc.Advance(context.Background(), created.ID, StatusRejected)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestServiceAdvanceRejectsSkippingStages(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Submit(context.Background(), validApplication())
	require.NoError(t, err)

	err = svc.Advance(context.Background(), created.ID, StatusOffer)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestServiceAdvanceAllowsRejectionFromAnyStage(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Submit(context.Background(), validApplication())
	require.NoError(t, err)
	require.NoError(t, svc.Advance(context.Background(), created.ID, StatusScreening))
	require.NoError(t, svc.Advance(context.Background(), created.ID, StatusRejected))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
}
