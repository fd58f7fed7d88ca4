package employees

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

type fakeRepo struct {
	employees  map[int64]Employee
	hashes     map[int64]string
	nextID     int64
	lastFilter ListFilters
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		employees: make(map[int64]Employee),
		hashes:    make(map[int64]string),
		nextID:    1,
	}
}

func (f *fakeRepo) List(ctx context.Context, filters ListFilters) ([]Employee, int, error) {
	f.lastFilter = filters
	var items []Employee
	for _, e := range f.employees {
		items = append(items, e)
	}
	return items, len(items), nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return Employee{}, shared.ErrNotFound
	}
	return e, nil
}

func (f *fakeRepo) Create(ctx context.Context, emp Employee, portalHash string) (Employee, error) {
	for _, existing := range f.employees {
		if existing.Email == emp.Email {
			return Employee{}, shared.ErrDuplicate
		}
	}
	emp.ID = f.nextID
	f.nextID++
	f.employees[emp.ID] = emp
	if portalHash != "" {
		f.hashes[emp.ID] = portalHash
	}
	return emp, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, emp Employee) error {
	if _, ok := f.employees[id]; !ok {
		return shared.ErrNotFound
	}
	emp.ID = id
	f.employees[id] = emp
	return nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, id int64) error {
	e, ok := f.employees[id]
	if !ok {
		return shared.ErrNotFound
	}
	e.IsActive = false
	f.employees[id] = e
	return nil
}

func validEmployee() Employee {
	return Employee{
		FullName:     "Ava Chen",
		Email:        "ava.chen@meridian.test",
		Position:     "Backend Engineer",
		DepartmentID: 4,
		Location:     "Remote",
		IsActive:     true,
		HiredAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceCreateProvisionsPortalAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validEmployee(), "correct-horse-battery")
	require.NoError(t, err)

	hash, ok := repo.hashes[created.ID]
	require.True(t, ok, "portal hash must be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct-horse-battery")))
}

func TestServiceCreateWithoutPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validEmployee(), "")
	require.NoError(t, err)
	_, ok := repo.hashes[created.ID]
	assert.False(t, ok)
}

func TestServiceCreateRejectsMissingFields(t *testing.T) {
	svc := NewService(newFakeRepo())

	emp := validEmployee()
	emp.FullName = "  "
	_, err := svc.Create(context.Background(), emp, "")
	assert.ErrorIs(t, err, shared.ErrValidation)

	emp = validEmployee()
	emp.DepartmentID = 0
	_, err = svc.Create(context.Background(), emp, "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestServiceCreateDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validEmployee(), "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validEmployee(), "")
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestServiceDeactivate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validEmployee(), "")
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 999), shared.ErrNotFound)
}
