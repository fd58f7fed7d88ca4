package payslips

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

type fakeRepo struct {
	slips  map[int64]Payslip
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slips: map[int64]Payslip{}, nextID: 1}
}

func (f *fakeRepo) List(_ context.Context, filters ListFilters) ([]Payslip, int, error) {
	var out []Payslip
	for _, p := range f.slips {
		if filters.EmployeeID != nil && p.EmployeeID != *filters.EmployeeID {
			continue
		}
		if filters.Period != "" && p.Period != filters.Period {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Payslip, error) {
	p, ok := f.slips[id]
	if !ok {
		return Payslip{}, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Create(_ context.Context, p Payslip) (Payslip, error) {
	for _, existing := range f.slips {
		if existing.EmployeeID == p.EmployeeID && existing.Period == p.Period {
			return Payslip{}, shared.ErrDuplicate
		}
	}
	p.ID = f.nextID
	f.nextID++
	p.NetCents = p.GrossCents - p.DeductionCents
	p.CreatedAt = time.Now()
	f.slips[p.ID] = p
	return p, nil
}

func (f *fakeRepo) SetStatus(_ context.Context, id int64, status string, issuedAt *time.Time) error {
	p, ok := f.slips[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Status = status
	if issuedAt != nil {
		p.IssuedAt = *issuedAt
	}
	f.slips[id] = p
	return nil
}

func newTestService(repo Repository, issuer Issuer) *Service {
	return NewService(repo, issuer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeIssuer struct {
	notified []int64
	fail     bool
}

func (f *fakeIssuer) NotifyIssued(_ context.Context, payslipID, _ int64, _ string) error {
	if f.fail {
		return fmt.Errorf("queue unavailable")
	}
	f.notified = append(f.notified, payslipID)
	return nil
}

func TestCreatePayslip(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeIssuer{})

	created, err := svc.Create(context.Background(), Payslip{
		EmployeeID:     7,
		Period:         "2026-08",
		GrossCents:     150000,
		DeductionCents: 26544,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, int64(123456), created.NetCents)
	assert.Equal(t, "$1,234.56", created.NetFormatted)
}

func TestCreatePayslipValidation(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeIssuer{})
	ctx := context.Background()

	_, err := svc.Create(ctx, Payslip{EmployeeID: 1, Period: "August 2026", GrossCents: 100})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, Payslip{Period: "2026-08", GrossCents: 100})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, Payslip{EmployeeID: 1, Period: "2026-08", GrossCents: 100, DeductionCents: 200})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreatePayslipDuplicatePeriod(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeIssuer{})
	ctx := context.Background()

	_, err := svc.Create(ctx, Payslip{EmployeeID: 7, Period: "2026-08", GrossCents: 100})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Payslip{EmployeeID: 7, Period: "2026-08", GrossCents: 100})
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestIssuePayslip(t *testing.T) {
	repo := newFakeRepo()
	issuer := &fakeIssuer{}
	svc := newTestService(repo, issuer)
	ctx := context.Background()

	created, err := svc.Create(ctx, Payslip{EmployeeID: 7, Period: "2026-08", GrossCents: 100})
	require.NoError(t, err)

	require.NoError(t, svc.Issue(ctx, created.ID))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, got.Status)
	assert.False(t, got.IssuedAt.IsZero())
	assert.Equal(t, []int64{created.ID}, issuer.notified)

	err = svc.Issue(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestIssuePayslipNotifyFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	var logs bytes.Buffer
	svc := NewService(repo, &fakeIssuer{fail: true}, slog.New(slog.NewTextHandler(&logs, nil)))
	ctx := context.Background()

	created, err := svc.Create(ctx, Payslip{EmployeeID: 7, Period: "2026-08", GrossCents: 100})
	require.NoError(t, err)

	require.NoError(t, svc.Issue(ctx, created.ID))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, got.Status)
	assert.Contains(t, logs.String(), "payslip notification enqueue failed")
}

func TestMarkPaid(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeIssuer{})
	ctx := context.Background()

	created, err := svc.Create(ctx, Payslip{EmployeeID: 7, Period: "2026-08", GrossCents: 100})
	require.NoError(t, err)

	err = svc.MarkPaid(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	require.NoError(t, svc.Issue(ctx, created.ID))
	require.NoError(t, svc.MarkPaid(ctx, created.ID))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Status)
}

func TestMarkPaidMissingPayslip(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeIssuer{})
	err := svc.MarkPaid(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.False(t, errors.Is(err, shared.ErrInvalidTransition))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatAmount(123456, "USD"), "no space between symbol and amount")
	assert.Equal(t, "$0.99", FormatAmount(99, "USD"))
	assert.Equal(t, "€2,500.00", FormatAmount(250000, "EUR"))
	assert.Equal(t, "BOGUS 12.00", FormatAmount(1200, "BOGUS"))
}
