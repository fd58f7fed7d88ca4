package attendance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

type fakeRepo struct {
	records        []Record
	nextID         int64
	summarizeCalls int
}

func (f *fakeRepo) List(_ context.Context, filters ListFilters) ([]Record, int, error) {
	var out []Record
	for _, rec := range f.records {
		if filters.EmployeeID != nil && rec.EmployeeID != *filters.EmployeeID {
			continue
		}
		if filters.Status != "" && rec.Status != filters.Status {
			continue
		}
		if filters.From != nil && rec.Day.Before(*filters.From) {
			continue
		}
		if filters.To != nil && rec.Day.After(*filters.To) {
			continue
		}
		out = append(out, rec)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(_ context.Context, rec Record) (Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Day.Equal(rec.Day) {
			return Record{}, shared.ErrDuplicate
		}
	}
	f.nextID++
	rec.ID = f.nextID
	rec.CreatedAt = time.Now()
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRepo) Summarize(_ context.Context, employeeID int64, month string) (MonthlySummary, error) {
	f.summarizeCalls++
	summary := MonthlySummary{EmployeeID: employeeID, Month: month}
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID || rec.Day.Format("2006-01") != month {
			continue
		}
		switch rec.Status {
		case StatusPresent:
			summary.Present++
		case StatusRemote:
			summary.Remote++
		case StatusLeave:
			summary.Leave++
		case StatusAbsent:
			summary.Absent++
		}
		summary.Total++
	}
	return summary, nil
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := &fakeRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, NewSummaryCache(client, time.Minute), logger), repo, mr
}

func TestRecordValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, Record{Day: day(t, "2026-08-03"), Status: StatusPresent})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Record(ctx, Record{EmployeeID: 1, Status: StatusPresent})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-03"), Status: "vacationing"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRecordDuplicateDay(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-03"), Status: StatusPresent})
	require.NoError(t, err)
	_, err = svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-03"), Status: StatusRemote})
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestMonthlySummaryUsesCache(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	for _, d := range []string{"2026-08-03", "2026-08-04", "2026-08-05"} {
		_, err := svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, d), Status: StatusPresent})
		require.NoError(t, err)
	}
	_, err := svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-06"), Status: StatusRemote})
	require.NoError(t, err)

	first, err := svc.MonthlySummary(ctx, 1, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 3, first.Present)
	assert.Equal(t, 1, first.Remote)
	assert.Equal(t, 4, first.Total)
	assert.Equal(t, 1, repo.summarizeCalls)

	second, err := svc.MonthlySummary(ctx, 1, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.summarizeCalls, "second read should come from cache")
}

func TestRecordInvalidatesSummary(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-03"), Status: StatusPresent})
	require.NoError(t, err)

	_, err = svc.MonthlySummary(ctx, 1, "2026-08")
	require.NoError(t, err)
	require.Equal(t, 1, repo.summarizeCalls)

	_, err = svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-04"), Status: StatusLeave})
	require.NoError(t, err)

	updated, err := svc.MonthlySummary(ctx, 1, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.summarizeCalls)
	assert.Equal(t, 1, updated.Leave)
	assert.Equal(t, 2, updated.Total)
}

func TestMonthlySummaryCacheExpiry(t *testing.T) {
	svc, repo, mr := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-03"), Status: StatusPresent})
	require.NoError(t, err)

	_, err = svc.MonthlySummary(ctx, 1, "2026-08")
	require.NoError(t, err)
	require.Equal(t, 1, repo.summarizeCalls)

	mr.FastForward(2 * time.Minute)

	_, err = svc.MonthlySummary(ctx, 1, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.summarizeCalls)
}

func TestMonthlySummaryValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.MonthlySummary(ctx, 0, "2026-08")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.MonthlySummary(ctx, 1, "August")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestWarmSummary(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, Record{EmployeeID: 1, Day: day(t, "2026-08-03"), Status: StatusAbsent})
	require.NoError(t, err)

	require.NoError(t, svc.WarmSummary(ctx, 1, "2026-08"))
	require.Equal(t, 1, repo.summarizeCalls)

	summary, err := svc.MonthlySummary(ctx, 1, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, repo.summarizeCalls, "warmed summary should be served from cache")
}
