package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/attendance"
	"github.com/meridian-hr/meridian-hr/internal/observability"
)

// SummaryWarmupJob pre-populates the attendance summary cache for every
// active employee, so month-end dashboard loads skip the aggregate query.
type SummaryWarmupJob struct {
	Attendance *attendance.Service
	Pool       *pgxpool.Pool
	Logger     *slog.Logger
	Metrics    *observability.Metrics
	clock      func() time.Time
}

// NewSummaryWarmupJob wires dependencies for the warmup handler.
func NewSummaryWarmupJob(svc *attendance.Service, pool *pgxpool.Pool, logger *slog.Logger, metrics *observability.Metrics) *SummaryWarmupJob {
	return &SummaryWarmupJob{
		Attendance: svc,
		Pool:       pool,
		Logger:     logger,
		Metrics:    metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes attendance warmup tasks.
func (j *SummaryWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("summary warmup: handler not configured")
	}
	var payload SummaryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Month == "" {
		payload.Month = attendance.CurrentMonth(j.clock())
	}

	var resultErr error
	defer func() {
		j.Metrics.ObserveJob(TaskAttendanceSummaryWarmup, resultErr)
	}()

	logger := j.Logger.With(slog.String("month", payload.Month))
	logger.Info("starting attendance summary warmup")

	ids, err := j.activeEmployeeIDs(ctx)
	if err != nil {
		resultErr = err
		logger.Error("load active employees", slog.Any("error", err))
		return resultErr
	}

	warmed := 0
	for _, id := range ids {
		if err := j.Attendance.WarmSummary(ctx, id, payload.Month); err != nil {
			resultErr = err
			logger.Error("warm summary", slog.Int64("employee_id", id), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("attendance summary warmup finished", slog.Int("warmed", warmed))
	return nil
}

func (j *SummaryWarmupJob) activeEmployeeIDs(ctx context.Context) ([]int64, error) {
	rows, err := j.Pool.Query(ctx, `SELECT id FROM employees WHERE is_active`)
	if err != nil {
		return nil, fmt.Errorf("jobs: active employees: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
