package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-hr/meridian-hr/internal/observability"
)

// PayslipNotifyJob tells an employee their payslip is ready.
type PayslipNotifyJob struct {
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// NewPayslipNotifyJob wires dependencies for the notification handler.
func NewPayslipNotifyJob(logger *slog.Logger, metrics *observability.Metrics) *PayslipNotifyJob {
	return &PayslipNotifyJob{Logger: logger, Metrics: metrics}
}

// Handle processes payslip notification tasks.
func (j *PayslipNotifyJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("payslip notify: handler not configured")
	}
	var payload PayslipIssuedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.PayslipID == 0 || payload.EmployeeID == 0 {
		return asynq.SkipRetry
	}

	var resultErr error
	defer func() {
		j.Metrics.ObserveJob(TaskPayslipIssuedEmail, resultErr)
	}()

	// Placeholder: deliver via SMTP once the mail transport lands.
	j.Logger.Info("payslip issued notification",
		slog.Int64("payslip_id", payload.PayslipID),
		slog.Int64("employee_id", payload.EmployeeID),
		slog.String("period", payload.Period))
	return nil
}
