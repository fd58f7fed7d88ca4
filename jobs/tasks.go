package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAttendanceSummaryWarmup recomputes cached monthly attendance summaries.
	TaskAttendanceSummaryWarmup = "attendance:summary_warmup"
	// TaskPayslipIssuedEmail notifies an employee that a payslip was issued.
	TaskPayslipIssuedEmail = "payslip:issued_email"
)

// SummaryWarmupPayload selects the month to warm. An empty month means the
// current one.
type SummaryWarmupPayload struct {
	Month string `json:"month"`
}

// NewSummaryWarmupTask constructs an attendance warmup task.
func NewSummaryWarmupTask(payload SummaryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAttendanceSummaryWarmup, data), nil
}

// PayslipIssuedPayload describes an issued payslip to notify about.
type PayslipIssuedPayload struct {
	PayslipID  int64  `json:"payslip_id"`
	EmployeeID int64  `json:"employee_id"`
	Period     string `json:"period"`
}

// NewPayslipIssuedTask constructs a payslip notification task.
func NewPayslipIssuedTask(payload PayslipIssuedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPayslipIssuedEmail, data), nil
}
