package payslips

import "time"

// Payslip statuses.
const (
	StatusDraft  = "draft"
	StatusIssued = "issued"
	StatusPaid   = "paid"
)

// Payslip is one employee's slip for a monthly period. Amounts are stored in
// minor units (cents).
type Payslip struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	Period         string    `json:"period"`
	Currency       string    `json:"currency"`
	GrossCents     int64     `json:"gross_cents"`
	DeductionCents int64     `json:"deduction_cents"`
	NetCents       int64     `json:"net_cents"`
	NetFormatted   string    `json:"net_formatted"`
	Status         string    `json:"status"`
	IssuedAt       time.Time `json:"issued_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListFilters holds the recognized filters of the payslips list endpoint.
type ListFilters struct {
	Page       int
	PageSize   int
	EmployeeID *int64
	Period     string
	Status     string
}
