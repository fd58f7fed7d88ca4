package attendance

import "time"

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusRemote  = "remote"
	StatusLeave   = "leave"
	StatusAbsent  = "absent"
)

// Record is one employee's attendance entry for a calendar day.
type Record struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Day          time.Time `json:"day"`
	Status       string    `json:"status"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MonthlySummary aggregates an employee's statuses over one YYYY-MM period.
type MonthlySummary struct {
	EmployeeID int64  `json:"employee_id"`
	Month      string `json:"month"`
	Present    int    `json:"present"`
	Remote     int    `json:"remote"`
	Leave      int    `json:"leave"`
	Absent     int    `json:"absent"`
	Total      int    `json:"total"`
}

// ListFilters holds the recognized filters of the attendance list endpoint.
type ListFilters struct {
	Page       int
	PageSize   int
	EmployeeID *int64
	Status     string
	From       *time.Time
	To         *time.Time
}
