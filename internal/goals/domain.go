package goals

import "time"

// Goal statuses. A goal completes automatically when progress reaches 100.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Goal tracks one employee development objective.
type Goal struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Progress     int       `json:"progress"`
	Status       string    `json:"status"`
	DueDate      time.Time `json:"due_date"`
	CompletedAt  time.Time `json:"completed_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListFilters holds the recognized filters of the goals list endpoint.
type ListFilters struct {
	Page       int
	PageSize   int
	EmployeeID *int64
	Status     string
	Category   string
}
