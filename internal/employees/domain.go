package employees

import "time"

// Employee is one directory entry.
type Employee struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Position       string    `json:"position"`
	DepartmentID   int64     `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	Location       string    `json:"location"`
	IsActive       bool      `json:"is_active"`
	HiredAt        time.Time `json:"hired_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListFilters holds the recognized filters of the directory list endpoint.
// Pointer fields distinguish unset from zero.
type ListFilters struct {
	Page         int
	PageSize     int
	Search       string
	DepartmentID *int64
	Location     string
	IsActive     *bool
}
