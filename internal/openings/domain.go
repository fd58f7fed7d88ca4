package openings

import "time"

// Opening statuses.
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Opening is a job listing.
type Opening struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DepartmentID   int64     `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Status         string    `json:"status"`
	PostedAt       time.Time `json:"posted_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListFilters holds the recognized filters of the openings list endpoint.
type ListFilters struct {
	Page         int
	PageSize     int
	Search       string
	DepartmentID *int64
	Location     string
	Status       string
}

// allowedTransitions encodes the opening lifecycle.
var allowedTransitions = map[string][]string{
	StatusDraft:  {StatusOpen},
	StatusOpen:   {StatusClosed},
	StatusClosed: {StatusOpen},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
