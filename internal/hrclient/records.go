package hrclient

import "time"

// Opening is a published job listing.
type Opening struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	DepartmentID   int64     `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Status         string    `json:"status"`
	PostedAt       time.Time `json:"posted_at"`
}

// Application is a candidate's application against an opening.
type Application struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	OpeningID      int64     `json:"opening_id"`
	OpeningTitle   string    `json:"opening_title"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	Status         string    `json:"status"`
	Source         string    `json:"source"`
	AppliedAt      time.Time `json:"applied_at"`
}

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
}
