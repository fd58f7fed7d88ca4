package applications

import "time"

// Application statuses.
const (
	StatusReceived  = "received"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusHired     = "hired"
	StatusRejected  = "rejected"
)

// Application sources.
const (
	SourcePortal   = "portal"
	SourceReferral = "referral"
	SourceAgency   = "agency"
)

// Application is a candidate's application against an opening.
type Application struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	OpeningID      int64     `json:"opening_id"`
	OpeningTitle   string    `json:"opening_title"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	ResumeURL      string    `json:"resume_url"`
	Status         string    `json:"status"`
	Source         string    `json:"source"`
	AppliedAt      time.Time `json:"applied_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListFilters holds the recognized filters of the applications list endpoint.
type ListFilters struct {
	Page      int
	PageSize  int
	Search    string
	OpeningID *int64
	Status    string
	Source    string
}

// pipeline encodes the forward path of an application. Rejection is allowed
// from any non-terminal status.
var pipeline = map[string]string{
	StatusReceived:  StatusScreening,
	StatusScreening: StatusInterview,
	StatusInterview: StatusOffer,
	StatusOffer:     StatusHired,
}

func transitionAllowed(from, to string) bool {
	if from == StatusHired || from == StatusRejected {
		return false
	}
	if to == StatusRejected {
		return true
	}
	return pipeline[from] == to
}

func validSource(source string) bool {
	switch source {
	case SourcePortal, SourceReferral, SourceAgency:
		return true
	}
	return false
}
