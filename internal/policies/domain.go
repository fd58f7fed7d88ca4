package policies

import "time"

// Policy is a company policy document. The body is versioned: editing the
// body bumps Version and acknowledgements are tracked per version.
type Policy struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Body      string    `json:"body"`
	Version   int       `json:"version"`
	AckCount  int       `json:"ack_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListFilters holds the recognized filters of the policies list endpoint.
type ListFilters struct {
	Page     int
	PageSize int
	Search   string
	Category string
}
