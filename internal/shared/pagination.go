package shared

import "math"

// DefaultPageSize is used when a list request does not specify one.
const DefaultPageSize = 10

// MaxPageSize caps the per-page row count accepted from clients.
const MaxPageSize = 50

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata. A pageSize of 0 is the
// documented "unbounded" sentinel: every matching row comes back on a single
// page and TotalPages is 1.
func NewPagination(page, pageSize, total int) Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		return Pagination{Page: 1, PageSize: 0, Total: total, TotalPages: 1}
	}
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	if p.PageSize <= 0 {
		return 0
	}
	off := (p.Page - 1) * p.PageSize
	if off < 0 {
		return 0
	}
	return off
}
