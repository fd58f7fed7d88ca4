package shared

import (
	"net/http"
	"strconv"
)

// ParsePagination extracts page and page_size from a list request.
// A missing page_size falls back to the default; an explicit page_size=0
// selects the unbounded sentinel. Oversized values are capped.
func ParsePagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	raw := r.URL.Query().Get("page_size")
	if raw == "" {
		return page, DefaultPageSize
	}
	pageSize, err := strconv.Atoi(raw)
	if err != nil || pageSize < 0 {
		return page, DefaultPageSize
	}
	if pageSize == 0 {
		return 1, 0
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
