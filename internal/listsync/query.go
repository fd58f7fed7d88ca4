package listsync

import (
	"net/url"
	"strconv"
)

// Query is the request descriptor derived from a State. Categorical filters
// are normalized: unset entries are omitted entirely rather than sent as
// sentinel strings.
type Query struct {
	Search   string
	Params   map[string]string
	Page     int
	PageSize int
}

// BuildQuery derives the request descriptor for the current state.
func BuildQuery[F FilterSet](s State[F]) Query {
	params := map[string]string{}
	for key, value := range s.Filters.Values() {
		if value == "" {
			continue
		}
		params[key] = value
	}
	page := s.Page
	if page < 1 {
		page = 1
	}
	return Query{
		Search:   s.Search,
		Params:   params,
		Page:     page,
		PageSize: s.PageSize,
	}
}

// Values encodes the query as URL parameters. page_size is omitted when the
// unbounded sentinel (0) is in effect.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for key, value := range q.Params {
		values.Set(key, value)
	}
	values.Set("page", strconv.Itoa(q.Page))
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return values
}
