// Package listsync implements the filter/pagination state machine shared by
// paginated list views: a pure reducer over filter state plus a coordinator
// that maps each state transition to at most one authoritative outstanding
// fetch against a paginated data source.
package listsync

// FilterSet is a closed, per-view set of categorical filters. Each view
// declares its own struct enumerating every recognized filter key; the zero
// value of a field means the filter is unset. Values renders the set as
// query parameters, omitting unset entries.
type FilterSet interface {
	comparable
	Values() map[string]string
}

// State holds the user-controlled inputs of a single list view.
type State[F FilterSet] struct {
	Search   string
	Filters  F
	Page     int
	PageSize int
}

// NewState returns a State positioned on page 1.
func NewState[F FilterSet](pageSize int) State[F] {
	if pageSize < 0 {
		pageSize = 0
	}
	return State[F]{Page: 1, PageSize: pageSize}
}

// Event mutates list state through Reduce.
type Event interface {
	isEvent()
}

// SetSearch replaces the free-text search term.
type SetSearch struct {
	Search string
}

// SetFilters replaces the categorical filter set wholesale.
type SetFilters[F FilterSet] struct {
	Filters F
}

// SetPage moves to another page of the current result set.
type SetPage struct {
	Page int
}

// SetPageSize changes the rows-per-page count. 0 is the unbounded sentinel.
type SetPageSize struct {
	PageSize int
}

func (SetSearch) isEvent()      {}
func (SetFilters[F]) isEvent()  {}
func (SetPage) isEvent()        {}
func (SetPageSize) isEvent()    {}

// Reduce applies an event to the state. Changing search, filters, or page
// size identifies a different result set, so the page resets to 1; changing
// the page alone never does. A no-op event returns the input state unchanged
// so callers can suppress redundant fetches by comparing states.
func Reduce[F FilterSet](s State[F], ev Event) State[F] {
	switch e := ev.(type) {
	case SetSearch:
		if e.Search == s.Search {
			return s
		}
		s.Search = e.Search
		s.Page = 1
	case SetFilters[F]:
		if e.Filters == s.Filters {
			return s
		}
		s.Filters = e.Filters
		s.Page = 1
	case SetPage:
		page := e.Page
		if page < 1 {
			page = 1
		}
		s.Page = page
	case SetPageSize:
		size := e.PageSize
		if size < 0 {
			size = 0
		}
		if size == s.PageSize {
			return s
		}
		s.PageSize = size
		s.Page = 1
	}
	return s
}
