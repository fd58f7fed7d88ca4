package listsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFilters struct {
	Department string
	Status     string
}

func (f testFilters) Values() map[string]string {
	return map[string]string{
		"department": f.Department,
		"status":     f.Status,
	}
}

func TestReduceFilterChangesResetPage(t *testing.T) {
	s := NewState[testFilters](10)
	s.Page = 7

	events := []Event{
		SetSearch{Search: "gopher"},
		SetFilters[testFilters]{Filters: testFilters{Department: "Engineering"}},
		SetPageSize{PageSize: 25},
	}
	for _, ev := range events {
		next := Reduce(s, ev)
		assert.Equal(t, 1, next.Page, "event %T must reset page", ev)
	}
}

func TestReducePageChangeDoesNotReset(t *testing.T) {
	s := NewState[testFilters](10)
	s.Search = "gopher"
	s.Filters = testFilters{Department: "Engineering"}

	next := Reduce(s, SetPage{Page: 4})
	require.Equal(t, 4, next.Page)
	assert.Equal(t, "gopher", next.Search)
	assert.Equal(t, s.Filters, next.Filters)
	assert.Equal(t, 10, next.PageSize)
}

func TestReduceNoOpReturnsIdenticalState(t *testing.T) {
	s := NewState[testFilters](10)
	s.Search = "gopher"
	s.Page = 3

	assert.Equal(t, s, Reduce(s, SetSearch{Search: "gopher"}))
	assert.Equal(t, s, Reduce(s, SetFilters[testFilters]{}))
	assert.Equal(t, s, Reduce(s, SetPageSize{PageSize: 10}))
}

func TestReduceClampsInvalidInputs(t *testing.T) {
	s := NewState[testFilters](10)

	next := Reduce(s, SetPage{Page: -2})
	assert.Equal(t, 1, next.Page)

	next = Reduce(s, SetPageSize{PageSize: -1})
	assert.Equal(t, 0, next.PageSize)
	assert.Equal(t, 1, next.Page)
}

func TestBuildQueryOmitsUnsetFilters(t *testing.T) {
	s := NewState[testFilters](10)
	s.Search = "gopher"
	s.Filters = testFilters{Department: "Engineering"}
	s.Page = 2

	q := BuildQuery(s)
	require.Equal(t, map[string]string{"department": "Engineering"}, q.Params)
	assert.Equal(t, "gopher", q.Search)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.PageSize)
}

func TestQueryValuesEncoding(t *testing.T) {
	q := Query{
		Search:   "gopher",
		Params:   map[string]string{"status": "open"},
		Page:     3,
		PageSize: 25,
	}
	values := q.Values()
	assert.Equal(t, "gopher", values.Get("search"))
	assert.Equal(t, "open", values.Get("status"))
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "25", values.Get("page_size"))

	unbounded := Query{Page: 1}
	values = unbounded.Values()
	assert.Empty(t, values.Get("search"))
	assert.Empty(t, values.Get("page_size"))
	assert.Equal(t, "1", values.Get("page"))
}
