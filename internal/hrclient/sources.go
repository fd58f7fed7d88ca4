package hrclient

import (
	"context"
	"strconv"

	"github.com/meridian-hr/meridian-hr/internal/listsync"
)

// Toggle is a tri-state boolean filter with an explicit unset variant.
type Toggle string

// Toggle variants.
const (
	ToggleUnset Toggle = ""
	ToggleOn    Toggle = "true"
	ToggleOff   Toggle = "false"
)

// OpeningFilters enumerates the categorical filters of the openings list.
type OpeningFilters struct {
	DepartmentID int64
	Location     string
	Status       string
}

// Values renders the set as query parameters; unset fields are omitted.
func (f OpeningFilters) Values() map[string]string {
	values := map[string]string{
		"location": f.Location,
		"status":   f.Status,
	}
	if f.DepartmentID > 0 {
		values["department_id"] = strconv.FormatInt(f.DepartmentID, 10)
	}
	return values
}

// ApplicationFilters enumerates the categorical filters of the applications list.
type ApplicationFilters struct {
	OpeningID int64
	Status    string
	Source    string
}

// Values renders the set as query parameters; unset fields are omitted.
func (f ApplicationFilters) Values() map[string]string {
	values := map[string]string{
		"status": f.Status,
		"source": f.Source,
	}
	if f.OpeningID > 0 {
		values["opening_id"] = strconv.FormatInt(f.OpeningID, 10)
	}
	return values
}

// EmployeeFilters enumerates the categorical filters of the employee directory.
type EmployeeFilters struct {
	DepartmentID int64
	Location     string
	IsActive     Toggle
}

// Values renders the set as query parameters; unset fields are omitted.
func (f EmployeeFilters) Values() map[string]string {
	values := map[string]string{
		"location":  f.Location,
		"is_active": string(f.IsActive),
	}
	if f.DepartmentID > 0 {
		values["department_id"] = strconv.FormatInt(f.DepartmentID, 10)
	}
	return values
}

type listSource[T any] struct {
	client *Client
	path   string
}

// Fetch issues the paginated list request described by q.
func (s listSource[T]) Fetch(ctx context.Context, q listsync.Query) (listsync.Page[T], error) {
	envelope, err := getList[T](ctx, s.client, s.path, q.Values())
	if err != nil {
		return listsync.Page[T]{}, err
	}
	return listsync.Page[T]{
		Items:      envelope.Items,
		Total:      envelope.Total,
		TotalPages: envelope.TotalPages,
	}, nil
}

// Openings returns the listsync data source for the job openings list.
func (c *Client) Openings() listsync.Source[Opening] {
	return listSource[Opening]{client: c, path: "/api/openings"}
}

// Applications returns the listsync data source for the applications list.
func (c *Client) Applications() listsync.Source[Application] {
	return listSource[Application]{client: c, path: "/api/applications"}
}

// Employees returns the listsync data source for the employee directory.
func (c *Client) Employees() listsync.Source[Employee] {
	return listSource[Employee]{client: c, path: "/api/employees"}
}
