// Package hrclient is the typed REST client for the Meridian HR API. Each
// list call speaks the common paginated envelope and plugs into listsync as
// a data source.
package hrclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"context"
)

// ErrMalformedResponse indicates the server answered 2xx with a body that
// does not match the expected envelope.
var ErrMalformedResponse = errors.New("hrclient: malformed response")

// APIError carries a structured non-2xx response (RFC7807 problem details).
type APIError struct {
	Status int
	Title  string
	Detail string
}

// Error returns a human-readable message, falling back to a generic one when
// the payload carried none.
func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("hrclient: %s (status %d)", msg, e.Status)
}

// ListEnvelope is the paginated response shape shared by all list endpoints.
type ListEnvelope[T any] struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Items      []T `json:"items"`
}

// Client wraps interactions with the Meridian HR API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client. httpClient may be nil, in which case a
// default with a 30s timeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Ping checks whether the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hrclient: ping: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("hrclient: ping returned status %d", resp.StatusCode)
	}
	return nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values) (ListEnvelope[T], error) {
	var envelope ListEnvelope[T]

	u := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return envelope, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope, fmt.Errorf("hrclient: %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var problem struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&problem); err == nil {
			apiErr.Title = problem.Title
			apiErr.Detail = problem.Detail
		}
		return envelope, apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return envelope, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	return envelope, nil
}
