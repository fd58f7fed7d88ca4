package listsync

import (
	"context"
	"sync"

	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Page is one page of results as returned by a data source. TotalPages is 0
// when the server did not provide it; the coordinator derives it in that case.
type Page[T any] struct {
	Items      []T
	Total      int
	TotalPages int
}

// Source is the external paginated data source a coordinator fetches from.
type Source[T any] interface {
	Fetch(ctx context.Context, q Query) (Page[T], error)
}

// ViewModel is the materialized, render-ready result of the most recent
// successful fetch. It is replaced wholesale on success and left untouched on
// failure, so a failed refresh keeps showing the previous consistent page.
type ViewModel[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Config collects the collaborators of a Coordinator.
type Config[F FilterSet, T any] struct {
	Source   Source[T]
	PageSize int
	// OnUpdate is invoked after the view model is replaced. Optional.
	OnUpdate func(ViewModel[T])
	// OnError is invoked when a fetch fails and its result was not stale.
	// Optional; errors are never retried automatically.
	OnError func(error)
}

// Coordinator owns one list view's state and view model. Every state
// transition issues exactly one fetch tagged with a monotonically increasing
// sequence number; only the response matching the latest issued sequence is
// applied, so an earlier in-flight response can never overwrite a newer one.
type Coordinator[F FilterSet, T any] struct {
	source   Source[T]
	onUpdate func(ViewModel[T])
	onError  func(error)

	mu     sync.Mutex
	state  State[F]
	vm     ViewModel[T]
	seq    uint64
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCoordinator constructs a coordinator. No fetch is issued until Refresh
// or the first Dispatch.
func NewCoordinator[F FilterSet, T any](cfg Config[F, T]) *Coordinator[F, T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator[F, T]{
		source:   cfg.Source,
		onUpdate: cfg.OnUpdate,
		onError:  cfg.OnError,
		state:    NewState[F](cfg.PageSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Dispatch applies an event to the filter state. A transition to a distinct
// state issues a fetch; a no-op event issues nothing.
func (c *Coordinator[F, T]) Dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	next := Reduce(c.state, ev)
	if next == c.state {
		return
	}
	c.state = next
	c.fetchLocked()
}

// Refresh re-issues the query for the current state. Used for the mount
// fetch and for manual retry after a failure.
func (c *Coordinator[F, T]) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.fetchLocked()
}

// Close cancels any in-flight fetch. Late results are discarded silently;
// no error is surfaced, mirroring a view unmount.
func (c *Coordinator[F, T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// Wait blocks until all issued fetches have been resolved and applied or
// discarded.
func (c *Coordinator[F, T]) Wait() {
	c.wg.Wait()
}

// State returns a copy of the current filter state.
func (c *Coordinator[F, T]) State() State[F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ViewModel returns the current view model. Items must be treated as
// read-only by consumers.
func (c *Coordinator[F, T]) ViewModel() ViewModel[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vm
}

func (c *Coordinator[F, T]) fetchLocked() {
	c.seq++
	seq := c.seq
	query := BuildQuery(c.state)
	c.wg.Add(1)
	go c.run(seq, query)
}

func (c *Coordinator[F, T]) run(seq uint64, query Query) {
	defer c.wg.Done()

	page, err := c.source.Fetch(c.ctx, query)

	var (
		notifyErr    error
		notifyUpdate *ViewModel[T]
	)

	c.mu.Lock()
	switch {
	case c.closed || c.ctx.Err() != nil:
		// Unmounted while in flight: drop the result, surface nothing.
	case seq != c.seq:
		// A newer request was issued; this result is stale either way.
	case err != nil:
		// Previous view model stays intact; the page is not reset.
		notifyErr = err
	default:
		totalPages := page.TotalPages
		if totalPages <= 0 {
			totalPages = shared.NewPagination(query.Page, query.PageSize, page.Total).TotalPages
		}
		if query.Page > totalPages && query.Page > 1 {
			// The result set shrank under us; clamp to page 1 and refetch.
			// The previous view model stays visible until that lands.
			c.state.Page = 1
			c.fetchLocked()
		} else {
			c.vm = ViewModel[T]{
				Items:      page.Items,
				Total:      page.Total,
				Page:       query.Page,
				PageSize:   query.PageSize,
				TotalPages: totalPages,
			}
			vm := c.vm
			notifyUpdate = &vm
		}
	}
	onError, onUpdate := c.onError, c.onUpdate
	c.mu.Unlock()

	if notifyErr != nil && onError != nil {
		onError(notifyErr)
	}
	if notifyUpdate != nil && onUpdate != nil {
		onUpdate(*notifyUpdate)
	}
}
