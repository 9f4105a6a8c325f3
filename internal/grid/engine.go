// Package grid drives a paginated, sorted, filtered view over a data
// provider.
//
// The engine owns the committed rule sets, the current page, and the
// row selection. Every mutation re-issues a fetch against the
// provider and the view reflects the most recently completed response.
// Provider failures never escape: they surface as a Failed snapshot
// with an empty view and a recoverable message.
package grid

import (
	"context"
	"log/slog"
	"sync"

	"github.com/helpdesklite/ticketgrid/internal/provider"
	"github.com/helpdesklite/ticketgrid/internal/record"
	"github.com/helpdesklite/ticketgrid/internal/rule"
)

// Phase is the engine's lifecycle state: Idle until the first fetch,
// Loading while one is in flight, then Ready or Failed.
type Phase string

const (
	// PhaseIdle means no fetch has been issued yet.
	PhaseIdle Phase = "idle"
	// PhaseLoading means at least one fetch is in flight.
	PhaseLoading Phase = "loading"
	// PhaseReady means the last completed fetch succeeded.
	PhaseReady Phase = "ready"
	// PhaseFailed means the last completed fetch failed; the view is
	// empty and Message explains why.
	PhaseFailed Phase = "failed"
)

// DefaultPageSize is the page size an engine starts with.
const DefaultPageSize = 10

// loadFailedMessage is the recoverable display message surfaced when
// the provider fails. Tickets in durable storage are unaffected; the
// next refresh can succeed.
const loadFailedMessage = "tickets could not be loaded"

// State is a point-in-time snapshot of the engine. Everything in it is
// a defensive copy: mutating a snapshot never touches the engine.
type State struct {
	Phase        Phase
	Busy         bool
	CurrentPage  int
	TotalPages   int
	PageSize     int
	TotalCount   int
	Data         []record.Record
	Sorters      []rule.Sort
	Filters      []rule.Filter
	SelectedKeys map[string]bool
	Message      string
}

// Engine orchestrates grid state over a provider.
//
// Concurrent calls are allowed to overlap; the engine applies fetch
// responses in completion order, so the view always reflects the most
// recently completed fetch - which may not be the most recently issued
// one if responses race. Callers needing strict request ordering
// serialize their own calls, e.g. by disabling controls while Busy.
type Engine struct {
	mu       sync.Mutex
	provider provider.Provider
	logger   *slog.Logger

	paginate bool
	pageSize int

	page       int
	totalCount int
	data       []record.Record
	sorters    []rule.Sort
	filters    []rule.Filter
	selected   map[string]bool

	phase    Phase
	message  string
	inFlight int
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPageSize sets the page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.pageSize = n
		}
	}
}

// WithoutPagination disables paging: every fetch returns the whole
// filtered collection and TotalPages is always 1.
func WithoutPagination() Option {
	return func(e *Engine) {
		e.paginate = false
	}
}

// WithSorters sets the initial sort chain. Default is
// rule.DefaultSorters().
func WithSorters(sorters []rule.Sort) Option {
	return func(e *Engine) {
		e.sorters = rule.CopySorters(sorters)
	}
}

// WithFilters sets the initial filter set. Default is none.
func WithFilters(filters []rule.Filter) Option {
	return func(e *Engine) {
		e.filters = rule.CopyFilters(filters)
	}
}

// WithLogger sets the logger for fetch failures. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine over a provider. The engine starts Idle with
// an empty view; call Refresh to load the first page.
func New(p provider.Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: p,
		logger:   slog.Default(),
		paginate: true,
		pageSize: DefaultPageSize,
		page:     1,
		sorters:  rule.DefaultSorters(),
		selected: make(map[string]bool),
		phase:    PhaseIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Refresh re-issues a fetch with the engine's current page and rule
// sets. Provider failures do not propagate: the engine transitions to
// Failed, empties the view, and logs the cause.
func (e *Engine) Refresh(ctx context.Context) {
	e.mu.Lock()
	req := provider.Request{
		Page:     e.page,
		PageSize: 0,
		Sorters:  rule.CopySorters(e.sorters),
		Filters:  rule.CopyFilters(e.filters),
	}
	if e.paginate {
		req.PageSize = e.pageSize
	}
	e.inFlight++
	e.phase = PhaseLoading
	e.mu.Unlock()

	// The fetch runs without the lock so overlapping refreshes can
	// proceed; responses apply below in completion order.
	res, err := e.provider.Fetch(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight--

	if err != nil {
		e.logger.Error("grid: fetch failed", "page", req.Page, "error", err)
		e.data = nil
		e.totalCount = 0
		e.phase = PhaseFailed
		e.message = loadFailedMessage
		return
	}

	e.data = res.Data
	e.totalCount = res.TotalCount
	e.phase = PhaseReady
	e.message = ""

	// Clamp the page in case the collection shrank underneath it.
	if clamped := clampPage(e.page, e.totalPagesLocked()); clamped != e.page {
		e.page = clamped
	}
}

// SetPage moves to page n, clamped into the valid range. An unchanged
// page is a no-op with no fetch; otherwise the engine refreshes.
func (e *Engine) SetPage(ctx context.Context, n int) {
	e.mu.Lock()
	n = clampPage(n, e.totalPagesLocked())
	if n == e.page {
		e.mu.Unlock()
		return
	}
	e.page = n
	e.mu.Unlock()

	e.Refresh(ctx)
}

// SetFilters replaces the filter set wholesale, resets to page 1, and
// refreshes. The rules are copied; later mutation by the caller does
// not affect the engine.
func (e *Engine) SetFilters(ctx context.Context, filters []rule.Filter) {
	e.mu.Lock()
	e.filters = rule.CopyFilters(filters)
	e.page = 1
	e.mu.Unlock()

	e.Refresh(ctx)
}

// SetSorters replaces the sort chain wholesale, resets to page 1, and
// refreshes.
func (e *Engine) SetSorters(ctx context.Context, sorters []rule.Sort) {
	e.mu.Lock()
	e.sorters = rule.CopySorters(sorters)
	e.page = 1
	e.mu.Unlock()

	e.Refresh(ctx)
}

// Select marks a record key as selected. Selection is not pruned on
// refresh; keys of since-removed records are the caller's concern.
func (e *Engine) Select(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected[key] = true
}

// Deselect unmarks a record key.
func (e *Engine) Deselect(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.selected, key)
}

// ClearSelection unmarks every key.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = make(map[string]bool)
}

// Snapshot returns a defensive copy of the engine state. Callers
// cannot mutate engine state through the returned value.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	selected := make(map[string]bool, len(e.selected))
	for k := range e.selected {
		selected[k] = true
	}

	return State{
		Phase:        e.phase,
		Busy:         e.inFlight > 0,
		CurrentPage:  e.page,
		TotalPages:   e.totalPagesLocked(),
		PageSize:     e.pageSize,
		TotalCount:   e.totalCount,
		Data:         record.CloneAll(e.data),
		Sorters:      rule.CopySorters(e.sorters),
		Filters:      rule.CopyFilters(e.filters),
		SelectedKeys: selected,
		Message:      e.message,
	}
}

// totalPagesLocked computes the page count for the current totals.
// Pagination disabled means a single page. Callers hold e.mu.
func (e *Engine) totalPagesLocked() int {
	if !e.paginate {
		return 1
	}
	pages := (e.totalCount + e.pageSize - 1) / e.pageSize
	return pages
}

// clampPage forces page into [1, max(1, totalPages)].
func clampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
