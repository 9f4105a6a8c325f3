// Package provider defines the paged-data boundary the grid engine
// fetches through.
//
// Provider is the sole contract an alternative backend must satisfy to
// plug into the engine unchanged: given a page number, page size, and
// rule sets, return one page of records plus the total matching count.
// The local implementation materializes an in-memory collection and
// evaluates the rules itself; a remote implementation would forward
// the request to a service that filters and sorts server-side.
package provider

import (
	"context"

	"github.com/helpdesklite/ticketgrid/internal/query"
	"github.com/helpdesklite/ticketgrid/internal/record"
	"github.com/helpdesklite/ticketgrid/internal/rule"
	"github.com/helpdesklite/ticketgrid/internal/storage"
)

// Request asks for one page of the filtered, sorted collection.
// Page counts from 1. PageSize <= 0 disables pagination: the whole
// filtered collection comes back as page 1.
type Request struct {
	Page     int
	PageSize int
	Sorters  []rule.Sort
	Filters  []rule.Filter
}

// Result is one page of records plus the total count of records
// matching the request's filters. len(Data) never exceeds the
// requested page size.
type Result struct {
	Data       []record.Record
	TotalCount int
}

// Provider supplies paged, filtered, sorted data.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Result, error)
}

// Func adapts a plain function to the Provider interface. This is the
// plug point for remote backends in tests and callers that do not
// need a full type.
type Func func(ctx context.Context, req Request) (Result, error)

// Fetch calls the wrapped function.
func (f Func) Fetch(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// Slice is the local Provider: it snapshots a backing collection at
// call time, applies filter then sort via the query evaluator, and
// slices out the requested page. Each Fetch is independent and
// stateless over its snapshot, so concurrent calls are safe.
type Slice struct {
	snapshot func() []record.Record
}

// NewSlice creates a local provider over a snapshot function. The
// function is invoked once per Fetch so each call observes the backing
// collection as of that moment.
func NewSlice(snapshot func() []record.Record) *Slice {
	return &Slice{snapshot: snapshot}
}

// FromRecords creates a local provider over a fixed collection.
func FromRecords(records []record.Record) *Slice {
	return NewSlice(func() []record.Record { return records })
}

// FromStore creates a local provider reading the collection from a
// storage strategy on every fetch.
func FromStore(st storage.Store) *Slice {
	return NewSlice(st.List)
}

// Fetch materializes the snapshot, evaluates the rules, and returns
// the requested page.
func (s *Slice) Fetch(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	records := query.Filter(s.snapshot(), req.Filters)
	records = query.Sort(records, req.Sorters)
	total := len(records)

	if req.PageSize <= 0 {
		return Result{Data: records, TotalCount: total}, nil
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * req.PageSize
	if start >= total {
		return Result{Data: []record.Record{}, TotalCount: total}, nil
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}
	return Result{Data: records[start:end], TotalCount: total}, nil
}
