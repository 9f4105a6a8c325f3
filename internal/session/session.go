// Package session provides transient editing buffers for grid rules.
//
// A session holds a disposable working copy of the engine's committed
// rule set. Rows are added, removed, and edited in the buffer; nothing
// reaches the engine until Apply or Reset commits the whole set
// atomically. Discarding a session leaves the engine untouched.
package session

import (
	"context"

	"github.com/helpdesklite/ticketgrid/internal/grid"
	"github.com/helpdesklite/ticketgrid/internal/rule"
)

// FilterSession stages filter rule rows for a grid engine.
type FilterSession struct {
	engine *grid.Engine
	rows   []rule.Filter
}

// NewFilterSession seeds a session from the engine's committed filter
// set, or one blank row when no filters are committed.
func NewFilterSession(e *grid.Engine) *FilterSession {
	rows := e.Snapshot().Filters
	if len(rows) == 0 {
		rows = []rule.Filter{{Relation: rule.Contains}}
	}
	return &FilterSession{engine: e, rows: rows}
}

// Rows returns a copy of the staged rows; edit rows through SetRow.
func (s *FilterSession) Rows() []rule.Filter {
	return rule.CopyFilters(s.rows)
}

// Add appends a blank row to the buffer.
func (s *FilterSession) Add() {
	s.rows = append(s.rows, rule.Filter{Relation: rule.Contains})
}

// Remove deletes row i. Out-of-range indexes are ignored.
func (s *FilterSession) Remove(i int) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
}

// SetRow replaces row i. Out-of-range indexes are ignored.
func (s *FilterSession) SetRow(i int, f rule.Filter) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	s.rows[i] = f
}

// Apply commits the buffer: rows with an empty value are silently
// dropped (a half-filled row is not a rule), and the remaining rules
// replace the engine's filter set wholesale, resetting it to page 1.
func (s *FilterSession) Apply(ctx context.Context) {
	rules := make([]rule.Filter, 0, len(s.rows))
	for _, row := range s.rows {
		if row.Value == "" {
			continue
		}
		rules = append(rules, row)
	}
	s.engine.SetFilters(ctx, rules)
}

// Reset commits an empty filter set and discards the buffer contents,
// reseeding with one blank row.
func (s *FilterSession) Reset(ctx context.Context) {
	s.rows = []rule.Filter{{Relation: rule.Contains}}
	s.engine.SetFilters(ctx, nil)
}

// Discard abandons the buffer without touching the engine. The
// session is reseeded from the committed set, so a reopened editor
// shows committed state again.
func (s *FilterSession) Discard() {
	s.rows = s.engine.Snapshot().Filters
	if len(s.rows) == 0 {
		s.rows = []rule.Filter{{Relation: rule.Contains}}
	}
}

// SortSession stages sort rule rows for a grid engine.
type SortSession struct {
	engine *grid.Engine
	rows   []rule.Sort
}

// NewSortSession seeds a session from the engine's committed sort
// chain, or one default row when the chain is empty.
func NewSortSession(e *grid.Engine) *SortSession {
	rows := e.Snapshot().Sorters
	if len(rows) == 0 {
		rows = rule.DefaultSorters()
	}
	return &SortSession{engine: e, rows: rows}
}

// Rows returns a copy of the staged rows.
func (s *SortSession) Rows() []rule.Sort {
	return rule.CopySorters(s.rows)
}

// Add appends a blank ascending row to the buffer.
func (s *SortSession) Add() {
	s.rows = append(s.rows, rule.Sort{Direction: rule.Ascending})
}

// Remove deletes row i. Out-of-range indexes are ignored.
func (s *SortSession) Remove(i int) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
}

// SetRow replaces row i. Out-of-range indexes are ignored.
func (s *SortSession) SetRow(i int, r rule.Sort) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	s.rows[i] = r
}

// Apply commits the buffer: rows without a column are dropped, and
// the remaining chain replaces the engine's sorters wholesale.
func (s *SortSession) Apply(ctx context.Context) {
	rules := make([]rule.Sort, 0, len(s.rows))
	for _, row := range s.rows {
		if row.Column == "" {
			continue
		}
		rules = append(rules, row)
	}
	s.engine.SetSorters(ctx, rules)
}

// Reset commits the default sort chain (newest tickets first) and
// reseeds the buffer with it.
func (s *SortSession) Reset(ctx context.Context) {
	s.rows = rule.DefaultSorters()
	s.engine.SetSorters(ctx, rule.DefaultSorters())
}

// Discard abandons the buffer without touching the engine.
func (s *SortSession) Discard() {
	s.rows = s.engine.Snapshot().Sorters
	if len(s.rows) == 0 {
		s.rows = rule.DefaultSorters()
	}
}
