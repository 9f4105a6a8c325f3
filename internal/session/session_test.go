package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesklite/ticketgrid/internal/grid"
	"github.com/helpdesklite/ticketgrid/internal/provider"
	"github.com/helpdesklite/ticketgrid/internal/record"
	"github.com/helpdesklite/ticketgrid/internal/rule"
)

func newEngine(t *testing.T) *grid.Engine {
	t.Helper()
	records := make([]record.Record, 0, 4)
	for i := 1; i <= 4; i++ {
		records = append(records, record.Record{
			"id":          fmt.Sprintf("t%d", i),
			"subject":     fmt.Sprintf("subject %d", i),
			"dateCreated": fmt.Sprintf("2026-01-%02dT10:00:00Z", i),
		})
	}
	e := grid.New(provider.FromRecords(records), grid.WithPageSize(10))
	e.Refresh(context.Background())
	return e
}

func TestFilterSession_SeedsBlankRowWhenNoFiltersCommitted(t *testing.T) {
	s := NewFilterSession(newEngine(t))
	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Column)
	assert.Empty(t, rows[0].Value)
}

func TestFilterSession_SeedsFromCommittedFilters(t *testing.T) {
	e := newEngine(t)
	e.SetFilters(context.Background(), []rule.Filter{
		{Column: "subject", Relation: rule.Contains, Value: "2"},
	})

	s := NewFilterSession(e)
	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "subject", rows[0].Column)
}

func TestFilterSession_ApplyDropsBlankValuedRows(t *testing.T) {
	e := newEngine(t)
	s := NewFilterSession(e)

	s.SetRow(0, rule.Filter{Column: "subject", Relation: rule.Contains, Value: "subject"})
	s.Add()
	s.SetRow(1, rule.Filter{Column: "email", Relation: rule.Equals, Value: ""})

	s.Apply(context.Background())

	snap := e.Snapshot()
	require.Len(t, snap.Filters, 1, "blank-valued rows are never submitted as rules")
	assert.Equal(t, "subject", snap.Filters[0].Column)
	assert.Equal(t, 4, snap.TotalCount)
}

func TestFilterSession_ApplyResetsEngineToPageOne(t *testing.T) {
	e := newEngine(t)
	s := NewFilterSession(e)
	s.SetRow(0, rule.Filter{Column: "subject", Relation: rule.Contains, Value: "subject 3"})
	s.Apply(context.Background())

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, 1, snap.TotalCount)
}

func TestFilterSession_AllRowsBlankCommitsEmptySet(t *testing.T) {
	e := newEngine(t)
	e.SetFilters(context.Background(), []rule.Filter{
		{Column: "subject", Relation: rule.Contains, Value: "subject 1"},
	})

	s := NewFilterSession(e)
	s.SetRow(0, rule.Filter{Column: "subject", Relation: rule.Contains, Value: ""})
	s.Apply(context.Background())

	snap := e.Snapshot()
	assert.Empty(t, snap.Filters)
	assert.Equal(t, 4, snap.TotalCount)
}

func TestFilterSession_EditsStayInBufferUntilApply(t *testing.T) {
	e := newEngine(t)
	s := NewFilterSession(e)
	s.SetRow(0, rule.Filter{Column: "subject", Relation: rule.Contains, Value: "subject 1"})
	s.Add()
	s.Remove(1)

	assert.Empty(t, e.Snapshot().Filters, "engine state is never partially updated mid-edit")
}

func TestFilterSession_Discard(t *testing.T) {
	e := newEngine(t)
	committed := []rule.Filter{{Column: "email", Relation: rule.Equals, Value: "x"}}
	e.SetFilters(context.Background(), committed)

	s := NewFilterSession(e)
	s.SetRow(0, rule.Filter{Column: "subject", Relation: rule.Contains, Value: "scratch"})
	s.Discard()

	assert.Equal(t, committed, s.Rows())
	assert.Equal(t, committed, e.Snapshot().Filters)
}

func TestFilterSession_Reset(t *testing.T) {
	e := newEngine(t)
	e.SetFilters(context.Background(), []rule.Filter{
		{Column: "subject", Relation: rule.Contains, Value: "subject 1"},
	})

	s := NewFilterSession(e)
	s.Reset(context.Background())

	assert.Empty(t, e.Snapshot().Filters)
	assert.Equal(t, 4, e.Snapshot().TotalCount)
	require.Len(t, s.Rows(), 1)
	assert.Empty(t, s.Rows()[0].Value)
}

func TestSortSession_SeedsFromCommitted(t *testing.T) {
	s := NewSortSession(newEngine(t))
	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, rule.DefaultSorters()[0], rows[0])
}

func TestSortSession_ApplyDropsColumnlessRows(t *testing.T) {
	e := newEngine(t)
	s := NewSortSession(e)
	s.SetRow(0, rule.Sort{Column: "subject", Direction: rule.Ascending})
	s.Add()

	s.Apply(context.Background())

	snap := e.Snapshot()
	require.Len(t, snap.Sorters, 1)
	assert.Equal(t, "subject", snap.Sorters[0].Column)
	assert.Equal(t, "t1", snap.Data[0].Key())
}

func TestSortSession_ResetCommitsDefaultChain(t *testing.T) {
	e := newEngine(t)
	e.SetSorters(context.Background(), []rule.Sort{{Column: "subject", Direction: rule.Ascending}})

	s := NewSortSession(e)
	s.Reset(context.Background())

	snap := e.Snapshot()
	assert.Equal(t, rule.DefaultSorters(), snap.Sorters)
	assert.Equal(t, "t4", snap.Data[0].Key(), "default chain shows newest tickets first")
}

func TestSortSession_RemoveOutOfRangeIgnored(t *testing.T) {
	s := NewSortSession(newEngine(t))
	s.Remove(5)
	s.Remove(-1)
	assert.Len(t, s.Rows(), 1)
}
