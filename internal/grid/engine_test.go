package grid

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesklite/ticketgrid/internal/provider"
	"github.com/helpdesklite/ticketgrid/internal/record"
	"github.com/helpdesklite/ticketgrid/internal/rule"
)

func seedRecords(n int) []record.Record {
	records := make([]record.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, record.Record{
			"id":          fmt.Sprintf("t%d", i),
			"subject":     fmt.Sprintf("ticket %d", i),
			"dateCreated": fmt.Sprintf("2026-01-%02dT10:00:00Z", i),
		})
	}
	return records
}

func TestEngine_StartsIdleAndEmpty(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(3)))
	snap := e.Snapshot()

	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.False(t, snap.Busy)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Empty(t, snap.Data)
}

func TestEngine_RefreshLoadsFirstPage(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(5)), WithPageSize(2))
	e.Refresh(context.Background())

	snap := e.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, 5, snap.TotalCount)
	assert.Equal(t, 3, snap.TotalPages)
	assert.Equal(t, 1, snap.CurrentPage)
	require.Len(t, snap.Data, 2)
	// Default sorters: dateCreated descending, newest first.
	assert.Equal(t, "t5", snap.Data[0].Key())
}

func TestEngine_SetPage(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(5)), WithPageSize(2))
	e.Refresh(context.Background())

	e.SetPage(context.Background(), 3)
	snap := e.Snapshot()
	assert.Equal(t, 3, snap.CurrentPage)
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "t1", snap.Data[0].Key())
}

func TestEngine_SetPageClampsOutOfRange(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(5)), WithPageSize(2))
	e.Refresh(context.Background())

	e.SetPage(context.Background(), 99)
	assert.Equal(t, 3, e.Snapshot().CurrentPage)

	e.SetPage(context.Background(), -1)
	assert.Equal(t, 1, e.Snapshot().CurrentPage)
}

func TestEngine_SetPageUnchangedIsNoFetch(t *testing.T) {
	var fetches int
	p := provider.Func(func(ctx context.Context, req provider.Request) (provider.Result, error) {
		fetches++
		return provider.Result{Data: []record.Record{}, TotalCount: 0}, nil
	})

	e := New(p)
	e.Refresh(context.Background())
	require.Equal(t, 1, fetches)

	e.SetPage(context.Background(), 1)
	assert.Equal(t, 1, fetches, "setting the current page again must not refetch")
}

func TestEngine_SetFiltersResetsToPageOne(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(10)), WithPageSize(2))
	e.Refresh(context.Background())
	e.SetPage(context.Background(), 4)
	require.Equal(t, 4, e.Snapshot().CurrentPage)

	e.SetFilters(context.Background(), []rule.Filter{
		{Column: "subject", Relation: rule.Contains, Value: "ticket 1"},
	})

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.CurrentPage, "filter mutation must reset to page 1 before fetching")
	// "ticket 1" matches t1 and t10.
	assert.Equal(t, 2, snap.TotalCount)
}

func TestEngine_SetSortersResetsToPageOne(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(6)), WithPageSize(2))
	e.Refresh(context.Background())
	e.SetPage(context.Background(), 2)

	e.SetSorters(context.Background(), []rule.Sort{{Column: "dateCreated", Direction: rule.Ascending}})

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.CurrentPage)
	require.NotEmpty(t, snap.Data)
	assert.Equal(t, "t1", snap.Data[0].Key())
}

func TestEngine_ProviderFailureSurfacesAsFailedState(t *testing.T) {
	p := provider.Func(func(ctx context.Context, req provider.Request) (provider.Result, error) {
		return provider.Result{}, errors.New("backend unavailable")
	})

	e := New(p)
	e.Refresh(context.Background())

	snap := e.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Empty(t, snap.Data)
	assert.Equal(t, 0, snap.TotalCount)
	assert.NotEmpty(t, snap.Message)
}

func TestEngine_RecoversAfterFailure(t *testing.T) {
	failing := true
	p := provider.Func(func(ctx context.Context, req provider.Request) (provider.Result, error) {
		if failing {
			return provider.Result{}, errors.New("transient")
		}
		return provider.Result{Data: seedRecords(1), TotalCount: 1}, nil
	})

	e := New(p)
	e.Refresh(context.Background())
	require.Equal(t, PhaseFailed, e.Snapshot().Phase)

	failing = false
	e.Refresh(context.Background())

	snap := e.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Empty(t, snap.Message)
	assert.Len(t, snap.Data, 1)
}

func TestEngine_PageClampedWhenCollectionShrinks(t *testing.T) {
	records := seedRecords(6)
	p := provider.NewSlice(func() []record.Record { return records })

	e := New(p, WithPageSize(2))
	e.Refresh(context.Background())
	e.SetPage(context.Background(), 3)
	require.Equal(t, 3, e.Snapshot().CurrentPage)

	records = seedRecords(2)
	e.Refresh(context.Background())

	assert.Equal(t, 1, e.Snapshot().CurrentPage, "page must clamp into the new range")
}

func TestEngine_WithoutPagination(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(25)), WithoutPagination())
	e.Refresh(context.Background())

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.TotalPages)
	assert.Len(t, snap.Data, 25)
}

func TestEngine_SnapshotIsDefensiveCopy(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(3)), WithPageSize(10))
	e.Refresh(context.Background())
	e.Select("t1")

	snap := e.Snapshot()
	snap.SelectedKeys["t2"] = true
	snap.Data[0]["subject"] = "mutated"
	snap.Sorters[0].Direction = rule.Ascending
	snap.Filters = append(snap.Filters, rule.Filter{Column: "x", Relation: rule.Equals, Value: "y"})

	fresh := e.Snapshot()
	assert.Equal(t, map[string]bool{"t1": true}, fresh.SelectedKeys)
	assert.NotEqual(t, "mutated", fresh.Data[0]["subject"])
	assert.Equal(t, rule.Descending, fresh.Sorters[0].Direction)
	assert.Empty(t, fresh.Filters)
}

func TestEngine_Selection(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(3)))

	e.Select("t1")
	e.Select("t2")
	e.Deselect("t1")
	assert.Equal(t, map[string]bool{"t2": true}, e.Snapshot().SelectedKeys)

	e.ClearSelection()
	assert.Empty(t, e.Snapshot().SelectedKeys)
}

func TestEngine_SelectionSurvivesRefresh(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(3)))
	e.Select("t2")
	e.Refresh(context.Background())
	assert.True(t, e.Snapshot().SelectedKeys["t2"])
}

func TestEngine_RuleSlicesAreCopiedOnSet(t *testing.T) {
	e := New(provider.FromRecords(seedRecords(3)), WithPageSize(10))
	filters := []rule.Filter{{Column: "subject", Relation: rule.Contains, Value: "ticket"}}
	e.SetFilters(context.Background(), filters)

	// Mutating the caller's slice must not change committed rules.
	filters[0].Value = "nothing"
	assert.Equal(t, "ticket", e.Snapshot().Filters[0].Value)
}

func TestEngine_BusyWhileFetchInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := provider.Func(func(ctx context.Context, req provider.Request) (provider.Result, error) {
		close(started)
		<-release
		return provider.Result{Data: []record.Record{}, TotalCount: 0}, nil
	})

	e := New(p)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Refresh(context.Background())
	}()

	<-started
	snap := e.Snapshot()
	assert.True(t, snap.Busy)
	assert.Equal(t, PhaseLoading, snap.Phase)

	close(release)
	wg.Wait()
	assert.False(t, e.Snapshot().Busy)
}

func TestEngine_LastCompletedFetchWins(t *testing.T) {
	// Two overlapping refreshes complete out of issue order: the view
	// must reflect whichever response landed last.
	firstIssued := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls int
	var mu sync.Mutex

	p := provider.Func(func(ctx context.Context, req provider.Request) (provider.Result, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstIssued)
			<-releaseFirst
			return provider.Result{Data: []record.Record{{"id": "stale"}}, TotalCount: 1}, nil
		}
		return provider.Result{Data: []record.Record{{"id": "fresh"}}, TotalCount: 1}, nil
	})

	e := New(p)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Refresh(context.Background())
	}()
	<-firstIssued

	// Second refresh completes while the first is still blocked.
	e.Refresh(context.Background())
	require.Equal(t, "fresh", e.Snapshot().Data[0].Key())

	// The stale response lands last and overwrites - completion order,
	// not issue order, decides.
	close(releaseFirst)
	wg.Wait()
	assert.Equal(t, "stale", e.Snapshot().Data[0].Key())
}
