package tableview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/simp-lee/userdir/internal/domain"
)

// fakeFetcher returns a canned page derived from the query.
type fakeFetcher struct {
	mu         sync.Mutex
	calls      []domain.ListQuery
	totalPages int
	err        error
}

func (f *fakeFetcher) ListUsers(_ context.Context, q domain.ListQuery) (*UserList, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &UserList{
		TotalUsers:  int64(f.totalPages) * int64(q.Limit),
		TotalPages:  f.totalPages,
		CurrentPage: q.Page,
		Users:       []User{{ID: 1, Name: "User 1", Email: "user1@example.com"}},
	}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// waitPhase reads states until one with the wanted phase arrives.
func waitPhase(t *testing.T, states <-chan ViewState, want Phase) ViewState {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case st := <-states:
			if st.Phase == want {
				return st
			}
		case <-deadline:
			t.Fatalf("timed out waiting for phase %v", want)
		}
	}
}

func newTestView(f Fetcher) (*View, chan ViewState) {
	states := make(chan ViewState, 32)
	v := NewView(f, func(st ViewState) { states <- st })
	return v, states
}

func TestView_StartsIdle(t *testing.T) {
	v, _ := newTestView(&fakeFetcher{totalPages: 1})

	st := v.State()
	if st.Phase != PhaseIdle {
		t.Errorf("initial phase = %v, want idle", st.Phase)
	}
	q := v.Query()
	if q.Page != 1 || q.Limit != DefaultLimit || q.OrderBy != DefaultOrderBy || q.Order != domain.OrderAsc {
		t.Errorf("default query = %+v", q)
	}
}

func TestView_RefreshLoads(t *testing.T) {
	v, states := newTestView(&fakeFetcher{totalPages: 3})

	v.Refresh()

	st := waitPhase(t, states, PhaseLoading)
	if st.Data != nil || st.Err != nil {
		t.Error("loading state must carry neither data nor error")
	}

	st = waitPhase(t, states, PhaseLoaded)
	if st.Data == nil {
		t.Fatal("loaded state must carry data")
	}
	if st.Data.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", st.Data.TotalPages)
	}
}

func TestView_FetchFailureIsDistinctState(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	v, states := newTestView(f)

	v.Refresh()
	st := waitPhase(t, states, PhaseFailed)

	if st.Err == nil {
		t.Fatal("failed state must carry the error")
	}
	if st.Data != nil {
		t.Error("failed state must not carry data")
	}
	if v.State().Phase != PhaseFailed {
		t.Errorf("State() = %v, want failed", v.State().Phase)
	}
}

func TestView_SetSearchResetsPage(t *testing.T) {
	v, states := newTestView(&fakeFetcher{totalPages: 10})

	v.SetPage(5)
	waitPhase(t, states, PhaseLoaded)

	v.SetSearch("alice")
	st := waitPhase(t, states, PhaseLoaded)

	if st.Query.Search != "alice" {
		t.Errorf("search = %q", st.Query.Search)
	}
	if st.Query.Page != 1 {
		t.Errorf("page = %d, want reset to 1", st.Query.Page)
	}
}

func TestView_SetLimitResetsPage(t *testing.T) {
	v, states := newTestView(&fakeFetcher{totalPages: 10})

	v.SetPage(4)
	waitPhase(t, states, PhaseLoaded)

	v.SetLimit(25)
	st := waitPhase(t, states, PhaseLoaded)

	if st.Query.Limit != 25 {
		t.Errorf("limit = %d, want 25", st.Query.Limit)
	}
	if st.Query.Page != 1 {
		t.Errorf("page = %d, want reset to 1", st.Query.Page)
	}
}

func TestView_PageNavigationPreservesSearchAndLimit(t *testing.T) {
	v, states := newTestView(&fakeFetcher{totalPages: 10})

	v.SetSearch("bob")
	waitPhase(t, states, PhaseLoaded)
	v.SetLimit(5)
	waitPhase(t, states, PhaseLoaded)

	v.NextPage()
	st := waitPhase(t, states, PhaseLoaded)

	if st.Query.Page != 2 {
		t.Errorf("page = %d, want 2", st.Query.Page)
	}
	if st.Query.Search != "bob" || st.Query.Limit != 5 {
		t.Errorf("navigation must preserve search and limit, got %+v", st.Query)
	}
}

func TestView_PrevPageStopsAtOne(t *testing.T) {
	f := &fakeFetcher{totalPages: 3}
	v, states := newTestView(f)

	v.Refresh()
	waitPhase(t, states, PhaseLoaded)
	calls := f.callCount()

	v.PrevPage()
	if f.callCount() != calls {
		t.Error("PrevPage on page 1 must not issue a fetch")
	}
}

func TestView_NextPageClampsToTotalPages(t *testing.T) {
	f := &fakeFetcher{totalPages: 2}
	v, states := newTestView(f)

	v.Refresh()
	waitPhase(t, states, PhaseLoaded)

	v.NextPage()
	waitPhase(t, states, PhaseLoaded)
	if v.Query().Page != 2 {
		t.Fatalf("page = %d, want 2", v.Query().Page)
	}
	calls := f.callCount()

	v.NextPage()
	if f.callCount() != calls {
		t.Error("NextPage on the last page must not issue a fetch")
	}
	if v.Query().Page != 2 {
		t.Errorf("page = %d, want clamped at 2", v.Query().Page)
	}
}

// gatedFetcher blocks each call until released, ignoring context
// cancellation, so tests can force responses to complete out of order.
type gatedFetcher struct {
	mu       sync.Mutex
	releases []chan struct{}
	started  chan struct{}
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{started: make(chan struct{}, 8)}
}

func (f *gatedFetcher) ListUsers(_ context.Context, q domain.ListQuery) (*UserList, error) {
	f.mu.Lock()
	release := make(chan struct{})
	f.releases = append(f.releases, release)
	f.mu.Unlock()
	f.started <- struct{}{}

	<-release
	return &UserList{
		TotalUsers:  1,
		TotalPages:  1,
		CurrentPage: q.Page,
		Users:       []User{{ID: 1, Name: "result for " + q.Search}},
	}, nil
}

func (f *gatedFetcher) release(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.releases[i])
}

func TestView_StaleResponseDiscarded(t *testing.T) {
	f := newGatedFetcher()
	v, states := newTestView(f)

	v.SetSearch("old")
	<-f.started
	v.SetSearch("new")
	<-f.started

	// Complete the newer request first.
	f.release(1)
	st := waitPhase(t, states, PhaseLoaded)
	if st.Query.Search != "new" {
		t.Fatalf("loaded search = %q, want new", st.Query.Search)
	}

	// Now let the superseded request finish; its result must be dropped.
	f.release(0)
	time.Sleep(50 * time.Millisecond)

	final := v.State()
	if final.Phase != PhaseLoaded {
		t.Fatalf("final phase = %v, want loaded", final.Phase)
	}
	if final.Query.Search != "new" {
		t.Errorf("stale response overwrote newer state: search = %q", final.Query.Search)
	}
	if len(final.Data.Users) != 1 || final.Data.Users[0].Name != "result for new" {
		t.Errorf("final data = %+v", final.Data)
	}

	select {
	case st := <-states:
		t.Errorf("unexpected extra state transition: %+v", st)
	default:
	}
}
