package tableview

import (
	"context"
	"sync"

	"github.com/simp-lee/userdir/internal/domain"
)

// Default query parameters for a freshly created view.
const (
	DefaultLimit   = 10
	DefaultOrderBy = "name"
)

// Phase tags a ViewState.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

// String returns the phase name for logging and test output.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ViewState is a snapshot of what the table should render. Exactly one of
// Data (PhaseLoaded) or Err (PhaseFailed) is set; both are nil while idle
// or loading. A failed fetch is a distinct state, not a stuck loading flag.
type ViewState struct {
	Phase Phase
	Query domain.ListQuery
	Data  *UserList
	Err   error
}

// Fetcher is the data source a View pulls pages from. *Client implements it.
type Fetcher interface {
	ListUsers(ctx context.Context, q domain.ListQuery) (*UserList, error)
}

// View owns the current query parameters as a single value object. Every
// parameter change replaces the whole query atomically and starts a new
// fetch; changing the search term or the page size resets the page to 1,
// while page navigation preserves search and limit.
//
// Each fetch is stamped with a generation number. A response whose
// generation is no longer current is discarded, and the superseded request's
// context is cancelled, so rapid parameter changes can never overwrite newer
// state with stale data.
type View struct {
	fetcher  Fetcher
	onChange func(ViewState)

	mu     sync.Mutex
	query  domain.ListQuery
	state  ViewState
	gen    uint64
	cancel context.CancelFunc
}

// NewView creates a View over the given fetcher. onChange, when non-nil, is
// invoked after every state transition with a snapshot of the new state; it
// must not call back into the View from the same goroutine turn.
// The view starts idle; call Refresh to load the first page.
func NewView(fetcher Fetcher, onChange func(ViewState)) *View {
	if fetcher == nil {
		panic("tableview.NewView: fetcher must not be nil")
	}
	q := domain.ListQuery{
		Page:    1,
		Limit:   DefaultLimit,
		OrderBy: DefaultOrderBy,
		Order:   domain.OrderAsc,
	}
	return &View{
		fetcher:  fetcher,
		onChange: onChange,
		query:    q,
		state:    ViewState{Phase: PhaseIdle, Query: q},
	}
}

// State returns a snapshot of the current view state.
func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Query returns the current query parameters.
func (v *View) Query() domain.ListQuery {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Refresh re-issues the current query.
func (v *View) Refresh() {
	v.mu.Lock()
	q := v.query
	v.applyLocked(q)
}

// SetSearch replaces the search term and resets to the first page.
func (v *View) SetSearch(term string) {
	v.mu.Lock()
	q := v.query
	q.Search = term
	q.Page = 1
	v.applyLocked(q)
}

// SetLimit replaces the page size and resets to the first page.
// Non-positive values are clamped to 1.
func (v *View) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	v.mu.Lock()
	q := v.query
	q.Limit = limit
	q.Page = 1
	v.applyLocked(q)
}

// SetSort replaces the sort field and direction and resets to the first page.
func (v *View) SetSort(orderBy, order string) {
	v.mu.Lock()
	q := v.query
	q.OrderBy = orderBy
	q.Order = order
	q.Page = 1
	v.applyLocked(q)
}

// SetPage jumps to the given page, preserving search and limit.
// Values below 1 are clamped to 1.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.mu.Lock()
	q := v.query
	q.Page = page
	v.applyLocked(q)
}

// NextPage advances one page. When the last loaded page count is known, the
// page is clamped to it; a no-op advance past the end issues no fetch.
func (v *View) NextPage() {
	v.mu.Lock()
	q := v.query
	if v.state.Phase == PhaseLoaded && v.state.Data != nil {
		if q.Page >= v.state.Data.TotalPages {
			v.mu.Unlock()
			return
		}
	}
	q.Page++
	v.applyLocked(q)
}

// PrevPage goes back one page, never below page 1.
func (v *View) PrevPage() {
	v.mu.Lock()
	if v.query.Page <= 1 {
		v.mu.Unlock()
		return
	}
	q := v.query
	q.Page--
	v.applyLocked(q)
}

// applyLocked installs q as the current query, bumps the generation, cancels
// any in-flight fetch, transitions to loading, and starts the new fetch.
// The caller must hold v.mu; applyLocked releases it.
func (v *View) applyLocked(q domain.ListQuery) {
	v.query = q
	v.gen++
	gen := v.gen

	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel

	v.state = ViewState{Phase: PhaseLoading, Query: q}
	st := v.state
	cb := v.onChange
	v.mu.Unlock()

	if cb != nil {
		cb(st)
	}

	go v.fetch(ctx, gen, q)
}

// fetch runs one request and installs the result unless it has been
// superseded by a newer generation.
func (v *View) fetch(ctx context.Context, gen uint64, q domain.ListQuery) {
	data, err := v.fetcher.ListUsers(ctx, q)

	v.mu.Lock()
	if gen != v.gen {
		// Stale response for an old query; a newer fetch owns the state now.
		v.mu.Unlock()
		return
	}

	if err != nil {
		v.state = ViewState{Phase: PhaseFailed, Query: q, Err: err}
	} else {
		v.state = ViewState{Phase: PhaseLoaded, Query: q, Data: data}
	}
	st := v.state
	cb := v.onChange
	v.mu.Unlock()

	if cb != nil {
		cb(st)
	}
}
