package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"snowboard-catalog-service/internal/domain"
)

// Status is the browser's query lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultSearchDebounce is the delay between the last search keystroke and
// the implicit search commit.
const DefaultSearchDebounce = 300 * time.Millisecond

// Snapshot is what the presentation layer renders.
type Snapshot struct {
	Status      Status         `json:"status"`
	Rows        []domain.Board `json:"rows"`
	TotalCount  int            `json:"total_count"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	ErrMessage  string         `json:"error_message,omitempty"`
}

// Browser holds one browsing session's filter state and drives queries
// through the engine. Filter edits are two-phase: StagePending mutates the
// pending copy with no query side effect, and only Commit (or the debounced
// search path, or Reset) copies pending into applied and triggers a
// resolution. Queries run asynchronously; a monotonically increasing
// sequence number tags each one and completions carrying a stale sequence
// are discarded, so a slow early response can never overwrite a fresher
// result. Previously displayed rows stay in place while a new query is in
// flight.
type Browser struct {
	engine        *Engine
	debounceDelay time.Duration
	onUpdate      func(Snapshot)

	mu          sync.Mutex
	pending     FilterState
	applied     FilterState
	page        int
	status      Status
	rows        []domain.Board
	totalCount  int
	errMessage  string
	seq         uint64
	searchTimer *time.Timer
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithSearchDebounce overrides the search commit delay.
func WithSearchDebounce(d time.Duration) BrowserOption {
	return func(b *Browser) { b.debounceDelay = d }
}

// WithOnUpdate registers a callback invoked with a fresh snapshot after
// every accepted query completion (success or error). The callback runs
// outside the browser's lock.
func WithOnUpdate(fn func(Snapshot)) BrowserOption {
	return func(b *Browser) { b.onUpdate = fn }
}

func NewBrowser(engine *Engine, opts ...BrowserOption) *Browser {
	b := &Browser{
		engine:        engine,
		debounceDelay: DefaultSearchDebounce,
		pending:       NewFilterState(),
		applied:       NewFilterState(),
		page:          1,
		status:        StatusIdle,
		rows:          []domain.Board{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// StagePending edits the pending filter copy. No query is issued; toggling
// facets while composing a selection stays free of network round trips.
func (b *Browser) StagePending(mutate func(*FilterState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	mutate(&b.pending)
}

// StageSearch updates the pending search text and (re)arms the debounce
// timer. Each keystroke resets the single in-flight timer; when it fires,
// only the search field is committed, the page resets to 1 and a resolution
// is triggered.
func (b *Browser) StageSearch(ctx context.Context, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending.Search = text
	if b.searchTimer != nil {
		b.searchTimer.Stop()
	}
	b.searchTimer = time.AfterFunc(b.debounceDelay, func() {
		b.commitSearch(ctx)
	})
}

func (b *Browser) commitSearch(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.applied.Search = b.pending.Search
	b.page = 1
	b.refreshLocked(ctx)
}

// Commit deep-copies the whole pending selection into applied, resets the
// page to 1 and triggers a resolution. A staged-but-unfired search commit is
// superseded, so its timer is dropped.
func (b *Browser) Commit(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.searchTimer != nil {
		b.searchTimer.Stop()
		b.searchTimer = nil
	}
	b.applied = b.pending.Clone()
	b.page = 1
	b.refreshLocked(ctx)
}

// Reset restores both snapshots to the all-unconstrained default and
// triggers a resolution.
func (b *Browser) Reset(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.searchTimer != nil {
		b.searchTimer.Stop()
		b.searchTimer = nil
	}
	b.pending = NewFilterState()
	b.applied = NewFilterState()
	b.page = 1
	b.refreshLocked(ctx)
}

// GoToPage navigates to page n. Out-of-range requests are ignored: no state
// change, no query.
func (b *Browser) GoToPage(ctx context.Context, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 || n > totalPages(b.totalCount, b.engine.pageSize) {
		return
	}
	b.page = n
	b.refreshLocked(ctx)
}

// refreshLocked snapshots the applied filter and page, bumps the request
// sequence and launches the query. Caller must hold b.mu. The in-flight
// request works on its own deep copy, so later filter edits cannot corrupt
// it.
func (b *Browser) refreshLocked(ctx context.Context) {
	b.seq++
	seq := b.seq
	b.status = StatusLoading
	applied := b.applied.Clone()
	page := b.page

	go func() {
		res, err := b.engine.Query(ctx, applied, page)

		b.mu.Lock()
		if seq != b.seq {
			// A newer request was issued while this one was in flight.
			b.mu.Unlock()
			return
		}
		if err != nil {
			log.Printf("ERROR: catalog query failed: %v", err)
			b.status = StatusError
			b.errMessage = "failed to load catalog results"
		} else {
			b.status = StatusReady
			b.errMessage = ""
			b.rows = res.Boards
			b.totalCount = res.TotalCount
		}
		snap := b.snapshotLocked()
		onUpdate := b.onUpdate
		b.mu.Unlock()

		if onUpdate != nil {
			onUpdate(snap)
		}
	}()
}

// Snapshot returns the current render state.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Browser) snapshotLocked() Snapshot {
	return Snapshot{
		Status:      b.status,
		Rows:        b.rows,
		TotalCount:  b.totalCount,
		CurrentPage: b.page,
		TotalPages:  totalPages(b.totalCount, b.engine.pageSize),
		ErrMessage:  b.errMessage,
	}
}

// Pending returns a copy of the pending filter selection.
func (b *Browser) Pending() FilterState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending.Clone()
}

// Applied returns a copy of the committed filter selection.
func (b *Browser) Applied() FilterState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied.Clone()
}
