package biz

import (
	"context"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/log"
)

const (
	DefaultSearchDebounce = 500 * time.Millisecond
	DefaultMinQueryLength = 3

	SearchErrorMessage = "Failed to search movies. Please try again."
)

// SearchStatus is the phase of the search state machine
type SearchStatus string

const (
	SearchIdle      SearchStatus = "idle"
	SearchSearching SearchStatus = "searching"
	SearchResults   SearchStatus = "results"
	SearchErrored   SearchStatus = "errored"
)

// SearchState is an immutable snapshot of a SearchController
type SearchState struct {
	Status       SearchStatus
	Query        string
	Movies       []Movie
	CurrentPage  int
	TotalPages   int
	TotalResults int
	Pages        []int
	Loading      bool
	Error        string
	Selected     []int
}

// SearchOption configures a SearchController
type SearchOption func(*SearchController)

// WithDebounce sets the pause required before a query is dispatched
func WithDebounce(d time.Duration) SearchOption {
	return func(c *SearchController) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithMinQueryLength sets the shortest query that triggers a request
func WithMinQueryLength(n int) SearchOption {
	return func(c *SearchController) {
		if n > 0 {
			c.minQueryLength = n
		}
	}
}

// WithSearchLogger sets the controller logger
func WithSearchLogger(logger log.Logger) SearchOption {
	return func(c *SearchController) {
		c.log = log.NewHelper(logger)
	}
}

// SearchController debounces query input, dispatches searches and keeps the
// result, error and selection state. Only the response of the most recently
// dispatched request is ever applied.
type SearchController struct {
	searcher       MovieSearcher
	debounce       time.Duration
	minQueryLength int
	log            *log.Helper

	mu          sync.Mutex
	timer       *time.Timer
	timerSeq    uint64
	generation  uint64
	cancel      context.CancelFunc
	closed      bool
	state       SearchState
	selected    map[int]struct{}
	subscribers map[int]func(SearchState)
	nextSubID   int

	// emitMu orders notifications so subscribers never see an older snapshot
	// after a newer one.
	emitMu sync.Mutex
}

// NewSearchController creates an idle SearchController
func NewSearchController(searcher MovieSearcher, opts ...SearchOption) *SearchController {
	c := &SearchController{
		searcher:       searcher,
		debounce:       DefaultSearchDebounce,
		minQueryLength: DefaultMinQueryLength,
		log:            log.NewHelper(log.DefaultLogger),
		state:          SearchState{Status: SearchIdle, CurrentPage: 1},
		selected:       make(map[int]struct{}),
		subscribers:    make(map[int]func(SearchState)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Subscribe registers fn to receive every state change. The returned func
// removes the subscription.
func (c *SearchController) Subscribe(fn func(SearchState)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// State returns a snapshot of the current state
func (c *SearchController) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// SetQuery records new query text. Queries of at least the minimum length are
// scheduled for page 1 and reset the selection; shorter ones clear the results
// without a request.
func (c *SearchController) SetQuery(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.state.Query = query
	if utf8.RuneCountInString(query) >= c.minQueryLength {
		c.state.CurrentPage = 1
		clear(c.selected)
		c.schedule(query, 1)
	} else {
		c.stopPending()
		c.state.Movies = nil
		c.state.TotalPages = 0
		c.state.TotalResults = 0
		c.state.Loading = false
		c.state.Error = ""
		c.state.Status = SearchIdle
	}
	c.mu.Unlock()

	c.emit()
}

// ChangePage schedules the current query for target. It reports false and does
// nothing when the target is out of range or already shown.
func (c *SearchController) ChangePage(target int) bool {
	c.mu.Lock()
	if c.closed || !IsValidPageChange(target, c.state.CurrentPage, c.state.TotalPages) {
		c.mu.Unlock()
		return false
	}

	c.state.CurrentPage = target
	c.schedule(c.state.Query, target)
	c.mu.Unlock()

	c.emit()
	return true
}

// SetSelected marks or unmarks a movie for bulk actions
func (c *SearchController) SetSelected(movieID int, selected bool) {
	c.mu.Lock()
	if selected {
		c.selected[movieID] = struct{}{}
	} else {
		delete(c.selected, movieID)
	}
	c.mu.Unlock()

	c.emit()
}

// IsSelected reports whether a movie is selected
func (c *SearchController) IsSelected(movieID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[movieID]
	return ok
}

// SelectedMovies returns the selected movies of the current result page
func (c *SearchController) SelectedMovies() []Movie {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Movie
	for _, m := range c.state.Movies {
		if _, ok := c.selected[m.ID]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Close stops pending work and detaches all subscribers
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.stopPending()
	clear(c.subscribers)
}

// schedule (re)arms the debounce timer. Callers hold mu.
func (c *SearchController) schedule(query string, page int) {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerSeq++
	seq := c.timerSeq
	c.timer = time.AfterFunc(c.debounce, func() {
		c.dispatch(seq, query, page)
	})
}

// stopPending disarms the timer and abandons the in-flight request.
// Callers hold mu.
func (c *SearchController) stopPending() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// a callback that already fired must not dispatch
	c.timerSeq++
	c.abandon()
}

// abandon invalidates the in-flight request. Callers hold mu.
func (c *SearchController) abandon() {
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *SearchController) dispatch(seq uint64, query string, page int) {
	c.mu.Lock()
	if c.closed || seq != c.timerSeq {
		c.mu.Unlock()
		return
	}

	c.timer = nil
	c.abandon()
	gen := c.generation
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.state.Status = SearchSearching
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	c.emit()

	go c.run(ctx, gen, query, page)
}

func (c *SearchController) run(ctx context.Context, gen uint64, query string, page int) {
	result, err := c.searcher.SearchMovies(ctx, query, page)

	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		c.log.Debugf("discarding superseded search %q page %d", query, page)
		return
	}

	c.cancel()
	c.cancel = nil
	if err != nil || result == nil {
		c.log.Errorf("search error: %v", err)
		result = &SearchResult{}
		c.state.Status = SearchErrored
		c.state.Error = SearchErrorMessage
	} else {
		c.state.Status = SearchResults
	}
	c.state.Movies = result.Results
	c.state.TotalPages = result.TotalPages
	c.state.TotalResults = result.TotalResults
	c.state.CurrentPage = result.Page
	c.state.Loading = false
	c.mu.Unlock()

	c.emit()
}

// snapshot copies the state. Callers hold mu.
func (c *SearchController) snapshot() SearchState {
	s := c.state
	s.Movies = slices.Clone(c.state.Movies)
	s.Pages = PaginationPages(c.state.CurrentPage, c.state.TotalPages)
	s.Selected = make([]int, 0, len(c.selected))
	for id := range c.selected {
		s.Selected = append(s.Selected, id)
	}
	slices.Sort(s.Selected)
	return s
}

func (c *SearchController) emit() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	state := c.snapshot()
	subs := make([]func(SearchState), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
