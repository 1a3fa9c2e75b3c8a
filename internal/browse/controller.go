// Package browse drives one problem-list browsing session: the first page,
// further pages, tag filters and debounced title search.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/arena/internal/debounce"
	"github.com/naveenspark/arena/internal/listing"
	"github.com/naveenspark/arena/pkg/domain"
)

// Defaults for a browsing session.
const (
	DefaultPageSize = 10
	DefaultDebounce = 500 * time.Millisecond
)

var (
	// ErrNoMorePages is returned by LoadMore when the list is complete.
	ErrNoMorePages = errors.New("no more pages")
	// ErrBusy is returned by LoadMore while another fetch is in flight.
	ErrBusy = errors.New("list is loading")
	// ErrNotStarted is returned by LoadMore before the first page loaded.
	ErrNotStarted = errors.New("browsing not started")
	// ErrClosed is returned once the session has been closed. Results that
	// arrive after Close are discarded with this error.
	ErrClosed = errors.New("browsing session closed")
	// ErrStale is returned when a newer list fetch superseded this one and
	// its result was discarded.
	ErrStale = errors.New("result superseded")
)

// API is the subset of the API client a browsing session uses.
type API interface {
	ListProblems(ctx context.Context, limit int, cursor *domain.Cursor) (*domain.ProblemPage, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	ProblemsByTag(ctx context.Context, slug string) ([]domain.Problem, error)
	SearchProblems(ctx context.Context, query string) ([]domain.Problem, error)
}

// Reporter receives every failure of a user-triggered fetch. Discarded
// results are not reported.
type Reporter func(error)

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the number of problems per page.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithDebounce sets the quiet window before a typed search is sent.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

// WithStaleDrop discards the result of a list fetch when a newer replacing
// fetch (reload, tag filter or search) was issued after it. Without it the
// last response to arrive wins.
func WithStaleDrop(on bool) Option {
	return func(c *Controller) { c.staleDrop = on }
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithReporter sets the failure callback.
func WithReporter(r Reporter) Option {
	return func(c *Controller) { c.report = r }
}

// Controller decides which fetch each user action issues and how its result
// lands in the list store. A failed fetch leaves the list as it was and only
// releases the loading flag.
type Controller struct {
	api   API
	items *listing.Store[domain.Problem]
	tags  *listing.Catalog[domain.Tag]

	pageSize  int
	window    time.Duration
	staleDrop bool
	log       zerolog.Logger
	report    Reporter

	life   context.Context
	cancel context.CancelFunc
	search *debounce.Debouncer[string]

	mu          sync.Mutex
	state       State
	view        View
	gen         uint64
	loadingMore bool
	loaded      bool
	closed      bool
}

// New creates a controller writing into items and tags. Observers of items
// may be notified while the controller holds its lock, so they must not call
// back into the Controller.
func New(api API, items *listing.Store[domain.Problem], tags *listing.Catalog[domain.Tag], opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		items:    items,
		tags:     tags,
		pageSize: DefaultPageSize,
		window:   DefaultDebounce,
		log:      zerolog.Nop(),
		report:   func(error) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.life, c.cancel = context.WithCancel(context.Background())
	c.search = debounce.New(c.window, func(q string) {
		c.SearchNow(c.life, q) //nolint:errcheck // failures go to the Reporter
	})
	return c
}

// Items returns the list store the controller writes to.
func (c *Controller) Items() *listing.Store[domain.Problem] { return c.items }

// Tags returns the tag catalog.
func (c *Controller) Tags() *listing.Catalog[domain.Tag] { return c.tags }

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns what the list is showing.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Start loads the first page and, alongside it, the tag catalog. A tag
// failure is logged and leaves the catalog empty; only the page error is
// returned.
func (c *Controller) Start(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		c.loadTags(ctx)
		return nil
	})
	g.Go(func() error {
		return c.Reload(ctx)
	})
	return g.Wait()
}

// Reload fetches the first page again and replaces the list with it.
func (c *Controller) Reload(ctx context.Context) error {
	ticket, err := c.begin(InitialLoad, true)
	if err != nil {
		return err
	}
	ctx, done := c.scope(ctx)
	defer done()

	page, err := c.api.ListProblems(ctx, c.pageSize, nil)
	if err := c.accept(ticket); err != nil {
		return err
	}
	if err != nil {
		return c.fail("browse.Reload", err)
	}
	c.items.Reload(page.Data, page.NextCursor(), page.HasMore)
	c.finish(View{Mode: ModeAll})
	c.log.Debug().Int("count", len(page.Data)).Bool("has_more", page.HasMore).Msg("first page loaded")
	return nil
}

// LoadMore appends the next page. It issues no request when the list is
// complete or a fetch is already in flight.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotStarted
	}
	snap := c.items.Snapshot()
	switch {
	case !snap.HasMore || snap.Cursor == nil:
		c.mu.Unlock()
		return ErrNoMorePages
	case snap.Loading || c.loadingMore:
		c.mu.Unlock()
		return ErrBusy
	}
	c.loadingMore = true
	c.state = LoadingMore
	c.items.SetLoading(true)
	ticket := c.gen
	cursor := snap.Cursor
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loadingMore = false
		c.mu.Unlock()
	}()

	ctx, done := c.scope(ctx)
	defer done()

	page, err := c.api.ListProblems(ctx, c.pageSize, cursor)
	if err := c.accept(ticket); err != nil {
		return err
	}
	if err != nil {
		return c.fail("browse.LoadMore", err)
	}
	c.items.Append(page.Data, page.NextCursor(), page.HasMore)
	c.finish(View{Mode: ModeAll})
	c.log.Debug().Int("count", len(page.Data)).Bool("has_more", page.HasMore).Msg("next page loaded")
	return nil
}

// FilterByTag replaces the list with every problem carrying the tag. The
// result is complete, so HasMore becomes false. An empty slug goes back to
// the paginated list.
func (c *Controller) FilterByTag(ctx context.Context, slug string) error {
	if slug == "" {
		return c.Reload(ctx)
	}
	ticket, err := c.begin(Filtered, true)
	if err != nil {
		return err
	}
	ctx, done := c.scope(ctx)
	defer done()

	problems, err := c.api.ProblemsByTag(ctx, slug)
	if err := c.accept(ticket); err != nil {
		return err
	}
	if err != nil {
		return c.fail("browse.FilterByTag", err)
	}
	c.items.Replace(problems, false)
	c.finish(View{Mode: ModeTag, Label: slug})
	return nil
}

// Search schedules a title search. Only the last query typed within the
// debounce window is sent; an empty query sends nothing and keeps the list.
func (c *Controller) Search(query string) {
	c.search.Call(query)
}

// FlushSearch sends a pending debounced search immediately.
func (c *Controller) FlushSearch() bool {
	return c.search.Flush()
}

// SearchNow runs a title search without debouncing. An empty query is a
// no-op.
func (c *Controller) SearchNow(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	ticket, err := c.begin(Searched, true)
	if err != nil {
		return err
	}
	ctx, done := c.scope(ctx)
	defer done()

	problems, err := c.api.SearchProblems(ctx, query)
	if err := c.accept(ticket); err != nil {
		return err
	}
	if err != nil {
		return c.fail("browse.Search", err)
	}
	c.items.Replace(problems, false)
	c.finish(View{Mode: ModeSearch, Label: query})
	return nil
}

// Close ends the session. In-flight fetches are cancelled and any result
// that still arrives is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.search.Stop()
	c.cancel()
}

// begin enters a fetch state, raises Loading and returns its generation
// ticket. Replacing fetches take a new generation. Loading is raised under
// the same lock that orders the tickets.
func (c *Controller) begin(s State, replace bool) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	if replace {
		c.gen++
	}
	c.state = s
	c.items.SetLoading(true)
	return c.gen, nil
}

// accept reports whether a result holding ticket may still be applied.
func (c *Controller) accept(ticket uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.staleDrop && ticket != c.gen {
		c.log.Debug().Uint64("ticket", ticket).Uint64("generation", c.gen).Msg("dropping superseded result")
		return ErrStale
	}
	return nil
}

func (c *Controller) finish(v View) {
	c.mu.Lock()
	c.state = Ready
	c.view = v
	c.loaded = true
	c.mu.Unlock()
}

// fail keeps the list as it was, releases loading and reports err.
func (c *Controller) fail(op string, err error) error {
	c.items.SetLoading(false)
	c.mu.Lock()
	if c.loaded {
		c.state = Ready
	} else {
		c.state = Idle
	}
	c.mu.Unlock()

	err = fmt.Errorf("%s: %w", op, err)
	c.log.Warn().Err(err).Msg("list fetch failed")
	c.report(err)
	return err
}

// scope derives a request context that also ends when the session closes.
func (c *Controller) scope(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (c *Controller) loadTags(ctx context.Context) {
	ctx, done := c.scope(ctx)
	defer done()

	c.tags.SetLoading(true)
	tags, err := c.api.ListTags(ctx)
	if c.isClosed() {
		return
	}
	if err != nil {
		c.log.Debug().Err(err).Msg("tags unavailable")
		c.tags.Set(nil)
		return
	}
	c.tags.Set(tags)
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
