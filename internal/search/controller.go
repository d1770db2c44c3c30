package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher runs a single search request. Implementations must honour ctx
// cancellation and return an error satisfying errors.Is(err, context.Canceled)
// when cancelled.
type Fetcher interface {
	Search(ctx context.Context, q Query) (Result, error)
}

// Options configures a Controller.
type Options struct {
	// Sort is the initial sort mode. Defaults to SortStars.
	Sort   SortMode
	Logger *zap.Logger
}

// request is the handle of one in-flight search.
type request struct {
	id     uuid.UUID
	query  Query
	cancel context.CancelFunc
	done   chan struct{}
}

// Controller owns the current term, sort mode and page, and makes sure only
// the most recently issued request may change what presenters see.
type Controller struct {
	fetcher Fetcher
	logger  *zap.Logger

	base context.Context
	stop context.CancelFunc

	mu      sync.Mutex
	term    string
	sort    SortMode
	snap    Snapshot
	current *request
	closed  bool
	changes chan struct{}
}

// NewController creates a Controller issuing requests through f.
func NewController(f Fetcher, opts Options) *Controller {
	if opts.Sort == "" {
		opts.Sort = SortStars
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	base, stop := context.WithCancel(context.Background())
	return &Controller{
		fetcher: f,
		logger:  opts.Logger,
		base:    base,
		stop:    stop,
		sort:    opts.Sort,
		snap:    Snapshot{Status: StatusIdle, Query: Query{Sort: opts.Sort, Page: 1}},
		changes: make(chan struct{}, 1),
	}
}

// Changes signals that the snapshot changed. Signals are coalesced; read the
// latest state with Snapshot. The channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// SetTerm handles a settled input value. A changed term fetches page 1; an
// unchanged one is ignored.
func (c *Controller) SetTerm(term string) error {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if term == "" {
		c.resetLocked()
		return nil
	}
	if term == c.term {
		return nil
	}
	c.term = term
	c.issueLocked(Query{Term: term, Sort: c.sort, Page: 1})
	return nil
}

// Submit handles an explicit submission and always fetches page 1.
func (c *Controller) Submit(term string) error {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if term == "" {
		c.resetLocked()
		return nil
	}
	c.term = term
	c.issueLocked(Query{Term: term, Sort: c.sort, Page: 1})
	return nil
}

// SetSort changes the sort mode. With a term set, page 1 is fetched again.
func (c *Controller) SetSort(mode SortMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if mode == c.sort {
		return nil
	}
	c.sort = mode
	if c.term == "" {
		c.snap.Query.Sort = mode
		c.snap.Query.Page = 1
		c.notifyLocked()
		return nil
	}
	c.issueLocked(Query{Term: c.term, Sort: mode, Page: 1})
	return nil
}

// RequestPage fetches another page of the current result.
func (c *Controller) RequestPage(page int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.snap.Status != StatusSucceeded {
		return fmt.Errorf("%w: no result to page through", ErrPageOutOfRange)
	}
	total := c.snap.TotalPages()
	if page < 1 || page > total {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, total)
	}
	c.issueLocked(Query{Term: c.term, Sort: c.sort, Page: page})
	return nil
}

// Await blocks until no request is in flight and returns the settled state.
func (c *Controller) Await(ctx context.Context) (Snapshot, error) {
	for {
		c.mu.Lock()
		req, snap := c.current, c.snap
		c.mu.Unlock()
		if req == nil {
			return snap, nil
		}
		select {
		case <-req.done:
		case <-ctx.Done():
			return snap, ctx.Err()
		}
	}
}

// Close cancels the in-flight request and closes the Changes channel.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.current != nil {
		c.current.cancel()
		c.current = nil
	}
	c.stop()
	close(c.changes)
}

func (c *Controller) resetLocked() {
	if c.current != nil {
		c.logger.Debug("cancelling search for empty term", zap.Stringer("request_id", c.current.id))
		c.current.cancel()
		c.current = nil
	}
	c.term = ""
	c.snap = Snapshot{
		Status: StatusIdle,
		Query:  Query{Sort: c.sort, Page: 1},
		Err:    &Error{Kind: KindValidation, Message: MsgEmptyTerm},
	}
	c.notifyLocked()
}

func (c *Controller) issueLocked(q Query) {
	if prev := c.current; prev != nil {
		c.logger.Debug("superseding search",
			zap.Stringer("request_id", prev.id),
			zap.String("term", prev.query.Term),
			zap.Int("page", prev.query.Page))
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(c.base)
	req := &request{id: uuid.New(), query: q, cancel: cancel, done: make(chan struct{})}
	c.current = req
	c.snap.Status = StatusLoading
	c.snap.Query = q
	c.snap.Err = nil
	c.notifyLocked()

	c.logger.Debug("issuing search",
		zap.Stringer("request_id", req.id),
		zap.String("term", q.Term),
		zap.String("sort", string(q.Sort)),
		zap.Int("page", q.Page))

	go c.run(ctx, req)
}

func (c *Controller) run(ctx context.Context, req *request) {
	defer close(req.done)
	defer req.cancel()

	res, err := c.fetcher.Search(ctx, req.query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != req {
		c.logger.Debug("dropping stale search response", zap.Stringer("request_id", req.id))
		return
	}
	c.current = nil
	if errors.Is(err, context.Canceled) {
		return
	}

	switch {
	case err != nil:
		se := AsError(err)
		c.logger.Debug("search failed",
			zap.Stringer("request_id", req.id),
			zap.Stringer("kind", se.Kind),
			zap.Int("status", se.Status),
			zap.Error(se.Err))
		c.snap.Status = StatusFailed
		c.snap.Err = se
		c.snap.Result = Result{}
	case len(res.Items) == 0:
		c.snap.Status = StatusFailed
		c.snap.Err = &Error{Kind: KindEmptyResult, Message: MsgNoResults}
		c.snap.Result = Result{}
	default:
		c.logger.Debug("search succeeded",
			zap.Stringer("request_id", req.id),
			zap.Int("items", len(res.Items)),
			zap.Int("total_count", res.TotalCount))
		c.snap.Status = StatusSucceeded
		c.snap.Err = nil
		c.snap.Result = res
	}
	c.notifyLocked()
}

func (c *Controller) notifyLocked() {
	if c.closed {
		return
	}
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
