// Package container provides the resilient state container that sits between
// unreliable external data sources and the render loop. A container always
// holds the last successfully fetched value; failed refreshes never replace
// it, so callers can read at any time without blocking and without ever
// observing an absent or torn value.
package container

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/wavelength-fm/kiosk/internal/logger"
)

// Fetcher is the data-source adapter contract: fetch the latest value,
// returning the typed value or a typed failure. Implementations are expected
// to respect ctx cancellation and deadlines.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Options configures a container's refresh behavior.
type Options struct {
	// Cadence is the interval between scheduled refreshes.
	Cadence time.Duration

	// FetchTimeout bounds each fetch. A fetch that exceeds it fails like
	// any other fetch error.
	FetchTimeout time.Duration

	// RetryInterval is the sleep between attempts during the blocking
	// startup fetch.
	RetryInterval time.Duration

	// Logger receives refresh diagnostics. Defaults to the package default.
	Logger logger.Logger
}

// state is the value cell swapped on successful refresh. Bundling the value
// with its timestamp keeps the snapshot and its freshness consistent under
// a single atomic load.
type state[T any] struct {
	value       T
	lastSuccess time.Time
}

// Container wraps one externally fetched value and owns its refresh
// lifecycle. The render loop reads via Snapshot (an atomic pointer load);
// the only writer is the container's own refresh goroutine, of which at
// most one runs at a time.
type Container[T any] struct {
	name  string
	fetch Fetcher[T]
	opts  Options
	log   logger.Logger

	current  atomic.Pointer[state[T]]
	lastErr  atomic.Pointer[error]
	inFlight atomic.Bool
	nextDue  atomic.Int64 // unix nanos of the next scheduled refresh

	// fetchCount is diagnostic only; tests use it to pin coalescing.
	fetchCount atomic.Int64
}

// New constructs a container by blocking until the first fetch succeeds.
// This is the one path allowed to block: a network that is down at launch is
// expected and non-fatal, so construction retries with a fixed sleep until
// it gets a value or ctx is canceled. The returned error is only ever a
// context error.
func New[T any](ctx context.Context, name string, fetch Fetcher[T], opts Options) (*Container[T], error) {
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	c := &Container[T]{
		name:  name,
		fetch: fetch,
		opts:  opts,
		log:   log,
	}

	for {
		value, err := c.boundedFetch(ctx)
		if err == nil {
			now := time.Now()
			c.current.Store(&state[T]{value: value, lastSuccess: now})
			c.nextDue.Store(now.Add(opts.Cadence).UnixNano())
			return c, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		log.Warn("[%s] startup fetch failed, retrying in %s: %v", name, opts.RetryInterval, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryInterval):
		}
	}
}

// Name returns the container's source name.
func (c *Container[T]) Name() string {
	return c.name
}

// Cadence returns the interval between scheduled refreshes, so the
// scheduler can derive a frame-based evaluation rate.
func (c *Container[T]) Cadence() time.Duration {
	return c.opts.Cadence
}

// Snapshot returns the last successfully fetched value. It never blocks and
// never fails; after construction there is always a value to return.
func (c *Container[T]) Snapshot() T {
	return c.current.Load().value
}

// LastSuccess returns when the current value was fetched.
func (c *Container[T]) LastSuccess() time.Time {
	return c.current.Load().lastSuccess
}

// LastError returns the most recent refresh failure, or nil if the last
// refresh succeeded. The render loop uses this for the stale-data indicator.
func (c *Container[T]) LastError() error {
	if p := c.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Refreshing reports whether a refresh is currently in flight.
func (c *Container[T]) Refreshing() bool {
	return c.inFlight.Load()
}

// FetchCount returns the total number of fetches started, including the
// startup fetch attempts.
func (c *Container[T]) FetchCount() int64 {
	return c.fetchCount.Load()
}

// Tick starts a scheduled refresh if the cadence interval has elapsed and
// no refresh is in flight. Called by the scheduler once per frame; cheap
// when nothing is due.
func (c *Container[T]) Tick(now time.Time) {
	if now.UnixNano() < c.nextDue.Load() {
		return
	}
	c.startRefresh(now, true)
}

// TriggerRefresh requests an out-of-cadence refresh. If a refresh is already
// in flight the request coalesces into it: at most one refresh per container
// runs concurrently, and a storm of triggers collapses to a single fetch.
// The subsequent scheduled cadence is not disturbed.
func (c *Container[T]) TriggerRefresh() {
	c.startRefresh(time.Now(), false)
}

// startRefresh transitions Idle -> Refreshing; a no-op while Refreshing.
func (c *Container[T]) startRefresh(now time.Time, scheduled bool) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return
	}

	// Scheduled refreshes advance the cadence up front so a slow fetch
	// doesn't cause a burst of catch-up refreshes. Triggered refreshes
	// leave the schedule alone.
	if scheduled {
		c.nextDue.Store(now.Add(c.opts.Cadence).UnixNano())
	}

	go func() {
		defer c.inFlight.Store(false)

		// The refresh is fire-and-forget: shutdown abandons it rather
		// than waiting, so the fetch context is independent.
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.FetchTimeout)
		defer cancel()

		value, err := c.doFetch(ctx)
		if err != nil {
			c.lastErr.Store(&err)
			c.log.Debug("[%s] refresh failed, keeping previous value: %v", c.name, err)
			return
		}

		c.current.Store(&state[T]{value: value, lastSuccess: time.Now()})
		c.lastErr.Store(nil)
	}()
}

// boundedFetch wraps the fetcher with the configured timeout, honoring the
// parent ctx (used on the startup path, where cancellation must win).
func (c *Container[T]) boundedFetch(ctx context.Context) (T, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()
	return c.doFetch(fetchCtx)
}

func (c *Container[T]) doFetch(ctx context.Context) (T, error) {
	c.fetchCount.Add(1)
	return c.fetch(ctx)
}
