package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavelength-fm/kiosk/internal/logger"
)

func testOptions() Options {
	return Options{
		Cadence:       50 * time.Millisecond,
		FetchTimeout:  time.Second,
		RetryInterval: 5 * time.Millisecond,
		Logger:        logger.Noop(),
	}
}

// flakySource fails a configured number of times before succeeding, then
// returns an incrementing value.
type flakySource struct {
	mu       sync.Mutex
	failures int
	value    int
}

func (f *flakySource) fetch(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return 0, errors.New("source unreachable")
	}
	f.value++
	return f.value, nil
}

func TestNew_BlocksUntilFirstSuccess(t *testing.T) {
	src := &flakySource{failures: 3}

	c, err := New(context.Background(), "spins", src.fetch, testOptions())
	require.NoError(t, err)

	// Three failed attempts plus the successful one.
	assert.Equal(t, int64(4), c.FetchCount())
	assert.Equal(t, 1, c.Snapshot())
	assert.Nil(t, c.LastError())
	assert.False(t, c.LastSuccess().IsZero())
}

func TestNew_CanceledDuringRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	failing := func(ctx context.Context) (int, error) {
		return 0, errors.New("still down")
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := New(ctx, "weather", failing, testOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshot_SurvivesConsecutiveFailures(t *testing.T) {
	src := &flakySource{}
	c, err := New(context.Background(), "spins", src.fetch, testOptions())
	require.NoError(t, err)
	require.Equal(t, 1, c.Snapshot())

	// Every refresh from now on fails.
	src.mu.Lock()
	src.failures = 1 << 30
	src.mu.Unlock()

	for i := 0; i < 3; i++ {
		c.TriggerRefresh()
		waitIdle(t, c)
	}

	// The displayed value is unchanged and an error indicator is present.
	assert.Equal(t, 1, c.Snapshot())
	assert.Error(t, c.LastError())

	// A successful poll updates the value and clears the indicator.
	src.mu.Lock()
	src.failures = 0
	src.mu.Unlock()

	c.TriggerRefresh()
	waitIdle(t, c)

	assert.Equal(t, 2, c.Snapshot())
	assert.Nil(t, c.LastError())
}

func TestTriggerRefresh_Coalesces(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	var fetches atomic.Int64

	blocking := func(ctx context.Context) (int, error) {
		n := fetches.Add(1)
		if n > 1 {
			once.Do(func() { close(started) })
			<-release
		}
		return int(n), nil
	}

	c, err := New(context.Background(), "stream", blocking, testOptions())
	require.NoError(t, err)
	require.Equal(t, int64(1), fetches.Load())

	// Start one refresh and let it block inside the fetcher.
	c.TriggerRefresh()
	<-started

	// 100 rapid triggers while the refresh is in flight must all coalesce.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.TriggerRefresh()
		}()
	}
	wg.Wait()

	close(release)
	waitIdle(t, c)

	// Startup fetch + the single in-flight refresh; the storm added nothing.
	assert.Equal(t, int64(2), fetches.Load())
}

func TestTick_RespectsCadence(t *testing.T) {
	src := &flakySource{}
	opts := testOptions()
	opts.Cadence = time.Hour

	c, err := New(context.Background(), "spins", src.fetch, opts)
	require.NoError(t, err)

	// Well before the cadence elapses: no refresh.
	c.Tick(time.Now())
	assert.Equal(t, int64(1), c.FetchCount())

	// After the cadence elapses: exactly one refresh starts.
	c.Tick(time.Now().Add(2 * time.Hour))
	waitIdle(t, c)
	assert.Equal(t, int64(2), c.FetchCount())
	assert.Equal(t, 2, c.Snapshot())
}

func TestTick_FailureFollowsNormalCadence(t *testing.T) {
	src := &flakySource{}
	opts := testOptions()
	opts.Cadence = time.Hour

	c, err := New(context.Background(), "messages", src.fetch, opts)
	require.NoError(t, err)

	src.mu.Lock()
	src.failures = 1
	src.mu.Unlock()

	base := time.Now()
	c.Tick(base.Add(2 * time.Hour))
	waitIdle(t, c)
	require.Error(t, c.LastError())

	// No backoff beyond the configured interval: the retry is just the
	// next scheduled tick, not an immediate one.
	c.Tick(base.Add(2*time.Hour + time.Minute))
	waitIdle(t, c)
	assert.Equal(t, int64(2), c.FetchCount())

	c.Tick(base.Add(4 * time.Hour))
	waitIdle(t, c)
	assert.Equal(t, int64(3), c.FetchCount())
	assert.Nil(t, c.LastError())
}

func TestFetchTimeout_IsOrdinaryFailure(t *testing.T) {
	src := &flakySource{}
	opts := testOptions()
	opts.FetchTimeout = 10 * time.Millisecond

	c, err := New(context.Background(), "weather", src.fetch, opts)
	require.NoError(t, err)

	// Swap in a fetcher that outlives the timeout.
	c.fetch = func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}

	c.TriggerRefresh()
	waitIdle(t, c)

	assert.Equal(t, 1, c.Snapshot())
	assert.ErrorIs(t, c.LastError(), context.DeadlineExceeded)
}

func TestSnapshot_ConcurrentReadsDuringRefresh(t *testing.T) {
	var n atomic.Int64
	fetch := func(ctx context.Context) (string, error) {
		return fmt.Sprintf("value-%d", n.Add(1)), nil
	}

	c, err := New(context.Background(), "spins", fetch, testOptions())
	require.NoError(t, err)

	done := make(chan struct{})
	var wg sync.WaitGroup

	// Hammer reads while refreshes churn; every read must see a complete value.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					v := c.Snapshot()
					assert.Contains(t, v, "value-")
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		c.TriggerRefresh()
		waitIdle(t, c)
	}

	close(done)
	wg.Wait()
}

// waitIdle spins until the container's in-flight refresh completes.
func waitIdle(t *testing.T, c interface{ Refreshing() bool }) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for c.Refreshing() {
		if time.Now().After(deadline) {
			t.Fatal("refresh never completed")
		}
		time.Sleep(time.Millisecond)
	}
}
