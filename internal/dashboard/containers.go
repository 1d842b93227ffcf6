// Package dashboard assembles the kiosk: it boots the resilient data
// containers, builds the themed window tree, and runs the Bubble Tea loop
// that ticks the scheduler, the surprise manager, and the tree's
// diff-and-transition pass at the configured frame rate.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/container"
	"github.com/wavelength-fm/kiosk/internal/logger"
	"github.com/wavelength-fm/kiosk/internal/schedule"
	"github.com/wavelength-fm/kiosk/internal/sources"
)

// clockCadence is the fixed refresh interval for the local clock.
const clockCadence = time.Second

// SourceStatus is the health slice of a container the error indicator and
// the status command read.
type SourceStatus interface {
	Name() string
	LastError() error
	LastSuccess() time.Time
	Refreshing() bool
}

// Containers holds every booted data container. Sources absent from the
// config stay nil and are left out of the tree and the scheduler.
type Containers struct {
	Spins    *container.Container[sources.NowPlaying]
	Messages *container.Container[[]sources.Message]
	Weather  *container.Container[sources.Weather]
	Stream   *container.Container[sources.StreamStatus]
	Clock    *container.Container[sources.ClockReading]
}

// Bootstrap boots all configured containers concurrently. Each container
// blocks internally until its first fetch succeeds, retrying on the
// configured interval, so a slow upstream delays startup rather than
// failing it; cancel the context to abort.
func Bootstrap(ctx context.Context, cfg *config.Config, log logger.Logger) (*Containers, error) {
	client := &http.Client{Timeout: cfg.FetchTimeout}
	cs := &Containers{}

	opts := func(name string, def time.Duration) container.Options {
		return container.Options{
			Cadence:       cfg.Cadence(name, def),
			FetchTimeout:  cfg.FetchTimeout,
			RetryInterval: cfg.RetryInterval,
			Logger:        log,
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if src, ok := cfg.Sources[config.SourceSpins]; ok {
		g.Go(func() error {
			c, err := container.New(gctx, config.SourceSpins,
				sources.SpinsFetcher(client, src), opts(config.SourceSpins, 10*time.Second))
			cs.Spins = c
			return err
		})
	}
	if src, ok := cfg.Sources[config.SourceMessages]; ok {
		g.Go(func() error {
			c, err := container.New(gctx, config.SourceMessages,
				sources.MessagesFetcher(client, src, cfg.Messages), opts(config.SourceMessages, 30*time.Second))
			cs.Messages = c
			return err
		})
	}
	if src, ok := cfg.Sources[config.SourceWeather]; ok {
		g.Go(func() error {
			c, err := container.New(gctx, config.SourceWeather,
				sources.WeatherFetcher(client, src), opts(config.SourceWeather, 5*time.Minute))
			cs.Weather = c
			return err
		})
	}
	if src, ok := cfg.Sources[config.SourceStream]; ok {
		g.Go(func() error {
			c, err := container.New(gctx, config.SourceStream,
				sources.StreamFetcher(client, src), opts(config.SourceStream, 30*time.Second))
			cs.Stream = c
			return err
		})
	}

	// The clock never fails; boot it inline.
	g.Go(func() error {
		c, err := container.New(gctx, "clock", sources.ClockFetcher(nil), container.Options{
			Cadence:       clockCadence,
			FetchTimeout:  cfg.FetchTimeout,
			RetryInterval: cfg.RetryInterval,
			Logger:        log,
		})
		cs.Clock = c
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cs, nil
}

// RegisterAll adds every booted container to the scheduler under its source
// name, in the display order the themes use. Each registers at its own
// cadence so the scheduler evaluates it on due frames only.
func (cs *Containers) RegisterAll(sched *schedule.Scheduler) {
	if cs.Clock != nil {
		sched.Register("clock", cs.Clock, cs.Clock.Cadence())
	}
	if cs.Spins != nil {
		sched.Register(config.SourceSpins, cs.Spins, cs.Spins.Cadence())
	}
	if cs.Messages != nil {
		sched.Register(config.SourceMessages, cs.Messages, cs.Messages.Cadence())
	}
	if cs.Weather != nil {
		sched.Register(config.SourceWeather, cs.Weather, cs.Weather.Cadence())
	}
	if cs.Stream != nil {
		sched.Register(config.SourceStream, cs.Stream, cs.Stream.Cadence())
	}
}

// Statuses returns the health view of every booted container, clock last.
func (cs *Containers) Statuses() []SourceStatus {
	var out []SourceStatus
	if cs.Spins != nil {
		out = append(out, cs.Spins)
	}
	if cs.Messages != nil {
		out = append(out, cs.Messages)
	}
	if cs.Weather != nil {
		out = append(out, cs.Weather)
	}
	if cs.Stream != nil {
		out = append(out, cs.Stream)
	}
	if cs.Clock != nil {
		out = append(out, cs.Clock)
	}
	return out
}

// Failed returns the names of sources currently in a failed state: the last
// refresh attempt errored and the snapshot on screen is stale.
func (cs *Containers) Failed() []string {
	var failed []string
	for _, s := range cs.Statuses() {
		if s.LastError() != nil {
			failed = append(failed, s.Name())
		}
	}
	return failed
}
