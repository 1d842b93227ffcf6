package schedule

import (
	"time"

	"github.com/wavelength-fm/kiosk/internal/logger"
)

// Ticker is the per-source hook the scheduler drives. A resilient container
// satisfies it directly.
type Ticker interface {
	// Tick starts a scheduled refresh if the source's cadence has elapsed.
	Tick(now time.Time)

	// TriggerRefresh starts an immediate refresh, coalescing if one is
	// already in flight.
	TriggerRefresh()
}

// triggerBuffer bounds the pending-trigger queue. Signal storms beyond this
// are dropped rather than blocking the sender; duplicates collapse per tick
// anyway.
const triggerBuffer = 64

// Scheduler dispatches per-source refresh ticks at each frame and merges in
// externally signaled instant-refresh requests. All Tick processing happens
// on the caller's goroutine (the render loop); only the trigger queue is
// touched from outside.
type Scheduler struct {
	sources map[string]Ticker
	rates   map[string]Rate
	order   []string

	frames   *FrameCounter
	triggers chan string
	log      logger.Logger
}

// NewScheduler creates an empty scheduler driven by the given frame counter.
func NewScheduler(frames *FrameCounter, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Default()
	}
	return &Scheduler{
		sources:  make(map[string]Ticker),
		rates:    make(map[string]Rate),
		frames:   frames,
		triggers: make(chan string, triggerBuffer),
		log:      log,
	}
}

// Register adds a named source whose cadence is evaluated once every
// cadence-worth of frames. A zero cadence, or one shorter than a single
// frame, falls back to evaluation on every tick; the source's own wall-clock
// gate remains the precise check either way. Registration happens at
// tree-build time, before the loop starts; the scheduler is not safe for
// concurrent mutation.
func (s *Scheduler) Register(name string, t Ticker, cadence time.Duration) {
	rate := OncePerFrame
	if cadence > 0 {
		if r, err := NewRate(cadence, s.frames.FPS()); err == nil {
			rate = r
		} else {
			s.log.Warn("cadence for %q not expressible in frames, evaluating every tick: %v", name, err)
		}
	}

	if _, ok := s.sources[name]; !ok {
		s.order = append(s.order, name)
	}
	s.sources[name] = t
	s.rates[name] = rate
}

// Sources returns the registered source names in registration order.
func (s *Scheduler) Sources() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// RequestRefresh enqueues an instant-refresh request for a named source.
// Safe to call from any goroutine; never blocks the caller beyond the
// channel send, and drops the request if the queue is full.
func (s *Scheduler) RequestRefresh(name string) {
	select {
	case s.triggers <- name:
	default:
		s.log.Warn("trigger queue full, dropping refresh request for %q", name)
	}
}

// Tick runs one scheduler step: drain and apply pending instant-refresh
// requests first (deduplicated, so duplicate deliveries within one tick are
// idempotent), then evaluate every source's normal cadence.
func (s *Scheduler) Tick(now time.Time) {
	seen := make(map[string]bool)

	for {
		select {
		case name := <-s.triggers:
			if seen[name] {
				continue
			}
			seen[name] = true

			src, ok := s.sources[name]
			if !ok {
				s.log.Warn("refresh requested for unknown source %q", name)
				continue
			}
			s.log.Debug("instant refresh for %q", name)
			src.TriggerRefresh()

		default:
			for _, name := range s.order {
				if s.rates[name].Due(s.frames) {
					s.sources[name].Tick(now)
				}
			}
			return
		}
	}
}
