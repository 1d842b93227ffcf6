// Package schedule drives the single-threaded render/update loop: a frame
// counter at a fixed target rate, per-source refresh cadences, and the merge
// point for externally signaled instant-refresh requests.
package schedule

import (
	"fmt"
	"time"
)

// FrameCounter tracks the render loop's position in time. The frame index
// is a uint64, so it cannot overflow at any realistic frame rate or uptime
// (584 billion years at 1000 FPS).
type FrameCounter struct {
	frame uint64
	fps   int
}

// NewFrameCounter creates a counter for the given target frame rate.
func NewFrameCounter(fps int) *FrameCounter {
	return &FrameCounter{fps: fps}
}

// Tick advances the counter by one frame.
func (fc *FrameCounter) Tick() {
	fc.frame++
}

// Frame returns the current frame index.
func (fc *FrameCounter) Frame() uint64 {
	return fc.frame
}

// FPS returns the counter's target frame rate.
func (fc *FrameCounter) FPS() int {
	return fc.fps
}

// Elapsed returns the wall-clock time the counter represents.
func (fc *FrameCounter) Elapsed() time.Duration {
	return time.Duration(fc.frame) * time.Second / time.Duration(fc.fps)
}

// Interval returns the duration of a single frame, for driving a ticker.
func (fc *FrameCounter) Interval() time.Duration {
	return time.Second / time.Duration(fc.fps)
}

// Rate expresses "once every N frames" for a configured seconds-between-
// updates value at a given FPS.
type Rate struct {
	everyNFrames uint64
}

// OncePerFrame fires on every tick.
var OncePerFrame = Rate{everyNFrames: 1}

// NewRate converts an interval into a frame-count rate. Intervals shorter
// than one frame cannot be expressed and are rejected; they indicate a
// misconfigured cadence rather than something to silently round up.
func NewRate(interval time.Duration, fps int) (Rate, error) {
	frames := interval.Seconds() * float64(fps)
	if frames < 1 {
		return Rate{}, fmt.Errorf("%s between updates is less than one frame at %d FPS", interval, fps)
	}
	return Rate{everyNFrames: uint64(frames)}, nil
}

// Due reports whether the rate fires on the given frame.
func (r Rate) Due(fc *FrameCounter) bool {
	return fc.frame%r.everyNFrames == 0
}
