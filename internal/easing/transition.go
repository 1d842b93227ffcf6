package easing

import (
	"math/rand"
	"time"
)

// Style names a paired opacity/aspect-ratio easing curve. The catalogue
// mirrors the transition styles the dashboard cycles through when window
// content changes.
type Style int

const (
	StyleFade Style = iota
	StyleBounce
	StyleStraightWavy
	StyleJitterWavy
	StyleSpring
)

// String returns a human-readable style name.
func (s Style) String() string {
	switch s {
	case StyleFade:
		return "fade"
	case StyleBounce:
		return "bounce"
	case StyleStraightWavy:
		return "straight-wavy"
	case StyleJitterWavy:
		return "jitter-wavy"
	case StyleSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Curves returns the opacity and aspect-ratio easers for the style.
func (s Style) Curves() (opacity, aspect Func) {
	switch s {
	case StyleBounce:
		return OutBounce, OutBounce
	case StyleStraightWavy:
		return StraightWavy, StraightWavy
	case StyleJitterWavy:
		return JitterWavy, JitterWavy
	case StyleSpring:
		spring := Spring()
		return spring, spring
	default:
		return Linear, Linear
	}
}

// allStyles is the pool RandomStyle picks from.
var allStyles = []Style{StyleFade, StyleBounce, StyleStraightWavy, StyleJitterWavy, StyleSpring}

// RandomStyle picks a style using the provided rand source, so callers can
// seed it for reproducible tests.
func RandomStyle(rng *rand.Rand) Style {
	return allStyles[rng.Intn(len(allStyles))]
}

// Transition animates between two renderable descriptors. Progress advances
// monotonically each tick until complete; a completed transition is
// discarded by its owning window node.
type Transition struct {
	From, To Renderable

	opacity Func
	aspect  Func

	progress float64
	step     float64
}

// NewTransition builds a transition that completes after duration when
// advanced once per frame at the given FPS. Degenerate inputs (zero
// duration or FPS) produce a transition that completes on the first advance.
func NewTransition(from, to Renderable, style Style, duration time.Duration, fps int) *Transition {
	op, ar := style.Curves()

	frames := duration.Seconds() * float64(fps)
	step := 1.0
	if frames > 1 {
		step = 1.0 / frames
	}

	return &Transition{
		From:    from,
		To:      to,
		opacity: op,
		aspect:  ar,
		step:    step,
	}
}

// Advance moves progress forward by one tick, clamping at completion.
func (tr *Transition) Advance() {
	tr.progress += tr.step
	if tr.progress > 1 {
		tr.progress = 1
	}
}

// Progress returns the current progress in [0,1].
func (tr *Transition) Progress() float64 {
	return tr.progress
}

// Done reports whether the transition has reached the end state.
func (tr *Transition) Done() bool {
	return tr.progress >= 1
}

// Current returns the renderable at the current progress. At completion it
// is exactly the To descriptor.
func (tr *Transition) Current() Renderable {
	return tr.At(tr.progress)
}

// At evaluates the transition at an arbitrary progress value, independent of
// the internal counter. Pure; used directly by the bounds property tests.
func (tr *Transition) At(t float64) Renderable {
	return Interpolate(tr.From, tr.To, tr.opacity, tr.aspect, t)
}
