// Package easing provides the pure interpolation functions that drive visual
// transitions between two window contents, and the Transition type that
// advances them tick by tick. Every function here is deterministic and
// side-effect free, so the bounds contracts can be checked exhaustively.
package easing

import "math"

// Func maps transition progress t in [0,1] to an eased progress value.
// Implementations must return 0 at t=0 and 1 at t=1; intermediate values
// are clamped by the interpolator, so overshoot is tolerated but bounded.
type Func func(t float64) float64

// Linear is the identity easer.
func Linear(t float64) float64 { return t }

// OutBounce is the easeOutBounce curve from https://easings.net/#easeOutBounce.
func OutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	switch {
	case t < 1.0/d1:
		return n1 * t * t
	case t < 2.0/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// straightWavyN controls the frequency of the wavy easers; must be odd so
// the curve lands on 1 at t=1.
const straightWavyN = 3

// StraightWavy oscillates toward the target with a cosine wave.
func StraightWavy(t float64) float64 {
	if t == 0 {
		return 0
	}
	piN := math.Pi * straightWavyN
	return (1 - math.Cos(piN*t)) / (1 - math.Cos(piN))
}

// JitterWavy approaches the target monotonically with a superimposed wobble.
func JitterWavy(t float64) float64 {
	tauN := 2 * math.Pi * straightWavyN
	return t - math.Sin(tauN*t)/tauN
}

// Clamp01 clamps v into the unit interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Renderable is the descriptor handed to the graphics collaborator: how
// opaque the content is and what aspect ratio its box should take.
type Renderable struct {
	Opacity     float64
	AspectRatio float64
}

// Interpolate is the core easing contract: for any t in [0,1] the result's
// opacity is within [0,1] and its aspect ratio lies between the endpoints'
// aspect ratios inclusive. t=0 reproduces from exactly and t=1 reproduces
// to exactly, with no floating-point drift, because the boundaries are
// returned before any arithmetic runs.
func Interpolate(from, to Renderable, opacity, aspect Func, t float64) Renderable {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}

	eo := Clamp01(opacity(t))
	ea := Clamp01(aspect(t))

	return Renderable{
		Opacity:     Clamp01(Lerp(Clamp01(from.Opacity), Clamp01(to.Opacity), eo)),
		AspectRatio: Lerp(from.AspectRatio, to.AspectRatio, ea),
	}
}
