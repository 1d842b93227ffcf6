package easing

import (
	"math"
	"math/rand"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namedEasers covers every curve the transition styles can produce.
func namedEasers() map[string]Func {
	return map[string]Func{
		"linear":        Linear,
		"out-bounce":    OutBounce,
		"straight-wavy": StraightWavy,
		"jitter-wavy":   JitterWavy,
		"spring":        Spring(),
	}
}

func TestEasers_Endpoints(t *testing.T) {
	for name, fn := range namedEasers() {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0.0, fn(0), 1e-9)
			assert.InDelta(t, 1.0, fn(1), 1e-9)
		})
	}
}

func TestInterpolate_Bounds_DenseGrid(t *testing.T) {
	from := Renderable{Opacity: 1.0, AspectRatio: 1.78}
	to := Renderable{Opacity: 0.2, AspectRatio: 0.75}

	lo := math.Min(from.AspectRatio, to.AspectRatio)
	hi := math.Max(from.AspectRatio, to.AspectRatio)

	for name, op := range namedEasers() {
		for arName, ar := range namedEasers() {
			// Dense grid including the exact boundaries and values
			// adjacent to them.
			steps := []float64{0, math.Nextafter(0, 1), 1e-9, 0.5, 1 - 1e-9, math.Nextafter(1, 0), 1}
			for i := 0; i <= 10000; i++ {
				steps = append(steps, float64(i)/10000)
			}

			for _, tt := range steps {
				r := Interpolate(from, to, op, ar, tt)
				if r.Opacity < 0 || r.Opacity > 1 {
					t.Fatalf("%s/%s: opacity %v out of [0,1] at t=%v", name, arName, r.Opacity, tt)
				}
				if r.AspectRatio < lo || r.AspectRatio > hi {
					t.Fatalf("%s/%s: aspect %v out of [%v,%v] at t=%v", name, arName, r.AspectRatio, lo, hi, tt)
				}
			}
		}
	}
}

func TestInterpolate_Bounds_Quick(t *testing.T) {
	property := func(fromOp, toOp, fromAR, toAR, tt float64) bool {
		// Map arbitrary floats into valid input ranges.
		fromOp = Clamp01(math.Abs(math.Mod(fromOp, 1)))
		toOp = Clamp01(math.Abs(math.Mod(toOp, 1)))
		fromAR = 0.1 + math.Abs(math.Mod(fromAR, 4))
		toAR = 0.1 + math.Abs(math.Mod(toAR, 4))
		tt = Clamp01(math.Abs(math.Mod(tt, 1)))

		from := Renderable{Opacity: fromOp, AspectRatio: fromAR}
		to := Renderable{Opacity: toOp, AspectRatio: toAR}

		lo := math.Min(fromAR, toAR)
		hi := math.Max(fromAR, toAR)

		for _, fn := range namedEasers() {
			r := Interpolate(from, to, fn, fn, tt)
			if r.Opacity < 0 || r.Opacity > 1 {
				return false
			}
			if r.AspectRatio < lo || r.AspectRatio > hi {
				return false
			}
		}
		return true
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 2000}))
}

func TestInterpolate_ExactEndpoints(t *testing.T) {
	from := Renderable{Opacity: 0.33, AspectRatio: 1.6180339887}
	to := Renderable{Opacity: 0.91, AspectRatio: 0.5772156649}

	for name, fn := range namedEasers() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, from, Interpolate(from, to, fn, fn, 0))
			assert.Equal(t, to, Interpolate(from, to, fn, fn, 1))
		})
	}
}

func TestInterpolate_Deterministic(t *testing.T) {
	from := Renderable{Opacity: 1, AspectRatio: 1.5}
	to := Renderable{Opacity: 0, AspectRatio: 1.0}
	spring := Spring()

	for i := 0; i <= 100; i++ {
		tt := float64(i) / 100
		first := Interpolate(from, to, spring, spring, tt)
		second := Interpolate(from, to, spring, spring, tt)
		assert.Equal(t, first, second)
	}
}

func TestTransition_CompletesAtTarget(t *testing.T) {
	from := Renderable{Opacity: 1, AspectRatio: 1.78}
	to := Renderable{Opacity: 1, AspectRatio: 1.0}

	// Different durations and tick rates must all land exactly on To.
	cases := []struct {
		duration time.Duration
		fps      int
	}{
		{time.Second, 30},
		{2 * time.Second, 60},
		{250 * time.Millisecond, 24},
		{time.Second, 1},
		{0, 30}, // degenerate: completes on first advance
	}

	for _, tc := range cases {
		for _, style := range allStyles {
			tr := NewTransition(from, to, style, tc.duration, tc.fps)

			for i := 0; !tr.Done(); i++ {
				tr.Advance()
				require.Less(t, i, 100000, "transition never completed")
			}

			assert.Equal(t, to, tr.Current(), "style=%s duration=%s fps=%d", style, tc.duration, tc.fps)
		}
	}
}

func TestTransition_ProgressMonotonic(t *testing.T) {
	tr := NewTransition(Renderable{}, Renderable{Opacity: 1, AspectRatio: 1}, StyleFade, time.Second, 30)

	prev := tr.Progress()
	for !tr.Done() {
		tr.Advance()
		assert.GreaterOrEqual(t, tr.Progress(), prev)
		prev = tr.Progress()
	}

	// Advancing past completion stays clamped at the end state.
	tr.Advance()
	assert.Equal(t, 1.0, tr.Progress())
}

func TestRandomStyle_Seeded(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		assert.Equal(t, RandomStyle(a), RandomStyle(b))
	}
}

func TestStyle_String(t *testing.T) {
	assert.Equal(t, "fade", StyleFade.String())
	assert.Equal(t, "spring", StyleSpring.String())
	assert.Equal(t, "unknown", Style(99).String())
}
