package easing

import "github.com/charmbracelet/harmonica"

// springSamples is the resolution of the precomputed spring curve. The
// curve is sampled once and interpolated, which keeps Spring a pure
// function of t like every other easer.
const springSamples = 120

const (
	springFrequency = 7.0
	springDamping   = 0.6
)

// Spring returns an easer shaped by a damped harmonic spring. The spring
// simulation is stateful, so it is run once up front into a lookup table;
// the returned Func is deterministic across calls.
func Spring() Func {
	spring := harmonica.NewSpring(harmonica.FPS(springSamples), springFrequency, springDamping)

	table := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		table[i] = pos
	}
	// Pin the endpoint so the easer lands on exactly 1.
	table[springSamples] = 1.0

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		scaled := t * springSamples
		i := int(scaled)
		frac := scaled - float64(i)
		return Lerp(table[i], table[i+1], frac)
	}
}
