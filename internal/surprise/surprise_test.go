package surprise

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/logger"
	"github.com/wavelength-fm/kiosk/internal/window"
)

func surpriseNode(t *testing.T, id string) *window.Node {
	t.Helper()
	n, err := window.NewNode(id, window.Fill(), window.ImageContent(id+".txt", 1))
	require.NoError(t, err)
	return n
}

// fakeClock steps forward far enough that every variant cadence has elapsed
// by the next Update.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestManager(t *testing.T, cfgs []config.SurpriseConfig, seed int64) (*Manager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
	m := NewManager(cfgs, rand.New(rand.NewSource(seed)), clock.now, logger.Noop())
	return m, clock
}

func TestManager_BindStartsHidden(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{{Name: "bird", Steps: 2}}, 1)
	node := surpriseNode(t, "bird")
	m.Bind("bird", node)

	assert.True(t, node.SkipDraw())
	assert.False(t, m.Active("bird"))
}

func TestManager_FireVariantShowsForConfiguredSteps(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "bird", Steps: 3, Chance: 0, HourStart: 0, HourEnd: 23},
	}, 1)
	node := surpriseNode(t, "bird")
	m.Bind("bird", node)

	m.FireVariant("bird")

	// Visible for exactly Steps update steps, hidden after.
	for step := 1; step <= 3; step++ {
		m.Update()
		assert.False(t, node.SkipDraw(), "step %d should be visible", step)
		assert.True(t, m.Active("bird"))
	}
	m.Update()
	assert.True(t, node.SkipDraw())
	assert.False(t, m.Active("bird"))
}

func TestManager_FlickerAlternatesVisibility(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "ghost", Steps: 4, Flicker: true, HourStart: 0, HourEnd: 23},
	}, 1)
	node := surpriseNode(t, "ghost")
	m.Bind("ghost", node)

	m.FireVariant("ghost")

	var states []bool
	for step := 0; step < 4; step++ {
		m.Update()
		states = append(states, node.SkipDraw())
	}

	// Adjacent steps alternate.
	for i := 1; i < len(states); i++ {
		assert.NotEqual(t, states[i-1], states[i], "steps %d and %d should differ", i-1, i)
	}
}

func TestManager_IndexStepAndFireResets(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "first", Steps: 1, HourStart: 0, HourEnd: 23},
		{Name: "second", Steps: 1, HourStart: 0, HourEnd: 23},
	}, 1)
	first := surpriseNode(t, "first")
	second := surpriseNode(t, "second")
	m.Bind("first", first)
	m.Bind("second", second)

	m.StepIndex()
	assert.Equal(t, int64(1), m.Index())

	m.Fire()
	m.Update()

	// Index 1 fired the second variant and reset the counter.
	assert.True(t, m.Active("second"))
	assert.False(t, m.Active("first"))
	assert.Equal(t, int64(0), m.Index())
}

func TestManager_IndexWrapsAroundVariants(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "a", Steps: 1, HourStart: 0, HourEnd: 23},
		{Name: "b", Steps: 1, HourStart: 0, HourEnd: 23},
	}, 1)
	m.Bind("a", surpriseNode(t, "a"))
	m.Bind("b", surpriseNode(t, "b"))

	m.StepIndex()
	m.StepIndex() // index 2 wraps to variant 0
	m.Fire()
	m.Update()

	assert.True(t, m.Active("a"))
}

func TestManager_UnknownVariantIsIgnored(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "bird", Steps: 1, HourStart: 0, HourEnd: 23},
	}, 1)
	node := surpriseNode(t, "bird")
	m.Bind("bird", node)

	m.FireVariant("walrus")
	m.Update()
	assert.False(t, m.Active("bird"))
}

func TestManager_AmbientAppearanceWithinHours(t *testing.T) {
	// Chance 1 fires on the first eligible roll.
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "bird", Steps: 2, Chance: 1, HourStart: 0, HourEnd: 23},
	}, 1)
	node := surpriseNode(t, "bird")
	m.Bind("bird", node)

	m.Update()
	assert.True(t, m.Active("bird"))
	assert.False(t, node.SkipDraw())
}

func TestManager_AmbientRespectsHourWindow(t *testing.T) {
	// The fake clock sits at noon; a 2-4 AM window never matches.
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "bird", Steps: 2, Chance: 1, HourStart: 2, HourEnd: 4},
	}, 1)
	node := surpriseNode(t, "bird")
	m.Bind("bird", node)

	for i := 0; i < 5; i++ {
		m.Update()
	}
	assert.False(t, m.Active("bird"))
	assert.True(t, node.SkipDraw())
}

func TestManager_ZeroChanceNeverAppearsAmbiently(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "bird", Steps: 2, Chance: 0, HourStart: 0, HourEnd: 23},
	}, 42)
	node := surpriseNode(t, "bird")
	m.Bind("bird", node)

	for i := 0; i < 50; i++ {
		m.Update()
	}
	assert.False(t, m.Active("bird"))
}

func TestManager_UnboundVariantNeverAppears(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "bird", Steps: 2, Chance: 1, HourStart: 0, HourEnd: 23},
	}, 1)

	m.FireVariant("bird")
	m.Update()
	assert.False(t, m.Active("bird"))
}

func TestManager_Names(t *testing.T) {
	m, _ := newTestManager(t, []config.SurpriseConfig{
		{Name: "a"}, {Name: "b"},
	}, 1)
	assert.Equal(t, []string{"a", "b"}, m.Names())
}
