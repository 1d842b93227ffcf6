// Package surprise runs the dashboard's easter-egg windows: configured art
// variants that appear either by a small ambient chance during allowed
// hours, or on demand when fired over the control socket or by process
// signal. A visible surprise hides itself again after its configured number
// of update steps, optionally flickering while shown.
package surprise

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/logger"
	"github.com/wavelength-fm/kiosk/internal/window"
)

// fireBuffer bounds pending fire requests from signal goroutines.
const fireBuffer = 8

// fireByIndex is the sentinel payload for "fire whatever the index points at".
const fireByIndex = ""

type variantState struct {
	cfg  config.SurpriseConfig
	node *window.Node

	nextStep time.Time

	// stepsShown counts update steps since activation; -1 means inactive.
	stepsShown int
}

// Manager owns all configured surprise variants and their appearance state.
// StepIndex, Fire, and FireVariant are safe from any goroutine; Update runs
// on the render loop's goroutine.
type Manager struct {
	variants []*variantState
	index    atomic.Int64
	fires    chan string

	rng *rand.Rand
	now func() time.Time
	log logger.Logger
}

// NewManager builds a manager for the configured variants. rng and now are
// injectable for tests; pass nil for real randomness and wall-clock time.
func NewManager(cfgs []config.SurpriseConfig, rng *rand.Rand, now func() time.Time, log logger.Logger) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Default()
	}

	m := &Manager{
		fires: make(chan string, fireBuffer),
		rng:   rng,
		now:   now,
		log:   log,
	}
	for _, cfg := range cfgs {
		m.variants = append(m.variants, &variantState{cfg: cfg, stepsShown: -1})
	}
	return m
}

// Bind attaches the window node a named variant draws into. Unbound
// variants never appear. The node starts hidden.
func (m *Manager) Bind(name string, node *window.Node) {
	for _, v := range m.variants {
		if v.cfg.Name == name {
			v.node = node
			node.SetSkipDraw(true)
		}
	}
}

// Names returns the configured variant names in order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.variants))
	for i, v := range m.variants {
		names[i] = v.cfg.Name
	}
	return names
}

// Index returns the current variant-selection index.
func (m *Manager) Index() int64 {
	return m.index.Load()
}

// StepIndex advances the variant-selection index by one. Wired to SIGUSR1.
func (m *Manager) StepIndex() {
	m.index.Add(1)
}

// Fire requests an appearance of the variant the index points at, then
// resets the index. Wired to SIGUSR2.
func (m *Manager) Fire() {
	m.enqueue(fireByIndex)
}

// FireVariant requests an appearance of a named variant. Wired to the
// surprise control socket.
func (m *Manager) FireVariant(name string) {
	m.enqueue(name)
}

func (m *Manager) enqueue(name string) {
	select {
	case m.fires <- name:
	default:
		m.log.Warn("surprise fire queue full, dropping request")
	}
}

// Active reports whether the named variant is currently in its appearance
// period.
func (m *Manager) Active(name string) bool {
	for _, v := range m.variants {
		if v.cfg.Name == name {
			return v.stepsShown >= 0
		}
	}
	return false
}

// Update runs one manager step: apply pending external fires, then give
// each variant its own update step when its cadence has elapsed. An
// inactive variant rolls for an ambient appearance within its allowed
// hours; an active one counts down its visibility window, flickering if
// configured, and hides after its configured steps.
func (m *Manager) Update() {
	now := m.now()

	for {
		select {
		case name := <-m.fires:
			m.applyFire(name)
		default:
			for _, v := range m.variants {
				m.stepVariant(v, now)
			}
			return
		}
	}
}

func (m *Manager) applyFire(name string) {
	if len(m.variants) == 0 {
		return
	}

	var target *variantState
	if name == fireByIndex {
		idx := m.index.Swap(0)
		target = m.variants[int(idx)%len(m.variants)]
	} else {
		for _, v := range m.variants {
			if v.cfg.Name == name {
				target = v
				break
			}
		}
		if target == nil {
			m.log.Warn("surprise fired for unknown variant %q", name)
			return
		}
	}

	m.log.Info("surprise fired: %s", target.cfg.Name)
	m.activate(target)
}

func (m *Manager) activate(v *variantState) {
	if v.node == nil {
		return
	}
	v.stepsShown = 0
	v.node.SetSkipDraw(false)
}

func (m *Manager) stepVariant(v *variantState, now time.Time) {
	if v.node == nil || now.Before(v.nextStep) {
		return
	}
	cadence := v.cfg.Cadence
	if cadence <= 0 {
		cadence = time.Second
	}
	v.nextStep = now.Add(cadence)

	if v.stepsShown < 0 {
		if m.inHourWindow(v.cfg, now) && m.rng.Float64() < v.cfg.Chance {
			m.log.Info("ambient surprise: %s", v.cfg.Name)
			m.activate(v)
		}
		return
	}

	v.stepsShown++
	if v.stepsShown > v.cfg.Steps {
		v.stepsShown = -1
		v.node.SetSkipDraw(true)
		return
	}
	if v.cfg.Flicker {
		v.node.SetSkipDraw(!v.node.SkipDraw())
	} else {
		v.node.SetSkipDraw(false)
	}
}

// inHourWindow reports whether the local hour lies within the variant's
// inclusive appearance window.
func (m *Manager) inHourWindow(cfg config.SurpriseConfig, now time.Time) bool {
	h := now.Hour()
	return h >= cfg.HourStart && h <= cfg.HourEnd
}
