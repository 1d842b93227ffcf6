package dashboard

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/logger"
	"github.com/wavelength-fm/kiosk/internal/schedule"
	"github.com/wavelength-fm/kiosk/internal/surprise"
	"github.com/wavelength-fm/kiosk/internal/ui"
	"github.com/wavelength-fm/kiosk/internal/window"
)

// tickMsg advances the dashboard by one frame.
type tickMsg time.Time

// Model is the Bubble Tea model for the kiosk dashboard. All mutation
// happens on the Bubble Tea goroutine; the containers it reads from are
// lock-free snapshots, so a slow fetch can never stall a frame.
type Model struct {
	cfg   *config.Config
	theme ui.Theme

	tree       *window.Tree
	sched      *schedule.Scheduler
	surprises  *surprise.Manager
	containers *Containers

	frames *schedule.FrameCounter
	spin   spinner.Model
	log    logger.Logger

	width    int
	height   int
	quitting bool
}

// NewModel wires a booted container set into a ready-to-run dashboard
// model. External signal intake is owned by the caller; it only needs the
// scheduler's trigger entry point.
func NewModel(cfg *config.Config, cs *Containers, surprises *surprise.Manager,
	rng *rand.Rand, log logger.Logger) (Model, error) {

	if log == nil {
		log = logger.Default()
	}

	frames := schedule.NewFrameCounter(cfg.FPS)
	sched := schedule.NewScheduler(frames, log)
	cs.RegisterAll(sched)

	tree, err := BuildTree(cfg, cs, surprises, rng)
	if err != nil {
		return Model{}, err
	}

	return Model{
		cfg:        cfg,
		theme:      ui.ByName(cfg.Theme),
		tree:       tree,
		sched:      sched,
		surprises:  surprises,
		containers: cs,
		frames:     frames,
		spin:       ui.NewSpinner(),
		log:        log,
	}, nil
}

// Scheduler exposes the trigger entry point the signal registry enqueues
// into.
func (m Model) Scheduler() *schedule.Scheduler {
	return m.sched
}

// Tree exposes the window tree for tests and the status command.
func (m Model) Tree() *window.Tree {
	return m.tree
}

// Init starts the frame ticker and the refresh spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.spin.Tick)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.frames.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and advances the dashboard state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tree.Resolve(window.Rect{W: float64(msg.Width), H: float64(msg.Height)})

	case tickMsg:
		m.step(time.Time(msg))
		return m, m.tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// step runs one frame: scheduler cadences and pending triggers, the
// surprise manager, then the tree's diff-and-transition pass.
func (m *Model) step(now time.Time) {
	m.frames.Tick()
	m.sched.Tick(now)
	m.surprises.Update()

	for _, change := range m.tree.Update() {
		m.log.Debug("window %s content changed (%s -> %s)",
			change.NodeID, change.Old.Kind, change.New.Kind)
	}
}
