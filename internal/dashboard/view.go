package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wavelength-fm/kiosk/internal/ui"
	"github.com/wavelength-fm/kiosk/internal/util"
	"github.com/wavelength-fm/kiosk/internal/window"
)

// View renders the dashboard from the window tree's cached content. It
// never blocks: everything it reads is an in-memory snapshot.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "starting kiosk..."
	}

	header := m.joinRow(m.renderNode(NodeClock), m.renderNode(NodeStream))
	main := m.joinRow(m.renderNode(NodeSpins), m.renderNode(NodeWeather))
	board := m.renderNode(NodeMessages)

	parts := make([]string, 0, 5)
	for _, p := range []string{header, main, board} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if overlay := m.renderSurprises(); overlay != "" {
		parts = append(parts, overlay)
	}
	if refreshing := m.renderRefreshing(); refreshing != "" {
		parts = append(parts, refreshing)
	}
	if strip := m.renderErrorStrip(); strip != "" {
		parts = append(parts, strip)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) joinRow(parts ...string) string {
	var present []string
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	if len(present) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, present...)
}

// renderNode draws one window: its panel sized from the resolved bounds,
// faded according to any running transition.
func (m Model) renderNode(id string) string {
	node := m.tree.Root().Find(id)
	if node == nil || node.SkipDraw() {
		return ""
	}

	content := node.Contents()
	if content.Kind == window.KindSpacer || content.Kind == window.KindComposite {
		return ""
	}

	body, visible := ui.WithOpacity(m.theme.Body, node.Renderable().Opacity)
	if !visible {
		return ""
	}

	var b strings.Builder
	if content.Title != "" {
		b.WriteString(m.theme.Title.Render(content.Title))
		b.WriteByte('\n')
	}
	switch content.Kind {
	case window.KindImage:
		b.WriteString(body.Render(content.ImagePath))
	default:
		b.WriteString(body.Render(content.Text))
	}

	panel := m.theme.Panel
	if w := int(node.Bounds().W); w > 4 {
		panel = panel.Width(w - 2)
	}
	return panel.Render(b.String())
}

// renderSurprises draws whichever surprise overlays are currently visible.
func (m Model) renderSurprises() string {
	var visible []string
	for _, name := range m.surprises.Names() {
		node := m.tree.Root().Find(surpriseNodeID(name))
		if node == nil || node.SkipDraw() {
			continue
		}
		visible = append(visible, m.theme.OnAir.Render(node.Contents().ImagePath))
	}
	if len(visible) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, visible...)
}

// renderRefreshing shows a spinner line while any fetch is in flight.
func (m Model) renderRefreshing() string {
	var names []string
	for _, s := range m.containers.Statuses() {
		if s.Refreshing() {
			names = append(names, s.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	return m.spin.View() + " " + m.theme.Muted.Render("refreshing "+util.JoinOrNone(names))
}

// renderErrorStrip lists sources whose last refresh failed. The strip
// disappears on the next successful refresh.
func (m Model) renderErrorStrip() string {
	failed := m.containers.Failed()
	if len(failed) == 0 {
		return ""
	}
	return m.theme.ErrorStrip.Render(
		ui.SymbolFail + " stale: " + util.JoinOrNone(failed))
}
