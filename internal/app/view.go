package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/tenfoot/internal/ui"
)

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.surface.SetSize(ctx.TilesPerRow, ctx.VisibleRows)
	if m.logs != nil {
		m.logs.SetSize(ctx.TerminalWidth, ctx.ContentHeight)
	}
}

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.updateHeader()
	ctx := ui.GetViewContext()

	var content string
	switch {
	case m.logs != nil:
		content = m.logs.View()
	case m.screen == ScreenDetails && m.details != nil:
		content = m.details.View(ctx.TerminalWidth, ctx.ContentHeight)
	default:
		content = m.surface.View(ctx.TerminalWidth, m.Feed().Title)
	}
	content = lipgloss.NewStyle().Height(ctx.ContentHeight).MaxHeight(ctx.ContentHeight).Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		content,
		m.footer.View(),
	)
}

// updateHeader shows the focused item and the restoration phase.
func (m *Model) updateHeader() {
	status := "restore: " + m.Controller().Phase().String()
	if m.preview != "" && m.screen == ScreenBrowse {
		status = m.preview + "  " + status
	}
	m.header.SetStatus(status)
}
