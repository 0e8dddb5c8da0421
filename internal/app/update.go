package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tenfoot/internal/feed"
	"github.com/zhubert/tenfoot/internal/focus"
	"github.com/zhubert/tenfoot/internal/keys"
	"github.com/zhubert/tenfoot/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case feed.PageMsg:
		return m, m.handlePage(msg)

	case focus.StepMsg:
		ctrl, ok := m.controllers[msg.Screen]
		if !ok {
			return m, nil
		}
		cmd := ctrl.Update(msg)
		return m, tea.Batch(cmd, m.drainFocus(), m.pendingFlash())

	case ui.FlashTickMsg:
		m.footer.ExpireFlash(msg.At)
		return m, nil

	case tea.KeyPressMsg:
		if m.logs != nil {
			return m, m.handleLogsKey(msg)
		}
		return m.handleKeyPress(msg)
	}

	if m.logs != nil {
		return m, m.logs.Update(msg)
	}
	return m, nil
}

// handlePage applies a feed page. Only the layout on screen rebuilds its
// catalog now; the others rebuild when they are next shown.
func (m *Model) handlePage(msg feed.PageMsg) tea.Cmd {
	set, ok := m.feeds[msg.Feed]
	if !ok || !set.Apply(msg) {
		return nil
	}
	if msg.Err != nil {
		m.log.Warn("feed page failed", "layout", msg.Feed, "row", msg.Key, "error", msg.Err)
	}
	if msg.Feed != m.Layout() || m.screen != ScreenBrowse {
		return nil
	}
	return m.dataChanged()
}

// dataChanged rebuilds the active catalog and lays the surface out against it.
func (m *Model) dataChanged() tea.Cmd {
	ctrl := m.Controller()
	cmd := ctrl.DataChanged()
	m.surface.SetCatalog(ctrl.Catalog())
	return tea.Batch(cmd, m.drainFocus())
}

// drainFocus feeds queued surface focus events to the active controller,
// keeps the header preview of the focused item current, and prefetches
// pages for rows that gained focus near their loaded end.
func (m *Model) drainFocus() tea.Cmd {
	ctrl := m.Controller()
	var cmds []tea.Cmd
	for _, ev := range m.surface.DrainEvents() {
		cmds = append(cmds, ctrl.Handle(ev))
		if !ev.HasFocus || ev.Fallback {
			continue
		}
		if d, err := ctrl.Catalog().Resolve(ev.Position.Row); err == nil {
			if item, ok := d.ItemAt(ev.Position.Item); ok {
				m.preview = m.Feed().Title(d.Key) + " · " + item.Title
			}
			cmds = append(cmds, m.Feed().LoadNear(d.Key, ev.Position.Item))
		}
	}
	if ctrl.ClearTransient() {
		m.preview = ""
	}
	return tea.Batch(cmds...)
}

// pendingFlash starts the dismiss timer for a flash raised outside a key
// handler, such as by the restoration engine's row error callback.
func (m *Model) pendingFlash() tea.Cmd {
	if !m.flashRaised {
		return nil
	}
	m.flashRaised = false
	return m.flashTick()
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.keymap

	if key.Matches(msg, km.Quit) {
		m.Controller().Leave()
		return m, tea.Quit
	}
	if key.Matches(msg, km.Logs) {
		m.logs = ui.NewLogViewer(ui.GetLogFiles(), m.width, max(m.height-ui.HeaderHeight-ui.FooterHeight, 1))
		return m, nil
	}

	if m.screen == ScreenDetails {
		if key.Matches(msg, km.Back) {
			return m, m.closeDetails()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, km.Up):
		m.surface.MoveVertical(-1)
	case key.Matches(msg, km.Down):
		m.surface.MoveVertical(1)
	case key.Matches(msg, km.Left):
		m.surface.MoveHorizontal(-1)
	case key.Matches(msg, km.Right):
		m.surface.MoveHorizontal(1)
	case key.Matches(msg, km.Select):
		return m, m.openDetails()
	case key.Matches(msg, km.Layout):
		step := 1
		if msg.String() == keys.ShiftTab {
			step = len(m.layouts) - 1
		}
		return m, m.switchLayout((m.active + step) % len(m.layouts))
	case key.Matches(msg, km.Retry):
		return m, m.retry()
	default:
		return m, nil
	}
	return m, m.drainFocus()
}

// openDetails navigates from browse to the focused item's page.
func (m *Model) openDetails() tea.Cmd {
	pos := m.surface.Focused()
	if pos.IsNone() {
		return nil
	}
	d, err := m.Controller().Catalog().Resolve(pos.Row)
	if err != nil {
		return nil
	}
	item, ok := d.ItemAt(pos.Item)
	if !ok {
		return nil
	}

	m.Controller().Leave()
	m.details = &ui.Details{Item: item, RowTitle: m.Feed().Title(d.Key), Position: pos}
	m.screen = ScreenDetails
	m.log.Debug("opened details", "pos", pos.String(), "item", item.ID)
	return nil
}

// closeDetails returns to browse, which restores focus.
func (m *Model) closeDetails() tea.Cmd {
	m.details = nil
	m.screen = ScreenBrowse
	return m.activate()
}

// switchLayout leaves the current layout and shows layout i.
func (m *Model) switchLayout(i int) tea.Cmd {
	if i == m.active {
		return nil
	}
	m.Controller().Leave()
	m.active = i
	m.header.SetLayouts(m.layouts, m.active)
	return m.activate()
}

// retry re-requests every row whose feed errored.
func (m *Model) retry() tea.Cmd {
	set := m.Feed()
	var cmds []tea.Cmd
	for _, d := range m.Controller().Catalog().Rows() {
		if cmd := set.Retry(d.Key); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return m.ShowFlashInfo("Nothing to retry")
	}
	cmds = append(cmds, m.ShowFlashInfo(fmt.Sprintf("Retrying %d row(s)", len(cmds))), m.dataChanged())
	return tea.Batch(cmds...)
}

func (m *Model) handleLogsKey(msg tea.KeyPressMsg) tea.Cmd {
	km := m.keymap
	switch {
	case key.Matches(msg, km.Quit):
		m.Controller().Leave()
		return tea.Quit
	case key.Matches(msg, km.Back), key.Matches(msg, km.Logs):
		m.logs = nil
	case key.Matches(msg, km.Refresh):
		m.logs.Refresh()
	case key.Matches(msg, km.Left):
		m.logs.PrevFile()
	case key.Matches(msg, km.Right):
		m.logs.NextFile()
	case msg.String() == "f":
		m.logs.ToggleFollowTail()
	default:
		return m.logs.Update(msg)
	}
	return nil
}
