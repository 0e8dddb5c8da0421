package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// maxPumpMessages bounds a single Pump so a command that keeps rescheduling
// itself cannot hang a headless run.
const maxPumpMessages = 10000

// Pump runs cmd and every command it leads to synchronously, feeding each
// message back through Update. Batches are expanded depth first and quit
// messages are dropped. It only suits headless runs where every command
// completes immediately: focus.ImmediateScheduler, zero page latency and
// Options.Headless.
func (m *Model) Pump(cmd tea.Cmd) (int, error) {
	return m.PumpWith(cmd, nil)
}

// PumpWith is Pump with a hold filter. Messages for which hold returns true
// are not delivered; the caller keeps them and sends them later.
func (m *Model) PumpWith(cmd tea.Cmd, hold func(tea.Msg) bool) (int, error) {
	n := 0
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		switch msg := msg.(type) {
		case nil, tea.QuitMsg:
			continue
		case tea.BatchMsg:
			queue = append(append([]tea.Cmd{}, msg...), queue...)
			continue
		}
		if hold != nil && hold(msg) {
			continue
		}

		n++
		if n > maxPumpMessages {
			return n, fmt.Errorf("pump did not settle after %d messages", maxPumpMessages)
		}
		_, follow := m.Update(msg)
		queue = append([]tea.Cmd{follow}, queue...)
	}
	return n, nil
}

// Send delivers one message and pumps whatever it returns.
func (m *Model) Send(msg tea.Msg) error {
	_, cmd := m.Update(msg)
	_, err := m.Pump(cmd)
	return err
}
