// Package keys provides string constants for Bubble Tea v2 key press events
// and the remote-control key map of the browse screen.
//
// The constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// and are guaranteed to match the actual runtime values. Using these constants
// instead of hardcoded strings prevents typo bugs (e.g., "escape" vs "esc").
package keys

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Left   = tea.KeyPressMsg{Code: tea.KeyLeft}.String()   // "left"
	Right  = tea.KeyPressMsg{Code: tea.KeyRight}.String()  // "right"
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter     = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                    // "enter"
	Tab       = tea.KeyPressMsg{Code: tea.KeyTab}.String()                      // "tab"
	ShiftTab  = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String() // "shift+tab"
	Backspace = tea.KeyPressMsg{Code: tea.KeyBackspace}.String()                // "backspace"
	Escape    = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                   // "esc"
)

// Ctrl combinations
var (
	CtrlC = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlL = (tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}).String() // "ctrl+l"
	CtrlR = (tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}).String() // "ctrl+r"
)

// KeyMap is the remote-control mapping. It satisfies help.KeyMap.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Back    key.Binding
	Layout  key.Binding
	Retry   key.Binding
	Logs    key.Binding
	Quit    key.Binding
	Refresh key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys(Up, "k"), key.WithHelp("↑/↓", "rows")),
		Down:    key.NewBinding(key.WithKeys(Down, "j"), key.WithHelp("↓", "down")),
		Left:    key.NewBinding(key.WithKeys(Left, "h"), key.WithHelp("←/→", "items")),
		Right:   key.NewBinding(key.WithKeys(Right, "l"), key.WithHelp("→", "right")),
		Select:  key.NewBinding(key.WithKeys(Enter), key.WithHelp("enter", "details")),
		Back:    key.NewBinding(key.WithKeys(Escape, Backspace), key.WithHelp("esc", "back")),
		Layout:  key.NewBinding(key.WithKeys(Tab, ShiftTab), key.WithHelp("tab", "layout")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry row")),
		Logs:    key.NewBinding(key.WithKeys(CtrlL), key.WithHelp("ctrl+l", "logs")),
		Refresh: key.NewBinding(key.WithKeys(CtrlR), key.WithHelp("ctrl+r", "reload log")),
		Quit:    key.NewBinding(key.WithKeys("q", CtrlC), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Select, k.Back, k.Layout, k.Retry, k.Logs, k.Quit}
}

// FullHelp lists every binding, grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Back, k.Layout},
		{k.Retry, k.Logs, k.Refresh, k.Quit},
	}
}
