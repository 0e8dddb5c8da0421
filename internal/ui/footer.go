package ui

import (
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/tenfoot/internal/keys"
)

// FlashType selects the styling of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashTickMsg is delivered FlashDuration after a flash was shown
type FlashTickMsg struct {
	At time.Time
}

// FlashTick returns a command that fires once the current flash may expire
func FlashTick() tea.Cmd {
	return tea.Tick(FlashDuration, func(t time.Time) tea.Msg {
		return FlashTickMsg{At: t}
	})
}

type flash struct {
	text    string
	kind    FlashType
	shownAt time.Time
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width  int
	help   help.Model
	keymap keys.KeyMap
	flash  *flash
	now    func() time.Time
}

// NewFooter creates a new footer
func NewFooter(km keys.KeyMap) *Footer {
	h := help.New()
	h.Styles.ShortKey = FooterKeyStyle
	h.Styles.ShortDesc = FooterDescStyle
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(ColorBorder)
	h.Styles.Ellipsis = FooterDescStyle
	h.ShortSeparator = "  |  "
	return &Footer{help: h, keymap: km, now: time.Now}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
	f.help.SetWidth(max(width-2, 0))
}

// SetFlash replaces any flash currently shown
func (f *Footer) SetFlash(text string, kind FlashType) {
	f.flash = &flash{text: text, kind: kind, shownAt: f.now()}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flash = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flash != nil
}

// ExpireFlash clears the flash if it has been shown for FlashDuration by at.
// A newer flash set after the tick was scheduled survives.
func (f *Footer) ExpireFlash(at time.Time) {
	if f.flash != nil && !at.Before(f.flash.shownAt.Add(FlashDuration)) {
		f.flash = nil
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flash != nil {
		var style lipgloss.Style
		switch f.flash.kind {
		case FlashError:
			style = FlashErrorStyle
		case FlashWarning:
			style = FlashWarningStyle
		case FlashSuccess:
			style = FlashSuccessStyle
		default:
			style = FlashInfoStyle
		}
		return FooterStyle.Width(f.width).Render(style.Render(f.flash.text))
	}
	return FooterStyle.Width(f.width).Render(f.help.ShortHelpView(f.keymap.ShortHelp()))
}
