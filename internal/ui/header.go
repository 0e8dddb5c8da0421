package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const headerTitle = " tenfoot"

// Header represents the top header bar
type Header struct {
	width   int
	layouts []string
	active  int
	status  string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetLayouts sets the layout names shown as tabs and which one is active
func (h *Header) SetLayouts(names []string, active int) {
	h.layouts = names
	h.active = active
}

// SetStatus sets the right-aligned status text, typically the restore phase
func (h *Header) SetStatus(status string) {
	h.status = status
}

// View renders the header
func (h *Header) View() string {
	left := headerTitle
	for i, name := range h.layouts {
		if i == h.active {
			left += "  [" + name + "]"
		} else {
			left += "   " + name + " "
		}
	}

	var right string
	if h.status != "" {
		right = h.status + " "
	}

	paddingLen := h.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if paddingLen < 0 {
		paddingLen = 0
	}

	content := left + strings.Repeat(" ", paddingLen) + right
	if h.width > 0 {
		content = ansi.Truncate(content, h.width, "…")
	}
	return h.renderGradient(content, len([]rune(left)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a primary-to-background gradient.
// Runes past statusStart use the muted text color.
func (h *Header) renderGradient(content string, statusStart int) string {
	if len(content) == 0 {
		return ""
	}

	startR, startG, startB := parseHexColor(hexPrimary)
	endR, endG, endB := parseHexColor(hexBg)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < len(headerTitle))

		if i >= statusStart {
			style = style.Foreground(ColorTextMuted)
		} else {
			style = style.Foreground(ColorText)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
