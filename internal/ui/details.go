package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/tenfoot/internal/focus"
)

// Details is the item page opened from the browse screen. Opening it
// navigates away from the browse screen; closing it returns there.
type Details struct {
	Item     focus.Item
	RowTitle string
	Position focus.Position
}

// View renders the details page centered in width x height.
func (d Details) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render(d.Item.Title))
	sb.WriteString("\n\n")
	sb.WriteString(FooterDescStyle.Render("from "))
	sb.WriteString(RowTitleStyle.Render(d.RowTitle))
	sb.WriteString("\n")
	sb.WriteString(FooterDescStyle.Render(fmt.Sprintf("row %d, item %d", d.Position.Row, d.Position.Item+1)))
	sb.WriteString("\n")
	sb.WriteString(FooterDescStyle.Render("id " + d.Item.ID))
	sb.WriteString("\n\n")
	sb.WriteString(FooterKeyStyle.Render("esc"))
	sb.WriteString(FooterDescStyle.Render(": back to browse"))

	panelWidth := min(max(width/2, 40), max(width-4, 10))
	panel := PanelStyle.Width(panelWidth).Padding(1, 2).Render(sb.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
