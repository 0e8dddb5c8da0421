package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/tenfoot/internal/focus"
)

// RowTitler maps a row key to its display title.
type RowTitler func(key string) string

const fallbackText = "· end of catalog ·"

// View renders the visible rows and, when scrolled far enough, the fallback
// region below the last row.
func (s *Surface) View(width int, title RowTitler) string {
	rows := s.catalog.Rows()
	var parts []string

	end := min(s.rowOffset+s.visibleRows, len(rows))
	for i := s.rowOffset; i < end; i++ {
		parts = append(parts, s.renderRow(rows[i], width, title))
	}

	if end == len(rows) {
		style := FallbackStyle
		if s.inFallback {
			style = FallbackFocusedStyle
		}
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(fallbackText)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *Surface) renderRow(d focus.RowDescriptor, width int, title RowTitler) string {
	focusedRow := !s.focused.IsNone() && s.focused.Row == d.Index

	name := d.Key
	if title != nil {
		name = title(d.Key)
	}
	titleStyle := RowTitleStyle
	if focusedRow {
		titleStyle = RowTitleFocusedStyle
	}
	heading := titleStyle.Render(name)

	var status string
	switch {
	case d.HasError():
		status = RowErrorStyle.Render("unavailable, press r to retry")
	case d.IsLoading() && d.LiveItemCount() == 0:
		status = RowStatusStyle.Render("loading…")
	case d.IsLoading():
		status = RowStatusStyle.Render(fmt.Sprintf("%d loaded, more coming…", d.LiveItemCount()))
	}
	if status != "" {
		heading += "  " + status
	}

	var tiles []string
	off := s.offsets[d.Key]
	count := d.FocusableCount()
	for i := off; i < min(off+s.tilesPerRow, count); i++ {
		item, _ := d.ItemAt(i)
		focused := focusedRow && s.focused.Item == i
		tiles = append(tiles, renderTile(item.Title, d.Kind, focused))
		if TileGap > 0 {
			tiles = append(tiles, strings.Repeat(" ", TileGap))
		}
	}

	body := RowStatusStyle.Render("  (empty)")
	if len(tiles) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
		if off > 0 {
			body = "‹" + body
		}
		if off+s.tilesPerRow < count {
			body += "›"
		}
	}

	row := lipgloss.JoinVertical(lipgloss.Left, heading, body)
	return lipgloss.NewStyle().MaxWidth(width).Height(RowHeight).Render(row)
}

// renderTile draws one item, truncating its title to the tile's inner width.
func renderTile(title string, kind focus.RowKind, focused bool) string {
	style := TileStyle
	switch {
	case focused:
		style = TileFocusedStyle
	case kind == focus.KindHero:
		style = HeroTileStyle
	}
	inner := TileWidth - BorderSize - 2
	return style.Width(TileWidth).Render(runewidth.Truncate(title, inner, "…"))
}
