package ui

import (
	"log/slog"

	"github.com/zhubert/tenfoot/internal/focus"
	"github.com/zhubert/tenfoot/internal/logger"
)

// Surface is the rendered composition of one browse screen. It owns which
// item holds focus and how far each row is scrolled, and it implements the
// focus handles and viewport controllers the focus package drives.
//
// Focus changes are never reported synchronously. They are queued and the
// host drains them with DrainEvents after the call that caused them returns.
type Surface struct {
	catalog     *focus.RowCatalog
	tilesPerRow int
	visibleRows int

	focused    focus.Position
	inFallback bool
	offsets    map[string]int
	rowOffset  int

	// attachLag makes the next n focus requests fail, modelling rows that
	// have data but are not composed yet.
	attachLag int

	events []focus.FocusChange
	log    *slog.Logger
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{
		catalog:     focus.NewRowCatalog(focus.Layout{}),
		tilesPerRow: 1,
		visibleRows: 1,
		focused:     focus.NoPosition,
		offsets:     make(map[string]int),
		log:         logger.ComponentLogger("surface"),
	}
}

// SetSize sets how many tiles fit across a row and how many rows fit on screen.
func (s *Surface) SetSize(tilesPerRow, visibleRows int) {
	s.tilesPerRow = max(tilesPerRow, 1)
	s.visibleRows = max(visibleRows, 1)
	if !s.focused.IsNone() {
		s.revealRow(s.focused.Row)
		if d, err := s.catalog.Resolve(s.focused.Row); err == nil {
			s.scrollRow(d.Key, s.focused.Item)
		}
	}
}

// SetCatalog installs the current row catalog. If the focused item no longer
// exists the surface simply loses focus, as a real view tree would.
func (s *Surface) SetCatalog(c *focus.RowCatalog) {
	s.catalog = c
	if s.focused.IsNone() {
		return
	}
	d, err := c.Resolve(s.focused.Row)
	if err != nil || s.focused.Item >= d.FocusableCount() {
		s.log.Debug("focused item vanished", "pos", s.focused.String())
		s.focused = focus.NoPosition
	}
}

// Catalog returns the catalog the surface is laid out against.
func (s *Surface) Catalog() *focus.RowCatalog {
	return s.catalog
}

// Reset clears focus and scroll state, as when a screen is composed anew.
func (s *Surface) Reset() {
	s.focused = focus.NoPosition
	s.inFallback = false
	s.rowOffset = 0
	s.offsets = make(map[string]int)
	s.events = nil
	s.attachLag = 0
}

// SetAttachLag makes the next n focus requests fail.
func (s *Surface) SetAttachLag(n int) {
	s.attachLag = max(n, 0)
}

// Focused returns the focused item, or NoPosition.
func (s *Surface) Focused() focus.Position {
	return s.focused
}

// InFallback reports whether focus sits in the region below the last row.
func (s *Surface) InFallback() bool {
	return s.inFallback
}

// RowOffset returns the index of the first visible row.
func (s *Surface) RowOffset() int {
	return s.rowOffset
}

// ItemOffset returns the index of the first visible item of a row.
func (s *Surface) ItemOffset(key string) int {
	return s.offsets[key]
}

// DrainEvents returns and clears the queued focus changes.
func (s *Surface) DrainEvents() []focus.FocusChange {
	ev := s.events
	s.events = nil
	return ev
}

// Handle returns the focus handle for pos. It is the HandleFactory of the
// focus controller.
func (s *Surface) Handle(pos focus.Position) focus.FocusHandle {
	return &tileHandle{s: s, pos: pos}
}

// Viewport returns the horizontal scroll controller for a row. It is the
// ViewportFactory of the focus controller.
func (s *Surface) Viewport(key string) focus.ViewportController {
	return &rowViewport{s: s, key: key}
}

type tileHandle struct {
	s   *Surface
	pos focus.Position
}

// RequestFocus is the restoration path. Only it is subject to attach lag;
// user navigation focuses directly.
func (h *tileHandle) RequestFocus() bool {
	s := h.s
	if !s.focusable(h.pos) {
		return false
	}
	if s.attachLag > 0 {
		s.attachLag--
		s.log.Debug("focus request before attach", "pos", h.pos.String())
		return false
	}
	return s.requestFocus(h.pos)
}

type rowViewport struct {
	s   *Surface
	key string
}

func (v *rowViewport) ScrollToIndex(i int) {
	v.s.scrollRow(v.key, i)
	if idx, ok := v.s.catalog.IndexOfKey(v.key); ok {
		v.s.revealRow(idx)
	}
}

// focusable reports whether pos is an existing item scrolled into view.
func (s *Surface) focusable(pos focus.Position) bool {
	d, err := s.catalog.Resolve(pos.Row)
	if err != nil {
		return false
	}
	if pos.Item < 0 || pos.Item >= d.FocusableCount() {
		return false
	}
	off := s.offsets[d.Key]
	return pos.Item >= off && pos.Item < off+s.tilesPerRow
}

// requestFocus focuses pos when the item exists and is on screen.
func (s *Surface) requestFocus(pos focus.Position) bool {
	if !s.focusable(pos) {
		return false
	}
	s.revealRow(pos.Row)
	s.moveTo(pos)
	return true
}

func (s *Surface) moveTo(pos focus.Position) {
	if !s.focused.IsNone() && s.focused != pos {
		s.events = append(s.events, focus.FocusChange{Position: s.focused, HasFocus: false})
	}
	if s.inFallback {
		s.events = append(s.events, focus.FocusChange{Position: focus.NoPosition, Fallback: true, HasFocus: false})
		s.inFallback = false
	}
	s.focused = pos
	s.events = append(s.events, focus.FocusChange{Position: pos, HasFocus: true})
}

func (s *Surface) enterFallback() {
	if !s.focused.IsNone() {
		s.events = append(s.events, focus.FocusChange{Position: s.focused, HasFocus: false})
	}
	s.focused = focus.NoPosition
	s.inFallback = true
	s.events = append(s.events, focus.FocusChange{Position: focus.NoPosition, Fallback: true, HasFocus: true})
}

func (s *Surface) scrollRow(key string, i int) {
	off := s.offsets[key]
	switch {
	case i < off:
		off = i
	case i >= off+s.tilesPerRow:
		off = i - s.tilesPerRow + 1
	}
	s.offsets[key] = max(off, 0)
}

func (s *Surface) revealRow(row int) {
	switch {
	case row < s.rowOffset:
		s.rowOffset = row
	case row >= s.rowOffset+s.visibleRows:
		s.rowOffset = row - s.visibleRows + 1
	}
	s.rowOffset = max(s.rowOffset, 0)
}

// MoveHorizontal moves focus delta items along the focused row. It reports
// whether focus moved.
func (s *Surface) MoveHorizontal(delta int) bool {
	if s.inFallback || s.focused.IsNone() {
		return s.focusFirst()
	}
	d, err := s.catalog.Resolve(s.focused.Row)
	if err != nil {
		return false
	}
	item := min(max(s.focused.Item+delta, 0), d.FocusableCount()-1)
	if item == s.focused.Item || item < 0 {
		return false
	}
	s.scrollRow(d.Key, item)
	return s.requestFocus(focus.Position{Row: s.focused.Row, Item: item})
}

// MoveVertical moves focus to the next row in direction delta that has
// focusable items. Moving down past the last row enters the fallback
// region; moving up from it returns to the last row.
func (s *Surface) MoveVertical(delta int) bool {
	total := s.catalog.TotalRows()
	if s.inFallback {
		if delta >= 0 {
			return false
		}
		return s.focusRowFrom(total-1, -1, 0)
	}
	if s.focused.IsNone() {
		return s.focusFirst()
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	if s.focusRowFrom(s.focused.Row+step, step, s.focused.Item) {
		return true
	}
	if step > 0 {
		s.enterFallback()
		return true
	}
	return false
}

// focusRowFrom focuses the first non-empty row at or after row walking by
// step, keeping the item column where possible.
func (s *Surface) focusRowFrom(row, step, item int) bool {
	for r := row; r >= 0 && r < s.catalog.TotalRows(); r += step {
		d, err := s.catalog.Resolve(r)
		if err != nil {
			return false
		}
		n := d.FocusableCount()
		if n == 0 {
			continue
		}
		target := min(max(item, s.offsets[d.Key]), n-1)
		s.scrollRow(d.Key, target)
		s.revealRow(r)
		return s.requestFocus(focus.Position{Row: r, Item: target})
	}
	return false
}

func (s *Surface) focusFirst() bool {
	return s.focusRowFrom(0, 1, 0)
}
