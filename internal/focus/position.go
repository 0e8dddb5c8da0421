// Package focus tracks which catalog item holds directional focus and
// re-acquires it after the user navigates away and back.
//
// Everything here runs on the bubbletea update loop. Delays are expressed as
// commands that deliver step messages, so no goroutines or locks touch the
// focus state.
package focus

import "fmt"

// Position addresses one focusable item by row and item index.
type Position struct {
	Row  int `json:"row"`
	Item int `json:"item"`
}

// NoPosition means there is nothing to restore. It is recorded when focus
// leaves the addressable rows entirely.
var NoPosition = Position{Row: -1, Item: -1}

// IsNone reports whether p is the NoPosition sentinel.
func (p Position) IsNone() bool {
	return p == NoPosition
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Item)
}

// Clamp bounds a target item index by the row's live item count and the
// per-row handle cap. A negative result means the row has nothing focusable
// yet. Clamping an index that is already in range returns it unchanged.
func Clamp(item, live, maxPerRow int) int {
	if item < 0 {
		item = 0
	}
	return min(item, live-1, maxPerRow-1)
}
