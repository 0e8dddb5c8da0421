package focus

import (
	"github.com/google/btree"

	perrors "github.com/zhubert/tenfoot/internal/errors"
)

// FocusHandle is the capability to place input focus on one item. The
// rendering layer implements it; RequestFocus reports false while the item
// is not attachable yet.
type FocusHandle interface {
	RequestFocus() bool
}

// HandleFactory creates the handle for a position on first reference.
type HandleFactory func(pos Position) FocusHandle

type handleEntry struct {
	pos    Position
	handle FocusHandle
}

func lessEntry(a, b handleEntry) bool {
	if a.pos.Row != b.pos.Row {
		return a.pos.Row < b.pos.Row
	}
	return a.pos.Item < b.pos.Item
}

// HandlePool memoizes focus handles by position. Entries are ordered by
// (row, item) so dropping a row range is a single ascending scan.
//
// A handle granted to a caller stays valid after eviction; eviction only
// forgets the mapping. Callers re-fetch through GetOrCreate.
type HandlePool struct {
	maxPerRow int
	factory   HandleFactory
	tree      *btree.BTreeG[handleEntry]
	perRow    map[int]int
}

// NewHandlePool creates a pool that never holds more than maxPerRow handles
// for any row.
func NewHandlePool(maxPerRow int, factory HandleFactory) *HandlePool {
	if maxPerRow < 1 {
		maxPerRow = 1
	}
	return &HandlePool{
		maxPerRow: maxPerRow,
		factory:   factory,
		tree:      btree.NewG(16, lessEntry),
		perRow:    make(map[int]int),
	}
}

// GetOrCreate returns the memoized handle for pos, creating it if needed.
// Positions with a negative coordinate or an item at or beyond the per-row
// cap are refused.
func (p *HandlePool) GetOrCreate(pos Position) (FocusHandle, error) {
	if pos.Row < 0 || pos.Item < 0 || pos.Item >= p.maxPerRow {
		return nil, perrors.IndexOutOfRange(pos.Row, pos.Item, p.maxPerRow)
	}
	if e, ok := p.tree.Get(handleEntry{pos: pos}); ok {
		return e.handle, nil
	}
	h := p.factory(pos)
	p.tree.ReplaceOrInsert(handleEntry{pos: pos, handle: h})
	p.perRow[pos.Row]++
	return h, nil
}

// EvictRowsAbove drops every handle whose row exceeds maxRow and returns how
// many were dropped.
func (p *HandlePool) EvictRowsAbove(maxRow int) int {
	var doomed []handleEntry
	p.tree.AscendGreaterOrEqual(handleEntry{pos: Position{Row: maxRow + 1, Item: -1}}, func(e handleEntry) bool {
		doomed = append(doomed, e)
		return true
	})
	for _, e := range doomed {
		p.remove(e)
	}
	return len(doomed)
}

// SetMaxPerRow changes the per-row cap. Lowering it evicts handles at or
// beyond the new cap; the count of evicted handles is returned.
func (p *HandlePool) SetMaxPerRow(n int) int {
	if n < 1 {
		n = 1
	}
	p.maxPerRow = n

	var doomed []handleEntry
	p.tree.Ascend(func(e handleEntry) bool {
		if e.pos.Item >= n {
			doomed = append(doomed, e)
		}
		return true
	})
	for _, e := range doomed {
		p.remove(e)
	}
	return len(doomed)
}

func (p *HandlePool) remove(e handleEntry) {
	if _, ok := p.tree.Delete(e); !ok {
		return
	}
	p.perRow[e.pos.Row]--
	if p.perRow[e.pos.Row] <= 0 {
		delete(p.perRow, e.pos.Row)
	}
}

// MaxPerRow returns the current per-row cap.
func (p *HandlePool) MaxPerRow() int {
	return p.maxPerRow
}

// Size returns the total number of pooled handles.
func (p *HandlePool) Size() int {
	return p.tree.Len()
}

// RowSize returns the number of pooled handles for one row.
func (p *HandlePool) RowSize(row int) int {
	return p.perRow[row]
}
