package focus

import (
	perrors "github.com/zhubert/tenfoot/internal/errors"
)

// ProviderRowPolicy decides whether row 1 belongs to the provider row when
// the provider list is empty.
type ProviderRowPolicy int

const (
	// ProviderRowConditional places the provider row at index 1 only when
	// there is at least one provider. Otherwise catalogs start at row 1.
	ProviderRowConditional ProviderRowPolicy = iota
	// ProviderRowReserved always keeps row 1 for the provider row, even
	// when it is empty. The sports layout uses this for sport types.
	ProviderRowReserved
)

func (p ProviderRowPolicy) String() string {
	if p == ProviderRowReserved {
		return "reserved"
	}
	return "conditional"
}

// Layout is the set of row sources a screen is composed of, in display order.
type Layout struct {
	Policy    ProviderRowPolicy
	Hero      RowSource
	Providers RowSource
	Catalogs  []RowSource
	Genres    []RowSource
}

// Counts are the values the restoration trigger watches.
type Counts struct {
	Providers int // items in the provider row
	Catalogs  int // catalog rows present
	Genres    int // genre rows present
}

// RowCatalog maps flat row indices onto the heterogeneous row groups of a
// Layout. It is a snapshot: rebuild it whenever a count changes.
type RowCatalog struct {
	rows   []RowDescriptor
	byKey  map[string]int
	counts Counts
	policy ProviderRowPolicy
}

// NewRowCatalog resolves the layout into flat rows: hero at 0, the provider
// row next (subject to the policy), then catalogs and genres in the order
// given. A catalog or genre source only gets a row while it has items, has
// errored, or is loading its first page.
func NewRowCatalog(layout Layout) *RowCatalog {
	c := &RowCatalog{
		byKey:  make(map[string]int),
		policy: layout.Policy,
	}

	hero := layout.Hero
	if hero == nil {
		hero = emptyRow{key: HeroKey}
	}
	c.add(KindHero, hero, 0)

	providers := layout.Providers
	if providers == nil {
		providers = emptyRow{key: ProvidersKey}
	}
	c.counts.Providers = providers.LiveItemCount()
	if c.counts.Providers > 0 || layout.Policy == ProviderRowReserved {
		c.add(KindProviders, providers, 0)
	}

	for _, src := range layout.Catalogs {
		if src == nil || !present(src) {
			continue
		}
		if c.add(KindCatalog, src, c.counts.Catalogs) {
			c.counts.Catalogs++
		}
	}
	for _, src := range layout.Genres {
		if src == nil || !present(src) {
			continue
		}
		if c.add(KindGenre, src, c.counts.Genres) {
			c.counts.Genres++
		}
	}

	return c
}

func present(src RowSource) bool {
	return src.LiveItemCount() > 0 || src.HasError() || src.IsLoading()
}

// add appends a row unless its key is already taken.
func (c *RowCatalog) add(kind RowKind, src RowSource, group int) bool {
	key := src.Key()
	if _, dup := c.byKey[key]; dup {
		return false
	}
	d := RowDescriptor{
		Kind:   kind,
		Key:    key,
		Index:  len(c.rows),
		Group:  group,
		source: src,
	}
	c.byKey[key] = d.Index
	c.rows = append(c.rows, d)
	return true
}

// Resolve returns the descriptor for a flat row index. Indices outside
// [0, TotalRows) are rejected with a KindRowNotFound error, never clamped.
func (c *RowCatalog) Resolve(row int) (RowDescriptor, error) {
	if row < 0 || row >= len(c.rows) {
		return RowDescriptor{}, perrors.RowNotFound(row, len(c.rows))
	}
	return c.rows[row], nil
}

// ResolveKey returns the descriptor for a stable row key.
func (c *RowCatalog) ResolveKey(key string) (RowDescriptor, error) {
	idx, ok := c.byKey[key]
	if !ok {
		return RowDescriptor{}, perrors.RowKeyNotFound(key)
	}
	return c.rows[idx], nil
}

// IndexOfKey returns the current flat index of a row key.
func (c *RowCatalog) IndexOfKey(key string) (int, bool) {
	idx, ok := c.byKey[key]
	return idx, ok
}

func (c *RowCatalog) TotalRows() int {
	return len(c.rows)
}

func (c *RowCatalog) Counts() Counts {
	return c.counts
}

func (c *RowCatalog) Policy() ProviderRowPolicy {
	return c.policy
}

// Rows returns the descriptors in display order.
func (c *RowCatalog) Rows() []RowDescriptor {
	out := make([]RowDescriptor, len(c.rows))
	copy(out, c.rows)
	return out
}

// Keys returns the row keys in display order.
func (c *RowCatalog) Keys() []string {
	keys := make([]string, len(c.rows))
	for i, r := range c.rows {
		keys[i] = r.Key
	}
	return keys
}
