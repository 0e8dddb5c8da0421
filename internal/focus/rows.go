package focus

// RowKind identifies which group a row belongs to.
type RowKind int

const (
	KindHero RowKind = iota
	KindProviders
	KindCatalog
	KindGenre
)

func (k RowKind) String() string {
	switch k {
	case KindHero:
		return "hero"
	case KindProviders:
		return "providers"
	case KindCatalog:
		return "catalog"
	case KindGenre:
		return "genre"
	default:
		return "unknown"
	}
}

// Stable keys for the two singleton rows. Catalog and genre rows use
// "catalog_<name>" and "genre_<name>".
const (
	HeroKey      = "hero"
	ProvidersKey = "providers"
)

// CatalogKey returns the stable row key for a named catalog.
func CatalogKey(name string) string { return "catalog_" + name }

// GenreKey returns the stable row key for a named genre.
func GenreKey(name string) string { return "genre_" + name }

// Item is one materialized entry of a row.
type Item struct {
	ID    string
	Title string
}

// RowSource is the data side of a row, supplied by the pagination layer.
type RowSource interface {
	Key() string
	// LiveItemCount is the number of items materialized so far.
	LiveItemCount() int
	ItemAt(i int) (Item, bool)
	HasError() bool
	// IsLoading reports a page request in flight.
	IsLoading() bool
}

// RowDescriptor is a resolved row: its kind, stable key, flat index and its
// index inside its group. Item count and error state are read live from the
// backing source.
type RowDescriptor struct {
	Kind  RowKind
	Key   string
	Index int
	Group int

	source RowSource
}

// LiveItemCount returns the current number of materialized items.
func (d RowDescriptor) LiveItemCount() int {
	if d.source == nil {
		return 0
	}
	return d.source.LiveItemCount()
}

func (d RowDescriptor) HasError() bool {
	return d.source != nil && d.source.HasError()
}

func (d RowDescriptor) IsLoading() bool {
	return d.source != nil && d.source.IsLoading()
}

// ItemAt returns the item at index i if it has been materialized.
func (d RowDescriptor) ItemAt(i int) (Item, bool) {
	if d.source == nil {
		return Item{}, false
	}
	return d.source.ItemAt(i)
}

// FocusableCount is the number of items focus may land on. Errored rows are
// treated as empty.
func (d RowDescriptor) FocusableCount() int {
	if d.HasError() {
		return 0
	}
	return d.LiveItemCount()
}

// emptyRow stands in for a singleton row the layout left unset.
type emptyRow struct{ key string }

func (r emptyRow) Key() string { return r.key }
func (emptyRow) LiveItemCount() int { return 0 }
func (emptyRow) ItemAt(int) (Item, bool) { return Item{}, false }
func (emptyRow) HasError() bool { return false }
func (emptyRow) IsLoading() bool { return false }
