package feed

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/focus"
)

// PrefetchDistance is how close to the end of the loaded items focus may get
// before the next page is requested.
const PrefetchDistance = 3

const heroSize = 5

var sportTypes = []string{"Football", "Basketball", "Tennis", "Motorsport", "Cycling", "Golf"}

type variant struct {
	label  string
	hero   string
	policy focus.ProviderRowPolicy
	sports bool
}

var variants = map[string]variant{
	config.LayoutMovies: {label: "Movie", hero: "Featured film"},
	config.LayoutShows:  {label: "Show", hero: "Featured series"},
	config.LayoutSports: {label: "Match", hero: "Live now", policy: focus.ProviderRowReserved, sports: true},
}

// Set is the collection of feeds behind one catalog layout.
type Set struct {
	name      string
	policy    focus.ProviderRowPolicy
	latency   time.Duration
	hero      *Row
	providers *Row
	catalogs  []*Row
	genres    []*Row
	byKey     map[string]*Row
}

// New builds the feeds for a layout from the catalog config.
func New(layout string, cfg config.CatalogConfig) *Set {
	v, ok := variants[layout]
	if !ok {
		v = variants[config.LayoutMovies]
	}

	s := &Set{
		name:    layout,
		policy:  v.policy,
		latency: cfg.PageLatency,
		byKey:   make(map[string]*Row),
	}

	heroItems := make([]string, heroSize)
	for i := range heroItems {
		heroItems[i] = fmt.Sprintf("%s %d", v.hero, i+1)
	}
	s.hero = s.add(NewStaticRow(focus.HeroKey, v.hero, heroItems))

	providers := cfg.Providers
	providerTitle := "Providers"
	if v.sports {
		providers = sportTypes
		providerTitle = "Sports"
	}
	s.providers = s.add(NewStaticRow(focus.ProvidersKey, providerTitle, providers))

	for _, name := range cfg.Catalogs {
		s.catalogs = append(s.catalogs, s.add(NewRow(focus.CatalogKey(name), name, v.label, cfg.ItemsPerRow, cfg.PageSize)))
	}
	for _, name := range cfg.Genres {
		s.genres = append(s.genres, s.add(NewRow(focus.GenreKey(name), name, v.label, cfg.ItemsPerRow/2, cfg.PageSize)))
	}

	for _, key := range cfg.Failing {
		if r, ok := s.byKey[key]; ok {
			r.SetFailing(true)
		}
	}

	return s
}

func (s *Set) add(r *Row) *Row {
	r.feed = s.name
	s.byKey[r.Key()] = r
	return r
}

// Name returns the layout name.
func (s *Set) Name() string {
	return s.name
}

// Layout returns the row sources in display order.
func (s *Set) Layout() focus.Layout {
	l := focus.Layout{
		Policy:    s.policy,
		Hero:      s.hero,
		Providers: s.providers,
	}
	for _, r := range s.catalogs {
		l.Catalogs = append(l.Catalogs, r)
	}
	for _, r := range s.genres {
		l.Genres = append(l.Genres, r)
	}
	return l
}

// Row returns the feed for a row key.
func (s *Set) Row(key string) (*Row, bool) {
	r, ok := s.byKey[key]
	return r, ok
}

// Title returns a row's display title, or the key when unknown.
func (s *Set) Title(key string) string {
	if r, ok := s.byKey[key]; ok {
		return r.Title()
	}
	return key
}

// Start requests the first page of every paginated row.
func (s *Set) Start() tea.Cmd {
	var cmds []tea.Cmd
	for _, group := range [][]*Row{s.catalogs, s.genres} {
		for _, r := range group {
			if cmd := r.NextPage(s.latency); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

// Apply routes a delivered page to its row. It reports whether any row
// changed.
func (s *Set) Apply(msg PageMsg) bool {
	if msg.Feed != s.name {
		return false
	}
	r, ok := s.byKey[msg.Key]
	if !ok {
		return false
	}
	return r.Apply(msg)
}

// LoadNear requests the next page of a row when item is within
// PrefetchDistance of the loaded end.
func (s *Set) LoadNear(key string, item int) tea.Cmd {
	r, ok := s.byKey[key]
	if !ok || item < r.LiveItemCount()-PrefetchDistance {
		return nil
	}
	return r.NextPage(s.latency)
}

// Retry clears a row's error and requests its next page again.
func (s *Set) Retry(key string) tea.Cmd {
	r, ok := s.byKey[key]
	if !ok || !r.HasError() {
		return nil
	}
	r.SetFailing(false)
	r.Retry()
	return r.NextPage(s.latency)
}
