package focus

import (
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

const testScreen = "movies"

type fakeSource struct {
	key     string
	n       int
	err     bool
	loading bool
}

func (s *fakeSource) Key() string { return s.key }
func (s *fakeSource) LiveItemCount() int { return s.n }
func (s *fakeSource) HasError() bool { return s.err }
func (s *fakeSource) IsLoading() bool { return s.loading }

func (s *fakeSource) ItemAt(i int) (Item, bool) {
	if i < 0 || i >= s.n {
		return Item{}, false
	}
	return Item{ID: fmt.Sprintf("%s-%d", s.key, i), Title: fmt.Sprintf("Item %d", i)}, true
}

// handleRecorder hands out handles that succeed after failFor attempts.
// failFor < 0 means never.
type handleRecorder struct {
	failFor  int
	created  int
	requests map[Position]int
	total    int

	// echo queues a focus-gained event for every successful request, the
	// way the rendering layer reports focus it was asked to move.
	echo   bool
	gained []Position
}

// flush delivers the queued focus-gained events to c.
func (h *handleRecorder) flush(t *testing.T, c *Controller) {
	t.Helper()
	events := h.gained
	h.gained = nil
	for _, pos := range events {
		drive(t, c, c.Handle(FocusChange{Position: pos, HasFocus: true}))
	}
}

func newHandleRecorder() *handleRecorder {
	return &handleRecorder{requests: make(map[Position]int)}
}

func (h *handleRecorder) factory(pos Position) FocusHandle {
	h.created++
	return &fakeHandle{pos: pos, owner: h}
}

type fakeHandle struct {
	pos   Position
	owner *handleRecorder
}

func (f *fakeHandle) RequestFocus() bool {
	f.owner.requests[f.pos]++
	f.owner.total++
	if f.owner.failFor < 0 || f.owner.total <= f.owner.failFor {
		return false
	}
	if f.owner.echo {
		f.owner.gained = append(f.owner.gained, f.pos)
	}
	return true
}

type scrollCall struct {
	key   string
	index int
}

type scrollRecorder struct {
	calls []scrollCall
}

func (s *scrollRecorder) factory(key string) ViewportController {
	return &fakeViewport{key: key, owner: s}
}

type fakeViewport struct {
	key   string
	owner *scrollRecorder
}

func (v *fakeViewport) ScrollToIndex(i int) {
	v.owner.calls = append(v.owner.calls, scrollCall{key: v.key, index: i})
}

type delayRecorder struct {
	delays []time.Duration
}

func (d *delayRecorder) schedule(delay time.Duration, msg tea.Msg) tea.Cmd {
	d.delays = append(d.delays, delay)
	return ImmediateScheduler(delay, msg)
}

// harness is a controller wired to recording fakes.
type harness struct {
	c       *Controller
	store   *MemoryStore
	handles *handleRecorder
	scrolls *scrollRecorder
	delays  *delayRecorder
	rowErrs []string
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		store:   NewMemoryStore(),
		handles: newHandleRecorder(),
		scrolls: &scrollRecorder{},
		delays:  &delayRecorder{},
	}
	h.c = NewController(testScreen, opts, Deps{
		Store:     h.store,
		Handles:   h.handles.factory,
		Viewports: h.scrolls.factory,
		Schedule:  h.delays.schedule,
		OnRowError: func(d RowDescriptor) {
			h.rowErrs = append(h.rowErrs, d.Key)
		},
	})
	return h
}

// enter persists st, installs the layout and re-enters the screen, driving
// the restoration cycle until it stops scheduling work.
func (h *harness) enter(t *testing.T, layout Layout, st State) {
	t.Helper()
	if err := h.store.Save(testScreen, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	h.c.SetLayout(layout)
	h.delays.delays = nil
	drive(t, h.c, h.c.Enter())
}

func drive(t *testing.T, c *Controller, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 100 {
			t.Fatal("restoration cycle did not settle")
		}
		cmd = c.Update(cmd())
	}
}

func src(key string, n int) *fakeSource {
	return &fakeSource{key: key, n: n}
}

// movieLayout builds hero + providers + catalogs c0.. + genres g0.. with the
// given live item counts.
func movieLayout(providers int, catalogs, genres []int) (Layout, []*fakeSource, []*fakeSource) {
	l := Layout{
		Policy:    ProviderRowConditional,
		Hero:      src(HeroKey, 5),
		Providers: src(ProvidersKey, providers),
	}
	var cats, gens []*fakeSource
	for i, n := range catalogs {
		s := src(CatalogKey(fmt.Sprintf("c%d", i)), n)
		cats = append(cats, s)
		l.Catalogs = append(l.Catalogs, s)
	}
	for i, n := range genres {
		s := src(GenreKey(fmt.Sprintf("g%d", i)), n)
		gens = append(gens, s)
		l.Genres = append(l.Genres, s)
	}
	return l, cats, gens
}

func restoreAt(row, item int) State {
	return State{LastFocused: Position{Row: row, Item: item}, ShouldRestore: true}
}
