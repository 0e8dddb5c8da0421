package app

import (
	"regexp"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/focus"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// testConfig lays movies out as hero(5), providers(3), Trending(12),
// Top Rated(12) and Action(6), delivered four items per page.
func testConfig() *config.Config {
	return &config.Config{
		Focus: config.FocusConfig{
			MaxHandlesPerRow: 50,
			MaxAttempts:      3,
		},
		Catalog: config.CatalogConfig{
			Layout:      config.LayoutMovies,
			PageSize:    4,
			ItemsPerRow: 12,
			Providers:   []string{"Netflix", "Max", "Hulu"},
			Catalogs:    []string{"Trending", "Top Rated"},
			Genres:      []string{"Action"},
		},
	}
}

func newTestModel(t *testing.T, cfg *config.Config, store focus.StateStore) *Model {
	t.Helper()
	m := New(cfg, "test", Options{
		Store:    store,
		Schedule: focus.ImmediateScheduler,
		Headless: true,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if _, err := m.Pump(m.Init()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}

func press(t *testing.T, m *Model, msgs ...tea.KeyPressMsg) {
	t.Helper()
	for _, msg := range msgs {
		if err := m.Send(msg); err != nil {
			t.Fatalf("key %q: %v", msg.String(), err)
		}
	}
}

var (
	keyUp       = tea.KeyPressMsg{Code: tea.KeyUp}
	keyDown     = tea.KeyPressMsg{Code: tea.KeyDown}
	keyRight    = tea.KeyPressMsg{Code: tea.KeyRight}
	keyEnter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc      = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyTab      = tea.KeyPressMsg{Code: tea.KeyTab}
	keyShiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	keyRetry    = tea.KeyPressMsg{Code: 'r', Text: "r"}
	keyQuit     = tea.KeyPressMsg{Code: 'q', Text: "q"}
	keyLogs     = tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
)

func TestModel_InitRestoresHero(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)

	if got := m.Controller().Phase(); got != focus.PhaseSucceeded {
		t.Fatalf("Phase() = %v, want succeeded", got)
	}
	if got := m.Surface().Focused(); got != (focus.Position{Row: 0, Item: 0}) {
		t.Errorf("Focused() = %v, want (0,0)", got)
	}
	if !strings.Contains(m.Preview(), "Featured film 1") {
		t.Errorf("Preview() = %q, want the first hero item", m.Preview())
	}
	if got := m.Controller().Catalog().TotalRows(); got != 5 {
		t.Errorf("TotalRows() = %d, want 5", got)
	}
}

func TestModel_NavigationRecordsFocus(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)

	press(t, m, keyDown, keyRight)

	st := m.Controller().State()
	if st.LastFocused != (focus.Position{Row: 1, Item: 1}) {
		t.Errorf("LastFocused = %v, want (1,1)", st.LastFocused)
	}
	if st.LastFocusedKey != focus.ProvidersKey {
		t.Errorf("LastFocusedKey = %q, want providers", st.LastFocusedKey)
	}
	if st.CarouselTargetProvider != 1 {
		t.Errorf("CarouselTargetProvider = %d, want 1", st.CarouselTargetProvider)
	}
	if st.ShouldRestore {
		t.Error("a user focus change should disable restoration")
	}
	if !strings.Contains(m.Preview(), "Max") {
		t.Errorf("Preview() = %q, want the focused provider", m.Preview())
	}

	press(t, m, keyUp)
	if got := m.Surface().Focused(); got != (focus.Position{Row: 0, Item: 1}) {
		t.Errorf("Focused() after up = %v, want (0,1)", got)
	}
}

func TestModel_DetailsRoundTripRestoresScrolledItem(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)
	trending := focus.CatalogKey("Trending")

	press(t, m, keyDown, keyDown)
	for range 7 {
		press(t, m, keyRight)
	}
	want := focus.Position{Row: 2, Item: 7}
	if got := m.Surface().Focused(); got != want {
		t.Fatalf("Focused() = %v, want %v", got, want)
	}

	press(t, m, keyEnter)
	if m.Screen() != ScreenDetails {
		t.Fatalf("Screen() = %v, want Details", m.Screen())
	}
	if !strings.Contains(stripANSI(m.RenderToString()), "Movie 8") {
		t.Error("details screen should show the selected item")
	}

	press(t, m, keyEsc)
	if m.Screen() != ScreenBrowse {
		t.Fatalf("Screen() = %v, want Browse", m.Screen())
	}
	if got := m.Controller().Phase(); got != focus.PhaseSucceeded {
		t.Fatalf("Phase() = %v, want succeeded", got)
	}
	if got := m.Surface().Focused(); got != want {
		t.Errorf("restored focus = %v, want %v", got, want)
	}
	if got := m.Surface().ItemOffset(trending); got != 2 {
		t.Errorf("ItemOffset() = %d, want 2", got)
	}
	if m.Controller().State().ShouldRestore {
		t.Error("ShouldRestore should clear after a successful restore")
	}
}

func TestModel_LayoutSwitchKeepsPerLayoutFocus(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)

	press(t, m, keyDown, keyDown, keyRight)
	if got := m.Surface().Focused(); got != (focus.Position{Row: 2, Item: 1}) {
		t.Fatalf("Focused() = %v, want (2,1)", got)
	}

	press(t, m, keyTab)
	if m.Layout() != config.LayoutShows {
		t.Fatalf("Layout() = %q, want shows", m.Layout())
	}
	if got := m.Surface().Focused(); got != (focus.Position{Row: 0, Item: 0}) {
		t.Errorf("shows focus = %v, want hero (0,0)", got)
	}

	press(t, m, keyShiftTab)
	if m.Layout() != config.LayoutMovies {
		t.Fatalf("Layout() = %q, want movies", m.Layout())
	}
	if got := m.Surface().Focused(); got != (focus.Position{Row: 2, Item: 1}) {
		t.Errorf("movies focus = %v, want (2,1)", got)
	}
}

func TestModel_FallbackDisablesRestore(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)

	press(t, m, keyDown, keyDown, keyDown, keyDown, keyDown)
	if !m.Surface().InFallback() {
		t.Fatal("focus should be in the fallback region")
	}
	if m.Preview() != "" {
		t.Errorf("Preview() = %q, want cleared", m.Preview())
	}
	if !m.Controller().State().LastFocused.IsNone() {
		t.Errorf("LastFocused = %v, want none", m.Controller().State().LastFocused)
	}

	press(t, m, keyTab, keyShiftTab)
	if got := m.Controller().Phase(); got != focus.PhaseIdle {
		t.Errorf("Phase() = %v, want idle", got)
	}
	if !m.Surface().Focused().IsNone() {
		t.Errorf("Focused() = %v, want none", m.Surface().Focused())
	}
}

func TestModel_ErroredRowWaitsForRetry(t *testing.T) {
	topRated := focus.CatalogKey("Top Rated")
	cfg := testConfig()
	cfg.Catalog.Failing = []string{topRated}

	store := focus.NewMemoryStore()
	store.Save(config.LayoutMovies, focus.State{
		LastFocused:    focus.Position{Row: 3, Item: 2},
		LastFocusedKey: topRated,
		ShouldRestore:  true,
	})
	m := newTestModel(t, cfg, store)

	if got := m.Controller().Phase(); got != focus.PhaseScheduled {
		t.Fatalf("Phase() = %v, want scheduled while the row is errored", got)
	}
	if !m.Footer().HasFlash() || !strings.Contains(stripANSI(m.Footer().View()), "Top Rated is unavailable") {
		t.Errorf("footer = %q, want the row error flash", stripANSI(m.Footer().View()))
	}
	if !strings.Contains(stripANSI(m.RenderToString()), "unavailable, press r to retry") {
		t.Error("errored row should render its retry hint")
	}

	press(t, m, keyRetry)
	if got := m.Controller().Phase(); got != focus.PhaseSucceeded {
		t.Fatalf("Phase() after retry = %v, want succeeded", got)
	}
	if got := m.Surface().Focused(); got != (focus.Position{Row: 3, Item: 2}) {
		t.Errorf("Focused() = %v, want (3,2)", got)
	}
}

func TestModel_RestoreClampsProvider(t *testing.T) {
	store := focus.NewMemoryStore()
	store.Save(config.LayoutMovies, focus.State{
		LastFocused:    focus.Position{Row: 1, Item: 12},
		LastFocusedKey: focus.ProvidersKey,
		ShouldRestore:  true,
	})
	m := newTestModel(t, testConfig(), store)

	want := focus.Position{Row: 1, Item: 2}
	if got := m.Controller().Phase(); got != focus.PhaseSucceeded {
		t.Fatalf("Phase() = %v, want succeeded", got)
	}
	if got := m.Surface().Focused(); got != want {
		t.Errorf("Focused() = %v, want %v", got, want)
	}
	if got := m.Controller().State().LastFocused; got != want {
		t.Errorf("LastFocused = %v, want %v", got, want)
	}
	outcomes := m.Controller().Outcomes()
	if len(outcomes) == 0 {
		t.Fatal("no restoration outcome recorded")
	}
	if last := outcomes[len(outcomes)-1]; last.Phase != focus.PhaseSucceeded || last.Clamped != want {
		t.Errorf("last outcome = %+v, want succeeded at %v", last, want)
	}
}

func TestModel_RetryWithNothingFailed(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)

	press(t, m, keyRetry)
	if !strings.Contains(stripANSI(m.Footer().View()), "Nothing to retry") {
		t.Errorf("footer = %q, want nothing-to-retry flash", stripANSI(m.Footer().View()))
	}
}

func TestModel_RenderToString(t *testing.T) {
	m := New(testConfig(), "test", Options{Schedule: focus.ImmediateScheduler, Headless: true})
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("RenderToString() before sizing = %q, want Loading...", got)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if _, err := m.Pump(m.Init()); err != nil {
		t.Fatal(err)
	}
	out := stripANSI(m.RenderToString())
	for _, want := range []string{"tenfoot", "[movies]", "Trending", "Top Rated", "Action", "restore: succeeded"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestModel_LogsOverlay(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)

	press(t, m, keyLogs)
	if !m.ShowingLogs() {
		t.Fatal("ctrl+l should open the log viewer")
	}
	press(t, m, keyDown)
	if got := m.Surface().Focused(); got != (focus.Position{Row: 0, Item: 0}) {
		t.Errorf("keys should go to the log viewer, focus moved to %v", got)
	}
	press(t, m, keyEsc)
	if m.ShowingLogs() {
		t.Error("esc should close the log viewer")
	}
}

func TestModel_QuitPersists(t *testing.T) {
	store := focus.NewMemoryStore()
	m := newTestModel(t, testConfig(), store)
	press(t, m, keyDown)

	_, cmd := m.Update(keyQuit)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	st, _ := store.Load(config.LayoutMovies)
	if st.LastFocused != (focus.Position{Row: 1, Item: 0}) {
		t.Errorf("persisted LastFocused = %v, want (1,0)", st.LastFocused)
	}
}

func TestScreen_String(t *testing.T) {
	tests := []struct {
		screen   Screen
		expected string
	}{
		{ScreenBrowse, "Browse"},
		{ScreenDetails, "Details"},
		{Screen(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.screen.String(); got != tt.expected {
			t.Errorf("Screen(%d).String() = %q, want %q", tt.screen, got, tt.expected)
		}
	}
}

func TestFocusOptions(t *testing.T) {
	opts := FocusOptions(config.FocusConfig{MaxHandlesPerRow: 7, MaxAttempts: 2})
	if opts.MaxHandlesPerRow != 7 || opts.MaxAttempts != 2 {
		t.Errorf("FocusOptions() = %+v", opts)
	}
}
