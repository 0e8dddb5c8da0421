package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	perrors "github.com/zhubert/tenfoot/internal/errors"
	"github.com/zhubert/tenfoot/internal/focus"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	s := openTestStore(t)

	st, err := s.Load("movies")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st != focus.DefaultState() {
		t.Errorf("Load() = %+v, want default state", st)
	}
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)
	want := focus.State{
		LastFocused:            focus.Position{Row: 3, Item: 7},
		LastFocusedKey:         focus.CatalogKey("Trending"),
		ShouldRestore:          true,
		CarouselTargetProvider: 2,
	}

	if err := s.Save("movies", want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load("movies")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSave_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Save("sports", focus.State{LastFocused: focus.NoPosition}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	st, err := reopened.Load("sports")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !st.LastFocused.IsNone() {
		t.Errorf("LastFocused = %s, want NoPosition", st.LastFocused)
	}
}

func TestRecord(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if _, ok, err := s.Record("shows"); ok || err != nil {
		t.Fatalf("Record() of missing screen = ok %v, err %v", ok, err)
	}

	if err := s.Save("shows", focus.DefaultState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	rec, ok, err := s.Record("shows")
	if err != nil || !ok {
		t.Fatalf("Record() = ok %v, err %v", ok, err)
	}
	if rec.Version != schemaVersion || rec.Screen != "shows" || !rec.SavedAt.Equal(fixed) {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	s := openTestStore(t)
	path := filepath.Join(s.BasePath(), keyPrefix, "movies")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := s.Load("movies")
	if !perrors.Is(err, perrors.KindIO) {
		t.Errorf("Load() error = %v, want KindIO", err)
	}
	if st != focus.DefaultState() {
		t.Errorf("Load() should fall back to the default state, got %+v", st)
	}
}

func TestLoad_FutureVersion(t *testing.T) {
	s := openTestStore(t)
	path := filepath.Join(s.BasePath(), keyPrefix, "movies")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load("movies"); err == nil {
		t.Error("expected error for unsupported schema version")
	}
}

func TestScreensAndClear(t *testing.T) {
	s := openTestStore(t)
	for _, screen := range []string{"sports", "movies", "shows"} {
		if err := s.Save(screen, focus.DefaultState()); err != nil {
			t.Fatalf("Save(%s) error = %v", screen, err)
		}
	}

	if got, want := s.Screens(), []string{"movies", "shows", "sports"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Screens() = %v, want %v", got, want)
	}

	if err := s.Clear("shows"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := s.Clear("shows"); err != nil {
		t.Errorf("clearing twice should not fail: %v", err)
	}
	if got, want := s.Screens(), []string{"movies", "sports"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Screens() = %v, want %v", got, want)
	}

	n, err := s.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if n != 2 || len(s.Screens()) != 0 {
		t.Errorf("ClearAll() = %d, remaining %v", n, s.Screens())
	}
}

func TestStore_WithController(t *testing.T) {
	s := openTestStore(t)
	c := focus.NewController("movies", focus.DefaultOptions(), focus.Deps{
		Store:     s,
		Handles:   func(focus.Position) focus.FocusHandle { return nil },
		Viewports: func(string) focus.ViewportController { return nil },
		Schedule:  focus.ImmediateScheduler,
	})

	c.OnFocusGained(focus.Position{Row: 2, Item: 5})

	st, err := s.Load("movies")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.LastFocused != (focus.Position{Row: 2, Item: 5}) || st.ShouldRestore {
		t.Errorf("persisted state = %+v", st)
	}
}

func TestKeyTransforms(t *testing.T) {
	for _, screen := range []string{"movies", "kids-movies"} {
		key := toKey(screen)
		if got := pathToKeyTransform(keyToPathTransform(key)); got != key {
			t.Errorf("round trip of %q = %q", key, got)
		}
		if fromKey(key) != screen {
			t.Errorf("fromKey(%q) = %q", key, fromKey(key))
		}
	}
}
