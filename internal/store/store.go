// Package store persists per-screen focus state on disk so restoration
// survives a restart.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	perrors "github.com/zhubert/tenfoot/internal/errors"
	"github.com/zhubert/tenfoot/internal/focus"
)

const (
	keyPrefix     = "focus"
	schemaVersion = 1
)

// Record is the on-disk form of one screen's focus state.
type Record struct {
	Version int         `json:"version"`
	Screen  string      `json:"screen"`
	SavedAt time.Time   `json:"saved_at"`
	State   focus.State `json:"state"`
}

// Store is a focus.StateStore backed by diskv.
type Store struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

var _ focus.StateStore = (*Store)(nil)

// Open creates the store rooted at basePath, creating the directory if needed.
func Open(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, perrors.E(perrors.Op("store.Open"), perrors.KindIO, fmt.Sprintf("failed to create %s", basePath), err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      64 * 1024,
		}),
		basePath: basePath,
		now:      time.Now,
	}, nil
}

// BasePath returns the directory the store writes under.
func (s *Store) BasePath() string {
	return s.basePath
}

// Load returns the saved state for screen, or focus.DefaultState when
// nothing was saved yet.
func (s *Store) Load(screen string) (focus.State, error) {
	rec, ok, err := s.Record(screen)
	if err != nil {
		return focus.DefaultState(), err
	}
	if !ok {
		return focus.DefaultState(), nil
	}
	return rec.State, nil
}

// Record returns the full on-disk record for screen.
func (s *Store) Record(screen string) (Record, bool, error) {
	key := toKey(screen)
	if !s.d.Has(key) {
		return Record{}, false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		return Record{}, false, perrors.StateLoadFailed(screen, err)
	}
	var rec Record
	if err := json.Unmarshal(val, &rec); err != nil {
		return Record{}, false, perrors.StateLoadFailed(screen, err)
	}
	if rec.Version > schemaVersion {
		return Record{}, false, perrors.StateLoadFailed(screen, fmt.Errorf("unsupported schema version %d", rec.Version))
	}
	return rec, true, nil
}

// Save writes the state for screen.
func (s *Store) Save(screen string, st focus.State) error {
	data, err := json.Marshal(Record{
		Version: schemaVersion,
		Screen:  screen,
		SavedAt: s.now().UTC(),
		State:   st,
	})
	if err != nil {
		return perrors.StateSaveFailed(screen, err)
	}
	if err := s.d.Write(toKey(screen), data); err != nil {
		return perrors.StateSaveFailed(screen, err)
	}
	return nil
}

// Clear removes the saved state for screen. Clearing a screen with no
// saved state is not an error.
func (s *Store) Clear(screen string) error {
	key := toKey(screen)
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return perrors.StateSaveFailed(screen, err)
	}
	return nil
}

// ClearAll removes every saved screen and returns how many were removed.
func (s *Store) ClearAll() (int, error) {
	screens := s.Screens()
	for _, screen := range screens {
		if err := s.Clear(screen); err != nil {
			return 0, err
		}
	}
	return len(screens), nil
}

// Screens lists the screens with saved state, sorted.
func (s *Store) Screens() []string {
	var screens []string
	for key := range s.d.KeysPrefix(keyPrefix+"-", nil) {
		screens = append(screens, fromKey(key))
	}
	sort.Strings(screens)
	return screens
}

// toKey makes `focus-<screen>`, stored as <base>/focus/<screen>.
func toKey(screen string) string {
	return keyPrefix + "-" + screen
}

func fromKey(key string) string {
	return strings.TrimPrefix(key, keyPrefix+"-")
}

func keyToPathTransform(s string) *diskv.PathKey {
	prefix, name, _ := strings.Cut(s, "-")
	return &diskv.PathKey{
		Path:     []string{prefix},
		FileName: name,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
