package focus

import "sync"

// State is the persisted focus surface of one screen.
type State struct {
	LastFocused Position `json:"last_focused"`
	// LastFocusedKey is the stable key of the row LastFocused points into.
	// Empty when the row is unknown, in which case the raw index is used.
	LastFocusedKey         string `json:"last_focused_key,omitempty"`
	ShouldRestore          bool   `json:"should_restore"`
	CarouselTargetProvider int    `json:"carousel_target_provider"`
}

// DefaultState is what a screen starts with before anything was persisted:
// the first hero item, with restoration wanted.
func DefaultState() State {
	return State{
		LastFocused:    Position{Row: 0, Item: 0},
		LastFocusedKey: HeroKey,
		ShouldRestore:  true,
	}
}

// StateStore persists State per screen. Load returns DefaultState when
// nothing has been saved for the screen.
type StateStore interface {
	Load(screen string) (State, error)
	Save(screen string, st State) error
}

// MemoryStore is an in-process StateStore. It survives recomposition but not
// a restart.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Load(screen string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[screen]; ok {
		return st, nil
	}
	return DefaultState(), nil
}

func (m *MemoryStore) Save(screen string, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[screen] = st
	return nil
}
