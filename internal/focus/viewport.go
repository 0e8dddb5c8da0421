package focus

// ViewportController scrolls one row so that index i is visible.
type ViewportController interface {
	ScrollToIndex(i int)
}

// ViewportFactory creates the controller for a row key the first time the
// row is referenced.
type ViewportFactory func(key string) ViewportController

// ViewportRegistry maps stable row keys to their viewport controllers.
type ViewportRegistry struct {
	factory ViewportFactory
	entries map[string]ViewportController
}

func NewViewportRegistry(factory ViewportFactory) *ViewportRegistry {
	return &ViewportRegistry{
		factory: factory,
		entries: make(map[string]ViewportController),
	}
}

// Get returns the controller for key, creating it on first access.
func (r *ViewportRegistry) Get(key string) ViewportController {
	if vc, ok := r.entries[key]; ok {
		return vc
	}
	vc := r.factory(key)
	r.entries[key] = vc
	return vc
}

// Retain forgets controllers for rows not in keys and returns how many were
// dropped.
func (r *ViewportRegistry) Retain(keys []string) int {
	keep := make(map[string]bool, len(keys))
	for _, k := range keys {
		keep[k] = true
	}
	dropped := 0
	for k := range r.entries {
		if !keep[k] {
			delete(r.entries, k)
			dropped++
		}
	}
	return dropped
}

func (r *ViewportRegistry) Len() int {
	return len(r.entries)
}
