package focus

import "testing"

func TestViewportRegistry(t *testing.T) {
	created := 0
	rec := &scrollRecorder{}
	reg := NewViewportRegistry(func(key string) ViewportController {
		created++
		return rec.factory(key)
	})

	a := reg.Get("catalog_a")
	if reg.Get("catalog_a") != a {
		t.Error("expected memoized controller")
	}
	reg.Get("catalog_b")
	reg.Get(HeroKey)
	if created != 3 || reg.Len() != 3 {
		t.Errorf("created = %d, Len() = %d, want 3/3", created, reg.Len())
	}

	if n := reg.Retain([]string{HeroKey, "catalog_a"}); n != 1 {
		t.Errorf("Retain() dropped %d, want 1", n)
	}
	if reg.Get("catalog_a") != a {
		t.Error("retained controller should survive")
	}
	reg.Get("catalog_b")
	if created != 4 {
		t.Errorf("dropped controller should be recreated, created = %d", created)
	}
}
