package focus

import "testing"

func newTestSink(layout Layout) (*EventSink, *shared) {
	sh := &shared{state: DefaultState(), catalog: NewRowCatalog(layout)}
	return newEventSink(testScreen, sh), sh
}

func TestEventSink_OnFocusGained(t *testing.T) {
	layout, _, _ := movieLayout(5, []int{10, 10}, nil)
	sink, sh := newTestSink(layout)

	sink.OnFocusGained(Position{Row: 3, Item: 4})

	st := sh.state
	if st.LastFocused != (Position{Row: 3, Item: 4}) {
		t.Errorf("LastFocused = %s", st.LastFocused)
	}
	if st.LastFocusedKey != CatalogKey("c1") {
		t.Errorf("LastFocusedKey = %q", st.LastFocusedKey)
	}
	if st.ShouldRestore {
		t.Error("ShouldRestore should be cleared by an observed focus change")
	}
	if st.CarouselTargetProvider != 0 {
		t.Errorf("CarouselTargetProvider = %d, want untouched 0", st.CarouselTargetProvider)
	}
}

func TestEventSink_ProviderRowRemembersCarouselTarget(t *testing.T) {
	layout, _, _ := movieLayout(5, []int{10}, nil)
	sink, sh := newTestSink(layout)

	sink.OnFocusGained(Position{Row: 1, Item: 3})
	if sh.state.CarouselTargetProvider != 3 {
		t.Errorf("CarouselTargetProvider = %d, want 3", sh.state.CarouselTargetProvider)
	}

	sink.OnFocusGained(Position{Row: 2, Item: 8})
	if sh.state.CarouselTargetProvider != 3 {
		t.Errorf("focus outside the provider row changed the target to %d", sh.state.CarouselTargetProvider)
	}
}

func TestEventSink_UnknownRowHasNoKey(t *testing.T) {
	sink, sh := newTestSink(Layout{})

	sink.OnFocusGained(Position{Row: 9, Item: 1})
	if sh.state.LastFocusedKey != "" {
		t.Errorf("LastFocusedKey = %q, want empty", sh.state.LastFocusedKey)
	}
	if sh.state.LastFocused != (Position{Row: 9, Item: 1}) {
		t.Errorf("LastFocused = %s", sh.state.LastFocused)
	}
}

func TestEventSink_OnFocusLost(t *testing.T) {
	layout, _, _ := movieLayout(5, []int{10}, nil)
	sink, sh := newTestSink(layout)
	sink.OnFocusGained(Position{Row: 2, Item: 1})

	sink.OnFocusLost(false)
	if sh.state.LastFocused.IsNone() || sink.TakeClearTransient() {
		t.Error("ordinary blur should not clear the target")
	}

	sink.OnFocusLost(true)
	if !sh.state.LastFocused.IsNone() {
		t.Errorf("LastFocused = %s, want NoPosition", sh.state.LastFocused)
	}
	if sh.state.LastFocusedKey != "" {
		t.Errorf("LastFocusedKey = %q, want empty", sh.state.LastFocusedKey)
	}
	if !sink.TakeClearTransient() {
		t.Error("expected clear-transient signal")
	}
	if sink.TakeClearTransient() {
		t.Error("clear-transient signal should be consumed")
	}
}

func TestEventSink_Handle(t *testing.T) {
	tests := []struct {
		name      string
		ev        FocusChange
		wantLast  Position
		wantClear bool
	}{
		{"gain", FocusChange{Position: Position{Row: 2, Item: 5}, HasFocus: true}, Position{Row: 2, Item: 5}, false},
		{"blur ignored", FocusChange{Position: Position{Row: 2, Item: 5}}, Position{Row: 0, Item: 0}, false},
		{"fallback gained", FocusChange{Position: NoPosition, HasFocus: true, Fallback: true}, NoPosition, true},
		{"fallback lost ignored", FocusChange{Position: NoPosition, Fallback: true}, Position{Row: 0, Item: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, _, _ := movieLayout(5, []int{10}, nil)
			sink, sh := newTestSink(layout)

			sink.Handle(tt.ev)

			if sh.state.LastFocused != tt.wantLast {
				t.Errorf("LastFocused = %s, want %s", sh.state.LastFocused, tt.wantLast)
			}
			if got := sink.TakeClearTransient(); got != tt.wantClear {
				t.Errorf("clear transient = %v, want %v", got, tt.wantClear)
			}
		})
	}
}
