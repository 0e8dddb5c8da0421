package demo

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/focus"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func TestExecutorDefaultConfig(t *testing.T) {
	cfg := DefaultExecutorConfig()

	if cfg.CaptureEveryStep {
		t.Error("CaptureEveryStep should be false by default")
	}
	if cfg.KeyDelay != 100*time.Millisecond {
		t.Errorf("KeyDelay = %v, want 100ms", cfg.KeyDelay)
	}
	if cfg.Store != nil {
		t.Error("Store should default to nil")
	}
}

func TestExecutorRun(t *testing.T) {
	scenario := &Scenario{
		Name:   "test",
		Width:  80,
		Height: 24,
		Steps: []Step{
			Wait(100 * time.Millisecond),
			Key("down"),
			Annotate("on the provider row"),
			Capture(),
			Expect(focus.PhaseSucceeded, focus.Position{Row: 1, Item: 0}),
		},
	}

	executor := NewExecutor(DefaultExecutorConfig())
	frames, err := executor.Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// initial + wait + capture
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[0].Delay != 500*time.Millisecond {
		t.Errorf("initial frame delay = %v, want 500ms", frames[0].Delay)
	}
	if frames[2].Annotation != "on the provider row" {
		t.Errorf("annotation = %q", frames[2].Annotation)
	}
	if frames[2].StepIndex != 3 {
		t.Errorf("StepIndex = %d, want 3", frames[2].StepIndex)
	}
	if !strings.Contains(ansiRe.ReplaceAllString(frames[0].Content, ""), "tenfoot") {
		t.Error("frame should contain the rendered header")
	}
}

func TestExecutorCaptureEveryStep(t *testing.T) {
	cfg := DefaultExecutorConfig()
	cfg.CaptureEveryStep = true

	scenario := &Scenario{
		Name:  "test",
		Steps: Keys("down", "right"),
	}
	frames, err := NewExecutor(cfg).Run(scenario)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 {
		t.Errorf("got %d frames, want initial plus one per key", len(frames))
	}
	if frames[1].Delay != cfg.KeyDelay {
		t.Errorf("key frame delay = %v, want %v", frames[1].Delay, cfg.KeyDelay)
	}
}

func TestExecutorExpectFailure(t *testing.T) {
	scenario := &Scenario{
		Name:  "test",
		Steps: []Step{Expect(focus.PhaseAbandoned, focus.Position{Row: 0, Item: 0})},
	}
	_, err := NewExecutor(DefaultExecutorConfig()).Run(scenario)
	if err == nil || !strings.Contains(err.Error(), "phase") {
		t.Errorf("Run() error = %v, want a phase mismatch", err)
	}
}

func TestExecutorHoldAndDeliver(t *testing.T) {
	action := focus.GenreKey("Action")
	setup := DefaultSetup()
	setup.Hold = []string{action}
	setup.State = map[string]focus.State{
		config.LayoutMovies: {
			LastFocused:    focus.Position{Row: 5, Item: 2},
			LastFocusedKey: action,
			ShouldRestore:  true,
		},
	}

	executor := NewExecutor(DefaultExecutorConfig())
	_, err := executor.Run(&Scenario{
		Name:  "test",
		Setup: setup,
		Steps: []Step{
			ExpectPhase(focus.PhaseScheduled),
			Deliver(action),
			Expect(focus.PhaseSucceeded, focus.Position{Row: 5, Item: 2}),
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := executor.Outcomes()
	if len(out) == 0 || out[len(out)-1].Attempts != 1 {
		t.Errorf("outcomes = %+v, want a single-attempt success", out)
	}
}

func TestExecutorUnknownLayout(t *testing.T) {
	_, err := NewExecutor(DefaultExecutorConfig()).Run(&Scenario{
		Name:  "test",
		Setup: &ScenarioSetup{Layout: "radio"},
	})
	if err == nil {
		t.Error("Run() should reject an unknown layout")
	}
}

func TestKeyPress(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"enter", "enter"},
		{"esc", "esc"},
		{"escape", "esc"},
		{"tab", "tab"},
		{"shift+tab", "shift+tab"},
		{"down", "down"},
		{"ctrl+l", "ctrl+l"},
		{"r", "r"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var msg tea.KeyPressMsg = keyPress(tt.key)
			if got := msg.String(); got != tt.want {
				t.Errorf("keyPress(%q).String() = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
