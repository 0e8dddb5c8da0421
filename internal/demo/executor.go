package demo

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tenfoot/internal/app"
	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/feed"
	"github.com/zhubert/tenfoot/internal/focus"
	"github.com/zhubert/tenfoot/internal/logger"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every key step (default: false)
	CaptureEveryStep bool

	// KeyDelay is the frame delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// Store persists focus state across the run. Nil uses a fresh
	// in-memory store.
	Store focus.StateStore
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		KeyDelay:         100 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	frames []Frame

	currentAnnotation string

	// held row keys and the pages withheld from them, in arrival order
	held    map[string]bool
	pending []feed.PageMsg

	log *slog.Logger
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		config: cfg,
		frames: []Frame{},
		held:   make(map[string]bool),
		log:    logger.ComponentLogger("demo"),
	}
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := e.setup(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}
	e.log.Info("scenario started", "scenario", scenario.Name, "steps", len(scenario.Steps))

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			e.log.Warn("scenario step failed", "scenario", scenario.Name, "step", i, "type", step.Type.String(), "error", err)
			return e.frames, fmt.Errorf("step %d (%s) failed: %w", i, step.Type, err)
		}
	}

	e.log.Info("scenario finished", "scenario", scenario.Name, "frames", len(e.frames))
	return e.frames, nil
}

// Model returns the app model driven by the last Run.
func (e *Executor) Model() *app.Model {
	return e.model
}

// Outcomes returns the restoration outcomes of the active layout.
func (e *Executor) Outcomes() []focus.Outcome {
	if e.model == nil {
		return nil
	}
	return e.model.Controller().Outcomes()
}

// setup builds the model for the scenario and runs its first composition.
func (e *Executor) setup(scenario *Scenario) error {
	s := scenario.Setup
	cfg := &config.Config{
		Focus: config.FocusConfig{
			MaxHandlesPerRow: focus.DefaultOptions().MaxHandlesPerRow,
			MaxAttempts:      focus.DefaultOptions().MaxAttempts,
		},
		Catalog: config.CatalogConfig{
			Layout:      s.Layout,
			PageSize:    s.PageSize,
			ItemsPerRow: s.ItemsPerRow,
			Providers:   s.Providers,
			Catalogs:    s.Catalogs,
			Genres:      s.Genres,
			Failing:     s.Failing,
		},
	}
	if s.MaxAttempts > 0 {
		cfg.Focus.MaxAttempts = s.MaxAttempts
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store := e.config.Store
	if store == nil {
		store = focus.NewMemoryStore()
	}
	for layout, st := range s.State {
		if err := store.Save(layout, st); err != nil {
			return err
		}
	}

	e.model = app.New(cfg, "demo", app.Options{
		Store:     store,
		Schedule:  focus.ImmediateScheduler,
		Headless:  true,
		AttachLag: s.AttachLag,
	})
	e.model.Update(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	})

	for _, key := range s.Hold {
		e.held[key] = true
	}
	return e.pump(e.model.Init())
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.captureFrame(index, step.Duration)

	case StepKey:
		if err := e.send(keyPress(step.Key)); err != nil {
			return err
		}
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)

	case StepHold:
		for _, key := range step.Rows {
			e.held[key] = true
		}

	case StepDeliver:
		return e.deliver(step.Rows)

	case StepExpect:
		return e.expect(step)
	}

	return nil
}

// deliver releases held pages for rows, or for every held row when rows is
// empty, and stops holding those rows.
func (e *Executor) deliver(rows []string) error {
	release := func(key string) bool {
		return len(rows) == 0 || slices.Contains(rows, key)
	}
	for key := range e.held {
		if release(key) {
			delete(e.held, key)
		}
	}

	var keep []feed.PageMsg
	var out []feed.PageMsg
	for _, p := range e.pending {
		if release(p.Key) {
			out = append(out, p)
		} else {
			keep = append(keep, p)
		}
	}
	e.pending = keep

	for _, p := range out {
		e.log.Debug("delivering held page", "row", p.Key, "page", p.Page)
		if err := e.send(p); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) expect(step Step) error {
	if got := e.model.Controller().Phase(); got != step.Phase {
		return fmt.Errorf("restoration phase is %s, want %s", got, step.Phase)
	}
	if step.Focus != nil {
		if got := e.model.Surface().Focused(); got != *step.Focus {
			return fmt.Errorf("focus is on %s, want %s", got, *step.Focus)
		}
	}
	return nil
}

// hold withholds pages of held rows from the model.
func (e *Executor) hold(msg tea.Msg) bool {
	p, ok := msg.(feed.PageMsg)
	if !ok || !e.held[p.Key] {
		return false
	}
	e.pending = append(e.pending, p)
	return true
}

func (e *Executor) pump(cmd tea.Cmd) error {
	_, err := e.model.PumpWith(cmd, e.hold)
	return err
}

// send delivers a message to the model and runs what it returns.
func (e *Executor) send(msg tea.Msg) error {
	_, cmd := e.model.Update(msg)
	return e.pump(cmd)
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	content := e.model.RenderToString()

	frame := Frame{
		Content:    content,
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "escape", "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+l":
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	case "ctrl+r":
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
