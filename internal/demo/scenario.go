// Package demo runs scripted browse sessions headlessly. Scenarios drive the
// real app model with key presses and controlled feed delivery, capture the
// rendered frames, and check where focus restoration ended up.
package demo

import (
	"fmt"
	"time"

	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/focus"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
	// StepHold holds back pages for rows, leaving them loading.
	StepHold
	// StepDeliver releases held pages.
	StepDeliver
	// StepExpect checks the restoration phase and the focused item.
	StepExpect
)

func (t StepType) String() string {
	switch t {
	case StepWait:
		return "wait"
	case StepKey:
		return "key"
	case StepCapture:
		return "capture"
	case StepAnnotate:
		return "annotate"
	case StepHold:
		return "hold"
	case StepDeliver:
		return "deliver"
	case StepExpect:
		return "expect"
	default:
		return "unknown"
	}
}

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepWait
	Duration time.Duration

	// For StepAnnotate
	Annotation string

	// For StepHold and StepDeliver. An empty list on StepDeliver releases
	// every held page.
	Rows []string

	// For StepExpect. A nil Focus skips the focus check.
	Phase focus.Phase
	Focus *focus.Position
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the catalog and persisted state a scenario starts
// from.
type ScenarioSetup struct {
	Layout      string
	PageSize    int
	ItemsPerRow int
	Providers   []string
	Catalogs    []string
	Genres      []string
	Failing     []string // Row keys whose feed errors

	// State seeds the persisted focus state per layout.
	State map[string]focus.State

	// Hold lists row keys whose pages are held from the start.
	Hold []string

	// AttachLag fails the first n focus requests after each composition.
	AttachLag int

	// MaxAttempts overrides the restoration attempt cap when positive.
	MaxAttempts int
}

// DefaultSetup returns a small movies catalog.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Layout:      config.LayoutMovies,
		PageSize:    20,
		ItemsPerRow: 20,
		Providers:   []string{"Netflix", "Prime Video", "Disney+", "Max", "Apple TV+"},
		Catalogs:    []string{"Trending", "Top Rated", "New Releases"},
		Genres:      []string{"Action", "Comedy"},
	}
}

// Validate checks that the scenario is valid.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if s.Setup.Layout == "" {
		s.Setup.Layout = config.LayoutMovies
	}
	if !config.IsLayout(s.Setup.Layout) {
		return &ValidationError{Field: "Setup.Layout", Message: "unknown layout " + s.Setup.Layout}
	}
	if s.Setup.PageSize <= 0 {
		s.Setup.PageSize = 20
	}
	for i, step := range s.Steps {
		if step.Type == StepKey && step.Key == "" {
			return &ValidationError{Field: "Steps", Message: fmt.Sprintf("step %d: key step without a key", i)}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Keys creates one key press step per key.
func Keys(keys ...string) []Step {
	steps := make([]Step, len(keys))
	for i, k := range keys {
		steps[i] = Key(k)
	}
	return steps
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}

// Hold creates a step that holds back pages for the given rows.
func Hold(rows ...string) Step {
	return Step{
		Type: StepHold,
		Rows: rows,
	}
}

// Deliver creates a step that releases held pages for the given rows, or
// all of them when none are named.
func Deliver(rows ...string) Step {
	return Step{
		Type: StepDeliver,
		Rows: rows,
	}
}

// Expect creates a step checking the restoration phase and focused item.
func Expect(phase focus.Phase, pos focus.Position) Step {
	return Step{
		Type:  StepExpect,
		Phase: phase,
		Focus: &pos,
	}
}

// ExpectPhase creates a step checking only the restoration phase.
func ExpectPhase(phase focus.Phase) Step {
	return Step{
		Type:  StepExpect,
		Phase: phase,
	}
}
