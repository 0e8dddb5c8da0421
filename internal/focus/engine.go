package focus

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	perrors "github.com/zhubert/tenfoot/internal/errors"
	"github.com/zhubert/tenfoot/internal/logger"
)

// Phase is the restoration cycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScheduled
	PhaseScrolling
	PhaseFocusing
	PhaseSucceeded
	PhaseAbandoned
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScheduled:
		return "scheduled"
	case PhaseScrolling:
		return "scrolling"
	case PhaseFocusing:
		return "focusing"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a cycle.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseAbandoned
}

// Options tune the restoration engine.
type Options struct {
	MaxHandlesPerRow  int
	MaxAttempts       int
	SettleDelay       time.Duration // before resolving, lets scene-level default focus win
	ScrollSettleDelay time.Duration // after scrolling, before the first attempt
	RetryBackoff      time.Duration // between failed attempts
}

// DefaultOptions returns the stock tuning: 50 handles per row, 3 attempts,
// 20ms/100ms/50ms delays.
func DefaultOptions() Options {
	return Options{
		MaxHandlesPerRow:  50,
		MaxAttempts:       3,
		SettleDelay:       20 * time.Millisecond,
		ScrollSettleDelay: 100 * time.Millisecond,
		RetryBackoff:      50 * time.Millisecond,
	}
}

// Scheduler turns a delay into a command that later delivers msg.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// TickScheduler delivers msg after d using tea.Tick.
func TickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return ImmediateScheduler(d, msg)
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// ImmediateScheduler delivers msg without waiting. Headless runs and tests
// use it to step cycles deterministically.
func ImmediateScheduler(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

type step int

const (
	stepResolve step = iota
	stepFocus
)

// StepMsg advances a restoration cycle. Messages from a superseded cycle are
// dropped.
type StepMsg struct {
	Screen  string
	Cycle   uint64
	Attempt int
	step    step
}

// Outcome records how one cycle ended.
type Outcome struct {
	Cycle    string
	Target   Position
	Clamped  Position
	Phase    Phase
	Attempts int
	Err      error
}

const maxOutcomes = 32

// trigger is the tuple of watched inputs. A cycle starts whenever it changes.
type trigger struct {
	target        Position
	key           string
	counts        Counts
	shouldRestore bool
	targetItems   int
}

// Engine is the restoration state machine for one screen.
type Engine struct {
	screen     string
	opts       Options
	sh         *shared
	pool       *HandlePool
	viewports  *ViewportRegistry
	schedule   Scheduler
	onRowError func(RowDescriptor)
	onFinish   func(Outcome)
	log        *slog.Logger

	cycle     uint64
	cycleID   string
	phase     Phase
	last      trigger
	evaluated bool
	target    Position
	clamped   Position
	rowKey    string
	attempts  int
	history   []Outcome
}

func newEngine(screen string, opts Options, sh *shared, pool *HandlePool, viewports *ViewportRegistry, schedule Scheduler) *Engine {
	if schedule == nil {
		schedule = TickScheduler
	}
	return &Engine{
		screen:    screen,
		opts:      opts,
		sh:        sh,
		pool:      pool,
		viewports: viewports,
		schedule:  schedule,
		log:       logger.WithScreen(screen, "restore"),
		target:    NoPosition,
		clamped:   NoPosition,
	}
}

// Phase returns the current cycle phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Outcomes returns finished cycles, oldest first.
func (e *Engine) Outcomes() []Outcome {
	out := make([]Outcome, len(e.history))
	copy(out, e.history)
	return out
}

// Evaluate compares the watched inputs against the last evaluation. Equal
// inputs are a no-op; changed inputs supersede the in-flight cycle and
// start a new one.
func (e *Engine) Evaluate() tea.Cmd {
	t := e.snapshot()
	if e.evaluated && t == e.last {
		return nil
	}
	e.evaluated = true
	e.last = t
	return e.start()
}

// Reset forgets the last evaluation so the next Evaluate starts a cycle even
// if nothing changed, and drops the phase of the previous visit. Used on
// screen re-entry.
func (e *Engine) Reset() {
	e.Cancel()
	e.evaluated = false
	e.phase = PhaseIdle
}

// Cancel supersedes the in-flight cycle without starting a new one.
func (e *Engine) Cancel() {
	e.cycle++
	if !e.phase.Terminal() && e.phase != PhaseIdle {
		e.log.Debug("restoration cancelled", "cycle", e.cycleID, "phase", e.phase.String())
		e.phase = PhaseIdle
	}
}

func (e *Engine) snapshot() trigger {
	st := e.sh.state
	t := trigger{
		target:        st.LastFocused,
		key:           st.LastFocusedKey,
		counts:        e.sh.catalog.Counts(),
		shouldRestore: st.ShouldRestore,
		targetItems:   -1,
	}
	if d, err := e.resolveTarget(); err == nil {
		t.targetItems = d.FocusableCount()
	}
	return t
}

// resolveTarget finds the target row, by stable key when one is recorded.
func (e *Engine) resolveTarget() (RowDescriptor, error) {
	st := e.sh.state
	if st.LastFocusedKey != "" {
		return e.sh.catalog.ResolveKey(st.LastFocusedKey)
	}
	return e.sh.catalog.Resolve(st.LastFocused.Row)
}

func (e *Engine) wanted() bool {
	return e.sh.state.ShouldRestore && !e.sh.state.LastFocused.IsNone()
}

// start supersedes the in-flight cycle. When restoration is not wanted a
// finished cycle keeps its terminal phase until the screen is re-entered.
func (e *Engine) start() tea.Cmd {
	e.Cancel()
	if !e.wanted() {
		return nil
	}

	e.cycleID = uuid.NewString()
	e.attempts = 0
	e.target = e.sh.state.LastFocused
	e.clamped = NoPosition
	e.rowKey = ""

	e.phase = PhaseScheduled
	e.log.Debug("restoration scheduled", "cycle", e.cycleID, "target", e.target.String(), "row", e.sh.state.LastFocusedKey)
	return e.schedule(e.opts.SettleDelay, StepMsg{Screen: e.screen, Cycle: e.cycle, step: stepResolve})
}

// Update advances the cycle on its own step messages and ignores everything
// else, including steps of superseded cycles.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(StepMsg)
	if !ok || m.Screen != e.screen || m.Cycle != e.cycle {
		return nil
	}
	if e.phase.Terminal() || e.phase == PhaseIdle {
		return nil
	}
	if !e.wanted() {
		e.log.Debug("restoration no longer wanted", "cycle", e.cycleID, "phase", e.phase.String())
		e.cycle++
		e.phase = PhaseIdle
		e.record(PhaseIdle, nil)
		return nil
	}

	switch m.step {
	case stepResolve:
		return e.resolveAndScroll()
	case stepFocus:
		return e.attempt(m.Attempt)
	}
	return nil
}

func (e *Engine) resolveAndScroll() tea.Cmd {
	d, err := e.resolveTarget()
	if err != nil {
		e.log.Info("restoration target row gone", "cycle", e.cycleID, "target", e.target.String(), "error", err)
		e.finish(PhaseAbandoned, err)
		return nil
	}
	if d.HasError() && e.onRowError != nil {
		e.onRowError(d)
	}

	e.rowKey = d.Key
	e.target = Position{Row: d.Index, Item: e.sh.state.LastFocused.Item}
	idx := Clamp(e.target.Item, d.FocusableCount(), e.pool.MaxPerRow())
	if idx < 0 {
		e.phase = PhaseScheduled
		e.log.Debug("target row has no items yet, waiting", "cycle", e.cycleID, "row", d.Key)
		return nil
	}
	if idx != e.target.Item {
		e.log.Debug("clamped restoration target", "cycle", e.cycleID, "from", e.target.Item, "to", idx, "live", d.LiveItemCount())
	}

	e.clamped = Position{Row: d.Index, Item: idx}
	e.phase = PhaseScrolling
	e.viewports.Get(d.Key).ScrollToIndex(idx)
	return e.schedule(e.opts.ScrollSettleDelay, StepMsg{Screen: e.screen, Cycle: e.cycle, Attempt: 1, step: stepFocus})
}

func (e *Engine) attempt(k int) tea.Cmd {
	e.phase = PhaseFocusing
	e.attempts = k

	h, err := e.pool.GetOrCreate(e.clamped)
	if err == nil && h.RequestFocus() {
		e.log.Info("restoration succeeded", "cycle", e.cycleID, "pos", e.clamped.String(), "attempt", k)
		e.finish(PhaseSucceeded, nil)
		return nil
	}
	if err == nil {
		err = perrors.FocusAttemptFailed(e.clamped.Row, e.clamped.Item, k)
	}
	e.log.Debug("focus attempt failed", "cycle", e.cycleID, "error", err)

	if k >= e.opts.MaxAttempts {
		e.log.Warn("restoration abandoned", "cycle", e.cycleID, "pos", e.clamped.String(), "attempts", k)
		e.finish(PhaseAbandoned, perrors.RetriesExhausted(e.clamped.Row, e.clamped.Item, k))
		return nil
	}
	return e.schedule(e.opts.RetryBackoff, StepMsg{Screen: e.screen, Cycle: e.cycle, Attempt: k + 1, step: stepFocus})
}

// finish ends the cycle. Clearing ShouldRestore here is the engine's own
// doing, so it is folded into the last trigger and does not start a cycle.
// So is the focus event a successful request echoes back at the clamped
// position.
func (e *Engine) finish(phase Phase, err error) {
	e.phase = phase
	e.sh.state.ShouldRestore = false
	e.last.shouldRestore = false
	if phase == PhaseSucceeded {
		e.last.target = e.clamped
		e.last.key = e.rowKey
	}
	o := e.record(phase, err)
	if e.onFinish != nil {
		e.onFinish(o)
	}
}

func (e *Engine) record(phase Phase, err error) Outcome {
	o := Outcome{
		Cycle:    e.cycleID,
		Target:   e.target,
		Clamped:  e.clamped,
		Phase:    phase,
		Attempts: e.attempts,
		Err:      err,
	}
	e.history = append(e.history, o)
	if len(e.history) > maxOutcomes {
		e.history = e.history[len(e.history)-maxOutcomes:]
	}
	return o
}
