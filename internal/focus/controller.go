package focus

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tenfoot/internal/logger"
)

// Deps are the collaborators a Controller needs from its host.
type Deps struct {
	Store     StateStore
	Handles   HandleFactory
	Viewports ViewportFactory
	// Schedule defaults to TickScheduler.
	Schedule Scheduler
	// OnRowError is called when the restoration target row reports an error.
	OnRowError func(RowDescriptor)
}

// Controller is the focus surface of one screen. It owns the persisted
// state, the row catalog, the handle pool, the viewport registry, the event
// sink and the restoration engine. All methods must be called from the
// update loop.
type Controller struct {
	screen    string
	opts      Options
	store     StateStore
	layout    Layout
	sh        *shared
	pool      *HandlePool
	viewports *ViewportRegistry
	sink      *EventSink
	engine    *Engine
	log       *slog.Logger
}

// NewController creates the focus controller for a screen.
func NewController(screen string, opts Options, deps Deps) *Controller {
	store := deps.Store
	if store == nil {
		store = NewMemoryStore()
	}
	sh := &shared{
		state:   DefaultState(),
		catalog: NewRowCatalog(Layout{}),
	}
	pool := NewHandlePool(opts.MaxHandlesPerRow, deps.Handles)
	viewports := NewViewportRegistry(deps.Viewports)

	c := &Controller{
		screen:    screen,
		opts:      opts,
		store:     store,
		sh:        sh,
		pool:      pool,
		viewports: viewports,
		sink:      newEventSink(screen, sh),
		engine:    newEngine(screen, opts, sh, pool, viewports, deps.Schedule),
		log:       logger.WithScreen(screen, "focus"),
	}
	c.engine.onRowError = deps.OnRowError
	c.engine.onFinish = func(Outcome) { c.persist() }
	return c
}

// Screen returns the screen name this controller persists under.
func (c *Controller) Screen() string {
	return c.screen
}

// Enter loads the persisted state and starts restoration. Called on first
// mount and on return navigation.
func (c *Controller) Enter() tea.Cmd {
	st, err := c.store.Load(c.screen)
	if err != nil {
		c.log.Warn("failed to load focus state, using default", "error", err)
		st = DefaultState()
	}
	if !st.LastFocused.IsNone() {
		st.ShouldRestore = true
	}
	c.sh.state = st
	c.log.Debug("entered screen", "last_focused", st.LastFocused.String(), "row", st.LastFocusedKey)

	c.engine.Reset()
	return c.engine.Evaluate()
}

// Leave persists the state and cancels any in-flight restoration.
func (c *Controller) Leave() {
	c.engine.Cancel()
	c.persist()
}

// SetLayout replaces the row sources and re-evaluates restoration.
func (c *Controller) SetLayout(layout Layout) tea.Cmd {
	c.layout = layout
	return c.DataChanged()
}

// DataChanged rebuilds the row catalog from the current layout after a feed
// delivered data, drops handles and viewports of rows that went away, and
// re-evaluates restoration.
func (c *Controller) DataChanged() tea.Cmd {
	c.sh.catalog = NewRowCatalog(c.layout)
	total := c.sh.catalog.TotalRows()
	if n := c.pool.EvictRowsAbove(total - 1); n > 0 {
		c.log.Debug("evicted focus handles", "count", n, "rows", total)
	}
	c.viewports.Retain(c.sh.catalog.Keys())
	return c.engine.Evaluate()
}

// OnFocusGained records an observed focus change. Any in-flight cycle is
// superseded.
func (c *Controller) OnFocusGained(pos Position) tea.Cmd {
	c.sink.OnFocusGained(pos)
	c.persist()
	return c.engine.Evaluate()
}

// OnFocusLost records focus leaving an item; see EventSink.OnFocusLost.
func (c *Controller) OnFocusLost(toFallback bool) tea.Cmd {
	if !toFallback {
		return nil
	}
	c.sink.OnFocusLost(true)
	c.persist()
	return c.engine.Evaluate()
}

// Handle feeds one rendering-layer focus event through the sink.
func (c *Controller) Handle(ev FocusChange) tea.Cmd {
	switch {
	case ev.Fallback && ev.HasFocus:
		return c.OnFocusLost(true)
	case ev.HasFocus && !ev.Fallback:
		return c.OnFocusGained(ev.Position)
	}
	return nil
}

// Update routes restoration step messages to the engine.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	return c.engine.Update(msg)
}

// SetMaxHandlesPerRow changes the per-row handle cap at runtime.
func (c *Controller) SetMaxHandlesPerRow(n int) int {
	c.opts.MaxHandlesPerRow = n
	return c.pool.SetMaxPerRow(n)
}

func (c *Controller) persist() {
	if err := c.store.Save(c.screen, c.sh.state); err != nil {
		c.log.Error("failed to persist focus state", "error", err)
	}
}

func (c *Controller) State() State {
	return c.sh.state
}

func (c *Controller) Phase() Phase {
	return c.engine.Phase()
}

func (c *Controller) Catalog() *RowCatalog {
	return c.sh.catalog
}

func (c *Controller) Pool() *HandlePool {
	return c.pool
}

func (c *Controller) Viewports() *ViewportRegistry {
	return c.viewports
}

func (c *Controller) Sink() *EventSink {
	return c.sink
}

func (c *Controller) Outcomes() []Outcome {
	return c.engine.Outcomes()
}

// ClearTransient reports and resets the clear-transient-details signal
// raised when focus moved to the fallback region.
func (c *Controller) ClearTransient() bool {
	return c.sink.TakeClearTransient()
}
