// Package app is the bubbletea program behind the tenfoot browse screen.
//
// The Model owns one focus.Controller per catalog layout and a single
// ui.Surface that renders whichever layout is active. Feed pages, restoration
// steps and key presses all arrive as messages on the same update loop.
package app

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/feed"
	"github.com/zhubert/tenfoot/internal/focus"
	"github.com/zhubert/tenfoot/internal/keys"
	"github.com/zhubert/tenfoot/internal/logger"
	"github.com/zhubert/tenfoot/internal/ui"
)

// Screen is what the app is currently showing.
type Screen int

const (
	ScreenBrowse  Screen = iota // Catalog rows of the active layout
	ScreenDetails               // Item page opened from browse
)

// String returns a human-readable name for the screen
func (s Screen) String() string {
	switch s {
	case ScreenBrowse:
		return "Browse"
	case ScreenDetails:
		return "Details"
	default:
		return "Unknown"
	}
}

// Options inject the collaborators that differ between the interactive
// program and headless runs.
type Options struct {
	// Store persists focus state. Defaults to an in-memory store.
	Store focus.StateStore
	// Schedule delays restoration steps. Defaults to focus.TickScheduler.
	Schedule focus.Scheduler
	// Headless disables timers that only matter on a real terminal, such as
	// flash auto-dismiss.
	Headless bool
	// AttachLag fails the first n focus requests after each composition of
	// the browse surface, as a slow view tree would.
	AttachLag int
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	opts    Options
	keymap  keys.KeyMap

	header  *ui.Header
	footer  *ui.Footer
	surface *ui.Surface
	details *ui.Details
	logs    *ui.LogViewer

	// preview names the focused item; cleared when focus leaves the rows
	preview     string
	flashRaised bool

	width  int
	height int
	screen Screen

	layouts     []string
	active      int
	feeds       map[string]*feed.Set
	controllers map[string]*focus.Controller
	started     map[string]bool

	log *slog.Logger
}

// FocusOptions converts the focus config section into engine options.
func FocusOptions(cfg config.FocusConfig) focus.Options {
	return focus.Options{
		MaxHandlesPerRow:  cfg.MaxHandlesPerRow,
		MaxAttempts:       cfg.MaxAttempts,
		SettleDelay:       cfg.SettleDelay,
		ScrollSettleDelay: cfg.ScrollSettleDelay,
		RetryBackoff:      cfg.RetryBackoff,
	}
}

// New creates the model. Every configured layout gets its feeds and focus
// controller up front; feeds start when a layout is first shown.
func New(cfg *config.Config, version string, opts Options) *Model {
	if opts.Store == nil {
		opts.Store = focus.NewMemoryStore()
	}
	if opts.Schedule == nil {
		opts.Schedule = focus.TickScheduler
	}

	km := keys.DefaultKeyMap()
	m := &Model{
		config:      cfg,
		version:     version,
		opts:        opts,
		keymap:      km,
		header:      ui.NewHeader(),
		footer:      ui.NewFooter(km),
		surface:     ui.NewSurface(),
		layouts:     config.Layouts,
		feeds:       make(map[string]*feed.Set),
		controllers: make(map[string]*focus.Controller),
		started:     make(map[string]bool),
		log:         logger.ComponentLogger("app"),
	}

	for i, name := range m.layouts {
		if name == cfg.Catalog.Layout {
			m.active = i
		}
		m.feeds[name] = feed.New(name, cfg.Catalog)
		m.controllers[name] = focus.NewController(name, FocusOptions(cfg.Focus), focus.Deps{
			Store:      opts.Store,
			Handles:    m.surface.Handle,
			Viewports:  m.surface.Viewport,
			Schedule:   opts.Schedule,
			OnRowError: m.onRowError,
		})
	}
	m.header.SetLayouts(m.layouts, m.active)

	return m
}

// Init starts the active layout.
func (m *Model) Init() tea.Cmd {
	return m.activate()
}

// activate shows the active layout: its feeds start on first use, the
// surface is laid out anew, and the controller restores focus.
func (m *Model) activate() tea.Cmd {
	name := m.layouts[m.active]
	set := m.feeds[name]
	ctrl := m.controllers[name]

	var cmds []tea.Cmd
	if !m.started[name] {
		m.started[name] = true
		cmds = append(cmds, set.Start())
	}

	m.surface.Reset()
	m.surface.SetAttachLag(m.opts.AttachLag)
	cmds = append(cmds, ctrl.SetLayout(set.Layout()))
	m.surface.SetCatalog(ctrl.Catalog())
	cmds = append(cmds, ctrl.Enter())

	m.log.Debug("layout activated", "layout", name)
	return tea.Batch(cmds...)
}

// onRowError is called by the restoration engine when its target row failed
// to load.
func (m *Model) onRowError(d focus.RowDescriptor) {
	m.log.Warn("restoration target row unavailable", "row", d.Key)
	m.footer.SetFlash(m.Feed().Title(d.Key)+" is unavailable, press r to retry", ui.FlashError)
	m.flashRaised = true
}

// Layout returns the active layout name.
func (m *Model) Layout() string {
	return m.layouts[m.active]
}

// Controller returns the focus controller of the active layout.
func (m *Model) Controller() *focus.Controller {
	return m.controllers[m.Layout()]
}

// Feed returns the feeds of the active layout.
func (m *Model) Feed() *feed.Set {
	return m.feeds[m.Layout()]
}

// Surface returns the rendered browse surface.
func (m *Model) Surface() *ui.Surface {
	return m.surface
}

// Footer returns the footer bar.
func (m *Model) Footer() *ui.Footer {
	return m.footer
}

// Screen returns what the app is showing.
func (m *Model) Screen() Screen {
	return m.screen
}

// Preview returns the header's description of the focused item.
func (m *Model) Preview() string {
	return m.preview
}

// ShowingLogs reports whether the log overlay is open.
func (m *Model) ShowingLogs() bool {
	return m.logs != nil
}
