// Package scenarios contains built-in demo scenarios for tenfoot. Each one
// scripts a browse session and checks where focus restoration lands.
package scenarios

import (
	"time"

	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/demo"
	perrors "github.com/zhubert/tenfoot/internal/errors"
	"github.com/zhubert/tenfoot/internal/focus"
)

var (
	topRated    = focus.CatalogKey("Top Rated")
	newReleases = focus.CatalogKey("New Releases")
)

// seeded returns the default setup with a persisted movies state.
func seeded(pos focus.Position, key string) *demo.ScenarioSetup {
	s := demo.DefaultSetup()
	s.State = map[string]focus.State{
		config.LayoutMovies: {
			LastFocused:    pos,
			LastFocusedKey: key,
			ShouldRestore:  true,
		},
	}
	return s
}

func pos(row, item int) focus.Position {
	return focus.Position{Row: row, Item: item}
}

// RestoreCatalog returns to item 7 of a fully loaded catalog row, which has
// to be scrolled into view first.
var RestoreCatalog = &demo.Scenario{
	Name:        "restore-catalog",
	Description: "Restore focus to a scrolled item of a loaded catalog row",
	Width:       120,
	Height:      40,
	Setup:       seeded(pos(3, 7), topRated),
	Steps: []demo.Step{
		demo.Wait(500 * time.Millisecond),
		demo.Expect(focus.PhaseSucceeded, pos(3, 7)),
		demo.Annotate("Top Rated scrolled to item 8 and focused on the first attempt"),
		demo.Capture(),
	},
}

var restoreLoadingSetup = func() *demo.ScenarioSetup {
	s := seeded(pos(4, 2), newReleases)
	s.Hold = []string{newReleases}
	return s
}()

// RestoreLoading targets a row whose first page has not arrived. The engine
// waits and completes once the items land.
var RestoreLoading = &demo.Scenario{
	Name:        "restore-loading",
	Description: "Wait for a loading row, then restore once its items arrive",
	Width:       120,
	Height:      40,
	Setup:       restoreLoadingSetup,
	Steps: []demo.Step{
		demo.ExpectPhase(focus.PhaseScheduled),
		demo.Annotate("New Releases is still loading, restoration waits"),
		demo.Capture(),
		demo.Wait(800 * time.Millisecond),
		demo.Deliver(newReleases),
		demo.Expect(focus.PhaseSucceeded, pos(4, 2)),
		demo.Annotate("Page arrived, focus restored"),
		demo.Capture(),
	},
}

// ClampProvider restores item 12 of a provider row that only has five
// providers, landing on the last one.
var ClampProvider = &demo.Scenario{
	Name:        "clamp-provider",
	Description: "Clamp an out-of-range provider target to the last provider",
	Width:       120,
	Height:      40,
	Setup:       seeded(pos(1, 12), focus.ProvidersKey),
	Steps: []demo.Step{
		demo.Wait(500 * time.Millisecond),
		demo.Expect(focus.PhaseSucceeded, pos(1, 4)),
		demo.Annotate("Item 13 does not exist, the last provider is focused instead"),
		demo.Capture(),
	},
}

// Fallback moves focus below the last row. Leaving and coming back then
// restores nothing.
var Fallback = &demo.Scenario{
	Name:        "fallback",
	Description: "Focus the end-of-catalog region, which disables restoration",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: append(
		demo.Keys("down", "down", "down", "down", "down", "down", "down"),
		demo.Annotate("Focus moved past the last row"),
		demo.Capture(),
		demo.Key("tab"),
		demo.Key("shift+tab"),
		demo.Expect(focus.PhaseIdle, focus.NoPosition),
		demo.Annotate("Back on movies: nothing to restore"),
		demo.Capture(),
	),
}

// DetailsRoundTrip opens an item and comes back to it.
var DetailsRoundTrip = &demo.Scenario{
	Name:        "details-roundtrip",
	Description: "Open an item's details and return to the same tile",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: append(
		demo.Keys("down", "down", "right", "right", "right", "right", "right"),
		demo.Capture(),
		demo.KeyWithDesc("enter", "open details"),
		demo.Annotate("Details of Trending item 6"),
		demo.Capture(),
		demo.KeyWithDesc("esc", "back to browse"),
		demo.Expect(focus.PhaseSucceeded, pos(2, 5)),
		demo.Annotate("Back on browse, focus restored"),
		demo.Capture(),
	),
}

var attachRetrySetup = func() *demo.ScenarioSetup {
	s := seeded(pos(3, 7), topRated)
	s.AttachLag = 1
	return s
}()

// AttachRetry restores into a row that is not composed on the first
// attempt; the second attempt succeeds.
var AttachRetry = &demo.Scenario{
	Name:        "attach-retry",
	Description: "Retry a focus request that lands before the row is composed",
	Width:       120,
	Height:      40,
	Setup:       attachRetrySetup,
	Steps: []demo.Step{
		demo.Expect(focus.PhaseSucceeded, pos(3, 7)),
		demo.Annotate("Focused on the second attempt"),
		demo.Capture(),
	},
}

var abandonSetup = func() *demo.ScenarioSetup {
	s := seeded(pos(3, 7), topRated)
	s.AttachLag = 5
	s.MaxAttempts = 3
	return s
}()

// Abandon never gets a focus request through and gives up after the
// attempt cap.
var Abandon = &demo.Scenario{
	Name:        "abandon",
	Description: "Give up after three failed focus attempts",
	Width:       120,
	Height:      40,
	Setup:       abandonSetup,
	Steps: []demo.Step{
		demo.Expect(focus.PhaseAbandoned, focus.NoPosition),
		demo.Annotate("Restoration abandoned, nothing is focused"),
		demo.Capture(),
	},
}

var rowErrorSetup = func() *demo.ScenarioSetup {
	s := seeded(pos(3, 2), topRated)
	s.Failing = []string{topRated}
	return s
}()

// RowErrorRetry targets a row whose feed failed. Restoration waits until
// the user retries the row.
var RowErrorRetry = &demo.Scenario{
	Name:        "row-error-retry",
	Description: "Wait on a failed row and restore after it is retried",
	Width:       120,
	Height:      40,
	Setup:       rowErrorSetup,
	Steps: []demo.Step{
		demo.ExpectPhase(focus.PhaseScheduled),
		demo.Annotate("Top Rated failed to load"),
		demo.Capture(),
		demo.KeyWithDesc("r", "retry failed rows"),
		demo.Expect(focus.PhaseSucceeded, pos(3, 2)),
		demo.Annotate("Retried, focus restored"),
		demo.Capture(),
	},
}

// LayoutSwitch keeps focus per layout across tab switches.
var LayoutSwitch = &demo.Scenario{
	Name:        "layout-switch",
	Description: "Switch through movies, shows and sports and back",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: append(
		demo.Keys("down", "down", "right"),
		demo.Capture(),
		demo.Key("tab"),
		demo.Expect(focus.PhaseSucceeded, pos(0, 0)),
		demo.Annotate("Shows starts on the hero row"),
		demo.Capture(),
		demo.Key("tab"),
		demo.Annotate("Sports"),
		demo.Capture(),
		demo.Key("shift+tab"),
		demo.Key("shift+tab"),
		demo.Expect(focus.PhaseSucceeded, pos(2, 1)),
		demo.Annotate("Movies remembers Trending item 2"),
		demo.Capture(),
	),
}

// All returns all available scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		RestoreCatalog,
		RestoreLoading,
		ClampProvider,
		Fallback,
		DetailsRoundTrip,
		AttachRetry,
		Abandon,
		RowErrorRetry,
		LayoutSwitch,
	}
}

// Get returns a copy of the named scenario.
func Get(name string) (*demo.Scenario, error) {
	for _, s := range All() {
		if s.Name == name {
			c := *s
			return &c, nil
		}
	}
	return nil, perrors.ScenarioNotFound(name)
}
