package focus

import (
	"log/slog"

	"github.com/zhubert/tenfoot/internal/logger"
)

// FocusChange is one notification from the rendering layer. Fallback marks
// the trailing sentinel region below the last row.
type FocusChange struct {
	Position Position
	HasFocus bool
	Fallback bool
}

// shared is the only state the sink and the engine both touch.
type shared struct {
	state   State
	catalog *RowCatalog
}

// EventSink records observed focus changes into the persisted state.
type EventSink struct {
	sh             *shared
	clearTransient bool
	log            *slog.Logger
}

func newEventSink(screen string, sh *shared) *EventSink {
	return &EventSink{
		sh:  sh,
		log: logger.WithScreen(screen, "sink"),
	}
}

// OnFocusGained records pos as the last focused position and disables any
// pending restoration. A position in the provider row is also remembered as
// the hero carousel's target provider.
func (s *EventSink) OnFocusGained(pos Position) {
	st := &s.sh.state
	st.LastFocused = pos
	st.LastFocusedKey = ""
	if d, err := s.sh.catalog.Resolve(pos.Row); err == nil {
		st.LastFocusedKey = d.Key
		if d.Kind == KindProviders {
			st.CarouselTargetProvider = pos.Item
		}
	}
	st.ShouldRestore = false
	s.log.Debug("focus gained", "pos", pos.String(), "row", st.LastFocusedKey)
}

// OnFocusLost handles focus leaving an item. Only a move into the fallback
// region matters: it clears the restoration target and raises the
// clear-transient-details signal.
func (s *EventSink) OnFocusLost(toFallback bool) {
	if !toFallback {
		return
	}
	s.sh.state.LastFocused = NoPosition
	s.sh.state.LastFocusedKey = ""
	s.clearTransient = true
	s.log.Debug("focus moved to fallback region")
}

// Handle dispatches a FocusChange. Plain blur events are ignored since a
// gain elsewhere always follows.
func (s *EventSink) Handle(ev FocusChange) {
	switch {
	case ev.Fallback && ev.HasFocus:
		s.OnFocusLost(true)
	case ev.Fallback:
	case ev.HasFocus:
		s.OnFocusGained(ev.Position)
	}
}

// TakeClearTransient reports and resets the clear-transient-details signal.
func (s *EventSink) TakeClearTransient() bool {
	v := s.clearTransient
	s.clearTransient = false
	return v
}
