package ui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/tenfoot/internal/keys"
)

// stripANSI removes ANSI escape codes from a string for testing
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestHeader_View(t *testing.T) {
	h := NewHeader()
	h.SetWidth(100)
	h.SetLayouts([]string{"movies", "shows", "sports"}, 1)
	h.SetStatus("restore: succeeded")

	out := stripANSI(h.View())

	for _, want := range []string{"tenfoot", "movies", "[shows]", "sports", "restore: succeeded"} {
		if !strings.Contains(out, want) {
			t.Errorf("header %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "[movies]") {
		t.Error("only the active layout should be bracketed")
	}
}

func TestHeader_ViewFillsWidth(t *testing.T) {
	h := NewHeader()
	h.SetWidth(60)

	out := stripANSI(h.View())
	if got := len([]rune(out)); got != 60 {
		t.Errorf("header width = %d, want 60", got)
	}
}

func TestHeader_TruncatesToWidth(t *testing.T) {
	h := NewHeader()
	h.SetWidth(20)
	h.SetLayouts([]string{"movies", "shows", "sports"}, 0)
	h.SetStatus("a very long status line")

	out := stripANSI(h.View())
	if got := len([]rune(out)); got > 20 {
		t.Errorf("header width = %d, want at most 20", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#7C3AED", 0x7C, 0x3A, 0xED},
		{"#000000", 0, 0, 0},
		{"bogus", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := parseHexColor(tt.hex)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseHexColor(%q) = %d,%d,%d, want %d,%d,%d", tt.hex, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestFooter_ShowsHelp(t *testing.T) {
	f := NewFooter(keys.DefaultKeyMap())
	f.SetWidth(200)

	out := stripANSI(f.View())
	for _, want := range []string{"enter", "details", "esc", "back", "tab", "layout"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer %q missing %q", out, want)
		}
	}
}

func TestFooter_Flash(t *testing.T) {
	f := NewFooter(keys.DefaultKeyMap())
	f.SetWidth(120)

	if f.HasFlash() {
		t.Fatal("expected no flash initially")
	}

	f.SetFlash("row unavailable", FlashError)
	if !f.HasFlash() {
		t.Fatal("expected flash after SetFlash")
	}
	out := stripANSI(f.View())
	if !strings.Contains(out, "row unavailable") {
		t.Errorf("footer %q missing flash text", out)
	}
	if strings.Contains(out, "details") {
		t.Error("flash should replace key help")
	}

	f.ClearFlash()
	if f.HasFlash() {
		t.Error("expected no flash after ClearFlash")
	}
}

func TestFooter_ExpireFlash(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFooter(keys.DefaultKeyMap())
	f.now = func() time.Time { return base }

	f.SetFlash("first", FlashInfo)

	f.ExpireFlash(base.Add(FlashDuration / 2))
	if !f.HasFlash() {
		t.Fatal("flash expired early")
	}

	f.ExpireFlash(base.Add(FlashDuration))
	if f.HasFlash() {
		t.Fatal("flash should expire after FlashDuration")
	}

	// A flash replaced after the tick was scheduled survives the old tick.
	f.SetFlash("second", FlashWarning)
	f.now = func() time.Time { return base.Add(time.Second) }
	f.SetFlash("third", FlashSuccess)
	f.ExpireFlash(base.Add(FlashDuration))
	if !f.HasFlash() {
		t.Error("newer flash was expired by an older tick")
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() returned nil command")
	}
}
