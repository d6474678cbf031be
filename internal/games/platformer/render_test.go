package platformer

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestViewportCells(t *testing.T) {
	dst := core.NewScreen(100, 61)
	v := newViewport(dst, Frame{Width: 1000, Height: 600})

	tests := []struct {
		name     string
		in       core.Rect
		expected core.Rect
	}{
		{"origin", core.NewRect(0, 0, 10, 10), core.NewRect(0, 1, 1, 1)},
		{"exact cells", core.NewRect(100, 100, 200, 50), core.NewRect(10, 11, 20, 5)},
		{"partial cells round out", core.NewRect(105, 105, 10, 10), core.NewRect(10, 11, 2, 2)},
		{"above the world", core.NewRect(0, -20, 10, 10), core.NewRect(0, -1, 1, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.cells(tc.in); got != tc.expected {
				t.Errorf("cells(%+v) = %+v, expected %+v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestRenderHUDAndEntities(t *testing.T) {
	s := newTestSession(t, quietConfigWith(func(c *cfgT) {
		c.Coins.Initial = 3
	}), newFakeClock())

	dst := core.NewScreen(80, 24)
	RenderFrame(dst, s.Frame(), nil)

	hud := dst.Row(0)
	for _, want := range []string{"Lives: 3", "Score: 0", "Enemies: 0", "Free: 8", "Lab"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	var platform, coin bool
	for y := 1; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			c := dst.GetCell(x, y)
			if c.Tint == PlatformHex {
				platform = true
			}
			if c.Rune == CoinChar && c.Color == core.ColorBrightYellow {
				coin = true
			}
		}
	}
	if !platform || !coin {
		t.Errorf("platform drawn=%v coin drawn=%v, expected both", platform, coin)
	}
}

func TestRenderGameOver(t *testing.T) {
	s := newTestSession(t, quietConfigWith(func(c *cfgT) { c.Player.Lives = 1 }), newFakeClock())
	setPlayer(s, 500, 801, 0)
	s.Step(input())

	dst := core.NewScreen(80, 24)
	RenderFrame(dst, s.Frame(), nil)
	if !strings.Contains(dst.String(), "GAME OVER") {
		t.Error("GAME OVER not rendered")
	}
}

func TestRenderPlaceholderSprites(t *testing.T) {
	s := newTestSession(t, quietConfig(), newFakeClock())

	f := s.Frame()
	f.Blink = false
	dst := core.NewScreen(100, 61)
	RenderFrame(dst, f, assets.PlaceholderSet())

	// Player at (120, 348) maps to cell (12, 1+34)
	c := dst.GetCell(12, 35)
	if c.Tint != "#ff00ff" {
		t.Errorf("player cell tint = %q, expected placeholder magenta", c.Tint)
	}
	if c.Backdrop != "#ff00ff" {
		t.Errorf("backdrop = %q, expected placeholder magenta", c.Backdrop)
	}
}

func TestBlink(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, quietConfig(), clock)

	seen := map[bool]bool{}
	for i := 0; i < 10; i++ {
		seen[s.Frame().Blink] = true
		clock.Advance(100 * time.Millisecond)
	}
	if !seen[true] || !seen[false] {
		t.Errorf("blink states seen = %v, expected both during invulnerability", seen)
	}

	clock.Advance(5 * time.Second)
	if s.Frame().Blink {
		t.Error("Blink = true after invulnerability ended")
	}
}
