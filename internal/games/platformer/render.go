package platformer

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Visual characters for rendering
const (
	SolidChar   = '█'
	DimChar     = '▒'
	CoinChar    = '●'
	PlatformHex = "#64320a"
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// viewport maps world pixels onto the screen cells below the HUD.
type viewport struct {
	cols, rows int // playfield size in cells
	worldW     int
	worldH     int
	originY    int
}

func newViewport(dst *core.Screen, f Frame) viewport {
	return viewport{
		cols:    dst.Width(),
		rows:    core.Max(0, dst.Height()-hudRows),
		worldW:  core.Max(1, f.Width),
		worldH:  core.Max(1, f.Height),
		originY: hudRows,
	}
}

// cells converts a world rect to the cell rect covering it. Every non-empty
// rect covers at least one cell.
func (v viewport) cells(r core.Rect) core.Rect {
	x0 := floorDiv(r.X*v.cols, v.worldW)
	y0 := floorDiv(r.Y*v.rows, v.worldH)
	x1 := ceilDiv(r.Right()*v.cols, v.worldW)
	y1 := ceilDiv(r.Bottom()*v.rows, v.worldH)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0+v.originY, x1-x0, y1-y0)
}

// RenderFrame draws f scaled to dst. With a nil sprite set entities are
// drawn with plain colored glyphs.
func RenderFrame(dst *core.Screen, f Frame, sprites *assets.Set) {
	dst.Clear()
	v := newViewport(dst, f)

	var player, enemy, coin *assets.Sprite
	if sprites != nil {
		player, enemy, coin = sprites.Player, sprites.Enemy, sprites.Coin
		drawBackground(dst, v, sprites.Background)
	}

	for _, p := range f.Platforms {
		c := v.cells(p)
		for y := c.Y; y < c.Bottom(); y++ {
			for x := c.X; x < c.Right(); x++ {
				dst.SetTinted(x, y, SolidChar, PlatformHex)
			}
		}
	}

	for _, c := range f.Coins {
		drawEntity(dst, v.cells(c), coin, CoinChar, core.ColorBrightYellow)
	}
	for _, e := range f.Enemies {
		drawEntity(dst, v.cells(e), enemy, SolidChar, core.ColorRed)
	}

	playerRune := SolidChar
	if f.Blink {
		playerRune = DimChar
	}
	drawEntity(dst, v.cells(f.Player), player, playerRune, core.ColorBrightCyan)

	drawHUD(dst, f.HUD)

	switch {
	case f.HUD.GameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d", f.HUD.Score), core.ColorBrightRed)
	case f.HUD.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	}
}

// drawBackground tints every playfield cell with the background image.
func drawBackground(dst *core.Screen, v viewport, bg *assets.Sprite) {
	if bg == nil {
		return
	}
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			if tint, ok := bg.Tint(v.cols, v.rows, x, y); ok {
				dst.SetBackdrop(x, y+v.originY, tint)
			}
		}
	}
}

// drawEntity fills c with the sprite's colors, or with glyph in color when
// there is no sprite. Transparent sprite cells are left alone.
func drawEntity(dst *core.Screen, c core.Rect, sprite *assets.Sprite, glyph rune, color core.Color) {
	for y := c.Y; y < c.Bottom(); y++ {
		for x := c.X; x < c.Right(); x++ {
			if sprite == nil {
				dst.SetColored(x, y, glyph, color)
				continue
			}
			if tint, ok := sprite.Tint(c.W, c.H, x-c.X, y-c.Y); ok {
				dst.SetTinted(x, y, glyph, tint)
			}
		}
	}
}

// drawHUD writes the status line on the first row.
func drawHUD(dst *core.Screen, h HUD) {
	left := fmt.Sprintf(" Lives: %d  Score: %d  Tasks: %d  Enemies: %d  Free: %d ",
		h.Lives, h.Score, h.Tasks, h.Enemies, h.FreePermits)
	dst.DrawColoredText(0, 0, left, core.ColorBrightWhite)

	if h.Level != "" {
		right := " " + h.Level + " "
		x := dst.Width() - len([]rune(right))
		if x > len([]rune(left)) {
			dst.DrawColoredText(x, 0, right, core.ColorGray)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, titleColor core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawColoredText(boxX+(boxW-len(title))/2, boxY+1, title, titleColor)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
