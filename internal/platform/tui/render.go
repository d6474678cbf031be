package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
}

// styleKey identifies everything that affects how a cell is styled.
type styleKey struct {
	color    core.Color
	tint     string
	backdrop string
}

func keyOf(c core.Cell) styleKey {
	return styleKey{color: c.Color, tint: c.Tint, backdrop: c.Backdrop}
}

// trueColorStyles caches styles for sprite-sampled colors. Sprites use a
// small palette, so the cache stays small. Shared across SSH sessions.
var trueColorStyles sync.Map // styleKey -> lipgloss.Style

func styleFor(k styleKey) lipgloss.Style {
	if k.tint == "" && k.backdrop == "" {
		if style, ok := colorStyles[k.color]; ok {
			return style
		}
		return colorStyles[core.ColorDefault]
	}
	if v, ok := trueColorStyles.Load(k); ok {
		return v.(lipgloss.Style)
	}

	style, ok := colorStyles[k.color]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	if k.tint != "" {
		style = style.Foreground(lipgloss.Color(k.tint))
	}
	if k.backdrop != "" {
		style = style.Background(lipgloss.Color(k.backdrop))
	}
	v, _ := trueColorStyles.LoadOrStore(k, style)
	return v.(lipgloss.Style)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := keyOf(s.GetCell(x, y))

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if keyOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}
