// Package levels provides the built-in platform layouts and loads extra
// layouts from YAML files. Built-in levels register themselves on import.
package levels

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// DefaultID is the level played when none is named.
const DefaultID = "lab"

func init() {
	registry.Register("lab", Lab)
	registry.Register("stairs", Stairs)
	registry.Register("towers", Towers)
}

// Lab is the classic layout: a ground strip and five floating ledges.
func Lab() registry.Level {
	return registry.Level{
		ID:    "lab",
		Title: "Lab",
		Platforms: []core.Rect{
			core.NewRect(40, 560, 920, 40),
			core.NewRect(60, 420, 160, 18),
			core.NewRect(300, 360, 200, 18),
			core.NewRect(640, 320, 220, 18),
			core.NewRect(200, 240, 150, 18),
			core.NewRect(480, 180, 160, 18),
		},
		StartX:        120,
		StartPlatform: 1,
	}
}

// Stairs climbs from the lower left to the upper right.
func Stairs() registry.Level {
	return registry.Level{
		ID:    "stairs",
		Title: "Stairs",
		Platforms: []core.Rect{
			core.NewRect(0, 560, 1000, 40),
			core.NewRect(40, 470, 180, 18),
			core.NewRect(230, 400, 180, 18),
			core.NewRect(420, 330, 180, 18),
			core.NewRect(610, 260, 180, 18),
			core.NewRect(800, 190, 160, 18),
		},
		StartX:        80,
		StartPlatform: 1,
	}
}

// Towers has two tall stacks with a gap over the ground.
func Towers() registry.Level {
	return registry.Level{
		ID:    "towers",
		Title: "Towers",
		Platforms: []core.Rect{
			core.NewRect(40, 560, 920, 40),
			core.NewRect(80, 440, 220, 18),
			core.NewRect(80, 320, 220, 18),
			core.NewRect(80, 200, 220, 18),
			core.NewRect(700, 440, 220, 18),
			core.NewRect(700, 320, 220, 18),
			core.NewRect(700, 200, 220, 18),
			core.NewRect(400, 380, 200, 18),
		},
		StartX:        140,
		StartPlatform: 1,
	}
}
