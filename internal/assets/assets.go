// Package assets loads sprite images and samples them down to terminal cells.
package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// PlaceholderColor is the fill of a sprite whose image could not be loaded.
var PlaceholderColor = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// Sprite is a decoded image that can be resampled to any cell grid.
type Sprite struct {
	Name        string
	Placeholder bool

	src image.Image

	mu    sync.Mutex
	cache map[image.Point]*image.RGBA
}

// NewSprite wraps an already decoded image.
func NewSprite(name string, img image.Image) *Sprite {
	return &Sprite{Name: name, src: img, cache: make(map[image.Point]*image.RGBA)}
}

// Placeholder returns a solid magenta sprite.
func Placeholder(name string) *Sprite {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, PlaceholderColor)
	s := NewSprite(name, img)
	s.Placeholder = true
	return s
}

// Decode reads an image file. Format is detected from content.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// Load decodes path into a sprite. Any failure yields a placeholder and a
// warning; it never returns an error.
func Load(logger *log.Logger, name, path string) *Sprite {
	img, err := Decode(path)
	if err != nil {
		if logger != nil {
			logger.Warn("using placeholder sprite", "sprite", name, "error", err)
		}
		return Placeholder(name)
	}
	return NewSprite(name, img)
}

// Scaled returns the sprite resampled to w x h pixels.
// Results are cached per size.
func (s *Sprite) Scaled(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	key := image.Pt(w, h)

	s.mu.Lock()
	defer s.mu.Unlock()

	if img, ok := s.cache[key]; ok {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.src, s.src.Bounds(), xdraw.Src, nil)
	s.cache[key] = dst
	return dst
}

// Tint returns the "#rrggbb" color of cell (x, y) when the sprite is drawn
// over a w x h cell grid. Mostly transparent cells report ok=false.
func (s *Sprite) Tint(w, h, x, y int) (hex string, ok bool) {
	img := s.Scaled(w, h)
	if !image.Pt(x, y).In(img.Bounds()) {
		return "", false
	}
	c := img.RGBAAt(x, y)
	if c.A < 0x80 {
		return "", false
	}
	return Hex(c), true
}

// Hex formats a color as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Set holds every sprite a session draws.
type Set struct {
	Player     *Sprite
	Enemy      *Sprite
	Coin       *Sprite
	Background *Sprite
}

// LoadSet loads the sprites named in cfg. dir overrides cfg.Dir when set.
func LoadSet(logger *log.Logger, cfg config.AssetConfig, dir string) *Set {
	if dir == "" {
		dir = cfg.Dir
	}
	path := func(file string) string { return filepath.Join(dir, file) }

	return &Set{
		Player:     Load(logger, "player", path(cfg.Player)),
		Enemy:      Load(logger, "enemy", path(cfg.Enemy)),
		Coin:       Load(logger, "coin", path(cfg.Coin)),
		Background: Load(logger, "background", path(cfg.Background)),
	}
}

// PlaceholderSet returns a set where every sprite is a placeholder.
func PlaceholderSet() *Set {
	return &Set{
		Player:     Placeholder("player"),
		Enemy:      Placeholder("enemy"),
		Coin:       Placeholder("coin"),
		Background: Placeholder("background"),
	}
}
