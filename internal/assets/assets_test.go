package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writePNG(t, path, solid(4, 4, color.RGBA{R: 255, A: 255}))

	s := Load(nil, "red", path)
	if s.Placeholder {
		t.Fatal("valid PNG loaded as placeholder")
	}
	hex, ok := s.Tint(2, 2, 1, 1)
	if !ok || hex != "#ff0000" {
		t.Errorf("Tint = %q, %v, expected #ff0000, true", hex, ok)
	}
}

func TestLoadJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.jpg")
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(8, 8, color.RGBA{B: 255, A: 255}), nil); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	if s := Load(nil, "bg", path); s.Placeholder {
		t.Error("valid JPEG loaded as placeholder")
	}
}

func TestLoadFailureUsesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	logger := log.New(&logs)

	for _, path := range []string{garbage, filepath.Join(dir, "missing.png")} {
		s := Load(logger, "enemy", path)
		if !s.Placeholder {
			t.Errorf("Load(%s) did not return a placeholder", path)
		}
		hex, ok := s.Tint(3, 3, 2, 2)
		if !ok || hex != "#ff00ff" {
			t.Errorf("placeholder Tint = %q, %v, expected #ff00ff", hex, ok)
		}
	}

	if !strings.Contains(logs.String(), "placeholder") {
		t.Errorf("expected a warning log, got %q", logs.String())
	}
}

func TestTintTransparentAndBounds(t *testing.T) {
	s := NewSprite("clear", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if _, ok := s.Tint(4, 4, 1, 1); ok {
		t.Error("transparent pixel reported as visible")
	}
	if _, ok := s.Tint(4, 4, 9, 9); ok {
		t.Error("out-of-bounds cell reported as visible")
	}
}

func TestScaledIsCached(t *testing.T) {
	s := NewSprite("g", solid(10, 10, color.RGBA{G: 255, A: 255}))
	a := s.Scaled(3, 2)
	b := s.Scaled(3, 2)
	if a != b {
		t.Error("Scaled() did not reuse cached image")
	}
	if a.Bounds().Dx() != 3 || a.Bounds().Dy() != 2 {
		t.Errorf("Scaled bounds = %v, expected 3x2", a.Bounds())
	}
	if got := s.Scaled(0, 5).Bounds(); !got.Empty() {
		t.Errorf("Scaled(0, 5) = %v, expected empty", got)
	}
}

func TestLoadSetDirOverride(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "p.png"), solid(2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255}))

	cfg := config.AssetConfig{Dir: "/nonexistent", Player: "p.png", Enemy: "e.png", Coin: "c.png", Background: "b.png"}
	set := LoadSet(log.New(&bytes.Buffer{}), cfg, dir)

	if set.Player.Placeholder {
		t.Error("player should load from the override dir")
	}
	if !set.Enemy.Placeholder || !set.Coin.Placeholder || !set.Background.Placeholder {
		t.Error("missing sprites should be placeholders")
	}
}
