package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "HELLO")
	s.DrawColoredText(0, 1, "RED", core.ColorRed)
	s.SetTinted(4, 1, '█', "#ff8800")
	s.SetBackdrop(5, 1, "#000033")
	s.DrawColoredText(0, 2, "MUD", core.ColorBrown)

	out := RenderScreen(s)
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, expected 3", len(lines))
	}

	expected := []string{"HELLO       ", "RED █       ", "MUD         "}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want)
		}
	}
}

func TestStyleForCachesTrueColors(t *testing.T) {
	k := styleKey{tint: "#123456", backdrop: "#654321"}
	styleFor(k)

	if _, ok := trueColorStyles.Load(k); !ok {
		t.Error("true-color style was not cached")
	}

	plain := styleKey{color: core.ColorRed}
	styleFor(plain)
	if _, ok := trueColorStyles.Load(plain); ok {
		t.Error("palette styles should not be cached as true colors")
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 3, "abc"},
		{"toolong", 3, "toolong"},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.want)
		}
	}
}
