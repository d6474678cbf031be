package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Pause      key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump},
		{k.Pause, k.Back, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default in-game key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "w", "up"),
			key.WithHelp("space/w/↑", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	game GameKeyMap
	menu MenuKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: DefaultGameKeyMap(),
		menu: DefaultMenuKeyMap(),
	}
}

// MapKey translates a key message to a game action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.game.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.game.Left):
		return core.ActionLeft
	case key.Matches(msg, km.game.Right):
		return core.ActionRight
	case key.Matches(msg, km.game.Jump):
		return core.ActionJump
	case key.Matches(msg, km.game.Pause):
		return core.ActionPause
	case key.Matches(msg, km.game.Back):
		return core.ActionBack
	case msg.Type == tea.KeyEnter:
		return core.ActionConfirm
	}
	return core.ActionNone
}

// IsScreenshot reports whether the key requests a screenshot.
func (km *KeyMapper) IsScreenshot(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.game.Screenshot)
}

// HeldInput turns discrete key presses into held movement.
// Terminals report presses and auto-repeats but never releases, so a
// direction stays held for a fixed number of ticks after its last press.
type HeldInput struct {
	holdTicks int
	dir       core.Action
	left      int
}

// NewHeldInput creates a held-input tracker. holdTicks below 1 is treated as 1.
func NewHeldInput(holdTicks int) *HeldInput {
	return &HeldInput{holdTicks: max(holdTicks, 1)}
}

// Press starts or refreshes a held direction. The opposite direction is
// dropped immediately.
func (h *HeldInput) Press(a core.Action) {
	if a != core.ActionLeft && a != core.ActionRight {
		return
	}
	h.dir = a
	h.left = h.holdTicks
}

// Apply adds the held direction to the frame and counts one tick down.
func (h *HeldInput) Apply(frame *core.InputFrame) {
	if h.left <= 0 {
		return
	}
	frame.Set(h.dir)
	h.left--
}

// Release drops any held direction.
func (h *HeldInput) Release() {
	h.left = 0
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MenuKeyMap defines the level menu key bindings.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Quit       key.Binding
	Scoreboard key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Scoreboard, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns default menu key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
	}
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, km.menu.Quit):
		return MenuActionQuit
	case key.Matches(msg, km.menu.Up):
		return MenuActionUp
	case key.Matches(msg, km.menu.Down):
		return MenuActionDown
	case key.Matches(msg, km.menu.Select):
		return MenuActionSelect
	case key.Matches(msg, km.menu.Back):
		return MenuActionBack
	case key.Matches(msg, km.menu.Scoreboard):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
