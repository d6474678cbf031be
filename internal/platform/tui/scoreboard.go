package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// boardView selects which runs the scoreboard lists.
type boardView int

const (
	viewBest   boardView = iota // highest scores first
	viewRecent                  // newest first
)

const boardRuns = 50

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	boardHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		Toggle: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists stored runs for one level at a time.
type ScoreboardModel struct {
	store  *storage.Store
	levels []registry.LevelInfo
	cursor int
	view   boardView

	runs  []storage.RunRecord
	stats *storage.LevelStats
	err   error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing the best runs of the
// first registered level.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		levels: registry.List(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

// newTable builds the run table for the current size and view.
func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(runColumns(m.view, m.width-6)),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// runColumns lays out the run table within width cells. The player column
// takes whatever room is left.
func runColumns(v boardView, width int) []table.Column {
	first := table.Column{Title: "#", Width: 4}
	if v == viewRecent {
		first = table.Column{Title: "When", Width: 12}
	}
	cols := []table.Column{
		first,
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 6},
		{Title: "Coins", Width: 5},
		{Title: "Stomps", Width: 6},
		{Title: "Hits", Width: 4},
		{Title: "Time", Width: 6},
		{Title: "End", Width: 12},
	}

	used := 0
	for _, c := range cols {
		used += c.Width + 2 // cell padding
	}
	if spare := width - used; spare > 0 {
		cols[1].Width += min(spare, 10)
	}
	return cols
}

// reload fetches runs and stats for the selected level.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.levels) > 0 {
		id := m.levels[m.cursor].ID
		if m.view == viewRecent {
			m.runs, m.err = m.store.RecentRuns(id, boardRuns)
		} else {
			m.runs, m.err = m.store.BestRuns(id, boardRuns)
		}
		if m.err == nil {
			m.stats, m.err = m.store.GetLevelStats(id)
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = runRow(m.view, i+1, r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// runRow formats one run for the table.
func runRow(v boardView, rank int, r storage.RunRecord) table.Row {
	first := strconv.Itoa(rank)
	if v == viewRecent {
		first = r.CreatedAt.Format("Jan 02 15:04")
	}
	return table.Row{
		first,
		playerName(r.Player),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.Coins),
		strconv.Itoa(r.Stomps),
		strconv.Itoa(r.Hits),
		formatDuration(r.Duration),
		endLabel(r.EndReason),
	}
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// endLabel describes how a run ended.
func endLabel(reason string) string {
	switch reason {
	case "lives":
		return "out of lives"
	case "quit":
		return "quit"
	case "disconnect":
		return "disconnected"
	case "":
		return "-"
	}
	return reason
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.selectLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectLevel(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.table = m.newTable()
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectLevel moves the level cursor by delta, wrapping around.
func (m *ScoreboardModel) selectLevel(delta int) {
	n := len(m.levels)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewRecent {
		heading = "RECENT RUNS"
	}
	if len(m.levels) > 0 {
		heading += " - " + m.levels[m.cursor].Title
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render(heading), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.levelStrip(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boardBoxStyle.Render(m.body()), m.width))

	if line := m.statsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(centerText(statsStyle.Render(line), m.width))
	}

	b.WriteString("\n")
	b.WriteString(boardHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// levelStrip renders the level tabs, or only the current level with arrows
// when the tabs do not fit.
func (m ScoreboardModel) levelStrip() string {
	if len(m.levels) == 0 {
		return ""
	}
	tabs := make([]string, len(m.levels))
	for i, l := range m.levels {
		style := boardTabStyle
		if i == m.cursor {
			style = boardActiveStyle
		}
		tabs[i] = style.Render(l.Title)
	}
	strip := strings.Join(tabs, " ")
	if lipgloss.Width(strip) > m.width-4 {
		strip = "< " + boardActiveStyle.Render(m.levels[m.cursor].Title) + " >"
	}
	return strip
}

// body renders the table, or a note when there is nothing to show.
func (m ScoreboardModel) body() string {
	switch {
	case m.err != nil:
		return boardEmptyStyle.Render(fmt.Sprintf("Could not load runs: %v", m.err))
	case m.store == nil:
		return boardEmptyStyle.Render("Scores are disabled.")
	case len(m.runs) == 0:
		return boardEmptyStyle.Render("No runs recorded yet.\nPlay this level to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// statsLine summarizes the run history of the selected level.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.RunsCount == 0 {
		return ""
	}
	return fmt.Sprintf("Runs: %d  Best: %d  Avg: %.1f  Coins: %d  Stomps: %d",
		m.stats.RunsCount, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalCoins, m.stats.TotalStomps)
}

// playerName returns the display name for anonymous entries too.
func playerName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
