package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crystal-crush/internal/storage"
)

const (
	levelListMinWidth = 80 // Narrower screens page through levels instead
	levelListWidth    = 24
	resultsLimit      = 100
	ownRowMark        = "▸"
)

// ScoreboardKeyMap holds the results screen bindings.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓", "scroll")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "a", "shift+tab"), key.WithHelp("←", "prev level")),
		Next: key.NewBinding(key.WithKeys("right", "l", "d", "tab"), key.WithHelp("→/tab", "next level")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "levels")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type scoreboardExit int

const (
	scoreboardOpen scoreboardExit = iota
	scoreboardBack
	scoreboardQuit
)

// ScoreboardModel shows the best results of one level at a time, with the
// player's own stars per level alongside.
type ScoreboardModel struct {
	env     *Env
	level   int
	results []storage.Result
	stats   *storage.LevelStats
	bests   map[string]storage.Best
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int
	exit    scoreboardExit
}

// NewScoreboardModel creates a scoreboard opened on level index.
func NewScoreboardModel(env *Env, index, width, height int) ScoreboardModel {
	if index < 0 || index >= len(env.Levels) {
		index = 0
	}
	m := ScoreboardModel{
		env:    env,
		level:  index,
		bests:  env.Bests(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= levelListMinWidth
}

func (m *ScoreboardModel) newTable() table.Model {
	player := 12
	if avail := m.width - 6; !m.wide() && avail > 40 && avail < 58 {
		player = avail - 46
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: player},
			{Title: "Score", Width: 8},
			{Title: "Stars", Width: 6},
			{Title: "Result", Width: 6},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.TableBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.TableSelected
	t.SetStyles(s)
	return t
}

// load reads results and stats for the current level and rebuilds rows.
func (m *ScoreboardModel) load() {
	m.results, m.stats = nil, nil
	if m.env.Store != nil && len(m.env.Levels) > 0 {
		id := m.env.Levels[m.level].ID
		results, err := m.env.Store.TopResults(id, resultsLimit)
		if err != nil {
			m.env.Logger.Warn("could not load results", "level", id, "err", err)
		}
		m.results = results
		if stats, statsErr := m.env.Store.GetLevelStats(id); statsErr == nil && stats.Attempts > 0 {
			m.stats = stats
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.results))
	for i, r := range m.results {
		rank := fmt.Sprintf("%d", i+1)
		if r.Player == m.env.Player {
			rank = ownRowMark + rank
		}
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows = append(rows, table.Row{
			rank,
			r.Player,
			fmt.Sprintf("%d", r.Score),
			starString(r.Stars),
			outcome,
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// step moves to the level delta positions away, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	n := len(m.env.Levels)
	if n == 0 {
		return
	}
	m.level = ((m.level+delta)%n + n) % n
	m.load()
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
			m.exit = scoreboardQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.exit = scoreboardBack
		case key.Matches(msg, m.keys.Next):
			m.step(1)
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
		case key.Matches(msg, m.keys.Up, m.keys.Down):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
	}
	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.exit != scoreboardOpen {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render(m.title()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuDescription.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.TableBorder).
		Padding(0, 1)
	results := box.Render(m.resultsView())

	if m.wide() {
		list := box.Width(levelListWidth).Render(m.levelList())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", results))
	} else {
		if n := len(m.env.Levels); n > 0 {
			pager := fmt.Sprintf("◀ %d / %d ▶", m.level+1, n)
			b.WriteString(centerText(theme.MenuDescription.Render(pager), m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(centerBlock(results, m.width))
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) title() string {
	if len(m.env.Levels) == 0 {
		return "RESULTS"
	}
	lvl := m.env.Levels[m.level]
	return fmt.Sprintf("RESULTS  Level %d: %s", lvl.Number, lvl.Name)
}

// summary describes the level's goals and its aggregate stats.
func (m ScoreboardModel) summary() string {
	if len(m.env.Levels) == 0 {
		return ""
	}
	lvl := m.env.Level(m.level)
	line := fmt.Sprintf("%s in %d moves", lvl.Objectives, lvl.Moves)
	if s := m.stats; s != nil {
		line += fmt.Sprintf("  |  %d played, %d won, avg %.0f", s.Attempts, s.Wins, s.AvgScore)
	}
	return line
}

// levelList lists every level with the player's best stars.
func (m ScoreboardModel) levelList() string {
	var b strings.Builder
	b.WriteString(theme.MenuItemNormal.Render("Your stars"))
	b.WriteString("\n")
	for i, lvl := range m.env.Levels {
		style, cursor := theme.MenuItemNormal, "  "
		if i == m.level {
			style, cursor = theme.MenuItemActive, "› "
		}
		name := lvl.Name
		if r := []rune(name); len(r) > levelListWidth-12 {
			name = string(r[:levelListWidth-13]) + "…"
		}
		stars := starString(m.bests[lvl.ID].Stars)
		b.WriteString(style.Render(fmt.Sprintf("%s%d %-*s %s", cursor, lvl.Number, levelListWidth-12, name, stars)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m ScoreboardModel) resultsView() string {
	if len(m.results) == 0 {
		return theme.MenuDescription.
			Italic(true).
			Padding(2, 4).
			Render("No results recorded yet.\nFinish the level to set a score!")
	}
	return m.table.View()
}

// Level returns the index of the level shown.
func (m ScoreboardModel) Level() int {
	return m.level
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.exit == scoreboardBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.exit == scoreboardQuit
}
