package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crystal-crush/internal/core"
	"github.com/vovakirdan/crystal-crush/internal/lives"
	"github.com/vovakirdan/crystal-crush/internal/storage"
)

// MenuKeyMap defines the key bindings for the level menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Scores, k.Help, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LevelMenuModel is the level select screen.
type LevelMenuModel struct {
	env      *Env
	table    table.Model
	help     help.Model
	keys     MenuKeyMap
	bests    map[string]storage.Best
	unlocked []bool
	status   lives.Status
	width    int
	height   int
	notice   string
	selected int // Chosen level index, -1 while browsing
	scores   bool
	quitting bool
}

// NewLevelMenuModel creates the level menu with the cursor on the first
// unlocked level the player has not won yet.
func NewLevelMenuModel(env *Env, cfg core.RuntimeConfig) LevelMenuModel {
	h := help.New()
	h.ShowAll = false

	m := LevelMenuModel{
		env:      env,
		help:     h,
		keys:     DefaultMenuKeyMap(),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		selected: -1,
	}
	m.table = m.createTable()
	m.Refresh()

	for i, lvl := range env.Levels {
		if m.unlocked[i] && !m.bests[lvl.ID].Won {
			m.table.SetCursor(i)
			break
		}
	}
	return m
}

func (m *LevelMenuModel) createTable() table.Model {
	goalWidth := m.width - 46
	if goalWidth < 20 {
		goalWidth = 20
	}
	if goalWidth > 40 {
		goalWidth = 40
	}
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: 16},
		{Title: "Goals", Width: goalWidth},
		{Title: "Moves", Width: 5},
		{Title: "Best", Width: 7},
		{Title: "Stars", Width: 6},
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// Refresh reloads results and lives, and rebuilds the rows.
func (m *LevelMenuModel) Refresh() {
	m.bests = m.env.Bests()
	m.unlocked = m.env.Unlocked(m.bests)

	st, err := m.env.Lives.Status()
	if err != nil {
		m.env.Logger.Warn("could not load lives", "player", m.env.Player, "err", err)
	}
	m.status = st

	rows := make([]table.Row, len(m.env.Levels))
	for i := range m.env.Levels {
		lvl := m.env.Level(i)
		best, played := m.bests[lvl.ID]

		score, stars := "-", starString(0)
		if played {
			score = fmt.Sprintf("%d", best.Score)
			stars = starString(best.Stars)
		}
		if !m.unlocked[i] {
			stars = "locked"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", lvl.Number),
			lvl.Name,
			lvl.Objectives.String(),
			fmt.Sprintf("%d", lvl.Moves),
			score,
			stars,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the menu model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.Refresh()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)

	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)

	case key.Matches(msg, m.keys.Scores):
		if len(m.env.Levels) > 0 {
			m.scores = true
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Select):
		i := m.table.Cursor()
		if i < 0 || i >= len(m.env.Levels) {
			return m, nil
		}
		if !m.unlocked[i] {
			m.notice = fmt.Sprintf("Locked. Win level %d first.", m.env.Levels[i-1].Number)
			return m, nil
		}
		m.selected = i
	}
	return m, nil
}

// View renders the level menu.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("C R Y S T A L   C R U S H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.livesLine(), m.width))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(centerText(theme.Warning.Render(m.notice), m.width))
	}
	b.WriteString("\n\n")

	if len(m.env.Levels) == 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("No levels found."), m.width))
		b.WriteString("\n")
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.TableBorder).
			Padding(0, 1)
		b.WriteString(centerBlock(tableStyle.Render(m.table.View()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// livesLine shows the lives pool and the time to the next life.
func (m LevelMenuModel) livesLine() string {
	st := m.status
	hearts := strings.Repeat("♥", st.Lives) + strings.Repeat("♡", max(st.Max-st.Lives, 0))
	line := theme.Lives.Render(hearts)
	if !st.Full() {
		line += theme.MenuDescription.Render("  next life in " + formatWait(st.NextLife))
	}
	return line
}

// SetNotice shows a one-line message above the table.
func (m *LevelMenuModel) SetNotice(msg string) {
	m.notice = msg
}

// ClearRequest resets the selection after the session has handled it.
func (m *LevelMenuModel) ClearRequest() {
	m.selected = -1
	m.scores = false
}

// Selected returns the chosen level index, or -1.
func (m LevelMenuModel) Selected() int {
	return m.selected
}

// Cursor returns the level under the cursor.
func (m LevelMenuModel) Cursor() int {
	return m.table.Cursor()
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m LevelMenuModel) WantsScoreboard() bool {
	return m.scores
}

// IsQuitting returns true if user requested to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

func starString(n int) string {
	n = max(0, min(n, 3))
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// formatWait renders a duration as m:ss.
func formatWait(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// centerText centers a single line within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block within the given width.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
