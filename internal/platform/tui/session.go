package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crystal-crush/internal/core"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard one key away. It is the top-level model for local play
// and for SSH sessions.
type SessionModel struct {
	env      *Env
	config   core.RuntimeConfig
	view     sessionView
	menu     LevelMenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session that opens on the level menu.
func NewSessionModel(env *Env, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		env:    env,
		config: cfg,
		menu:   NewLevelMenuModel(env, cfg),
	}
}

// StartLevel opens the session directly on level index, consuming a life.
func (m *SessionModel) StartLevel(index int) error {
	if _, err := m.env.Lives.Consume(); err != nil {
		return err
	}
	gm, err := NewGameModel(m.env, index, m.config)
	if err != nil {
		//nolint:errcheck // The life goes back on a level that never started
		m.env.Lives.Refund()
		return err
	}
	m.game = &gm
	m.view = viewGame
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		if m.game != nil {
			return m.updateGame(msg)
		}
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(LevelMenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.menu.ClearRequest()
		m.scores = NewScoreboardModel(m.env, m.menu.Cursor(), m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()
	}

	if i := m.menu.Selected(); i >= 0 {
		m.menu.ClearRequest()
		if err := m.StartLevel(i); err != nil {
			m.env.Logger.Warn("level not started", "player", m.env.Player, "err", err)
			m.menu.Refresh()
			m.menu.SetNotice(livesNotice(err))
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		notice := m.game.Notice()
		m.game = nil
		m.view = viewMenu
		m.menu = NewLevelMenuModel(m.env, m.config)
		m.menu.SetNotice(notice)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.view = viewMenu
		// Resizes while the scoreboard was open did not reach the menu.
		newMenu, _ := m.menu.Update(tea.WindowSizeMsg{Width: m.config.ScreenW, Height: m.config.ScreenH})
		if menuModel, ok := newMenu.(LevelMenuModel); ok {
			m.menu = menuModel
		}
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		if m.game != nil {
			return m.game.View()
		}
	case viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Run starts a local session in the terminal. A non-negative start index
// skips the menu and opens that level.
func Run(env *Env, cfg core.RuntimeConfig, start int) error {
	model := NewSessionModel(env, cfg)
	if start >= 0 {
		if err := model.StartLevel(start); err != nil {
			return err
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
