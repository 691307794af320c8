package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crystal-crush/internal/core"
	"github.com/vovakirdan/crystal-crush/internal/games/crush"
	"github.com/vovakirdan/crystal-crush/internal/lives"
)

// GameModel is the Bubble Tea model running one level at a time.
type GameModel struct {
	env        *Env
	game       *crush.Game
	index      int // Position of the level in env.Levels
	screen     *core.Screen
	config     core.RuntimeConfig
	fixedSeed  bool
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	recorded   bool // Whether the finished level has been saved
	notice     string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model and starts level index. It does not
// consume a life; callers starting from a menu do that first.
func NewGameModel(env *Env, index int, cfg core.RuntimeConfig) (GameModel, error) {
	m := GameModel{
		env:        env,
		game:       env.NewGame(),
		index:      index,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		fixedSeed:  cfg.Seed != 0,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	if err := m.start(); err != nil {
		return m, err
	}
	return m, nil
}

// start deals the current level with the current seed.
func (m *GameModel) start() error {
	m.game.SetHasNext(m.index+1 < len(m.env.Levels))
	if err := m.game.Start(m.env.Level(m.index), m.config); err != nil {
		return err
	}
	m.recorded = false
	m.inputFrame.Clear()
	m.gameState = m.game.State()
	return nil
}

func (m *GameModel) reseed() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.record()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one simulation step and acts on the player's choice.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch result.Choice {
	case crush.ChoiceRetry:
		m.record()
		m.reseed()
		if err := m.start(); err != nil {
			m.leave(err.Error())
			return m, nil
		}

	case crush.ChoiceNext:
		m.record()
		if _, err := m.env.Lives.Consume(); err != nil {
			m.leave(livesNotice(err))
			return m, nil
		}
		m.index++
		m.reseed()
		if err := m.start(); err != nil {
			m.leave(err.Error())
			return m, nil
		}

	case crush.ChoiceMenu:
		m.record()
		m.leave("")
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

// record saves the finished level once.
func (m *GameModel) record() {
	if m.recorded {
		return
	}
	res, ok := m.game.Result()
	if !ok {
		return
	}
	m.env.Record(res)
	m.recorded = true
}

func (m *GameModel) leave(notice string) {
	m.notice = notice
	m.backToMenu = true
}

// livesNotice turns a lives error into a message for the menu.
func livesNotice(err error) string {
	if errors.Is(err, lives.ErrNoLives) {
		return "No lives left. Wait for one to regenerate."
	}
	return err.Error()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".crush", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.Level().ID, timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Game returns the running game.
func (m GameModel) Game() *crush.Game {
	return m.game
}

// Index returns the position of the current level.
func (m GameModel) Index() int {
	return m.index
}

// Notice returns the message to show after leaving the game, if any.
func (m GameModel) Notice() string {
	return m.notice
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
