package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numhunt/internal/config"
	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/games/numhunt"
	"github.com/vovakirdan/numhunt/internal/lang"
)

// Launch describes one game to start.
type Launch struct {
	Scene    string
	Language lang.Language
	Pace     config.PacePreset
}

// GameFactory builds a game for a launch request. The platform calls Reset.
type GameFactory func(Launch) (*numhunt.Game, error)

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       *numhunt.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	shotDir    string
	quitOnBack bool // standalone play has no menu to return to
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *numhunt.Game, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	shotDir := ""
	if dir := config.DataDir(); dir != "" {
		shotDir = filepath.Join(dir, "screenshots")
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		shotDir:    shotDir,
	}
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.game.Abandon()
		m.quitting = true
		return m, tea.Quit
	}

	// Leaving mid-round needs a pause first so a stray Esc does not end the hunt.
	if m.inputFrame.Has(core.ActionBack) && m.canLeave() {
		m.game.Abandon()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) canLeave() bool {
	return m.gameState.GameOver || m.gameState.Paused || m.gameState.Round == 0
}

// handleResize processes window resize events. The game keeps running;
// only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.shotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.game.Scene().ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(m.shotDir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the terminal. It reports whether the user quit
// rather than going back.
func Run(game *numhunt.Game, cfg core.RuntimeConfig) (quit bool, err error) {
	model := NewModel(game, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return true, fmt.Errorf("tui: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return true, nil
	}
	return m.IsQuitting(), nil
}
