package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/numhunt/internal/config"
	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/lang"
	"github.com/vovakirdan/numhunt/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.numhunt/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	TickRate int
	Language lang.Language
	Pace     config.PacePreset

	// Factory builds one game per session. Required.
	Factory GameFactory

	// Store backs the shared scoreboard. May be nil.
	Store *storage.Store

	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Pace:        config.PaceNormal,
	}
}

// SSHServer wraps a Wish SSH server that serves the menu and the game.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Factory == nil {
		return nil, errors.New("tui: ssh server needs a game factory")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
		})
	}
	logger = logger.WithPrefix("numhunt-ssh")

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir := config.DataDir()
		if dir == "" {
			return nil, errors.New("tui: cannot resolve home directory for host key")
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}
	hostKeyPath = config.ExpandPath(hostKeyPath)

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(s.config, cfg, sshSession.User(), s.logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The store stays open; its owner closes it.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	server     SSHServerConfig
	config     core.RuntimeConfig
	username   string
	logger     *log.Logger
	screen     sessionScreen
	menu       MenuModel
	gameModel  *Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(server SSHServerConfig, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{})
	}
	return SessionModel{
		server:   server,
		config:   cfg,
		username: username,
		logger:   logger.With("user", username),
		menu:     NewMenuModel(cfg, server.Language, server.Pace),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// backToMenu rebuilds the menu, keeping the player's language and pace.
func (m SessionModel) backToMenu() (SessionModel, tea.Cmd) {
	launch := m.menu.Launch()
	m.screen = screenMenu
	m.gameModel = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.config, launch.Language, launch.Pace)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.server.Store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.screen = screenScores
		return m, sb.Init()
	}

	if m.menu.Selected() != nil {
		launch := m.menu.Launch()
		game, err := m.server.Factory(launch)
		if err != nil {
			m.logger.Error("cannot start game", "scene", launch.Scene, "err", err)
			m.menu = NewMenuModel(m.config, launch.Language, launch.Pace)
			return m, nil
		}
		m.logger.Info("game started", "scene", launch.Scene, "lang", launch.Language, "pace", launch.Pace)

		gm := NewModel(game, m.config)
		m.gameModel = &gm
		m.screen = screenGame
		return m, gm.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		st := m.gameModel.gameState
		m.logger.Info("game left", "score", st.Score, "mistakes", st.Mistakes, "finished", st.GameOver)
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScores:
		if m.scoreboard != nil {
			return m.scoreboard.View()
		}
	}
	return m.menu.View()
}

var _ tea.Model = SessionModel{}
