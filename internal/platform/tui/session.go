package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/zriley/portfolio-arcade/internal/core"
	"github.com/zriley/portfolio-arcade/internal/games/chess"
	"github.com/zriley/portfolio-arcade/internal/registry"
	"github.com/zriley/portfolio-arcade/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenChessSetup
	screenGame
	screenScoreboard
)

// SessionModel manages the full arcade session flow:
// menu -> (chess setup) -> game -> menu, with the scoreboard on Tab.
// It is the top-level model for SSH sessions and `arcade menu`.
type SessionModel struct {
	store      storage.Store
	config     core.RuntimeConfig
	palette    Palette
	logger     *log.Logger
	chessSetup ChessSetup

	screen     sessionScreen
	menu       MenuModel
	setup      ChessSetupModel
	scoreboard ScoreboardModel
	gameModel  *GameModel
	running    *gameSlot
	quitting   bool
}

// gameSlot holds the running game. It is shared by every copy of the
// session model so the owner can release the game after the program exits.
type gameSlot struct {
	mu   sync.Mutex
	game registry.Game
}

func (s *gameSlot) set(g registry.Game) {
	s.mu.Lock()
	s.game = g
	s.mu.Unlock()
}

// Close closes the running game if it holds resources.
func (s *gameSlot) Close() error {
	s.mu.Lock()
	g := s.game
	s.game = nil
	s.mu.Unlock()

	if c, ok := g.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// SessionOption customizes a SessionModel.
type SessionOption func(*SessionModel)

// WithSessionPalette sets the styles used for game screens.
func WithSessionPalette(p Palette) SessionOption {
	return func(m *SessionModel) { m.palette = p }
}

// WithSessionLogger sets the logger handed to games.
func WithSessionLogger(l *log.Logger) SessionOption {
	return func(m *SessionModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithChessDefaults preselects the chess setup screen.
func WithChessDefaults(s ChessSetup) SessionOption {
	return func(m *SessionModel) { m.chessSetup = s }
}

// NewSessionModel creates a new session model. store may be nil.
func NewSessionModel(store storage.Store, cfg core.RuntimeConfig, opts ...SessionOption) SessionModel {
	m := SessionModel{
		store:      store,
		config:     cfg,
		palette:    DefaultPalette(),
		logger:     log.Default(),
		chessSetup: ChessSetup{Level: 2, Transport: "uci"},
		running:    &gameSlot{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.menu = NewMenuModel(store, cfg)
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenChessSetup:
		return m.updateSetup(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		if id == "chess" {
			m.setup = NewChessSetupModel(m.config.ScreenW, m.config.ScreenH, m.chessSetup)
			m.screen = screenChessSetup
			return m, m.setup.Init()
		}
		game, err := registry.Create(id)
		if err != nil {
			m.logger.Error("cannot create game", "game", id, "err", err)
			return m.toMenu()
		}
		return m.startGame(game)
	}
	return m, cmd
}

func (m SessionModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.setup.Update(msg)
	if sm, ok := next.(ChessSetupModel); ok {
		m.setup = sm
	}

	switch {
	case m.setup.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.setup.WantsBack():
		return m.toMenu()
	case m.setup.Selected() != nil:
		m.chessSetup = *m.setup.Selected()
		game := chess.New(
			chess.WithLevel(m.chessSetup.Level),
			chess.WithTransport(m.chessSetup.Transport),
			chess.WithLogger(m.logger.WithPrefix("chess")),
		)
		return m.startGame(game)
	}
	return m, cmd
}

func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	gm := NewGameModel(game, m.store, m.config, WithPalette(m.palette), WithModelLogger(m.logger))
	m.gameModel = &gm
	m.running.set(game)
	m.screen = screenGame
	return m, gm.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.gameModel = &gm
	}

	switch {
	case m.gameModel.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.gameModel.BackToMenu():
		m.gameModel = nil
		m.running.set(nil)
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so best scores are current.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// Close releases the running game, if any.
func (m SessionModel) Close() error {
	return m.running.Close()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenChessSetup:
		return m.setup.View()
	case screenGame:
		return m.gameModel.View()
	case screenScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store storage.Store, cfg core.RuntimeConfig, opts ...SessionOption) error {
	model := NewSessionModel(store, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	if cerr := model.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
