package tui

import (
	"strings"
	"testing"

	"github.com/zriley/portfolio-arcade/internal/games/chess"
)

func chessIndex(t *testing.T, m MenuModel) int {
	t.Helper()
	for i, item := range m.items {
		if item.GameID == "chess" {
			return i
		}
	}
	t.Fatal("chess is not in the menu")
	return -1
}

func TestMenuWraps(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	n := len(m.items)
	if n == 0 {
		t.Fatal("menu is empty")
	}

	m = press(t, m, keyUp).(MenuModel)
	if m.cursor != n-1 {
		t.Errorf("expected cursor to wrap to %d, got %d", n-1, m.cursor)
	}
	m = press(t, m, keyRight).(MenuModel)
	if m.cursor != 0 {
		t.Errorf("expected cursor to wrap to 0, got %d", m.cursor)
	}
}

func TestSessionChessFlow(t *testing.T) {
	store := newMemStore()
	s := NewSessionModel(store, testConfig(), WithChessDefaults(ChessSetup{Level: 3, Transport: "embedded"}))

	for i, n := 0, chessIndex(t, s.menu); i < n; i++ {
		s = press(t, s, keyDown).(SessionModel)
	}
	s = press(t, s, keyEnter).(SessionModel)
	if s.screen != screenChessSetup {
		t.Fatalf("expected chess setup screen, got %v", s.screen)
	}
	if !strings.Contains(s.View(), "C H E S S") {
		t.Errorf("unexpected setup view:\n%s", s.View())
	}

	s = press(t, s, keyDown, keyDown, keyEnter).(SessionModel)
	if s.screen != screenGame {
		t.Fatalf("expected game screen, got %v", s.screen)
	}
	game, ok := s.gameModel.game.(*chess.Game)
	if !ok {
		t.Fatalf("expected a chess game, got %T", s.gameModel.game)
	}
	t.Cleanup(func() { _ = s.Close() })

	a := game.Adapter()
	if a.Level() != 3 {
		t.Errorf("expected level 3, got %d", a.Level())
	}
	if a.EngineName() != "embedded" {
		t.Errorf("expected embedded engine, got %s", a.EngineName())
	}

	s = press(t, s, runeKey('b')).(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("expected menu after back, got %v", s.screen)
	}
	if s.chessSetup.Level != 3 {
		t.Errorf("setup must be remembered, got %+v", s.chessSetup)
	}
}

func TestSessionScoreboard(t *testing.T) {
	s := NewSessionModel(newMemStore(), testConfig())

	s = press(t, s, keyTab).(SessionModel)
	if s.screen != screenScoreboard {
		t.Fatalf("expected scoreboard, got %v", s.screen)
	}

	s = press(t, s, keyEsc).(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("expected menu after back, got %v", s.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	s := NewSessionModel(nil, testConfig())
	next, cmd := s.Update(runeKey('q'))
	s = next.(SessionModel)
	if !s.quitting || cmd == nil {
		t.Error("expected quit from the menu")
	}
}
