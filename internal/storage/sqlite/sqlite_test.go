package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/zriley/portfolio-arcade/internal/storage"
)

type SQLiteStoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *SQLiteStoreTestSuite) SetupTest() {
	store, err := Open(filepath.Join(s.T().TempDir(), "arcade.db"))
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *SQLiteStoreTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func TestSQLiteStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreTestSuite))
}

func (s *SQLiteStoreTestSuite) TestTopScoresOrderedAndCapped() {
	for _, score := range []int{100, 50, 200, 10} {
		s.Require().NoError(s.store.SaveScore(s.ctx, "snake", score))
	}
	s.Require().NoError(s.store.SaveScore(s.ctx, "tetris", 500))

	top, err := s.store.TopScores(s.ctx, "snake", 3)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal(200, top[0].Score)
	s.Equal(100, top[1].Score)
	s.Equal(50, top[2].Score)
	s.Equal("snake", top[0].GameID)
	s.False(top[0].CreatedAt.IsZero())

	all, err := s.store.TopScores(s.ctx, "snake", 0)
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *SQLiteStoreTestSuite) TestHighScoreAndClear() {
	high, err := s.store.HighScore(s.ctx, "tetris")
	s.Require().NoError(err)
	s.Equal(0, high)

	s.Require().NoError(s.store.SaveScore(s.ctx, "tetris", 300))
	s.Require().NoError(s.store.SaveScore(s.ctx, "tetris", 700))
	high, err = s.store.HighScore(s.ctx, "tetris")
	s.Require().NoError(err)
	s.Equal(700, high)

	s.Require().NoError(s.store.ClearScores(s.ctx, "tetris"))
	top, err := s.store.TopScores(s.ctx, "tetris", 10)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *SQLiteStoreTestSuite) TestStats() {
	s.Require().NoError(s.store.SaveScore(s.ctx, "snake", 10))
	s.Require().NoError(s.store.SaveScore(s.ctx, "snake", 30))

	stats, err := s.store.Stats(s.ctx, "snake")
	s.Require().NoError(err)
	s.Equal(2, stats.GamesCount)
	s.Equal(30, stats.HighScore)
	s.InDelta(20.0, stats.AvgScore, 0.001)

	empty, err := s.store.Stats(s.ctx, "tetris")
	s.Require().NoError(err)
	s.Equal(0, empty.GamesCount)
}

func (s *SQLiteStoreTestSuite) TestOutcomesNewestFirst() {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, result := range []string{"loss", "win", "draw"} {
		o := storage.NewOutcome("chess", result, i+1, "uci", 20+i, "8/8/8/8/8/8/8/8 w - - 0 1")
		o.CreatedAt = base.Add(time.Duration(i) * time.Second)
		s.Require().NoError(s.store.SaveOutcome(s.ctx, o))
	}

	recent, err := s.store.RecentOutcomes(s.ctx, "chess", 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal("draw", recent[0].Result)
	s.Equal("win", recent[1].Result)
	s.Equal(3, recent[0].Level)
	s.Equal(22, recent[0].Plies)
	s.True(recent[0].CreatedAt.Equal(base.Add(2*time.Second)))

	got, err := s.store.Outcome(s.ctx, recent[1].ID)
	s.Require().NoError(err)
	s.Equal("win", got.Result)
	s.Equal("uci", got.Transport)
}

func (s *SQLiteStoreTestSuite) TestOutcomeDefaultsAndNotFound() {
	s.Require().NoError(s.store.SaveOutcome(s.ctx, storage.Outcome{GameID: "chess", Result: "win"}))

	recent, err := s.store.RecentOutcomes(s.ctx, "chess", 0)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.NotEmpty(recent[0].ID)
	s.False(recent[0].CreatedAt.IsZero())

	_, err = s.store.Outcome(s.ctx, "missing")
	s.ErrorIs(err, storage.ErrNotFound)
}

func TestOpenCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "arcade.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
}
