package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsMateInOne(t *testing.T) {
	s := NewSearch(3)
	move, err := s.Suggest(context.Background(), Request{FEN: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", Depth: 2})
	require.NoError(t, err)
	assert.Equal(t, "a1a8", move)
}

func TestSearchTakesHangingQueen(t *testing.T) {
	s := NewSearch(2)
	move, err := s.Suggest(context.Background(), Request{FEN: "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1", Depth: 2})
	require.NoError(t, err)
	assert.Equal(t, "d2d5", move)
}

func TestSearchReturnsLegalOpeningMove(t *testing.T) {
	s := NewSearch(2)
	move, err := s.Suggest(context.Background(), Request{FEN: startFEN, Depth: 2})
	require.NoError(t, err)
	assert.Len(t, move, 4)
}

func TestSearchNoMoves(t *testing.T) {
	s := NewSearch(2)
	_, err := s.Suggest(context.Background(), Request{FEN: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Depth: 2})
	assert.ErrorIs(t, err, ErrNoMove)
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSearch(3).Suggest(ctx, Request{FEN: startFEN, Depth: 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchBadFEN(t *testing.T) {
	_, err := NewSearch(1).Suggest(context.Background(), Request{FEN: "garbage", Depth: 1})
	assert.Error(t, err)
}
