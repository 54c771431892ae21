package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesNewGame(t *testing.T) {
	r := NewRules()
	pos := r.NewGame()

	assert.Equal(t, startFEN, r.Serialize(pos))
	assert.Equal(t, White, pos.SideToMove())
	assert.Len(t, r.LegalMoves(pos), 20)
	assert.False(t, r.IsCheckmate(pos))
	assert.False(t, r.IsStalemate(pos))

	b := r.Board(pos)
	assert.Equal(t, Piece{Kind: King, Color: White}, b.At(NewSquare(4, 0)))
	assert.Equal(t, Piece{Kind: Queen, Color: Black}, b.At(NewSquare(3, 7)))
	assert.True(t, b.At(NewSquare(4, 3)).Empty())
}

func TestRulesLoadPositionRoundTrip(t *testing.T) {
	r := NewRules()
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	pos, err := r.LoadPosition(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, r.Serialize(pos))

	_, err = r.LoadPosition("rnbqkbnr/pppppppp")
	assert.Error(t, err)
}

func TestRulesApplyMove(t *testing.T) {
	r := NewRules()
	pos := r.NewGame()

	next, ok := r.ApplyMove(pos, Move{From: NewSquare(4, 1), To: NewSquare(4, 3)})
	require.True(t, ok)
	assert.Equal(t, Black, next.SideToMove())
	assert.Equal(t, startFEN, r.Serialize(pos), "the input position is not mutated")

	same, ok := r.ApplyMove(pos, Move{From: NewSquare(4, 1), To: NewSquare(4, 4)})
	assert.False(t, ok)
	assert.Equal(t, pos, same)
}

func TestRulesCastlingAndEnPassant(t *testing.T) {
	r := NewRules()

	pos, err := r.LoadPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	castled, ok := r.ApplyMove(pos, mustParse(t, "e1g1"))
	require.True(t, ok)
	b := r.Board(castled)
	assert.Equal(t, King, b.At(NewSquare(6, 0)).Kind)
	assert.Equal(t, Rook, b.At(NewSquare(5, 0)).Kind)

	pos, err = r.LoadPosition("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	taken, ok := r.ApplyMove(pos, mustParse(t, "e5d6"))
	require.True(t, ok)
	assert.True(t, r.Board(taken).At(NewSquare(3, 4)).Empty(), "captured pawn removed")
}

func TestRulesTerminalStates(t *testing.T) {
	r := NewRules()

	mate, err := r.LoadPosition("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, r.IsCheckmate(mate))
	assert.False(t, r.IsStalemate(mate))
	assert.Empty(t, r.LegalMoves(mate))

	stale, err := r.LoadPosition("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.True(t, r.IsStalemate(stale))
	assert.False(t, r.IsCheckmate(stale))
}

func TestRulesLegalMovesIncludePromotions(t *testing.T) {
	r := NewRules()
	pos, err := r.LoadPosition("8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	require.NoError(t, err)

	promos := map[PieceKind]bool{}
	for _, m := range r.LegalMoves(pos) {
		if m.From == NewSquare(4, 6) {
			promos[m.Promotion] = true
		}
	}
	assert.Equal(t, map[PieceKind]bool{Queen: true, Rook: true, Bishop: true, Knight: true}, promos)
}

func mustParse(t *testing.T, s string) Move {
	t.Helper()
	m, err := ParseMove(s)
	require.NoError(t, err)
	return m
}
