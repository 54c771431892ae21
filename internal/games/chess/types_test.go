package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"e2e4", Move{From: NewSquare(4, 1), To: NewSquare(4, 3)}},
		{"a7a8q", Move{From: NewSquare(0, 6), To: NewSquare(0, 7), Promotion: Queen}},
		{"h2h1n", Move{From: NewSquare(7, 1), To: NewSquare(7, 0), Promotion: Knight}},
		{" E2E4 ", Move{From: NewSquare(4, 1), To: NewSquare(4, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoveRejects(t *testing.T) {
	for _, in := range []string{"", "e2", "e2e", "e2e4q5", "i2e4", "e0e4", "e2e9", "e7e8k", "e7e8p"} {
		_, err := ParseMove(in)
		assert.ErrorIs(t, err, ErrMalformedMove, in)
	}
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "e2e4", Move{From: NewSquare(4, 1), To: NewSquare(4, 3)}.String())
	assert.Equal(t, "b7b8r", Move{From: NewSquare(1, 6), To: NewSquare(1, 7), Promotion: Rook}.String())
}

func TestSquare(t *testing.T) {
	s, err := ParseSquare("h8")
	require.NoError(t, err)
	assert.Equal(t, Square(63), s)
	assert.Equal(t, 7, s.File())
	assert.Equal(t, 7, s.Rank())
	assert.Equal(t, "h8", s.String())
	assert.Equal(t, "-", NoSquare.String())
	assert.False(t, NoSquare.Valid())
}

func TestPieceRune(t *testing.T) {
	assert.Equal(t, 'K', Piece{Kind: King, Color: White}.Rune())
	assert.Equal(t, 'n', Piece{Kind: Knight, Color: Black}.Rune())
	assert.Equal(t, ' ', Piece{}.Rune())
}

func TestSideToMove(t *testing.T) {
	assert.Equal(t, White, Position(startFEN).SideToMove())
	assert.Equal(t, Black, Position("8/8/8/8/8/8/8/8 b - - 0 1").SideToMove())
}
