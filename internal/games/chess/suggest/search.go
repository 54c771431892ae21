package suggest

import (
	"context"
	"fmt"
	"sort"

	notnil "github.com/notnil/chess"
)

const mateScore = 1_000_000

var pieceValues = map[notnil.PieceType]int{
	notnil.Pawn:   100,
	notnil.Knight: 320,
	notnil.Bishop: 330,
	notnil.Rook:   500,
	notnil.Queen:  900,
}

// Search is a small in-process alpha-beta searcher with a material
// evaluation. It needs no external binary or network.
type Search struct {
	maxDepth int
}

// NewSearch returns a searcher that never looks deeper than maxDepth plies.
func NewSearch(maxDepth int) *Search {
	return &Search{maxDepth: max(maxDepth, 1)}
}

func (s *Search) Name() string { return "embedded" }

func (s *Search) Close() error { return nil }

// Suggest runs iterative deepening up to min(req.Depth, maxDepth). When ctx
// ends mid-iteration the best move of the last finished depth is returned.
func (s *Search) Suggest(ctx context.Context, req Request) (string, error) {
	opt, err := notnil.FEN(req.FEN)
	if err != nil {
		return "", fmt.Errorf("suggest: bad fen: %w", err)
	}
	root := notnil.NewGame(opt).Position()
	moves := orderMoves(root.ValidMoves())
	if len(moves) == 0 {
		return "", ErrNoMove
	}

	depth := min(max(req.Depth, 1), s.maxDepth)
	var best *notnil.Move
	for d := 1; d <= depth; d++ {
		m, ok := s.searchRoot(ctx, root, moves, d)
		if !ok {
			break
		}
		best = m
	}
	if best == nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", ErrNoMove
	}
	return notnil.UCINotation{}.Encode(root, best), nil
}

func (s *Search) searchRoot(ctx context.Context, root *notnil.Position, moves []*notnil.Move, depth int) (*notnil.Move, bool) {
	alpha, beta := -mateScore-1, mateScore+1
	var best *notnil.Move
	for _, m := range moves {
		score, ok := s.negamax(ctx, root.Update(m), depth-1, 1, -beta, -alpha)
		if !ok {
			return nil, false
		}
		score = -score
		if best == nil || score > alpha {
			alpha = score
			best = m
		}
	}
	return best, true
}

func (s *Search) negamax(ctx context.Context, pos *notnil.Position, depth, ply, alpha, beta int) (int, bool) {
	if ctx.Err() != nil {
		return 0, false
	}
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		if pos.Status() == notnil.Checkmate {
			return -mateScore + ply, true
		}
		return 0, true
	}
	if depth == 0 {
		return evaluate(pos), true
	}

	for _, m := range orderMoves(moves) {
		score, ok := s.negamax(ctx, pos.Update(m), depth-1, ply+1, -beta, -alpha)
		if !ok {
			return 0, false
		}
		score = -score
		if score >= beta {
			return beta, true
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha, true
}

// evaluate scores material from the side to move's point of view.
func evaluate(pos *notnil.Position) int {
	score := 0
	for _, pc := range pos.Board().SquareMap() {
		v := pieceValues[pc.Type()]
		if pc.Color() == pos.Turn() {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// orderMoves puts promotions and captures first, keeping generation order
// otherwise.
func orderMoves(moves []*notnil.Move) []*notnil.Move {
	out := append([]*notnil.Move(nil), moves...)
	rank := func(m *notnil.Move) int {
		r := 0
		if m.Promo() != notnil.NoPieceType {
			r += 2
		}
		if m.HasTag(notnil.Capture) {
			r++
		}
		return r
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) > rank(out[j]) })
	return out
}
