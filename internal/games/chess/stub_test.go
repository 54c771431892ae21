package chess

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zriley/portfolio-arcade/internal/dependencies/mocks"
	"github.com/zriley/portfolio-arcade/internal/games/chess/suggest"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// stubSuggester replays scripted moves. With block set it waits for the
// channel to close; ignoreCtx makes it keep waiting after cancellation.
type stubSuggester struct {
	mu        sync.Mutex
	moves     []string
	err       error
	block     chan struct{}
	ignoreCtx bool
	requests  []suggest.Request
}

func (s *stubSuggester) Name() string { return "stub" }

func (s *stubSuggester) Close() error { return nil }

func (s *stubSuggester) Suggest(ctx context.Context, req suggest.Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	var move string
	if len(s.moves) > 0 {
		move, s.moves = s.moves[0], s.moves[1:]
	}
	err, block, ignoreCtx := s.err, s.block, s.ignoreCtx
	s.mu.Unlock()

	if block != nil {
		if ignoreCtx {
			<-block
		} else {
			select {
			case <-block:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return move, err
}

func (s *stubSuggester) calls() []suggest.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]suggest.Request(nil), s.requests...)
}

func newMockClock() *mocks.MockClock {
	return mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestAdapter(engine suggest.Suggester, opts ...AdapterOption) *Adapter {
	base := []AdapterOption{
		WithAdapterLogger(quietLogger()),
		WithMoveDelay(0),
		WithSuggestTimeout(5 * time.Second),
	}
	return NewAdapter(NewRules(), engine, append(base, opts...)...)
}

func awaitCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)
