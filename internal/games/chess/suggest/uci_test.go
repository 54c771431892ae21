package suggest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeEngineEnv = "ARCADE_FAKE_UCI"

// TestMain lets the test binary double as a scripted UCI engine.
func TestMain(m *testing.M) {
	if mode := os.Getenv(fakeEngineEnv); mode != "" {
		runFakeEngine(mode)
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func runFakeEngine(mode string) {
	searches := 0
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "uci":
			fmt.Println("id name fake")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "go":
			searches++
			switch mode {
			case "extra":
				// The first search answers twice.
				if searches == 1 {
					fmt.Println("bestmove a7a6")
					fmt.Println("bestmove h7h6")
				} else {
					fmt.Println("bestmove e7e5")
				}
			case "none":
				fmt.Println("bestmove (none)")
			case "hang":
			default:
				fmt.Println("info depth 1 score cp 20 pv e2e4")
				fmt.Println("bestmove e2e4 ponder e7e5")
			}
		case "stop":
			fmt.Println("bestmove e2e4")
		case "quit":
			return
		}
	}
}

func startFake(t *testing.T, mode string) *UCI {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)

	u, err := StartUCI(context.Background(), UCIOptions{
		Path:    exe,
		Threads: 1,
		HashMB:  16,
		Env:     append(os.Environ(), fakeEngineEnv+"="+mode),
		Logger:  log.New(os.Stderr),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = u.Close() })
	return u
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestUCISuggest(t *testing.T) {
	u := startFake(t, "normal")

	move, err := u.Suggest(context.Background(), Request{FEN: startFEN, Depth: 3, Skill: 5})
	require.NoError(t, err)
	assert.Equal(t, "e2e4", move)
	assert.Equal(t, "uci", u.Name())

	// A second search reuses the same process.
	move, err = u.Suggest(context.Background(), Request{FEN: startFEN, Depth: 3, Skill: 5})
	require.NoError(t, err)
	assert.Equal(t, "e2e4", move)
}

func TestUCINoMove(t *testing.T) {
	u := startFake(t, "none")

	_, err := u.Suggest(context.Background(), Request{FEN: startFEN, Depth: 1})
	assert.ErrorIs(t, err, ErrNoMove)
}

func TestUCITimeout(t *testing.T) {
	u := startFake(t, "hang")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := u.Suggest(ctx, Request{FEN: startFEN, Depth: 20})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestUCIDropsLeftoverOutput(t *testing.T) {
	u := startFake(t, "extra")

	move, err := u.Suggest(context.Background(), Request{FEN: startFEN, Depth: 1})
	require.NoError(t, err)
	assert.Equal(t, "a7a6", move)

	move, err = u.Suggest(context.Background(), Request{FEN: startFEN, Depth: 1})
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move, "leftover bestmove must not answer the next search")
}

func TestUCIClosed(t *testing.T) {
	u := startFake(t, "normal")
	require.NoError(t, u.Close())
	require.NoError(t, u.Close())

	_, err := u.Suggest(context.Background(), Request{FEN: startFEN, Depth: 1})
	assert.ErrorIs(t, err, ErrEngineClosed)
}

func TestStartUCIMissingBinary(t *testing.T) {
	_, err := StartUCI(context.Background(), UCIOptions{Path: "definitely-not-a-chess-engine-xyz"})
	assert.Error(t, err)
}

func TestParseBestMove(t *testing.T) {
	tests := []struct {
		line    string
		want    string
		wantErr error
	}{
		{"bestmove e2e4", "e2e4", nil},
		{"bestmove e7e8q ponder a2a3", "e7e8q", nil},
		{"bestmove (none)", "", ErrNoMove},
		{"bestmove 0000", "", ErrNoMove},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseBestMove(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseBestMove("bestmove")
	assert.Error(t, err)
}
