package suggest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const handshakeTimeout = 5 * time.Second

// UCIOptions configure a UCI engine process.
type UCIOptions struct {
	Path    string
	Args    []string
	Threads int
	HashMB  int
	Env     []string
	Logger  *log.Logger
}

// UCI drives an external engine speaking the Universal Chess Interface
// over stdin/stdout. One search runs at a time.
type UCI struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  chan string
	logger *log.Logger

	mu        sync.Mutex // serializes searches
	writeMu   sync.Mutex
	skill     int
	closed    bool
	closeOnce sync.Once
}

// StartUCI launches the engine and completes the uci/isready handshake.
func StartUCI(ctx context.Context, opts UCIOptions) (*UCI, error) {
	if opts.Path == "" {
		opts.Path = "stockfish"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	path, err := exec.LookPath(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("suggest: engine %q not found: %w", opts.Path, err)
	}

	cmd := exec.Command(path, opts.Args...)
	if len(opts.Env) > 0 {
		cmd.Env = opts.Env
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("suggest: failed to start engine: %w", err)
	}

	u := &UCI{
		cmd:    cmd,
		stdin:  stdin,
		lines:  make(chan string, 64),
		logger: opts.Logger.WithPrefix("uci"),
		skill:  -1,
	}
	go u.readLoop(stdout)

	if err := u.initialize(ctx, opts); err != nil {
		_ = u.Close()
		return nil, err
	}
	return u, nil
}

func (u *UCI) readLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		u.lines <- scanner.Text()
	}
	close(u.lines)
}

func (u *UCI) initialize(ctx context.Context, opts UCIOptions) error {
	ctx, cancel := context.WithTimeout(ctx, handshakeTimeout)
	defer cancel()

	if err := u.send("uci"); err != nil {
		return err
	}
	if _, err := u.waitFor(ctx, "uciok"); err != nil {
		return fmt.Errorf("suggest: waiting for uciok: %w", err)
	}
	if opts.Threads > 0 {
		_ = u.send(fmt.Sprintf("setoption name Threads value %d", opts.Threads))
	}
	if opts.HashMB > 0 {
		_ = u.send(fmt.Sprintf("setoption name Hash value %d", opts.HashMB))
	}
	return u.ready(ctx)
}

func (u *UCI) ready(ctx context.Context) error {
	if err := u.send("isready"); err != nil {
		return err
	}
	if _, err := u.waitFor(ctx, "readyok"); err != nil {
		return fmt.Errorf("suggest: waiting for readyok: %w", err)
	}
	return nil
}

func (u *UCI) send(cmd string) error {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()
	if u.closed {
		return ErrEngineClosed
	}
	u.logger.Debug("send", "cmd", cmd)
	_, err := fmt.Fprintln(u.stdin, cmd)
	return err
}

// waitFor reads lines until one starts with prefix.
func (u *UCI) waitFor(ctx context.Context, prefix string) (string, error) {
	for {
		select {
		case line, ok := <-u.lines:
			if !ok {
				return "", ErrEngineClosed
			}
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (u *UCI) Name() string { return "uci" }

// Suggest sets the position and searches to req.Depth. Each search starts
// with an isready round trip, which drops output left over from an earlier
// search. On cancellation the engine is told to stop.
func (u *UCI) Suggest(ctx context.Context, req Request) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.ready(ctx); err != nil {
		return "", err
	}

	if req.Skill != u.skill {
		skill := min(max(req.Skill, 0), 20)
		if err := u.send(fmt.Sprintf("setoption name Skill Level value %d", skill)); err != nil {
			return "", err
		}
		u.skill = req.Skill
	}
	if err := u.send("position fen " + req.FEN); err != nil {
		return "", err
	}
	depth := max(req.Depth, 1)
	if err := u.send(fmt.Sprintf("go depth %d", depth)); err != nil {
		return "", err
	}

	line, err := u.waitFor(ctx, "bestmove")
	if err != nil {
		if ctx.Err() != nil {
			u.abort()
		}
		return "", err
	}
	return parseBestMove(line)
}

func (u *UCI) abort() {
	if u.send("stop") != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
	defer cancel()
	if _, err := u.waitFor(ctx, "bestmove"); err != nil {
		u.logger.Warn("engine did not acknowledge stop", "err", err)
	}
}

func parseBestMove(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "bestmove" {
		return "", fmt.Errorf("suggest: unexpected engine output %q", line)
	}
	if fields[1] == "(none)" || fields[1] == "0000" {
		return "", ErrNoMove
	}
	return fields[1], nil
}

// Close asks the engine to quit and kills it if it does not exit promptly.
func (u *UCI) Close() error {
	u.closeOnce.Do(func() {
		_ = u.send("quit")
		u.writeMu.Lock()
		u.closed = true
		_ = u.stdin.Close()
		u.writeMu.Unlock()

		done := make(chan error, 1)
		go func() { done <- u.cmd.Wait() }()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = u.cmd.Process.Kill()
			<-done
		}
	})
	return nil
}
