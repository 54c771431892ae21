// Package suggest provides move-suggestion engines for the chess adapter:
// a UCI subprocess, a cloud evaluation service and a small built-in search.
package suggest

import (
	"context"
	"errors"
)

var (
	// ErrNoMove means the engine found no move (mate or stalemate on its side).
	ErrNoMove = errors.New("suggest: engine returned no move")
	// ErrEngineClosed is returned once Close has been called or the engine died.
	ErrEngineClosed = errors.New("suggest: engine closed")
)

// Request asks for a move in the position given by FEN.
type Request struct {
	FEN   string
	Depth int
	Skill int
}

// Suggester produces one move, in coordinate notation, for a position.
// Suggest must honor ctx cancellation.
type Suggester interface {
	Name() string
	Suggest(ctx context.Context, req Request) (string, error)
	Close() error
}
