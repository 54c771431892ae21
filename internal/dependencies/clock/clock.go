// Package clock is the time source behind the arcade's wall-clock rules: the
// Tetris rotation cooldown and the chess opponent's move delay and search
// deadline. Games take a Clock so tests can step time with mocks.MockClock.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the machine clock.
type System struct{}

func New() *System {
	return &System{}
}

func (*System) Now() time.Time {
	return time.Now()
}

// DueIn returns the instant d from now on c.
func DueIn(c Clock, d time.Duration) time.Time {
	return c.Now().Add(d)
}

// Reached reports whether c has arrived at or passed t.
func Reached(c Clock, t time.Time) bool {
	return !c.Now().Before(t)
}
