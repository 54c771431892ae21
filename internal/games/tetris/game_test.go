package tetris

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zriley/portfolio-arcade/internal/config"
	"github.com/zriley/portfolio-arcade/internal/core"
	"github.com/zriley/portfolio-arcade/internal/dependencies/mocks"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}

// newTestGame returns a game whose pieces are drawn from kinds in order:
// active, next, then one per lock or first hold.
func newTestGame(t *testing.T, clk *mocks.MockClock, kinds ...Kind) *Game {
	t.Helper()
	values := make([]int, len(kinds))
	for i, k := range kinds {
		values[i] = int(k)
	}
	g := New(
		WithConfig(config.DefaultTetrisConfig()),
		WithRandom(mocks.NewMockRandom(values...)),
		WithClock(clk),
	)
	g.Reset(testRuntime)
	return g
}

func newClock() *mocks.MockClock {
	return mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestShapeRotation(t *testing.T) {
	tee := spawnShapes[KindT]

	cw := tee.RotateCW()
	want := shape(
		".#.",
		".##",
		".#.",
	)
	if !cw.Equal(want) {
		t.Errorf("T rotated clockwise = %v, expected %v", cw, want)
	}

	if !tee.RotateCW().RotateCCW().Equal(tee) {
		t.Error("clockwise then counter-clockwise should be the identity")
	}
	if !tee.RotateCW().RotateCW().RotateCW().RotateCW().Equal(tee) {
		t.Error("four clockwise turns should be the identity")
	}
	if !spawnShapes[KindT].Equal(shape(".#.", "###", "...")) {
		t.Error("rotation must not mutate the shape table")
	}
}

func TestReset(t *testing.T) {
	g := newTestGame(t, newClock(), KindT, KindS)
	snap := g.Snapshot()

	if snap.Active.Kind != KindT || snap.Active.Pos != core.Pt(3, 0) {
		t.Errorf("active = %s at %v, expected T at {3 0}", snap.Active.Kind, snap.Active.Pos)
	}
	if snap.Next.Kind != KindS {
		t.Errorf("next = %s, expected S", snap.Next.Kind)
	}
	if snap.Held != nil || !snap.CanHold || snap.Score != 0 || snap.GameOver {
		t.Errorf("unexpected initial state: %s", g.DebugState())
	}
	if len(snap.Board) != 20 || len(snap.Board[0]) != 10 || snap.Board.Filled() != 0 {
		t.Error("board should be an empty 20x10 well")
	}
}

func TestOPieceScenario(t *testing.T) {
	g := newTestGame(t, newClock(), KindO, KindT, KindT)

	before := g.Snapshot()
	if g.AttemptRotate(true) {
		t.Error("the O piece never rotates")
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Fatal("rotating O must not change state")
	}

	if n := g.HardDrop(); n != 18 {
		t.Errorf("hard drop moved %d rows, expected 18", n)
	}
	if g.Snapshot().Board.Filled() != 0 {
		t.Fatal("hard drop must not lock by itself")
	}

	g.Tick()

	snap := g.Snapshot()
	if snap.Board.Filled() != 4 {
		t.Errorf("board has %d cells, expected 4", snap.Board.Filled())
	}
	for _, x := range []int{3, 4} {
		for _, y := range []int{18, 19} {
			if snap.Board[y][x] != int(KindO)+1 {
				t.Errorf("cell (%d,%d) = %d, expected O", x, y, snap.Board[y][x])
			}
		}
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, expected 0", snap.Score)
	}
	if snap.Active.Kind != KindT || snap.Active.Pos != core.Pt(3, 0) {
		t.Errorf("next piece should spawn, got %s at %v", snap.Active.Kind, snap.Active.Pos)
	}
}

func TestTranslateBlockedByWall(t *testing.T) {
	g := newTestGame(t, newClock(), KindO, KindO)

	for i := 0; i < 3; i++ {
		if !g.AttemptTranslate(-1, 0) {
			t.Fatalf("move %d to the left should succeed", i+1)
		}
	}
	before := g.Snapshot()
	if g.AttemptTranslate(-1, 0) {
		t.Error("moving into the wall should fail")
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("a rejected move must not change state")
	}
}

func TestRotationCooldown(t *testing.T) {
	clk := newClock()
	g := newTestGame(t, clk, KindT, KindT)

	if !g.AttemptRotate(true) {
		t.Fatal("first rotation should succeed")
	}
	shapeAfterFirst := g.Snapshot().Active.Shape

	clk.Advance(100 * time.Millisecond)
	if g.AttemptRotate(true) {
		t.Error("a rotation inside the cooldown should be ignored")
	}
	if !g.Snapshot().Active.Shape.Equal(shapeAfterFirst) {
		t.Error("an ignored rotation must not change the shape")
	}

	clk.Advance(50 * time.Millisecond)
	if !g.AttemptRotate(true) {
		t.Error("rotation should work again once the cooldown has passed")
	}
}

func TestIPieceWallKick(t *testing.T) {
	clk := newClock()
	g := newTestGame(t, clk, KindI, KindI)

	if !g.AttemptRotate(true) {
		t.Fatal("I should stand up at spawn")
	}
	for g.AttemptTranslate(-1, 0) {
	}
	if pos := g.Snapshot().Active.Pos; pos.X != -2 {
		t.Fatalf("vertical I should hug the wall at x=-2, got %v", pos)
	}

	clk.Advance(200 * time.Millisecond)
	before := g.Snapshot()
	if g.AttemptRotate(true) {
		t.Fatal("every clockwise kick leaves the well here")
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Fatal("a failed rotation must not change state or start the cooldown")
	}

	if !g.AttemptRotate(false) {
		t.Fatal("counter-clockwise should succeed through the (+2, 0) kick")
	}
	snap := g.Snapshot()
	if snap.Active.Pos.X != 0 {
		t.Errorf("kicked position = %v, expected x=0", snap.Active.Pos)
	}
	for _, c := range snap.Active.Cells() {
		if !c.In(10, 20) {
			t.Errorf("cell %v left the well", c)
		}
	}
}

func TestLineClear(t *testing.T) {
	g := newTestGame(t, newClock(), KindO, KindT, KindT)

	// Rows 18 and 19 are full except for the two left columns.
	for _, y := range []int{18, 19} {
		for x := 2; x < 10; x++ {
			g.board[y][x] = int(KindZ) + 1
		}
	}
	g.board[17][5] = int(KindJ) + 1

	for g.AttemptTranslate(-1, 0) {
	}
	g.HardDrop()
	g.Tick()

	snap := g.Snapshot()
	if snap.Score != 200 {
		t.Errorf("score = %d, expected 200 for two rows", snap.Score)
	}
	if snap.Lines != 2 {
		t.Errorf("lines = %d, expected 2", snap.Lines)
	}
	if len(snap.Board) != 20 {
		t.Fatalf("board height changed to %d", len(snap.Board))
	}
	if snap.Board.Filled() != 1 || snap.Board[19][5] != int(KindJ)+1 {
		t.Error("the row above the cleared rows should shift down by two")
	}
	for y, row := range snap.Board {
		if len(row) != 10 {
			t.Errorf("row %d has width %d", y, len(row))
		}
	}
}

func TestHoldOncePerLock(t *testing.T) {
	g := newTestGame(t, newClock(), KindT, KindS, KindZ, KindL, KindJ)

	if !g.Hold() {
		t.Fatal("first hold should succeed")
	}
	snap := g.Snapshot()
	if snap.Held == nil || snap.Held.Kind != KindT {
		t.Fatalf("held = %v, expected T", snap.Held)
	}
	if snap.Active.Kind != KindS || snap.Next.Kind != KindZ {
		t.Errorf("after hold active=%s next=%s, expected S and Z", snap.Active.Kind, snap.Next.Kind)
	}

	before := g.Snapshot()
	if g.Hold() {
		t.Error("a second hold before locking must be rejected")
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("a rejected hold must not change state")
	}

	g.HardDrop()
	g.Tick()
	if g.Snapshot().Active.Kind != KindZ {
		t.Fatalf("Z should be active after the lock, got %s", g.Snapshot().Active.Kind)
	}

	if !g.Hold() {
		t.Fatal("hold should be available again after a lock")
	}
	snap = g.Snapshot()
	if snap.Active.Kind != KindT || snap.Active.Pos != core.Pt(3, 0) {
		t.Errorf("swap should bring T back at spawn, got %s at %v", snap.Active.Kind, snap.Active.Pos)
	}
	if snap.Held.Kind != KindZ {
		t.Errorf("held = %s, expected Z", snap.Held.Kind)
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	g := newTestGame(t, newClock(), KindO, KindT, KindT)
	g.HardDrop()

	for x := 3; x <= 6; x++ {
		g.board[1][x] = int(KindZ) + 1
	}
	g.Tick()

	if !g.Snapshot().GameOver {
		t.Fatal("a blocked spawn should end the game")
	}

	before := g.Snapshot()
	g.Tick()
	g.AttemptTranslate(1, 0)
	g.Hold()
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("input after game over must be ignored")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)
	if g.Snapshot().GameOver || g.Snapshot().Board.Filled() != 0 {
		t.Error("restart should clear the board")
	}
}

func TestHoldSpawnCollisionEndsGame(t *testing.T) {
	g := newTestGame(t, newClock(), KindO, KindT, KindT)
	g.HardDrop()
	for x := 3; x <= 6; x++ {
		g.board[1][x] = int(KindZ) + 1
	}

	if !g.Hold() {
		t.Fatal("hold is allowed")
	}
	if !g.Snapshot().GameOver {
		t.Error("a hold whose spawn is blocked should end the game")
	}
}

func TestStepGravity(t *testing.T) {
	g := New(
		WithConfig(config.DefaultTetrisConfig()),
		WithRandom(mocks.NewMockRandom(int(KindT), int(KindT))),
		WithClock(newClock()),
	)
	cfg := testRuntime
	cfg.TickRate = 50
	g.Reset(cfg)
	frame := core.NewInputFrame()

	// 400ms at 50 steps per second is 20 steps.
	for i := 1; i < 20; i++ {
		g.Step(frame)
	}
	if g.Snapshot().Active.Pos.Y != 0 {
		t.Fatal("piece fell early")
	}
	g.Step(frame)
	if g.Snapshot().Active.Pos.Y != 1 {
		t.Errorf("piece should fall one row on step 20, at %v", g.Snapshot().Active.Pos)
	}
}

func TestStepAppliesEveryPress(t *testing.T) {
	g := newTestGame(t, newClock(), KindT, KindT)

	frame := core.NewInputFrame()
	frame.Set(core.ActionLeft)
	frame.Set(core.ActionLeft)
	frame.Set(core.ActionLeft)
	g.Step(frame)

	if x := g.Snapshot().Active.Pos.X; x != 0 {
		t.Errorf("three presses should move three columns, x = %d", x)
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	clk := newClock()
	g := New(WithConfig(config.DefaultTetrisConfig()), WithClock(clk))
	cfg := testRuntime
	cfg.Seed = 42
	g.Reset(cfg)

	driver := rand.New(rand.NewSource(3))
	actions := []core.Action{
		core.ActionLeft, core.ActionRight, core.ActionDown, core.ActionUp,
		core.ActionRotateCCW, core.ActionHold, core.ActionDrop,
	}

	for i := 0; i < 5000; i++ {
		frame := core.NewInputFrame()
		if driver.Intn(3) == 0 {
			frame.Set(actions[driver.Intn(len(actions))])
		}
		g.Step(frame)
		clk.Advance(16 * time.Millisecond)

		snap := g.Snapshot()
		if len(snap.Board) != 20 {
			t.Fatalf("board height %d", len(snap.Board))
		}
		for _, row := range snap.Board {
			if len(row) != 10 {
				t.Fatalf("row width %d", len(row))
			}
			if full(row) {
				t.Fatal("a full row survived a lock")
			}
		}
		if snap.GameOver {
			g.restart()
			continue
		}
		for _, c := range snap.Active.Cells() {
			if !c.In(10, 20) || snap.Board[c.Y][c.X] != 0 {
				t.Fatalf("active piece overlaps at %v: %s", c, g.DebugState())
			}
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, newClock(), KindI, KindO)
	g.Hold()

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"TETRIS", "Score 0", "Next", "Hold (used)"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}
