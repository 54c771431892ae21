package core

import "testing"

func TestInputFramePresses(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionDown)
	f.Set(ActionLeft)

	if !f.Has(ActionLeft) || !f.Has(ActionDown) {
		t.Fatal("Has should report both pressed actions")
	}
	if f.Has(ActionUp) {
		t.Error("Has(ActionUp) should be false")
	}

	want := []Action{ActionLeft, ActionDown, ActionLeft}
	got := f.Presses()
	if len(got) != len(want) {
		t.Fatalf("Presses() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Presses()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionHold)
	clone := f.Clone()

	f.Clear()
	if !f.Empty() || f.Has(ActionHold) {
		t.Error("Clear should drop all presses")
	}
	if !clone.Has(ActionHold) || len(clone.Presses()) != 1 {
		t.Error("Clone must not share state with the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Error("zero frame has no actions")
	}
	f.Set(ActionQuit)
	if !f.Has(ActionQuit) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionRotateCCW.String() != "RotateCCW" {
		t.Errorf("String() = %q", ActionRotateCCW.String())
	}
	if Action(999).String() != "Unknown" {
		t.Error("unknown actions should stringify as Unknown")
	}
}
