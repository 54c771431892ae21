package core

import "testing"

func TestColorANSI256(t *testing.T) {
	if _, ok := ColorDefault.ANSI256(); ok {
		t.Error("ColorDefault should have no palette code")
	}
	if code, ok := ColorOrange.ANSI256(); !ok || code != "208" {
		t.Errorf("ColorOrange = %q, %v", code, ok)
	}
	if _, ok := Color(200).ANSI256(); ok {
		t.Error("out-of-range color should have no palette code")
	}
}

func TestColorsCoverPalette(t *testing.T) {
	colors := Colors()
	if colors[0] != ColorDefault {
		t.Fatalf("first color = %d, want ColorDefault", colors[0])
	}
	for _, c := range colors[1:] {
		if _, ok := c.ANSI256(); !ok {
			t.Errorf("color %d has no palette code", c)
		}
	}
}
