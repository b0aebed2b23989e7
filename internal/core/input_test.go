package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionConfirm)
	f.SetClick(3, 4)

	if !f.Has(ActionConfirm) {
		t.Error("Has(Confirm) should be true")
	}
	if f.Has(ActionUndo) {
		t.Error("Has(Undo) should be false")
	}
	if f.Click == nil || f.Click.X != 3 || f.Click.Y != 4 {
		t.Errorf("Click = %v, expected (3, 4)", f.Click)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero frame should allocate the map")
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionHint)
	f.SetClick(1, 2)

	c := f.Clone()
	f.Clear()

	if !c.Has(ActionHint) {
		t.Error("clone lost its action after the original was cleared")
	}
	if c.Click == nil || *c.Click != (Point{X: 1, Y: 2}) {
		t.Errorf("clone click = %v, expected (1, 2)", c.Click)
	}
}

func TestActionString(t *testing.T) {
	if ActionRepaint.String() != "Repaint" {
		t.Errorf("ActionRepaint.String() = %q", ActionRepaint.String())
	}
	if Action(999).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"red", ColorRed, true},
		{" Magenta ", ColorMagenta, true},
		{"YELLOW", ColorYellow, true},
		{"purple", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}

	if ColorBlue.String() != "blue" {
		t.Errorf("ColorBlue.String() = %q", ColorBlue.String())
	}
}
