package core

import "testing"

func TestDigitAction(t *testing.T) {
	for n := 0; n <= 9; n++ {
		a := DigitAction(n)
		d, ok := a.Digit()
		if !ok || d != n {
			t.Errorf("DigitAction(%d).Digit() = (%d, %v), expected (%d, true)", n, d, ok, n)
		}
	}
	if DigitAction(10) != ActionNone || DigitAction(-1) != ActionNone {
		t.Error("DigitAction outside 0-9 should be ActionNone")
	}
	if _, ok := ActionConfirm.Digit(); ok {
		t.Error("ActionConfirm should not carry a digit")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionConfirm) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionConfirm)
	f.Set(DigitAction(7))
	f.Set(DigitAction(2))
	if !f.Has(ActionConfirm) {
		t.Error("Has(ActionConfirm) = false, expected true")
	}
	if d, ok := f.Digit(); !ok || d != 2 {
		t.Errorf("Digit() = (%d, %v), expected (2, true)", d, ok)
	}

	f.Clear()
	if f.Has(ActionConfirm) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionAny) {
		t.Error("zero frame should report no actions")
	}
	zero.Set(ActionAny)
	if !zero.Has(ActionAny) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionDigit3.String() != "Digit3" {
		t.Errorf("String() = %q, expected Digit3", ActionDigit3.String())
	}
	if ActionClap.String() != "Clap" {
		t.Errorf("String() = %q, expected Clap", ActionClap.String())
	}
}
