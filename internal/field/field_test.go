package field

import "testing"

func TestShiftDerivedBooleans(t *testing.T) {
	f := NewField(10, 5, byte(ShiftNumeric), 0, 0, 0, 9, 0x20)
	if !f.IsNumeric() {
		t.Error("expected IsNumeric for shift 3")
	}
	f2 := NewField(10, 5, byte(ShiftSignedNumeric), 0, 0, 0, 9, 0x20)
	if !f2.IsSignedNumeric() {
		t.Error("expected IsSignedNumeric for shift 7")
	}
}

func TestFFW1Flags(t *testing.T) {
	f := NewField(0, 10, ffw1Bypass|ffw1AutoEnter|ffw1FER|ffw1ToUpper, ffw2Mandatory, 0, 0, 0, 0x20)
	if !f.IsBypass() || !f.IsAutoEnter() || !f.IsFER() || !f.IsToUpper() || !f.IsMandatory() {
		t.Errorf("expected all flags set, got %+v", f)
	}
	if f.IsDupEnabled() {
		t.Error("did not expect dup-enable set")
	}
}

func TestSetStringTruncatesAndPads(t *testing.T) {
	f := NewField(0, 5, 0, 0, 0, 0, 0, 0x20)
	f.SetString("TOOLONGVALUE")
	if f.GetText() != "TOOLO" {
		t.Errorf("GetText = %q, want truncated to length 5", f.GetText())
	}

	f.SetString("AB")
	if f.GetText() != "AB   " {
		t.Errorf("GetText = %q, want right-padded with spaces", f.GetText())
	}
}

func TestStartEndPos(t *testing.T) {
	f := NewField(100, 10, 0, 0, 0, 0, 99, 0x20)
	if f.StartPos() != 100 || f.EndPos() != 109 {
		t.Errorf("StartPos/EndPos = %d/%d, want 100/109", f.StartPos(), f.EndPos())
	}
	if !f.WithinField(105) || f.WithinField(110) {
		t.Error("WithinField bounds incorrect")
	}
}

func TestFillFromAttribute(t *testing.T) {
	f := NewField(0, 5, 0, 0, 0, 0, 0, 0x20)
	f.SetCharAt(0, 'A')
	f.SetCharAt(1, 'B')
	f.FillFromAttribute(2, DupMarker)
	if f.GetText() != "AB***" {
		t.Errorf("GetText = %q, want %q", f.GetText(), "AB***")
	}
}

func TestNextPrevChar(t *testing.T) {
	f := NewField(0, 3, 0, 0, 0, 0, 0, 0x20)
	if f.NextChar(0) != 1 || f.NextChar(2) != -1 {
		t.Error("NextChar boundary wrong")
	}
	if f.PrevChar(1) != 0 || f.PrevChar(0) != -1 {
		t.Error("PrevChar boundary wrong")
	}
}

func TestResizeGrowPadsWithSpaces(t *testing.T) {
	f := NewField(0, 3, 0, 0, 0, 0, 0, 0x20)
	f.SetString("AB")
	f.Resize(5)
	if f.Len != 5 {
		t.Errorf("Len = %d, want 5", f.Len)
	}
	if f.GetText() != "AB   " {
		t.Errorf("GetText = %q, want %q", f.GetText(), "AB   ")
	}
}

func TestResizeShrinkTruncates(t *testing.T) {
	f := NewField(0, 5, 0, 0, 0, 0, 0, 0x20)
	f.SetString("HELLO")
	f.Resize(3)
	if f.Len != 3 {
		t.Errorf("Len = %d, want 3", f.Len)
	}
	if f.GetText() != "HEL" {
		t.Errorf("GetText = %q, want %q", f.GetText(), "HEL")
	}
}

func TestModifiedFlag(t *testing.T) {
	f := NewField(0, 3, 0, 0, 0, 0, 0, 0x20)
	if f.IsModified() {
		t.Error("expected unmodified on creation")
	}
	f.SetCharAt(0, 'X')
	if !f.IsModified() {
		t.Error("expected modified after SetCharAt")
	}
}
