package field

import "testing"

func TestAdmitCharBypassRejectsEverything(t *testing.T) {
	f := NewField(0, 5, ffw1Bypass, 0, 0, 0, 0, 0x20)
	if f.AdmitChar('A', 0, true) {
		t.Error("expected bypass field to reject all input")
	}
}

func TestAdmitCharNumeric(t *testing.T) {
	f := NewField(0, 5, byte(ShiftNumeric), 0, 0, 0, 0, 0x20)
	if !f.AdmitChar('5', 0, true) {
		t.Error("expected digit admitted")
	}
	if !f.AdmitChar(' ', 0, true) {
		t.Error("expected space admitted")
	}
	if !f.AdmitChar(DupMarker, 0, true) {
		t.Error("expected dup marker admitted")
	}
	if f.AdmitChar('A', 0, true) {
		t.Error("expected letter rejected in numeric field")
	}
}

func TestAdmitCharSignedNumeric(t *testing.T) {
	f := NewField(0, 5, byte(ShiftSignedNumeric), 0, 0, 0, 0, 0x20)
	if !f.AdmitChar('+', 0, true) {
		t.Error("expected leading + admitted at offset 0")
	}
	if !f.AdmitChar('-', 4, true) {
		t.Error("expected trailing - admitted at last offset")
	}
	if f.AdmitChar('+', 2, true) {
		t.Error("expected + rejected in the middle of the field")
	}
}

func TestAdmitCharAlphaStrictVsLenient(t *testing.T) {
	f := NewField(0, 5, byte(ShiftAlpha), 0, 0, 0, 0, 0x20)
	if f.AdmitChar('1', 0, true) {
		t.Error("expected digit rejected under strict alpha")
	}
	if !f.AdmitChar('1', 0, false) {
		t.Error("expected digit admitted under lenient alpha")
	}
	if !f.AdmitChar('Q', 0, true) {
		t.Error("expected letter admitted under strict alpha")
	}
}

func TestNormalizeCharToUpper(t *testing.T) {
	f := NewField(0, 5, ffw1ToUpper, 0, 0, 0, 0, 0x20)
	if f.NormalizeChar('a') != 'A' {
		t.Error("expected to-upper conversion")
	}
}
