package proto

import "testing"

// Scenario B: SOH with length 4 and a resequence/error-row payload of
// (flag=0x01, reserved=0x00, error-row=0x05, data-included[0]=0x00) must
// surface ErrorRow == 5.
func TestParseSOHScenarioBErrorRow(t *testing.T) {
	data := []byte{0x04, 0x01, 0x00, 0x05, 0x00}
	h, n, err := ParseSOH(data)
	if err != nil {
		t.Fatalf("ParseSOH: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}
	if h.ErrorRow != 5 {
		t.Errorf("ErrorRow = %d, want 5", h.ErrorRow)
	}
	if !h.Resequence {
		t.Errorf("Resequence = false, want true (flag low bit set)")
	}
}

func TestParseSOHLengthOutOfRangeIsBadHeader(t *testing.T) {
	for _, length := range []byte{0x00, 0x08, 0xFF} {
		_, _, err := ParseSOH([]byte{length, 0, 0, 0, 0, 0, 0, 0})
		if _, ok := err.(*BadHeaderError); !ok {
			t.Errorf("length %#x: err = %v, want *BadHeaderError", length, err)
		}
	}
}

func TestParseSOHTruncated(t *testing.T) {
	_, _, err := ParseSOH([]byte{0x04, 0x01})
	if _, ok := err.(*TruncatedRecordError); !ok {
		t.Fatalf("err = %v, want *TruncatedRecordError", err)
	}
}

func TestHeaderClampErrorRow(t *testing.T) {
	h := Header{ErrorRow: 99}
	h.ClampErrorRow(24)
	if h.ErrorRow != 24 {
		t.Errorf("ErrorRow = %d, want 24", h.ErrorRow)
	}
}

func TestHeaderReset(t *testing.T) {
	h := Header{Flag: 1, Resequence: true, ErrorRow: 5}
	h.Reset()
	if h != (Header{}) {
		t.Errorf("Reset left %+v, want zero value", h)
	}
}
