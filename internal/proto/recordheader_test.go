package proto

import (
	"bytes"
	"testing"
)

func TestParseRecordHeaderSplitsBodyFromHeader(t *testing.T) {
	data := []byte{0x00, 0x09, 0x00, 0x2A, 0x00, byte(OpcodePutGet), 0x03, 0xAA, 0xBB}
	h, body, err := ParseRecordHeader(data)
	if err != nil {
		t.Fatalf("ParseRecordHeader: %v", err)
	}
	if h.Length != 9 {
		t.Errorf("Length = %d, want 9", h.Length)
	}
	if h.Sequence != 0x002A {
		t.Errorf("Sequence = %#x, want 0x2A", h.Sequence)
	}
	if h.Opcode != OpcodePutGet {
		t.Errorf("Opcode = %v, want OpcodePutGet", h.Opcode)
	}
	if h.HeaderLen != 3 {
		t.Errorf("HeaderLen = %d, want 3", h.HeaderLen)
	}
	if !bytes.Equal(body, []byte{0xAA, 0xBB}) {
		t.Errorf("body = %X, want AABB", body)
	}
}

func TestParseRecordHeaderTruncated(t *testing.T) {
	_, _, err := ParseRecordHeader([]byte{0x00, 0x09, 0x00})
	if _, ok := err.(*TruncatedRecordError); !ok {
		t.Fatalf("err = %v, want *TruncatedRecordError", err)
	}
}

func TestBuildRecordHeaderRoundTrips(t *testing.T) {
	cmd := []byte{0x40}
	out := BuildRecordHeader(7, OpcodeSave, cmd)

	// Bytes 2-3 hold the outbound sequence as a little-endian pair (low
	// byte first), not the big-endian reading ParseRecordHeader applies
	// to inbound headers' reserved bytes.
	if out[2] != 7 || out[3] != 0 {
		t.Errorf("sequence bytes = %X %X, want 07 00", out[2], out[3])
	}

	h, body, err := ParseRecordHeader(out)
	if err != nil {
		t.Fatalf("ParseRecordHeader: %v", err)
	}
	if h.Opcode != OpcodeSave {
		t.Errorf("h = %+v", h)
	}
	if !bytes.Equal(body, cmd) {
		t.Errorf("body = %X, want %X", body, cmd)
	}
	if h.Length != len(out) {
		t.Errorf("Length = %d, want %d", h.Length, len(out))
	}
}
