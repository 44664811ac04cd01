package codec

import "testing"

func TestRoundTripAllSupportedCCSIDs(t *testing.T) {
	ccsids := []CCSID{
		CCSID37, CCSID273, CCSID277, CCSID278, CCSID280,
		CCSID284, CCSID285, CCSID297, CCSID500, CCSID871, CCSID1026,
	}
	for _, ccsid := range ccsids {
		c, err := New(ccsid)
		if err != nil {
			t.Fatalf("CCSID %d: %v", ccsid, err)
		}
		for b := 0; b < 256; b++ {
			r := c.Decode(byte(b))
			enc, ok := c.Encode(r)
			if !ok {
				t.Errorf("CCSID %d: byte 0x%02X decoded to %q, which has no encoding back", ccsid, b, r)
				continue
			}
			if enc != byte(b) {
				t.Errorf("CCSID %d: round trip byte 0x%02X -> %q -> 0x%02X", ccsid, b, r, enc)
			}
		}
	}
}

func TestDecodeKnownPositions(t *testing.T) {
	c, err := New(CCSID37)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[byte]rune{
		0x40: ' ',
		0xC1: 'A',
		0xF0: '0',
		0x81: 'a',
	}
	for b, want := range cases {
		if got := c.Decode(b); got != want {
			t.Errorf("Decode(0x%02X) = %q, want %q", b, got, want)
		}
	}
}

func TestEncodeStringRoundTrip(t *testing.T) {
	c, err := New(CCSID37)
	if err != nil {
		t.Fatal(err)
	}
	in := "HELLO123"
	enc := c.EncodeString(in)
	out := c.DecodeBytes(enc)
	if out != in {
		t.Errorf("EncodeString/DecodeBytes round trip: got %q, want %q", out, in)
	}
}

func TestUnsupportedCCSID(t *testing.T) {
	if _, err := New(CCSID(9999)); err == nil {
		t.Error("expected error for unsupported CCSID")
	}
}

func TestGraphicGlyph(t *testing.T) {
	if r, ok := GraphicGlyph(EBCDICDup); !ok || r != '*' {
		t.Errorf("GraphicGlyph(DUP) = %q, %v", r, ok)
	}
	if r, ok := GraphicGlyph(EBCDICFieldMark); !ok || r != ';' {
		t.Errorf("GraphicGlyph(FIELD MARK) = %q, %v", r, ok)
	}
	if _, ok := GraphicGlyph(0x00); ok {
		t.Error("GraphicGlyph(0x00) should not be a graphic escape")
	}
}
