// Package codec implements EBCDIC<->Unicode translation for the CCSIDs a
// 5250 host can negotiate, plus the graphic-character mappings the order
// dispatcher needs for DUP/FIELD-MARK glyphs and transparent data.
package codec

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CCSID identifies an IBM coded character set, as negotiated in session.Config.
type CCSID int

const (
	CCSID37   CCSID = 37  // US/Canada
	CCSID273  CCSID = 273 // Germany/Austria
	CCSID277  CCSID = 277 // Denmark/Norway
	CCSID278  CCSID = 278 // Finland/Sweden
	CCSID280  CCSID = 280 // Italy
	CCSID284  CCSID = 284 // Spain/Latin America
	CCSID285  CCSID = 285 // United Kingdom
	CCSID297  CCSID = 297 // France
	CCSID500  CCSID = 500 // International (Belgium/Switzerland)
	CCSID871  CCSID = 871 // Iceland
	CCSID1026 CCSID = 1026 // Turkey
)

// Codec translates bytes on the wire (EBCDIC, per its CCSID) to and from
// the Unicode scalars the screen model's char plane stores.
type Codec struct {
	ccsid CCSID

	// charDecoder/charEncoder are non-nil for CCSIDs backed directly by
	// golang.org/x/text/encoding/charmap (37 only).
	charDecoder transform.Transformer
	charEncoder transform.Transformer

	// table/reverse back the remaining CCSIDs, which x/text does not ship.
	table   *[256]rune
	reverse map[rune]byte
}

// New builds the Codec for ccsid. It returns an error for a CCSID this
// module has no table for, rather than silently defaulting — a silent
// fallback would corrupt every subsequent field render.
func New(ccsid CCSID) (*Codec, error) {
	switch ccsid {
	case CCSID37:
		return fromCharmap(ccsid, charmap.CodePage037), nil
	case CCSID500:
		// x/text has no CodePage500 entry; 500 differs from the 37/1047
		// family only at the handful of "national use" positions handled
		// by nationalOverrides, so it is built from the same base table.
		return fromTable(ccsid, buildTable(nationalOverrides[CCSID500])), nil
	case CCSID273, CCSID277, CCSID278, CCSID280, CCSID284, CCSID285, CCSID297, CCSID871, CCSID1026:
		overrides, ok := nationalOverrides[ccsid]
		if !ok {
			return nil, fmt.Errorf("codec: no overrides registered for CCSID %d", ccsid)
		}
		return fromTable(ccsid, buildTable(overrides)), nil
	default:
		return nil, fmt.Errorf("codec: unsupported CCSID %d", ccsid)
	}
}

func fromCharmap(ccsid CCSID, cm *charmap.Charmap) *Codec {
	return &Codec{
		ccsid:       ccsid,
		charDecoder: cm.NewDecoder(),
		charEncoder: cm.NewEncoder(),
	}
}

func fromTable(ccsid CCSID, table *[256]rune) *Codec {
	rev := make(map[rune]byte, 256)
	for i, r := range table {
		if _, exists := rev[r]; !exists {
			rev[r] = byte(i)
		}
	}
	return &Codec{ccsid: ccsid, table: table, reverse: rev}
}

// CCSID returns the coded character set this Codec translates.
func (c *Codec) CCSID() CCSID { return c.ccsid }

// Decode translates a single EBCDIC byte to its Unicode scalar.
func (c *Codec) Decode(b byte) rune {
	if c.table != nil {
		return c.table[b]
	}
	out, _, err := transform.Bytes(c.charDecoder, []byte{b})
	if err != nil || len(out) == 0 {
		return 0xFFFD // unicode.ReplacementChar, avoided as an import for one use
	}
	r := []rune(string(out))
	if len(r) == 0 {
		return 0xFFFD
	}
	return r[0]
}

// DecodeBytes translates a run of EBCDIC bytes to a Unicode string.
func (c *Codec) DecodeBytes(data []byte) string {
	if c.table == nil {
		out, _, err := transform.Bytes(c.charDecoder, data)
		if err != nil {
			// Partial output is still usable; the error is reported by
			// the caller's record-level BadCommand/BadOrder handling.
			return string(out)
		}
		return string(out)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = c.table[b]
	}
	return string(runes)
}

// Encode translates a single Unicode scalar to its EBCDIC byte. ok is
// false when r has no representation in this CCSID (the caller substitutes
// a blank, per the 5250 field-content fallback convention).
func (c *Codec) Encode(r rune) (b byte, ok bool) {
	if c.table != nil {
		b, ok = c.reverse[r]
		return b, ok
	}
	out, _, err := transform.Bytes(c.charEncoder, []byte(string(r)))
	if err != nil || len(out) != 1 {
		return 0x40, false // EBCDIC space
	}
	return out[0], true
}

// EncodeString translates a Unicode string to its EBCDIC byte form.
func (c *Codec) EncodeString(s string) []byte {
	if c.table == nil {
		out, _, err := transform.Bytes(c.charEncoder, []byte(s))
		if err != nil {
			return out
		}
		return out
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := c.reverse[r]
		if !ok {
			b = 0x40
		}
		out = append(out, b)
	}
	return out
}
