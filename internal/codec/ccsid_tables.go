package codec

// baseTable holds the "invariant" EBCDIC layout shared by CCSID 37, 500,
// and their national variants: letters, digits, and most punctuation sit
// at the same byte position everywhere. Only a handful of "national use"
// positions (brackets, currency signs, accented letters) move between
// countries; those are supplied per-CCSID by nationalOverrides and
// applied on top of this table by buildTable.
//
// Bytes with no assigned graphic in this scheme keep a private-use
// placeholder (U+E000 + byte value) so every byte still round-trips
// through Decode(Encode(x)) even though it has no real-world glyph.
func baseTable() [256]rune {
	var t [256]rune
	for i := range t {
		t[i] = rune(0xE000 + i)
	}

	// Control codes actually exercised by a 5250 data stream.
	t[0x00] = 0x0000
	t[0x05] = '\t'
	t[0x0D] = '\r'
	t[0x15] = 0x0085 // NL (Unicode NEL)
	t[0x25] = '\n'   // LF
	t[0x40] = ' '

	// Lowercase a-i, j-r, s-z.
	fillRange(&t, 0x81, 'a', 9)
	fillRange(&t, 0x91, 'j', 9)
	fillRange(&t, 0xA2, 's', 8)

	// Uppercase A-I, J-R, S-Z.
	fillRange(&t, 0xC1, 'A', 9)
	fillRange(&t, 0xD1, 'J', 9)
	fillRange(&t, 0xE2, 'S', 8)

	// Digits.
	fillRange(&t, 0xF0, '0', 10)

	// Invariant punctuation (present at the same position for every
	// national variant this package builds).
	invariant := map[byte]rune{
		0x4B: '.', 0x4D: '(', 0x4E: '+',
		0x50: '&', 0x5C: '*', 0x5D: ')', 0x5E: ';',
		0x60: '-', 0x61: '/', 0x6B: ',', 0x6C: '%',
		0x6D: '_', 0x6E: '>', 0x6F: '?',
		0x79: '`', 0x7A: ':', 0x7D: '\'', 0x7E: '=',
	}
	for b, r := range invariant {
		t[b] = r
	}

	return t
}

func fillRange(t *[256]rune, start byte, startRune rune, count int) {
	for i := 0; i < count; i++ {
		t[int(start)+i] = startRune + rune(i)
	}
}

// nationalOverride is one byte position that differs between CCSIDs.
type nationalOverride struct {
	pos byte
	r   rune
}

// nationalOverrides lists, per CCSID, the "national use" byte positions
// that diverge from the base invariant layout. Values are the commonly
// documented substitutions for these positions (currency sign, brackets,
// accented letters); CCSIDs not listed here are served directly by
// golang.org/x/text/encoding/charmap instead (see New in ccsid.go).
var nationalOverrides = map[CCSID][]nationalOverride{
	CCSID500: {
		{0x4A, 0x00A2}, {0x4F, '!'}, {0x5A, ']'}, {0x5B, '$'},
		{0x5F, 0x00AC}, {0x7C, '@'}, {0x7F, '"'},
		{0xC0, '{'}, {0xD0, '}'}, {0xE0, '\\'},
	},
	CCSID273: { // Germany/Austria
		{0x4A, 0x00C4}, {0x4F, 0x00DC}, {0x5A, 0x00D6}, {0x5B, '$'},
		{0x5F, 0x00A7}, {0x7C, 0x00FC}, {0x7F, 0x00DF},
		{0xC0, 0x00E4}, {0xD0, 0x00F6}, {0xE0, '\\'},
	},
	CCSID277: { // Denmark/Norway
		{0x4A, 0x00C6}, {0x4F, 0x00C5}, {0x5A, 0x00D8}, {0x5B, '$'},
		{0x5F, 0x00A4}, {0x7C, 0x00E5}, {0x7F, 0x00E6},
		{0xC0, 0x00E4}, {0xD0, 0x00F8}, {0xE0, '\\'},
	},
	CCSID278: { // Finland/Sweden
		{0x4A, 0x00C4}, {0x4F, 0x00D6}, {0x5A, 0x00C5}, {0x5B, '$'},
		{0x5F, 0x00A4}, {0x7C, 0x00E9}, {0x7F, 0x00FC},
		{0xC0, 0x00E4}, {0xD0, 0x00F6}, {0xE0, '\\'},
	},
	CCSID280: { // Italy
		{0x4A, 0x00A7}, {0x4F, 0x00F9}, {0x5A, 0x00E0}, {0x5B, '$'},
		{0x5F, 0x00B0}, {0x7C, 0x00E9}, {0x7F, '"'},
		{0xC0, 0x00E8}, {0xD0, 0x00F2}, {0xE0, '\\'},
	},
	CCSID284: { // Spain/Latin America
		{0x4A, 0x00F1}, {0x4F, 0x00BF}, {0x5A, 0x00D1}, {0x5B, '$'},
		{0x5F, 0x00A8}, {0x7C, 0x00E9}, {0x7F, 0x00FC},
		{0xC0, 0x00E1}, {0xD0, 0x00F3}, {0xE0, '\\'},
	},
	CCSID285: { // United Kingdom
		{0x4A, 0x00A3}, {0x4F, '|'}, {0x5A, '!'}, {0x5B, '$'},
		{0x5F, 0x00AC}, {0x7C, '@'}, {0x7F, '"'},
		{0xC0, '{'}, {0xD0, '}'}, {0xE0, '\\'},
	},
	CCSID297: { // France
		{0x4A, 0x00B0}, {0x4F, 0x00A7}, {0x5A, '!'}, {0x5B, '$'},
		{0x5F, 0x00B5}, {0x7C, 0x00E9}, {0x7F, 0x00FC},
		{0xC0, 0x00E0}, {0xD0, 0x00F9}, {0xE0, '\\'},
	},
	CCSID871: { // Iceland
		{0x4A, 0x00D0}, {0x4F, 0x00DE}, {0x5A, 0x00C6}, {0x5B, '$'},
		{0x5F, 0x00A6}, {0x7C, 0x00FE}, {0x7F, 0x00F0},
		{0xC0, 0x00E6}, {0xD0, 0x00F6}, {0xE0, '\\'},
	},
	CCSID1026: { // Turkey
		{0x4A, 0x011E}, {0x4F, 0x0130}, {0x5A, 0x015E}, {0x5B, '$'},
		{0x5F, 0x00A7}, {0x7C, 0x00FC}, {0x7F, 0x0131},
		{0xC0, 0x00E7}, {0xD0, 0x00F6}, {0xE0, '\\'},
	},
}

// buildTable returns the base invariant layout with overrides applied.
func buildTable(overrides []nationalOverride) *[256]rune {
	t := baseTable()
	for _, o := range overrides {
		t[o.pos] = o.r
	}
	return &t
}
