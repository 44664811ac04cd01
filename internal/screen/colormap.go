package screen

// Color is the logical 5250 display color a renderer maps to whatever
// palette it wants; this package never picks RGB values — color mapping
// beyond the logical attribute is an external collaborator.
type Color int

const (
	ColorGreen Color = iota
	ColorWhite
	ColorRed
	ColorTurquoise
	ColorYellow
	ColorPink
	ColorBlue
	ColorNone // non-display: no color, cell renders as blank regardless of char
)

// GUIHint carries the modifier bits a renderer needs beyond color:
// reverse image, underline, blink, and non-display.
type GUIHint struct {
	Reverse    bool
	Underline  bool
	Blink      bool
	NonDisplay bool
}

// attrEntry is one row of the fixed attribute-code table. CCSID 37's
// mapping is fixed here per an open-question decision recorded in
// DESIGN.md; other code pages would need their own table, which this
// module does not ship.
type attrEntry struct {
	color Color
	hint  GUIHint
}

// attrTable covers 5250 attribute codes 0x20-0x3F (32 entries); bit 0x01
// is reverse image and bit 0x04 is underline within each color group,
// bit 0x08 selects the red/pink/blue groups, and 0x38 and 0x3F are
// non-display.
var attrTable = [32]attrEntry{
	0x00: {ColorGreen, GUIHint{}},
	0x01: {ColorGreen, GUIHint{Reverse: true}},
	0x02: {ColorWhite, GUIHint{}},
	0x03: {ColorWhite, GUIHint{Reverse: true}},
	0x04: {ColorGreen, GUIHint{Underline: true}},
	0x05: {ColorGreen, GUIHint{Underline: true, Reverse: true}},
	0x06: {ColorWhite, GUIHint{Underline: true}},
	0x07: {ColorWhite, GUIHint{Underline: true, Reverse: true}},
	0x08: {ColorRed, GUIHint{}},
	0x09: {ColorRed, GUIHint{Reverse: true}},
	0x0A: {ColorRed, GUIHint{Blink: true}},
	0x0B: {ColorRed, GUIHint{Blink: true, Reverse: true}},
	0x0C: {ColorRed, GUIHint{Underline: true}},
	0x0D: {ColorRed, GUIHint{Underline: true, Reverse: true}},
	0x0E: {ColorRed, GUIHint{Underline: true, Blink: true}},
	0x0F: {ColorRed, GUIHint{Underline: true, Blink: true, Reverse: true}},
	0x10: {ColorTurquoise, GUIHint{}},
	0x11: {ColorTurquoise, GUIHint{Reverse: true}},
	0x12: {ColorYellow, GUIHint{}},
	0x13: {ColorYellow, GUIHint{Reverse: true}},
	0x14: {ColorTurquoise, GUIHint{Underline: true}},
	0x15: {ColorTurquoise, GUIHint{Underline: true, Reverse: true}},
	0x16: {ColorYellow, GUIHint{Underline: true}},
	0x17: {ColorYellow, GUIHint{Underline: true, Reverse: true}},
	0x18: {ColorPink, GUIHint{NonDisplay: true}}, // 0x38: pink, non-display
	0x19: {ColorPink, GUIHint{Reverse: true}},
	0x1A: {ColorBlue, GUIHint{}},
	0x1B: {ColorBlue, GUIHint{Reverse: true}},
	0x1C: {ColorPink, GUIHint{Underline: true}},
	0x1D: {ColorPink, GUIHint{Underline: true, Reverse: true}},
	0x1E: {ColorBlue, GUIHint{Underline: true}},
	0x1F: {ColorNone, GUIHint{NonDisplay: true}}, // 0x3F: -, non-display
}

// deriveColorAndHint maps a 6-bit 5250 attribute code to its logical
// color and modifier bits. Codes outside 0x20-0x3F (Start Field passes
// its attribute byte masked to 6 bits without a range check, so 0x00-0x1F
// can arrive here) fall back to green/normal.
func deriveColorAndHint(code byte) (Color, GUIHint) {
	if code < 0x20 || code > 0x3F {
		return ColorGreen, GUIHint{}
	}
	e := attrTable[code-0x20]
	return e.color, e.hint
}
