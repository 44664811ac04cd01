package codec

// Graphic escape characters used by the order dispatcher and field table:
// DUP and FIELD MARK occupy a screen position but are not ordinary EBCDIC
// text, so they get their own display glyphs independent of any CCSID.
const (
	EBCDICDup       byte = 0x1C // DUP key glyph, displays as '*'
	EBCDICFieldMark byte = 0x1E // FIELD MARK glyph, displays as ';'
)

// GraphicGlyph returns the display rune for a 5250 graphic-escape byte and
// reports whether b is one of them. Field.FillFromAttribute fills a
// dup-enabled field with whatever rune its caller passes (the input
// engine passes field.DupMarker, '*', the glyph EBCDICDup displays as);
// these glyphs never go through a CCSID table.
func GraphicGlyph(b byte) (rune, bool) {
	switch b {
	case EBCDICDup:
		return '*', true
	case EBCDICFieldMark:
		return ';', true
	default:
		return 0, false
	}
}
