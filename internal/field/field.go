// Package field models the 5250 field table: the ordered set of input
// fields a Start Field order declares on top of the screen buffer, their
// format/control word flags, and the per-field content operations the
// input engine and outbound builder drive. It takes screen.Ops as an
// explicit parameter wherever it needs to touch the buffer rather than
// embedding or subclassing a screen type, the same capability-interface
// pattern used throughout this module, grounded on racingmars-go3270's
// plain Field struct.
package field

import "github.com/ibm5250/tn5250/internal/screen"

// Shift is the field's FFW1 shift-edit category.
type Shift int

const (
	ShiftAlpha         Shift = 0
	ShiftAlphaOnly     Shift = 1
	ShiftIOAlphaShift  Shift = 2
	ShiftNumeric       Shift = 3
	ShiftNumericBlank  Shift = 4
	ShiftDigitsOnly    Shift = 5
	ShiftIONumericOnly Shift = 6
	ShiftSignedNumeric Shift = 7
)

// Field is one entry in the field table: its position, length, format/
// control words, and live content. Content is stored as runes (post-
// EBCDIC-translation) so the field table never needs a codec dependency.
type Field struct {
	Start Pos // position of the first data cell, one past the attribute byte
	Len   int

	FFW1, FFW2 byte
	FCW1, FCW2 byte

	AttrPos screen.Pos // the attribute byte's own position, preceding Start
	AttrCode byte

	content  []rune
	modified bool

	// ContinuedFirst/Middle/Last mark links in a continued-field chain
	// spanning more than one Start Field declaration.
	ContinuedFirst, ContinuedMiddle, ContinuedLast bool
	// CursorProgression is the 1-based table index of the field the
	// cursor advances to next, or 0 for natural (table) order.
	CursorProgression int
}

// Pos aliases screen.Pos so callers never need to import screen just to
// name a field's start.
type Pos = screen.Pos

// NewField constructs a field with blank content sized to length.
func NewField(start Pos, length int, ffw1, ffw2, fcw1, fcw2 byte, attrPos screen.Pos, attrCode byte) *Field {
	f := &Field{
		Start:    start,
		Len:      length,
		FFW1:     ffw1,
		FFW2:     ffw2,
		FCW1:     fcw1,
		FCW2:     fcw2,
		AttrPos:  attrPos,
		AttrCode: attrCode,
		content:  make([]rune, length),
	}
	for i := range f.content {
		f.content[i] = ' '
	}
	return f
}

// Shift returns the field's edit shift, FFW1 bits 0-2.
func (f *Field) Shift() Shift { return Shift(f.FFW1 & 0x07) }

// IsNumeric reports a plain numeric-shift field.
func (f *Field) IsNumeric() bool { return f.Shift() == ShiftNumeric }

// IsSignedNumeric reports a signed-numeric-shift field.
func (f *Field) IsSignedNumeric() bool { return f.Shift() == ShiftSignedNumeric }

// IsRightToLeft reports the right-to-left display bit, FFW1 bit 2 (0x04),
// regardless of the rest of the shift bits.
func (f *Field) IsRightToLeft() bool { return f.FFW1&0x04 != 0 }

// FFW1 bit layout (bits counted from the low end, bit 0 = 0x01):
//
//	0-2  shift/edit category
//	3    bypass
//	4    dup-enable
//	5    auto-enter
//	6    FER (field exit required)
//	7    monocase (to-upper)
const (
	ffw1Bypass    byte = 0x08
	ffw1DupEnable byte = 0x10
	ffw1AutoEnter byte = 0x20
	ffw1FER       byte = 0x40
	ffw1ToUpper   byte = 0x80
)

// FFW2 bit layout:
//
//	0    mandatory-enter (MDT required before Enter is accepted)
//	1    mandatory-fill (must be filled end to end)
const (
	ffw2Mandatory     byte = 0x01
	ffw2MandatoryFill byte = 0x02
)

func (f *Field) IsBypass() bool    { return f.FFW1&ffw1Bypass != 0 }
func (f *Field) IsDupEnabled() bool { return f.FFW1&ffw1DupEnable != 0 }
func (f *Field) IsAutoEnter() bool { return f.FFW1&ffw1AutoEnter != 0 }
func (f *Field) IsFER() bool       { return f.FFW1&ffw1FER != 0 }
func (f *Field) IsToUpper() bool   { return f.FFW1&ffw1ToUpper != 0 }
func (f *Field) IsMandatory() bool { return f.FFW2&ffw2Mandatory != 0 }
func (f *Field) IsMandatoryFill() bool { return f.FFW2&ffw2MandatoryFill != 0 }

// FCW1 bit 7 set marks this field as a link in a continued-field chain;
// bits 0-6 hold the continuation role, kept as the explicit booleans above
// rather than re-derived on every call.
const fcw1Continued byte = 0x80

func (f *Field) IsContinued() bool { return f.FCW1&fcw1Continued != 0 }

// StartPos and EndPos return the field's first and last content positions.
func (f *Field) StartPos() Pos { return f.Start }
func (f *Field) EndPos() Pos   { return f.Start + Pos(f.Len) - 1 }

// WithinField reports whether pos falls within this field's content range.
func (f *Field) WithinField(pos Pos) bool {
	return pos >= f.StartPos() && pos <= f.EndPos()
}

// IsModified reports whether the field's MDT (modified data tag) is set.
func (f *Field) IsModified() bool { return f.modified }

// SetModified sets or clears the field's MDT directly (used by Reset MDT
// Fields and by the input engine after a successful edit).
func (f *Field) SetModified(v bool) { f.modified = v }

// GetText returns the field's content, always padded to Len with spaces.
func (f *Field) GetText() string { return string(f.content) }

// SetString writes s into the field starting at offset 0, truncating
// silently if s is longer than the field.
func (f *Field) SetString(s string) {
	r := []rune(s)
	n := copy(f.content, r)
	for i := n; i < len(f.content); i++ {
		f.content[i] = ' '
	}
	f.modified = true
}

// Resize changes the field's length in place, truncating content or
// padding it with spaces as needed. The field table's owner uses this to
// correct a field's length once a later Start Field order (or the end of
// the buffer) reveals where the field actually ends.
func (f *Field) Resize(newLen int) {
	if newLen < 0 {
		newLen = 0
	}
	if newLen == f.Len {
		return
	}
	content := make([]rune, newLen)
	n := copy(content, f.content)
	for i := n; i < newLen; i++ {
		content[i] = ' '
	}
	f.content = content
	f.Len = newLen
}

// ClearContent blanks the field without touching its MDT.
func (f *Field) ClearContent() {
	for i := range f.content {
		f.content[i] = ' '
	}
}

// FillFromAttribute fills the remainder of the field with r from offset
// onward — the Dup/Field-Fill key's effect.
func (f *Field) FillFromAttribute(offset int, r rune) {
	for i := offset; i < len(f.content); i++ {
		f.content[i] = r
	}
	f.modified = true
}

// CharAt returns the rune at a field-relative offset (0-based).
func (f *Field) CharAt(offset int) rune {
	if offset < 0 || offset >= len(f.content) {
		return ' '
	}
	return f.content[offset]
}

// SetCharAt writes a single rune at a field-relative offset.
func (f *Field) SetCharAt(offset int, r rune) {
	if offset < 0 || offset >= len(f.content) {
		return
	}
	f.content[offset] = r
	f.modified = true
}

// NextChar and PrevChar return the field-relative offset one position
// forward/back from offset, or -1 if that would leave the field.
func (f *Field) NextChar(offset int) int {
	if offset+1 >= len(f.content) {
		return -1
	}
	return offset + 1
}

func (f *Field) PrevChar(offset int) int {
	if offset-1 < 0 {
		return -1
	}
	return offset - 1
}
