// Package screen models the 5250 display buffer: the parallel char/attr/
// color planes, cursor, Operator Information Area, the error-line save
// slot, and the snapshots internal/proto's Save Screen stack is built
// from. It owns no protocol parsing and no network I/O — the order
// dispatcher in internal/proto drives it one bounds-checked call at a
// time, the way racingmars-go3270's screen.go keeps buffer state separate
// from the wire format that fills it.
package screen

// Screen is one terminal's complete display state for one screen size.
// It is not safe for concurrent use; the session controller serializes
// access to it the same way it serializes access to the field table.
type Screen struct {
	planes Planes
	cursor Cursor
	oia    OIA

	errorLine *errorLineSave
}

// New creates a blank Screen of the given size, cursor at home, keyboard
// unlocked.
func New(size Size) *Screen {
	s := &Screen{
		planes: newPlanes(size),
		cursor: newCursor(),
		oia:    newOIA(),
	}
	s.planes.fillBlank()
	return s
}

// Size returns the screen's row/column geometry.
func (s *Screen) Size() Size { return s.planes.Size() }

// RowCol converts 1-based row/col into a Pos, erroring if out of range.
func (s *Screen) RowCol(row, col int) (Pos, error) { return s.planes.RowCol(row, col) }

// ClampRowCol converts 1-based row/col into a Pos, clamping into range
// instead of erroring (the SBA order's documented behavior).
func (s *Screen) ClampRowCol(row, col int) Pos { return s.planes.ClampRowCol(row, col) }

// ToRowCol converts a Pos back to 1-based row/col.
func (s *Screen) ToRowCol(pos Pos) (row, col int) { return s.planes.ToRowCol(pos) }

// CharAt, SetChar, AttrAt, IsAttr, SetAttribute, ColorAt, GUIHintAt,
// ExtendedAt, SetExtended, Dirty, ClearDirty, DirtyPositions, FillRange,
// and EraseRange all delegate to the underlying Planes; Screen adds
// cursor/OIA/error-line state on top.
func (s *Screen) CharAt(pos Pos) (rune, error)          { return s.planes.CharAt(pos) }
func (s *Screen) SetChar(pos Pos, r rune) error         { return s.planes.SetChar(pos, r) }
func (s *Screen) AttrAt(pos Pos) (byte, error)          { return s.planes.AttrAt(pos) }
func (s *Screen) IsAttr(pos Pos) (bool, error)          { return s.planes.IsAttr(pos) }
func (s *Screen) SetAttribute(pos Pos, code byte) error { return s.planes.SetAttribute(pos, code) }
func (s *Screen) ColorAt(pos Pos) (Color, error)        { return s.planes.ColorAt(pos) }
func (s *Screen) GUIHintAt(pos Pos) (GUIHint, error)    { return s.planes.GUIHintAt(pos) }
func (s *Screen) ExtendedAt(pos Pos) (byte, error)      { return s.planes.ExtendedAt(pos) }
func (s *Screen) SetExtended(pos Pos, b byte) error     { return s.planes.SetExtended(pos, b) }
func (s *Screen) Dirty(pos Pos) (bool, error)           { return s.planes.Dirty(pos) }
func (s *Screen) ClearDirty()                           { s.planes.ClearDirty() }
func (s *Screen) DirtyPositions() []Pos                 { return s.planes.DirtyPositions() }
func (s *Screen) FillRange(from, to Pos, r rune) error  { return s.planes.FillRange(from, to, r) }
func (s *Screen) EraseRange(from, to Pos) error         { return s.planes.EraseRange(from, to) }

// ClearUnit resets the screen to its power-on state: blank planes, cursor
// at home, keyboard unlocked, error-line slot discarded (Open Question
// decision: Clear Unit fully resets SOH header state too, tracked by
// internal/proto which owns that state, not this package).
func (s *Screen) ClearUnit() {
	s.planes.fillBlank()
	s.planes.ClearDirty()
	s.cursor = newCursor()
	s.oia = newOIA()
	s.errorLine = nil
}
