package screen

// Cursor is the screen's insertion point, its visibility, and the Home
// position the protocol remembers alongside it (set by Insert Cursor).
type Cursor struct {
	Pos     Pos
	Visible bool
	Home    Pos
}

func newCursor() Cursor {
	return Cursor{Pos: 0, Visible: true, Home: 0}
}

// MoveCursor moves the cursor to pos, bounds-checked against size.
func (s *Screen) MoveCursor(pos Pos) error {
	if err := s.planes.valid(pos); err != nil {
		return err
	}
	s.cursor.Pos = pos
	return nil
}

// SetHome records pos as the home position an Insert Cursor order without
// an explicit address returns to.
func (s *Screen) SetHome(pos Pos) error {
	if err := s.planes.valid(pos); err != nil {
		return err
	}
	s.cursor.Home = pos
	return nil
}

// CursorPos returns the current cursor position.
func (s *Screen) CursorPos() Pos { return s.cursor.Pos }

// CursorRowCol returns the current cursor position as 1-based row/col.
func (s *Screen) CursorRowCol() (row, col int) { return s.planes.ToRowCol(s.cursor.Pos) }

// SetCursorVisible toggles whether the cursor should be rendered, driven
// by the keyboard-lock / inhibited states in the OIA.
func (s *Screen) SetCursorVisible(v bool) { s.cursor.Visible = v }

// CursorVisible reports the current visibility.
func (s *Screen) CursorVisible() bool { return s.cursor.Visible }
