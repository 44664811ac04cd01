package screen

// Snapshot is a deep copy of a screen's planes, cursor, and OIA — the
// screen-side half of what Save Screen / Restore Screen move onto a LIFO
// of captured (planes ∪ cursor ∪ fields ∪ error-state) snapshots. The
// field-table half lives in internal/field; internal/proto's
// dispatcher owns the combined LIFO and the per-field snapshot so that
// this package never needs to import the field table.
type Snapshot struct {
	planes Planes
	cursor Cursor
	oia    OIA
}

func (p Planes) clone() Planes {
	c := newPlanes(p.size)
	copy(c.char, p.char)
	copy(c.attr, p.attr)
	copy(c.isAttr, p.isAttr)
	copy(c.extended, p.extended)
	copy(c.color, p.color)
	copy(c.guiHint, p.guiHint)
	copy(c.dirty, p.dirty)
	return c
}

// Snapshot captures the current screen state.
func (s *Screen) Snapshot() Snapshot {
	return Snapshot{planes: s.planes.clone(), cursor: s.cursor, oia: s.oia}
}

// RestoreFrom replaces the current screen state with snap.
func (s *Screen) RestoreFrom(snap Snapshot) {
	s.planes = snap.planes
	s.cursor = snap.cursor
	s.oia = snap.oia
}

// SaveErrorLine captures the given row (1-based) into the separate
// error-line slot used by Write Error Code. A second call before
// RestoreErrorLine is a no-op — the first save wins, since only one
// error line is ever outstanding at a time.
func (s *Screen) SaveErrorLine(row int) error {
	if s.errorLine != nil {
		return nil
	}
	from, err := s.planes.RowCol(row, 1)
	if err != nil {
		return err
	}
	to, err := s.planes.RowCol(row, s.planes.size.Cols)
	if err != nil {
		return err
	}
	line := make([]rune, 0, s.planes.size.Cols)
	for p := from; p <= to; p++ {
		c, _ := s.planes.CharAt(p)
		line = append(line, c)
	}
	s.errorLine = &errorLineSave{row: row, chars: line}
	return nil
}

// DiscardErrorLine clears the saved error-line slot without writing it
// back, the effect emitting an AID response has on it: it discards the
// saved error line rather than restoring it.
func (s *Screen) DiscardErrorLine() { s.errorLine = nil }

type errorLineSave struct {
	row   int
	chars []rune
}

// RestoreErrorLine writes the saved error line back and clears the slot.
// Calling it twice in a row without an intervening SaveErrorLine is a
// no-op the second time, matching how a host that issues a redundant
// restore expects the prior content to already be in place.
func (s *Screen) RestoreErrorLine() error {
	if s.errorLine == nil {
		return nil
	}
	from, err := s.planes.RowCol(s.errorLine.row, 1)
	if err != nil {
		return err
	}
	for i, r := range s.errorLine.chars {
		_ = s.planes.SetChar(from+Pos(i), r)
	}
	s.errorLine = nil
	return nil
}
