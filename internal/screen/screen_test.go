package screen

import "testing"

func TestClearUnitResetsEverything(t *testing.T) {
	s := New(Size24x80)
	pos, _ := s.RowCol(5, 5)
	s.SetChar(pos, 'Q')
	s.Inhibit(InhibitedProgCheck, "oops")
	s.MoveCursor(pos)

	s.ClearUnit()

	c, _ := s.CharAt(pos)
	if c != ' ' {
		t.Errorf("expected blank after ClearUnit, got %q", c)
	}
	if s.OIAState().Locked() {
		t.Error("expected keyboard unlocked after ClearUnit")
	}
	if s.CursorPos() != s.cursor.Home {
		t.Error("expected cursor reset to home after ClearUnit")
	}
}

func TestNewScreenIsBlank(t *testing.T) {
	s := New(Size27x132)
	if s.Size() != Size27x132 {
		t.Fatalf("Size() = %+v, want %+v", s.Size(), Size27x132)
	}
	pos, _ := s.RowCol(1, 1)
	c, _ := s.CharAt(pos)
	if c != ' ' {
		t.Errorf("expected new screen blank, got %q", c)
	}
}
