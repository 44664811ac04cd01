package field

import "testing"

func TestAddFieldReplacesAtSameStart(t *testing.T) {
	tbl := NewTable()
	tbl.AddField(NewField(10, 5, 0, 0, 0, 0, 9, 0x20))
	tbl.AddField(NewField(10, 8, byte(ShiftNumeric), 0, 0, 0, 9, 0x20))
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 field after replace, got %d", tbl.Len())
	}
	f := tbl.FindFieldAt(10)
	if f.Len != 8 || !f.IsNumeric() {
		t.Errorf("expected replaced field, got %+v", f)
	}
}

func TestFindFieldAtOutsideAnyField(t *testing.T) {
	tbl := NewTable()
	tbl.AddField(NewField(10, 5, 0, 0, 0, 0, 9, 0x20))
	if tbl.FindFieldAt(3) != nil {
		t.Error("expected nil outside any field")
	}
}

func TestNextWrapsAround(t *testing.T) {
	tbl := NewTable()
	a := NewField(0, 5, 0, 0, 0, 0, 0, 0x20)
	b := NewField(10, 5, 0, 0, 0, 0, 9, 0x20)
	tbl.AddField(a)
	tbl.AddField(b)
	if tbl.Next(12) != a {
		t.Error("expected Next to wrap from last field back to first")
	}
	if tbl.Prev(2) != b {
		t.Error("expected Prev to wrap from first field back to last")
	}
}

func TestCollectModifiedOnlyModified(t *testing.T) {
	tbl := NewTable()
	a := NewField(0, 5, 0, 0, 0, 0, 0, 0x20)
	b := NewField(10, 5, 0, 0, 0, 0, 9, 0x20)
	tbl.AddField(a)
	tbl.AddField(b)
	b.SetCharAt(0, 'X')
	mod := tbl.CollectModified()
	if len(mod) != 1 || mod[0] != b {
		t.Errorf("expected only b modified, got %+v", mod)
	}
	all := tbl.CollectAll()
	if len(all) != 2 {
		t.Errorf("expected 2 fields in CollectAll, got %d", len(all))
	}
}

func TestClearAllEmptiesTable(t *testing.T) {
	tbl := NewTable()
	tbl.AddField(NewField(0, 5, 0, 0, 0, 0, 0, 0x20))
	tbl.ClearAll()
	if tbl.Len() != 0 {
		t.Error("expected empty table after ClearAll")
	}
}

func TestCursorProgressionOverride(t *testing.T) {
	tbl := NewTable()
	a := NewField(0, 5, 0, 0, 0, 0, 0, 0x20)
	b := NewField(10, 5, 0, 0, 0, 0, 9, 0x20)
	c := NewField(20, 5, 0, 0, 0, 0, 19, 0x20)
	a.CursorProgression = 3 // jump straight to c, table index 3 (1-based)
	tbl.AddField(a)
	tbl.AddField(b)
	tbl.AddField(c)
	if tbl.Next(2) != c {
		t.Error("expected CursorProgression override to send Next straight to c")
	}
}
