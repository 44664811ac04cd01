package field

import "sort"

// Table is the ordered-by-start-position field table for one screen.
// Fields never overlap; declaring a new field at an
// existing start position replaces the prior field's flags in place.
type Table struct {
	fields []*Field
}

// NewTable returns an empty field table.
func NewTable() *Table { return &Table{} }

// AddField installs f, replacing any existing field whose Start matches
// (invariant (a): "a new-field declaration at an existing start position
// replaces the prior field's flags").
func (t *Table) AddField(f *Field) {
	for i, existing := range t.fields {
		if existing.Start == f.Start {
			t.fields[i] = f
			return
		}
	}
	t.fields = append(t.fields, f)
	sort.Slice(t.fields, func(i, j int) bool { return t.fields[i].Start < t.fields[j].Start })
}

// FindFieldAt returns the field governing pos, or nil if pos falls
// outside every field's content range.
func (t *Table) FindFieldAt(pos Pos) *Field {
	for _, f := range t.fields {
		if f.WithinField(pos) {
			return f
		}
	}
	return nil
}

// IndexOf returns f's position in table order, or -1 if not present.
func (t *Table) IndexOf(f *Field) int {
	for i, existing := range t.fields {
		if existing == f {
			return i
		}
	}
	return -1
}

// Next returns the next input field after pos in table order, honoring a
// field's CursorProgression override when set, wrapping to the first
// field past the end.
func (t *Table) Next(pos Pos) *Field {
	if len(t.fields) == 0 {
		return nil
	}
	cur := t.FindFieldAt(pos)
	idx := -1
	if cur != nil {
		idx = t.IndexOf(cur)
		if cur.CursorProgression > 0 && cur.CursorProgression <= len(t.fields) {
			return t.fields[cur.CursorProgression-1]
		}
	} else {
		for i, f := range t.fields {
			if f.Start > pos {
				idx = i - 1
				break
			}
		}
		if idx == -1 {
			idx = len(t.fields) - 1
		}
	}
	return t.fields[(idx+1)%len(t.fields)]
}

// Prev returns the previous input field before pos in table order,
// wrapping to the last field before the start.
func (t *Table) Prev(pos Pos) *Field {
	if len(t.fields) == 0 {
		return nil
	}
	cur := t.FindFieldAt(pos)
	idx := 0
	if cur != nil {
		idx = t.IndexOf(cur)
	} else {
		idx = 0
		for i, f := range t.fields {
			if f.Start < pos {
				idx = i + 1
			}
		}
	}
	return t.fields[(idx-1+len(t.fields))%len(t.fields)]
}

// First returns the first input field in table order, or nil if the
// table is empty (Home goes to the first field's start, or
// (1,1) if none).
func (t *Table) First() *Field {
	if len(t.fields) == 0 {
		return nil
	}
	return t.fields[0]
}

// CollectModified returns every field with its MDT set, in table order.
func (t *Table) CollectModified() []*Field {
	var out []*Field
	for _, f := range t.fields {
		if f.IsModified() {
			out = append(out, f)
		}
	}
	return out
}

// CollectAll returns every field in table order.
func (t *Table) CollectAll() []*Field {
	out := make([]*Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// ClearAll empties the table (Clear Unit, Clear Format Table).
func (t *Table) ClearAll() { t.fields = nil }

// Snapshot returns a deep copy of every field in the table, for the
// combined screen+field save stack internal/proto maintains.
func (t *Table) Snapshot() []Field {
	out := make([]Field, len(t.fields))
	for i, f := range t.fields {
		out[i] = *f
		out[i].content = make([]rune, len(f.content))
		copy(out[i].content, f.content)
	}
	return out
}

// RestoreFrom replaces the table's contents with a snapshot taken by Snapshot.
func (t *Table) RestoreFrom(snap []Field) {
	t.fields = make([]*Field, len(snap))
	for i := range snap {
		f := snap[i]
		t.fields[i] = &f
	}
}

// ClearMDT clears every field's MDT without touching content (Reset MDT).
func (t *Table) ClearMDT() {
	for _, f := range t.fields {
		f.SetModified(false)
	}
}

// Len reports how many fields the table holds.
func (t *Table) Len() int { return len(t.fields) }
