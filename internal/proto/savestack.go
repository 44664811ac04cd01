package proto

import (
	"github.com/ibm5250/tn5250/internal/field"
	"github.com/ibm5250/tn5250/internal/screen"
)

// maxSaveDepth bounds the combined save stack: push on a full stack is
// rejected with SaveStackOverflowError.
const maxSaveDepth = 10

type saveEntry struct {
	screen screen.Snapshot
	fields []field.Field
}

// SaveStack is the LIFO of (planes ∪ cursor ∪ fields ∪ error-state)
// snapshots Save Screen / Restore Screen push and pop. It composes
// screen.Snapshot and field.Table.Snapshot rather than letting either
// package know about the other.
type SaveStack struct {
	entries []saveEntry
}

// Push saves scr and tbl's current state. Pushing past maxSaveDepth
// returns SaveStackOverflowError and leaves the stack unchanged.
func (s *SaveStack) Push(scr screen.Ops, tbl *field.Table) error {
	if len(s.entries) >= maxSaveDepth {
		return &SaveStackOverflowError{Depth: len(s.entries)}
	}
	s.entries = append(s.entries, saveEntry{screen: scr.Snapshot(), fields: tbl.Snapshot()})
	return nil
}

// Pop restores the most recently saved state into scr and tbl, removing
// it from the stack. An empty stack returns SaveStackUnderflowError.
func (s *SaveStack) Pop(scr screen.Ops, tbl *field.Table) error {
	n := len(s.entries)
	if n == 0 {
		return &SaveStackUnderflowError{}
	}
	top := s.entries[n-1]
	s.entries = s.entries[:n-1]
	scr.RestoreFrom(top.screen)
	tbl.RestoreFrom(top.fields)
	return nil
}

// Depth reports how many entries are currently saved.
func (s *SaveStack) Depth() int { return len(s.entries) }

// Clear discards every saved entry (Clear Unit's effect on the stack).
func (s *SaveStack) Clear() { s.entries = nil }
