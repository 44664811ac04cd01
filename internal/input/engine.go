// Package input turns raw key events into field edits, cursor motion,
// and outbound AID responses against a screen.Ops/field.Table pair,
// grounded on racingmars-go3270's keyboard-handling loop but reworked
// around this module's explicit-collaborator pattern rather than a
// single monolithic terminal object.
package input

import (
	"github.com/ibm5250/tn5250/internal/codec"
	"github.com/ibm5250/tn5250/internal/field"
	"github.com/ibm5250/tn5250/internal/outbound"
	"github.com/ibm5250/tn5250/internal/screen"
)

// Engine holds no state of its own beyond what the state machine needs
// (the post-AID-dispatch lock); the screen and field table it was built
// with remain the source of truth for cursor position and content.
type Engine struct {
	scr   screen.Ops
	tbl   *field.Table
	codec *codec.Codec

	locked bool

	// StrictAlpha selects AdmitChar's alpha-field behavior (an open
	// question this module resolves via configuration): true rejects
	// non-letters in alpha fields, false admits any printable character.
	StrictAlpha bool

	// Format and Mode configure the outbound response HandleAID builds.
	Format outbound.Format
	Mode   outbound.CollectionMode

	pendingAID    outbound.AID
	hasPendingAID bool
}

// NewEngine builds an Engine over scr and tbl. Callers own the codec
// only insofar as outbound.BuildResponse needs one to encode field text.
func NewEngine(scr screen.Ops, tbl *field.Table, c *codec.Codec) *Engine {
	return &Engine{
		scr:         scr,
		tbl:         tbl,
		codec:       c,
		StrictAlpha: true,
		Format:      outbound.FormatLong,
		Mode:        outbound.CollectModified,
	}
}

// State reports the engine's current keyboard state.
func (e *Engine) State() KeyboardState {
	return deriveState(e.locked, e.scr.OIAState())
}

// Unlock clears both the engine's own lock and any screen inhibit, the
// effect an inbound command that requests input has: any such command
// returns the keyboard to Ready.
func (e *Engine) Unlock() {
	e.locked = false
	e.scr.ClearInhibit()
}

// Lock marks the keyboard inhibited for reason with message, the effect
// of an inbound error order (Write Error Code, a malformed stream).
func (e *Engine) Lock(reason screen.InhibitReason, message string) {
	e.scr.Inhibit(reason, message)
}

// Reset handles the Reset key: it returns the keyboard to Ready unless
// the host currently holds a system-wait inhibit, which only the host
// can clear.
func (e *Engine) Reset() {
	if e.scr.OIAState().Inhibited == screen.InhibitedSystemWait {
		return
	}
	e.locked = false
	e.scr.ClearInhibit()
}

// TakePendingAID drains the Enter AID an auto-enter field edit queued,
// if any.
func (e *Engine) TakePendingAID() (outbound.AID, bool) {
	if !e.hasPendingAID {
		return 0, false
	}
	a := e.pendingAID
	e.hasPendingAID = false
	return a, true
}

// HandleDataKey processes one character typed at the current cursor
// position.
func (e *Engine) HandleDataKey(r rune) error {
	if e.State() != Ready {
		return ErrKeyboardLocked
	}
	pos := e.scr.CursorPos()
	f := e.tbl.FindFieldAt(pos)
	if f == nil || f.IsBypass() {
		return &FieldRejectedError{Reason: ReasonBypass}
	}
	offset := int(pos - f.StartPos())
	if !f.AdmitChar(r, offset, e.StrictAlpha) {
		return &FieldRejectedError{Reason: ReasonInvalidChar}
	}
	r = f.NormalizeChar(r)

	if e.scr.OIAState().InsertMode {
		shiftedOut := f.CharAt(f.Len - 1)
		for i := f.Len - 1; i > offset; i-- {
			f.SetCharAt(i, f.CharAt(i-1))
		}
		f.SetCharAt(offset, r)
		if shiftedOut != ' ' {
			e.locked = true
			e.scr.Inhibit(screen.InhibitedProgCheck, "insert overflow")
			return &InsertOverflowError{}
		}
	} else {
		f.SetCharAt(offset, r)
	}
	f.SetModified(true)

	next := f.NextChar(offset)
	if next == -1 {
		if f.IsAutoEnter() {
			e.pendingAID = outbound.AIDEnter
			e.hasPendingAID = true
		}
		if f.IsFER() {
			e.locked = true
		}
		return nil
	}
	return e.scr.MoveCursor(f.StartPos() + field.Pos(next))
}

// HandleCursorMotion moves the cursor one cell in direction d, wrapping
// at screen edges: left from column 1 goes to the previous row's last
// column, wrapping row too at the top edge; the same logic mirrors for
// right/down.
func (e *Engine) HandleCursorMotion(d Direction) error {
	if e.State() != Ready {
		return ErrKeyboardLocked
	}
	size := e.scr.Size()
	row, col := e.scr.CursorRowCol()
	switch d {
	case DirUp:
		row--
		if row < 1 {
			row = size.Rows
		}
	case DirDown:
		row++
		if row > size.Rows {
			row = 1
		}
	case DirLeft:
		col--
		if col < 1 {
			col = size.Cols
			row--
			if row < 1 {
				row = size.Rows
			}
		}
	case DirRight:
		col++
		if col > size.Cols {
			col = 1
			row++
			if row > size.Rows {
				row = 1
			}
		}
	}
	return e.scr.MoveCursor(e.scr.ClampRowCol(row, col))
}

// HandleTab moves to the next input field, honoring cursor-progression.
func (e *Engine) HandleTab() error {
	if e.State() != Ready {
		return ErrKeyboardLocked
	}
	f := e.tbl.Next(e.scr.CursorPos())
	if f == nil {
		return nil
	}
	return e.scr.MoveCursor(f.StartPos())
}

// HandleShiftTab moves to the previous input field.
func (e *Engine) HandleShiftTab() error {
	if e.State() != Ready {
		return ErrKeyboardLocked
	}
	f := e.tbl.Prev(e.scr.CursorPos())
	if f == nil {
		return nil
	}
	return e.scr.MoveCursor(f.StartPos())
}

// HandleHome moves to the first input field's start, or (1,1) if the
// table holds no fields.
func (e *Engine) HandleHome() error {
	if e.State() != Ready {
		return ErrKeyboardLocked
	}
	f := e.tbl.First()
	if f == nil {
		pos, err := e.scr.RowCol(1, 1)
		if err != nil {
			return err
		}
		return e.scr.MoveCursor(pos)
	}
	return e.scr.MoveCursor(f.StartPos())
}

// HandleFieldExit blank-fills the remainder of the governing field, sets
// its MDT, and advances to the next field. It is the designated escape
// from an FER lock, so unlike the other navigation handlers it runs
// whenever the keyboard isn't inhibited by the host or an error — a
// plain post-AID Locked state does not block it.
func (e *Engine) HandleFieldExit() error {
	switch e.State() {
	case InhibitedSystemWait, InhibitedErrorX:
		return ErrKeyboardLocked
	}
	pos := e.scr.CursorPos()
	f := e.tbl.FindFieldAt(pos)
	if f == nil {
		return &FieldRejectedError{Reason: ReasonBypass}
	}
	offset := int(pos - f.StartPos())
	f.FillFromAttribute(offset, ' ')
	e.locked = false

	if next := e.tbl.Next(pos); next != nil {
		return e.scr.MoveCursor(next.StartPos())
	}
	return nil
}

// HandleAID builds the outbound response for aid and locks the keyboard
// pending the host's next command: a successful AID dispatch always
// locks.
func (e *Engine) HandleAID(aid outbound.AID) ([]byte, error) {
	if e.State() != Ready {
		return nil, ErrKeyboardLocked
	}
	body := outbound.BuildResponse(aid, e.Format, e.Mode, e.scr, e.tbl, e.codec)
	e.locked = true
	return body, nil
}

// Dispatch routes one Key event to the matching handler. AID responses,
// when produced, are returned as the second value; callers that don't
// need the routed form can call the Handle* methods directly instead.
func (e *Engine) Dispatch(k Key) ([]byte, error) {
	switch {
	case k.IsReset:
		e.Reset()
		return nil, nil
	case k.IsRune:
		return nil, e.HandleDataKey(k.Rune)
	case k.IsMotion:
		return nil, e.HandleCursorMotion(k.Motion)
	case k.IsNav:
		switch k.Nav {
		case NavTab:
			return nil, e.HandleTab()
		case NavShiftTab:
			return nil, e.HandleShiftTab()
		case NavHome:
			return nil, e.HandleHome()
		case NavFieldExit:
			return nil, e.HandleFieldExit()
		}
		return nil, nil
	case k.IsAID:
		return e.HandleAID(k.AID)
	default:
		return nil, nil
	}
}
