package screen

// InhibitReason is why keyboard input is currently inhibited, displayed by
// a real 5250 emulator in the Operator Information Area.
type InhibitReason int

const (
	NotInhibited InhibitReason = iota
	InhibitedSystemWait                 // host is processing; keyboard locked until it responds
	InhibitedProgCheck                  // a field-level input error; cursor parked on the offending field
	InhibitedMachineCheck               // an internal consistency error (malformed inbound order, etc.)
	InhibitedCommCheck                  // a transport-level error occurred
)

// OIA models the Operator Information Area state a terminal tracks
// alongside the display buffer: keyboard lock, why it's locked, insert
// mode, and the one-line message an error condition attaches.
type OIA struct {
	Inhibited  InhibitReason
	InsertMode bool
	Message    string
}

func newOIA() OIA { return OIA{Inhibited: NotInhibited} }

// Locked reports whether the keyboard is currently inhibited for any reason.
func (o OIA) Locked() bool { return o.Inhibited != NotInhibited }

// Inhibit locks the keyboard for the given reason and attaches a message
// (e.g. the decoded Write Error Code text). A locked keyboard still
// accepts programmatic screen mutations from inbound orders — only
// data-entry input is rejected.
func (s *Screen) Inhibit(reason InhibitReason, message string) {
	s.oia.Inhibited = reason
	s.oia.Message = message
	s.SetCursorVisible(reason != InhibitedSystemWait)
}

// ClearInhibit unlocks the keyboard. The input engine calls it for the
// Reset key and when a Read Input/Read MDT request unlocks input, and
// outbound.ClearErrorState calls it; Clear Unit resets the OIA directly.
func (s *Screen) ClearInhibit() {
	s.oia.Inhibited = NotInhibited
	s.oia.Message = ""
	s.SetCursorVisible(true)
}

// OIAState returns a copy of the current OIA.
func (s *Screen) OIAState() OIA { return s.oia }

// SetInsertMode toggles the insert/overwrite indicator the input engine
// drives from the Insert key.
func (s *Screen) SetInsertMode(v bool) { s.oia.InsertMode = v }
