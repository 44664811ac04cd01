package input

import "github.com/ibm5250/tn5250/internal/screen"

// KeyboardState is the input engine's coarse view of whether it may
// accept data and navigation keys right now.
type KeyboardState int

const (
	Ready KeyboardState = iota
	Locked
	InhibitedSystemWait
	InhibitedErrorX
)

func (s KeyboardState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Locked:
		return "locked"
	case InhibitedSystemWait:
		return "inhibited-system-wait"
	case InhibitedErrorX:
		return "inhibited-error"
	default:
		return "unknown"
	}
}

// deriveState folds the screen's richer 5-way OIA.InhibitReason down to
// the engine's 4-state model: InhibitedSystemWait maps directly, and any
// of the three error inhibits (prog check, machine check, comm check)
// collapse to the single InhibitedErrorX catch-all, since the engine
// only needs to know "locked by an error" versus "locked waiting for the
// host" to decide how Reset behaves. locked is the engine's own post-
// AID-dispatch lock, which has no counterpart in screen.OIA.
func deriveState(locked bool, oia screen.OIA) KeyboardState {
	switch oia.Inhibited {
	case screen.InhibitedSystemWait:
		return InhibitedSystemWait
	case screen.InhibitedProgCheck, screen.InhibitedMachineCheck, screen.InhibitedCommCheck:
		return InhibitedErrorX
	}
	if locked {
		return Locked
	}
	return Ready
}
