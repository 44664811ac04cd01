package input

import (
	"testing"

	"github.com/ibm5250/tn5250/internal/screen"
)

func TestDeriveStateReady(t *testing.T) {
	if got := deriveState(false, screen.OIA{Inhibited: screen.NotInhibited}); got != Ready {
		t.Errorf("got %v, want Ready", got)
	}
}

func TestDeriveStateLocked(t *testing.T) {
	if got := deriveState(true, screen.OIA{Inhibited: screen.NotInhibited}); got != Locked {
		t.Errorf("got %v, want Locked", got)
	}
}

func TestDeriveStateSystemWait(t *testing.T) {
	if got := deriveState(false, screen.OIA{Inhibited: screen.InhibitedSystemWait}); got != InhibitedSystemWait {
		t.Errorf("got %v, want InhibitedSystemWait", got)
	}
	// a system-wait inhibit outranks a stale engine lock.
	if got := deriveState(true, screen.OIA{Inhibited: screen.InhibitedSystemWait}); got != InhibitedSystemWait {
		t.Errorf("got %v, want InhibitedSystemWait even when locked", got)
	}
}

func TestDeriveStateErrorCollapsesThreeReasons(t *testing.T) {
	for _, reason := range []screen.InhibitReason{
		screen.InhibitedProgCheck,
		screen.InhibitedMachineCheck,
		screen.InhibitedCommCheck,
	} {
		if got := deriveState(false, screen.OIA{Inhibited: reason}); got != InhibitedErrorX {
			t.Errorf("reason %v: got %v, want InhibitedErrorX", reason, got)
		}
	}
}
