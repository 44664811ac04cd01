package session

import "github.com/ibm5250/tn5250/internal/screen"

// State is one node of the session controller's lifecycle state
// machine.
type State int

const (
	Disconnected State = iota
	Connecting
	Negotiating
	Connected
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Negotiating:
		return "negotiating"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// SessionStateChanged reports a lifecycle transition.
type SessionStateChanged struct {
	From, To State
}

// TimeoutOccurred reports one of the four configured timeouts (or a
// missed keepalive) firing.
type TimeoutOccurred struct {
	Kind TimeoutKind
}

// RecordReceived reports one inbound 5250 record the dispatcher
// processed. Err is non-nil when the record was malformed; Diagnostics
// carries any non-fatal diagnostics the dispatcher reported alongside
// a successfully processed record (e.g. an out-of-range SBA clamp).
type RecordReceived struct {
	Length      int
	Err         error
	Diagnostics []error
}

// RecordSent reports one outbound record the writer task framed and
// wrote to the transport.
type RecordSent struct {
	Length int
}

// OiaChanged reports the Operator Information Area's new state after a
// command or input event changed it.
type OiaChanged struct {
	OIA screen.OIA
}

// Event is the union of values a subscribed observer receives. Exactly
// one field is non-nil per delivery; callers check which field is set.
type Event struct {
	StateChanged *SessionStateChanged
	Timeout      *TimeoutOccurred
	Received     *RecordReceived
	Sent         *RecordSent
	OIA          *OiaChanged
}

// Observer receives events synchronously on the controller's thread. It
// must not block or call back into the session.
type Observer func(Event)

// Handle identifies a subscription for Unsubscribe.
type Handle int
