package telnet

import (
	"fmt"
	"strings"
	"time"
)

// DeviceType is the TN5250E device class sent in the TNESCFG flags byte.
type DeviceType byte

const (
	DeviceDisplay  DeviceType = 0
	DevicePrinter  DeviceType = 1
	DeviceCombined DeviceType = 2
)

// DeviceProfile is the settled TN5250E device identity the negotiator
// produces once TNESCFG (command 0x41) completes.
type DeviceProfile struct {
	DeviceType DeviceType
	DeviceName string
	Bypass     bool // flags bit 3
	Record     bool // mode_mask bit 0
	StructRsp  bool // mode_mask bit 1 (structured-field response mode)
	Enhanced   bool // true once TNESCFG has been accepted; false => 5250 non-E fallback
}

// Negotiator drives the Telnet option dance and, if the host offers it,
// the TN5250E device sub-negotiation. It holds no network I/O itself —
// the session controller feeds it Events from a Framer and writes back
// whatever Pending() returns, keeping Negotiator a pure state machine
// that's easy to drive from a test without a socket — the same
// capability-interface guidance applied to negotiation too.
type Negotiator struct {
	wantDeviceName string // configured device name to offer, or "" for host default
	screenSize     ScreenSize

	binary, eor, sga   negotiationState
	termTypeRequested  bool
	termTypeSent       bool
	newEnvironAccepted bool

	profile DeviceProfile
	done    bool
	pending [][]byte // bytes queued for the caller to write to the transport

	deadline time.Time
}

// ScreenSize is the screen geometry to offer during TERMINAL-TYPE
// negotiation: IBM-3179-2 for 24x80, IBM-3477-FC for 27x132.
type ScreenSize struct {
	Rows, Cols int
}

type negotiationState int

const (
	optUnknown negotiationState = iota
	optRequested
	optAccepted
	optRefused
)

// NewNegotiator creates a Negotiator that will offer deviceName (or let
// the host assign one, if empty) and the given primary screen size.
func NewNegotiator(deviceName string, size ScreenSize) *Negotiator {
	return &Negotiator{wantDeviceName: deviceName, screenSize: size}
}

// Start queues the initial option requests and arms the one-second
// negotiation-deadlock timeout.
func (n *Negotiator) Start(now time.Time) {
	n.deadline = now.Add(1 * time.Second)
	n.queue(CommandBytes(DO, OptBinary))
	n.queue(CommandBytes(WILL, OptBinary))
	n.queue(CommandBytes(DO, OptEOR))
	n.queue(CommandBytes(WILL, OptEOR))
	n.queue(CommandBytes(DO, OptSGA))
	n.queue(CommandBytes(WILL, OptSGA))
	n.binary, n.eor, n.sga = optRequested, optRequested, optRequested
}

func (n *Negotiator) queue(b []byte) { n.pending = append(n.pending, b) }

// Pending drains and returns any bytes the caller should write to the
// transport as a result of the most recent HandleOption/HandleSubneg call.
func (n *Negotiator) Pending() []byte {
	if len(n.pending) == 0 {
		return nil
	}
	var out []byte
	for _, p := range n.pending {
		out = append(out, p...)
	}
	n.pending = nil
	return out
}

// HandleOption applies one DO/DONT/WILL/WONT event from the host.
func (n *Negotiator) HandleOption(cmd, option byte) {
	switch option {
	case OptBinary:
		n.settle(&n.binary, cmd)
	case OptEOR:
		n.settle(&n.eor, cmd)
	case OptSGA:
		n.settle(&n.sga, cmd)
	case OptTermType:
		if cmd == WILL {
			n.termTypeRequested = true
			n.queue(SubnegBytes(OptTermType, []byte{0x01})) // SEND
		} else if cmd == WONT {
			n.termTypeRequested = false
		}
	case OptNewEnviron:
		n.newEnvironAccepted = cmd == WILL || cmd == DO
	}
}

// settle records the host's response to one of our DO/WILL requests.
// DO/WILL from the host in response to our WILL/DO mirrors the state;
// DONT/WONT refuses it.
func (n *Negotiator) settle(state *negotiationState, cmd byte) {
	switch cmd {
	case DO, WILL:
		*state = optAccepted
	case DONT, WONT:
		*state = optRefused
	}
}

// HandleSubneg applies a completed sub-negotiation payload.
func (n *Negotiator) HandleSubneg(option byte, data []byte) error {
	switch option {
	case OptTermType:
		return n.handleTermType(data)
	case Opt5250E:
		return n.handleTNESCFG(data)
	}
	return nil
}

func (n *Negotiator) handleTermType(data []byte) error {
	if len(data) < 1 || data[0] != 0x00 { // IS
		return nil
	}
	// Respond to SEND with our offered terminal type, selected by screen size.
	termType := "IBM-3179-2"
	if n.screenSize.Rows > 24 || n.screenSize.Cols > 80 {
		termType = "IBM-3477-FC"
	}
	reply := append([]byte{0x00}, []byte(termType)...) // IS <name>
	n.queue(SubnegBytes(OptTermType, reply))
	n.termTypeSent = true
	n.queueTNESCFG()
	return nil
}

// queueTNESCFG sends our TN5250E device sub-negotiation request once the
// host's TERMINAL-TYPE round trip has completed.
func (n *Negotiator) queueTNESCFG() {
	name := n.wantDeviceName
	if len(name) > 8 {
		name = name[:8]
	}
	flags := byte(DeviceDisplay)
	modeMask := byte(0x01) // record mode
	payload := []byte{0x41, 0x00, 0x00, flags, modeMask}
	payload = append(payload, []byte(name)...)
	n.queue(SubnegBytes(Opt5250E, payload))
}

// handleTNESCFG parses the host's TNESCFG reply:
//
//	length(2 BE) | 0x41 | 0x00 | 0x00 | flags | mode_mask | device_name[0..8]
//
// The length prefix is the total sub-negotiation length including itself;
// the Framer has already stripped IAC SB/SE, so data here starts at the
// command byte.
func (n *Negotiator) handleTNESCFG(data []byte) error {
	if len(data) < 5 {
		n.fallbackNonE("TNESCFG payload too short")
		return nil
	}
	if data[0] != 0x41 {
		n.fallbackNonE(fmt.Sprintf("unexpected TNESCFG command 0x%02X", data[0]))
		return nil
	}
	if data[1] != 0x00 || data[2] != 0x00 {
		n.fallbackNonE("TNESCFG reserved bytes nonzero")
		return nil
	}
	flags := data[3]
	modeMask := data[4]
	deviceType := DeviceType(flags & 0x07)
	if flags&0xF0 != 0 || deviceType > DeviceCombined {
		n.fallbackNonE("TNESCFG flags out of range")
		return nil
	}
	if modeMask&0xFC != 0 {
		n.fallbackNonE("TNESCFG mode_mask reserved bits set")
		return nil
	}

	name := ""
	if len(data) > 5 {
		raw := data[5:]
		if i := indexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		if len(raw) > 8 {
			raw = raw[:8]
		}
		name = strings.TrimRight(string(raw), " ")
	}

	n.profile = DeviceProfile{
		DeviceType: deviceType,
		DeviceName: name,
		Bypass:     flags&0x08 != 0,
		Record:     modeMask&0x01 != 0,
		StructRsp:  modeMask&0x02 != 0,
		Enhanced:   true,
	}
	n.done = true
	return nil
}

func (n *Negotiator) fallbackNonE(reason string) {
	n.profile = DeviceProfile{DeviceType: DeviceDisplay, Enhanced: false}
	n.done = true
	_ = reason // not recorded; Profile().Enhanced == false is all a caller sees
}

func indexByte(b []byte, target byte) int {
	for i, v := range b {
		if v == target {
			return i
		}
	}
	return -1
}

// Done reports whether negotiation has settled (either a full TN5250E
// profile or a non-E fallback).
func (n *Negotiator) Done() bool { return n.done }

// Profile returns the settled device profile. Valid only once Done is true.
func (n *Negotiator) Profile() DeviceProfile { return n.profile }

// CheckDeadline returns ErrNegotiationFailed if now is past the
// negotiation deadline and BINARY, EOR, and SGA are not all accepted
// (any of them still pending or refused by the host). If they are all
// accepted, it settles on the 5250 non-E fallback instead.
func (n *Negotiator) CheckDeadline(now time.Time) error {
	if n.done || now.Before(n.deadline) {
		return nil
	}
	if n.binary == optAccepted && n.eor == optAccepted && n.sga == optAccepted {
		// Base options are fine; the host simply never offers TN5250E.
		n.fallbackNonE("TN5250E not offered before deadline")
		return nil
	}
	return ErrNegotiationFailed
}

// BaseOptionsReady reports whether BINARY, EOR, and SGA are all settled
// (accepted or refused) — the point at which TERMINAL-TYPE/TN5250E can
// proceed regardless of outcome.
func (n *Negotiator) BaseOptionsReady() bool {
	return n.binary != optUnknown && n.binary != optRequested &&
		n.eor != optUnknown && n.eor != optRequested &&
		n.sga != optUnknown && n.sga != optRequested
}
