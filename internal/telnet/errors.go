package telnet

import "errors"

// ErrBadSubneg is wrapped by Framer.Feed when a sub-negotiation is
// malformed (oversized, or an unexpected byte follows an embedded IAC).
var ErrBadSubneg = errors.New("malformed telnet sub-negotiation")

// ErrNegotiationFailed is returned by Negotiator.CheckDeadline when, past
// the one-second timeout, the base options are still unsettled or the
// host has refused one of them.
var ErrNegotiationFailed = errors.New("telnet negotiation failed")
