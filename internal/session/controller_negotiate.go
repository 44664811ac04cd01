package session

import (
	"context"
	"net"
	"time"

	"github.com/ibm5250/tn5250/internal/telnet"
)

// negotiationBudget bounds how long the whole Telnet+TN5250E round trip
// may take, beyond the negotiator's own one-second base-option deadlock
// timeout — a host that settles the base options but then stalls
// mid-TERMINAL-TYPE still needs a backstop.
const negotiationBudget = 3 * time.Second

// negotiate drives telnet.Negotiator against c.tr until it settles
// (either a TN5250E profile or a non-E fallback) or the budget expires.
func (c *Controller) negotiate(ctx context.Context) error {
	c.setState(Negotiating)

	_, size := screenGeometry(c.cfg.ScreenSize)
	neg := telnet.NewNegotiator(c.cfg.DeviceName, size)
	framer := telnet.NewFramer()

	start := time.Now()
	neg.Start(start)
	if err := c.writeRaw(neg.Pending()); err != nil {
		return &ConnectFailed{Cause: err}
	}

	deadline := start.Add(negotiationBudget)
	buf := make([]byte, 4096)
	for !neg.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := neg.CheckDeadline(time.Now()); err != nil {
			return &NegotiationFailed{Reason: err.Error()}
		}
		if time.Now().After(deadline) {
			return &NegotiationFailed{Reason: "negotiation budget exceeded"}
		}

		readDeadline := time.Now().Add(100 * time.Millisecond)
		if readDeadline.After(deadline) {
			readDeadline = deadline
		}
		n, err := c.tr.Read(buf, readDeadline)
		if err != nil {
			if isTimeoutErr(err) {
				continue
			}
			return &ConnectFailed{Cause: err}
		}

		events, ferr := framer.Feed(buf[:n])
		if ferr != nil {
			return &BadSubneg{Reason: ferr.Error()}
		}
		for _, ev := range events {
			switch ev.Kind {
			case telnet.EventOption:
				neg.HandleOption(ev.Cmd, ev.Option)
			case telnet.EventSubneg:
				if err := neg.HandleSubneg(ev.Option, ev.Data); err != nil {
					return &BadSubneg{Reason: err.Error()}
				}
			}
		}
		if err := c.writeRaw(neg.Pending()); err != nil {
			return &ConnectFailed{Cause: err}
		}
	}

	c.mu.Lock()
	c.profile = neg.Profile()
	c.mu.Unlock()
	return nil
}

// writeRaw writes pre-framed bytes straight to the transport, bypassing
// the outbound queue — used only during negotiation, before the writer
// task exists.
func (c *Controller) writeRaw(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	timeout := time.Duration(c.cfg.WriteTimeoutMs) * time.Millisecond
	_, err := c.tr.Write(b, time.Now().Add(timeout))
	return err
}

func isTimeoutErr(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
