// tn5250 is a demo client for the protocol stack in internal/: it dials a
// host, drives the Telnet/TN5250E handshake, and renders the resulting
// screen to a raw-mode terminal, forwarding keystrokes back as 5250 AID
// responses. Grounded on stlalpha-vision3/cmd/vision3/main.go's
// flag-parse-then-run shape and its term.NewTerminal/term.MakeRaw usage,
// adapted from a PTY-backed SSH server session to a local raw-mode client.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/ibm5250/tn5250/internal/input"
	"github.com/ibm5250/tn5250/internal/logging"
	"github.com/ibm5250/tn5250/internal/outbound"
	"github.com/ibm5250/tn5250/internal/screen"
	"github.com/ibm5250/tn5250/internal/session"
	"github.com/ibm5250/tn5250/internal/transport"
)

func main() {
	host := flag.String("host", "", "5250 host to connect to (required)")
	port := flag.Int("port", 23, "5250/Telnet port")
	device := flag.String("device", "", "device name to offer during TN5250E negotiation (blank lets the host assign one)")
	ccsid := flag.Int("ccsid", 37, "EBCDIC code page (CCSID) to decode/encode with")
	size := flag.String("size", "24x80", "screen geometry: 24x80 or 27x132")
	useTLS := flag.Bool("tls", false, "wrap the connection in TLS")
	insecure := flag.Bool("insecure", false, "skip TLS certificate verification (only with -tls)")
	debug := flag.Bool("debug", os.Getenv("TN5250_DEBUG") == "1", "enable protocol debug logging")
	flag.Parse()

	logging.DebugEnabled = *debug
	log.SetOutput(os.Stderr)

	if *host == "" {
		fmt.Fprintln(os.Stderr, "tn5250: -host is required")
		flag.Usage()
		os.Exit(2)
	}

	screenSize, err := parseSize(*size)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	cfg := session.Config{
		Host:                *host,
		Port:                *port,
		DeviceName:          *device,
		CodePage:            *ccsid,
		ScreenSize:          screenSize,
		ConnectTimeoutMs:    10_000,
		ReadTimeoutMs:       30_000,
		WriteTimeoutMs:      10_000,
		InactivityTimeoutMs: 0,
		KeepaliveEnabled:    true,
		KeepaliveIntervalMs: 20_000,
		MaxRetries:          3,
		InitialRetryDelayMs: 250,
		BreakerThreshold:    5,
		BreakerCooloffMs:    30_000,
	}
	if *useTLS {
		cfg.TLS = &transport.TLSConfig{InsecureSkipVerify: *insecure}
	}

	ctrl, err := session.NewController(cfg)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	ctrl.Subscribe(func(ev session.Event) {
		switch {
		case ev.Received != nil:
			render(ctrl.Screen())
		case ev.StateChanged != nil:
			logging.Debug("session[%s]: %s -> %s", ctrl.ID(), ev.StateChanged.From, ev.StateChanged.To)
		case ev.Timeout != nil:
			log.Printf("WARN: %s timeout", ev.Timeout.Kind)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Connect(ctx); err != nil {
		log.Fatalf("FATAL: connect failed after %d attempt(s): %v", ctrl.ConnectAttempts(), err)
	}
	defer ctrl.Disconnect()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatalf("FATAL: failed to set raw mode: %v", err)
	}
	defer term.Restore(fd, oldState)

	render(ctrl.Screen())
	runInputLoop(ctx, ctrl)
}

func parseSize(s string) (session.ScreenSize, error) {
	switch strings.ToLower(s) {
	case "24x80":
		return session.Screen24x80, nil
	case "27x132":
		return session.Screen27x132, nil
	default:
		return 0, fmt.Errorf("invalid -size %q: want 24x80 or 27x132", s)
	}
}

// render redraws the whole screen: an explicit full repaint rather than a
// dirty-region diff, since a raw-mode terminal has no partial-update API
// simpler than "clear and rewrite".
func render(scr screen.Ops) {
	size := scr.Size()
	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")
	for row := 1; row <= size.Rows; row++ {
		for col := 1; col <= size.Cols; col++ {
			pos, err := scr.RowCol(row, col)
			if err != nil {
				continue
			}
			r, err := scr.CharAt(pos)
			if err != nil || r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		if row < size.Rows {
			b.WriteString("\r\n")
		}
	}
	row, col := scr.CursorRowCol()
	fmt.Fprintf(&b, "\x1b[%d;%dH", row, col)
	os.Stdout.WriteString(b.String())
	scr.ClearDirty()
}

// runInputLoop reads raw bytes from stdin, translates them into input.Key
// events or AID keys, and drives the controller until ctx is cancelled or
// the session disconnects.
func runInputLoop(ctx context.Context, ctrl *session.Controller) {
	r := bufio.NewReader(os.Stdin)
	for {
		if ctx.Err() != nil {
			return
		}
		if ctrl.State() != session.Connected {
			return
		}
		b, err := r.ReadByte()
		if err != nil {
			return
		}

		switch b {
		case 0x03: // Ctrl-C
			return
		case '\r', '\n':
			sendAID(ctx, ctrl, outbound.AIDEnter)
		case '\t':
			dispatch(ctx, ctrl, input.NavKeyEvent(input.NavTab))
		case 0x1b: // ESC: either a lone Reset or the start of a CSI sequence
			handleEscape(ctx, ctrl, r)
		default:
			if b >= 0x20 && b < 0x7f {
				dispatch(ctx, ctrl, input.DataKey(rune(b)))
			}
		}
	}
}

// handleEscape distinguishes a bare Escape (Reset) from an arrow-key CSI
// sequence (ESC [ A/B/C/D) and a function-key sequence (ESC O P..., the
// xterm PF1-PF4 encoding). ESC followed by anything other than '[' or 'O'
// is treated as Reset; a '['/'O' sequence with an unknown final byte is
// ignored.
func handleEscape(ctx context.Context, ctrl *session.Controller, r *bufio.Reader) {
	b1, err := r.ReadByte()
	if err != nil {
		return
	}
	if b1 != '[' && b1 != 'O' {
		dispatch(ctx, ctrl, input.Key{IsReset: true})
		return
	}
	b2, err := r.ReadByte()
	if err != nil {
		return
	}
	switch b2 {
	case 'A':
		dispatch(ctx, ctrl, input.MotionKey(input.DirUp))
	case 'B':
		dispatch(ctx, ctrl, input.MotionKey(input.DirDown))
	case 'C':
		dispatch(ctx, ctrl, input.MotionKey(input.DirRight))
	case 'D':
		dispatch(ctx, ctrl, input.MotionKey(input.DirLeft))
	case 'Z': // shift-tab (CSI Z)
		dispatch(ctx, ctrl, input.NavKeyEvent(input.NavShiftTab))
	case 'P', 'Q', 'R', 'S':
		sendAID(ctx, ctrl, pfAID(int(b2-'P')+1))
	}
}

func pfAID(n int) outbound.AID {
	switch n {
	case 1:
		return outbound.AIDPF1
	case 2:
		return outbound.AIDPF2
	case 3:
		return outbound.AIDPF3
	case 4:
		return outbound.AIDPF4
	default:
		return outbound.AIDPF1
	}
}

func dispatch(ctx context.Context, ctrl *session.Controller, k input.Key) {
	if err := ctrl.Dispatch(ctx, k); err != nil {
		logging.Debug("dispatch: %v", err)
	}
}

func sendAID(ctx context.Context, ctrl *session.Controller, aid outbound.AID) {
	if err := ctrl.SendAID(ctx, aid); err != nil {
		logging.Debug("send AID 0x%02X: %v", byte(aid), err)
	}
}
