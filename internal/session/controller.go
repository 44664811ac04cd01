// Package session wires the protocol, screen, field, and input layers
// into a connected client: the lifecycle state machine, timeouts,
// retry/backoff, circuit breaker, and the observer event stream.
// Grounded on stlalpha-vision3/internal/telnetserver/server.go's
// connect/negotiate/run shape, flipped from an accept loop to a dial
// loop.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/ibm5250/tn5250/internal/codec"
	"github.com/ibm5250/tn5250/internal/field"
	"github.com/ibm5250/tn5250/internal/input"
	"github.com/ibm5250/tn5250/internal/logging"
	"github.com/ibm5250/tn5250/internal/outbound"
	"github.com/ibm5250/tn5250/internal/proto"
	"github.com/ibm5250/tn5250/internal/screen"
	"github.com/ibm5250/tn5250/internal/telnet"
	"github.com/ibm5250/tn5250/internal/transport"

	"github.com/google/uuid"
)

// dialFunc matches transport.Dial's signature; Controller calls through
// a field of this type so tests can substitute an in-memory transport
// without touching a real socket.
type dialFunc func(host string, port int, cfg *transport.TLSConfig, timeout time.Duration) (transport.Transport, error)

// Controller owns one client session end to end: dial, negotiate,
// dispatch inbound records, and drive outbound AID responses. It is
// single-owner — the screen/field/OIA mutex is internal and every
// exported method is safe to call from any goroutine, but only one
// Controller instance should drive a given connection.
type Controller struct {
	id   uuid.UUID
	cfg  Config
	dial dialFunc

	mu    sync.Mutex
	state State

	scr        *screen.Screen
	tbl        *field.Table
	codec      *codec.Codec
	dispatcher *proto.Dispatcher
	engine     *input.Engine

	tr       transport.Transport
	profile  telnet.DeviceProfile
	sequence byte // wraps 0..255; BuildRecordHeader encodes it little-endian

	connectAttempts int
	breakerFailures int
	breakerOpen     bool
	breakerOpenedAt time.Time
	lastActivity    time.Time

	inboundQ  *recordQueue
	outboundQ *recordQueue
	observers *observerRegistry

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// screenGeometry resolves cfg's ScreenSize to the concrete screen.Size
// and telnet.ScreenSize it implies.
func screenGeometry(s ScreenSize) (screen.Size, telnet.ScreenSize) {
	if s == Screen27x132 {
		return screen.Size27x132, telnet.ScreenSize{Rows: 27, Cols: 132}
	}
	return screen.Size24x80, telnet.ScreenSize{Rows: 24, Cols: 80}
}

// NewController builds a Controller from cfg. The codec CCSID must be
// one internal/codec.New recognizes; an unsupported code page is a
// configuration error surfaced immediately rather than deferred to the
// first record.
func NewController(cfg Config) (*Controller, error) {
	c, err := codec.New(codec.CCSID(cfg.CodePage))
	if err != nil {
		return nil, err
	}
	size, _ := screenGeometry(cfg.ScreenSize)
	scr := screen.New(size)
	tbl := field.NewTable()
	dispatcher := proto.New(scr, tbl, c)
	dispatcher.StrictMode = cfg.StrictMode
	engine := input.NewEngine(scr, tbl, c)

	return &Controller{
		id:         uuid.New(),
		cfg:        cfg,
		dial:       transport.Dial,
		state:      Disconnected,
		scr:        scr,
		tbl:        tbl,
		codec:      c,
		dispatcher: dispatcher,
		engine:     engine,
		inboundQ:   newRecordQueue(16),
		outboundQ:  newRecordQueue(16),
		observers:  newObserverRegistry(),
	}, nil
}

// ID returns the controller's correlation ID, generated once at
// construction, for tying its log lines and events to one connection
// across reconnects.
func (c *Controller) ID() string { return c.id.String() }

// State reports the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive session events.
func (c *Controller) Subscribe(fn Observer) Handle { return c.observers.Subscribe(fn) }

// Unsubscribe removes a previously registered observer.
func (c *Controller) Unsubscribe(h Handle) { c.observers.Unsubscribe(h) }

// ConnectAttempts reports how many dial attempts the most recent Connect
// call made.
func (c *Controller) ConnectAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectAttempts
}

// Profile returns the TN5250E device profile negotiation settled on, or
// its zero value before Connect has completed negotiation.
func (c *Controller) Profile() telnet.DeviceProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

func (c *Controller) setState(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()
	if from == to {
		return
	}
	c.observers.notify(Event{StateChanged: &SessionStateChanged{From: from, To: to}}, c.logObserverFailure)
}

func (c *Controller) logObserverFailure(h Handle, recovered any) {
	logging.Debug("session[%s]: observer %d panicked: %v", c.id, int(h), recovered)
}

func (c *Controller) emitTimeout(kind TimeoutKind) {
	c.observers.notify(Event{Timeout: &TimeoutOccurred{Kind: kind}}, c.logObserverFailure)
}

func (c *Controller) touchActivity() {
	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()
}

// Connect dials the configured host, applying retry/backoff and the
// circuit breaker, then negotiates Telnet and TN5250E before starting
// the reader/writer/dispatcher/timer tasks.
func (c *Controller) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.breakerOpen {
		cooloff := time.Duration(c.cfg.BreakerCooloffMs) * time.Millisecond
		if cooloff <= 0 {
			cooloff = defaultBreakerCooloffMs * time.Millisecond
		}
		if time.Since(c.breakerOpenedAt) < cooloff {
			c.mu.Unlock()
			return ErrBreakerOpen
		}
		// Cool-off elapsed: let exactly this attempt through as a
		// half-open probe. It either closes the breaker or re-opens it.
	}
	c.mu.Unlock()

	c.setState(Connecting)

	delay := time.Duration(c.cfg.InitialRetryDelayMs) * time.Millisecond
	maxAttempts := c.cfg.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	timeout := time.Duration(c.cfg.ConnectTimeoutMs) * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c.mu.Lock()
		c.connectAttempts = attempt
		c.mu.Unlock()

		tr, err := c.dial(c.cfg.Host, c.cfg.Port, c.cfg.TLS, timeout)
		if err == nil {
			c.mu.Lock()
			c.tr = tr
			c.breakerFailures = 0
			c.breakerOpen = false
			c.mu.Unlock()

			if nerr := c.negotiate(ctx); nerr != nil {
				_ = tr.Close()
				c.setState(Disconnected)
				return nerr
			}
			c.touchActivity()
			c.startTasks()
			c.setState(Connected)
			return nil
		}
		lastErr = err

		if attempt < maxAttempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				c.setState(Disconnected)
				return ctx.Err()
			}
			delay *= 2
			if delay > maxBackoffMs*time.Millisecond {
				delay = maxBackoffMs * time.Millisecond
			}
		}
	}

	c.mu.Lock()
	c.breakerFailures++
	if c.cfg.BreakerThreshold > 0 && c.breakerFailures >= c.cfg.BreakerThreshold {
		c.breakerOpen = true
		c.breakerOpenedAt = time.Now()
	}
	c.mu.Unlock()
	c.setState(Disconnected)
	return &ConnectFailed{Cause: lastErr}
}

// Disconnect transitions to Disconnecting, cancels the reader/writer/
// dispatcher/timer tasks, drains the queues, closes the transport, and
// settles at Disconnected. It is idempotent: calling it while already
// disconnected is a no-op.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	if c.state == Disconnected || c.state == Disconnecting {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.setState(Disconnecting)

	c.mu.Lock()
	cancel := c.cancel
	tr := c.tr
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
	c.inboundQ.Drain()
	c.outboundQ.Drain()
	if tr != nil {
		_ = tr.Close()
	}
	c.setState(Disconnected)
}

// SendAID builds the outbound response for aid through the input engine
// and enqueues it for the writer task. Returns input.ErrKeyboardLocked
// if the keyboard isn't accepting AID dispatch right now.
func (c *Controller) SendAID(ctx context.Context, aid outbound.AID) error {
	c.mu.Lock()
	body, err := c.engine.HandleAID(aid)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.sequence++
	rec := proto.BuildRecordHeader(c.sequence, proto.OpcodeNoOp, body)
	c.mu.Unlock()

	return c.outboundQ.Push(ctx, rec)
}

// Reset drives the Reset key through the input engine.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Reset()
}

// Dispatch routes one key event through the input engine, enqueueing
// any resulting AID response.
func (c *Controller) Dispatch(ctx context.Context, k input.Key) error {
	c.mu.Lock()
	body, err := c.engine.Dispatch(k)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	var rec []byte
	if len(body) > 0 {
		c.sequence++
		rec = proto.BuildRecordHeader(c.sequence, proto.OpcodeNoOp, body)
	}
	c.mu.Unlock()

	if rec == nil {
		return nil
	}
	return c.outboundQ.Push(ctx, rec)
}

// Screen exposes the live screen for a caller that wants a read-only
// view (a renderer, a test assertion). Only the dispatcher and input
// engine mutate it; callers must treat the returned value as
// read-only.
func (c *Controller) Screen() screen.Ops { return c.scr }

// Fields exposes the live field table, read-only by the same contract
// as Screen.
func (c *Controller) Fields() *field.Table { return c.tbl }
