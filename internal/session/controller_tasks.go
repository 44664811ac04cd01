package session

import (
	"context"
	"time"

	"github.com/ibm5250/tn5250/internal/logging"
	"github.com/ibm5250/tn5250/internal/outbound"
	"github.com/ibm5250/tn5250/internal/proto"
	"github.com/ibm5250/tn5250/internal/telnet"
)

// startTasks launches the reader, writer, dispatcher, and timer tasks,
// sharing one cancellable context.
func (c *Controller) startTasks() {
	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(4)
	go c.readerTask(ctx)
	go c.writerTask(ctx)
	go c.dispatcherTask(ctx)
	go c.timerTask(ctx)
}

// readerTask blocks on the transport, feeds bytes through a Framer, and
// pushes completed records onto the inbound queue.
func (c *Controller) readerTask(ctx context.Context) {
	defer c.wg.Done()
	framer := telnet.NewFramer()
	buf := make([]byte, 4096)
	readTimeout := time.Duration(c.cfg.ReadTimeoutMs) * time.Millisecond

	for {
		if ctx.Err() != nil {
			return
		}
		n, err := c.tr.Read(buf, time.Now().Add(readTimeout))
		if err != nil {
			if isTimeoutErr(err) {
				c.emitTimeout(TimeoutRead)
				go c.Disconnect()
				return
			}
			go c.Disconnect()
			return
		}
		c.touchActivity()

		events, ferr := framer.Feed(buf[:n])
		if ferr != nil {
			go c.Disconnect()
			return
		}
		for _, ev := range events {
			if ev.Kind != telnet.EventRecord {
				continue
			}
			if err := c.inboundQ.Push(ctx, ev.Record); err != nil {
				return
			}
		}
	}
}

// writerTask dequeues outbound records, frames them, and writes them to
// the transport.
func (c *Controller) writerTask(ctx context.Context) {
	defer c.wg.Done()
	writeTimeout := time.Duration(c.cfg.WriteTimeoutMs) * time.Millisecond

	for {
		rec, ok, err := c.outboundQ.Pop(ctx)
		if err != nil || !ok {
			return
		}
		framed := telnet.Frame(rec)
		if _, err := c.tr.Write(framed, time.Now().Add(writeTimeout)); err != nil {
			if isTimeoutErr(err) {
				c.emitTimeout(TimeoutWrite)
			}
			go c.Disconnect()
			return
		}
		c.touchActivity()
		c.observers.notify(Event{Sent: &RecordSent{Length: len(rec)}}, c.logObserverFailure)
	}
}

// dispatcherTask dequeues inbound records, applies them to the screen
// model under the shared mutex, and notifies observers. It has no
// transport suspension point of its own.
func (c *Controller) dispatcherTask(ctx context.Context) {
	defer c.wg.Done()
	for {
		rec, ok, err := c.inboundQ.Pop(ctx)
		if err != nil || !ok {
			return
		}
		c.processRecord(ctx, rec)
	}
}

func (c *Controller) processRecord(ctx context.Context, rec []byte) {
	c.mu.Lock()
	requests, err := c.dispatcher.ProcessRecord(rec)
	diagnostics := c.dispatcher.Diagnostics()
	oia := c.scr.OIAState()
	strict := c.dispatcher.StrictMode
	c.mu.Unlock()

	c.observers.notify(Event{Received: &RecordReceived{
		Length:      len(rec),
		Err:         err,
		Diagnostics: diagnostics,
	}}, c.logObserverFailure)
	c.observers.notify(Event{OIA: &OiaChanged{OIA: oia}}, c.logObserverFailure)

	if err != nil {
		if strict {
			go c.Disconnect()
		}
		return
	}

	for _, req := range requests {
		c.handleRequest(ctx, req)
	}
}

// handleRequest applies the session-level effect of one outbound action
// the dispatcher queued. Read Input Fields and Read MDT Fields unlock
// the keyboard so the user's next AID key produces a response. Read
// Screen Immediate and Read Immediate build and send that response
// right away instead of waiting for a key. Save Screen, Restore Screen,
// and Read Screen To Printer each queue their own outbound
// acknowledgment.
func (c *Controller) handleRequest(ctx context.Context, req proto.Request) {
	switch req.Kind {
	case proto.RequestReadInputFields, proto.RequestReadMDTFields:
		c.mu.Lock()
		c.engine.Unlock()
		c.mu.Unlock()
	case proto.RequestReadScreenImmediate, proto.RequestReadImmediate:
		c.queueResponse(ctx, outbound.AIDEnter, c.engine.Format, c.engine.Mode)
	case proto.RequestSaveScreenResponse, proto.RequestRestoreScreenResponse:
		c.queueResponse(ctx, outbound.AIDEnter, outbound.FormatShort, outbound.CollectNone)
	case proto.RequestScreenToPrinter:
		c.queueResponse(ctx, outbound.AIDPrint, outbound.FormatStructured, outbound.CollectAll)
	}
}

// queueResponse builds an outbound record the same way SendAID does, for
// a response the dispatcher asked for directly rather than one produced
// by a keypress. Failure to enqueue (the outbound queue closed under a
// concurrent Disconnect) is logged and otherwise ignored: the record
// queue draining on disconnect already accounts for it.
func (c *Controller) queueResponse(ctx context.Context, aid outbound.AID, format outbound.Format, mode outbound.CollectionMode) {
	c.mu.Lock()
	body := outbound.BuildResponse(aid, format, mode, c.scr, c.tbl, c.codec)
	c.sequence++
	rec := proto.BuildRecordHeader(c.sequence, proto.OpcodeNoOp, body)
	c.mu.Unlock()

	if err := c.outboundQ.Push(ctx, rec); err != nil {
		logging.Debug("session[%s]: queueResponse: %v", c.id, err)
	}
}

// timerTask manages inactivity and keepalive on a fixed poll interval.
func (c *Controller) timerTask(ctx context.Context) {
	defer c.wg.Done()
	const pollInterval = 100 * time.Millisecond
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	inactivity := time.Duration(c.cfg.InactivityTimeoutMs) * time.Millisecond
	keepaliveInterval := time.Duration(c.cfg.KeepaliveIntervalMs) * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			idle := time.Since(c.lastActivity)
			c.mu.Unlock()

			if inactivity > 0 && idle >= inactivity {
				c.emitTimeout(TimeoutInactivity)
				go c.Disconnect()
				return
			}
			if c.cfg.KeepaliveEnabled && keepaliveInterval > 0 && idle >= keepaliveInterval {
				c.sendKeepalive()
			}
		}
	}
}

// sendKeepalive writes a Telnet NOP directly (bypassing the outbound
// record queue, since a NOP is not a 5250 record) and relies on the
// reader task's normal activity tracking to register the peer's next
// byte as the keepalive response. No response deadline is armed for the
// NOP: a silent host is caught only by the reader's ReadTimeoutMs, which
// reports TimeoutRead. TimeoutKeepalive is emitted only when writing the
// NOP itself fails.
func (c *Controller) sendKeepalive() {
	c.mu.Lock()
	tr := c.tr
	writeTimeout := time.Duration(c.cfg.WriteTimeoutMs) * time.Millisecond
	c.mu.Unlock()
	if tr == nil {
		return
	}
	const nop byte = 0xF1 // RFC 854 NOP
	_, err := tr.Write([]byte{telnet.IAC, nop}, time.Now().Add(writeTimeout))
	if err != nil {
		c.emitTimeout(TimeoutKeepalive)
		go c.Disconnect()
	}
}
