package session

import "context"

// recordQueue is a bounded, FIFO channel of raw inbound or outbound
// records. Reader and Writer enqueue/dequeue from opposite ends; a full
// queue applies backpressure by blocking Push until Pop drains it or the
// context is cancelled.
type recordQueue struct {
	ch chan []byte
}

func newRecordQueue(capacity int) *recordQueue {
	return &recordQueue{ch: make(chan []byte, capacity)}
}

// Push enqueues rec, blocking if the queue is full until space frees up
// or ctx is cancelled.
func (q *recordQueue) Push(ctx context.Context, rec []byte) error {
	select {
	case q.ch <- rec:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pop dequeues the next record, blocking until one is available, the
// queue is drained and closed, or ctx is cancelled.
func (q *recordQueue) Pop(ctx context.Context) ([]byte, bool, error) {
	select {
	case rec, ok := <-q.ch:
		return rec, ok, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Drain empties the queue without blocking, discarding anything queued
// (a disconnect's "drains the record queue" step).
func (q *recordQueue) Drain() {
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}

// Close closes the underlying channel so a blocked Pop sees ok == false
// once drained.
func (q *recordQueue) Close() { close(q.ch) }
