package session

import (
	"context"
	"testing"
	"time"
)

func TestRecordQueuePushPop(t *testing.T) {
	q := newRecordQueue(2)
	ctx := context.Background()
	if err := q.Push(ctx, []byte("a")); err != nil {
		t.Fatalf("Push: %v", err)
	}
	rec, ok, err := q.Pop(ctx)
	if err != nil || !ok || string(rec) != "a" {
		t.Fatalf("Pop = %q,%v,%v", rec, ok, err)
	}
}

func TestRecordQueuePushBlocksWhenFullUntilCancelled(t *testing.T) {
	q := newRecordQueue(1)
	ctx := context.Background()
	_ = q.Push(ctx, []byte("a"))

	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := q.Push(cctx, []byte("b")); err == nil {
		t.Error("expected Push to block and then fail on cancellation")
	}
}

func TestRecordQueueDrainDiscardsQueued(t *testing.T) {
	q := newRecordQueue(4)
	ctx := context.Background()
	_ = q.Push(ctx, []byte("a"))
	_ = q.Push(ctx, []byte("b"))
	q.Drain()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if _, _, err := q.Pop(cctx); err == nil {
		t.Error("expected Pop on a drained queue to time out")
	}
}

func TestRecordQueueCloseUnblocksPop(t *testing.T) {
	q := newRecordQueue(1)
	q.Close()
	_, ok, err := q.Pop(context.Background())
	if err != nil || ok {
		t.Errorf("Pop on closed empty queue = ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}
