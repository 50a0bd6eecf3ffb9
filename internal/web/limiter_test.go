package web

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoadLimiter_AcquireRelease(t *testing.T) {
	l := newLoadLimiter(2, time.Second)

	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if got := l.activeCount(); got != 2 {
		t.Errorf("activeCount() = %d, want 2", got)
	}

	l.release()
	l.release()
	if got := l.activeCount(); got != 0 {
		t.Errorf("activeCount() after release = %d, want 0", got)
	}
}

func TestLoadLimiter_RejectsWhenFull(t *testing.T) {
	l := newLoadLimiter(1, 20*time.Millisecond)

	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	defer l.release()

	err := l.acquire(context.Background())
	if !errors.Is(err, ErrTooManyLoads) {
		t.Errorf("acquire() error = %v, want ErrTooManyLoads", err)
	}
}

func TestLoadLimiter_SlotFreesWaiter(t *testing.T) {
	l := newLoadLimiter(1, time.Second)

	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- l.acquire(context.Background())
	}()

	time.Sleep(10 * time.Millisecond)
	l.release()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("waiter acquire() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the freed slot")
	}
	l.release()
}

func TestLoadLimiter_ContextCancelled(t *testing.T) {
	l := newLoadLimiter(1, time.Second)

	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	defer l.release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("acquire() error = %v, want context.Canceled", err)
	}
}
