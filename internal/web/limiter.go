package web

// limiter.go bounds concurrent roster loads. Parsing a workbook or walking
// the AppSheet placement cascade can hold memory and an outbound connection
// for a while, so parallel loads are capped with a semaphore. When every slot
// is occupied a request waits up to maxWait for one to free before failing
// with ErrTooManyLoads.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyLoads is returned when all load slots stay occupied for the full
// wait window. Clients should retry after a short delay.
var ErrTooManyLoads = errors.New("too many concurrent roster loads, please try again later")

type loadLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active int
}

func newLoadLimiter(maxConcurrent int, maxWait time.Duration) *loadLimiter {
	return &loadLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// acquire blocks until a slot frees, the wait window expires, or ctx is
// cancelled. The caller must release() after a nil return.
func (l *loadLimiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyLoads
	}
}

func (l *loadLimiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.slots
}

func (l *loadLimiter) activeCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}
