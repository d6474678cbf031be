// Package limiter bounds how many entities may be alive at once.
// It wraps a weighted semaphore with single-use permits so a slot can be
// handed back from whichever path notices the entity's death first.
package limiter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned by Acquire when no slot freed up within the wait.
var ErrBusy = errors.New("limiter: at capacity")

// Limiter is a counting admission primitive with a fixed capacity.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int64
	held     atomic.Int64
}

// New creates a limiter admitting at most capacity holders.
func New(capacity int) *Limiter {
	if capacity < 0 {
		capacity = 0
	}
	return &Limiter{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}
}

// Acquire waits at most wait for a free slot.
// Returns ErrBusy on timeout, or the context error if ctx ended first.
func (l *Limiter) Acquire(ctx context.Context, wait time.Duration) (*Permit, error) {
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrBusy
	}
	return l.grant(), nil
}

// TryAcquire takes a slot without blocking.
func (l *Limiter) TryAcquire() (*Permit, bool) {
	if !l.sem.TryAcquire(1) {
		return nil, false
	}
	return l.grant(), true
}

func (l *Limiter) grant() *Permit {
	l.held.Add(1)
	return &Permit{limiter: l}
}

// Capacity returns the maximum number of concurrent holders.
func (l *Limiter) Capacity() int {
	return int(l.capacity)
}

// Held returns the number of permits currently outstanding.
func (l *Limiter) Held() int {
	return int(l.held.Load())
}

// Available returns how many permits can still be granted.
func (l *Limiter) Available() int {
	return int(l.capacity - l.held.Load())
}

// Permit is one admitted slot. Release is idempotent.
type Permit struct {
	limiter *Limiter
	once    sync.Once
}

// Release returns the slot to the limiter. Only the first call has an effect,
// and a nil permit is a no-op.
func (p *Permit) Release() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		p.limiter.held.Add(-1)
		p.limiter.sem.Release(1)
	})
}
