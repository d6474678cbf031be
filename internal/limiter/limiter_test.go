package limiter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTryAcquireRespectsCapacity(t *testing.T) {
	l := New(3)

	var permits []*Permit
	for i := 0; i < 3; i++ {
		p, ok := l.TryAcquire()
		if !ok {
			t.Fatalf("TryAcquire() #%d failed below capacity", i)
		}
		permits = append(permits, p)
	}

	if _, ok := l.TryAcquire(); ok {
		t.Error("TryAcquire() should fail at capacity")
	}
	if l.Available() != 0 || l.Held() != 3 {
		t.Errorf("Available()=%d Held()=%d, expected 0 and 3", l.Available(), l.Held())
	}

	permits[0].Release()
	if l.Available() != 1 {
		t.Errorf("Available() = %d after release, expected 1", l.Available())
	}
}

func TestPermitReleaseIsIdempotent(t *testing.T) {
	l := New(2)
	p, _ := l.TryAcquire()

	p.Release()
	p.Release()
	p.Release()

	if l.Available() != 2 {
		t.Errorf("Available() = %d, expected 2 after repeated release", l.Available())
	}

	// A double release must not have minted an extra slot
	a, _ := l.TryAcquire()
	b, _ := l.TryAcquire()
	if _, ok := l.TryAcquire(); ok {
		t.Error("repeated Release should not raise capacity")
	}
	a.Release()
	b.Release()

	var nilPermit *Permit
	nilPermit.Release()
}

func TestAcquireTimesOutWithErrBusy(t *testing.T) {
	l := New(1)
	held, _ := l.TryAcquire()
	defer held.Release()

	start := time.Now()
	_, err := l.Acquire(context.Background(), 20*time.Millisecond)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("Acquire() error = %v, expected ErrBusy", err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("Acquire() returned after %v, expected to wait", elapsed)
	}
}

func TestAcquireReturnsContextError(t *testing.T) {
	l := New(1)
	held, _ := l.TryAcquire()
	defer held.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Acquire(ctx, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, expected context.Canceled", err)
	}
}

func TestAcquireWakesOnRelease(t *testing.T) {
	l := New(1)
	held, _ := l.TryAcquire()

	go func() {
		time.Sleep(10 * time.Millisecond)
		held.Release()
	}()

	p, err := l.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	p.Release()
}

func TestConcurrentHoldersNeverExceedCapacity(t *testing.T) {
	const capacity = 4
	l := New(capacity)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		current int
		peak    int
	)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := l.Acquire(context.Background(), time.Second)
			if err != nil {
				return
			}
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
			p.Release()
		}()
	}
	wg.Wait()

	if peak > capacity {
		t.Errorf("peak holders = %d, expected <= %d", peak, capacity)
	}
	if l.Available() != capacity {
		t.Errorf("Available() = %d after all releases, expected %d", l.Available(), capacity)
	}
}
