package autoload

import (
	"context"
	"sync"
	"time"
)

// slot is the transient per-name generation record. It exists only for
// the race window of a first resolution and is reclaimed on release.
type slot struct {
	done    chan struct{}
	waiters int
}

// coordinator serializes handler generation per name. The first caller to
// miss on a name becomes the owner of its slot and runs the resolver;
// callers arriving during the window wait on the slot without blocking
// dispatch of unrelated names.
type coordinator struct {
	mu    sync.Mutex
	slots map[string]*slot
}

func newCoordinator() *coordinator {
	return &coordinator{
		slots: make(map[string]*slot),
	}
}

// acquire returns the slot for name and whether the caller owns it.
// Non-owners must call wait (and abandon on failure); owners must call
// release exactly once.
func (co *coordinator) acquire(name string) (*slot, bool) {
	co.mu.Lock()
	defer co.mu.Unlock()
	if s, ok := co.slots[name]; ok {
		s.waiters++
		return s, false
	}
	s := &slot{done: make(chan struct{})}
	co.slots[name] = s
	return s, true
}

// release completes a generation: the slot is reclaimed and all current
// waiters are woken to retry their lookup.
func (co *coordinator) release(name string, s *slot) {
	co.mu.Lock()
	delete(co.slots, name)
	co.mu.Unlock()
	close(s.done)
}

// abandon removes a waiter that gave up (cancellation or timeout). The
// generation proceeds unaffected for the remaining waiters.
func (co *coordinator) abandon(s *slot) {
	co.mu.Lock()
	if s.waiters > 0 {
		s.waiters--
	}
	co.mu.Unlock()
}

// wait blocks until the in-progress generation for the slot completes.
// A zero timeout waits indefinitely (subject to ctx). On expiry the
// caller gets ErrGenerationTimeout; the stuck generation is left to its
// own fate.
func (co *coordinator) wait(ctx context.Context, s *slot, timeout time.Duration) error {
	var expiry <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expiry = timer.C
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		co.abandon(s)
		return ctx.Err()
	case <-expiry:
		co.abandon(s)
		return ErrGenerationTimeout
	}
}
