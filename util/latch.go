package util

import "sync"

// Latch is a one-way boolean completion signal. It starts unset, transitions
// to set exactly once, and wakes every current and future waiter. Waiters
// that arrive after the transition return immediately.
type Latch struct {
	once sync.Once
	done chan struct{}
}

func NewLatch() *Latch {
	return &Latch{
		done: make(chan struct{}),
	}
}

// Notify sets the latch. Calling it again is a no-op.
func (me *Latch) Notify() {
	me.once.Do(func() {
		close(me.done)
	})
}

// Wait blocks until the latch is set.
func (me *Latch) Wait() {
	<-me.done
}

// Done exposes the latch as a channel so callers can select against their
// own timeouts. Abandoning such a wait leaves the latch and other waiters
// untouched.
func (me *Latch) Done() <-chan struct{} {
	return me.done
}

func (me *Latch) IsSet() bool {
	select {
	case <-me.done:
		return true
	default:
		return false
	}
}
