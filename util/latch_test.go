package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatch_FanOut(t *testing.T) {
	latch := NewLatch()

	const waiters = 8

	var wg sync.WaitGroup
	resumed := make(chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			latch.Wait()
			resumed <- struct{}{}
		}()
	}

	assert.False(t, latch.IsSet())

	latch.Notify()
	wg.Wait()
	assert.Len(t, resumed, waiters)
	assert.True(t, latch.IsSet())

	// a waiter arriving after the transition returns immediately
	latch.Wait()
}

func TestLatch_NotifyIsIdempotent(t *testing.T) {
	latch := NewLatch()

	latch.Notify()
	latch.Notify()
	latch.Notify()

	assert.True(t, latch.IsSet())
	latch.Wait()
}

func TestLatch_DoneSupportsSelect(t *testing.T) {
	latch := NewLatch()

	select {
	case <-latch.Done():
		t.Fatal("latch should not be set yet")
	default:
	}

	// abandoning a timed-out wait leaves the latch unaffected
	select {
	case <-latch.Done():
		t.Fatal("latch should not be set yet")
	case <-time.After(10 * time.Millisecond):
	}
	assert.False(t, latch.IsSet())

	latch.Notify()

	select {
	case <-latch.Done():
	case <-time.After(time.Second):
		t.Fatal("latch never became observable")
	}
}
