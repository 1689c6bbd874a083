package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesRapidCalls(t *testing.T) {
	d := New(50 * time.Millisecond)
	defer d.Stop()

	var fired int32
	for i := 0; i < 5; i++ {
		d.Call(func() { atomic.AddInt32(&fired, 1) })
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired), "rapid calls should coalesce into one invocation")
}

func TestDebouncer_LastFunctionWins(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Stop()

	var got atomic.Value
	d.Call(func() { got.Store("first") })
	d.Call(func() { got.Store("second") })

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "second", got.Load())
}

func TestDebouncer_CancelDropsPendingButStaysUsable(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Stop()

	var fired int32
	d.Call(func() { atomic.AddInt32(&fired, 1) })
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired), "cancelled invocation should not fire")

	d.Call(func() { atomic.AddInt32(&fired, 1) })
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired), "debouncer should accept calls after Cancel")
}

func TestDebouncer_CancelWinsAgainstFiringTimer(t *testing.T) {
	// Cancel near the firing instant: once Cancel has returned, an already
	// fired timer whose callback has not yet run must still be suppressed.
	var fired int32
	for i := 0; i < 100; i++ {
		d := New(50 * time.Microsecond)
		d.Call(func() { atomic.AddInt32(&fired, 1) })
		time.Sleep(50 * time.Microsecond)
		d.Cancel()

		after := atomic.LoadInt32(&fired)
		time.Sleep(time.Millisecond)
		assert.Equal(t, after, atomic.LoadInt32(&fired), "no invocation may land after Cancel returns")
		d.Stop()
	}
}

func TestDebouncer_StopIsTerminal(t *testing.T) {
	d := New(30 * time.Millisecond)

	var fired int32
	d.Call(func() { atomic.AddInt32(&fired, 1) })
	d.Stop()

	d.Call(func() { atomic.AddInt32(&fired, 1) })
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&fired), "nothing should fire after Stop")

	// Stop is idempotent
	d.Stop()
}
