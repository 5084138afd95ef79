package attempt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerExpiresAfterExactTicks(t *testing.T) {
	expired := 0
	ticks := 0
	timer := NewTimer(1, newManualTicker, func(int) { ticks++ }, func() { expired++ })

	for i := 0; i < 59; i++ {
		assert.False(t, timer.Tick())
	}
	assert.Equal(t, 0, expired)
	assert.Equal(t, 1, timer.Remaining())

	assert.True(t, timer.Tick())
	assert.Equal(t, 1, expired)
	assert.Equal(t, 60, ticks)
	assert.Equal(t, 0, timer.Remaining())

	// Further ticks after expiry are ignored.
	assert.False(t, timer.Tick())
	assert.Equal(t, 1, expired)
}

func TestTimerIgnoresTicksWhilePaused(t *testing.T) {
	timer := NewTimer(1, newManualTicker, nil, nil)

	timer.Tick()
	timer.Pause()
	for i := 0; i < 100; i++ {
		assert.False(t, timer.Tick())
	}
	assert.Equal(t, 59, timer.Remaining())

	timer.Resume()
	timer.Tick()
	assert.Equal(t, 58, timer.Remaining())
}

func TestTimerStopIsIdempotent(t *testing.T) {
	timer := NewTimer(1, newManualTicker, nil, nil)
	timer.Start()
	timer.Stop()
	timer.Stop()

	assert.False(t, timer.Tick())
	assert.Equal(t, 60, timer.Remaining())
}

func TestTimerRunsOnRealTicker(t *testing.T) {
	fired := make(chan struct{})
	ticks := make(chan time.Time)
	timer := NewTimer(1, func(time.Duration) Ticker { return manualTicker{c: ticks} }, nil, func() { close(fired) })
	timer.remaining = 2
	timer.Start()

	ticks <- time.Now()
	ticks <- time.Now()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not expire")
	}
}
