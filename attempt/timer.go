package attempt

import (
	"sync"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Timer is the per-attempt countdown. Ticks that arrive while it is paused are
// dropped, so only time spent answering is counted.
type Timer struct {
	mu        sync.Mutex
	remaining int
	paused    bool
	stopped   bool

	onTick    func(remaining int)
	onExpire  func()
	newTicker TickerFunc

	done     chan struct{}
	stopOnce sync.Once
}

func NewTimer(limitMinutes int, newTicker TickerFunc, onTick func(int), onExpire func()) *Timer {
	if newTicker == nil {
		newTicker = NewStdTicker
	}
	return &Timer{
		remaining: limitMinutes * 60,
		onTick:    onTick,
		onExpire:  onExpire,
		newTicker: newTicker,
		done:      make(chan struct{}),
	}
}

// Start runs the countdown on its own goroutine until it expires or Stop is called.
func (t *Timer) Start() {
	ticker := t.newTicker(time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C():
				if t.Tick() {
					return
				}
			}
		}
	}()
}

// Tick counts down one second and reports whether this tick expired the timer.
// Callbacks run without the timer lock held.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if t.stopped || t.paused {
		t.mu.Unlock()
		return false
	}
	t.remaining--
	remaining := t.remaining
	expired := remaining <= 0
	if expired {
		t.stopped = true
	}
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(remaining)
	}
	if expired && t.onExpire != nil {
		t.onExpire()
	}
	return expired
}

func (t *Timer) Pause() {
	t.mu.Lock()
	t.paused = true
	t.mu.Unlock()
}

func (t *Timer) Resume() {
	t.mu.Lock()
	t.paused = false
	t.mu.Unlock()
}

func (t *Timer) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
	t.stopOnce.Do(func() { close(t.done) })
}

func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining < 0 {
		return 0
	}
	return t.remaining
}

func (t *Timer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining <= 0
}
