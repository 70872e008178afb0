package app

import (
	"sync"
	"time"
)

// Ticker abstracts time.Ticker so tests can drive the clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func newRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// TimerEvent is delivered to the listener after every applied tick.
type TimerEvent struct {
	Generation uint64
	Remaining  int
	Expired    bool
}

// RoundTimer counts a round down to zero, one unit per tick.
// Arming always cancels the previous ticker, so there is at most one ticking
// goroutine per timer. With a zero interval the timer only moves on Advance.
type RoundTimer struct {
	length    int
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	listener  func(TimerEvent)

	mu         sync.Mutex
	remaining  int
	generation uint64
	cancel     func()
}

// NewRoundTimer returns a timer at length that is not yet ticking.
func NewRoundTimer(length int, interval time.Duration, listener func(TimerEvent)) *RoundTimer {
	return newRoundTimerWithTicker(length, interval, listener, newRealTicker)
}

// newRoundTimerWithTicker allows tests to supply their own tickers.
func newRoundTimerWithTicker(length int, interval time.Duration, listener func(TimerEvent), newTicker func(time.Duration) Ticker) *RoundTimer {
	if listener == nil {
		listener = func(TimerEvent) {}
	}
	return &RoundTimer{
		length:    length,
		interval:  interval,
		newTicker: newTicker,
		listener:  listener,
		remaining: length,
	}
}

// Start arms the timer without changing the remaining time and returns the
// generation whose events will follow.
func (t *RoundTimer) Start() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armLocked()
	return t.generation
}

// Reset re-arms the timer at the full round length.
func (t *RoundTimer) Reset() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = t.length
	t.armLocked()
	return t.generation
}

// Stop cancels the ticker. Ticks already in flight are dropped.
func (t *RoundTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	t.cancelLocked()
}

// Advance applies one tick synchronously.
func (t *RoundTimer) Advance() int {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()
	t.tick(gen)
	return t.Remaining()
}

// Remaining is the number of seconds left in the round.
func (t *RoundTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Expired reports whether the countdown has reached zero.
func (t *RoundTimer) Expired() bool {
	return t.Remaining() == 0
}

// Length is the configured round length.
func (t *RoundTimer) Length() int {
	return t.length
}

func (t *RoundTimer) armLocked() {
	t.cancelLocked()
	t.generation++
	if t.interval <= 0 || t.remaining == 0 {
		return
	}

	stop := make(chan struct{})
	t.cancel = func() { close(stop) }
	go t.run(t.generation, t.newTicker(t.interval), stop)
}

func (t *RoundTimer) cancelLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *RoundTimer) run(gen uint64, ticker Ticker, stop <-chan struct{}) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			if !t.tick(gen) {
				return
			}
		}
	}
}

// tick decrements the countdown and reports whether the ticker should keep going.
// The listener runs outside the lock.
func (t *RoundTimer) tick(gen uint64) bool {
	t.mu.Lock()
	if gen != t.generation || t.remaining == 0 {
		t.mu.Unlock()
		return false
	}
	t.remaining--
	ev := TimerEvent{Generation: gen, Remaining: t.remaining, Expired: t.remaining == 0}
	if ev.Expired {
		// the ticking goroutine exits on its own
		t.cancel = nil
	}
	t.mu.Unlock()

	t.listener(ev)
	return !ev.Expired
}
