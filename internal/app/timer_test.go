package app

import (
	"sync"
	"testing"
	"time"
)

func TestRoundTimerCountsDownAndClamps(t *testing.T) {
	var expiries int
	timer := NewRoundTimer(60, 0, func(ev TimerEvent) {
		if ev.Expired {
			expiries++
		}
	})
	timer.Start()

	for i := 0; i < 60; i++ {
		timer.Advance()
	}
	if timer.Remaining() != 0 || !timer.Expired() {
		t.Fatalf("expected expired timer, remaining %d", timer.Remaining())
	}
	for i := 0; i < 5; i++ {
		if got := timer.Advance(); got != 0 {
			t.Fatalf("expected timer to stay at 0, got %d", got)
		}
	}
	if expiries != 1 {
		t.Fatalf("expected exactly one expiry, got %d", expiries)
	}

	timer.Reset()
	if timer.Remaining() != 60 || timer.Expired() {
		t.Fatalf("expected reset to 60, got %d", timer.Remaining())
	}
	timer.Advance()
	if timer.Remaining() != 59 {
		t.Fatalf("expected timer running again, got %d", timer.Remaining())
	}
}

func TestRoundTimerResetReplacesTicker(t *testing.T) {
	tickers := &tickerFactory{}
	events := make(chan TimerEvent, 8)
	timer := newRoundTimerWithTicker(3, time.Second, func(ev TimerEvent) { events <- ev }, tickers.new)

	gen := timer.Start()
	first := tickers.at(t, 0)
	first.ch <- time.Now()
	if ev := waitEvent(t, events); ev.Remaining != 2 || ev.Generation != gen {
		t.Fatalf("unexpected event %+v", ev)
	}

	next := timer.Reset()
	if next == gen {
		t.Fatalf("expected a new generation after reset")
	}
	waitClosed(t, first.stopped, "first ticker stopped")

	second := tickers.at(t, 1)
	second.ch <- time.Now()
	if ev := waitEvent(t, events); ev.Remaining != 2 || ev.Generation != next {
		t.Fatalf("unexpected event after reset %+v", ev)
	}
	if n := tickers.count(); n != 2 {
		t.Fatalf("expected two tickers created, got %d", n)
	}

	timer.Stop()
	waitClosed(t, second.stopped, "second ticker stopped")
}

func TestRoundTimerExpiresOnceAndStopsTicking(t *testing.T) {
	tickers := &tickerFactory{}
	events := make(chan TimerEvent, 8)
	timer := newRoundTimerWithTicker(2, time.Second, func(ev TimerEvent) { events <- ev }, tickers.new)
	timer.Start()

	tk := tickers.at(t, 0)
	tk.ch <- time.Now()
	waitEvent(t, events)
	tk.ch <- time.Now()
	if ev := waitEvent(t, events); !ev.Expired || ev.Remaining != 0 {
		t.Fatalf("expected expiry event, got %+v", ev)
	}
	waitClosed(t, tk.stopped, "ticker stopped after expiry")

	select {
	case ev := <-events:
		t.Fatalf("unexpected event after expiry %+v", ev)
	default:
	}
}

func TestRoundTimerRealClock(t *testing.T) {
	expired := make(chan struct{})
	timer := NewRoundTimer(3, 5*time.Millisecond, func(ev TimerEvent) {
		if ev.Expired {
			close(expired)
		}
	})
	timer.Start()
	defer timer.Stop()

	waitClosed(t, expired, "expiry")
	if timer.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", timer.Remaining())
	}
}

type fakeTicker struct {
	ch      chan time.Time
	stopped chan struct{}
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { close(f.stopped) }

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *tickerFactory) new(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk := &fakeTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
	f.tickers = append(f.tickers, tk)
	return tk
}

func (f *tickerFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func (f *tickerFactory) at(t *testing.T, i int) *fakeTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.tickers) {
		t.Fatalf("expected ticker %d, only %d created", i, len(f.tickers))
	}
	return f.tickers[i]
}

func waitEvent(t *testing.T, events <-chan TimerEvent) TimerEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for timer event")
	}
	return TimerEvent{}
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
