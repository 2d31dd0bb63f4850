// Package progress drives a cosmetic progress percentage while a request
// is outstanding. The numbers are not derived from real telemetry.
package progress

import (
	"context"
	"sync"
	"time"
)

const (
	// Ceiling is the highest value reached before Complete.
	Ceiling = 90
	// Done is reported once the awaited work finished.
	Done = 100
)

// Tracker increments a percentage on a timer, capped at Ceiling.
type Tracker struct {
	interval time.Duration
	step     int

	mu       sync.Mutex
	percent  int
	stopped  bool
	onChange func(int)

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewTracker returns a tracker adding step every interval. onChange, if
// non-nil, is called with each new value outside the tracker's lock.
func NewTracker(interval time.Duration, step int, onChange func(int)) *Tracker {
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	if step <= 0 {
		step = 5
	}
	return &Tracker{
		interval: interval,
		step:     step,
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins ticking until Complete, Stop, or ctx is cancelled.
func (t *Tracker) Start(ctx context.Context) {
	go t.run(ctx)
}

func (t *Tracker) run(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.tick()
		case <-t.stop:
			return
		case <-ctx.Done():
			t.halt()
			return
		}
	}
}

func (t *Tracker) tick() {
	t.mu.Lock()
	if t.stopped || t.percent >= Ceiling {
		t.mu.Unlock()
		return
	}
	t.percent += t.step
	if t.percent > Ceiling {
		t.percent = Ceiling
	}
	value := t.percent
	t.mu.Unlock()

	t.notify(value)
}

// Complete jumps to Done and stops the timer.
func (t *Tracker) Complete() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.percent = Done
	t.stopped = true
	t.mu.Unlock()

	t.once.Do(func() { close(t.stop) })
	t.notify(Done)
}

// Stop freezes the current value and stops the timer.
func (t *Tracker) Stop() {
	t.halt()
	t.once.Do(func() { close(t.stop) })
}

func (t *Tracker) halt() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// Wait blocks until the ticking goroutine exited. Only valid after Start.
func (t *Tracker) Wait() {
	<-t.done
}

// Percent returns the current value.
func (t *Tracker) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.percent
}

// Stopped reports whether the tracker no longer ticks.
func (t *Tracker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *Tracker) notify(value int) {
	if t.onChange != nil {
		t.onChange(value)
	}
}
