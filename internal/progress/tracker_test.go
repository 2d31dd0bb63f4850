package progress

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTracker_CapsAtCeiling(t *testing.T) {
	tr := NewTracker(time.Millisecond, 40, nil)
	tr.Start(context.Background())
	defer tr.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for tr.Percent() < Ceiling {
		if time.Now().After(deadline) {
			t.Fatalf("Percent() = %d, never reached %d", tr.Percent(), Ceiling)
		}
		time.Sleep(time.Millisecond)
	}

	time.Sleep(10 * time.Millisecond)
	if got := tr.Percent(); got != Ceiling {
		t.Errorf("Percent() = %d, want capped at %d", got, Ceiling)
	}
}

func TestTracker_CompleteJumpsToDone(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	tr := NewTracker(time.Hour, 5, func(v int) {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
	})
	tr.Start(context.Background())

	tr.Complete()
	tr.Wait()

	if got := tr.Percent(); got != Done {
		t.Errorf("Percent() = %d, want %d", got, Done)
	}
	if !tr.Stopped() {
		t.Error("tracker should be stopped after Complete")
	}

	// Second Complete and Stop are no-ops
	tr.Complete()
	tr.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != Done {
		t.Errorf("onChange saw %v, want [100]", seen)
	}
}

func TestTracker_CancelFreezesValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tr := NewTracker(time.Millisecond, 1, nil)
	tr.Start(ctx)

	time.Sleep(5 * time.Millisecond)
	cancel()
	tr.Wait()

	frozen := tr.Percent()
	time.Sleep(5 * time.Millisecond)
	if tr.Percent() != frozen {
		t.Errorf("Percent() moved after teardown: %d -> %d", frozen, tr.Percent())
	}
	if frozen >= Done {
		t.Errorf("cancelled tracker must not report completion, got %d", frozen)
	}
}

func TestTracker_Defaults(t *testing.T) {
	tr := NewTracker(0, 0, nil)
	if tr.interval != 300*time.Millisecond || tr.step != 5 {
		t.Errorf("defaults = %v/%d", tr.interval, tr.step)
	}
}
