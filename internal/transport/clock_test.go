package transport

import (
	"testing"
	"time"
)

func TestHybridWaitHoldsFramePeriod(t *testing.T) {
	started := Now()
	next := HybridWait(started)

	elapsed := next.Sub(started)
	if elapsed < FramePeriod {
		t.Errorf("elapsed = %v, want at least %v", elapsed, FramePeriod)
	}
	// Generous tolerance for a test running under a shared scheduler;
	// the jitter property itself is an end-to-end scenario, not a unit test.
	if elapsed > FramePeriod+5*time.Millisecond {
		t.Errorf("elapsed = %v, want within 5ms of %v", elapsed, FramePeriod)
	}
}

func TestHybridWaitAlreadyPastDeadline(t *testing.T) {
	started := Now().Add(-2 * FramePeriod)
	next := HybridWait(started)
	if next.Before(started) {
		t.Errorf("next = %v should not precede started = %v", next, started)
	}
}
