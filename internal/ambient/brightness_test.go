package ambient

import "testing"

// Scenario 4 from the testable-properties section: feeding lux
// [0, 10000, 10000, ...] starting from current=1 must step by at most 5
// per cycle and converge to 100, beginning 1, 6, 11, 16, ...
func TestSmootherRateLimitedRamp(t *testing.T) {
	s := NewSmoother(1)

	lux := []float64{0, 10000, 10000, 10000, 10000, 10000, 10000, 10000, 10000, 10000, 10000}
	want := []int{1, 6, 11, 16, 21, 26, 31, 36, 41, 46, 51}

	for i, l := range lux {
		got, _ := s.Step(l)
		if got != want[i] {
			t.Fatalf("step %d: got %d, want %d", i, got, want[i])
		}
	}
}

func TestSmootherConvergesToCeiling(t *testing.T) {
	s := NewSmoother(1)
	var last int
	for i := 0; i < 40; i++ {
		last, _ = s.Step(10000)
	}
	if last != 100 {
		t.Fatalf("got %d after 40 high-lux samples, want converged at 100", last)
	}
}

func TestSmootherStaysInBounds(t *testing.T) {
	s := NewSmoother(50)
	sequence := []float64{0, 0, 0, 50000, 0, 0, 50000, 50000, 0, 1000}
	for _, l := range sequence {
		v, _ := s.Step(l)
		if v < 1 || v > 100 {
			t.Fatalf("brightness %d out of bounds [1,100]", v)
		}
	}
}

func TestSmootherNoChangeReportsUnchanged(t *testing.T) {
	s := NewSmoother(1)
	// lux=0 maps to brightness 1, which is already current; no movement.
	_, changed := s.Step(0)
	if changed {
		t.Fatal("expected unchanged on first zero-lux sample from current=1")
	}
}
