package transport

import (
	"time"

	"golang.org/x/sys/unix"
)

// FramePeriod is the nominal 1/240 s frame budget.
const FramePeriod = time.Second / 240

const (
	sleepThreshold = 200 * time.Microsecond
	sleepMargin    = 100 * time.Microsecond
)

// monotonicRaw returns the current CLOCK_MONOTONIC_RAW reading, which is
// immune to NTP slew/step adjustments — the stable reference the hybrid
// wait measures against.
func monotonicRaw() time.Time {
	var ts unix.Timespec
	// CLOCK_MONOTONIC_RAW is always available on Linux; a failure here
	// indicates a kernel/syscall-table mismatch this process cannot
	// recover from.
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		panic("clock_gettime(CLOCK_MONOTONIC_RAW): " + err.Error())
	}
	return time.Unix(ts.Sec, ts.Nsec)
}

// HybridWait blocks until FramePeriod has elapsed since started, amortizing
// CPU over the bulk of the 4.167 ms budget with a timed sleep and closing
// the final sub-kernel-granularity interval with a tight spin. Returns the
// timestamp to use as the next cycle's started reference.
func HybridWait(started time.Time) time.Time {
	for {
		now := monotonicRaw()
		elapsed := now.Sub(started)
		if elapsed >= FramePeriod {
			return now
		}

		remaining := FramePeriod - elapsed
		if remaining > sleepThreshold {
			time.Sleep(remaining - sleepMargin)
			continue
		}
		// Spin phase: tight poll through the final microseconds.
	}
}

// Now exposes the monotonic raw clock for callers outside this package
// (the Sender's main loop uses it to stamp the frame-start reference).
func Now() time.Time {
	return monotonicRaw()
}
