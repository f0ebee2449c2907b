// Package sysinfo pins the calling process to a dedicated CPU core and
// reports host diagnostics at startup, per the one-core-per-role
// concurrency model.
package sysinfo

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"golang.org/x/sys/unix"
)

// PinToCore restricts the current OS thread's scheduling affinity to a
// single core. Call this from main, before spawning any other goroutine
// that should inherit the pin, since affinity is a property of the OS
// thread, not the process.
func PinToCore(core int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(core)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("pin to core %d: %w", core, err)
	}
	return nil
}

// LogStartup writes a one-line summary of host CPU count and load average,
// purely diagnostic: it never gates startup on the values it reports.
func LogStartup(logger *slog.Logger, role string, core int) {
	counts, err := cpu.Counts(true)
	if err != nil {
		logger.Warn("cpu count unavailable", "error", err)
		counts = runtime.NumCPU()
	}

	avg, err := load.Avg()
	if err != nil {
		logger.Info("startup", "role", role, "pinned_core", core, "logical_cpus", counts)
		return
	}

	logger.Info("startup",
		"role", role,
		"pinned_core", core,
		"logical_cpus", counts,
		"load1", avg.Load1,
		"load5", avg.Load5,
	)
}
