// Package sysmon samples system-wide CPU and memory usage, shown next to
// lesson timings so a slow run can be told apart from a busy machine.
package sysmon

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sampler returns the current system usage.
type Sampler func(ctx context.Context) Stats

// Sample collects a single system-wide CPU and memory snapshot. CPU uses a
// zero interval, i.e. the usage since the previous call. Fields whose probe
// fails stay zero.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = clampPercent(vmem.UsedPercent)
	}
	return s
}

// String renders the snapshot as "CPU 12.5% MEM 40.0%".
func (s Stats) String() string {
	return fmt.Sprintf("CPU %.1f%% MEM %.1f%%", s.CPUPercent, s.MemPercent)
}

func clampPercent(p float64) float64 {
	return min(max(p, 0), 100)
}
