// Package sysmon samples system-wide CPU and memory usage around long
// arithmetic workloads.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64  // bytes of physical memory in use
	Goroutines int     // goroutines alive in this process
}

// Prime takes a throwaway CPU reading so that the next Sample reports usage
// over the interval since this call rather than since process start.
func Prime() {
	_, _ = cpu.Percent(0, false)
}

// Sample collects a system-wide CPU and memory snapshot. The CPU figure
// covers the interval since the previous Prime or Sample call. Readings that
// fail are left at zero.
func Sample() Stats {
	s := Stats{Goroutines: runtime.NumGoroutine()}
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemUsed = vmem.Used
	}
	return s
}
