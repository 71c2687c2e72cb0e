// Package metrics collects runtime memory statistics for workload reporting.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryDelta summarizes the change between two snapshots taken around a
// workload.
type MemoryDelta struct {
	HeapAlloc   uint64 // heap bytes in use after the workload
	HeapGrowth  int64  // change in heap bytes, may be negative after a GC
	GCCycles    uint32 // GC cycles completed during the workload
	GCPauseNs   uint64 // GC pause time accumulated during the workload
	HeapObjects uint64 // live heap objects after the workload
}

// MemoryCollector reads runtime memory statistics relative to a baseline.
type MemoryCollector struct {
	baseline MemorySnapshot
}

// NewMemoryCollector creates a collector with its baseline set to the
// current memory state.
func NewMemoryCollector() *MemoryCollector {
	mc := &MemoryCollector{}
	mc.baseline = mc.Snapshot()
	return mc
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta reports the change since the collector's baseline.
func (mc *MemoryCollector) Delta() MemoryDelta {
	now := mc.Snapshot()
	return MemoryDelta{
		HeapAlloc:   now.HeapAlloc,
		HeapGrowth:  int64(now.HeapAlloc) - int64(mc.baseline.HeapAlloc),
		GCCycles:    now.NumGC - mc.baseline.NumGC,
		GCPauseNs:   now.PauseTotalNs - mc.baseline.PauseTotalNs,
		HeapObjects: now.HeapObjects,
	}
}
