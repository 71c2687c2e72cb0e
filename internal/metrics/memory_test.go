package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	delta := mc.Delta()

	if delta.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	// GC counters only move forward.
	if delta.GCCycles > 1<<31 {
		t.Errorf("GCCycles wrapped: %d", delta.GCCycles)
	}
}

func TestMemoryCollector_DeltaTracksGrowth(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	sink := make([]byte, 1<<20)
	sink[0] = 1

	delta := mc.Delta()
	// A GC between the baseline and the delta can shrink the heap, so only
	// check that the reading is coherent with a fresh snapshot.
	snap := mc.Snapshot()
	if delta.HeapObjects == 0 && snap.HeapObjects != 0 {
		t.Error("HeapObjects should be populated")
	}
	_ = sink
}
