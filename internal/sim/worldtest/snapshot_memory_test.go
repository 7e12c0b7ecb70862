package worldtest

import (
	"testing"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

func TestCacheMemoryBoundHoldsWhileWalking(t *testing.T) {
	cfg := testConfig(1)
	cfg.Cache.MaxEntries = 100
	cfg.Cache.MaxMemoryBytes = 4 * store.Volume

	h := NewHarness(t, cfg)
	for _, k := range Line(60, 3) {
		h.StepAt(k)
		st := h.W.CacheStats()
		if st.Entries > 4 || st.EstimatedBytes > cfg.Cache.MaxMemoryBytes {
			t.Fatalf("cache over budget at %+v: entries=%d bytes=%d", k, st.Entries, st.EstimatedBytes)
		}
	}
	st := h.W.CacheStats()
	if st.Evictions == 0 {
		t.Fatalf("expected evictions while walking")
	}
	if st.PeakBytes > cfg.Cache.MaxMemoryBytes {
		t.Fatalf("peak=%d exceeds bound %d", st.PeakBytes, cfg.Cache.MaxMemoryBytes)
	}
}
