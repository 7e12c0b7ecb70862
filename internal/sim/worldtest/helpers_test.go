package worldtest

import (
	"testing"

	"voxelcraft.ai/chunkworld/internal/sim/world"
	"voxelcraft.ai/chunkworld/internal/sim/world/cache"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/gen"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

func testConfig(rd int) world.Config {
	return world.Config{
		RenderDistance:  rd,
		GeneratePerTick: 3,
		Gen:             gen.DefaultParams(),
		Cache:           cache.Config{MaxEntries: 64},
	}
}

// surfaceY returns the highest non-air y in the column at (x, z).
func surfaceY(h *Harness, x, z int) int {
	h.T.Helper()
	for y := store.Height - 1; y >= 0; y-- {
		if h.Block(x, y, z) != block.Air {
			return y
		}
	}
	h.T.Fatalf("column (%d,%d) is empty", x, z)
	return -1
}

func sameKeys(t *testing.T, a, b []store.ChunkKey) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("key count mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("key %d mismatch: %+v vs %+v", i, a[i], b[i])
		}
	}
}
