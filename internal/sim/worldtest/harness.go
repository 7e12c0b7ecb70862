package worldtest

import (
	"testing"

	"voxelcraft.ai/chunkworld/internal/render/gltfexport"
	"voxelcraft.ai/chunkworld/internal/sim/world"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// Harness drives a world through its exported API only:
// - Step()/StepAt() advance one tick with the player at a chunk
// - Walk() replays a path and returns the digest per tick
// - Settle() steps in place until nothing is pending
//
// Meshes pushed to the sink are kept in Sink for assertions.
type Harness struct {
	T    *testing.T
	W    *world.World
	Sink *gltfexport.Collector

	Last world.TickStats
}

func NewHarness(t *testing.T, cfg world.Config) *Harness {
	t.Helper()

	sink := gltfexport.NewCollector()
	cfg.Sink = sink
	w, err := world.New(cfg)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return &Harness{T: t, W: w, Sink: sink}
}

func (h *Harness) StepAt(player store.ChunkKey) world.TickStats {
	h.T.Helper()
	h.Last = h.W.Step(world.TickInput{Player: player})
	return h.Last
}

// Step repeats the current player position.
func (h *Harness) Step() world.TickStats {
	return h.StepAt(h.W.Player())
}

func (h *Harness) Walk(path []store.ChunkKey) []string {
	h.T.Helper()
	out := make([]string, 0, len(path))
	for _, k := range path {
		out = append(out, h.StepAt(k).Digest)
	}
	return out
}

// Settle steps in place until a tick generates nothing and leaves nothing
// pending. It fails the test after maxTicks.
func (h *Harness) Settle(maxTicks int) int {
	h.T.Helper()
	for i := 1; i <= maxTicks; i++ {
		st := h.Step()
		if st.Pending == 0 && st.Generated == 0 {
			return i
		}
	}
	h.T.Fatalf("world did not settle within %d ticks (pending=%d)", maxTicks, h.Last.Pending)
	return maxTicks
}

func (h *Harness) Block(x, y, z int) block.Kind {
	h.T.Helper()
	k, ok := h.W.GetBlock(store.BlockPos{X: x, Y: y, Z: z})
	if !ok {
		h.T.Fatalf("GetBlock(%d,%d,%d): not loaded", x, y, z)
	}
	return k
}

func (h *Harness) SetBlock(x, y, z int, kind block.Kind) {
	h.T.Helper()
	if !h.W.SetBlock(store.BlockPos{X: x, Y: y, Z: z}, kind) {
		h.T.Fatalf("SetBlock(%d,%d,%d): rejected", x, y, z)
	}
}

// Line returns n steps along +X starting at the origin chunk, advancing one
// chunk every stride steps.
func Line(n, stride int) []store.ChunkKey {
	if stride <= 0 {
		stride = 1
	}
	out := make([]store.ChunkKey, n)
	for i := range out {
		out[i] = store.ChunkKey{CX: i / stride}
	}
	return out
}
