package world

import (
	"voxelcraft.ai/chunkworld/internal/sim/world/spatial"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// GetBlock reports false when pos is outside the vertical range or its
// chunk is not loaded and generated.
func (w *World) GetBlock(pos store.BlockPos) (block.Kind, bool) {
	k, l := store.WorldToLocal(pos)
	ch, ok := w.index.Get(k)
	if !ok || !ch.Generated {
		return block.Air, false
	}
	return ch.Block(l)
}

// SetBlock edits one voxel and marks the owning chunk's mesh dirty, plus
// every loaded neighbour sharing a face with the edited voxel.
func (w *World) SetBlock(pos store.BlockPos, kind block.Kind) bool {
	if !kind.Valid() {
		return false
	}
	k, l := store.WorldToLocal(pos)
	ch, ok := w.index.Get(k)
	if !ok || !ch.Generated {
		return false
	}
	if !ch.SetBlock(l, kind) {
		return false
	}
	ch.MeshDirty = true
	for _, d := range boundaryDirections(l) {
		if n, ok := w.index.Get(d.Step(k)); ok {
			n.MeshDirty = true
		}
	}
	return true
}

func boundaryDirections(l store.LocalPos) []spatial.Direction {
	var out []spatial.Direction
	if l.X == 0 {
		out = append(out, spatial.West)
	}
	if l.X == store.Size-1 {
		out = append(out, spatial.East)
	}
	if l.Z == 0 {
		out = append(out, spatial.North)
	}
	if l.Z == store.Size-1 {
		out = append(out, spatial.South)
	}
	return out
}
