package store

import (
	"fmt"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
)

// Snapshot is a detached copy of a chunk's voxel and biome data.
type Snapshot struct {
	Key    ChunkKey
	Voxels []block.Kind
	Biomes []BiomeSample
}

func (c *Chunk) Snapshot() Snapshot {
	voxels := make([]block.Kind, len(c.voxels.cells))
	copy(voxels, c.voxels.cells)
	biomes := make([]BiomeSample, len(c.biomes.samples))
	copy(biomes, c.biomes.samples)
	return Snapshot{Key: c.Key, Voxels: voxels, Biomes: biomes}
}

// Restore rebuilds a generated chunk that still needs a mesh.
func Restore(s Snapshot) (*Chunk, error) {
	if len(s.Voxels) != Volume {
		return nil, fmt.Errorf("snapshot voxels length mismatch: got %d want %d", len(s.Voxels), Volume)
	}
	if len(s.Biomes) != Area {
		return nil, fmt.Errorf("snapshot biomes length mismatch: got %d want %d", len(s.Biomes), Area)
	}
	ch := NewChunk(s.Key)
	copy(ch.voxels.cells, s.Voxels)
	copy(ch.biomes.samples, s.Biomes)
	ch.Generated = true
	ch.MeshDirty = true
	return ch, nil
}
