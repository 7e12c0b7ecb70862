package store

import "voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"

// VoxelGrid is a flat Size×Height×Size array indexed y*Area + z*Size + x.
type VoxelGrid struct {
	cells []block.Kind
}

func NewVoxelGrid() VoxelGrid {
	return VoxelGrid{cells: make([]block.Kind, Volume)}
}

func index(l LocalPos) int {
	return l.Y*Area + l.Z*Size + l.X
}

func (g *VoxelGrid) Get(l LocalPos) (block.Kind, bool) {
	if !l.InRange() || g.cells == nil {
		return block.Air, false
	}
	return g.cells[index(l)], true
}

// Set ignores out-of-range positions.
func (g *VoxelGrid) Set(l LocalPos, k block.Kind) {
	if !l.InRange() || g.cells == nil {
		return
	}
	g.cells[index(l)] = k
}

// Count returns the number of non-air voxels.
func (g *VoxelGrid) Count() int {
	n := 0
	for _, k := range g.cells {
		if k != block.Air {
			n++
		}
	}
	return n
}

func (g *VoxelGrid) bytes() []byte {
	out := make([]byte, len(g.cells))
	for i, k := range g.cells {
		out[i] = byte(k)
	}
	return out
}

// Biome labels follow the uppercase naming used by the generator.
type Biome string

const (
	Plains        Biome = "PLAINS"
	Forest        Biome = "FOREST"
	Desert        Biome = "DESERT"
	Swamp         Biome = "SWAMP"
	Tundra        Biome = "TUNDRA"
	Beach         Biome = "BEACH"
	Hills         Biome = "HILLS"
	Mountain      Biome = "MOUNTAIN"
	SnowyMountain Biome = "SNOWY_MOUNTAIN"
)

type BiomeSample struct {
	Temperature float32
	Moisture    float32
	Biome       Biome
}

// BiomeField holds one sample per column, indexed z*Size + x.
type BiomeField struct {
	samples []BiomeSample
}

func NewBiomeField() BiomeField {
	return BiomeField{samples: make([]BiomeSample, Area)}
}

func columnInRange(lx, lz int) bool {
	return lx >= 0 && lx < Size && lz >= 0 && lz < Size
}

func (f *BiomeField) Get(lx, lz int) (BiomeSample, bool) {
	if !columnInRange(lx, lz) || f.samples == nil {
		return BiomeSample{}, false
	}
	return f.samples[lz*Size+lx], true
}

func (f *BiomeField) Set(lx, lz int, s BiomeSample) {
	if !columnInRange(lx, lz) || f.samples == nil {
		return
	}
	f.samples[lz*Size+lx] = s
}
