package gen

import "voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"

// Stats summarizes one populated chunk.
type Stats struct {
	MinHeight int
	MaxHeight int
	AvgHeight float64
	Biomes    map[store.Biome]int
}

// Populate fills every column of ch from world coordinates and marks it
// generated and mesh-dirty. Re-populating yields identical content.
func (g *Generator) Populate(ch *store.Chunk) Stats {
	st := Stats{MinHeight: store.Height, Biomes: map[store.Biome]int{}}
	sum := 0
	origin := ch.MinBlockPosition()
	for lz := 0; lz < store.Size; lz++ {
		for lx := 0; lx < store.Size; lx++ {
			col := g.Column(origin.X+lx, origin.Z+lz)
			ch.SetColumn(lx, lz, col.Blocks[:])
			ch.SetBiome(lx, lz, store.BiomeSample{
				Temperature: float32(col.Temperature),
				Moisture:    float32(col.Moisture),
				Biome:       col.Biome,
			})
			if col.Height < st.MinHeight {
				st.MinHeight = col.Height
			}
			if col.Height > st.MaxHeight {
				st.MaxHeight = col.Height
			}
			sum += col.Height
			st.Biomes[col.Biome]++
		}
	}
	st.AvgHeight = float64(sum) / float64(store.Area)
	ch.Generated = true
	ch.MeshDirty = true
	return st
}
