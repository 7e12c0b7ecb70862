package tuning

import (
	"voxelcraft.ai/chunkworld/internal/sim/world"
	"voxelcraft.ai/chunkworld/internal/sim/world/cache"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/gen"
)

func (t Tuning) GenParams() gen.Params {
	g := t.WorldGen
	b := g.Biomes
	return gen.Params{
		Seed:             g.Seed,
		BaseHeight:       g.BaseHeight,
		HeightScale:      g.HeightScale,
		Frequency:        g.Frequency,
		Octaves:          g.Octaves,
		Persistence:      g.Persistence,
		Lacunarity:       g.Lacunarity,
		TemperatureScale: g.TemperatureScale,
		MoistureScale:    g.MoistureScale,
		Thresholds: gen.Thresholds{
			LowlandHeight:  b.LowlandHeight,
			HillsHeight:    b.HillsHeight,
			MountainHeight: b.MountainHeight,
			SnowHeight:     b.SnowHeight,
			BeachMoisture:  b.BeachMoisture,
			ColdTemp:       b.ColdTemp,
			HotTemp:        b.HotTemp,
			DryMoisture:    b.DryMoisture,
			ForestMoisture: b.ForestMoisture,
			WetMoisture:    b.WetMoisture,
		},
	}
}

// WorldConfig maps tuning onto a world config. Logger and sink are left
// for the caller.
func (t Tuning) WorldConfig() world.Config {
	return world.Config{
		RenderDistance:  t.Chunks.RenderDistance,
		GeneratePerTick: t.Chunks.GeneratePerTick,
		MeshesPerTick:   t.Chunks.MeshesPerTick,
		Gen:             t.GenParams(),
		Cache: cache.Config{
			MaxEntries:       t.Cache.MaxEntries,
			MaxMemoryBytes:   int64(t.Cache.MaxMemoryMB) << 20,
			ChunkVolumeBytes: cache.DefaultChunkVolumeBytes,
		},
	}
}
