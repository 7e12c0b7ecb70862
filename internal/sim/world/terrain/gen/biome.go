package gen

import (
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// Classify applies the threshold table: elevation bands first, then the
// (temperature, moisture) quadrant.
func Classify(th Thresholds, height int, temperature, moisture float64) store.Biome {
	switch {
	case height < th.LowlandHeight:
		if moisture < th.BeachMoisture {
			return store.Beach
		}
		return store.Swamp
	case height > th.SnowHeight:
		return store.SnowyMountain
	case height > th.MountainHeight:
		return store.Mountain
	case height > th.HillsHeight:
		return store.Hills
	}
	switch {
	case temperature < th.ColdTemp:
		return store.Tundra
	case temperature > th.HotTemp:
		if moisture < th.DryMoisture {
			return store.Desert
		}
		if moisture > th.WetMoisture {
			return store.Swamp
		}
		return store.Plains
	default:
		if moisture > th.WetMoisture {
			return store.Swamp
		}
		if moisture > th.ForestMoisture {
			return store.Forest
		}
		return store.Plains
	}
}

func surfaceBlock(b store.Biome) block.Kind {
	switch b {
	case store.Desert, store.Beach:
		return block.Sand
	case store.Mountain:
		return block.Stone
	case store.SnowyMountain, store.Tundra:
		return block.Snow
	default:
		return block.Grass
	}
}

func fillerBlock(b store.Biome) block.Kind {
	switch b {
	case store.Desert, store.Beach:
		return block.Sand
	case store.Mountain:
		return block.Gravel
	default:
		return block.Dirt
	}
}

func stoneBias(b store.Biome) float64 {
	switch b {
	case store.Mountain, store.SnowyMountain:
		return 0.05
	case store.Hills:
		return 0.02
	case store.Desert, store.Beach:
		return -0.05
	case store.Swamp:
		return -0.03
	default:
		return 0
	}
}

// StoneFraction grows from 0.6 to 0.9 with height, shifted per biome.
func StoneFraction(height int, b store.Biome) float64 {
	f := 0.6 + 0.3*float64(height)/float64(store.Height-1) + stoneBias(b)
	if f < 0.6 {
		return 0.6
	}
	if f > 0.9 {
		return 0.9
	}
	return f
}

func exposesStone(b store.Biome) bool {
	return b == store.Hills || b == store.Mountain || b == store.SnowyMountain
}

func compose(c *Column) {
	h := c.Height
	c.StoneTop = int(float64(h) * StoneFraction(h, c.Biome))
	if c.StoneTop < 1 {
		c.StoneTop = 1
	}
	filler := fillerBlock(c.Biome)

	c.Blocks[0] = block.Bedrock
	for y := 1; y < h; y++ {
		if y < c.StoneTop {
			c.Blocks[y] = block.Stone
		} else {
			c.Blocks[y] = filler
		}
	}
	c.Blocks[h] = surfaceBlock(c.Biome)

	// Beach-elevation sand band; never replaces the surface block.
	if h > 5 && h < 12 {
		for y := 3; y <= 6 && y < h; y++ {
			c.Blocks[y] = block.Sand
		}
	}
	// Exposed rock just under high ground.
	if h > 30 && exposesStone(c.Biome) {
		for y := h - 3; y < h; y++ {
			c.Blocks[y] = block.Stone
		}
	}
}
