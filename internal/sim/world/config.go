package world

import (
	"log"

	"voxelcraft.ai/chunkworld/internal/sim/world/cache"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/gen"
)

type Config struct {
	RenderDistance int
	// At most this many ungenerated chunks are populated per tick.
	GeneratePerTick int
	// 0 rebuilds every dirty mesh each tick.
	MeshesPerTick int
	// Used by Run only.
	TickRateHz int

	Gen   gen.Params
	Cache cache.Config

	// Optional (may be nil).
	Logger *log.Logger
	Sink   MeshSink
}

// MaxTickRateHz bounds Run's ticker interval to at least one millisecond.
const MaxTickRateHz = 1000

func (c *Config) applyDefaults() {
	if c.RenderDistance <= 0 {
		c.RenderDistance = 8
	}
	if c.GeneratePerTick <= 0 {
		c.GeneratePerTick = 2
	}
	if c.MeshesPerTick < 0 {
		c.MeshesPerTick = 0
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 20
	}
	if c.TickRateHz > MaxTickRateHz {
		c.TickRateHz = MaxTickRateHz
	}
	// A zero Params means "not configured".
	if c.Gen == (gen.Params{}) {
		c.Gen = gen.DefaultParams()
	}
}
