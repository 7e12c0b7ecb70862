package gen

import (
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

type Params struct {
	Seed int64

	BaseHeight  float64
	HeightScale float64
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64

	TemperatureScale float64
	MoistureScale    float64

	Thresholds Thresholds
}

// Thresholds is the biome classification table.
type Thresholds struct {
	LowlandHeight  int     // below: beach or swamp
	HillsHeight    int     // above: hills
	MountainHeight int     // above: mountain
	SnowHeight     int     // above: snowy mountain
	BeachMoisture  float64 // lowland moisture below: beach
	ColdTemp       float64
	HotTemp        float64
	DryMoisture    float64
	ForestMoisture float64
	WetMoisture    float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		LowlandHeight:  5,
		HillsHeight:    25,
		MountainHeight: 40,
		SnowHeight:     50,
		BeachMoisture:  0.5,
		ColdTemp:       0.35,
		HotTemp:        0.65,
		DryMoisture:    0.4,
		ForestMoisture: 0.55,
		WetMoisture:    0.8,
	}
}

func DefaultParams() Params {
	return Params{
		Seed:             42,
		BaseHeight:       10,
		HeightScale:      40,
		Frequency:        0.01,
		Octaves:          6,
		Persistence:      0.5,
		Lacunarity:       2.0,
		TemperatureScale: 0.005,
		MoistureScale:    0.005,
		Thresholds:       DefaultThresholds(),
	}
}

// applyDefaults fills only fields whose zero value would make the noise
// degenerate. Seed, BaseHeight and HeightScale are meaningful at 0 and kept.
func (p *Params) applyDefaults() {
	d := DefaultParams()
	if p.Frequency == 0 {
		p.Frequency = d.Frequency
	}
	if p.Octaves <= 0 {
		p.Octaves = d.Octaves
	}
	if p.Persistence == 0 {
		p.Persistence = d.Persistence
	}
	if p.Lacunarity == 0 {
		p.Lacunarity = d.Lacunarity
	}
	if p.TemperatureScale == 0 {
		p.TemperatureScale = d.TemperatureScale
	}
	if p.MoistureScale == 0 {
		p.MoistureScale = d.MoistureScale
	}
	if p.Thresholds == (Thresholds{}) {
		p.Thresholds = d.Thresholds
	}
}

// Generator maps world columns to terrain. It holds no mutable state, so
// output depends only on Params and the column's world coordinates.
type Generator struct {
	p Params
}

func New(p Params) *Generator {
	p.applyDefaults()
	return &Generator{p: p}
}

func (g *Generator) Params() Params { return g.p }

// Height returns the surface height of column (x, z), clamped to [2, Height-1].
func (g *Generator) Height(x, z int) int {
	f := g.p.Frequency
	n := FractalNoise(g.p.Seed, float64(x)*f, float64(z)*f, g.p.Octaves, g.p.Persistence, g.p.Lacunarity)
	h := g.p.BaseHeight + g.p.HeightScale*n
	if h < 2 {
		h = 2
	}
	if h > store.Height-1 {
		h = store.Height - 1
	}
	return int(h)
}

const (
	temperatureSeedOffset = 1013
	moistureSeedOffset    = 2027
	climateOctaves        = 3
)

// Climate returns (temperature, moisture), both in [0,1].
func (g *Generator) Climate(x, z int) (float64, float64) {
	ts := g.p.TemperatureScale
	ms := g.p.MoistureScale
	t := FractalNoise(g.p.Seed+temperatureSeedOffset, float64(x)*ts, float64(z)*ts, climateOctaves, 0.5, 2.0)
	m := FractalNoise(g.p.Seed+moistureSeedOffset, float64(x)*ms, float64(z)*ms, climateOctaves, 0.5, 2.0)
	return t, m
}

func (g *Generator) Biome(x, z, height int) store.Biome {
	t, m := g.Climate(x, z)
	return Classify(g.p.Thresholds, height, t, m)
}

// Column is the full vertical composition of one world column.
type Column struct {
	Height      int
	Biome       store.Biome
	Temperature float64
	Moisture    float64
	StoneTop    int
	Blocks      [store.Height]block.Kind
}

func (g *Generator) Column(x, z int) Column {
	h := g.Height(x, z)
	t, m := g.Climate(x, z)
	b := Classify(g.p.Thresholds, h, t, m)
	c := Column{Height: h, Biome: b, Temperature: t, Moisture: m}
	compose(&c)
	return c
}
