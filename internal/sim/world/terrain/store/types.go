package store

import (
	"crypto/sha256"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
)

const (
	Size   = 16
	Height = 128
	Area   = Size * Size
	Volume = Area * Height
)

type ChunkKey struct {
	CX int
	CZ int
}

// Less orders keys by CX then CZ.
func (k ChunkKey) Less(o ChunkKey) bool {
	if k.CX != o.CX {
		return k.CX < o.CX
	}
	return k.CZ < o.CZ
}

// BlockPos is a world voxel position.
type BlockPos struct {
	X, Y, Z int
}

// LocalPos addresses a voxel inside one chunk.
type LocalPos struct {
	X, Y, Z int
}

func (l LocalPos) InRange() bool {
	return l.X >= 0 && l.X < Size && l.Y >= 0 && l.Y < Height && l.Z >= 0 && l.Z < Size
}

// Priority orders chunk work; lower values are served first.
type Priority uint8

const (
	Visible Priority = iota
	Near
	Far
	Unload
)

func (p Priority) String() string {
	switch p {
	case Visible:
		return "VISIBLE"
	case Near:
		return "NEAR"
	case Far:
		return "FAR"
	default:
		return "UNLOAD"
	}
}

type Chunk struct {
	Key       ChunkKey
	Generated bool
	MeshDirty bool
	Priority  Priority

	voxels VoxelGrid
	biomes BiomeField

	stale bool
	hash  [32]byte
}

// NewChunk returns an empty, ungenerated chunk.
func NewChunk(key ChunkKey) *Chunk {
	return &Chunk{
		Key:      key,
		Priority: Far,
		voxels:   NewVoxelGrid(),
		biomes:   NewBiomeField(),
		stale:    true,
	}
}

func (c *Chunk) Block(l LocalPos) (block.Kind, bool) {
	return c.voxels.Get(l)
}

// SetBlock writes one voxel. It reports false for out-of-range positions.
func (c *Chunk) SetBlock(l LocalPos, k block.Kind) bool {
	prev, ok := c.voxels.Get(l)
	if !ok {
		return false
	}
	if prev != k {
		c.voxels.Set(l, k)
		c.stale = true
	}
	return true
}

// SetColumn overwrites the column at (lx, lz) from y=0 upward.
func (c *Chunk) SetColumn(lx, lz int, col []block.Kind) {
	for y := 0; y < Height && y < len(col); y++ {
		c.voxels.Set(LocalPos{X: lx, Y: y, Z: lz}, col[y])
	}
	c.stale = true
}

func (c *Chunk) Biome(lx, lz int) (BiomeSample, bool) {
	return c.biomes.Get(lx, lz)
}

func (c *Chunk) SetBiome(lx, lz int, s BiomeSample) {
	c.biomes.Set(lx, lz, s)
}

// Voxels exposes the grid read-only.
func (c *Chunk) Voxels() *VoxelGrid { return &c.voxels }

// MinBlockPosition is the world position of local (0,0,0).
func (c *Chunk) MinBlockPosition() BlockPos {
	return BlockPos{X: c.Key.CX * Size, Y: 0, Z: c.Key.CZ * Size}
}

// Contains reports whether a world position falls inside this chunk.
func (c *Chunk) Contains(p BlockPos) bool {
	if p.Y < 0 || p.Y >= Height {
		return false
	}
	return WorldToChunk(p) == c.Key
}

// Digest is a sha256 over the voxel contents, recomputed after mutation.
func (c *Chunk) Digest() [32]byte {
	if c.stale || c.hash == ([32]byte{}) {
		h := sha256.New()
		h.Write(c.voxels.bytes())
		copy(c.hash[:], h.Sum(nil))
		c.stale = false
	}
	return c.hash
}
