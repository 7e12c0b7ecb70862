// Package mesh turns chunk voxels into a face-culled quad mesh. Faces on a
// chunk border consult the neighbouring chunk through a NeighborSource.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelcraft.ai/chunkworld/internal/sim/world/logic/mathx"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// NeighborSource resolves loaded chunks by coordinate.
type NeighborSource interface {
	Chunk(k store.ChunkKey) (*store.Chunk, bool)
}

// Mesh positions are chunk-local; add Chunk.MinBlockPosition for world space.
type Mesh struct {
	Key       store.ChunkKey
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

func (m *Mesh) QuadCount() int     { return len(m.Positions) / 4 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }
func (m *Mesh) Empty() bool        { return len(m.Positions) == 0 }

// Origin is the world-space offset of the chunk's local origin.
func (m *Mesh) Origin() mgl32.Vec3 {
	return mgl32.Vec3{float32(m.Key.CX * store.Size), 0, float32(m.Key.CZ * store.Size)}
}

func (m *Mesh) appendQuad(at mgl32.Vec3, f Face, uv block.UVRect) {
	base := uint32(len(m.Positions))
	n := f.Normal()
	for _, c := range faceCorners[f] {
		m.Positions = append(m.Positions, at.Add(c))
		m.Normals = append(m.Normals, n)
	}
	m.UVs = append(m.UVs,
		mgl32.Vec2{uv.UMin, uv.VMin},
		mgl32.Vec2{uv.UMax, uv.VMin},
		mgl32.Vec2{uv.UMax, uv.VMax},
		mgl32.Vec2{uv.UMin, uv.VMax},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Build emits one quad per visible face of every opaque voxel in ch.
// It only reads ch and its neighbours. nb may be nil.
func Build(ch *store.Chunk, nb NeighborSource) *Mesh {
	m := &Mesh{Key: ch.Key}
	for y := 0; y < store.Height; y++ {
		for z := 0; z < store.Size; z++ {
			for x := 0; x < store.Size; x++ {
				l := store.LocalPos{X: x, Y: y, Z: z}
				k, _ := ch.Block(l)
				if !k.Opaque() {
					continue
				}
				at := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for _, f := range Faces {
					if Visible(ch, nb, l, f) {
						m.appendQuad(at, f, block.FaceUV(k, f.Orientation()))
					}
				}
			}
		}
	}
	return m
}

// Visible decides whether face f of the voxel at l is exposed. A neighbour
// chunk that is missing or not yet generated never occludes.
func Visible(ch *store.Chunk, nb NeighborSource, l store.LocalPos, f Face) bool {
	dx, dy, dz := f.Step()
	nx, ny, nz := l.X+dx, l.Y+dy, l.Z+dz

	if ny < 0 || ny >= store.Height {
		return true
	}
	if nx >= 0 && nx < store.Size && nz >= 0 && nz < store.Size {
		k, _ := ch.Block(store.LocalPos{X: nx, Y: ny, Z: nz})
		return !k.Opaque()
	}

	key := store.ChunkKey{
		CX: ch.Key.CX + mathx.FloorDiv(nx, store.Size),
		CZ: ch.Key.CZ + mathx.FloorDiv(nz, store.Size),
	}
	if nb == nil {
		return true
	}
	other, ok := nb.Chunk(key)
	if !ok || other == nil || !other.Generated {
		return true
	}
	k, _ := other.Block(store.LocalPos{X: mathx.Mod(nx, store.Size), Y: ny, Z: mathx.Mod(nz, store.Size)})
	return !k.Opaque()
}
