package spatial

import (
	"voxelcraft.ai/chunkworld/internal/sim/world/logic/mathx"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

type Direction uint8

// North is -Z, East is +X.
const (
	North Direction = iota
	South
	East
	West
	NorthEast
	SouthEast
	NorthWest
	SouthWest
)

var dirOffsets = [...][2]int{
	North:     {0, -1},
	South:     {0, 1},
	East:      {1, 0},
	West:      {-1, 0},
	NorthEast: {1, -1},
	SouthEast: {1, 1},
	NorthWest: {-1, -1},
	SouthWest: {-1, 1},
}

func (d Direction) Valid() bool { return int(d) < len(dirOffsets) }

// Step moves k one chunk in direction d. An invalid direction returns k.
func (d Direction) Step(k store.ChunkKey) store.ChunkKey {
	if !d.Valid() {
		return k
	}
	o := dirOffsets[d]
	return store.ChunkKey{CX: k.CX + o[0], CZ: k.CZ + o[1]}
}

// Neighbors4 returns the N, S, E, W neighbours of k.
func Neighbors4(k store.ChunkKey) [4]store.ChunkKey {
	return [4]store.ChunkKey{North.Step(k), South.Step(k), East.Step(k), West.Step(k)}
}

// Neighbors8 adds the diagonals NE, SE, NW, SW.
func Neighbors8(k store.ChunkKey) [8]store.ChunkKey {
	var out [8]store.ChunkKey
	for d := North; d <= SouthWest; d++ {
		out[d] = d.Step(k)
	}
	return out
}

// Distance is the Chebyshev distance between two chunk coordinates.
func Distance(a, b store.ChunkKey) int {
	return mathx.Chebyshev(a.CX, a.CZ, b.CX, b.CZ)
}

// ShouldLoad reports whether k lies within render distance of the player.
func (ix *Index) ShouldLoad(k, player store.ChunkKey) bool {
	return Distance(k, player) <= ix.renderDistance
}

func (ix *Index) ShouldUnload(k, player store.ChunkKey) bool {
	return Distance(k, player) > ix.renderDistance
}

// Priority ranks k for generation and meshing.
func (ix *Index) Priority(k, player store.ChunkKey, visible bool) store.Priority {
	if visible {
		return store.Visible
	}
	d := Distance(k, player)
	switch {
	case d <= ix.renderDistance/2:
		return store.Near
	case d <= ix.renderDistance:
		return store.Far
	default:
		return store.Unload
	}
}

// Square lists every coordinate within Chebyshev distance r of center,
// ordered by CX then CZ.
func Square(center store.ChunkKey, r int) []store.ChunkKey {
	if r < 0 {
		return nil
	}
	out := make([]store.ChunkKey, 0, (2*r+1)*(2*r+1))
	for cx := center.CX - r; cx <= center.CX+r; cx++ {
		for cz := center.CZ - r; cz <= center.CZ+r; cz++ {
			out = append(out, store.ChunkKey{CX: cx, CZ: cz})
		}
	}
	return out
}
