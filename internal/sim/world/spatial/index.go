// Package spatial indexes loaded chunks by coordinate and by coarse region.
package spatial

import (
	"sort"

	"voxelcraft.ai/chunkworld/internal/sim/world/logic/mathx"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

type regionKey struct {
	RX, RZ int
}

// Index is single-threaded; callers serialize access.
type Index struct {
	renderDistance int
	regionSize     int

	chunks  map[store.ChunkKey]*store.Chunk
	regions map[regionKey]map[store.ChunkKey]struct{}
}

// RegionSize is clamp(renderDistance/2, 4, 8).
func RegionSize(renderDistance int) int {
	return mathx.ClampInt(renderDistance/2, 4, 8)
}

func New(renderDistance int) *Index {
	if renderDistance < 0 {
		renderDistance = 0
	}
	return &Index{
		renderDistance: renderDistance,
		regionSize:     RegionSize(renderDistance),
		chunks:         map[store.ChunkKey]*store.Chunk{},
		regions:        map[regionKey]map[store.ChunkKey]struct{}{},
	}
}

func (ix *Index) RenderDistance() int { return ix.renderDistance }
func (ix *Index) RegionSize() int     { return ix.regionSize }

func (ix *Index) regionOf(k store.ChunkKey) regionKey {
	return regionKey{RX: mathx.FloorDiv(k.CX, ix.regionSize), RZ: mathx.FloorDiv(k.CZ, ix.regionSize)}
}

// Insert adds or replaces the chunk at k.
func (ix *Index) Insert(k store.ChunkKey, ch *store.Chunk) {
	ix.chunks[k] = ch
	rk := ix.regionOf(k)
	set := ix.regions[rk]
	if set == nil {
		set = map[store.ChunkKey]struct{}{}
		ix.regions[rk] = set
	}
	set[k] = struct{}{}
}

func (ix *Index) Remove(k store.ChunkKey) (*store.Chunk, bool) {
	ch, ok := ix.chunks[k]
	if !ok {
		return nil, false
	}
	delete(ix.chunks, k)
	rk := ix.regionOf(k)
	if set := ix.regions[rk]; set != nil {
		delete(set, k)
		if len(set) == 0 {
			delete(ix.regions, rk)
		}
	}
	return ch, true
}

func (ix *Index) Get(k store.ChunkKey) (*store.Chunk, bool) {
	ch, ok := ix.chunks[k]
	return ch, ok
}

// Chunk satisfies the mesher's neighbour lookup.
func (ix *Index) Chunk(k store.ChunkKey) (*store.Chunk, bool) {
	return ix.Get(k)
}

func (ix *Index) Contains(k store.ChunkKey) bool {
	_, ok := ix.chunks[k]
	return ok
}

func (ix *Index) Len() int { return len(ix.chunks) }

func (ix *Index) RegionCount() int { return len(ix.regions) }

// Keys returns loaded coordinates ordered by CX then CZ.
func (ix *Index) Keys() []store.ChunkKey {
	keys := make([]store.ChunkKey, 0, len(ix.chunks))
	for k := range ix.chunks {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

func sortKeys(keys []store.ChunkKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// WithinDistance returns loaded keys whose Chebyshev distance to center is at
// most maxDist. Only regions overlapping the query square are visited; when
// that window holds more cells than there are occupied regions, the occupied
// regions are scanned instead.
func (ix *Index) WithinDistance(center store.ChunkKey, maxDist int) []store.ChunkKey {
	if maxDist < 0 {
		return nil
	}
	lo := ix.regionOf(store.ChunkKey{CX: mathx.SatSub(center.CX, maxDist), CZ: mathx.SatSub(center.CZ, maxDist)})
	hi := ix.regionOf(store.ChunkKey{CX: mathx.SatAdd(center.CX, maxDist), CZ: mathx.SatAdd(center.CZ, maxDist)})

	var out []store.ChunkKey
	collect := func(set map[store.ChunkKey]struct{}) {
		for k := range set {
			if Distance(k, center) <= maxDist {
				out = append(out, k)
			}
		}
	}

	// Region coordinates are at most MaxInt/4 in magnitude, so spans fit.
	spanX := hi.RX - lo.RX + 1
	spanZ := hi.RZ - lo.RZ + 1
	n := len(ix.regions)
	if spanX > n || spanZ > n || spanX*spanZ > n {
		for rk, set := range ix.regions {
			if rk.RX >= lo.RX && rk.RX <= hi.RX && rk.RZ >= lo.RZ && rk.RZ <= hi.RZ {
				collect(set)
			}
		}
	} else {
		for rx := lo.RX; rx <= hi.RX; rx++ {
			for rz := lo.RZ; rz <= hi.RZ; rz++ {
				collect(ix.regions[regionKey{RX: rx, RZ: rz}])
			}
		}
	}
	sortKeys(out)
	return out
}

// LoadedNeighbors returns the loaded 4-neighbours of k.
func (ix *Index) LoadedNeighbors(k store.ChunkKey) []*store.Chunk {
	var out []*store.Chunk
	for _, n := range Neighbors4(k) {
		if ch, ok := ix.chunks[n]; ok {
			out = append(out, ch)
		}
	}
	return out
}

// HasNeighbor reports whether the neighbour of k in direction d is loaded.
// Invalid directions report false.
func (ix *Index) HasNeighbor(k store.ChunkKey, d Direction) bool {
	if !d.Valid() {
		return false
	}
	return ix.Contains(d.Step(k))
}
