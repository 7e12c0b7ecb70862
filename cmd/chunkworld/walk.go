package main

import (
	"fmt"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// playerPath returns one player chunk per tick. The player advances one
// chunk every stride ticks.
func playerPath(kind string, ticks, stride int) ([]store.ChunkKey, error) {
	if ticks < 0 {
		return nil, fmt.Errorf("negative tick count %d", ticks)
	}
	if stride <= 0 {
		stride = 1
	}
	var step func(i int) store.ChunkKey
	switch kind {
	case "still":
		step = func(int) store.ChunkKey { return store.ChunkKey{} }
	case "line":
		step = func(i int) store.ChunkKey { return store.ChunkKey{CX: i} }
	case "square":
		// Walk the perimeter of a 16x16 chunk square, then repeat.
		step = func(i int) store.ChunkKey {
			const side = 16
			i %= 4 * side
			switch {
			case i < side:
				return store.ChunkKey{CX: i}
			case i < 2*side:
				return store.ChunkKey{CX: side, CZ: i - side}
			case i < 3*side:
				return store.ChunkKey{CX: 3*side - i, CZ: side}
			default:
				return store.ChunkKey{CZ: 4*side - i}
			}
		}
	default:
		return nil, fmt.Errorf("unknown walk %q (want still|line|square)", kind)
	}
	out := make([]store.ChunkKey, ticks)
	for t := range out {
		out[t] = step(t / stride)
	}
	return out, nil
}
