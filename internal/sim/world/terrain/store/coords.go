package store

import "voxelcraft.ai/chunkworld/internal/sim/world/logic/mathx"

func WorldToChunk(p BlockPos) ChunkKey {
	return ChunkKey{CX: mathx.FloorDiv(p.X, Size), CZ: mathx.FloorDiv(p.Z, Size)}
}

func WorldToLocal(p BlockPos) (ChunkKey, LocalPos) {
	return WorldToChunk(p), LocalPos{X: mathx.Mod(p.X, Size), Y: p.Y, Z: mathx.Mod(p.Z, Size)}
}

func LocalToWorld(k ChunkKey, l LocalPos) BlockPos {
	return BlockPos{X: k.CX*Size + l.X, Y: l.Y, Z: k.CZ*Size + l.Z}
}
