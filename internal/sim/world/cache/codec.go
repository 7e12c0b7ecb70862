package cache

import (
	"encoding/binary"
	"fmt"
	"math"

	"voxelcraft.ai/chunkworld/internal/sim/encoding"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// Payload layout: RLE voxels, then Area biome samples of
// (f32 temperature, f32 moisture, uvarint label length, label).
func encodeSnapshot(s store.Snapshot) []byte {
	buf := encoding.AppendRLE(make([]byte, 0, 1024), s.Voxels)
	var tmp [binary.MaxVarintLen64]byte
	for _, b := range s.Biomes {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(b.Temperature))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(b.Moisture))
		n := binary.PutUvarint(tmp[:], uint64(len(b.Biome)))
		buf = append(buf, tmp[:n]...)
		buf = append(buf, string(b.Biome)...)
	}
	return buf
}

func decodeSnapshot(k store.ChunkKey, raw []byte) (store.Snapshot, error) {
	voxels, i, err := encoding.DecodeRLE[block.Kind](raw, store.Volume)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("decode voxels: %w", err)
	}
	for _, v := range voxels {
		if !v.Valid() {
			return store.Snapshot{}, fmt.Errorf("invalid block kind %d", v)
		}
	}
	biomes := make([]store.BiomeSample, 0, store.Area)
	for len(biomes) < store.Area {
		if i+8 > len(raw) {
			return store.Snapshot{}, fmt.Errorf("biome field truncated at %d", len(biomes))
		}
		t := math.Float32frombits(binary.LittleEndian.Uint32(raw[i:]))
		m := math.Float32frombits(binary.LittleEndian.Uint32(raw[i+4:]))
		i += 8
		n, w := binary.Uvarint(raw[i:])
		if w <= 0 || uint64(len(raw)-i-w) < n {
			return store.Snapshot{}, fmt.Errorf("bad biome label at %d", i)
		}
		i += w
		label := store.Biome(raw[i : i+int(n)])
		i += int(n)
		biomes = append(biomes, store.BiomeSample{Temperature: t, Moisture: m, Biome: label})
	}
	if i != len(raw) {
		return store.Snapshot{}, fmt.Errorf("trailing %d bytes", len(raw)-i)
	}
	return store.Snapshot{Key: k, Voxels: voxels, Biomes: biomes}, nil
}
