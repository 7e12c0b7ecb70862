package store

import "testing"

func TestWorldLocalRoundTrip(t *testing.T) {
	for x := -40; x <= 40; x += 3 {
		for z := -40; z <= 40; z += 7 {
			for _, y := range []int{0, 1, 64, Height - 1} {
				p := BlockPos{X: x, Y: y, Z: z}
				k, l := WorldToLocal(p)
				if !l.InRange() {
					t.Fatalf("local %+v out of range for %+v", l, p)
				}
				if got := LocalToWorld(k, l); got != p {
					t.Fatalf("round trip %+v -> %+v/%+v -> %+v", p, k, l, got)
				}
			}
		}
	}
}

func TestWorldToChunkNegative(t *testing.T) {
	cases := []struct {
		x, z int
		want ChunkKey
	}{
		{0, 0, ChunkKey{0, 0}},
		{15, 15, ChunkKey{0, 0}},
		{16, -1, ChunkKey{1, -1}},
		{-1, -16, ChunkKey{-1, -1}},
		{-17, 32, ChunkKey{-2, 2}},
	}
	for _, c := range cases {
		if got := WorldToChunk(BlockPos{X: c.x, Z: c.z}); got != c.want {
			t.Fatalf("WorldToChunk(%d,%d)=%+v want %+v", c.x, c.z, got, c.want)
		}
	}
	_, l := WorldToLocal(BlockPos{X: -1, Y: 5, Z: -16})
	if l != (LocalPos{X: 15, Y: 5, Z: 0}) {
		t.Fatalf("unexpected local %+v", l)
	}
}
