package gen

import (
	"testing"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

func TestColumnDeterministic(t *testing.T) {
	g := New(DefaultParams())
	want := g.Column(123, -456)
	for i := 0; i < 1000; i++ {
		if got := g.Column(123, -456); got != want {
			t.Fatalf("call %d differs", i)
		}
	}
	// A fresh generator with the same params must agree.
	if got := New(DefaultParams()).Column(123, -456); got != want {
		t.Fatalf("separate generator differs")
	}
}

func TestColumnIndependentOfOrder(t *testing.T) {
	g := New(DefaultParams())
	a := g.Column(5, 5)
	for x := -50; x < 50; x += 9 {
		_ = g.Column(x, -x)
	}
	g.Populate(store.NewChunk(store.ChunkKey{CX: 7, CZ: -3}))
	if b := g.Column(5, 5); a != b {
		t.Fatalf("column changed after unrelated generation")
	}
}

func TestHeightClamp(t *testing.T) {
	p := DefaultParams()
	p.BaseHeight = 500
	if h := New(p).Height(1, 1); h != store.Height-1 {
		t.Fatalf("high clamp: got %d", h)
	}
	p.BaseHeight = -500
	if h := New(p).Height(1, 1); h != 2 {
		t.Fatalf("low clamp: got %d", h)
	}
	g := New(DefaultParams())
	for x := -300; x < 300; x += 17 {
		h := g.Height(x, x*3)
		if h < 2 || h > store.Height-1 {
			t.Fatalf("height %d out of range", h)
		}
	}
}

func TestClassifyTable(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		h    int
		t, m float64
		want store.Biome
	}{
		{3, 0.5, 0.2, store.Beach},
		{3, 0.5, 0.9, store.Swamp},
		{60, 0.5, 0.5, store.SnowyMountain},
		{45, 0.5, 0.5, store.Mountain},
		{30, 0.5, 0.5, store.Hills},
		{15, 0.2, 0.5, store.Tundra},
		{15, 0.8, 0.2, store.Desert},
		{15, 0.5, 0.7, store.Forest},
		{15, 0.5, 0.9, store.Swamp},
		{15, 0.5, 0.3, store.Plains},
	}
	for _, c := range cases {
		if got := Classify(th, c.h, c.t, c.m); got != c.want {
			t.Fatalf("Classify(%d,%v,%v)=%s want %s", c.h, c.t, c.m, got, c.want)
		}
	}
}

func TestColumnComposition(t *testing.T) {
	g := New(DefaultParams())
	for x := -64; x < 64; x += 5 {
		c := g.Column(x, 2*x+1)
		if c.Blocks[0] != block.Bedrock {
			t.Fatalf("y=0 should be bedrock, got %s", c.Blocks[0])
		}
		if c.Blocks[c.Height] == block.Air {
			t.Fatalf("surface at %d is air", c.Height)
		}
		for y := c.Height + 1; y < store.Height; y++ {
			if c.Blocks[y] != block.Air {
				t.Fatalf("above surface y=%d is %s", y, c.Blocks[y])
			}
		}
		for y := 1; y < c.Height; y++ {
			if c.Blocks[y] == block.Air {
				t.Fatalf("hole at y=%d under height %d", y, c.Height)
			}
		}
	}
}

func TestStoneFractionIncreasesWithHeight(t *testing.T) {
	prev := 0.0
	for h := 2; h < store.Height; h += 10 {
		f := StoneFraction(h, store.Plains)
		if f < 0.6 || f > 0.9 {
			t.Fatalf("fraction %v out of range", f)
		}
		if f < prev {
			t.Fatalf("fraction decreased at h=%d", h)
		}
		prev = f
	}
}

func TestPopulateMatchesColumns(t *testing.T) {
	g := New(DefaultParams())
	ch := store.NewChunk(store.ChunkKey{CX: -1, CZ: 2})
	st := g.Populate(ch)
	if !ch.Generated || !ch.MeshDirty {
		t.Fatalf("populate should set generated and mesh-dirty")
	}
	if st.MinHeight > st.MaxHeight || st.AvgHeight < float64(st.MinHeight) {
		t.Fatalf("bad stats %+v", st)
	}
	for lz := 0; lz < store.Size; lz += 5 {
		for lx := 0; lx < store.Size; lx += 3 {
			wp := store.LocalToWorld(ch.Key, store.LocalPos{X: lx, Z: lz})
			col := g.Column(wp.X, wp.Z)
			for y := 0; y < store.Height; y++ {
				k, _ := ch.Block(store.LocalPos{X: lx, Y: y, Z: lz})
				if k != col.Blocks[y] {
					t.Fatalf("chunk voxel (%d,%d,%d)=%s, column says %s", lx, y, lz, k, col.Blocks[y])
				}
			}
			s, _ := ch.Biome(lx, lz)
			if s.Biome != col.Biome {
				t.Fatalf("biome mismatch at (%d,%d)", lx, lz)
			}
		}
	}

	again := store.NewChunk(ch.Key)
	g.Populate(again)
	if again.Digest() != ch.Digest() {
		t.Fatalf("regeneration should reproduce identical content")
	}
}

func TestSandBandKeepsSurfaceCap(t *testing.T) {
	biomes := []store.Biome{store.Plains, store.Forest, store.Swamp, store.Tundra, store.Desert, store.Beach}
	for _, b := range biomes {
		for h := 6; h < 12; h++ {
			c := Column{Height: h, Biome: b}
			compose(&c)
			if got, want := c.Blocks[h], surfaceBlock(b); got != want {
				t.Fatalf("%s h=%d: surface=%s want %s", b, h, got, want)
			}
			for y := 3; y <= 6 && y < h; y++ {
				if c.Blocks[y] != block.Sand {
					t.Fatalf("%s h=%d: y=%d is %s, want SAND", b, h, y, c.Blocks[y])
				}
			}
			if h+1 < store.Height && c.Blocks[h+1] != block.Air {
				t.Fatalf("%s h=%d: block above surface is %s", b, h, c.Blocks[h+1])
			}
		}
	}
}
