package mesh

import (
	"testing"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

type chunkMap map[store.ChunkKey]*store.Chunk

func (m chunkMap) Chunk(k store.ChunkKey) (*store.Chunk, bool) {
	ch, ok := m[k]
	return ch, ok
}

func generated(k store.ChunkKey) *store.Chunk {
	ch := store.NewChunk(k)
	ch.Generated = true
	return ch
}

func TestAllAirChunkIsEmpty(t *testing.T) {
	m := Build(generated(store.ChunkKey{}), nil)
	if !m.Empty() || m.QuadCount() != 0 || m.TriangleCount() != 0 {
		t.Fatalf("expected empty mesh, got %d quads", m.QuadCount())
	}
}

func TestSingleVoxelEmitsSixFaces(t *testing.T) {
	ch := generated(store.ChunkKey{})
	ch.SetBlock(store.LocalPos{X: 5, Y: 40, Z: 5}, block.Stone)
	m := Build(ch, nil)
	if m.QuadCount() != 6 || m.TriangleCount() != 12 {
		t.Fatalf("got %d quads %d triangles", m.QuadCount(), m.TriangleCount())
	}
	if len(m.Normals) != len(m.Positions) || len(m.UVs) != len(m.Positions) {
		t.Fatalf("attribute lengths disagree")
	}
}

func TestEnclosedVoxelContributesNothing(t *testing.T) {
	ch := generated(store.ChunkKey{})
	for x := 4; x <= 6; x++ {
		for y := 9; y <= 11; y++ {
			for z := 4; z <= 6; z++ {
				ch.SetBlock(store.LocalPos{X: x, Y: y, Z: z}, block.Dirt)
			}
		}
	}
	center := store.LocalPos{X: 5, Y: 10, Z: 5}
	for _, f := range Faces {
		if Visible(ch, nil, center, f) {
			t.Fatalf("enclosed face %s should be hidden", f)
		}
	}
	// 3x3 on each of six sides.
	if got := Build(ch, nil).QuadCount(); got != 54 {
		t.Fatalf("cube surface quads=%d want 54", got)
	}
}

func TestTransparentNeighborKeepsFaceVisible(t *testing.T) {
	ch := generated(store.ChunkKey{})
	ch.SetBlock(store.LocalPos{X: 2, Y: 2, Z: 2}, block.Stone)
	ch.SetBlock(store.LocalPos{X: 3, Y: 2, Z: 2}, block.Leaves)
	ch.SetBlock(store.LocalPos{X: 1, Y: 2, Z: 2}, block.Water)
	if !Visible(ch, nil, store.LocalPos{X: 2, Y: 2, Z: 2}, PosX) {
		t.Fatalf("face behind leaves should be visible")
	}
	if !Visible(ch, nil, store.LocalPos{X: 2, Y: 2, Z: 2}, NegX) {
		t.Fatalf("face behind water should be visible")
	}
	// Leaves and water emit no geometry themselves.
	if got := Build(ch, nil).QuadCount(); got != 6 {
		t.Fatalf("quads=%d want 6", got)
	}
}

func TestVerticalLimitsAlwaysVisible(t *testing.T) {
	ch := generated(store.ChunkKey{})
	top := store.LocalPos{X: 0, Y: store.Height - 1, Z: 0}
	bottom := store.LocalPos{X: 0, Y: 0, Z: 0}
	ch.SetBlock(top, block.Stone)
	ch.SetBlock(bottom, block.Bedrock)
	if !Visible(ch, nil, top, PosY) || !Visible(ch, nil, bottom, NegY) {
		t.Fatalf("faces at world limits must be visible")
	}
}

func TestMissingOrUngeneratedNeighborIsVisible(t *testing.T) {
	a := generated(store.ChunkKey{CX: 0, CZ: 0})
	l := store.LocalPos{X: store.Size - 1, Y: 3, Z: 7}
	a.SetBlock(l, block.Stone)

	if !Visible(a, chunkMap{}, l, PosX) {
		t.Fatalf("missing neighbour should not occlude")
	}

	b := store.NewChunk(store.ChunkKey{CX: 1, CZ: 0})
	b.SetBlock(store.LocalPos{X: 0, Y: 3, Z: 7}, block.Stone)
	nb := chunkMap{a.Key: a, b.Key: b}
	if !Visible(a, nb, l, PosX) {
		t.Fatalf("ungenerated neighbour should not occlude")
	}
	b.Generated = true
	if Visible(a, nb, l, PosX) {
		t.Fatalf("solid generated neighbour should occlude")
	}
}

func TestBoundaryConsistency(t *testing.T) {
	// west chunk a, east chunk b, plus a north/south pair for the z seam.
	a := generated(store.ChunkKey{CX: -1, CZ: 0})
	b := generated(store.ChunkKey{CX: 0, CZ: 0})
	c := generated(store.ChunkKey{CX: 0, CZ: -1})
	nb := chunkMap{a.Key: a, b.Key: b, c.Key: c}

	for y := 0; y < 20; y++ {
		for z := 0; z < store.Size; z++ {
			if (y+z)%2 == 0 {
				a.SetBlock(store.LocalPos{X: store.Size - 1, Y: y, Z: z}, block.Stone)
			}
			if (y*z)%3 == 0 {
				b.SetBlock(store.LocalPos{X: 0, Y: y, Z: z}, block.Dirt)
			}
		}
		for x := 0; x < store.Size; x++ {
			if (x+y)%3 == 0 {
				c.SetBlock(store.LocalPos{X: x, Y: y, Z: store.Size - 1}, block.Grass)
			}
			if x%2 == 1 {
				b.SetBlock(store.LocalPos{X: x, Y: y, Z: 0}, block.Stone)
			}
		}
	}

	for y := 0; y < 20; y++ {
		for z := 0; z < store.Size; z++ {
			la := store.LocalPos{X: store.Size - 1, Y: y, Z: z}
			lb := store.LocalPos{X: 0, Y: y, Z: z}
			checkSeam(t, a, b, nb, la, lb, PosX, NegX)
		}
		for x := 0; x < store.Size; x++ {
			lc := store.LocalPos{X: x, Y: y, Z: store.Size - 1}
			lb := store.LocalPos{X: x, Y: y, Z: 0}
			checkSeam(t, c, b, nb, lc, lb, PosZ, NegZ)
		}
	}
}

// checkSeam asserts exactly one side emits the shared face when exactly one
// side is opaque, and neither does otherwise.
func checkSeam(t *testing.T, a, b *store.Chunk, nb NeighborSource, la, lb store.LocalPos, fa, fb Face) {
	t.Helper()
	ka, _ := a.Block(la)
	kb, _ := b.Block(lb)
	emitA := ka.Opaque() && Visible(a, nb, la, fa)
	emitB := kb.Opaque() && Visible(b, nb, lb, fb)
	switch {
	case ka.Opaque() && kb.Opaque():
		if emitA || emitB {
			t.Fatalf("both solid at %+v/%+v but a face was emitted", la, lb)
		}
	case ka.Opaque() != kb.Opaque():
		if emitA == emitB {
			t.Fatalf("exactly one side should emit at %+v/%+v (a=%v b=%v)", la, lb, emitA, emitB)
		}
	default:
		if emitA || emitB {
			t.Fatalf("air on both sides emitted a face")
		}
	}
}

func TestBuildDoesNotMutate(t *testing.T) {
	a := generated(store.ChunkKey{})
	a.SetBlock(store.LocalPos{X: 0, Y: 1, Z: 0}, block.Stone)
	b := generated(store.ChunkKey{CX: -1})
	b.SetBlock(store.LocalPos{X: store.Size - 1, Y: 1, Z: 0}, block.Stone)
	da, db := a.Digest(), b.Digest()
	Build(a, chunkMap{a.Key: a, b.Key: b})
	if a.Digest() != da || b.Digest() != db {
		t.Fatalf("build mutated chunk data")
	}
}

func TestQuadUVsFollowAtlas(t *testing.T) {
	ch := generated(store.ChunkKey{CX: 2, CZ: 3})
	ch.SetBlock(store.LocalPos{X: 0, Y: 0, Z: 0}, block.Grass)
	m := Build(ch, nil)
	top := block.FaceUV(block.Grass, block.Top)
	found := false
	for q := 0; q < m.QuadCount(); q++ {
		if m.Normals[q*4].Y() == 1 {
			found = true
			if m.UVs[q*4].X() != top.UMin || m.UVs[q*4+2].Y() != top.VMax {
				t.Fatalf("top quad uv mismatch: %v", m.UVs[q*4:q*4+4])
			}
		}
	}
	if !found {
		t.Fatalf("no top face emitted")
	}
	if o := m.Origin(); o.X() != 32 || o.Z() != 48 {
		t.Fatalf("origin=%v", o)
	}
}
