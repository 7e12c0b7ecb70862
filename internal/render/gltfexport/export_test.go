package gltfexport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"voxelcraft.ai/chunkworld/internal/sim/world/mesh"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

func singleVoxelMesh(k store.ChunkKey) *mesh.Mesh {
	ch := store.NewChunk(k)
	ch.Generated = true
	ch.SetBlock(store.LocalPos{X: 0, Y: 0, Z: 0}, block.Stone)
	return mesh.Build(ch, nil)
}

func TestBuildOneNodePerNonEmptyChunk(t *testing.T) {
	c := NewCollector()
	c.UpsertMesh(store.ChunkKey{CX: 1}, singleVoxelMesh(store.ChunkKey{CX: 1}))
	c.UpsertMesh(store.ChunkKey{CX: -1}, singleVoxelMesh(store.ChunkKey{CX: -1}))
	c.UpsertMesh(store.ChunkKey{CZ: 3}, &mesh.Mesh{Key: store.ChunkKey{CZ: 3}})
	c.UpsertMesh(store.ChunkKey{CZ: 4}, singleVoxelMesh(store.ChunkKey{CZ: 4}))
	c.RemoveMesh(store.ChunkKey{CZ: 4})

	doc := Build(c.Meshes())
	if len(doc.Meshes) != 2 || len(doc.Nodes) != 2 || len(doc.Scenes[0].Nodes) != 2 {
		t.Fatalf("meshes=%d nodes=%d", len(doc.Meshes), len(doc.Nodes))
	}
	if doc.Nodes[0].Name != "chunk_-1_0" {
		t.Fatalf("nodes should be ordered by key, first=%s", doc.Nodes[0].Name)
	}
	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	if pos.Count != 24 {
		t.Fatalf("position count=%d want 24", pos.Count)
	}
	if idx := doc.Accessors[*prim.Indices]; idx.Count != 36 {
		t.Fatalf("index count=%d want 36", idx.Count)
	}
	// Chunk (-1,0) starts at x=-16.
	if len(pos.Min) == 0 || pos.Min[0] != -16 {
		t.Fatalf("positions should carry the chunk offset, min=%v", pos.Min)
	}
}

func TestWriteProducesBinaryGLTF(t *testing.T) {
	meshes := map[store.ChunkKey]*mesh.Mesh{{}: singleVoxelMesh(store.ChunkKey{})}
	var buf bytes.Buffer
	if err := Write(&buf, meshes); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatalf("missing glb magic")
	}

	p := filepath.Join(t.TempDir(), "world.glb")
	if err := Save(p, meshes); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := gltf.Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(doc.Meshes) != 1 {
		t.Fatalf("reloaded meshes=%d", len(doc.Meshes))
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
