// Package gltfexport converts chunk meshes into a binary glTF scene.
package gltfexport

import (
	"fmt"
	"io"
	"sort"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"voxelcraft.ai/chunkworld/internal/sim/world/mesh"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// Collector is a world mesh sink that keeps the latest mesh per chunk.
type Collector struct {
	meshes map[store.ChunkKey]*mesh.Mesh
}

func NewCollector() *Collector {
	return &Collector{meshes: map[store.ChunkKey]*mesh.Mesh{}}
}

func (c *Collector) UpsertMesh(k store.ChunkKey, m *mesh.Mesh) { c.meshes[k] = m }
func (c *Collector) RemoveMesh(k store.ChunkKey)               { delete(c.meshes, k) }

func (c *Collector) Len() int { return len(c.meshes) }

func (c *Collector) Meshes() map[store.ChunkKey]*mesh.Mesh { return c.meshes }

func sortedKeys(meshes map[store.ChunkKey]*mesh.Mesh) []store.ChunkKey {
	keys := make([]store.ChunkKey, 0, len(meshes))
	for k := range meshes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

func nodeName(k store.ChunkKey) string {
	return fmt.Sprintf("chunk_%d_%d", k.CX, k.CZ)
}

// Build creates one glTF mesh and node per non-empty chunk mesh. Chunk
// offsets are baked into positions so every node sits at the origin.
func Build(meshes map[store.ChunkKey]*mesh.Mesh) *gltf.Document {
	doc := gltf.NewDocument()
	for _, k := range sortedKeys(meshes) {
		m := meshes[k]
		if m == nil || m.Empty() {
			continue
		}
		origin := m.Origin()
		positions := make([][3]float32, len(m.Positions))
		for i, p := range m.Positions {
			positions[i] = p.Add(origin)
		}
		normals := make([][3]float32, len(m.Normals))
		for i, n := range m.Normals {
			normals[i] = n
		}
		uvs := make([][2]float32, len(m.UVs))
		for i, uv := range m.UVs {
			uvs[i] = uv
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: nodeName(k),
			Primitives: []*gltf.Primitive{{
				Mode:    gltf.PrimitiveTriangles,
				Indices: gltf.Index(modeler.WriteIndices(doc, m.Indices)),
				Attributes: map[string]uint32{
					gltf.POSITION:   modeler.WritePosition(doc, positions),
					gltf.NORMAL:     modeler.WriteNormal(doc, normals),
					gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
				},
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: nodeName(k),
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc
}

// Write encodes meshes as a .glb stream.
func Write(w io.Writer, meshes map[store.ChunkKey]*mesh.Mesh) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(Build(meshes)); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// Save writes meshes to a .glb file at path.
func Save(path string, meshes map[store.ChunkKey]*mesh.Mesh) error {
	if err := gltf.SaveBinary(Build(meshes), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
