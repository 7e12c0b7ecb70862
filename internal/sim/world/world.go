// Package world owns the loaded chunk set and drives it one tick at a time:
// unloading, loading, generation and meshing all happen inside Step.
package world

import (
	"context"
	"log"
	"time"

	"voxelcraft.ai/chunkworld/internal/sim/world/cache"
	"voxelcraft.ai/chunkworld/internal/sim/world/mesh"
	"voxelcraft.ai/chunkworld/internal/sim/world/spatial"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/gen"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

// MeshSink receives finished meshes. It is the render consumer boundary.
type MeshSink interface {
	UpsertMesh(k store.ChunkKey, m *mesh.Mesh)
	RemoveMesh(k store.ChunkKey)
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

// World is single-threaded. All state must be accessed only from the
// goroutine calling Step (or from the Run loop).
type World struct {
	cfg Config

	index  *spatial.Index
	cache  *cache.Cache
	gen    *gen.Generator
	meshes map[store.ChunkKey]*mesh.Mesh

	tick   uint64
	player store.ChunkKey

	logger     *log.Logger
	tickLogger TickLogger

	totals Totals
	last   TickStats

	moves chan store.ChunkKey
	stop  chan struct{}
}

func New(cfg Config) (*World, error) {
	cfg.applyDefaults()
	c, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, err
	}
	return &World{
		cfg:    cfg,
		index:  spatial.New(cfg.RenderDistance),
		cache:  c,
		gen:    gen.New(cfg.Gen),
		meshes: map[store.ChunkKey]*mesh.Mesh{},
		logger: cfg.Logger,
		moves:  make(chan store.ChunkKey, 16),
		stop:   make(chan struct{}),
	}, nil
}

func (w *World) SetTickLogger(l TickLogger) { w.tickLogger = l }

func (w *World) Config() Config { return w.cfg }

func (w *World) CurrentTick() uint64 { return w.tick }

func (w *World) Player() store.ChunkKey { return w.player }

func (w *World) Generator() *gen.Generator { return w.gen }

func (w *World) CacheStats() cache.Stats { return w.cache.Stats() }

// Move queues a player position for Run.
func (w *World) Move() chan<- store.ChunkKey { return w.moves }

func (w *World) LoadedKeys() []store.ChunkKey { return w.index.Keys() }

func (w *World) Loaded(k store.ChunkKey) bool { return w.index.Contains(k) }

func (w *World) Cached(k store.ChunkKey) bool { return w.cache.Contains(k) }

func (w *World) Chunk(k store.ChunkKey) (*store.Chunk, bool) { return w.index.Get(k) }

// ChunksWithin lists loaded chunks within Chebyshev distance dist of center,
// ordered by CX then CZ.
func (w *World) ChunksWithin(center store.ChunkKey, dist int) []store.ChunkKey {
	return w.index.WithinDistance(center, dist)
}

func (w *World) Mesh(k store.ChunkKey) (*mesh.Mesh, bool) {
	m, ok := w.meshes[k]
	return m, ok
}

// Meshes returns the current meshes keyed by chunk.
func (w *World) Meshes() map[store.ChunkKey]*mesh.Mesh {
	out := make(map[store.ChunkKey]*mesh.Mesh, len(w.meshes))
	for k, m := range w.meshes {
		out[k] = m
	}
	return out
}

func (w *World) ShouldLoad(k, player store.ChunkKey) bool {
	return w.index.ShouldLoad(k, player)
}

func (w *World) ShouldUnload(k, player store.ChunkKey) bool {
	return w.index.ShouldUnload(k, player)
}

func (w *World) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}

// Run steps the world at TickRateHz until ctx is done or Stop is called.
// Player moves sent on Move take effect at the next tick boundary.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	player := w.player
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case p := <-w.moves:
			player = p
		case <-ticker.C:
			w.Step(TickInput{Player: player})
		}
	}
}

// Stop ends Run. It must be called at most once.
func (w *World) Stop() { close(w.stop) }

func (w *World) Close() error {
	return w.cache.Close()
}
