package world

import (
	"sort"
	"time"

	"voxelcraft.ai/chunkworld/internal/sim/world/mesh"
	"voxelcraft.ai/chunkworld/internal/sim/world/spatial"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

type TickInput struct {
	Player store.ChunkKey
	// Visible marks chunks in view; nil means none are.
	Visible func(store.ChunkKey) bool
}

type TickStats struct {
	Tick      uint64  `json:"tick"`
	PlayerCX  int     `json:"player_cx"`
	PlayerCZ  int     `json:"player_cz"`
	Unloaded  int     `json:"unloaded"`
	Created   int     `json:"created"`
	Restored  int     `json:"restored"`
	Generated int     `json:"generated"`
	Meshed    int     `json:"meshed"`
	Pending   int     `json:"pending"`
	Loaded    int     `json:"loaded"`
	Cached    int     `json:"cached"`
	StepMS    float64 `json:"step_ms"`
	Digest    string  `json:"digest"`
}

// TickLogEntry is what a TickLogger records per tick.
type TickLogEntry = TickStats

// Step advances one tick: unload, load, reprioritize, generate at most
// GeneratePerTick chunks, then rebuild dirty meshes.
func (w *World) Step(in TickInput) TickStats {
	start := time.Now()
	w.player = in.Player
	st := TickStats{Tick: w.tick, PlayerCX: in.Player.CX, PlayerCZ: in.Player.CZ}

	st.Unloaded = w.unloadFar(in.Player)
	st.Created, st.Restored = w.loadNear(in.Player)
	w.refreshPriorities(in)
	st.Generated = w.generatePending(in.Player)
	st.Meshed = w.rebuildMeshes(in.Player)

	for _, k := range w.index.Keys() {
		if ch, _ := w.index.Get(k); !ch.Generated {
			st.Pending++
		}
	}
	st.Loaded = w.index.Len()
	st.Cached = w.cache.Len()
	st.Digest = w.StateDigest()
	st.StepMS = float64(time.Since(start).Microseconds()) / 1000

	w.totals.add(st)
	w.last = st
	if w.tickLogger != nil {
		if err := w.tickLogger.WriteTick(st); err != nil {
			w.logf("tick log: %v", err)
		}
	}
	if st.Generated > 0 || st.Unloaded > 0 {
		w.logf("tick=%d player=(%d,%d) loaded=%d generated=%d meshed=%d unloaded=%d restored=%d pending=%d",
			st.Tick, st.PlayerCX, st.PlayerCZ, st.Loaded, st.Generated, st.Meshed, st.Unloaded, st.Restored, st.Pending)
	}
	w.tick++
	return st
}

func (w *World) markNeighborsDirty(k store.ChunkKey) {
	for _, ch := range w.index.LoadedNeighbors(k) {
		ch.MeshDirty = true
	}
}

func (w *World) unloadFar(player store.ChunkKey) int {
	n := 0
	for _, k := range w.index.Keys() {
		if !w.index.ShouldUnload(k, player) {
			continue
		}
		ch, _ := w.index.Remove(k)
		if ch.Generated {
			w.cache.Put(k, ch.Snapshot())
		}
		if _, ok := w.meshes[k]; ok {
			delete(w.meshes, k)
			if w.cfg.Sink != nil {
				w.cfg.Sink.RemoveMesh(k)
			}
		}
		// Border faces toward k are now exposed.
		w.markNeighborsDirty(k)
		n++
	}
	return n
}

func (w *World) loadNear(player store.ChunkKey) (created, restored int) {
	for _, k := range spatial.Square(player, w.cfg.RenderDistance) {
		if w.index.Contains(k) {
			continue
		}
		var ch *store.Chunk
		if snap, ok := w.cache.Take(k); ok {
			c, err := store.Restore(snap)
			if err != nil {
				w.logf("restore chunk (%d,%d): %v", k.CX, k.CZ, err)
			} else {
				ch = c
			}
		}
		if ch != nil {
			w.index.Insert(k, ch)
			w.markNeighborsDirty(k)
			restored++
			continue
		}
		w.index.Insert(k, store.NewChunk(k))
		created++
	}
	return created, restored
}

// refreshPriorities ranks the chunks around the player. After unloadFar
// every loaded chunk lies within render distance, so the region query
// covers the whole loaded set.
func (w *World) refreshPriorities(in TickInput) {
	for _, k := range w.index.WithinDistance(in.Player, w.cfg.RenderDistance) {
		ch, _ := w.index.Get(k)
		visible := in.Visible != nil && in.Visible(k)
		ch.Priority = w.index.Priority(k, in.Player, visible)
	}
}

// ordered sorts chunks by (priority, distance to player, key).
func ordered(chunks []*store.Chunk, player store.ChunkKey) {
	sort.Slice(chunks, func(i, j int) bool {
		a, b := chunks[i], chunks[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		da, db := spatial.Distance(a.Key, player), spatial.Distance(b.Key, player)
		if da != db {
			return da < db
		}
		return a.Key.Less(b.Key)
	})
}

func (w *World) collect(pred func(*store.Chunk) bool) []*store.Chunk {
	var out []*store.Chunk
	for _, k := range w.index.Keys() {
		ch, _ := w.index.Get(k)
		if pred(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func (w *World) generatePending(player store.ChunkKey) int {
	var pending []*store.Chunk
	for _, k := range w.index.WithinDistance(player, w.cfg.RenderDistance) {
		if ch, _ := w.index.Get(k); !ch.Generated {
			pending = append(pending, ch)
		}
	}
	ordered(pending, player)
	if len(pending) > w.cfg.GeneratePerTick {
		pending = pending[:w.cfg.GeneratePerTick]
	}
	for _, ch := range pending {
		gs := w.gen.Populate(ch)
		w.markNeighborsDirty(ch.Key)
		w.logf("generated chunk (%d,%d) height min=%d max=%d avg=%.1f",
			ch.Key.CX, ch.Key.CZ, gs.MinHeight, gs.MaxHeight, gs.AvgHeight)
	}
	return len(pending)
}

func (w *World) rebuildMeshes(player store.ChunkKey) int {
	dirty := w.collect(func(ch *store.Chunk) bool { return ch.Generated && ch.MeshDirty })
	ordered(dirty, player)
	if w.cfg.MeshesPerTick > 0 && len(dirty) > w.cfg.MeshesPerTick {
		dirty = dirty[:w.cfg.MeshesPerTick]
	}
	for _, ch := range dirty {
		m := mesh.Build(ch, w.index)
		ch.MeshDirty = false
		w.meshes[ch.Key] = m
		if w.cfg.Sink != nil {
			w.cfg.Sink.UpsertMesh(ch.Key, m)
		}
	}
	return len(dirty)
}
