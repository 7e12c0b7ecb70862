package world

import "voxelcraft.ai/chunkworld/internal/sim/world/cache"

// Totals accumulate over the world's lifetime.
type Totals struct {
	Generated uint64 `json:"generated"`
	Meshed    uint64 `json:"meshed"`
	Unloaded  uint64 `json:"unloaded"`
	Restored  uint64 `json:"restored"`
	Created   uint64 `json:"created"`
}

func (t *Totals) add(st TickStats) {
	t.Generated += uint64(st.Generated)
	t.Meshed += uint64(st.Meshed)
	t.Unloaded += uint64(st.Unloaded)
	t.Restored += uint64(st.Restored)
	t.Created += uint64(st.Created)
}

type WorldMetrics struct {
	Tick uint64 `json:"tick"`

	LoadedChunks    int `json:"loaded_chunks"`
	GeneratedChunks int `json:"generated_chunks"`
	PendingChunks   int `json:"pending_chunks"`
	DirtyMeshes     int `json:"dirty_meshes"`
	Meshes          int `json:"meshes"`
	Quads           int `json:"quads"`
	Regions         int `json:"regions"`

	StepMS float64 `json:"step_ms"`

	Totals Totals      `json:"totals"`
	Cache  cache.Stats `json:"cache"`
}

func (w *World) Metrics() WorldMetrics {
	m := WorldMetrics{
		Tick:         w.tick,
		LoadedChunks: w.index.Len(),
		Meshes:       len(w.meshes),
		Regions:      w.index.RegionCount(),
		StepMS:       w.last.StepMS,
		Totals:       w.totals,
		Cache:        w.cache.Stats(),
	}
	for _, k := range w.index.Keys() {
		ch, _ := w.index.Get(k)
		if ch.Generated {
			m.GeneratedChunks++
			if ch.MeshDirty {
				m.DirtyMeshes++
			}
		} else {
			m.PendingChunks++
		}
	}
	for _, me := range w.meshes {
		m.Quads += me.QuadCount()
	}
	return m
}
