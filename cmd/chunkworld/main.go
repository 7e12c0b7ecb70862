package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"voxelcraft.ai/chunkworld/internal/persistence/indexdb"
	persistlog "voxelcraft.ai/chunkworld/internal/persistence/log"
	"voxelcraft.ai/chunkworld/internal/render/gltfexport"
	"voxelcraft.ai/chunkworld/internal/sim/tuning"
	"voxelcraft.ai/chunkworld/internal/sim/world"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		seed       = flag.Int64("seed", 0, "override worldgen seed (0 keeps the tuning value)")
		ticks      = flag.Int("ticks", 200, "number of ticks to simulate")
		walk       = flag.String("walk", "line", "player path: still|line|square")
		stride     = flag.Int("stride", 10, "ticks between player chunk moves")
		realtime   = flag.Bool("realtime", false, "step on a wall-clock ticker instead of as fast as possible")
		tickRate   = flag.Int("tick_rate_hz", 20, "tick rate for -realtime")
		exportPath = flag.String("export", "", "write final chunk meshes to this .glb path (optional)")
		tickLogDir = flag.String("ticklog", "", "directory for compressed per-tick stats (optional)")
		indexPath  = flag.String("index_db", "", "sqlite tick index path (optional)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[chunkworld] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}
	if *seed != 0 {
		tune.WorldGen.Seed = *seed
	}

	path, err := playerPath(*walk, *ticks, *stride)
	if err != nil {
		logger.Fatalf("walk: %v", err)
	}

	sink := gltfexport.NewCollector()
	cfg := tune.WorldConfig()
	cfg.TickRateHz = *tickRate
	cfg.Logger = logger
	cfg.Sink = sink
	w, err := world.New(cfg)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}
	defer w.Close()

	var sinks tickLoggers
	if dir := strings.TrimSpace(*tickLogDir); dir != "" {
		tl := persistlog.NewTickLogger(dir)
		defer tl.Close()
		sinks = append(sinks, tl)
	}
	if p := strings.TrimSpace(*indexPath); p != "" {
		idx, err := indexdb.OpenSQLite(p)
		if err != nil {
			logger.Fatalf("index db: %v", err)
		}
		defer func() {
			_ = idx.Close()
			st := idx.Stats()
			logger.Printf("index: dropped_ticks=%d write_errors=%d", st.DropTickTotal, st.WriteErrorTotal)
		}()
		idx.RecordRun(indexdb.RunInfo{
			Seed:            tune.WorldGen.Seed,
			RenderDistance:  cfg.RenderDistance,
			GeneratePerTick: cfg.GeneratePerTick,
		})
		sinks = append(sinks, idx)
	}
	if len(sinks) > 0 {
		w.SetTickLogger(sinks)
	}

	logger.Printf("seed=%d render_distance=%d generate_per_tick=%d ticks=%d walk=%s",
		tune.WorldGen.Seed, cfg.RenderDistance, cfg.GeneratePerTick, len(path), *walk)

	start := time.Now()
	if *realtime {
		runRealtime(w, path, logger)
	} else {
		for _, p := range path {
			w.Step(world.TickInput{Player: p})
		}
	}

	m := w.Metrics()
	logger.Printf("done in %s: tick=%d loaded=%d generated=%d pending=%d meshes=%d quads=%d",
		time.Since(start).Round(time.Millisecond), m.Tick, m.LoadedChunks, m.GeneratedChunks, m.PendingChunks, m.Meshes, m.Quads)
	ready := 0
	near := w.ChunksWithin(w.Player(), cfg.RenderDistance/2)
	for _, k := range near {
		if ch, ok := w.Chunk(k); ok && ch.Generated {
			ready++
		}
	}
	logger.Printf("near player (%d,%d): %d/%d chunks generated", w.Player().CX, w.Player().CZ, ready, len(near))
	logger.Printf("cache: entries=%d hits=%d misses=%d evictions=%d corrupt=%d est_bytes=%d peak_bytes=%d compressed_bytes=%d",
		m.Cache.Entries, m.Cache.Hits, m.Cache.Misses, m.Cache.Evictions, m.Cache.Corrupt, m.Cache.EstimatedBytes, m.Cache.PeakBytes, m.Cache.CompressedBytes)

	if out := strings.TrimSpace(*exportPath); out != "" {
		if err := gltfexport.Save(out, sink.Meshes()); err != nil {
			logger.Fatalf("export: %v", err)
		}
		logger.Printf("exported %d chunk meshes to %s", sink.Len(), out)
	}
}

// runRealtime feeds the path to the world loop one move per tick interval.
func runRealtime(w *world.World, path []store.ChunkKey, logger *log.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	interval := time.Second / time.Duration(w.Config().TickRateHz)
	for _, p := range path {
		select {
		case <-ctx.Done():
		case w.Move() <- p:
		}
		if ctx.Err() != nil {
			break
		}
		time.Sleep(interval)
	}
	w.Stop()
	if err := <-done; err != nil && ctx.Err() == nil {
		logger.Printf("world loop: %v", err)
	}
}
