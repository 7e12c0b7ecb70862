package main

import (
	"context"
	"path/filepath"
	"testing"

	"voxelcraft.ai/chunkworld/internal/persistence/indexdb"
	persistlog "voxelcraft.ai/chunkworld/internal/persistence/log"
	"voxelcraft.ai/chunkworld/internal/sim/tuning"
	"voxelcraft.ai/chunkworld/internal/sim/world"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

func smallWorld(t *testing.T) *world.World {
	t.Helper()
	tune := tuning.Defaults()
	tune.Chunks.RenderDistance = 1
	w, err := world.New(tune.WorldConfig())
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func record(t *testing.T, dir string, ticks int, player func(i int) store.ChunkKey) string {
	t.Helper()
	rec := smallWorld(t)
	tl := persistlog.NewTickLogger(dir)
	rec.SetTickLogger(tl)
	for i := 0; i < ticks; i++ {
		rec.Step(world.TickInput{Player: player(i)})
	}
	if err := tl.Close(); err != nil {
		t.Fatalf("close tick log: %v", err)
	}
	return tl.Run()
}

func TestReplayReproducesRecordedDigests(t *testing.T) {
	dir := t.TempDir()
	record(t, dir, 12, func(i int) store.ChunkKey { return store.ChunkKey{CX: i / 3} })

	runs, err := listTickRuns(filepath.Join(dir, "ticks"))
	if err != nil || len(runs) != 1 {
		t.Fatalf("tick runs: %v %v", runs, err)
	}
	var checked uint64
	if err := replayRun(smallWorld(t), runs[0], 0, &checked); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if checked != 12 {
		t.Fatalf("checked=%d want 12", checked)
	}
}

func TestReplayStopsAtTick(t *testing.T) {
	dir := t.TempDir()
	record(t, dir, 6, func(int) store.ChunkKey { return store.ChunkKey{} })

	runs, _ := listTickRuns(filepath.Join(dir, "ticks"))
	var checked uint64
	if err := replayRun(smallWorld(t), runs[0], 2, &checked); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if checked != 3 {
		t.Fatalf("checked=%d want 3", checked)
	}
}

func TestReplaySeparatesRunsInSameDir(t *testing.T) {
	dir := t.TempDir()
	first := record(t, dir, 5, func(i int) store.ChunkKey { return store.ChunkKey{CZ: i} })
	second := record(t, dir, 7, func(i int) store.ChunkKey { return store.ChunkKey{CX: -i / 2} })
	if first == second {
		t.Fatalf("runs share id %q", first)
	}

	runs, err := listTickRuns(filepath.Join(dir, "ticks"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != first || runs[1].ID != second {
		t.Fatalf("runs=%+v", runs)
	}
	var checked uint64
	for _, r := range runs {
		if err := replayRun(smallWorld(t), r, 0, &checked); err != nil {
			t.Fatalf("replay %s: %v", r.ID, err)
		}
	}
	if checked != 12 {
		t.Fatalf("checked=%d want 12", checked)
	}
}

func TestReplayFromIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.sqlite")
	idx, err := indexdb.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	rec := smallWorld(t)
	rec.SetTickLogger(idx)
	for i := 0; i < 8; i++ {
		rec.Step(world.TickInput{Player: store.ChunkKey{CZ: -i / 2}})
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close index: %v", err)
	}

	r, err := indexdb.OpenReader(path)
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	defer r.Close()

	w := smallWorld(t)
	var checked uint64
	if err := replayIndex(context.Background(), w, r, 0, &checked); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if checked != 8 {
		t.Fatalf("checked=%d want 8", checked)
	}

	// A world with a different seed must diverge.
	tune := tuning.Defaults()
	tune.Chunks.RenderDistance = 1
	tune.WorldGen.Seed++
	other, err := world.New(tune.WorldConfig())
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	defer other.Close()
	checked = 0
	if err := replayIndex(context.Background(), other, r, 0, &checked); err == nil {
		t.Fatalf("expected digest mismatch for a different seed")
	}
}
