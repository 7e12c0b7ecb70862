package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"voxelcraft.ai/chunkworld/internal/persistence/indexdb"
	persistlog "voxelcraft.ai/chunkworld/internal/persistence/log"
	"voxelcraft.ai/chunkworld/internal/sim/tuning"
	"voxelcraft.ai/chunkworld/internal/sim/world"
	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

func main() {
	var (
		ticksDir   = flag.String("ticks", "", "dir containing ticks-*.jsonl.zst (one or more runs)")
		indexPath  = flag.String("index_db", "", "replay from a sqlite tick index instead of -ticks")
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		seed       = flag.Int64("seed", 0, "worldgen seed used for the recording (0 keeps the tuning value)")
		toTick     = flag.Uint64("to_tick", 0, "stop at tick (inclusive, optional)")
	)
	flag.Parse()

	if *ticksDir == "" && *indexPath == "" {
		fmt.Fprintln(os.Stderr, "missing -ticks or -index_db")
		os.Exit(2)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(1)
	}
	if *seed != 0 {
		tune.WorldGen.Seed = *seed
	}

	var idx *indexdb.Reader
	if *indexPath != "" {
		idx, err = indexdb.OpenReader(*indexPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open index:", err)
			os.Exit(1)
		}
		defer idx.Close()
		if *seed == 0 {
			if run, ok, err := idx.Run(context.Background()); err == nil && ok {
				tune.WorldGen.Seed = run.Seed
				tune.Chunks.RenderDistance = run.RenderDistance
				tune.Chunks.GeneratePerTick = run.GeneratePerTick
			}
		}
	}

	newWorld := func() *world.World {
		w, err := world.New(tune.WorldConfig())
		if err != nil {
			fmt.Fprintln(os.Stderr, "world:", err)
			os.Exit(1)
		}
		return w
	}

	var checked uint64
	if idx != nil {
		w := newWorld()
		defer w.Close()
		if err := replayIndex(context.Background(), w, idx, *toTick, &checked); err != nil {
			fmt.Fprintln(os.Stderr, "replay:", err)
			os.Exit(1)
		}
		fmt.Printf("replay ok: checked=%d ticks seed=%d\n", checked, tune.WorldGen.Seed)
		return
	}

	runs, err := listTickRuns(*ticksDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list ticks:", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no tick files found in", *ticksDir)
		os.Exit(1)
	}

	// Every run starts at tick 0 and is replayed on a fresh world.
	for _, r := range runs {
		w := newWorld()
		err := replayRun(w, r, *toTick, &checked)
		_ = w.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, "replay:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("replay ok: runs=%d checked=%d ticks seed=%d\n", len(runs), checked, tune.WorldGen.Seed)
}

// tickRun is one recorded tick stream: its files in hour order.
type tickRun struct {
	ID    string
	Files []string
}

// listTickRuns groups ticks-*.jsonl.zst files in dir by run id. Runs are
// ordered by id; files written without a run id form one run with ID "".
func listTickRuns(dir string) ([]tickRun, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type file struct{ hour, path string }
	byRun := map[string][]file{}
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		run, hour, ok := persistlog.ParseTickFileName("ticks", e.Name())
		if !ok {
			continue
		}
		byRun[run] = append(byRun[run], file{hour: hour, path: filepath.Join(dir, e.Name())})
	}
	ids := make([]string, 0, len(byRun))
	for id := range byRun {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]tickRun, 0, len(ids))
	for _, id := range ids {
		files := byRun[id]
		sort.Slice(files, func(i, j int) bool { return files[i].hour < files[j].hour })
		r := tickRun{ID: id}
		for _, f := range files {
			r.Files = append(r.Files, f.path)
		}
		out = append(out, r)
	}
	return out, nil
}

func replayRun(w *world.World, r tickRun, toTick uint64, checked *uint64) error {
	for _, path := range r.Files {
		if err := replayFile(w, path, toTick, checked); err != nil {
			if r.ID != "" {
				return fmt.Errorf("run %s: %w", r.ID, err)
			}
			return err
		}
		if toTick != 0 && w.CurrentTick() > toTick {
			break
		}
	}
	return nil
}

var errStop = errors.New("stop")

// replayFile steps w with each recorded player position and compares the
// resulting state digest with the recorded one.
func replayFile(w *world.World, path string, toTick uint64, checked *uint64) error {
	err := persistlog.ReadJSONL(path, func(line []byte) error {
		var entry world.TickLogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if err := replayEntry(w, entry, toTick, checked); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return nil
	})
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

func replayIndex(ctx context.Context, w *world.World, idx *indexdb.Reader, toTick uint64, checked *uint64) error {
	entries, err := idx.Ticks(ctx, 0, toTick)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("index has no ticks")
	}
	for _, entry := range entries {
		if err := replayEntry(w, entry, toTick, checked); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

func replayEntry(w *world.World, entry world.TickLogEntry, toTick uint64, checked *uint64) error {
	if toTick != 0 && entry.Tick > toTick {
		return errStop
	}
	if entry.Tick != w.CurrentTick() {
		return fmt.Errorf("tick mismatch: want=%d got=%d", w.CurrentTick(), entry.Tick)
	}
	st := w.Step(world.TickInput{Player: store.ChunkKey{CX: entry.PlayerCX, CZ: entry.PlayerCZ}})
	*checked++
	if st.Digest != entry.Digest {
		return fmt.Errorf("digest mismatch at tick %d: got=%s want=%s", st.Tick, st.Digest, entry.Digest)
	}
	return nil
}
