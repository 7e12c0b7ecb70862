// Package indexdb keeps a queryable SQLite copy of the latest run's tick
// log. The JSONL tick files stay the source of truth; rows are dropped when
// the writer falls behind.
package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"voxelcraft.ai/chunkworld/internal/sim/world"
)

type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	dropTick    atomic.Uint64
	dropRun     atomic.Uint64
	writeErrors atomic.Uint64
}

type reqKind int

const (
	reqTick reqKind = iota + 1
	reqRun
)

type req struct {
	kind reqKind

	tick world.TickLogEntry
	run  RunInfo
}

// RunInfo describes the configuration a tick stream was produced with.
type RunInfo struct {
	Seed            int64
	RenderDistance  int
	GeneratePerTick int
	StartedAt       string
}

type Stats struct {
	DropTickTotal   uint64
	DropRunTotal    uint64
	WriteErrorTotal uint64
	QueueDepth      int
	QueueCapacity   int
}

const defaultQueue = 65536

func OpenSQLite(path string) (*SQLiteIndex, error) {
	return openSQLite(path, defaultQueue)
}

func openSQLite(path string, queue int) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{db: db, ch: make(chan req, queue)}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			tick INTEGER PRIMARY KEY,
			player_cx INTEGER NOT NULL,
			player_cz INTEGER NOT NULL,
			generated INTEGER NOT NULL,
			meshed INTEGER NOT NULL,
			unloaded INTEGER NOT NULL,
			restored INTEGER NOT NULL,
			pending INTEGER NOT NULL,
			loaded INTEGER NOT NULL,
			cached INTEGER NOT NULL,
			digest TEXT NOT NULL,
			raw_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_player ON ticks(player_cx, player_cz, tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the queue, commits and closes the database.
func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) WriteTick(entry world.TickLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqTick, tick: entry}:
	default:
		s.dropTick.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) RecordRun(info RunInfo) {
	if s == nil || s.closed.Load() {
		return
	}
	if info.StartedAt == "" {
		info.StartedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	select {
	case s.ch <- req{kind: reqRun, run: info}:
	default:
		s.dropRun.Add(1)
	}
}

func (s *SQLiteIndex) Stats() Stats {
	return Stats{
		DropTickTotal:   s.dropTick.Load(),
		DropRunTotal:    s.dropRun.Load(),
		WriteErrorTotal: s.writeErrors.Load(),
		QueueDepth:      len(s.ch),
		QueueCapacity:   cap(s.ch),
	}
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertTick, _ := s.db.Prepare(`INSERT OR REPLACE INTO ticks(tick,player_cx,player_cz,generated,meshed,unloaded,restored,pending,loaded,cached,digest,raw_json) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`)
	upsertMeta, _ := s.db.Prepare(`INSERT OR REPLACE INTO meta(key,value) VALUES(?,?)`)
	defer func() {
		if insertTick != nil {
			_ = insertTick.Close()
		}
		if upsertMeta != nil {
			_ = upsertMeta.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 500
		commitMaxWait = time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			s.writeErrors.Add(1)
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		if err := tx.Commit(); err != nil {
			s.writeErrors.Add(1)
		}
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		s.writeErrors.Add(1)
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqTick:
			if insertTick == nil {
				continue
			}
			t := r.tick
			raw, _ := json.Marshal(t)
			if _, err := tx.Stmt(insertTick).Exec(
				int64(t.Tick),
				t.PlayerCX, t.PlayerCZ,
				t.Generated, t.Meshed, t.Unloaded, t.Restored,
				t.Pending, t.Loaded, t.Cached,
				t.Digest,
				string(raw),
			); err != nil {
				rollback()
				continue
			}
			opCount++

		case reqRun:
			if upsertMeta == nil {
				continue
			}
			// A new run restarts at tick 0; the index keeps one run.
			if _, err := tx.Exec(`DELETE FROM ticks`); err != nil {
				rollback()
				continue
			}
			kv := [][2]string{
				{"seed", strconv.FormatInt(r.run.Seed, 10)},
				{"render_distance", strconv.Itoa(r.run.RenderDistance)},
				{"generate_per_tick", strconv.Itoa(r.run.GeneratePerTick)},
				{"started_at", r.run.StartedAt},
			}
			for _, p := range kv {
				if _, err := tx.Stmt(upsertMeta).Exec(p[0], p[1]); err != nil {
					rollback()
					break
				}
				opCount++
			}
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}
	commit()
}
