package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"voxelcraft.ai/chunkworld/internal/sim/world"
)

// Reader opens an index for queries only.
type Reader struct {
	db *sql.DB
}

func OpenReader(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error { return r.db.Close() }

// Run returns the recorded run configuration; ok is false if none was stored.
func (r *Reader) Run(ctx context.Context) (info RunInfo, ok bool, err error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return RunInfo{}, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return RunInfo{}, false, err
		}
		ok = true
		switch k {
		case "seed":
			info.Seed, err = strconv.ParseInt(v, 10, 64)
		case "render_distance":
			info.RenderDistance, err = strconv.Atoi(v)
		case "generate_per_tick":
			info.GeneratePerTick, err = strconv.Atoi(v)
		case "started_at":
			info.StartedAt = v
		}
		if err != nil {
			return RunInfo{}, false, fmt.Errorf("meta %s: %w", k, err)
		}
	}
	return info, ok, rows.Err()
}

// Ticks returns entries in [from, to] ordered by tick. to == 0 means no
// upper bound.
func (r *Reader) Ticks(ctx context.Context, from, to uint64) ([]world.TickLogEntry, error) {
	q := `SELECT raw_json FROM ticks WHERE tick >= ? ORDER BY tick`
	args := []any{int64(from)}
	if to != 0 {
		q = `SELECT raw_json FROM ticks WHERE tick >= ? AND tick <= ? ORDER BY tick`
		args = append(args, int64(to))
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []world.TickLogEntry
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e world.TickLogEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Reader) TickDigest(ctx context.Context, tick uint64) (string, bool, error) {
	var d string
	err := r.db.QueryRowContext(ctx, `SELECT digest FROM ticks WHERE tick = ?`, int64(tick)).Scan(&d)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return d, true, nil
}

// GeneratedTotal sums generated chunks over all recorded ticks.
func (r *Reader) GeneratedTotal(ctx context.Context) (int64, error) {
	var n sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(generated) FROM ticks`).Scan(&n); err != nil {
		return 0, err
	}
	return n.Int64, nil
}
