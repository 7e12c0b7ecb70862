package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"voxelcraft.ai/chunkworld/internal/sim/world"
)

// JSONLZstdWriter appends JSON lines to hourly zstd files named
// <prefix>-YYYY-MM-DD-HH.jsonl.zst under baseDir, or
// <prefix>-<run>-YYYY-MM-DD-HH.jsonl.zst when a run id is set.
type JSONLZstdWriter struct {
	baseDir string
	prefix  string
	run     string
	now     func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
		now:     time.Now,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.now().UTC().Format(hourLayout)
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	dir := filepath.Dir(w.pathForHour(hour))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curHour = hour
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err1
}

func (w *JSONLZstdWriter) pathForHour(hour string) string {
	if w.run != "" {
		return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s-%s.jsonl.zst", w.prefix, w.run, hour))
	}
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}

const (
	hourLayout = "2006-01-02-15"
	runLayout  = "20060102T150405.000000000Z"
)

// RunID names a tick stream by its start time. It sorts chronologically and
// contains no '-'.
func RunID(t time.Time) string {
	return t.UTC().Format(runLayout)
}

// ParseTickFileName splits <prefix>-[<run>-]YYYY-MM-DD-HH.jsonl.zst into
// its run id (empty for files written without one) and hour.
func ParseTickFileName(prefix, name string) (run, hour string, ok bool) {
	rest, found := strings.CutPrefix(name, prefix+"-")
	if !found {
		return "", "", false
	}
	rest, found = strings.CutSuffix(rest, ".jsonl.zst")
	if !found {
		return "", "", false
	}
	if i := strings.IndexByte(rest, '-'); i > 0 && strings.Contains(rest[:i], "T") {
		run, rest = rest[:i], rest[i+1:]
	}
	if _, err := time.Parse(hourLayout, rest); err != nil {
		return "", "", false
	}
	return run, rest, true
}

// TickLogger writes one JSONL entry per tick (compressed). Each logger gets
// its own run id so separate runs never share a file.
type TickLogger struct{ w *JSONLZstdWriter }

func NewTickLogger(dir string) *TickLogger {
	w := NewJSONLZstdWriter(filepath.Join(dir, "ticks"), "ticks")
	w.run = RunID(w.now())
	return &TickLogger{w: w}
}

func (l *TickLogger) Run() string { return l.w.run }

func (l *TickLogger) WriteTick(v world.TickLogEntry) error { return l.w.Write(v) }
func (l *TickLogger) Close() error                         { return l.w.Close() }

// ReadJSONL decodes every line of a .jsonl.zst file into out, one call per line.
func ReadJSONL(path string, out func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if err := out(sc.Bytes()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return nil
}
