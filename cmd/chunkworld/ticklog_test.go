package main

import (
	"errors"
	"testing"

	"voxelcraft.ai/chunkworld/internal/sim/world"
)

type recordingLogger struct {
	ticks []uint64
	err   error
}

func (r *recordingLogger) WriteTick(e world.TickLogEntry) error {
	r.ticks = append(r.ticks, e.Tick)
	return r.err
}

func TestTickLoggersFanOut(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingLogger{}
	b := &recordingLogger{err: boom}
	ls := tickLoggers{a, b}

	err := ls.WriteTick(world.TickLogEntry{Tick: 3})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(a.ticks) != 1 || len(b.ticks) != 1 {
		t.Fatalf("each logger should see the entry: a=%v b=%v", a.ticks, b.ticks)
	}
	if err := (tickLoggers{a}).WriteTick(world.TickLogEntry{Tick: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
