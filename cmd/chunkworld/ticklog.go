package main

import (
	"errors"

	"voxelcraft.ai/chunkworld/internal/sim/world"
)

// tickLoggers fans a tick entry out to every configured sink.
type tickLoggers []world.TickLogger

func (ls tickLoggers) WriteTick(e world.TickLogEntry) error {
	var errs []error
	for _, l := range ls {
		if err := l.WriteTick(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
