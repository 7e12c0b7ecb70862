// Package cache keeps recently unloaded chunks so re-entering an area does
// not regenerate them. It is an LRU bounded by entry count and by an
// estimated memory footprint of entries × chunk volume.
package cache

import (
	"container/list"

	"github.com/klauspost/compress/zstd"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/store"
)

type Config struct {
	MaxEntries       int
	MaxMemoryBytes   int64
	ChunkVolumeBytes int64
}

// DefaultChunkVolumeBytes is one byte per voxel.
const DefaultChunkVolumeBytes = int64(store.Volume)

func (c *Config) applyDefaults() {
	if c.MaxEntries <= 0 {
		c.MaxEntries = 256
	}
	if c.ChunkVolumeBytes <= 0 {
		c.ChunkVolumeBytes = DefaultChunkVolumeBytes
	}
	if c.MaxMemoryBytes <= 0 {
		c.MaxMemoryBytes = int64(c.MaxEntries) * c.ChunkVolumeBytes
	}
}

type Stats struct {
	Hits            uint64
	Misses          uint64
	Evictions       uint64
	Corrupt         uint64
	Entries         int
	EstimatedBytes  int64
	PeakBytes       int64
	CompressedBytes int64
}

type entry struct {
	key     store.ChunkKey
	payload []byte
}

// Cache is not safe for concurrent use.
type Cache struct {
	cfg Config

	ll    *list.List // front = most recently used
	items map[store.ChunkKey]*list.Element

	enc *zstd.Encoder
	dec *zstd.Decoder

	stats Stats
}

func New(cfg Config) (*Cache, error) {
	cfg.applyDefaults()
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	return &Cache{
		cfg:   cfg,
		ll:    list.New(),
		items: map[store.ChunkKey]*list.Element{},
		enc:   enc,
		dec:   dec,
	}, nil
}

func (c *Cache) Config() Config { return c.cfg }

func (c *Cache) Len() int { return c.ll.Len() }

func (c *Cache) Contains(k store.ChunkKey) bool {
	_, ok := c.items[k]
	return ok
}

// EstimatedBytes is entries × ChunkVolumeBytes.
func (c *Cache) EstimatedBytes() int64 {
	return int64(c.ll.Len()) * c.cfg.ChunkVolumeBytes
}

// Put inserts or replaces k as most recently used, then evicts from the
// least recently used end until both bounds hold.
func (c *Cache) Put(k store.ChunkKey, s store.Snapshot) {
	payload := c.enc.EncodeAll(encodeSnapshot(s), nil)
	if el, ok := c.items[k]; ok {
		e := el.Value.(*entry)
		c.stats.CompressedBytes += int64(len(payload)) - int64(len(e.payload))
		e.payload = payload
		c.ll.MoveToFront(el)
	} else {
		c.items[k] = c.ll.PushFront(&entry{key: k, payload: payload})
		c.stats.CompressedBytes += int64(len(payload))
	}
	c.evict()
	if b := c.EstimatedBytes(); b > c.stats.PeakBytes {
		c.stats.PeakBytes = b
	}
}

func (c *Cache) overBudget() bool {
	return c.ll.Len() > c.cfg.MaxEntries || c.EstimatedBytes() > c.cfg.MaxMemoryBytes
}

func (c *Cache) evict() {
	for c.ll.Len() > 0 && c.overBudget() {
		c.removeElement(c.ll.Back())
		c.stats.Evictions++
	}
}

func (c *Cache) removeElement(el *list.Element) {
	e := el.Value.(*entry)
	c.ll.Remove(el)
	delete(c.items, e.key)
	c.stats.CompressedBytes -= int64(len(e.payload))
}

// Get returns the snapshot for k and marks it most recently used. A miss,
// including an entry that fails to decode, reports false.
func (c *Cache) Get(k store.ChunkKey) (store.Snapshot, bool) {
	el, ok := c.items[k]
	if !ok {
		c.stats.Misses++
		return store.Snapshot{}, false
	}
	s, ok := c.decode(el)
	if !ok {
		return store.Snapshot{}, false
	}
	c.ll.MoveToFront(el)
	c.stats.Hits++
	return s, true
}

// Take removes k and returns its snapshot.
func (c *Cache) Take(k store.ChunkKey) (store.Snapshot, bool) {
	el, ok := c.items[k]
	if !ok {
		c.stats.Misses++
		return store.Snapshot{}, false
	}
	s, ok := c.decode(el)
	if !ok {
		return store.Snapshot{}, false
	}
	c.removeElement(el)
	c.stats.Hits++
	return s, true
}

func (c *Cache) decode(el *list.Element) (store.Snapshot, bool) {
	e := el.Value.(*entry)
	raw, err := c.dec.DecodeAll(e.payload, nil)
	if err == nil {
		var s store.Snapshot
		s, err = decodeSnapshot(e.key, raw)
		if err == nil {
			return s, true
		}
	}
	c.removeElement(el)
	c.stats.Corrupt++
	c.stats.Misses++
	return store.Snapshot{}, false
}

// Remove drops k without counting a hit or miss.
func (c *Cache) Remove(k store.ChunkKey) bool {
	el, ok := c.items[k]
	if !ok {
		return false
	}
	c.removeElement(el)
	return true
}

// Keys lists cached coordinates from most to least recently used.
func (c *Cache) Keys() []store.ChunkKey {
	out := make([]store.ChunkKey, 0, c.ll.Len())
	for el := c.ll.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry).key)
	}
	return out
}

func (c *Cache) Stats() Stats {
	s := c.stats
	s.Entries = c.ll.Len()
	s.EstimatedBytes = c.EstimatedBytes()
	return s
}

func (c *Cache) Clear() {
	c.ll.Init()
	c.items = map[store.ChunkKey]*list.Element{}
	c.stats.CompressedBytes = 0
}

func (c *Cache) Close() error {
	c.dec.Close()
	return c.enc.Close()
}
