package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// StateDigest hashes every loaded chunk's key, generation flag and voxel
// digest in key order. Two worlds driven by the same inputs agree on it.
func (w *World) StateDigest() string {
	h := sha256.New()
	var tmp [8]byte
	for _, k := range w.index.Keys() {
		ch, _ := w.index.Get(k)
		binary.LittleEndian.PutUint64(tmp[:], uint64(int64(k.CX)))
		h.Write(tmp[:])
		binary.LittleEndian.PutUint64(tmp[:], uint64(int64(k.CZ)))
		h.Write(tmp[:])
		if !ch.Generated {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte{1})
		d := ch.Digest()
		h.Write(d[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
