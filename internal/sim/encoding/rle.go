package encoding

import (
	"encoding/binary"
	"fmt"
)

// PaletteID is any small integer palette index.
type PaletteID interface {
	~uint8 | ~uint16
}

// AppendRLE appends ids to dst as uvarint pairs (id, run_len).
func AppendRLE[T PaletteID](dst []byte, ids []T) []byte {
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(ids) {
		b := ids[i]
		run := 1
		for j := i + 1; j < len(ids) && ids[j] == b && run < 1<<31; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(b))
		dst = append(dst, tmp[:n]...)
		n = binary.PutUvarint(tmp[:], uint64(run))
		dst = append(dst, tmp[:n]...)

		i += run
	}
	return dst
}

// DecodeRLE expands exactly want ids from raw and returns the bytes consumed.
func DecodeRLE[T PaletteID](raw []byte, want int) ([]T, int, error) {
	var zero T
	maxID := uint64(^zero)

	out := make([]T, 0, want)
	i := 0
	for len(out) < want {
		if i >= len(raw) {
			return nil, i, fmt.Errorf("rle truncated: decoded %d of %d", len(out), want)
		}
		b, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, i, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, i, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if b > maxID {
			return nil, i, fmt.Errorf("palette id too large: %d", b)
		}
		if run == 0 || run > uint64(want-len(out)) {
			return nil, i, fmt.Errorf("bad run length %d at %d", run, i)
		}
		for k := uint64(0); k < run; k++ {
			out = append(out, T(b))
		}
	}
	return out, i, nil
}
