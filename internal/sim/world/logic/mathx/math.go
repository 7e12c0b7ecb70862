package mathx

import "math"

// FloorDiv is Euclidean division for b > 0: FloorDiv(-1, 16) == -1.
func FloorDiv(a, b int) int {
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

// Mod is the matching non-negative remainder for b > 0.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// AbsInt saturates at math.MaxInt for math.MinInt.
func AbsInt(x int) int {
	if x == math.MinInt {
		return math.MaxInt
	}
	if x < 0 {
		return -x
	}
	return x
}

// SatAdd is a + b clamped to [math.MinInt, math.MaxInt].
func SatAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

// SatSub is a - b clamped to [math.MinInt, math.MaxInt].
func SatSub(a, b int) int {
	if b < 0 && a > math.MaxInt+b {
		return math.MaxInt
	}
	if b > 0 && a < math.MinInt+b {
		return math.MinInt
	}
	return a - b
}

// Chebyshev returns max(|dx|, |dz|), saturating instead of overflowing.
func Chebyshev(ax, az, bx, bz int) int {
	dx := AbsInt(SatSub(ax, bx))
	dz := AbsInt(SatSub(az, bz))
	if dx > dz {
		return dx
	}
	return dz
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Hash2 is a pure function of (seed, x, z); coordinates are folded to 32 bits.
func Hash2(seed int64, x, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uz := uint64(uint32(int32(z)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uz * 0xbf58476d1ce4e5b9)
	return mix64(v)
}
