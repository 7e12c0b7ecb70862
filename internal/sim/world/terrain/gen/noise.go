package gen

import (
	"math"

	"voxelcraft.ai/chunkworld/internal/sim/world/logic/mathx"
)

var gradients = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{math.Sqrt2 / 2, math.Sqrt2 / 2}, {-math.Sqrt2 / 2, math.Sqrt2 / 2},
	{math.Sqrt2 / 2, -math.Sqrt2 / 2}, {-math.Sqrt2 / 2, -math.Sqrt2 / 2},
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func cornerDot(seed int64, ix, iy int, dx, dy float64) float64 {
	g := gradients[mathx.Hash2(seed, ix, iy)&7]
	return g[0]*dx + g[1]*dy
}

// GradientNoise is 2D lattice gradient noise in [0,1].
func GradientNoise(seed int64, x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	ix, iy := int(x0), int(y0)
	fx, fy := x-x0, y-y0

	n00 := cornerDot(seed, ix, iy, fx, fy)
	n10 := cornerDot(seed, ix+1, iy, fx-1, fy)
	n01 := cornerDot(seed, ix, iy+1, fx, fy-1)
	n11 := cornerDot(seed, ix+1, iy+1, fx-1, fy-1)

	u, v := fade(fx), fade(fy)
	n := lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)

	// |n| <= sqrt(1/2) for unit gradients.
	return mathx.ClampFloat((n*math.Sqrt2+1)/2, 0, 1)
}

// FractalNoise sums octaves of GradientNoise normalized by total amplitude.
func FractalNoise(seed int64, x, y float64, octaves int, persistence, lacunarity float64) float64 {
	var total, ampSum float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += GradientNoise(seed+int64(i), x*freq, y*freq) * amp
		ampSum += amp
		amp *= persistence
		freq *= lacunarity
	}
	if ampSum < 1e-6 {
		return 0.5
	}
	return total / ampSum
}
