package flowfield

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Pattern identifies an analytic flow-pattern generator.
type Pattern uint8

const (
	// PatternSpiral spirals outward from the center.
	PatternSpiral Pattern = iota
	// PatternVortex rotates around the center at unit speed.
	PatternVortex
	// PatternSink flows inward toward the center.
	PatternSink
	// PatternSource flows outward from the center.
	PatternSource
	// PatternWave is a horizontal flow with a sinusoidal vertical ripple.
	PatternWave
	// PatternDoubleGyre is two counter-rotating gyres.
	PatternDoubleGyre
)

// GeneratePattern samples an analytic pattern on a (gridSize+1)^2 lattice
// covering width x height field-space pixels and returns it as a point
// cloud.
func GeneratePattern(p Pattern, width, height float64, gridSize int) *Field {
	return generate(width, height, gridSize, func(x, y float64) (float64, float64) {
		return patternVector(p, x, y, width, height)
	})
}

// VortexSpec places one decaying vortex for [GenerateMultiVortex].
type VortexSpec struct {
	X, Y float64
	// Radius controls the exponential decay distance.
	Radius float64
	// Strength is the rotation speed; negative reverses direction.
	Strength float64
}

// GenerateMultiVortex superimposes several decaying vortices on a gentle
// background drift, producing the layered swirl used by the interaction
// demos.
func GenerateMultiVortex(width, height float64, gridSize int, vortices []VortexSpec) *Field {
	return generate(width, height, gridSize, func(x, y float64) (float64, float64) {
		var dx, dy float64
		for _, v := range vortices {
			cx := x - v.X
			cy := y - v.Y
			dist := math.Hypot(cx, cy)
			if dist == 0 {
				continue
			}
			decay := math.Exp(-dist / v.Radius)
			dx += -cy / dist * decay * v.Strength
			dy += cx / dist * decay * v.Strength
		}
		dx += 0.3
		dy += 0.1 * math.Sin(x/width*math.Pi*2)
		return dx, dy
	})
}

// GenerateNoise builds a flow field whose direction is driven by smooth
// opensimplex noise: the noise value at each lattice point picks an angle
// in [0, 2pi). scale controls the noise frequency (smaller is smoother).
func GenerateNoise(width, height float64, gridSize int, seed int64, scale float64) *Field {
	noise := opensimplex.New(seed)
	return generate(width, height, gridSize, func(x, y float64) (float64, float64) {
		angle := noise.Eval2(x*scale, y*scale) * 2 * math.Pi
		return math.Cos(angle), math.Sin(angle)
	})
}

// generate evaluates fn on the lattice and packs the results into a Field.
func generate(width, height float64, gridSize int, fn func(x, y float64) (dx, dy float64)) *Field {
	if gridSize < 1 {
		gridSize = 1
	}
	n := (gridSize + 1) * (gridSize + 1)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	dxs := make([]float64, 0, n)
	dys := make([]float64, 0, n)
	mags := make([]float64, 0, n)

	for i := 0; i <= gridSize; i++ {
		for j := 0; j <= gridSize; j++ {
			x := float64(i) / float64(gridSize) * width
			y := float64(j) / float64(gridSize) * height
			dx, dy := fn(x, y)
			xs = append(xs, x)
			ys = append(ys, y)
			dxs = append(dxs, dx)
			dys = append(dys, dy)
			mags = append(mags, math.Hypot(dx, dy))
		}
	}
	f, _ := NewField(xs, ys, dxs, dys, mags)
	return f
}

// patternVector evaluates one analytic pattern at (x, y).
func patternVector(p Pattern, x, y, width, height float64) (dx, dy float64) {
	cx := x - width/2
	cy := y - height/2
	dist := math.Hypot(cx, cy)

	switch p {
	case PatternSpiral:
		if dist == 0 {
			return 0, 0
		}
		angle := math.Atan2(cy, cx)
		strength := 1.0 - math.Exp(-dist/100)
		tx, ty := -math.Sin(angle), math.Cos(angle)
		rx, ry := math.Cos(angle), math.Sin(angle)
		return tx*strength*0.7 + rx*strength*0.3, ty*strength*0.7 + ry*strength*0.3

	case PatternVortex:
		if dist == 0 {
			return 0, 0
		}
		return -cy / dist, cx / dist

	case PatternSink:
		if dist == 0 {
			return 0, 0
		}
		strength := 1 - math.Exp(-dist/200)
		return -cx / dist * strength, -cy / dist * strength

	case PatternSource:
		if dist == 0 {
			return 0, 0
		}
		strength := 1 - math.Exp(-dist/200)
		return cx / dist * strength, cy / dist * strength

	case PatternWave:
		return 0.8, 0.3 * math.Sin(x/width*math.Pi*4)

	case PatternDoubleGyre:
		nx := x / width
		ny := y / height
		return -math.Sin(nx*math.Pi) * math.Cos(ny*math.Pi),
			math.Cos(nx*math.Pi) * math.Sin(ny*math.Pi)
	}
	return 0, 0
}
