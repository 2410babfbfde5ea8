package flowfield

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sampler provides the flow vector for an arbitrary field-space point.
// Implementations return the zero vector when no data is available.
type Sampler interface {
	Sample(x, y float64) (dx, dy, magnitude float64)
}

// Field is a sampled vector field given as an unordered point cloud.
// The five slices are parallel: index i across them denotes one sample at
// position (Xs[i], Ys[i]) with velocity (DXs[i], DYs[i]) and precomputed
// Magnitudes[i]. Field-space coordinates are pixels.
//
// A Field is immutable from the widget's perspective; the host replaces it
// wholesale via [Widget.SetField] rather than patching slices in place.
type Field struct {
	Xs, Ys     []float64
	DXs, DYs   []float64
	Magnitudes []float64
}

// NewField builds a Field from parallel sample slices. All slices must have
// equal length. magnitudes may be nil, in which case it is computed from
// dxs and dys.
func NewField(xs, ys, dxs, dys, magnitudes []float64) (*Field, error) {
	n := len(xs)
	if len(ys) != n || len(dxs) != n || len(dys) != n {
		return nil, fmt.Errorf("flowfield: mismatched sample slice lengths (x=%d y=%d dx=%d dy=%d)",
			len(xs), len(ys), len(dxs), len(dys))
	}
	if magnitudes == nil {
		magnitudes = make([]float64, n)
		for i := range magnitudes {
			magnitudes[i] = math.Hypot(dxs[i], dys[i])
		}
	} else if len(magnitudes) != n {
		return nil, fmt.Errorf("flowfield: magnitude slice length %d, want %d", len(magnitudes), n)
	}
	return &Field{Xs: xs, Ys: ys, DXs: dxs, DYs: dys, Magnitudes: magnitudes}, nil
}

// Len returns the number of samples.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Xs)
}

// Sample returns the attributes of the nearest sample to (x, y) by
// exhaustive linear scan over the point cloud. No interpolation is
// performed. Ties are broken by the first-encountered index. An empty
// field samples as the zero vector.
//
// Cost is O(N) per call; wrap the field in a [GridSampler] when N grows
// large enough to matter.
func (f *Field) Sample(x, y float64) (dx, dy, magnitude float64) {
	if f.Len() == 0 {
		return 0, 0, 0
	}
	best := 0
	bestDist := math.Inf(1)
	for i := range f.Xs {
		ddx := f.Xs[i] - x
		ddy := f.Ys[i] - y
		d := ddx*ddx + ddy*ddy
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return f.DXs[best], f.DYs[best], f.Magnitudes[best]
}

// nearestIndex returns the index of the sample nearest to (x, y), or -1 for
// an empty field. Same scan and tie-break policy as Sample.
func (f *Field) nearestIndex(x, y float64) int {
	if f.Len() == 0 {
		return -1
	}
	best := 0
	bestDist := math.Inf(1)
	for i := range f.Xs {
		ddx := f.Xs[i] - x
		ddy := f.Ys[i] - y
		d := ddx*ddx + ddy*ddy
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Bounds returns the axis-aligned bounding rectangle of the sample
// positions. The zero Rect is returned for an empty field.
func (f *Field) Bounds() Rect {
	if f.Len() == 0 {
		return Rect{}
	}
	minX := floats.Min(f.Xs)
	maxX := floats.Max(f.Xs)
	minY := floats.Min(f.Ys)
	maxY := floats.Max(f.Ys)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FieldStats summarizes the magnitude distribution of a field.
type FieldStats struct {
	Min, Max, Mean, StdDev float64
}

// Stats computes magnitude statistics over all samples. The zero value is
// returned for an empty field.
func (f *Field) Stats() FieldStats {
	if f.Len() == 0 {
		return FieldStats{}
	}
	s := FieldStats{
		Min:  floats.Min(f.Magnitudes),
		Max:  floats.Max(f.Magnitudes),
		Mean: stat.Mean(f.Magnitudes, nil),
	}
	if f.Len() > 1 {
		s.StdDev = stat.StdDev(f.Magnitudes, nil)
	}
	return s
}
