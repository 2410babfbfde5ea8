package flowfield

import (
	"math"
	"testing"
)

func TestGeneratePatternLattice(t *testing.T) {
	f := GeneratePattern(PatternVortex, 800, 600, 10)
	if f.Len() != 121 {
		t.Fatalf("Len = %d, want (10+1)^2 = 121", f.Len())
	}
	for i := 0; i < f.Len(); i++ {
		if f.Xs[i] < 0 || f.Xs[i] > 800 || f.Ys[i] < 0 || f.Ys[i] > 600 {
			t.Errorf("sample %d at (%f,%f), outside the lattice extent", i, f.Xs[i], f.Ys[i])
		}
		want := math.Hypot(f.DXs[i], f.DYs[i])
		if !approxEqual(f.Magnitudes[i], want, epsilon) {
			t.Errorf("sample %d magnitude = %f, want %f", i, f.Magnitudes[i], want)
		}
	}
}

func TestGeneratePatternMinimumGrid(t *testing.T) {
	f := GeneratePattern(PatternWave, 100, 100, 0)
	if f.Len() != 4 {
		t.Errorf("gridSize 0 clamps to 1: Len = %d, want 4", f.Len())
	}
}

func TestVortexRotatesAroundCenter(t *testing.T) {
	// Directly right of center the tangential flow points straight down
	// (+Y) at unit speed.
	dx, dy := patternVector(PatternVortex, 500, 300, 800, 600)
	if !approxEqual(dx, 0, epsilon) || !approxEqual(dy, 1, epsilon) {
		t.Errorf("vortex at (cx+100, cy) = (%f,%f), want (0,1)", dx, dy)
	}
	// At the exact center the pattern is zero rather than NaN.
	dx, dy = patternVector(PatternVortex, 400, 300, 800, 600)
	if dx != 0 || dy != 0 {
		t.Errorf("vortex at center = (%f,%f), want (0,0)", dx, dy)
	}
}

func TestSinkPointsInward(t *testing.T) {
	for _, pt := range [][2]float64{{100, 100}, {700, 500}, {400, 50}} {
		dx, dy := patternVector(PatternSink, pt[0], pt[1], 800, 600)
		// Dot product of position-from-center and flow must be negative.
		cx, cy := pt[0]-400, pt[1]-300
		if cx*dx+cy*dy >= 0 {
			t.Errorf("sink at %v flows outward: (%f,%f)", pt, dx, dy)
		}
	}
}

func TestSourcePointsOutward(t *testing.T) {
	for _, pt := range [][2]float64{{100, 100}, {700, 500}, {400, 50}} {
		dx, dy := patternVector(PatternSource, pt[0], pt[1], 800, 600)
		cx, cy := pt[0]-400, pt[1]-300
		if cx*dx+cy*dy <= 0 {
			t.Errorf("source at %v flows inward: (%f,%f)", pt, dx, dy)
		}
	}
}

func TestWaveConstantHorizontalComponent(t *testing.T) {
	for _, x := range []float64{0, 123, 456, 800} {
		dx, _ := patternVector(PatternWave, x, 300, 800, 600)
		if dx != 0.8 {
			t.Errorf("wave dx at x=%f is %f, want 0.8", x, dx)
		}
	}
}

func TestDoubleGyreVanishesOnVerticalEdges(t *testing.T) {
	for _, x := range []float64{0, 800} {
		dx, _ := patternVector(PatternDoubleGyre, x, 300, 800, 600)
		if !approxEqual(dx, 0, epsilon) {
			t.Errorf("double gyre dx at x=%f is %f, want 0", x, dx)
		}
	}
}

func TestGenerateMultiVortexBackgroundDrift(t *testing.T) {
	// With no vortices only the drift term remains.
	f := GenerateMultiVortex(800, 600, 4, nil)
	for i := 0; i < f.Len(); i++ {
		if !approxEqual(f.DXs[i], 0.3, epsilon) {
			t.Errorf("sample %d dx = %f, want drift 0.3", i, f.DXs[i])
		}
		if math.Abs(f.DYs[i]) > 0.1+epsilon {
			t.Errorf("sample %d dy = %f, want ripple within [-0.1,0.1]", i, f.DYs[i])
		}
	}
}

func TestGenerateNoiseUnitVectorsDeterministic(t *testing.T) {
	a := GenerateNoise(800, 600, 8, 42, 0.01)
	b := GenerateNoise(800, 600, 8, 42, 0.01)
	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if !approxEqual(a.Magnitudes[i], 1, epsilon) {
			t.Errorf("sample %d magnitude = %f, want unit", i, a.Magnitudes[i])
		}
		if a.DXs[i] != b.DXs[i] || a.DYs[i] != b.DYs[i] {
			t.Fatalf("sample %d differs across identical seeds", i)
		}
	}
	c := GenerateNoise(800, 600, 8, 43, 0.01)
	same := true
	for i := 0; i < a.Len(); i++ {
		if a.DXs[i] != c.DXs[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced an identical field")
	}
}
