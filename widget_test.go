package flowfield

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func testWidget() *Widget {
	f, _ := NewField([]float64{32}, []float64{32}, []float64{1}, []float64{0}, nil)
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.ParticleCount = 8
	return NewWidget(f, cfg)
}

func TestNewWidgetDefaults(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	if !w.Running() {
		t.Error("widget with Animate on should start running")
	}
	if w.System().Len() != 8 {
		t.Errorf("particle count = %d, want 8", w.System().Len())
	}
	if w.palette.Name() != DefaultScheme {
		t.Errorf("palette = %q, want %q", w.palette.Name(), DefaultScheme)
	}
	if gw, gh := w.Layout(1024, 768); gw != 64 || gh != 64 {
		t.Errorf("Layout = %dx%d, want 64x64", gw, gh)
	}
	b := w.System().Bounds()
	if b.Width != 64 || b.Height != 64 {
		t.Errorf("particle bounds = %+v, want 64x64 at origin", b)
	}
}

func TestZeroConfigGetsDefaults(t *testing.T) {
	f, _ := NewField([]float64{0}, []float64{0}, []float64{1}, []float64{0}, nil)
	w := NewWidget(f, Config{})
	defer w.Dispose()

	if w.Config().ParticleCount != 3000 {
		t.Errorf("ParticleCount = %d, want normalized 3000", w.Config().ParticleCount)
	}
	if w.width != 800 || w.height != 600 {
		t.Errorf("surface = %dx%d, want 800x600", w.width, w.height)
	}
}

func TestTrailLayerRefreshInterval(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	for i := 0; i < trailRefreshInterval-1; i++ {
		w.drawFrame()
	}
	if w.trailClears != 0 {
		t.Fatalf("trailClears = %d before the interval elapsed, want 0", w.trailClears)
	}
	w.drawFrame()
	if w.trailClears != 1 {
		t.Errorf("trailClears = %d at the interval, want exactly 1", w.trailClears)
	}
	w.drawFrame()
	if w.trailClears != 1 {
		t.Errorf("trailClears = %d one frame past the interval, want still 1", w.trailClears)
	}
}

func TestTrailLayerNoClearCountWhenDisabled(t *testing.T) {
	w := testWidget()
	defer w.Dispose()
	w.SetParticleTrail(false)

	for i := 0; i < trailRefreshInterval+10; i++ {
		w.drawFrame()
	}
	if w.trailClears != 0 {
		t.Errorf("trailClears = %d with trailing off, want 0", w.trailClears)
	}
}

func TestSetParticleTrailOffClearsHistory(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	for i := 0; i < 5; i++ {
		w.system.Tick(w.sampler, 1.0, 1, true)
		w.drawFrame()
	}
	w.SetParticleTrail(false)

	for _, p := range w.System().Particles() {
		if len(p.Trail) != 0 {
			t.Fatal("particle trail history not cleared")
		}
	}
	if w.trailFrame != 0 {
		t.Errorf("trailFrame = %d, want reset to 0", w.trailFrame)
	}
}

func TestSetParticleCountRebuildsPool(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	w.SetParticleCount(50)
	if w.System().Len() != 50 {
		t.Fatalf("Len = %d, want 50", w.System().Len())
	}
	for i, p := range w.System().Particles() {
		if p.Life < 0 || p.Life > w.Config().ParticleLife {
			t.Errorf("particle %d life = %d, outside [0,%d]", i, p.Life, w.Config().ParticleLife)
		}
	}
}

func TestSetParticleLifeKeepsPositions(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	xs := make([]float64, w.System().Len())
	for i, p := range w.System().Particles() {
		xs[i] = p.X
	}
	w.SetParticleLife(500)
	for i, p := range w.System().Particles() {
		if p.X != xs[i] {
			t.Fatal("SetParticleLife moved a particle")
		}
		if p.MaxLife != 500 {
			t.Errorf("particle %d MaxLife = %d, want 500", i, p.MaxLife)
		}
	}
}

func TestAnimateStateMachine(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	w.SetAnimate(false)
	if w.Running() {
		t.Error("Running after SetAnimate(false)")
	}
	w.Stop() // repeated stop is a no-op
	if w.Running() {
		t.Error("Running after double Stop")
	}
	w.SetAnimate(true)
	if !w.Running() {
		t.Error("not Running after SetAnimate(true)")
	}
	w.Start()
	if !w.Running() {
		t.Error("repeated Start left the widget stopped")
	}
}

func TestStoppedWidgetDoesNotTick(t *testing.T) {
	w := testWidget()
	defer w.Dispose()
	w.Stop()

	xs := make([]float64, w.System().Len())
	for i, p := range w.System().Particles() {
		xs[i] = p.X
	}
	if err := w.Update(); err != nil {
		t.Fatal(err)
	}
	for i, p := range w.System().Particles() {
		if p.X != xs[i] {
			t.Fatal("stopped widget advanced a particle")
		}
	}
}

func TestDisposeIsIdempotentAndStops(t *testing.T) {
	w := testWidget()
	w.drawFrame() // force layer creation

	w.Dispose()
	if w.Running() {
		t.Error("Running after Dispose")
	}
	if w.base != nil || w.trail != nil {
		t.Error("layers not released")
	}
	w.Dispose() // second call must not panic

	// Disposed widgets ignore the game loop.
	if err := w.Update(); err != nil {
		t.Fatal(err)
	}
	screen := ebiten.NewImage(64, 64)
	defer screen.Deallocate()
	w.Draw(screen)

	w.Start()
	if w.Running() {
		t.Error("Start resurrected a disposed widget")
	}
}

func TestSetColorSchemeFallback(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	w.SetColorScheme("turbo")
	if w.palette.Name() != "turbo" {
		t.Errorf("palette = %q, want turbo", w.palette.Name())
	}
	w.SetColorScheme("bogus")
	if w.palette.Name() != DefaultScheme {
		t.Errorf("palette = %q, want fallback %q", w.palette.Name(), DefaultScheme)
	}
}

func TestUseGridIndexSurvivesFieldSwap(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	w.UseGridIndex(0)
	if _, ok := w.sampler.(*GridSampler); !ok {
		t.Fatal("sampler is not a GridSampler after UseGridIndex")
	}

	next := GeneratePattern(PatternVortex, 64, 64, 4)
	w.SetField(next)
	if w.Field() != next {
		t.Error("SetField did not swap the field")
	}
	g, ok := w.sampler.(*GridSampler)
	if !ok {
		t.Fatal("field swap dropped the grid index")
	}
	if g.field != next {
		t.Error("grid index still points at the old field")
	}
}

func TestSetFieldWithoutGridSamplesDirectly(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	next := GeneratePattern(PatternWave, 64, 64, 4)
	w.SetField(next)
	if w.sampler != Sampler(next) {
		t.Error("sampler is not the field itself")
	}
}

func TestUpdateHoverMapsThroughViewport(t *testing.T) {
	w := testWidget()
	defer w.Dispose()
	w.view.PanX, w.view.PanY = 10, 20
	w.view.Zoom = 2

	w.updateHover(50, 60)
	if !w.hover.active {
		t.Fatal("hover inactive over the surface")
	}
	if !approxEqual(w.hover.fx, 20, epsilon) || !approxEqual(w.hover.fy, 20, epsilon) {
		t.Errorf("hover field point = (%f,%f), want (20,20)", w.hover.fx, w.hover.fy)
	}
	// The single field sample is always nearest.
	if w.hover.dx != 1 || w.hover.dy != 0 {
		t.Errorf("hover flow = (%f,%f), want (1,0)", w.hover.dx, w.hover.dy)
	}
}

func TestHoverSuppressedWhilePanning(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	w.view.StartPan(10, 10)
	w.updateHover(10, 10)
	if w.hover.active {
		t.Error("tooltip active during a drag pan")
	}
	w.view.EndPan()
	w.updateHover(10, 10)
	if !w.hover.active {
		t.Error("tooltip inactive after the pan ended")
	}
}

func TestHoverSuppressedOutsideSurface(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	for _, pt := range [][2]int{{-1, 10}, {10, -1}, {64, 10}, {10, 64}} {
		w.updateHover(pt[0], pt[1])
		if w.hover.active {
			t.Errorf("tooltip active at out-of-surface point %v", pt)
		}
	}
}

func TestSetConfigDiffsAndApplies(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	cfg := w.Config()
	cfg.ParticleCount = 20
	cfg.ColorScheme = "plasma"
	cfg.ParticleTrail = false
	cfg.Animate = false
	w.SetConfig(cfg)

	if w.System().Len() != 20 {
		t.Errorf("particle count = %d, want 20", w.System().Len())
	}
	if w.palette.Name() != "plasma" {
		t.Errorf("palette = %q, want plasma", w.palette.Name())
	}
	if w.Running() {
		t.Error("still running after Animate off")
	}
	if w.Config().ParticleTrail {
		t.Error("trail flag not stored")
	}
}

func TestSetConfigResize(t *testing.T) {
	w := testWidget()
	defer w.Dispose()
	w.drawFrame()

	cfg := w.Config()
	cfg.Width = 128
	cfg.Height = 96
	w.SetConfig(cfg)

	if gw, gh := w.Layout(0, 0); gw != 128 || gh != 96 {
		t.Errorf("Layout after resize = %dx%d, want 128x96", gw, gh)
	}
	b := w.System().Bounds()
	if b.Width != 128 || b.Height != 96 {
		t.Errorf("particle bounds = %+v, want 128x96", b)
	}
	w.drawFrame()
	if bw := w.base.Bounds().Dx(); bw != 128 {
		t.Errorf("base layer width = %d, want 128", bw)
	}
}

func TestVectorStride(t *testing.T) {
	cases := []struct {
		zoom float64
		want int
	}{
		{0.5, 6},
		{1, 3},
		{2, 2},
		{3, 1},
		{5, 1},
	}
	for _, c := range cases {
		if got := vectorStride(c.zoom); got != c.want {
			t.Errorf("vectorStride(%f) = %d, want %d", c.zoom, got, c.want)
		}
	}
}

func TestSetBackgroundImageEmptyClears(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	w.bgImage = ebiten.NewImage(4, 4)
	w.SetBackgroundImage("")
	if w.bgImage != nil {
		t.Error("empty source did not clear the background image")
	}
	if w.Config().BackgroundImage != "" {
		t.Error("config source not cleared")
	}
}

func TestRefreshStyleBadColorDegrades(t *testing.T) {
	w := testWidget()
	defer w.Dispose()

	w.SetBackgroundColor("#nothex")
	if w.bgColor != (Color{}) {
		t.Errorf("bad background color = %+v, want transparent", w.bgColor)
	}
	// Rendering continues regardless.
	w.drawFrame()
}
