package flowfield

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// widgetState is the animation lifecycle state.
type widgetState uint8

const (
	stateStopped widgetState = iota
	stateRunning
)

// Widget is the interactive flow-field view. It implements [ebiten.Game]
// so it can be passed straight to ebiten.RunGame (or [Run]); hosts that
// own their game loop call [Widget.Update] and [Widget.Draw] directly.
//
// All mutation happens on the game-loop goroutine. The only concurrency
// is the fire-and-forget background image load, delivered over a channel
// polled in Update.
type Widget struct {
	cfg     Config
	field   *Field
	sampler Sampler
	system  *ParticleSystem
	view    *Viewport
	palette Palette

	// Parsed style state, refreshed when the corresponding config strings
	// change.
	bgColor  Color
	vecColor Color

	// Layers. base is fully redrawn every frame; trail accumulates and is
	// partially erased for the motion-trail effect. Created lazily so a
	// widget can be constructed before any GPU surface exists.
	base, trail   *ebiten.Image
	width, height int

	state widgetState
	// trailFrame counts frames since the trail layer was last fully
	// cleared; trailClears counts full clears (stats overlay).
	trailFrame  int
	trailClears int

	bgLoader *backgroundLoader
	bgImage  *ebiten.Image

	useGrid      bool
	gridCellSize float64

	hover hoverInfo

	touchIDs []ebiten.TouchID
	panTouch ebiten.TouchID
	touchPan bool
	disposed bool
}

// NewWidget creates a widget over the given field. cfg is normalized; a
// zero Config gets every default. The particle pool spans the widget
// surface [0,Width) x [0,Height).
func NewWidget(field *Field, cfg Config) *Widget {
	cfg.Normalize()
	w := &Widget{
		cfg:      cfg,
		field:    field,
		sampler:  field,
		view:     NewViewport(),
		palette:  PaletteByName(cfg.ColorScheme),
		width:    cfg.Width,
		height:   cfg.Height,
		bgLoader: newBackgroundLoader(),
	}
	w.system = NewParticleSystem(cfg.ParticleCount, cfg.ParticleLife, w.bounds())
	w.refreshStyle()
	if cfg.Animate {
		w.Start()
	}
	if cfg.BackgroundImage != "" {
		w.bgLoader.load(cfg.BackgroundImage)
	}
	return w
}

func (w *Widget) bounds() Rect {
	return Rect{Width: float64(w.width), Height: float64(w.height)}
}

// refreshStyle re-parses the config's color strings. Unparseable colors
// degrade to transparent with a log line; they never stop rendering.
func (w *Widget) refreshStyle() {
	var err error
	w.bgColor, err = ParseColor(w.cfg.BackgroundColor)
	if err != nil {
		logf("background color: %v", err)
	}
	w.vecColor, err = ParseColor(w.cfg.VectorColor)
	if err != nil {
		logf("vector color: %v", err)
		w.vecColor = ColorWhite
	}
}

// --- ebiten.Game ---

// Update advances one frame: polls the background loader, advances view
// tweens, processes input, and, while running, ticks the particle system
// with the configured speed's integer substep count.
func (w *Widget) Update() error {
	if w.disposed {
		return nil
	}
	if img, ok := w.bgLoader.poll(); ok {
		w.bgImage = img
	}
	w.view.update(1.0 / float32(ebiten.TPS()))
	w.processInput()

	if w.state == stateRunning {
		substeps := int(w.cfg.AnimationSpeed)
		if substeps < 1 {
			substeps = 1
		}
		w.system.Tick(w.sampler, w.cfg.FlowStrength, substeps, w.cfg.ParticleTrail)
	}
	return nil
}

// Draw composites the base and trail layers onto screen and overlays the
// tooltip and stats.
func (w *Widget) Draw(screen *ebiten.Image) {
	if w.disposed {
		return
	}
	w.drawFrame()
	screen.DrawImage(w.base, nil)
	screen.DrawImage(w.trail, nil)
	if w.hover.active {
		w.drawTooltip(screen)
	}
	if w.cfg.ShowStats {
		w.drawStats(screen)
	}
}

// Layout reports the widget's fixed logical surface size.
func (w *Widget) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// --- Input ---

// processInput handles wheel zoom, mouse and single-finger drag panning,
// and hover tooltips. A move while panning updates the view and never the
// tooltip; the two are mutually exclusive per event.
func (w *Widget) processInput() {
	cx, cy := ebiten.CursorPosition()
	fx, fy := float64(cx), float64(cy)

	if _, wy := ebiten.Wheel(); wy != 0 {
		w.view.Wheel(wy, fx, fy)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w.view.StartPan(fx, fy)
	}
	if w.view.Panning() && !w.touchPan && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		w.view.MovePan(fx, fy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && !w.touchPan {
		w.view.EndPan()
	}

	w.processTouch()
	w.updateHover(cx, cy)
}

// processTouch maps the first active touch to a drag pan.
func (w *Widget) processTouch() {
	w.touchIDs = ebiten.AppendTouchIDs(w.touchIDs[:0])

	if w.touchPan {
		if inpututil.IsTouchJustReleased(w.panTouch) {
			w.touchPan = false
			w.view.EndPan()
			return
		}
		tx, ty := ebiten.TouchPosition(w.panTouch)
		w.view.MovePan(float64(tx), float64(ty))
		return
	}

	if len(w.touchIDs) == 1 && inpututil.TouchPressDuration(w.touchIDs[0]) == 1 {
		w.panTouch = w.touchIDs[0]
		w.touchPan = true
		tx, ty := ebiten.TouchPosition(w.panTouch)
		w.view.StartPan(float64(tx), float64(ty))
	}
}

// updateHover refreshes the tooltip state from the cursor position. The
// tooltip is suppressed while panning and outside the widget surface.
func (w *Widget) updateHover(cx, cy int) {
	w.hover.active = false
	if w.view.Panning() || w.field.Len() == 0 {
		return
	}
	if cx < 0 || cx >= w.width || cy < 0 || cy >= w.height {
		return
	}
	fx, fy := w.view.ScreenToField(float64(cx), float64(cy))
	i := w.field.nearestIndex(fx, fy)
	if i < 0 {
		return
	}
	w.hover = hoverInfo{
		active: true,
		sx:     cx, sy: cy,
		fx: fx, fy: fy,
		dx:  w.field.DXs[i],
		dy:  w.field.DYs[i],
		mag: w.field.Magnitudes[i],
	}
}

// --- Animation lifecycle ---

// Start transitions Stopped to Running. While running, Update ticks the
// particle simulation each frame.
func (w *Widget) Start() {
	if w.disposed {
		return
	}
	w.state = stateRunning
}

// Stop transitions Running to Stopped. The frozen state keeps rendering;
// no tick runs after Stop returns.
func (w *Widget) Stop() {
	w.state = stateStopped
}

// Running reports whether the simulation is ticking.
func (w *Widget) Running() bool {
	return w.state == stateRunning
}

// Dispose stops the animation and releases the layer images. The widget
// draws nothing afterward. Dispose is idempotent.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.Stop()
	if w.base != nil {
		w.base.Deallocate()
		w.base = nil
	}
	if w.trail != nil {
		w.trail.Deallocate()
		w.trail = nil
	}
	w.bgImage = nil
	w.disposed = true
}

// --- Host-facing property reactions ---

// Config returns the current configuration.
func (w *Widget) Config() Config {
	return w.cfg
}

// Field returns the current flow field.
func (w *Widget) Field() *Field {
	return w.field
}

// View returns the viewport transform for host-driven pan/zoom.
func (w *Widget) View() *Viewport {
	return w.view
}

// System returns the particle system.
func (w *Widget) System() *ParticleSystem {
	return w.system
}

// SetField replaces the flow field wholesale. Particle state is kept; the
// next tick advects against the new field.
func (w *Widget) SetField(field *Field) {
	w.field = field
	if w.useGrid {
		w.sampler = NewGridSampler(field, w.gridCellSize)
	} else {
		w.sampler = field
	}
	w.hover.active = false
}

// UseGridIndex swaps the exhaustive nearest-neighbor scan for a bucketed
// spatial index with the given cell size (<= 0 picks one automatically).
// Sampling results are identical; only the cost changes.
func (w *Widget) UseGridIndex(cellSize float64) {
	w.useGrid = true
	w.gridCellSize = cellSize
	w.sampler = NewGridSampler(w.field, cellSize)
}

// SetParticleCount rebuilds the particle pool at the new size. The whole
// collection is recreated; there is no incremental resize.
func (w *Widget) SetParticleCount(count int) {
	if count <= 0 {
		return
	}
	w.cfg.ParticleCount = count
	w.system.Reset(count, w.cfg.ParticleLife, w.bounds())
}

// SetParticleLife updates the max lifetime in place: live particles keep
// their position and remaining life and pick up the new value at respawn.
func (w *Widget) SetParticleLife(life int) {
	if life <= 0 {
		return
	}
	w.cfg.ParticleLife = life
	w.system.SetMaxLife(life)
}

// SetParticleSize sets the disc radius in on-screen pixels.
func (w *Widget) SetParticleSize(size float64) {
	if size > 0 {
		w.cfg.ParticleSize = size
	}
}

// SetParticleTrail toggles the trail effect. Turning it off clears every
// particle's history and the accumulated trail layer before the next
// frame.
func (w *Widget) SetParticleTrail(on bool) {
	w.cfg.ParticleTrail = on
	if !on {
		w.system.ClearTrails()
		if w.trail != nil {
			w.trail.Clear()
		}
		w.trailFrame = 0
	}
}

// SetAnimate drives the Stopped/Running transition. Stopping leaves the
// last frame frozen on screen.
func (w *Widget) SetAnimate(on bool) {
	w.cfg.Animate = on
	if on {
		w.Start()
	} else {
		w.Stop()
	}
}

// SetAnimationSpeed sets the ticks-per-frame multiplier.
func (w *Widget) SetAnimationSpeed(speed float64) {
	if speed > 0 {
		w.cfg.AnimationSpeed = speed
	}
}

// SetFlowStrength sets the velocity multiplier applied to sampled flow.
func (w *Widget) SetFlowStrength(strength float64) {
	w.cfg.FlowStrength = strength
}

// SetColorScheme selects the magnitude palette by name. Unknown names fall
// back to the default scheme.
func (w *Widget) SetColorScheme(name string) {
	w.cfg.ColorScheme = name
	w.palette = PaletteByName(name)
}

// SetShowVectors toggles the vector-arrow overlay.
func (w *Widget) SetShowVectors(on bool) {
	w.cfg.ShowVectors = on
}

// SetBackgroundColor sets the base-layer fill color (hex string or
// "transparent").
func (w *Widget) SetBackgroundColor(s string) {
	w.cfg.BackgroundColor = s
	w.refreshStyle()
}

// SetBackgroundImage starts an asynchronous load of the given file path,
// URL, or base64 data URI. An empty source clears the image. Frames drawn
// before the load resolves simply omit the background.
func (w *Widget) SetBackgroundImage(src string) {
	w.cfg.BackgroundImage = src
	if src == "" {
		w.bgImage = nil
		return
	}
	w.bgLoader.load(src)
}

// SetBackgroundAlpha sets the background image opacity.
func (w *Widget) SetBackgroundAlpha(a float64) {
	w.cfg.BackgroundAlpha = clamp01(a)
}

// SetConfig diffs cfg against the current configuration and applies every
// property reaction: particle count changes reset the pool, life changes
// update in place, animate toggles the state machine, and so on.
func (w *Widget) SetConfig(cfg Config) {
	cfg.Normalize()
	old := w.cfg

	if cfg.Width != old.Width || cfg.Height != old.Height {
		w.resize(cfg.Width, cfg.Height)
	}
	if cfg.ParticleCount != old.ParticleCount {
		w.SetParticleCount(cfg.ParticleCount)
	}
	if cfg.ParticleLife != old.ParticleLife {
		w.SetParticleLife(cfg.ParticleLife)
	}
	if cfg.ParticleTrail != old.ParticleTrail {
		w.SetParticleTrail(cfg.ParticleTrail)
	}
	if cfg.Animate != old.Animate {
		w.SetAnimate(cfg.Animate)
	}
	if cfg.ColorScheme != old.ColorScheme {
		w.SetColorScheme(cfg.ColorScheme)
	}
	if cfg.BackgroundImage != old.BackgroundImage {
		w.SetBackgroundImage(cfg.BackgroundImage)
	}

	w.cfg = cfg
	w.refreshStyle()
}

// resize recreates the layers and the particle pool for a new surface
// size.
func (w *Widget) resize(width, height int) {
	w.width = width
	w.height = height
	w.cfg.Width = width
	w.cfg.Height = height
	if w.base != nil {
		w.base.Deallocate()
		w.base = nil
	}
	if w.trail != nil {
		w.trail.Deallocate()
		w.trail = nil
	}
	w.system.Reset(w.cfg.ParticleCount, w.cfg.ParticleLife, w.bounds())
}
