package flowfield

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Trail compositing constants. The per-frame erase coverage and the
// periodic full-refresh interval are tuned values carried over from the
// original effect; adjust together if the fade feels wrong.
const (
	trailFadeAlpha       = 0.02
	trailRefreshInterval = 300
)

// Vector-overlay arrowhead geometry.
const (
	arrowheadAngle  = 2.6 // radians off the shaft direction
	arrowheadMaxLen = 6.0 // on-screen pixels
)

// ensureLayers lazily creates the two layer images.
func (w *Widget) ensureLayers() {
	if w.base == nil {
		w.base = ebiten.NewImage(w.width, w.height)
	}
	if w.trail == nil {
		w.trail = ebiten.NewImage(w.width, w.height)
	}
}

// drawFrame renders both layers. The base layer (background + vector
// overlay) is fully cleared and redrawn; the trail layer is partially
// erased (or fully cleared when trailing is off) and the particles are
// painted on top. Field-space geometry on both layers goes through the
// same Viewport.FieldToScreen transform the tooltip inverse uses.
func (w *Widget) drawFrame() {
	w.ensureLayers()
	w.drawBaseLayer()
	w.fadeTrailLayer()
	w.drawParticles()
}

// drawBaseLayer redraws background color, background image, and the
// vector overlay from scratch. No accumulation.
func (w *Widget) drawBaseLayer() {
	w.base.Clear()
	if w.bgColor.A > 0 {
		w.base.Fill(w.bgColor.RGBA())
	}

	if w.bgImage != nil {
		b := w.bgImage.Bounds()
		op := &ebiten.DrawImageOptions{}
		// Stretch to the field extent, then apply the shared view
		// transform: scale by zoom, translate by pan.
		op.GeoM.Scale(float64(w.width)/float64(b.Dx()), float64(w.height)/float64(b.Dy()))
		op.GeoM.Scale(w.view.Zoom, w.view.Zoom)
		op.GeoM.Translate(w.view.PanX, w.view.PanY)
		op.ColorScale.ScaleAlpha(float32(clamp01(w.cfg.BackgroundAlpha)))
		op.Filter = ebiten.FilterLinear
		w.base.DrawImage(w.bgImage, op)
	}

	if w.cfg.ShowVectors {
		w.drawVectorOverlay()
	}
}

// vectorStride subsamples the overlay to bound draw cost: sparser when
// zoomed out, every sample at high zoom.
func vectorStride(zoom float64) int {
	return int(math.Max(1, math.Ceil(3.0/zoom)))
}

// drawVectorOverlay strokes one arrow per (strided) field sample. Drawing
// happens in screen space, so the configured stroke width is already the
// apparent on-screen width at any zoom.
func (w *Widget) drawVectorOverlay() {
	f := w.field
	if f.Len() == 0 {
		return
	}
	col := w.vecColor.WithAlpha(w.vecColor.A * w.cfg.VectorAlpha).RGBA()
	width := float32(w.cfg.VectorWidth)
	stride := vectorStride(w.view.Zoom)

	for i := 0; i < f.Len(); i += stride {
		x0, y0 := w.view.FieldToScreen(f.Xs[i], f.Ys[i])
		x1, y1 := w.view.FieldToScreen(
			f.Xs[i]+f.DXs[i]*w.cfg.VectorScale,
			f.Ys[i]+f.DYs[i]*w.cfg.VectorScale,
		)
		if x0 == x1 && y0 == y1 {
			continue
		}
		vector.StrokeLine(w.base, float32(x0), float32(y0), float32(x1), float32(y1), width, col, true)

		// Arrowhead: two short strokes swept back from the tip.
		angle := math.Atan2(y1-y0, x1-x0)
		headLen := math.Min(arrowheadMaxLen, math.Hypot(x1-x0, y1-y0)*0.3)
		for _, da := range [2]float64{arrowheadAngle, -arrowheadAngle} {
			hx := x1 + math.Cos(angle+da)*headLen
			hy := y1 + math.Sin(angle+da)*headLen
			vector.StrokeLine(w.base, float32(x1), float32(y1), float32(hx), float32(hy), width, col, true)
		}
	}
}

// fadeTrailLayer applies the trail layer's per-frame persistence pass.
// With trailing on, a low-opacity destination-out erase fades existing
// strokes gradually; every trailRefreshInterval frames the layer is fully
// cleared instead, resetting accumulated residue. With trailing off the
// layer is fully cleared every frame.
func (w *Widget) fadeTrailLayer() {
	if !w.cfg.ParticleTrail {
		w.trail.Clear()
		return
	}
	w.trailFrame++
	if w.trailFrame%trailRefreshInterval == 0 {
		w.trail.Clear()
		w.trailClears++
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.width), float64(w.height))
	op.ColorScale.ScaleAlpha(trailFadeAlpha)
	op.Blend = ebiten.BlendDestinationOut
	w.trail.DrawImage(whitePixel, op)
}

// drawParticles paints every particle onto the trail layer: the trail
// polyline first (when trailing), then the disc. Color comes from the
// magnitude palette; opacity scales with remaining-life fraction so
// particles fade out as they approach respawn.
func (w *Widget) drawParticles() {
	size := float32(w.cfg.ParticleSize)
	trailWidth := float32(math.Max(1, w.cfg.ParticleSize*0.5))

	for _, p := range w.system.Particles() {
		lifeFrac := clamp01(float64(p.Life) / float64(p.MaxLife))
		col := w.palette.MagnitudeColor(p.Mag)

		if w.cfg.ParticleTrail && len(p.Trail) > 0 {
			trailCol := col.WithAlpha(lifeFrac * 0.5).RGBA()
			px, py := w.view.FieldToScreen(p.Trail[0].X, p.Trail[0].Y)
			for _, pt := range p.Trail[1:] {
				nx, ny := w.view.FieldToScreen(pt.X, pt.Y)
				vector.StrokeLine(w.trail, float32(px), float32(py), float32(nx), float32(ny), trailWidth, trailCol, true)
				px, py = nx, ny
			}
			hx, hy := w.view.FieldToScreen(p.X, p.Y)
			vector.StrokeLine(w.trail, float32(px), float32(py), float32(hx), float32(hy), trailWidth, trailCol, true)
		}

		sx, sy := w.view.FieldToScreen(p.X, p.Y)
		vector.DrawFilledCircle(w.trail, float32(sx), float32(sy), size, col.WithAlpha(lifeFrac).RGBA(), true)
	}
}
