package flowfield

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits and wheel step factors.
const (
	MinZoom = 0.5
	MaxZoom = 5.0

	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// viewAnim holds active pan/zoom tweens.
type viewAnim struct {
	panX, panY *gween.Tween
	zoom       *gween.Tween
}

// Viewport is the pan/zoom transform mapping field-space to screen-space.
//
// The forward transform scales by Zoom and then translates by the pan
// offset: screen = field*Zoom + pan. The inverse used for pointer mapping
// is field = (screen - pan) / Zoom. Every draw call and every tooltip
// lookup goes through this one pair so the two can never diverge.
type Viewport struct {
	PanX, PanY float64
	// Zoom is the scale factor, clamped to [MinZoom, MaxZoom].
	Zoom float64

	panning      bool
	lastX, lastY float64

	anim                     *viewAnim
	animCursorX, animCursorY float64
}

// NewViewport creates a viewport at the identity transform.
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1.0}
}

// Reset restores the identity transform and cancels any running animation.
func (v *Viewport) Reset() {
	v.PanX, v.PanY = 0, 0
	v.Zoom = 1.0
	v.panning = false
	v.anim = nil
}

// Wheel applies one zoom step anchored at the cursor. Positive dy (wheel
// up) zooms in by 1.1, negative zooms out by 0.9; the result is clamped to
// [MinZoom, MaxZoom]. The pan is adjusted so the field-space point under
// the cursor stays fixed.
func (v *Viewport) Wheel(dy, cursorX, cursorY float64) {
	if dy == 0 {
		return
	}
	factor := zoomOutFactor
	if dy > 0 {
		factor = zoomInFactor
	}
	v.zoomAt(clamp(v.Zoom*factor, MinZoom, MaxZoom), cursorX, cursorY)
}

// zoomAt sets the zoom and keeps the field point under (cursorX, cursorY)
// stationary on screen: pan' = cursor - (cursor - pan) * (zoom'/zoom).
func (v *Viewport) zoomAt(newZoom, cursorX, cursorY float64) {
	ratio := newZoom / v.Zoom
	v.PanX = cursorX - (cursorX-v.PanX)*ratio
	v.PanY = cursorY - (cursorY-v.PanY)*ratio
	v.Zoom = newZoom
}

// StartPan begins a drag pan at the given screen position.
func (v *Viewport) StartPan(x, y float64) {
	v.panning = true
	v.lastX = x
	v.lastY = y
	v.anim = nil
}

// MovePan accumulates pointer movement 1:1 into the pan offset. Screen
// delta maps directly to pan delta, independent of zoom. No-op unless a
// pan is in progress.
func (v *Viewport) MovePan(x, y float64) {
	if !v.panning {
		return
	}
	v.PanX += x - v.lastX
	v.PanY += y - v.lastY
	v.lastX = x
	v.lastY = y
}

// EndPan finishes a drag pan.
func (v *Viewport) EndPan() {
	v.panning = false
}

// Panning reports whether a drag pan is in progress. Pointer moves while
// panning update the view instead of the tooltip.
func (v *Viewport) Panning() bool {
	return v.panning
}

// ScreenToField maps a screen-space point to field-space coordinates.
func (v *Viewport) ScreenToField(px, py float64) (fx, fy float64) {
	return (px - v.PanX) / v.Zoom, (py - v.PanY) / v.Zoom
}

// FieldToScreen maps a field-space point to screen-space coordinates.
func (v *Viewport) FieldToScreen(fx, fy float64) (px, py float64) {
	return fx*v.Zoom + v.PanX, fy*v.Zoom + v.PanY
}

// ZoomTo animates the zoom toward target over duration seconds, anchored
// at screen point (cursorX, cursorY) like Wheel.
func (v *Viewport) ZoomTo(target float64, cursorX, cursorY float64, duration float32, easeFn ease.TweenFunc) {
	target = clamp(target, MinZoom, MaxZoom)
	v.anim = &viewAnim{
		zoom: gween.New(float32(v.Zoom), float32(target), duration, easeFn),
	}
	v.animCursorX = cursorX
	v.animCursorY = cursorY
}

// PanTo animates the pan offset toward (panX, panY) over duration seconds.
func (v *Viewport) PanTo(panX, panY float64, duration float32, easeFn ease.TweenFunc) {
	v.anim = &viewAnim{
		panX: gween.New(float32(v.PanX), float32(panX), duration, easeFn),
		panY: gween.New(float32(v.PanY), float32(panY), duration, easeFn),
	}
}

// update advances pan/zoom tweens. Called once per frame by the widget.
func (v *Viewport) update(dt float32) {
	if v.anim == nil {
		return
	}
	a := v.anim
	done := true
	if a.zoom != nil {
		val, d := a.zoom.Update(dt)
		v.zoomAt(float64(val), v.animCursorX, v.animCursorY)
		done = done && d
	}
	if a.panX != nil {
		val, d := a.panX.Update(dt)
		v.PanX = float64(val)
		done = done && d
	}
	if a.panY != nil {
		val, d := a.panY.Update(dt)
		v.PanY = float64(val)
		done = done && d
	}
	if done {
		v.anim = nil
	}
}
