package flowfield

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hoverInfo is the tooltip state captured on the last non-panning pointer
// move: screen position, the field-space point under the cursor, and the
// nearest sample's flow data.
type hoverInfo struct {
	active bool
	sx, sy int
	fx, fy float64
	dx, dy float64
	mag    float64
}

// Tooltip layout. Face7x13 is the pack-standard debug face.
const (
	tooltipPadding  = 6
	tooltipLineH    = 13
	tooltipCharW    = 7
	tooltipOffset   = 14
	tooltipBgAlpha  = 180
	tooltipMaxLines = 3
)

// drawTooltip renders the hover panel next to the cursor, flipped to stay
// inside the widget surface.
func (w *Widget) drawTooltip(screen *ebiten.Image) {
	lines := [tooltipMaxLines]string{
		fmt.Sprintf("x: %.1f  y: %.1f", w.hover.fx, w.hover.fy),
		fmt.Sprintf("dx: %.3f  dy: %.3f", w.hover.dx, w.hover.dy),
		fmt.Sprintf("magnitude: %.3f", w.hover.mag),
	}

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	pw := maxLen*tooltipCharW + 2*tooltipPadding
	ph := tooltipMaxLines*tooltipLineH + 2*tooltipPadding

	x := w.hover.sx + tooltipOffset
	y := w.hover.sy + tooltipOffset
	if x+pw > w.width {
		x = w.hover.sx - tooltipOffset - pw
	}
	if y+ph > w.height {
		y = w.hover.sy - tooltipOffset - ph
	}

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph),
		color.RGBA{0, 0, 0, tooltipBgAlpha}, false)

	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13,
			x+tooltipPadding, y+tooltipPadding+(i+1)*tooltipLineH-3, color.White)
	}
}

// drawStats overlays frame timing and simulation counters in the top-left
// corner.
func (w *Widget) drawStats(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nTPS: %.1f\nsamples: %d\nparticles: %d\nzoom: %.2f\ntrail clears: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		w.field.Len(), w.system.Len(), w.view.Zoom, w.trailClears))
}
