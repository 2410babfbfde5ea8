package flowfield

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts the color to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R) * a * 255),
		G: uint8(clamp01(c.G) * a * 255),
		B: uint8(clamp01(c.B) * a * 255),
		A: uint8(a * 255),
	}
}

// WithAlpha returns a copy of the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ParseColor parses a CSS-style color string: "#rgb", "#rrggbb", or
// "#rrggbbaa". The empty string and "transparent" parse to a fully
// transparent color. Anything else is an error.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "transparent" {
		return Color{}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("parse color %q: missing '#' prefix", s)
	}
	hex := s[1:]
	nib := func(b byte) (float64, bool) {
		switch {
		case b >= '0' && b <= '9':
			return float64(b - '0'), true
		case b >= 'a' && b <= 'f':
			return float64(b-'a') + 10, true
		}
		return 0, false
	}
	byteAt := func(i int) (float64, bool) {
		hi, ok1 := nib(hex[i])
		lo, ok2 := nib(hex[i+1])
		return (hi*16 + lo) / 255, ok1 && ok2
	}
	switch len(hex) {
	case 3:
		r, ok1 := nib(hex[0])
		g, ok2 := nib(hex[1])
		b, ok3 := nib(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return Color{}, fmt.Errorf("parse color %q: invalid hex digit", s)
		}
		return Color{R: r / 15, G: g / 15, B: b / 15, A: 1}, nil
	case 6, 8:
		r, ok1 := byteAt(0)
		g, ok2 := byteAt(2)
		b, ok3 := byteAt(4)
		a, ok4 := 1.0, true
		if len(hex) == 8 {
			a, ok4 = byteAt(6)
		}
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Color{}, fmt.Errorf("parse color %q: invalid hex digit", s)
		}
		return Color{R: r, G: g, B: b, A: a}, nil
	}
	return Color{}, fmt.Errorf("parse color %q: length must be 3, 6 or 8 hex digits", s)
}

// Vec2 is a 2D vector used for positions, offsets, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom exclusive,
// matching the half-open particle bounds [0,w) x [0,h).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// whitePixel is a 1x1 white image used for solid fills and erase passes.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
