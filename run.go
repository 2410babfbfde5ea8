package flowfield

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window created by [Run].
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the window size in pixels. Zero values use the
	// widget's configured surface size.
	Width, Height int
	// Resizable allows the user to resize the window. The widget keeps
	// its logical surface size; ebiten scales the output.
	Resizable bool
}

// Run creates a window and drives the widget's game loop until the window
// closes. Use this for standalone programs; hosts embedding the widget in
// an existing [ebiten.Game] call [Widget.Update] and [Widget.Draw]
// themselves.
func Run(w *Widget, cfg RunConfig) error {
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = w.width
	}
	if height <= 0 {
		height = w.height
	}
	ebiten.SetWindowSize(width, height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	defer w.Dispose()
	return ebiten.RunGame(w)
}
