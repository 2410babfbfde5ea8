// Package flowfield renders an animated 2D vector field as a particle
// simulation inside an interactive [Ebitengine] widget.
//
// Particles are advected by a precomputed flow field given as an unordered
// point cloud of samples, colored by local flow magnitude, optionally
// trailed, and optionally overlaid on a background image. The widget
// supports mouse-wheel zoom (anchored at the cursor), drag panning with
// mouse or touch, and a hover tooltip showing the flow data under the
// cursor.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	field := flowfield.GeneratePattern(flowfield.PatternVortex, 800, 600, 40)
//	w := flowfield.NewWidget(field, flowfield.DefaultConfig())
//	flowfield.Run(w, flowfield.RunConfig{
//		Title: "Flow Field", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Widget.Update] and [Widget.Draw] directly; the widget is itself a
// valid [ebiten.Game].
//
// # Configuration
//
// Rendering options live in [Config], a plain property bag the host owns.
// Change a property through the corresponding setter ([Widget.SetParticleCount],
// [Widget.SetAnimate], ...) so the widget can react: a particle-count
// change rebuilds the particle pool, toggling trails clears the trail
// layer, and so on. [Widget.SetConfig] diffs a whole Config against the
// current one and applies every reaction at once. Configs load from YAML
// with [LoadConfig].
//
// # Field data
//
// Build a [Field] directly from parallel coordinate slices with [NewField],
// generate one analytically with [GeneratePattern] or [GenerateNoise], or
// load sample points from CSV with [LoadFieldCSV]. Nearest-neighbor
// sampling is exhaustive by default; wrap the field in a [GridSampler]
// when the point cloud grows large.
//
// [Ebitengine]: https://ebitengine.org
package flowfield
