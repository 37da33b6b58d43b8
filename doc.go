// Package pluton is a reactive, retained-mode SVG drawing engine for
// parametric technical drawings.
//
// A drawing is a set of draw callbacks that read a flat params bag and
// issue shapes into layer groups. Writing a param schedules at most one
// commit per frame; each commit replays every callback and reconciles the
// emitted shapes against the nodes of the previous commit by call order,
// so unchanged geometry never touches the render target.
//
// # Quick start
//
//	scene, err := pluton.NewScene(nil, map[string]any{"width": 200.0}, pluton.Options{})
//	if err != nil {
//		return err
//	}
//	g := scene.Geometry().Group()
//	scene.Draw(func(p *pluton.Params) {
//		w := p.Float("width")
//		g.Path(pluton.Style{}).MoveToAbs(-w/2, 0).LineTo(w, 0)
//	})
//	scene.Params().Set("width", 240.0)
//
// Frames come from a [FrameScheduler]. By default a scene owns a
// [FrameQueue] that its host steps with [Scene.RunFrame]; the ebitenview
// package does this from an Ebitengine game loop.
//
// # Layers and groups
//
// The scene root holds three layers in paint order: background, geometry
// and dimensions. A [GeometryGroup] pools <path> elements built with a
// [PathBuilder]; a [DimensionsGroup] pools annotation entries built with a
// [DimensionsBuilder]. Groups marked [DrawStatic] reconcile once and are
// skipped afterwards.
//
// # Camera
//
// The [Camera] turns pointer, wheel and touch input into a damped pan and
// cursor-anchored zoom applied as a single transform on the scene root.
// The scene coordinate system is centred on the viewport with Y up.
//
// # Export
//
// [Scene.Snapshot] serializes a standalone SVG document and
// [Scene.Rasterize] renders it to an image.
package pluton
