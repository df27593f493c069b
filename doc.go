// Package vellum is a retained-mode 2D vector shape renderer with
// animation and input events, drawing on [Ebitengine] or any canvas that
// implements [Canvas].
//
// A [Renderer] owns scenes, the id registry, event categories and the frame
// scheduler. A [Scene] owns an ordered stack of [Layer] values; each layer
// owns one canvas and the shapes assigned to it. Shapes are redrawn only
// when something asks: [Scene.RequestRendering] queues a layer, and the
// next render pass redraws every queued layer in full.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	r := vellum.NewRenderer(vellum.Config{})
//	scene, _ := r.NewScene(vellum.SceneConfig{
//		Element: vellum.EbitenElement{AntiAlias: true},
//		Width:   640, Height: 480,
//	})
//	circle, _ := vellum.NewCircle(vellum.C(320, 240), 50)
//	scene.AddShapes(circle)
//	vellum.Run(r, scene, vellum.RunConfig{Title: "Shapes", Width: 640, Height: 480})
//
// For headless rendering use the ggcanvas package as the element and call
// [Renderer.Render] and [Scene.SavePNG] directly.
//
// # Shapes
//
// Primitive shapes are [Point], [Line], [Polygon] (also built by
// [NewTriangle], [NewRectangle] and [NewSquare]), [Circle], [Arc],
// [BezierCurve] and [Relation]. [Group] renders its children independently;
// [GroupShape] joins them into one continuous path styled as a single
// shape. Constructors validate geometry and return an [Error] of kind
// [KindValidation] on failure.
//
// With relative rendering enabled a shape's coordinates are percentages of
// its layer's width and height.
//
// # Styles
//
// A [Style] maps state names to definitions. [Props] is the common
// property bag; [StyleFunc] gets the canvas directly. With
// [SceneConfig].HoverStyles, shapes switch to the "hover" and "active"
// states under the pointer.
//
// # Animation
//
// Animations advance once per render pass. [AnimationFrame] re-enqueues
// itself through the scene until its duration has elapsed, then calls its
// completion callback exactly once. Easing uses [gween] ease functions.
// Durations below [Config].MinAnimationTime are applied on the next pass
// without scheduling.
//
// # Events
//
// Handlers are registered per shape with [Handler] values and removed by
// [HandlerFilter]. The mouse category is emulated per scene from pointer
// input and collision tests; keyboard events are installed once per
// renderer; any other event type belongs to the custom category. Scene
// events can be forwarded to a Donburi world with the vellum/ecs package.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package vellum
