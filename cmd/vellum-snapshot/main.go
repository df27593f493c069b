// Command vellum-snapshot renders a demo scene headlessly with the gg
// software canvas and writes the result as a PNG. With -frames greater
// than zero the scene's animations are advanced on a simulated clock
// before the snapshot is taken.
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/phanxgames/vellum"
	"github.com/phanxgames/vellum/ggcanvas"
)

// stepClock is a clock advanced by hand, one frame at a time.
type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func main() {
	var (
		width    = flag.Int("width", 800, "image width")
		height   = flag.Int("height", 600, "image height")
		output   = flag.String("output", "vellum.png", "output file")
		frames   = flag.Int("frames", 0, "animation frames to simulate before the snapshot")
		interval = flag.Duration("interval", time.Second/60, "simulated time between frames")
		debug    = flag.Bool("debug", false, "log render statistics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	vellum.SetLogger(logger)

	cfg, err := vellum.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	cfg.Debug = cfg.Debug || *debug

	r := vellum.NewRenderer(cfg)
	clock := &stepClock{now: time.Unix(0, 0)}
	r.SetClock(clock)

	scene, err := r.NewScene(vellum.SceneConfig{
		Element: ggcanvas.Element{},
		Width:   *width,
		Height:  *height,
	})
	if err != nil {
		logger.Error("create scene", "error", err)
		os.Exit(1)
	}

	if err := buildScene(scene, *frames > 0); err != nil {
		logger.Error("build scene", "error", err)
		os.Exit(1)
	}

	r.Render()
	for i := 0; i < *frames; i++ {
		clock.now = clock.now.Add(*interval)
		r.Step()
	}
	r.Render()

	if err := scene.SavePNG(*output); err != nil {
		logger.Error("save snapshot", "error", err)
		os.Exit(1)
	}
	logger.Info("snapshot saved", "path", *output, "width", *width, "height", *height, "frames", *frames)
}

// buildScene lays out one shape of each kind using relative coordinates so
// the composition scales with the requested image size.
func buildScene(scene *vellum.Scene, animate bool) error {
	bg, err := scene.NewLayer(nil)
	if err != nil {
		return err
	}
	fg, err := scene.NewLayer(nil)
	if err != nil {
		return err
	}

	frame, err := vellum.NewRectangle([]vellum.Coord{vellum.C(2, 2), vellum.C(2, 98), vellum.C(98, 98)})
	if err != nil {
		return err
	}
	frame.SetRelativeRendering(true)
	frame.SetStyle(vellum.PropsStyle(vellum.Props{
		FillColor:   vellum.MustParseColor("midnightblue"),
		StrokeColor: vellum.MustParseColor("lightsteelblue"),
		LineWidth:   2,
		Fill:        true,
		Stroke:      true,
	}), false)

	tri, err := vellum.NewTriangle([]vellum.Coord{vellum.C(10, 80), vellum.C(30, 80), vellum.C(20, 55)})
	if err != nil {
		return err
	}
	tri.SetRelativeRendering(true)
	tri.SetStyle(vellum.PropsStyle(vellum.Props{FillColor: vellum.MustParseColor("tomato"), Fill: true}), false)

	sun, err := vellum.NewCircle(vellum.C(75, 25), 10)
	if err != nil {
		return err
	}
	sun.SetRelativeRendering(true)
	sun.SetStyle(vellum.PropsStyle(vellum.Props{FillColor: vellum.MustParseColor("gold"), Fill: true}), false)

	curve, err := vellum.NewBezierCurve([]vellum.Coord{
		vellum.C(5, 50), vellum.C(30, 20), vellum.C(60, 80), vellum.C(95, 50),
	})
	if err != nil {
		return err
	}
	curve.SetRelativeRendering(true)
	curve.SetStyle(vellum.PropsStyle(vellum.Props{
		StrokeColor: vellum.MustParseColor("mediumseagreen"),
		LineWidth:   3,
		Stroke:      true,
	}), false)

	wave, err := vellum.NewRelation(func(x, t float64) []float64 {
		return []float64{70 + 8*t*math.Sin(x/6)}
	})
	if err != nil {
		return err
	}
	wave.SetRelativeRendering(true)
	wave.SetStyle(vellum.PropsStyle(vellum.Props{
		StrokeColor: vellum.MustParseColor("orchid"),
		LineWidth:   2,
		Stroke:      true,
	}), false)

	if _, err := scene.AddShape(frame, bg); err != nil {
		return err
	}
	for _, s := range []vellum.Shape{tri, sun, curve, wave} {
		if _, err := scene.AddShape(s, fg); err != nil {
			return err
		}
	}

	if !animate {
		return nil
	}
	if _, err := tri.Translate(time.Second, 40, 0, nil); err != nil {
		return err
	}
	if _, err := sun.Resize(time.Second, 14, nil); err != nil {
		return err
	}
	_, err = wave.Move(time.Second, func(x, t float64) []float64 {
		return []float64{70 + 12*t*math.Cos(x/6)}
	}, nil)
	return err
}
