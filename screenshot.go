package vellum

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Screenshot queues a labeled screenshot, captured at the end of the next
// render pass and written as a timestamped PNG under Config.ScreenshotDir.
// Layers whose canvas cannot be read back are skipped.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
	s.scheduleFrame()
}

// Snapshot composites every readable layer into one image of the scene's
// size.
func (s *Scene) Snapshot() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.cfg.Width, s.cfg.Height))
	if s.main != nil {
		if snap, ok := s.main.(Snapshotter); ok {
			src := snap.Snapshot()
			draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Over)
			return img
		}
	}
	for _, l := range s.layers {
		snap, ok := l.canvas.(Snapshotter)
		if !ok {
			continue
		}
		src := snap.Snapshot()
		at := image.Pt(int(l.left), int(l.top))
		draw.Draw(img, src.Bounds().Sub(src.Bounds().Min).Add(at), src, src.Bounds().Min, draw.Over)
	}
	return img
}

// flushScreenshots writes every queued screenshot. Called at the end of a
// render pass.
func (s *Scene) flushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	dir := s.Config().ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Error("screenshot: mkdir", "dir", dir, "error", err)
		s.screenshotQueue = s.screenshotQueue[:0]
		return
	}

	img := s.Snapshot()
	stamp := s.renderer.clock.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			Logger().Error("screenshot", "error", err)
			continue
		}
		Logger().Debug("screenshot written", "path", path)
	}
	s.screenshotQueue = s.screenshotQueue[:0]
}

// writePNG encodes img to a PNG file at path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// SavePNG writes the scene's current composite to path.
func (s *Scene) SavePNG(path string) error {
	return writePNG(path, s.Snapshot())
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

