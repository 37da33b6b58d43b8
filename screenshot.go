package pluton

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterize renders the current render target into a w by h image using
// the scene's Theme and ClearColor. Paint servers the rasterizer cannot
// draw (patterns, masks, filters, text) are left out.
func (s *Scene) Rasterize(w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterize: invalid size %dx%d", w, h)
	}
	el := s.snapshotElement(SnapshotOptions{
		Width:      float64(w),
		Height:     float64(h),
		Background: s.ClearColor,
		Theme:      s.Theme,
	})
	stripUnsupported(el)

	icon, err := oksvg.ReadIconStream(strings.NewReader(el.String()), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}

// stripUnsupported removes what the rasterizer cannot draw. Paint that
// refers to anything other than a gradient becomes "none".
func stripUnsupported(root *Element) {
	gradients := map[string]bool{}
	var drop []*Element
	root.Walk(func(el *Element) {
		switch el.Tag {
		case "linearGradient", "radialGradient":
			if id, ok := el.Attr("id"); ok {
				gradients[id] = true
			}
		case "pattern", "mask", "filter", "text":
			drop = append(drop, el)
		}
	})
	for _, el := range drop {
		el.Remove()
	}
	root.Walk(func(el *Element) {
		for _, name := range []string{"fill", "stroke"} {
			v, ok := el.Attr(name)
			if !ok || !strings.HasPrefix(v, "url(#") {
				continue
			}
			id := strings.TrimSuffix(strings.TrimPrefix(v, "url(#"), ")")
			if !gradients[id] {
				el.SetAttr(name, "none")
			}
		}
		el.RemoveAttr("mask")
		el.RemoveAttr("filter")
	})
}

// Screenshot queues a labeled capture. It is rasterized at the measured
// size after the next commit and written to ScreenshotDir with a
// timestamped filename.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
	s.engine.ScheduleRender()
}

// flushScreenshots captures every queued label. Runs after a commit.
func (s *Scene) flushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		logger.Error("screenshot", "dir", s.ScreenshotDir, "err", err)
		return
	}

	meas := s.ctx.Measured()
	w, h := int(meas.Width), int(meas.Height)
	if w <= 0 || h <= 0 {
		vp := s.ctx.Viewport()
		w, h = int(vp.Width), int(vp.Height)
	}
	img, err := s.Rasterize(w, h)
	if err != nil {
		logger.Error("screenshot", "err", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := WritePNG(path, img); err != nil {
			logger.Error("screenshot", "err", err)
			continue
		}
		logger.Info("screenshot", "path", path)
	}
}

// WritePNG encodes img to a PNG file at path.
func WritePNG(path string, img image.Image) error {
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
