package pluton

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRasterizeInvalidSize(t *testing.T) {
	s := newTestScene(t, nil)
	if _, err := s.Rasterize(0, 10); err == nil {
		t.Error("expected an error for a zero width")
	}
}

func TestRasterizeDrawsGeometry(t *testing.T) {
	s, err := NewScene(nil, nil, Options{Measured: Rect{Width: 100, Height: 80}})
	if err != nil {
		t.Fatal(err)
	}
	g := s.Geometry().Group()
	s.Draw(func(*Params) {
		g.Path(Style{Fill: "#000000"}).MoveToAbs(-20, -20).LineTo(40, 0).LineTo(0, 40).LineTo(-40, 0).Close()
	})
	settleScene(t, s, s.Engine().FrameBudget())

	img, err := s.Rasterize(100, 80)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Fatalf("bounds = %v", b)
	}
	if c := img.RGBAAt(45, 35); c.R > 64 {
		t.Errorf("inside the square = %v, want dark", c)
	}
	if c := img.RGBAAt(3, 3); c.R < 200 || c.A < 200 {
		t.Errorf("corner = %v, want the clear colour", c)
	}
}

func TestStripUnsupported(t *testing.T) {
	root := NewElement("svg")
	defs := NewElement("defs")
	defs.AppendChild(element("pattern", "id", "p"))
	defs.AppendChild(element("radialGradient", "id", "g"))
	defs.AppendChild(element("mask", "id", "m"))
	root.AppendChild(defs)
	a := element("rect", "fill", "url(#p)", "mask", "url(#m)")
	b := element("rect", "fill", "url(#g)", "stroke", "url(#missing)", "filter", "url(#f)")
	root.AppendChild(a)
	root.AppendChild(b)
	root.AppendChild(element("text"))

	stripUnsupported(root)

	if len(defs.Children()) != 1 || defs.Children()[0].Tag != "radialGradient" {
		t.Errorf("defs = %v", defs)
	}
	if root.Find("text", "") != nil {
		t.Error("text not removed")
	}
	if v, _ := a.Attr("fill"); v != "none" {
		t.Errorf("pattern fill = %q, want none", v)
	}
	if _, ok := a.Attr("mask"); ok {
		t.Error("mask attribute kept")
	}
	if v, _ := b.Attr("fill"); v != "url(#g)" {
		t.Errorf("gradient fill = %q, want kept", v)
	}
	if v, _ := b.Attr("stroke"); v != "none" {
		t.Errorf("dangling stroke = %q, want none", v)
	}
	if _, ok := b.Attr("filter"); ok {
		t.Error("filter attribute kept")
	}
}

func TestScreenshotWrittenAfterCommit(t *testing.T) {
	s := newTestScene(t, nil)
	s.ScreenshotDir = t.TempDir()
	s.Screenshot("zoom in")

	matches, _ := filepath.Glob(filepath.Join(s.ScreenshotDir, "*.png"))
	if len(matches) != 0 {
		t.Fatal("screenshot written before the commit")
	}
	settleScene(t, s, s.Engine().FrameBudget())

	matches, _ = filepath.Glob(filepath.Join(s.ScreenshotDir, "*_zoom_in.png"))
	if len(matches) != 1 {
		t.Fatalf("screenshots = %v, want one", matches)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("screenshot bounds = %v, want the measured size", b)
	}
}

func TestSanitizeLabel(t *testing.T) {
	cases := map[string]string{
		"":              "unlabeled",
		"   ":           "unlabeled",
		"zoom-in.v2":    "zoom-in.v2",
		"a/b c":         "a_b_c",
		"wheel x3 (ok)": "wheel_x3__ok_",
	}
	for in, want := range cases {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
