package pluton

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
)

// wellFormed reports whether doc parses as XML.
func wellFormed(doc string) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func newSnapshotScene(t *testing.T) *Scene {
	t.Helper()
	s := newTestScene(t, map[string]any{"w": 100.0})
	g := s.Geometry().Group()
	d := s.Dimensions().Group()
	s.Draw(func(p *Params) {
		w := p.Float("w")
		g.Path(Style{Fill: "red"}).MoveToAbs(-w/2, 0).LineTo(w, 0)
		d.Dimension(Style{}).MoveToAbs(-w/2, 20).LineTo(w, 0).TextAt(-w/2, 10, "w < 1m", AlignMiddle)
	})
	settleScene(t, s, s.Engine().FrameBudget())
	return s
}

func TestSnapshotDocument(t *testing.T) {
	s := newSnapshotScene(t)
	doc := s.Snapshot(SnapshotOptions{})

	for _, want := range []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`width="800"`,
		`height="600"`,
		`viewBox="0 0 800 600"`,
		`w &lt; 1m`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("snapshot missing %s", want)
		}
	}
	if err := wellFormed(doc); err != nil {
		t.Errorf("snapshot is not well formed: %v", err)
	}
	if _, ok := s.Target().Attr("xmlns"); ok {
		t.Error("Snapshot modified the live tree")
	}
}

func TestSnapshotXMLDeclaration(t *testing.T) {
	s := newSnapshotScene(t)
	doc := s.SnapshotXML(SnapshotOptions{})
	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<svg") {
		t.Errorf("prefix = %q", doc[:60])
	}
	if err := wellFormed(doc); err != nil {
		t.Error(err)
	}
}

func TestSnapshotKeepsRootViewBox(t *testing.T) {
	target := NewElement("svg")
	target.SetAttr("viewBox", "-50 -25 100 50")
	s, err := NewScene(target, nil, Options{Measured: Rect{Width: 200, Height: 100}})
	if err != nil {
		t.Fatal(err)
	}
	el := s.snapshotElement(SnapshotOptions{Width: 300})
	if v, _ := el.Attr("viewBox"); v != "-50 -25 100 50" {
		t.Errorf("viewBox = %q", v)
	}
	if w, _ := el.Attr("width"); w != "300" {
		t.Errorf("width = %q, want 300", w)
	}
	if h, _ := el.Attr("height"); h != "100" {
		t.Errorf("height = %q, want 100", h)
	}
}

func TestSnapshotBackgroundRect(t *testing.T) {
	s := newSnapshotScene(t)
	el := s.snapshotElement(SnapshotOptions{Background: "#fafafa"})

	kids := el.Children()
	if kids[0].Tag != "defs" {
		t.Fatalf("first child = %s, want defs", kids[0].Tag)
	}
	bg := kids[1]
	if v, _ := bg.Attr("data-pluton-snapshot-background"); bg.Tag != "rect" || v != "true" {
		t.Fatalf("second child = %v, want the background rect", bg)
	}
	if f, _ := bg.Attr("fill"); f != "#fafafa" {
		t.Errorf("fill = %q", f)
	}
}

func TestSnapshotTheme(t *testing.T) {
	s := newSnapshotScene(t)
	el := s.snapshotElement(SnapshotOptions{Theme: DefaultTheme()})

	layer := el.Find("g", "pluton-geometry")
	if v, _ := layer.Attr("stroke"); v != "#1f3a44" {
		t.Errorf("geometry stroke = %q", v)
	}
	text := el.Find("text", "")
	if v, _ := text.Attr("fill"); v != "#b03a2e" {
		t.Errorf("label fill = %q", v)
	}

	// explicit attributes win over the theme
	theme := Theme{{Tag: "path", Attrs: []Attr{{"fill", "green"}, {"stroke-linecap", "round"}}}}
	el = s.snapshotElement(SnapshotOptions{Theme: theme})
	p := el.Find("g", "pluton-geometry").Find("path", "")
	if v, _ := p.Attr("fill"); v != "red" {
		t.Errorf("fill = %q, want the explicit red", v)
	}
	if v, _ := p.Attr("stroke-linecap"); v != "round" {
		t.Errorf("stroke-linecap = %q", v)
	}
}

func TestFormatDimension(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.23456, "1.235"},
		{800, "800"},
		{-0.0004, "0"},
		{math.NaN(), "0"},
		{math.Inf(-1), "0"},
	}
	for _, c := range cases {
		if got := formatDimension(c.in); got != c.want {
			t.Errorf("formatDimension(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDimension(t *testing.T) {
	cases := map[string]float64{"120": 120, " 64px ": 64, "12.5": 12.5, "abc": 0, "": 0, "NaN": 0}
	for in, want := range cases {
		if got := parseDimension(in); got != want {
			t.Errorf("parseDimension(%q) = %v, want %v", in, got, want)
		}
	}
}
