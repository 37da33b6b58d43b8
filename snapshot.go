package pluton

import (
	"math"
	"strconv"
	"strings"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// ThemeRule sets presentation attributes on matching elements of a
// snapshot. Empty selector fields match anything. Attributes already present
// on an element are kept.
type ThemeRule struct {
	Within string // class carried by an ancestor
	Class  string // class carried by the element
	Tag    string
	Attrs  []Attr
}

// Theme is an ordered rule list. Earlier rules win.
type Theme []ThemeRule

func (r ThemeRule) matches(el *Element) bool {
	if r.Tag != "" && el.Tag != r.Tag {
		return false
	}
	if r.Class != "" && !el.HasClass(r.Class) {
		return false
	}
	if r.Within != "" {
		for p := el.Parent(); ; p = p.Parent() {
			if p == nil {
				return false
			}
			if p.HasClass(r.Within) {
				break
			}
		}
	}
	return true
}

// DefaultTheme returns the stock drawing colours. Standalone SVG consumers
// and the rasterizer have no stylesheet, so snapshots inline these.
func DefaultTheme() Theme {
	const ink, accent, axis = "#1f3a44", "#b03a2e", "#9fb3bb"
	return Theme{
		{Class: "pluton-pattern-graph-paper-minor", Attrs: []Attr{{"fill", "none"}, {"stroke", "#dde6ea"}, {"stroke-width", "0.5"}}},
		{Class: "pluton-pattern-graph-paper-major", Attrs: []Attr{{"fill", "none"}, {"stroke", "#c3d1d7"}, {"stroke-width", "1"}}},
		{Class: "pluton-axis", Attrs: []Attr{{"stroke", axis}, {"stroke-width", "1"}}},
		{Class: "pluton-geometry", Attrs: []Attr{{"fill", "none"}, {"stroke", ink}, {"stroke-width", "1.5"}}},
		{Class: "pluton-dimension-fill", Attrs: []Attr{{"fill", accent}, {"stroke", "none"}}},
		{Within: "pluton-dimensions", Tag: "text", Attrs: []Attr{{"fill", accent}, {"stroke", "none"}}},
		{Class: "pluton-dimensions", Attrs: []Attr{
			{"fill", "none"}, {"stroke", accent}, {"stroke-width", "1"},
			{"font-family", "sans-serif"}, {"font-size", "12"},
		}},
	}
}

// apply inlines the theme over the subtree.
func (t Theme) apply(root *Element) {
	if len(t) == 0 {
		return
	}
	root.Walk(func(el *Element) {
		for _, r := range t {
			if !r.matches(el) {
				continue
			}
			for _, a := range r.Attrs {
				if _, ok := el.Attr(a.Name); !ok {
					el.SetAttr(a.Name, a.Value)
				}
			}
		}
	})
}

// SnapshotOptions controls Snapshot output. Zero sizes fall back to the
// measured box, then the viewport.
type SnapshotOptions struct {
	Width      float64
	Height     float64
	Background string // fill of a base rect; empty for none
	Theme      Theme  // inlined presentation; nil for none
}

// Snapshot serializes the render target as a standalone SVG document. The
// live tree is not modified.
func (s *Scene) Snapshot(opts SnapshotOptions) string {
	return s.snapshotElement(opts).String()
}

// SnapshotXML is Snapshot with the XML declaration prepended.
func (s *Scene) SnapshotXML(opts SnapshotOptions) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + s.Snapshot(opts)
}

func (s *Scene) snapshotElement(opts SnapshotOptions) *Element {
	vp := s.ctx.Viewport()
	meas := s.ctx.Measured()

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = firstPositive(meas.Width, vp.Width, parseDimension(attrOr(s.target, "width")), 1)
	}
	if height <= 0 {
		height = firstPositive(meas.Height, vp.Height, parseDimension(attrOr(s.target, "height")), 1)
	}

	clone := s.target.Clone()
	clone.SetAttr("xmlns", svgNS)
	clone.SetAttr("xmlns:xlink", xlinkNS)
	clone.SetAttr("width", formatDimension(width))
	clone.SetAttr("height", formatDimension(height))

	viewBox, ok := parseViewBox(attrOr(clone, "viewBox"))
	if !ok {
		viewBox = vp
		if viewBox.Empty() {
			viewBox = Rect{Width: width, Height: height}
		}
		clone.SetAttr("viewBox", strings.Join([]string{
			formatDimension(viewBox.X), formatDimension(viewBox.Y),
			formatDimension(viewBox.Width), formatDimension(viewBox.Height),
		}, " "))
	}

	opts.Theme.apply(clone)
	if opts.Background != "" {
		insertBackgroundRect(clone, opts.Background, viewBox)
	}
	return clone
}

// insertBackgroundRect places a viewBox sized rect after the leading defs.
func insertBackgroundRect(svg *Element, fill string, vb Rect) {
	rect := element("rect",
		"x", formatDimension(vb.X),
		"y", formatDimension(vb.Y),
		"width", formatDimension(vb.Width),
		"height", formatDimension(vb.Height),
		"fill", fill,
		"data-pluton-snapshot-background", "true")
	var ref *Element
	for _, ch := range svg.Children() {
		if ch.Tag != "defs" {
			ref = ch
			break
		}
	}
	svg.InsertBefore(rect, ref)
}

// formatDimension rounds to three decimals. Non-finite values become "0".
func formatDimension(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return formatNum(math.Round(v*1000) / 1000)
}

func firstPositive(vs ...float64) float64 {
	for _, v := range vs {
		if v > 0 {
			return v
		}
	}
	return 0
}

func attrOr(el *Element, name string) string {
	v, _ := el.Attr(name)
	return v
}

// parseDimension reads a numeric width/height attribute, ignoring units.
func parseDimension(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
