package pluton

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Well-known definition ids.
const (
	HatchFill45ID        = "pluton-pattern-fill-hatch-45"
	GraphPaperPatternID  = "pluton-pattern-graph-paper"
	GraphPaperGradientID = "pluton-gradient-graph-paper"
	GraphPaperMaskID     = "pluton-mask-graph-paper"
	DisplacementFilterID = "pluton-filter-displacement"
	MaskFilterID         = "pluton-filter-mask"
)

const defaultHatchOpacity = 0.3

// Defs manages the reusable paint servers, masks and filters under the
// target's <defs>. Entries are upserted by id.
type Defs struct {
	el      *Element
	byID    map[string]*Element
	hatches map[string]string

	lastWidth, lastHeight float64

	displacementScale     float64
	displacementFrequency float64
	displacementOctaves   float64
	maskFrequency         float64
	maskOctaves           float64
	maskScale             float64

	displacementNoise *Element
	displacementMap   *Element
	maskNoise         *Element
	maskSlope         *Element
}

func newDefs(el *Element) *Defs {
	d := &Defs{
		el:                    el,
		byID:                  make(map[string]*Element),
		hatches:               make(map[string]string),
		displacementScale:     2.75,
		displacementFrequency: 0.1,
		displacementOctaves:   1,
		maskFrequency:         0.03,
		maskOctaves:           1,
		maskScale:             1.6,
	}
	d.upsert(hatchPattern(HatchFill45ID, "rgba(0, 39, 50, 0.2)", 0))
	d.upsert(graphPaperPattern())
	d.syncFilters()
	return d
}

// Element returns the <defs> element.
func (d *Defs) Element() *Element {
	return d.el
}

// Lookup returns the definition with the given id.
func (d *Defs) Lookup(id string) (*Element, bool) {
	el, ok := d.byID[id]
	return el, ok
}

// upsert replaces the entry with the same id in place, or appends.
func (d *Defs) upsert(node *Element) {
	id, ok := node.Attr("id")
	if !ok || id == "" {
		d.el.AppendChild(node)
		return
	}
	if old, ok := d.byID[id]; ok && old.Parent() == d.el {
		d.el.InsertBefore(node, old)
		old.Remove()
	} else {
		d.el.AppendChild(node)
	}
	d.byID[id] = node
}

// SyncForViewport rebuilds the viewport sized fade gradient and mask. It is
// a no-op when the size has not changed.
func (d *Defs) SyncForViewport(vp Rect) {
	if d.lastWidth == vp.Width && d.lastHeight == vp.Height {
		return
	}
	d.lastWidth = vp.Width
	d.lastHeight = vp.Height

	halfDiag := math.Hypot(vp.Width/2, vp.Height/2)
	d.upsert(fadeGradient(halfDiag))
	d.upsert(fadeMask(halfDiag))
}

// HatchFill returns a fill value referencing a 45 degree hatch in color.
// Patterns are shared per color and opacity. A non-positive opacity uses 0.3.
func (d *Defs) HatchFill(color string, opacity float64) string {
	if opacity <= 0 || math.IsNaN(opacity) {
		opacity = defaultHatchOpacity
	}
	key := color + "|" + formatNum(opacity)
	if id, ok := d.hatches[key]; ok {
		return "url(#" + id + ")"
	}
	id := "pluton-pattern-hatch-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	d.upsert(hatchPattern(id, color, opacity))
	d.hatches[key] = id
	return "url(#" + id + ")"
}

// SetDisplacementScale sets the displacement map strength. Non-finite
// values are ignored and negatives clamp to zero.
func (d *Defs) SetDisplacementScale(v float64) {
	setFilterParam(&d.displacementScale, v, d.displacementMap, "scale")
}

// SetDisplacementFrequency sets the displacement noise base frequency.
func (d *Defs) SetDisplacementFrequency(v float64) {
	setFilterParam(&d.displacementFrequency, v, d.displacementNoise, "baseFrequency")
}

// SetDisplacementOctaves sets the displacement noise octave count.
func (d *Defs) SetDisplacementOctaves(v float64) {
	setFilterParam(&d.displacementOctaves, v, d.displacementNoise, "numOctaves")
}

// SetMaskFrequency sets the mask noise base frequency.
func (d *Defs) SetMaskFrequency(v float64) {
	setFilterParam(&d.maskFrequency, v, d.maskNoise, "baseFrequency")
}

// SetMaskOctaves sets the mask noise octave count.
func (d *Defs) SetMaskOctaves(v float64) {
	setFilterParam(&d.maskOctaves, v, d.maskNoise, "numOctaves")
}

// SetMaskScale sets the slope applied before the mask threshold.
func (d *Defs) SetMaskScale(v float64) {
	setFilterParam(&d.maskScale, v, d.maskSlope, "slope")
}

func setFilterParam(field *float64, v float64, el *Element, attr string) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	v = math.Max(0, v)
	if v == *field {
		return
	}
	*field = v
	if el != nil {
		el.SetAttr(attr, formatNum(v))
	}
}

func (d *Defs) syncFilters() {
	disp := newFilter(DisplacementFilterID)
	d.displacementNoise = element("feTurbulence",
		"type", "fractalNoise",
		"baseFrequency", formatNum(d.displacementFrequency),
		"numOctaves", formatNum(d.displacementOctaves),
		"seed", "1",
		"result", "turbulence")
	d.displacementMap = element("feDisplacementMap",
		"in", "SourceGraphic",
		"in2", "turbulence",
		"scale", formatNum(d.displacementScale),
		"xChannelSelector", "R",
		"yChannelSelector", "G",
		"result", "output")
	disp.AppendChild(d.displacementNoise)
	disp.AppendChild(d.displacementMap)
	d.upsert(disp)

	mask := newFilter(MaskFilterID)
	mask.SetAttr("color-interpolation-filters", "linearRGB")
	d.maskNoise = element("feTurbulence",
		"type", "fractalNoise",
		"baseFrequency", formatNum(d.maskFrequency),
		"numOctaves", formatNum(d.maskOctaves),
		"seed", "2",
		"result", "noise")
	mask.AppendChild(d.maskNoise)
	mask.AppendChild(element("feColorMatrix", "in", "noise", "type", "luminanceToAlpha", "result", "noiseAlpha"))

	scale := element("feComponentTransfer", "in", "noiseAlpha", "result", "scaledNoise")
	d.maskSlope = element("feFuncA", "type", "linear", "slope", formatNum(d.maskScale))
	scale.AppendChild(d.maskSlope)
	mask.AppendChild(scale)

	threshold := element("feComponentTransfer", "in", "scaledNoise", "result", "thresholded")
	threshold.AppendChild(element("feFuncA", "type", "discrete", "tableValues", "0 1"))
	mask.AppendChild(threshold)

	mask.AppendChild(element("feComposite", "in", "SourceGraphic", "in2", "thresholded", "operator", "in"))
	d.upsert(mask)
}

// element creates a detached element from alternating name/value pairs.
func element(tag string, kv ...string) *Element {
	el := NewElement(tag)
	for i := 0; i+1 < len(kv); i += 2 {
		el.SetAttr(kv[i], kv[i+1])
	}
	return el
}

func newFilter(id string) *Element {
	return element("filter", "id", id, "x", "-50%", "y", "-50%", "width", "200%", "height", "200%")
}

func hatchPattern(id, color string, opacity float64) *Element {
	p := element("pattern",
		"id", id,
		"patternUnits", "userSpaceOnUse",
		"width", "8",
		"height", "8",
		"patternTransform", "rotate(-45)")
	line := element("line", "x1", "0", "y1", "0", "x2", "0", "y2", "8", "stroke", color)
	if opacity > 0 {
		line.SetAttr("stroke-opacity", formatNum(opacity))
		line.SetAttr("stroke-width", "4")
	} else {
		line.SetAttr("stroke-width", "12.5")
	}
	p.AppendChild(line)
	return p
}

func graphPaperPattern() *Element {
	const minor, major = 10, 50
	p := element("pattern",
		"id", GraphPaperPatternID,
		"patternUnits", "userSpaceOnUse",
		"x", "0",
		"y", "0",
		"width", formatNum(major),
		"height", formatNum(major))

	var pb PathBuilder
	for i := 1; i < major/minor; i++ {
		v := float64(i * minor)
		pb.MoveToAbs(v, 0).LineToAbs(v, major)
	}
	for i := 1; i < major/minor; i++ {
		v := float64(i * minor)
		pb.MoveToAbs(0, v).LineToAbs(major, v)
	}
	minorPath := element("path", "d", pb.String())
	minorPath.AddClass("pluton-pattern-graph-paper-minor")
	p.AppendChild(minorPath)

	pb.Reset()
	pb.MoveToAbs(major, 0).LineToAbs(major, major).MoveToAbs(0, major).LineToAbs(major, major)
	majorPath := element("path", "d", pb.String())
	majorPath.AddClass("pluton-pattern-graph-paper-major")
	p.AppendChild(majorPath)
	return p
}

// fadeGradient fades the graph paper from 65% of the half diagonal to the
// corners, centred on the origin.
func fadeGradient(halfDiag float64) *Element {
	const fadeStart = 0.65
	g := element("radialGradient",
		"id", GraphPaperGradientID,
		"gradientUnits", "userSpaceOnUse",
		"cx", "0",
		"cy", "0",
		"r", formatNum(halfDiag))
	mid := "0"
	if halfDiag != 0 {
		mid = formatNum(fadeStart)
	}
	g.AppendChild(element("stop", "offset", "0", "stop-color", "white"))
	g.AppendChild(element("stop", "offset", mid, "stop-color", "white"))
	g.AppendChild(element("stop", "offset", "1", "stop-color", "black"))
	return g
}

func fadeMask(halfDiag float64) *Element {
	x, size := formatNum(-halfDiag), formatNum(halfDiag*2)
	m := element("mask",
		"id", GraphPaperMaskID,
		"maskUnits", "userSpaceOnUse",
		"x", x, "y", x, "width", size, "height", size)
	m.AppendChild(element("rect",
		"x", x, "y", x, "width", size, "height", size,
		"fill", "url(#"+GraphPaperGradientID+")"))
	return m
}
