// Package beams holds the demo drawings shipped with the pluton CLI and
// examples: steel section profiles with dimensions, and a static/dynamic
// group comparison.
package beams

import (
	"fmt"
	"math"
	"sort"

	"github.com/pluton2d/pluton"
)

// Drawing is a named parametric drawing.
type Drawing struct {
	Name        string
	Description string
	// Defaults seeds the scene's params.
	Defaults map[string]any
	// Setup creates groups and registers draw callbacks on a fresh scene.
	Setup func(s *pluton.Scene)
}

var registry = map[string]Drawing{}

func register(d Drawing) {
	registry[d.Name] = d
}

func init() {
	register(Drawing{
		Name:        "i-beam",
		Description: "I section with fillets, web, flange and height dimensions",
		Defaults: map[string]any{
			"width":           200.0,
			"height":          300.0,
			"flangeThickness": 40.0,
			"webThickness":    20.0,
			"filletRadius":    12.0,
		},
		Setup: setupIBeam,
	})
	register(Drawing{
		Name:        "rhs",
		Description: "rectangular hollow section",
		Defaults: map[string]any{
			"width":       200.0,
			"height":      250.0,
			"thickness":   15.0,
			"outerRadius": 10.0,
			"innerRadius": 10.0,
		},
		Setup: setupRHS,
	})
	register(Drawing{
		Name:        "chs",
		Description: "circular hollow section with radius and angle dimensions",
		Defaults: map[string]any{
			"radius":    110.0,
			"thickness": 12.0,
		},
		Setup: setupCHS,
	})
	register(Drawing{
		Name:        "static-dynamic",
		Description: "a frozen static square next to a live dynamic one",
		Defaults: map[string]any{
			"size": 120.0,
		},
		Setup: setupStaticDynamic,
	})
}

// Lookup returns the drawing registered under name.
func Lookup(name string) (Drawing, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names lists the registered drawings in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Params merges overrides over the drawing's defaults.
func (d Drawing) Params(overrides map[string]any) map[string]any {
	out := make(map[string]any, len(d.Defaults)+len(overrides))
	for k, v := range d.Defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func label(v float64, unit string) string {
	return fmt.Sprintf("%g%s", v, unit)
}

func setupIBeam(s *pluton.Scene) {
	geom := s.Geometry().Group()
	dims := s.Dimensions().Group()

	s.Draw(func(p *pluton.Params) {
		fw := p.Float("width")
		ft := p.Float("flangeThickness")
		wt := p.Float("webThickness")
		h := p.Float("height")
		r := p.Float("filletRadius")

		geom.Path(pluton.Style{Class: "i-beam", Fill: s.Defs().HatchFill("#1f3a44", 0.3)}).
			MoveToAbs(0, 0).
			LineTo(fw/2, 0).
			LineTo(0, ft).
			LineTo(-fw/2+wt/2+r, 0).
			ArcTo(-r, r, r, false).
			LineTo(0, h-2*ft-2*r).
			ArcTo(r, r, r, false).
			LineTo(fw/2-wt/2-r, 0).
			LineTo(0, ft).
			LineTo(-fw, 0).
			LineTo(0, -ft).
			LineTo(fw/2-wt/2-r, 0).
			ArcTo(r, -r, r, false).
			LineTo(0, -h+2*ft+2*r).
			ArcTo(-r, -r, r, false).
			LineTo(-fw/2+wt/2+r, 0).
			LineTo(0, -ft).
			LineTo(fw/2, 0)

		geom.Translate(0, -h/2)
	})

	s.Draw(func(p *pluton.Params) {
		fw := p.Float("width")
		ft := p.Float("flangeThickness")
		wt := p.Float("webThickness")
		h := p.Float("height")

		// web thickness
		dims.Dimension(pluton.Style{}).
			MoveToAbs(-wt/2, (h/2-ft)/2).
			Tick(0, 0).
			LineTo(-30, 0).
			MoveToAbs(wt/2, (h/2-ft)/2).
			Tick(math.Pi, 0).
			LineTo(50, 0).
			TextAt(10, 0, label(wt, ""), pluton.AlignStart)

		// flange width
		dims.Dimension(pluton.Style{}).
			MoveToAbs(-fw/2, -h/2-20).
			Tick(0, 0).
			LineTo(fw, 0).
			Tick(0, 0).
			TextAt(-fw/2, -16, label(fw, ""), pluton.AlignMiddle)

		// height
		dims.Dimension(pluton.Style{}).
			MoveToAbs(fw/2+40, -h/2).
			Tick(-math.Pi/2, 0).
			LineTo(0, h).
			Tick(math.Pi/2, 0).
			TextAt(18, -h/2, label(h, ""), pluton.AlignStart)
	})
}

func roundedRect(pb *pluton.PathBuilder, w, h, r float64) {
	pb.MoveToAbs(-w/2+r, -h/2).
		LineTo(w-2*r, 0).
		ArcTo(r, r, r, false).
		LineTo(0, h-2*r).
		ArcTo(-r, r, r, false).
		LineTo(-w+2*r, 0).
		ArcTo(-r, -r, r, false).
		LineTo(0, -h+2*r).
		ArcTo(r, -r, r, false).
		Close()
}

func setupRHS(s *pluton.Scene) {
	geom := s.Geometry().Group()
	dims := s.Dimensions().Group()

	s.Draw(func(p *pluton.Params) {
		w := p.Float("width")
		h := p.Float("height")
		t := p.Float("thickness")
		ro := p.Float("outerRadius")
		ri := p.Float("innerRadius")

		pb := geom.Path(pluton.Style{Class: "rhs", FillRule: "evenodd", Fill: s.Defs().HatchFill("#1f3a44", 0.3)})
		roundedRect(pb, w, h, ro)
		roundedRect(pb, w-2*t, h-2*t, ri)

		dims.Dimension(pluton.Style{}).
			MoveToAbs(-w/2, -h/2-20).
			Tick(0, 0).
			LineTo(w, 0).
			Tick(0, 0).
			TextAt(-w/2, -16, label(w, "mm"), pluton.AlignMiddle)

		dims.Dimension(pluton.Style{}).
			MoveToAbs(w/2+40, -h/2).
			Tick(-math.Pi/2, 0).
			LineTo(0, h).
			Tick(math.Pi/2, 0).
			TextAt(5, -h/2, label(h, "mm"), pluton.AlignStart)

		dims.Dimension(pluton.Style{}).
			MoveToAbs(-w/2, 20).
			Tick(0, 0).
			LineTo(-30, 0).
			MoveToAbs(-w/2+t, 20).
			Tick(math.Pi, 0).
			LineTo(50, 0).
			TextAt(5, 0, label(t, "mm"), pluton.AlignStart)
	})
}

func circle(pb *pluton.PathBuilder, r float64) {
	pb.MoveToAbs(-r, 0).
		ArcTo(r, r, r, false).
		ArcTo(r, -r, r, false).
		ArcTo(-r, -r, r, false).
		ArcTo(-r, r, r, false)
}

func setupCHS(s *pluton.Scene) {
	geom := s.Geometry().Group()
	dims := s.Dimensions().Group()

	s.Draw(func(p *pluton.Params) {
		r := p.Float("radius")
		t := p.Float("thickness")

		pb := geom.Path(pluton.Style{Class: "chs", FillRule: "evenodd", Fill: s.Defs().HatchFill("#1f3a44", 0.3)})
		circle(pb, r)
		circle(pb, r-t)
	})

	s.Draw(func(p *pluton.Params) {
		r := p.Float("radius")
		const angle = math.Pi / 4
		x, y := r*math.Cos(angle), r*math.Sin(angle)

		dims.Dimension(pluton.Style{}).
			MoveToAbs(0, 0).
			CenterMark(20)

		dims.Dimension(pluton.Style{}).
			MoveToAbs(0, 0).
			LineToAbs(x, y).
			Arrow(angle, 0).
			TextAtAbs(x/2-10, y/2, label(r, "mm"), pluton.AlignEnd)

		const arcRadius = 40
		dims.Dimension(pluton.Style{}).
			MoveToAbs(0, 0).
			Arc(arcRadius, 0, angle).
			TextAtAbs(arcRadius*0.7, 12, "45°", pluton.AlignMiddle)
	})
}

func setupStaticDynamic(s *pluton.Scene) {
	static := s.Geometry().Group()
	dynamic := s.Geometry().Group()

	square := func(pb *pluton.PathBuilder, cx, size float64) {
		half := size / 2
		pb.MoveToAbs(cx-half, -half).
			LineTo(size, 0).
			LineTo(0, size).
			LineTo(-size, 0).
			Close()
	}

	const offset = 90
	s.Draw(func(p *pluton.Params) {
		size := p.Float("size")
		square(static.Path(pluton.Style{Class: "demo-static"}), -offset, size)
		square(dynamic.Path(pluton.Style{Class: "demo-dynamic"}), offset, size)
	})

	// the static square keeps the size of its first commit
	static.SetDrawUsage(pluton.DrawStatic)
}
