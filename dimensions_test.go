package pluton

import "testing"

func newTestDimensions() (*EventBus, *DimensionsLayer) {
	bus := NewEventBus()
	return bus, newDimensionsLayer(NewElement("g"), bus)
}

func TestDimensionsGroupRendersEntry(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	recordCommit(bus, func() {
		g.Dimension(Style{Class: "width", Stroke: "red"}).
			MoveToAbs(0, 0).
			LineTo(100, 0).
			TextAt(-50, 10, "100", AlignMiddle)
	})

	entries := g.Root().Children()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if !entry.HasClass("width") {
		t.Error("entry class missing")
	}
	kids := entry.Children()
	if len(kids) != 2 || kids[0].Tag != "path" || kids[1].Tag != "text" {
		t.Fatalf("entry children = %v", kids)
	}
	if v, _ := kids[0].Attr("stroke"); v != "red" {
		t.Errorf("stroke = %q", v)
	}
	if kids[1].Text() != "100" {
		t.Errorf("label = %q", kids[1].Text())
	}
	if v, _ := kids[1].Attr("transform"); v != "translate(50 10) scale(1,-1)" {
		t.Errorf("label transform = %q", v)
	}
	if v, _ := kids[1].Attr("text-anchor"); v != "middle" {
		t.Errorf("text-anchor = %q", v)
	}
}

func TestDimensionsGroupArrowFillPath(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	recordCommit(bus, func() {
		g.Dimension(Style{}).MoveToAbs(0, 0).TextAt(0, 0, "a", AlignStart)
	})
	entry := g.Root().Children()[0]
	if entry.Find("path", "pluton-dimension-fill") != nil {
		t.Fatal("fill path created without arrows")
	}

	recordCommit(bus, func() {
		g.Dimension(Style{Fill: "blue"}).MoveToAbs(10, 0).Arrow(0, 10).TextAt(0, 0, "a", AlignStart)
	})
	kids := entry.Children()
	if len(kids) != 3 || !kids[1].HasClass("pluton-dimension-fill") || kids[2].Tag != "text" {
		t.Fatalf("fill path not inserted before labels: %v", entry)
	}
	if v, _ := kids[1].Attr("fill"); v != "blue" {
		t.Errorf("fill = %q", v)
	}
}

func TestDimensionsGroupLabelsReconcile(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	labels := func(texts ...string) {
		b := g.Dimension(Style{}).MoveToAbs(0, 0)
		for _, s := range texts {
			b.TextAt(0, 0, s, AlignEnd)
		}
	}

	recordCommit(bus, func() { labels("a", "b", "c") })
	if g.LabelCount(0) != 3 {
		t.Fatalf("labels = %d, want 3", g.LabelCount(0))
	}
	first := g.Root().Children()[0].Children()[1]

	recordCommit(bus, func() { labels("x") })
	if g.LabelCount(0) != 1 {
		t.Errorf("labels after shrink = %d, want 1", g.LabelCount(0))
	}
	kids := g.Root().Children()[0].Children()
	if kids[1] != first || first.Text() != "x" {
		t.Error("first label node not reused")
	}
	if g.LabelCount(5) != 0 {
		t.Error("LabelCount out of range should be 0")
	}
}

func TestDimensionsGroupSkipsUnchangedWrites(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	draw := func(h float64) {
		g.Dimension(Style{}).
			MoveToAbs(0, 0).
			Arrow(0, 0).
			LineTo(0, h).
			TextAt(5, -h/2, formatNum(h), AlignStart).WithClass("value")
	}
	recordCommit(bus, func() { draw(100) })
	writes := countWrites(layer.Root())
	recordCommit(bus, func() { draw(100) })

	if got := countWrites(layer.Root()); got != writes {
		t.Errorf("identical commit wrote %d times", got-writes)
	}
}

func TestDimensionsGroupShrink(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	recordCommit(bus, func() {
		for i := 0; i < 4; i++ {
			g.Dimension(Style{}).MoveToAbs(float64(i), 0)
		}
	})
	recordCommit(bus, func() {
		g.Dimension(Style{}).MoveToAbs(0, 0)
	})
	if n := len(g.Root().Children()); n != 1 || g.Len() != 1 {
		t.Errorf("entries = %d, pool = %d, want 1", n, g.Len())
	}
}

func TestDimensionsGroupStatic(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	g.SetDrawUsage(DrawStatic)
	recordCommit(bus, func() { g.Dimension(Style{}).TextAt(0, 0, "1", AlignMiddle) })
	recordCommit(bus, func() {
		g.Dimension(Style{Class: "late"}).TextAt(0, 0, "2", AlignMiddle)
		g.Dimension(Style{}).TextAt(0, 0, "3", AlignMiddle)
	})

	entries := g.Root().Children()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].HasClass("late") {
		t.Error("frozen entry picked up a new style")
	}
	if txt := entries[0].Find("text", "").Text(); txt != "1" {
		t.Errorf("label = %q, want 1", txt)
	}
}

func TestDimensionsGroupStaticToDynamicDuringCommit(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	g.SetDrawUsage(DrawStatic)
	recordCommit(bus, func() {
		g.Dimension(Style{}).TextAt(0, 0, "1", AlignMiddle)
		g.Dimension(Style{}).TextAt(0, 0, "2", AlignMiddle)
	})
	first := append([]*Element(nil), g.Root().Children()...)

	recordCommit(bus, func() {
		g.Dimension(Style{Class: "late"}).TextAt(0, 0, "3", AlignMiddle)
		g.Dimension(Style{}).TextAt(0, 0, "4", AlignMiddle)
		g.SetDrawUsage(DrawDynamic)
	})

	entries := g.Root().Children()
	if len(entries) != 2 || g.Len() != 2 {
		t.Fatalf("entries = %d, pool = %d, want 2", len(entries), g.Len())
	}
	for i := range first {
		if entries[i] != first[i] {
			t.Errorf("entry %d was replaced instead of reused", i)
		}
	}
	if !entries[0].HasClass("late") {
		t.Error("style from the switching commit not applied")
	}
	if txt := entries[1].Find("text", "").Text(); txt != "4" {
		t.Errorf("label = %q, want 4", txt)
	}
}

func TestDimensionsGroupStaticClearRecommits(t *testing.T) {
	bus, layer := newTestDimensions()
	g := layer.Group()
	g.SetDrawUsage(DrawStatic)
	recordCommit(bus, func() { g.Dimension(Style{}).TextAt(0, 0, "1", AlignMiddle) })

	g.Clear()
	recordCommit(bus, func() { g.Dimension(Style{}).TextAt(0, 0, "2", AlignMiddle) })

	entries := g.Root().Children()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if txt := entries[0].Find("text", "").Text(); txt != "2" {
		t.Errorf("label = %q, want 2", txt)
	}
}
