package svgdom

import (
	"strings"
	"testing"
)

func parseString(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseBasicShapes(t *testing.T) {
	doc := parseString(t, `<svg viewBox="0 0 100 100">
		<rect id="box" x="10" y="10" width="30" height="20"/>
		<circle cx="50" cy="50" r="10"/>
		<path d="M0 0 L10 0 L10 10 Z"/>
		<line x1="0" y1="0" x2="5" y2="5"/>
	</svg>`)

	if got := len(doc.Root.Children); got != 4 {
		t.Fatalf("expected 4 children, got %d", got)
	}
	for i, n := range doc.Root.Children {
		if n.Kind != KindPath {
			t.Errorf("child %d: expected path kind, got %s", i, n.Kind)
		}
		if len(n.Path) == 0 {
			t.Errorf("child %d: empty path", i)
		}
	}
	if doc.Root.Children[0].ID != "box" {
		t.Errorf("expected id box, got %q", doc.Root.Children[0].ID)
	}
	if doc.Root.Children[1].ID != "" {
		t.Errorf("expected empty id, got %q", doc.Root.Children[1].ID)
	}
}

func TestParseViewBox(t *testing.T) {
	doc := parseString(t, `<svg viewBox="5 10 200 100"></svg>`)
	if doc.ViewBox != (Rect{5, 10, 200, 100}) {
		t.Errorf("unexpected viewBox %+v", doc.ViewBox)
	}

	doc = parseString(t, `<svg width="64px" height="32px"></svg>`)
	if w, h := doc.IntrinsicSize(); w != 64 || h != 32 {
		t.Errorf("expected 64x32, got %gx%g", w, h)
	}
}

func TestParseMissingRoot(t *testing.T) {
	if _, err := Parse(strings.NewReader("this is not markup")); err == nil {
		t.Error("expected an error for non-XML input")
	}
	if _, err := Parse(strings.NewReader("<html><p>hi</p></html>")); err == nil {
		t.Error("expected an error for XML without an svg root")
	}
}

func TestParseGroups(t *testing.T) {
	doc := parseString(t, `<svg viewBox="0 0 10 10">
		<g id="outer" transform="translate(1 2)">
			<g id="inner">
				<rect width="2" height="2"/>
			</g>
		</g>
	</svg>`)

	outer := doc.Root.Children[0]
	if outer.Kind != KindGroup || outer.ID != "outer" {
		t.Fatalf("unexpected outer node %+v", outer)
	}
	inner := outer.Children[0]
	if inner.Kind != KindGroup || inner.ID != "inner" {
		t.Fatalf("unexpected inner node %+v", inner)
	}
	if len(inner.Children) != 1 || inner.Children[0].Kind != KindPath {
		t.Fatalf("expected one path inside inner group")
	}
	// the rect inherits the group translation
	rect := inner.Children[0]
	x, y := rect.Style.transform.Transform(0, 0)
	if x != 1 || y != 2 {
		t.Errorf("expected inherited translate(1 2), got (%g, %g)", x, y)
	}
}

func TestWalkOrder(t *testing.T) {
	doc := parseString(t, `<svg viewBox="0 0 10 10">
		<rect id="a" width="1" height="1"/>
		<g id="b"><rect id="c" width="1" height="1"/></g>
	</svg>`)

	var ids []string
	var indices []int
	doc.Walk(func(index int, n *Node) {
		indices = append(indices, index)
		ids = append(ids, n.ID)
	})
	wantIDs := []string{"", "a", "b", "c"}
	if len(ids) != len(wantIDs) {
		t.Fatalf("expected %d nodes, got %d", len(wantIDs), len(ids))
	}
	for i := range wantIDs {
		if ids[i] != wantIDs[i] {
			t.Errorf("node %d: expected id %q, got %q", i, wantIDs[i], ids[i])
		}
		if indices[i] != i {
			t.Errorf("node %d: expected index %d, got %d", i, i, indices[i])
		}
	}
}

func TestParseText(t *testing.T) {
	doc := parseString(t, `<svg viewBox="0 0 100 20">
		<text id="label" x="10" y="15" font-size="14" font-family="serif" text-anchor="middle">Hello <tspan>world</tspan></text>
	</svg>`)

	n := doc.Root.Children[0]
	if n.Kind != KindText || n.Text == nil {
		t.Fatalf("expected a text node, got %+v", n)
	}
	if n.Text.X != 10 || n.Text.Y != 15 || n.Text.Size != 14 {
		t.Errorf("unexpected text geometry %+v", n.Text)
	}
	if n.Text.Family != "serif" || n.Text.Anchor != AnchorMiddle {
		t.Errorf("unexpected text style %+v", n.Text)
	}
	if !strings.Contains(n.Text.Content, "Hello") || !strings.Contains(n.Text.Content, "world") {
		t.Errorf("unexpected text content %q", n.Text.Content)
	}
}

func TestParseDefsUse(t *testing.T) {
	doc := parseString(t, `<svg viewBox="0 0 100 100">
		<defs><rect id="proto" width="10" height="10"/></defs>
		<use href="#proto" x="5" y="5"/>
	</svg>`)

	if len(doc.Root.Children) != 1 {
		t.Fatalf("expected one instantiated node, got %d", len(doc.Root.Children))
	}
	n := doc.Root.Children[0]
	ext, ok := n.BBox(Identity)
	if !ok {
		t.Fatal("expected geometry on the use node")
	}
	if ext.MinX != 5 || ext.MinY != 5 || ext.MaxX != 15 || ext.MaxY != 15 {
		t.Errorf("unexpected extent %+v", ext)
	}
}

func TestParseUseUnsupportedDefKeepsStyleStack(t *testing.T) {
	// replaying a def with an unsupported tag must leave the style
	// stack balanced: the rect after the group takes the default fill,
	// not the group's
	doc := parseString(t, `<svg viewBox="0 0 10 10">
		<defs><video id="clip"/></defs>
		<g fill="#ff0000"><use href="#clip"/></g>
		<rect width="2" height="2"/>
	</svg>`)

	var rect *Node
	for _, n := range doc.Root.Children {
		if n.Kind == KindPath {
			rect = n
		}
	}
	if rect == nil {
		t.Fatal("expected the rect to parse")
	}
	fill, ok := rect.Style.FillerColor.(PlainColor)
	if !ok || fill != NewPlainColor(0, 0, 0, 0xff) {
		t.Errorf("rect fill %+v leaked from the group", rect.Style.FillerColor)
	}
}

func TestParseGradient(t *testing.T) {
	doc := parseString(t, `<svg viewBox="0 0 10 10">
		<defs>
			<linearGradient id="fade" x1="0" y1="0" x2="1" y2="0">
				<stop offset="0" stop-color="#ff0000"/>
				<stop offset="1" stop-color="#0000ff" stop-opacity="0.5"/>
			</linearGradient>
		</defs>
		<rect width="10" height="10" fill="url(#fade)"/>
	</svg>`)

	rect := doc.Root.Children[0]
	grad, ok := rect.Style.FillerColor.(*Gradient)
	if !ok {
		t.Fatalf("expected gradient fill, got %T", rect.Style.FillerColor)
	}
	if len(grad.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(grad.Stops))
	}
	if grad.Stops[0].StopColor.R != 0xff {
		t.Errorf("unexpected first stop %+v", grad.Stops[0])
	}
	if grad.Stops[1].Opacity != 0.5 {
		t.Errorf("unexpected second stop opacity %g", grad.Stops[1].Opacity)
	}
}

func TestParseStyleAttributes(t *testing.T) {
	doc := parseString(t, `<svg viewBox="0 0 10 10">
		<rect width="4" height="4" style="fill:#00ff00;stroke:black;stroke-width:3" fill-opacity="0.5"/>
	</svg>`)

	style := doc.Root.Children[0].Style
	fill, ok := style.FillerColor.(PlainColor)
	if !ok || fill.G != 0xff {
		t.Errorf("unexpected fill %+v", style.FillerColor)
	}
	if style.LinerColor == nil {
		t.Error("expected a stroke color")
	}
	if style.LineWidth != 3 {
		t.Errorf("expected stroke width 3, got %g", style.LineWidth)
	}
	if style.FillOpacity != 0.5 {
		t.Errorf("expected fill opacity 0.5, got %g", style.FillOpacity)
	}
}
