package svgkit

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

const shapesSVG = `<svg viewBox="0 0 100 100">
	<rect id="box" x="10" y="10" width="30" height="20"/>
	<g id="wrapper">
		<circle id="dot" cx="70" cy="70" r="5"/>
	</g>
	<path d="M0 90 L100 90"/>
</svg>`

func TestMeasureShapes(t *testing.T) {
	report, err := Measure(shapesSVG, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Nodes) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(report.Nodes))
	}
	if report.Overall == nil {
		t.Fatal("expected overall bounds")
	}

	box := report.Nodes[0]
	if box.ID != "box" || box.Kind != "path" {
		t.Errorf("unexpected first descriptor %+v", box)
	}
	want := Bounds{Left: 10, Top: 10, Right: 40, Bottom: 30}
	if box.BBox != want {
		t.Errorf("box bbox %+v, want %+v", box.BBox, want)
	}

	// the path element has no id
	if report.Nodes[2].ID != "" {
		t.Errorf("expected an absent id, got %q", report.Nodes[2].ID)
	}
}

func TestMeasureIndicesMonotonic(t *testing.T) {
	report, err := Measure(shapesSVG, nil)
	if err != nil {
		t.Fatal(err)
	}
	last := -1
	for _, n := range report.Nodes {
		if n.Index <= last {
			t.Fatalf("indices must strictly increase, got %d after %d", n.Index, last)
		}
		last = n.Index
	}
	// the group consumes an ordinal without producing a descriptor
	if report.Nodes[1].Index-report.Nodes[0].Index != 2 {
		t.Errorf("expected a gap across the group, got indices %d and %d",
			report.Nodes[0].Index, report.Nodes[1].Index)
	}
}

func TestMeasureOverallIsUnion(t *testing.T) {
	report, err := Measure(shapesSVG, nil)
	if err != nil {
		t.Fatal(err)
	}
	union := report.Nodes[0].BBox
	for _, n := range report.Nodes[1:] {
		union = union.Union(n.BBox)
	}
	if *report.Overall != union {
		t.Errorf("overall %+v differs from the union %+v", *report.Overall, union)
	}
}

func TestMeasureBoundsValid(t *testing.T) {
	report, err := Measure(shapesSVG, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range report.Nodes {
		if n.BBox.Right < n.BBox.Left || n.BBox.Bottom < n.BBox.Top {
			t.Errorf("degenerate bbox %+v on node %d", n.BBox, n.Index)
		}
	}
}

func TestMeasureDeterministic(t *testing.T) {
	first, err := Measure(shapesSVG, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Measure(shapesSVG, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated measurements must agree")
	}
}

func TestMeasureEmptyGroupSkipped(t *testing.T) {
	report, err := Measure(`<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="10" height="10"/>
		<g id="empty"/>
	</svg>`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Nodes) != 1 {
		t.Fatalf("expected exactly one descriptor, got %d", len(report.Nodes))
	}
}

func TestMeasureEmptyDocument(t *testing.T) {
	report, err := Measure(`<svg viewBox="0 0 100 100"/>`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Nodes) != 0 {
		t.Errorf("expected no descriptors, got %d", len(report.Nodes))
	}
	if report.Overall != nil {
		t.Errorf("overall must be nil for an empty document, got %+v", report.Overall)
	}
}

func TestMeasureParseError(t *testing.T) {
	_, err := Measure("this is not svg at all", nil)
	var kerr *Error
	if !errors.As(err, &kerr) || kerr.Kind != ParseError {
		t.Fatalf("expected a ParseError, got %v", err)
	}
	if got := kerr.Error(); !strings.HasPrefix(got, "failed to parse SVG:") {
		t.Errorf("unexpected message %q", got)
	}
}

func TestMeasureBadFontPathIsNotFatal(t *testing.T) {
	report, err := Measure(shapesSVG, []string{"/no/such/font.ttf"})
	if err != nil {
		t.Fatalf("a missing font must not fail the call: %v", err)
	}
	if len(report.Nodes) != 3 {
		t.Errorf("expected 3 descriptors, got %d", len(report.Nodes))
	}
}

func TestMeasureText(t *testing.T) {
	report, err := Measure(`<svg viewBox="0 0 200 50">
		<text id="label" x="10" y="30" font-size="16">Hi</text>
	</svg>`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Nodes) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(report.Nodes))
	}
	n := report.Nodes[0]
	if n.Kind != "text" || n.ID != "label" {
		t.Errorf("unexpected descriptor %+v", n)
	}
	if n.BBox.Width() <= 0 || n.BBox.Height() <= 0 {
		t.Errorf("expected positive text extent, got %+v", n.BBox)
	}
	if math.Abs(n.BBox.Bottom-30) > 2 {
		t.Errorf("text should sit on its baseline, got %+v", n.BBox)
	}
}
