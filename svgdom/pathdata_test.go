package svgdom

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func compile(t *testing.T, d string) Path {
	t.Helper()
	var c pathCursor
	if err := c.compilePath(d); err != nil {
		t.Fatalf("compiling %q: %v", d, err)
	}
	return c.path
}

func TestScanNumbers(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []float64
	}{
		{"10 20", []float64{10, 20}},
		{"10,20", []float64{10, 20}},
		{"10-5", []float64{10, -5}},
		{"1e-3 2", []float64{0.001, 2}},
		{"-1.5-2.5", []float64{-1.5, -2.5}},
		{"+3 4", []float64{3, 4}},
	} {
		var got []float64
		err := scanNumbers(tc.in, func(f float64) { got = append(got, f) })
		if tc.want == nil {
			if err == nil {
				t.Errorf("%q: expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}

func TestCompileAbsoluteCommands(t *testing.T) {
	p := compile(t, "M10 20 L30 40 H50 V60 Z")
	want := Path{
		MoveTo(toFixedP(10, 20)),
		LineTo(toFixedP(30, 40)),
		LineTo(toFixedP(50, 40)),
		LineTo(toFixedP(50, 60)),
		Close{},
	}
	comparePaths(t, p, want)
}

func TestCompileRelativeCommands(t *testing.T) {
	p := compile(t, "m10 10 l5 0 v5 h-5 z")
	want := Path{
		MoveTo(toFixedP(10, 10)),
		LineTo(toFixedP(15, 10)),
		LineTo(toFixedP(15, 15)),
		LineTo(toFixedP(10, 15)),
		Close{},
	}
	comparePaths(t, p, want)
}

func TestCompileImplicitLineTo(t *testing.T) {
	// extra coordinate pairs after M are implicit line commands
	p := compile(t, "M0 0 10 0 10 10")
	want := Path{
		MoveTo(toFixedP(0, 0)),
		LineTo(toFixedP(10, 0)),
		LineTo(toFixedP(10, 10)),
	}
	comparePaths(t, p, want)
}

func TestCompileSmoothCubic(t *testing.T) {
	p := compile(t, "M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	if len(p) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(p))
	}
	op, ok := p[2].(CubicTo)
	if !ok {
		t.Fatalf("expected a cubic, got %T", p[2])
	}
	// first control point is the previous second control point
	// reflected around (10, 0)
	if got := op[0]; got != toFixedP(10, -10) {
		t.Errorf("unexpected reflected control point %v", got)
	}
}

func TestCompileQuadratic(t *testing.T) {
	p := compile(t, "M0 0 Q5 10 10 0 T20 0")
	if len(p) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(p))
	}
	op, ok := p[2].(QuadTo)
	if !ok {
		t.Fatalf("expected a quad, got %T", p[2])
	}
	if got := op[0]; got != toFixedP(15, -10) {
		t.Errorf("unexpected reflected control point %v", got)
	}
}

func TestCompileArc(t *testing.T) {
	p := compile(t, "M0 0 A5 5 0 0 1 10 0")
	if len(p) < 2 {
		t.Fatalf("expected arc segments, got %d operations", len(p))
	}
	if _, ok := p[0].(MoveTo); !ok {
		t.Fatalf("expected MoveTo first, got %T", p[0])
	}
	// the arc is approximated by cubics ending exactly at (10, 0)
	last, ok := p[len(p)-1].(CubicTo)
	if !ok {
		t.Fatalf("expected a trailing cubic, got %T", p[len(p)-1])
	}
	if last[2] != toFixedP(10, 0) {
		t.Errorf("arc endpoint %v, want (10, 0)", last[2])
	}
}

func TestCompileErrors(t *testing.T) {
	var c pathCursor
	if err := c.compilePath("M10"); err == nil {
		t.Error("expected a param mismatch for M10")
	}
	c = pathCursor{}
	if err := c.compilePath("M0 0 X5"); err == nil {
		t.Error("expected an unknown command error")
	}
}

func comparePaths(t *testing.T, got, want Path) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d operations (%s), want %d (%s)", len(got), got, len(want), want)
	}
	for i := range got {
		if !sameOp(got[i], want[i]) {
			t.Errorf("operation %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func sameOp(a, b Operation) bool {
	switch a := a.(type) {
	case MoveTo:
		b, ok := b.(MoveTo)
		return ok && a == b
	case LineTo:
		b, ok := b.(LineTo)
		return ok && a == b
	case QuadTo:
		b, ok := b.(QuadTo)
		return ok && a == b
	case CubicTo:
		b, ok := b.(CubicTo)
		return ok && a == b
	case Close:
		_, ok := b.(Close)
		return ok
	}
	return false
}

func TestEllipseAt(t *testing.T) {
	var c pathCursor
	c.ellipseAt(10, 10, 5, 5)
	if len(c.path) < 3 {
		t.Fatalf("expected a closed ellipse, got %d operations", len(c.path))
	}
	if _, ok := c.path[len(c.path)-1].(Close); !ok {
		t.Errorf("expected the ellipse to close, got %T", c.path[len(c.path)-1])
	}
	start, ok := c.path[0].(MoveTo)
	if !ok {
		t.Fatalf("expected MoveTo first, got %T", c.path[0])
	}
	if fixed.Point26_6(start) != toFixedP(15, 10) {
		t.Errorf("ellipse start %v, want (15, 10)", start)
	}
}
