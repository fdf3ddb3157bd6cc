package svgdom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Computes the extent of path geometry, needed to measure documents
// and to resolve gradients with objectBoundingBox units. Curves are
// bounded exactly, through the roots of their derivatives, not by
// their control polygons.

// Extent is an axis-aligned bounding box in document coordinates.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

func newExtent() Extent {
	return Extent{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

func (e *Extent) add(x, y float64) {
	e.MinX = math.Min(e.MinX, x)
	e.MinY = math.Min(e.MinY, y)
	e.MaxX = math.Max(e.MaxX, x)
	e.MaxY = math.Max(e.MaxY, y)
}

// Union extends e to cover other.
func (e *Extent) Union(other Extent) {
	e.add(other.MinX, other.MinY)
	e.add(other.MaxX, other.MaxY)
}

// valid reports whether at least one point contributed.
func (e Extent) valid() bool {
	return e.MinX <= e.MaxX && e.MinY <= e.MaxY
}

func fixedTof(p fixed.Point26_6) (float64, float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// the derivative of the cubic polinomial, taken as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// aX^2 + bX + c well then this is a simple line
		// x = -c / b
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// extentAdder accumulates transformed path geometry into an extent.
type extentAdder struct {
	M       Matrix2D
	extent  Extent
	ax, ay  float64 // current point, already transformed
	started bool
}

func (b *extentAdder) point(p fixed.Point26_6) (float64, float64) {
	x, y := fixedTof(p)
	return b.M.Transform(x, y)
}

func (b *extentAdder) Start(a fixed.Point26_6) {
	b.ax, b.ay = b.point(a)
	b.extent.add(b.ax, b.ay)
	b.started = true
}

func (b *extentAdder) Line(p fixed.Point26_6) {
	b.ax, b.ay = b.point(p)
	b.extent.add(b.ax, b.ay)
}

// QuadBezier bounds the curve through the root of its derivative on
// each axis. An affine transform commutes with the Bezier evaluation,
// so transforming the control points first is exact.
func (b *extentAdder) QuadBezier(c, d fixed.Point26_6) {
	p0x, p0y := b.ax, b.ay
	p1x, p1y := b.point(c)
	p2x, p2y := b.point(d)

	b.extent.add(p2x, p2y)
	aX, bX := quadraticDerivative(p0x, p1x, p2x)
	for _, t := range linearRoots(aX, bX) {
		if 0 < t && t < 1 {
			b.extent.add(bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t))
		}
	}
	aY, bY := quadraticDerivative(p0y, p1y, p2y)
	for _, t := range linearRoots(aY, bY) {
		if 0 < t && t < 1 {
			b.extent.add(bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t))
		}
	}
	b.ax, b.ay = p2x, p2y
}

func (b *extentAdder) CubeBezier(c, d, e fixed.Point26_6) {
	p0x, p0y := b.ax, b.ay
	p1x, p1y := b.point(c)
	p2x, p2y := b.point(d)
	p3x, p3y := b.point(e)

	b.extent.add(p3x, p3y)
	aX, bX, cX := cubicDerivative(p0x, p1x, p2x, p3x)
	for _, t := range quadraticRoots(aX, bX, cX) {
		if 0 < t && t < 1 {
			b.extent.add(bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t))
		}
	}
	aY, bY, cY := cubicDerivative(p0y, p1y, p2y, p3y)
	for _, t := range quadraticRoots(aY, bY, cY) {
		if 0 < t && t < 1 {
			b.extent.add(bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t))
		}
	}
	b.ax, b.ay = p3x, p3y
}

func (b *extentAdder) Stop(bool) {}

// BBox returns the extent of the node geometry under the given outer
// transform, composed with the node's own cumulative transform. The
// boolean result is false for groups and for nodes without geometry.
// Stroke widths do not widen the extent.
func (n *Node) BBox(outer Matrix2D) (Extent, bool) {
	M := outer.Mult(n.Style.transform)
	switch n.Kind {
	case KindImage:
		if n.Image == nil {
			return Extent{}, false
		}
		e := newExtent()
		r := n.Image.Rect
		for _, pt := range [4][2]float64{
			{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H},
		} {
			x, y := M.Transform(pt[0], pt[1])
			e.add(x, y)
		}
		return e, true
	case KindPath, KindText:
		if len(n.Path) == 0 {
			return Extent{}, false
		}
		adder := extentAdder{M: M, extent: newExtent()}
		for _, op := range n.Path {
			switch op := op.(type) {
			case MoveTo:
				adder.Start(fixed.Point26_6(op))
			case LineTo:
				adder.Line(fixed.Point26_6(op))
			case QuadTo:
				adder.QuadBezier(op[0], op[1])
			case CubicTo:
				adder.CubeBezier(op[0], op[1], op[2])
			case Close:
				adder.Stop(true)
			}
		}
		if !adder.extent.valid() {
			return Extent{}, false
		}
		return adder.extent, true
	default: // groups carry no geometry of their own
		return Extent{}, false
	}
}
