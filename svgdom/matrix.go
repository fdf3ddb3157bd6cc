package svgdom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is an affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// The field layout matches rasterx.Matrix2D so that paint backends can
// convert by a plain type conversion.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a times b. The composed transform applies b to a point
// first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate postmultiplies a translation.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale postmultiplies a scale.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate postmultiplies a rotation by theta radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX postmultiplies a skew along the x axis by theta radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY postmultiplies a skew along the y axis by theta radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Transform applies the matrix to the point (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TFixed applies the matrix to a fixed point.
func (a Matrix2D) TFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := float64(p.X)/64, float64(p.Y)/64
	tx, ty := a.Transform(x, y)
	return toFixedP(tx, ty)
}

// scaleFactor reports the uniform length scaling of the matrix,
// used to scale stroke widths along with the geometry.
func (a Matrix2D) scaleFactor() float64 {
	return math.Sqrt(math.Abs(a.A*a.D - a.B*a.C))
}

func (a Matrix2D) trMove(op MoveTo) fixed.Point26_6 {
	return a.TFixed(fixed.Point26_6(op))
}

func (a Matrix2D) trLine(op LineTo) fixed.Point26_6 {
	return a.TFixed(fixed.Point26_6(op))
}

func (a Matrix2D) trQuad(op QuadTo) (fixed.Point26_6, fixed.Point26_6) {
	return a.TFixed(op[0]), a.TFixed(op[1])
}

func (a Matrix2D) trCubic(op CubicTo) (fixed.Point26_6, fixed.Point26_6, fixed.Point26_6) {
	return a.TFixed(op[0]), a.TFixed(op[1]), a.TFixed(op[2])
}
