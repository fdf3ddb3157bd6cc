package svgkit

import "math"

// Bounds is an axis-aligned bounding box in document units.
// Right >= Left and Bottom >= Top always hold for bounds produced by
// this package.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Union returns the smallest bounds covering both operands.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Width returns the horizontal size.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical size.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }
