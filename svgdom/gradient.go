package svgdom

import (
	"encoding/xml"
	"image/color"
	"strings"
)

// Gradient parsing and resolution. The geometry of a gradient is
// stored unresolved; paint backends translate it to their own
// representation at draw time.

// SpreadMethod tells how a gradient repeats past its edges.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradientUnits sets the coordinate space of the gradient geometry.
type GradientUnits uint8

const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// GradStop is one color stop of a gradient.
type GradStop struct {
	StopColor color.NRGBA
	Offset    float64
	Opacity   float64
}

// Direction is the geometry of a gradient: either Linear or Radial.
type Direction interface {
	isDirection()
}

// Linear is a linear gradient direction, x1, y1, x2, y2.
type Linear [4]float64

// Radial is a radial gradient direction, cx, cy, fx, fy, r, fr.
type Radial [6]float64

func (Linear) isDirection() {}
func (Radial) isDirection() {}

// Gradient holds a parsed linear or radial gradient.
type Gradient struct {
	Direction Direction
	Stops     []GradStop
	Bounds    Rect
	Matrix    Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

// ApplyPathExtent resolves bounding-box relative units against the
// extent of the shape being painted, given in fixed point.
func (g *Gradient) ApplyPathExtent(x0, y0, x1, y1 float64) {
	if g.Units == UserSpaceOnUse {
		return
	}
	g.Bounds = Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// readGradURL checks for the url(#id) form and resolves it against the
// gradients seen so far. The boolean result reports whether v was a
// url() reference at all; a dangling reference yields a nil gradient,
// which keeps the previous pattern.
func (c *svgCursor) readGradURL(v string) (grad *Gradient, ok bool) {
	if strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")") {
		ok = true
		urlStr := strings.TrimSpace(v[4 : len(v)-1])
		if strings.HasPrefix(urlStr, "#") {
			if g, found := c.doc.grads[urlStr[1:]]; found {
				// copy, so that the resolved bounds of one shape
				// do not leak into the next
				gCopy := *g
				grad = &gCopy
			}
		}
	}
	return
}

// readGradAttr reads the gradient attributes shared by linear and
// radial gradients.
func (c *svgCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(attr.Value)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.Units = UserSpaceOnUse
		case "objectBoundingBox":
			c.grad.Units = ObjectBoundingBox
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "pad":
			c.grad.Spread = PadSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "repeat":
			c.grad.Spread = RepeatSpread
		}
	}
	return
}
