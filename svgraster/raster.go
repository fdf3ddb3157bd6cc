// Package svgraster implements a raster backend to render SVG
// documents, by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/diagramagic/svgkit/svgdom"
)

var _ svgdom.ImageDriver = (*Renderer)(nil) // assert interface conformance

// Renderer paints a document onto an RGBA image. It is bound to one
// target and is not safe for concurrent use.
type Renderer struct {
	img    *image.RGBA
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instances
}

// NewRenderer returns a renderer drawing into img.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(img *image.RGBA) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Renderer{
		img:    img,
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
	}
}

// Render rasterizes the already-resolved document into img, whose
// bounds must not be empty. The document target must have been set to
// the image size first.
func Render(doc *svgdom.Document, img *image.RGBA) error {
	if img.Bounds().Empty() {
		return errors.New("empty raster target")
	}
	doc.Draw(NewRenderer(img), 1.0)
	return nil
}

// SetupDrawers implements svgdom.Driver. The fill and stroke painters
// share one scanner, which is safe because the driver contract fills
// before it strokes.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgdom.Filler, svgdom.Stroker) {
	var f svgdom.Filler
	var s svgdom.Stroker
	if willFill {
		f = fillDrawer{rd}
	}
	if willStroke {
		s = strokeDrawer{rd}
	}
	return f, s
}

func toRasterxGradient(grad *svgdom.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgdom.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case svgdom.Radial:
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, s := range grad.Stops {
		stops[i] = rasterx.GradStop{StopColor: s.StopColor, Offset: s.Offset, Opacity: s.Opacity}
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   grad.Bounds,
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// setColorFromPattern resolves the pattern to a scanner color,
// turning gradients into color functions.
func setColorFromPattern(pattern svgdom.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := pattern.(type) {
	case svgdom.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case svgdom.CurrentColor:
		scanner.SetColor(rasterx.ApplyOpacity(svgdom.NewPlainColor(0, 0, 0, 0xff), opacity))
	case *svgdom.Gradient:
		if fillerColor.Units == svgdom.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			fillerColor.ApplyPathExtent(mnx, mny, mxx, mxy)
		}
		rasterxGradient := toRasterxGradient(fillerColor)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdom.Round:     rasterx.Round,
		svgdom.Bevel:     rasterx.Bevel,
		svgdom.Miter:     rasterx.Miter,
		svgdom.MiterClip: rasterx.MiterClip,
		svgdom.Arc:       rasterx.Arc,
		svgdom.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdom.NilCap:       rasterx.ButtCap,
		svgdom.ButtCap:      rasterx.ButtCap,
		svgdom.SquareCap:    rasterx.SquareCap,
		svgdom.RoundCap:     rasterx.RoundCap,
		svgdom.CubicCap:     rasterx.CubicCap,
		svgdom.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgdom.NilGap:       rasterx.FlatGap,
		svgdom.FlatGap:      rasterx.FlatGap,
		svgdom.RoundGap:     rasterx.RoundGap,
		svgdom.CubicGap:     rasterx.CubicGap,
		svgdom.QuadraticGap: rasterx.QuadraticGap,
	}
)

// fillDrawer adapts the rasterx filler to the driver contract.
type fillDrawer struct{ rd *Renderer }

func (f fillDrawer) Clear()                             { f.rd.filler.Clear() }
func (f fillDrawer) Start(a fixed.Point26_6)            { f.rd.filler.Start(a) }
func (f fillDrawer) Line(b fixed.Point26_6)             { f.rd.filler.Line(b) }
func (f fillDrawer) QuadBezier(b, c fixed.Point26_6)    { f.rd.filler.QuadBezier(b, c) }
func (f fillDrawer) CubeBezier(b, c, d fixed.Point26_6) { f.rd.filler.CubeBezier(b, c, d) }
func (f fillDrawer) Stop(closeLoop bool)                { f.rd.filler.Stop(closeLoop) }
func (f fillDrawer) Draw()                              { f.rd.filler.Draw() }
func (f fillDrawer) SetWinding(useNonZeroWinding bool)  { f.rd.filler.SetWinding(useNonZeroWinding) }

func (f fillDrawer) SetColor(c svgdom.Pattern, opacity float64) {
	setColorFromPattern(c, opacity, f.rd.filler.Scanner)
}

// strokeDrawer adapts the rasterx dasher to the driver contract.
type strokeDrawer struct{ rd *Renderer }

func (s strokeDrawer) Clear()                             { s.rd.dasher.Clear() }
func (s strokeDrawer) Start(a fixed.Point26_6)            { s.rd.dasher.Start(a) }
func (s strokeDrawer) Line(b fixed.Point26_6)             { s.rd.dasher.Line(b) }
func (s strokeDrawer) QuadBezier(b, c fixed.Point26_6)    { s.rd.dasher.QuadBezier(b, c) }
func (s strokeDrawer) CubeBezier(b, c, d fixed.Point26_6) { s.rd.dasher.CubeBezier(b, c, d) }
func (s strokeDrawer) Stop(closeLoop bool)                { s.rd.dasher.Stop(closeLoop) }
func (s strokeDrawer) Draw()                              { s.rd.dasher.Draw() }

func (s strokeDrawer) SetColor(c svgdom.Pattern, opacity float64) {
	setColorFromPattern(c, opacity, s.rd.dasher.Scanner)
}

func (s strokeDrawer) SetStrokeOptions(options svgdom.StrokeOptions) {
	s.rd.dasher.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// DrawImage composites an image element onto the target, scaling from
// the source pixels to the transformed placement rectangle.
func (rd *Renderer) DrawImage(data *svgdom.ImageData, M svgdom.Matrix2D, opacity float64) {
	sb := data.Image.Bounds()
	if sb.Empty() || data.Rect.W <= 0 || data.Rect.H <= 0 {
		return
	}
	// compose: source pixel -> placement rect -> device
	m := M.Translate(data.Rect.X, data.Rect.Y).
		Scale(data.Rect.W/float64(sb.Dx()), data.Rect.H/float64(sb.Dy()))
	aff := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}

	var opts *draw.Options
	if opacity < 1 {
		if opacity < 0 {
			opacity = 0
		}
		opts = &draw.Options{
			SrcMask: image.NewUniform(color.Alpha16{A: uint16(opacity * 0xffff)}),
		}
	}
	draw.ApproxBiLinear.Transform(rd.img, aff, data.Image, sb, draw.Over, opts)
}
