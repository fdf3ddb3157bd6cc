package svgkit

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/diagramagic/svgkit/svgraster"
)

// maxSurfaceBytes bounds the RGBA buffer so that the pixel count
// stays addressable on 32 bit targets.
const maxSurfaceBytes = math.MaxInt32

// Render parses the markup and rasterizes it to a PNG at the given
// uniform scale. The pixel size is the rounded intrinsic size times
// the scale, and must come to at least one pixel on each axis.
func Render(svgText string, scale float64, fontPaths []string) ([]byte, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return nil, invalidScale(scale)
	}

	doc, lerr := loadDocument(svgText, fontPaths)
	if lerr != nil {
		return nil, lerr
	}

	w, h := doc.IntrinsicSize()
	if w <= 0 || h <= 0 {
		return nil, missingSize()
	}
	pw := int(math.Round(w * scale))
	ph := int(math.Round(h * scale))
	if pw < 1 || ph < 1 {
		return nil, missingSize()
	}
	if int64(pw)*int64(ph) > maxSurfaceBytes/4 {
		return nil, surfaceAlloc()
	}

	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	doc.SetTarget(0, 0, float64(pw), float64(ph))
	if err := svgraster.Render(doc, img); err != nil {
		return nil, missingSize()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, encodePng(err)
	}
	return buf.Bytes(), nil
}
