package svgkit

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"
)

const squareSVG = `<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`

func decodePNG(t *testing.T, data []byte) (w, h int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRenderBasic(t *testing.T) {
	data, err := Render(squareSVG, 1.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := decodePNG(t, data); w != 10 || h != 10 {
		t.Errorf("expected a 10x10 image, got %dx%d", w, h)
	}
}

func TestRenderScale(t *testing.T) {
	for _, tc := range []struct {
		scale float64
		w, h  int
	}{
		{2.0, 20, 20},
		{0.5, 5, 5},
		{0.26, 3, 3}, // 2.6 rounds up
	} {
		data, err := Render(squareSVG, tc.scale, nil)
		if err != nil {
			t.Fatalf("scale %g: %v", tc.scale, err)
		}
		if w, h := decodePNG(t, data); w != tc.w || h != tc.h {
			t.Errorf("scale %g: expected %dx%d, got %dx%d", tc.scale, tc.w, tc.h, w, h)
		}
	}
}

func TestRenderInvalidScale(t *testing.T) {
	for _, scale := range []float64{0, -2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Render(squareSVG, scale, nil)
		var kerr *Error
		if !errors.As(err, &kerr) || kerr.Kind != InvalidScale {
			t.Fatalf("scale %v: expected InvalidScale, got %v", scale, err)
		}
	}
	_, err := Render(squareSVG, -2, nil)
	if got := err.Error(); got != "invalid scale: -2 (must be > 0)" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRenderMissingSize(t *testing.T) {
	for _, markup := range []string{
		`<svg/>`,
		`<svg width="0" height="0"/>`,
		`<svg viewBox="0 0 0 100"/>`,
	} {
		_, err := Render(markup, 1.0, nil)
		var kerr *Error
		if !errors.As(err, &kerr) || kerr.Kind != MissingSize {
			t.Fatalf("%s: expected MissingSize, got %v", markup, err)
		}
	}
	// a valid size shrunk below one pixel is also unusable
	_, err := Render(squareSVG, 0.001, nil)
	var kerr *Error
	if !errors.As(err, &kerr) || kerr.Kind != MissingSize {
		t.Fatalf("expected MissingSize for a sub-pixel result, got %v", err)
	}
}

func TestRenderSurfaceAlloc(t *testing.T) {
	_, err := Render(`<svg viewBox="0 0 100000 100000"/>`, 1.0, nil)
	var kerr *Error
	if !errors.As(err, &kerr) || kerr.Kind != SurfaceAlloc {
		t.Fatalf("expected SurfaceAlloc, got %v", err)
	}
}

func TestRenderParseError(t *testing.T) {
	_, err := Render("<<<", 1.0, nil)
	var kerr *Error
	if !errors.As(err, &kerr) || kerr.Kind != ParseError {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRenderPixels(t *testing.T) {
	data, err := Render(squareSVG, 1.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(5, 5).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("center pixel = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}
}

func TestRenderDeterministic(t *testing.T) {
	first, err := Render(shapesSVG, 2.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Render(shapesSVG, 2.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated renders must produce identical bytes")
	}
}

func TestRenderBadFontPathIsNotFatal(t *testing.T) {
	if _, err := Render(squareSVG, 1.0, []string{"/no/such/font.ttf"}); err != nil {
		t.Fatalf("a missing font must not fail the call: %v", err)
	}
}

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Error("version must not be empty")
	}
}
