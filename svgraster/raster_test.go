package svgraster

import (
	"image"
	"strings"
	"testing"

	"github.com/diagramagic/svgkit/svgdom"
)

func renderString(t *testing.T, markup string, w, h int) *image.RGBA {
	t.Helper()
	doc, err := svgdom.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	doc.SetTarget(0, 0, float64(w), float64(h))
	if err := Render(doc, img); err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRenderEmptyTarget(t *testing.T) {
	doc, err := svgdom.Parse(strings.NewReader(`<svg viewBox="0 0 10 10"/>`))
	if err != nil {
		t.Fatal(err)
	}
	if err := Render(doc, image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected an error for an empty target")
	}
}

func TestRenderFill(t *testing.T) {
	img := renderString(t, `<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`, 10, 10)
	r, g, b, a := img.At(5, 5).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("center pixel = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}
}

func TestRenderScaledTarget(t *testing.T) {
	// the same document drawn on a doubled target covers the
	// corresponding pixels
	img := renderString(t, `<svg viewBox="0 0 10 10"><rect x="2" y="2" width="6" height="6" fill="#0000ff"/></svg>`, 20, 20)
	if _, _, b, _ := img.At(10, 10).RGBA(); b != 0xffff {
		t.Error("expected the rect to cover the scaled center")
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Error("expected the scaled margin to stay empty")
	}
}

func TestRenderStroke(t *testing.T) {
	img := renderString(t, `<svg viewBox="0 0 10 10">
		<line x1="0" y1="5" x2="10" y2="5" stroke="#000000" stroke-width="2"/>
	</svg>`, 10, 10)
	if _, _, _, a := img.At(5, 5).RGBA(); a == 0 {
		t.Error("expected the stroke to cover the center")
	}
	if _, _, _, a := img.At(5, 1).RGBA(); a != 0 {
		t.Error("expected pixels away from the stroke to stay empty")
	}
}

func TestRenderGradient(t *testing.T) {
	img := renderString(t, `<svg viewBox="0 0 10 10">
		<defs>
			<linearGradient id="fade" x1="0" y1="0" x2="1" y2="0">
				<stop offset="0" stop-color="#ff0000"/>
				<stop offset="1" stop-color="#0000ff"/>
			</linearGradient>
		</defs>
		<rect width="10" height="10" fill="url(#fade)"/>
	</svg>`, 10, 10)

	r0, _, b0, a0 := img.At(1, 5).RGBA()
	r1, _, b1, a1 := img.At(8, 5).RGBA()
	if a0 == 0 || a1 == 0 {
		t.Fatal("expected the gradient to paint the rect")
	}
	if !(r0 > b0 && b1 > r1) {
		t.Errorf("expected red to fade into blue, got left (%d, %d) right (%d, %d)", r0, b0, r1, b1)
	}
}

func TestRenderImageElement(t *testing.T) {
	// 1x1 red png
	const redDot = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="
	img := renderString(t, `<svg viewBox="0 0 10 10">
		<image x="0" y="0" width="10" height="10" href="`+redDot+`"/>
	</svg>`, 10, 10)
	if _, _, _, a := img.At(5, 5).RGBA(); a == 0 {
		t.Error("expected the image to cover the center")
	}
}
