// Package svgfont resolves the font faces used to lay out text
// elements. It wraps a fontscan font map populated from the system
// fonts, explicitly supplied font files and an embedded fallback, so
// that text always shapes to something.
package svgfont

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/gofont/goregular"
)

// fallbackFamily is the family name registered for the embedded face.
const fallbackFamily = "sans-serif"

// LoadOutcome reports the result of loading one supplied font file.
// A nil Err means the file was registered.
type LoadOutcome struct {
	Path string
	Err  error
}

// Catalog holds the fonts available to one layout pass. It is not
// safe for concurrent use; build one per call.
type Catalog struct {
	fm *fontscan.FontMap
}

// Build assembles a catalog from the system fonts plus the given font
// files. Failures are collected per file and never abort the build;
// the embedded fallback face guarantees a non-empty catalog.
func Build(fontPaths []string) (*Catalog, []LoadOutcome) {
	fm := fontscan.NewFontMap(slog.NewLogLogger(logger().Handler(), slog.LevelDebug))

	cacheDir := filepath.Join(os.TempDir(), "svgkit-fontcache")
	if err := fm.UseSystemFonts(cacheDir); err != nil {
		logger().Warn("system fonts unavailable", "err", err)
	}

	if err := fm.AddFont(bytes.NewReader(goregular.TTF), "goregular", fallbackFamily); err != nil {
		// the embedded face is known good, failing to parse it is a bug
		logger().Warn("embedded fallback font rejected", "err", err)
	}

	outcomes := make([]LoadOutcome, 0, len(fontPaths))
	for _, path := range fontPaths {
		outcomes = append(outcomes, LoadOutcome{Path: path, Err: addFontFile(fm, path)})
	}
	return &Catalog{fm: fm}, outcomes
}

func addFontFile(fm *fontscan.FontMap, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := fm.AddFont(bytes.NewReader(data), path, ""); err != nil {
		return fmt.Errorf("unusable font file %s: %w", path, err)
	}
	return nil
}

// ResolveFace returns the face to shape the given rune with,
// preferring the requested family and aspect and falling back through
// the catalog. The result is never nil.
func (c *Catalog) ResolveFace(family string, bold, italic bool, r rune) *font.Face {
	aspect := font.Aspect{Style: font.StyleNormal, Weight: font.WeightNormal}
	if bold {
		aspect.Weight = font.WeightBold
	}
	if italic {
		aspect.Style = font.StyleItalic
	}
	c.fm.SetQuery(fontscan.Query{
		Families: []string{family, fallbackFamily},
		Aspect:   aspect,
	})
	return c.fm.ResolveFace(r)
}
