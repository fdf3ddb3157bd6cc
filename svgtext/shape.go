// Package svgtext lays out the text elements of a parsed document,
// replacing each pending text run by its glyph outlines. Shaping goes
// through HarfBuzz so that kerning and ligatures match what a browser
// would produce with the same fonts.
package svgtext

import (
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/diagramagic/svgkit/svgdom"
	"github.com/diagramagic/svgkit/svgfont"
)

// Convert replaces the text content of every text node in the
// document by path geometry, resolving faces against the catalog.
// Nodes whose content collapses to nothing are left without geometry.
func Convert(doc *svgdom.Document, catalog *svgfont.Catalog) {
	var shaper shaping.HarfbuzzShaper
	doc.Walk(func(_ int, n *svgdom.Node) {
		if n.Kind != svgdom.KindText || n.Text == nil {
			return
		}
		n.Path = shapeRun(&shaper, catalog, n.Text)
	})
}

// collapseWhitespace folds runs of whitespace into single spaces, the
// default xml:space handling.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func shapeRun(shaper *shaping.HarfbuzzShaper, catalog *svgfont.Catalog, spec *svgdom.TextSpec) svgdom.Path {
	content := collapseWhitespace(spec.Content)
	if content == "" {
		return nil
	}
	runes := []rune(content)

	face := catalog.ResolveFace(spec.Family, spec.Bold, spec.Italic, runes[0])
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(spec.Size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	penX := spec.X + anchorShift(spec.Anchor, fixedToFloat(out.Advance))
	baseline := spec.Y

	var path svgdom.Path
	for _, g := range out.Glyphs {
		x := penX + fixedToFloat(g.XOffset)
		y := baseline - fixedToFloat(g.YOffset)
		appendGlyphOutline(&path, face, g.GlyphID, spec.Size, x, y)
		penX += fixedToFloat(g.XAdvance)
	}
	return path
}

func anchorShift(anchor svgdom.TextAnchor, advance float64) float64 {
	switch anchor {
	case svgdom.AnchorMiddle:
		return -advance / 2
	case svgdom.AnchorEnd:
		return -advance
	default:
		return 0
	}
}

// appendGlyphOutline scales the glyph outline from font units onto the
// baseline and appends it to the path. Fonts use a y-up coordinate
// system, documents y-down, hence the flipped y axis.
func appendGlyphOutline(path *svgdom.Path, face *font.Face, gid font.GID, size, dx, dy float64) {
	data := face.GlyphData(gid)
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		return // bitmap or svg glyph, nothing to trace
	}
	scale := size / float64(face.Upem())
	pt := func(p font.SegmentPoint) fixed.Point26_6 {
		return fixed.Point26_6{
			X: fixed.Int26_6((dx + float64(p.X)*scale) * 64),
			Y: fixed.Int26_6((dy - float64(p.Y)*scale) * 64),
		}
	}
	started := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if started {
				path.Stop(true)
			}
			path.Start(pt(seg.Args[0]))
			started = true
		case ot.SegmentOpLineTo:
			path.Line(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			path.QuadBezier(pt(seg.Args[0]), pt(seg.Args[1]))
		case ot.SegmentOpCubeTo:
			path.CubeBezier(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if started {
		path.Stop(true)
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
