package svgkit

import (
	"strings"

	"github.com/diagramagic/svgkit/svgdom"
	"github.com/diagramagic/svgkit/svgfont"
	"github.com/diagramagic/svgkit/svgtext"
)

// Measure parses the markup, resolves text to concrete geometry, and
// returns the bounding box of every geometry-bearing node plus their
// union. Font files that fail to load are reported through the logger
// and skipped; they never fail the call.
func Measure(svgText string, fontPaths []string) (*MeasurementReport, error) {
	doc, err := loadDocument(svgText, fontPaths)
	if err != nil {
		return nil, err
	}

	report := &MeasurementReport{}
	doc.Walk(func(index int, n *svgdom.Node) {
		extent, ok := n.BBox(svgdom.Identity)
		if !ok {
			return
		}
		bbox := Bounds{Left: extent.MinX, Top: extent.MinY, Right: extent.MaxX, Bottom: extent.MaxY}
		report.Nodes = append(report.Nodes, NodeDescriptor{
			Index: index,
			ID:    n.ID,
			Kind:  n.Kind.String(),
			BBox:  bbox,
		})
		if report.Overall == nil {
			overall := bbox
			report.Overall = &overall
		} else {
			*report.Overall = report.Overall.Union(bbox)
		}
	})
	return report, nil
}

// loadDocument runs the shared front half of Measure and Render:
// build a font catalog, parse, lay out text.
func loadDocument(svgText string, fontPaths []string) (*svgdom.Document, *Error) {
	catalog, outcomes := svgfont.Build(fontPaths)
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			logger().Warn("skipping font file", "path", outcome.Path, "err", outcome.Err)
		}
	}

	doc, err := svgdom.Parse(strings.NewReader(svgText))
	if err != nil {
		return nil, parseError(err)
	}
	svgtext.Convert(doc, catalog)
	return doc, nil
}
