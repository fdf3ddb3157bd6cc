// Package svgdom parses SVG markup into an abstract document tree.
// Each node keeps its source identifier, its geometric kind and its
// resolved path geometry, so that the tree can be measured (see the
// bounding box helpers) or painted through an abstract Driver
// (see for example svgkit/svgraster).
package svgdom

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// NodeKind tags the geometric category of a node.
type NodeKind uint8

const (
	KindGroup NodeKind = iota
	KindPath
	KindImage
	KindText
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindPath:
		return "path"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "<unknown NodeKind>"
	}
}

// Rect is an axis-aligned rectangle, such as a viewport.
type Rect struct{ X, Y, W, H float64 }

// Node is one element of the parsed document tree.
// Group nodes carry children; path and text nodes carry path geometry;
// image nodes carry a decoded raster and its placement rectangle.
type Node struct {
	Kind  NodeKind
	ID    string
	Style PathStyle

	Path     Path      // geometry for path and resolved text nodes
	Text     *TextSpec // pending layout input for text nodes
	Image    *ImageData
	Children []*Node // only for group nodes
}

// TextAnchor positions a text run relative to its x coordinate.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextSpec holds the layout input of a text node, before the text
// has been converted to path geometry.
type TextSpec struct {
	X, Y    float64
	Size    float64
	Family  string
	Bold    bool
	Italic  bool
	Anchor  TextAnchor
	Content string
}

// Document holds a parsed SVG file.
type Document struct {
	ViewBox      Rect // intrinsic size; width/height attributes fold in when no viewBox is given
	Titles       []string
	Descriptions []string
	Root         *Node
	Transform    Matrix2D

	grads map[string]*Gradient
	defs  map[string][]definition
}

// IntrinsicSize returns the document's natural width and height in
// document units, zero when the markup resolves neither.
func (doc *Document) IntrinsicSize() (w, h float64) {
	return doc.ViewBox.W, doc.ViewBox.H
}

// Walk enumerates every node of the tree in document order (depth
// first, pre-order, root included), assigning each a zero-based
// ordinal index.
func (doc *Document) Walk(visit func(index int, n *Node)) {
	idx := 0
	var rec func(n *Node)
	rec = func(n *Node) {
		visit(idx, n)
		idx++
		for _, child := range n.Children {
			rec(child)
		}
	}
	rec(doc.Root)
}

// SetTarget sets the Transform matrix to draw within the bounds of the
// rectangle arguments, in device units.
func (doc *Document) SetTarget(x, y, w, h float64) {
	scaleW := w / doc.ViewBox.W
	scaleH := h / doc.ViewBox.H
	doc.Transform = Identity.Translate(x, y).Scale(scaleW, scaleH).
		Translate(-doc.ViewBox.X, -doc.ViewBox.Y)
}

// Parse reads SVG markup into a Document. Unknown elements are
// skipped with a diagnostic; malformed XML, or markup without an svg
// root element, is an error.
func Parse(stream io.Reader) (*Document, error) {
	doc := &Document{
		Root:      &Node{Kind: KindGroup},
		Transform: Identity,
		grads:     make(map[string]*Gradient),
		defs:      make(map[string][]definition),
	}
	cursor := &svgCursor{doc: doc, styleStack: []PathStyle{DefaultStyle}, nodeStack: []*Node{doc.Root}}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenSVG := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenSVG {
					return nil, errors.New("missing svg root element")
				}
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if se.Name.Local == "svg" {
				seenSVG = true
			}
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			if err := cursor.pushStyle(se.Attr); err != nil {
				return nil, err
			}
			if err := cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			cursor.readEndElement(se)
		case xml.CharData:
			cursor.readCharData(se)
		}
	}
	return doc, nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}
