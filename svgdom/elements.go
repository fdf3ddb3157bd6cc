package svgdom

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"image"
	"strings"

	// decoders for raster content embedded in image elements
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/math/fixed"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["use"] = useF
}

// svgCursor is used while parsing SVG files
type svgCursor struct {
	pathCursor
	doc        *Document
	styleStack []PathStyle
	nodeStack  []*Node // open container elements; the top receives new children
	textNode   *Node   // text element being accumulated, if any

	grad                                    *Gradient
	inTitleText, inDescText, inGrad, inDefs bool
	currentDef                              []definition
}

// definition is used to store what's given in a def tag
type definition struct {
	ID, Tag string
	Attrs   []xml.Attr
}

// ImageData is the content of an image element: the decoded raster
// and the rectangle it covers, in document units.
type ImageData struct {
	Image image.Image
	Rect  Rect
}

func (c *svgCursor) currentStyle() PathStyle {
	return c.styleStack[len(c.styleStack)-1]
}

func (c *svgCursor) appendChild(n *Node) {
	parent := c.nodeStack[len(c.nodeStack)-1]
	parent.Children = append(parent.Children, n)
}

func attrID(attrs []xml.Attr) string {
	for _, attr := range attrs {
		if attr.Name.Local == "id" {
			return attr.Value
		}
	}
	return ""
}

// appendPathNode flushes the geometry accumulated on the path cursor
// into a new path node.
func (c *svgCursor) appendPathNode(attrs []xml.Attr) {
	pathCopy := append(Path{}, c.path...)
	c.appendChild(&Node{
		Kind:  KindPath,
		ID:    attrID(attrs),
		Style: c.currentStyle(),
		Path:  pathCopy,
	})
	c.path.Clear()
}

func (c *svgCursor) readStartElement(se xml.StartElement) (err error) {
	var skipDef bool
	if se.Name.Local == "radialGradient" || se.Name.Local == "linearGradient" || c.inGrad {
		skipDef = true
	}
	if c.inDefs && !skipDef {
		id := attrID(se.Attr)
		if id != "" && len(c.currentDef) > 0 {
			c.doc.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.currentDef = append(c.currentDef, definition{
			ID:    id,
			Tag:   se.Name.Local,
			Attrs: se.Attr,
		})
		return nil
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		logger().Debug("skipping unsupported svg element", "element", se.Name.Local)
		return nil
	}
	err = df(c, se.Attr)

	if len(c.path) > 0 {
		// the cursor parsed a path from the xml element
		c.appendPathNode(se.Attr)
	}
	return
}

func (c *svgCursor) readEndElement(se xml.EndElement) {
	// pop style
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
	switch se.Name.Local {
	case "g":
		if c.inDefs {
			c.currentDef = append(c.currentDef, definition{
				Tag: "endg",
			})
			return
		}
		if len(c.nodeStack) > 1 {
			c.nodeStack = c.nodeStack[:len(c.nodeStack)-1]
		}
	case "text":
		c.textNode = nil
	case "title":
		c.inTitleText = false
	case "desc":
		c.inDescText = false
	case "defs":
		if len(c.currentDef) > 0 {
			c.doc.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.inDefs = false
	case "radialGradient", "linearGradient":
		c.inGrad = false
	}
}

func (c *svgCursor) readCharData(se xml.CharData) {
	switch {
	case c.inTitleText:
		c.doc.Titles[len(c.doc.Titles)-1] += string(se)
	case c.inDescText:
		c.doc.Descriptions[len(c.doc.Descriptions)-1] += string(se)
	case c.textNode != nil:
		c.textNode.Text.Content += string(se)
	}
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseFloat(v, 64)
	f /= d
	return
}

type svgFunc func(c *svgCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            svgF,
	"g":              gF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        circleF, // circleF handles ellipse also
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"text":           textF,
	"tspan":          tspanF,
	"image":          imageF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
}

func svgF(c *svgCursor, attrs []xml.Attr) error {
	c.doc.ViewBox = Rect{}
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if len(c.points) != 4 {
				return errParamMismatch
			}
			c.doc.ViewBox.X = c.points[0]
			c.doc.ViewBox.Y = c.points[1]
			c.doc.ViewBox.W = c.points[2]
			c.doc.ViewBox.H = c.points[3]
		case "width":
			if !strings.HasSuffix(attr.Value, "%") {
				width, err = parseFloat(attr.Value, 64)
			}
		case "height":
			if !strings.HasSuffix(attr.Value, "%") {
				height, err = parseFloat(attr.Value, 64)
			}
		}
		if err != nil {
			return err
		}
	}
	if c.doc.ViewBox.W == 0 {
		c.doc.ViewBox.W = width
	}
	if c.doc.ViewBox.H == 0 {
		c.doc.ViewBox.H = height
	}
	c.viewBoxW, c.viewBoxH = c.doc.ViewBox.W, c.doc.ViewBox.H
	return nil
}

// g pushes the style and opens a new group node
func gF(c *svgCursor, attrs []xml.Attr) error {
	n := &Node{Kind: KindGroup, ID: attrID(attrs), Style: c.currentStyle()}
	c.appendChild(n)
	c.nodeStack = append(c.nodeStack, n)
	return nil
}

func rectF(c *svgCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseFloat(attr.Value, 64)
		case "y":
			y, err = parseFloat(attr.Value, 64)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			rx, err = parseFloat(attr.Value, 64)
		case "ry":
			ry, err = parseFloat(attr.Value, 64)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		return nil
	}
	c.path.addRoundRect(x+c.curX, y+c.curY, w+x+c.curX, h+y+c.curY, rx, ry, 0)
	return nil
}

func circleF(c *svgCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseFloat(attr.Value, 64)
		case "cy":
			cy, err = parseFloat(attr.Value, 64)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.ellipseAt(cx, cy, rx, ry)
	return nil
}

func lineF(c *svgCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = parseFloat(attr.Value, 64)
		case "x2":
			x2, err = parseFloat(attr.Value, 64)
		case "y1":
			y1, err = parseFloat(attr.Value, 64)
		case "y2":
			y2, err = parseFloat(attr.Value, 64)
		}
		if err != nil {
			return err
		}
	}
	c.path.Start(fixed.Point26_6{
		X: fixed.Int26_6((x1 + c.curX) * 64),
		Y: fixed.Int26_6((y1 + c.curY) * 64)})
	c.path.Line(fixed.Point26_6{
		X: fixed.Int26_6((x2 + c.curX) * 64),
		Y: fixed.Int26_6((y2 + c.curY) * 64)})
	return nil
}

func polylineF(c *svgCursor, attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "points":
			err = c.getPoints(attr.Value)
			if len(c.points)%2 != 0 {
				return errors.New("polygon has odd number of points")
			}
		}
		if err != nil {
			return err
		}
	}
	if len(c.points) > 4 {
		c.path.Start(fixed.Point26_6{
			X: fixed.Int26_6((c.points[0] + c.curX) * 64),
			Y: fixed.Int26_6((c.points[1] + c.curY) * 64)})
		for i := 2; i < len(c.points)-1; i += 2 {
			c.path.Line(fixed.Point26_6{
				X: fixed.Int26_6((c.points[i] + c.curX) * 64),
				Y: fixed.Int26_6((c.points[i+1] + c.curY) * 64)})
		}
	}
	return nil
}

func polygonF(c *svgCursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if len(c.points) > 4 {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *svgCursor, attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "d":
			err = c.compilePath(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func textF(c *svgCursor, attrs []xml.Attr) error {
	var x, y float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseFloat(attr.Value, 64)
		case "y":
			y, err = parseFloat(attr.Value, 64)
		}
		if err != nil {
			return err
		}
	}
	style := c.currentStyle()
	n := &Node{
		Kind:  KindText,
		ID:    attrID(attrs),
		Style: style,
		Text: &TextSpec{
			X:      x + c.curX,
			Y:      y + c.curY,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Bold:   style.Bold,
			Italic: style.Italic,
			Anchor: style.Anchor,
		},
	}
	c.appendChild(n)
	c.textNode = n
	return nil
}

// tspan content folds into the enclosing text run; per-span
// positioning is not supported
func tspanF(c *svgCursor, attrs []xml.Attr) error { return nil }

func imageF(c *svgCursor, attrs []xml.Attr) error {
	var x, y, w, h float64
	var href string
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseFloat(attr.Value, 64)
		case "y":
			y, err = parseFloat(attr.Value, 64)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "href":
			href = attr.Value
		}
		if err != nil {
			return err
		}
	}
	img, err := decodeDataURI(href)
	if err != nil {
		logger().Debug("skipping image element", "reason", err)
		return nil
	}
	ib := img.Bounds()
	if w == 0 {
		w = float64(ib.Dx())
	}
	if h == 0 {
		h = float64(ib.Dy())
	}
	c.appendChild(&Node{
		Kind:  KindImage,
		ID:    attrID(attrs),
		Style: c.currentStyle(),
		Image: &ImageData{Image: img, Rect: Rect{X: x + c.curX, Y: y + c.curY, W: w, H: h}},
	})
	return nil
}

// decodeDataURI decodes a base64 data: reference into a raster image.
// External file and network references are not followed.
func decodeDataURI(href string) (image.Image, error) {
	if !strings.HasPrefix(href, "data:") {
		return nil, errors.New("image href is not a data URI")
	}
	idx := strings.Index(href, ";base64,")
	if idx == -1 {
		return nil, errors.New("image data URI is not base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(href[idx+len(";base64,"):])
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	return img, err
}

func descF(c *svgCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.doc.Descriptions = append(c.doc.Descriptions, "")
	return nil
}

func titleF(c *svgCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.doc.Titles = append(c.doc.Titles, "")
	return nil
}

func defsF(c *svgCursor, attrs []xml.Attr) error {
	c.inDefs = true
	return nil
}

func linearGradientF(c *svgCursor, attrs []xml.Attr) error {
	var err error
	c.inGrad = true
	direction := Linear{0, 0, 1, 0}
	c.grad = &Gradient{Direction: direction, Bounds: c.doc.ViewBox, Matrix: Identity}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.doc.grads[attr.Value] = c.grad
		case "x1":
			direction[0], err = readFraction(attr.Value)
		case "y1":
			direction[1], err = readFraction(attr.Value)
		case "x2":
			direction[2], err = readFraction(attr.Value)
		case "y2":
			direction[3], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	c.grad.Direction = direction
	return nil
}

func radialGradientF(c *svgCursor, attrs []xml.Attr) error {
	c.inGrad = true
	direction := Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	c.grad = &Gradient{Direction: direction, Bounds: c.doc.ViewBox, Matrix: Identity}
	var setFx, setFy bool
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.doc.grads[attr.Value] = c.grad
		case "cx":
			direction[0], err = readFraction(attr.Value)
		case "cy":
			direction[1], err = readFraction(attr.Value)
		case "fx":
			setFx = true
			direction[2], err = readFraction(attr.Value)
		case "fy":
			setFy = true
			direction[3], err = readFraction(attr.Value)
		case "r":
			direction[4], err = readFraction(attr.Value)
		case "fr":
			direction[5], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	if !setFx { // set fx to cx by default
		direction[2] = direction[0]
	}
	if !setFy { // set fy to cy by default
		direction[3] = direction[1]
	}
	c.grad.Direction = direction
	return nil
}

func stopF(c *svgCursor, attrs []xml.Attr) error {
	var err error
	if c.inGrad {
		stop := GradStop{Opacity: 1.0}
		for _, attr := range attrs {
			switch attr.Name.Local {
			case "offset":
				stop.Offset, err = readFraction(attr.Value)
			case "stop-color":
				var optColor optionalColor
				optColor, err = parseSVGColor(attr.Value)
				stop.StopColor = optColor.asColor()
			case "stop-opacity":
				stop.Opacity, err = parseFloat(attr.Value, 64)
			}
			if err != nil {
				return err
			}
		}
		c.grad.Stops = append(c.grad.Stops, stop)
	}
	return nil
}

func useF(c *svgCursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			href = attr.Value
		case "x":
			x, err = parseFloat(attr.Value, 64)
		case "y":
			y, err = parseFloat(attr.Value, 64)
		}
		if err != nil {
			return err
		}
	}
	c.curX, c.curY = x, y
	defer func() {
		c.curX, c.curY = 0, 0
	}()
	if href == "" {
		return errors.New("only use tags with href is supported")
	}
	if !strings.HasPrefix(href, "#") {
		return errors.New("only the ID CSS selector is supported")
	}
	defs, ok := c.doc.defs[href[1:]]
	if !ok {
		return errors.New("href ID in use statement was not found in saved defs")
	}
	for _, def := range defs {
		if def.Tag == "endg" {
			// pop style and close the group
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
			if len(c.nodeStack) > 1 {
				c.nodeStack = c.nodeStack[:len(c.nodeStack)-1]
			}
			continue
		}
		if err = c.pushStyle(def.Attrs); err != nil {
			return err
		}
		df, ok := drawFuncs[def.Tag]
		if !ok {
			logger().Debug("skipping unsupported svg element", "element", def.Tag)
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
			return nil
		}
		if err := df(c, def.Attrs); err != nil {
			return err
		}
		if len(c.path) > 0 {
			c.appendPathNode(def.Attrs)
		}
		if def.Tag != "g" {
			// pop style
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
		}
	}
	return nil
}
