package svgdom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// This file compiles the d attribute of path elements, and the
// coordinate lists of the other shape elements, into Path operations.

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errZeroLengthID   = errors.New("zero length id")
)

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// pathCursor accumulates Path operations while compiling the geometry
// attributes of one element.
type pathCursor struct {
	path   Path
	points []float64

	curX, curY             float64 // offset applied by a surrounding use element
	placeX, placeY         float64 // current point
	pathStartX, pathStartY float64 // subpath start, for Z
	cntlPtX, cntlPtY       float64 // last cubic control point, for S reflection
	quadPtX, quadPtY       float64 // last quadratic control point, for T reflection
	lastCommand            byte
	inPath                 bool

	viewBoxW, viewBoxH float64 // reference lengths for percentage units
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseFloat wraps strconv, allowing a trailing px unit.
func parseFloat(v string, bitSize int) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	return strconv.ParseFloat(v, bitSize)
}

// parseUnit resolves a length which may be a percentage of the
// viewport, following the given reference axis.
func (c *pathCursor) parseUnit(v string, ref percentageReference) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, err
		}
		switch ref {
		case widthPercentage:
			return f / 100 * c.viewBoxW, nil
		case heightPercentage:
			return f / 100 * c.viewBoxH, nil
		default: // diagPercentage
			d := math.Sqrt(c.viewBoxW*c.viewBoxW+c.viewBoxH*c.viewBoxH) / math.Sqrt2
			return f / 100 * d, nil
		}
	}
	return parseFloat(v, 64)
}

// getPoints parses a list of numbers separated by commas or spaces
// into c.points.
func (c *pathCursor) getPoints(s string) error {
	c.points = c.points[:0]
	return scanNumbers(s, func(f float64) {
		c.points = append(c.points, f)
	})
}

// scanNumbers tokenizes an SVG number list. A minus sign starts a new
// number unless it follows an exponent marker, so forms like "10-5"
// and "1e-3.5" are split correctly.
func scanNumbers(s string, emit func(float64)) error {
	start := -1
	flush := func(end int) error {
		if start == -1 {
			return nil
		}
		f, err := strconv.ParseFloat(s[start:end], 64)
		if err != nil {
			return err
		}
		emit(f)
		start = -1
		return nil
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= '0' && b <= '9' || b == '.' || b == 'e' || b == 'E':
			if start == -1 {
				start = i
			}
		case b == '-' || b == '+':
			if start != -1 && (s[i-1] == 'e' || s[i-1] == 'E') {
				continue // exponent sign
			}
			if err := flush(i); err != nil {
				return err
			}
			start = i
		default: // separator
			if err := flush(i); err != nil {
				return err
			}
		}
	}
	return flush(len(s))
}

// compilePath translates the d attribute into path operations.
func (c *pathCursor) compilePath(d string) error {
	c.placeX, c.placeY = 0, 0
	c.pathStartX, c.pathStartY = 0, 0
	c.lastCommand = 0
	c.inPath = false
	i := 0
	for i < len(d) {
		b := d[i]
		switch {
		case b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r':
			i++
		case b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z':
			end := i + 1
			for end < len(d) && !isCommandByte(d[end]) {
				end++
			}
			if err := c.getPoints(d[i+1 : end]); err != nil {
				return err
			}
			if err := c.runCommand(b); err != nil {
				return err
			}
			i = end
		default:
			return fmt.Errorf("unexpected character %q in path data", b)
		}
	}
	return nil
}

func isCommandByte(b byte) bool {
	// e and E introduce exponents, not commands
	return (b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z') && b != 'e' && b != 'E'
}

// runCommand executes one path command over the accumulated points,
// handling implicit repetition.
func (c *pathCursor) runCommand(cmd byte) error {
	rel := cmd >= 'a'
	upper := cmd
	if rel {
		upper = cmd - 'a' + 'A'
	}
	arity := map[byte]int{'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0}
	n, ok := arity[upper]
	if !ok {
		return errCommandUnknown
	}
	if upper == 'Z' {
		if len(c.points) != 0 {
			return errParamMismatch
		}
		c.closePath()
		c.lastCommand = upper
		return nil
	}
	if n == 0 || len(c.points) == 0 || len(c.points)%n != 0 {
		return errParamMismatch
	}
	for i := 0; i < len(c.points); i += n {
		args := c.points[i : i+n]
		switch upper {
		case 'M':
			x, y := c.absolute(rel, args[0], args[1])
			c.moveTo(x, y)
			upper = 'L' // extra pairs are implicit lineto commands
		case 'L':
			x, y := c.absolute(rel, args[0], args[1])
			c.lineTo(x, y)
		case 'H':
			x := args[0]
			if rel {
				x += c.placeX
			}
			c.lineTo(x, c.placeY)
		case 'V':
			y := args[0]
			if rel {
				y += c.placeY
			}
			c.lineTo(c.placeX, y)
		case 'C':
			x1, y1 := c.absolute(rel, args[0], args[1])
			x2, y2 := c.absolute(rel, args[2], args[3])
			x, y := c.absolute(rel, args[4], args[5])
			c.cubicTo(x1, y1, x2, y2, x, y)
		case 'S':
			x1, y1 := c.reflectCubic()
			x2, y2 := c.absolute(rel, args[0], args[1])
			x, y := c.absolute(rel, args[2], args[3])
			c.cubicTo(x1, y1, x2, y2, x, y)
		case 'Q':
			x1, y1 := c.absolute(rel, args[0], args[1])
			x, y := c.absolute(rel, args[2], args[3])
			c.quadTo(x1, y1, x, y)
		case 'T':
			x1, y1 := c.reflectQuad()
			x, y := c.absolute(rel, args[0], args[1])
			c.quadTo(x1, y1, x, y)
		case 'A':
			pts := [7]float64{args[0], args[1], args[2], args[3], args[4], args[5], args[6]}
			if rel {
				pts[5] += c.placeX
				pts[6] += c.placeY
			}
			c.addArcFromA(pts[:])
		}
		c.lastCommand = upper
	}
	c.lastCommand = upper
	return nil
}

func (c *pathCursor) absolute(rel bool, x, y float64) (float64, float64) {
	if rel {
		return c.placeX + x, c.placeY + y
	}
	return x, y
}

func (c *pathCursor) moveTo(x, y float64) {
	c.path.Start(toFixedP(x+c.curX, y+c.curY))
	c.placeX, c.placeY = x, y
	c.pathStartX, c.pathStartY = x, y
	c.inPath = true
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(toFixedP(x+c.curX, y+c.curY))
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) cubicTo(x1, y1, x2, y2, x, y float64) {
	c.path.CubeBezier(toFixedP(x1+c.curX, y1+c.curY),
		toFixedP(x2+c.curX, y2+c.curY), toFixedP(x+c.curX, y+c.curY))
	c.cntlPtX, c.cntlPtY = x2, y2
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) quadTo(x1, y1, x, y float64) {
	c.path.QuadBezier(toFixedP(x1+c.curX, y1+c.curY), toFixedP(x+c.curX, y+c.curY))
	c.quadPtX, c.quadPtY = x1, y1
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) closePath() {
	c.path.Stop(true)
	c.placeX, c.placeY = c.pathStartX, c.pathStartY
	c.inPath = false
}

// reflectCubic returns the first control point of an S command:
// the previous second control point reflected around the current
// point, or the current point when the previous command was not a
// cubic.
func (c *pathCursor) reflectCubic() (float64, float64) {
	if c.lastCommand == 'C' || c.lastCommand == 'S' {
		return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) reflectQuad() (float64, float64) {
	if c.lastCommand == 'Q' || c.lastCommand == 'T' {
		return 2*c.placeX - c.quadPtX, 2*c.placeY - c.quadPtY
	}
	return c.placeX, c.placeY
}

// addArcFromA adds an arc command to the cursor, points holding the
// seven arc parameters rx, ry, rotation, large-arc, sweep, x, y.
// The center search and the emitted geometry both run with the use
// offset applied, so every coordinate lives in the same space.
func (c *pathCursor) addArcFromA(points []float64) {
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180,
		c.placeX, c.placeY, points[5], points[6], points[4] == 0, points[3] == 0)
	endX, endY := points[5], points[6]
	points[5] += c.curX
	points[6] += c.curY
	c.path.addArc(points, cx+c.curX, cy+c.curY, c.placeX+c.curX, c.placeY+c.curY)
	points[5], points[6] = endX, endY
	c.placeX, c.placeY = endX, endY
}

// ellipseAt adds a full ellipse centered at cx, cy with the given
// radii. A degenerate arc with equal start and end points traces the
// whole perimeter; the center is known, so no center search is needed.
func (c *pathCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.placeX, c.placeY = cx+rx, cy
	startX, startY := c.placeX+c.curX, c.placeY+c.curY
	c.points = append(c.points[:0], rx, ry, 0, 0, 0, startX, startY)
	c.path.Start(toFixedP(startX, startY))
	c.path.addArc(c.points, cx+c.curX, cy+c.curY, startX, startY)
	c.path.Stop(true)
}
