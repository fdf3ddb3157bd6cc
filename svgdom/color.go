package svgdom

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Pattern is what fills or strokes a shape: either a PlainColor or a
// *Gradient.
type Pattern interface {
	isPattern()
}

// PlainColor is a flat color, the most common pattern.
type PlainColor struct {
	color.NRGBA
}

func (PlainColor) isPattern() {}

func (*Gradient) isPattern() {}

func (CurrentColor) isPattern() {}

// NewPlainColor builds a PlainColor from the given channels.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{NRGBA: color.NRGBA{R: r, G: g, B: b, A: a}}
}

// CurrentColor resolves to the inherited color property when painted.
type CurrentColor struct{}

// optionalColor distinguishes "none" from an actual color.
type optionalColor struct {
	valid bool
	color PlainColor
}

func (o optionalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return o.color
}

func (o optionalColor) asColor() color.NRGBA {
	if !o.valid {
		return color.NRGBA{}
	}
	return o.color.NRGBA
}

var colorNone = optionalColor{}

func someColor(c PlainColor) optionalColor {
	return optionalColor{valid: true, color: c}
}

// svgColors are the keyword colors of the SVG recommendation,
// restricted to the set diagram generators actually emit plus the
// basic CSS level 1 palette.
var svgColors = map[string]PlainColor{
	"aliceblue":   NewPlainColor(240, 248, 255, 255),
	"aqua":        NewPlainColor(0, 255, 255, 255),
	"black":       NewPlainColor(0, 0, 0, 255),
	"blue":        NewPlainColor(0, 0, 255, 255),
	"brown":       NewPlainColor(165, 42, 42, 255),
	"cyan":        NewPlainColor(0, 255, 255, 255),
	"darkblue":    NewPlainColor(0, 0, 139, 255),
	"darkgray":    NewPlainColor(169, 169, 169, 255),
	"darkgreen":   NewPlainColor(0, 100, 0, 255),
	"darkred":     NewPlainColor(139, 0, 0, 255),
	"dimgray":     NewPlainColor(105, 105, 105, 255),
	"fuchsia":     NewPlainColor(255, 0, 255, 255),
	"gainsboro":   NewPlainColor(220, 220, 220, 255),
	"gold":        NewPlainColor(255, 215, 0, 255),
	"gray":        NewPlainColor(128, 128, 128, 255),
	"green":       NewPlainColor(0, 128, 0, 255),
	"grey":        NewPlainColor(128, 128, 128, 255),
	"lightblue":   NewPlainColor(173, 216, 230, 255),
	"lightgray":   NewPlainColor(211, 211, 211, 255),
	"lightgreen":  NewPlainColor(144, 238, 144, 255),
	"lightyellow": NewPlainColor(255, 255, 224, 255),
	"lime":        NewPlainColor(0, 255, 0, 255),
	"magenta":     NewPlainColor(255, 0, 255, 255),
	"maroon":      NewPlainColor(128, 0, 0, 255),
	"navy":        NewPlainColor(0, 0, 128, 255),
	"olive":       NewPlainColor(128, 128, 0, 255),
	"orange":      NewPlainColor(255, 165, 0, 255),
	"pink":        NewPlainColor(255, 192, 203, 255),
	"purple":      NewPlainColor(128, 0, 128, 255),
	"red":         NewPlainColor(255, 0, 0, 255),
	"silver":      NewPlainColor(192, 192, 192, 255),
	"teal":        NewPlainColor(0, 128, 128, 255),
	"violet":      NewPlainColor(238, 130, 238, 255),
	"white":       NewPlainColor(255, 255, 255, 255),
	"whitesmoke":  NewPlainColor(245, 245, 245, 255),
	"yellow":      NewPlainColor(255, 255, 0, 255),
}

// parseSVGColor parses an SVG color value: #RGB and #RRGGBB hex forms,
// rgb() and rgba() functional forms, keyword colors, and none.
func parseSVGColor(colorStr string) (optionalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "transparent":
		return colorNone, nil
	case "currentcolor":
		// treated as black; color property inheritance is not tracked
		return someColor(NewPlainColor(0, 0, 0, 0xff)), nil
	}
	if c, ok := svgColors[v]; ok {
		return someColor(c), nil
	}
	if strings.HasPrefix(v, "#") {
		c, err := parseHexColor(v[1:])
		if err != nil {
			return colorNone, err
		}
		return someColor(c), nil
	}
	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		inner := v[strings.Index(v, "(")+1:]
		inner = strings.TrimSuffix(inner, ")")
		c, err := parseRGBColor(inner)
		if err != nil {
			return colorNone, err
		}
		return someColor(c), nil
	}
	return colorNone, fmt.Errorf("unsupported color: %s", colorStr)
}

func parseHexColor(hex string) (PlainColor, error) {
	var chans [4]uint8
	chans[3] = 0xff
	switch len(hex) {
	case 3, 4:
		for i := 0; i < len(hex); i++ {
			n, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return PlainColor{}, err
			}
			chans[i] = uint8(n | n<<4)
		}
	case 6, 8:
		for i := 0; i*2 < len(hex); i++ {
			n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return PlainColor{}, err
			}
			chans[i] = uint8(n)
		}
	default:
		return PlainColor{}, fmt.Errorf("invalid hex color: #%s", hex)
	}
	return NewPlainColor(chans[0], chans[1], chans[2], chans[3]), nil
}

// parseRGBColor parses the arguments of an rgb() or rgba() form,
// channels given either as 0-255 integers or percentages.
func parseRGBColor(args string) (PlainColor, error) {
	fields := splitOnCommaOrSpace(args)
	if len(fields) != 3 && len(fields) != 4 {
		return PlainColor{}, fmt.Errorf("invalid rgb() color: %s", args)
	}
	var chans [4]uint8
	chans[3] = 0xff
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if i == 3 { // alpha is a fraction
			a, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return PlainColor{}, err
			}
			chans[3] = uint8(clampF(a, 0, 1) * 0xff)
			continue
		}
		var v float64
		if strings.HasSuffix(f, "%") {
			p, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
			if err != nil {
				return PlainColor{}, err
			}
			v = p / 100 * 0xff
		} else {
			n, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return PlainColor{}, err
			}
			v = n
		}
		chans[i] = uint8(clampF(v, 0, 0xff))
	}
	return NewPlainColor(chans[0], chans[1], chans[2], chans[3]), nil
}

func clampF(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
