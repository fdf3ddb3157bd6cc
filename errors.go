package svgkit

import "fmt"

// ErrorKind classifies the failures crossing the package boundary.
type ErrorKind uint8

const (
	// ParseError means the markup could not be parsed.
	ParseError ErrorKind = iota
	// InvalidScale means the requested scale is not a positive finite number.
	InvalidScale
	// MissingSize means the document does not resolve to a positive pixel size.
	MissingSize
	// SurfaceAlloc means the raster surface would exceed representable limits.
	SurfaceAlloc
	// EncodePng means PNG encoding failed.
	EncodePng
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case InvalidScale:
		return "InvalidScale"
	case MissingSize:
		return "MissingSize"
	case SurfaceAlloc:
		return "SurfaceAlloc"
	case EncodePng:
		return "EncodePng"
	default:
		return "<unknown ErrorKind>"
	}
}

// Error is the only error type returned by Measure and Render.
// Inspect Kind to react programmatically; the Error string alone
// carries enough detail for a log line.
type Error struct {
	Kind   ErrorKind
	Detail string  // parse diagnostics, empty otherwise
	Scale  float64 // the offending scale, InvalidScale only
	Cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ParseError:
		return fmt.Sprintf("failed to parse SVG: %s", e.Detail)
	case InvalidScale:
		return fmt.Sprintf("invalid scale: %v (must be > 0)", e.Scale)
	case MissingSize:
		return "unable to compute render size from SVG"
	case SurfaceAlloc:
		return "failed to allocate raster surface"
	case EncodePng:
		return "failed to encode PNG"
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func parseError(cause error) *Error {
	return &Error{Kind: ParseError, Detail: cause.Error(), Cause: cause}
}

func invalidScale(scale float64) *Error {
	return &Error{Kind: InvalidScale, Scale: scale}
}

func missingSize() *Error {
	return &Error{Kind: MissingSize}
}

func surfaceAlloc() *Error {
	return &Error{Kind: SurfaceAlloc}
}

func encodePng(cause error) *Error {
	return &Error{Kind: EncodePng, Cause: cause}
}
