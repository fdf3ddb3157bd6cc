package svgkit

// version follows semantic versioning.
const version = "0.1.0"

// Version returns the library version.
func Version() string { return version }
