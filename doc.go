// Package svgkit measures and rasterizes SVG documents.
//
// Measure reports the bounding box of every geometry-bearing element,
// after text has been laid out with real fonts, plus the union of all
// boxes. Render rasterizes the document to PNG bytes at a uniform
// scale. Both calls are self-contained: fonts, parse state and raster
// surfaces live for one call only, so concurrent calls are safe.
//
// Parsing and geometry live in svgkit/svgdom, font resolution in
// svgkit/svgfont, text shaping in svgkit/svgtext and the raster
// backend in svgkit/svgraster; this package ties them together behind
// a small API.
package svgkit
