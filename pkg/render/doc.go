// Package render converts rendered encoder disks between output formats.
//
// # Overview
//
// The geometry of a disk is computed by the disk package and lowered to SVG
// by the [sink] subpackage. This package turns that SVG into print formats:
//
//	svg := sink.RenderSVG(d)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 4.0)
//
// Conversion shells out to rsvg-convert (librsvg), which handles arcs and
// fills exactly; a laser cutter or photo plotter wants the PDF.
//
// The [nodelink] subpackage draws the Gray code as a cycle diagram with
// Graphviz.
//
// [sink]: github.com/matzehuels/encoderdisk/pkg/render/sink
// [nodelink]: github.com/matzehuels/encoderdisk/pkg/render/nodelink
package render
