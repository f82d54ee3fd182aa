// Package sink lowers a computed [disk.Disk] into output documents.
//
// # Overview
//
// A "sink" is the document builder of the pipeline: it receives the wedge
// outlines produced by the layout and materializes them. This package
// provides:
//
//   - SVG: one <path> per wedge inside a group centered on the canvas
//   - JSON: layout export (tracks, runs, wedges, optional path data)
//   - PDF / PNG: SVG converted with rsvg-convert
//
// # SVG Output
//
// [RenderSVG] writes every wedge with the same [Style]. Tracks become
// groups ("track-0" is the most significant bit), incremental rings become
// "ring-outer" / "ring-inner". When the disk config carries a rim diameter
// or a center hole, they are drawn as circles. A small white guide dot
// always marks the center for drilling.
//
//	svg := sink.RenderSVG(d,
//	    sink.WithStyle(sink.Style{Fill: "black", Stroke: "none"}),
//	    sink.WithPrecision(3),
//	)
//
// # Path Data
//
// [PathData] serializes a [geom.Path] to SVG path syntax with fixed-point
// precision. Precision is a serialization concern only; the geometry itself
// is always computed in full float64.
//
// [disk.Disk]: github.com/matzehuels/encoderdisk/pkg/disk.Disk
// [geom.Path]: github.com/matzehuels/encoderdisk/pkg/geom.Path
package sink
