// Package pkg provides the core libraries for encoderdisk, a generator for
// absolute rotary encoder disks.
//
// # Overview
//
// An absolute encoder reads one bit per concentric track through a row of
// sensors. Printing a reflected binary Gray code on the tracks guarantees
// that only one sensor changes between neighbouring positions, so a reading
// taken on a boundary is off by at most one step. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [gray], [track], [geom] and [disk]
//  2. Output: [render] and its [render/sink] and [render/nodelink] subpackages
//  3. Infrastructure: [pipeline], [cache], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow for one disk:
//
//	bit count, diameters, offsets
//	         ↓
//	    [gray] package (code table, rotated by the zero offset)
//	         ↓
//	    [track] package (angular runs where each bit is set)
//	         ↓
//	    [geom] package (annular wedge outline per run)
//	         ↓
//	    [disk] package (tracks, incremental rings, full layout)
//	         ↓
//	    [render/sink] package (SVG/JSON, PDF/PNG via [render])
//
// # Quick Start
//
// Lay out an 8-bit disk and render it to SVG:
//
//	cfg := disk.DefaultConfig()
//	cfg.Bits = 8
//	d, err := disk.Layout(cfg)
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(d, sink.WithPrecision(4))
//
// Or go through the cached pipeline used by the CLI and the HTTP server:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatPDF}
//	result, err := runner.Execute(ctx, opts)
//
// # Main Packages
//
// [gray] - Reflected binary Gray code tables with rotation, lookup of the
// position of a word and plain encode/decode helpers.
//
// [track] - Extraction of the maximal runs of set positions for one bit,
// either linear or merged across the 0°/360° seam.
//
// [geom] - Annular wedges (ring sectors) as closed paths of lines and arcs.
//
// [disk] - Disk configuration, validation and the concurrent layout of all
// tracks plus optional incremental quadrature rings.
//
// [render/sink] - SVG, JSON, PDF and PNG output of a disk layout.
//
// [render/nodelink] - The Gray code as a cycle diagram, rendered by Graphviz.
//
// [pipeline] - Options, TOML loading and the cached layout → render runner
// shared by the CLI and the server.
//
// [cache] - Artifact caches: a compressed file cache for the CLI and Redis
// for the server.
//
// [render]: github.com/matzehuels/encoderdisk/pkg/render
// [render/sink]: github.com/matzehuels/encoderdisk/pkg/render/sink
// [render/nodelink]: github.com/matzehuels/encoderdisk/pkg/render/nodelink
package pkg
