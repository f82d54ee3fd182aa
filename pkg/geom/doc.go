// Package geom builds the vector outline of annular wedges.
//
// # Overview
//
// A wedge is the region between two concentric circles bounded by two
// radial lines. [BuildWedge] returns its outline as a [Path]: a short list
// of typed segments that any vector backend can consume.
//
//	P(start,inner) ── line ──▶ P(start,outer)
//	      ▲                          │
//	      │ arc inner, sweep=0       │ arc outer, sweep=1
//	      │                          ▼
//	P(end,inner)   ◀── line ── P(end,outer)
//
// The outer arc is traversed in the direction of increasing angle and the
// inner arc back again, so the two arcs always carry opposite sweep flags
// and the contour never crosses itself. Spans over 180 degrees set the
// large-arc flag on both arcs.
//
// # Coordinates
//
// Angles are in degrees measured from the positive x-axis; points are
// (r·cos θ, r·sin θ). In SVG, where y grows downward, increasing angle
// therefore runs clockwise on screen, which matches sweep-flag 1.
//
// Formatting numbers (precision, separators) is left to the serializer; see
// the sink package.
package geom
