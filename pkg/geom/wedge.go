package geom

import (
	"math"

	"github.com/matzehuels/encoderdisk/pkg/errors"
)

// Wedge is an annular segment. InnerRadius is derived, never stored.
type Wedge struct {
	StartAngle  float64 `json:"start_angle"` // degrees
	Span        float64 `json:"span"`        // degrees
	OuterRadius float64 `json:"outer_radius"`
	Width       float64 `json:"width"`
}

// InnerRadius returns OuterRadius - Width.
func (w Wedge) InnerRadius() float64 { return w.OuterRadius - w.Width }

// EndAngle returns StartAngle + Span.
func (w Wedge) EndAngle() float64 { return w.StartAngle + w.Span }

// Area returns the surface of the wedge.
func (w Wedge) Area() float64 {
	r1, r0 := w.OuterRadius, w.InnerRadius()
	return math.Pi * (r1*r1 - r0*r0) * w.Span / 360
}

// Validate checks the wedge preconditions. A span outside (0, 360) or a
// negative start angle is DEGENERATE_GEOMETRY; bad radii are
// INVALID_ARGUMENT. Width must be strictly positive: a zero-width wedge
// would have coincident arcs and no area.
func (w Wedge) Validate() error {
	if math.IsNaN(w.StartAngle) || math.IsNaN(w.Span) ||
		math.IsInf(w.StartAngle, 0) || math.IsInf(w.Span, 0) {
		return errors.New(errors.ErrCodeDegenerateGeometry, "wedge angles must be finite (start %v, span %v)", w.StartAngle, w.Span)
	}
	if w.StartAngle < 0 {
		return errors.New(errors.ErrCodeDegenerateGeometry, "start angle must be >= 0, got %g", w.StartAngle)
	}
	if w.Span <= 0 || w.Span >= 360 {
		return errors.New(errors.ErrCodeDegenerateGeometry, "span must be in (0, 360) degrees, got %g", w.Span)
	}
	if err := errors.ValidatePositive("wedge width", w.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("outer radius", w.OuterRadius); err != nil {
		return err
	}
	if w.Width >= w.OuterRadius {
		return errors.New(errors.ErrCodeInvalidArgument,
			"width %g must be smaller than outer radius %g (inner radius would be %g)",
			w.Width, w.OuterRadius, w.InnerRadius())
	}
	return nil
}

// BuildWedge returns the closed outline of w:
//
//	M P(start, inner)
//	L P(start, outer)
//	A outer  sweep=1  P(end, outer)
//	L P(end, inner)
//	A inner  sweep=0  P(start, inner)
//	Z
func BuildWedge(w Wedge) (Path, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	outer, inner := w.OuterRadius, w.InnerRadius()
	start, end := w.StartAngle, w.EndAngle()
	large := w.Span > 180

	return Path{
		{Kind: MoveTo, To: PointAt(start, inner)},
		{Kind: LineTo, To: PointAt(start, outer)},
		{Kind: ArcTo, To: PointAt(end, outer), Radius: outer, LargeArc: large, Sweep: true},
		{Kind: LineTo, To: PointAt(end, inner)},
		{Kind: ArcTo, To: PointAt(start, inner), Radius: inner, LargeArc: large, Sweep: false},
		{Kind: Close},
	}, nil
}
