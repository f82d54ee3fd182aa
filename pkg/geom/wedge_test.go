package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/geom"
)

const eps = 1e-9

func requirePoint(t *testing.T, want, got geom.Point) {
	t.Helper()
	require.InDelta(t, want.X, got.X, eps, "x of %v", got)
	require.InDelta(t, want.Y, got.Y, eps, "y of %v", got)
}

func TestPointAt(t *testing.T) {
	requirePoint(t, geom.Point{X: 50, Y: 0}, geom.PointAt(0, 50))
	requirePoint(t, geom.Point{X: 0, Y: 50}, geom.PointAt(90, 50))
	requirePoint(t, geom.Point{X: -10, Y: 0}, geom.PointAt(180, 10))
	requirePoint(t, geom.Point{X: 0, Y: -10}, geom.PointAt(270, 10))
}

func TestBuildWedge_QuarterRing(t *testing.T) {
	p, err := geom.BuildWedge(geom.Wedge{StartAngle: 0, Span: 90, OuterRadius: 50, Width: 10})
	require.NoError(t, err)
	require.Len(t, p, 6)
	require.True(t, p.Closed())

	kinds := []geom.SegmentKind{geom.MoveTo, geom.LineTo, geom.ArcTo, geom.LineTo, geom.ArcTo, geom.Close}
	for i, k := range kinds {
		require.Equal(t, k, p[i].Kind, "segment %d", i)
	}

	requirePoint(t, geom.Point{X: 40, Y: 0}, p[0].To)
	requirePoint(t, geom.Point{X: 50, Y: 0}, p[1].To)
	requirePoint(t, geom.Point{X: 0, Y: 50}, p[2].To)
	requirePoint(t, geom.Point{X: 0, Y: 40}, p[3].To)
	requirePoint(t, geom.Point{X: 40, Y: 0}, p[4].To)

	require.Equal(t, 50.0, p[2].Radius)
	require.Equal(t, 40.0, p[4].Radius)
	require.True(t, p[2].Sweep)
	require.False(t, p[4].Sweep)
	require.False(t, p[2].LargeArc)
	require.False(t, p[4].LargeArc)
}

func TestBuildWedge_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		w    geom.Wedge
		code errors.Code
	}{
		{"zero span", geom.Wedge{Span: 0, OuterRadius: 50, Width: 10}, errors.ErrCodeDegenerateGeometry},
		{"negative span", geom.Wedge{Span: -5, OuterRadius: 50, Width: 10}, errors.ErrCodeDegenerateGeometry},
		{"full circle", geom.Wedge{Span: 360, OuterRadius: 50, Width: 10}, errors.ErrCodeDegenerateGeometry},
		{"negative start", geom.Wedge{StartAngle: -1, Span: 10, OuterRadius: 50, Width: 10}, errors.ErrCodeDegenerateGeometry},
		{"NaN span", geom.Wedge{Span: math.NaN(), OuterRadius: 50, Width: 10}, errors.ErrCodeDegenerateGeometry},
		{"zero width", geom.Wedge{Span: 10, OuterRadius: 50, Width: 0}, errors.ErrCodeInvalidArgument},
		{"width equals radius", geom.Wedge{Span: 10, OuterRadius: 50, Width: 50}, errors.ErrCodeInvalidArgument},
		{"width exceeds radius", geom.Wedge{Span: 10, OuterRadius: 50, Width: 60}, errors.ErrCodeInvalidArgument},
		{"zero radius", geom.Wedge{Span: 10, OuterRadius: 0, Width: 1}, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := geom.BuildWedge(tt.w)
			require.Nil(t, p)
			require.Error(t, err)
			require.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

// flatten approximates the path by a polygon, following each arc around
// the origin in the direction given by its sweep flag. Every arc's
// large-arc flag must agree with the angle it actually covers, since that
// is what an SVG renderer relies on.
func flatten(t *testing.T, p geom.Path) []geom.Point {
	t.Helper()
	var (
		pts []geom.Point
		cur geom.Point
	)
	for _, s := range p {
		switch s.Kind {
		case geom.MoveTo, geom.LineTo:
			pts = append(pts, s.To)
		case geom.ArcTo:
			require.InDelta(t, s.Radius, math.Hypot(cur.X, cur.Y), 1e-6, "arc must start on its circle")
			require.InDelta(t, s.Radius, math.Hypot(s.To.X, s.To.Y), 1e-6, "arc must end on its circle")

			a0 := math.Atan2(cur.Y, cur.X)
			a1 := math.Atan2(s.To.Y, s.To.X)
			delta := a1 - a0
			if s.Sweep {
				for delta <= 0 {
					delta += 2 * math.Pi
				}
			} else {
				for delta >= 0 {
					delta -= 2 * math.Pi
				}
			}
			if math.Abs(math.Abs(delta)-math.Pi) > 1e-9 {
				require.Equal(t, s.LargeArc, math.Abs(delta) > math.Pi, "large-arc flag disagrees with swept angle")
			}

			const steps = 512
			for i := 1; i <= steps; i++ {
				a := a0 + delta*float64(i)/steps
				pts = append(pts, geom.Point{X: s.Radius * math.Cos(a), Y: s.Radius * math.Sin(a)})
			}
		case geom.Close:
		}
		if s.Kind != geom.Close {
			cur = s.To
		}
	}
	return pts
}

func shoelace(pts []geom.Point) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

// TestBuildWedge_SimpleContour checks, for spans across (0, 360), that the
// outline encloses exactly the wedge area with a positive orientation. A
// self-intersecting contour or a wrong sweep/large-arc pair would cancel
// or inflate the signed area.
func TestBuildWedge_SimpleContour(t *testing.T) {
	for _, span := range []float64{0.5, 11.25, 45, 90, 179, 180, 181, 270, 359} {
		for _, start := range []float64{0, 33, 200, 355} {
			w := geom.Wedge{StartAngle: start, Span: span, OuterRadius: 60, Width: 15}
			p, err := geom.BuildWedge(w)
			require.NoError(t, err)

			area := shoelace(flatten(t, p))
			require.InEpsilon(t, w.Area(), area, 1e-3, "start=%v span=%v", start, span)
		}
	}
}

func TestWedge_Derived(t *testing.T) {
	w := geom.Wedge{StartAngle: 30, Span: 60, OuterRadius: 20, Width: 5}
	require.Equal(t, 15.0, w.InnerRadius())
	require.Equal(t, 90.0, w.EndAngle())
	require.InDelta(t, math.Pi*(400-225)/6, w.Area(), eps)
}

func TestPath_Vertices(t *testing.T) {
	p, err := geom.BuildWedge(geom.Wedge{Span: 90, OuterRadius: 2, Width: 1})
	require.NoError(t, err)
	require.Len(t, p.Vertices(), 5)
	require.Equal(t, "A", geom.ArcTo.String())
	require.Equal(t, "Z", geom.Close.String())
}
