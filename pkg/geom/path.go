package geom

import "math"

// Point is a position in document units relative to the disk center.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointAt returns the point at distance r from the origin along angleDeg.
func PointAt(angleDeg, r float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{X: r * math.Cos(rad), Y: r * math.Sin(rad)}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// SegmentKind tags the variant held by a Segment.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	ArcTo
	Close
)

// String returns the SVG command letter of the kind.
func (k SegmentKind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case ArcTo:
		return "A"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// Segment is one path command. To is unused for Close; Radius, LargeArc and
// Sweep are only meaningful for ArcTo (circular arcs, so rx == ry).
type Segment struct {
	Kind     SegmentKind `json:"kind"`
	To       Point       `json:"to"`
	Radius   float64     `json:"radius,omitempty"`
	LargeArc bool        `json:"large_arc,omitempty"`
	Sweep    bool        `json:"sweep,omitempty"`
}

// Path is an ordered list of segments forming one or more contours.
type Path []Segment

// Closed reports whether the path ends with a Close segment.
func (p Path) Closed() bool { return len(p) > 0 && p[len(p)-1].Kind == Close }

// Vertices returns the end point of every non-Close segment in order.
func (p Path) Vertices() []Point {
	pts := make([]Point, 0, len(p))
	for _, s := range p {
		if s.Kind != Close {
			pts = append(pts, s.To)
		}
	}
	return pts
}
