package sink

import (
	"strconv"
	"strings"

	"github.com/matzehuels/encoderdisk/pkg/geom"
)

// DefaultPrecision matches the six decimals of printf's %f.
const DefaultPrecision = 6

// PathData serializes p as the value of an SVG "d" attribute, formatting
// every coordinate with exactly precision decimals.
func PathData(p geom.Path, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	num := func(v float64) string {
		s := strconv.FormatFloat(v, 'f', precision, 64)
		if isNegativeZero(s) {
			s = s[1:]
		}
		return s
	}
	flag := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}

	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Kind.String())
		switch s.Kind {
		case geom.MoveTo, geom.LineTo:
			b.WriteString(" " + num(s.To.X) + " " + num(s.To.Y))
		case geom.ArcTo:
			r := num(s.Radius)
			b.WriteString(" " + r + " " + r + " 0 " + flag(s.LargeArc) + " " + flag(s.Sweep) +
				" " + num(s.To.X) + " " + num(s.To.Y))
		}
	}
	return b.String()
}

// isNegativeZero reports whether s is a formatted zero with a sign, such
// as "-0.000", which cos/sin rounding produces at multiples of 90 degrees.
func isNegativeZero(s string) bool {
	return strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == ""
}
