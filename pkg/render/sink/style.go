package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/encoderdisk/pkg/errors"
)

// Style is the uniform visual style of all wedges.
type Style struct {
	Fill        string  `toml:"fill" json:"fill"`
	Stroke      string  `toml:"stroke" json:"stroke"`
	StrokeWidth float64 `toml:"stroke_width" json:"stroke_width"`
}

// DefaultStyle is solid black with a 1-unit black outline.
func DefaultStyle() Style {
	return Style{Fill: "black", Stroke: "black", StrokeWidth: 1}
}

// String formats the style as an SVG style attribute value.
func (s Style) String() string {
	parts := []string{"fill:" + s.Fill, "stroke:" + s.Stroke}
	if s.Stroke != "none" {
		parts = append(parts, fmt.Sprintf("stroke-width:%g", s.StrokeWidth))
	}
	return strings.Join(parts, ";")
}

// Validate rejects empty colors and negative stroke widths. Colors are
// otherwise passed through verbatim, so any CSS color works.
func (s Style) Validate() error {
	if strings.TrimSpace(s.Fill) == "" || strings.TrimSpace(s.Stroke) == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "style fill and stroke must not be empty (use \"none\")")
	}
	if strings.ContainsAny(s.Fill+s.Stroke, `;"<>&`) {
		return errors.New(errors.ErrCodeInvalidArgument, "style colors must not contain any of ; \" < > &")
	}
	if s.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "stroke width must be >= 0, got %g", s.StrokeWidth)
	}
	return nil
}
