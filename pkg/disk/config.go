package disk

import (
	"fmt"

	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/gray"
)

// Default values used by DefaultConfig.
const (
	DefaultBits            = 8
	DefaultEncoderDiameter = 100.0
	DefaultTrackWidth      = 4.0
	DefaultTrackDistance   = 5.0
)

// MaxSegments bounds the wedges per incremental ring.
const MaxSegments = 1 << 16

// Config describes one disk. All lengths share one unit (usually mm or px).
type Config struct {
	// Gray code tracks
	Bits            int     `toml:"bits" json:"bits"`
	EncoderDiameter float64 `toml:"encoder_diameter" json:"encoder_diameter"` // outer diameter of the outermost track
	TrackWidth      float64 `toml:"track_width" json:"track_width"`
	TrackDistance   float64 `toml:"track_distance" json:"track_distance"` // radial pitch between tracks
	MergeWrap       bool    `toml:"merge_wrap" json:"merge_wrap,omitempty"`
	ZeroOffset      int     `toml:"zero_offset" json:"zero_offset,omitempty"` // positions to rotate the code by

	// Incremental rings
	Segments             int     `toml:"segments" json:"segments,omitempty"`
	OuterEncoderDiameter float64 `toml:"outer_encoder_diameter" json:"outer_encoder_diameter,omitempty"`
	OuterEncoderWidth    float64 `toml:"outer_encoder_width" json:"outer_encoder_width,omitempty"`
	InnerEncoderDiameter float64 `toml:"inner_encoder_diameter" json:"inner_encoder_diameter,omitempty"`
	InnerEncoderWidth    float64 `toml:"inner_encoder_width" json:"inner_encoder_width,omitempty"`

	// Decoration
	Diameter     float64 `toml:"diameter" json:"diameter,omitempty"`
	HoleDiameter float64 `toml:"hole_diameter" json:"hole_diameter,omitempty"`
}

// DefaultConfig returns an 8-bit, 100-unit disk with no incremental rings.
func DefaultConfig() Config {
	return Config{
		Bits:            DefaultBits,
		EncoderDiameter: DefaultEncoderDiameter,
		TrackWidth:      DefaultTrackWidth,
		TrackDistance:   DefaultTrackDistance,
	}
}

// OuterRadius returns the outer radius of the track carrying bit.
func (c Config) OuterRadius(bit int) float64 {
	return c.EncoderDiameter/2 - float64(bit)*c.TrackDistance
}

// Validate reports the first INVALID_ARGUMENT problem with c, if any.
func (c Config) Validate() error {
	if err := errors.ValidateIntRange("bits", c.Bits, 1, gray.MaxBits); err != nil {
		return err
	}
	if err := errors.ValidatePositive("encoder diameter", c.EncoderDiameter); err != nil {
		return err
	}
	if err := errors.ValidatePositive("track width", c.TrackWidth); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("track distance", c.TrackDistance); err != nil {
		return err
	}
	if inner := c.OuterRadius(c.Bits-1) - c.TrackWidth; inner <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument,
			"innermost track (bit %d) would have inner radius %g; reduce bits, track width or track distance, or enlarge the encoder diameter",
			c.Bits-1, inner)
	}
	if err := errors.ValidateIntRange("segments", c.Segments, 0, MaxSegments); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"outer encoder diameter", c.OuterEncoderDiameter},
		{"outer encoder width", c.OuterEncoderWidth},
		{"inner encoder diameter", c.InnerEncoderDiameter},
		{"inner encoder width", c.InnerEncoderWidth},
		{"diameter", c.Diameter},
		{"hole diameter", c.HoleDiameter},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Warnings lists geometrically valid but probably unintended settings.
func (c Config) Warnings() []string {
	var w []string
	if c.Bits > 1 && c.TrackDistance < c.TrackWidth {
		w = append(w, fmt.Sprintf("track distance %g is smaller than track width %g: adjacent tracks overlap", c.TrackDistance, c.TrackWidth))
	}
	if c.Diameter > 0 && c.Diameter < c.EncoderDiameter {
		w = append(w, fmt.Sprintf("rim diameter %g is smaller than encoder diameter %g", c.Diameter, c.EncoderDiameter))
	}
	if c.HoleDiameter > 0 && c.HoleDiameter/2 >= c.OuterRadius(c.Bits-1)-c.TrackWidth {
		w = append(w, fmt.Sprintf("center hole (diameter %g) cuts into the innermost track", c.HoleDiameter))
	}
	if c.Segments > 0 && !c.outerRing().enabled() && !c.innerRing().enabled() {
		w = append(w, fmt.Sprintf("segments = %d but neither incremental ring has a usable diameter and width", c.Segments))
	}
	return w
}
