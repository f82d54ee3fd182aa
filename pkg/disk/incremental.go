package disk

import (
	"fmt"

	"github.com/matzehuels/encoderdisk/pkg/geom"
)

type ringSpec struct {
	name     string
	diameter float64
	width    float64
	phase    float64 // fraction of one wedge span
}

func (r ringSpec) enabled() bool {
	return r.diameter > 0 && r.width > 0 && r.diameter/2 > r.width
}

func (c Config) outerRing() ringSpec {
	return ringSpec{name: "outer", diameter: c.OuterEncoderDiameter, width: c.OuterEncoderWidth}
}

func (c Config) innerRing() ringSpec {
	return ringSpec{name: "inner", diameter: c.InnerEncoderDiameter, width: c.InnerEncoderWidth, phase: 0.5}
}

// SegmentAngle returns the span of one incremental wedge: half the period,
// so wedges and gaps are equally wide.
func (c Config) SegmentAngle() float64 {
	if c.Segments <= 0 {
		return 0
	}
	return 360.0 / float64(2*c.Segments)
}

// layoutIncremental emits Segments wedges per enabled ring. Rings with an
// unusable diameter or width are skipped silently.
func layoutIncremental(cfg Config) ([]Ring, error) {
	if cfg.Segments == 0 {
		return nil, nil
	}
	span := cfg.SegmentAngle()

	var rings []Ring
	for _, spec := range []ringSpec{cfg.outerRing(), cfg.innerRing()} {
		if !spec.enabled() {
			continue
		}
		ring := Ring{
			Name:        spec.name,
			OuterRadius: spec.diameter / 2,
			Outlines:    make([]Outline, 0, cfg.Segments),
		}
		for n := 0; n < cfg.Segments; n++ {
			o, err := outline(geom.Wedge{
				StartAngle:  float64(n)*2*span + spec.phase*span,
				Span:        span,
				OuterRadius: ring.OuterRadius,
				Width:       spec.width,
			})
			if err != nil {
				return nil, fmt.Errorf("%s incremental ring, segment %d: %w", spec.name, n, err)
			}
			ring.Outlines = append(ring.Outlines, o)
		}
		rings = append(rings, ring)
	}
	return rings, nil
}
