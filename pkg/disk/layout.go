package disk

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/encoderdisk/pkg/geom"
	"github.com/matzehuels/encoderdisk/pkg/gray"
	"github.com/matzehuels/encoderdisk/pkg/track"
)

// Outline is a wedge together with its vector path.
type Outline struct {
	geom.Wedge
	Path geom.Path `json:"path"`
}

// Track is the ring printing one bit of the code.
type Track struct {
	Bit         int         `json:"bit"`
	OuterRadius float64     `json:"outer_radius"`
	Runs        []track.Run `json:"runs"`
	Outlines    []Outline   `json:"outlines"`
}

// InnerRadius returns the inner edge of the track.
func (t Track) InnerRadius(width float64) float64 { return t.OuterRadius - width }

// Ring is an incremental (quadrature) ring.
type Ring struct {
	Name        string    `json:"name"` // "outer" or "inner"
	OuterRadius float64   `json:"outer_radius"`
	Outlines    []Outline `json:"outlines"`
}

// Disk is the complete layout. Tracks are ordered outer to inner, MSB first;
// outlines within a track by increasing start angle.
type Disk struct {
	Config       Config     `json:"config"`
	Table        gray.Table `json:"-"`
	PositionSize float64    `json:"position_size"`
	Tracks       []Track    `json:"tracks"`
	Incremental  []Ring     `json:"incremental,omitempty"`
}

// Wedges returns every Gray code wedge in output order.
func (d Disk) Wedges() []geom.Wedge {
	var out []geom.Wedge
	for _, t := range d.Tracks {
		for _, o := range t.Outlines {
			out = append(out, o.Wedge)
		}
	}
	return out
}

// Outlines returns every outline, Gray code tracks first, then incremental
// rings.
func (d Disk) Outlines() []Outline {
	var out []Outline
	for _, t := range d.Tracks {
		out = append(out, t.Outlines...)
	}
	for _, r := range d.Incremental {
		out = append(out, r.Outlines...)
	}
	return out
}

// Layout validates cfg, generates the code table once and builds every
// track. Tracks are computed concurrently; the result does not depend on
// scheduling.
func Layout(cfg Config) (Disk, error) {
	if err := cfg.Validate(); err != nil {
		return Disk{}, err
	}

	tbl, err := gray.Generate(cfg.Bits)
	if err != nil {
		return Disk{}, err
	}
	if cfg.ZeroOffset != 0 {
		tbl = tbl.Rotate(cfg.ZeroOffset)
	}

	tracks := make([]Track, cfg.Bits)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for bit := range tracks {
		g.Go(func() error {
			t, err := layoutTrack(tbl, cfg, bit)
			if err != nil {
				return fmt.Errorf("track %d: %w", bit, err)
			}
			tracks[bit] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Disk{}, err
	}

	rings, err := layoutIncremental(cfg)
	if err != nil {
		return Disk{}, err
	}

	return Disk{
		Config:       cfg,
		Table:        tbl,
		PositionSize: track.PositionSize(cfg.Bits),
		Tracks:       tracks,
		Incremental:  rings,
	}, nil
}

// LayoutDisk is the plain-function form of Layout for callers that only
// need the Gray code wedges.
func LayoutDisk(bits int, encoderDiameter, trackWidth, trackDistance float64) ([]geom.Wedge, error) {
	d, err := Layout(Config{
		Bits:            bits,
		EncoderDiameter: encoderDiameter,
		TrackWidth:      trackWidth,
		TrackDistance:   trackDistance,
	})
	if err != nil {
		return nil, err
	}
	return d.Wedges(), nil
}

func layoutTrack(tbl gray.Table, cfg Config, bit int) (Track, error) {
	extract := track.ExtractRuns
	if cfg.MergeWrap {
		extract = track.ExtractCircularRuns
	}
	runs, err := extract(tbl, bit)
	if err != nil {
		return Track{}, err
	}

	t := Track{
		Bit:         bit,
		OuterRadius: cfg.OuterRadius(bit),
		Runs:        runs,
		Outlines:    make([]Outline, 0, len(runs)),
	}
	for _, r := range runs {
		o, err := outline(geom.Wedge{
			StartAngle:  r.StartAngle(cfg.Bits),
			Span:        r.Span(cfg.Bits),
			OuterRadius: t.OuterRadius,
			Width:       cfg.TrackWidth,
		})
		if err != nil {
			return Track{}, fmt.Errorf("run at position %d: %w", r.Start, err)
		}
		t.Outlines = append(t.Outlines, o)
	}
	return t, nil
}

func outline(w geom.Wedge) (Outline, error) {
	p, err := geom.BuildWedge(w)
	if err != nil {
		return Outline{}, err
	}
	return Outline{Wedge: w, Path: p}, nil
}
