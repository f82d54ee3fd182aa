package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/encoderdisk/pkg/disk"
	"github.com/matzehuels/encoderdisk/pkg/track"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	paths     bool
	table     bool
	precision int
	style     *Style
}

// WithJSONPaths includes the SVG path data of every wedge.
func WithJSONPaths(precision int) JSONOption {
	return func(r *jsonRenderer) { r.paths = true; r.precision = precision }
}

// WithJSONTable includes the code word of every angular position, as
// binary strings with the most significant bit first.
func WithJSONTable() JSONOption { return func(r *jsonRenderer) { r.table = true } }

// WithJSONStyle records the wedge style for round-trip rendering.
func WithJSONStyle(s Style) JSONOption { return func(r *jsonRenderer) { r.style = &s } }

type jsonOutput struct {
	Bits         int         `json:"bits"`
	Positions    int         `json:"positions"`
	PositionSize float64     `json:"position_size"`
	Config       disk.Config `json:"config"`
	Style        *Style      `json:"style,omitempty"`
	Table        []string    `json:"table,omitempty"`
	Tracks       []jsonTrack `json:"tracks"`
	Rings        []jsonRing  `json:"rings,omitempty"`
}

type jsonTrack struct {
	Bit         int         `json:"bit"`
	OuterRadius float64     `json:"outer_radius"`
	InnerRadius float64     `json:"inner_radius"`
	Runs        []track.Run `json:"runs"`
	Wedges      []jsonWedge `json:"wedges"`
}

type jsonRing struct {
	Name        string      `json:"name"`
	OuterRadius float64     `json:"outer_radius"`
	Wedges      []jsonWedge `json:"wedges"`
}

type jsonWedge struct {
	StartAngle  float64 `json:"start_angle"`
	Span        float64 `json:"span"`
	OuterRadius float64 `json:"outer_radius"`
	Width       float64 `json:"width"`
	Path        string  `json:"d,omitempty"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. It does
// not modify d and is safe to call concurrently.
func RenderJSON(d disk.Disk, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Bits:         d.Config.Bits,
		Positions:    d.Table.Len(),
		PositionSize: d.PositionSize,
		Config:       d.Config,
		Style:        r.style,
		Tracks:       make([]jsonTrack, 0, len(d.Tracks)),
	}

	if r.table {
		out.Table = make([]string, d.Table.Len())
		for i := range out.Table {
			out.Table[i] = fmt.Sprintf("%0*b", d.Table.Bits(), d.Table.Word(i))
		}
	}

	for _, t := range d.Tracks {
		out.Tracks = append(out.Tracks, jsonTrack{
			Bit:         t.Bit,
			OuterRadius: t.OuterRadius,
			InnerRadius: t.InnerRadius(d.Config.TrackWidth),
			Runs:        t.Runs,
			Wedges:      r.wedges(t.Outlines),
		})
	}
	for _, ring := range d.Incremental {
		out.Rings = append(out.Rings, jsonRing{
			Name:        ring.Name,
			OuterRadius: ring.OuterRadius,
			Wedges:      r.wedges(ring.Outlines),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

func (r *jsonRenderer) wedges(outlines []disk.Outline) []jsonWedge {
	ws := make([]jsonWedge, 0, len(outlines))
	for _, o := range outlines {
		w := jsonWedge{
			StartAngle:  o.StartAngle,
			Span:        o.Span,
			OuterRadius: o.OuterRadius,
			Width:       o.Width,
		}
		if r.paths {
			w.Path = PathData(o.Path, r.precision)
		}
		ws = append(ws, w)
	}
	return ws
}
