package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

type param struct {
	key string
	set func(o *pipeline.Options, v string) error
}

func intParam(dst func(*pipeline.Options) *int) func(*pipeline.Options, string) error {
	return func(o *pipeline.Options, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(o) = n
		return nil
	}
}

func floatParam(dst func(*pipeline.Options) *float64) func(*pipeline.Options, string) error {
	return func(o *pipeline.Options, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst(o) = f
		return nil
	}
}

func boolParam(dst func(*pipeline.Options) *bool) func(*pipeline.Options, string) error {
	return func(o *pipeline.Options, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst(o) = b
		return nil
	}
}

func stringParam(dst func(*pipeline.Options) *string) func(*pipeline.Options, string) error {
	return func(o *pipeline.Options, v string) error {
		*dst(o) = v
		return nil
	}
}

// params mirrors the TOML key names of pipeline.Options.
var params = []param{
	{"bits", intParam(func(o *pipeline.Options) *int { return &o.Disk.Bits })},
	{"encoder_diameter", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.EncoderDiameter })},
	{"track_width", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.TrackWidth })},
	{"track_distance", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.TrackDistance })},
	{"merge_wrap", boolParam(func(o *pipeline.Options) *bool { return &o.Disk.MergeWrap })},
	{"zero_offset", intParam(func(o *pipeline.Options) *int { return &o.Disk.ZeroOffset })},
	{"segments", intParam(func(o *pipeline.Options) *int { return &o.Disk.Segments })},
	{"outer_encoder_diameter", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.OuterEncoderDiameter })},
	{"outer_encoder_width", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.OuterEncoderWidth })},
	{"inner_encoder_diameter", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.InnerEncoderDiameter })},
	{"inner_encoder_width", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.InnerEncoderWidth })},
	{"diameter", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.Diameter })},
	{"hole_diameter", floatParam(func(o *pipeline.Options) *float64 { return &o.Disk.HoleDiameter })},
	{"fill", stringParam(func(o *pipeline.Options) *string { return &o.Style.Fill })},
	{"stroke", stringParam(func(o *pipeline.Options) *string { return &o.Style.Stroke })},
	{"stroke_width", floatParam(func(o *pipeline.Options) *float64 { return &o.Style.StrokeWidth })},
	{"precision", intParam(func(o *pipeline.Options) *int { return &o.Precision })},
	{"scale", floatParam(func(o *pipeline.Options) *float64 { return &o.Scale })},
	{"no_decoration", boolParam(func(o *pipeline.Options) *bool { return &o.NoDecoration })},
	{"include_table", boolParam(func(o *pipeline.Options) *bool { return &o.IncludeTable })},
	{"canvas_width", floatParam(func(o *pipeline.Options) *float64 { return &o.CanvasWidth })},
	{"canvas_height", floatParam(func(o *pipeline.Options) *float64 { return &o.CanvasHeight })},
	{"label", stringParam(func(o *pipeline.Options) *string { return &o.Label })},
}

var knownParams = func() map[string]bool {
	m := make(map[string]bool, len(params))
	for _, p := range params {
		m[p.key] = true
	}
	return m
}()

// parseOptions builds pipeline options from query parameters on top of the
// defaults. Unknown or malformed parameters are INVALID_ARGUMENT.
func parseOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	for key := range q {
		if !knownParams[key] {
			return opts, errors.New(errors.ErrCodeInvalidArgument, "unknown parameter %q", key)
		}
	}
	for _, p := range params {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		if err := p.set(&opts, v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidArgument, "parameter %s: invalid value %q", p.key, v)
		}
	}
	return opts, nil
}
