package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

// optionFlag ties a command-line flag to the Options field it sets, so that
// explicitly given flags can be copied over values loaded from --config.
type optionFlag struct {
	name string
	copy func(dst, src *pipeline.Options)
}

var optionFlags = []optionFlag{
	{"bits", func(d, s *pipeline.Options) { d.Disk.Bits = s.Disk.Bits }},
	{"encoder-diameter", func(d, s *pipeline.Options) { d.Disk.EncoderDiameter = s.Disk.EncoderDiameter }},
	{"track-width", func(d, s *pipeline.Options) { d.Disk.TrackWidth = s.Disk.TrackWidth }},
	{"track-distance", func(d, s *pipeline.Options) { d.Disk.TrackDistance = s.Disk.TrackDistance }},
	{"merge-wrap", func(d, s *pipeline.Options) { d.Disk.MergeWrap = s.Disk.MergeWrap }},
	{"zero-offset", func(d, s *pipeline.Options) { d.Disk.ZeroOffset = s.Disk.ZeroOffset }},
	{"segments", func(d, s *pipeline.Options) { d.Disk.Segments = s.Disk.Segments }},
	{"outer-encoder-diameter", func(d, s *pipeline.Options) { d.Disk.OuterEncoderDiameter = s.Disk.OuterEncoderDiameter }},
	{"outer-encoder-width", func(d, s *pipeline.Options) { d.Disk.OuterEncoderWidth = s.Disk.OuterEncoderWidth }},
	{"inner-encoder-diameter", func(d, s *pipeline.Options) { d.Disk.InnerEncoderDiameter = s.Disk.InnerEncoderDiameter }},
	{"inner-encoder-width", func(d, s *pipeline.Options) { d.Disk.InnerEncoderWidth = s.Disk.InnerEncoderWidth }},
	{"diameter", func(d, s *pipeline.Options) { d.Disk.Diameter = s.Disk.Diameter }},
	{"hole-diameter", func(d, s *pipeline.Options) { d.Disk.HoleDiameter = s.Disk.HoleDiameter }},
	{"fill", func(d, s *pipeline.Options) { d.Style.Fill = s.Style.Fill }},
	{"stroke", func(d, s *pipeline.Options) { d.Style.Stroke = s.Style.Stroke }},
	{"stroke-width", func(d, s *pipeline.Options) { d.Style.StrokeWidth = s.Style.StrokeWidth }},
	{"precision", func(d, s *pipeline.Options) { d.Precision = s.Precision }},
	{"scale", func(d, s *pipeline.Options) { d.Scale = s.Scale }},
	{"no-decoration", func(d, s *pipeline.Options) { d.NoDecoration = s.NoDecoration }},
	{"include-table", func(d, s *pipeline.Options) { d.IncludeTable = s.IncludeTable }},
	{"canvas-width", func(d, s *pipeline.Options) { d.CanvasWidth = s.CanvasWidth }},
	{"canvas-height", func(d, s *pipeline.Options) { d.CanvasHeight = s.CanvasHeight }},
	{"label", func(d, s *pipeline.Options) { d.Label = s.Label }},
}

// bindOptionFlags registers one flag per entry of optionFlags, defaulting
// to the current values of o.
func bindOptionFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	// Gray code tracks
	fs.IntVarP(&o.Disk.Bits, "bits", "b", o.Disk.Bits, "number of bits (tracks)")
	fs.Float64Var(&o.Disk.EncoderDiameter, "encoder-diameter", o.Disk.EncoderDiameter, "outer diameter of the outermost track")
	fs.Float64Var(&o.Disk.TrackWidth, "track-width", o.Disk.TrackWidth, "radial width of each track")
	fs.Float64Var(&o.Disk.TrackDistance, "track-distance", o.Disk.TrackDistance, "radial pitch between tracks")
	fs.BoolVar(&o.Disk.MergeWrap, "merge-wrap", o.Disk.MergeWrap, "join runs that wrap past position 0")
	fs.IntVar(&o.Disk.ZeroOffset, "zero-offset", o.Disk.ZeroOffset, "rotate the code by this many positions")

	// Incremental rings
	fs.IntVar(&o.Disk.Segments, "segments", o.Disk.Segments, "incremental ring segments (0 = none)")
	fs.Float64Var(&o.Disk.OuterEncoderDiameter, "outer-encoder-diameter", o.Disk.OuterEncoderDiameter, "outer incremental ring diameter")
	fs.Float64Var(&o.Disk.OuterEncoderWidth, "outer-encoder-width", o.Disk.OuterEncoderWidth, "outer incremental ring width")
	fs.Float64Var(&o.Disk.InnerEncoderDiameter, "inner-encoder-diameter", o.Disk.InnerEncoderDiameter, "inner incremental ring diameter")
	fs.Float64Var(&o.Disk.InnerEncoderWidth, "inner-encoder-width", o.Disk.InnerEncoderWidth, "inner incremental ring width")

	// Decoration and style
	fs.Float64Var(&o.Disk.Diameter, "diameter", o.Disk.Diameter, "rim diameter (0 = no rim)")
	fs.Float64Var(&o.Disk.HoleDiameter, "hole-diameter", o.Disk.HoleDiameter, "center hole diameter (0 = no hole)")
	fs.StringVar(&o.Style.Fill, "fill", o.Style.Fill, "wedge fill color")
	fs.StringVar(&o.Style.Stroke, "stroke", o.Style.Stroke, "wedge stroke color")
	fs.Float64Var(&o.Style.StrokeWidth, "stroke-width", o.Style.StrokeWidth, "wedge stroke width")

	// Output
	fs.IntVar(&o.Precision, "precision", o.Precision, "decimals in path data")
	fs.Float64Var(&o.Scale, "scale", o.Scale, "PNG scale factor")
	fs.BoolVar(&o.NoDecoration, "no-decoration", o.NoDecoration, "omit rim, hole and guide circles")
	fs.BoolVar(&o.IncludeTable, "include-table", o.IncludeTable, "include the code table in JSON output")
	fs.Float64Var(&o.CanvasWidth, "canvas-width", o.CanvasWidth, "fixed document width (0 = fit the disk)")
	fs.Float64Var(&o.CanvasHeight, "canvas-height", o.CanvasHeight, "fixed document height (0 = fit the disk)")
	fs.StringVar(&o.Label, "label", o.Label, "id of the SVG disk group")
}

// resolveOptions returns flagOpts when no config file is given. Otherwise
// it loads the file over the defaults and copies every explicitly set
// flag on top, so flags win over the file and the file wins over defaults.
func resolveOptions(fs *pflag.FlagSet, configPath string, flagOpts pipeline.Options) (pipeline.Options, error) {
	if configPath == "" {
		return flagOpts, nil
	}
	opts, err := pipeline.LoadOptions(configPath, pipeline.DefaultOptions())
	if err != nil {
		return opts, err
	}
	for _, f := range optionFlags {
		if fs.Changed(f.name) {
			f.copy(&opts, &flagOpts)
		}
	}
	if fs.Changed("format") {
		opts.Formats = flagOpts.Formats
	}
	opts.Refresh = flagOpts.Refresh
	return opts, nil
}
