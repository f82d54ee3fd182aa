// Package pipeline runs validate → layout → render for encoder disks.
//
// It is the single entry point used by the CLI and the HTTP server, so both
// apply the same defaults, validation, caching and observability hooks.
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Disk.Bits = 10
//	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatJSON}
//	result, err := runner.Execute(ctx, opts)
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Options can also be read from a TOML file with [LoadOptions].
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/encoderdisk/pkg/buildinfo"
	"github.com/matzehuels/encoderdisk/pkg/cache"
	"github.com/matzehuels/encoderdisk/pkg/disk"
	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG scale factor. Disks are usually laid out in
	// millimetres, so 1 unit = 1 pixel would be far too small.
	DefaultScale = 4.0

	// MaxPrecision bounds the decimals written to path data.
	MaxPrecision = 12
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported disk output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. The TOML layout is
//
//	formats = ["svg", "png"]
//	precision = 4
//
//	[disk]
//	bits = 10
//	encoder_diameter = 120
//
//	[style]
//	fill = "black"
type Options struct {
	Disk  disk.Config `toml:"disk" json:"disk"`
	Style sink.Style  `toml:"style" json:"style"`

	Formats      []string `toml:"formats" json:"formats,omitempty"`
	Precision    int      `toml:"precision" json:"precision,omitempty"` // path decimals; 0 = default
	Scale        float64  `toml:"scale" json:"scale,omitempty"`         // PNG only
	NoDecoration bool     `toml:"no_decoration" json:"no_decoration,omitempty"`
	IncludeTable bool     `toml:"include_table" json:"include_table,omitempty"` // JSON only

	// Fixed document size with the disk centered; 0 x 0 fits the disk.
	CanvasWidth  float64 `toml:"canvas_width" json:"canvas_width,omitempty"`
	CanvasHeight float64 `toml:"canvas_height" json:"canvas_height,omitempty"`
	Label        string  `toml:"label" json:"label,omitempty"` // id of the SVG disk group

	// Runtime options (not serialized)
	Refresh bool        `toml:"-" json:"-"` // skip cache reads
	Logger  *log.Logger `toml:"-" json:"-"`
}

// DefaultOptions returns options for the default disk rendered as SVG.
func DefaultOptions() Options {
	return Options{
		Disk:      disk.DefaultConfig(),
		Style:     sink.DefaultStyle(),
		Formats:   []string{FormatSVG},
		Precision: sink.DefaultPrecision,
		Scale:     DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Disk      disk.Disk
	Artifacts map[string][]byte
	Warnings  []string
	Stats     Stats
	CacheHit  bool // every artifact came from the cache
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tracks     int
	Wedges     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "svg,png", dropping
// blanks and duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero-valued render fields. The disk config is left
// alone: a zero bit count is an error, not a request for the default.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Precision == 0 {
		o.Precision = sink.DefaultPrecision
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Style == (sink.Style{}) {
		o.Style = sink.DefaultStyle()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every field.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := o.Disk.Validate(); err != nil {
		return err
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateIntRange("precision", o.Precision, 1, MaxPrecision); err != nil {
		return err
	}
	if o.CanvasWidth != 0 || o.CanvasHeight != 0 {
		if err := errors.ValidatePositive("canvas width", o.CanvasWidth); err != nil {
			return err
		}
		if err := errors.ValidatePositive("canvas height", o.CanvasHeight); err != nil {
			return err
		}
	}
	return errors.ValidatePositive("scale", o.Scale)
}

// SVGOptions translates render fields into sink options.
func (o *Options) SVGOptions() []sink.SVGOption {
	opts := []sink.SVGOption{
		sink.WithStyle(o.Style),
		sink.WithPrecision(o.Precision),
	}
	if o.NoDecoration {
		opts = append(opts, sink.WithoutDecoration())
	}
	if o.CanvasWidth > 0 && o.CanvasHeight > 0 {
		opts = append(opts, sink.WithCanvas(o.CanvasWidth, o.CanvasHeight))
	}
	if o.Label != "" {
		opts = append(opts, sink.WithLabel(o.Label))
	}
	return opts
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style.String(),
		Precision: o.Precision,
		Decorated: !o.NoDecoration,
		Label:     o.Label,
		Version:   buildinfo.Version,
	}
	if o.CanvasWidth > 0 && o.CanvasHeight > 0 {
		k.Canvas = fmt.Sprintf("%gx%g", o.CanvasWidth, o.CanvasHeight)
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatJSON:
		k.ExtraParts = []any{o.IncludeTable}
	}
	return k
}
