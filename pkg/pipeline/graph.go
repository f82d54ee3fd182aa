package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/encoderdisk/pkg/buildinfo"
	"github.com/matzehuels/encoderdisk/pkg/cache"
	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/gray"
	"github.com/matzehuels/encoderdisk/pkg/observability"
	"github.com/matzehuels/encoderdisk/pkg/render/nodelink"
)

// MaxGraphBits bounds code-cycle diagrams; 2^8 nodes is already a crowded
// picture and Graphviz layout time grows quickly beyond it.
const MaxGraphBits = 8

// FormatDOT is the raw Graphviz source, available for code-cycle diagrams only.
const FormatDOT = "dot"

// GraphOptions configures a code-cycle diagram.
type GraphOptions struct {
	Bits          int      `json:"bits"`
	ZeroOffset    int      `json:"zero_offset,omitempty"`
	Circular      bool     `json:"circular,omitempty"`
	ShowPositions bool     `json:"show_positions,omitempty"`
	Formats       []string `json:"formats,omitempty"`
	Refresh       bool     `json:"-"`
}

// Validate applies the default format and checks the remaining fields.
func (o *GraphOptions) Validate() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := errors.ValidateIntRange("bits", o.Bits, 1, MaxGraphBits); err != nil {
		return err
	}
	for _, f := range o.Formats {
		switch f {
		case FormatSVG, FormatPDF, FormatDOT:
		default:
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid graph format: %q (must be one of: svg, pdf, dot)", f)
		}
	}
	return nil
}

// Graph renders the Gray code cycle for opts.Bits with Graphviz.
func (r *Runner) Graph(ctx context.Context, opts GraphOptions) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tbl, err := gray.Generate(opts.Bits)
	if err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(tbl.Rotate(opts.ZeroOffset), nodelink.Options{
		Circular:      opts.Circular,
		ShowPositions: opts.ShowPositions,
	})

	keyOpts := opts
	keyOpts.Formats = nil
	graphKey := r.Keyer.ConfigKey(keyOpts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if format == FormatDOT {
			artifacts[format] = []byte(dot)
			continue
		}

		key := r.Keyer.ArtifactKey(graphKey, cache.ArtifactKeyOpts{Format: format, Version: buildinfo.Version})
		if !opts.Refresh {
			if data, ok := r.cacheGet(ctx, key, r.Logger); ok {
				artifacts[format] = data
				continue
			}
		}

		data, err := r.renderGraph(ctx, dot, format)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
		r.cacheSet(ctx, key, data, r.Logger)
	}
	return artifacts, nil
}

func (r *Runner) renderGraph(ctx context.Context, dot, format string) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, "graph-"+format)
	start := time.Now()

	var (
		data []byte
		err  error
	)
	if format == FormatPDF {
		data, err = nodelink.RenderPDF(ctx, dot)
	} else {
		data, err = nodelink.RenderSVG(ctx, dot)
	}
	hooks.OnRenderComplete(ctx, "graph-"+format, len(data), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph %s", format)
	}
	return data, nil
}
