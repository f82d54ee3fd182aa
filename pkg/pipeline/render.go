package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/encoderdisk/pkg/disk"
	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/observability"
	"github.com/matzehuels/encoderdisk/pkg/render/sink"
)

// RenderFormat renders d in a single format without caching.
func RenderFormat(ctx context.Context, d disk.Disk, format string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := renderFormat(d, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func renderFormat(d disk.Disk, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(d, opts.SVGOptions()...), nil
	case FormatJSON:
		jsonOpts := []sink.JSONOption{
			sink.WithJSONPaths(opts.Precision),
			sink.WithJSONStyle(opts.Style),
		}
		if opts.IncludeTable {
			jsonOpts = append(jsonOpts, sink.WithJSONTable())
		}
		return sink.RenderJSON(d, jsonOpts...)
	case FormatPDF:
		return sink.RenderPDF(d, sink.WithPDFSVGOptions(opts.SVGOptions()...))
	case FormatPNG:
		return sink.RenderPNG(d,
			sink.WithPNGSVGOptions(opts.SVGOptions()...),
			sink.WithScale(opts.Scale))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
