package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/encoderdisk/pkg/disk"
)

// DefaultMargin is the blank border around the disk, in document units.
const DefaultMargin = 5.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     Style
	precision int
	margin    float64
	canvas    *[2]float64
	decor     bool
	label     string
}

// WithStyle sets the wedge style (default [DefaultStyle]).
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithPrecision sets the number of decimals in path data.
func WithPrecision(p int) SVGOption { return func(r *svgRenderer) { r.precision = p } }

// WithMargin sets the border added around the disk when sizing the canvas.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithCanvas fixes the document size instead of fitting it to the disk.
// The disk stays centered on the canvas.
func WithCanvas(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.canvas = &[2]float64{w, h} }
}

// WithoutDecoration omits the rim, hole and guide circles.
func WithoutDecoration() SVGOption { return func(r *svgRenderer) { r.decor = false } }

// WithLabel sets the id of the top-level group.
func WithLabel(l string) SVGOption { return func(r *svgRenderer) { r.label = l } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:     DefaultStyle(),
		precision: DefaultPrecision,
		margin:    DefaultMargin,
		decor:     true,
		label:     "encoder-disk",
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.precision < 0 {
		r.precision = DefaultPrecision
	}
	return r
}

// RenderSVG writes d as a standalone SVG document. It does not modify d
// and is safe to call concurrently.
func RenderSVG(d disk.Disk, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	w, h := r.size(d)
	cx, cy := w/2, h/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		r.num(w), r.num(h), r.num(w), r.num(h))
	fmt.Fprintf(&buf, `  <g id="%s" transform="translate(%s,%s)">`+"\n", escapeAttr(r.label), r.num(cx), r.num(cy))

	if r.decor {
		renderDecoration(&buf, &r, d.Config)
	}
	for _, t := range d.Tracks {
		fmt.Fprintf(&buf, `    <g id="track-%d" class="track" data-bit="%d">`+"\n", t.Bit, t.Bit)
		renderOutlines(&buf, &r, t.Outlines)
		buf.WriteString("    </g>\n")
	}
	for _, ring := range d.Incremental {
		fmt.Fprintf(&buf, `    <g id="ring-%s" class="ring">`+"\n", ring.Name)
		renderOutlines(&buf, &r, ring.Outlines)
		buf.WriteString("    </g>\n")
	}
	if r.decor {
		// Center mark for the drill, drawn last so it stays on top.
		fmt.Fprintf(&buf, `    <circle class="guide" r="1" style="fill:white;stroke:white"/>`+"\n")
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func renderOutlines(buf *bytes.Buffer, r *svgRenderer, outlines []disk.Outline) {
	style := r.style.String()
	for _, o := range outlines {
		fmt.Fprintf(buf, `      <path d="%s" style="%s"/>`+"\n", PathData(o.Path, r.precision), style)
	}
}

func renderDecoration(buf *bytes.Buffer, r *svgRenderer, cfg disk.Config) {
	if cfg.Diameter > 0 {
		fmt.Fprintf(buf, `    <circle class="rim" r="%s" style="fill:none;stroke:black;stroke-width:1"/>`+"\n", r.num(cfg.Diameter/2))
	}
	if cfg.HoleDiameter > 0 {
		fmt.Fprintf(buf, `    <circle class="hole" r="%s" style="fill:black;stroke:none"/>`+"\n", r.num(cfg.HoleDiameter/2))
	}
}

// size returns the canvas size: the fixed canvas if set, otherwise the
// largest drawn diameter plus the margin (and half a stroke) on each side.
func (r *svgRenderer) size(d disk.Disk) (float64, float64) {
	if r.canvas != nil {
		return r.canvas[0], r.canvas[1]
	}
	extent := Extent(d, r.decor)
	side := extent + 2*r.margin
	if r.style.Stroke != "none" {
		side += r.style.StrokeWidth
	}
	return side, side
}

func (r *svgRenderer) num(v float64) string {
	return fmt.Sprintf("%.*f", min(r.precision, 3), v)
}

// Extent returns the diameter of the smallest circle containing every
// drawn element of d.
func Extent(d disk.Disk, withDecoration bool) float64 {
	diam := d.Config.EncoderDiameter
	for _, ring := range d.Incremental {
		diam = math.Max(diam, 2*ring.OuterRadius)
	}
	if withDecoration {
		diam = math.Max(diam, d.Config.Diameter)
		diam = math.Max(diam, d.Config.HoleDiameter)
	}
	return diam
}
