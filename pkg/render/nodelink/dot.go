// Package nodelink draws a Gray code as a cycle diagram with Graphviz.
//
// Each angular position is a node labelled with its code word; an edge
// joins every position to the next one (and the last back to the first)
// and is labelled with the bit that flips. The picture makes the
// single-bit adjacency of the code visible at a glance.
package nodelink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/encoderdisk/pkg/gray"
	"github.com/matzehuels/encoderdisk/pkg/render"
)

// Options configures diagram rendering.
type Options struct {
	// Circular lays the cycle out on a circle (circo) like the disk itself.
	// When false, a top-down dot layout is used.
	Circular bool

	// ShowPositions adds the decimal position index to each label.
	ShowPositions bool
}

// ToDOT converts a code table to Graphviz DOT format.
func ToDOT(t gray.Table, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Circular {
		buf.WriteString("  layout=circo;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\"];\n")
	buf.WriteString("  edge [fontsize=10];\n\n")

	for i := 0; i < t.Len(); i++ {
		label := fmt.Sprintf("%0*b", t.Bits(), t.Word(i))
		if opts.ShowPositions {
			label = fmt.Sprintf("%d\\n%s", i, label)
		}
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if t.Word(i) == 0 {
			attrs += ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  p%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for i := 0; i < t.Len(); i++ {
		next := (i + 1) % t.Len()
		fmt.Fprintf(&buf, "  p%d -> p%d [label=\"b%d\"];\n", i, next, flippedBit(t, i, next))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// flippedBit returns the index of the bit that differs between positions
// a and b, or -1 if none does (only possible for a 0-bit table).
func flippedBit(t gray.Table, a, b int) int {
	for bit := 0; bit < t.Bits(); bit++ {
		if t.Bit(a, bit) != t.Bit(b, bit) {
			return bit
		}
	}
	return -1
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
