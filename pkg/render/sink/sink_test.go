package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/encoderdisk/pkg/disk"
	"github.com/matzehuels/encoderdisk/pkg/geom"
)

func mustLayout(t *testing.T, cfg disk.Config) disk.Disk {
	t.Helper()
	d, err := disk.Layout(cfg)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	return d
}

func TestPathData(t *testing.T) {
	p, err := geom.BuildWedge(geom.Wedge{StartAngle: 0, Span: 90, OuterRadius: 50, Width: 10})
	if err != nil {
		t.Fatal(err)
	}

	got := PathData(p, 2)
	want := "M 40.00 0.00 L 50.00 0.00 A 50.00 50.00 0 0 1 0.00 50.00 L 0.00 40.00 A 40.00 40.00 0 0 0 40.00 0.00 Z"
	if got != want {
		t.Errorf("PathData() =\n  %s\nwant\n  %s", got, want)
	}
}

func TestPathDataDefaultPrecision(t *testing.T) {
	p := geom.Path{{Kind: geom.MoveTo, To: geom.Point{X: 1.5, Y: -2}}, {Kind: geom.Close}}
	if got, want := PathData(p, -1), "M 1.500000 -2.000000 Z"; got != want {
		t.Errorf("PathData() = %q, want %q", got, want)
	}
}

func TestPathDataNoNegativeZero(t *testing.T) {
	p, err := geom.BuildWedge(geom.Wedge{StartAngle: 270, Span: 90, OuterRadius: 10, Width: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := PathData(p, 3); strings.Contains(got, "-0.000 ") {
		t.Errorf("PathData() contains negative zero: %s", got)
	}
}

func TestPathDataLargeArc(t *testing.T) {
	p, err := geom.BuildWedge(geom.Wedge{StartAngle: 10, Span: 200, OuterRadius: 10, Width: 2})
	if err != nil {
		t.Fatal(err)
	}
	got := PathData(p, 1)
	if !strings.Contains(got, "A 10.0 10.0 0 1 1 ") || !strings.Contains(got, "A 8.0 8.0 0 1 0 ") {
		t.Errorf("PathData() missing large-arc flags: %s", got)
	}
}

func TestStyle(t *testing.T) {
	tests := []struct {
		name    string
		style   Style
		want    string
		wantErr bool
	}{
		{"default", DefaultStyle(), "fill:black;stroke:black;stroke-width:1", false},
		{"no stroke", Style{Fill: "#222", Stroke: "none"}, "fill:#222;stroke:none", false},
		{"empty fill", Style{Fill: "", Stroke: "black"}, "", true},
		{"negative width", Style{Fill: "black", Stroke: "black", StrokeWidth: -1}, "", true},
		{"injection", Style{Fill: `black"/><script`, Stroke: "black"}, "", true},
		{"ampersand", Style{Fill: "black", Stroke: "a&b"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.style.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.style.String() != tt.want {
				t.Errorf("String() = %q, want %q", tt.style.String(), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	d := mustLayout(t, disk.Config{Bits: 4, EncoderDiameter: 100, TrackWidth: 4, TrackDistance: 5})
	svg := string(RenderSVG(d))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root: %.60s", svg)
	}
	if got, want := strings.Count(svg, "<path "), len(d.Wedges()); got != want {
		t.Errorf("path count = %d, want %d", got, want)
	}
	for bit := 0; bit < 4; bit++ {
		if !strings.Contains(svg, `id="track-`+string(rune('0'+bit))+`"`) {
			t.Errorf("missing group for track %d", bit)
		}
	}
	// 100 + 2*5 margin + 1 stroke
	if !strings.Contains(svg, `transform="translate(55.500,55.500)"`) {
		t.Errorf("disk not centered: %s", svg[:200])
	}
	if strings.Contains(svg, `class="rim"`) || strings.Contains(svg, `class="hole"`) {
		t.Error("no rim or hole configured, but one was drawn")
	}
}

func TestRenderSVGDecoration(t *testing.T) {
	d := mustLayout(t, disk.Config{
		Bits: 3, EncoderDiameter: 60, TrackWidth: 4, TrackDistance: 5,
		Diameter: 80, HoleDiameter: 8,
	})

	svg := string(RenderSVG(d))
	for _, class := range []string{`class="rim" r="40.000"`, `class="hole" r="4.000"`, `class="guide"`} {
		if !strings.Contains(svg, class) {
			t.Errorf("missing %s", class)
		}
	}

	plain := string(RenderSVG(d, WithoutDecoration()))
	if strings.Contains(plain, "<circle") {
		t.Error("WithoutDecoration() still draws circles")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	d := mustLayout(t, disk.Config{
		Bits: 2, EncoderDiameter: 40, TrackWidth: 3, TrackDistance: 4,
		Segments: 4, OuterEncoderDiameter: 50, OuterEncoderWidth: 3,
	})

	svg := string(RenderSVG(d,
		WithCanvas(200, 100),
		WithLabel("disk-a"),
		WithPrecision(1),
		WithStyle(Style{Fill: "red", Stroke: "none"}),
	))

	checks := []string{
		`viewBox="0 0 200.0 100.0"`,
		`<g id="disk-a" transform="translate(100.0,50.0)">`,
		`id="ring-outer"`,
		`style="fill:red;stroke:none"`,
	}
	for _, c := range checks {
		if !strings.Contains(svg, c) {
			t.Errorf("SVG missing %s", c)
		}
	}
	if got, want := strings.Count(svg, "<path "), len(d.Outlines()); got != want {
		t.Errorf("path count = %d, want %d", got, want)
	}
}

func TestRenderSVGEscapesLabel(t *testing.T) {
	d := mustLayout(t, disk.Config{Bits: 1, EncoderDiameter: 20, TrackWidth: 2})
	svg := string(RenderSVG(d, WithLabel(`a&b<"c">`)))
	if !strings.Contains(svg, `<g id="a&amp;b&lt;&#34;c&#34;&gt;"`) {
		t.Errorf("label not XML-escaped:\n%.200s", svg)
	}
}

func TestRenderSVGGuideWithoutHole(t *testing.T) {
	d := mustLayout(t, disk.Config{Bits: 2, EncoderDiameter: 40, TrackWidth: 3, TrackDistance: 4})
	svg := string(RenderSVG(d))
	if !strings.Contains(svg, `class="guide" r="1"`) {
		t.Error("guide circle missing when no hole is configured")
	}
	if strings.Contains(svg, `class="hole"`) {
		t.Error("hole drawn without a hole diameter")
	}
}

func TestRenderJSON(t *testing.T) {
	d := mustLayout(t, disk.Config{Bits: 2, EncoderDiameter: 100, TrackWidth: 4, TrackDistance: 6})

	data, err := RenderJSON(d, WithJSONTable(), WithJSONPaths(2), WithJSONStyle(DefaultStyle()))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Bits != 2 || out.Positions != 4 || out.PositionSize != 90 {
		t.Errorf("header = %d bits, %d positions, %v deg; want 2, 4, 90", out.Bits, out.Positions, out.PositionSize)
	}
	if want := []string{"00", "01", "11", "10"}; strings.Join(out.Table, ",") != strings.Join(want, ",") {
		t.Errorf("Table = %v, want %v", out.Table, want)
	}
	if len(out.Tracks) != 2 {
		t.Fatalf("Tracks = %d, want 2", len(out.Tracks))
	}
	if out.Tracks[1].InnerRadius != 40 {
		t.Errorf("Tracks[1].InnerRadius = %v, want 40", out.Tracks[1].InnerRadius)
	}
	w := out.Tracks[0].Wedges[0]
	if w.StartAngle != 180 || w.Span != 180 || !strings.HasPrefix(w.Path, "M -46.00 0.00") {
		t.Errorf("Tracks[0].Wedges[0] = %+v", w)
	}
	if out.Style == nil || out.Style.Fill != "black" {
		t.Errorf("Style = %+v, want default style", out.Style)
	}
}

func TestRenderJSONMinimal(t *testing.T) {
	d := mustLayout(t, disk.DefaultConfig())
	data, err := RenderJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if strings.Contains(s, `"table"`) || strings.Contains(s, `"d"`) || strings.Contains(s, `"style"`) {
		t.Errorf("optional fields present without options")
	}
}
