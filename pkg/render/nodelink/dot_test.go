package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/encoderdisk/pkg/gray"
)

func TestToDOT(t *testing.T) {
	tbl, err := gray.Generate(2)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(tbl, Options{})

	wantLines := []string{
		`p0 [label="00", fillcolor=lightgrey];`,
		`p2 [label="11"];`,
		`p0 -> p1 [label="b1"];`,
		`p1 -> p2 [label="b0"];`,
		`p2 -> p3 [label="b1"];`,
		`p3 -> p0 [label="b0"];`,
		`rankdir=TB;`,
	}
	for _, l := range wantLines {
		if !strings.Contains(dot, l) {
			t.Errorf("DOT missing %q\n%s", l, dot)
		}
	}
	if got := strings.Count(dot, " -> "); got != 4 {
		t.Errorf("edge count = %d, want 4", got)
	}
}

func TestToDOTOptions(t *testing.T) {
	tbl, err := gray.Generate(3)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(tbl, Options{Circular: true, ShowPositions: true})
	if !strings.Contains(dot, "layout=circo;") {
		t.Error("Circular option not applied")
	}
	if !strings.Contains(dot, `p5 [label="5\n111"];`) {
		t.Errorf("ShowPositions label missing:\n%s", dot)
	}
}
