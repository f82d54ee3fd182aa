package render

import (
	"strings"
	"testing"
)

func TestToPNGRejectsScale(t *testing.T) {
	if _, err := ToPNG([]byte("<svg/>"), 0); err == nil {
		t.Error("ToPNG(scale=0) should fail")
	}
}

func TestConvertWithoutTool(t *testing.T) {
	orig := converter
	converter = "rsvg-convert-does-not-exist"
	defer func() { converter = orig }()

	if Available() {
		t.Fatal("Available() = true for a missing tool")
	}
	_, err := ToPDF([]byte("<svg/>"))
	if err == nil || !strings.Contains(err.Error(), "librsvg") {
		t.Errorf("ToPDF() error = %v, want install hint", err)
	}
}
