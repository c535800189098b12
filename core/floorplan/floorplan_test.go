package floorplan

import (
	"math"
	"strings"
	"testing"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

func TestRenderEveryLayout(t *testing.T) {
	drawn, err := Render(types.ExampleSpec())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(drawn) != len(Layouts) {
		t.Fatalf("got %d layouts, want %d", len(drawn), len(Layouts))
	}

	labels := map[Layout][]string{
		LayoutOpenConcept:   {"OPEN CONCEPT", "KITCHEN", "BEDROOM 1", "BEDROOM 2", "MASTER", "BATHROOM"},
		LayoutSeparateRooms: {"SEPARATE ROOMS", "KITCHEN", "BEDROOM", "MASTER", "BATH", "LIVING", "DINING"},
	}
	for _, d := range drawn {
		if !strings.HasPrefix(d.SVG, "<svg ") || !strings.HasSuffix(d.SVG, "</svg>") {
			t.Errorf("%s: not a single svg element", d.Layout)
		}
		if !strings.Contains(d.SVG, `xmlns="http://www.w3.org/2000/svg"`) {
			t.Errorf("%s: missing svg namespace", d.Layout)
		}
		for _, want := range labels[d.Layout] {
			if !strings.Contains(d.SVG, ">"+want) {
				t.Errorf("%s: missing label %q", d.Layout, want)
			}
		}
		if !strings.Contains(d.SVG, "Legend:") {
			t.Errorf("%s: missing legend", d.Layout)
		}
	}
}

func TestSketchRoomsInsideCanvas(t *testing.T) {
	for _, l := range Layouts {
		p, err := Sketch(types.ExampleSpec(), l)
		if err != nil {
			t.Fatalf("%s: %v", l, err)
		}
		for _, r := range p.Rooms {
			if r.Width <= 0 || r.Height <= 0 {
				t.Errorf("%s: %v has size %gx%g", l, r.Label, r.Width, r.Height)
			}
			if r.X < padding || r.Y < padding ||
				r.X+r.Width > p.Width-padding+1e-9 || r.Y+r.Height > p.Height-padding+1e-9 {
				t.Errorf("%s: %v outside the walls", l, r.Label)
			}
		}
	}
}

func TestSketchCanvasBounds(t *testing.T) {
	tests := []struct {
		name          string
		length, width types.Feet
		wantW, wantH  float64
	}{
		{"small plot", 10, 10, minWidth, minHeight},
		{"scaled plot", 300, 250, 900, 750},
		{"huge plot", types.MaxLength, types.MaxLength, maxWidth, maxHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := types.ExampleSpec()
			spec.Plot.Length, spec.Plot.Width = tt.length, tt.width
			p, err := Sketch(spec, LayoutOpenConcept)
			if err != nil {
				t.Fatal(err)
			}
			if p.Width != tt.wantW || p.Height != tt.wantH {
				t.Errorf("canvas = %gx%g, want %gx%g", p.Width, p.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSketchCaption(t *testing.T) {
	spec := types.ExampleSpec()
	spec.Plot.Length, spec.Plot.Width = 30, 40
	spec.Floors = 1

	p, err := Sketch(spec, LayoutSeparateRooms)
	if err != nil {
		t.Fatal(err)
	}
	if want := "30ft × 40ft | 1 Floor"; p.Caption != want {
		t.Errorf("caption = %q, want %q", p.Caption, want)
	}

	spec.Floors = 3
	p, _ = Sketch(spec, LayoutSeparateRooms)
	if !strings.HasSuffix(p.Caption, "3 Floors") {
		t.Errorf("caption = %q", p.Caption)
	}
}

func TestSketchRejects(t *testing.T) {
	spec := types.ExampleSpec()
	if _, err := Sketch(spec, Layout("attic")); !errors.IsInvalidInput(err) {
		t.Errorf("unknown layout: err = %v", err)
	}

	spec.Plot.Width = types.Feet(math.NaN())
	if _, err := Sketch(spec, LayoutOpenConcept); !errors.IsInvalidInput(err) {
		t.Errorf("NaN plot: err = %v", err)
	}
}

func TestEscape(t *testing.T) {
	if got := escape(`<a & "b">`); got != "&lt;a &amp; &quot;b&quot;&gt;" {
		t.Errorf("escape = %q", got)
	}
}
