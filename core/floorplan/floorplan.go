// Package floorplan sketches indicative room layouts for a plot as SVG.
//
// The sketches are illustrative only. Room sizes follow fixed proportions of
// the plot and play no part in the estimate.
package floorplan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// Layout names a room arrangement
type Layout string

const (
	LayoutOpenConcept   Layout = "open-concept"
	LayoutSeparateRooms Layout = "separate-rooms"
)

// Layouts lists every layout in display order
var Layouts = []Layout{LayoutOpenConcept, LayoutSeparateRooms}

// Title is the heading drawn on the sketch
func (l Layout) Title() string {
	switch l {
	case LayoutOpenConcept:
		return "Open Concept"
	case LayoutSeparateRooms:
		return "Separate Rooms"
	}
	return string(l)
}

// RoomKind decides a room's colours
type RoomKind string

const (
	KindBedroom  RoomKind = "bedroom"
	KindMaster   RoomKind = "master"
	KindKitchen  RoomKind = "kitchen"
	KindLiving   RoomKind = "living"
	KindBathroom RoomKind = "bathroom"
)

type palette struct{ fill, stroke string }

var palettes = map[RoomKind]palette{
	KindBedroom:  {"#ffe6e6", "#cc6666"},
	KindMaster:   {"#ffe6cc", "#d9a574"},
	KindKitchen:  {"#fff8dc", "#8b7500"},
	KindLiving:   {"#e6f2ff", "#4a90e2"},
	KindBathroom: {"#e6f8f8", "#66cccc"},
}

// Canvas geometry in pixels
const (
	pixelsPerFoot = 3
	minWidth      = 600
	minHeight     = 500
	maxWidth      = 1200
	maxHeight     = 1000
	padding       = 30
	roomGap       = 25.0
)

// Room is one labelled rectangle on the canvas
type Room struct {
	Kind  RoomKind
	Label []string
	// Size is the nominal room size in feet, empty when not shown
	Size string

	X, Y, Width, Height float64
}

// Divider is a dashed partition line
type Divider struct {
	X1, Y1, X2, Y2 float64
}

// Plan is a laid-out sketch ready to draw
type Plan struct {
	Layout   Layout
	Width    float64
	Height   float64
	Rooms    []Room
	Dividers []Divider
	Caption  string
}

// Sketch lays out the rooms of one floor of spec
func Sketch(spec types.BuildingSpec, layout Layout) (*Plan, error) {
	length, width := float64(spec.Plot.Length), float64(spec.Plot.Width)
	if !(length > 0) || !(width > 0) || math.IsInf(length, 0) || math.IsInf(width, 0) {
		return nil, errors.InvalidInput("plot", "floor plan needs a positive finite plot, got %g x %g", length, width)
	}

	p := &Plan{
		Layout:  layout,
		Width:   clamp(length*pixelsPerFoot, minWidth, maxWidth),
		Height:  clamp(width*pixelsPerFoot, minHeight, maxHeight),
		Caption: caption(length, width, spec.Floors),
	}
	uw := p.Width - 2*padding
	uh := p.Height - 2*padding

	switch layout {
	case LayoutOpenConcept:
		kw := (uw - roomGap) * 0.28
		rw := uw - kw - roomGap
		bh := (uh - roomGap) * 0.48
		rx := padding + kw + roomGap
		p.Rooms = []Room{
			{Kind: KindKitchen, Label: []string{"KITCHEN"}, Size: size(length/3, width),
				X: padding, Y: padding, Width: kw, Height: uh},
			{Kind: KindBedroom, Label: []string{"BEDROOM 1"}, Size: size(length/4, width/2),
				X: rx, Y: padding, Width: rw*0.5 - roomGap/2, Height: bh},
			{Kind: KindBedroom, Label: []string{"BEDROOM 2"}, Size: size(length/4, width/2),
				X: rx + rw*0.5 + roomGap/2, Y: padding, Width: rw*0.5 - roomGap/2, Height: bh},
			{Kind: KindMaster, Label: []string{"MASTER", "BEDROOM"}, Size: size(length/3, width/2),
				X: rx, Y: padding + bh + roomGap, Width: rw*0.65 - roomGap/2, Height: bh},
			{Kind: KindBathroom, Label: []string{"BATHROOM"},
				X: rx + rw*0.65 + roomGap/2, Y: padding + bh + roomGap, Width: rw*0.35 - roomGap/2, Height: bh},
		}
		divX := padding + kw + roomGap/2
		p.Dividers = []Divider{{X1: divX, Y1: padding, X2: divX, Y2: padding + uh}}

	case LayoutSeparateRooms:
		inner := uw - 2*roomGap
		bw := inner / 3
		bathW := inner / 4
		kw := inner * 0.35
		h := (uh - roomGap) * 0.5
		low := padding + h + roomGap
		p.Rooms = []Room{
			{Kind: KindBedroom, Label: []string{"BEDROOM", "1"},
				X: padding, Y: padding, Width: bw, Height: h},
			{Kind: KindBedroom, Label: []string{"BEDROOM", "2"},
				X: padding + bw + roomGap, Y: padding, Width: bw, Height: h},
			{Kind: KindMaster, Label: []string{"MASTER", "BEDROOM"},
				X: padding + 2*bw + 2*roomGap, Y: padding, Width: uw - 2*bw - 2*roomGap, Height: h},
			{Kind: KindBathroom, Label: []string{"BATH"},
				X: padding, Y: low, Width: bathW, Height: h},
			{Kind: KindKitchen, Label: []string{"KITCHEN"}, Size: size(length/3, width/2),
				X: padding + bathW + roomGap, Y: low, Width: kw, Height: h},
			{Kind: KindLiving, Label: []string{"LIVING", "DINING"},
				X: padding + bathW + kw + 2*roomGap, Y: low, Width: uw - bathW - kw - 2*roomGap, Height: h},
		}

	default:
		return nil, errors.InvalidInput("layout", "unknown floor plan layout %q", layout)
	}
	return p, nil
}

// SVG draws the plan as a standalone svg element
func (p *Plan) SVG() string {
	var b strings.Builder
	w, h := num(p.Width), num(p.Height)
	fmt.Fprintf(&b, `<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" font-family="Arial, sans-serif">`, w, h, w, h)
	fmt.Fprintf(&b, `<rect width="%s" height="%s" fill="#ffffff" stroke="#333" stroke-width="2"/>`, w, h)
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%s" height="%s" fill="none" stroke="#000000" stroke-width="3"/>`,
		padding, padding, num(p.Width-2*padding), num(p.Height-2*padding))

	for _, r := range p.Rooms {
		c := palettes[r.Kind]
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="2" rx="3"/>`,
			num(r.X), num(r.Y), num(r.Width), num(r.Height), c.fill, c.stroke)

		cx := num(r.X + r.Width/2)
		y := r.Y + r.Height/2 - 9*float64(len(r.Label)-1)
		for _, line := range r.Label {
			fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="13" font-weight="bold" fill="#333">%s</text>`,
				cx, num(y), escape(line))
			y += 18
		}
		if r.Size != "" {
			fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="10" fill="#666">%s</text>`,
				cx, num(y), escape(r.Size))
		}
	}

	for _, d := range p.Dividers {
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#333" stroke-width="5" stroke-dasharray="5,5"/>`,
			num(d.X1), num(d.Y1), num(d.X2), num(d.Y2))
	}

	p.legend(&b)

	fmt.Fprintf(&b, `<text x="%s" y="22" text-anchor="middle" font-size="18" font-weight="bold" fill="#000">%s</text>`,
		num(p.Width/2), escape(strings.ToUpper(p.Layout.Title())))
	fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="12" fill="#666">%s</text>`,
		num(p.Width/2), num(p.Height-8), escape(p.Caption))
	b.WriteString(`</svg>`)
	return b.String()
}

func (p *Plan) legend(b *strings.Builder) {
	fmt.Fprintf(b, `<g transform="translate(%s, %s)">`, num(p.Width-180), num(p.Height-120))
	b.WriteString(`<text x="0" y="0" font-size="12" font-weight="bold" fill="#333">Legend:</text>`)
	entries := []struct {
		kind  RoomKind
		label string
	}{
		{KindBedroom, "Bedrooms"},
		{KindKitchen, "Kitchen"},
		{KindLiving, "Living Area"},
		{KindBathroom, "Bathroom"},
	}
	for i, e := range entries {
		y := 15 + 23*i
		fmt.Fprintf(b, `<rect x="0" y="%d" width="18" height="15" fill="%s" stroke="#333" stroke-width="1"/>`, y, palettes[e.kind].fill)
		fmt.Fprintf(b, `<text x="25" y="%d" font-size="11" fill="#333">%s</text>`, y+12, e.label)
	}
	b.WriteString(`</g>`)
}

// Render sketches and draws every layout in order
func Render(spec types.BuildingSpec) ([]Rendered, error) {
	out := make([]Rendered, 0, len(Layouts))
	for _, l := range Layouts {
		p, err := Sketch(spec, l)
		if err != nil {
			return nil, err
		}
		out = append(out, Rendered{Layout: l, Title: l.Title(), SVG: p.SVG()})
	}
	return out, nil
}

// Rendered is a drawn layout
type Rendered struct {
	Layout Layout
	Title  string
	SVG    string
}

func caption(length, width float64, floors int) string {
	unit := "Floors"
	if floors == 1 {
		unit = "Floor"
	}
	return fmt.Sprintf("%sft × %sft | %d %s", num(length), num(width), floors, unit)
}

func size(length, width float64) string {
	return fmt.Sprintf("%.0f × %.0f", length, width)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// num formats a coordinate with at most one decimal
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}
