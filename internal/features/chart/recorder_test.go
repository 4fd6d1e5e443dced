package chart

import (
	"image/color"
	"time"

	"golang.org/x/image/font"
)

type op struct {
	name  string
	args  []float64
	text  string
	color color.Color
}

// recorder is a Canvas that logs every call instead of rasterizing.
type recorder struct {
	ops   []op
	color color.Color
}

func (r *recorder) add(name string, args ...float64) {
	r.ops = append(r.ops, op{name: name, args: args, color: r.color})
}

func (r *recorder) Clear()                 { r.add("Clear") }
func (r *recorder) SetColor(c color.Color) { r.color = c; r.add("SetColor") }
func (r *recorder) SetLineWidth(w float64) { r.add("SetLineWidth", w) }
func (r *recorder) SetFontFace(font.Face)  {}
func (r *recorder) NewSubPath()            { r.add("NewSubPath") }
func (r *recorder) MoveTo(x, y float64)    { r.add("MoveTo", x, y) }
func (r *recorder) LineTo(x, y float64)    { r.add("LineTo", x, y) }
func (r *recorder) ClosePath()             { r.add("ClosePath") }
func (r *recorder) Stroke()                { r.add("Stroke") }
func (r *recorder) Fill()                  { r.add("Fill") }
func (r *recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.add("DrawLine", x1, y1, x2, y2)
}
func (r *recorder) DrawCircle(x, y, radius float64) { r.add("DrawCircle", x, y, radius) }
func (r *recorder) DrawRectangle(x, y, w, h float64) {
	r.add("DrawRectangle", x, y, w, h)
}
func (r *recorder) DrawStringAnchored(s string, x, y, ax, ay float64) {
	r.ops = append(r.ops, op{name: "DrawString", args: []float64{x, y, ax, ay}, text: s, color: r.color})
}

func (r *recorder) names() []string {
	out := make([]string, len(r.ops))
	for i, o := range r.ops {
		out[i] = o.name
	}
	return out
}

func (r *recorder) filter(name string) []op {
	var out []op
	for _, o := range r.ops {
		if o.name == name {
			out = append(out, o)
		}
	}
	return out
}

var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// daily builds a series with one point per day starting at epoch.
func daily(values ...float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = DataPoint{Timestamp: epoch.AddDate(0, 0, i), Value: v}
	}
	return s
}

func plainOptions(kind Kind) Options {
	o := DefaultOptions()
	o.Kind = kind
	o.ShowGrid = false
	return o
}
