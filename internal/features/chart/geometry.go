package chart

import (
	"math"
	"time"
)

// Padding is the space between the canvas edge and the plot rectangle.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// DefaultPadding leaves room for value labels on the left and date labels below.
var DefaultPadding = Padding{Top: 20, Right: 20, Bottom: 30, Left: 50}

// PlotRect is the pixel region inside the padding. Width and Height are never negative.
type PlotRect struct {
	Top, Left, Width, Height float64
}

func NewPlotRect(canvasWidth, canvasHeight float64, p Padding) PlotRect {
	return PlotRect{
		Top:    p.Top,
		Left:   p.Left,
		Width:  math.Max(0, canvasWidth-p.Left-p.Right),
		Height: math.Max(0, canvasHeight-p.Top-p.Bottom),
	}
}

func (r PlotRect) Right() float64  { return r.Left + r.Width }
func (r PlotRect) Bottom() float64 { return r.Top + r.Height }

// Empty reports a zero-area rectangle, which is drawn as a no-op.
func (r PlotRect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

const (
	lowHeadroom  = 0.9
	highHeadroom = 1.1
)

// Mapper maps the series domain onto a PlotRect and back. It is built once
// per draw pass and never mutated.
type Mapper struct {
	Rect       PlotRect
	MinX, MaxX time.Time
	MinY, MaxY float64

	series Series
}

// NewMapper returns nil for an empty series or one holding a NaN or
// infinite value, since no finite domain can be derived from it.
func NewMapper(series Series, canvasWidth, canvasHeight float64, p Padding) *Mapper {
	if len(series) == 0 || !series.Finite() {
		return nil
	}

	m := &Mapper{
		Rect:   NewPlotRect(canvasWidth, canvasHeight, p),
		MinX:   series[0].Timestamp,
		MaxX:   series[0].Timestamp,
		series: series,
	}

	minV, maxV := series[0].Value, series[0].Value
	for _, pt := range series[1:] {
		if pt.Timestamp.Before(m.MinX) {
			m.MinX = pt.Timestamp
		}
		if pt.Timestamp.After(m.MaxX) {
			m.MaxX = pt.Timestamp
		}
		minV = math.Min(minV, pt.Value)
		maxV = math.Max(maxV, pt.Value)
	}
	m.MinY = headroom(minV, lowHeadroom, highHeadroom)
	m.MaxY = headroom(maxV, highHeadroom, lowHeadroom)
	return m
}

// headroom scales v away from the opposite end of the domain: factor for
// positive values, negFactor for negative ones.
func headroom(v, factor, negFactor float64) float64 {
	if v < 0 {
		return v * negFactor
	}
	return v * factor
}

// ScaleX maps a timestamp to a pixel X. A zero-span domain maps to the horizontal center.
func (m *Mapper) ScaleX(t time.Time) float64 {
	span := m.MaxX.Sub(m.MinX)
	if span == 0 {
		return m.Rect.Left + m.Rect.Width/2
	}
	return m.Rect.Left + m.Rect.Width*float64(t.Sub(m.MinX))/float64(span)
}

// ScaleY maps a value to a pixel Y. Pixel Y grows downward, so larger values
// map higher up. A zero-span domain maps to the vertical center.
func (m *Mapper) ScaleY(v float64) float64 {
	span := m.MaxY - m.MinY
	if span == 0 {
		return m.Rect.Top + m.Rect.Height/2
	}
	return m.Rect.Bottom() - m.Rect.Height*(v-m.MinY)/span
}

// Point returns the pixel position of the i-th data point.
func (m *Mapper) Point(i int) (x, y float64) {
	p := m.series[i]
	return m.ScaleX(p.Timestamp), m.ScaleY(p.Value)
}

func (m *Mapper) Len() int { return len(m.series) }

// Nearest finds the data point closest to (x, y) by Euclidean distance.
// ok is false when nothing lies strictly within threshold pixels.
func (m *Mapper) Nearest(x, y, threshold float64) (index int, ok bool) {
	if m == nil {
		return -1, false
	}
	return nearest(len(m.series), m.Point, x, y, threshold)
}

// nearest is a linear scan; ties keep the first occurrence.
func nearest(n int, at func(int) (float64, float64), x, y, threshold float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i := 0; i < n; i++ {
		px, py := at(i)
		if d := math.Hypot(x-px, y-py); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist >= threshold {
		return -1, false
	}
	return best, true
}
