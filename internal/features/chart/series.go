package chart

import "image/color"

const (
	lineWidth     = 2.0
	markerRadius  = 3.0
	barWidthRatio = 0.8
)

// drawLine strokes the polyline, fills the area under it and then draws the
// point markers. Markers come last so the fill never covers them.
func drawLine(c Canvas, m *Mapper, data Series, stroke, fill color.Color) {
	tracePolyline := func() {
		c.NewSubPath()
		for i := range data {
			x, y := m.Point(i)
			if i == 0 {
				c.MoveTo(x, y)
			} else {
				c.LineTo(x, y)
			}
		}
	}

	c.SetColor(stroke)
	c.SetLineWidth(lineWidth)
	tracePolyline()
	c.Stroke()

	bottom := m.Rect.Bottom()
	c.SetColor(fill)
	tracePolyline()
	c.LineTo(m.ScaleX(data[len(data)-1].Timestamp), bottom)
	c.LineTo(m.ScaleX(data[0].Timestamp), bottom)
	c.ClosePath()
	c.Fill()

	c.SetColor(stroke)
	for i := range data {
		x, y := m.Point(i)
		c.DrawCircle(x, y, markerRadius)
		c.Fill()
	}
}

// barWidth is 80% of the plot width divided evenly between n points.
func barWidth(m *Mapper, n int) float64 {
	if n == 0 {
		return 0
	}
	return barWidthRatio * m.Rect.Width / float64(n)
}

// drawBars centers one bar per point on its X, from the value down to the plot bottom.
func drawBars(c Canvas, m *Mapper, data Series, fill color.Color) {
	w := barWidth(m, len(data))
	bottom := m.Rect.Bottom()

	c.SetColor(fill)
	for i := range data {
		x, y := m.Point(i)
		c.DrawRectangle(x-w/2, y, w, bottom-y)
		c.Fill()
	}
}
